package career

import (
	"cmp"
	"errors"
	"math"
	"math/rand/v2"
	"slices"
)

// ForestConfig controls the random forest fit.
type ForestConfig struct {
	Trees    int
	MaxDepth int
	Seed     uint64
}

// Forest is a bagged ensemble of gini decision trees. Leaves store class
// distributions and predictions average them across trees.
type Forest struct {
	trees   []*treeNode
	classes int
}

type treeNode struct {
	feature   int
	threshold float64
	left      *treeNode
	right     *treeNode
	dist      []float64
}

func (n *treeNode) leaf() bool {
	return n.left == nil
}

type treeBuilder struct {
	x        [][]float64
	y        []int
	classes  int
	maxDepth int
	maxFeat  int
	rng      *rand.Rand
}

// FitForest trains the ensemble on x with class labels y in [0, classes).
func FitForest(x [][]float64, y []int, classes int, cfg ForestConfig) (*Forest, error) {
	if len(x) == 0 || len(x) != len(y) {
		return nil, errors.New("forest: features and labels must be non-empty and aligned")
	}
	if classes < 1 {
		return nil, errors.New("forest: at least one class is required")
	}
	if cfg.Trees < 1 {
		cfg.Trees = 1
	}
	if cfg.MaxDepth < 1 {
		cfg.MaxDepth = 1
	}

	width := len(x[0])
	b := &treeBuilder{
		x:        x,
		y:        y,
		classes:  classes,
		maxDepth: cfg.MaxDepth,
		maxFeat:  max(1, int(math.Sqrt(float64(width)))),
		rng:      rand.New(rand.NewPCG(cfg.Seed, cfg.Seed^0x9e3779b97f4a7c15)),
	}

	f := &Forest{classes: classes, trees: make([]*treeNode, 0, cfg.Trees)}
	for t := 0; t < cfg.Trees; t++ {
		sample := make([]int, len(x))
		for i := range sample {
			sample[i] = b.rng.IntN(len(x))
		}
		f.trees = append(f.trees, b.grow(sample, 0))
	}

	return f, nil
}

// PredictProba returns the averaged class distribution for x.
func (f *Forest) PredictProba(x []float64) []float64 {
	out := make([]float64, f.classes)
	for _, root := range f.trees {
		n := root
		for !n.leaf() {
			if x[n.feature] <= n.threshold {
				n = n.left
			} else {
				n = n.right
			}
		}
		for c, p := range n.dist {
			out[c] += p
		}
	}

	for c := range out {
		out[c] /= float64(len(f.trees))
	}
	return out
}

func (b *treeBuilder) grow(sample []int, depth int) *treeNode {
	counts := b.counts(sample)

	if depth >= b.maxDepth || len(sample) < 2 || pure(counts) {
		return b.leafFrom(counts, len(sample))
	}

	feature, threshold, ok := b.bestSplit(sample, counts)
	if !ok {
		return b.leafFrom(counts, len(sample))
	}

	var left, right []int
	for _, i := range sample {
		if b.x[i][feature] <= threshold {
			left = append(left, i)
		} else {
			right = append(right, i)
		}
	}

	return &treeNode{
		feature:   feature,
		threshold: threshold,
		left:      b.grow(left, depth+1),
		right:     b.grow(right, depth+1),
	}
}

// bestSplit draws features in random order and evaluates them until maxFeat
// non-constant ones were seen, keeping the lowest weighted gini.
func (b *treeBuilder) bestSplit(sample []int, counts []float64) (int, float64, bool) {
	width := len(b.x[0])
	total := float64(len(sample))

	bestFeature, bestThreshold := -1, 0.0
	bestImpurity := gini(counts, total)
	found := false

	sorted := slices.Clone(sample)
	evaluated := 0

	for _, feature := range b.rng.Perm(width) {
		if evaluated >= b.maxFeat {
			break
		}

		slices.SortFunc(sorted, func(i, j int) int {
			if c := cmp.Compare(b.x[i][feature], b.x[j][feature]); c != 0 {
				return c
			}
			return cmp.Compare(i, j)
		})

		if b.x[sorted[0]][feature] == b.x[sorted[len(sorted)-1]][feature] {
			continue
		}
		evaluated++

		left := make([]float64, b.classes)
		right := slices.Clone(counts)

		for k := 0; k < len(sorted)-1; k++ {
			c := b.y[sorted[k]]
			left[c]++
			right[c]--

			cur, next := b.x[sorted[k]][feature], b.x[sorted[k+1]][feature]
			if cur == next {
				continue
			}

			nl := float64(k + 1)
			nr := total - nl
			impurity := (nl*gini(left, nl) + nr*gini(right, nr)) / total
			if impurity < bestImpurity || !found {
				bestImpurity = impurity
				bestFeature = feature
				bestThreshold = cur + (next-cur)/2
				found = true
			}
		}
	}

	return bestFeature, bestThreshold, found
}

func (b *treeBuilder) counts(sample []int) []float64 {
	counts := make([]float64, b.classes)
	for _, i := range sample {
		counts[b.y[i]]++
	}
	return counts
}

func (b *treeBuilder) leafFrom(counts []float64, n int) *treeNode {
	dist := make([]float64, len(counts))
	if n > 0 {
		for c, v := range counts {
			dist[c] = v / float64(n)
		}
	}
	return &treeNode{dist: dist}
}

func pure(counts []float64) bool {
	nonZero := 0
	for _, c := range counts {
		if c > 0 {
			nonZero++
		}
	}
	return nonZero <= 1
}

func gini(counts []float64, n float64) float64 {
	if n == 0 {
		return 0
	}
	sum := 0.0
	for _, c := range counts {
		p := c / n
		sum += p * p
	}
	return 1 - sum
}
