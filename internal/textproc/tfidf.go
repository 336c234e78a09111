package textproc

import (
	"errors"
	"math"
	"sort"

	"gonum.org/v1/gonum/floats"
)

// ErrEmptyVocabulary is returned when the documents contain no usable terms,
// e.g. only stop words or punctuation.
var ErrEmptyVocabulary = errors.New("empty vocabulary: documents contain only stop words or no terms")

const (
	defaultMaxFeatures = 500
)

// Vectorizer builds smoothed TF-IDF vectors (l2-normalized) over a small set of
// documents. It holds no fitted state: every call fits a fresh vocabulary over
// exactly the documents it is given.
type Vectorizer struct {
	MaxFeatures int
	NGramMin    int
	NGramMax    int
	StopWords   map[string]struct{}
}

// NewVectorizer returns a vectorizer with unigrams and bigrams, English stop
// words and at most 500 features.
func NewVectorizer() Vectorizer {
	return Vectorizer{
		MaxFeatures: defaultMaxFeatures,
		NGramMin:    1,
		NGramMax:    2,
		StopWords:   EnglishStopWords,
	}
}

// FitTransform fits the vocabulary over docs and returns one vector per
// document together with the sorted vocabulary.
func (v Vectorizer) FitTransform(docs ...string) ([][]float64, []string, error) {
	counts := make([]map[string]int, len(docs))
	totals := make(map[string]int)
	df := make(map[string]int)

	for i, doc := range docs {
		counts[i] = make(map[string]int)
		for _, gram := range NGrams(Tokenize(doc), v.NGramMin, v.NGramMax, v.StopWords) {
			counts[i][gram]++
			totals[gram]++
		}
		for term := range counts[i] {
			df[term]++
		}
	}

	if len(totals) == 0 {
		return nil, nil, ErrEmptyVocabulary
	}

	vocab := make([]string, 0, len(totals))
	for term := range totals {
		vocab = append(vocab, term)
	}

	if v.MaxFeatures > 0 && len(vocab) > v.MaxFeatures {
		sort.Slice(vocab, func(i, j int) bool {
			if totals[vocab[i]] != totals[vocab[j]] {
				return totals[vocab[i]] > totals[vocab[j]]
			}
			return vocab[i] < vocab[j]
		})
		vocab = vocab[:v.MaxFeatures]
	}
	sort.Strings(vocab)

	n := float64(len(docs))
	idf := make([]float64, len(vocab))
	for j, term := range vocab {
		idf[j] = math.Log((1+n)/(1+float64(df[term]))) + 1
	}

	vectors := make([][]float64, len(docs))
	for i := range docs {
		vec := make([]float64, len(vocab))
		for j, term := range vocab {
			vec[j] = float64(counts[i][term]) * idf[j]
		}
		if norm := floats.Norm(vec, 2); norm > 0 {
			floats.Scale(1/norm, vec)
		}
		vectors[i] = vec
	}

	return vectors, vocab, nil
}

// Similarity fits the vectorizer over exactly the two documents and returns
// the cosine similarity of their TF-IDF vectors, in [0, 1].
func (v Vectorizer) Similarity(a, b string) (float64, error) {
	vectors, _, err := v.FitTransform(a, b)
	if err != nil {
		return 0, err
	}
	return Cosine(vectors[0], vectors[1]), nil
}

// Cosine returns the cosine similarity of two equally sized vectors. Zero
// vectors have similarity 0.
func Cosine(a, b []float64) float64 {
	na, nb := floats.Norm(a, 2), floats.Norm(b, 2)
	if na == 0 || nb == 0 {
		return 0
	}
	sim := floats.Dot(a, b) / (na * nb)
	// guard against rounding drift just above 1
	return math.Min(sim, 1)
}
