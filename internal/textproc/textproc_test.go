package textproc

import (
	"errors"
	"math"
	"reflect"
	"testing"
)

func TestNormalize(t *testing.T) {
	t.Parallel()

	tests := []struct {
		name   string
		input  string
		expect string
	}{
		{
			name:   "collapses whitespace",
			input:  "  Go\t\tdeveloper\n\nwith   Docker ",
			expect: "Go developer with Docker",
		},
		{
			name:   "keeps skill punctuation",
			input:  "C++, C#, Node.js and front-end",
			expect: "C++, C#, Node.js and front-end",
		},
		{
			name:   "strips other symbols",
			input:  "Email: dev@example.com (CI/CD!)",
			expect: "Email devexample.com CICD",
		},
		{
			name:   "empty stays empty",
			input:  "   ",
			expect: "",
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			t.Parallel()
			if got := Normalize(tt.input); got != tt.expect {
				t.Fatalf("expected %q, got %q", tt.expect, got)
			}
		})
	}
}

func TestNGramsSkipsStopWordsBeforeJoining(t *testing.T) {
	t.Parallel()

	tokens := Tokenize("The senior Go developer of the team")
	got := NGrams(tokens, 1, 2, EnglishStopWords)
	expect := []string{"senior", "developer", "team", "senior developer", "developer team"}

	if !reflect.DeepEqual(got, expect) {
		t.Fatalf("expected %v, got %v", expect, got)
	}
}

func TestSimilarity(t *testing.T) {
	t.Parallel()

	v := NewVectorizer()

	same, err := v.Similarity("python docker kubernetes", "python docker kubernetes")
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if math.Abs(same-1) > 1e-9 {
		t.Fatalf("expected identical documents to have similarity 1, got %v", same)
	}

	disjoint, err := v.Similarity("python docker", "accounting payroll")
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if disjoint != 0 {
		t.Fatalf("expected disjoint documents to have similarity 0, got %v", disjoint)
	}

	partial, err := v.Similarity("python developer docker", "senior python developer kubernetes")
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if partial <= 0 || partial >= 1 {
		t.Fatalf("expected partial overlap in (0,1), got %v", partial)
	}
}

func TestSimilarityEmptyVocabulary(t *testing.T) {
	t.Parallel()

	_, err := NewVectorizer().Similarity("the and of", "")
	if !errors.Is(err, ErrEmptyVocabulary) {
		t.Fatalf("expected ErrEmptyVocabulary, got %v", err)
	}
}

func TestFitTransformRespectsMaxFeatures(t *testing.T) {
	t.Parallel()

	v := NewVectorizer()
	v.MaxFeatures = 2
	v.NGramMax = 1

	vectors, vocab, err := v.FitTransform("alpha alpha beta gamma", "alpha beta delta")
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}

	if !reflect.DeepEqual(vocab, []string{"alpha", "beta"}) {
		t.Fatalf("expected most frequent terms, got %v", vocab)
	}
	if len(vectors) != 2 || len(vectors[0]) != 2 {
		t.Fatalf("unexpected vector shape: %v", vectors)
	}
}

func TestCosineZeroVector(t *testing.T) {
	t.Parallel()

	if got := Cosine([]float64{0, 0}, []float64{1, 0}); got != 0 {
		t.Fatalf("expected 0 for zero vector, got %v", got)
	}
}
