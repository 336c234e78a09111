package matcher

import (
	"strings"

	"github.com/spigell/jobmate/internal/textproc"
)

// defaultSkills is the curated list of technical terms the extractor knows
// about. Skills outside this list are never extracted, so recall is bounded by
// its coverage.
var defaultSkills = []string{
	"python", "java", "javascript", "typescript", "react", "angular", "vue",
	"node.js", "express", "django", "flask", "fastapi", "spring boot",
	"mongodb", "postgresql", "mysql", "redis", "sql", "graphql", "rest api",
	"docker", "kubernetes", "terraform", "jenkins", "aws", "azure", "gcp",
	"git", "ci/cd", "linux", "agile", "scrum", "microservices",
	"machine learning", "deep learning", "tensorflow", "pytorch",
	"scikit-learn", "pandas", "numpy", "html", "css", "c++", "c#", "go",
	"rust", "swift", "kotlin",
}

type vocabTerm struct {
	name   string
	needle string
}

// Vocabulary is an immutable list of known skill terms.
type Vocabulary struct {
	terms []vocabTerm
}

// NewVocabulary builds a vocabulary from the given terms. Terms are lowercased
// and deduplicated; each is matched in its normalized form so that "ci/cd"
// still matches text that went through normalization.
func NewVocabulary(terms []string) *Vocabulary {
	seen := make(map[string]struct{}, len(terms))
	v := &Vocabulary{terms: make([]vocabTerm, 0, len(terms))}

	for _, term := range terms {
		name := strings.ToLower(strings.TrimSpace(term))
		if name == "" {
			continue
		}
		if _, ok := seen[name]; ok {
			continue
		}
		seen[name] = struct{}{}

		needle := strings.ToLower(textproc.Normalize(name))
		if needle == "" {
			continue
		}
		v.terms = append(v.terms, vocabTerm{name: name, needle: needle})
	}

	return v
}

// DefaultVocabulary returns the built-in technical skill vocabulary.
func DefaultVocabulary() *Vocabulary {
	return NewVocabulary(defaultSkills)
}

// Len returns the number of known terms.
func (v *Vocabulary) Len() int {
	return len(v.terms)
}

// Extract returns the known skills contained in normalized text, in
// vocabulary order. Matching is a case-insensitive substring test, so short
// terms also hit inside longer words ("java" in "javascript"). Skills outside
// the vocabulary are never found.
func (v *Vocabulary) Extract(normalized string) []string {
	lower := strings.ToLower(normalized)
	found := make([]string, 0)

	for _, term := range v.terms {
		if strings.Contains(lower, term.needle) {
			found = append(found, term.name)
		}
	}

	return found
}
