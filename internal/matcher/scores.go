package matcher

import (
	"math"
	"strings"
)

// Weights are the fixed blend weights of the overall match score.
type Weights struct {
	Skills     float64 `json:"skills"`
	Experience float64 `json:"experience"`
	TFIDF      float64 `json:"tfidf"`
}

// DefaultWeights favours skill overlap; experience and text similarity share
// the rest.
var DefaultWeights = Weights{
	Skills:     0.50,
	Experience: 0.25,
	TFIDF:      0.25,
}

// Blend returns the weighted overall score of the three dimensions (0-1).
func (w Weights) Blend(skill, experience, text float64) float64 {
	return w.Skills*skill + w.Experience*experience + w.TFIDF*text
}

// RequiredSkills lowercases, trims and deduplicates a declared skill list,
// keeping the declared order.
func RequiredSkills(skills []string) []string {
	seen := make(map[string]struct{}, len(skills))
	out := make([]string, 0, len(skills))
	for _, s := range skills {
		s = strings.ToLower(strings.TrimSpace(s))
		if s == "" {
			continue
		}
		if _, ok := seen[s]; ok {
			continue
		}
		seen[s] = struct{}{}
		out = append(out, s)
	}
	return out
}

// SkillScore compares the candidate's skills with the job's required skills.
// The score is |matched| / |required|, and 1 when the job requires nothing.
// Matched and missing skills keep the job's declared order.
func SkillScore(candidate, required []string) (score float64, matched, missing []string) {
	have := make(map[string]struct{}, len(candidate))
	for _, s := range candidate {
		have[strings.ToLower(strings.TrimSpace(s))] = struct{}{}
	}

	req := RequiredSkills(required)
	matched = make([]string, 0, len(req))
	missing = make([]string, 0, len(req))

	for _, s := range req {
		if _, ok := have[s]; ok {
			matched = append(matched, s)
		} else {
			missing = append(missing, s)
		}
	}

	if len(req) == 0 {
		return 1, matched, missing
	}
	return float64(len(matched)) / float64(len(req)), matched, missing
}

// ExperienceScore returns min(candidate/required, 1), and 1 when nothing is
// required.
func ExperienceScore(candidate, required float64) float64 {
	if required <= 0 {
		return 1
	}
	if candidate >= required {
		return 1
	}
	if candidate <= 0 {
		return 0
	}
	return candidate / required
}

func round(v float64, places int) float64 {
	p := math.Pow(10, float64(places))
	return math.Round(v*p) / p
}

func percent(v float64) float64 {
	return round(v*100, 2)
}
