package matcher

import (
	"errors"
	"fmt"
	"strings"

	"github.com/spigell/jobmate/internal/textproc"
)

// ErrEmptyVocabulary is returned when neither text has a single usable term.
var ErrEmptyVocabulary = textproc.ErrEmptyVocabulary

// ErrUnsupportedStrategy is returned for skill strategies this build does not ship.
var ErrUnsupportedStrategy = errors.New("unsupported skill matching strategy")

// Strategy selects how résumé skills are compared with job skills.
type Strategy string

const (
	// StrategyExact compares normalized skill strings for equality.
	StrategyExact Strategy = "exact"
	// StrategySemantic is reserved for embedding based matching and is rejected.
	StrategySemantic Strategy = "semantic"
)

// ParseStrategy maps a config value onto a Strategy. Empty means exact.
func ParseStrategy(s string) (Strategy, error) {
	switch Strategy(strings.ToLower(strings.TrimSpace(s))) {
	case "", StrategyExact:
		return StrategyExact, nil
	case StrategySemantic:
		return "", fmt.Errorf("%w: %s", ErrUnsupportedStrategy, s)
	default:
		return "", fmt.Errorf("%w: %q", ErrUnsupportedStrategy, s)
	}
}

// Input is a single résumé/job pair.
type Input struct {
	ResumeText         string
	JobDescription     string
	JobSkills          []string
	RequiredExperience float64
	JobTitle           string
}

// Result is the immutable outcome of one match. Scores are percentages with
// two decimals.
type Result struct {
	OverallScore             float64  `json:"overall_match_score"`
	SkillScore               float64  `json:"skill_match_score"`
	ExperienceScore          float64  `json:"experience_match_score"`
	TFIDFScore               float64  `json:"tfidf_similarity_score"`
	MatchedSkills            []string `json:"matched_skills"`
	MissingSkills            []string `json:"missing_skills"`
	CandidateExperienceYears float64  `json:"candidate_experience_years"`
	RequiredExperienceYears  float64  `json:"required_experience_years"`
	ExperienceGap            float64  `json:"experience_gap"`
	ATSScore                 float64  `json:"ats_score"`
	Explanation              string   `json:"explanation"`
	Recommendations          []string `json:"recommendation"`
	FeatureWeights           Weights  `json:"feature_weights"`
}

// Band returns the qualitative bucket of the overall score.
func (r *Result) Band() Band {
	return BandFor(r.OverallScore / 100)
}

// Matcher scores résumés against jobs. It holds only read-only state and is
// safe for concurrent use.
type Matcher struct {
	vocab    *Vocabulary
	strategy Strategy
	weights  Weights
	newVec   func() textproc.Vectorizer
}

// Option configures a Matcher.
type Option func(*Matcher) error

// WithStrategy sets the skill comparison strategy.
func WithStrategy(s string) Option {
	return func(m *Matcher) error {
		strategy, err := ParseStrategy(s)
		if err != nil {
			return err
		}
		m.strategy = strategy
		return nil
	}
}

// WithVocabulary replaces the built-in skill vocabulary.
func WithVocabulary(v *Vocabulary) Option {
	return func(m *Matcher) error {
		if v == nil || v.Len() == 0 {
			return errors.New("skill vocabulary is empty")
		}
		m.vocab = v
		return nil
	}
}

// New builds a Matcher with the default vocabulary and exact matching.
func New(opts ...Option) (*Matcher, error) {
	m := &Matcher{
		vocab:    DefaultVocabulary(),
		strategy: StrategyExact,
		weights:  DefaultWeights,
		newVec:   textproc.NewVectorizer,
	}

	for _, opt := range opts {
		if err := opt(m); err != nil {
			return nil, err
		}
	}

	return m, nil
}

// Strategy reports the active skill strategy.
func (m *Matcher) Strategy() Strategy {
	return m.strategy
}

// Skills returns the known skills found in raw text.
func (m *Matcher) Skills(text string) []string {
	return m.vocab.Extract(textproc.Normalize(text))
}

// ExperienceYears extracts years of experience the same way Match does.
func (m *Matcher) ExperienceYears(text string) float64 {
	return ExtractExperienceYears(textproc.Normalize(text))
}

// Match scores one résumé against one job. The only failure is a text pair
// without any usable term for similarity.
func (m *Matcher) Match(in Input) (*Result, error) {
	resume := textproc.Normalize(in.ResumeText)
	job := textproc.Normalize(in.JobDescription)

	candidateSkills := m.vocab.Extract(resume)
	skill, matched, missing := SkillScore(candidateSkills, in.JobSkills)

	candidateYears := ExtractExperienceYears(resume)
	required := in.RequiredExperience
	if required < 0 {
		required = 0
	}
	experience := ExperienceScore(candidateYears, required)

	text, err := m.newVec().Similarity(resume, job)
	if err != nil {
		return nil, fmt.Errorf("text similarity: %w", err)
	}

	overall := m.weights.Blend(skill, experience, text)
	gap := required - candidateYears
	if gap < 0 {
		gap = 0
	}

	return &Result{
		OverallScore:             percent(overall),
		SkillScore:               percent(skill),
		ExperienceScore:          percent(experience),
		TFIDFScore:               percent(text),
		MatchedSkills:            matched,
		MissingSkills:            missing,
		CandidateExperienceYears: candidateYears,
		RequiredExperienceYears:  required,
		ExperienceGap:            round(gap, 2),
		ATSScore:                 ATSScore(in.ResumeText, in.JobSkills),
		Explanation:              explain(overall, matched, missing, candidateYears, required, in.JobTitle),
		Recommendations:          recommend(overall, missing, candidateYears, required),
		FeatureWeights:           m.weights,
	}, nil
}
