package career

import (
	"cmp"
	"errors"
	"fmt"
	"math/rand/v2"
	"slices"
)

// ErrUnfitted is returned when a predictor is built without a classifier.
var ErrUnfitted = errors.New("career classifier is not fitted")

// Features is the classifier input derived from a candidate profile.
type Features struct {
	ExperienceYears  float64
	SkillCount       int
	HasDegree        bool
	HasCertification bool
}

func (f Features) vector() []float64 {
	return []float64{f.ExperienceYears, float64(f.SkillCount), boolToFloat(f.HasDegree), boolToFloat(f.HasCertification)}
}

func boolToFloat(b bool) float64 {
	if b {
		return 1
	}
	return 0
}

// RoleProbability is one ranked classifier output.
type RoleProbability struct {
	Role        string
	Probability float64
}

// Classifier ranks likely next roles for a profile.
type Classifier interface {
	PredictRoles(f Features, k int) []RoleProbability
}

// ModelConfig controls the startup fit.
type ModelConfig struct {
	Seed     uint64 `mapstructure:"seed"`
	Samples  int    `mapstructure:"samples"`
	Trees    int    `mapstructure:"trees"`
	MaxDepth int    `mapstructure:"max-depth"`
}

// DefaultModelConfig mirrors the reference training setup.
func DefaultModelConfig() ModelConfig {
	return ModelConfig{Seed: 42, Samples: 200, Trees: 100, MaxDepth: 10}
}

// Model is the fitted classifier bundle: scaler, label encoder and forest.
// It is immutable once FitModel returns and safe for concurrent use.
type Model struct {
	scaler  *Scaler
	encoder *LabelEncoder
	forest  *Forest
}

// FitModel trains a Model on synthetic profiles. The same config always
// yields the same model.
func FitModel(cfg ModelConfig) (*Model, error) {
	if cfg.Samples < 1 {
		return nil, fmt.Errorf("model: samples must be positive, got %d", cfg.Samples)
	}

	rng := rand.New(rand.NewPCG(cfg.Seed, cfg.Seed+1))
	profiles, labels := SyntheticProfiles(cfg.Samples, rng)

	rows := make([][]float64, len(profiles))
	for i, p := range profiles {
		rows[i] = p.vector()
	}

	scaler, err := FitScaler(rows)
	if err != nil {
		return nil, fmt.Errorf("model: %w", err)
	}
	for i := range rows {
		rows[i] = scaler.Transform(rows[i])
	}

	encoder := FitLabelEncoder(labels)
	y := make([]int, len(labels))
	for i, l := range labels {
		y[i], _ = encoder.Encode(l)
	}

	forest, err := FitForest(rows, y, encoder.Len(), ForestConfig{
		Trees:    cfg.Trees,
		MaxDepth: cfg.MaxDepth,
		Seed:     cfg.Seed,
	})
	if err != nil {
		return nil, fmt.Errorf("model: %w", err)
	}

	return &Model{scaler: scaler, encoder: encoder, forest: forest}, nil
}

var _ Classifier = (*Model)(nil)

// Classes returns the role labels the model can predict.
func (m *Model) Classes() []string {
	return slices.Clone(m.encoder.classes)
}

// PredictRoles returns up to k roles with non-zero probability, most likely
// first. Equal probabilities keep label order.
func (m *Model) PredictRoles(f Features, k int) []RoleProbability {
	proba := m.forest.PredictProba(m.scaler.Transform(f.vector()))

	out := make([]RoleProbability, 0, len(proba))
	for c, p := range proba {
		if p <= 0 {
			continue
		}
		out = append(out, RoleProbability{Role: m.encoder.Decode(c), Probability: p})
	}

	slices.SortStableFunc(out, func(a, b RoleProbability) int {
		return cmp.Compare(b.Probability, a.Probability)
	})

	if k > 0 && len(out) > k {
		out = out[:k]
	}
	return out
}
