package career

import (
	"encoding/json"
	"errors"
	"math"
	"reflect"
	"slices"
	"testing"
)

type stubClassifier struct {
	roles []RoleProbability
	got   *Features
}

func (s stubClassifier) PredictRoles(f Features, k int) []RoleProbability {
	if s.got != nil {
		*s.got = f
	}
	if k > 0 && len(s.roles) > k {
		return s.roles[:k]
	}
	return s.roles
}

func newStubPredictor(t *testing.T, roles ...RoleProbability) *Predictor {
	t.Helper()

	p, err := NewPredictor(stubClassifier{roles: roles})
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	return p
}

func TestMergeCandidatesKeepsMaximum(t *testing.T) {
	t.Parallel()

	rules := []Candidate{
		{Role: "tech lead", Probability: 0.6, Source: SourceCareerMap},
		{Role: "architect", Probability: 0.6, Source: SourceCareerMap},
	}
	model := []Candidate{
		{Role: "Tech Lead", Probability: 0.9, Source: SourceModel},
		{Role: "architect", Probability: 0.3, Source: SourceModel},
		{Role: "ml engineer", Probability: 0.2, Source: SourceModel},
	}

	got := MergeCandidates(rules, model)
	expect := []Candidate{
		{Role: "tech lead", Probability: 0.9, Source: SourceModel},
		{Role: "architect", Probability: 0.6, Source: SourceCareerMap},
		{Role: "ml engineer", Probability: 0.2, Source: SourceModel},
	}

	if !reflect.DeepEqual(got, expect) {
		t.Fatalf("expected %+v, got %+v", expect, got)
	}
}

func TestMergeCandidatesStableOnTies(t *testing.T) {
	t.Parallel()

	got := MergeCandidates(
		[]Candidate{{Role: "b", Probability: 0.5}, {Role: "a", Probability: 0.5}},
		[]Candidate{{Role: "c", Probability: 0.5}},
	)

	roles := []string{got[0].Role, got[1].Role, got[2].Role}
	if !reflect.DeepEqual(roles, []string{"b", "a", "c"}) {
		t.Fatalf("expected first-seen order on ties, got %v", roles)
	}
}

func TestNewPredictorRequiresClassifier(t *testing.T) {
	t.Parallel()

	if _, err := NewPredictor(nil); !errors.Is(err, ErrUnfitted) {
		t.Fatalf("expected ErrUnfitted, got %v", err)
	}
}

func TestPredictUnknownRoleUsesClassifier(t *testing.T) {
	t.Parallel()

	var seen Features
	p, err := NewPredictor(stubClassifier{
		roles: []RoleProbability{
			{Role: "senior developer", Probability: 0.55},
			{Role: "full stack developer", Probability: 0.3},
		},
		got: &seen,
	})
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}

	res := p.Predict(Request{CurrentRole: "Java Developer", Skills: []string{"java"}, ExperienceYears: 3})

	if seen.SkillCount != 1 || seen.ExperienceYears != 3 || seen.HasDegree || seen.HasCertification {
		t.Fatalf("unexpected classifier features: %+v", seen)
	}
	if len(res.PredictedRoles) != 2 {
		t.Fatalf("expected two predicted roles, got %+v", res.PredictedRoles)
	}

	top := res.PredictedRoles[0]
	if top.Role != "senior developer" || top.Source != SourceModel || top.Confidence != "medium" {
		t.Fatalf("unexpected top role: %+v", top)
	}
	if top.RequiredExperience != 5 || len(top.SkillGaps) != 7 || len(top.MatchedSkills) != 0 {
		t.Fatalf("unexpected role analysis: %+v", top)
	}
	// 0.5*0 + 0.3*(3/5) + 0.2*0
	if top.ReadinessScore != 18 {
		t.Fatalf("expected readiness 18, got %v", top.ReadinessScore)
	}

	if len(res.LearningPath) != 5 {
		t.Fatalf("expected five learning steps, got %d", len(res.LearningPath))
	}
	first := res.LearningPath[0]
	if first.Step != 1 || first.Skill != "system design" || first.Priority != "High priority" {
		t.Fatalf("unexpected first step: %+v", first)
	}
	if first.Resources[0] != "System Design Primer" {
		t.Fatalf("unexpected resources: %v", first.Resources)
	}
	if first.Reason != "Critical for senior developer to architect scalable solutions" {
		t.Fatalf("unexpected reason: %q", first.Reason)
	}
	for _, step := range res.LearningPath {
		if step.Priority != "High priority" {
			t.Fatalf("expected uniform priority, got %+v", step)
		}
	}

	if res.Timeline != "1-2 years" {
		t.Fatalf("expected 1-2 years, got %q", res.Timeline)
	}
	if res.SalaryGrowth.CurrentRange != "₹5-10 LPA" || res.SalaryGrowth.TargetRange != "₹8-15 LPA" {
		t.Fatalf("unexpected salary ranges: %+v", res.SalaryGrowth)
	}
	if res.SalaryGrowth.GrowthPercent != 46.7 || res.SalaryGrowth.ExpectedGrowth != "+46.7%" {
		t.Fatalf("unexpected salary growth: %+v", res.SalaryGrowth)
	}
}

func TestPredictFullyUnknown(t *testing.T) {
	t.Parallel()

	p := newStubPredictor(t)
	res := p.Predict(Request{CurrentRole: "Astronaut", ExperienceYears: 1})

	if len(res.PredictedRoles) != 0 || len(res.LearningPath) != 0 {
		t.Fatalf("expected no roles and no path, got %+v", res)
	}
	if res.Timeline != "2-3 years" {
		t.Fatalf("expected fallback timeline, got %q", res.Timeline)
	}
	if res.CurrentRole != "Astronaut" {
		t.Fatalf("expected current role echoed, got %q", res.CurrentRole)
	}
}

func TestPredictRuleTransitions(t *testing.T) {
	t.Parallel()

	p := newStubPredictor(t, RoleProbability{Role: "senior developer", Probability: 0.9})
	res := p.Predict(Request{
		CurrentRole:     " Junior  Developer ",
		Skills:          []string{"System Design", "git"},
		ExperienceYears: 2,
		Education:       "B.Tech",
		Certifications:  []string{"AWS"},
	})

	roles := make([]string, 0, len(res.PredictedRoles))
	for _, r := range res.PredictedRoles {
		roles = append(roles, r.Role)
	}
	expect := []string{"senior developer", "full stack developer", "backend developer"}
	if !reflect.DeepEqual(roles, expect) {
		t.Fatalf("expected %v, got %v", expect, roles)
	}

	top := res.PredictedRoles[0]
	if top.Probability != 0.9 || top.Confidence != "high" || top.Source != SourceModel {
		t.Fatalf("expected classifier probability to win, got %+v", top)
	}
	if res.PredictedRoles[1].Source != SourceCareerMap || res.PredictedRoles[1].Confidence != "medium" {
		t.Fatalf("unexpected rule role: %+v", res.PredictedRoles[1])
	}
	if !slices.Contains(top.MatchedSkills, "system design") {
		t.Fatalf("expected case-insensitive skill match, got %v", top.MatchedSkills)
	}
	if res.PredictedRoles[2].ReadinessScore != 50 {
		t.Fatalf("expected readiness 50 for role without profile, got %v", res.PredictedRoles[2].ReadinessScore)
	}
	if res.LearningPath[0].Skill != "mentoring" {
		t.Fatalf("expected held skills skipped, got %+v", res.LearningPath[0])
	}

	sg := res.SalaryGrowth
	if sg.CurrentRange != "₹3.5-6 LPA" || sg.GrowthPercent != 144.4 || sg.AbsoluteIncrease != "₹6.5 LPA" {
		t.Fatalf("unexpected salary growth: %+v", sg)
	}

	if res.Recommendations[0] != "Focus on transitioning to senior developer - highest probability match" {
		t.Fatalf("unexpected first recommendation: %q", res.Recommendations[0])
	}
	if !slices.Contains(res.Recommendations, "Expand your skill set - aim for 10-15 relevant skills") {
		t.Fatalf("expected breadth nudge, got %v", res.Recommendations)
	}
}

func TestPredictExperienceRoles(t *testing.T) {
	t.Parallel()

	p := newStubPredictor(t)
	res := p.Predict(Request{CurrentRole: "senior developer", ExperienceYears: 7})

	got := map[string]Source{}
	for _, r := range res.PredictedRoles {
		got[r.Role] = r.Source
	}

	if got["tech lead"] != SourceCareerMap {
		t.Fatalf("expected curated transition to keep its higher prior, got %v", got)
	}
	if got["senior data scientist"] != SourceExperience {
		t.Fatalf("expected experience based suggestion, got %v", got)
	}
	if !slices.Contains(res.Recommendations, "Consider management or senior technical tracks") {
		t.Fatalf("expected senior track recommendation, got %v", res.Recommendations)
	}
}

func TestTimelineFor(t *testing.T) {
	t.Parallel()

	tests := []struct {
		gap    float64
		expect string
	}{
		{gap: -4, expect: "6-12 months"},
		{gap: 1, expect: "6-12 months"},
		{gap: 1.5, expect: "1-2 years"},
		{gap: 3, expect: "1-2 years"},
		{gap: 3.5, expect: "2-3 years"},
	}

	for _, tt := range tests {
		if got := TimelineFor(tt.gap); got != tt.expect {
			t.Fatalf("gap %v: expected %q, got %q", tt.gap, tt.expect, got)
		}
	}
}

func TestScaler(t *testing.T) {
	t.Parallel()

	s, err := FitScaler([][]float64{{1, 7}, {3, 7}})
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}

	got := s.Transform([]float64{3, 7})
	if got[0] != 1 || got[1] != 0 {
		t.Fatalf("expected [1 0], got %v", got)
	}

	if _, err := FitScaler([][]float64{{1, 2}, {1}}); err == nil {
		t.Fatalf("expected error for ragged rows")
	}
}

func TestLabelEncoder(t *testing.T) {
	t.Parallel()

	e := FitLabelEncoder([]string{"tech lead", "architect", "tech lead"})
	if e.Len() != 2 || e.Decode(0) != "architect" {
		t.Fatalf("unexpected classes: %v", e.classes)
	}
	if i, ok := e.Encode("tech lead"); !ok || i != 1 {
		t.Fatalf("unexpected encoding: %d %v", i, ok)
	}
}

func TestForestSeparatesClasses(t *testing.T) {
	t.Parallel()

	x := [][]float64{{0, 1}, {0.1, 0}, {0.2, 1}, {0.9, 0}, {1, 1}, {1.1, 0}}
	y := []int{0, 0, 0, 1, 1, 1}

	f, err := FitForest(x, y, 2, ForestConfig{Trees: 25, MaxDepth: 3, Seed: 7})
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}

	low := f.PredictProba([]float64{0.05, 0.5})
	high := f.PredictProba([]float64{1.05, 0.5})
	if low[0] <= low[1] || high[1] <= high[0] {
		t.Fatalf("expected separable predictions, got low=%v high=%v", low, high)
	}
	if math.Abs(low[0]+low[1]-1) > 1e-9 {
		t.Fatalf("expected a distribution, got %v", low)
	}
}

func TestFitModelIsDeterministic(t *testing.T) {
	t.Parallel()

	cfg := DefaultModelConfig()
	cfg.Trees = 20

	a, err := FitModel(cfg)
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	b, err := FitModel(cfg)
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}

	f := Features{ExperienceYears: 6, SkillCount: 9, HasDegree: true}
	if !reflect.DeepEqual(a.PredictRoles(f, 5), b.PredictRoles(f, 5)) {
		t.Fatalf("expected identical predictions from identical configs")
	}

	ref := DefaultReference()
	for _, role := range a.Classes() {
		if _, ok := ref.Profile(role); !ok {
			t.Fatalf("classifier role %q has no profile", role)
		}
	}

	preds := a.PredictRoles(f, 3)
	if len(preds) == 0 || len(preds) > 3 {
		t.Fatalf("expected 1-3 predictions, got %v", preds)
	}
	for i := 1; i < len(preds); i++ {
		if preds[i].Probability > preds[i-1].Probability {
			t.Fatalf("expected descending probabilities, got %v", preds)
		}
	}

	if _, err := FitModel(ModelConfig{}); err == nil {
		t.Fatalf("expected error for zero samples")
	}
}

func TestPredictWithFittedModel(t *testing.T) {
	t.Parallel()

	cfg := DefaultModelConfig()
	cfg.Trees = 30

	model, err := FitModel(cfg)
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	p, err := NewPredictor(model)
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}

	req := Request{CurrentRole: "Java Developer", Skills: []string{"java"}, ExperienceYears: 3}
	res := p.Predict(req)

	if len(res.PredictedRoles) == 0 {
		t.Fatalf("expected predicted roles")
	}
	if len(res.LearningPath) == 0 {
		t.Fatalf("expected a learning path")
	}
	if !slices.Contains(Timelines, res.Timeline) {
		t.Fatalf("unexpected timeline %q", res.Timeline)
	}

	first, _ := json.Marshal(res)
	second, _ := json.Marshal(p.Predict(req))
	if string(first) != string(second) {
		t.Fatalf("expected identical output for identical input")
	}
}

func TestPredictRequiredCertifications(t *testing.T) {
	t.Parallel()

	tests := []struct {
		role   string
		expect []string
	}{
		{role: "full stack developer", expect: []string{"Full Stack Web Development", "Cloud Practitioner"}},
		{role: "data scientist", expect: []string{"Google Data Analytics", "AWS ML Specialty"}},
		{role: "ml engineer", expect: []string{"TensorFlow Developer", "AWS ML Specialty"}},
	}

	for _, tt := range tests {
		t.Run(tt.role, func(t *testing.T) {
			t.Parallel()

			p := newStubPredictor(t, RoleProbability{Role: tt.role, Probability: 0.7})
			res := p.Predict(Request{CurrentRole: "Astronaut", ExperienceYears: 1})

			if len(res.PredictedRoles) != 1 || res.PredictedRoles[0].Role != tt.role {
				t.Fatalf("unexpected roles: %+v", res.PredictedRoles)
			}
			if got := res.PredictedRoles[0].RequiredCertifications; !reflect.DeepEqual(got, tt.expect) {
				t.Fatalf("expected certifications %v, got %v", tt.expect, got)
			}
		})
	}
}
