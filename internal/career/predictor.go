package career

import (
	"cmp"
	"fmt"
	"math"
	"slices"
	"strconv"
	"strings"
)

// Source names where a predicted role came from.
type Source string

const (
	SourceCareerMap  Source = "career_map"
	SourceExperience Source = "experience"
	SourceModel      Source = "ml_model"
)

const (
	defaultRulePrior       = 0.6
	defaultExperiencePrior = 0.5
	defaultTopK            = 5
	seniorExperienceYears  = 5
	analyzedRoles          = 5
	roleGapLimit           = 10
	learningPathLimit      = 5
	skillBreadthThreshold  = 8
	highConfidence         = 0.6
	unprofiledReadiness    = 50
	fallbackTimeline       = "2-3 years"
)

var experienceRoles = []string{"senior developer", "tech lead", "senior data scientist"}

// Timeline buckets, shortest first.
var Timelines = []string{"6-12 months", "1-2 years", "2-3 years"}

// Request is a candidate profile to predict for.
type Request struct {
	CurrentRole     string
	Skills          []string
	ExperienceYears float64
	Education       string
	Certifications  []string
}

// Candidate is a scored role before role-fit analysis.
type Candidate struct {
	Role        string
	Probability float64
	Source      Source
}

// PredictedRole is a ranked role with its fit analysis.
type PredictedRole struct {
	Role                   string   `json:"role"`
	Probability            float64  `json:"probability"`
	Confidence             string   `json:"confidence"`
	Source                 Source   `json:"source"`
	SkillGaps              []string `json:"skill_gaps"`
	MatchedSkills          []string `json:"matched_skills"`
	ReadinessScore         float64  `json:"readiness_score"`
	RequiredCertifications []string `json:"required_certifications"`
	RequiredExperience     float64  `json:"required_experience"`
}

// LearningStep is one skill to acquire on the way to the target role.
type LearningStep struct {
	Step      int      `json:"step"`
	Skill     string   `json:"skill"`
	Priority  string   `json:"priority"`
	Resources []string `json:"resources"`
	Reason    string   `json:"reason"`
}

// SalaryGrowth compares average salaries of the current and target roles.
type SalaryGrowth struct {
	CurrentRange     string  `json:"current_salary_range"`
	TargetRange      string  `json:"target_salary_range"`
	GrowthPercent    float64 `json:"growth_percent"`
	ExpectedGrowth   string  `json:"expected_growth"`
	AbsoluteIncrease string  `json:"absolute_increase"`
}

// Prediction is the full career outlook for one request.
type Prediction struct {
	CurrentRole     string          `json:"current_role"`
	PredictedRoles  []PredictedRole `json:"predicted_roles"`
	LearningPath    []LearningStep  `json:"learning_path"`
	SalaryGrowth    SalaryGrowth    `json:"salary_growth"`
	Timeline        string          `json:"timeline"`
	Recommendations []string        `json:"recommendations"`
}

// TopRole returns the highest ranked role, or "" when there is none.
func (p *Prediction) TopRole() string {
	if len(p.PredictedRoles) == 0 {
		return ""
	}
	return p.PredictedRoles[0].Role
}

// Predictor merges curated transitions with classifier output. It only
// reads shared state and is safe for concurrent use.
type Predictor struct {
	ref             *Reference
	clf             Classifier
	topK            int
	rulePrior       float64
	experiencePrior float64
}

// PredictorOption configures a Predictor.
type PredictorOption func(*Predictor)

// WithReference replaces the built-in reference tables.
func WithReference(ref *Reference) PredictorOption {
	return func(p *Predictor) {
		if ref != nil {
			p.ref = ref
		}
	}
}

// WithTopK limits how many classifier roles are merged.
func WithTopK(k int) PredictorOption {
	return func(p *Predictor) {
		if k > 0 {
			p.topK = k
		}
	}
}

// NewPredictor wires a fitted classifier into a predictor.
func NewPredictor(clf Classifier, opts ...PredictorOption) (*Predictor, error) {
	if clf == nil {
		return nil, ErrUnfitted
	}

	p := &Predictor{
		ref:             DefaultReference(),
		clf:             clf,
		topK:            defaultTopK,
		rulePrior:       defaultRulePrior,
		experiencePrior: defaultExperiencePrior,
	}
	for _, opt := range opts {
		opt(p)
	}

	return p, nil
}

// Reference exposes the tables the predictor reads.
func (p *Predictor) Reference() *Reference {
	return p.ref
}

// Predict never fails: unknown roles fall back to classifier output and
// default salary and timeline values.
func (p *Predictor) Predict(req Request) *Prediction {
	current := NormalizeRole(req.CurrentRole)
	skills := nonEmpty(req.Skills)
	certs := nonEmpty(req.Certifications)

	rules := p.ruleCandidates(current, req.ExperienceYears)

	var model []Candidate
	for _, rp := range p.clf.PredictRoles(Features{
		ExperienceYears:  req.ExperienceYears,
		SkillCount:       len(skills),
		HasDegree:        strings.TrimSpace(req.Education) != "",
		HasCertification: len(certs) > 0,
	}, p.topK) {
		model = append(model, Candidate{Role: rp.Role, Probability: rp.Probability, Source: SourceModel})
	}

	merged := MergeCandidates(rules, model)

	predicted := make([]PredictedRole, 0, min(len(merged), analyzedRoles))
	for _, c := range merged[:min(len(merged), analyzedRoles)] {
		predicted = append(predicted, p.analyze(c, skills, certs, req.ExperienceYears))
	}

	target := current
	if len(merged) > 0 {
		target = merged[0].Role
	}

	return &Prediction{
		CurrentRole:     req.CurrentRole,
		PredictedRoles:  predicted,
		LearningPath:    p.learningPath(target, skills),
		SalaryGrowth:    p.salaryGrowth(current, target),
		Timeline:        p.timeline(target, req.ExperienceYears),
		Recommendations: p.recommendations(merged, skills, req.ExperienceYears),
	}
}

func (p *Predictor) ruleCandidates(current string, years float64) []Candidate {
	var out []Candidate
	for _, role := range p.ref.Transitions(current) {
		out = append(out, Candidate{Role: role, Probability: p.rulePrior, Source: SourceCareerMap})
	}
	if years >= seniorExperienceYears {
		for _, role := range experienceRoles {
			out = append(out, Candidate{Role: role, Probability: p.experiencePrior, Source: SourceExperience})
		}
	}
	return out
}

// MergeCandidates unions candidate lists. A role seen more than once keeps
// its highest probability and the source that produced it. The result is
// sorted by probability, descending; ties keep first-seen order.
func MergeCandidates(lists ...[]Candidate) []Candidate {
	var merged []Candidate
	pos := make(map[string]int)

	for _, list := range lists {
		for _, c := range list {
			c.Role = NormalizeRole(c.Role)
			if i, ok := pos[c.Role]; ok {
				if c.Probability > merged[i].Probability {
					merged[i].Probability = c.Probability
					merged[i].Source = c.Source
				}
				continue
			}
			pos[c.Role] = len(merged)
			merged = append(merged, c)
		}
	}

	slices.SortStableFunc(merged, func(a, b Candidate) int {
		return cmp.Compare(b.Probability, a.Probability)
	})
	return merged
}

func (p *Predictor) analyze(c Candidate, skills, certs []string, years float64) PredictedRole {
	out := PredictedRole{
		Role:                   c.Role,
		Probability:            round(c.Probability, 4),
		Confidence:             "medium",
		Source:                 c.Source,
		SkillGaps:              []string{},
		MatchedSkills:          []string{},
		ReadinessScore:         unprofiledReadiness,
		RequiredCertifications: []string{},
	}
	if c.Probability > highConfidence {
		out.Confidence = "high"
	}

	profile, ok := p.ref.Profile(c.Role)
	if !ok {
		return out
	}

	matched, gaps := splitSkills(profile.Skills(), skills)
	skillScore := float64(len(matched)) / math.Max(float64(len(profile.Skills())), 1)
	experienceScore := 1.0
	if profile.MinExperience > 0 {
		experienceScore = math.Min(1, years/profile.MinExperience)
	}
	certScore := 0.0
	if len(certs) > 0 {
		certScore = 0.5
	}

	out.MatchedSkills = matched
	out.SkillGaps = gaps[:min(len(gaps), roleGapLimit)]
	out.ReadinessScore = round((0.5*skillScore+0.3*experienceScore+0.2*certScore)*100, 2)
	if profile.Certifications != nil {
		out.RequiredCertifications = slices.Clone(profile.Certifications)
	}
	out.RequiredExperience = profile.MinExperience

	return out
}

func (p *Predictor) learningPath(target string, skills []string) []LearningStep {
	profile, ok := p.ref.Profile(target)
	if !ok {
		return []LearningStep{}
	}

	_, gaps := splitSkills(profile.Skills(), skills)
	steps := make([]LearningStep, 0, min(len(gaps), learningPathLimit))
	for i, skill := range gaps[:min(len(gaps), learningPathLimit)] {
		steps = append(steps, LearningStep{
			Step:      i + 1,
			Skill:     skill,
			Priority:  "High priority",
			Resources: p.ref.Resources(skill),
			Reason:    p.ref.Importance(skill, target),
		})
	}
	return steps
}

func (p *Predictor) salaryGrowth(current, target string) SalaryGrowth {
	from, ok := p.ref.Salary(current)
	if !ok {
		from = defaultCurrentSalary
	}
	to, ok := p.ref.Salary(target)
	if !ok {
		to = defaultTargetSalary
	}

	growth := round((to.Avg-from.Avg)/from.Avg*100, 1)

	return SalaryGrowth{
		CurrentRange:     salaryRange(from),
		TargetRange:      salaryRange(to),
		GrowthPercent:    growth,
		ExpectedGrowth:   fmt.Sprintf("%+.1f%%", growth),
		AbsoluteIncrease: "₹" + formatLakhs(round(to.Avg-from.Avg, 1)) + " LPA",
	}
}

func (p *Predictor) timeline(target string, years float64) string {
	profile, ok := p.ref.Profile(target)
	if !ok {
		return fallbackTimeline
	}
	return TimelineFor(profile.MinExperience - years)
}

// TimelineFor buckets a remaining experience gap in years.
func TimelineFor(gap float64) string {
	switch {
	case gap <= 1:
		return Timelines[0]
	case gap <= 3:
		return Timelines[1]
	default:
		return Timelines[2]
	}
}

func (p *Predictor) recommendations(merged []Candidate, skills []string, years float64) []string {
	var out []string
	if len(merged) > 0 {
		out = append(out, fmt.Sprintf("Focus on transitioning to %s - highest probability match", merged[0].Role))
	}

	switch {
	case years < 3:
		out = append(out,
			"Build strong foundational skills in your current role",
			"Work on 2-3 significant projects to demonstrate expertise",
		)
	case years < 6:
		out = append(out,
			"Start taking on leadership responsibilities",
			"Mentor junior team members to build leadership skills",
		)
	default:
		out = append(out,
			"Consider management or senior technical tracks",
			"Build strategic thinking and business acumen",
		)
	}

	if len(skills) < skillBreadthThreshold {
		out = append(out, "Expand your skill set - aim for 10-15 relevant skills")
	}

	return append(out,
		"Network with professionals in your target role",
		"Keep your resume and LinkedIn profile updated",
	)
}

// splitSkills partitions required skills into held and missing ones,
// comparing case-insensitively and keeping the required order.
func splitSkills(required, held []string) (matched, missing []string) {
	have := make(map[string]struct{}, len(held))
	for _, s := range held {
		have[strings.ToLower(s)] = struct{}{}
	}

	matched = []string{}
	missing = []string{}
	for _, s := range required {
		if _, ok := have[strings.ToLower(s)]; ok {
			matched = append(matched, s)
		} else {
			missing = append(missing, s)
		}
	}
	return matched, missing
}

func nonEmpty(items []string) []string {
	out := make([]string, 0, len(items))
	for _, s := range items {
		if s = strings.TrimSpace(s); s != "" {
			out = append(out, s)
		}
	}
	return out
}

func salaryRange(b SalaryBand) string {
	return "₹" + formatLakhs(b.Min) + "-" + formatLakhs(b.Max) + " LPA"
}

func formatLakhs(v float64) string {
	return strconv.FormatFloat(v, 'f', -1, 64)
}

func round(v float64, places int) float64 {
	p := math.Pow(10, float64(places))
	return math.Round(v*p) / p
}
