// Package report turns scoring results into short conversational summaries.
package report

import (
	"fmt"
	"math"
	"strconv"
	"strings"

	"github.com/spigell/jobmate/internal/career"
	"github.com/spigell/jobmate/internal/matcher"
)

const (
	matchSkillLimit  = 10
	careerRoleLimit  = 5
	careerSkillLimit = 5
)

// MatchReply summarizes a match result.
func MatchReply(res *matcher.Result) string {
	var b strings.Builder

	fmt.Fprintf(&b, "Resume score: %s%% (%s match).\n", number(res.OverallScore), res.Band())
	fmt.Fprintf(&b, "Skills %s%%, experience %s%%, text similarity %s%%.\n",
		number(res.SkillScore), number(res.ExperienceScore), number(res.TFIDFScore))

	bullets(&b, "Matched skills", res.MatchedSkills, matchSkillLimit)
	bullets(&b, "Missing skills", res.MissingSkills, matchSkillLimit)

	if res.ExperienceGap > 0 {
		fmt.Fprintf(&b, "Experience: %s of %s required years (%s years short).\n",
			number(res.CandidateExperienceYears), number(res.RequiredExperienceYears), number(res.ExperienceGap))
	} else {
		fmt.Fprintf(&b, "Experience: %s years, requirement met.\n", number(res.CandidateExperienceYears))
	}

	fmt.Fprintf(&b, "ATS score: %s/100.", number(res.ATSScore))

	if len(res.Recommendations) > 0 {
		fmt.Fprintf(&b, "\nTop recommendation: %s", res.Recommendations[0])
	}

	return b.String()
}

// CareerReply summarizes a career prediction.
func CareerReply(p *career.Prediction) string {
	var b strings.Builder

	if len(p.PredictedRoles) == 0 {
		fmt.Fprintf(&b, "Suggested next roles: none found for %q yet.\n", p.CurrentRole)
	} else {
		b.WriteString("Suggested next roles:\n")
		for _, r := range p.PredictedRoles[:min(len(p.PredictedRoles), careerRoleLimit)] {
			fmt.Fprintf(&b, "- %s (%s%% likely, readiness %s%%)\n",
				r.Role, number(r.Probability*100), number(r.ReadinessScore))
		}
	}

	if len(p.LearningPath) > 0 {
		skills := make([]string, 0, careerSkillLimit)
		for _, step := range p.LearningPath[:min(len(p.LearningPath), careerSkillLimit)] {
			skills = append(skills, step.Skill)
		}
		fmt.Fprintf(&b, "Skills to learn next: %s\n", strings.Join(skills, ", "))
	}

	sg := p.SalaryGrowth
	fmt.Fprintf(&b, "Salary outlook: %s to %s (%s).\n", sg.CurrentRange, sg.TargetRange, sg.ExpectedGrowth)
	fmt.Fprintf(&b, "Estimated timeline: %s.", p.Timeline)

	if len(p.Recommendations) > 0 {
		fmt.Fprintf(&b, "\nTop recommendation: %s", p.Recommendations[0])
	}

	return b.String()
}

func bullets(b *strings.Builder, title string, items []string, limit int) {
	if len(items) == 0 {
		fmt.Fprintf(b, "%s: none\n", title)
		return
	}

	fmt.Fprintf(b, "%s:\n", title)
	for _, item := range items[:min(len(items), limit)] {
		fmt.Fprintf(b, "- %s\n", item)
	}
	if extra := len(items) - limit; extra > 0 {
		fmt.Fprintf(b, "- and %d more\n", extra)
	}
}

// number prints at most two decimals without trailing zeros.
func number(v float64) string {
	return strconv.FormatFloat(math.Round(v*100)/100, 'f', -1, 64)
}
