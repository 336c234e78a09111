package matcher

import (
	"math"
	"regexp"
	"strings"
)

const (
	atsKeywordPoints   = 40.0
	atsSectionPoints   = 10.0
	atsSectionCap      = 30.0
	atsLengthFull      = 15.0
	atsLengthNear      = 10.0
	atsLengthFar       = 5.0
	atsStructurePoints = 5.0
)

var (
	resumeSections = []string{"experience", "education", "skills", "projects"}

	yearRe  = regexp.MustCompile(`\d{4}`)
	emailRe = regexp.MustCompile(`\b[A-Za-z0-9._%+-]+@[A-Za-z0-9.-]+\.[A-Za-z]{2,}\b`)
)

// ATSScore is a 0-100 heuristic of how well automated keyword screening can
// parse the résumé. Sub-scores are capped individually:
//   - keyword density (40): share of job skills found verbatim
//   - sections (30): "experience", "education", "skills", "projects", 10 each
//   - length (15): 300-1000 words full credit, less outside
//   - structure (15): bullets, a 4-digit year, an email address, 5 each
func ATSScore(resumeText string, jobSkills []string) float64 {
	lower := strings.ToLower(resumeText)
	score := 0.0

	skills := RequiredSkills(jobSkills)
	found := 0
	for _, s := range skills {
		if strings.Contains(lower, s) {
			found++
		}
	}
	score += math.Min(atsKeywordPoints, float64(found)/math.Max(float64(len(skills)), 1)*atsKeywordPoints)

	sections := 0.0
	for _, section := range resumeSections {
		if strings.Contains(lower, section) {
			sections += atsSectionPoints
		}
	}
	score += math.Min(atsSectionCap, sections)

	score += lengthPoints(len(strings.Fields(resumeText)))

	if strings.Contains(resumeText, "•") || strings.Contains(resumeText, "-") {
		score += atsStructurePoints
	}
	if yearRe.MatchString(resumeText) {
		score += atsStructurePoints
	}
	if emailRe.MatchString(resumeText) {
		score += atsStructurePoints
	}

	return round(score, 2)
}

func lengthPoints(words int) float64 {
	switch {
	case words >= 300 && words <= 1000:
		return atsLengthFull
	case words >= 200 && words < 300, words > 1000 && words <= 1500:
		return atsLengthNear
	default:
		return atsLengthFar
	}
}
