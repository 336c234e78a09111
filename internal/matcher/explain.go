package matcher

import (
	"fmt"
	"strconv"
	"strings"
)

// Band is the qualitative bucket of an overall match score.
type Band string

const (
	BandStrong   Band = "strong"
	BandModerate Band = "moderate"
	BandLow      Band = "low"
)

const (
	explainSkillLimit     = 10
	recommendSkillLimit   = 5
	applyNowThreshold     = 0.7
	strongBandThreshold   = 0.75
	moderateBandThreshold = 0.5
)

// BandFor buckets an overall score in the 0-1 range.
func BandFor(score float64) Band {
	switch {
	case score >= strongBandThreshold:
		return BandStrong
	case score >= moderateBandThreshold:
		return BandModerate
	default:
		return BandLow
	}
}

func explain(overall float64, matched, missing []string, candidate, required float64, jobTitle string) string {
	position := "this"
	if t := strings.TrimSpace(jobTitle); t != "" {
		position = "the " + t
	}

	var parts []string
	switch BandFor(overall) {
	case BandStrong:
		parts = append(parts, fmt.Sprintf("Strong match. Your profile aligns well with %s position.", position))
	case BandModerate:
		parts = append(parts, fmt.Sprintf("Moderate match. You meet some requirements for %s position but should strengthen your profile.", position))
	default:
		parts = append(parts, fmt.Sprintf("Low match. Significant gaps exist between your profile and %s position.", position))
	}

	if len(matched) > 0 {
		parts = append(parts, fmt.Sprintf("Matched skills (%d): %s", len(matched), strings.Join(head(matched, explainSkillLimit), ", ")))
	}
	if len(missing) > 0 {
		parts = append(parts, fmt.Sprintf("Skills to develop (%d): %s", len(missing), strings.Join(head(missing, explainSkillLimit), ", ")))
	}

	if candidate < required {
		parts = append(parts, fmt.Sprintf(
			"Experience gap: you have %s years but %s years are required (%s years short).",
			years(candidate), years(required), years(required-candidate),
		))
	} else if required > 0 {
		parts = append(parts, fmt.Sprintf(
			"Experience: you have %s years, meeting the %s years requirement.",
			years(candidate), years(required),
		))
	}

	return strings.Join(parts, "\n")
}

func recommend(overall float64, missing []string, candidate, required float64) []string {
	if overall >= applyNowThreshold {
		return []string{
			"Apply now! Your profile is a strong match.",
			"Highlight your matching skills prominently in your application.",
		}
	}

	var out []string
	if len(missing) > 0 {
		out = append(out,
			"Consider learning: "+strings.Join(head(missing, recommendSkillLimit), ", "),
			"Take online courses or work on projects to build these skills.",
		)
	}
	if candidate < required {
		out = append(out, fmt.Sprintf(
			"Gain %s more years of relevant experience or highlight transferable skills.",
			years(required-candidate),
		))
	}
	out = append(out, "Tailor your resume to emphasize relevant experience and skills.")

	return out
}

func head(items []string, n int) []string {
	if len(items) <= n {
		return items
	}
	return items[:n]
}

// years renders a year count without a trailing ".0" noise for whole values.
func years(v float64) string {
	return strconv.FormatFloat(round(v, 1), 'f', -1, 64)
}
