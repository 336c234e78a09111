package matcher

import (
	"regexp"
	"strconv"
)

var experiencePatterns = []*regexp.Regexp{
	regexp.MustCompile(`(?i)(\d+(?:\.\d+)?)\+?\s*years?\s+(?:of\s+)?experience`),
	regexp.MustCompile(`(?i)experience[:\s]+(\d+(?:\.\d+)?)\+?\s*years?`),
	regexp.MustCompile(`(?i)(\d+(?:\.\d+)?)\+?\s*yrs?\s+(?:of\s+)?experience`),
}

// ExtractExperienceYears returns the years from the earliest experience
// mention in the text. When two patterns match at the same offset the one
// listed first wins. Returns 0 when nothing matches.
func ExtractExperienceYears(text string) float64 {
	bestStart := -1
	bestValue := ""

	for _, re := range experiencePatterns {
		loc := re.FindStringSubmatchIndex(text)
		if loc == nil {
			continue
		}
		if bestStart == -1 || loc[0] < bestStart {
			bestStart = loc[0]
			bestValue = text[loc[2]:loc[3]]
		}
	}

	if bestStart == -1 {
		return 0
	}

	years, err := strconv.ParseFloat(bestValue, 64)
	if err != nil || years < 0 {
		return 0
	}
	return years
}
