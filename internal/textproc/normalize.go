package textproc

import (
	"regexp"
	"strings"
)

var (
	whitespaceRe = regexp.MustCompile(`\s+`)
	// Keeps word characters plus the punctuation that shows up inside skill
	// names such as "c++", "c#" and "node.js".
	disallowedRe = regexp.MustCompile(`[^\p{L}\p{N}_\s.,+#-]`)
	tokenRe      = regexp.MustCompile(`[\p{L}\p{N}_]{2,}`)
)

// Normalize collapses whitespace and strips characters outside word characters
// and the allow-list ". , - + #".
func Normalize(text string) string {
	text = whitespaceRe.ReplaceAllString(text, " ")
	text = disallowedRe.ReplaceAllString(text, "")
	return strings.TrimSpace(whitespaceRe.ReplaceAllString(text, " "))
}

// Tokenize lowercases the text and returns runs of two or more word characters.
func Tokenize(text string) []string {
	return tokenRe.FindAllString(strings.ToLower(text), -1)
}

// NGrams builds word n-grams of sizes min..max from tokens, skipping stop words
// before the grams are formed.
func NGrams(tokens []string, min, max int, stop map[string]struct{}) []string {
	if min < 1 {
		min = 1
	}
	if max < min {
		max = min
	}

	kept := make([]string, 0, len(tokens))
	for _, tok := range tokens {
		if _, ok := stop[tok]; ok {
			continue
		}
		kept = append(kept, tok)
	}

	grams := make([]string, 0, len(kept)*(max-min+1))
	for n := min; n <= max; n++ {
		for i := 0; i+n <= len(kept); i++ {
			grams = append(grams, strings.Join(kept[i:i+n], " "))
		}
	}
	return grams
}
