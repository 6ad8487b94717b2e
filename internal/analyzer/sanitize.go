package analyzer

import (
	"regexp"
	"strings"
	"time"
)

var (
	nonAlnumRE  = regexp.MustCompile(`[^a-z0-9\s-]`)
	spaceRE     = regexp.MustCompile(`\s+`)
	modelYearRE = regexp.MustCompile(`\b(19|20)\d{2}\b`)
	// Trim-level tokens carry no identity: "Stumpjumper Expert Comp" and
	// "Stumpjumper" are the same bike for matching purposes.
	trimTokenRE = regexp.MustCompile(`\b(cf|al|sl|slx|s-works|expert|comp|pro|race|rc|factory|team|ultimate|select|r|rs|gx|sx|nx)\b`)
)

// NormalizeText lowercases and strips punctuation so model strings from
// different listing sources compare equal.
func NormalizeText(value string) string {
	if value == "" {
		return ""
	}
	cleaned := strings.ToLower(value)
	cleaned = strings.ReplaceAll(cleaned, "’", "")
	cleaned = strings.ReplaceAll(cleaned, "'", "")
	cleaned = nonAlnumRE.ReplaceAllString(cleaned, " ")
	cleaned = spaceRE.ReplaceAllString(cleaned, " ")
	return strings.TrimSpace(cleaned)
}

// SanitizeModel normalizes a model name and drops embedded years and
// trim-level tokens.
func SanitizeModel(modelName string) string {
	if modelName == "" {
		return ""
	}
	cleaned := NormalizeText(modelName)
	cleaned = modelYearRE.ReplaceAllString(cleaned, " ")
	cleaned = trimTokenRE.ReplaceAllString(cleaned, " ")
	cleaned = spaceRE.ReplaceAllString(cleaned, " ")
	return strings.TrimSpace(cleaned)
}

// BuildModelPatterns derives LIKE patterns from a model name, broadest last:
// the first two tokens, the first token, and the full sanitized name.
func BuildModelPatterns(modelName string) []string {
	cleaned := SanitizeModel(modelName)
	if cleaned == "" {
		return nil
	}

	tokens := strings.Fields(cleaned)
	seen := map[string]bool{}
	var candidates []string

	add := func(term string) {
		if len(term) >= 2 && !seen[term] {
			seen[term] = true
			candidates = append(candidates, term)
		}
	}

	if len(tokens) >= 2 {
		add(strings.Join(tokens[:2], " "))
	}
	if len(tokens) >= 1 {
		add(tokens[0])
	}
	add(cleaned)

	patterns := make([]string, 0, len(candidates))
	for _, c := range candidates {
		patterns = append(patterns, "%"+c+"%")
	}
	return patterns
}

// ExtractYearFromTitle pulls a plausible model year out of a listing title.
// Returns 0 when no year in [1990, nextYear] is present.
func ExtractYearFromTitle(title string, now time.Time) int {
	if title == "" {
		return 0
	}
	match := modelYearRE.FindString(strings.ToLower(title))
	if match == "" {
		return 0
	}
	year := 0
	for _, c := range match {
		year = year*10 + int(c-'0')
	}
	if year < 1990 || year > now.Year()+1 {
		return 0
	}
	return year
}
