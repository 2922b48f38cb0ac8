// Package words holds the static heuristic dictionaries and the cheap local
// checks used to pre-filter answers before they are spent on the external
// grading service.
package words

import (
	"regexp"
	"strings"
)

var playablePattern = regexp.MustCompile(`^[A-Za-z\s'\-]+$`)

// IsPlayable reports whether an answer is even worth grading: non-empty,
// starts with the round letter (case-insensitive) and contains only letters,
// spaces, apostrophes and hyphens.
func IsPlayable(answer, letter string) bool {
	cleaned := strings.TrimSpace(answer)
	if cleaned == "" || letter == "" {
		return false
	}
	if !strings.EqualFold(cleaned[:1], letter[:1]) {
		return false
	}
	return playablePattern.MatchString(cleaned)
}

// Normalize lowercases, trims and collapses inner whitespace so dictionary
// lookups are insensitive to formatting.
func Normalize(value string) string {
	fields := strings.Fields(strings.ToLower(value))
	return strings.Join(fields, " ")
}

// Levenshtein returns the edit distance between two strings.
func Levenshtein(first, second string) int {
	if first == second {
		return 0
	}
	if len(first) == 0 {
		return len(second)
	}
	if len(second) == 0 {
		return len(first)
	}

	matrix := make([][]int, len(first)+1)
	for row := range matrix {
		matrix[row] = make([]int, len(second)+1)
		matrix[row][0] = row
	}
	for column := 0; column <= len(second); column++ {
		matrix[0][column] = column
	}

	for row := 1; row <= len(first); row++ {
		for column := 1; column <= len(second); column++ {
			cost := 1
			if first[row-1] == second[column-1] {
				cost = 0
			}
			deletion := matrix[row-1][column] + 1
			insertion := matrix[row][column-1] + 1
			substitution := matrix[row-1][column-1] + cost
			matrix[row][column] = min(deletion, insertion, substitution)
		}
	}

	return matrix[len(first)][len(second)]
}

// LikelyName reports whether a value looks like a person's name: an exact
// dictionary hit, or within edit distance 1 of a dictionary name to tolerate
// minor misspellings. Very short inputs never fuzzy-match.
func LikelyName(value string) bool {
	normalized := Normalize(value)
	if normalized == "" {
		return false
	}
	if commonNames[normalized] {
		return true
	}
	if len(normalized) <= 2 {
		return false
	}
	for name := range commonNames {
		diff := len(name) - len(normalized)
		if diff > 1 || diff < -1 {
			continue
		}
		if Levenshtein(name, normalized) <= 1 {
			return true
		}
	}
	return false
}

// MatchesCategory classifies an answer against a category using the static
// word sets. Unknown categories are accepted; the dictionaries only cover the
// common ones and everything else is left to the external grader.
func MatchesCategory(category, answer string) bool {
	normalized := Normalize(answer)
	if normalized == "" {
		return false
	}

	switch Normalize(category) {
	case "name":
		return LikelyName(normalized)
	case "animal":
		return commonAnimals[normalized]
	case "country":
		return commonCountries[normalized]
	case "city":
		return commonCities[normalized]
	case "place":
		return commonCities[normalized] || commonCountries[normalized]
	case "food":
		return commonFoods[normalized]
	case "movie":
		return commonMovies[normalized]
	case "brand":
		return commonBrands[normalized]
	case "thing":
		return !commonNames[normalized] &&
			!commonAnimals[normalized] &&
			!commonCities[normalized] &&
			!commonCountries[normalized]
	}
	return true
}

// KnownMatch reports whether the dictionaries positively recognize the answer
// for its category. Unlike MatchesCategory it never accepts by default, so a
// true result is safe to treat as pre-validated: name matches must be exact,
// and categories without a positive word set (Thing, custom ones) never
// match.
func KnownMatch(category, answer string) bool {
	normalized := Normalize(answer)
	if normalized == "" {
		return false
	}

	switch Normalize(category) {
	case "name":
		return commonNames[normalized]
	case "animal":
		return commonAnimals[normalized]
	case "country":
		return commonCountries[normalized]
	case "city":
		return commonCities[normalized]
	case "place":
		return commonCities[normalized] || commonCountries[normalized]
	case "food":
		return commonFoods[normalized]
	case "movie":
		return commonMovies[normalized]
	case "brand":
		return commonBrands[normalized]
	}
	return false
}
