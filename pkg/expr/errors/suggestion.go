package errors

import (
	"fmt"

	"github.com/texttheater/golang-levenshtein/levenshtein"
)

// maxSuggestionDistance bounds how different a suggested name may be.
const maxSuggestionDistance = 2

// editOptions counts a substitution as a single edit.
var editOptions = levenshtein.Options{
	InsCost: 1,
	DelCost: 1,
	SubCost: 1,
	Matches: levenshtein.IdenticalRunes,
}

// ClosestMatch returns the candidate with the smallest edit distance to name,
// together with that distance. It returns ("", -1) when candidates is empty.
func ClosestMatch(name string, candidates []string) (string, int) {
	best := ""
	bestDistance := -1
	source := []rune(name)

	for _, candidate := range candidates {
		dist := levenshtein.DistanceForStrings(source, []rune(candidate), editOptions)
		if bestDistance < 0 || dist < bestDistance {
			best = candidate
			bestDistance = dist
		}
	}
	return best, bestDistance
}

// SuggestName suggests the closest candidate when it is a plausible typo of name.
// The distance must also be smaller than the length of name, so single
// letters never get a suggestion.
func SuggestName(name string, candidates []string) string {
	match, dist := ClosestMatch(name, candidates)
	if dist <= 0 {
		return ""
	}
	if dist > maxSuggestionDistance || dist >= len([]rune(name)) {
		return ""
	}
	return fmt.Sprintf("Did you mean '%s'?", match)
}

// SuggestCall explains that a known function was used without an argument list.
func SuggestCall(name string) string {
	return fmt.Sprintf("'%s' is a function; call it with parentheses, e.g. %s(x)", name, name)
}
