// Package suggest finds the closest known name to a misspelled one,
// for "did you mean" hints.
package suggest

import (
	"sort"
	"strings"

	"github.com/texttheater/golang-levenshtein/levenshtein"
)

// Closest returns the candidate closest to name. A candidate that
// differs only in case wins outright. Otherwise a candidate must be
// within about a third of name's length in size and edit distance
// (substitutions cost two) and be at least three characters long.
// Ties resolve to the alphabetically first candidate.
func Closest(name string, candidates []string) (string, bool) {
	sorted := make([]string, len(candidates))
	copy(sorted, candidates)
	sort.Strings(sorted)

	nameRunes := []rune(name)
	maxLengthDifference := max(2, int(float64(len(nameRunes))*0.34))
	bestDistance := float64(len(nameRunes))*0.4 + 1
	closest := ""

	for _, candidate := range sorted {
		if candidate == name {
			continue
		}
		if strings.EqualFold(candidate, name) {
			return candidate, true
		}
		candidateRunes := []rune(candidate)
		if len(candidateRunes) < 3 {
			continue
		}
		if abs(len(candidateRunes)-len(nameRunes)) > maxLengthDifference {
			continue
		}
		distance := float64(levenshtein.DistanceForStrings(
			nameRunes,
			candidateRunes,
			levenshtein.DefaultOptions,
		))
		if distance < bestDistance {
			closest = candidate
			bestDistance = distance
		}
	}

	return closest, closest != ""
}

func abs(n int) int {
	if n < 0 {
		return -n
	}
	return n
}
