package parse

import "github.com/agext/levenshtein"

// nearestName returns the candidate closest to the given name, or the
// empty string when nothing is within edit distance 2. Wider distances
// produce noise rather than helpful suggestions.
func nearestName(given string, candidates []string) string {
	best := ""
	bestDist := 3
	for _, c := range candidates {
		if d := levenshtein.Distance(given, c, nil); d < bestDist {
			best, bestDist = c, d
		}
	}
	return best
}
