// internal/matching/normalize/similarity.go
package normalize

import (
	"unicode"
	"unicode/utf8"
)

// maxFuzzyRunes bounds the inputs the edit-distance step is applied to.
// Longer text is free prose (bios, descriptions), not a name.
const maxFuzzyRunes = 64

// Levenshtein returns the edit distance between a and b over runes.
func Levenshtein(a, b string) int {
	ra, rb := []rune(a), []rune(b)
	rows, cols := len(ra)+1, len(rb)+1

	dp := make([][]int, rows)
	for i := range dp {
		dp[i] = make([]int, cols)
		dp[i][0] = i
	}
	for j := 0; j < cols; j++ {
		dp[0][j] = j
	}

	for i := 1; i < rows; i++ {
		for j := 1; j < cols; j++ {
			cost := 1
			if ra[i-1] == rb[j-1] {
				cost = 0
			}
			dp[i][j] = min(
				dp[i-1][j]+1,
				dp[i][j-1]+1,
				dp[i-1][j-1]+cost,
			)
		}
	}
	return dp[rows-1][cols-1]
}

// Similarity is (longer - distance) / longer over the lower-cased inputs.
// It is symmetric and lies in [0,1]; two empty strings are identical.
func Similarity(a, b string) float64 {
	a, b = lower(a), lower(b)
	longer := max(utf8.RuneCountInString(a), utf8.RuneCountInString(b))
	if longer == 0 {
		return 1
	}
	return float64(longer-Levenshtein(a, b)) / float64(longer)
}

func lower(s string) string {
	out := []rune(s)
	for i, r := range out {
		out[i] = unicode.ToLower(r)
	}
	return string(out)
}
