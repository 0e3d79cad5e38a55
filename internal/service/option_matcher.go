package service

import (
	"strconv"
	"strings"
)

// OptionMatcher resolves a typed reply to one of the question's options.
type OptionMatcher struct {
	threshold float64 // similarity threshold (0.0 - 1.0)
}

// NewOptionMatcher creates an OptionMatcher.
func NewOptionMatcher() *OptionMatcher {
	return &OptionMatcher{
		threshold: 0.8, // 80% similarity required
	}
}

// Match returns the option index the reply points at. A reply may be the
// option number (1-based) or the option text, typed with small mistakes.
func (m *OptionMatcher) Match(reply string, options []string) (int, bool) {
	reply = m.normalize(reply)
	if reply == "" {
		return -1, false
	}

	if n, err := strconv.Atoi(reply); err == nil {
		if n >= 1 && n <= len(options) {
			return n - 1, true
		}
		return -1, false
	}

	best, bestScore := -1, 0.0
	for i, option := range options {
		opt := m.normalize(option)
		if opt == reply {
			return i, true
		}
		score := m.similarity(reply, opt)
		if score > bestScore {
			best, bestScore = i, score
		}
	}

	if best >= 0 && bestScore >= m.threshold {
		return best, true
	}
	return -1, false
}

// normalize normalizes a string for comparison.
func (m *OptionMatcher) normalize(s string) string {
	s = strings.ToLower(strings.TrimSpace(s))
	s = strings.ReplaceAll(s, "ё", "е")
	s = strings.Trim(s, ".!?,;:«»\"'")

	// Remove extra whitespace
	return strings.Join(strings.Fields(s), " ")
}

// similarity calculates the similarity between two strings using Levenshtein distance.
func (m *OptionMatcher) similarity(s1, s2 string) float64 {
	distance := levenshteinDistance(s1, s2)
	maxLen := max(len([]rune(s1)), len([]rune(s2)))

	if maxLen == 0 {
		return 1.0
	}

	return 1.0 - float64(distance)/float64(maxLen)
}

// levenshteinDistance calculates the Levenshtein distance between two strings.
func levenshteinDistance(s1, s2 string) int {
	r1 := []rune(s1)
	r2 := []rune(s2)

	rows := len(r1) + 1
	cols := len(r2) + 1

	// Two rows instead of the full matrix.
	prev := make([]int, cols)
	curr := make([]int, cols)

	for j := 0; j < cols; j++ {
		prev[j] = j
	}

	for i := 1; i < rows; i++ {
		curr[0] = i

		for j := 1; j < cols; j++ {
			cost := 1
			if r1[i-1] == r2[j-1] {
				cost = 0
			}

			curr[j] = min(
				curr[j-1]+1,    // insertion
				prev[j]+1,      // deletion
				prev[j-1]+cost, // substitution
			)
		}

		prev, curr = curr, prev
	}

	return prev[cols-1]
}
