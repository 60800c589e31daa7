package match

import "math"

// Unlimited can be passed to FindMatches to enumerate every match
const Unlimited = math.MaxInt32

// Oracle decides whether a group of cards is a match
// Implementations must be safe for concurrent use
type Oracle interface {
	// TestMatch returns true if the cards (exactly Size() of them) form a match
	TestMatch(cards []int) bool

	// FindMatches returns up to limit matches that can be formed from cards
	// The order of the matches is unspecified
	FindMatches(cards []int, limit int) [][]int

	// Size is the number of cards in a match
	Size() int
}

// findMatches enumerates the k-combinations of cards and keeps the ones test accepts
func findMatches(cards []int, k, limit int, test func([]int) bool) [][]int {
	var matches [][]int
	if limit <= 0 || k <= 0 || len(cards) < k {
		return matches
	}

	idx := make([]int, k)
	for i := range idx {
		idx[i] = i
	}

	group := make([]int, k)
	for {
		for i, j := range idx {
			group[i] = cards[j]
		}

		if test(group) {
			found := make([]int, k)
			copy(found, group)
			matches = append(matches, found)
			if len(matches) >= limit {
				return matches
			}
		}

		// advance to the next combination
		i := k - 1
		for i >= 0 && idx[i] == len(cards)-k+i {
			i--
		}

		if i < 0 {
			return matches
		}

		idx[i]++
		for j := i + 1; j < k; j++ {
			idx[j] = idx[j-1] + 1
		}
	}
}

// HasMatch returns true if any match can be formed from cards
func HasMatch(o Oracle, cards []int) bool {
	return len(o.FindMatches(cards, 1)) > 0
}
