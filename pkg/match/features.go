package match

// Features is the classic Set oracle
// Every card id encodes featureCount features, each taking one of size values (the id written in base size).
// A group of size cards is a match when, for every feature, the values are either all equal or all different.
type Features struct {
	size  int
	count int
}

// NewFeatures returns a feature based oracle
func NewFeatures(size, count int) *Features {
	return &Features{
		size:  size,
		count: count,
	}
}

// Size is the number of cards in a match
func (f *Features) Size() int {
	return f.size
}

// CardToFeatures returns the feature values of a card
func (f *Features) CardToFeatures(card int) []int {
	features := make([]int, f.count)
	for i := 0; i < f.count; i++ {
		features[i] = card % f.size
		card /= f.size
	}

	return features
}

// TestMatch returns true if the cards form a match
func (f *Features) TestMatch(cards []int) bool {
	if len(cards) != f.size {
		return false
	}

	seen := make([]bool, f.size)
	values := make([]int, len(cards))
	copy(values, cards)

	for feature := 0; feature < f.count; feature++ {
		for i := range seen {
			seen[i] = false
		}

		distinct := 0
		for i, v := range values {
			digit := v % f.size
			values[i] = v / f.size
			if !seen[digit] {
				seen[digit] = true
				distinct++
			}
		}

		if distinct != 1 && distinct != f.size {
			return false
		}
	}

	return true
}

// FindMatches returns up to limit matches that can be formed from cards
func (f *Features) FindMatches(cards []int, limit int) [][]int {
	return findMatches(cards, f.size, limit, f.TestMatch)
}
