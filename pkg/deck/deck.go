package deck

import (
	"crypto/sha1" // nolint:gosec
	"encoding/binary"
	"encoding/hex"
	"errors"
	"setmatch-server/internal/rng"
	"sort"
)

// ErrEndOfDeck is an error when Draw() is attempted and there are no more cards
var ErrEndOfDeck = errors.New("end of deck reached")

// Deck is the ordered sequence of undealt cards
// Cards are opaque ids in [0, size). A Deck is not safe for concurrent use; the dealer owns it.
type Deck struct {
	cards []int
	size  int
	rng   rng.Generator
}

// New returns a new deck of cards with the ids 0..size-1
// Important! this deck is unshuffled. You must call the Shuffle() method to shuffle the cards
func New(size int, generator rng.Generator) *Deck {
	cards := make([]int, size)
	for i := range cards {
		cards[i] = i
	}

	return &Deck{
		cards: cards,
		size:  size,
		rng:   generator,
	}
}

// Shuffle will shuffle the cards that are left in the deck
func (d *Deck) Shuffle() {
	rng.Shuffle(d.rng, len(d.cards), func(i, j int) {
		d.cards[i], d.cards[j] = d.cards[j], d.cards[i]
	})
}

// Return puts cards back at the end of the deck
// The caller is expected to Shuffle() afterwards
func (d *Deck) Return(cards ...int) {
	d.cards = append(d.cards, cards...)
}

// Draw will draw the next card
// If there are no more cards, an ErrEndOfDeck is returned
func (d *Deck) Draw() (int, error) {
	if len(d.cards) <= 0 {
		return -1, ErrEndOfDeck
	}

	card := d.cards[0]
	d.cards = d.cards[1:]

	return card, nil
}

// Peek returns (up to) the next n cards without drawing them
func (d *Deck) Peek(n int) []int {
	if n > len(d.cards) {
		n = len(d.cards)
	}

	cards := make([]int, n)
	copy(cards, d.cards[:n])
	return cards
}

// Cards returns a copy of the cards left in the deck, in draw order
func (d *Deck) Cards() []int {
	return d.Peek(len(d.cards))
}

// CanDraw returns true if there are {want} cards left in the deck
func (d *Deck) CanDraw(want int) bool {
	return len(d.cards) >= want
}

// CardsLeft returns the number of cards left in the deck
func (d *Deck) CardsLeft() int {
	return len(d.cards)
}

// Size returns the number of cards the deck was built with
func (d *Deck) Size() int {
	return d.size
}

// HashCode returns a SHA1 hash code of the deck in draw order
func (d *Deck) HashCode() string {
	return hashCards(d.cards)
}

// MultisetHashCode returns a SHA1 hash code of the deck that ignores the order of the cards
func (d *Deck) MultisetHashCode() string {
	sorted := d.Cards()
	sort.Ints(sorted)
	return hashCards(sorted)
}

func hashCards(cards []int) string {
	hash := sha1.New() // nolint:gosec
	buf := make([]byte, 8)
	for _, card := range cards {
		binary.BigEndian.PutUint64(buf, uint64(card))
		_, _ = hash.Write(buf)
	}

	return hex.EncodeToString(hash.Sum(nil))
}
