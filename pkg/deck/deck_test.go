package deck

import (
	"setmatch-server/internal/rng"
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestNewDeck(t *testing.T) {
	deck := New(81, rng.NewSeeded(1))

	assert.Equal(t, 81, deck.CardsLeft())
	assert.Equal(t, 81, deck.Size())
	assert.Equal(t, []int{0, 1, 2}, deck.Peek(3))

	unshuffled := deck.HashCode()
	multiset := deck.MultisetHashCode()

	deck.Shuffle()
	assert.NotEqual(t, unshuffled, deck.HashCode())
	assert.Equal(t, multiset, deck.MultisetHashCode())

	// same seed, same order
	other := New(81, rng.NewSeeded(1))
	other.Shuffle()
	assert.Equal(t, deck.HashCode(), other.HashCode())
}

func TestDeck_Draw(t *testing.T) {
	deck := New(12, rng.NewSeeded(0))

	if !deck.CanDraw(12) {
		t.Errorf("expected CanDraw(12) to be true")
	}

	if deck.CanDraw(13) {
		t.Errorf("expected CanDraw(13) to be false")
	}

	for i := 0; i < 12; i++ {
		card, err := deck.Draw()
		assert.NoError(t, err)
		assert.Equal(t, i, card)
	}

	assert.False(t, deck.CanDraw(1))

	card, err := deck.Draw()
	assert.Equal(t, -1, card)
	assert.Equal(t, ErrEndOfDeck, err)
}

func TestDeck_ReturnPreservesMultiset(t *testing.T) {
	a := assert.New(t)
	d := New(27, rng.NewSeeded(7))
	d.Shuffle()
	before := d.MultisetHashCode()

	drawn := make([]int, 0, 12)
	for i := 0; i < 12; i++ {
		card, err := d.Draw()
		a.NoError(err)
		drawn = append(drawn, card)
	}

	a.Equal(15, d.CardsLeft())
	a.NotEqual(before, d.MultisetHashCode())

	d.Return(drawn...)
	d.Shuffle()
	a.Equal(27, d.CardsLeft())
	a.Equal(before, d.MultisetHashCode())
}

func TestDeck_Peek(t *testing.T) {
	a := assert.New(t)
	d := New(2, rng.NewSeeded(0))

	a.Equal([]int{0, 1}, d.Peek(5))
	peeked := d.Peek(1)
	peeked[0] = 99
	a.Equal([]int{0, 1}, d.Cards())
}
