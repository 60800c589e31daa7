package dealer

import (
	"setmatch-server/pkg/match"
	"setmatch-server/pkg/player"
	"time"

	"github.com/sirupsen/logrus"
)

// deal fills the empty slots from the front of the deck, in the dealer's fixed slot order
func (d *Dealer) deal() {
	empty := d.board.EmptySlots(d.order)
	if len(empty) == 0 || !d.deck.CanDraw(1) {
		return
	}

	if d.policy.EnsureSolvable() {
		d.ensureSolvable(len(empty))
	}

	for _, slot := range empty {
		card, err := d.deck.Draw()
		if err != nil {
			break
		}

		d.board.PlaceCard(card, slot)
	}

	d.cardsLeft.Store(int64(d.deck.CardsLeft()))

	if d.hints {
		d.logHints()
	}
}

// logHints logs every match on the board, with the feature values of each card when they are known
func (d *Dealer) logHints() {
	features, _ := d.oracle.(*match.Features)
	for _, slots := range d.board.Hints(d.oracle) {
		log := d.log.WithField("slots", slots)
		if features != nil {
			values := make([][]int, 0, len(slots))
			for _, slot := range slots {
				if card, ok := d.board.Card(slot); ok {
					values = append(values, features.CardToFeatures(card))
				}
			}

			log = log.WithField("features", values)
		}

		log.Info("hint: match on the board")
	}
}

// ensureSolvable reshuffles until the next n cards, together with the board, contain a match
// If no match exists among the board and the whole deck, the deck is left as it is.
func (d *Dealer) ensureSolvable(n int) {
	onBoard := d.board.Cards()
	if !match.HasMatch(d.oracle, append(d.deck.Cards(), onBoard...)) {
		return
	}

	for attempt := 0; attempt < maxShuffleAttempts; attempt++ {
		if match.HasMatch(d.oracle, append(d.deck.Peek(n), onBoard...)) {
			if attempt > 0 {
				d.log.WithField("attempts", attempt).Debug("reshuffled for a solvable deal")
			}

			return
		}

		d.deck.Shuffle()
	}

	d.log.WithField("attempts", maxShuffleAttempts).Warn("could not find a solvable deal")
}

// arbitrate judges every queued claim in the order they were completed
func (d *Dealer) arbitrate() {
	for {
		id, ok := d.board.Queue().TryNext()
		if !ok {
			return
		}

		d.judge(id)
	}
}

// judge awards a point for a match and a penalty otherwise
// The outcome is recorded before the board changes so the player never sees its claim
// cleared without a verdict.
func (d *Dealer) judge(id int) {
	p, ok := d.Player(id)
	if !ok {
		return
	}

	defer p.Wake()

	slots, cards := d.board.Claim(id)
	log := d.log.WithFields(logrus.Fields{
		"player": p.String(),
		"slots":  slots,
		"cards":  cards,
	})

	if len(cards) != d.board.ClaimSize() {
		log.Debug("stale claim dropped")
		return
	}

	if d.oracle.TestMatch(cards) {
		log.Debug("claim is a match")
		p.SetOutcome(player.OutcomePoint)
		for _, slot := range slots {
			d.board.RemoveCard(slot)
		}

		d.policy.Reset(time.Now())
		return
	}

	log.Debug("claim is not a match")
	p.SetOutcome(player.OutcomePenalty)
	d.board.RemoveTokens(id)
}

// drain returns every card on the board to the deck and reshuffles
// Players are blocked while it runs and woken afterwards.
func (d *Dealer) drain() {
	for _, p := range d.players {
		p.SetResetting(true)
	}

	for _, slot := range d.order {
		if card, ok := d.board.RemoveCard(slot); ok {
			d.deck.Return(card)
		}
	}

	for _, id := range d.board.Queue().Clear() {
		if p, ok := d.Player(id); ok {
			p.Wake()
		}
	}

	d.deck.Shuffle()
	d.cardsLeft.Store(int64(d.deck.CardsLeft()))

	for _, p := range d.players {
		p.SetResetting(false)
	}
}
