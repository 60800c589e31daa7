package board

import (
	"setmatch-server/pkg/display"
	"setmatch-server/pkg/match"
	"sort"
	"sync"
	"time"

	"github.com/sirupsen/logrus"
)

// NoCard marks an empty slot
const NoCard = -1

// Toggle is the result of a ToggleToken call
type Toggle int

// toggle results
const (
	// TokenIgnored means the board did not change (empty slot, bad index or a full claim)
	TokenIgnored Toggle = iota
	TokenPlaced
	TokenRemoved
	// TokenClaimed means the token was placed and completed a claim
	TokenClaimed
)

// Options configures a Board
type Options struct {
	Slots     int
	Cards     int
	Players   int
	ClaimSize int

	// Delay is slept before every card placement and removal
	Delay   time.Duration
	Display display.Display
}

// Board is the shared grid
//
// It owns the slot<->card mapping and every player's tokens. All methods are safe for
// concurrent use and serialize on a single lock. The lock order is Board then ClaimQueue.
type Board struct {
	lock       sync.Mutex
	claimSize  int
	slotToCard []int
	cardToSlot []int
	tokens     [][]int

	queue   *ClaimQueue
	display display.Display
	delay   time.Duration

	// signals wake a player's goroutine; buffered with a capacity of one
	signals []chan struct{}
}

// New returns an empty board
func New(opts Options, queue *ClaimQueue) *Board {
	if opts.Display == nil {
		opts.Display = display.Nop{}
	}

	b := &Board{
		claimSize:  opts.ClaimSize,
		slotToCard: make([]int, opts.Slots),
		cardToSlot: make([]int, opts.Cards),
		tokens:     make([][]int, opts.Players),
		queue:      queue,
		display:    opts.Display,
		delay:      opts.Delay,
		signals:    make([]chan struct{}, opts.Players),
	}

	for i := range b.slotToCard {
		b.slotToCard[i] = NoCard
	}

	for i := range b.cardToSlot {
		b.cardToSlot[i] = NoCard
	}

	for i := range b.signals {
		b.signals[i] = make(chan struct{}, 1)
	}

	return b
}

// Size returns the number of slots
func (b *Board) Size() int {
	return len(b.slotToCard)
}

// ClaimSize returns the number of tokens that make a claim
func (b *Board) ClaimSize() int {
	return b.claimSize
}

// Players returns the number of players
func (b *Board) Players() int {
	return len(b.tokens)
}

// Queue returns the claim queue fed by the board
func (b *Board) Queue() *ClaimQueue {
	return b.queue
}

func (b *Board) validSlot(slot int) bool {
	return slot >= 0 && slot < len(b.slotToCard)
}

func (b *Board) validPlayer(player int) bool {
	return player >= 0 && player < len(b.tokens)
}

func (b *Board) pause() {
	if b.delay > 0 {
		time.Sleep(b.delay)
	}
}

// PlaceCard puts a card in an empty slot
// Returns false, without changing anything, if the slot is occupied or the card is already on the board
func (b *Board) PlaceCard(card, slot int) bool {
	b.pause()

	b.lock.Lock()
	defer b.lock.Unlock()

	if !b.validSlot(slot) || card < 0 || card >= len(b.cardToSlot) {
		return false
	}

	if b.slotToCard[slot] != NoCard || b.cardToSlot[card] != NoCard {
		logrus.WithFields(logrus.Fields{"slot": slot, "card": card}).Trace("slot already occupied")
		return false
	}

	b.slotToCard[slot] = card
	b.cardToSlot[card] = slot
	b.display.PlaceCard(card, slot)

	return true
}

// RemoveCard clears a slot and returns the card that was in it
// Every token on the slot is removed first. A player who thereby loses a complete claim is
// taken out of the claim queue. Each affected player is woken.
func (b *Board) RemoveCard(slot int) (int, bool) {
	b.pause()

	b.lock.Lock()
	defer b.lock.Unlock()

	if !b.validSlot(slot) || b.slotToCard[slot] == NoCard {
		return NoCard, false
	}

	for player, slots := range b.tokens {
		i := indexOf(slots, slot)
		if i < 0 {
			continue
		}

		wasClaim := len(slots) == b.claimSize
		b.tokens[player] = append(slots[:i], slots[i+1:]...)
		b.display.RemoveToken(player, slot)

		if wasClaim && b.queue.Remove(player) {
			logrus.WithFields(logrus.Fields{"player": player, "slot": slot}).Debug("claim invalidated by card removal")
		}

		b.wake(player)
	}

	card := b.slotToCard[slot]
	b.slotToCard[slot] = NoCard
	b.cardToSlot[card] = NoCard
	b.display.RemoveCard(slot)

	return card, true
}

// ToggleToken places or removes a player's token on a slot
// Toggling an empty slot, or any slot once the player's claim is complete, is ignored.
// The token that completes a claim enqueues the player for arbitration.
func (b *Board) ToggleToken(player, slot int) Toggle {
	b.lock.Lock()
	defer b.lock.Unlock()

	if !b.validPlayer(player) || !b.validSlot(slot) || b.slotToCard[slot] == NoCard {
		return TokenIgnored
	}

	slots := b.tokens[player]
	if len(slots) >= b.claimSize {
		return TokenIgnored
	}

	if i := indexOf(slots, slot); i >= 0 {
		b.tokens[player] = append(slots[:i], slots[i+1:]...)
		b.display.RemoveToken(player, slot)
		return TokenRemoved
	}

	b.tokens[player] = append(slots, slot)
	b.display.PlaceToken(player, slot)

	if len(b.tokens[player]) == b.claimSize {
		b.queue.Enqueue(player)
		return TokenClaimed
	}

	return TokenPlaced
}

// RemoveTokens clears every token of a player and returns the slots they were on
func (b *Board) RemoveTokens(player int) []int {
	b.lock.Lock()
	defer b.lock.Unlock()

	if !b.validPlayer(player) {
		return nil
	}

	slots := b.tokens[player]
	b.tokens[player] = nil
	for _, slot := range slots {
		b.display.RemoveToken(player, slot)
	}

	return slots
}

// IsTokenPlaced returns true if the player has a token on the slot
func (b *Board) IsTokenPlaced(player, slot int) bool {
	b.lock.Lock()
	defer b.lock.Unlock()

	if !b.validPlayer(player) {
		return false
	}

	return indexOf(b.tokens[player], slot) >= 0
}

// TokenCount returns the number of tokens a player has on the board
func (b *Board) TokenCount(player int) int {
	b.lock.Lock()
	defer b.lock.Unlock()

	if !b.validPlayer(player) {
		return 0
	}

	return len(b.tokens[player])
}

// CountOccupiedSlots returns the number of cards on the board
func (b *Board) CountOccupiedSlots() int {
	b.lock.Lock()
	defer b.lock.Unlock()

	n := 0
	for _, card := range b.slotToCard {
		if card != NoCard {
			n++
		}
	}

	return n
}

// Card returns the card in a slot
func (b *Board) Card(slot int) (int, bool) {
	b.lock.Lock()
	defer b.lock.Unlock()

	if !b.validSlot(slot) || b.slotToCard[slot] == NoCard {
		return NoCard, false
	}

	return b.slotToCard[slot], true
}

// Slot returns the slot a card is in
func (b *Board) Slot(card int) (int, bool) {
	b.lock.Lock()
	defer b.lock.Unlock()

	if card < 0 || card >= len(b.cardToSlot) || b.cardToSlot[card] == NoCard {
		return NoCard, false
	}

	return b.cardToSlot[card], true
}

// Cards returns the cards on the board in slot order
func (b *Board) Cards() []int {
	b.lock.Lock()
	defer b.lock.Unlock()

	cards := make([]int, 0, len(b.slotToCard))
	for _, card := range b.slotToCard {
		if card != NoCard {
			cards = append(cards, card)
		}
	}

	return cards
}

// EmptySlots returns the empty slots, in the given order
func (b *Board) EmptySlots(order []int) []int {
	b.lock.Lock()
	defer b.lock.Unlock()

	var empty []int
	for _, slot := range order {
		if b.validSlot(slot) && b.slotToCard[slot] == NoCard {
			empty = append(empty, slot)
		}
	}

	return empty
}

// Claim returns the slots a player has tokens on and the cards in them
func (b *Board) Claim(player int) (slots []int, cards []int) {
	b.lock.Lock()
	defer b.lock.Unlock()

	if !b.validPlayer(player) {
		return nil, nil
	}

	slots = make([]int, len(b.tokens[player]))
	copy(slots, b.tokens[player])

	cards = make([]int, len(slots))
	for i, slot := range slots {
		cards[i] = b.slotToCard[slot]
	}

	return slots, cards
}

// Hints returns every match on the board as sorted slot lists
func (b *Board) Hints(oracle match.Oracle) [][]int {
	cards := b.Cards()
	matches := oracle.FindMatches(cards, match.Unlimited)

	b.lock.Lock()
	defer b.lock.Unlock()

	hints := make([][]int, 0, len(matches))
	for _, m := range matches {
		slots := make([]int, len(m))
		for i, card := range m {
			slots[i] = b.cardToSlot[card]
		}

		sort.Ints(slots)
		hints = append(hints, slots)
	}

	return hints
}

// Signal returns the channel a player's goroutine waits on
func (b *Board) Signal(player int) <-chan struct{} {
	return b.signals[player]
}

// Wake notifies a player without blocking
func (b *Board) Wake(player int) {
	b.lock.Lock()
	defer b.lock.Unlock()

	b.wake(player)
}

// WakeAll notifies every player without blocking
func (b *Board) WakeAll() {
	b.lock.Lock()
	defer b.lock.Unlock()

	for player := range b.signals {
		b.wake(player)
	}
}

func (b *Board) wake(player int) {
	if !b.validPlayer(player) {
		return
	}

	select {
	case b.signals[player] <- struct{}{}:
	default:
	}
}

func indexOf(slots []int, slot int) int {
	for i, s := range slots {
		if s == slot {
			return i
		}
	}

	return -1
}
