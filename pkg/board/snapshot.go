package board

// Snapshot is a point-in-time copy of the board
type Snapshot struct {
	// Slots holds the card in each slot, or NoCard
	Slots []int `json:"slots"`

	// Tokens holds the slots each player has a token on, in placement order
	Tokens [][]int `json:"tokens"`

	// Claims are the players waiting for the dealer, in queue order
	Claims []int `json:"claims"`
}

// Snapshot copies the board state
func (b *Board) Snapshot() Snapshot {
	b.lock.Lock()
	defer b.lock.Unlock()

	s := Snapshot{
		Slots:  make([]int, len(b.slotToCard)),
		Tokens: make([][]int, len(b.tokens)),
	}

	copy(s.Slots, b.slotToCard)
	for player, slots := range b.tokens {
		s.Tokens[player] = make([]int, len(slots))
		copy(s.Tokens[player], slots)
	}

	s.Claims = b.queue.Pending()
	return s
}
