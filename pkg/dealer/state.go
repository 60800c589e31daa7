package dealer

import "setmatch-server/pkg/board"

// PlayerState is the public view of a player
type PlayerState struct {
	ID        int    `json:"id"`
	Name      string `json:"name"`
	Human     bool   `json:"human"`
	Score     int    `json:"score"`
	Outcome   string `json:"outcome"`
	Blocked   bool   `json:"blocked"`
	Resetting bool   `json:"resetting"`
}

// State is a point-in-time view of the game, safe to take from any goroutine
type State struct {
	GameID    string         `json:"gameId"`
	Policy    string         `json:"policy"`
	Round     int            `json:"round"`
	CardsLeft int            `json:"cardsLeft"`
	Board     board.Snapshot `json:"board"`
	Players   []PlayerState  `json:"players"`
}

// State returns the current game state
func (d *Dealer) State() State {
	s := State{
		GameID:    d.id,
		Policy:    d.policy.Name(),
		Round:     d.Rounds(),
		CardsLeft: d.CardsLeft(),
		Board:     d.board.Snapshot(),
		Players:   make([]PlayerState, len(d.players)),
	}

	for i, p := range d.players {
		s.Players[i] = PlayerState{
			ID:        p.ID(),
			Name:      p.Name(),
			Human:     p.IsHuman(),
			Score:     p.Score(),
			Outcome:   p.PendingOutcome().String(),
			Blocked:   len(s.Board.Tokens[i]) >= d.board.ClaimSize(),
			Resetting: p.IsResetting(),
		}
	}

	return s
}
