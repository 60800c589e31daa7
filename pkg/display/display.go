package display

import "time"

// Display receives one-way notifications about the game
// Implementations must return quickly and never call back into the game.
type Display interface {
	PlaceCard(card, slot int)
	RemoveCard(slot int)
	PlaceToken(player, slot int)
	RemoveToken(player, slot int)
	SetScore(player, score int)
	SetFreeze(player int, remaining time.Duration)
	SetCountdown(remaining time.Duration, warn bool)
	SetElapsed(elapsed time.Duration)
	AnnounceWinners(players []int)
}

// Nop ignores every notification
type Nop struct{}

var _ Display = Nop{}

func (Nop) PlaceCard(int, int)               {}
func (Nop) RemoveCard(int)                   {}
func (Nop) PlaceToken(int, int)              {}
func (Nop) RemoveToken(int, int)             {}
func (Nop) SetScore(int, int)                {}
func (Nop) SetFreeze(int, time.Duration)     {}
func (Nop) SetCountdown(time.Duration, bool) {}
func (Nop) SetElapsed(time.Duration)         {}
func (Nop) AnnounceWinners([]int)            {}

// Multi forwards every notification to each display in order
type Multi []Display

var _ Display = Multi(nil)

// PlaceCard forwards the notification
func (m Multi) PlaceCard(card, slot int) {
	for _, d := range m {
		d.PlaceCard(card, slot)
	}
}

// RemoveCard forwards the notification
func (m Multi) RemoveCard(slot int) {
	for _, d := range m {
		d.RemoveCard(slot)
	}
}

// PlaceToken forwards the notification
func (m Multi) PlaceToken(player, slot int) {
	for _, d := range m {
		d.PlaceToken(player, slot)
	}
}

// RemoveToken forwards the notification
func (m Multi) RemoveToken(player, slot int) {
	for _, d := range m {
		d.RemoveToken(player, slot)
	}
}

// SetScore forwards the notification
func (m Multi) SetScore(player, score int) {
	for _, d := range m {
		d.SetScore(player, score)
	}
}

// SetFreeze forwards the notification
func (m Multi) SetFreeze(player int, remaining time.Duration) {
	for _, d := range m {
		d.SetFreeze(player, remaining)
	}
}

// SetCountdown forwards the notification
func (m Multi) SetCountdown(remaining time.Duration, warn bool) {
	for _, d := range m {
		d.SetCountdown(remaining, warn)
	}
}

// SetElapsed forwards the notification
func (m Multi) SetElapsed(elapsed time.Duration) {
	for _, d := range m {
		d.SetElapsed(elapsed)
	}
}

// AnnounceWinners forwards the notification
func (m Multi) AnnounceWinners(players []int) {
	for _, d := range m {
		d.AnnounceWinners(players)
	}
}
