package room

import "time"

type cardData struct {
	Card int `json:"card"`
	Slot int `json:"slot"`
}

type tokenData struct {
	Player int `json:"player"`
	Slot   int `json:"slot"`
}

type scoreData struct {
	Player int `json:"player"`
	Score  int `json:"score"`
}

type freezeData struct {
	Player int   `json:"player"`
	Millis int64 `json:"millis"`
}

type timerData struct {
	Millis int64 `json:"millis"`
	Warn   bool  `json:"warn"`
}

// PlaceCard broadcasts a card placement
func (h *Hub) PlaceCard(card, slot int) {
	h.publish("placeCard", cardData{Card: card, Slot: slot})
}

// RemoveCard broadcasts a slot being cleared
func (h *Hub) RemoveCard(slot int) {
	h.publish("removeCard", cardData{Card: -1, Slot: slot})
}

// PlaceToken broadcasts a token placement
func (h *Hub) PlaceToken(player, slot int) {
	h.publish("placeToken", tokenData{Player: player, Slot: slot})
}

// RemoveToken broadcasts a token removal
func (h *Hub) RemoveToken(player, slot int) {
	h.publish("removeToken", tokenData{Player: player, Slot: slot})
}

// SetScore broadcasts a score change
func (h *Hub) SetScore(player, score int) {
	h.publish("score", scoreData{Player: player, Score: score})
}

// SetFreeze broadcasts the remaining freeze of a player
func (h *Hub) SetFreeze(player int, remaining time.Duration) {
	h.publish("freeze", freezeData{Player: player, Millis: remaining.Milliseconds()})
}

// SetCountdown broadcasts the remaining round time
func (h *Hub) SetCountdown(remaining time.Duration, warn bool) {
	h.publish("countdown", timerData{Millis: remaining.Milliseconds(), Warn: warn})
}

// SetElapsed broadcasts the elapsed round time
func (h *Hub) SetElapsed(elapsed time.Duration) {
	h.publish("elapsed", timerData{Millis: elapsed.Milliseconds()})
}

// AnnounceWinners broadcasts the end of the game
func (h *Hub) AnnounceWinners(players []int) {
	h.publish("winners", players)
}
