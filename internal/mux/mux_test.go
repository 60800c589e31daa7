package mux

import (
	"net/http/httptest"
	"setmatch-server/pkg/dealer"
	"setmatch-server/pkg/room"
	"strings"
	"sync"
	"testing"
	"time"

	"github.com/gorilla/websocket"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

type fakeGame struct {
	lock    sync.Mutex
	toggles []int
}

func (f *fakeGame) State() dealer.State {
	return dealer.State{
		GameID:    "game-1",
		Policy:    "countdown",
		Round:     2,
		CardsLeft: 69,
		Players: []dealer.PlayerState{
			{ID: 0, Name: "Alice", Human: true, Score: 3, Outcome: "none"},
		},
	}
}

func (f *fakeGame) Toggle(player, slot int) (bool, error) {
	switch {
	case player == 1:
		return false, dealer.ErrNotHuman
	case player > 1:
		return false, dealer.ErrUnknownPlayer
	case slot >= 12:
		return false, dealer.ErrSlotRange
	}

	f.lock.Lock()
	defer f.lock.Unlock()
	f.toggles = append(f.toggles, slot)
	return slot != 11, nil
}

func (f *fakeGame) recorded() []int {
	f.lock.Lock()
	defer f.lock.Unlock()
	return append([]int(nil), f.toggles...)
}

func newTestMux(t *testing.T, game room.Game) *Mux {
	t.Helper()

	hub := room.NewHub()
	hub.Attach(game)
	hub.StartShift()
	t.Cleanup(hub.EndShift)

	return NewMux("v1.2.3", game, hub)
}

func TestGetGame(t *testing.T) {
	ts := httptest.NewServer(newTestMux(t, &fakeGame{}))
	defer ts.Close()

	var state dealer.State
	assertGet(t, ts, "/game", &state, 200)
	assert.Equal(t, "game-1", state.GameID)
	assert.Equal(t, "countdown", state.Policy)
	assert.Equal(t, 69, state.CardsLeft)
	assert.Equal(t, 3, state.Players[0].Score)
}

func TestPostPlayerIDToggle(t *testing.T) {
	game := &fakeGame{}
	ts := httptest.NewServer(newTestMux(t, game))
	defer ts.Close()

	var resp toggleResponse
	assertPost(t, ts, "/player/0/toggle/4", &resp, 200)
	assert.Equal(t, toggleResponse{Player: 0, Slot: 4, Toggled: true}, resp)

	assertPost(t, ts, "/player/0/toggle/11", &resp, 200)
	assert.False(t, resp.Toggled, "dropped presses are not errors")
	assert.Equal(t, []int{4, 11}, game.recorded())

	var errObj errorResponse
	assertPost(t, ts, "/player/1/toggle/4", &errObj, 400)
	assert.Equal(t, "player is controlled by the computer", errObj.Message)

	assertPost(t, ts, "/player/0/toggle/12", &errObj, 400)
	assert.Equal(t, "slot is out of range", errObj.Message)

	assertPost(t, ts, "/player/7/toggle/0", &errObj, 404)
	assert.Equal(t, "player not found", errObj.Message)

	assertPost(t, ts, "/player/0/toggle/99999999999999999999", &errObj, 400)

	// not routed
	assertPost(t, ts, "/player/0/toggle/-1", nil, 404)
	assertGet(t, ts, "/player/0/toggle/1", nil, 405)
}

func TestWebSocket(t *testing.T) {
	game := &fakeGame{}
	m := newTestMux(t, game)
	ts := httptest.NewServer(m)
	defer ts.Close()

	conn, _, err := websocket.DefaultDialer.Dial("ws"+strings.TrimPrefix(ts.URL, "http")+"/ws", nil)
	require.NoError(t, err)
	defer conn.Close()
	_ = conn.SetReadDeadline(time.Now().Add(time.Second * 5))

	var event struct {
		Key  string       `json:"key"`
		Data dealer.State `json:"data"`
		UUID string       `json:"uuid"`
	}

	require.NoError(t, conn.ReadJSON(&event))
	assert.Equal(t, "gameState", event.Key)
	assert.Equal(t, "game-1", event.Data.GameID)
	assert.NotEmpty(t, event.UUID)

	require.NoError(t, conn.WriteJSON(room.PayloadIn{Action: "toggle", Player: 0, Slot: 2, Context: "ctx-1"}))

	var resp struct {
		Key     string          `json:"key"`
		Value   string          `json:"value"`
		Data    map[string]bool `json:"data"`
		Context string          `json:"context"`
	}

	require.NoError(t, conn.ReadJSON(&resp))
	assert.Equal(t, "status", resp.Key)
	assert.Equal(t, "ctx-1", resp.Context)
	assert.True(t, resp.Data["toggled"])
	assert.Equal(t, []int{2}, game.recorded())

	m.hub.PlaceCard(5, 2)
	var placed struct {
		Key  string `json:"key"`
		Data struct {
			Card int `json:"card"`
			Slot int `json:"slot"`
		} `json:"data"`
	}

	require.NoError(t, conn.ReadJSON(&placed))
	assert.Equal(t, "placeCard", placed.Key)
	assert.Equal(t, 5, placed.Data.Card)
	assert.Equal(t, 2, placed.Data.Slot)

	var health healthResponse
	assertGet(t, ts, "/health", &health, 200)
	assert.Equal(t, 1, health.Clients)

	_ = conn.WriteMessage(websocket.CloseMessage, websocket.FormatCloseMessage(websocket.CloseNormalClosure, ""))
	assert.Eventually(t, func() bool { return len(m.hub.Clients()) == 0 }, time.Second*2, time.Millisecond*10)
}
