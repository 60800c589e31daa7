package room

import (
	"setmatch-server/pkg/dealer"
	"setmatch-server/pkg/display"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

// compile time check
var _ display.Display = &Hub{}

type fakeGame struct {
	toggles [][2]int
}

func (f *fakeGame) State() dealer.State {
	return dealer.State{GameID: "abc", Policy: "presence"}
}

func (f *fakeGame) Toggle(player, slot int) (bool, error) {
	if player != 0 {
		return false, dealer.ErrUnknownPlayer
	}

	f.toggles = append(f.toggles, [2]int{player, slot})
	return true, nil
}

func receive(t *testing.T, c *Client) interface{} {
	t.Helper()
	select {
	case msg := <-c.SendChan():
		return msg
	case <-time.After(time.Second):
		t.Fatal("timed out waiting for a message")
		return nil
	}
}

func receiveEvent(t *testing.T, c *Client) *Event {
	t.Helper()
	msg := receive(t, c)
	event, ok := msg.(*Event)
	require.True(t, ok, "expected an event, got %#v", msg)
	return event
}

func TestHub_Broadcast(t *testing.T) {
	h := NewHub()
	h.Attach(&fakeGame{})
	h.StartShift()
	defer h.EndShift()

	c1 := NewClient(nil)
	c2 := NewClient(nil)
	h.ClientConnected(c1)
	h.ClientConnected(c2)

	for _, c := range []*Client{c1, c2} {
		event := receiveEvent(t, c)
		assert.Equal(t, "gameState", event.Key)
		assert.Equal(t, "abc", event.Data.(dealer.State).GameID)
	}

	h.PlaceCard(7, 3)
	h.SetCountdown(time.Millisecond*1500, true)

	for _, c := range []*Client{c1, c2} {
		event := receiveEvent(t, c)
		assert.Equal(t, "placeCard", event.Key)
		assert.Equal(t, cardData{Card: 7, Slot: 3}, event.Data)
		assert.NotEmpty(t, event.UUID)

		event = receiveEvent(t, c)
		assert.Equal(t, "countdown", event.Key)
		assert.Equal(t, timerData{Millis: 1500, Warn: true}, event.Data)
	}

	h.ClientDisconnected(c2)
	assert.Eventually(t, func() bool { return len(h.Clients()) == 1 }, time.Second, time.Millisecond)

	h.AnnounceWinners([]int{0, 1})
	event := receiveEvent(t, c1)
	assert.Equal(t, "winners", event.Key)
	assert.Equal(t, []int{0, 1}, event.Data)
}

func TestHub_HistoryReplay(t *testing.T) {
	h := NewHub()
	h.StartShift()
	defer h.EndShift()

	for slot := 0; slot < historyLimit+5; slot++ {
		h.PlaceCard(slot, slot)
	}

	assert.Eventually(t, func() bool {
		history := h.History()
		return len(history) == historyLimit && history[historyLimit-1].Data.(cardData).Slot == historyLimit+4
	}, time.Second, time.Millisecond)

	c := NewClient(nil)
	h.ClientConnected(c)

	first := receiveEvent(t, c)
	assert.Equal(t, cardData{Card: 5, Slot: 5}, first.Data)
	for i := 1; i < historyLimit; i++ {
		receiveEvent(t, c)
	}

	// no game attached, so no state follows the history
	select {
	case msg := <-c.SendChan():
		t.Errorf("unexpected message %#v", msg)
	case <-time.After(time.Millisecond * 20):
	}
}

func TestHub_HistorySkipsTimerTicks(t *testing.T) {
	h := NewHub()
	h.StartShift()
	defer h.EndShift()

	h.SetScore(1, 4)
	for i := 0; i < historyLimit*4; i++ {
		h.SetCountdown(time.Duration(i)*time.Millisecond, true)
		h.SetElapsed(time.Duration(i) * time.Millisecond)
		h.SetFreeze(0, time.Second)
	}
	h.PlaceCard(3, 1)

	assert.Eventually(t, func() bool { return len(h.History()) == 2 }, time.Second, time.Millisecond)
	history := h.History()
	assert.Equal(t, "score", history[0].Key)
	assert.Equal(t, "placeCard", history[1].Key)
}

func TestHub_ReceivedMessage(t *testing.T) {
	a := assert.New(t)
	game := &fakeGame{}
	h := NewHub()
	c := NewClient(nil)

	h.ReceivedMessage(c, &PayloadIn{Action: "toggle", Context: "x"})
	res := receive(t, c).(*Response)
	a.Equal("error", res.Key)
	a.Equal("no game is running", res.Value)

	h.Attach(game)
	h.ReceivedMessage(c, &PayloadIn{Action: "toggle", Player: 0, Slot: 4, Context: "a"})
	res = receive(t, c).(*Response)
	a.Equal(ok("a", map[string]bool{"toggled": true}), res)
	a.Equal([][2]int{{0, 4}}, game.toggles)

	h.ReceivedMessage(c, &PayloadIn{Action: "toggle", Player: 3, Slot: 4, Context: "b"})
	res = receive(t, c).(*Response)
	a.Equal(newErrorResponse("b", dealer.ErrUnknownPlayer), res)

	h.ReceivedMessage(c, &PayloadIn{Action: "state", Context: "c"})
	res = receive(t, c).(*Response)
	a.Equal("OK", res.Value)
	a.Equal("presence", res.Data.(dealer.State).Policy)

	h.ReceivedMessage(c, &PayloadIn{Action: "dance", Context: "d"})
	res = receive(t, c).(*Response)
	a.Equal("unknown action", res.Value)
}

func TestClient_Send(t *testing.T) {
	c := NewClient(nil)
	assert.Len(t, c.String(), 8)
	assert.NotEqual(t, c.String(), NewClient(nil).String())

	for i := 0; i < sendBuffer; i++ {
		assert.True(t, c.Send(i))
	}

	assert.False(t, c.Send("dropped"), "a full buffer drops the message")
	assert.Equal(t, 0, <-c.SendChan())
}

func TestClient_ReceivedMessageWithoutHub(t *testing.T) {
	c := NewClient(nil)
	c.ReceivedMessage(&PayloadIn{Action: "toggle"})

	select {
	case msg := <-c.SendChan():
		t.Errorf("unexpected message %#v", msg)
	default:
	}
}
