package room

import (
	"errors"
	"setmatch-server/pkg/dealer"
	"sync"

	"github.com/sirupsen/logrus"
)

// historyLimit is how many recent events are replayed to a newly connected client
const historyLimit = 25

// Game is the part of a running game that clients may read and act on
type Game interface {
	State() dealer.State
	Toggle(player, slot int) (bool, error)
}

// Hub fans display events out to every connected websocket client
// It implements display.Display; publishing never blocks the game.
type Hub struct {
	game    Game
	clients map[*Client]bool
	history []*Event
	lock    sync.RWMutex

	connect    chan *Client
	disconnect chan *Client
	events     chan *Event
	close      chan bool
	closeOnce  sync.Once
}

// NewHub returns a new hub
func NewHub() *Hub {
	return &Hub{
		clients:    make(map[*Client]bool),
		connect:    make(chan *Client, 256),
		disconnect: make(chan *Client, 256),
		events:     make(chan *Event, 1024),
		close:      make(chan bool),
	}
}

// Attach sets the game clients act on
// Must be called before StartShift
func (h *Hub) Attach(game Game) {
	h.game = game
}

// StartShift starts the hub run loop
func (h *Hub) StartShift() {
	go h.runLoop()
}

// EndShift stops the run loop
func (h *Hub) EndShift() {
	h.closeOnce.Do(func() {
		close(h.close)
	})
}

// Clients will return a slice of connected (at the time) clients
func (h *Hub) Clients() []*Client {
	h.lock.RLock()
	defer h.lock.RUnlock()

	clients := make([]*Client, 0, len(h.clients))
	for client := range h.clients {
		clients = append(clients, client)
	}

	return clients
}

// History returns the events a new client is sent on connect
func (h *Hub) History() []*Event {
	h.lock.RLock()
	defer h.lock.RUnlock()

	history := make([]*Event, len(h.history))
	copy(history, h.history)
	return history
}

// ClientConnected is called when a client connects to the server
func (h *Hub) ClientConnected(client *Client) {
	h.connect <- client
}

// ClientDisconnected is called when a client disconnects from the server
func (h *Hub) ClientDisconnected(client *Client) {
	h.disconnect <- client
}

func (h *Hub) runLoop() {
	logrus.Debug("starting hub run loop")
	for {
		select {
		case client := <-h.connect:
			logrus.WithField("client", client.String()).Debug("client connected")
			h.addClient(client)
		case client := <-h.disconnect:
			logrus.WithField("client", client.String()).Debug("client disconnected")
			h.lock.Lock()
			delete(h.clients, client)
			h.lock.Unlock()
		case event := <-h.events:
			if !event.isTick() {
				h.addHistory(event)
			}

			for _, client := range h.Clients() {
				if !client.Send(event) {
					logrus.WithFields(logrus.Fields{
						"client": client.String(),
						"key":    event.Key,
					}).Trace("client buffer full, event dropped")
				}
			}
		case <-h.close:
			logrus.Debug("terminating hub run loop")
			return
		}
	}
}

// NOTE: must only be called from the run loop
func (h *Hub) addClient(client *Client) {
	h.lock.Lock()
	client.hub = h
	h.clients[client] = true
	h.lock.Unlock()

	for _, event := range h.History() {
		client.Send(event)
	}

	if h.game != nil {
		client.Send(newEvent("gameState", h.game.State()))
	}
}

// addHistory keeps the most recent events
// NOTE: must only be called from the run loop
func (h *Hub) addHistory(event *Event) {
	h.lock.Lock()
	defer h.lock.Unlock()

	m := append(h.history, event)
	if count := len(m); count > historyLimit {
		m = m[count-historyLimit:]
	}

	h.history = m
}

// publish queues an event for every client, dropping it if the hub is backed up
func (h *Hub) publish(key string, data interface{}) {
	select {
	case h.events <- newEvent(key, data):
	default:
		logrus.WithField("key", key).Trace("hub backed up, event dropped")
	}
}

// ReceivedMessage is called when a client sends a message to the server
func (h *Hub) ReceivedMessage(c *Client, msg *PayloadIn) {
	if h.game == nil {
		c.Send(newErrorResponse(msg.Context, errors.New("no game is running")))
		return
	}

	switch msg.Action {
	case "toggle":
		toggled, err := h.game.Toggle(msg.Player, msg.Slot)
		if err != nil {
			c.Send(newErrorResponse(msg.Context, err))
			return
		}

		c.Send(ok(msg.Context, map[string]bool{"toggled": toggled}))
	case "state":
		c.Send(ok(msg.Context, h.game.State()))
	default:
		logrus.WithField("msg", msg).Warn("unknown message")
		c.Send(newErrorResponse(msg.Context, errors.New("unknown action")))
	}
}
