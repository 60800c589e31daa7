package room

import (
	"time"

	"github.com/google/uuid"
)

// Event is a display update broadcast to every connected client
type Event struct {
	Key  string      `json:"key"`
	Data interface{} `json:"data"`
	UUID string      `json:"uuid"`
	Time time.Time   `json:"time"`
}

// timer ticks are only of interest as they happen, so they are not replayed
var tickKeys = map[string]bool{
	"countdown": true,
	"elapsed":   true,
	"freeze":    true,
}

func (e *Event) isTick() bool {
	return tickKeys[e.Key]
}

func newEvent(key string, data interface{}) *Event {
	return &Event{
		Key:  key,
		Data: data,
		UUID: uuid.New().String(),
		Time: time.Now(),
	}
}

// Response is sent to a single client in reply to a message
type Response struct {
	Key     string      `json:"key"`
	Value   string      `json:"value"`
	Data    interface{} `json:"data,omitempty"`
	Context string      `json:"context"`
}

// PayloadIn is the format we expect from the JS client
type PayloadIn struct {
	Action string `json:"action"`
	Player int    `json:"player"`
	Slot   int    `json:"slot"`

	// Context will be passed back on any outgoing message
	Context string `json:"context"`
}

func ok(ctx string, data interface{}) *Response {
	return &Response{
		Key:     "status",
		Value:   "OK",
		Data:    data,
		Context: ctx,
	}
}

func newErrorResponse(ctx string, err error) *Response {
	return &Response{
		Key:     "error",
		Value:   err.Error(),
		Context: ctx,
	}
}
