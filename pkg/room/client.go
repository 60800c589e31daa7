package room

import (
	"setmatch-server/pkg/token"

	"github.com/google/uuid"
	"github.com/gorilla/websocket"
	"github.com/sirupsen/logrus"
)

// sendBuffer is how many messages may wait for a slow client before new ones are dropped
const sendBuffer = 256

// Client is a client connected to the server via websockets
type Client struct {
	// Conn is the underlying websocket connection
	Conn *websocket.Conn

	// send is a channel for sending messages to the client
	send chan interface{}

	// Close is a channel for closing the client
	Close chan string

	// CloseError contains the reason why the connection was closed
	CloseError error

	id  string
	hub *Hub
}

// NewClient returns a new client object
func NewClient(conn *websocket.Conn) *Client {
	id, err := token.Generate(8)
	if err != nil {
		id = uuid.New().String()
	}

	return &Client{
		send:  make(chan interface{}, sendBuffer),
		Close: make(chan string),
		Conn:  conn,
		id:    id,
	}
}

// Send sends a message to the web client without blocking
// Returns false if the client's buffer is full and the message was dropped
func (c *Client) Send(msg interface{}) bool {
	select {
	case c.send <- msg:
		return true
	default:
		return false
	}
}

// SendChan returns a read-only channel
func (c *Client) SendChan() <-chan interface{} {
	return c.send
}

// String returns a traceable identifier for the client
func (c *Client) String() string {
	return c.id
}

// ReceivedMessage is called when the server receives a message from a connected client
func (c *Client) ReceivedMessage(msg *PayloadIn) {
	if c.hub == nil {
		logrus.WithField("msg", msg).Warn("received message, but hub not found")
		return
	}

	c.hub.ReceivedMessage(c, msg)
}
