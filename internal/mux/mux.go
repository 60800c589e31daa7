package mux

import (
	"net/http"
	"setmatch-server/pkg/room"

	gmux "github.com/gorilla/mux"
)

// Mux handles HTTP requests
type Mux struct {
	*gmux.Router
	version string
	game    room.Game
	hub     *room.Hub
}

// NewMux returns a new HTTP mux
// The hub must already be running (see room.Hub.StartShift)
func NewMux(version string, game room.Game, hub *room.Hub) *Mux {
	this := &Mux{
		Router:  gmux.NewRouter(),
		version: version,
		game:    game,
		hub:     hub,
	}

	r := this.Router
	r.Methods(http.MethodGet).Path("/health").Handler(this.getHealth())
	r.Methods(http.MethodGet).Path("/game").Handler(this.getGame())
	r.Methods(http.MethodPost).Path("/player/{id:[0-9]+}/toggle/{slot:[0-9]+}").Handler(this.postPlayerIDToggle())
	r.Methods(http.MethodGet).Path("/ws").Handler(this.getWS())

	return this
}
