package mux

import (
	"net/http"
	"strconv"

	gmux "github.com/gorilla/mux"
	"github.com/sirupsen/logrus"
)

type toggleResponse struct {
	Player  int  `json:"player"`
	Slot    int  `json:"slot"`
	Toggled bool `json:"toggled"`
}

func (m *Mux) getGame() http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		writeJSON(w, http.StatusOK, m.game.State())
	}
}

func (m *Mux) postPlayerIDToggle() http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		vars := gmux.Vars(r)
		id, err := strconv.Atoi(vars["id"])
		if err != nil {
			writeJSONError(w, http.StatusBadRequest, err)
			return
		}

		slot, err := strconv.Atoi(vars["slot"])
		if err != nil {
			writeJSONError(w, http.StatusBadRequest, err)
			return
		}

		toggled, err := m.game.Toggle(id, slot)
		if err != nil {
			writeGameError(w, err)
			return
		}

		logrus.WithFields(logrus.Fields{
			"player":  id,
			"slot":    slot,
			"toggled": toggled,
			"remote":  remoteAddr(r),
		}).Trace("toggle requested over HTTP")

		writeJSON(w, http.StatusOK, toggleResponse{
			Player:  id,
			Slot:    slot,
			Toggled: toggled,
		})
	}
}
