package mux

import (
	"encoding/json"
	"errors"
	"net/http"
	"setmatch-server/pkg/dealer"
	"strings"

	"github.com/sirupsen/logrus"
)

func remoteAddr(r *http.Request) string {
	parts := strings.Split(r.RemoteAddr, ":")
	if len(parts) == 1 {
		return parts[0]
	}

	return strings.Join(parts[0:len(parts)-1], ":")
}

func writeJSON(w http.ResponseWriter, statusCode int, body interface{}) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(statusCode)
	if err := json.NewEncoder(w).Encode(body); err != nil {
		logrus.WithError(err).Error("could not write JSON response")
	}
}

type errorResponse struct {
	Message    string `json:"message"`
	StatusCode int    `json:"statusCode"`
}

// an unknown player is a 404, any other user error a 400, everything else a 500
func writeGameError(w http.ResponseWriter, err error) {
	if errors.Is(err, dealer.ErrUnknownPlayer) {
		writeJSONError(w, http.StatusNotFound, err)
		return
	}

	var ue dealer.UserError
	if errors.As(err, &ue) {
		writeJSONError(w, http.StatusBadRequest, ue)
		return
	}

	writeJSONError(w, http.StatusInternalServerError, err)
}

func writeJSONError(w http.ResponseWriter, statusCode int, err error) {
	var msg string

	if statusCode < 500 && err != nil {
		msg = err.Error()
	} else {
		msg = http.StatusText(statusCode)
	}

	if statusCode >= 500 {
		logrus.WithField("statusCode", statusCode).Error(err)
	}

	writeJSON(w, statusCode, errorResponse{
		Message:    msg,
		StatusCode: statusCode,
	})
}
