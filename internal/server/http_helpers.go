package server

import (
	"encoding/json"
	"errors"
	"io"
	"net/http"

	"github.com/msuss/codenames/internal/game"
)

func readJSON(body io.Reader, dest any) error {
	decoder := json.NewDecoder(body)
	decoder.DisallowUnknownFields()
	return decoder.Decode(dest)
}

func writeJSON(w http.ResponseWriter, status int, payload any) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	_ = json.NewEncoder(w).Encode(payload)
}

func writeError(w http.ResponseWriter, status int, message string) {
	writeJSON(w, status, map[string]string{
		"error": message,
	})
}

// writeEngineError maps engine rejections to HTTP statuses. Everything the
// engine refuses is a caller problem, never a partial mutation.
func writeEngineError(w http.ResponseWriter, err error) {
	switch {
	case errors.Is(err, errGameNotFound), errors.Is(err, game.ErrCardNotFound):
		writeError(w, http.StatusNotFound, err.Error())
	case errors.Is(err, game.ErrWrongPhase), errors.Is(err, game.ErrWrongTurn), errors.Is(err, game.ErrAlreadyRevealed):
		writeError(w, http.StatusConflict, err.Error())
	case errors.Is(err, game.ErrIllegalClue), errors.Is(err, game.ErrInsufficientWordPool):
		writeError(w, http.StatusBadRequest, err.Error())
	default:
		writeError(w, http.StatusInternalServerError, err.Error())
	}
}
