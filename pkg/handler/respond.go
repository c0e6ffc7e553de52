// Copyright (c) 2025 FutCuervo. All Rights Reserved.
// This is licensed software from FutCuervo, for limitations
// and restrictions contact your company contract manager.

package handler

import (
	"errors"
	"fmt"
	"io"
	"net/http"

	"github.com/futcuervo/club-trivia/pkg/attempt"
	"github.com/futcuervo/club-trivia/pkg/catalog"
	"github.com/futcuervo/club-trivia/pkg/game"
	"github.com/futcuervo/club-trivia/pkg/service"
	"github.com/futcuervo/club-trivia/pkg/teambuilder"

	"github.com/goccy/go-json"
	"github.com/sirupsen/logrus"
)

const maxBodyBytes = 1 << 20

// errorBody is the shape of every error response.
type errorBody struct {
	Error string `json:"error"`
}

func writeJSON(w http.ResponseWriter, status int, v any) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	if v == nil {
		return
	}
	if err := json.NewEncoder(w).Encode(v); err != nil {
		logrus.Warnf("failed to write response: %v", err)
	}
}

func writeError(w http.ResponseWriter, err error) {
	status := statusFor(err)
	if status >= http.StatusInternalServerError {
		logrus.Errorf("request failed: %v", err)
		writeJSON(w, status, errorBody{Error: http.StatusText(status)})
		return
	}
	writeJSON(w, status, errorBody{Error: err.Error()})
}

func decodeJSON(r *http.Request, v any) error {
	body := io.LimitReader(r.Body, maxBodyBytes)
	if err := json.NewDecoder(body).Decode(v); err != nil {
		return fmt.Errorf("%w: %v", errBadRequest, err)
	}
	return nil
}

var (
	errBadRequest   = errors.New("bad request")
	errUnauthorized = errors.New("authentication required")
	errForbidden    = errors.New("admin role required")
)

// statusFor maps domain errors onto HTTP status codes.
func statusFor(err error) int {
	switch {
	case errors.Is(err, errBadRequest),
		errors.Is(err, attempt.ErrInvalidResult),
		errors.Is(err, attempt.ErrInvalidDate),
		errors.Is(err, attempt.ErrUnknownGameType),
		errors.Is(err, catalog.ErrInvalid),
		errors.Is(err, teambuilder.ErrUnknownFormation),
		errors.Is(err, teambuilder.ErrEmptyName),
		errors.Is(err, service.ErrInvalidUsername),
		errors.Is(err, service.ErrWeakPassword):
		return http.StatusBadRequest
	case errors.Is(err, errUnauthorized),
		errors.Is(err, service.ErrInvalidCredentials),
		errors.Is(err, service.ErrInvalidToken):
		return http.StatusUnauthorized
	case errors.Is(err, errForbidden):
		return http.StatusForbidden
	case errors.Is(err, catalog.ErrNotFound),
		errors.Is(err, attempt.ErrNotFound),
		errors.Is(err, game.ErrSessionNotFound),
		errors.Is(err, game.ErrGameNotConfigured):
		return http.StatusNotFound
	case errors.Is(err, catalog.ErrConflict),
		errors.Is(err, service.ErrUsernameTaken),
		errors.Is(err, service.ErrSaveInProgress),
		errors.Is(err, game.ErrNotPlaying),
		errors.Is(err, game.ErrAlreadyPlaying):
		return http.StatusConflict
	case errors.Is(err, teambuilder.ErrNotFound),
		errors.Is(err, teambuilder.ErrWrongClub),
		errors.Is(err, teambuilder.ErrAlreadyUsed),
		errors.Is(err, teambuilder.ErrAmbiguous),
		errors.Is(err, teambuilder.ErrNoVacantPosition):
		return http.StatusUnprocessableEntity
	default:
		return http.StatusInternalServerError
	}
}
