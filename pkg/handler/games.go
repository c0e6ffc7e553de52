// Copyright (c) 2025 FutCuervo. All Rights Reserved.
// This is licensed software from FutCuervo, for limitations
// and restrictions contact your company contract manager.

package handler

import (
	"fmt"
	"net/http"
	"strconv"

	"github.com/futcuervo/club-trivia/pkg/attempt"
)

const (
	defaultHistoryLimit = 30
	maxHistoryLimit     = 365
)

func pathGameType(r *http.Request) (attempt.GameType, error) {
	return attempt.ParseGameType(r.PathValue("type"))
}

func requiredQuery(r *http.Request, name string) (string, error) {
	v := r.URL.Query().Get(name)
	if v == "" {
		return "", fmt.Errorf("%w: %s is required", errBadRequest, name)
	}
	return v, nil
}

// saveAttempt stores the caller's result for today and returns the attempt
// with its streak and record applied.
func (h *Handler) saveAttempt(w http.ResponseWriter, r *http.Request) {
	p, _ := PrincipalFrom(r.Context())
	gameType, err := pathGameType(r)
	if err != nil {
		writeError(w, err)
		return
	}
	var result attempt.Result
	if err := decodeJSON(r, &result); err != nil {
		writeError(w, err)
		return
	}

	saved, err := h.attempts.SaveAttempt(r.Context(), p.UserID, gameType, result)
	if err != nil {
		writeError(w, err)
		return
	}
	writeJSON(w, http.StatusOK, saved)
}

func (h *Handler) getAttempt(w http.ResponseWriter, r *http.Request) {
	p, _ := PrincipalFrom(r.Context())
	gameType, err := pathGameType(r)
	if err != nil {
		writeError(w, err)
		return
	}
	clubID, err := requiredQuery(r, "clubId")
	if err != nil {
		writeError(w, err)
		return
	}

	summary, err := h.attempts.Summary(r.Context(), p.UserID, clubID, gameType)
	if err != nil {
		writeError(w, err)
		return
	}
	writeJSON(w, http.StatusOK, summary)
}

func (h *Handler) getHistory(w http.ResponseWriter, r *http.Request) {
	p, _ := PrincipalFrom(r.Context())
	gameType, err := pathGameType(r)
	if err != nil {
		writeError(w, err)
		return
	}
	clubID, err := requiredQuery(r, "clubId")
	if err != nil {
		writeError(w, err)
		return
	}

	limit := defaultHistoryLimit
	if raw := r.URL.Query().Get("limit"); raw != "" {
		n, err := strconv.Atoi(raw)
		if err != nil || n < 1 {
			writeError(w, fmt.Errorf("%w: limit must be a positive integer", errBadRequest))
			return
		}
		limit = min(n, maxHistoryLimit)
	}

	history, err := h.attempts.History(r.Context(), p.UserID, clubID, gameType, limit)
	if err != nil {
		writeError(w, err)
		return
	}
	writeJSON(w, http.StatusOK, history)
}
