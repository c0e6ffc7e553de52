// Copyright (c) 2025 FutCuervo. All Rights Reserved.
// This is licensed software from FutCuervo, for limitations
// and restrictions contact your company contract manager.

package handler

import (
	"net/http"

	"github.com/futcuervo/club-trivia/pkg/attempt"
)

func (h *Handler) dailyAlias(gameType attempt.GameType) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		h.serveDaily(w, r, gameType)
	}
}

func (h *Handler) getDaily(w http.ResponseWriter, r *http.Request) {
	gameType, err := attempt.ParseGameType(r.PathValue("gameType"))
	if err != nil {
		writeError(w, err)
		return
	}
	h.serveDaily(w, r, gameType)
}

// serveDaily returns the puzzle for ?clubId= on ?date=, today by default.
func (h *Handler) serveDaily(w http.ResponseWriter, r *http.Request, gameType attempt.GameType) {
	clubID, err := requiredQuery(r, "clubId")
	if err != nil {
		writeError(w, err)
		return
	}
	date := r.URL.Query().Get("date")
	if date == "" {
		date = h.today()
	} else if _, err := attempt.ParseDate(date); err != nil {
		writeError(w, err)
		return
	}

	daily, err := h.catalog.DailyGame(r.Context(), string(gameType), clubID, date)
	if err != nil {
		writeError(w, err)
		return
	}
	writeJSON(w, http.StatusOK, daily)
}
