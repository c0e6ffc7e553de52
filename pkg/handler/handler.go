// Copyright (c) 2025 FutCuervo. All Rights Reserved.
// This is licensed software from FutCuervo, for limitations
// and restrictions contact your company contract manager.

// Package handler is the REST and WebSocket surface of the service.
package handler

import (
	"net/http"
	"time"

	"github.com/futcuervo/club-trivia/pkg/attempt"
	"github.com/futcuervo/club-trivia/pkg/catalog"
	"github.com/futcuervo/club-trivia/pkg/game"
	"github.com/futcuervo/club-trivia/pkg/service"

	"github.com/gorilla/websocket"
)

// Config wires the handler to its services.
type Config struct {
	Auth     *service.AuthService
	Attempts *service.AttemptService
	Catalog  *catalog.Repository
	Games    *game.Catalog
	Sessions *game.Manager
	Location *time.Location
	// AllowedOrigins for WebSocket upgrades; empty allows any origin.
	AllowedOrigins []string
}

// Handler serves the HTTP API.
type Handler struct {
	auth     *service.AuthService
	attempts *service.AttemptService
	catalog  *catalog.Repository
	games    *game.Catalog
	sessions *game.Manager
	location *time.Location
	now      func() time.Time
	admin    map[string]adminResource
	upgrader websocket.Upgrader
}

func New(cfg Config) *Handler {
	loc := cfg.Location
	if loc == nil {
		loc = time.UTC
	}
	h := &Handler{
		auth:     cfg.Auth,
		attempts: cfg.Attempts,
		catalog:  cfg.Catalog,
		games:    cfg.Games,
		sessions: cfg.Sessions,
		location: loc,
		now:      time.Now,
		admin:    adminResources(cfg.Catalog),
	}
	h.upgrader = websocket.Upgrader{
		ReadBufferSize:  1024,
		WriteBufferSize: 1024,
		CheckOrigin:     originChecker(cfg.AllowedOrigins),
	}
	return h
}

// Routes builds the API mux wrapped in auth and metrics middleware.
func (h *Handler) Routes() http.Handler {
	mux := http.NewServeMux()

	mux.HandleFunc("POST /api/auth/register", h.register)
	mux.HandleFunc("POST /api/auth/login", h.login)
	mux.HandleFunc("POST /api/auth/refresh", h.refresh)
	mux.HandleFunc("POST /api/auth/logout", h.logout)

	mux.HandleFunc("GET /api/games", h.listGames)
	mux.HandleFunc("POST /api/games/{type}/save", requireUser(h.saveAttempt))
	mux.HandleFunc("GET /api/games/{type}/attempt", requireUser(h.getAttempt))
	mux.HandleFunc("GET /api/games/{type}/history", requireUser(h.getHistory))
	mux.HandleFunc("POST /api/games/{type}/validate", h.validateTeam)

	mux.HandleFunc("GET /api/song-game", h.dailyAlias(attempt.GameSong))
	mux.HandleFunc("GET /api/career-game", h.dailyAlias(attempt.GameCareer))
	mux.HandleFunc("GET /api/daily/{gameType}", h.getDaily)

	mux.HandleFunc("POST /api/sessions", h.createSession)
	mux.HandleFunc("GET /api/sessions/{id}", h.getSession)
	mux.HandleFunc("POST /api/sessions/{id}/answer", h.answerSession)
	mux.HandleFunc("POST /api/sessions/{id}/end", h.endSession)
	mux.HandleFunc("GET /api/sessions/{id}/events", h.sessionEvents)

	mux.HandleFunc("GET /api/admin/{kind}", requireAdmin(h.adminList))
	mux.HandleFunc("POST /api/admin/{kind}", requireAdmin(h.adminCreate))
	mux.HandleFunc("GET /api/admin/{kind}/{id}", requireAdmin(h.adminGet))
	mux.HandleFunc("PUT /api/admin/{kind}/{id}", requireAdmin(h.adminUpdate))
	mux.HandleFunc("DELETE /api/admin/{kind}/{id}", requireAdmin(h.adminDelete))
	mux.HandleFunc("PUT /api/admin/daily-games", requireAdmin(h.putDailyGames))

	return h.authenticate(instrument(mux))
}

func (h *Handler) today() string {
	return attempt.Today(h.now(), h.location)
}

func (h *Handler) listGames(w http.ResponseWriter, r *http.Request) {
	writeJSON(w, http.StatusOK, h.games.All())
}

func originChecker(allowed []string) func(*http.Request) bool {
	if len(allowed) == 0 {
		return func(*http.Request) bool { return true }
	}
	set := make(map[string]struct{}, len(allowed))
	for _, o := range allowed {
		set[o] = struct{}{}
	}
	return func(r *http.Request) bool {
		_, ok := set[r.Header.Get("Origin")]
		return ok
	}
}
