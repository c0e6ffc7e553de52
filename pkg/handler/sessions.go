// Copyright (c) 2025 FutCuervo. All Rights Reserved.
// This is licensed software from FutCuervo, for limitations
// and restrictions contact your company contract manager.

package handler

import (
	"fmt"
	"net/http"
	"time"

	"github.com/futcuervo/club-trivia/pkg/attempt"
	"github.com/futcuervo/club-trivia/pkg/game"

	"github.com/gorilla/websocket"
	"github.com/sirupsen/logrus"
)

const (
	wsWriteWait  = 10 * time.Second
	wsPongWait   = 60 * time.Second
	wsPingPeriod = wsPongWait * 9 / 10
)

type createSessionRequest struct {
	GameType string `json:"gameType"`
	ClubID   string `json:"clubId"`
}

// answerRequest reports one answer. TotalQuestions overrides the game
// definition for games whose length depends on the puzzle.
type answerRequest struct {
	Correct        bool   `json:"correct"`
	Message        string `json:"message"`
	TotalQuestions int    `json:"totalQuestions"`
}

type endRequest struct {
	Won bool `json:"won"`
}

// createSession starts a game. Sessions of a logged-in user save their
// result as an attempt when they end.
func (h *Handler) createSession(w http.ResponseWriter, r *http.Request) {
	var req createSessionRequest
	if err := decodeJSON(r, &req); err != nil {
		writeError(w, err)
		return
	}
	gameType, err := attempt.ParseGameType(req.GameType)
	if err != nil {
		writeError(w, err)
		return
	}
	if req.ClubID == "" {
		writeError(w, fmt.Errorf("%w: clubId is required", errBadRequest))
		return
	}

	owner := ""
	if p, ok := PrincipalFrom(r.Context()); ok {
		owner = p.UserID
	}
	session, err := h.sessions.Create(gameType, req.ClubID, owner)
	if err != nil {
		writeError(w, err)
		return
	}
	writeJSON(w, http.StatusCreated, session.Snapshot())
}

// session loads the path session and checks the caller may drive it.
func (h *Handler) session(r *http.Request) (*game.Session, error) {
	session, err := h.sessions.Get(r.PathValue("id"))
	if err != nil {
		return nil, err
	}
	if owner := session.Owner(); owner != "" {
		p, ok := PrincipalFrom(r.Context())
		if !ok {
			return nil, errUnauthorized
		}
		if p.UserID != owner {
			return nil, fmt.Errorf("%w: session %s", game.ErrSessionNotFound, session.ID())
		}
	}
	return session, nil
}

func (h *Handler) getSession(w http.ResponseWriter, r *http.Request) {
	session, err := h.session(r)
	if err != nil {
		writeError(w, err)
		return
	}
	writeJSON(w, http.StatusOK, session.Snapshot())
}

func (h *Handler) answerSession(w http.ResponseWriter, r *http.Request) {
	session, err := h.session(r)
	if err != nil {
		writeError(w, err)
		return
	}
	var req answerRequest
	if err := decodeJSON(r, &req); err != nil {
		writeError(w, err)
		return
	}

	if req.Correct {
		err = session.CorrectAnswer(req.TotalQuestions)
	} else {
		err = session.IncorrectAnswer(req.Message)
	}
	if err != nil {
		writeError(w, err)
		return
	}
	writeJSON(w, http.StatusOK, session.Snapshot())
}

func (h *Handler) endSession(w http.ResponseWriter, r *http.Request) {
	session, err := h.session(r)
	if err != nil {
		writeError(w, err)
		return
	}
	var req endRequest
	if err := decodeJSON(r, &req); err != nil {
		writeError(w, err)
		return
	}
	if err := session.End(req.Won); err != nil {
		writeError(w, err)
		return
	}
	writeJSON(w, http.StatusOK, session.Snapshot())
}

// sessionEvents streams session events over a WebSocket until the game is over
// or the client goes away.
func (h *Handler) sessionEvents(w http.ResponseWriter, r *http.Request) {
	session, err := h.session(r)
	if err != nil {
		writeError(w, err)
		return
	}

	conn, err := h.upgrader.Upgrade(w, r, nil)
	if err != nil {
		logrus.Warnf("websocket upgrade failed for session %s: %v", session.ID(), err)
		return
	}
	defer conn.Close()

	events, cancel := session.Subscribe()
	defer cancel()

	closed := make(chan struct{})
	go readUntilClosed(conn, closed)

	snap := session.Snapshot()
	first := game.Event{Type: game.EventStarted, Session: snap}
	if snap.Status.Over() {
		first.Type = game.EventOver
	}
	if err := writeEvent(conn, first); err != nil || snap.Status.Over() {
		closeWebSocket(conn)
		return
	}

	ping := time.NewTicker(wsPingPeriod)
	defer ping.Stop()

	for {
		select {
		case <-closed:
			return
		case <-r.Context().Done():
			return
		case ev, ok := <-events:
			if !ok {
				closeWebSocket(conn)
				return
			}
			if err := writeEvent(conn, ev); err != nil {
				logrus.Debugf("websocket write failed for session %s: %v", session.ID(), err)
				return
			}
			if ev.Type == game.EventOver {
				closeWebSocket(conn)
				return
			}
		case <-ping.C:
			if err := conn.WriteControl(websocket.PingMessage, nil, time.Now().Add(wsWriteWait)); err != nil {
				return
			}
		}
	}
}

func writeEvent(conn *websocket.Conn, ev game.Event) error {
	_ = conn.SetWriteDeadline(time.Now().Add(wsWriteWait))
	return conn.WriteJSON(ev)
}

func closeWebSocket(conn *websocket.Conn) {
	msg := websocket.FormatCloseMessage(websocket.CloseNormalClosure, "game over")
	_ = conn.WriteControl(websocket.CloseMessage, msg, time.Now().Add(wsWriteWait))
}

// readUntilClosed drains client frames so pongs and close frames are handled.
func readUntilClosed(conn *websocket.Conn, closed chan<- struct{}) {
	defer close(closed)
	_ = conn.SetReadDeadline(time.Now().Add(wsPongWait))
	conn.SetPongHandler(func(string) error {
		return conn.SetReadDeadline(time.Now().Add(wsPongWait))
	})
	for {
		if _, _, err := conn.ReadMessage(); err != nil {
			return
		}
	}
}
