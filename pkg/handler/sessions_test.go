// Copyright (c) 2025 FutCuervo. All Rights Reserved.
// This is licensed software from FutCuervo, for limitations
// and restrictions contact your company contract manager.

package handler

import (
	"net/http"
	"strings"
	"testing"
	"time"

	"github.com/futcuervo/club-trivia/pkg/attempt"
	"github.com/futcuervo/club-trivia/pkg/game"

	"github.com/gorilla/websocket"
)

func TestSession_LostGameSavesAttempt(t *testing.T) {
	env := setupTestEnv(t)
	token := env.loginAs(t, "cuervo", false)

	var snap game.Snapshot
	status := env.do(t, http.MethodPost, "/api/sessions", token, createSessionRequest{GameType: "goals", ClubID: "slo"}, &snap)
	if status != http.StatusCreated {
		t.Fatalf("create status = %d", status)
	}
	if snap.Status != game.StatusPlaying || snap.LivesRemaining != 3 {
		t.Fatalf("snapshot = %+v", snap)
	}

	env.do(t, http.MethodPost, "/api/sessions/"+snap.ID+"/answer", token, answerRequest{Correct: true}, &snap)
	for i := 0; i < 3; i++ {
		env.do(t, http.MethodPost, "/api/sessions/"+snap.ID+"/answer", token, answerRequest{Message: "wrong"}, &snap)
	}
	if snap.Status != game.StatusLost || snap.Score != 1 || snap.Attempts != 4 {
		t.Fatalf("final snapshot = %+v", snap)
	}

	if status := env.do(t, http.MethodPost, "/api/sessions/"+snap.ID+"/answer", token, answerRequest{Correct: true}, nil); status != http.StatusConflict {
		t.Errorf("answer after game over status = %d, expected %d", status, http.StatusConflict)
	}

	var summary attempt.Summary
	env.do(t, http.MethodGet, "/api/games/goals/attempt?clubId=slo", token, nil, &summary)
	if !summary.PlayedToday || summary.Today == nil {
		t.Fatalf("summary = %+v", summary)
	}
	if summary.Today.Won || summary.Today.Score != 1 {
		t.Errorf("today = %+v", *summary.Today)
	}
}

func TestSession_Ownership(t *testing.T) {
	env := setupTestEnv(t)
	owner := env.loginAs(t, "owner", false)
	other := env.loginAs(t, "other", false)

	var snap game.Snapshot
	env.do(t, http.MethodPost, "/api/sessions", owner, createSessionRequest{GameType: "song", ClubID: "slo"}, &snap)

	if status := env.do(t, http.MethodGet, "/api/sessions/"+snap.ID, "", nil, nil); status != http.StatusUnauthorized {
		t.Errorf("anonymous status = %d, expected %d", status, http.StatusUnauthorized)
	}
	if status := env.do(t, http.MethodGet, "/api/sessions/"+snap.ID, other, nil, nil); status != http.StatusNotFound {
		t.Errorf("other user status = %d, expected %d", status, http.StatusNotFound)
	}
	if status := env.do(t, http.MethodPost, "/api/sessions/"+snap.ID+"/end", owner, endRequest{Won: true}, &snap); status != http.StatusOK {
		t.Fatalf("end status = %d", status)
	}
	if snap.Status != game.StatusWon {
		t.Errorf("status = %s, expected won", snap.Status)
	}
}

func TestSession_BadRequests(t *testing.T) {
	env := setupTestEnv(t)

	tests := []struct {
		name     string
		body     createSessionRequest
		expected int
	}{
		{"unknown game", createSessionRequest{GameType: "chess", ClubID: "slo"}, http.StatusBadRequest},
		{"unconfigured game", createSessionRequest{GameType: "career", ClubID: "slo"}, http.StatusNotFound},
		{"missing club", createSessionRequest{GameType: "goals"}, http.StatusBadRequest},
	}
	for _, tt := range tests {
		if status := env.do(t, http.MethodPost, "/api/sessions", "", tt.body, nil); status != tt.expected {
			t.Errorf("%s: status = %d, expected %d", tt.name, status, tt.expected)
		}
	}
	if status := env.do(t, http.MethodGet, "/api/sessions/missing", "", nil, nil); status != http.StatusNotFound {
		t.Errorf("missing session status = %d, expected %d", status, http.StatusNotFound)
	}
}

func TestSession_EventsWebSocket(t *testing.T) {
	env := setupTestEnv(t)

	var snap game.Snapshot
	env.do(t, http.MethodPost, "/api/sessions", "", createSessionRequest{GameType: "goals", ClubID: "slo"}, &snap)

	wsURL := "ws" + strings.TrimPrefix(env.server.URL, "http") + "/api/sessions/" + snap.ID + "/events"
	conn, _, err := websocket.DefaultDialer.Dial(wsURL, nil)
	if err != nil {
		t.Fatalf("Dial() error = %v", err)
	}
	defer conn.Close()
	_ = conn.SetReadDeadline(time.Now().Add(5 * time.Second))

	var ev game.Event
	if err := conn.ReadJSON(&ev); err != nil {
		t.Fatalf("ReadJSON() error = %v", err)
	}
	if ev.Type != game.EventStarted || ev.Session.ID != snap.ID {
		t.Fatalf("first event = %+v", ev)
	}

	env.do(t, http.MethodPost, "/api/sessions/"+snap.ID+"/answer", "", answerRequest{Message: "nope"}, nil)
	if err := conn.ReadJSON(&ev); err != nil {
		t.Fatalf("ReadJSON() error = %v", err)
	}
	if ev.Type != game.EventAnswer || ev.Correct || ev.Message != "nope" {
		t.Errorf("answer event = %+v", ev)
	}

	env.do(t, http.MethodPost, "/api/sessions/"+snap.ID+"/end", "", endRequest{Won: false}, nil)
	if err := conn.ReadJSON(&ev); err != nil {
		t.Fatalf("ReadJSON() error = %v", err)
	}
	if ev.Type != game.EventOver || ev.Session.Status != game.StatusLost {
		t.Errorf("over event = %+v", ev)
	}

	if _, _, err := conn.ReadMessage(); !websocket.IsCloseError(err, websocket.CloseNormalClosure) {
		t.Errorf("expected normal close, got %v", err)
	}
}
