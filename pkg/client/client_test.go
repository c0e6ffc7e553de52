// Copyright (c) 2025 FutCuervo. All Rights Reserved.
// This is licensed software from FutCuervo, for limitations
// and restrictions contact your company contract manager.

package client

import (
	"context"
	"errors"
	"net/http"
	"net/http/httptest"
	"sync"
	"sync/atomic"
	"testing"
	"time"

	"github.com/futcuervo/club-trivia/pkg/attempt"

	"github.com/goccy/go-json"
)

// fakeAPI serves the save and refresh endpoints. validToken is the only
// access token accepted; refresh swaps it for "fresh-token" unless
// revokeRefreshed is set, in which case the new token is rejected too.
type fakeAPI struct {
	refreshOK       bool
	revokeRefreshed bool
	saveStatus      int
	saveReceived    chan struct{}
	release         chan struct{}
	block           atomic.Bool
	saves           atomic.Int32
	refreshes       atomic.Int32

	mu           sync.Mutex
	validToken   string
	historyQuery string
}

func (f *fakeAPI) authorized(r *http.Request) bool {
	f.mu.Lock()
	defer f.mu.Unlock()
	return r.Header.Get("Authorization") == "Bearer "+f.validToken
}

func (f *fakeAPI) handler() http.Handler {
	mux := http.NewServeMux()
	mux.HandleFunc("POST /api/auth/refresh", func(w http.ResponseWriter, r *http.Request) {
		f.refreshes.Add(1)
		if !f.refreshOK {
			w.WriteHeader(http.StatusUnauthorized)
			_, _ = w.Write([]byte(`{"error":"invalid token"}`))
			return
		}
		if !f.revokeRefreshed {
			f.mu.Lock()
			f.validToken = "fresh-token"
			f.mu.Unlock()
		}
		_ = json.NewEncoder(w).Encode(Session{
			User:   User{UserID: "u1", Username: "cuervo"},
			Tokens: Tokens{AccessToken: "fresh-token", RefreshToken: "fresh-refresh"},
		})
	})
	mux.HandleFunc("GET /api/games/{type}/history", func(w http.ResponseWriter, r *http.Request) {
		if !f.authorized(r) {
			w.WriteHeader(http.StatusUnauthorized)
			return
		}
		f.mu.Lock()
		f.historyQuery = r.URL.RawQuery
		f.mu.Unlock()
		_ = json.NewEncoder(w).Encode([]attempt.Attempt{
			{GameType: attempt.GameType(r.PathValue("type")), ClubID: r.URL.Query().Get("clubId"), Date: "2025-03-01"},
		})
	})
	mux.HandleFunc("POST /api/games/{type}/save", func(w http.ResponseWriter, r *http.Request) {
		f.saves.Add(1)
		if f.block.Load() {
			f.saveReceived <- struct{}{}
			<-f.release
		}
		if !f.authorized(r) {
			w.WriteHeader(http.StatusUnauthorized)
			_, _ = w.Write([]byte(`{"error":"authentication required"}`))
			return
		}
		if f.saveStatus != 0 {
			w.WriteHeader(f.saveStatus)
			_, _ = w.Write([]byte(`{"error":"Internal Server Error"}`))
			return
		}
		var result attempt.Result
		_ = json.NewDecoder(r.Body).Decode(&result)
		_ = json.NewEncoder(w).Encode(attempt.Attempt{
			GameType: attempt.GameType(r.PathValue("type")),
			ClubID:   result.ClubID,
			Won:      result.Won,
			Score:    result.Score,
			Streak:   1,
			Date:     "2025-03-01",
		})
	})
	return mux
}

func loggedIn(c *Client) {
	c.SetSession(&Session{
		User:   User{UserID: "u1", Username: "cuervo"},
		Tokens: Tokens{AccessToken: "old-token", RefreshToken: "old-refresh"},
	})
}

func TestSaveAttempt_Remote(t *testing.T) {
	tests := []struct {
		name              string
		validToken        string
		refreshOK         bool
		revokeRefreshed   bool
		saveStatus        int
		expectedErr       error
		expectedStatus    int
		expectedSaves     int32
		expectedRefreshes int32
		expectSession     bool
	}{
		{
			name:          "valid token",
			validToken:    "old-token",
			expectedSaves: 1,
			expectSession: true,
		},
		{
			name:              "expired token refreshed",
			validToken:        "rotated-elsewhere",
			refreshOK:         true,
			expectedSaves:     2,
			expectedRefreshes: 1,
			expectSession:     true,
		},
		{
			name:              "refresh rejected",
			validToken:        "rotated-elsewhere",
			expectedErr:       ErrUnauthorized,
			expectedSaves:     1,
			expectedRefreshes: 1,
		},
		{
			name:              "refreshed token rejected on retry",
			validToken:        "rotated-elsewhere",
			refreshOK:         true,
			revokeRefreshed:   true,
			expectedErr:       ErrUnauthorized,
			expectedSaves:     2,
			expectedRefreshes: 1,
		},
		{
			name:           "server error returned as is",
			validToken:     "old-token",
			saveStatus:     http.StatusInternalServerError,
			expectedSaves:  1,
			expectedStatus: http.StatusInternalServerError,
			expectSession:  true,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			api := &fakeAPI{
				validToken:      tt.validToken,
				refreshOK:       tt.refreshOK,
				revokeRefreshed: tt.revokeRefreshed,
				saveStatus:      tt.saveStatus,
			}
			server := httptest.NewServer(api.handler())
			defer server.Close()

			c := New(server.URL, nil)
			loggedIn(c)

			saved, err := c.SaveAttempt(context.Background(), attempt.GameGoals, attempt.Result{ClubID: "slo", Won: true, Score: 4})

			switch {
			case tt.expectedErr != nil:
				if !errors.Is(err, tt.expectedErr) {
					t.Errorf("SaveAttempt() error = %v, expected %v", err, tt.expectedErr)
				}
			case tt.expectedStatus != 0:
				var apiErr *APIError
				if !errors.As(err, &apiErr) || apiErr.StatusCode != tt.expectedStatus {
					t.Errorf("SaveAttempt() error = %v, expected status %d", err, tt.expectedStatus)
				}
			default:
				if err != nil {
					t.Fatalf("SaveAttempt() error = %v", err)
				}
				if saved.Score != 4 || saved.ClubID != "slo" {
					t.Errorf("saved = %+v", saved)
				}
			}

			if got := api.saves.Load(); got != tt.expectedSaves {
				t.Errorf("save requests = %d, expected %d", got, tt.expectedSaves)
			}
			if got := api.refreshes.Load(); got != tt.expectedRefreshes {
				t.Errorf("refresh requests = %d, expected %d", got, tt.expectedRefreshes)
			}
			if (c.Session() != nil) != tt.expectSession {
				t.Errorf("session present = %v, expected %v", c.Session() != nil, tt.expectSession)
			}
		})
	}
}

func TestSaveAttempt_RefreshedTokenKept(t *testing.T) {
	api := &fakeAPI{validToken: "rotated-elsewhere", refreshOK: true}
	server := httptest.NewServer(api.handler())
	defer server.Close()

	c := New(server.URL, nil)
	loggedIn(c)

	if _, err := c.SaveAttempt(context.Background(), attempt.GameSong, attempt.Result{ClubID: "slo"}); err != nil {
		t.Fatalf("SaveAttempt() error = %v", err)
	}
	if got := c.Session().Tokens.AccessToken; got != "fresh-token" {
		t.Errorf("AccessToken = %s, expected fresh-token", got)
	}
}

func TestSaveAttempt_InProgress(t *testing.T) {
	api := &fakeAPI{
		validToken:   "old-token",
		saveReceived: make(chan struct{}),
		release:      make(chan struct{}),
	}
	api.block.Store(true)
	server := httptest.NewServer(api.handler())
	defer server.Close()

	c := New(server.URL, nil)
	loggedIn(c)
	ctx := context.Background()

	done := make(chan error, 1)
	go func() {
		_, err := c.SaveAttempt(ctx, attempt.GameGoals, attempt.Result{ClubID: "slo"})
		done <- err
	}()
	<-api.saveReceived

	if _, err := c.SaveAttempt(ctx, attempt.GameGoals, attempt.Result{ClubID: "slo"}); !errors.Is(err, ErrSaveInProgress) {
		t.Errorf("concurrent SaveAttempt() error = %v, expected %v", err, ErrSaveInProgress)
	}

	api.block.Store(false)
	close(api.release)
	if err := <-done; err != nil {
		t.Errorf("first SaveAttempt() error = %v", err)
	}
	if got := api.saves.Load(); got != 1 {
		t.Errorf("save requests = %d, expected 1", got)
	}

	if _, err := c.SaveAttempt(ctx, attempt.GameGoals, attempt.Result{ClubID: "slo"}); err != nil {
		t.Errorf("SaveAttempt() after completion error = %v", err)
	}
}

func TestSaveAttempt_Device(t *testing.T) {
	loc, err := time.LoadLocation("America/Argentina/Buenos_Aires")
	if err != nil {
		t.Skipf("time zone data unavailable: %v", err)
	}
	now := time.Date(2025, 3, 1, 22, 0, 0, 0, loc)

	c := New("http://unused.invalid", setupDeviceStore(t),
		WithLocation(loc),
		WithClock(func() time.Time { return now }))
	ctx := context.Background()

	steps := []struct {
		advance        time.Duration
		result         attempt.Result
		expectedDate   string
		expectedStreak int
		expectedRecord int
	}{
		{0, attempt.Result{ClubID: "slo", Won: true, Score: 7}, "2025-03-01", 1, 7},
		{24 * time.Hour, attempt.Result{ClubID: "slo", Won: true, Score: 5}, "2025-03-02", 2, 7},
		{time.Hour, attempt.Result{ClubID: "slo", Won: true, Score: 9}, "2025-03-02", 2, 9},
		{48 * time.Hour, attempt.Result{ClubID: "slo", Won: true, Score: 1}, "2025-03-04", 1, 9},
		{24 * time.Hour, attempt.Result{ClubID: "slo", Won: false, Score: 0}, "2025-03-05", 0, 9},
	}

	for i, step := range steps {
		now = now.Add(step.advance)
		saved, err := c.SaveAttempt(ctx, attempt.GameGoals, step.result)
		if err != nil {
			t.Fatalf("step %d: SaveAttempt() error = %v", i, err)
		}
		if saved.Date != step.expectedDate || saved.Streak != step.expectedStreak || saved.RecordScore != step.expectedRecord {
			t.Errorf("step %d: got date=%s streak=%d record=%d, expected date=%s streak=%d record=%d",
				i, saved.Date, saved.Streak, saved.RecordScore,
				step.expectedDate, step.expectedStreak, step.expectedRecord)
		}
	}

	history, err := c.History(ctx, attempt.GameGoals, "slo", 0)
	if err != nil {
		t.Fatalf("History() error = %v", err)
	}
	if len(history) != 4 || history[0].Date != "2025-03-05" {
		t.Errorf("History() = %d attempts starting %+v, expected 4 starting 2025-03-05", len(history), history)
	}

	summary, err := c.Summary(ctx, attempt.GameGoals, "slo")
	if err != nil {
		t.Fatalf("Summary() error = %v", err)
	}
	if !summary.PlayedToday || summary.CurrentStreak != 0 || summary.RecordScore != 9 {
		t.Errorf("Summary() = %+v", summary)
	}
}

func TestHistory_Remote(t *testing.T) {
	tests := []struct {
		name          string
		limit         int
		expectedQuery string
	}{
		{"server default", 0, "clubId=san+lorenzo"},
		{"explicit limit", 5, "clubId=san+lorenzo&limit=5"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			api := &fakeAPI{validToken: "old-token"}
			server := httptest.NewServer(api.handler())
			defer server.Close()

			c := New(server.URL, nil)
			loggedIn(c)

			history, err := c.History(context.Background(), attempt.GameShirt, "san lorenzo", tt.limit)
			if err != nil {
				t.Fatalf("History() error = %v", err)
			}
			if len(history) != 1 || history[0].GameType != attempt.GameShirt {
				t.Errorf("History() = %+v", history)
			}
			if api.historyQuery != tt.expectedQuery {
				t.Errorf("query = %s, expected %s", api.historyQuery, tt.expectedQuery)
			}
		})
	}
}

func TestSaveAttempt_NoSessionNoDevice(t *testing.T) {
	c := New("http://unused.invalid", nil)
	if _, err := c.SaveAttempt(context.Background(), attempt.GameGoals, attempt.Result{ClubID: "slo"}); !errors.Is(err, ErrNoSession) {
		t.Errorf("SaveAttempt() error = %v, expected %v", err, ErrNoSession)
	}
}
