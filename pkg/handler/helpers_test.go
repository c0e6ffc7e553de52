// Copyright (c) 2025 FutCuervo. All Rights Reserved.
// This is licensed software from FutCuervo, for limitations
// and restrictions contact your company contract manager.

package handler

import (
	"bytes"
	"context"
	"io"
	"net/http"
	"net/http/httptest"
	"testing"
	"time"

	"github.com/futcuervo/club-trivia/pkg/catalog"
	"github.com/futcuervo/club-trivia/pkg/game"
	"github.com/futcuervo/club-trivia/pkg/service"

	"github.com/alicebob/miniredis/v2"
	"github.com/go-redis/redis/v8"
	"github.com/goccy/go-json"
)

const testGamesYAML = `
games:
  - type: goals
    mode: lives
    lives: 3
    daily: true
  - type: song
    mode: lives
    lives: 6
    totalQuestions: 1
    daily: true
  - type: league-team
    mode: timer
    timeLimitSeconds: 180
    totalQuestions: 11
`

type testEnv struct {
	server   *httptest.Server
	handler  *Handler
	repo     *catalog.Repository
	auth     *service.AuthService
	sessions *game.Manager
}

func setupTestEnv(t *testing.T) *testEnv {
	t.Helper()

	mr, err := miniredis.Run()
	if err != nil {
		t.Fatalf("failed to start miniredis: %v", err)
	}
	t.Cleanup(mr.Close)
	client := redis.NewClient(&redis.Options{Addr: mr.Addr()})
	t.Cleanup(func() { client.Close() })

	db, err := catalog.Open(":memory:")
	if err != nil {
		t.Fatalf("catalog.Open() error = %v", err)
	}
	t.Cleanup(func() { db.Close() })
	if err := db.Migrate(context.Background()); err != nil {
		t.Fatalf("Migrate() error = %v", err)
	}
	repo := catalog.NewRepository(db)

	cfg, err := game.ParseConfig([]byte(testGamesYAML))
	if err != nil {
		t.Fatalf("ParseConfig() error = %v", err)
	}

	auth := service.NewAuthService(repo, service.NewRedisTokenStore(client, service.RedisTokenStoreConfig{}))
	attempts := service.NewAttemptService(service.NewRedisAttemptStore(client, service.RedisAttemptStoreConfig{}), time.UTC)
	sessions := game.NewManager(game.NewCatalog(cfg), game.ManagerConfig{}, attempts.SaveSessionResult,
		game.WithTickSource(func() (<-chan time.Time, func()) { return make(chan time.Time), func() {} }))

	h := New(Config{
		Auth:     auth,
		Attempts: attempts,
		Catalog:  repo,
		Games:    game.NewCatalog(cfg),
		Sessions: sessions,
		Location: time.UTC,
	})
	server := httptest.NewServer(h.Routes())
	t.Cleanup(server.Close)

	return &testEnv{server: server, handler: h, repo: repo, auth: auth, sessions: sessions}
}

// do sends a JSON request and decodes a JSON response into out when given.
func (e *testEnv) do(t *testing.T, method, path, token string, body any, out any) int {
	t.Helper()

	var reader io.Reader
	if body != nil {
		b, err := json.Marshal(body)
		if err != nil {
			t.Fatalf("marshal body: %v", err)
		}
		reader = bytes.NewReader(b)
	}
	req, err := http.NewRequest(method, e.server.URL+path, reader)
	if err != nil {
		t.Fatalf("NewRequest() error = %v", err)
	}
	if token != "" {
		req.Header.Set("Authorization", "Bearer "+token)
	}
	if body != nil {
		req.Header.Set("Content-Type", "application/json")
	}

	resp, err := http.DefaultClient.Do(req)
	if err != nil {
		t.Fatalf("%s %s error = %v", method, path, err)
	}
	defer resp.Body.Close()

	if out != nil {
		if err := json.NewDecoder(resp.Body).Decode(out); err != nil {
			t.Fatalf("%s %s: decode response: %v", method, path, err)
		}
	}
	return resp.StatusCode
}

// loginAs registers a user (or an admin) and returns its access token.
func (e *testEnv) loginAs(t *testing.T, username string, admin bool) string {
	t.Helper()
	ctx := context.Background()

	if admin {
		if err := e.auth.EnsureAdmin(ctx, username, "admin-password"); err != nil {
			t.Fatalf("EnsureAdmin() error = %v", err)
		}
		session, err := e.auth.Login(ctx, username, "admin-password")
		if err != nil {
			t.Fatalf("Login() error = %v", err)
		}
		return session.Tokens.AccessToken
	}

	session, err := e.auth.Register(ctx, username, "password-123")
	if err != nil {
		t.Fatalf("Register() error = %v", err)
	}
	return session.Tokens.AccessToken
}
