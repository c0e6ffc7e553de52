// Copyright (c) 2025 FutCuervo. All Rights Reserved.
// This is licensed software from FutCuervo, for limitations
// and restrictions contact your company contract manager.

package client

import (
	"bytes"
	"context"
	"errors"
	"fmt"
	"io"
	"net/http"
	"net/url"
	"strconv"
	"strings"
	"sync"
	"time"

	"github.com/futcuervo/club-trivia/pkg/attempt"

	"github.com/goccy/go-json"
	"github.com/sirupsen/logrus"
)

// deviceOwner is the owner of every key in the device store.
const deviceOwner = "device"

// User is the logged-in player.
type User struct {
	UserID   string `json:"userId"`
	Username string `json:"username"`
	Admin    bool   `json:"admin"`
}

// Tokens are the credentials of a session.
type Tokens struct {
	AccessToken  string    `json:"accessToken"`
	RefreshToken string    `json:"refreshToken"`
	ExpiresAt    time.Time `json:"expiresAt"`
}

// Session is what the server returns on login, registration and refresh.
type Session struct {
	User   User   `json:"user"`
	Tokens Tokens `json:"tokens"`
}

// Client talks to the club trivia API. Attempts of a logged-in player go to the
// server; without a session they are kept in the device store.
type Client struct {
	baseURL    string
	httpClient *http.Client
	device     *DeviceStore
	location   *time.Location
	now        func() time.Time

	mu      sync.RWMutex
	session *Session

	saving sync.Map
}

// Option customizes a Client.
type Option func(*Client)

// WithHTTPClient replaces http.DefaultClient.
func WithHTTPClient(hc *http.Client) Option {
	return func(c *Client) { c.httpClient = hc }
}

// WithLocation sets the time zone used for device attempt dates. Defaults to time.Local.
func WithLocation(loc *time.Location) Option {
	return func(c *Client) { c.location = loc }
}

// WithClock overrides the wall clock.
func WithClock(now func() time.Time) Option {
	return func(c *Client) { c.now = now }
}

// New creates a client for the API at baseURL. device may be nil when the
// caller never plays anonymously.
func New(baseURL string, device *DeviceStore, opts ...Option) *Client {
	c := &Client{
		baseURL:    strings.TrimRight(baseURL, "/"),
		httpClient: http.DefaultClient,
		device:     device,
		location:   time.Local,
		now:        time.Now,
	}
	for _, opt := range opts {
		opt(c)
	}
	return c
}

// Session returns the current session, or nil when playing anonymously.
func (c *Client) Session() *Session {
	c.mu.RLock()
	defer c.mu.RUnlock()
	return c.session
}

// SetSession restores a session saved by the caller.
func (c *Client) SetSession(s *Session) {
	c.mu.Lock()
	c.session = s
	c.mu.Unlock()
}

// Register creates an account and starts a session.
func (c *Client) Register(ctx context.Context, username, password string) (*Session, error) {
	return c.authenticate(ctx, "/api/auth/register", username, password)
}

// Login starts a session.
func (c *Client) Login(ctx context.Context, username, password string) (*Session, error) {
	return c.authenticate(ctx, "/api/auth/login", username, password)
}

func (c *Client) authenticate(ctx context.Context, path, username, password string) (*Session, error) {
	body := map[string]string{"username": username, "password": password}
	var session Session
	if err := c.do(ctx, http.MethodPost, path, "", body, &session); err != nil {
		return nil, err
	}
	c.SetSession(&session)
	return &session, nil
}

// Logout revokes the session on the server and clears it locally. The local
// session is cleared even when the server call fails.
func (c *Client) Logout(ctx context.Context) error {
	session := c.Session()
	c.SetSession(nil)
	if session == nil {
		return nil
	}
	body := map[string]string{"refreshToken": session.Tokens.RefreshToken}
	return c.do(ctx, http.MethodPost, "/api/auth/logout", session.Tokens.AccessToken, body, nil)
}

// SaveAttempt records a finished game. With a session the server applies the
// bookkeeping; without one it is merged into the device store. A second call
// for the same game type while one is running returns ErrSaveInProgress.
func (c *Client) SaveAttempt(ctx context.Context, gameType attempt.GameType, result attempt.Result) (attempt.Attempt, error) {
	if _, busy := c.saving.LoadOrStore(gameType, struct{}{}); busy {
		return attempt.Attempt{}, ErrSaveInProgress
	}
	defer c.saving.Delete(gameType)

	if c.Session() == nil {
		return c.saveOnDevice(ctx, gameType, result)
	}

	var saved attempt.Attempt
	path := fmt.Sprintf("/api/games/%s/save", gameType)
	if err := c.doAuthorized(ctx, http.MethodPost, path, result, &saved); err != nil {
		return attempt.Attempt{}, err
	}
	return saved, nil
}

// Summary returns the player's standing for a game.
func (c *Client) Summary(ctx context.Context, gameType attempt.GameType, clubID string) (attempt.Summary, error) {
	if c.Session() == nil {
		if c.device == nil {
			return attempt.Summary{}, ErrNoSession
		}
		key := attempt.Key{Owner: deviceOwner, ClubID: clubID, GameType: gameType}
		latest, err := c.device.Latest(ctx, key)
		if err != nil {
			return attempt.Summary{}, err
		}
		return attempt.Summarize(latest, c.today()), nil
	}

	var summary attempt.Summary
	path := fmt.Sprintf("/api/games/%s/attempt?clubId=%s", gameType, url.QueryEscape(clubID))
	if err := c.doAuthorized(ctx, http.MethodGet, path, nil, &summary); err != nil {
		return attempt.Summary{}, err
	}
	return summary, nil
}

// History lists past attempts for a club, newest first. limit <= 0 returns
// everything on the device, or the server's default page when logged in.
func (c *Client) History(ctx context.Context, gameType attempt.GameType, clubID string, limit int) ([]attempt.Attempt, error) {
	if c.Session() == nil {
		if c.device == nil {
			return nil, ErrNoSession
		}
		key := attempt.Key{Owner: deviceOwner, ClubID: clubID, GameType: gameType}
		return c.device.History(ctx, key, limit)
	}

	path := fmt.Sprintf("/api/games/%s/history?clubId=%s", gameType, url.QueryEscape(clubID))
	if limit > 0 {
		path += "&limit=" + strconv.Itoa(limit)
	}
	var history []attempt.Attempt
	if err := c.doAuthorized(ctx, http.MethodGet, path, nil, &history); err != nil {
		return nil, err
	}
	return history, nil
}

func (c *Client) today() string {
	return attempt.Today(c.now(), c.location)
}

func (c *Client) saveOnDevice(ctx context.Context, gameType attempt.GameType, result attempt.Result) (attempt.Attempt, error) {
	if c.device == nil {
		return attempt.Attempt{}, ErrNoSession
	}
	key := attempt.Key{Owner: deviceOwner, ClubID: result.ClubID, GameType: gameType}
	today := c.today()

	previous, err := c.device.LatestBefore(ctx, key, today)
	if err != nil {
		return attempt.Attempt{}, err
	}
	sameDay, err := c.device.Get(ctx, key, today)
	if err != nil {
		return attempt.Attempt{}, err
	}

	a, err := attempt.Apply(gameType, previous, sameDay, result, today, c.now())
	if err != nil {
		return attempt.Attempt{}, err
	}
	if err := c.device.Put(ctx, key, a); err != nil {
		return attempt.Attempt{}, err
	}
	logrus.Debugf("saved %s attempt on device: club=%s date=%s", gameType, a.ClubID, a.Date)
	return a, nil
}

// doAuthorized sends a request with the session's access token. A 401 triggers
// one refresh and one retry; if that fails the session is cleared.
func (c *Client) doAuthorized(ctx context.Context, method, path string, body, out any) error {
	session := c.Session()
	if session == nil {
		return ErrNoSession
	}

	err := c.do(ctx, method, path, session.Tokens.AccessToken, body, out)
	if !isUnauthorized(err) {
		return err
	}

	refreshed, err := c.refresh(ctx, session.Tokens.RefreshToken)
	if err != nil {
		logrus.Debugf("token refresh failed: %v", err)
		c.SetSession(nil)
		return ErrUnauthorized
	}

	err = c.do(ctx, method, path, refreshed.Tokens.AccessToken, body, out)
	if isUnauthorized(err) {
		c.SetSession(nil)
		return ErrUnauthorized
	}
	return err
}

func (c *Client) refresh(ctx context.Context, refreshToken string) (*Session, error) {
	var session Session
	body := map[string]string{"refreshToken": refreshToken}
	if err := c.do(ctx, http.MethodPost, "/api/auth/refresh", "", body, &session); err != nil {
		return nil, err
	}
	c.SetSession(&session)
	return &session, nil
}

func (c *Client) do(ctx context.Context, method, path, token string, body, out any) error {
	var reader io.Reader
	if body != nil {
		data, err := json.Marshal(body)
		if err != nil {
			return fmt.Errorf("failed to marshal request: %w", err)
		}
		reader = bytes.NewReader(data)
	}

	req, err := http.NewRequestWithContext(ctx, method, c.baseURL+path, reader)
	if err != nil {
		return fmt.Errorf("failed to build request: %w", err)
	}
	if body != nil {
		req.Header.Set("Content-Type", "application/json")
	}
	if token != "" {
		req.Header.Set("Authorization", "Bearer "+token)
	}

	resp, err := c.httpClient.Do(req)
	if err != nil {
		return fmt.Errorf("%s %s: %w", method, path, err)
	}
	defer resp.Body.Close()

	if resp.StatusCode >= http.StatusMultipleChoices {
		var e struct {
			Error string `json:"error"`
		}
		_ = json.NewDecoder(resp.Body).Decode(&e)
		return &APIError{StatusCode: resp.StatusCode, Message: e.Error}
	}
	if out == nil || resp.StatusCode == http.StatusNoContent {
		return nil
	}
	if err := json.NewDecoder(resp.Body).Decode(out); err != nil {
		return fmt.Errorf("failed to decode response: %w", err)
	}
	return nil
}

func isUnauthorized(err error) bool {
	var apiErr *APIError
	return errors.As(err, &apiErr) && apiErr.StatusCode == http.StatusUnauthorized
}
