// Copyright (c) 2025 FutCuervo. All Rights Reserved.
// This is licensed software from FutCuervo, for limitations
// and restrictions contact your company contract manager.

package game

import (
	"context"
	"errors"
	"sync"
	"time"

	"github.com/futcuervo/club-trivia/pkg/attempt"

	"github.com/sirupsen/logrus"
)

var (
	// ErrNotPlaying indicates an answer or end request outside the playing state.
	ErrNotPlaying = errors.New("game is not in progress")

	// ErrAlreadyPlaying indicates a start request for a game already in progress.
	ErrAlreadyPlaying = errors.New("game already in progress")
)

// Status is the lifecycle state of a session.
type Status string

const (
	StatusNotStarted Status = "not-started"
	StatusPlaying    Status = "playing"
	StatusWon        Status = "won"
	StatusLost       Status = "lost"
)

// Over reports whether the status is terminal.
func (s Status) Over() bool {
	return s == StatusWon || s == StatusLost
}

// Stats is handed to the completion callback when a game ends.
type Stats struct {
	SessionID      string           `json:"sessionId"`
	GameType       attempt.GameType `json:"gameType"`
	ClubID         string           `json:"clubId"`
	Owner          string           `json:"-"`
	Mode           Mode             `json:"mode"`
	Won            bool             `json:"won"`
	Score          int              `json:"score"`
	Attempts       int              `json:"attempts"`
	LivesRemaining int              `json:"livesRemaining"`
	TimeUsed       int              `json:"timeUsed"`
	Duration       time.Duration    `json:"duration"`
}

// CompletionFunc receives the final stats of a session. Errors are logged only.
type CompletionFunc func(ctx context.Context, stats Stats) error

// TickSource produces one-second ticks for the countdown and a stop function.
type TickSource func() (<-chan time.Time, func())

func realTicks() (<-chan time.Time, func()) {
	ticker := time.NewTicker(time.Second)
	return ticker.C, ticker.Stop
}

// Snapshot is a read-only view of a session.
type Snapshot struct {
	ID               string           `json:"id"`
	GameType         attempt.GameType `json:"gameType"`
	ClubID           string           `json:"clubId"`
	Mode             Mode             `json:"mode"`
	Status           Status           `json:"status"`
	Score            int              `json:"score"`
	Attempts         int              `json:"attempts"`
	LivesRemaining   int              `json:"livesRemaining,omitempty"`
	RemainingSeconds int              `json:"remainingSeconds,omitempty"`
	TotalQuestions   int              `json:"totalQuestions,omitempty"`
	LastMessage      string           `json:"lastMessage,omitempty"`
}

// Session runs the start/play/end lifecycle shared by all mini-games.
type Session struct {
	id     string
	def    Definition
	clubID string
	owner  string

	mu          sync.Mutex
	status      Status
	score       int
	attempts    int
	lives       int
	remaining   int
	lastMessage string
	startedAt   time.Time
	endedAt     time.Time
	stopTimer   chan struct{}

	now        func() time.Time
	ticks      TickSource
	onComplete CompletionFunc
	events     *broadcaster
}

// SessionOption customizes a session.
type SessionOption func(*Session)

// WithClock overrides the wall clock.
func WithClock(now func() time.Time) SessionOption {
	return func(s *Session) { s.now = now }
}

// WithTickSource overrides the countdown tick source.
func WithTickSource(ticks TickSource) SessionOption {
	return func(s *Session) { s.ticks = ticks }
}

// WithCompletion sets the completion callback.
func WithCompletion(fn CompletionFunc) SessionOption {
	return func(s *Session) { s.onComplete = fn }
}

// WithOwner records who plays the session and for which club.
func WithOwner(owner, clubID string) SessionOption {
	return func(s *Session) {
		s.owner = owner
		s.clubID = clubID
	}
}

// NewSession creates a not-started session for a game definition.
func NewSession(id string, def Definition, opts ...SessionOption) *Session {
	s := &Session{
		id:     id,
		def:    def,
		status: StatusNotStarted,
		now:    time.Now,
		ticks:  realTicks,
		events: newBroadcaster(),
	}
	for _, opt := range opts {
		opt(s)
	}
	return s
}

// ID returns the session identifier.
func (s *Session) ID() string {
	return s.id
}

// Owner returns the user or device playing the session.
func (s *Session) Owner() string {
	return s.owner
}

// Start resets the counters and begins play. In timer mode it also starts the countdown.
func (s *Session) Start() error {
	s.mu.Lock()
	if s.status == StatusPlaying {
		s.mu.Unlock()
		return ErrAlreadyPlaying
	}

	s.status = StatusPlaying
	s.score = 0
	s.attempts = 0
	s.lastMessage = ""
	s.lives = s.def.Lives
	s.remaining = s.def.TimeLimitSeconds
	s.startedAt = s.now()
	s.endedAt = time.Time{}

	if s.def.Mode == ModeTimer {
		s.stopTimer = make(chan struct{})
		ticks, stop := s.ticks()
		go s.runCountdown(ticks, stop, s.stopTimer)
	}
	snap := s.snapshotLocked()
	s.mu.Unlock()

	logrus.Debugf("session %s started: game=%s mode=%s", s.id, s.def.GameType, s.def.Mode)
	s.events.publish(Event{Type: EventStarted, Session: snap})
	return nil
}

// CorrectAnswer increments the score and wins the game once totalQuestions is reached.
// A non-positive totalQuestions falls back to the definition's total.
func (s *Session) CorrectAnswer(totalQuestions int) error {
	if totalQuestions <= 0 {
		totalQuestions = s.def.TotalQuestions
	}

	s.mu.Lock()
	if s.status != StatusPlaying {
		s.mu.Unlock()
		return ErrNotPlaying
	}
	s.score++
	s.attempts++

	if totalQuestions > 0 && s.score >= totalQuestions {
		stats := s.finishLocked(true)
		snap := s.snapshotLocked()
		s.mu.Unlock()
		s.complete(stats, snap)
		return nil
	}
	snap := s.snapshotLocked()
	s.mu.Unlock()

	s.events.publish(Event{Type: EventAnswer, Correct: true, Session: snap})
	return nil
}

// IncorrectAnswer records a miss. In lives mode it costs a life and the game is
// lost when none remain; in timer mode only the countdown ends the game.
func (s *Session) IncorrectAnswer(message string) error {
	s.mu.Lock()
	if s.status != StatusPlaying {
		s.mu.Unlock()
		return ErrNotPlaying
	}
	s.attempts++
	s.lastMessage = message

	if s.def.Mode == ModeLives {
		s.lives--
		if s.lives <= 0 {
			s.lives = 0
			stats := s.finishLocked(false)
			snap := s.snapshotLocked()
			s.mu.Unlock()
			s.complete(stats, snap)
			return nil
		}
	}
	snap := s.snapshotLocked()
	s.mu.Unlock()

	s.events.publish(Event{Type: EventAnswer, Correct: false, Message: message, Session: snap})
	return nil
}

// End forces the game over and runs the completion callback.
func (s *Session) End(won bool) error {
	s.mu.Lock()
	if s.status != StatusPlaying {
		s.mu.Unlock()
		return ErrNotPlaying
	}
	stats := s.finishLocked(won)
	snap := s.snapshotLocked()
	s.mu.Unlock()

	s.complete(stats, snap)
	return nil
}

// Snapshot returns the current state.
func (s *Session) Snapshot() Snapshot {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.snapshotLocked()
}

// Subscribe returns a channel of session events and a function to stop listening.
func (s *Session) Subscribe() (<-chan Event, func()) {
	return s.events.subscribe()
}

func (s *Session) times() (started, ended time.Time) {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.startedAt, s.endedAt
}

func (s *Session) runCountdown(ticks <-chan time.Time, stop func(), done <-chan struct{}) {
	defer stop()
	for {
		select {
		case <-done:
			return
		case <-ticks:
			if s.tick() {
				return
			}
		}
	}
}

// tick advances the countdown by one second. It returns true once the countdown is finished.
func (s *Session) tick() bool {
	s.mu.Lock()
	if s.status != StatusPlaying {
		s.mu.Unlock()
		return true
	}
	s.remaining--
	if s.remaining <= 0 {
		s.remaining = 0
		stats := s.finishLocked(false)
		snap := s.snapshotLocked()
		s.mu.Unlock()
		s.complete(stats, snap)
		return true
	}
	snap := s.snapshotLocked()
	s.mu.Unlock()

	s.events.publish(Event{Type: EventTick, Session: snap})
	return false
}

// finishLocked moves the session to a terminal state. Caller holds s.mu.
func (s *Session) finishLocked(won bool) Stats {
	if won {
		s.status = StatusWon
	} else {
		s.status = StatusLost
	}
	s.endedAt = s.now()
	if s.stopTimer != nil {
		close(s.stopTimer)
		s.stopTimer = nil
	}

	timeUsed := int(s.endedAt.Sub(s.startedAt) / time.Second)
	if s.def.Mode == ModeTimer {
		timeUsed = s.def.TimeLimitSeconds - s.remaining
	}

	return Stats{
		SessionID:      s.id,
		GameType:       s.def.GameType,
		ClubID:         s.clubID,
		Owner:          s.owner,
		Mode:           s.def.Mode,
		Won:            won,
		Score:          s.score,
		Attempts:       s.attempts,
		LivesRemaining: s.lives,
		TimeUsed:       timeUsed,
		Duration:       s.endedAt.Sub(s.startedAt),
	}
}

func (s *Session) complete(stats Stats, snap Snapshot) {
	logrus.Infof("session %s over: game=%s won=%v score=%d", s.id, stats.GameType, stats.Won, stats.Score)
	s.events.publish(Event{Type: EventOver, Session: snap})

	if s.onComplete == nil {
		return
	}
	ctx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
	defer cancel()
	if err := s.onComplete(ctx, stats); err != nil {
		logrus.Errorf("session %s completion callback failed: %v", s.id, err)
	}
}

func (s *Session) snapshotLocked() Snapshot {
	snap := Snapshot{
		ID:             s.id,
		GameType:       s.def.GameType,
		ClubID:         s.clubID,
		Mode:           s.def.Mode,
		Status:         s.status,
		Score:          s.score,
		Attempts:       s.attempts,
		TotalQuestions: s.def.TotalQuestions,
		LastMessage:    s.lastMessage,
	}
	switch s.def.Mode {
	case ModeLives:
		snap.LivesRemaining = s.lives
	case ModeTimer:
		snap.RemainingSeconds = s.remaining
	}
	return snap
}
