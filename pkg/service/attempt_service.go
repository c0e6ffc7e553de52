// Copyright (c) 2025 FutCuervo. All Rights Reserved.
// This is licensed software from FutCuervo, for limitations
// and restrictions contact your company contract manager.

package service

import (
	"context"
	"fmt"
	"sync"
	"time"

	"github.com/futcuervo/club-trivia/pkg/attempt"
	"github.com/futcuervo/club-trivia/pkg/common"
	"github.com/futcuervo/club-trivia/pkg/game"
	"github.com/futcuervo/club-trivia/pkg/metrics"
)

// AttemptService applies streak and record bookkeeping to saved results.
type AttemptService struct {
	store    AttemptStore
	location *time.Location
	now      func() time.Time
	inFlight sync.Map
}

func NewAttemptService(store AttemptStore, location *time.Location) *AttemptService {
	if location == nil {
		location = time.UTC
	}
	return &AttemptService{store: store, location: location, now: time.Now}
}

// Today is the current civil date in the game time zone.
func (s *AttemptService) Today() string {
	return attempt.Today(s.now(), s.location)
}

// SaveAttempt records a result for owner. A second save for the same key
// while the first is still running fails with ErrSaveInProgress.
func (s *AttemptService) SaveAttempt(ctx context.Context, owner string, gameType attempt.GameType, result attempt.Result) (attempt.Attempt, error) {
	scope := common.GetScopeFromContext(ctx, "AttemptService.SaveAttempt")
	defer scope.Finish()

	if err := result.Validate(); err != nil {
		return attempt.Attempt{}, err
	}
	key := attempt.Key{Owner: owner, ClubID: result.ClubID, GameType: gameType}
	scope.AddBaggage("attempt.key", key.String())

	if _, busy := s.inFlight.LoadOrStore(key, struct{}{}); busy {
		metrics.SaveConflictsTotal.Inc()
		scope.TraceEvent("save already in progress")
		return attempt.Attempt{}, ErrSaveInProgress
	}
	defer s.inFlight.Delete(key)

	now := s.now()
	today := attempt.Today(now, s.location)

	previous, err := s.store.LatestBefore(scope.Ctx, key, today)
	if err != nil {
		scope.TraceError(err)
		return attempt.Attempt{}, err
	}
	sameDay, err := s.store.Get(scope.Ctx, key, today)
	if err != nil {
		scope.TraceError(err)
		return attempt.Attempt{}, err
	}

	saved, err := attempt.Apply(gameType, previous, sameDay, result, today, now)
	if err != nil {
		return attempt.Attempt{}, err
	}
	if err := s.store.Put(scope.Ctx, key, saved); err != nil {
		scope.Fail(err, "failed to store attempt %s", key)
		return attempt.Attempt{}, fmt.Errorf("failed to save attempt: %w", err)
	}

	scope.SetAttributes("attempt.streak", saved.Streak)
	scope.SetAttributes("attempt.record", saved.RecordScore)
	metrics.AttemptsSavedTotal.WithLabelValues(string(gameType), metrics.Outcome(saved.Won)).Inc()
	scope.Log.Infof("saved %s attempt for %s: streak %d record %d", gameType, key, saved.Streak, saved.RecordScore)
	return saved, nil
}

// Summary returns today's standing of owner in a game.
func (s *AttemptService) Summary(ctx context.Context, owner, clubID string, gameType attempt.GameType) (attempt.Summary, error) {
	key := attempt.Key{Owner: owner, ClubID: clubID, GameType: gameType}
	latest, err := s.store.Latest(ctx, key)
	if err != nil {
		return attempt.Summary{}, err
	}
	return attempt.Summarize(latest, s.Today()), nil
}

// History returns past attempts, newest first.
func (s *AttemptService) History(ctx context.Context, owner, clubID string, gameType attempt.GameType, limit int) ([]attempt.Attempt, error) {
	return s.store.History(ctx, attempt.Key{Owner: owner, ClubID: clubID, GameType: gameType}, limit)
}

// SaveSessionResult is the completion callback for server-side sessions.
// Anonymous sessions are not persisted.
func (s *AttemptService) SaveSessionResult(ctx context.Context, stats game.Stats) error {
	if stats.Owner == "" {
		return nil
	}
	_, err := s.SaveAttempt(ctx, stats.Owner, stats.GameType, attempt.Result{
		ClubID:         stats.ClubID,
		Won:            stats.Won,
		Score:          stats.Score,
		LivesRemaining: stats.LivesRemaining,
		TimeUsed:       stats.TimeUsed,
		GameMode:       string(stats.Mode),
	})
	return err
}
