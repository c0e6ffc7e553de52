// Copyright (c) 2025 FutCuervo. All Rights Reserved.
// This is licensed software from FutCuervo, for limitations
// and restrictions contact your company contract manager.

package service

import (
	"context"
	"fmt"
	"sort"
	"time"

	"github.com/futcuervo/club-trivia/pkg/attempt"

	"github.com/go-redis/redis/v8"
	"github.com/goccy/go-json"
	"github.com/sirupsen/logrus"
)

const (
	// attemptStoreDefaultTTL is how long an untouched attempt history lives (90 days)
	attemptStoreDefaultTTL = 90 * 24 * time.Hour
	// attemptStoreKeyPrefix is the prefix for all attempt hashes
	attemptStoreKeyPrefix = "club_trivia:attempts:"
	// latestField holds the date of the newest attempt in the hash
	latestField = "latest"
)

// RedisAttemptStore keeps one hash per key: a JSON field per date plus a
// pointer to the latest date.
type RedisAttemptStore struct {
	client redis.UniversalClient
	cfg    RedisAttemptStoreConfig
}

type RedisAttemptStoreConfig struct {
	TTL time.Duration
}

// NewRedisAttemptStore creates a new Redis-backed attempt store.
func NewRedisAttemptStore(client redis.UniversalClient, cfg RedisAttemptStoreConfig) *RedisAttemptStore {
	if cfg.TTL <= 0 {
		cfg.TTL = attemptStoreDefaultTTL
	}
	return &RedisAttemptStore{client: client, cfg: cfg}
}

func makeAttemptStoreKey(key attempt.Key) string {
	return attemptStoreKeyPrefix + key.String()
}

func (r *RedisAttemptStore) Latest(ctx context.Context, key attempt.Key) (*attempt.Attempt, error) {
	date, err := r.client.HGet(ctx, makeAttemptStoreKey(key), latestField).Result()
	if err == redis.Nil {
		return nil, nil
	}
	if err != nil {
		return nil, fmt.Errorf("failed to get latest attempt: %w", err)
	}
	return r.Get(ctx, key, date)
}

func (r *RedisAttemptStore) Get(ctx context.Context, key attempt.Key, date string) (*attempt.Attempt, error) {
	data, err := r.client.HGet(ctx, makeAttemptStoreKey(key), date).Result()
	if err == redis.Nil {
		return nil, nil
	}
	if err != nil {
		logrus.Errorf("failed to get attempt %s on %s: %v", key, date, err)
		return nil, fmt.Errorf("failed to get attempt: %w", err)
	}

	var a attempt.Attempt
	if err := json.Unmarshal([]byte(data), &a); err != nil {
		logrus.Errorf("failed to unmarshal attempt %s on %s: %v", key, date, err)
		return nil, fmt.Errorf("failed to unmarshal attempt: %w", err)
	}
	return &a, nil
}

// LatestBefore returns the newest attempt dated strictly before date.
func (r *RedisAttemptStore) LatestBefore(ctx context.Context, key attempt.Key, date string) (*attempt.Attempt, error) {
	dates, err := r.dates(ctx, key)
	if err != nil {
		return nil, err
	}
	// dates are sorted newest first and YYYY-MM-DD compares lexically
	for _, d := range dates {
		if d < date {
			return r.Get(ctx, key, d)
		}
	}
	return nil, nil
}

// Put stores a, overwriting any attempt on the same date, and refreshes the TTL.
func (r *RedisAttemptStore) Put(ctx context.Context, key attempt.Key, a attempt.Attempt) error {
	data, err := json.Marshal(a)
	if err != nil {
		return fmt.Errorf("failed to marshal attempt: %w", err)
	}

	redisKey := makeAttemptStoreKey(key)
	latest, err := r.client.HGet(ctx, redisKey, latestField).Result()
	if err != nil && err != redis.Nil {
		return fmt.Errorf("failed to read latest attempt date: %w", err)
	}
	if a.Date > latest {
		latest = a.Date
	}

	_, err = r.client.TxPipelined(ctx, func(pipe redis.Pipeliner) error {
		pipe.HSet(ctx, redisKey, a.Date, data, latestField, latest)
		pipe.Expire(ctx, redisKey, r.cfg.TTL)
		return nil
	})
	if err != nil {
		logrus.Errorf("failed to store attempt %s: %v", key, err)
		return fmt.Errorf("failed to store attempt: %w", err)
	}

	logrus.Debugf("stored attempt %s on %s with TTL %v", key, a.Date, r.cfg.TTL)
	return nil
}

// History returns up to limit attempts, newest first. limit <= 0 means all.
func (r *RedisAttemptStore) History(ctx context.Context, key attempt.Key, limit int) ([]attempt.Attempt, error) {
	all, err := r.client.HGetAll(ctx, makeAttemptStoreKey(key)).Result()
	if err != nil {
		return nil, fmt.Errorf("failed to get attempt history: %w", err)
	}
	delete(all, latestField)

	out := make([]attempt.Attempt, 0, len(all))
	for date, data := range all {
		var a attempt.Attempt
		if err := json.Unmarshal([]byte(data), &a); err != nil {
			logrus.Warnf("skipping unreadable attempt %s on %s: %v", key, date, err)
			continue
		}
		out = append(out, a)
	}
	sort.Slice(out, func(i, j int) bool { return out[i].Date > out[j].Date })

	if limit > 0 && len(out) > limit {
		out = out[:limit]
	}
	return out, nil
}

func (r *RedisAttemptStore) dates(ctx context.Context, key attempt.Key) ([]string, error) {
	fields, err := r.client.HKeys(ctx, makeAttemptStoreKey(key)).Result()
	if err != nil {
		return nil, fmt.Errorf("failed to list attempt dates: %w", err)
	}
	dates := fields[:0]
	for _, f := range fields {
		if f != latestField {
			dates = append(dates, f)
		}
	}
	sort.Sort(sort.Reverse(sort.StringSlice(dates)))
	return dates, nil
}
