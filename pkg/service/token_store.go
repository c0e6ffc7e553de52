// Copyright (c) 2025 FutCuervo. All Rights Reserved.
// This is licensed software from FutCuervo, for limitations
// and restrictions contact your company contract manager.

package service

import (
	"context"
	"fmt"
	"time"

	"github.com/go-redis/redis/v8"
	"github.com/goccy/go-json"
	"github.com/google/uuid"
	"github.com/sirupsen/logrus"
)

const (
	accessTokenKeyPrefix  = "club_trivia:token:access:"
	refreshTokenKeyPrefix = "club_trivia:token:refresh:"

	DefaultAccessTokenTTL  = 15 * time.Minute
	DefaultRefreshTokenTTL = 30 * 24 * time.Hour
)

// Principal is the authenticated caller behind a token.
type Principal struct {
	UserID   string `json:"userId"`
	Username string `json:"username"`
	Admin    bool   `json:"admin"`
}

// TokenPair is what a login or refresh hands back to the client.
type TokenPair struct {
	AccessToken  string    `json:"accessToken"`
	RefreshToken string    `json:"refreshToken"`
	ExpiresAt    time.Time `json:"expiresAt"`
}

type refreshRecord struct {
	Principal   Principal `json:"principal"`
	AccessToken string    `json:"accessToken"`
}

// RedisTokenStore keeps opaque tokens in Redis with their TTLs.
type RedisTokenStore struct {
	client redis.UniversalClient
	cfg    RedisTokenStoreConfig
	now    func() time.Time
}

type RedisTokenStoreConfig struct {
	AccessTTL  time.Duration
	RefreshTTL time.Duration
}

func NewRedisTokenStore(client redis.UniversalClient, cfg RedisTokenStoreConfig) *RedisTokenStore {
	if cfg.AccessTTL <= 0 {
		cfg.AccessTTL = DefaultAccessTokenTTL
	}
	if cfg.RefreshTTL <= 0 {
		cfg.RefreshTTL = DefaultRefreshTokenTTL
	}
	return &RedisTokenStore{client: client, cfg: cfg, now: time.Now}
}

// Issue creates a new access and refresh token for p.
func (s *RedisTokenStore) Issue(ctx context.Context, p Principal) (TokenPair, error) {
	pair := TokenPair{
		AccessToken:  uuid.NewString(),
		RefreshToken: uuid.NewString(),
		ExpiresAt:    s.now().Add(s.cfg.AccessTTL),
	}

	access, err := json.Marshal(p)
	if err != nil {
		return TokenPair{}, fmt.Errorf("failed to marshal principal: %w", err)
	}
	refresh, err := json.Marshal(refreshRecord{Principal: p, AccessToken: pair.AccessToken})
	if err != nil {
		return TokenPair{}, fmt.Errorf("failed to marshal refresh record: %w", err)
	}

	_, err = s.client.TxPipelined(ctx, func(pipe redis.Pipeliner) error {
		pipe.Set(ctx, accessTokenKeyPrefix+pair.AccessToken, access, s.cfg.AccessTTL)
		pipe.Set(ctx, refreshTokenKeyPrefix+pair.RefreshToken, refresh, s.cfg.RefreshTTL)
		return nil
	})
	if err != nil {
		return TokenPair{}, fmt.Errorf("failed to store tokens: %w", err)
	}
	return pair, nil
}

// Resolve returns the principal of a live access token.
func (s *RedisTokenStore) Resolve(ctx context.Context, accessToken string) (Principal, error) {
	if accessToken == "" {
		return Principal{}, ErrInvalidToken
	}
	data, err := s.client.Get(ctx, accessTokenKeyPrefix+accessToken).Result()
	if err == redis.Nil {
		return Principal{}, ErrInvalidToken
	}
	if err != nil {
		return Principal{}, fmt.Errorf("failed to resolve token: %w", err)
	}

	var p Principal
	if err := json.Unmarshal([]byte(data), &p); err != nil {
		return Principal{}, fmt.Errorf("failed to unmarshal principal: %w", err)
	}
	return p, nil
}

// Rotate consumes a refresh token and issues a fresh pair. The access token
// issued with the consumed refresh token is revoked.
func (s *RedisTokenStore) Rotate(ctx context.Context, refreshToken string) (Principal, TokenPair, error) {
	if refreshToken == "" {
		return Principal{}, TokenPair{}, ErrInvalidToken
	}
	data, err := s.client.GetDel(ctx, refreshTokenKeyPrefix+refreshToken).Result()
	if err == redis.Nil {
		return Principal{}, TokenPair{}, ErrInvalidToken
	}
	if err != nil {
		return Principal{}, TokenPair{}, fmt.Errorf("failed to read refresh token: %w", err)
	}

	var rec refreshRecord
	if err := json.Unmarshal([]byte(data), &rec); err != nil {
		return Principal{}, TokenPair{}, fmt.Errorf("failed to unmarshal refresh record: %w", err)
	}
	if err := s.client.Del(ctx, accessTokenKeyPrefix+rec.AccessToken).Err(); err != nil {
		logrus.Warnf("failed to revoke rotated access token: %v", err)
	}

	pair, err := s.Issue(ctx, rec.Principal)
	return rec.Principal, pair, err
}

// Revoke deletes both tokens. Unknown tokens are ignored.
func (s *RedisTokenStore) Revoke(ctx context.Context, accessToken, refreshToken string) error {
	var keys []string
	if accessToken != "" {
		keys = append(keys, accessTokenKeyPrefix+accessToken)
	}
	if refreshToken != "" {
		keys = append(keys, refreshTokenKeyPrefix+refreshToken)
	}
	if len(keys) == 0 {
		return nil
	}
	if err := s.client.Del(ctx, keys...).Err(); err != nil {
		return fmt.Errorf("failed to revoke tokens: %w", err)
	}
	return nil
}
