// Copyright (c) 2025 FutCuervo. All Rights Reserved.
// This is licensed software from FutCuervo, for limitations
// and restrictions contact your company contract manager.

package bootstrap

import (
	"context"
	"fmt"
	"time"

	"github.com/futcuervo/club-trivia/internal/config"
	"github.com/futcuervo/club-trivia/pkg/catalog"

	"github.com/cenkalti/backoff/v4"
	"github.com/go-redis/redis/v8"
	"github.com/sirupsen/logrus"
)

// retryPolicy is an exponential backoff starting at REDIS_RETRY_DELAY_MS and
// giving up after REDIS_MAX_RETRIES retries.
func retryPolicy(ctx context.Context, cfg *config.Config) backoff.BackOff {
	b := backoff.NewExponentialBackOff()
	if cfg.RedisRetryDelayMs > 0 {
		b.InitialInterval = time.Duration(cfg.RedisRetryDelayMs) * time.Millisecond
	}
	retries := cfg.RedisMaxRetries
	if retries < 0 {
		retries = 0
	}
	return backoff.WithContext(backoff.WithMaxRetries(b, uint64(retries)), ctx)
}

// InitRedis connects to Redis, retrying the first ping with exponential backoff.
func InitRedis(ctx context.Context, cfg *config.Config) (*redis.Client, error) {
	addr := cfg.RedisHost + ":" + cfg.RedisPort
	client := redis.NewClient(&redis.Options{
		Addr:         addr,
		Password:     cfg.RedisPassword,
		DB:           0, // use default DB
		MaxRetries:   3,
		DialTimeout:  5 * time.Second,
		ReadTimeout:  3 * time.Second,
		WriteTimeout: 3 * time.Second,
	})

	attempt := 0
	err := backoff.Retry(func() error {
		attempt++
		if err := client.Ping(ctx).Err(); err != nil {
			logrus.Warnf("Redis connection failed (attempt %d): %v, retrying...", attempt, err)
			return err
		}
		return nil
	}, retryPolicy(ctx, cfg))
	if err != nil {
		client.Close()
		return nil, fmt.Errorf("failed to connect to Redis at %s after %d attempts: %w", addr, attempt, err)
	}

	logrus.Infof("connected to Redis at %s", addr)
	return client, nil
}

// InitCatalog opens the catalog database, waits for it to answer and applies
// pending migrations.
func InitCatalog(ctx context.Context, cfg *config.Config) (*catalog.DB, error) {
	db, err := catalog.Open(cfg.DatabaseURL)
	if err != nil {
		return nil, err
	}

	attempt := 0
	err = backoff.Retry(func() error {
		attempt++
		if err := db.PingContext(ctx); err != nil {
			logrus.Warnf("database connection failed (attempt %d): %v, retrying...", attempt, err)
			return err
		}
		return nil
	}, retryPolicy(ctx, cfg))
	if err != nil {
		db.Close()
		return nil, fmt.Errorf("failed to connect to %s database after %d attempts: %w", db.Dialect, attempt, err)
	}

	if err := db.Migrate(ctx); err != nil {
		db.Close()
		return nil, fmt.Errorf("failed to migrate catalog database: %w", err)
	}

	logrus.Infof("catalog database ready (%s)", db.Dialect)
	return db, nil
}
