// Copyright (c) 2025 FutCuervo. All Rights Reserved.
// This is licensed software from FutCuervo, for limitations
// and restrictions contact your company contract manager.

package service

import (
	"context"
	"time"

	"github.com/go-redis/redis/v8"
	"github.com/sirupsen/logrus"
)

// Pinger is anything that can report its own reachability.
type Pinger interface {
	PingContext(ctx context.Context) error
}

// HealthChecker pings the stores the service cannot run without.
type HealthChecker struct {
	redis redis.UniversalClient
	db    Pinger
}

func NewHealthChecker(client redis.UniversalClient, db Pinger) *HealthChecker {
	return &HealthChecker{redis: client, db: db}
}

// Check returns the first failing dependency's error.
func (h *HealthChecker) Check(ctx context.Context) error {
	ctx, cancel := context.WithTimeout(ctx, 2*time.Second)
	defer cancel()

	if err := h.redis.Ping(ctx).Err(); err != nil {
		logrus.Errorf("Redis health check failed: %v", err)
		return err
	}
	if h.db != nil {
		if err := h.db.PingContext(ctx); err != nil {
			logrus.Errorf("database health check failed: %v", err)
			return err
		}
	}

	logrus.Debugf("health check passed")
	return nil
}

// IsHealthy reports whether Check passes.
func (h *HealthChecker) IsHealthy(ctx context.Context) bool {
	return h.Check(ctx) == nil
}
