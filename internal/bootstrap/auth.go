// Copyright (c) 2025 FutCuervo. All Rights Reserved.
// This is licensed software from FutCuervo, for limitations
// and restrictions contact your company contract manager.

package bootstrap

import (
	"context"
	"fmt"

	"github.com/futcuervo/club-trivia/internal/config"
	"github.com/futcuervo/club-trivia/pkg/service"

	"github.com/go-redis/redis/v8"
	"github.com/sirupsen/logrus"
)

// InitAuth creates the auth service and seeds the admin account when
// ADMIN_USERNAME is set.
func InitAuth(ctx context.Context, cfg *config.Config, users service.UserRepository, client redis.UniversalClient) (*service.AuthService, error) {
	tokens := service.NewRedisTokenStore(client, service.RedisTokenStoreConfig{
		AccessTTL:  cfg.AccessTokenTTL,
		RefreshTTL: cfg.RefreshTokenTTL,
	})
	auth := service.NewAuthService(users, tokens)

	if cfg.AdminUsername != "" {
		if err := auth.EnsureAdmin(ctx, cfg.AdminUsername, cfg.AdminPassword); err != nil {
			return nil, fmt.Errorf("failed to ensure admin account: %w", err)
		}
		logrus.Infof("admin account %s ready", cfg.AdminUsername)
	}
	return auth, nil
}
