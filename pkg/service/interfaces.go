// Copyright (c) 2025 FutCuervo. All Rights Reserved.
// This is licensed software from FutCuervo, for limitations
// and restrictions contact your company contract manager.

package service

import (
	"context"

	"github.com/futcuervo/club-trivia/pkg/attempt"
	"github.com/futcuervo/club-trivia/pkg/catalog"
)

// AttemptStore persists attempts per owner, club and game type.
// Missing attempts are returned as nil without an error.
type AttemptStore interface {
	Latest(ctx context.Context, key attempt.Key) (*attempt.Attempt, error)
	Get(ctx context.Context, key attempt.Key, date string) (*attempt.Attempt, error)
	LatestBefore(ctx context.Context, key attempt.Key, date string) (*attempt.Attempt, error)
	Put(ctx context.Context, key attempt.Key, a attempt.Attempt) error
	History(ctx context.Context, key attempt.Key, limit int) ([]attempt.Attempt, error)
}

// TokenStore issues and resolves opaque bearer tokens.
type TokenStore interface {
	Issue(ctx context.Context, p Principal) (TokenPair, error)
	Resolve(ctx context.Context, accessToken string) (Principal, error)
	Rotate(ctx context.Context, refreshToken string) (Principal, TokenPair, error)
	Revoke(ctx context.Context, accessToken, refreshToken string) error
}

// UserRepository is the account storage the auth service needs.
type UserRepository interface {
	CreateUser(ctx context.Context, u catalog.User) (catalog.User, error)
	UserByUsername(ctx context.Context, username string) (catalog.User, error)
	UserByID(ctx context.Context, id string) (catalog.User, error)
}
