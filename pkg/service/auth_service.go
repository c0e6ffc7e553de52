// Copyright (c) 2025 FutCuervo. All Rights Reserved.
// This is licensed software from FutCuervo, for limitations
// and restrictions contact your company contract manager.

package service

import (
	"context"
	"errors"
	"fmt"
	"strings"

	"github.com/futcuervo/club-trivia/pkg/catalog"

	"github.com/sirupsen/logrus"
	"golang.org/x/crypto/bcrypt"
)

const minPasswordLength = 8

// AuthSession is returned by register, login and refresh.
type AuthSession struct {
	User   Principal `json:"user"`
	Tokens TokenPair `json:"tokens"`
}

// AuthService owns accounts and their tokens.
type AuthService struct {
	users  UserRepository
	tokens TokenStore
	cost   int
}

func NewAuthService(users UserRepository, tokens TokenStore) *AuthService {
	return &AuthService{users: users, tokens: tokens, cost: bcrypt.DefaultCost}
}

func principalOf(u catalog.User) Principal {
	return Principal{UserID: u.ID, Username: u.Username, Admin: u.Admin}
}

// Register creates a non-admin account and logs it in.
func (s *AuthService) Register(ctx context.Context, username, password string) (AuthSession, error) {
	username = strings.TrimSpace(username)
	if len(username) < 3 || len(username) > 32 {
		return AuthSession{}, ErrInvalidUsername
	}
	if len(password) < minPasswordLength {
		return AuthSession{}, ErrWeakPassword
	}

	hash, err := bcrypt.GenerateFromPassword([]byte(password), s.cost)
	if err != nil {
		return AuthSession{}, fmt.Errorf("failed to hash password: %w", err)
	}
	user, err := s.users.CreateUser(ctx, catalog.User{Username: username, PasswordHash: string(hash)})
	if errors.Is(err, catalog.ErrConflict) {
		return AuthSession{}, ErrUsernameTaken
	}
	if err != nil {
		return AuthSession{}, err
	}

	logrus.Infof("registered user %s", user.ID)
	return s.issue(ctx, principalOf(user))
}

// Login checks credentials and issues tokens.
func (s *AuthService) Login(ctx context.Context, username, password string) (AuthSession, error) {
	user, err := s.users.UserByUsername(ctx, strings.TrimSpace(username))
	if errors.Is(err, catalog.ErrNotFound) {
		return AuthSession{}, ErrInvalidCredentials
	}
	if err != nil {
		return AuthSession{}, err
	}
	if err := bcrypt.CompareHashAndPassword([]byte(user.PasswordHash), []byte(password)); err != nil {
		return AuthSession{}, ErrInvalidCredentials
	}
	return s.issue(ctx, principalOf(user))
}

// Refresh rotates a refresh token into a new token pair.
func (s *AuthService) Refresh(ctx context.Context, refreshToken string) (AuthSession, error) {
	p, pair, err := s.tokens.Rotate(ctx, refreshToken)
	if err != nil {
		return AuthSession{}, err
	}
	return AuthSession{User: p, Tokens: pair}, nil
}

// Logout revokes the caller's tokens.
func (s *AuthService) Logout(ctx context.Context, accessToken, refreshToken string) error {
	return s.tokens.Revoke(ctx, accessToken, refreshToken)
}

// Authenticate resolves a bearer token.
func (s *AuthService) Authenticate(ctx context.Context, accessToken string) (Principal, error) {
	return s.tokens.Resolve(ctx, accessToken)
}

// EnsureAdmin creates an admin account if the username is free.
func (s *AuthService) EnsureAdmin(ctx context.Context, username, password string) error {
	if username == "" || password == "" {
		return nil
	}
	if _, err := s.users.UserByUsername(ctx, username); err == nil {
		return nil
	} else if !errors.Is(err, catalog.ErrNotFound) {
		return err
	}

	hash, err := bcrypt.GenerateFromPassword([]byte(password), s.cost)
	if err != nil {
		return fmt.Errorf("failed to hash admin password: %w", err)
	}
	if _, err := s.users.CreateUser(ctx, catalog.User{Username: username, PasswordHash: string(hash), Admin: true}); err != nil {
		return fmt.Errorf("failed to create admin user: %w", err)
	}
	logrus.Infof("created admin user %s", username)
	return nil
}

func (s *AuthService) issue(ctx context.Context, p Principal) (AuthSession, error) {
	pair, err := s.tokens.Issue(ctx, p)
	if err != nil {
		return AuthSession{}, err
	}
	return AuthSession{User: p, Tokens: pair}, nil
}
