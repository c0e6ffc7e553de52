// Copyright (c) 2025 FutCuervo. All Rights Reserved.
// This is licensed software from FutCuervo, for limitations
// and restrictions contact your company contract manager.

package service

import "errors"

var (
	// ErrSaveInProgress is returned when a save for the same key has not finished.
	ErrSaveInProgress = errors.New("save already in progress")

	ErrInvalidCredentials = errors.New("invalid username or password")
	ErrInvalidToken       = errors.New("invalid or expired token")
	ErrWeakPassword       = errors.New("password must be at least 8 characters")
	ErrInvalidUsername    = errors.New("username must be 3 to 32 characters")
	ErrUsernameTaken      = errors.New("username already taken")
)
