// Copyright (c) 2025 FutCuervo. All Rights Reserved.
// This is licensed software from FutCuervo, for limitations
// and restrictions contact your company contract manager.

package catalog

import "errors"

var (
	// ErrNotFound indicates that no row matches the requested ID.
	ErrNotFound = errors.New("not found")

	// ErrInvalid indicates an entity that fails validation.
	ErrInvalid = errors.New("invalid entity")

	// ErrConflict indicates a unique constraint violation, such as a taken username.
	ErrConflict = errors.New("already exists")
)
