// Copyright (c) 2025 FutCuervo. All Rights Reserved.
// This is licensed software from FutCuervo, for limitations
// and restrictions contact your company contract manager.

package client

import (
	"errors"
	"fmt"
)

var (
	// ErrSaveInProgress is returned when a save for the same game type is already running.
	ErrSaveInProgress = errors.New("save already in progress")

	// ErrUnauthorized is returned when the session could not be refreshed. The session is cleared.
	ErrUnauthorized = errors.New("unauthorized")

	// ErrNoSession is returned by calls that need a logged-in user.
	ErrNoSession = errors.New("not logged in")
)

// APIError is a non-2xx response from the server.
type APIError struct {
	StatusCode int
	Message    string
}

func (e *APIError) Error() string {
	return fmt.Sprintf("server returned %d: %s", e.StatusCode, e.Message)
}
