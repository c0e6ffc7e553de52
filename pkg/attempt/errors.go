// Copyright (c) 2025 FutCuervo. All Rights Reserved.
// This is licensed software from FutCuervo, for limitations
// and restrictions contact your company contract manager.

package attempt

import "errors"

var (
	// ErrUnknownGameType indicates a game type outside the known set.
	ErrUnknownGameType = errors.New("unknown game type")

	// ErrInvalidResult indicates a result payload that cannot be recorded.
	ErrInvalidResult = errors.New("invalid game result")

	// ErrInvalidDate indicates a date that is not in YYYY-MM-DD form.
	ErrInvalidDate = errors.New("invalid date")

	// ErrNotFound indicates that no attempt exists for the requested key.
	ErrNotFound = errors.New("attempt not found")
)
