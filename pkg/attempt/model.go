// Copyright (c) 2025 FutCuervo. All Rights Reserved.
// This is licensed software from FutCuervo, for limitations
// and restrictions contact your company contract manager.

package attempt

import (
	"encoding/json"
	"fmt"
	"time"
)

// GameType identifies one of the daily mini-games.
type GameType string

const (
	GameGoals        GameType = "goals"
	GameAppearances  GameType = "appearances"
	GamePlayer       GameType = "player"
	GameShirt        GameType = "shirt"
	GameLeagueTeam   GameType = "league-team"
	GameNationalTeam GameType = "national-team"
	GameVideo        GameType = "video"
	GameSong         GameType = "song"
	GameCareer       GameType = "career"
)

var knownGameTypes = map[GameType]bool{
	GameGoals:        true,
	GameAppearances:  true,
	GamePlayer:       true,
	GameShirt:        true,
	GameLeagueTeam:   true,
	GameNationalTeam: true,
	GameVideo:        true,
	GameSong:         true,
	GameCareer:       true,
}

// ParseGameType validates a game type coming from a URL or payload.
func ParseGameType(s string) (GameType, error) {
	gt := GameType(s)
	if !knownGameTypes[gt] {
		return "", fmt.Errorf("%w: %q", ErrUnknownGameType, s)
	}
	return gt, nil
}

// GameTypes returns every known game type.
func GameTypes() []GameType {
	types := make([]GameType, 0, len(knownGameTypes))
	for gt := range knownGameTypes {
		types = append(types, gt)
	}
	return types
}

// Attempt is one recorded play-through of a daily game.
// One attempt exists per (owner, club, game type, day).
type Attempt struct {
	GameType       GameType        `json:"gameType"`
	ClubID         string          `json:"clubId"`
	Won            bool            `json:"won"`
	Score          int             `json:"score"`
	RecordScore    int             `json:"recordScore"`
	Streak         int             `json:"streak"`
	LivesRemaining int             `json:"livesRemaining"`
	TimeUsed       int             `json:"timeUsed"`
	GameMode       string          `json:"gameMode,omitempty"`
	GameData       json.RawMessage `json:"gameData,omitempty"`
	Date           string          `json:"date"`
	SavedAt        time.Time       `json:"savedAt"`
}

// Result is the outcome of a finished game as reported by the player.
// Streak, record and date are derived when it is applied.
type Result struct {
	ClubID         string          `json:"clubId"`
	Won            bool            `json:"won"`
	Score          int             `json:"score"`
	LivesRemaining int             `json:"livesRemaining"`
	TimeUsed       int             `json:"timeUsed"`
	GameMode       string          `json:"gameMode,omitempty"`
	GameData       json.RawMessage `json:"gameData,omitempty"`
}

// Validate checks the fields a client controls.
func (r Result) Validate() error {
	if r.ClubID == "" {
		return fmt.Errorf("%w: clubId is required", ErrInvalidResult)
	}
	if r.Score < 0 {
		return fmt.Errorf("%w: score must be non-negative", ErrInvalidResult)
	}
	if r.LivesRemaining < 0 || r.TimeUsed < 0 {
		return fmt.Errorf("%w: lives and time must be non-negative", ErrInvalidResult)
	}
	if len(r.GameData) > 0 && !json.Valid(r.GameData) {
		return fmt.Errorf("%w: gameData is not valid JSON", ErrInvalidResult)
	}
	return nil
}

// Key addresses the attempts of one owner (user or device) for one club and game.
type Key struct {
	Owner    string
	ClubID   string
	GameType GameType
}

func (k Key) String() string {
	return fmt.Sprintf("%s:%s:%s", k.Owner, k.ClubID, k.GameType)
}
