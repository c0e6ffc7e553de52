// Copyright (c) 2025 FutCuervo. All Rights Reserved.
// This is licensed software from FutCuervo, for limitations
// and restrictions contact your company contract manager.

package attempt

import (
	"time"

	"github.com/sirupsen/logrus"
)

// Apply turns a finished game into today's attempt.
//
// previous is the most recent attempt dated strictly before today, sameDay is an
// attempt already stored for today (it gets overwritten). Either may be nil.
func Apply(gameType GameType, previous, sameDay *Attempt, result Result, today string, now time.Time) (Attempt, error) {
	if _, err := ParseDate(today); err != nil {
		return Attempt{}, err
	}
	if err := result.Validate(); err != nil {
		return Attempt{}, err
	}

	record := result.Score
	if previous != nil && previous.RecordScore > record {
		record = previous.RecordScore
	}
	if sameDay != nil && sameDay.RecordScore > record {
		record = sameDay.RecordScore
	}

	return Attempt{
		GameType:       gameType,
		ClubID:         result.ClubID,
		Won:            result.Won,
		Score:          result.Score,
		RecordScore:    record,
		Streak:         nextStreak(previous, result.Won, today),
		LivesRemaining: result.LivesRemaining,
		TimeUsed:       result.TimeUsed,
		GameMode:       result.GameMode,
		GameData:       result.GameData,
		Date:           today,
		SavedAt:        now.UTC(),
	}, nil
}

// nextStreak continues the previous streak only for a win on the day right
// after a previous win.
func nextStreak(previous *Attempt, won bool, today string) int {
	if !won {
		return 0
	}
	if previous == nil || !previous.Won {
		return 1
	}

	days, err := DaysBetween(previous.Date, today)
	if err != nil {
		logrus.Warnf("ignoring previous attempt with bad date %q: %v", previous.Date, err)
		return 1
	}
	if days != 1 {
		logrus.Debugf("streak reset: %d days since last win on %s", days, previous.Date)
		return 1
	}
	return previous.Streak + 1
}

// PlayedToday reports whether a is today's attempt.
func PlayedToday(a *Attempt, today string) bool {
	return a != nil && a.Date == today
}

// CurrentStreak is the streak a player still holds on the given day.
// A streak survives until the end of the day after its last win.
func CurrentStreak(latest *Attempt, today string) int {
	if latest == nil || !latest.Won {
		return 0
	}
	days, err := DaysBetween(latest.Date, today)
	if err != nil || days < 0 || days > 1 {
		return 0
	}
	return latest.Streak
}

// Summary is what a game screen needs to render the player's standing.
type Summary struct {
	PlayedToday   bool     `json:"playedToday"`
	Today         *Attempt `json:"today,omitempty"`
	CurrentStreak int      `json:"currentStreak"`
	RecordScore   int      `json:"recordScore"`
}

// Summarize builds a Summary from the latest attempt of a key.
func Summarize(latest *Attempt, today string) Summary {
	s := Summary{
		PlayedToday:   PlayedToday(latest, today),
		CurrentStreak: CurrentStreak(latest, today),
	}
	if latest != nil {
		s.RecordScore = latest.RecordScore
	}
	if s.PlayedToday {
		s.Today = latest
	}
	return s
}
