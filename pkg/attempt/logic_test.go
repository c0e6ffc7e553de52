// Copyright (c) 2025 FutCuervo. All Rights Reserved.
// This is licensed software from FutCuervo, for limitations
// and restrictions contact your company contract manager.

package attempt

import (
	"errors"
	"testing"
	"time"
)

var testNow = time.Date(2026, 3, 10, 15, 0, 0, 0, time.UTC)

func TestApply_StreakAndRecord(t *testing.T) {
	tests := []struct {
		name           string
		previous       *Attempt
		sameDay        *Attempt
		result         Result
		today          string
		expectedStreak int
		expectedRecord int
	}{
		{
			name:           "first ever win",
			result:         Result{ClubID: "slo", Won: true, Score: 3},
			today:          "2026-03-10",
			expectedStreak: 1,
			expectedRecord: 3,
		},
		{
			name:           "first ever loss",
			result:         Result{ClubID: "slo", Won: false, Score: 2},
			today:          "2026-03-10",
			expectedStreak: 0,
			expectedRecord: 2,
		},
		{
			name:           "win after yesterday's win keeps record",
			previous:       &Attempt{Won: true, Streak: 4, RecordScore: 7, Date: "2026-03-09"},
			result:         Result{ClubID: "slo", Won: true, Score: 5},
			today:          "2026-03-10",
			expectedStreak: 5,
			expectedRecord: 7,
		},
		{
			name:           "win after yesterday's win beats record",
			previous:       &Attempt{Won: true, Streak: 4, RecordScore: 7, Date: "2026-03-09"},
			result:         Result{ClubID: "slo", Won: true, Score: 9},
			today:          "2026-03-10",
			expectedStreak: 5,
			expectedRecord: 9,
		},
		{
			name:           "win after two day gap resets to one",
			previous:       &Attempt{Won: true, Streak: 4, RecordScore: 7, Date: "2026-03-08"},
			result:         Result{ClubID: "slo", Won: true, Score: 1},
			today:          "2026-03-10",
			expectedStreak: 1,
			expectedRecord: 7,
		},
		{
			name:           "win after yesterday's loss starts new streak",
			previous:       &Attempt{Won: false, Streak: 0, RecordScore: 7, Date: "2026-03-09"},
			result:         Result{ClubID: "slo", Won: true, Score: 1},
			today:          "2026-03-10",
			expectedStreak: 1,
			expectedRecord: 7,
		},
		{
			name:           "loss resets streak",
			previous:       &Attempt{Won: true, Streak: 6, RecordScore: 7, Date: "2026-03-09"},
			result:         Result{ClubID: "slo", Won: false, Score: 2},
			today:          "2026-03-10",
			expectedStreak: 0,
			expectedRecord: 7,
		},
		{
			name:           "same day replay keeps best record of the day",
			previous:       &Attempt{Won: true, Streak: 2, RecordScore: 4, Date: "2026-03-09"},
			sameDay:        &Attempt{Won: true, Streak: 3, RecordScore: 8, Score: 8, Date: "2026-03-10"},
			result:         Result{ClubID: "slo", Won: true, Score: 5},
			today:          "2026-03-10",
			expectedStreak: 3,
			expectedRecord: 8,
		},
		{
			name:           "streak across month boundary",
			previous:       &Attempt{Won: true, Streak: 10, RecordScore: 1, Date: "2026-02-28"},
			result:         Result{ClubID: "slo", Won: true, Score: 1},
			today:          "2026-03-01",
			expectedStreak: 11,
			expectedRecord: 1,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got, err := Apply(GameGoals, tt.previous, tt.sameDay, tt.result, tt.today, testNow)
			if err != nil {
				t.Fatalf("Apply() error = %v", err)
			}
			if got.Streak != tt.expectedStreak {
				t.Errorf("Streak = %d, expected %d", got.Streak, tt.expectedStreak)
			}
			if got.RecordScore != tt.expectedRecord {
				t.Errorf("RecordScore = %d, expected %d", got.RecordScore, tt.expectedRecord)
			}
			if got.Date != tt.today {
				t.Errorf("Date = %s, expected %s", got.Date, tt.today)
			}
			if got.GameType != GameGoals {
				t.Errorf("GameType = %s, expected %s", got.GameType, GameGoals)
			}
		})
	}
}

func TestApply_ConsecutiveWinsIncreaseByOne(t *testing.T) {
	var previous *Attempt
	day := "2026-01-01"

	for i := 1; i <= 40; i++ {
		got, err := Apply(GameSong, previous, nil, Result{ClubID: "slo", Won: true, Score: i % 7}, day, testNow)
		if err != nil {
			t.Fatalf("Apply() day %d error = %v", i, err)
		}
		if got.Streak != i {
			t.Fatalf("day %d: Streak = %d, expected %d", i, got.Streak, i)
		}
		if previous != nil && got.RecordScore < previous.RecordScore {
			t.Fatalf("day %d: RecordScore decreased from %d to %d", i, previous.RecordScore, got.RecordScore)
		}

		previous = &got
		day, err = AddDays(day, 1)
		if err != nil {
			t.Fatalf("AddDays() error = %v", err)
		}
	}
}

func TestApply_InvalidInput(t *testing.T) {
	if _, err := Apply(GameGoals, nil, nil, Result{Won: true}, "2026-03-10", testNow); !errors.Is(err, ErrInvalidResult) {
		t.Errorf("missing club: error = %v, expected ErrInvalidResult", err)
	}
	if _, err := Apply(GameGoals, nil, nil, Result{ClubID: "slo", Score: -1}, "2026-03-10", testNow); !errors.Is(err, ErrInvalidResult) {
		t.Errorf("negative score: error = %v, expected ErrInvalidResult", err)
	}
	if _, err := Apply(GameGoals, nil, nil, Result{ClubID: "slo", GameData: []byte("{nope")}, "2026-03-10", testNow); !errors.Is(err, ErrInvalidResult) {
		t.Errorf("bad game data: error = %v, expected ErrInvalidResult", err)
	}
	if _, err := Apply(GameGoals, nil, nil, Result{ClubID: "slo"}, "10/03/2026", testNow); !errors.Is(err, ErrInvalidDate) {
		t.Errorf("bad date: error = %v, expected ErrInvalidDate", err)
	}
}

func TestCurrentStreak(t *testing.T) {
	tests := []struct {
		name     string
		latest   *Attempt
		today    string
		expected int
	}{
		{"no attempts", nil, "2026-03-10", 0},
		{"won today", &Attempt{Won: true, Streak: 3, Date: "2026-03-10"}, "2026-03-10", 3},
		{"won yesterday", &Attempt{Won: true, Streak: 3, Date: "2026-03-09"}, "2026-03-10", 3},
		{"won two days ago", &Attempt{Won: true, Streak: 3, Date: "2026-03-08"}, "2026-03-10", 0},
		{"lost today", &Attempt{Won: false, Date: "2026-03-10"}, "2026-03-10", 0},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if got := CurrentStreak(tt.latest, tt.today); got != tt.expected {
				t.Errorf("CurrentStreak() = %d, expected %d", got, tt.expected)
			}
		})
	}
}

func TestSummarize(t *testing.T) {
	latest := &Attempt{Won: true, Streak: 2, RecordScore: 11, Date: "2026-03-09"}

	s := Summarize(latest, "2026-03-10")
	if s.PlayedToday {
		t.Error("PlayedToday should be false for yesterday's attempt")
	}
	if s.Today != nil {
		t.Error("Today should be nil when not played today")
	}
	if s.CurrentStreak != 2 || s.RecordScore != 11 {
		t.Errorf("Summary = %+v, expected streak 2 and record 11", s)
	}

	s = Summarize(latest, "2026-03-09")
	if !s.PlayedToday || s.Today != latest {
		t.Errorf("Summary = %+v, expected today's attempt", s)
	}
}

func TestParseGameType(t *testing.T) {
	if gt, err := ParseGameType("league-team"); err != nil || gt != GameLeagueTeam {
		t.Errorf("ParseGameType(league-team) = %v, %v", gt, err)
	}
	if _, err := ParseGameType("chess"); !errors.Is(err, ErrUnknownGameType) {
		t.Errorf("ParseGameType(chess) error = %v, expected ErrUnknownGameType", err)
	}
}
