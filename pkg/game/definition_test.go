// Copyright (c) 2025 FutCuervo. All Rights Reserved.
// This is licensed software from FutCuervo, for limitations
// and restrictions contact your company contract manager.

package game

import (
	"os"
	"path/filepath"
	"strings"
	"testing"

	"github.com/futcuervo/club-trivia/pkg/attempt"
)

func TestParseConfig(t *testing.T) {
	t.Setenv("TEST_SONG_LIVES", "4")

	cfg, err := ParseConfig([]byte(`
games:
  - type: song
    mode: lives
    lives: ${TEST_SONG_LIVES}
    daily: true
  - type: league-team
    mode: timer
    timeLimitSeconds: ${TEST_UNSET_SECONDS:90}
    totalQuestions: 11
`))
	if err != nil {
		t.Fatalf("ParseConfig() error = %v", err)
	}

	catalog := NewCatalog(cfg)
	song, ok := catalog.Get(attempt.GameSong)
	if !ok {
		t.Fatal("song definition missing")
	}
	if song.Lives != 4 || !song.Daily {
		t.Errorf("song = %+v, expected 4 lives and daily", song)
	}

	team, ok := catalog.Get(attempt.GameLeagueTeam)
	if !ok {
		t.Fatal("league-team definition missing")
	}
	if team.TimeLimitSeconds != 90 || team.Mode != ModeTimer {
		t.Errorf("league-team = %+v, expected 90s timer", team)
	}
	if len(catalog.All()) != 2 {
		t.Errorf("All() returned %d definitions, expected 2", len(catalog.All()))
	}
}

func TestParseConfig_Invalid(t *testing.T) {
	tests := []struct {
		name    string
		yaml    string
		wantErr string
	}{
		{
			name:    "unknown game type",
			yaml:    "games:\n  - type: chess\n    mode: lives\n    lives: 1\n",
			wantErr: "unknown game type",
		},
		{
			name:    "duplicate type",
			yaml:    "games:\n  - type: song\n    mode: lives\n    lives: 1\n  - type: song\n    mode: lives\n    lives: 2\n",
			wantErr: "duplicate game type",
		},
		{
			name:    "lives mode without lives",
			yaml:    "games:\n  - type: song\n    mode: lives\n",
			wantErr: "lives > 0",
		},
		{
			name:    "timer mode without limit",
			yaml:    "games:\n  - type: song\n    mode: timer\n",
			wantErr: "timeLimitSeconds > 0",
		},
		{
			name:    "unknown mode",
			yaml:    "games:\n  - type: song\n    mode: sudden-death\n",
			wantErr: "unknown mode",
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			_, err := ParseConfig([]byte(tt.yaml))
			if err == nil {
				t.Fatal("ParseConfig() expected error")
			}
			if !strings.Contains(err.Error(), tt.wantErr) {
				t.Errorf("error = %v, expected to contain %q", err, tt.wantErr)
			}
		})
	}
}

func TestLoadConfig_File(t *testing.T) {
	path := filepath.Join(t.TempDir(), "games.yaml")
	if err := os.WriteFile(path, []byte("games:\n  - type: goals\n    mode: lives\n    lives: 3\n"), 0o600); err != nil {
		t.Fatalf("failed to write config: %v", err)
	}

	cfg, err := LoadConfig(path)
	if err != nil {
		t.Fatalf("LoadConfig() error = %v", err)
	}
	if len(cfg.Games) != 1 || cfg.Games[0].GameType != attempt.GameGoals {
		t.Errorf("Games = %+v, expected one goals definition", cfg.Games)
	}

	if _, err := LoadConfig(filepath.Join(t.TempDir(), "missing.yaml")); err == nil {
		t.Error("LoadConfig() expected error for missing file")
	}
}

func TestLoadConfig_ShippedFile(t *testing.T) {
	cfg, err := LoadConfig("../../config/games.yaml")
	if err != nil {
		t.Fatalf("LoadConfig() error = %v", err)
	}
	catalog := NewCatalog(cfg)
	for _, gt := range attempt.GameTypes() {
		if _, ok := catalog.Get(gt); !ok {
			t.Errorf("shipped config misses game type %s", gt)
		}
	}
}
