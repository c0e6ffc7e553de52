// Copyright (c) 2025 FutCuervo. All Rights Reserved.
// This is licensed software from FutCuervo, for limitations
// and restrictions contact your company contract manager.

package game

import (
	"fmt"
	"os"
	"strings"

	"github.com/futcuervo/club-trivia/pkg/attempt"

	"gopkg.in/yaml.v3"
)

// Mode selects how a game can be lost.
type Mode string

const (
	// ModeLives ends the game when the player runs out of lives.
	ModeLives Mode = "lives"
	// ModeTimer ends the game when the countdown reaches zero.
	ModeTimer Mode = "timer"
)

// Definition describes the rules of one game type.
type Definition struct {
	GameType         attempt.GameType `yaml:"type" json:"type"`
	Mode             Mode             `yaml:"mode" json:"mode"`
	Lives            int              `yaml:"lives,omitempty" json:"lives,omitempty"`
	TimeLimitSeconds int              `yaml:"timeLimitSeconds,omitempty" json:"timeLimitSeconds,omitempty"`
	TotalQuestions   int              `yaml:"totalQuestions,omitempty" json:"totalQuestions,omitempty"`
	Daily            bool             `yaml:"daily" json:"daily"`
}

// Config is the game catalog file.
type Config struct {
	Games []Definition `yaml:"games"`
}

// LoadConfig loads game definitions from a YAML file.
// Supports environment variable expansion in the form ${VAR_NAME} or ${VAR_NAME:default}.
func LoadConfig(path string) (*Config, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("failed to read game config %s: %w", path, err)
	}
	return ParseConfig(data)
}

// ParseConfig parses and validates game definitions.
func ParseConfig(data []byte) (*Config, error) {
	expanded := expandEnvVars(string(data))

	var config Config
	if err := yaml.Unmarshal([]byte(expanded), &config); err != nil {
		return nil, fmt.Errorf("failed to parse YAML game config: %w", err)
	}

	if err := config.Validate(); err != nil {
		return nil, fmt.Errorf("invalid game configuration: %w", err)
	}

	return &config, nil
}

// Validate validates the configuration for common errors.
func (c *Config) Validate() error {
	seen := make(map[attempt.GameType]bool)
	for _, def := range c.Games {
		if _, err := attempt.ParseGameType(string(def.GameType)); err != nil {
			return err
		}
		if seen[def.GameType] {
			return fmt.Errorf("duplicate game type: %s", def.GameType)
		}
		seen[def.GameType] = true

		if err := def.Validate(); err != nil {
			return fmt.Errorf("game %s: %w", def.GameType, err)
		}
	}
	return nil
}

// Validate checks that a definition can drive a session.
func (d Definition) Validate() error {
	switch d.Mode {
	case ModeLives:
		if d.Lives <= 0 {
			return fmt.Errorf("lives mode requires lives > 0")
		}
	case ModeTimer:
		if d.TimeLimitSeconds <= 0 {
			return fmt.Errorf("timer mode requires timeLimitSeconds > 0")
		}
	default:
		return fmt.Errorf("unknown mode %q", d.Mode)
	}
	if d.TotalQuestions < 0 {
		return fmt.Errorf("totalQuestions must be non-negative")
	}
	return nil
}

// Catalog indexes definitions by game type.
type Catalog struct {
	defs map[attempt.GameType]Definition
}

// NewCatalog builds a catalog from a validated config.
func NewCatalog(cfg *Config) *Catalog {
	c := &Catalog{defs: make(map[attempt.GameType]Definition, len(cfg.Games))}
	for _, def := range cfg.Games {
		c.defs[def.GameType] = def
	}
	return c
}

// Get returns the definition for a game type.
func (c *Catalog) Get(gameType attempt.GameType) (Definition, bool) {
	def, ok := c.defs[gameType]
	return def, ok
}

// All returns every definition.
func (c *Catalog) All() []Definition {
	defs := make([]Definition, 0, len(c.defs))
	for _, def := range c.defs {
		defs = append(defs, def)
	}
	return defs
}

// expandEnvVars expands environment variables in the format ${VAR} or ${VAR:default}.
func expandEnvVars(s string) string {
	return os.Expand(s, func(key string) string {
		parts := strings.SplitN(key, ":", 2)
		value := os.Getenv(parts[0])
		if value == "" && len(parts) == 2 {
			return parts[1]
		}
		return value
	})
}
