// Copyright (c) 2025 FutCuervo. All Rights Reserved.
// This is licensed software from FutCuervo, for limitations
// and restrictions contact your company contract manager.

package bootstrap

import (
	"fmt"

	"github.com/futcuervo/club-trivia/internal/config"
	"github.com/futcuervo/club-trivia/pkg/game"

	"github.com/sirupsen/logrus"
)

// InitGames loads the game definitions and creates the session manager.
// Finished sessions are handed to onComplete.
//
// ============================================================
// DEVELOPER: Adding a game type
// ============================================================
// 1. Add the GameType constant in pkg/attempt/model.go
// 2. Declare its rules in config/games.yaml
// 3. Serve its daily payload through /api/daily/{gameType}
// ============================================================
func InitGames(cfg *config.Config, onComplete game.CompletionFunc) (*game.Catalog, *game.Manager, error) {
	gamesConfig, err := game.LoadConfig(cfg.GamesConfigPath)
	if err != nil {
		return nil, nil, fmt.Errorf("failed to load game config from %s: %w", cfg.GamesConfigPath, err)
	}
	logrus.Infof("loaded %d game definitions from %s", len(gamesConfig.Games), cfg.GamesConfigPath)

	games := game.NewCatalog(gamesConfig)
	manager := game.NewManager(games, game.ManagerConfig{
		Retention: cfg.SessionRetention,
		MaxIdle:   cfg.SessionMaxIdle,
	}, onComplete)

	return games, manager, nil
}
