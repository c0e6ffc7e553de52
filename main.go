// Copyright (c) 2025 FutCuervo. All Rights Reserved.
// This is licensed software from FutCuervo, for limitations
// and restrictions contact your company contract manager.

package main

import (
	"context"

	"github.com/futcuervo/club-trivia/internal/app"
	"github.com/futcuervo/club-trivia/internal/config"
	"github.com/futcuervo/club-trivia/pkg/common"

	"github.com/sirupsen/logrus"
)

func main() {
	logrus.Infof("starting app server..")

	cfg, err := config.Load()
	if err != nil {
		logrus.Fatalf("failed to load config: %v", err)
	}
	if err := cfg.Validate(); err != nil {
		logrus.Fatalf("invalid config: %v", err)
	}
	common.ConfigureLogging(cfg.LogLevel, cfg.LogJSON)

	ctx := context.Background()
	application, err := app.New(ctx, cfg)
	if err != nil {
		logrus.Fatalf("failed to initialize application: %v", err)
	}

	if err := application.Run(ctx); err != nil {
		logrus.Fatalf("application error: %v", err)
	}
}
