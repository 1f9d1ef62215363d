// Command reset_cleanup clears password reset tokens that have expired.
// It is meant to be run from cron or by hand.
package main

import (
	"context"
	"log/slog"
	"os"
	"time"

	"curtaincrm/internal/config"
	"curtaincrm/internal/database"
	"curtaincrm/internal/pkg/logging"
	"curtaincrm/internal/repository"
)

func main() {
	cfg, err := config.Load()
	if err != nil {
		slog.Error("load config", "error", err)
		os.Exit(1)
	}
	logging.Init(cfg.Log.Level, cfg.Log.Format)

	db, err := database.Connect(cfg.Database.URL, database.Options{})
	if err != nil {
		slog.Error("db connect failed", "error", err)
		os.Exit(1)
	}
	defer database.Close(db)

	ctx, cancel := context.WithTimeout(context.Background(), time.Minute)
	defer cancel()

	n, err := repository.NewUserRepository(db).ClearExpiredResetTokens(ctx, time.Now().UTC())
	if err != nil {
		slog.Error("cleanup reset tokens failed", "error", err)
		os.Exit(1)
	}
	slog.Info("reset token cleanup completed", "cleared", n)
}
