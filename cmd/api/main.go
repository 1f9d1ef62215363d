package main

import (
	"context"
	"errors"
	"log/slog"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"curtaincrm/internal/config"
	"curtaincrm/internal/database"
	"curtaincrm/internal/middleware"
	jwtsvc "curtaincrm/internal/pkg/jwt"
	"curtaincrm/internal/pkg/logging"
	"curtaincrm/internal/pkg/mailer"
	"curtaincrm/internal/ratelimit"
	"curtaincrm/internal/repository"
	"curtaincrm/internal/router"

	"github.com/gin-gonic/gin"
	"golang.org/x/sync/errgroup"
)

func main() {
	if err := run(); err != nil {
		slog.Error("server stopped", "error", err)
		os.Exit(1)
	}
}

func run() error {
	cfg, err := config.Load()
	if err != nil {
		return err
	}
	logging.Init(cfg.Log.Level, cfg.Log.Format)

	if config.IsProdLike(cfg.AppEnv) {
		gin.SetMode(gin.ReleaseMode)
	}

	db, err := database.Connect(cfg.Database.URL, database.Options{
		MaxOpenConns:    cfg.Database.MaxOpenConns,
		MaxIdleConns:    cfg.Database.MaxIdleConns,
		ConnMaxLifetime: cfg.Database.ConnMaxLifetime,
	})
	if err != nil {
		return err
	}
	defer func() {
		if err := database.Close(db); err != nil {
			slog.Warn("close database", "error", err)
		}
	}()

	if err := database.Migrate(db, repository.Models()...); err != nil {
		return err
	}

	var mail mailer.Mailer = mailer.NewLogMailer(slog.Default())
	if cfg.SMTP.Enabled() {
		mail = mailer.NewSMTPMailer(mailer.SMTPConfig{
			Host:     cfg.SMTP.Host,
			Port:     cfg.SMTP.Port,
			User:     cfg.SMTP.User,
			Password: cfg.SMTP.Password,
			From:     cfg.SMTP.From,
			Timeout:  cfg.SMTP.Timeout,
		})
	} else {
		slog.Info("SMTP not configured, emails are written to the log")
	}

	var limiter middleware.Limiter
	if cfg.RateLimit.Enabled() {
		l, err := ratelimit.Dial(context.Background(), cfg.RateLimit.RedisAddr, cfg.RateLimit.RedisPassword,
			"curtaincrm:auth", cfg.RateLimit.PerWindow, cfg.RateLimit.Window)
		if err != nil {
			return err
		}
		defer l.Close()
		limiter = l
	}

	handler := router.New(router.Deps{
		DB:          db,
		Tokens:      jwtsvc.New(cfg.Auth.JWTSecret, cfg.Auth.JWTTTL),
		Mailer:      mail,
		AuthLimiter: limiter,
		Config:      *cfg,
	})

	srv := &http.Server{
		Addr:              ":" + cfg.Port,
		Handler:           handler,
		ReadHeaderTimeout: 10 * time.Second,
	}

	ctx, stop := signal.NotifyContext(context.Background(), syscall.SIGINT, syscall.SIGTERM)
	defer stop()

	g, gctx := errgroup.WithContext(ctx)
	g.Go(func() error {
		slog.Info("server starting", "port", cfg.Port, "env", cfg.AppEnv)
		if err := srv.ListenAndServe(); err != nil && !errors.Is(err, http.ErrServerClosed) {
			return err
		}
		return nil
	})
	g.Go(func() error {
		<-gctx.Done()
		slog.Info("shutting down server")
		shutdownCtx, cancel := context.WithTimeout(context.Background(), cfg.ShutdownTimeout)
		defer cancel()
		return srv.Shutdown(shutdownCtx)
	})

	if err := g.Wait(); err != nil {
		return err
	}
	slog.Info("server exited")
	return nil
}
