package main

import (
	"context"
	"log/slog"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/jmoiron/sqlx"
	"github.com/joho/godotenv"
	_ "github.com/lib/pq"

	"github.com/ivannizarr/chill-app-adv-be/internal/api"
	"github.com/ivannizarr/chill-app-adv-be/internal/config"
	"github.com/ivannizarr/chill-app-adv-be/internal/domain"
	"github.com/ivannizarr/chill-app-adv-be/internal/email"
	"github.com/ivannizarr/chill-app-adv-be/internal/store"
	"github.com/ivannizarr/chill-app-adv-be/pkg/auth"
)

func main() {
	logger := slog.New(slog.NewJSONHandler(os.Stdout, &slog.HandlerOptions{Level: slog.LevelInfo}))

	if err := godotenv.Load(); err != nil {
		logger.Warn(".env file not found or unreadable", slog.String("error", err.Error()))
	}

	cfg, err := config.Load()
	if err != nil {
		logger.Error("Failed to load config", slog.String("error", err.Error()))
		os.Exit(1)
	}

	validate := domain.NewValidator()

	tokenManager, err := auth.NewTokenManager(cfg.Auth.JWTSecret, cfg.Auth.SessionDuration)
	if err != nil {
		logger.Error("Failed to create token manager", slog.String("error", err.Error()))
		os.Exit(1)
	}

	db, err := sqlx.Connect("postgres", cfg.DatabaseURL)
	if err != nil {
		logger.Error("Failed to connect to PostgreSQL", slog.String("error", err.Error()))
		os.Exit(1)
	}
	defer db.Close()
	logger.Info("Connected to PostgreSQL")

	userStore, err := store.NewPostgresUserStore(db, logger)
	if err != nil {
		logger.Error("Failed to initialize user store", slog.String("error", err.Error()))
		os.Exit(1)
	}
	movieStore, err := store.NewPostgresMovieStore(db, logger)
	if err != nil {
		logger.Error("Failed to initialize movie store", slog.String("error", err.Error()))
		os.Exit(1)
	}

	var sender email.Sender
	if cfg.SMTP.Host != "" {
		sender = email.NewSMTPSender(cfg.SMTP.Host, cfg.SMTP.Port, cfg.SMTP.Username, cfg.SMTP.Password, cfg.SMTP.From)
	} else {
		logger.Warn("SMTP_HOST not set, outgoing email will only be logged")
		sender = email.NewLogSender(logger)
	}
	dispatcher := email.NewDispatcher(sender, logger, 64)
	dispatcher.Start()
	mailer := email.NewMailer(dispatcher, tokenManager, cfg.Server.BaseURL, logger)

	if err := api.EnsureUploadDirs(cfg.Upload.Dir); err != nil {
		logger.Error("Failed to create upload directories", slog.String("error", err.Error()))
		os.Exit(1)
	}

	handler := api.NewHandler(userStore, movieStore, logger, validate, tokenManager, mailer, cfg.Upload.Dir)
	router := api.NewRouter(handler)

	srv := &http.Server{
		Addr:         ":" + cfg.Server.Port,
		Handler:      router,
		ReadTimeout:  15 * time.Second,
		WriteTimeout: 30 * time.Second,
		IdleTimeout:  120 * time.Second,
	}

	go func() {
		logger.Info("Movie API starting", slog.String("port", cfg.Server.Port))
		if err := srv.ListenAndServe(); err != nil && err != http.ErrServerClosed {
			logger.Error("HTTP server failed", slog.String("error", err.Error()))
			os.Exit(1)
		}
	}()

	quit := make(chan os.Signal, 1)
	signal.Notify(quit, syscall.SIGINT, syscall.SIGTERM)
	<-quit
	logger.Info("Movie API shutting down...")

	ctx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
	defer cancel()
	if err := srv.Shutdown(ctx); err != nil {
		logger.Error("HTTP server shutdown failed", slog.String("error", err.Error()))
	} else {
		logger.Info("HTTP server stopped gracefully")
	}

	// Let queued mail drain before exiting.
	dispatcher.Close()
	logger.Info("Email dispatcher stopped")
}
