package main

import (
	"context"
	"log/slog"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/joho/godotenv"

	"github.com/dukerupert/listkeeper/internal/api"
	"github.com/dukerupert/listkeeper/internal/config"
	"github.com/dukerupert/listkeeper/internal/database"
	"github.com/dukerupert/listkeeper/internal/logging"
	"github.com/dukerupert/listkeeper/internal/media"
	"github.com/dukerupert/listkeeper/internal/secret"
	"github.com/dukerupert/listkeeper/internal/server"
	"github.com/dukerupert/listkeeper/internal/session"
	"github.com/dukerupert/listkeeper/internal/store"
)

func main() {
	envErr := godotenv.Load()

	cfg, err := config.Load()
	if err != nil {
		slog.Error("failed to load config", "error", err)
		os.Exit(1)
	}

	logger := logging.Setup(cfg.LogLevel, cfg.LogFormat)
	if envErr != nil {
		logger.Debug(".env file not found, relying on environment")
	}

	db, err := database.Open(cfg.DBPath)
	if err != nil {
		slog.Error("failed to open database", "error", err)
		os.Exit(1)
	}
	defer db.Close()

	var sealer *secret.Sealer
	if cfg.Sealed() {
		sealer, err = secret.NewSealer(cfg.StateKey)
		if err != nil {
			slog.Error("failed to set up session sealing", "error", err)
			os.Exit(1)
		}
	}

	state := store.NewStateStore(db)
	client := api.NewClient(api.Config{
		BaseURL: cfg.APIURL,
		Timeout: cfg.APITimeout,
		Logger:  logger.With("component", "api"),
	})
	sessions := session.NewManager(state, client, sealer, logger.With("component", "session"))
	client.SetTokenSource(sessions.Token)
	client.OnUnauthorized(sessions.HandleUnauthorized)

	ctx, stop := signal.NotifyContext(context.Background(), syscall.SIGINT, syscall.SIGTERM)
	defer stop()

	if err := sessions.Restore(ctx); err != nil {
		slog.Error("failed to restore session", "error", err)
		os.Exit(1)
	}

	var images media.Uploader = client
	s3cfg := media.S3Config{
		Endpoint:  cfg.S3Endpoint,
		Bucket:    cfg.S3Bucket,
		Region:    cfg.S3Region,
		AccessKey: cfg.S3AccessKey,
		SecretKey: cfg.S3SecretKey,
		PublicURL: cfg.S3PublicURL,
		Prefix:    "listkeeper",
	}
	if s3cfg.Enabled() {
		images = media.NewBucket(s3cfg)
		logger.Info("storing images in object storage", "bucket", s3cfg.Bucket)
	}

	srv := server.New(server.Config{
		Locale:         cfg.Locale,
		LoginRateLimit: cfg.LoginRateLimit,
		OriginPatterns: cfg.OriginPatterns,
	}, client, sessions, state, images, logger)

	httpServer := &http.Server{
		Addr:              cfg.Addr(),
		Handler:           srv.Router(),
		ReadHeaderTimeout: 5 * time.Second,
		ReadTimeout:       10 * time.Second,
		// Backend calls may take up to APITimeout; leave room to answer.
		WriteTimeout: cfg.APITimeout + 10*time.Second,
		IdleTimeout:  120 * time.Second,
	}

	// Background cleanup of stale rate limit entries
	go srv.RateLimiter().Run(ctx, 10*time.Minute)

	go func() {
		slog.Info("listkeeper running", "addr", cfg.Addr(), "backend", cfg.APIURL, "route", sessions.Route())
		if err := httpServer.ListenAndServe(); err != nil && err != http.ErrServerClosed {
			slog.Error("server error", "error", err)
			os.Exit(1)
		}
	}()

	<-ctx.Done()

	slog.Info("shutting down")
	shutdownCtx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
	defer cancel()
	if err := httpServer.Shutdown(shutdownCtx); err != nil {
		slog.Error("shutdown error", "error", err)
		os.Exit(1)
	}
}
