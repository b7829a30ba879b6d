package main

import (
	"context"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/filmdb/movies-api/internal/auth"
	"github.com/filmdb/movies-api/internal/config"
	"github.com/filmdb/movies-api/internal/logging"
	"github.com/filmdb/movies-api/internal/server"
	"github.com/filmdb/movies-api/internal/store"
)

func main() {
	cfg := config.Load()
	ctx := context.Background()
	logger := logging.NewJSON(os.Stdout, cfg.LogLevel)

	if cfg.InsecureSecret() {
		logger.Warn(ctx, "JWT_SECRET is not set, signing tokens with the insecure built-in default")
	}

	// ── Database ─────────────────────────────────────────────
	db, err := store.Open(ctx, cfg.DBDriver, cfg.DatabaseDSN)
	if err != nil {
		logger.Error(ctx, "database connect", "driver", cfg.DBDriver, "err", err)
		os.Exit(1)
	}
	defer db.Close()
	if err := db.Migrate(ctx); err != nil {
		logger.Error(ctx, "database schema", "err", err)
		os.Exit(1)
	}

	// ── Services ─────────────────────────────────────────────
	tokens := auth.NewTokens(cfg.JWTSecret, cfg.TokenTTL)
	authService := auth.NewService(store.NewUserStore(db, db.Dialect()), tokens, logger)

	// ── Router ───────────────────────────────────────────────
	handler := server.NewRouter(server.Deps{
		Directors:      store.NewDirectorStore(db, db.Dialect()),
		Movies:         store.NewMovieStore(db, db.Dialect()),
		Auth:           authService,
		Tokens:         tokens,
		AllowedOrigins: cfg.AllowedOrigins,
		Logger:         logger,
	})

	// ── Server ───────────────────────────────────────────────
	srv := &http.Server{
		Addr:         ":" + cfg.Port,
		Handler:      handler,
		ReadTimeout:  15 * time.Second,
		WriteTimeout: 15 * time.Second,
		IdleTimeout:  60 * time.Second,
	}

	go func() {
		logger.Info(ctx, "server running", "addr", "localhost:"+cfg.Port, "driver", cfg.DBDriver)
		if err := srv.ListenAndServe(); err != nil && err != http.ErrServerClosed {
			logger.Error(ctx, "server error", "err", err)
			os.Exit(1)
		}
	}()

	quit := make(chan os.Signal, 1)
	signal.Notify(quit, syscall.SIGINT, syscall.SIGTERM)
	<-quit

	logger.Info(ctx, "shutting down")
	shutCtx, cancel := context.WithTimeout(ctx, 10*time.Second)
	defer cancel()
	if err := srv.Shutdown(shutCtx); err != nil {
		logger.Error(ctx, "shutdown", "err", err)
	}
}
