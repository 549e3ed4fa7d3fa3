package main

import (
	"context"
	"database/sql"
	"errors"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	jwtauth "petstore-client/internal/adapters/auth/jwt"
	pg "petstore-client/internal/adapters/storage/postgres"
	"petstore-client/internal/platform/config"
	"petstore-client/internal/platform/logger"
	"petstore-client/internal/router"
)

func main() {
	if err := config.LoadDotEnv(); err != nil {
		logger.NewFromEnv().Error("load .env failed", map[string]any{"error": err})
		os.Exit(1)
	}
	log := logger.NewFromEnv().With(map[string]any{"component": "devserver"})

	if err := run(log); err != nil {
		log.Error("server error", map[string]any{"error": err})
		os.Exit(1)
	}
}

func run(log logger.Logger) error {
	cfg, err := config.LoadDevServer()
	if err != nil {
		return err
	}

	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	defer stop()

	tokens, err := jwtauth.NewIssuer(cfg.JWTSecret, cfg.TokenTTL)
	if err != nil {
		return err
	}

	var db *sql.DB
	if cfg.DBDSN != "" {
		db, err = pg.Open(ctx, cfg.DBDSN)
		if err != nil {
			return err
		}
		defer db.Close()
	}

	r, err := router.NewRouter(ctx, router.Options{
		Tokens: tokens,
		DB:     db,
		Seed:   true,
		Log:    log,
	})
	if err != nil {
		return err
	}

	srv := &http.Server{
		Addr:         ":" + cfg.Port,
		Handler:      r,
		ReadTimeout:  5 * time.Second,
		WriteTimeout: 10 * time.Second,
	}

	errCh := make(chan error, 1)
	go func() {
		log.Info("starting server", map[string]any{"addr": srv.Addr})
		if err := srv.ListenAndServe(); err != nil && !errors.Is(err, http.ErrServerClosed) {
			errCh <- err
		}
		close(errCh)
	}()

	select {
	case err := <-errCh:
		return err
	case <-ctx.Done():
	}

	shutdownCtx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
	defer cancel()
	log.Info("shutting down", nil)
	return srv.Shutdown(shutdownCtx)
}
