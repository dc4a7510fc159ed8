package main

import (
	"context"
	"database/sql"
	"errors"
	"net/http"
	"os/signal"
	"syscall"
	"time"

	"animal-shelter/internal/adapters/auth/identity"
	"animal-shelter/internal/adapters/cache/memorycache"
	"animal-shelter/internal/adapters/cache/rediscache"
	"animal-shelter/internal/adapters/notify/sesmail"
	pg "animal-shelter/internal/adapters/storage/postgres"
	"animal-shelter/internal/platform/config"
	"animal-shelter/internal/platform/logger"
	"animal-shelter/internal/ports/auth"
	"animal-shelter/internal/ports/cache"
	"animal-shelter/internal/ports/notify"
	"animal-shelter/internal/router"

	"github.com/spf13/cobra"
)

func runServe(cmd *cobra.Command, _ []string) error {
	cfg, log, err := bootstrap()
	if err != nil {
		return err
	}
	defer logger.Sync(log)

	ctx, stop := signal.NotifyContext(cmd.Context(), syscall.SIGINT, syscall.SIGTERM)
	defer stop()

	var db *sql.DB
	if cfg.Database.DSN != "" {
		db, err = pg.Open(cfg.Database)
		if err != nil {
			return err
		}
		defer db.Close()
		log.Info("storage: postgres", nil)
	} else {
		log.Warn("storage: in-memory (database.dsn vacío)", nil)
	}

	c, closeCache, err := buildCache(ctx, cfg, log)
	if err != nil {
		return err
	}
	defer closeCache()

	var verifier auth.AuthVerifier
	if cfg.Auth.IdentityURL != "" {
		v, err := identity.New(cfg.Auth)
		if err != nil {
			return err
		}
		verifier = v
	} else {
		log.Warn("auth: modo dev con headers X-Debug-*", nil)
	}

	var notifier notify.Notifier
	if cfg.Notify.Enabled {
		n, err := sesmail.New(ctx, cfg.Notify)
		if err != nil {
			return err
		}
		notifier = n
	}

	srv := &http.Server{
		Addr: cfg.HTTP.Addr(),
		Handler: router.NewRouter(router.Options{
			Log:                   log,
			AuthVerifier:          verifier,
			DB:                    db,
			Cache:                 c,
			CacheTTL:              cfg.Cache.TTL,
			Notifier:              notifier,
			ApplicantWritesPerMin: cfg.RateLimit.ApplicantWritesPerMin,
		}),
		ReadTimeout:  cfg.HTTP.ReadTimeout,
		WriteTimeout: cfg.HTTP.WriteTimeout,
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

	log.Info("shutting down", nil)
	shutdownCtx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
	defer cancel()
	return srv.Shutdown(shutdownCtx)
}

// buildCache usa Redis si hay address; si no, LRU en memoria.
func buildCache(ctx context.Context, cfg *config.Config, log logger.Logger) (cache.Cache, func(), error) {
	if cfg.Redis.Address == "" {
		return memorycache.New(cfg.Cache.MaxKeys, cfg.Cache.TTL), func() {}, nil
	}

	rc := rediscache.New(rediscache.NewClient(cfg.Redis), cfg.Cache.Channel)
	pingCtx, cancel := context.WithTimeout(ctx, 3*time.Second)
	defer cancel()
	if err := rc.Ping(pingCtx); err != nil {
		_ = rc.Close()
		return nil, nil, err
	}
	log.Info("cache: redis", map[string]any{"address": cfg.Redis.Address})
	return rc, func() { _ = rc.Close() }, nil
}
