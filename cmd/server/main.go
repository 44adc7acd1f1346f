package main

import (
	"context"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/jackc/pgx/v5/pgxpool"
	"github.com/rs/zerolog"

	"clinic-booking-api/internal/config"
	"clinic-booking-api/internal/handler"
	"clinic-booking-api/internal/middleware"
	"clinic-booking-api/internal/store"
)

func main() {
	logger := zerolog.New(zerolog.ConsoleWriter{Out: os.Stdout}).With().Timestamp().Logger()

	cfg, err := config.Load()
	if err != nil {
		logger.Fatal().Err(err).Msg("config")
	}

	// database
	pool, err := pgxpool.New(context.Background(), cfg.DatabaseURL)
	if err != nil {
		logger.Fatal().Err(err).Msg("db")
	}
	defer pool.Close()
	if err := pool.Ping(context.Background()); err != nil {
		logger.Fatal().Err(err).Msg("db ping")
	}
	logger.Info().Msg("connected to postgres")

	// run migrations
	if migration, err := os.ReadFile("db/migrations/001_init.sql"); err != nil {
		logger.Warn().Err(err).Msg("migration file not found, skipping")
	} else if _, err := pool.Exec(context.Background(), string(migration)); err != nil {
		logger.Warn().Err(err).Msg("migration warning")
	} else {
		logger.Info().Msg("migration applied")
	}

	st := store.New(pool)

	if cfg.AdminPassword != "" {
		if err := st.EnsureAdmin(context.Background(), cfg.AdminUsername, cfg.AdminEmail, cfg.AdminPassword); err != nil {
			logger.Fatal().Err(err).Msg("bootstrap admin")
		}
		logger.Info().Str("username", cfg.AdminUsername).Msg("admin account ensured")
	}

	// drop dead sessions hourly
	purgeCtx, stopPurge := context.WithCancel(context.Background())
	defer stopPurge()
	go func() {
		tick := time.NewTicker(time.Hour)
		defer tick.Stop()
		for {
			select {
			case <-purgeCtx.Done():
				return
			case <-tick.C:
				if n, err := st.PurgeExpiredSessions(purgeCtx); err != nil {
					logger.Warn().Err(err).Msg("session purge")
				} else if n > 0 {
					logger.Info().Int64("purged", n).Msg("session purge")
				}
			}
		}
	}()

	gate := middleware.NewGate(st, cfg.JWTSecret, cfg.SessionTTL)
	rl := middleware.NewRateLimiter(cfg.AuthRateLimit, cfg.AuthRateBurst)
	h := handler.New(st, cfg.JWTSecret, cfg.SessionTTL, logger)

	srv := &http.Server{
		Addr:    cfg.Addr,
		Handler: h.Router(gate, rl, cfg.AllowedOrigins),
	}
	go func() {
		logger.Info().Str("addr", cfg.Addr).Msg("http listening")
		if err := srv.ListenAndServe(); err != nil && err != http.ErrServerClosed {
			logger.Error().Err(err).Msg("http")
		}
	}()

	// graceful shutdown
	ch := make(chan os.Signal, 1)
	signal.Notify(ch, syscall.SIGINT, syscall.SIGTERM)
	<-ch
	logger.Info().Msg("shutting down")

	ctx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
	defer cancel()
	if err := srv.Shutdown(ctx); err != nil {
		logger.Error().Err(err).Msg("shutdown")
	}
}
