package main

import (
	"context"
	"net/http"
	"os"
	"time"

	"github.com/rs/zerolog"
	"github.com/rs/zerolog/log"

	"draw-guess/internal/config"
	"draw-guess/internal/game"
	"draw-guess/internal/server"
	"draw-guess/internal/storage"
)

func main() {
	log.Logger = zerolog.New(zerolog.ConsoleWriter{Out: os.Stdout, TimeFormat: time.RFC3339}).
		With().Timestamp().Logger()

	if err := config.LoadDotEnv(".env"); err != nil {
		log.Warn().Err(err).Msg("failed to load .env")
	}
	cfg := config.Load()

	backend, err := storage.Open(context.Background(), cfg)
	if err != nil {
		log.Fatal().Err(err).Msg("storage setup failed")
	}

	locker := game.NewLocker(cfg.LockRetries, time.Duration(cfg.LockRetryPeriodMillis)*time.Millisecond)
	svc := game.New(backend, locker, cfg)
	srv := server.New(svc, backend, cfg)

	addr := ":8080"
	if env := os.Getenv("PORT"); env != "" {
		addr = ":" + env
	}
	log.Info().Str("addr", addr).Str("backend", cfg.StorageBackend).Msg("draw-guess server listening")
	if err := http.ListenAndServe(addr, srv.Handler()); err != nil {
		log.Fatal().Err(err).Msg("server stopped")
	}
}
