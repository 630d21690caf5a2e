package main

import (
	"context"
	"database/sql"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/rs/zerolog"
	"github.com/uptrace/bun"
	"github.com/uptrace/bun/dialect/sqlitedialect"
	"github.com/uptrace/bun/driver/sqliteshim"

	"github.com/bloodcare/bloodcare/auth"
	"github.com/bloodcare/bloodcare/internal/config"
	"github.com/bloodcare/bloodcare/server"
	"github.com/bloodcare/bloodcare/store"
)

func main() {
	log := zerolog.New(zerolog.ConsoleWriter{Out: os.Stderr}).
		With().
		Timestamp().
		Logger()

	if err := run(log); err != nil {
		log.Fatal().Err(err).Msg("server exited")
	}

	log.Info().Msg("server stopped")
}

func run(log zerolog.Logger) error {
	cfg := config.New()

	sqldb, err := sql.Open(sqliteshim.ShimName, cfg.GetDatabaseDSN())
	if err != nil {
		return err
	}
	defer sqldb.Close()

	db := bun.NewDB(sqldb, sqlitedialect.New())
	defer db.Close()

	ctx := context.Background()

	if err := store.CreateSchema(ctx, db); err != nil {
		return err
	}

	repo := store.NewRepositoryManager(db)
	repo.MustValidate()

	authLogger := server.NewLogger(log)

	if err := store.Seed(ctx, repo, authLogger); err != nil {
		return err
	}

	auther := auth.NewAuthenticator(store.NewCredentialStore(repo.Accounts()), cfg).
		WithLogger(authLogger)

	srv := server.New(cfg, log, auther, repo)

	errCh := make(chan error, 1)
	go func() {
		log.Info().Str("addr", cfg.GetPort()).Msg("server listening")
		errCh <- srv.Listen()
	}()

	stop := make(chan os.Signal, 1)
	signal.Notify(stop, os.Interrupt, syscall.SIGTERM)

	select {
	case err := <-errCh:
		return err
	case <-stop:
	}

	shutdownCtx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
	defer cancel()

	return srv.Shutdown(shutdownCtx)
}
