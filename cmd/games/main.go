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

	"games_catalog/internal/config"
	"games_catalog/internal/loader"
	"games_catalog/internal/routes"
	"games_catalog/internal/services"
	"games_catalog/internal/storage"
	"games_catalog/internal/storage/datafiles"
	"games_catalog/internal/storage/mariadb"
	"games_catalog/internal/storage/memory"
)

const (
	envLocal = "local"
	envProd  = "prod"
)

func main() {
	cfg := config.MustLoad()

	log := setupLogger(cfg.Env)

	log.Info("starting games catalog",
		slog.String("env", cfg.Env),
		slog.String("repository", cfg.Repository))

	files, err := datafiles.New(cfg.DataPath)
	if err != nil {
		log.Error("failed to open data folder", slog.String("error", err.Error()))
		os.Exit(1)
	}

	opts := []loader.Option{loader.WithLogger(log)}
	if cfg.HashPasswords {
		opts = append(opts, loader.WithHasher(services.HashPassword))
	}
	populate := loader.New(files, opts...)

	repo, closeRepo, err := setupRepository(cfg, log, populate)
	if err != nil {
		log.Error("failed to set up repository", slog.String("error", err.Error()))
		os.Exit(1)
	}
	defer closeRepo()

	log.Info("repository ready")

	r := routes.SetupRouter(log, repo)

	server := &http.Server{
		Addr:         cfg.Address,
		Handler:      r,
		ReadTimeout:  cfg.Timeout,
		WriteTimeout: cfg.Timeout,
		IdleTimeout:  cfg.IdleTimeout,
	}

	serverErrors := make(chan error, 1)

	shutdown := make(chan os.Signal, 1)
	signal.Notify(shutdown, os.Interrupt, syscall.SIGTERM)

	go func() {
		log.Info("starting server", slog.String("address", cfg.Address))
		serverErrors <- server.ListenAndServe()
	}()

	select {
	case err := <-serverErrors:
		if !errors.Is(err, http.ErrServerClosed) {
			log.Error("server error", slog.String("error", err.Error()))
		}

	case sig := <-shutdown:
		log.Info("shutting down", slog.String("signal", sig.String()))

		ctx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
		defer cancel()

		if err := server.Shutdown(ctx); err != nil {
			log.Error("graceful shutdown error", slog.String("error", err.Error()))
			if err := server.Close(); err != nil {
				log.Error("force shutdown error", slog.String("error", err.Error()))
			}
		}
	}

	log.Info("server stopped")
}

// setupRepository builds the configured backend. The in-memory catalog is
// always populated; the database only when it holds no games yet.
func setupRepository(cfg *config.Config, log *slog.Logger, l *loader.Loader) (storage.Repository, func(), error) {
	if cfg.Repository == config.RepositoryMemory {
		repo := memory.New()
		if _, err := l.Populate(repo); err != nil {
			return nil, nil, err
		}
		return repo, func() {}, nil
	}

	repo, err := mariadb.New(cfg.Database, log)
	if err != nil {
		return nil, nil, err
	}
	closeRepo := func() {
		if err := repo.Close(); err != nil {
			log.Error("failed to close database", slog.String("error", err.Error()))
		}
	}

	if err := repo.Migrate(); err != nil {
		closeRepo()
		return nil, nil, err
	}

	n, err := repo.GetNumberOfGames()
	if err != nil {
		closeRepo()
		return nil, nil, err
	}
	if n == 0 {
		log.Info("database is empty, populating")
		if _, err := l.Populate(repo); err != nil {
			closeRepo()
			return nil, nil, err
		}
	}
	repo.CloseSession()

	return repo, closeRepo, nil
}

func setupLogger(env string) *slog.Logger {
	var log *slog.Logger
	switch env {
	case envLocal:
		log = slog.New(
			slog.NewTextHandler(os.Stdout, &slog.HandlerOptions{Level: slog.LevelDebug}),
		)
	case envProd:
		log = slog.New(
			slog.NewJSONHandler(os.Stdout, &slog.HandlerOptions{Level: slog.LevelInfo}),
		)
	default:
		log = slog.New(
			slog.NewTextHandler(os.Stdout, &slog.HandlerOptions{Level: slog.LevelInfo}),
		)
	}
	return log
}
