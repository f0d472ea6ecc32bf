package main

// @title           Library API
// @version         1.0.0
// @description     In-memory catalogue of authors and their books.

// @license.name  MIT
// @license.url   https://opensource.org/licenses/MIT

// @host      localhost:3000
// @BasePath  /

import (
	"context"
	"errors"
	"net/http"
	"os"
	"os/signal"
	"syscall"

	"github.com/gin-gonic/gin"
	"github.com/rs/zerolog/log"
	"github.com/snnyvrz/library-api/internal/config"
	"github.com/snnyvrz/library-api/internal/db"
	"github.com/snnyvrz/library-api/internal/handler"
	"github.com/snnyvrz/library-api/internal/logger"
	"github.com/snnyvrz/library-api/internal/repository"
	"github.com/snnyvrz/library-api/internal/router"
	"github.com/snnyvrz/library-api/internal/store"
)

func main() {
	cfg, err := config.Load()
	if err != nil {
		log.Fatal().Err(err).Msg("invalid configuration")
	}

	logger.Init(cfg.LogLevel, cfg.GinMode)
	gin.SetMode(cfg.GinMode)

	authorRepo, bookRepo, pinger, cleanup, err := openBackend(cfg)
	if err != nil {
		log.Fatal().Err(err).Str("driver", cfg.StoreDriver).Msg("failed to open storage backend")
	}
	defer cleanup()

	authors := store.NewAuthorStore(authorRepo)
	books := store.NewBookStore(bookRepo, authors)

	e := router.New(router.Deps{
		AppName:        cfg.AppName,
		AppVersion:     cfg.AppVersion,
		TrustedProxies: cfg.TrustedProxies,
		Authors:        authors,
		Books:          books,
		Pinger:         pinger,
	})

	srv := &http.Server{
		Addr:    cfg.Addr(),
		Handler: e,
	}

	go func() {
		log.Info().
			Str("addr", srv.Addr).
			Str("driver", cfg.StoreDriver).
			Str("version", cfg.AppVersion).
			Msgf("%s listening", cfg.AppName)

		if err := srv.ListenAndServe(); err != nil && !errors.Is(err, http.ErrServerClosed) {
			log.Fatal().Err(err).Msg("server failed")
		}
	}()

	quit := make(chan os.Signal, 1)
	signal.Notify(quit, syscall.SIGINT, syscall.SIGTERM)
	<-quit

	log.Info().Msg("shutting down")

	ctx, cancel := context.WithTimeout(context.Background(), cfg.ShutdownTimeout)
	defer cancel()

	if err := srv.Shutdown(ctx); err != nil {
		log.Error().Err(err).Msg("forced shutdown")
	}

	log.Info().Msg("server stopped")
}

func openBackend(cfg *config.Config) (repository.AuthorRepository, repository.BookRepository, handler.Pinger, func(), error) {
	if cfg.StoreDriver != config.StoreSQLite {
		return repository.NewMemoryAuthorRepository(), repository.NewMemoryBookRepository(), nil, func() {}, nil
	}

	gdb, err := db.ConnectWithRetry(cfg.SQLiteDSN, cfg.DBAttempts)
	if err != nil {
		return nil, nil, nil, nil, err
	}

	cleanup := func() {
		if err := db.Close(gdb); err != nil {
			log.Warn().Err(err).Msg("failed to close database")
		}
	}

	return repository.NewGormAuthorRepository(gdb), repository.NewGormBookRepository(gdb), db.NewChecker(gdb), cleanup, nil
}
