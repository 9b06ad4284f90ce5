package app

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"log/slog"
	"net/http"
	"os"
	"time"

	"golang.org/x/sync/errgroup"

	"github.com/mailconf/internal/config"
	"github.com/mailconf/internal/mailer"
	"github.com/mailconf/internal/model"
	"github.com/mailconf/internal/store"
)

type App struct {
	config *config.Config
	logger *slog.Logger
	store  *store.ConfigStore
	mailer *mailer.Mailer
}

func New() *App {
	cfg := config.Load()
	logger := newLogger(cfg)

	st := store.NewConfigStore()
	if cfg.InitialConfig != "" {
		seedStore(logger, st, cfg.InitialConfig)
	}

	return &App{
		config: cfg,
		logger: logger,
		store:  st,
		mailer: mailer.New(),
	}
}

func (app *App) Start(ctx context.Context) error {
	// Create an errgroup derived from the parent context
	g, gctx := errgroup.WithContext(ctx)

	srv := &http.Server{
		Addr:         fmt.Sprintf(":%s", app.config.Port),
		Handler:      app.routes(),
		IdleTimeout:  time.Minute,
		ReadTimeout:  5 * time.Second,
		WriteTimeout: 10 * time.Second,
		ErrorLog:     slog.NewLogLogger(app.logger.Handler(), slog.LevelError),
	}

	// Start the server in a goroutine
	g.Go(func() error {
		app.logger.Info("starting server", "addr", srv.Addr, "env", app.config.Env)
		if err := srv.ListenAndServe(); err != nil && !errors.Is(err, http.ErrServerClosed) {
			return fmt.Errorf("server failed: %w", err)
		}
		return nil
	})

	// Start shutdown listener
	g.Go(func() error {
		<-gctx.Done() // Wait for OS signal or parent context to fail

		app.logger.Info("shutting down server")

		shutdownCtx, cancel := context.WithTimeout(context.Background(), 30*time.Second)
		defer cancel()

		if err := srv.Shutdown(shutdownCtx); err != nil {
			return fmt.Errorf("server shutdown: %w", err)
		}
		return nil
	})

	if err := g.Wait(); err != nil {
		return fmt.Errorf("server error: %w", err)
	}

	app.logger.Info("stopped server")
	return nil
}

// seedStore loads the INITIAL_CONFIG JSON blob into the store. A
// malformed or invalid entry is logged and skipped so the server still
// starts.
func seedStore(logger *slog.Logger, st *store.ConfigStore, raw string) {
	var entries map[string]json.RawMessage
	if err := json.Unmarshal([]byte(raw), &entries); err != nil {
		logger.Warn("could not load initial configuration", "err", err)
		return
	}

	for code, data := range entries {
		var cfg model.EmailConfig
		if err := json.Unmarshal(data, &cfg); err != nil {
			logger.Warn("skipping malformed initial configuration entry", "organization", code, "err", err)
			continue
		}
		if errs := cfg.Validate(); errs != nil {
			logger.Warn("skipping invalid initial configuration entry", "organization", code, "errors", fmt.Sprint(errs))
			continue
		}
		if cfg.OrganizationCode != code {
			logger.Warn("skipping initial configuration entry with mismatched organization code", "organization", code)
			continue
		}
		st.Put(code, &cfg)
	}

	logger.Info("loaded initial configuration", "organizations", len(st.List()))
}

func newLogger(cfg *config.Config) *slog.Logger {
	logLevel := slog.LevelInfo

	if cfg.IsDevelopment() {
		logLevel = slog.LevelDebug
	}

	logger := slog.New(slog.NewTextHandler(os.Stdout, &slog.HandlerOptions{
		Level: logLevel,
	}))

	slog.SetDefault(logger)
	return logger
}
