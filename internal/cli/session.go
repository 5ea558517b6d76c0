package cli

import (
	"context"
	"fmt"
	"io"
	"log/slog"

	"github.com/google/uuid"

	"github.com/roach88/signalctl/internal/codec"
	"github.com/roach88/signalctl/internal/config"
	"github.com/roach88/signalctl/internal/store"
)

// setupLogging installs a text slog handler on w. Every record carries a
// time-sortable session id so runs sharing a log can be told apart.
func setupLogging(w io.Writer, verbose bool) {
	logLevel := slog.LevelInfo
	if verbose {
		logLevel = slog.LevelDebug
	}
	handler := slog.NewTextHandler(w, &slog.HandlerOptions{
		Level: logLevel,
	})
	session := uuid.Must(uuid.NewV7()).String()
	slog.SetDefault(slog.New(handler).With("session", session))
}

// openBackend builds the backend selected by cfg.
func openBackend(cfg *config.Config) (store.Backend, error) {
	switch cfg.Backend {
	case config.BackendSQLite:
		b, err := store.OpenSQLite(cfg.File)
		if err != nil {
			return nil, err
		}
		return b, nil
	case config.BackendFile:
		c, err := codec.Lookup(cfg.Format)
		if err != nil {
			return nil, err
		}
		return store.NewFileBackend(cfg.File, c), nil
	default:
		return nil, fmt.Errorf("invalid backend %q", cfg.Backend)
	}
}

// openStore opens the configured backend and loads its records.
// The caller must Close the returned store.
func openStore(ctx context.Context, cfg *config.Config) (*store.Store, error) {
	slog.Debug("opening store", "backend", cfg.Backend, "path", cfg.File, "format", cfg.Format)

	backend, err := openBackend(cfg)
	if err != nil {
		return nil, WrapExitError(ExitCommandError, "failed to open store", err)
	}

	st := store.New(backend)
	if err := st.Load(ctx); err != nil {
		backend.Close()
		return nil, WrapExitError(ExitCommandError, "failed to load signals", err)
	}
	slog.Debug("store ready", "signals", st.Len())
	return st, nil
}

func closeStore(st *store.Store) {
	if err := st.Close(); err != nil {
		slog.Error("error closing store", "error", err)
	}
}

func commandContext(ctx context.Context) context.Context {
	if ctx == nil {
		return context.Background()
	}
	return ctx
}
