package cli

import (
	"context"
	"fmt"
	"log/slog"
	"os"

	"github.com/ugaemi/groupcode/internal/code"
	"github.com/ugaemi/groupcode/internal/config"
	"github.com/ugaemi/groupcode/internal/registry"
	"github.com/ugaemi/groupcode/internal/store"
)

// App wires the code engine to its collaborators for one command.
type App struct {
	Table     *code.Table
	Formatter *code.Formatter
	Validator *code.Validator
	Allocator *code.Allocator
	Registry  *registry.Service
	Store     store.GroupStore
}

// NewApp loads configuration and builds the engine. Storage is opened only
// when withStore is set.
func NewApp(ctx context.Context, withStore, memory bool) (*App, error) {
	cfg := config.Load()
	setupLogger(cfg)

	table, err := config.LoadKinds(cfg.KindsFile)
	if err != nil {
		return nil, err
	}

	src := code.MathSource()
	if cfg.SecureRandom {
		src = code.CryptoSource()
	}

	app := &App{
		Table:     table,
		Formatter: code.NewFormatter(table, src),
	}
	if !withStore {
		return app, nil
	}

	groups, err := openStore(ctx, cfg, table, memory)
	if err != nil {
		return nil, err
	}

	app.Store = groups
	app.Validator = code.NewValidator(table, groups)
	app.Allocator = code.NewAllocator(table, app.Formatter, app.Validator)
	app.Registry = registry.NewService(table, app.Allocator, groups)
	return app, nil
}

// Close releases the store, if any.
func (a *App) Close() {
	if a.Store != nil {
		a.Store.Close()
	}
}

func openStore(ctx context.Context, cfg *config.Config, table *code.Table, memory bool) (store.GroupStore, error) {
	if memory {
		return store.NewMemoryStore(), nil
	}

	var tables []store.Table
	for _, k := range table.Kinds() {
		kc, _ := table.For(k)
		tables = append(tables, store.TableFor(k, kc))
	}

	s, err := store.NewPostgresStore(ctx, cfg.DatabaseURL, tables...)
	if err != nil {
		return nil, fmt.Errorf("connecting to database: %w", err)
	}
	return s, nil
}

func setupLogger(cfg *config.Config) {
	var h slog.Handler
	opts := &slog.HandlerOptions{}

	switch cfg.LogLevel {
	case "debug":
		opts.Level = slog.LevelDebug
	case "warn":
		opts.Level = slog.LevelWarn
	case "error":
		opts.Level = slog.LevelError
	default:
		opts.Level = slog.LevelInfo
	}

	// stdout carries command output
	switch cfg.LogFormat {
	case "json":
		h = slog.NewJSONHandler(os.Stderr, opts)
	default:
		h = slog.NewTextHandler(os.Stderr, opts)
	}

	slog.SetDefault(slog.New(h))
}

// Fatal prints err to stderr and exits with status 1.
func Fatal(err error) {
	printFailure(os.Stderr, err)
	os.Exit(1)
}

func parseKind(s string) (code.Kind, error) {
	kind, err := code.ParseKind(s)
	if err != nil {
		return 0, fmt.Errorf("%w (want school or class)", err)
	}
	return kind, nil
}

// requirePersistent rejects --memory for commands that read existing groups:
// each run starts with an empty in-memory store.
func requirePersistent(command string, memory bool) error {
	if memory {
		return fmt.Errorf("%s needs stored groups; --memory starts empty on every run", command)
	}
	return nil
}
