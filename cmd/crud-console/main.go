// main is the entry point of the CRUD console.
//
// STARTUP SEQUENCE:
//  1. Load configuration from a YAML file (+ .env + env overrides)
//  2. Initialise the logger (stderr or a rotated file, never stdout)
//  3. Open the storage backend selected by database.driver
//  4. Run the menu loop on stdin/stdout
//  5. Close storage; exit 0 on the "Exit" choice, 1 on any failure
//
// RUNNING:
//
//	go run ./cmd/crud-console --config=config/local.yaml
//
// or (with the environment variable):
//
//	CONFIG_PATH=config/local.yaml go run ./cmd/crud-console
package main

import (
	"context"
	"fmt"
	"io"
	"log/slog"
	"os"

	"github.com/spf13/cobra"
	"gopkg.in/natefinch/lumberjack.v2"

	"github.com/aanand-mishra/crud-console/internal/config"
	"github.com/aanand-mishra/crud-console/internal/console"
	"github.com/aanand-mishra/crud-console/internal/storage"
	"github.com/aanand-mishra/crud-console/internal/storage/postgres"
	"github.com/aanand-mishra/crud-console/internal/storage/sqlite"
)

const version = "1.0.0"

func main() {
	if err := newRootCmd().Execute(); err != nil {
		os.Exit(1)
	}
}

func newRootCmd() *cobra.Command {
	var configPath string

	cmd := &cobra.Command{
		Use:   "crud-console",
		Short: "Menu-driven CRUD over employees, products and students",
		Long: `crud-console prints numbered menus on stdout and reads choices as
whitespace-separated tokens from stdin. Employees can be listed, products
created, listed, updated and deleted, students created and listed.`,
		Version:       version,
		SilenceUsage:  true,
		SilenceErrors: true,
		Args:          cobra.NoArgs,
		RunE: func(cmd *cobra.Command, _ []string) error {
			cfg := config.MustLoad(configPath)
			return run(cmd.Context(), cfg, cmd.InOrStdin(), cmd.OutOrStdout(), cmd.ErrOrStderr())
		},
	}

	cmd.Flags().StringVar(&configPath, "config", "", "Path to the configuration YAML file")

	return cmd
}

// run is the single failure boundary: anything returned from opening
// storage or from the menu loop ends up here, is reported once, and is
// handed back to cobra so main exits with status 1.
//
// errOut is cobra's error writer (stderr in production). Logs go there
// too unless cfg.Log.File sends them to a file.
func run(ctx context.Context, cfg *config.Config, in io.Reader, out, errOut io.Writer) error {
	// ── 1. Initialise Logger ──────────────────────────────────────────────
	// The logger must exist before anything can fail, and it must never
	// write to `out`: stdout is the menu, and a script reading the listing
	// would choke on log lines mixed into it.
	log, logCloser := setupLogger(cfg, errOut)
	defer closeLogger(logCloser, errOut)
	slog.SetDefault(log)

	// report logs err once. When logs go to a file the user would not see
	// that line, so a short copy is printed on errOut as well. When logs
	// already go to errOut, printing again would show the failure twice.
	report := func(msg string, err error) {
		log.Error(msg, slog.String("error", err.Error()))
		if cfg.Log.File != "" {
			fmt.Fprintf(errOut, "error: %v\n", err)
		}
	}

	log.Info("starting crud-console",
		slog.String("env", cfg.Env),
		slog.String("driver", cfg.Database.Driver),
		slog.String("version", version),
	)

	// ── 2. Open Storage ───────────────────────────────────────────────────
	// openStorage hands back the storage.Storage INTERFACE. From here on
	// nothing knows whether it is talking to SQLite or PostgreSQL.
	store, err := openStorage(ctx, cfg)
	if err != nil {
		report("failed to initialise storage", err)
		return err
	}

	// Deferred calls run last-in first-out: storage closes (and may log)
	// before the log file is closed above.
	defer func() {
		if err := store.Close(); err != nil {
			log.Error("failed to close storage", slog.String("error", err.Error()))
		}
	}()

	log.Info("storage initialised")

	// ── 3. Run the Menu Loop ──────────────────────────────────────────────
	// Run blocks until the user picks "4. Exit" (nil) or something fails:
	// a storage error, a token that is not a number, or stdin running out.
	// There is no retry; the first error ends the session.
	if err := console.New(store, in, out).Run(ctx); err != nil {
		report("console stopped", err)
		return err
	}

	log.Info("exiting")
	return nil
}

// openStorage returns the backend named by cfg.Database.Driver as the
// storage.Storage interface, so nothing past this point knows which one
// it is.
func openStorage(ctx context.Context, cfg *config.Config) (storage.Storage, error) {
	switch cfg.Database.Driver {
	case "postgres":
		return postgres.New(ctx, cfg)
	case "sqlite":
		return sqlite.New(cfg)
	default:
		return nil, fmt.Errorf("unknown database driver %q", cfg.Database.Driver)
	}
}

// setupLogger returns a *slog.Logger configured for the given environment.
//
// Development (dev): human-readable text output at DEBUG level.
// Staging: JSON at DEBUG. Production (prod): JSON at INFO.
// cfg.Log.Level, when set, overrides the level.
//
// Output goes to cfg.Log.File through lumberjack rotation, or to errOut
// when no file is configured. The returned io.Closer is the lumberjack
// file, or nil when there is nothing to close.
func setupLogger(cfg *config.Config, errOut io.Writer) (*slog.Logger, io.Closer) {
	w := errOut
	var closer io.Closer

	if cfg.Log.File != "" {
		// lumberjack.Logger is an io.WriteCloser that rotates the file once
		// it reaches MaxSize megabytes, keeping MaxBackups old copies.
		lj := &lumberjack.Logger{
			Filename:   cfg.Log.File,
			MaxSize:    cfg.Log.MaxSizeMB,
			MaxBackups: cfg.Log.MaxBackups,
		}
		w = lj
		closer = lj
	}

	level := slog.LevelDebug
	if cfg.Env == "prod" {
		level = slog.LevelInfo
	}
	if cfg.Log.Level != "" {
		// Validated by config as one of debug|info|warn|error.
		_ = level.UnmarshalText([]byte(cfg.Log.Level))
	}

	opts := &slog.HandlerOptions{Level: level}

	switch cfg.Env {
	case "prod", "staging":
		return slog.New(slog.NewJSONHandler(w, opts)), closer
	default: // "dev" and anything unrecognised
		return slog.New(slog.NewTextHandler(w, opts)), closer
	}
}

// closeLogger closes the log file, if any. The logger cannot report its
// own close failure, so it goes straight to errOut.
func closeLogger(c io.Closer, errOut io.Writer) {
	if c == nil {
		return
	}
	if err := c.Close(); err != nil {
		fmt.Fprintf(errOut, "failed to close log file: %v\n", err)
	}
}
