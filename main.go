package main

import (
	"context"
	"fmt"
	"io"
	"os"
	"path/filepath"

	"github.com/rs/zerolog"
	"github.com/rs/zerolog/log"
	"github.com/urfave/cli/v3"

	"github.com/hay-kot/favs/internal/commands"
	"github.com/hay-kot/favs/internal/core/config"
	"github.com/hay-kot/favs/internal/core/favorite"
	"github.com/hay-kot/favs/internal/core/validate"
	"github.com/hay-kot/favs/internal/favorites"
	"github.com/hay-kot/favs/internal/printer"
	"github.com/hay-kot/favs/internal/store/jsonfile"
	"github.com/hay-kot/favs/internal/store/sqlite"
)

var (
	// Build information. Populated at build-time via -ldflags flag.
	version = "dev"
	commit  = "HEAD"
	date    = "now"
)

func build() string {
	short := commit
	if len(commit) > 7 {
		short = commit[:7]
	}

	return fmt.Sprintf("%s (%s) %s", version, short, date)
}

func main() {
	if err := setupLogger("info", ""); err != nil {
		panic(err)
	}

	var (
		p     = printer.New(os.Stderr)
		ctx   = printer.NewContext(context.Background(), p)
		flags = &commands.Flags{}
	)

	var closeBackend func() error

	app := &cli.Command{
		Name:      "favs",
		Usage:     "Keep a short list of favorite database tables",
		UsageText: "favs [global options] command [command options]",
		Description: `favs remembers the tables you work with most. The newest favorite is listed
first, duplicates are collapsed and the list is capped at max_favorites.

Favorites are cached per session and, when storage is configured, written
through to a database so they follow you into the next session.

Run 'favs add <db> <table>' to add a favorite.
Run 'favs pick' to choose one interactively.`,
		Version: build(),
		Flags: []cli.Flag{
			&cli.StringFlag{
				Name:        "log-level",
				Usage:       "log level (debug, info, warn, error, fatal, panic)",
				Sources:     cli.EnvVars("FAVS_LOG_LEVEL"),
				Value:       "info",
				Destination: &flags.LogLevel,
			},
			&cli.StringFlag{
				Name:        "log-file",
				Usage:       "path to log file (optional)",
				Sources:     cli.EnvVars("FAVS_LOG_FILE"),
				Destination: &flags.LogFile,
			},
			&cli.StringFlag{
				Name:        "config",
				Aliases:     []string{"c"},
				Usage:       "path to config file",
				Sources:     cli.EnvVars("FAVS_CONFIG"),
				Value:       commands.DefaultConfigPath(),
				Destination: &flags.ConfigPath,
			},
			&cli.StringFlag{
				Name:        "data-dir",
				Usage:       "path to data directory",
				Sources:     cli.EnvVars("FAVS_DATA_DIR"),
				Value:       commands.DefaultDataDir(),
				Destination: &flags.DataDir,
			},
			&cli.StringFlag{
				Name:        "session",
				Aliases:     []string{"s"},
				Usage:       "session id the favorites are cached under",
				Sources:     cli.EnvVars("FAVS_SESSION"),
				Value:       "default",
				Destination: &flags.Session,
			},
		},
		Before: func(ctx context.Context, c *cli.Command) (context.Context, error) {
			if err := setupLogger(flags.LogLevel, flags.LogFile); err != nil {
				return ctx, err
			}

			if err := validate.SessionID(flags.Session); err != nil {
				return ctx, err
			}

			cfg, err := config.Load(flags.ConfigPath, flags.DataDir)
			if err != nil {
				return ctx, fmt.Errorf("load config: %w", err)
			}
			flags.Config = cfg

			backend, closer, err := openBackend(cfg)
			if err != nil {
				return ctx, err
			}
			closeBackend = closer

			var (
				sessions = jsonfile.NewSessionStore(cfg.SessionsFile())
				logger   = log.With().Str("component", "favorites").Logger()
				opts     = favorites.Options{User: cfg.User, Server: cfg.Server, MaxSize: cfg.Bound()}
			)

			flags.Backend = backend
			flags.Service = favorites.New(sessions, backend, opts, logger)

			return ctx, nil
		},
		After: func(ctx context.Context, c *cli.Command) error {
			if closeBackend == nil {
				return nil
			}
			return closeBackend()
		},
	}

	app = commands.NewAddCmd(flags).Register(app)
	app = commands.NewRmCmd(flags).Register(app)
	app = commands.NewLsCmd(flags).Register(app)
	app = commands.NewPickCmd(flags).Register(app)
	app = commands.NewSessionCmd(flags).Register(app)
	app = commands.NewDoctorCmd(flags).Register(app)

	exitCode := 0
	if err := app.Run(ctx, os.Args); err != nil {
		fmt.Println()
		printer.Ctx(ctx).FatalError(err)
		exitCode = 1
	}

	os.Exit(exitCode)
}

// openBackend builds the persistent backend selected by the config. It returns
// a nil backend when persistence is disabled.
func openBackend(cfg *config.Config) (favorite.Pinger, func() error, error) {
	key, ok := cfg.Storage.BackendKey()
	if !ok {
		log.Debug().Msg("storage not configured, favorites are kept for the session only")
		return nil, nil, nil
	}

	switch cfg.Storage.Driver {
	case config.DriverJSONFile:
		return jsonfile.NewBackend(key.Database, key.Table), nil, nil
	default:
		if err := os.MkdirAll(filepath.Dir(key.Database), 0o755); err != nil {
			return nil, nil, fmt.Errorf("create database directory: %w", err)
		}

		b, err := sqlite.New(key.Database, key.Table)
		if err != nil {
			return nil, nil, fmt.Errorf("open favorites database: %w", err)
		}
		return b, b.Close, nil
	}
}

func setupLogger(level string, logFile string) error {
	parsedLevel, err := zerolog.ParseLevel(level)
	if err != nil {
		return fmt.Errorf("failed to parse log level: %w", err)
	}

	var output io.Writer = zerolog.ConsoleWriter{Out: os.Stderr}

	if logFile != "" {
		// Create log directory if it doesn't exist
		logDir := filepath.Dir(logFile)
		if err := os.MkdirAll(logDir, 0o755); err != nil {
			return fmt.Errorf("failed to create log directory: %w", err)
		}

		file, err := os.OpenFile(logFile, os.O_CREATE|os.O_WRONLY|os.O_APPEND, 0o644)
		if err != nil {
			return fmt.Errorf("failed to open log file: %w", err)
		}

		// Write to both console and file
		output = io.MultiWriter(
			zerolog.ConsoleWriter{Out: os.Stderr},
			file,
		)
	}

	log.Logger = log.Output(output).Level(parsedLevel)

	return nil
}
