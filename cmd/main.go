package main

import (
	"context"
	"database/sql"
	"errors"
	"os"

	"github.com/charmbracelet/log"
	"github.com/desertthunder/m3ux/internal/editor"
	"github.com/desertthunder/m3ux/internal/repositories"
	"github.com/desertthunder/m3ux/internal/shared"
	"github.com/urfave/cli/v3"
)

const defaultConfigPath = "config.toml"

func main() {
	logger := shared.NewLogger(nil)

	configPath := defaultConfigPath
	if env := os.Getenv("M3UX_CONFIG"); env != "" {
		configPath = env
	}

	config := shared.DefaultConfig()
	if _, err := os.Stat(configPath); err == nil {
		if loadedConfig, err := shared.LoadConfig(configPath); err == nil {
			config = loadedConfig
		} else {
			logger.Warn("failed to load config, using defaults", "path", configPath, "error", err)
		}
	}

	if err := shared.ApplyLogLevel(logger, config.Log.Level); err != nil {
		logger.Warn("ignoring log level", "error", err)
	}

	var history *repositories.HistoryRecorder
	var db *sql.DB
	if config.History.Enabled {
		if conn, err := shared.OpenHistoryDatabase(config.Database); err == nil {
			db = conn
			history = repositories.NewHistoryRecorder(db)
		} else {
			logger.Warn("history disabled", "error", err)
		}
	}

	runner := NewRunner(RunnerOpts{
		Config:     config,
		ConfigPath: configPath,
		History:    history,
		Logger:     logger,
	})

	app := &cli.Command{
		Name:     "m3ux",
		Usage:    "View and edit M3U channel playlists",
		Version:  "0.1.0",
		Commands: runner.register(),
	}

	err := app.Run(context.Background(), os.Args)
	if db != nil {
		db.Close()
	}

	if err != nil {
		if errors.Is(err, shared.ErrNotImplemented) {
			logger.Warn("not implemented")
			os.Exit(0)
		}
		exit(logger, err)
	}
}

// exit logs err and terminates with status 1.
func exit(logger *log.Logger, err error) {
	if editor.IsUserError(err) {
		logger.Error(err.Error())
	} else {
		logger.Error("application error", "error", err)
	}
	os.Exit(1)
}
