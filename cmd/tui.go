package main

import (
	"context"
	"fmt"

	tea "github.com/charmbracelet/bubbletea"
	"github.com/desertthunder/m3ux/internal/shared"
	"github.com/desertthunder/m3ux/internal/ui"
	"github.com/urfave/cli/v3"
)

const defaultTUILog = "./tmp/m3ux-tui.log"

// TUI launches the interactive terminal editor.
func (r *Runner) TUI(ctx context.Context, cmd *cli.Command) error {
	logPath := r.config.Log.File
	if logPath == "" {
		logPath = defaultTUILog
	}

	// Redirect logs to file to avoid interfering with TUI rendering
	fileLogger, err := shared.NewFileLogger(logPath)
	if err != nil {
		return fmt.Errorf("failed to create file logger: %w", err)
	}
	if err := shared.ApplyLogLevel(fileLogger, r.config.Log.Level); err != nil {
		r.logger.Warn("ignoring log level", "error", err)
	}
	r.SetLogger(fileLogger)

	model := ui.NewModel(r.session, ui.Options{
		Path:    cmd.StringArg("file"),
		Exclude: r.config.Editor.AutoSelectExclude,
	})
	p := tea.NewProgram(model, tea.WithAltScreen(), tea.WithContext(ctx))

	if _, err := p.Run(); err != nil {
		return fmt.Errorf("error running TUI: %w", err)
	}

	return nil
}
