package main

import (
	"context"

	"fyne.io/fyne/v2/app"
	"github.com/desertthunder/m3ux/internal/desktop"
	"github.com/urfave/cli/v3"
)

const appID = "com.desertthunder.m3ux"

// GUI opens the desktop editor window and blocks until it is closed.
func (r *Runner) GUI(ctx context.Context, cmd *cli.Command) error {
	a := app.NewWithID(appID)

	w := desktop.NewWindow(a, r.session, desktop.Options{
		Exclude:   r.config.Editor.AutoSelectExclude,
		Extension: r.config.Editor.DefaultExtension,
		Logger:    r.logger,
	})

	if path := cmd.StringArg("file"); path != "" {
		// failures are shown in the window
		_ = w.Open(path)
	}

	w.Window().ShowAndRun()
	return nil
}
