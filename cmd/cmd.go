// submodule cmd contains command definitions
package main

import "github.com/urfave/cli/v3"

func fileArg() []cli.Argument {
	return []cli.Argument{
		&cli.StringArg{
			Name:      "file",
			UsageText: "Path to an M3U playlist",
		},
	}
}

func outputFlag(usage string) *cli.StringFlag {
	return &cli.StringFlag{
		Name:    "output",
		Aliases: []string{"o"},
		Usage:   usage,
	}
}

// showCommand prints the channels of a playlist
func showCommand(r *Runner) *cli.Command {
	return &cli.Command{
		Name:      "show",
		Aliases:   []string{"ls"},
		Usage:     "List the channels of a playlist",
		Arguments: fileArg(),
		Flags: []cli.Flag{
			&cli.BoolFlag{
				Name:  "json",
				Usage: "Output raw JSON",
			},
			&cli.BoolFlag{
				Name:  "pretty",
				Usage: "Pretty-print output",
			},
		},
		Action: r.Show,
	}
}

// removeCommand drops channels and saves the result
func removeCommand(r *Runner) *cli.Command {
	return &cli.Command{
		Name:      "remove",
		Aliases:   []string{"rm"},
		Usage:     "Remove channels by position or by name",
		Arguments: fileArg(),
		Flags: []cli.Flag{
			&cli.IntSliceFlag{
				Name:    "index",
				Aliases: []string{"i"},
				Usage:   "Zero-based position to remove (repeatable)",
			},
			&cli.StringFlag{
				Name:  "non-matching",
				Usage: "Remove every channel whose name lacks this text",
			},
			&cli.BoolFlag{
				Name:  "dry-run",
				Usage: "Print the result instead of saving it",
			},
			outputFlag("Save to this path instead of overwriting the input"),
		},
		Action: r.Remove,
	}
}

// moveCommand reorders a channel and saves the result
func moveCommand(r *Runner) *cli.Command {
	return &cli.Command{
		Name:      "move",
		Aliases:   []string{"mv"},
		Usage:     "Move a channel up, down or to a new position",
		Arguments: fileArg(),
		Flags: []cli.Flag{
			&cli.IntFlag{
				Name:  "from",
				Usage: "Zero-based position of the channel to move",
				Value: -1,
			},
			&cli.IntFlag{
				Name:  "to",
				Usage: "Zero-based destination position",
				Value: -1,
			},
			&cli.BoolFlag{
				Name:  "up",
				Usage: "Swap the channel with the one above it",
			},
			&cli.BoolFlag{
				Name:  "down",
				Usage: "Swap the channel with the one below it",
			},
			&cli.BoolFlag{
				Name:  "dry-run",
				Usage: "Print the result instead of saving it",
			},
			outputFlag("Save to this path instead of overwriting the input"),
		},
		Action: r.Move,
	}
}

// selectCommand previews an auto-selection
func selectCommand(r *Runner) *cli.Command {
	return &cli.Command{
		Name:      "select",
		Usage:     "Print the channels an auto-select would mark",
		Arguments: fileArg(),
		Flags: []cli.Flag{
			&cli.StringFlag{
				Name:  "exclude",
				Usage: "Select channels whose name lacks this text (default from config)",
			},
			&cli.StringFlag{
				Name:  "match",
				Usage: "Select channels whose name contains this text",
			},
			&cli.BoolFlag{
				Name:  "json",
				Usage: "Output raw JSON",
			},
		},
		Action: r.Select,
	}
}

// exportCommand writes a playlist in another format
func exportCommand(r *Runner) *cli.Command {
	return &cli.Command{
		Name:      "export",
		Usage:     "Export a playlist as JSON, CSV, Markdown or text",
		Arguments: fileArg(),
		Flags: []cli.Flag{
			&cli.StringFlag{
				Name:    "format",
				Aliases: []string{"f"},
				Usage:   "Export format: json, csv, markdown, txt (default from config)",
			},
			outputFlag("Output path; a directory for markdown, a base path for csv"),
		},
		Action: r.Export,
		Commands: []*cli.Command{
			{
				Name:      "bulk",
				Usage:     "Export many playlists concurrently",
				UsageText: "m3ux export bulk [options] FILE...",
				Flags: []cli.Flag{
					&cli.StringFlag{
						Name:    "format",
						Aliases: []string{"f"},
						Usage:   "Export format: json, csv, markdown, txt (default from config)",
					},
					&cli.StringFlag{
						Name:  "output-dir",
						Usage: "Directory for the exports (default: m3u_export_{epoch})",
					},
					&cli.IntFlag{
						Name:  "workers",
						Usage: "Concurrent workers, at most 10 (default from config)",
					},
				},
				Action: r.BulkExport,
			},
		},
	}
}

// tuiCommand launches the terminal editor
func tuiCommand(r *Runner) *cli.Command {
	return &cli.Command{
		Name:      "tui",
		Usage:     "Edit a playlist in the terminal",
		Arguments: fileArg(),
		Action:    r.TUI,
	}
}

// guiCommand launches the desktop editor
func guiCommand(r *Runner) *cli.Command {
	return &cli.Command{
		Name:      "gui",
		Usage:     "Edit a playlist in a desktop window",
		Arguments: fileArg(),
		Action:    r.GUI,
	}
}

// historyCommand inspects the recent-files history
func historyCommand(r *Runner) *cli.Command {
	return &cli.Command{
		Name:  "history",
		Usage: "Recently opened playlists and their saves",
		Commands: []*cli.Command{
			{
				Name:  "list",
				Usage: "List recently opened playlists",
				Flags: []cli.Flag{
					&cli.IntFlag{
						Name:  "limit",
						Usage: "Maximum number of files to list",
						Value: 20,
					},
					&cli.BoolFlag{
						Name:  "json",
						Usage: "Output raw JSON",
					},
				},
				Action: r.HistoryList,
			},
			{
				Name:      "saves",
				Usage:     "List the saves made from a playlist",
				Arguments: fileArg(),
				Flags: []cli.Flag{
					&cli.IntFlag{
						Name:  "limit",
						Usage: "Maximum number of saves to list",
						Value: 20,
					},
				},
				Action: r.HistorySaves,
			},
			{
				Name:      "forget",
				Usage:     "Drop a playlist from the history",
				Arguments: fileArg(),
				Action:    r.HistoryForget,
			},
		},
	}
}

// configFlag defaults to the config path the runner was started with (M3UX_CONFIG or config.toml)
func (r *Runner) configFlag() *cli.StringFlag {
	path := r.configPath
	if path == "" {
		path = defaultConfigPath
	}
	return &cli.StringFlag{
		Name:    "config",
		Aliases: []string{"c"},
		Usage:   "Path to configuration file",
		Value:   path,
	}
}

// setupCommand creates the config file and history database
func setupCommand(r *Runner) *cli.Command {
	return &cli.Command{
		Name:  "setup",
		Usage: "Create the config file and history database",
		Commands: []*cli.Command{
			{
				Name:  "config",
				Usage: "Write the example config file",
				Flags: []cli.Flag{
					r.configFlag(),
				},
				Action: r.SetupConfig,
			},
			{
				Name:  "database",
				Usage: "Initialize the history database",
				Flags: []cli.Flag{
					r.configFlag(),
				},
				Action: r.SetupDatabase,
			},
		},
	}
}
