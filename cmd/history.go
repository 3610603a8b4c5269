package main

import (
	"context"
	"fmt"
	"time"

	"github.com/desertthunder/m3ux/internal/shared"
	"github.com/urfave/cli/v3"
)

// historyEntry is the JSON shape of one `history list` row.
type historyEntry struct {
	Path         string    `json:"path"`
	Entries      int       `json:"entries"`
	Header       bool      `json:"header"`
	OpenCount    int       `json:"open_count"`
	LastOpenedAt time.Time `json:"last_opened_at"`
}

func (r *Runner) requireHistory() error {
	if r.history == nil {
		return fmt.Errorf("%w: history is disabled (set history.enabled in %s)", shared.ErrMissingConfig, r.configPath)
	}
	return nil
}

// HistoryList prints recently opened playlists.
func (r *Runner) HistoryList(ctx context.Context, cmd *cli.Command) error {
	if err := r.requireHistory(); err != nil {
		return err
	}

	files, err := r.history.Recent(cmd.Int("limit"))
	if err != nil {
		return fmt.Errorf("failed to list history: %w", err)
	}

	if cmd.Bool("json") {
		entries := make([]historyEntry, len(files))
		for i, f := range files {
			entries[i] = historyEntry{
				Path:         f.Path(),
				Entries:      f.EntryCount(),
				Header:       f.HasHeader(),
				OpenCount:    f.OpenCount(),
				LastOpenedAt: f.LastOpenedAt(),
			}
		}
		return r.writeJSON(entries, false)
	}

	if len(files) == 0 {
		r.writePlain("No playlists opened yet\n")
		return nil
	}

	r.writePlainHeader("Recent Playlists")
	for _, f := range files {
		r.writePlain("%s\n", f.Path())
		r.writePlain("   %d channels · opened %d times · last %s\n",
			f.EntryCount(), f.OpenCount(), f.LastOpenedAt().Format(time.DateTime))
	}
	return nil
}

// HistorySaves prints the saves made from a playlist.
func (r *Runner) HistorySaves(ctx context.Context, cmd *cli.Command) error {
	if err := r.requireHistory(); err != nil {
		return err
	}

	path := cmd.StringArg("file")
	if path == "" {
		return fmt.Errorf("%w: playlist file", shared.ErrMissingArgument)
	}

	saves, err := r.history.Saves(path, cmd.Int("limit"))
	if err != nil {
		return fmt.Errorf("failed to list saves: %w", err)
	}

	if len(saves) == 0 {
		r.writePlain("No saves recorded for %s\n", path)
		return nil
	}

	r.writePlainHeader(fmt.Sprintf("Saves from %s", path))
	for _, s := range saves {
		r.writePlain("%s → %s\n", s.CreatedAt().Format(time.DateTime), s.DestPath())
		r.writePlain("   %d of %d channels kept (%d removed)\n", s.EntriesSaved(), s.EntriesLoaded(), s.Removed())
	}
	return nil
}

// HistoryForget drops a playlist from the history.
func (r *Runner) HistoryForget(ctx context.Context, cmd *cli.Command) error {
	if err := r.requireHistory(); err != nil {
		return err
	}

	path := cmd.StringArg("file")
	if path == "" {
		return fmt.Errorf("%w: playlist file", shared.ErrMissingArgument)
	}

	if err := r.history.Forget(path); err != nil {
		return fmt.Errorf("failed to forget %s: %w", path, err)
	}

	r.writePlain("✓ Forgot %s\n", path)
	return nil
}
