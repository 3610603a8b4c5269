package main

import (
	"context"
	"fmt"

	"github.com/desertthunder/m3ux/internal/editor"
	"github.com/desertthunder/m3ux/internal/formatter"
	"github.com/desertthunder/m3ux/internal/m3u"
	"github.com/desertthunder/m3ux/internal/shared"
	"github.com/urfave/cli/v3"
)

// showResult is the JSON shape of `show`.
type showResult struct {
	Path     string              `json:"path"`
	Header   bool                `json:"header"`
	Channels []formatter.Channel `json:"channels"`
}

// Show lists the channels of a playlist.
func (r *Runner) Show(ctx context.Context, cmd *cli.Command) error {
	doc, err := r.open(cmd.StringArg("file"))
	if err != nil {
		return err
	}

	if cmd.Bool("json") {
		return r.writeJSON(showResult{
			Path:     doc.Path,
			Header:   doc.Playlist.HasHeader(),
			Channels: formatter.NewExport(doc.Path, doc.Playlist).Channels(),
		}, cmd.Bool("pretty"))
	}

	r.writePlainHeader(fmt.Sprintf("%s (%d channels)", doc.Path, doc.Len()))
	r.writeNames(doc)
	return nil
}

// Remove drops channels by position and/or by name and saves the playlist.
func (r *Runner) Remove(ctx context.Context, cmd *cli.Command) error {
	indices := cmd.IntSlice("index")
	exclude := cmd.String("non-matching")
	if len(indices) == 0 && exclude == "" {
		return fmt.Errorf("%w: either --index or --non-matching must be provided", shared.ErrMissingArgument)
	}

	doc, err := r.open(cmd.StringArg("file"))
	if err != nil {
		return err
	}

	if exclude != "" {
		indices = append(indices, editor.SelectNonMatching(doc.Entries(), exclude)...)
	}

	doc, out, err := r.apply(doc, editor.Remove(indices...))
	if err != nil {
		return err
	}
	r.logger.Debug("removed channels", "message", out.Message)

	return r.finish(doc, out, cmd)
}

// Move reorders one channel and saves the playlist.
func (r *Runner) Move(ctx context.Context, cmd *cli.Command) error {
	from, to := cmd.Int("from"), cmd.Int("to")
	up, down := cmd.Bool("up"), cmd.Bool("down")

	var edit editor.Command
	switch {
	case up && down:
		return fmt.Errorf("%w: cannot specify both --up and --down", shared.ErrInvalidFlag)
	case from < 0:
		return fmt.Errorf("%w: --from must be provided", shared.ErrMissingArgument)
	case up:
		edit = editor.MoveUpAt(from)
	case down:
		edit = editor.MoveDownAt(from)
	case to < 0:
		return fmt.Errorf("%w: one of --up, --down or --to must be provided", shared.ErrMissingArgument)
	default:
		edit = editor.Move(from, to)
	}

	doc, err := r.open(cmd.StringArg("file"))
	if err != nil {
		return err
	}

	doc, out, err := r.apply(doc, edit)
	if err != nil {
		return err
	}

	return r.finish(doc, out, cmd)
}

// selectResult is the JSON shape of `select`.
type selectResult struct {
	Path      string   `json:"path"`
	Indices   []int    `json:"indices"`
	Names     []string `json:"names"`
	Remaining int      `json:"remaining"`
}

// Select prints the channels an auto-select would mark.
//
// Without flags the exclusion text comes from editor.auto_select_exclude.
func (r *Runner) Select(ctx context.Context, cmd *cli.Command) error {
	exclude, match := cmd.String("exclude"), cmd.String("match")
	if exclude != "" && match != "" {
		return fmt.Errorf("%w: cannot specify both --exclude and --match", shared.ErrInvalidFlag)
	}
	if exclude == "" && match == "" {
		exclude = r.config.Editor.AutoSelectExclude
	}

	doc, err := r.open(cmd.StringArg("file"))
	if err != nil {
		return err
	}

	var indices []int
	if match != "" {
		indices = editor.SelectMatching(doc.Entries(), match)
	} else {
		_, out, err := r.apply(doc, editor.AutoSelect(exclude))
		if err != nil {
			return err
		}
		indices = out.Selection
	}

	names := make([]string, len(indices))
	for i, idx := range indices {
		names[i] = editor.DisplayName(doc.Entries()[idx])
	}

	if cmd.Bool("json") {
		return r.writeJSON(selectResult{
			Path:      doc.Path,
			Indices:   indices,
			Names:     names,
			Remaining: doc.Len() - len(indices),
		}, false)
	}

	r.writePlainHeader(fmt.Sprintf("Selected %d of %d channels", len(indices), doc.Len()))
	for i, idx := range indices {
		r.writePlain("%4d. %s\n", idx, names[i])
	}
	return nil
}

// finish saves doc to --output (or its own path) unless --dry-run is set.
func (r *Runner) finish(doc editor.Document, out editor.Outcome, cmd *cli.Command) error {
	if cmd.Bool("dry-run") {
		r.writePlain("%s", m3u.Serialize(doc.Playlist))
		return nil
	}

	if !out.Changed {
		r.writePlain("No changes to %s\n", doc.Path)
		return nil
	}

	doc, saved, err := r.apply(doc, editor.Save(cmd.String("output")))
	if err != nil {
		return err
	}

	r.writePlain("✓ %s\n", saved.Message)
	r.logger.Debug("saved", "path", doc.Path, "entries", doc.Len())
	return nil
}

func (r *Runner) writeNames(doc editor.Document) {
	for i, name := range doc.Names() {
		r.writePlain("%4d. %s\n", i, name)
	}
}
