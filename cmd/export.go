package main

import (
	"context"
	"fmt"

	"github.com/desertthunder/m3ux/internal/formatter"
	"github.com/desertthunder/m3ux/internal/shared"
	"github.com/desertthunder/m3ux/internal/tasks"
	"github.com/urfave/cli/v3"
)

// exportFormat resolves --format, falling back to export.format from the config.
func (r *Runner) exportFormat(cmd *cli.Command) (formatter.Format, error) {
	name := cmd.String("format")
	if name == "" {
		name = r.config.Export.Format
	}
	return formatter.ParseFormat(name)
}

// Export writes one playlist in another format.
func (r *Runner) Export(ctx context.Context, cmd *cli.Command) error {
	format, err := r.exportFormat(cmd)
	if err != nil {
		return err
	}

	doc, err := r.open(cmd.StringArg("file"))
	if err != nil {
		return err
	}

	export := formatter.NewExport(doc.Path, doc.Playlist)
	files, err := formatter.Write(export, format, cmd.String("output"))
	if err != nil {
		return err
	}

	r.logger.Info("exported playlist", "source", doc.Path, "format", format, "files", len(files))
	r.writePlain("✓ Exported %d channels as %s\n", doc.Len(), format)
	for _, f := range files {
		r.writePlain("  %s\n", f)
	}
	return nil
}

// BulkExport exports every playlist named on the command line.
func (r *Runner) BulkExport(ctx context.Context, cmd *cli.Command) error {
	paths := cmd.Args().Slice()
	if len(paths) == 0 {
		return fmt.Errorf("%w: at least one playlist file", shared.ErrMissingArgument)
	}

	format, err := r.exportFormat(cmd)
	if err != nil {
		return err
	}

	workers := cmd.Int("workers")
	if workers <= 0 {
		workers = r.config.Export.Workers
	}

	opts := tasks.BulkExportOpts{
		Format:     format,
		OutputDir:  cmd.String("output-dir"),
		NumWorkers: workers,
		RateLimit:  r.config.Export.RateLimit,
	}

	r.logger.Info("starting bulk export", "files", len(paths), "format", format)
	r.writePlain("Exporting %d playlists as %s...\n\n", len(paths), format)

	progressCh := make(chan tasks.ProgressUpdate, 50)
	done := make(chan struct{})
	go func() {
		defer close(done)
		for update := range progressCh {
			switch update.Phase {
			case tasks.LoadPlaylist:
				r.logger.Debug(update.Message)
			case tasks.ExportPlaylist:
				r.writePlain("   %s\n", update.Message)
			case tasks.WriteManifest:
				r.writePlain("\n📝 %s\n", update.Message)
			}
		}
	}()

	exporter := tasks.NewExporter(parseOptions(r.config), r.logger)
	result, err := exporter.BulkExport(ctx, progressCh, paths, opts)
	close(progressCh)
	<-done

	if result == nil {
		return err
	}

	r.writePlain("\n")
	r.writePlainHeader("Bulk Export Complete!")
	r.writePlain("Output: %s\n", result.OutputDirectory)
	r.writePlain("Exported: %d/%d\n", result.SuccessfulExports, result.TotalFiles)

	if result.FailedExports > 0 {
		r.writePlain("\nFailed to export %d playlists:\n", result.FailedExports)
		for _, res := range result.Results {
			if !res.Success {
				r.writePlain("  - %s: %v\n", res.Source, res.Error)
			}
		}
	}

	return err
}
