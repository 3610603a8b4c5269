package tasks

import (
	"context"
	"fmt"
	"os"
	"path/filepath"
	"sort"
	"sync"
	"time"

	"github.com/charmbracelet/log"
	"github.com/desertthunder/m3ux/internal/formatter"
	"github.com/desertthunder/m3ux/internal/m3u"
	"github.com/desertthunder/m3ux/internal/shared"
	"golang.org/x/time/rate"
)

const (
	DefaultWorkers   = 4
	MaxWorkers       = 10
	DefaultRateLimit = 20.0
	ManifestFilename = "export_manifest.json"
)

// BulkExportOpts contains configuration for bulk playlist exports.
type BulkExportOpts struct {
	Format     formatter.Format // Export format: json, csv, markdown, txt
	OutputDir  string           // Base output directory (default: m3u_export_{epoch})
	NumWorkers int              // Concurrent workers (default: 4, max: 10)
	RateLimit  float64          // Files parsed per second (default: 20)
}

// FileExportResult is the outcome of exporting one file.
type FileExportResult struct {
	Index    int
	Source   string
	Name     string
	Channels int
	Files    []string
	Success  bool
	Error    error
}

// BulkExportResult summarizes a bulk export.
type BulkExportResult struct {
	TotalFiles        int
	SuccessfulExports int
	FailedExports     int
	OutputDirectory   string
	ManifestPath      string
	Results           []FileExportResult // ordered as the input paths
}

// exportJob is one parsed file, or the error that kept it from parsing.
type exportJob struct {
	index  int
	source string
	name   string
	export *formatter.Export
	err    error
}

// Exporter runs bulk exports.
type Exporter struct {
	parse  m3u.ParseOptions
	load   func(string, m3u.ParseOptions) (*m3u.Playlist, error)
	logger *log.Logger
}

// NewExporter creates an Exporter that parses with opts. A nil logger defaults to [shared.NewLogger].
func NewExporter(opts m3u.ParseOptions, logger *log.Logger) *Exporter {
	if logger == nil {
		logger = shared.NewLogger(nil)
	}
	return &Exporter{parse: opts, load: m3u.Load, logger: logger}
}

// BulkExport exports paths concurrently with rate limiting and progress tracking.
//
// Partial failures are recorded per file. The returned error is non-nil only when the output directory or
// manifest cannot be written, or ctx is cancelled before every file is processed.
func (e *Exporter) BulkExport(
	ctx context.Context,
	prog chan<- ProgressUpdate,
	paths []string,
	opts BulkExportOpts,
) (*BulkExportResult, error) {
	if len(paths) == 0 {
		return nil, fmt.Errorf("%w: no playlist files given", shared.ErrMissingArgument)
	}
	if opts.Format == "" {
		opts.Format = formatter.FormatJSON
	}
	if opts.OutputDir == "" {
		opts.OutputDir = fmt.Sprintf("m3u_export_%d", time.Now().Unix())
	}
	if opts.NumWorkers <= 0 {
		opts.NumWorkers = DefaultWorkers
	}
	if opts.NumWorkers > MaxWorkers {
		opts.NumWorkers = MaxWorkers
	}
	if opts.RateLimit <= 0 {
		opts.RateLimit = DefaultRateLimit
	}

	if err := os.MkdirAll(opts.OutputDir, 0755); err != nil {
		return nil, fmt.Errorf("%w: failed to create output directory: %w", shared.ErrIOFailure, err)
	}

	result := &BulkExportResult{
		TotalFiles:      len(paths),
		OutputDirectory: opts.OutputDir,
		Results:         make([]FileExportResult, 0, len(paths)),
	}

	names := uniqueNames(paths)
	limiter := rate.NewLimiter(rate.Limit(opts.RateLimit), 1)

	jobs := make(chan exportJob, len(paths))
	results := make(chan FileExportResult, len(paths))

	var wg sync.WaitGroup
	for range opts.NumWorkers {
		wg.Add(1)
		go e.exportWorker(ctx, &wg, jobs, results, opts)
	}

	// the producer is part of wg so results closes only after it returns
	wg.Add(1)
	go func() {
		defer wg.Done()
		defer close(jobs)
		for i, path := range paths {
			if err := limiter.Wait(ctx); err != nil {
				return
			}

			sendProgress(prog, loadingPlaylistUpdate(i+1, len(paths), path))

			job := exportJob{index: i, source: path, name: names[i]}
			p, err := e.load(path, e.parse)
			if err != nil {
				job.err = err
			} else {
				job.export = formatter.NewExport(path, p)
				job.export.Name = names[i]
			}
			jobs <- job
		}
	}()

	go func() {
		wg.Wait()
		close(results)
	}()

	completed := 0
	for res := range results {
		completed++
		result.Results = append(result.Results, res)

		if res.Success {
			result.SuccessfulExports++
			sendProgress(prog, exportCompletedUpdate(completed, len(paths), res.Name, len(res.Files)))
		} else {
			result.FailedExports++
			e.logger.Warn("export failed", "source", res.Source, "error", res.Error)
			sendProgress(prog, exportFailedUpdate(completed, len(paths), res.Name, res.Error))
		}
	}

	sort.Slice(result.Results, func(i, j int) bool {
		return result.Results[i].Index < result.Results[j].Index
	})

	if err := ctx.Err(); err != nil {
		return result, fmt.Errorf("bulk export interrupted after %d of %d files: %w", completed, len(paths), err)
	}

	manifestPath := filepath.Join(opts.OutputDir, ManifestFilename)
	if err := formatter.WriteBulkExportManifest(manifestFor(result, opts.Format), manifestPath); err != nil {
		return result, fmt.Errorf("export completed but failed to write manifest: %w", err)
	}
	result.ManifestPath = manifestPath
	sendProgress(prog, manifestUpdate(manifestPath))

	return result, nil
}

// exportWorker is a worker goroutine that exports playlists from the jobs channel.
func (e *Exporter) exportWorker(
	ctx context.Context,
	wg *sync.WaitGroup,
	jobs <-chan exportJob,
	results chan<- FileExportResult,
	opts BulkExportOpts,
) {
	defer wg.Done()

	for job := range jobs {
		select {
		case <-ctx.Done():
			return
		default:
		}

		if job.err != nil {
			results <- FileExportResult{Index: job.index, Source: job.source, Name: job.name, Files: []string{}, Error: job.err}
			continue
		}
		results <- e.exportOne(job, opts)
	}
}

// exportOne writes a single playlist in the requested format.
func (e *Exporter) exportOne(j exportJob, opts BulkExportOpts) FileExportResult {
	result := FileExportResult{
		Index:    j.index,
		Source:   j.source,
		Name:     j.export.Name,
		Channels: j.export.Playlist.Len(),
		Files:    []string{},
	}

	var output string
	switch opts.Format {
	case formatter.FormatCSV, formatter.FormatMarkdown:
		output = filepath.Join(opts.OutputDir, j.export.Name)
	case formatter.FormatText:
		output = filepath.Join(opts.OutputDir, j.export.Name+"_channels.txt")
	default:
		output = filepath.Join(opts.OutputDir, j.export.Name+".json")
	}

	files, err := formatter.Write(j.export, opts.Format, output)
	if err != nil {
		result.Error = fmt.Errorf("%s export failed: %w", opts.Format, err)
		return result
	}

	e.logger.Debug("exported playlist", "source", j.source, "files", len(files))
	result.Files = files
	result.Success = true
	return result
}

// uniqueNames derives an output name per path, suffixing repeats with -2, -3, ...
func uniqueNames(paths []string) []string {
	seen := make(map[string]int, len(paths))
	names := make([]string, len(paths))
	for i, path := range paths {
		base := formatter.NewExport(path, nil).Name
		seen[base]++
		if n := seen[base]; n > 1 {
			names[i] = fmt.Sprintf("%s-%d", base, n)
		} else {
			names[i] = base
		}
	}
	return names
}

func manifestFor(result *BulkExportResult, format formatter.Format) *formatter.Manifest {
	m := &formatter.Manifest{
		Format:     format,
		ExportedAt: time.Now(),
		Total:      result.TotalFiles,
		Succeeded:  result.SuccessfulExports,
		Failed:     result.FailedExports,
		Entries:    make([]formatter.ManifestEntry, 0, len(result.Results)),
	}
	for _, res := range result.Results {
		entry := formatter.ManifestEntry{
			Source:   res.Source,
			Name:     res.Name,
			Channels: res.Channels,
			Success:  res.Success,
			Files:    res.Files,
		}
		if res.Error != nil {
			entry.Error = res.Error.Error()
		}
		m.Entries = append(m.Entries, entry)
	}
	return m
}
