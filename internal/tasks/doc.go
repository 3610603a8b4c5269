// Package tasks runs long playlist jobs with real-time progress reporting.
//
// # Bulk Export
//
// [Exporter.BulkExport] exports many M3U files at once:
//
//   - A producer parses each file, throttled by a token-bucket limiter
//   - A bounded worker pool writes each parsed playlist through [formatter.Write]
//   - A manifest (export_manifest.json) summarizes every file's outcome
//
// A file that fails to parse or write is recorded in the manifest and never aborts the batch.
//
// # Progress Reporting
//
// Progress is reported on a caller-supplied channel. The [ProgressUpdate] struct contains phase, step counters
// and a message. Updates use select with default to prevent blocking, so a slow or absent reader only loses updates.
package tasks
