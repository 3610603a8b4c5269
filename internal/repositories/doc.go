// Package repositories implements SQLite persistence for the editor history.
//
// Key Implementations:
//   - [PlaylistFileRepository] : recently opened playlist files, looked up by path
//   - [SaveRecordRepository] : save history per playlist file
//   - [HistoryRecorder] : adapts both repositories to the editor's Recorder hook
//
// All repositories support soft deletes via deleted_at timestamps and exclude deleted records from queries by default.
// Sequence numbers provide stable, human-readable ordering independent of UUIDs and creation timestamps.
// The [NextSequence] function atomically increments per-table sequence counters in dedicated sequence tables.
package repositories
