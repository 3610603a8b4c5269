package repositories

import (
	"database/sql"
	"errors"
	"fmt"
	"path/filepath"
	"time"

	"github.com/desertthunder/m3ux/internal/editor"
	"github.com/desertthunder/m3ux/internal/m3u"
	"github.com/desertthunder/m3ux/internal/models"
	"github.com/desertthunder/m3ux/internal/shared"
)

var _ editor.Recorder = (*HistoryRecorder)(nil)

// HistoryRecorder keeps the recent-files list and save log in the history database.
type HistoryRecorder struct {
	files *PlaylistFileRepository
	saves *SaveRecordRepository
	now   func() time.Time
}

// NewHistoryRecorder creates a HistoryRecorder over db.
func NewHistoryRecorder(db *sql.DB) *HistoryRecorder {
	return &HistoryRecorder{
		files: NewPlaylistFileRepository(db),
		saves: NewSaveRecordRepository(db),
		now:   time.Now,
	}
}

// RecordOpen upserts the file row for path and bumps its open counter.
func (h *HistoryRecorder) RecordOpen(path string, p *m3u.Playlist) error {
	file, err := h.fileFor(path, p)
	if err != nil {
		return err
	}

	file.SetShape(p.HasHeader(), p.Len())
	file.MarkOpened(h.now())
	return h.files.Update(file)
}

// RecordSave logs a save of source to dest with the loaded and saved entry counts.
func (h *HistoryRecorder) RecordSave(source, dest string, loaded int, p *m3u.Playlist) error {
	if source == "" {
		source = dest
	}

	file, err := h.fileFor(source, p)
	if err != nil {
		return err
	}

	rec := models.NewSaveRecord(0, file.ID(), absPath(source), absPath(dest), loaded, p.Len())
	if err := h.saves.Create(rec); err != nil {
		return fmt.Errorf("failed to record save: %w", err)
	}
	return nil
}

// Recent returns up to limit files, most recently opened first. A non-positive limit returns all.
func (h *HistoryRecorder) Recent(limit int) ([]*models.PlaylistFile, error) {
	return h.files.List(map[string]any{"limit": limit})
}

// Saves returns the save log for path, newest first.
func (h *HistoryRecorder) Saves(path string, limit int) ([]*models.SaveRecord, error) {
	file, err := h.files.GetByPath(absPath(path))
	if err != nil {
		return nil, err
	}
	return h.saves.List(map[string]any{"playlist_file_id": file.ID(), "limit": limit})
}

// Forget drops path from the recent-files list.
func (h *HistoryRecorder) Forget(path string) error {
	file, err := h.files.GetByPath(absPath(path))
	if err != nil {
		return err
	}
	return h.files.Delete(file.ID())
}

// fileFor returns the live row for path, restoring a forgotten one or creating it.
func (h *HistoryRecorder) fileFor(path string, p *m3u.Playlist) (*models.PlaylistFile, error) {
	path = absPath(path)

	file, err := h.files.GetByPath(path)
	if err == nil {
		return file, nil
	}
	if !errors.Is(err, shared.ErrRecordNotFound) {
		return nil, err
	}

	if file, err := h.files.Restore(path); err == nil {
		return file, nil
	}

	file = models.NewPlaylistFile(0, path, p.HasHeader(), p.Len())
	if err := h.files.Create(file); err != nil {
		return nil, err
	}
	return file, nil
}

func absPath(path string) string {
	if abs, err := filepath.Abs(path); err == nil {
		return abs
	}
	return path
}
