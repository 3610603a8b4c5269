package models

import (
	"fmt"
	"path/filepath"
	"time"
)

var (
	_ Model = (*PlaylistFile)(nil)
	_ Model = (*SaveRecord)(nil)
)

// PlaylistFile is a playlist file the editor has opened.
type PlaylistFile struct {
	record
	path         string
	name         string
	hasHeader    bool
	entryCount   int
	openCount    int
	lastOpenedAt time.Time
}

// NewPlaylistFile creates a PlaylistFile for path, named after its base name.
func NewPlaylistFile(sequence int, path string, hasHeader bool, entryCount int) *PlaylistFile {
	return &PlaylistFile{
		record:     newRecord(sequence),
		path:       path,
		name:       filepath.Base(path),
		hasHeader:  hasHeader,
		entryCount: entryCount,
	}
}

func (f *PlaylistFile) Path() string            { return f.path }
func (f *PlaylistFile) Name() string            { return f.name }
func (f *PlaylistFile) HasHeader() bool         { return f.hasHeader }
func (f *PlaylistFile) EntryCount() int         { return f.entryCount }
func (f *PlaylistFile) OpenCount() int          { return f.openCount }
func (f *PlaylistFile) LastOpenedAt() time.Time { return f.lastOpenedAt }

func (f *PlaylistFile) SetOpenCount(n int)          { f.openCount = n }
func (f *PlaylistFile) SetLastOpenedAt(t time.Time) { f.lastOpenedAt = t }

// SetShape records the header flag and entry count seen at the latest open.
func (f *PlaylistFile) SetShape(hasHeader bool, entryCount int) {
	f.hasHeader = hasHeader
	f.entryCount = entryCount
}

// MarkOpened bumps the open counter and stamps the open time.
func (f *PlaylistFile) MarkOpened(at time.Time) {
	f.openCount++
	f.lastOpenedAt = at
}

func (f *PlaylistFile) Validate() error {
	if f.path == "" {
		return fmt.Errorf("path is required")
	}
	if f.entryCount < 0 {
		return fmt.Errorf("entry count cannot be negative")
	}
	return nil
}

// SaveRecord is one save of an edited playlist.
type SaveRecord struct {
	record
	playlistFileID string
	sourcePath     string
	destPath       string
	entriesLoaded  int
	entriesSaved   int
}

// NewSaveRecord creates a SaveRecord for a save of the file identified by playlistFileID.
func NewSaveRecord(sequence int, playlistFileID, sourcePath, destPath string, loaded, saved int) *SaveRecord {
	return &SaveRecord{
		record:         newRecord(sequence),
		playlistFileID: playlistFileID,
		sourcePath:     sourcePath,
		destPath:       destPath,
		entriesLoaded:  loaded,
		entriesSaved:   saved,
	}
}

func (s *SaveRecord) PlaylistFileID() string { return s.playlistFileID }
func (s *SaveRecord) SourcePath() string     { return s.sourcePath }
func (s *SaveRecord) DestPath() string       { return s.destPath }
func (s *SaveRecord) EntriesLoaded() int     { return s.entriesLoaded }
func (s *SaveRecord) EntriesSaved() int      { return s.entriesSaved }

// Removed returns how many entries were dropped between load and save.
func (s *SaveRecord) Removed() int {
	return max(0, s.entriesLoaded-s.entriesSaved)
}

func (s *SaveRecord) Validate() error {
	if s.playlistFileID == "" {
		return fmt.Errorf("playlist file ID is required")
	}
	if s.destPath == "" {
		return fmt.Errorf("destination path is required")
	}
	if s.entriesLoaded < 0 || s.entriesSaved < 0 {
		return fmt.Errorf("entry counts cannot be negative")
	}
	return nil
}
