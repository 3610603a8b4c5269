package editor

import (
	"github.com/desertthunder/m3ux/internal/m3u"
)

// Document is the playlist being edited together with where it came from.
//
// Documents are values: [Session.Update] returns a new one instead of
// modifying the one it receives.
type Document struct {
	Path     string        // file the playlist was opened from or last saved to
	Playlist *m3u.Playlist // nil until a file is opened
	Dirty    bool          // edited since the last open or save
	Loaded   int           // entry count at the last open or save
}

// IsOpen reports whether a playlist is loaded.
func (d Document) IsOpen() bool {
	return d.Playlist != nil
}

// Len returns the number of entries.
func (d Document) Len() int {
	return d.Playlist.Len()
}

// Entries returns the entries in playback order.
func (d Document) Entries() []m3u.Entry {
	if d.Playlist == nil {
		return nil
	}
	return d.Playlist.Entries
}

// Names returns the display names in playback order.
func (d Document) Names() []string {
	return DisplayNames(d.Entries())
}

// withEntries returns a dirty copy of d holding entries.
func (d Document) withEntries(entries []m3u.Entry) Document {
	d.Playlist = d.Playlist.WithEntries(entries)
	d.Dirty = true
	return d
}
