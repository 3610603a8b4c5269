package m3u

import (
	"bytes"
	"io"
	"strings"
)

const (
	HeaderTag = "#EXTM3U"
	InfoTag   = "#EXTINF"
)

// Entry is one channel: its #EXTINF metadata line and its location line.
type Entry struct {
	Info     string `json:"info"`
	Location string `json:"location"`
}

// NewEntry builds an Entry from a duration/attribute field and a display name.
func NewEntry(attrs, name, location string) Entry {
	return Entry{Info: InfoTag + ":" + attrs + "," + name, Location: location}
}

// Name returns the display name: the text after the first comma of the metadata line.
//
// A metadata line without a comma yields the whole trimmed line.
func (e Entry) Name() string {
	_, name, ok := strings.Cut(e.Info, ",")
	if !ok {
		return strings.TrimSpace(e.Info)
	}
	return strings.TrimSpace(name)
}

// Attributes returns the duration/attribute field between "#EXTINF:" and the first comma.
func (e Entry) Attributes() string {
	attrs, _, _ := strings.Cut(e.Info, ",")
	attrs = strings.TrimPrefix(attrs, InfoTag)
	return strings.TrimSpace(strings.TrimPrefix(attrs, ":"))
}

// Playlist is an optional header followed by entries in playback order.
type Playlist struct {
	Header  string  `json:"header,omitempty"` // empty when the source had no #EXTM3U line
	Entries []Entry `json:"entries"`
}

// HasHeader reports whether the playlist carries the #EXTM3U marker.
func (p *Playlist) HasHeader() bool {
	return p.Header != ""
}

// Len returns the number of entries.
func (p *Playlist) Len() int {
	if p == nil {
		return 0
	}
	return len(p.Entries)
}

// Names returns the display names in order.
func (p *Playlist) Names() []string {
	names := make([]string, 0, p.Len())
	if p == nil {
		return names
	}
	for _, e := range p.Entries {
		names = append(names, e.Name())
	}
	return names
}

// Clone returns a deep copy whose entry slice can be edited independently.
func (p *Playlist) Clone() *Playlist {
	if p == nil {
		return nil
	}
	entries := make([]Entry, len(p.Entries))
	copy(entries, p.Entries)
	return &Playlist{Header: p.Header, Entries: entries}
}

// WithEntries returns a copy of p holding entries.
func (p *Playlist) WithEntries(entries []Entry) *Playlist {
	return &Playlist{Header: p.Header, Entries: entries}
}

// WriteTo writes the serialized playlist to w.
func (p *Playlist) WriteTo(w io.Writer) (int64, error) {
	var buf bytes.Buffer
	if p.HasHeader() {
		buf.WriteString(p.Header)
		buf.WriteByte('\n')
	}
	for _, e := range p.Entries {
		buf.WriteString(e.Info)
		buf.WriteByte('\n')
		buf.WriteString(e.Location)
		buf.WriteByte('\n')
	}
	return buf.WriteTo(w)
}

// Serialize returns the text form of p.
func Serialize(p *Playlist) string {
	var sb strings.Builder
	if p != nil {
		p.WriteTo(&sb)
	}
	return sb.String()
}
