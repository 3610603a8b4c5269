package editor

import (
	"bytes"
	"errors"
	"fmt"
	"os"
	"path/filepath"
	"slices"
	"testing"

	"github.com/desertthunder/m3ux/internal/m3u"
	"github.com/desertthunder/m3ux/internal/shared"
)

const scenario = "#EXTM3U\n#EXTINF:-1,Channel 1\nhttp://a\n#EXTINF:-1,Channel 2 HD\nhttp://b\n"

// memStore is an in-memory [Store].
type memStore struct {
	files map[string]string
	fail  error
}

func (m *memStore) Load(path string) (*m3u.Playlist, error) {
	text, ok := m.files[path]
	if !ok {
		return nil, shared.ErrIOFailure
	}
	return m3u.Parse(text)
}

func (m *memStore) Save(path string, p *m3u.Playlist) (string, error) {
	if m.fail != nil {
		return "", m.fail
	}
	m.files[path] = m3u.Serialize(p)
	return path, nil
}

type recorded struct {
	opens []string
	saves []string
	err   error
}

func (r *recorded) RecordOpen(path string, p *m3u.Playlist) error {
	r.opens = append(r.opens, path)
	return r.err
}

func (r *recorded) RecordSave(source, dest string, loaded int, p *m3u.Playlist) error {
	r.saves = append(r.saves, dest)
	return r.err
}

func newTestSession(store Store, rec Recorder) *Session {
	return NewSession(SessionOpts{Store: store, Recorder: rec, Logger: shared.NewLogger(&bytes.Buffer{})})
}

func openScenario(t *testing.T, s *Session) Document {
	t.Helper()
	doc, _, err := s.Update(Document{}, Open("tv.m3u"))
	if err != nil {
		t.Fatalf("open failed: %v", err)
	}
	return doc
}

func TestSession(t *testing.T) {
	t.Run("end to end", func(t *testing.T) {
		store := &memStore{files: map[string]string{"tv.m3u": scenario}}
		s := newTestSession(store, nil)

		doc := openScenario(t, s)
		if doc.Playlist.Header != "#EXTM3U" {
			t.Errorf("expected header, got %q", doc.Playlist.Header)
		}
		if doc.Len() != 2 {
			t.Fatalf("expected 2 entries, got %d", doc.Len())
		}

		doc, out, err := s.Update(doc, Remove(0))
		if err != nil {
			t.Fatalf("remove failed: %v", err)
		}
		if !out.Changed || !doc.Dirty {
			t.Error("expected document to be marked changed")
		}
		want := m3u.Entry{Info: "#EXTINF:-1,Channel 2 HD", Location: "http://b"}
		if doc.Len() != 1 || doc.Entries()[0] != want {
			t.Fatalf("unexpected entries after remove: %+v", doc.Entries())
		}

		doc, _, err = s.Update(doc, Save("out.m3u"))
		if err != nil {
			t.Fatalf("save failed: %v", err)
		}
		if got := store.files["out.m3u"]; got != "#EXTM3U\n#EXTINF:-1,Channel 2 HD\nhttp://b\n" {
			t.Errorf("unexpected saved text %q", got)
		}
		if doc.Dirty || doc.Path != "out.m3u" || doc.Loaded != 1 {
			t.Errorf("unexpected document after save: %+v", doc)
		}
	})

	t.Run("original document is not modified", func(t *testing.T) {
		store := &memStore{files: map[string]string{"tv.m3u": scenario}}
		s := newTestSession(store, nil)
		doc := openScenario(t, s)

		next, _, _ := s.Update(doc, MoveDownAt(0))
		if !slices.Equal(doc.Names(), []string{"Channel 1", "Channel 2 HD"}) {
			t.Errorf("original document changed: %v", doc.Names())
		}
		if !slices.Equal(next.Names(), []string{"Channel 2 HD", "Channel 1"}) {
			t.Errorf("unexpected order: %v", next.Names())
		}
	})

	t.Run("move outcomes", func(t *testing.T) {
		store := &memStore{files: map[string]string{"tv.m3u": scenario}}
		s := newTestSession(store, nil)
		doc := openScenario(t, s)

		same, out, err := s.Update(doc, MoveUpAt(0))
		if err != nil {
			t.Fatalf("unexpected error: %v", err)
		}
		if out.Changed || same.Dirty || out.Cursor != 0 {
			t.Errorf("MoveUp(0) should be a no-op, got %+v", out)
		}

		_, out, _ = s.Update(doc, MoveDownAt(1))
		if out.Changed || out.Cursor != 1 {
			t.Errorf("MoveDown(last) should be a no-op, got %+v", out)
		}

		_, out, _ = s.Update(doc, MoveDownAt(0))
		if !out.Changed || out.Cursor != 1 {
			t.Errorf("expected cursor to follow moved entry, got %+v", out)
		}

		_, out, _ = s.Update(doc, Move(1, 0))
		if !out.Changed || out.Cursor != 0 {
			t.Errorf("expected cursor at target, got %+v", out)
		}
	})

	t.Run("errors leave document unchanged", func(t *testing.T) {
		store := &memStore{files: map[string]string{"tv.m3u": scenario, "bad.m3u": "#EXTM3U\n#EXTINF:-1,A\n"}}
		s := newTestSession(store, nil)
		doc := openScenario(t, s)

		tc := []struct {
			name string
			cmd  Command
			want error
		}{
			{name: "remove out of range", cmd: Remove(5), want: shared.ErrIndexOutOfRange},
			{name: "move out of range", cmd: Move(0, 2), want: shared.ErrIndexOutOfRange},
			{name: "open malformed", cmd: Open("bad.m3u"), want: shared.ErrMalformedFile},
			{name: "open missing", cmd: Open("missing.m3u"), want: shared.ErrIOFailure},
			{name: "open without path", cmd: Open(""), want: shared.ErrMissingArgument},
			{name: "unknown command", cmd: Command{Kind: CommandKind(99)}, want: shared.ErrUnknownCommand},
		}

		for _, tt := range tc {
			t.Run(tt.name, func(t *testing.T) {
				next, out, err := s.Update(doc, tt.cmd)
				if !errors.Is(err, tt.want) {
					t.Fatalf("expected %v, got %v", tt.want, err)
				}
				if next.Path != doc.Path || !slices.Equal(next.Names(), doc.Names()) || next.Dirty {
					t.Errorf("document changed on error: %+v", next)
				}
				if out.Message == "" {
					t.Error("expected an error message in the outcome")
				}
			})
		}
	})

	t.Run("save failure keeps dirty flag", func(t *testing.T) {
		store := &memStore{files: map[string]string{"tv.m3u": scenario}}
		s := newTestSession(store, nil)
		doc := openScenario(t, s)
		doc, _, _ = s.Update(doc, Remove(1))

		store.fail = shared.ErrIOFailure
		next, _, err := s.Update(doc, Save(""))
		if !errors.Is(err, shared.ErrIOFailure) {
			t.Fatalf("expected ErrIOFailure, got %v", err)
		}
		if !next.Dirty {
			t.Error("document should stay dirty after a failed save")
		}
	})

	t.Run("commands without a document", func(t *testing.T) {
		s := newTestSession(&memStore{files: map[string]string{}}, nil)
		for _, cmd := range []Command{Remove(0), MoveUpAt(1), Save("x.m3u"), AutoSelect("HD")} {
			if _, _, err := s.Update(Document{}, cmd); !errors.Is(err, shared.ErrNoDocument) {
				t.Errorf("%s: expected ErrNoDocument, got %v", cmd.Kind, err)
			}
		}
	})

	t.Run("empty selection is silent", func(t *testing.T) {
		store := &memStore{files: map[string]string{"tv.m3u": scenario}}
		s := newTestSession(store, nil)
		doc := openScenario(t, s)

		next, out, err := s.Update(doc, Remove())
		if err != nil {
			t.Fatalf("unexpected error: %v", err)
		}
		if out.Changed || next.Dirty || next.Len() != 2 {
			t.Errorf("expected no-op, got %+v", out)
		}
	})

	t.Run("auto select", func(t *testing.T) {
		store := &memStore{files: map[string]string{"tv.m3u": scenario}}
		s := newTestSession(store, nil)
		doc := openScenario(t, s)

		next, out, err := s.Update(doc, AutoSelect("HD"))
		if err != nil {
			t.Fatalf("unexpected error: %v", err)
		}
		if !slices.Equal(out.Selection, []int{0}) {
			t.Errorf("expected selection [0], got %v", out.Selection)
		}
		if next.Dirty {
			t.Error("auto select must not modify the document")
		}
	})

	t.Run("recorder", func(t *testing.T) {
		store := &memStore{files: map[string]string{"tv.m3u": scenario}}
		rec := &recorded{}
		s := newTestSession(store, rec)

		doc := openScenario(t, s)
		if _, _, err := s.Update(doc, Save("copy.m3u")); err != nil {
			t.Fatalf("save failed: %v", err)
		}

		if !slices.Equal(rec.opens, []string{"tv.m3u"}) || !slices.Equal(rec.saves, []string{"copy.m3u"}) {
			t.Errorf("unexpected recorder calls: %+v", rec)
		}

		rec.err = errors.New("database locked")
		if _, _, err := s.Update(Document{}, Open("tv.m3u")); err != nil {
			t.Errorf("recorder errors must not fail the command: %v", err)
		}
	})

	t.Run("file store", func(t *testing.T) {
		dir := t.TempDir()
		src := filepath.Join(dir, "tv.m3u")
		if err := os.WriteFile(src, []byte(scenario), 0644); err != nil {
			t.Fatalf("failed to write fixture: %v", err)
		}

		s := newTestSession(FileStore{Extension: ".m3u"}, nil)
		doc, _, err := s.Update(Document{}, Open(src))
		if err != nil {
			t.Fatalf("open failed: %v", err)
		}
		doc, _, _ = s.Update(doc, Remove(0))

		doc, _, err = s.Update(doc, Save(filepath.Join(dir, "edited")))
		if err != nil {
			t.Fatalf("save failed: %v", err)
		}
		if doc.Path != filepath.Join(dir, "edited.m3u") {
			t.Errorf("expected .m3u to be appended, got %s", doc.Path)
		}

		data, err := os.ReadFile(doc.Path)
		if err != nil {
			t.Fatalf("failed to read saved file: %v", err)
		}
		if string(data) != "#EXTM3U\n#EXTINF:-1,Channel 2 HD\nhttp://b\n" {
			t.Errorf("unexpected saved text %q", data)
		}
	})
}

func TestIsUserError(t *testing.T) {
	tests := []struct {
		name string
		err  error
		want bool
	}{
		{name: "malformed file", err: shared.ErrMalformedFile, want: true},
		{name: "wrapped index error", err: fmt.Errorf("remove: %w", shared.ErrIndexOutOfRange), want: true},
		{name: "busy", err: shared.ErrBusy, want: true},
		{name: "conflicting flags", err: shared.ErrInvalidFlag, want: true},
		{name: "unknown", err: errors.New("boom"), want: false},
		{name: "unknown command", err: shared.ErrUnknownCommand, want: false},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if got := IsUserError(tt.err); got != tt.want {
				t.Errorf("IsUserError(%v) = %v, want %v", tt.err, got, tt.want)
			}
		})
	}
}
