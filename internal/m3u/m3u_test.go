package m3u

import (
	"errors"
	"os"
	"path/filepath"
	"runtime"
	"strings"
	"testing"

	"github.com/desertthunder/m3ux/internal/shared"
)

const scenario = "#EXTM3U\n#EXTINF:-1,Channel 1\nhttp://a\n#EXTINF:-1,Channel 2 HD\nhttp://b\n"

func TestParse(t *testing.T) {
	t.Run("header and entries", func(t *testing.T) {
		p, err := Parse(scenario)
		if err != nil {
			t.Fatalf("Parse failed: %v", err)
		}

		if p.Header != HeaderTag {
			t.Errorf("expected header %q, got %q", HeaderTag, p.Header)
		}

		want := []Entry{
			{Info: "#EXTINF:-1,Channel 1", Location: "http://a"},
			{Info: "#EXTINF:-1,Channel 2 HD", Location: "http://b"},
		}
		if len(p.Entries) != len(want) {
			t.Fatalf("expected %d entries, got %d", len(want), len(p.Entries))
		}
		for i := range want {
			if p.Entries[i] != want[i] {
				t.Errorf("entry %d = %+v, want %+v", i, p.Entries[i], want[i])
			}
		}
	})

	tc := []struct {
		name       string
		text       string
		opts       ParseOptions
		wantHeader bool
		wantNames  []string
		wantErr    error
	}{
		{
			name:      "empty input",
			text:      "",
			wantNames: []string{},
		},
		{
			name:       "header only",
			text:       "#EXTM3U\n",
			wantHeader: true,
			wantNames:  []string{},
		},
		{
			name:       "surrounding whitespace and CRLF",
			text:       "  #EXTM3U  \r\n #EXTINF:-1, Sport \r\n http://s \r\n",
			wantHeader: true,
			wantNames:  []string{"Sport"},
		},
		{
			name:       "byte order mark before header",
			text:       "\ufeff#EXTM3U\n#EXTINF:-1,News\nhttp://n\n",
			wantHeader: true,
			wantNames:  []string{"News"},
		},
		{
			name:      "first line is not a header and is skipped",
			text:      "#PLAYLIST\n#EXTINF:-1,Music\nhttp://m\n",
			wantNames: []string{"Music"},
		},
		{
			name:       "non-EXTINF pairs are dropped",
			text:       "#EXTM3U\n#EXTGRP:News\nhttp://x\n#EXTINF:-1,Kept\nhttp://k\n",
			wantHeader: true,
			wantNames:  []string{"Kept"},
		},
		{
			name:       "trailing non-EXTINF line is ignored",
			text:       "#EXTM3U\n#EXTINF:-1,A\nhttp://a\n# comment\n",
			wantHeader: true,
			wantNames:  []string{"A"},
		},
		{
			name:    "trailing EXTINF without location is malformed",
			text:    "#EXTM3U\n#EXTINF:-1,A\nhttp://a\n#EXTINF:-1,B\n",
			wantErr: shared.ErrMalformedFile,
		},
		{
			name:       "lenient parse skips trailing EXTINF",
			text:       "#EXTM3U\n#EXTINF:-1,A\nhttp://a\n#EXTINF:-1,B\n",
			opts:       ParseOptions{Lenient: true},
			wantHeader: true,
			wantNames:  []string{"A"},
		},
	}

	for _, tt := range tc {
		t.Run(tt.name, func(t *testing.T) {
			p, err := ParseWith(tt.text, tt.opts)
			if tt.wantErr != nil {
				if !errors.Is(err, tt.wantErr) {
					t.Fatalf("expected %v, got %v", tt.wantErr, err)
				}
				if p != nil {
					t.Error("expected no playlist on error")
				}
				return
			}
			if err != nil {
				t.Fatalf("unexpected error: %v", err)
			}

			if p.HasHeader() != tt.wantHeader {
				t.Errorf("HasHeader() = %v, want %v", p.HasHeader(), tt.wantHeader)
			}

			names := p.Names()
			if strings.Join(names, "|") != strings.Join(tt.wantNames, "|") {
				t.Errorf("Names() = %v, want %v", names, tt.wantNames)
			}
		})
	}

	t.Run("malformed error names the line", func(t *testing.T) {
		_, err := Parse("#EXTM3U\n#EXTINF:-1,A\n")
		if err == nil || !strings.Contains(err.Error(), "line 2") {
			t.Errorf("expected line number in error, got %v", err)
		}
	})
}

func TestSerialize(t *testing.T) {
	t.Run("round trip", func(t *testing.T) {
		inputs := []string{
			scenario,
			"#EXTM3U\n",
			"#EXTM3U\n#EXTINF:0 tvg-id=\"a.b\" group-title=\"News\",A, B\nrtmp://host/live\n",
		}
		for _, in := range inputs {
			p, err := Parse(in)
			if err != nil {
				t.Fatalf("Parse(%q) failed: %v", in, err)
			}
			if got := Serialize(p); got != in {
				t.Errorf("round trip mismatch:\n got %q\nwant %q", got, in)
			}
		}
	})

	t.Run("without header", func(t *testing.T) {
		p := &Playlist{Entries: []Entry{NewEntry("-1", "X", "http://x")}}
		want := "#EXTINF:-1,X\nhttp://x\n"
		if got := Serialize(p); got != want {
			t.Errorf("Serialize() = %q, want %q", got, want)
		}
	})

	t.Run("nil playlist", func(t *testing.T) {
		if got := Serialize(nil); got != "" {
			t.Errorf("expected empty output, got %q", got)
		}
	})
}

func TestEntry(t *testing.T) {
	tc := []struct {
		name      string
		info      string
		wantName  string
		wantAttrs string
	}{
		{name: "simple", info: "#EXTINF:-1,Channel 1", wantName: "Channel 1", wantAttrs: "-1"},
		{name: "name with commas", info: "#EXTINF:-1,News, Weather", wantName: "News, Weather", wantAttrs: "-1"},
		{name: "attributes", info: `#EXTINF:-1 tvg-id="x",  Sport  `, wantName: "Sport", wantAttrs: `-1 tvg-id="x"`},
		{name: "no comma falls back to line", info: "#EXTINF:-1", wantName: "#EXTINF:-1", wantAttrs: "-1"},
	}

	for _, tt := range tc {
		t.Run(tt.name, func(t *testing.T) {
			e := Entry{Info: tt.info}
			if got := e.Name(); got != tt.wantName {
				t.Errorf("Name() = %q, want %q", got, tt.wantName)
			}
			if got := e.Attributes(); got != tt.wantAttrs {
				t.Errorf("Attributes() = %q, want %q", got, tt.wantAttrs)
			}
		})
	}
}

func TestPlaylistClone(t *testing.T) {
	p, err := Parse(scenario)
	if err != nil {
		t.Fatalf("Parse failed: %v", err)
	}

	c := p.Clone()
	c.Entries[0].Location = "changed"
	if p.Entries[0].Location == "changed" {
		t.Error("clone shares entry storage with original")
	}

	var nilPlaylist *Playlist
	if nilPlaylist.Clone() != nil || nilPlaylist.Len() != 0 {
		t.Error("nil playlist helpers should be safe")
	}
}

func TestFiles(t *testing.T) {
	t.Run("Load", func(t *testing.T) {
		path := filepath.Join(t.TempDir(), "tv.m3u")
		if err := os.WriteFile(path, []byte(scenario), 0644); err != nil {
			t.Fatalf("failed to write fixture: %v", err)
		}

		p, err := Load(path, ParseOptions{})
		if err != nil {
			t.Fatalf("Load failed: %v", err)
		}
		if p.Len() != 2 {
			t.Errorf("expected 2 entries, got %d", p.Len())
		}
	})

	t.Run("Load missing file", func(t *testing.T) {
		_, err := Load(filepath.Join(t.TempDir(), "missing.m3u"), ParseOptions{})
		if !errors.Is(err, shared.ErrIOFailure) {
			t.Errorf("expected ErrIOFailure, got %v", err)
		}
	})

	t.Run("Load malformed file", func(t *testing.T) {
		path := filepath.Join(t.TempDir(), "bad.m3u")
		if err := os.WriteFile(path, []byte("#EXTM3U\n#EXTINF:-1,A\n"), 0644); err != nil {
			t.Fatalf("failed to write fixture: %v", err)
		}
		if _, err := Load(path, ParseOptions{}); !errors.Is(err, shared.ErrMalformedFile) {
			t.Errorf("expected ErrMalformedFile, got %v", err)
		}
	})

	t.Run("Save appends extension", func(t *testing.T) {
		p, _ := Parse(scenario)
		dir := t.TempDir()

		written, err := Save(filepath.Join(dir, "out"), p, "")
		if err != nil {
			t.Fatalf("Save failed: %v", err)
		}
		if written != filepath.Join(dir, "out.m3u") {
			t.Errorf("unexpected path %s", written)
		}

		data, err := os.ReadFile(written)
		if err != nil {
			t.Fatalf("failed to read saved file: %v", err)
		}
		if string(data) != scenario {
			t.Errorf("saved content = %q, want %q", data, scenario)
		}

		entries, _ := os.ReadDir(dir)
		if len(entries) != 1 {
			t.Errorf("expected only the saved file in %s, got %d entries", dir, len(entries))
		}
	})

	t.Run("Save keeps the mode of an existing file", func(t *testing.T) {
		if runtime.GOOS == "windows" {
			t.Skip("unix permissions")
		}
		p, _ := Parse(scenario)
		path := filepath.Join(t.TempDir(), "private.m3u")
		if err := os.WriteFile(path, []byte("#EXTM3U\n"), 0600); err != nil {
			t.Fatalf("failed to write file: %v", err)
		}

		if _, err := Save(path, p, ""); err != nil {
			t.Fatalf("Save failed: %v", err)
		}

		info, err := os.Stat(path)
		if err != nil {
			t.Fatalf("stat failed: %v", err)
		}
		if got := info.Mode().Perm(); got != 0600 {
			t.Errorf("expected mode 0600, got %o", got)
		}
	})

	t.Run("Save new file is world readable", func(t *testing.T) {
		if runtime.GOOS == "windows" {
			t.Skip("unix permissions")
		}
		p, _ := Parse(scenario)
		written, err := Save(filepath.Join(t.TempDir(), "new.m3u"), p, "")
		if err != nil {
			t.Fatalf("Save failed: %v", err)
		}
		info, err := os.Stat(written)
		if err != nil {
			t.Fatalf("stat failed: %v", err)
		}
		if got := info.Mode().Perm(); got != 0644 {
			t.Errorf("expected mode 0644, got %o", got)
		}
	})

	t.Run("Save into missing directory", func(t *testing.T) {
		p, _ := Parse(scenario)
		_, err := Save(filepath.Join(t.TempDir(), "nope", "out.m3u"), p, "")
		if !errors.Is(err, shared.ErrIOFailure) {
			t.Errorf("expected ErrIOFailure, got %v", err)
		}
	})

	t.Run("Save empty path", func(t *testing.T) {
		p, _ := Parse(scenario)
		if _, err := Save("", p, ""); !errors.Is(err, shared.ErrInvalidArgument) {
			t.Errorf("expected ErrInvalidArgument, got %v", err)
		}
	})
}
