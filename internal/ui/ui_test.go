package ui

import (
	"errors"
	"io"
	"path/filepath"
	"reflect"
	"strings"
	"testing"

	tea "github.com/charmbracelet/bubbletea"
	"github.com/charmbracelet/log"
	"github.com/desertthunder/m3ux/internal/editor"
	th "github.com/desertthunder/m3ux/internal/testing"
)

func newTestModel(t *testing.T) (*Model, string) {
	t.Helper()
	path := th.WritePlaylist(t, t.TempDir(), "sample.m3u", th.SamplePlaylist)
	session := editor.NewSession(editor.SessionOpts{Logger: log.New(io.Discard)})
	m := NewModel(session, Options{Path: path})
	m.Update(tea.WindowSizeMsg{Width: 100, Height: 30})
	run(t, m, m.Init())
	return m, path
}

// run executes cmd synchronously and feeds its message back into the model.
func run(t *testing.T, m *Model, cmd tea.Cmd) {
	t.Helper()
	if cmd == nil {
		t.Fatal("expected a command")
	}
	m.Update(cmd())
}

func keyMsg(k string) tea.KeyMsg {
	switch k {
	case "space":
		return tea.KeyMsg{Type: tea.KeySpace, Runes: []rune{' '}}
	case "enter":
		return tea.KeyMsg{Type: tea.KeyEnter}
	case "esc":
		return tea.KeyMsg{Type: tea.KeyEsc}
	case "down":
		return tea.KeyMsg{Type: tea.KeyDown}
	case "up":
		return tea.KeyMsg{Type: tea.KeyUp}
	default:
		return tea.KeyMsg{Type: tea.KeyRunes, Runes: []rune(k)}
	}
}

func press(m *Model, keys ...string) tea.Cmd {
	var cmd tea.Cmd
	for _, k := range keys {
		_, cmd = m.Update(keyMsg(k))
	}
	return cmd
}

func TestModel_Open(t *testing.T) {
	t.Run("without path", func(t *testing.T) {
		m := NewModel(editor.NewSession(editor.SessionOpts{Logger: log.New(io.Discard)}), Options{})
		if cmd := m.Init(); cmd != nil {
			t.Error("expected no initial command")
		}
		if !strings.Contains(m.View(), "No playlist open") {
			t.Errorf("unexpected view: %s", m.View())
		}
	})

	t.Run("initial path", func(t *testing.T) {
		m, _ := newTestModel(t)
		want := []string{"News HD", "Weather", "Sports HD"}
		if got := m.Document().Names(); !reflect.DeepEqual(got, want) {
			t.Errorf("expected %v, got %v", want, got)
		}
		if m.busy {
			t.Error("expected busy flag cleared")
		}
		if !strings.Contains(m.entries.Title, "sample (3 channels)") {
			t.Errorf("unexpected title: %s", m.entries.Title)
		}
	})

	t.Run("malformed file keeps document", func(t *testing.T) {
		m, _ := newTestModel(t)
		bad := th.WritePlaylist(t, t.TempDir(), "bad.m3u", "#EXTM3U\n#EXTINF:-1,Dangling\n")

		press(m, "o")
		if m.view != PromptView {
			t.Fatalf("expected prompt view, got %v", m.view)
		}
		m.prompt.SetValue(bad)
		run(t, m, press(m, "enter"))

		if !m.failed {
			t.Error("expected error status")
		}
		if m.Document().Len() != 3 {
			t.Errorf("expected document unchanged, got %d entries", m.Document().Len())
		}
	})

	t.Run("prompt cancel", func(t *testing.T) {
		m, _ := newTestModel(t)
		press(m, "o", "esc")
		if m.view != EditView || m.status != "Cancelled" {
			t.Errorf("expected cancelled prompt, got view=%v status=%q", m.view, m.status)
		}
	})
}

func TestModel_Selection(t *testing.T) {
	t.Run("toggle", func(t *testing.T) {
		m, _ := newTestModel(t)

		press(m, "space")
		if got := m.Selection(); !reflect.DeepEqual(got, []int{0}) {
			t.Errorf("expected [0], got %v", got)
		}

		press(m, "down", "down", "space")
		if got := m.Selection(); !reflect.DeepEqual(got, []int{0, 2}) {
			t.Errorf("expected [0 2], got %v", got)
		}

		press(m, "space")
		if got := m.Selection(); !reflect.DeepEqual(got, []int{0}) {
			t.Errorf("expected [0], got %v", got)
		}

		press(m, "esc")
		if got := m.Selection(); len(got) != 0 {
			t.Errorf("expected cleared selection, got %v", got)
		}
	})

	t.Run("auto-select then remove", func(t *testing.T) {
		m, _ := newTestModel(t)

		press(m, "a")
		if got := m.Selection(); !reflect.DeepEqual(got, []int{1}) {
			t.Fatalf("expected [1], got %v", got)
		}

		press(m, "x")
		want := []string{"News HD", "Sports HD"}
		if got := m.Document().Names(); !reflect.DeepEqual(got, want) {
			t.Errorf("expected %v, got %v", want, got)
		}
		if !m.Document().Dirty {
			t.Error("expected dirty document")
		}
		if len(m.Selection()) != 0 {
			t.Error("expected selection cleared after remove")
		}
	})

	t.Run("remove with nothing selected", func(t *testing.T) {
		m, _ := newTestModel(t)
		press(m, "x")
		if m.Document().Len() != 3 {
			t.Errorf("expected no change, got %d entries", m.Document().Len())
		}
		if m.status != "Nothing selected" {
			t.Errorf("unexpected status: %q", m.status)
		}
	})

	t.Run("custom exclude", func(t *testing.T) {
		path := th.WritePlaylist(t, t.TempDir(), "s.m3u", th.SamplePlaylist)
		m := NewModel(editor.NewSession(editor.SessionOpts{Logger: log.New(io.Discard)}), Options{Path: path, Exclude: "Weather"})
		run(t, m, m.Init())

		press(m, "a")
		if got := m.Selection(); !reflect.DeepEqual(got, []int{0, 2}) {
			t.Errorf("expected [0 2], got %v", got)
		}
	})
}

func TestModel_Sort(t *testing.T) {
	t.Run("discard", func(t *testing.T) {
		m, _ := newTestModel(t)
		press(m, "t", "J", "esc")

		if m.view != EditView {
			t.Fatalf("expected edit view, got %v", m.view)
		}
		want := []string{"News HD", "Weather", "Sports HD"}
		if got := m.Document().Names(); !reflect.DeepEqual(got, want) {
			t.Errorf("expected original order %v, got %v", want, got)
		}
	})

	t.Run("move down then apply", func(t *testing.T) {
		m, _ := newTestModel(t)
		press(m, "t", "J", "enter")

		want := []string{"Weather", "News HD", "Sports HD"}
		if got := m.Document().Names(); !reflect.DeepEqual(got, want) {
			t.Errorf("expected %v, got %v", want, got)
		}
		if m.entries.Index() != 1 {
			t.Errorf("expected cursor to follow moved entry, got %d", m.entries.Index())
		}
	})

	t.Run("move up at top is a no-op", func(t *testing.T) {
		m, _ := newTestModel(t)
		press(m, "t", "K", "enter")

		if m.Document().Dirty {
			t.Error("expected clean document")
		}
	})

	t.Run("grab and drop", func(t *testing.T) {
		m, _ := newTestModel(t)
		press(m, "t", "m", "down", "down")

		if !m.drag.Active() || m.drag.Hover() != 2 {
			t.Fatalf("expected active drag hovering 2, got active=%v hover=%d", m.drag.Active(), m.drag.Hover())
		}

		press(m, "m", "enter")
		want := []string{"Weather", "Sports HD", "News HD"}
		if got := m.Document().Names(); !reflect.DeepEqual(got, want) {
			t.Errorf("expected %v, got %v", want, got)
		}
	})

	t.Run("esc cancels drag first", func(t *testing.T) {
		m, _ := newTestModel(t)
		press(m, "t", "m", "down", "esc")

		if m.view != SortView || m.drag.Active() {
			t.Errorf("expected sort view without drag, got view=%v active=%v", m.view, m.drag.Active())
		}
	})

	t.Run("requires a document", func(t *testing.T) {
		m := NewModel(editor.NewSession(editor.SessionOpts{Logger: log.New(io.Discard)}), Options{})
		press(m, "t")
		if m.view != EditView || !m.failed {
			t.Errorf("expected error in edit view, got view=%v failed=%v", m.view, m.failed)
		}
	})
}

func TestModel_Save(t *testing.T) {
	t.Run("save as", func(t *testing.T) {
		m, _ := newTestModel(t)
		dest := filepath.Join(t.TempDir(), "edited")

		press(m, "a", "x", "s")
		if m.view != PromptView || m.asking != promptSave {
			t.Fatalf("expected save prompt, got view=%v", m.view)
		}
		m.prompt.SetValue(dest)
		run(t, m, press(m, "enter"))

		if m.failed {
			t.Fatalf("unexpected error: %s", m.status)
		}
		if m.Document().Path != dest+".m3u" {
			t.Errorf("expected path %s.m3u, got %s", dest, m.Document().Path)
		}
		if m.Document().Dirty {
			t.Error("expected clean document after save")
		}

		content := th.MustReadFile(t, dest+".m3u")
		if strings.Contains(content, "Weather") || !strings.HasPrefix(content, "#EXTM3U\n") {
			t.Errorf("unexpected saved content: %s", content)
		}
	})

	t.Run("edits wait for a save in flight", func(t *testing.T) {
		m, path := newTestModel(t)

		pending := press(m, "s", "enter")
		if pending == nil || !m.busy {
			t.Fatal("expected a pending save")
		}

		press(m, "space", "x")
		if m.Document().Len() != 3 || len(m.Selection()) != 0 {
			t.Errorf("expected edits to be refused while saving, got %v selected=%v", m.Document().Names(), m.Selection())
		}
		if !strings.Contains(m.status, "Busy") {
			t.Errorf("expected busy status, got %q", m.status)
		}

		m.Update(pending())
		if m.busy || m.Document().Dirty {
			t.Fatalf("expected clean idle document after save, busy=%v dirty=%v", m.busy, m.Document().Dirty)
		}

		press(m, "space", "x")
		want := []string{"Weather", "Sports HD"}
		if got := m.Document().Names(); !reflect.DeepEqual(got, want) {
			t.Errorf("expected %v after save, got %v", want, got)
		}
		if !m.Document().Dirty {
			t.Error("expected edit after save to mark the document dirty")
		}
		if th.MustReadFile(t, path) != th.SamplePlaylist {
			t.Error("expected saved file to hold the document as it was when saving started")
		}
	})

	t.Run("prompt is prefilled", func(t *testing.T) {
		m, path := newTestModel(t)
		press(m, "s")
		if m.prompt.Value() != path {
			t.Errorf("expected %s, got %s", path, m.prompt.Value())
		}
	})

	t.Run("nothing open", func(t *testing.T) {
		m := NewModel(editor.NewSession(editor.SessionOpts{Logger: log.New(io.Discard)}), Options{})
		press(m, "s")
		if m.view != EditView || !m.failed {
			t.Errorf("expected error, got view=%v failed=%v", m.view, m.failed)
		}
	})
}

func TestModel_Play(t *testing.T) {
	t.Run("plays entry under cursor", func(t *testing.T) {
		m, _ := newTestModel(t)
		var played string
		m.play = func(loc string) error {
			played = loc
			return nil
		}

		run(t, m, press(m, "down", "p"))
		if played != "http://example.com/weather" {
			t.Errorf("unexpected location: %s", played)
		}
		if m.status != "Playing Weather" {
			t.Errorf("unexpected status: %q", m.status)
		}
	})

	t.Run("player failure", func(t *testing.T) {
		m, _ := newTestModel(t)
		m.play = func(string) error { return errors.New("no player") }

		run(t, m, press(m, "p"))
		if !m.failed || !strings.Contains(m.status, "no player") {
			t.Errorf("expected player error, got %q", m.status)
		}
	})
}

func TestModel_Quit(t *testing.T) {
	m, _ := newTestModel(t)
	cmd := press(m, "q")
	if cmd == nil {
		t.Fatal("expected quit command")
	}
	if _, ok := cmd().(tea.QuitMsg); !ok {
		t.Error("expected tea.QuitMsg")
	}
}

func TestEntryItems(t *testing.T) {
	m, _ := newTestModel(t)

	var drag editor.Drag
	drag.Start(0)
	drag.Motion(2, 3)

	items := entryItems(m.Document(), map[int]bool{1: true}, &drag)
	if len(items) != 3 {
		t.Fatalf("expected 3 items, got %d", len(items))
	}

	first := items[0].(entryItem)
	second := items[1].(entryItem)
	third := items[2].(entryItem)
	if !first.grabbed || !second.selected || !third.hover {
		t.Errorf("unexpected flags: %+v %+v %+v", first, second, third)
	}
	if first.FilterValue() != "News HD" {
		t.Errorf("unexpected filter value: %s", first.FilterValue())
	}
}
