package editor

import (
	"errors"
	"slices"
	"testing"

	"github.com/desertthunder/m3ux/internal/m3u"
	"github.com/desertthunder/m3ux/internal/shared"
)

// entriesNamed builds entries whose display names are the given names.
func entriesNamed(names ...string) []m3u.Entry {
	entries := make([]m3u.Entry, len(names))
	for i, n := range names {
		entries[i] = m3u.NewEntry("-1", n, "http://example.com/"+n)
	}
	return entries
}

func namesOf(entries []m3u.Entry) []string {
	return DisplayNames(entries)
}

func TestRemoveAt(t *testing.T) {
	t.Run("removes in descending order", func(t *testing.T) {
		entries := entriesNamed("A", "B", "C", "D", "E")

		got, err := RemoveAt(entries, []int{1, 3})
		if err != nil {
			t.Fatalf("RemoveAt failed: %v", err)
		}

		descending, _ := RemoveAt(entries, []int{3})
		descending, _ = RemoveAt(descending, []int{1})

		if !slices.Equal(namesOf(got), namesOf(descending)) {
			t.Errorf("RemoveAt({1,3}) = %v, want %v", namesOf(got), namesOf(descending))
		}
		if !slices.Equal(namesOf(got), []string{"A", "C", "E"}) {
			t.Errorf("RemoveAt({1,3}) = %v, want [A C E]", namesOf(got))
		}

		naive := slices.Clone(entries)
		for _, i := range []int{1, 3} {
			naive = slices.Delete(naive, i, i+1)
		}
		if slices.Equal(namesOf(got), namesOf(naive)) {
			t.Error("result should differ from a naive ascending removal")
		}
	})

	t.Run("order of indices does not matter", func(t *testing.T) {
		entries := entriesNamed("A", "B", "C", "D", "E")
		a, _ := RemoveAt(entries, []int{3, 1})
		b, _ := RemoveAt(entries, []int{1, 3, 3})
		if !slices.Equal(namesOf(a), namesOf(b)) {
			t.Errorf("expected equal results, got %v and %v", namesOf(a), namesOf(b))
		}
	})

	t.Run("empty selection is a no-op", func(t *testing.T) {
		entries := entriesNamed("A", "B")
		got, err := RemoveAt(entries, nil)
		if err != nil {
			t.Fatalf("unexpected error: %v", err)
		}
		if !slices.Equal(namesOf(got), []string{"A", "B"}) {
			t.Errorf("expected unchanged entries, got %v", namesOf(got))
		}
	})

	t.Run("out of range removes nothing", func(t *testing.T) {
		entries := entriesNamed("A", "B", "C")
		for _, indices := range [][]int{{0, 3}, {-1}} {
			got, err := RemoveAt(entries, indices)
			if !errors.Is(err, shared.ErrIndexOutOfRange) {
				t.Errorf("RemoveAt(%v): expected ErrIndexOutOfRange, got %v", indices, err)
			}
			if len(got) != 3 {
				t.Errorf("RemoveAt(%v): expected 3 entries, got %d", indices, len(got))
			}
		}
	})

	t.Run("does not modify input", func(t *testing.T) {
		entries := entriesNamed("A", "B", "C")
		RemoveAt(entries, []int{0})
		if !slices.Equal(namesOf(entries), []string{"A", "B", "C"}) {
			t.Errorf("input modified: %v", namesOf(entries))
		}
	})
}

func TestMoves(t *testing.T) {
	tc := []struct {
		name string
		move func([]m3u.Entry) []m3u.Entry
		want []string
	}{
		{name: "MoveUp middle", move: func(e []m3u.Entry) []m3u.Entry { return MoveUp(e, 2) }, want: []string{"A", "C", "B", "D"}},
		{name: "MoveUp first is a no-op", move: func(e []m3u.Entry) []m3u.Entry { return MoveUp(e, 0) }, want: []string{"A", "B", "C", "D"}},
		{name: "MoveUp out of range", move: func(e []m3u.Entry) []m3u.Entry { return MoveUp(e, 9) }, want: []string{"A", "B", "C", "D"}},
		{name: "MoveDown middle", move: func(e []m3u.Entry) []m3u.Entry { return MoveDown(e, 1) }, want: []string{"A", "C", "B", "D"}},
		{name: "MoveDown last is a no-op", move: func(e []m3u.Entry) []m3u.Entry { return MoveDown(e, 3) }, want: []string{"A", "B", "C", "D"}},
		{name: "MoveDown negative", move: func(e []m3u.Entry) []m3u.Entry { return MoveDown(e, -1) }, want: []string{"A", "B", "C", "D"}},
	}

	for _, tt := range tc {
		t.Run(tt.name, func(t *testing.T) {
			entries := entriesNamed("A", "B", "C", "D")
			got := tt.move(entries)
			if !slices.Equal(namesOf(got), tt.want) {
				t.Errorf("got %v, want %v", namesOf(got), tt.want)
			}
			if !slices.Equal(namesOf(entries), []string{"A", "B", "C", "D"}) {
				t.Errorf("input modified: %v", namesOf(entries))
			}
		})
	}
}

func TestMoveTo(t *testing.T) {
	tc := []struct {
		name    string
		from    int
		to      int
		want    []string
		wantErr bool
	}{
		{name: "take and place forward", from: 0, to: 2, want: []string{"B", "C", "A", "D"}},
		{name: "take and place backward", from: 3, to: 0, want: []string{"D", "A", "B", "C"}},
		{name: "to last position", from: 0, to: 3, want: []string{"B", "C", "D", "A"}},
		{name: "same position", from: 1, to: 1, want: []string{"A", "B", "C", "D"}},
		{name: "target past end", from: 0, to: 4, want: []string{"A", "B", "C", "D"}, wantErr: true},
		{name: "source past end", from: 4, to: 0, want: []string{"A", "B", "C", "D"}, wantErr: true},
		{name: "negative target", from: 1, to: -1, want: []string{"A", "B", "C", "D"}, wantErr: true},
	}

	for _, tt := range tc {
		t.Run(tt.name, func(t *testing.T) {
			got, err := MoveTo(entriesNamed("A", "B", "C", "D"), tt.from, tt.to)
			if tt.wantErr != errors.Is(err, shared.ErrIndexOutOfRange) {
				t.Errorf("unexpected error state: %v", err)
			}
			if !slices.Equal(namesOf(got), tt.want) {
				t.Errorf("MoveTo(%d, %d) = %v, want %v", tt.from, tt.to, namesOf(got), tt.want)
			}
		})
	}
}

func TestDisplayName(t *testing.T) {
	tc := []struct {
		info string
		want string
	}{
		{info: "#EXTINF:-1,Channel 1", want: "Channel 1"},
		{info: "#EXTINF:-1,  Padded  ", want: "Padded"},
		{info: "#EXTINF:-1", want: "#EXTINF:-1"},
	}

	for _, tt := range tc {
		if got := DisplayName(m3u.Entry{Info: tt.info}); got != tt.want {
			t.Errorf("DisplayName(%q) = %q, want %q", tt.info, got, tt.want)
		}
	}
}

func TestSelection(t *testing.T) {
	entries := entriesNamed("Channel 1", "Channel 2 HD", "News")

	t.Run("SelectNonMatching", func(t *testing.T) {
		got := SelectNonMatching(entries, "HD")
		if !slices.Equal(got, []int{0, 2}) {
			t.Errorf("SelectNonMatching() = %v, want [0 2]", got)
		}
	})

	t.Run("case sensitive", func(t *testing.T) {
		got := SelectNonMatching(entriesNamed("hd news", "HD news"), "HD")
		if !slices.Equal(got, []int{0}) {
			t.Errorf("SelectNonMatching() = %v, want [0]", got)
		}
	})

	t.Run("SelectMatching", func(t *testing.T) {
		got := SelectMatching(entries, "HD")
		if !slices.Equal(got, []int{1}) {
			t.Errorf("SelectMatching() = %v, want [1]", got)
		}
	})

	t.Run("empty entries", func(t *testing.T) {
		if got := SelectNonMatching(nil, "HD"); len(got) != 0 {
			t.Errorf("expected empty selection, got %v", got)
		}
	})

	t.Run("does not modify entries", func(t *testing.T) {
		SelectNonMatching(entries, "HD")
		if !slices.Equal(namesOf(entries), []string{"Channel 1", "Channel 2 HD", "News"}) {
			t.Errorf("entries modified: %v", namesOf(entries))
		}
	})
}
