package editor

import (
	"fmt"
	"slices"

	"github.com/desertthunder/m3ux/internal/m3u"
	"github.com/desertthunder/m3ux/internal/shared"
)

// DisplayName returns the name shown for an entry in list views.
func DisplayName(e m3u.Entry) string {
	return e.Name()
}

// DisplayNames maps [DisplayName] over entries.
func DisplayNames(entries []m3u.Entry) []string {
	names := make([]string, len(entries))
	for i, e := range entries {
		names[i] = DisplayName(e)
	}
	return names
}

// RemoveAt returns entries without the given positions.
//
// Positions are removed from highest to lowest so earlier removals never shift
// a position that is still pending. Duplicates are ignored. If any position is
// out of range nothing is removed.
func RemoveAt(entries []m3u.Entry, indices []int) ([]m3u.Entry, error) {
	out := slices.Clone(entries)
	if len(indices) == 0 {
		return out, nil
	}

	for _, i := range indices {
		if i < 0 || i >= len(entries) {
			return out, fmt.Errorf("%w: remove %d from %d entries", shared.ErrIndexOutOfRange, i, len(entries))
		}
	}

	desc := slices.Clone(indices)
	slices.Sort(desc)
	desc = slices.Compact(desc)
	slices.Reverse(desc)

	for _, i := range desc {
		out = slices.Delete(out, i, i+1)
	}
	return out, nil
}

// MoveUp swaps the entry at index with its predecessor. The first entry and
// out-of-range positions are left alone.
func MoveUp(entries []m3u.Entry, index int) []m3u.Entry {
	out := slices.Clone(entries)
	if index <= 0 || index >= len(out) {
		return out
	}
	out[index-1], out[index] = out[index], out[index-1]
	return out
}

// MoveDown swaps the entry at index with its successor. The last entry and
// out-of-range positions are left alone.
func MoveDown(entries []m3u.Entry, index int) []m3u.Entry {
	out := slices.Clone(entries)
	if index < 0 || index >= len(out)-1 {
		return out
	}
	out[index], out[index+1] = out[index+1], out[index]
	return out
}

// MoveTo takes the entry at from and places it at to, where to is a position
// in the sequence after the entry has been taken out (valid range 0..len-1).
//
// Given [A B C D], MoveTo(0, 2) yields [B C A D]. Out-of-range positions are
// rejected with [shared.ErrIndexOutOfRange] and the sequence is returned unchanged.
func MoveTo(entries []m3u.Entry, from, to int) ([]m3u.Entry, error) {
	out := slices.Clone(entries)
	n := len(out)
	if from < 0 || from >= n || to < 0 || to >= n {
		return out, fmt.Errorf("%w: move %d to %d in %d entries", shared.ErrIndexOutOfRange, from, to, n)
	}
	if from == to {
		return out, nil
	}

	e := out[from]
	out = slices.Delete(out, from, from+1)
	return slices.Insert(out, to, e), nil
}
