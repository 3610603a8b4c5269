package editor

import (
	"strings"

	"github.com/desertthunder/m3ux/internal/m3u"
)

// SelectNonMatching returns, in ascending order, the positions whose display
// name does not contain substr. The match is case-sensitive.
func SelectNonMatching(entries []m3u.Entry, substr string) []int {
	return selectWhere(entries, func(name string) bool { return !strings.Contains(name, substr) })
}

// SelectMatching returns the positions whose display name contains substr.
func SelectMatching(entries []m3u.Entry, substr string) []int {
	return selectWhere(entries, func(name string) bool { return strings.Contains(name, substr) })
}

func selectWhere(entries []m3u.Entry, keep func(string) bool) []int {
	selected := []int{}
	for i, e := range entries {
		if keep(DisplayName(e)) {
			selected = append(selected, i)
		}
	}
	return selected
}
