package m3u

import (
	"fmt"
	"strings"

	"github.com/desertthunder/m3ux/internal/shared"
)

const bom = "\ufeff"

// ParseOptions tunes [ParseWith].
type ParseOptions struct {
	// Lenient skips a trailing #EXTINF line that has no location line
	// instead of failing with [shared.ErrMalformedFile].
	Lenient bool
}

// Parse reads playlist text with the default (strict) options.
func Parse(text string) (*Playlist, error) {
	return ParseWith(text, ParseOptions{})
}

// ParseWith reads playlist text. Line 0 is the header candidate; entries are
// read from line 1 onward two lines at a time whether or not line 0 was a header.
func ParseWith(text string, opts ParseOptions) (*Playlist, error) {
	lines := splitLines(text)
	playlist := &Playlist{Entries: []Entry{}}
	if len(lines) == 0 {
		return playlist, nil
	}

	if strings.TrimSpace(strings.TrimPrefix(lines[0], bom)) == HeaderTag {
		playlist.Header = HeaderTag
	}

	for i := 1; i < len(lines); i += 2 {
		info := strings.TrimSpace(lines[i])
		if !strings.HasPrefix(info, InfoTag) {
			continue
		}

		if i+1 >= len(lines) {
			if opts.Lenient {
				break
			}
			return nil, fmt.Errorf("%w: line %d: %s has no location line", shared.ErrMalformedFile, i+1, InfoTag)
		}

		playlist.Entries = append(playlist.Entries, Entry{
			Info:     info,
			Location: strings.TrimSpace(lines[i+1]),
		})
	}

	return playlist, nil
}

// splitLines splits on "\n" without producing an empty element for a final newline.
func splitLines(text string) []string {
	if text == "" {
		return nil
	}
	text = strings.TrimSuffix(text, "\n")
	return strings.Split(text, "\n")
}
