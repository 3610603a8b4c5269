package m3u

import (
	"fmt"
	"os"
	"path/filepath"

	"github.com/desertthunder/m3ux/internal/shared"
)

// DefaultExtension is appended by [Save] when the destination has none.
const DefaultExtension = ".m3u"

// Load reads and parses the playlist at path.
func Load(path string, opts ParseOptions) (*Playlist, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("%w: %w", shared.ErrIOFailure, err)
	}

	playlist, err := ParseWith(string(data), opts)
	if err != nil {
		return nil, fmt.Errorf("%s: %w", path, err)
	}
	return playlist, nil
}

// Save writes p to path, appending ext when path has no extension, and returns the path written.
//
// The file is written to a temporary sibling first and renamed into place.
func Save(path string, p *Playlist, ext string) (string, error) {
	if path == "" {
		return "", fmt.Errorf("%w: empty destination path", shared.ErrInvalidArgument)
	}
	if ext == "" {
		ext = DefaultExtension
	}
	path = shared.EnsureExtension(path, ext)

	tmp, err := os.CreateTemp(filepath.Dir(path), ".m3ux-*")
	if err != nil {
		return "", fmt.Errorf("%w: %w", shared.ErrIOFailure, err)
	}
	tmpName := tmp.Name()
	defer os.Remove(tmpName)

	if _, err := p.WriteTo(tmp); err != nil {
		tmp.Close()
		return "", fmt.Errorf("%w: %w", shared.ErrIOFailure, err)
	}
	if err := tmp.Close(); err != nil {
		return "", fmt.Errorf("%w: %w", shared.ErrIOFailure, err)
	}
	mode := os.FileMode(0644)
	if info, err := os.Stat(path); err == nil {
		mode = info.Mode().Perm()
	}
	if err := os.Chmod(tmpName, mode); err != nil {
		return "", fmt.Errorf("%w: %w", shared.ErrIOFailure, err)
	}
	if err := os.Rename(tmpName, path); err != nil {
		return "", fmt.Errorf("%w: %w", shared.ErrIOFailure, err)
	}

	return path, nil
}
