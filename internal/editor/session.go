package editor

import (
	"errors"
	"fmt"

	"github.com/charmbracelet/log"
	"github.com/desertthunder/m3ux/internal/m3u"
	"github.com/desertthunder/m3ux/internal/shared"
)

// Store loads and saves playlists.
type Store interface {
	Load(path string) (*m3u.Playlist, error)
	Save(path string, p *m3u.Playlist) (string, error) // returns the path actually written
}

// Recorder receives open and save events, e.g. for a recent-files list.
//
// Recorder errors are logged and never fail the command.
type Recorder interface {
	RecordOpen(path string, p *m3u.Playlist) error
	RecordSave(source, dest string, loaded int, p *m3u.Playlist) error
}

// FileStore is the [Store] backed by the local filesystem.
type FileStore struct {
	Options   m3u.ParseOptions
	Extension string // appended on save when the destination has no extension
}

func (f FileStore) Load(path string) (*m3u.Playlist, error) {
	return m3u.Load(path, f.Options)
}

func (f FileStore) Save(path string, p *m3u.Playlist) (string, error) {
	return m3u.Save(path, p, f.Extension)
}

// Outcome tells a view what to show after a command.
type Outcome struct {
	Selection []int  // positions to select (AutoSelect)
	Cursor    int    // position to highlight; -1 when the list is empty
	Changed   bool   // entries or their order changed
	Message   string // status line text
}

// Session applies commands to documents.
type Session struct {
	store    Store
	recorder Recorder
	logger   *log.Logger
}

// SessionOpts contains the dependencies of a [Session].
type SessionOpts struct {
	Store    Store
	Recorder Recorder
	Logger   *log.Logger
}

// NewSession creates a Session. A nil Store defaults to a strict [FileStore];
// a nil Logger defaults to [shared.NewLogger].
func NewSession(opts SessionOpts) *Session {
	if opts.Store == nil {
		opts.Store = FileStore{}
	}
	if opts.Logger == nil {
		opts.Logger = shared.NewLogger(nil)
	}
	return &Session{store: opts.Store, recorder: opts.Recorder, logger: opts.Logger}
}

// SetLogger replaces the session logger.
func (s *Session) SetLogger(l *log.Logger) {
	if l != nil {
		s.logger = l
	}
}

// Update applies cmd to doc and returns the resulting document.
//
// On error the returned document is doc itself.
func (s *Session) Update(doc Document, cmd Command) (Document, Outcome, error) {
	s.logger.Debug("apply command", "kind", cmd.Kind, "path", doc.Path)

	next, out, err := s.apply(doc, cmd)
	if err != nil {
		s.logger.Warn("command failed", "kind", cmd.Kind, "error", err)
		return doc, Outcome{Cursor: -1, Message: err.Error()}, err
	}
	return next, out, nil
}

func (s *Session) apply(doc Document, cmd Command) (Document, Outcome, error) {
	switch cmd.Kind {
	case CmdOpen:
		return s.open(cmd.Path)
	case CmdSave:
		return s.save(doc, cmd.Path)
	}

	if !doc.IsOpen() {
		return doc, Outcome{}, fmt.Errorf("%w: %s", shared.ErrNoDocument, cmd.Kind)
	}

	switch cmd.Kind {
	case CmdRemove:
		return s.remove(doc, cmd.Indices)
	case CmdMoveUp:
		entries := MoveUp(doc.Entries(), cmd.Index)
		return moved(doc, entries, cmd.Index, cmd.Index-1)
	case CmdMoveDown:
		entries := MoveDown(doc.Entries(), cmd.Index)
		return moved(doc, entries, cmd.Index, cmd.Index+1)
	case CmdMoveTo:
		entries, err := MoveTo(doc.Entries(), cmd.From, cmd.To)
		if err != nil {
			return doc, Outcome{}, err
		}
		return moved(doc, entries, cmd.From, cmd.To)
	case CmdAutoSelect:
		selection := SelectNonMatching(doc.Entries(), cmd.Substring)
		return doc, Outcome{
			Selection: selection,
			Cursor:    firstOr(selection, -1),
			Message:   fmt.Sprintf("Selected %d entries without %q", len(selection), cmd.Substring),
		}, nil
	default:
		return doc, Outcome{}, fmt.Errorf("%w: %s", shared.ErrUnknownCommand, cmd.Kind)
	}
}

func (s *Session) open(path string) (Document, Outcome, error) {
	if path == "" {
		return Document{}, Outcome{}, fmt.Errorf("%w: no file chosen", shared.ErrMissingArgument)
	}

	playlist, err := s.store.Load(path)
	if err != nil {
		return Document{}, Outcome{}, err
	}

	if s.recorder != nil {
		if err := s.recorder.RecordOpen(path, playlist); err != nil {
			s.logger.Warn("failed to record open", "path", path, "error", err)
		}
	}

	s.logger.Info("opened playlist", "path", path, "entries", playlist.Len())
	doc := Document{Path: path, Playlist: playlist, Loaded: playlist.Len()}
	return doc, Outcome{
		Cursor:  cursorFor(0, doc.Len()),
		Message: fmt.Sprintf("Opened %s (%d entries)", path, doc.Len()),
	}, nil
}

func (s *Session) save(doc Document, path string) (Document, Outcome, error) {
	if !doc.IsOpen() {
		return doc, Outcome{}, fmt.Errorf("%w: nothing to save", shared.ErrNoDocument)
	}
	if path == "" {
		path = doc.Path
	}

	written, err := s.store.Save(path, doc.Playlist)
	if err != nil {
		return doc, Outcome{}, err
	}

	if s.recorder != nil {
		if err := s.recorder.RecordSave(doc.Path, written, doc.Loaded, doc.Playlist); err != nil {
			s.logger.Warn("failed to record save", "path", written, "error", err)
		}
	}

	s.logger.Info("saved playlist", "path", written, "entries", doc.Len())
	next := doc
	next.Path = written
	next.Dirty = false
	next.Loaded = doc.Len()
	return next, Outcome{
		Cursor:  cursorFor(0, next.Len()),
		Message: fmt.Sprintf("Saved %s (%d entries)", written, next.Len()),
	}, nil
}

func (s *Session) remove(doc Document, indices []int) (Document, Outcome, error) {
	if len(indices) == 0 {
		return doc, Outcome{Cursor: cursorFor(0, doc.Len()), Message: "Nothing selected"}, nil
	}

	entries, err := RemoveAt(doc.Entries(), indices)
	if err != nil {
		return doc, Outcome{}, err
	}

	next := doc.withEntries(entries)
	removed := doc.Len() - next.Len()
	lowest := indices[0]
	for _, i := range indices {
		lowest = min(lowest, i)
	}

	return next, Outcome{
		Cursor:  cursorFor(lowest, next.Len()),
		Changed: removed > 0,
		Message: fmt.Sprintf("Removed %d entries", removed),
	}, nil
}

// moved builds the outcome of a reorder: the cursor follows the entry when it moved.
func moved(doc Document, entries []m3u.Entry, from, to int) (Document, Outcome, error) {
	if from == to || to < 0 || to >= len(entries) || from < 0 || from >= len(entries) {
		return doc, Outcome{Cursor: cursorFor(from, doc.Len())}, nil
	}
	next := doc.withEntries(entries)
	return next, Outcome{
		Cursor:  to,
		Changed: true,
		Message: fmt.Sprintf("Moved %q to position %d", DisplayName(entries[to]), to+1),
	}, nil
}

// cursorFor clamps i into [0, n-1], or -1 for an empty list.
func cursorFor(i, n int) int {
	if n == 0 {
		return -1
	}
	return max(0, min(i, n-1))
}

func firstOr(xs []int, fallback int) int {
	if len(xs) == 0 {
		return fallback
	}
	return xs[0]
}

// IsUserError reports whether err is a recoverable editing error that a view
// should show as a message rather than treat as fatal.
func IsUserError(err error) bool {
	for _, target := range []error{
		shared.ErrMalformedFile,
		shared.ErrIOFailure,
		shared.ErrIndexOutOfRange,
		shared.ErrNoDocument,
		shared.ErrBusy,
		shared.ErrMissingArgument,
		shared.ErrInvalidArgument,
		shared.ErrInvalidFlag,
	} {
		if errors.Is(err, target) {
			return true
		}
	}
	return false
}
