package shared

import "fmt"

var (
	ErrNotImplemented = fmt.Errorf("not implemented")

	// Configuration errors
	ErrMissingConfig = fmt.Errorf("configuration not found")
	ErrInvalidConfig = fmt.Errorf("invalid configuration")

	// Playlist errors
	ErrMalformedFile   = fmt.Errorf("file could not be read as M3U")
	ErrIOFailure       = fmt.Errorf("file operation failed")
	ErrIndexOutOfRange = fmt.Errorf("index out of range")
	ErrNoDocument      = fmt.Errorf("no playlist open")
	ErrUnknownCommand  = fmt.Errorf("unknown command")
	ErrBusy            = fmt.Errorf("another edit is in progress")

	// History errors
	ErrRecordNotFound = fmt.Errorf("record not found")

	// Input validation errors
	ErrMissingArgument = fmt.Errorf("missing required argument")
	ErrInvalidArgument = fmt.Errorf("invalid argument")
	ErrInvalidFlag     = fmt.Errorf("invalid flag value")
)
