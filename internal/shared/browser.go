package shared

import (
	"fmt"
	"net/url"
	"os/exec"
	"runtime"
	"strings"
)

var getRuntime = func() string { return runtime.GOOS }

// playableSchemes are the URL schemes [OpenLocation] hands to the system.
var playableSchemes = map[string]bool{
	"http":  true,
	"https": true,
	"rtmp":  true,
	"rtmps": true,
	"rtsp":  true,
	"rtp":   true,
	"udp":   true,
	"srt":   true,
	"mms":   true,
	"mmsh":  true,
	"file":  true,
}

// checkLocation accepts a URL with a playable scheme or a plain file path.
func checkLocation(target string) error {
	if target == "" {
		return fmt.Errorf("%w: empty location", ErrInvalidArgument)
	}
	if strings.HasPrefix(target, "-") || strings.ContainsAny(target, "\x00\r\n") {
		return fmt.Errorf("%w: unsafe location %q", ErrInvalidArgument, target)
	}
	if isDrivePath(target) {
		return nil
	}

	u, err := url.Parse(target)
	if err != nil {
		return fmt.Errorf("%w: location %q: %w", ErrInvalidArgument, target, err)
	}
	if u.Scheme == "" {
		return nil
	}
	if !playableSchemes[strings.ToLower(u.Scheme)] {
		return fmt.Errorf("%w: unsupported location scheme %q", ErrInvalidArgument, u.Scheme)
	}
	return nil
}

// isDrivePath reports a Windows path such as C:\media\a.ts.
func isDrivePath(target string) bool {
	if len(target) < 3 || target[1] != ':' || (target[2] != '\\' && target[2] != '/') {
		return false
	}
	c := target[0] | 0x20
	return c >= 'a' && c <= 'z'
}

// openCommand builds the platform command that hands target to the default handler.
//
// Windows goes through rundll32 rather than cmd.exe so the target is never parsed by a shell.
func openCommand(target string) (*exec.Cmd, error) {
	rt := getRuntime()
	switch rt {
	case "darwin":
		return exec.Command("open", target), nil
	case "linux":
		return exec.Command("xdg-open", target), nil
	case "windows":
		return exec.Command("rundll32", "url.dll,FileProtocolHandler", target), nil
	default:
		return nil, fmt.Errorf("unsupported platform: %s", rt)
	}
}

// OpenLocation opens a stream URL or file path with the system's default handler
// (usually the configured media player).
//
// Supports macOS, Linux, and Windows platforms. Locations with other URL schemes are rejected.
func OpenLocation(target string) error {
	if err := checkLocation(target); err != nil {
		return err
	}

	cmd, err := openCommand(target)
	if err != nil {
		return err
	}

	if err := cmd.Start(); err != nil {
		return fmt.Errorf("failed to open location: %w", err)
	}

	return nil
}
