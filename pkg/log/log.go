// Package log configures [log/slog] handlers for the gantry CLI.
package log

import (
	"errors"
	"fmt"
	"io"
	"log/slog"
	"strings"

	"github.com/mattn/go-isatty"
)

const (
	// JSONFormat renders each record as a single JSON object.
	JSONFormat = "json"
	// TextFormat renders records as human-readable key=value lines.
	TextFormat = "text"
	// LogfmtFormat is an alias for [TextFormat].
	LogfmtFormat = "logfmt"
	// AutoFormat selects [TextFormat] when writing to a terminal and
	// [JSONFormat] otherwise.
	AutoFormat = "auto"
)

var (
	ErrUnknownLevel  = errors.New("unknown log level")
	ErrUnknownFormat = errors.New("unknown log format")
)

// CreateHandler creates a [slog.Handler] writing to w, configured by level and
// format strings.
func CreateHandler(w io.Writer, logLevel, logFormat string) (slog.Handler, error) {
	level, err := ParseLevel(logLevel)
	if err != nil {
		return nil, err
	}

	opts := &slog.HandlerOptions{Level: level}

	switch strings.ToLower(logFormat) {
	case JSONFormat:
		return slog.NewJSONHandler(w, opts), nil
	case TextFormat, LogfmtFormat, "":
		return slog.NewTextHandler(w, opts), nil
	case AutoFormat:
		if isTerminal(w) {
			return slog.NewTextHandler(w, opts), nil
		}

		return slog.NewJSONHandler(w, opts), nil
	default:
		return nil, fmt.Errorf("%w: %q", ErrUnknownFormat, logFormat)
	}
}

// ParseLevel parses a [slog.Level] from a string, accepting logrus-style
// aliases for compatibility with older configs.
func ParseLevel(level string) (slog.Level, error) {
	switch strings.ToLower(level) {
	case "panic":
		return slog.LevelError, nil
	case "fatal":
		return slog.LevelError, nil
	case "error":
		return slog.LevelError, nil
	case "warn", "warning":
		return slog.LevelWarn, nil
	case "info", "":
		return slog.LevelInfo, nil
	case "debug":
		return slog.LevelDebug, nil
	case "trace":
		return slog.LevelDebug, nil
	default:
		return slog.LevelInfo, fmt.Errorf("%w: %q", ErrUnknownLevel, level)
	}
}

func isTerminal(w io.Writer) bool {
	f, ok := w.(interface{ Fd() uintptr })
	if !ok {
		return false
	}

	return isatty.IsTerminal(f.Fd()) || isatty.IsCygwinTerminal(f.Fd())
}
