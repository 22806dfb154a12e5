package logging

import (
	"fmt"
	"io"
	"strings"

	"github.com/rs/zerolog"
)

// Format selects the output encoding of a logger built by New.
type Format string

const (
	FormatConsole Format = "console" // zerolog console writer
	FormatJSON    Format = "json"    // zerolog JSON lines
	FormatText    Format = "text"    // DefaultLogger, colored on a terminal
)

// ParseFormat converts a format name. An empty name means console.
func ParseFormat(name string) (Format, error) {
	switch f := Format(strings.ToLower(strings.TrimSpace(name))); f {
	case "":
		return FormatConsole, nil
	case FormatConsole, FormatJSON, FormatText:
		return f, nil
	default:
		return "", fmt.Errorf("unknown log format %q", name)
	}
}

// New builds a logger in the given format writing everything to w.
func New(format Format, w io.Writer) (Logger, error) {
	switch format {
	case "", FormatConsole:
		return NewConsoleLogger(w), nil
	case FormatJSON:
		return NewZerologLogger(zerolog.New(w).With().Timestamp().Logger()), nil
	case FormatText:
		return NewDefaultLoggerTo(w, w, isTerminal(w)), nil
	default:
		return nil, fmt.Errorf("unknown log format %q", format)
	}
}
