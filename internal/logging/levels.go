package logging

import (
	"log/slog"
	"strings"
)

// LevelCritical sits above slog.LevelError for failures that end a run.
const LevelCritical = slog.Level(12)

// Numeric levels accepted on the command line and in the config file.
const (
	NumericDebug    = 10
	NumericInfo     = 20
	NumericWarning  = 30
	NumericError    = 40
	NumericCritical = 50
)

// NumericLevels lists the values the --loglevel flag accepts.
var NumericLevels = []int{NumericDebug, NumericInfo, NumericWarning, NumericError, NumericCritical}

// IsNumericLevel reports whether value is one of NumericLevels.
func IsNumericLevel(value int) bool {
	for _, lvl := range NumericLevels {
		if lvl == value {
			return true
		}
	}
	return false
}

// FromNumeric maps a numeric level onto slog. Values between the named
// levels round up to the next named level.
func FromNumeric(value int) slog.Level {
	switch {
	case value <= NumericDebug:
		return slog.LevelDebug
	case value <= NumericInfo:
		return slog.LevelInfo
	case value <= NumericWarning:
		return slog.LevelWarn
	case value <= NumericError:
		return slog.LevelError
	default:
		return LevelCritical
	}
}

// NumericName returns the level label for a numeric level, e.g. "INFO" for 20.
func NumericName(value int) string {
	return levelLabel(FromNumeric(value))
}

// ParseLevel accepts either a level name or a numeric level string.
func ParseLevel(level string) slog.Level {
	switch strings.ToLower(strings.TrimSpace(level)) {
	case "debug", "10":
		return slog.LevelDebug
	case "warn", "warning", "30":
		return slog.LevelWarn
	case "error", "40":
		return slog.LevelError
	case "critical", "fatal", "50":
		return LevelCritical
	default:
		return slog.LevelInfo
	}
}

func levelLabel(level slog.Level) string {
	switch {
	case level >= LevelCritical:
		return "CRITICAL"
	case level >= slog.LevelError:
		return "ERROR"
	case level >= slog.LevelWarn:
		return "WARNING"
	case level >= slog.LevelInfo:
		return "INFO"
	default:
		return "DEBUG"
	}
}
