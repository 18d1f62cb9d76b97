package logging

import (
	"errors"
	"io"
	"log/slog"
	"os"
	"path/filepath"
	"strings"
)

// Options describes logger construction parameters.
type Options struct {
	Level slog.Level
	// FilePath is the log file; ignored when ConsoleOnly is set.
	FilePath string
	// Console mirrors output to ConsoleWriter in addition to the file.
	Console bool
	// ConsoleOnly sends output to ConsoleWriter and skips the file.
	ConsoleOnly bool
	// ConsoleWriter defaults to os.Stdout.
	ConsoleWriter io.Writer
	// FallbackWriter receives output when the log file cannot be opened.
	// Defaults to os.Stderr.
	FallbackWriter io.Writer
	RunID          string
}

// New constructs the run logger. It never fails: when the log file cannot be
// opened, output falls back to FallbackWriter and the failure is logged there.
// The returned closer releases the log file.
func New(opts Options) (*slog.Logger, io.Closer) {
	level := new(slog.LevelVar)
	level.Set(opts.Level)

	consoleWriter := opts.ConsoleWriter
	if consoleWriter == nil {
		consoleWriter = os.Stdout
	}
	fallbackWriter := opts.FallbackWriter
	if fallbackWriter == nil {
		fallbackWriter = os.Stderr
	}

	var (
		handlers []slog.Handler
		closer   io.Closer = nopCloser{}
		openErr  error
	)
	if !opts.ConsoleOnly {
		file, err := openLogFile(opts.FilePath)
		if err != nil {
			openErr = err
			handlers = append(handlers, newLineHandler(fallbackWriter, level, layoutConsole))
		} else {
			closer = file
			handlers = append(handlers, newLineHandler(file, level, layoutFile))
		}
	}
	if opts.Console || opts.ConsoleOnly {
		handlers = append(handlers, newLineHandler(consoleWriter, level, layoutConsole))
	}

	logger := slog.New(newRunIDHandler(newFanoutHandler(handlers...), opts.RunID))
	if openErr != nil {
		logger.Error("failed to initialize file logging",
			String(FieldPath, opts.FilePath),
			Error(openErr),
		)
		logger.Error("falling back to stderr logging")
	}
	return logger, closer
}

// NewBootstrap returns a console logger for the window before options are
// resolved. Only warnings and above are shown.
func NewBootstrap(w io.Writer) *slog.Logger {
	if w == nil {
		w = os.Stderr
	}
	return slog.New(newLineHandler(w, slog.LevelWarn, layoutConsole))
}

func openLogFile(path string) (*os.File, error) {
	path = strings.TrimSpace(path)
	if path == "" {
		return nil, errors.New("log file path is empty")
	}
	if dir := filepath.Dir(path); dir != "." && dir != "" {
		if err := os.MkdirAll(dir, 0o755); err != nil {
			return nil, err
		}
	}
	return os.OpenFile(path, os.O_CREATE|os.O_WRONLY|os.O_APPEND, 0o644)
}

type nopCloser struct{}

func (nopCloser) Close() error { return nil }
