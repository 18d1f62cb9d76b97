// Package logging assembles the slog loggers used by cattywampus.
//
// A run logs to a plain-text file (timestamp, level, message) and optionally
// to the console, where the level label is colourised when the destination is
// a terminal. Both outputs share one level threshold, expressed either as a
// slog.Level or as the numeric levels the configuration file uses
// (10 debug, 20 info, 30 warning, 40 error, 50 critical). Every record carries
// the run identifier so interleaved runs can be told apart in a shared log.
//
// The package also provides attribute helpers and a no-op logger for tests
// and wiring code that cannot fail.
package logging
