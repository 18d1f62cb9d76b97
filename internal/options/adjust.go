package options

import "cattywampus/internal/logging"

// adjustment rewrites a resolved Record. Adjustments run in slice order after
// every option has been resolved independently.
type adjustment func(Record) Record

var adjustments = []adjustment{
	stdoutLogLevel,
}

func adjust(rec Record, steps ...adjustment) Record {
	for _, step := range steps {
		rec = step(rec)
	}
	return rec
}

// stdoutLogLevel forces DEBUG when logs are mirrored to the console. An
// explicit --loglevel still wins.
func stdoutLogLevel(rec Record) Record {
	if !rec.Stdout.Value || rec.LogLevel.Source == SourceCLI {
		return rec
	}
	rec.LogLevel = Sourced[int]{Value: logging.NumericDebug, Source: SourceStdoutOption}
	return rec
}
