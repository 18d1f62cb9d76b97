package cleaner

import (
	"fmt"
	"log/slog"
	"time"

	"cattywampus/internal/logging"
	"cattywampus/internal/media"
)

// Status is the outcome of one file.
type Status string

const (
	StatusProcessed Status = "processed"
	StatusErrored   Status = "errored"
	// StatusSkipped marks a file whose tool is unavailable.
	StatusSkipped Status = "skipped"
	// StatusNoMetadata marks an MP4 whose atoms could not be read. It counts
	// towards the per-kind totals but not towards processed files.
	StatusNoMetadata Status = "no_metadata"
)

// Result describes one file.
type Result struct {
	Path     string
	Kind     media.Kind
	Status   Status
	DryRun   bool
	Duration time.Duration
	Err      error
}

// KindStats aggregates the files of one container kind.
type KindStats struct {
	Files    int
	Duration time.Duration
}

// Summary is the reduction of every Result and folder outcome in a run.
type Summary struct {
	FoldersProcessed int
	FoldersErrored   int
	FilesProcessed   int
	FilesErrored     int
	FilesSkipped     int
	ErroredFiles     []string
	ByKind           map[media.Kind]KindStats
}

// Add folds one file result into the summary.
func (s *Summary) Add(r Result) {
	switch r.Status {
	case StatusProcessed:
		s.FilesProcessed++
	case StatusErrored:
		s.FilesErrored++
		s.ErroredFiles = append(s.ErroredFiles, r.Path)
	case StatusSkipped:
		s.FilesSkipped++
		return
	}
	if s.ByKind == nil {
		s.ByKind = make(map[media.Kind]KindStats)
	}
	stats := s.ByKind[r.Kind]
	stats.Files++
	stats.Duration += r.Duration
	s.ByKind[r.Kind] = stats
}

// AddFolder records the outcome of one folder walk.
func (s *Summary) AddFolder(ok bool) {
	if ok {
		s.FoldersProcessed++
	} else {
		s.FoldersErrored++
	}
}

// Merge folds another summary into s.
func (s *Summary) Merge(other Summary) {
	s.FoldersProcessed += other.FoldersProcessed
	s.FoldersErrored += other.FoldersErrored
	s.FilesProcessed += other.FilesProcessed
	s.FilesErrored += other.FilesErrored
	s.FilesSkipped += other.FilesSkipped
	s.ErroredFiles = append(s.ErroredFiles, other.ErroredFiles...)
	for kind, stats := range other.ByKind {
		if s.ByKind == nil {
			s.ByKind = make(map[media.Kind]KindStats)
		}
		current := s.ByKind[kind]
		current.Files += stats.Files
		current.Duration += stats.Duration
		s.ByKind[kind] = current
	}
}

// Summarize reduces a list of results.
func Summarize(results []Result) Summary {
	var s Summary
	for _, r := range results {
		s.Add(r)
	}
	return s
}

// Log writes the end-of-run totals.
func (s Summary) Log(logger *slog.Logger) {
	if logger == nil {
		return
	}
	logger.Info("total folders processed", logging.Int("count", s.FoldersProcessed))
	if s.FoldersErrored > 0 {
		logger.Info("total folders errored", logging.Int("count", s.FoldersErrored))
	}
	logger.Info("total files processed", logging.Int("count", s.FilesProcessed))
	if s.FilesErrored > 0 {
		logger.Info("total files errored", logging.Int("count", s.FilesErrored))
		for _, path := range s.ErroredFiles {
			logger.Info("file with errors", logging.String(logging.FieldPath, path))
		}
	}
	for _, kind := range []media.Kind{media.KindMKV, media.KindMP4} {
		stats, ok := s.ByKind[kind]
		if !ok || stats.Files == 0 {
			continue
		}
		logger.Info(kind.Label()+" files processed",
			logging.Int("count", stats.Files),
			logging.String("total_time", Seconds(stats.Duration)),
		)
	}
}

// Seconds renders d with millisecond precision, e.g. "1.250s".
func Seconds(d time.Duration) string {
	return fmt.Sprintf("%.3fs", d.Seconds())
}
