package history

import (
	"time"

	"cattywampus/internal/cleaner"
)

// Run is one stored invocation.
type Run struct {
	ID               string
	StartedAt        time.Time
	FinishedAt       time.Time
	DryRun           bool
	FoldersProcessed int
	FoldersErrored   int
	FilesProcessed   int
	FilesErrored     int
	FilesSkipped     int
}

// Duration is the wall-clock length of the run.
func (r Run) Duration() time.Duration {
	return r.FinishedAt.Sub(r.StartedAt)
}

// File is one file outcome within a run.
type File struct {
	RunID    string
	Path     string
	Kind     string
	Status   string
	Duration time.Duration
	Error    string
}

// FromReport converts a cleaner report into storable rows.
func FromReport(id string, started, finished time.Time, dryRun bool, report cleaner.Report) (Run, []File) {
	s := report.Summary
	run := Run{
		ID:               id,
		StartedAt:        started.UTC(),
		FinishedAt:       finished.UTC(),
		DryRun:           dryRun,
		FoldersProcessed: s.FoldersProcessed,
		FoldersErrored:   s.FoldersErrored,
		FilesProcessed:   s.FilesProcessed,
		FilesErrored:     s.FilesErrored,
		FilesSkipped:     s.FilesSkipped,
	}
	files := make([]File, 0, len(report.Results))
	for _, r := range report.Results {
		f := File{
			RunID:    id,
			Path:     r.Path,
			Kind:     string(r.Kind),
			Status:   string(r.Status),
			Duration: r.Duration,
		}
		if r.Err != nil {
			f.Error = r.Err.Error()
		}
		files = append(files, f)
	}
	return run, files
}
