package history_test

import (
	"context"
	"database/sql"
	"errors"
	"path/filepath"
	"testing"
	"time"

	_ "modernc.org/sqlite"

	"cattywampus/internal/cleaner"
	"cattywampus/internal/history"
	"cattywampus/internal/media"
	"cattywampus/internal/testsupport"
)

func TestRecordAndListRuns(t *testing.T) {
	store := testsupport.MustOpenHistory(t)
	ctx := context.Background()
	base := time.Date(2026, 3, 1, 12, 0, 0, 0, time.UTC)

	report := cleaner.Report{Results: []cleaner.Result{
		{Path: "/media/a.mkv", Kind: media.KindMKV, Status: cleaner.StatusProcessed, Duration: 1500 * time.Millisecond},
		{Path: "/media/b.mp4", Kind: media.KindMP4, Status: cleaner.StatusErrored, Err: errors.New("atomicparsley: exit status 1")},
	}}
	report.Summary = cleaner.Summarize(report.Results)
	report.Summary.AddFolder(true)

	older, olderFiles := history.FromReport("run-old", base, base.Add(time.Second), true, cleaner.Report{})
	newer, newerFiles := history.FromReport("run-new", base.Add(time.Hour), base.Add(time.Hour+3*time.Second), false, report)
	for _, rec := range []struct {
		run   history.Run
		files []history.File
	}{{older, olderFiles}, {newer, newerFiles}} {
		if err := store.RecordRun(ctx, rec.run, rec.files); err != nil {
			t.Fatalf("RecordRun(%s): %v", rec.run.ID, err)
		}
	}

	runs, err := store.ListRuns(ctx, 0)
	if err != nil {
		t.Fatalf("ListRuns: %v", err)
	}
	if len(runs) != 2 || runs[0].ID != "run-new" || runs[1].ID != "run-old" {
		t.Fatalf("unexpected run order %+v", runs)
	}
	got := runs[0]
	if got.FilesProcessed != 1 || got.FilesErrored != 1 || got.FoldersProcessed != 1 || got.DryRun {
		t.Fatalf("unexpected run %+v", got)
	}
	if got.Duration() != 3*time.Second {
		t.Fatalf("Duration = %s", got.Duration())
	}
	if !runs[1].DryRun {
		t.Fatal("dry-run flag lost")
	}

	limited, err := store.ListRuns(ctx, 1)
	if err != nil || len(limited) != 1 {
		t.Fatalf("ListRuns(1) = %v, %v", limited, err)
	}

	files, err := store.Files(ctx, "run-new")
	if err != nil {
		t.Fatalf("Files: %v", err)
	}
	if len(files) != 2 {
		t.Fatalf("expected 2 files, got %d", len(files))
	}
	if files[0].Path != "/media/a.mkv" || files[0].Duration != 1500*time.Millisecond || files[0].Error != "" {
		t.Fatalf("unexpected first file %+v", files[0])
	}
	if files[1].Kind != "mp4" || files[1].Status != "errored" || files[1].Error == "" {
		t.Fatalf("unexpected second file %+v", files[1])
	}
}

func TestRecordRunRejectsEmptyID(t *testing.T) {
	store := testsupport.MustOpenHistory(t)
	if err := store.RecordRun(context.Background(), history.Run{}, nil); err == nil {
		t.Fatal("expected error for empty run id")
	}
}

func TestRecordRunDuplicateIDRollsBack(t *testing.T) {
	store := testsupport.MustOpenHistory(t)
	ctx := context.Background()
	run := history.Run{ID: "dup", StartedAt: time.Now(), FinishedAt: time.Now()}
	if err := store.RecordRun(ctx, run, nil); err != nil {
		t.Fatalf("RecordRun: %v", err)
	}
	if err := store.RecordRun(ctx, run, []history.File{{Path: "/x.mkv", Kind: "mkv", Status: "processed"}}); err == nil {
		t.Fatal("expected duplicate id to fail")
	}
	files, err := store.Files(ctx, "dup")
	if err != nil {
		t.Fatalf("Files: %v", err)
	}
	if len(files) != 0 {
		t.Fatalf("failed insert must not leave file rows, got %+v", files)
	}
}

func TestOpenRejectsSchemaMismatch(t *testing.T) {
	path := filepath.Join(t.TempDir(), "history.db")
	store, err := history.Open(path)
	if err != nil {
		t.Fatalf("Open: %v", err)
	}
	if err := store.Close(); err != nil {
		t.Fatalf("Close: %v", err)
	}

	db, err := sql.Open("sqlite", path)
	if err != nil {
		t.Fatalf("sql.Open: %v", err)
	}
	if _, err := db.Exec("UPDATE schema_version SET version = 99"); err != nil {
		t.Fatalf("bump version: %v", err)
	}
	_ = db.Close()

	if _, err := history.Open(path); !errors.Is(err, history.ErrSchemaMismatch) {
		t.Fatalf("expected ErrSchemaMismatch, got %v", err)
	}
}

func TestOpenEmptyPath(t *testing.T) {
	if _, err := history.Open("  "); err == nil {
		t.Fatal("expected error for empty path")
	}
}
