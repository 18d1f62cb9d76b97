package mkvpropedit

import (
	"context"
	"errors"
	"reflect"
	"testing"

	"cattywampus/internal/subtitles"
)

func TestArgsBase(t *testing.T) {
	got := Args(Edit{Path: "/media/a.mkv"})
	want := []string{
		"-q", "/media/a.mkv",
		"-d", "title",
		"-e", "track:v1", "-d", "name",
		"-e", "track:v1", "-s", "language=und",
	}
	if !reflect.DeepEqual(got, want) {
		t.Fatalf("Args() = %q, want %q", got, want)
	}
}

func TestArgsAudioAndSubtitles(t *testing.T) {
	got := Args(Edit{
		Path:           "/media/a.mkv",
		ClearAudioName: true,
		Subtitles: []subtitles.Directive{
			{TrackIndex: 1, Action: subtitles.ActionEnable},
			{TrackIndex: 1, Action: subtitles.ActionSetDefault},
			{TrackIndex: 2, Action: subtitles.ActionClearDefault},
		},
	})
	tail := got[12:]
	want := []string{
		"-e", "track:a1", "-d", "name",
		"-e", "track:s1", "-s", "flag-enabled=1",
		"-e", "track:s1", "-s", "flag-default=1",
		"-e", "track:s2", "-s", "flag-default=0",
	}
	if !reflect.DeepEqual(tail, want) {
		t.Fatalf("tail = %q, want %q", tail, want)
	}
}

func TestApply(t *testing.T) {
	var called []string
	run := func(_ context.Context, name string, args ...string) ([]byte, error) {
		called = append([]string{name}, args...)
		return nil, nil
	}
	if err := Apply(context.Background(), run, "mkvpropedit", []string{"-q", "x.mkv"}); err != nil {
		t.Fatalf("Apply: %v", err)
	}
	if !reflect.DeepEqual(called, []string{"mkvpropedit", "-q", "x.mkv"}) {
		t.Fatalf("unexpected invocation %q", called)
	}

	boom := errors.New("boom")
	failing := func(context.Context, string, ...string) ([]byte, error) { return nil, boom }
	if err := Apply(context.Background(), failing, "mkvpropedit", nil); !errors.Is(err, boom) {
		t.Fatalf("expected wrapped error, got %v", err)
	}
	if err := Apply(context.Background(), run, " ", nil); err == nil {
		t.Fatal("expected error for missing binary")
	}
}
