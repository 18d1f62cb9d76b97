package mkvmerge

import (
	"context"
	"errors"
	"reflect"
	"testing"

	"cattywampus/internal/media"
)

const sampleIdentification = `{
  "container": {
    "properties": {"title": "Home Movie 2019", "duration": 5400000000000},
    "recognized": true,
    "supported": true,
    "type": "Matroska"
  },
  "tracks": [
    {"id": 0, "type": "video", "codec": "AVC/H.264/MPEG-4p10",
     "properties": {"number": 1, "track_name": "Encoded by someone", "language": "und"}},
    {"id": 1, "type": "audio", "codec": "AC-3",
     "properties": {"number": 2, "track_name": "Surround 5.1", "language": "eng", "language_ietf": "en"}},
    {"id": 2, "type": "subtitles", "codec": "SubRip/SRT",
     "properties": {"number": 3, "language": "fre"}},
    {"id": 3, "type": "subtitles", "codec": "SubRip/SRT",
     "properties": {"number": 4, "language": "eng", "language_ietf": "en-US", "track_name": "English SDH"}},
    {"id": 4, "type": "subtitles", "codec": "SubRip/SRT", "properties": {"number": 5}}
  ]
}`

func TestParse(t *testing.T) {
	ident, err := Parse([]byte(sampleIdentification))
	if err != nil {
		t.Fatalf("Parse: %v", err)
	}
	if ident.Container.Properties.Title != "Home Movie 2019" {
		t.Fatalf("unexpected title %q", ident.Container.Properties.Title)
	}
	if len(ident.Tracks) != 5 {
		t.Fatalf("expected 5 tracks, got %d", len(ident.Tracks))
	}
	if !ident.HasAudio() {
		t.Fatal("expected audio track")
	}

	subs := ident.SubtitleTracks()
	var langs []string
	for _, track := range subs {
		langs = append(langs, track.EffectiveLanguage())
	}
	if want := []string{"fre", "en-US", ""}; !reflect.DeepEqual(langs, want) {
		t.Fatalf("effective languages = %q, want %q", langs, want)
	}
	if subs[1].Properties.TrackName != "English SDH" {
		t.Fatalf("unexpected track name %q", subs[1].Properties.TrackName)
	}
}

func TestParseInvalid(t *testing.T) {
	if _, err := Parse([]byte("not json")); err == nil {
		t.Fatal("expected parse error")
	}
}

func TestHasAudioWithoutAudio(t *testing.T) {
	ident := Identification{Tracks: []Track{{Type: TypeVideo}, {Type: TypeSubtitles}}}
	if ident.HasAudio() {
		t.Fatal("expected no audio")
	}
}

func TestIdentifyUsesRunner(t *testing.T) {
	var gotName string
	var gotArgs []string
	run := func(_ context.Context, name string, args ...string) ([]byte, error) {
		gotName, gotArgs = name, args
		return []byte(sampleIdentification), nil
	}

	ident, err := Identify(context.Background(), run, "/usr/bin/mkvmerge", "/media/a.mkv")
	if err != nil {
		t.Fatalf("Identify: %v", err)
	}
	if gotName != "/usr/bin/mkvmerge" || !reflect.DeepEqual(gotArgs, []string{"-J", "/media/a.mkv"}) {
		t.Fatalf("unexpected invocation %s %v", gotName, gotArgs)
	}
	if len(ident.SubtitleTracks()) != 3 {
		t.Fatalf("expected 3 subtitle tracks")
	}
}

func TestIdentifyPropagatesFailure(t *testing.T) {
	failure := &media.CommandError{Name: "mkvmerge", ExitCode: 2, Err: errors.New("exit status 2")}
	run := func(context.Context, string, ...string) ([]byte, error) { return nil, failure }

	_, err := Identify(context.Background(), run, "mkvmerge", "/media/a.mkv")
	var cmdErr *media.CommandError
	if !errors.As(err, &cmdErr) || cmdErr.ExitCode != 2 {
		t.Fatalf("expected wrapped CommandError, got %v", err)
	}
}
