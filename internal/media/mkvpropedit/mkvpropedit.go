package mkvpropedit

import (
	"context"
	"errors"
	"fmt"
	"strings"

	"cattywampus/internal/media"
	"cattywampus/internal/subtitles"
)

// Edit describes the changes applied to one file.
type Edit struct {
	Path string
	// ClearAudioName deletes the name of the first audio track. The caller
	// only sets it when the file has audio.
	ClearAudioName bool
	// Subtitles are appended in order after the fixed edits.
	Subtitles []subtitles.Directive
}

// Args returns the mkvpropedit arguments for e. The segment title and the
// first video track's name are always deleted and its language set to "und".
func Args(e Edit) []string {
	args := []string{
		"-q", e.Path,
		"-d", "title",
		"-e", "track:v1", "-d", "name",
		"-e", "track:v1", "-s", "language=und",
	}
	if e.ClearAudioName {
		args = append(args, "-e", "track:a1", "-d", "name")
	}
	return append(args, subtitles.Args(e.Subtitles)...)
}

// Apply runs mkvpropedit with args.
func Apply(ctx context.Context, run media.Runner, binary string, args []string) error {
	if strings.TrimSpace(binary) == "" {
		return errors.New("mkvpropedit: binary not configured")
	}
	if run == nil {
		run = media.ExecRunner
	}
	if _, err := run(ctx, binary, args...); err != nil {
		return fmt.Errorf("mkvpropedit: %w", err)
	}
	return nil
}
