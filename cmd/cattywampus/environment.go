package main

import (
	"io"
	"os"
	"time"

	"cattywampus/internal/deps"
	"cattywampus/internal/media"
	"cattywampus/internal/options"
)

// environment carries the process collaborators commands depend on so tests
// can replace them.
type environment struct {
	stdout       io.Writer
	stderr       io.Writer
	runner       media.Runner
	detectLocale options.LocaleDetector
	resolver     deps.Resolver
	now          func() time.Time
}

func defaultEnvironment() *environment {
	return &environment{
		stdout:       os.Stdout,
		stderr:       os.Stderr,
		runner:       media.ExecRunner,
		detectLocale: options.SystemLocale,
		now:          time.Now,
	}
}
