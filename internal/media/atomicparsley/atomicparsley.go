package atomicparsley

import (
	"bufio"
	"context"
	"errors"
	"fmt"
	"strings"

	"cattywampus/internal/media"
)

const (
	titleAtom       = `Atom "©nam" contains:`
	descriptionAtom = `Atom "desc" contains:`
)

// Metadata holds the atoms metadata cleaning cares about. A nil field means
// the atom was not reported.
type Metadata struct {
	Title       *string
	Description *string
}

// TitleText returns the title or "".
func (m Metadata) TitleText() string { return deref(m.Title) }

// DescriptionText returns the description or "".
func (m Metadata) DescriptionText() string { return deref(m.Description) }

func deref(s *string) string {
	if s == nil {
		return ""
	}
	return *s
}

// Inspect runs `AtomicParsley path -t` and parses the atom listing.
func Inspect(ctx context.Context, run media.Runner, binary, path string) (Metadata, error) {
	if strings.TrimSpace(path) == "" {
		return Metadata{}, errors.New("atomicparsley inspect: empty path")
	}
	if run == nil {
		run = media.ExecRunner
	}
	output, err := run(ctx, binary, InspectArgs(path)...)
	if err != nil {
		return Metadata{}, fmt.Errorf("atomicparsley inspect: %w", err)
	}
	return Parse(string(output)), nil
}

// InspectArgs returns the arguments that list a file's atoms.
func InspectArgs(path string) []string {
	return []string{path, "-t"}
}

// Parse extracts the title and description from `-t` output. Later
// occurrences of an atom replace earlier ones.
func Parse(output string) Metadata {
	var meta Metadata
	scanner := bufio.NewScanner(strings.NewReader(output))
	scanner.Buffer(make([]byte, 0, 64*1024), 4*1024*1024)
	for scanner.Scan() {
		line := scanner.Text()
		if value, ok := atomValue(line, titleAtom); ok {
			meta.Title = &value
		} else if value, ok := atomValue(line, descriptionAtom); ok {
			meta.Description = &value
		}
	}
	return meta
}

func atomValue(line, marker string) (string, bool) {
	_, after, found := strings.Cut(line, marker)
	if !found {
		return "", false
	}
	return strings.TrimSpace(after), true
}

// CleanArgs returns the arguments that blank the title and description in
// place.
func CleanArgs(path string) []string {
	return []string{path, "--title", "", "--description", "", "--preventOptimizing", "--overWrite"}
}

// Clean runs AtomicParsley with args.
func Clean(ctx context.Context, run media.Runner, binary string, args []string) error {
	if strings.TrimSpace(binary) == "" {
		return errors.New("atomicparsley: binary not configured")
	}
	if run == nil {
		run = media.ExecRunner
	}
	if _, err := run(ctx, binary, args...); err != nil {
		return fmt.Errorf("atomicparsley: %w", err)
	}
	return nil
}
