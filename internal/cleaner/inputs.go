package cleaner

import (
	"bufio"
	"bytes"
	"errors"
	"fmt"
	"io/fs"
	"log/slog"
	"os"
	"path/filepath"
	"strings"
	"unicode/utf8"

	"cattywampus/internal/logging"
	"cattywampus/internal/media"
)

// ReadPathList reads an input list: one path per line, blank lines and lines
// starting with "#" ignored. Relative entries resolve against the working
// directory. Entries that do not exist are logged and skipped.
func ReadPathList(path string, logger *slog.Logger) ([]string, error) {
	if logger == nil {
		logger = logging.NewNop()
	}
	data, err := os.ReadFile(path)
	switch {
	case errors.Is(err, fs.ErrNotExist):
		return nil, fmt.Errorf("input file not found: %s", path)
	case errors.Is(err, fs.ErrPermission):
		return nil, fmt.Errorf("permission denied reading input file: %s", path)
	case err != nil:
		return nil, fmt.Errorf("read input file %s: %w", path, err)
	}
	if !utf8.Valid(data) {
		return nil, fmt.Errorf("input file contains invalid UTF-8 encoding: %s", path)
	}

	var paths []string
	scanner := bufio.NewScanner(bytes.NewReader(data))
	scanner.Buffer(make([]byte, 0, 64*1024), 1024*1024)
	line := 0
	for scanner.Scan() {
		line++
		entry := strings.TrimSpace(scanner.Text())
		if entry == "" || strings.HasPrefix(entry, "#") {
			continue
		}
		resolved, err := filepath.Abs(entry)
		if err != nil {
			logger.Warn("input file entry could not be resolved",
				logging.Int("line", line),
				logging.String(logging.FieldPath, entry),
				logging.Error(err),
			)
			continue
		}
		if _, err := os.Stat(resolved); err != nil {
			logger.Warn("path from input file does not exist",
				logging.Int("line", line),
				logging.String(logging.FieldPath, entry),
			)
			continue
		}
		paths = append(paths, resolved)
	}
	if err := scanner.Err(); err != nil {
		return nil, fmt.Errorf("read input file %s: %w", path, err)
	}
	return paths, nil
}

// Collection is the de-duplicated, filtered list of inputs for a run.
type Collection struct {
	Paths      []string
	FromCLI    int
	FromList   int
	Duplicates int
	// Filtered counts files dropped by the only-MKV / only-MP4 filters.
	Filtered int
}

// CollectPaths merges command-line paths and input-list paths. Paths are
// compared by absolute form and the first occurrence wins. When a type
// filter is active, files of the excluded kind and files of no known kind
// are dropped; directories are always kept.
func CollectPaths(cli, list []string, onlyMKV, onlyMP4 bool) Collection {
	c := Collection{FromCLI: len(cli), FromList: len(list)}
	filtering := onlyMKV || onlyMP4

	var candidates []string
	for _, raw := range append(append([]string(nil), cli...), list...) {
		if filtering && !keep(raw, onlyMKV, onlyMP4) {
			c.Filtered++
			continue
		}
		candidates = append(candidates, raw)
	}

	seen := make(map[string]struct{}, len(candidates))
	for _, raw := range candidates {
		key := raw
		if abs, err := filepath.Abs(raw); err == nil {
			key = abs
		}
		if _, dup := seen[key]; dup {
			c.Duplicates++
			continue
		}
		seen[key] = struct{}{}
		c.Paths = append(c.Paths, raw)
	}
	return c
}

func keep(path string, onlyMKV, onlyMP4 bool) bool {
	if info, err := os.Stat(path); err == nil && info.IsDir() {
		return true
	}
	return media.KindOf(path).Allowed(onlyMKV, onlyMP4)
}

// Log writes the collection counts at debug level.
func (c Collection) Log(logger *slog.Logger, inputFile string) {
	if logger == nil {
		return
	}
	if c.FromCLI > 0 {
		logger.Debug("added paths from command line", logging.Int("count", c.FromCLI))
	}
	if inputFile != "" {
		logger.Debug("added paths from input file",
			logging.Int("count", c.FromList),
			logging.String(logging.FieldPath, inputFile),
		)
	}
	if c.Filtered > 0 {
		logger.Debug("filtered out files by type", logging.Int("count", c.Filtered))
	}
	if c.Duplicates > 0 {
		logger.Debug("removed duplicate paths", logging.Int("count", c.Duplicates))
	}
	logger.Debug("processing unique paths", logging.Int("count", len(c.Paths)))
}
