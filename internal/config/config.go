package config

import (
	_ "embed"
	"errors"
	"fmt"
	"io/fs"
	"os"
	"path/filepath"
	"strings"

	"github.com/pelletier/go-toml/v2"
)

//go:embed sample_config.toml
var sampleConfig string

// ErrConfigNotFound reports a custom configuration path that does not exist.
var ErrConfigNotFound = errors.New("config file not found")

// ParseError reports a configuration document that could not be decoded.
type ParseError struct {
	Path string
	Err  error
}

func (e *ParseError) Error() string {
	return fmt.Sprintf("invalid TOML in %s: %v", e.Path, e.Err)
}

func (e *ParseError) Unwrap() error { return e.Err }

// File holds the keys read from a configuration file. A nil field means the
// key was absent from the document.
type File struct {
	LogLevel                  *int    `toml:"logLevel"`
	LogFile                   *string `toml:"logFile"`
	MKVMergePath              *string `toml:"mkvmergePath"`
	MKVPropEditPath           *string `toml:"mkvpropeditPath"`
	AtomicParsleyPath         *string `toml:"atomicParsleyPath"`
	SetDefaultSubTrack        *bool   `toml:"setDefaultSubTrack"`
	ForceDefaultFirstSubTrack *bool   `toml:"forceDefaultFirstSubTrack"`
	ClearAudio                *bool   `toml:"clearAudio"`
	UseSystemLocale           *bool   `toml:"useSystemLocale"`
	Language                  *string `toml:"language"`
	OnlyMKV                   *bool   `toml:"onlyMkv"`
	OnlyMP4                   *bool   `toml:"onlyMp4"`
	Stdout                    *bool   `toml:"stdout"`
	StdoutOnly                *bool   `toml:"stdoutOnly"`
	History                   *bool   `toml:"history"`
}

// DefaultConfigPath returns the platform configuration file location.
func DefaultConfigPath() (string, error) {
	dir, err := DefaultDir()
	if err != nil {
		return "", err
	}
	return filepath.Join(dir, configFileName), nil
}

// LogPathFor returns the default log file for a configuration file: the
// log lives beside the config.
func LogPathFor(configPath string) string {
	return filepath.Join(filepath.Dir(configPath), logFileName)
}

// HistoryPathFor returns the run history database beside the config file.
func HistoryPathFor(configPath string) string {
	return filepath.Join(filepath.Dir(configPath), historyFileName)
}

// Load reads the configuration file. With an empty path the platform default
// is used and created from the sample when missing. A custom path must exist.
// The returned path is absolute.
func Load(path string) (*File, string, error) {
	resolvedPath, err := resolveConfigPath(path)
	if err != nil {
		return nil, "", err
	}

	data, err := os.ReadFile(resolvedPath)
	if err != nil {
		return nil, resolvedPath, fmt.Errorf("read config: %w", err)
	}

	var file File
	if err := toml.Unmarshal(data, &file); err != nil {
		return nil, resolvedPath, &ParseError{Path: resolvedPath, Err: err}
	}

	if err := file.normalize(); err != nil {
		return nil, resolvedPath, err
	}
	if err := file.Validate(); err != nil {
		return nil, resolvedPath, err
	}
	return &file, resolvedPath, nil
}

func resolveConfigPath(path string) (string, error) {
	if strings.TrimSpace(path) != "" {
		expanded, err := expandPath(path)
		if err != nil {
			return "", err
		}
		info, err := os.Stat(expanded)
		if err != nil {
			if errors.Is(err, fs.ErrNotExist) {
				return "", fmt.Errorf("%w: %s", ErrConfigNotFound, expanded)
			}
			return "", fmt.Errorf("stat config: %w", err)
		}
		if info.IsDir() {
			return "", fmt.Errorf("config path %s is a directory", expanded)
		}
		return expanded, nil
	}

	defaultPath, err := DefaultConfigPath()
	if err != nil {
		return "", err
	}
	if _, err := os.Stat(defaultPath); err != nil {
		if !errors.Is(err, fs.ErrNotExist) {
			return "", fmt.Errorf("stat config: %w", err)
		}
		if err := CreateSample(defaultPath); err != nil {
			return "", err
		}
	}
	return defaultPath, nil
}

func (f *File) normalize() error {
	for name, field := range map[string]**string{
		"logFile":           &f.LogFile,
		"mkvmergePath":      &f.MKVMergePath,
		"mkvpropeditPath":   &f.MKVPropEditPath,
		"atomicParsleyPath": &f.AtomicParsleyPath,
	} {
		if *field == nil {
			continue
		}
		trimmed := strings.TrimSpace(**field)
		if trimmed == "" {
			*field = &trimmed
			continue
		}
		expanded, err := expandPath(trimmed)
		if err != nil {
			return fmt.Errorf("%s: %w", name, err)
		}
		*field = &expanded
	}
	if f.Language != nil {
		trimmed := strings.TrimSpace(*f.Language)
		f.Language = &trimmed
	}
	return nil
}

// Validate rejects values no option can represent.
func (f *File) Validate() error {
	if f.LogLevel != nil && *f.LogLevel < 0 {
		return fmt.Errorf("logLevel must not be negative (got %d)", *f.LogLevel)
	}
	return nil
}

func expandPath(pathValue string) (string, error) {
	if pathValue == "" {
		return pathValue, nil
	}
	if strings.HasPrefix(pathValue, "~") {
		home, err := os.UserHomeDir()
		if err != nil {
			return "", fmt.Errorf("resolve home directory: %w", err)
		}
		if pathValue == "~" {
			pathValue = home
		} else if len(pathValue) > 1 && (pathValue[1] == '/' || pathValue[1] == '\\') {
			pathValue = filepath.Join(home, pathValue[2:])
		}
	}
	cleaned := filepath.Clean(pathValue)
	absolute, err := filepath.Abs(cleaned)
	if err != nil {
		return "", fmt.Errorf("resolve absolute path for %q: %w", cleaned, err)
	}
	return absolute, nil
}

// ExpandPath exposes the repository path expansion rules for other packages.
func ExpandPath(pathValue string) (string, error) {
	return expandPath(pathValue)
}

// CreateSample writes the sample configuration file to path.
func CreateSample(path string) error {
	if dir := filepath.Dir(path); dir != "" {
		if err := os.MkdirAll(dir, 0o755); err != nil {
			return fmt.Errorf("create config directory: %w", err)
		}
	}
	if err := os.WriteFile(path, []byte(sampleConfig), 0o644); err != nil {
		return fmt.Errorf("write sample config: %w", err)
	}
	return nil
}
