package testsupport

import (
	"os"
	"path/filepath"
	"runtime"
	"testing"
)

// WriteConfig writes body as a config.toml inside a fresh temp directory and
// returns its path.
func WriteConfig(t testing.TB, body string) string {
	t.Helper()
	path := filepath.Join(t.TempDir(), "config.toml")
	if err := os.WriteFile(path, []byte(body), 0o644); err != nil {
		t.Fatalf("write config: %v", err)
	}
	return path
}

// IsolateConfigHome points the platform config directory at a temp dir so
// tests never touch the user's real config. It returns that directory.
func IsolateConfigHome(t testing.TB) string {
	t.Helper()
	base := t.TempDir()
	switch runtime.GOOS {
	case "windows":
		t.Setenv("LOCALAPPDATA", base)
	case "darwin":
		t.Setenv("HOME", base)
		base = filepath.Join(base, "Library", "Application Support")
	default:
		t.Setenv("XDG_CONFIG_HOME", base)
	}
	return base
}

// StubBinaries writes shell-script stand-ins for the named tools into a temp
// bin directory and prepends it to PATH. Each script body runs under /bin/sh;
// an empty body exits 0. It returns the bin directory.
func StubBinaries(t testing.TB, scripts map[string]string) string {
	t.Helper()
	if runtime.GOOS == "windows" {
		t.Skip("shell stubs require a POSIX shell")
	}
	binDir := filepath.Join(t.TempDir(), "bin")
	if err := os.MkdirAll(binDir, 0o755); err != nil {
		t.Fatalf("mkdir bin dir: %v", err)
	}
	for name, body := range scripts {
		if body == "" {
			body = "exit 0"
		}
		script := []byte("#!/bin/sh\n" + body + "\n")
		if err := os.WriteFile(filepath.Join(binDir, name), script, 0o755); err != nil {
			t.Fatalf("write stub %s: %v", name, err)
		}
	}
	t.Setenv("PATH", binDir+string(os.PathListSeparator)+os.Getenv("PATH"))
	return binDir
}
