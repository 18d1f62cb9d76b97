package main

import (
	"bytes"
	"context"
	"errors"
	"os"
	"path/filepath"
	"strings"
	"sync"
	"testing"
	"time"

	"github.com/spf13/pflag"

	"cattywampus/internal/config"
	"cattywampus/internal/deps"
	"cattywampus/internal/options"
	"cattywampus/internal/testsupport"
)

const identifyJSON = `{"container":{"properties":{"title":"Old Title"}},"tracks":[
 {"type":"video","properties":{"track_name":"x264"}},
 {"type":"audio","properties":{"track_name":"Stereo","language":"eng"}},
 {"type":"subtitles","properties":{"language":"fre"}},
 {"type":"subtitles","properties":{"language":"deu"}}]}`

type recorder struct {
	mu    sync.Mutex
	calls []string
}

func (r *recorder) run(_ context.Context, name string, args ...string) ([]byte, error) {
	base := filepath.Base(name)
	r.mu.Lock()
	r.calls = append(r.calls, base+" "+strings.Join(args, " "))
	r.mu.Unlock()
	if len(args) == 1 && args[0] == "--version" {
		return []byte(base + " v1.0.0\nmore text\n"), nil
	}
	switch {
	case base == "mkvmerge":
		return []byte(identifyJSON), nil
	case base == "AtomicParsley" && len(args) == 2 && args[1] == "-t":
		return []byte(`Atom "©nam" contains: Old`), nil
	}
	return nil, nil
}

func (r *recorder) find(prefix string) []string {
	r.mu.Lock()
	defer r.mu.Unlock()
	var out []string
	for _, c := range r.calls {
		if strings.HasPrefix(c, prefix) {
			out = append(out, c)
		}
	}
	return out
}

type harness struct {
	env    *environment
	stdout *bytes.Buffer
	stderr *bytes.Buffer
	runner *recorder
}

func newHarness(t *testing.T, available ...string) *harness {
	t.Helper()
	testsupport.IsolateConfigHome(t)
	h := &harness{stdout: &bytes.Buffer{}, stderr: &bytes.Buffer{}, runner: &recorder{}}
	found := map[string]bool{}
	for _, name := range available {
		found[name] = true
	}
	h.env = &environment{
		stdout:       h.stdout,
		stderr:       h.stderr,
		runner:       h.runner.run,
		detectLocale: func() (string, bool) { return "de", true },
		resolver: deps.Resolver{
			LookPath: func(name string) (string, error) {
				if found[name] {
					return "/stub/bin/" + name, nil
				}
				return "", errors.New("not found")
			},
			Locations: []string{},
		},
		now: time.Now,
	}
	return h
}

func (h *harness) execute(args ...string) error {
	h.stdout.Reset()
	h.stderr.Reset()
	cmd := newRootCommand(h.env)
	cmd.SetArgs(args)
	return cmd.ExecuteContext(context.Background())
}

func allTools() []string {
	return []string{deps.MKVMerge, deps.MKVPropEdit, deps.AtomicParsley}
}

func TestFlagValuesCarryOnlyChangedFlags(t *testing.T) {
	flags := &cliFlags{}
	fs := pflag.NewFlagSet("test", pflag.ContinueOnError)
	flags.register(fs)
	if err := fs.Parse([]string{"-L", " fr ", "--only-mkv", "-s=false", "-g", "30"}); err != nil {
		t.Fatalf("Parse: %v", err)
	}

	cli, err := flags.values(fs, []string{"a.mkv"})
	if err != nil {
		t.Fatalf("values: %v", err)
	}
	if cli.Language == nil || *cli.Language != "fr" {
		t.Fatalf("Language = %v", cli.Language)
	}
	if cli.OnlyMKV == nil || !*cli.OnlyMKV {
		t.Fatal("OnlyMKV not carried")
	}
	if cli.SetDefaultSubTrack == nil || *cli.SetDefaultSubTrack {
		t.Fatal("explicit false must be carried")
	}
	if cli.LogLevel == nil || *cli.LogLevel != 30 {
		t.Fatalf("LogLevel = %v", cli.LogLevel)
	}
	if cli.DryRun != nil || cli.OnlyMP4 != nil || cli.InputFile != nil || cli.History != nil {
		t.Fatalf("unset flags must stay nil: %+v", cli)
	}
	if len(cli.Paths) != 1 || cli.Paths[0] != "a.mkv" {
		t.Fatalf("Paths = %v", cli.Paths)
	}
}

func TestFlagValuesRejectUnknownLogLevel(t *testing.T) {
	flags := &cliFlags{}
	fs := pflag.NewFlagSet("test", pflag.ContinueOnError)
	flags.register(fs)
	if err := fs.Parse([]string{"-g", "25"}); err != nil {
		t.Fatalf("Parse: %v", err)
	}
	if _, err := flags.values(fs, nil); err == nil || !strings.Contains(err.Error(), "invalid log level 25") {
		t.Fatalf("expected log level error, got %v", err)
	}
}

func TestRunCleansFiles(t *testing.T) {
	h := newHarness(t, allTools()...)
	dir := t.TempDir()
	mkv := testsupport.WriteFile(t, filepath.Join(dir, "movie.mkv"), 2048)
	mp4 := testsupport.WriteFile(t, filepath.Join(dir, "clip.mp4"), 2048)

	if err := h.execute("-S", "-s", mkv, mp4); err != nil {
		t.Fatalf("execute: %v", err)
	}
	out := h.stdout.String()
	for _, want := range []string{
		"INFO: ******************** BEGINNING RUN ********************",
		"DEBUG: option name=language value=\"German (de/deu)\" source=\"detected system locale\"",
		"DEBUG: option name=logLevel value=\"10 (DEBUG)\" source=\"stdout option\"",
		"INFO: tool version tool=mkvmerge version=\"mkvmerge v1.0.0\"",
		"INFO: processing MKV file",
		"INFO: total files processed count=2",
		"INFO: ******************** ENDING RUN ***********************",
	} {
		if !strings.Contains(out, want) {
			t.Errorf("output missing %q", want)
		}
	}
	if t.Failed() {
		t.Logf("output:\n%s", out)
	}

	edits := h.runner.find("mkvpropedit -q")
	if len(edits) != 1 {
		t.Fatalf("expected one mkvpropedit edit, got %v", edits)
	}
	if !strings.Contains(edits[0], "-e track:s1 -s flag-default=0 -e track:s2 -s flag-enabled=1 -e track:s2 -s flag-default=1") {
		t.Fatalf("German subtitle track should be default: %s", edits[0])
	}
	if len(h.runner.find("AtomicParsley "+mp4+" --title")) != 1 {
		t.Fatal("expected MP4 clean call")
	}
}

func TestRunDryRunLeavesFilesAlone(t *testing.T) {
	h := newHarness(t, allTools()...)
	mkv := testsupport.WriteFile(t, filepath.Join(t.TempDir(), "movie.mkv"), 10)

	if err := h.execute("-T", "-d", mkv); err != nil {
		t.Fatalf("execute: %v", err)
	}
	if !strings.Contains(h.stdout.String(), "*********************** DRY RUN ***********************") {
		t.Fatalf("missing dry-run banner:\n%s", h.stdout.String())
	}
	if len(h.runner.find("mkvpropedit -q")) != 0 {
		t.Fatal("dry run must not edit")
	}
}

func TestRunExplicitLogLevelBeatsStdout(t *testing.T) {
	h := newHarness(t, allTools()...)
	mkv := testsupport.WriteFile(t, filepath.Join(t.TempDir(), "movie.mkv"), 10)

	if err := h.execute("-S", "-g", "20", mkv); err != nil {
		t.Fatalf("execute: %v", err)
	}
	out := h.stdout.String()
	if strings.Contains(out, "DEBUG:") {
		t.Fatalf("debug output with explicit INFO level:\n%s", out)
	}
	if !strings.Contains(out, "INFO: processing finished") {
		t.Fatalf("expected info output:\n%s", out)
	}
}

func TestRunWithoutToolsExitsCleanly(t *testing.T) {
	h := newHarness(t)
	mkv := testsupport.WriteFile(t, filepath.Join(t.TempDir(), "movie.mkv"), 10)

	if err := h.execute("-T", mkv); err != nil {
		t.Fatalf("expected clean exit, got %v", err)
	}
	if !strings.Contains(h.stdout.String(), "CRITICAL: neither mkvtoolnix nor AtomicParsley found, exiting") {
		t.Fatalf("missing critical log:\n%s", h.stdout.String())
	}
	if len(h.runner.find("mkvpropedit")) != 0 {
		t.Fatal("no tool may run")
	}
}

func TestRunWritesLogFileBesideConfig(t *testing.T) {
	h := newHarness(t, allTools()...)
	cfgPath := testsupport.WriteConfig(t, "logLevel = 20\n")
	mkv := testsupport.WriteFile(t, filepath.Join(t.TempDir(), "movie.mkv"), 10)

	if err := h.execute("-c", cfgPath, mkv); err != nil {
		t.Fatalf("execute: %v", err)
	}
	data, err := os.ReadFile(config.LogPathFor(cfgPath))
	if err != nil {
		t.Fatalf("read log: %v", err)
	}
	if !strings.Contains(string(data), " - INFO - processing MKV file") {
		t.Fatalf("unexpected log file:\n%s", data)
	}
	if h.stdout.Len() != 0 {
		t.Fatalf("nothing should reach stdout without -S, got %q", h.stdout.String())
	}
}

func TestRunWalksFoldersWithFilter(t *testing.T) {
	h := newHarness(t, allTools()...)
	root := testsupport.MediaTree(t, "season1/e01.mkv", "season1/e02.MKV", "extras/clip.mp4", "notes.txt")

	if err := h.execute("-T", "--only-mkv", root); err != nil {
		t.Fatalf("execute: %v", err)
	}
	if got := len(h.runner.find("mkvpropedit -q")); got != 2 {
		t.Fatalf("expected 2 MKV edits, got %d", got)
	}
	if len(h.runner.find("AtomicParsley "+filepath.Join(root, "extras"))) != 0 {
		t.Fatal("only-mkv must skip MP4 files")
	}
	if !strings.Contains(h.stdout.String(), "INFO: total folders processed count=1") {
		t.Fatalf("missing folder count:\n%s", h.stdout.String())
	}
}

func TestRunReadsInputList(t *testing.T) {
	h := newHarness(t, allTools()...)
	dir := t.TempDir()
	mkv := testsupport.WriteFile(t, filepath.Join(dir, "listed.mkv"), 10)
	list := filepath.Join(dir, "list.txt")
	if err := os.WriteFile(list, []byte("# queue\n"+mkv+"\n"), 0o644); err != nil {
		t.Fatalf("write list: %v", err)
	}

	if err := h.execute("-T", "-i", list); err != nil {
		t.Fatalf("execute: %v", err)
	}
	if len(h.runner.find("mkvpropedit -q "+mkv)) != 1 {
		t.Fatalf("listed file not processed:\n%s", h.stdout.String())
	}
}

func TestRunRejectsInvalidOptions(t *testing.T) {
	h := newHarness(t, allTools()...)

	err := h.execute("--only-mkv", "--only-mp4")
	if !errors.Is(err, options.ErrConflictingFilters) || !errors.Is(err, options.ErrNoInputs) {
		t.Fatalf("expected both validation errors, got %v", err)
	}

	missing := filepath.Join(t.TempDir(), "missing-list.txt")
	if err := h.execute("-T", "-i", missing); err == nil || !strings.Contains(err.Error(), "input file not found") {
		t.Fatalf("expected missing input list error, got %v", err)
	}
}

func TestRunRejectsMalformedConfig(t *testing.T) {
	h := newHarness(t, allTools()...)
	cfgPath := testsupport.WriteConfig(t, "logLevel = [\n")

	err := h.execute("-c", cfgPath, "movie.mkv")
	var parseErr *config.ParseError
	if !errors.As(err, &parseErr) || parseErr.Path != cfgPath {
		t.Fatalf("expected ParseError for %s, got %v", cfgPath, err)
	}
}

func TestHistoryRecordsRuns(t *testing.T) {
	h := newHarness(t, allTools()...)
	mkv := testsupport.WriteFile(t, filepath.Join(t.TempDir(), "movie.mkv"), 10)

	if err := h.execute("history"); err != nil {
		t.Fatalf("history: %v", err)
	}
	if !strings.Contains(h.stdout.String(), "No run history") {
		t.Fatalf("expected empty history notice, got %q", h.stdout.String())
	}

	if err := h.execute("-T", "--history", mkv); err != nil {
		t.Fatalf("execute: %v", err)
	}
	if err := h.execute("history"); err != nil {
		t.Fatalf("history: %v", err)
	}
	out := h.stdout.String()
	for _, want := range []string{"RUN", "PROCESSED", "DRY RUN", "│ no"} {
		if !strings.Contains(out, want) {
			t.Fatalf("history table missing %q:\n%s", want, out)
		}
	}
}

func TestConfigShowListsSources(t *testing.T) {
	h := newHarness(t)

	if err := h.execute("config", "show", "-L", "fr", "--only-mp4"); err != nil {
		t.Fatalf("config show: %v", err)
	}
	out := h.stdout.String()
	for _, want := range []string{"OPTION", "SOURCE", "French (fr/fra)", "cli override", "onlyMp4", "default"} {
		if !strings.Contains(out, want) {
			t.Errorf("config show missing %q", want)
		}
	}
	if t.Failed() {
		t.Logf("output:\n%s", out)
	}
}

func TestConfigPathAndInit(t *testing.T) {
	h := newHarness(t)
	target := filepath.Join(t.TempDir(), "nested", "config.toml")

	if err := h.execute("config", "init", "--path", target); err != nil {
		t.Fatalf("config init: %v", err)
	}
	if _, err := os.Stat(target); err != nil {
		t.Fatalf("sample not written: %v", err)
	}
	if err := h.execute("config", "init", "--path", target); err == nil || !strings.Contains(err.Error(), "already exists") {
		t.Fatalf("expected refusal to overwrite, got %v", err)
	}
	if err := h.execute("config", "init", "--path", target, "--overwrite"); err != nil {
		t.Fatalf("config init --overwrite: %v", err)
	}

	if err := h.execute("config", "path", "-c", target); err != nil {
		t.Fatalf("config path: %v", err)
	}
	if got := strings.TrimSpace(h.stdout.String()); got != target {
		t.Fatalf("config path = %q, want %q", got, target)
	}
}

func TestVersionFlag(t *testing.T) {
	h := newHarness(t)
	if err := h.execute("-v"); err != nil {
		t.Fatalf("version: %v", err)
	}
	if got := h.stdout.String(); got != "cattywampus "+version+"\n" {
		t.Fatalf("version output = %q", got)
	}
}
