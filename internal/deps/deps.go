package deps

import (
	"context"
	"fmt"
	"os"
	"os/exec"
	"path/filepath"
	"runtime"
	"strings"
	"time"

	"cattywampus/internal/media"
)

// Binary names of the external tools, without platform suffix.
const (
	MKVMerge      = "mkvmerge"
	MKVPropEdit   = "mkvpropedit"
	AtomicParsley = "AtomicParsley"
)

// Where a tool was found.
const (
	OriginDirect   = "direct path"
	OriginPATH     = "PATH"
	OriginCommon   = "common location"
	versionTimeout = 5 * time.Second
)

// CommonLocations are searched after PATH. File-manager integrations often
// run with a PATH that lacks package-manager prefixes.
var CommonLocations = []string{
	"/opt/homebrew/bin",
	"/usr/local/bin",
	"/usr/bin",
	"/opt/local/bin",
}

// Requirement defines an external tool the cleaner can use.
type Requirement struct {
	Name string
	// Configured is the user-supplied path, or "" to search by Name.
	Configured  string
	Description string
}

// Status reports where a tool resolved to.
type Status struct {
	Name        string
	Description string
	Command     string
	Available   bool
	Origin      string
	Detail      string
}

// Resolver locates executables. The zero value uses exec.LookPath and
// CommonLocations.
type Resolver struct {
	LookPath  func(string) (string, error)
	Locations []string
}

// BinaryName appends the platform executable suffix.
func BinaryName(base string) string {
	if runtime.GOOS == "windows" && !strings.HasSuffix(strings.ToLower(base), ".exe") {
		return base + ".exe"
	}
	return base
}

// CheckBinaries resolves every requirement with the default Resolver.
func CheckBinaries(requirements []Requirement) []Status {
	return Resolver{}.CheckBinaries(requirements)
}

// CheckBinaries resolves every requirement.
func (r Resolver) CheckBinaries(requirements []Requirement) []Status {
	results := make([]Status, 0, len(requirements))
	for _, req := range requirements {
		results = append(results, r.Resolve(req))
	}
	return results
}

// Resolve finds one tool: an absolute configured path is used directly,
// then the name is looked up on PATH, then in the common locations.
func (r Resolver) Resolve(req Requirement) Status {
	status := Status{
		Name:        req.Name,
		Description: strings.TrimSpace(req.Description),
	}
	name := strings.TrimSpace(req.Configured)
	configured := name != ""
	if !configured {
		name = BinaryName(req.Name)
	}
	status.Command = name

	if filepath.IsAbs(name) && isExecutableFile(name) {
		status.Available = true
		status.Origin = OriginDirect
		return status
	}

	lookPath := r.LookPath
	if lookPath == nil {
		lookPath = exec.LookPath
	}
	if resolved, err := lookPath(name); err == nil {
		status.Command = resolved
		status.Available = true
		status.Origin = OriginPATH
		if configured {
			status.Origin = OriginDirect
		}
		return status
	}

	locations := r.Locations
	if locations == nil {
		locations = CommonLocations
	}
	for _, dir := range locations {
		candidate := filepath.Join(dir, filepath.Base(name))
		if isExecutableFile(candidate) {
			status.Command = candidate
			status.Available = true
			status.Origin = OriginCommon
			return status
		}
	}

	status.Detail = fmt.Sprintf("binary %q not found", name)
	return status
}

// Version returns the first line of `path --version`, or "" when the tool
// prints nothing. A failing exit status is tolerated if output was produced.
func Version(ctx context.Context, run media.Runner, path string) string {
	if strings.TrimSpace(path) == "" {
		return ""
	}
	if run == nil {
		run = media.ExecRunner
	}
	ctx, cancel := context.WithTimeout(ctx, versionTimeout)
	defer cancel()

	output, _ := run(ctx, path, "--version")
	text := strings.TrimSpace(string(output))
	if text == "" {
		return ""
	}
	first, _, _ := strings.Cut(text, "\n")
	return strings.TrimSpace(first)
}

func isExecutableFile(path string) bool {
	info, err := os.Stat(path)
	if err != nil || !info.Mode().IsRegular() {
		return false
	}
	return isExecutable(path, info)
}
