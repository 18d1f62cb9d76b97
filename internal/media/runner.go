package media

import (
	"bytes"
	"context"
	"errors"
	"fmt"
	"os/exec"
	"strings"
)

// Runner executes an external tool and returns its standard output.
// Tests substitute a stub.
type Runner func(ctx context.Context, name string, args ...string) ([]byte, error)

// CommandError reports a tool that ran and failed, or could not be started.
type CommandError struct {
	Name     string
	Args     []string
	ExitCode int
	// Output holds stdout followed by stderr, with line breaks removed.
	Output string
	Err    error
}

func (e *CommandError) Error() string {
	if e.Output != "" {
		return fmt.Sprintf("%s: %v: %s", e.Name, e.Err, e.Output)
	}
	return fmt.Sprintf("%s: %v", e.Name, e.Err)
}

func (e *CommandError) Unwrap() error { return e.Err }

// ExecRunner runs name through os/exec.
func ExecRunner(ctx context.Context, name string, args ...string) ([]byte, error) {
	cmd := exec.CommandContext(ctx, name, args...)
	var stdout, stderr bytes.Buffer
	cmd.Stdout = &stdout
	cmd.Stderr = &stderr
	if err := cmd.Run(); err != nil {
		exitCode := -1
		var exitErr *exec.ExitError
		if errors.As(err, &exitErr) {
			exitCode = exitErr.ExitCode()
		}
		return stdout.Bytes(), &CommandError{
			Name:     name,
			Args:     append([]string(nil), args...),
			ExitCode: exitCode,
			Output:   FlattenOutput(stdout.String() + stderr.String()),
			Err:      err,
		}
	}
	return stdout.Bytes(), nil
}

// FlattenOutput strips line breaks so tool output fits on one log line.
func FlattenOutput(output string) string {
	output = strings.ReplaceAll(output, "\r", "")
	output = strings.ReplaceAll(output, "\n", "")
	return strings.TrimSpace(output)
}

// FormatCommand renders a command line for logs. Empty arguments are shown
// as "" so they stay visible.
func FormatCommand(name string, args ...string) string {
	parts := make([]string, 0, len(args)+1)
	parts = append(parts, name)
	for _, arg := range args {
		if arg == "" {
			arg = `""`
		}
		parts = append(parts, arg)
	}
	return strings.Join(parts, " ")
}
