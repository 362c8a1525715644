package docbuild

import (
	"bytes"
	"context"
	"errors"
	"io"
	"os"
	"os/exec"
	"regexp"
	"strings"
)

// Command is one external process invocation.
type Command struct {
	Name string
	Args []string
	// Dir is the working directory of the child process only.
	Dir string
}

// String renders the command line for logs and reports.
func (c Command) String() string {
	return strings.Join(append([]string{c.Name}, c.Args...), " ")
}

// ExecResult is what a finished process reported.
type ExecResult struct {
	ExitCode int
	Output   []byte
}

// Runner starts external processes and locates their executables.
// Run blocks until the process exits; there is no timeout besides ctx.
// A non-nil error or a non-zero ExitCode both mean the command failed.
type Runner interface {
	Run(ctx context.Context, cmd Command) (ExecResult, error)
	LookPath(name string) (string, error)
}

// VersionReporter is implemented by runners that can report tool versions.
type VersionReporter interface {
	Version(ctx context.Context, path string) string
}

// ExecRunner runs commands with os/exec.
type ExecRunner struct {
	// Stream, when set, receives child output as it is produced.
	Stream io.Writer
}

// NewExecRunner returns a runner that streams child output to stderr.
func NewExecRunner() *ExecRunner {
	return &ExecRunner{Stream: os.Stderr}
}

func (r *ExecRunner) LookPath(name string) (string, error) {
	return exec.LookPath(name)
}

func (r *ExecRunner) Run(ctx context.Context, c Command) (ExecResult, error) {
	// #nosec G204 -- commands come from the local configuration file
	cmd := exec.CommandContext(ctx, c.Name, c.Args...)
	cmd.Dir = c.Dir

	var captured bytes.Buffer
	var out io.Writer = &captured
	if r.Stream != nil {
		out = io.MultiWriter(&captured, r.Stream)
	}
	cmd.Stdout = out
	cmd.Stderr = out

	err := cmd.Run()
	res := ExecResult{Output: captured.Bytes()}
	if err != nil {
		var exitErr *exec.ExitError
		if errors.As(err, &exitErr) {
			res.ExitCode = exitErr.ExitCode()
		} else {
			res.ExitCode = -1
		}
		return res, err
	}
	return res, nil
}

var versionPattern = regexp.MustCompile(`(\d+\.\d+(?:\.\d+)?)`)

// Version runs "<path> --version" and extracts the first version number.
// Best effort: any failure yields the empty string.
func (r *ExecRunner) Version(ctx context.Context, path string) string {
	// #nosec G204 -- path is from exec.LookPath
	out, err := exec.CommandContext(ctx, path, "--version").Output()
	if err != nil {
		return ""
	}
	return parseVersion(string(out))
}

func parseVersion(output string) string {
	line, _, _ := strings.Cut(strings.TrimSpace(output), "\n")
	if m := versionPattern.FindStringSubmatch(line); len(m) >= 2 {
		return m[1]
	}
	return strings.TrimSpace(line)
}

// tail returns at most n trailing bytes of out, trimmed, for error context.
func tail(out []byte, n int) string {
	if len(out) > n {
		out = out[len(out)-n:]
	}
	return strings.TrimSpace(string(out))
}
