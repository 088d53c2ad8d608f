// Package runner executes external tools for the installer.
package runner

import (
	"bytes"
	"context"
	"errors"
	"fmt"
	"io"
	"os/exec"
	"strings"

	"github.com/conn-castle/ptsetup/internal/messages"
)

// ErrStart reports that a process could not be started, usually because the
// binary is not on PATH.
var ErrStart = errors.New("process could not be started")

// Outcome is the result of a process that ran to completion.
type Outcome struct {
	ExitCode int
	Stdout   string
	Stderr   string
}

// Success reports whether the process exited with status zero.
func (o Outcome) Success() bool {
	return o.ExitCode == 0
}

// System abstracts process execution so stages can be tested without real tools.
// A process that starts and exits non-zero is an Outcome, not an error.
type System interface {
	// Output runs name with args and captures its output.
	Output(ctx context.Context, name string, args ...string) (Outcome, error)
	// Stream runs name with args, copying its output to stdout and stderr.
	Stream(ctx context.Context, stdout io.Writer, stderr io.Writer, name string, args ...string) (Outcome, error)
}

// RealSystem implements System with os/exec.
type RealSystem struct{}

var commandContext = exec.CommandContext

// Output runs name with args and captures stdout and stderr.
func (RealSystem) Output(ctx context.Context, name string, args ...string) (Outcome, error) {
	if strings.TrimSpace(name) == "" {
		return Outcome{}, fmt.Errorf("%w: %s", ErrStart, messages.RunnerCommandRequired)
	}
	var stdout, stderr bytes.Buffer
	cmd := commandContext(ctx, name, args...)
	cmd.Stdout = &stdout
	cmd.Stderr = &stderr
	err := cmd.Run()
	outcome := Outcome{Stdout: stdout.String(), Stderr: stderr.String()}
	return classify(ctx, name, outcome, err)
}

// Stream runs name with args and copies its output as it is produced.
func (RealSystem) Stream(ctx context.Context, stdout io.Writer, stderr io.Writer, name string, args ...string) (Outcome, error) {
	if strings.TrimSpace(name) == "" {
		return Outcome{}, fmt.Errorf("%w: %s", ErrStart, messages.RunnerCommandRequired)
	}
	cmd := commandContext(ctx, name, args...)
	cmd.Stdout = stdout
	cmd.Stderr = stderr
	err := cmd.Run()
	return classify(ctx, name, Outcome{}, err)
}

// classify turns an exec error into an exit code, a start failure, or an interruption.
func classify(ctx context.Context, name string, outcome Outcome, err error) (Outcome, error) {
	if err == nil {
		return outcome, nil
	}
	if ctxErr := ctx.Err(); ctxErr != nil {
		return outcome, fmt.Errorf(messages.RunnerInterruptedFmt, name, ctxErr)
	}
	var exitErr *exec.ExitError
	if errors.As(err, &exitErr) {
		code := exitErr.ExitCode()
		if code <= 0 {
			// Killed by a signal.
			code = 1
		}
		outcome.ExitCode = code
		return outcome, nil
	}
	return outcome, fmt.Errorf("%w: "+messages.RunnerStartFailedFmt, ErrStart, name, err)
}

// FirstLine returns the first non-empty line of stdout, falling back to stderr.
// Python 2 and some launchers print --version to stderr.
func (o Outcome) FirstLine() string {
	for _, stream := range []string{o.Stdout, o.Stderr} {
		for _, line := range strings.Split(stream, "\n") {
			if trimmed := strings.TrimSpace(line); trimmed != "" {
				return trimmed
			}
		}
	}
	return ""
}
