// Package install runs the package manager against the requirements file.
package install

import (
	"context"
	"errors"
	"fmt"
	"io"

	"github.com/conn-castle/ptsetup/internal/messages"
	"github.com/conn-castle/ptsetup/internal/runner"
)

var (
	// ErrInstallFailed reports that the package manager could not install the manifest.
	ErrInstallFailed = errors.New("dependency installation failed")
	// ErrVerifyFailed reports that an installed module could not be imported.
	ErrVerifyFailed = errors.New("import verification failed")
	// ErrFreezeFailed reports that the installed package set could not be listed.
	ErrFreezeFailed = errors.New(messages.InstallFreezeFailed)
)

// Installer drives pip and python for a single setup run.
type Installer struct {
	sys    runner.System
	python string
	pip    string
	stdout io.Writer
	stderr io.Writer
}

// Options configures an Installer.
type Options struct {
	System runner.System
	Python string
	Pip    string
	// Stdout and Stderr receive the streamed output of pip and python.
	Stdout io.Writer
	Stderr io.Writer
}

// New returns an Installer. Nil writers discard output.
func New(opts Options) *Installer {
	sys := opts.System
	if sys == nil {
		sys = runner.RealSystem{}
	}
	stdout := opts.Stdout
	if stdout == nil {
		stdout = io.Discard
	}
	stderr := opts.Stderr
	if stderr == nil {
		stderr = io.Discard
	}
	return &Installer{sys: sys, python: opts.Python, pip: opts.Pip, stdout: stdout, stderr: stderr}
}

// InstallArgs returns the package manager arguments for manifest.
func InstallArgs(manifest string, extra []string) []string {
	args := []string{"install", "-r", manifest}
	return append(args, extra...)
}

// Install runs `<pip> install -r <manifest> [extra...]` once, streaming its output.
func (i *Installer) Install(ctx context.Context, manifest string, extra []string) error {
	outcome, err := i.sys.Stream(ctx, i.stdout, i.stderr, i.pip, InstallArgs(manifest, extra)...)
	return i.check(ctx, ErrInstallFailed, outcome, err)
}

// Freeze returns the output of `<pip> freeze`.
func (i *Installer) Freeze(ctx context.Context) (string, error) {
	outcome, err := i.sys.Output(ctx, i.pip, "freeze")
	if err := i.check(ctx, ErrFreezeFailed, outcome, err); err != nil {
		return "", err
	}
	return outcome.Stdout, nil
}

// check maps a process result onto sentinel. Interruptions are returned unwrapped
// so callers can tell them apart from tool failures.
func (i *Installer) check(ctx context.Context, sentinel error, outcome runner.Outcome, err error) error {
	if err != nil {
		if ctx.Err() != nil {
			return err
		}
		return fmt.Errorf("%w: %w", sentinel, err)
	}
	if !outcome.Success() {
		return fmt.Errorf("%w: "+messages.InstallExitStatusFmt, sentinel, outcome.ExitCode)
	}
	return nil
}
