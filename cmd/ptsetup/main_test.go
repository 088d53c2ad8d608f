package main

import (
	"bytes"
	"context"
	"errors"
	"io"
	"os"
	"strings"
	"testing"
)

func TestMainVersion(t *testing.T) {
	var out bytes.Buffer
	if err := execute(context.Background(), []string{"ptsetup", "--version"}, &out, &out); err != nil {
		t.Fatalf("execute error: %v", err)
	}
	if !strings.Contains(out.String(), Version) {
		t.Fatalf("expected version output, got %q", out.String())
	}
}

func TestMainRejectsPositionalArgs(t *testing.T) {
	var out bytes.Buffer
	err := execute(context.Background(), []string{"ptsetup", "install"}, &out, &out)
	if err == nil {
		t.Fatalf("expected error")
	}
	if !strings.Contains(err.Error(), "unknown command") {
		t.Fatalf("expected unknown command error, got %v", err)
	}
}

func TestRunMainSuccess(t *testing.T) {
	var out bytes.Buffer
	called := false
	runMain([]string{"ptsetup", "--version"}, &out, &out, func(code int) {
		called = true
	})
	if called {
		t.Fatalf("unexpected exit")
	}
}

func TestRunMainError(t *testing.T) {
	var out bytes.Buffer
	code := 0
	runMain([]string{"ptsetup", "--bogus"}, &out, &out, func(exitCode int) {
		code = exitCode
	})
	if code != 1 {
		t.Fatalf("expected exit code 1, got %d", code)
	}
	if !strings.Contains(out.String(), "unknown flag") {
		t.Fatalf("expected error output, got %q", out.String())
	}
}

func TestRunMainSilentExit(t *testing.T) {
	orig := executeFunc
	defer func() { executeFunc = orig }()
	executeFunc = func(context.Context, []string, io.Writer, io.Writer) error {
		return &SilentExitError{Code: 1}
	}

	var out bytes.Buffer
	code := 0
	runMain([]string{"ptsetup"}, &out, &out, func(c int) { code = c })
	if code != 1 {
		t.Fatalf("expected exit 1, got %d", code)
	}
	if out.Len() != 0 {
		t.Fatalf("expected no output, got %q", out.String())
	}
}

func TestRunMainWrappedSilentExit(t *testing.T) {
	orig := executeFunc
	defer func() { executeFunc = orig }()
	executeFunc = func(context.Context, []string, io.Writer, io.Writer) error {
		return errors.Join(errors.New("context"), &SilentExitError{Code: 3})
	}

	code := 0
	runMain([]string{"ptsetup"}, io.Discard, io.Discard, func(c int) { code = c })
	if code != 3 {
		t.Fatalf("expected exit 3, got %d", code)
	}
}

func TestRunMainPassesSignalContext(t *testing.T) {
	origExec := executeFunc
	origNotify := notifyContext
	defer func() {
		executeFunc = origExec
		notifyContext = origNotify
	}()

	type key struct{}
	notifyContext = func(parent context.Context, _ ...os.Signal) (context.Context, context.CancelFunc) {
		return context.WithCancel(context.WithValue(parent, key{}, "signals"))
	}
	var got any
	executeFunc = func(ctx context.Context, _ []string, _ io.Writer, _ io.Writer) error {
		got = ctx.Value(key{})
		return nil
	}

	runMain([]string{"ptsetup"}, io.Discard, io.Discard, func(int) { t.Fatalf("unexpected exit") })
	if got != "signals" {
		t.Fatalf("expected signal-aware context, got %v", got)
	}
}

func TestMainCallsExecute(t *testing.T) {
	originalArgs := os.Args
	defer func() { os.Args = originalArgs }()

	os.Args = []string{"ptsetup", "--version"}
	main()
}

func TestSilentExitErrorMessage(t *testing.T) {
	if got := (SilentExitError{Code: 2}).Error(); got != "exit 2" {
		t.Fatalf("unexpected message %q", got)
	}
}

func TestVersionString(t *testing.T) {
	origVersion, origCommit, origDate := Version, Commit, BuildDate
	defer func() { Version, Commit, BuildDate = origVersion, origCommit, origDate }()

	tests := []struct {
		name    string
		version string
		commit  string
		date    string
		want    string
	}{
		{name: "bare", version: "v1.2.0", commit: "unknown", date: "unknown", want: "v1.2.0"},
		{name: "commit", version: "v1.2.0", commit: "abc123", date: "", want: "v1.2.0 (commit abc123)"},
		{name: "full", version: "v1.2.0", commit: "abc123", date: "2026-10-14", want: "v1.2.0 (commit abc123, built 2026-10-14)"},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			Version, Commit, BuildDate = tt.version, tt.commit, tt.date
			if got := versionString(); got != tt.want {
				t.Fatalf("versionString() = %q, want %q", got, tt.want)
			}
		})
	}
}
