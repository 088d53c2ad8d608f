package testutil

import (
	"fmt"
	"os"
	"path/filepath"
	"runtime"
	"strings"
	"testing"
)

// RequireShell skips the test when the platform cannot run /bin/sh stubs.
func RequireShell(t *testing.T) {
	t.Helper()
	if runtime.GOOS == "windows" {
		t.Skip("shell stubs are not supported on windows")
	}
}

// WriteStub writes an executable shell stub that exits successfully.
// t is the active test; dir is the output directory; name is the executable file name.
func WriteStub(t *testing.T, dir string, name string) {
	t.Helper()
	WriteStubWithExit(t, dir, name, 0)
}

// WriteStubWithExit writes an executable shell stub that exits with the provided code.
// t is the active test; dir is the output directory; name is the executable file name.
func WriteStubWithExit(t *testing.T, dir string, name string, exitCode int) {
	t.Helper()
	WriteScript(t, dir, name, fmt.Sprintf("exit %d", exitCode))
}

// WriteStubWithOutput writes a stub that prints stdout and exits with exitCode.
func WriteStubWithOutput(t *testing.T, dir string, name string, stdout string, exitCode int) {
	t.Helper()
	WriteScript(t, dir, name, fmt.Sprintf("printf '%%s\\n' %s\nexit %d", shellQuote(stdout), exitCode))
}

// WriteRecordingStub writes a stub that appends its arguments as one line to
// logPath, prints stdout, and exits with exitCode.
func WriteRecordingStub(t *testing.T, dir string, name string, logPath string, stdout string, exitCode int) {
	t.Helper()
	body := fmt.Sprintf("printf '%%s %%s\\n' %s \"$*\" >> %s\n", shellQuote(name), shellQuote(logPath))
	if stdout != "" {
		body += fmt.Sprintf("printf '%%s\\n' %s\n", shellQuote(stdout))
	}
	body += fmt.Sprintf("exit %d", exitCode)
	WriteScript(t, dir, name, body)
}

// WriteScript writes an executable /bin/sh script with the given body.
func WriteScript(t *testing.T, dir string, name string, body string) {
	t.Helper()
	path := filepath.Join(dir, name)
	content := []byte("#!/bin/sh\n" + body + "\n")
	if err := os.WriteFile(path, content, 0o755); err != nil {
		t.Fatalf("write stub: %v", err)
	}
}

// IsolatePath points PATH at dirs only, so tools outside them are not found.
func IsolatePath(t *testing.T, dirs ...string) {
	t.Helper()
	t.Setenv("PATH", strings.Join(dirs, string(os.PathListSeparator)))
}

// ReadLines returns the non-empty lines of path, or nil when it does not exist.
func ReadLines(t *testing.T, path string) []string {
	t.Helper()
	data, err := os.ReadFile(path)
	if os.IsNotExist(err) {
		return nil
	}
	if err != nil {
		t.Fatalf("read %s: %v", path, err)
	}
	var lines []string
	for _, line := range strings.Split(string(data), "\n") {
		if strings.TrimSpace(line) != "" {
			lines = append(lines, line)
		}
	}
	return lines
}

// WithWorkingDir runs fn with dir as the current working directory and restores the previous directory.
// t is the active test; dir is the temporary working directory for fn.
func WithWorkingDir(t *testing.T, dir string, fn func()) {
	t.Helper()
	cwd, err := os.Getwd()
	if err != nil {
		t.Fatalf("getwd: %v", err)
	}
	if err := os.Chdir(dir); err != nil {
		t.Fatalf("chdir: %v", err)
	}
	defer func() {
		if err := os.Chdir(cwd); err != nil {
			t.Fatalf("restore chdir: %v", err)
		}
	}()
	fn()
}

func shellQuote(s string) string {
	return "'" + strings.ReplaceAll(s, "'", `'"'"'`) + "'"
}
