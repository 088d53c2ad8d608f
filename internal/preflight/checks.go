package preflight

import (
	"context"
	"errors"
	"fmt"
	"io/fs"
	"os"
	"strings"

	"github.com/conn-castle/ptsetup/internal/messages"
	"github.com/conn-castle/ptsetup/internal/runner"
)

var (
	statFunc     = os.Stat
	readFileFunc = os.ReadFile
)

// versionFlag is the query both Python and pip answer with a zero exit status.
const versionFlag = "--version"

// CheckInterpreter verifies that python answers a version query.
func CheckInterpreter(ctx context.Context, sys runner.System, python string, downloadURL string) Result {
	version, err := queryVersion(ctx, sys, python)
	if err != nil {
		return Result{
			CheckName:      messages.PreflightCheckNameInterpreter,
			Status:         StatusFail,
			Message:        fmt.Sprintf(messages.PreflightInterpreterMissingFmt, python),
			Recommendation: fmt.Sprintf(messages.PreflightInterpreterMissingRecommend, downloadURL),
			Err:            fmt.Errorf("%w: %w", ErrInterpreterMissing, err),
		}
	}
	return Result{
		CheckName: messages.PreflightCheckNameInterpreter,
		Status:    StatusOK,
		Message:   fmt.Sprintf(messages.PreflightInterpreterFoundFmt, version),
	}
}

// CheckPackageManager verifies that pip answers a version query.
// python is only used in the remediation hint.
func CheckPackageManager(ctx context.Context, sys runner.System, pip string, python string) Result {
	version, err := queryVersion(ctx, sys, pip)
	if err != nil {
		return Result{
			CheckName:      messages.PreflightCheckNamePackageManager,
			Status:         StatusFail,
			Message:        fmt.Sprintf(messages.PreflightPackageManagerMissingFmt, pip),
			Recommendation: fmt.Sprintf(messages.PreflightPackageManagerMissingRecommend, python),
			Err:            fmt.Errorf("%w: %w", ErrPackageManagerMissing, err),
		}
	}
	return Result{
		CheckName: messages.PreflightCheckNamePackageManager,
		Status:    StatusOK,
		Message:   fmt.Sprintf(messages.PreflightPackageManagerFoundFmt, version),
	}
}

// queryVersion runs `<binary> --version`. Only a zero exit status counts as present.
func queryVersion(ctx context.Context, sys runner.System, binary string) (string, error) {
	outcome, err := sys.Output(ctx, binary, versionFlag)
	if err != nil {
		return "", err
	}
	if !outcome.Success() {
		return "", fmt.Errorf(messages.PreflightVersionExitFmt, binary, versionFlag, outcome.ExitCode)
	}
	version := outcome.FirstLine()
	if version == "" {
		version = fmt.Sprintf(messages.PreflightVersionUnknownFmt, binary)
	}
	return version, nil
}

// CheckManifest verifies that the requirements file exists and is readable.
// path is the file to open; name is how it is shown to the user.
func CheckManifest(path string, name string) Result {
	fail := func(message string, recommendation string, err error) Result {
		return Result{
			CheckName:      messages.PreflightCheckNameManifest,
			Status:         StatusFail,
			Message:        message,
			Recommendation: recommendation,
			Err:            fmt.Errorf("%w: %s: %w", ErrManifestMissing, path, err),
		}
	}

	info, err := statFunc(path)
	if err != nil {
		if errors.Is(err, fs.ErrNotExist) {
			return fail(fmt.Sprintf(messages.PreflightManifestMissingFmt, name), fmt.Sprintf(messages.PreflightManifestMissingRecommend, name), err)
		}
		return fail(fmt.Sprintf(messages.PreflightManifestReadFailedFmt, name, err), "", err)
	}
	if !info.Mode().IsRegular() {
		return fail(fmt.Sprintf(messages.PreflightManifestNotFileFmt, name), fmt.Sprintf(messages.PreflightManifestMissingRecommend, name), fs.ErrInvalid)
	}
	data, err := readFileFunc(path)
	if err != nil {
		return fail(fmt.Sprintf(messages.PreflightManifestReadFailedFmt, name, err), "", err)
	}

	count := CountRequirements(data)
	switch count {
	case 0:
		return Result{
			CheckName: messages.PreflightCheckNameManifest,
			Status:    StatusWarn,
			Message:   fmt.Sprintf(messages.PreflightManifestEmptyFmt, name),
		}
	case 1:
		return Result{
			CheckName: messages.PreflightCheckNameManifest,
			Status:    StatusOK,
			Message:   fmt.Sprintf(messages.PreflightManifestFoundOneFmt, name),
		}
	default:
		return Result{
			CheckName: messages.PreflightCheckNameManifest,
			Status:    StatusOK,
			Message:   fmt.Sprintf(messages.PreflightManifestFoundFmt, name, count),
		}
	}
}

// CountRequirements counts package specifier lines in a requirements file.
// Blank lines, comments and option lines (-r, --index-url, ...) are skipped.
func CountRequirements(data []byte) int {
	count := 0
	for _, line := range strings.Split(string(data), "\n") {
		if idx := strings.Index(line, " #"); idx >= 0 {
			line = line[:idx]
		}
		line = strings.TrimSpace(line)
		if line == "" || strings.HasPrefix(line, "#") || strings.HasPrefix(line, "-") {
			continue
		}
		count++
	}
	return count
}
