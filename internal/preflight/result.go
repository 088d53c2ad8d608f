// Package preflight verifies the prerequisites of a dependency install.
package preflight

import "errors"

// Status is the outcome of a single check.
type Status string

const (
	StatusOK   Status = "OK"
	StatusWarn Status = "WARN"
	StatusFail Status = "FAIL"
)

// Errors attached to failing results. Callers classify them with errors.Is.
var (
	ErrInterpreterMissing    = errors.New("python interpreter not found")
	ErrPackageManagerMissing = errors.New("package manager not found")
	ErrManifestMissing       = errors.New("requirements file not found")
)

// Result describes one check for display.
type Result struct {
	CheckName      string
	Status         Status
	Message        string
	Recommendation string
	// Err is set when Status is StatusFail.
	Err error
}

// Failed reports whether the check blocks the install.
func (r Result) Failed() bool {
	return r.Status == StatusFail
}
