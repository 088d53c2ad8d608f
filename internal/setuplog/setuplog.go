// Package setuplog writes a machine-readable record of a setup run.
package setuplog

import (
	"fmt"
	"os"
	"path/filepath"
	"time"

	"github.com/google/uuid"
	"github.com/rs/zerolog"

	"github.com/conn-castle/ptsetup/internal/messages"
)

// fileTimeLayout matches the timestamp in the bot's own log file names.
const fileTimeLayout = "20060102_150405"

var (
	mkdirAllFunc = os.MkdirAll
	openFileFunc = os.OpenFile
	newRunIDFunc = uuid.NewString
)

// RunLog is a JSON event log bound to one run. The zero value is not usable;
// use Open or Disabled.
type RunLog struct {
	zerolog.Logger
	path  string
	runID string
	file  *os.File
}

// Open creates dir if needed and starts <dir>/ptsetup_<timestamp>.log.
// Runs started within the same second append to the same file.
func Open(dir string, now time.Time) (*RunLog, error) {
	if err := mkdirAllFunc(dir, 0o755); err != nil {
		return nil, fmt.Errorf(messages.SetupLogCreateDirFmt, dir, err)
	}
	path := filepath.Join(dir, FileName(now))
	file, err := openFileFunc(path, os.O_CREATE|os.O_WRONLY|os.O_APPEND, 0o644)
	if err != nil {
		return nil, fmt.Errorf(messages.SetupLogCreateFileFmt, path, err)
	}
	runID := newRunIDFunc()
	logger := zerolog.New(file).With().
		Timestamp().
		Str("run_id", runID).
		Logger()
	return &RunLog{Logger: logger, path: path, runID: runID, file: file}, nil
}

// Disabled returns a RunLog that drops every event.
func Disabled() *RunLog {
	return &RunLog{Logger: zerolog.Nop(), runID: newRunIDFunc()}
}

// FileName returns the log file name for a run started at now.
func FileName(now time.Time) string {
	return fmt.Sprintf(messages.SetupLogFileNameFmt, now.Format(fileTimeLayout))
}

// Path returns the log file path, or "" when logging is disabled.
func (l *RunLog) Path() string {
	return l.path
}

// RunID identifies the run in every event.
func (l *RunLog) RunID() string {
	return l.runID
}

// Close flushes and closes the log file.
func (l *RunLog) Close() error {
	if l.file == nil {
		return nil
	}
	err := l.file.Close()
	l.file = nil
	return err
}
