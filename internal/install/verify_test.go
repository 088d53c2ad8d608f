package install

import (
	"bytes"
	"context"
	"errors"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/conn-castle/ptsetup/internal/runner"
	"github.com/conn-castle/ptsetup/internal/runner/runnertest"
)

func TestVerify(t *testing.T) {
	sys := runnertest.New().
		OnOutput("python -c import win32gui", "", 0).
		OnOutput("python -c import cv2", "", 0).
		OnOutput("python -c import numpy", "", 0).
		OnOutput("python -c import PIL", "", 0)

	err := newTestInstaller(sys, &bytes.Buffer{}).Verify(context.Background(), []string{"win32gui", "cv2", "numpy", "PIL"})
	require.NoError(t, err)
	assert.Equal(t, []string{
		"python -c import win32gui",
		"python -c import cv2",
		"python -c import numpy",
		"python -c import PIL",
	}, sys.Calls())
}

func TestVerifyImportError(t *testing.T) {
	sys := runnertest.New().On("python -c import cv2", runnertest.Response{
		Outcome:  runner.Outcome{ExitCode: 1},
		Streamed: "ModuleNotFoundError: No module named 'cv2'\n",
	})
	var out bytes.Buffer

	err := newTestInstaller(sys, &out).Verify(context.Background(), []string{"cv2"})
	require.Error(t, err)
	assert.True(t, errors.Is(err, ErrVerifyFailed))
	assert.Contains(t, out.String(), "No module named 'cv2'")
	assert.Equal(t, "missing cv2 (opencv-python); install with: pip install opencv-python", err.Error())
}

func TestVerifyReportsEveryMissingPackage(t *testing.T) {
	failed := runnertest.Response{Outcome: runner.Outcome{ExitCode: 1}}
	sys := runnertest.New().
		On("python -c import win32gui", failed).
		OnOutput("python -c import cv2", "", 0).
		OnOutput("python -c import numpy", "", 0).
		On("python -c import PIL", failed)

	err := newTestInstaller(sys, &bytes.Buffer{}).Verify(context.Background(), []string{"win32gui", "cv2", "numpy", "PIL"})
	require.Error(t, err)
	assert.Len(t, sys.Calls(), 4, "a failed import does not stop the check")

	var missing *MissingModulesError
	require.True(t, errors.As(err, &missing))
	assert.Equal(t, []string{"win32gui", "PIL"}, missing.Modules)
	assert.Equal(t, []string{"pywin32", "pillow"}, missing.Packages())
	assert.Contains(t, err.Error(), "win32gui (pywin32), PIL (pillow)")
	assert.Contains(t, err.Error(), "pip install pywin32 pillow")
}

func TestVerifyStartFailureStops(t *testing.T) {
	sys := runnertest.New()

	err := newTestInstaller(sys, &bytes.Buffer{}).Verify(context.Background(), []string{"cv2", "numpy"})
	require.Error(t, err)
	assert.True(t, errors.Is(err, ErrVerifyFailed))
	assert.True(t, errors.Is(err, runner.ErrStart))
	assert.Len(t, sys.Calls(), 1)
}

func TestVerifyInterrupted(t *testing.T) {
	sys := runnertest.New().OnOutput("python -c import cv2", "", 0)
	ctx, cancel := context.WithCancel(context.Background())
	cancel()

	err := newTestInstaller(sys, &bytes.Buffer{}).Verify(ctx, []string{"cv2"})
	require.Error(t, err)
	assert.True(t, errors.Is(err, context.Canceled))
	assert.False(t, errors.Is(err, ErrVerifyFailed))
}

func TestVerifyNoModules(t *testing.T) {
	sys := runnertest.New()

	err := newTestInstaller(sys, &bytes.Buffer{}).Verify(context.Background(), nil)
	require.Error(t, err)
	assert.True(t, errors.Is(err, ErrVerifyFailed))
	assert.Empty(t, sys.Calls())
}

func TestPackageFor(t *testing.T) {
	tests := []struct {
		module string
		want   string
	}{
		{module: "win32gui", want: "pywin32"},
		{module: "cv2", want: "opencv-python"},
		{module: "numpy", want: "numpy"},
		{module: "PIL", want: "pillow"},
		{module: "PIL.Image", want: "pillow"},
		{module: "requests", want: "requests"},
	}
	for _, tt := range tests {
		t.Run(tt.module, func(t *testing.T) {
			assert.Equal(t, tt.want, PackageFor(tt.module))
		})
	}
}

func TestMissingModulesErrorDedupesPackages(t *testing.T) {
	err := &MissingModulesError{Pip: "pip3", Modules: []string{"win32gui", "win32api"}}
	assert.Equal(t, []string{"pywin32"}, err.Packages())
	assert.Equal(t, "missing win32gui (pywin32), win32api (pywin32); install with: pip3 install pywin32", err.Error())
}

func TestImportStatement(t *testing.T) {
	assert.Equal(t, "import numpy", ImportStatement("numpy"))
}
