package config

import (
	"fmt"
	"path/filepath"
	"regexp"
	"strings"

	"github.com/conn-castle/ptsetup/internal/messages"
)

const (
	// FileName is the optional config file looked up in the working directory.
	FileName = "ptsetup.toml"
	// EnvFileName is the optional dotenv file looked up in the working directory.
	EnvFileName = ".env"

	DefaultPython      = "python"
	DefaultPip         = "pip"
	DefaultManifest    = "requirements.txt"
	DefaultDownloadURL = "https://www.python.org/downloads/"
	DefaultEntryPoint  = "priston_bot.py"
)

// Environment variable overrides.
const (
	EnvPython   = "PTSETUP_PYTHON"
	EnvPip      = "PTSETUP_PIP"
	EnvManifest = "PTSETUP_MANIFEST"
	EnvNoPause  = "PTSETUP_NO_PAUSE"
	EnvLogDir   = "PTSETUP_LOG_DIR"
)

// defaultVerifyImports are the modules the bot imports at startup.
var defaultVerifyImports = []string{"win32gui", "cv2", "numpy", "PIL"}

var moduleNameRe = regexp.MustCompile(`^[A-Za-z_][A-Za-z0-9_]*(\.[A-Za-z_][A-Za-z0-9_]*)*$`)

// Config holds the resolved installer settings.
type Config struct {
	Python        string
	Pip           string
	Manifest      string
	InstallArgs   []string
	VerifyImports []string
	Pause         bool
	LogDir        string
	DownloadURL   string
	EntryPoint    string
}

// Default returns the settings used when nothing is configured.
func Default() Config {
	return Config{
		Python:        DefaultPython,
		Pip:           DefaultPip,
		Manifest:      DefaultManifest,
		VerifyImports: append([]string(nil), defaultVerifyImports...),
		Pause:         true,
		DownloadURL:   DefaultDownloadURL,
		EntryPoint:    DefaultEntryPoint,
	}
}

// Validate checks that required fields are set and that verify imports are
// plain module names, since they are spliced into a python -c statement.
func (c Config) Validate() error {
	if strings.TrimSpace(c.Python) == "" {
		return fmt.Errorf(messages.ConfigPythonRequired)
	}
	if strings.TrimSpace(c.Pip) == "" {
		return fmt.Errorf(messages.ConfigPipRequired)
	}
	if strings.TrimSpace(c.Manifest) == "" {
		return fmt.Errorf(messages.ConfigManifestRequired)
	}
	if strings.TrimSpace(c.EntryPoint) == "" {
		return fmt.Errorf(messages.ConfigEntryPointRequired)
	}
	for _, arg := range c.InstallArgs {
		if strings.TrimSpace(arg) == "" {
			return fmt.Errorf(messages.ConfigInvalidInstallArgFmt, arg)
		}
	}
	for _, name := range c.VerifyImports {
		if !moduleNameRe.MatchString(name) {
			return fmt.Errorf(messages.ConfigInvalidImportFmt, name)
		}
	}
	return nil
}

// ManifestPath resolves the manifest against workDir unless it is already absolute.
func (c Config) ManifestPath(workDir string) string {
	if filepath.IsAbs(c.Manifest) || workDir == "" {
		return c.Manifest
	}
	return filepath.Join(workDir, c.Manifest)
}
