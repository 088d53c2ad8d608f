package config

import (
	"bytes"
	"errors"
	"fmt"
	"io/fs"
	"os"
	"path/filepath"
	"strconv"
	"strings"

	"github.com/joho/godotenv"
	"github.com/mitchellh/go-homedir"
	"github.com/pelletier/go-toml/v2"

	"github.com/conn-castle/ptsetup/internal/messages"
)

// ErrConfigValidation wraps failures of the resolved settings, as opposed to
// TOML syntax or filesystem errors.
var ErrConfigValidation = errors.New("config validation failed")

var (
	readFileFunc = os.ReadFile
	expandFunc   = homedir.Expand
)

// fileConfig mirrors ptsetup.toml. Pointer fields keep unset keys apart from zero values.
type fileConfig struct {
	Python        *string   `toml:"python"`
	Pip           *string   `toml:"pip"`
	Manifest      *string   `toml:"manifest"`
	InstallArgs   *[]string `toml:"install_args"`
	VerifyImports *[]string `toml:"verify_imports"`
	Pause         *bool     `toml:"pause"`
	LogDir        *string   `toml:"log_dir"`
	DownloadURL   *string   `toml:"download_url"`
	EntryPoint    *string   `toml:"entry_point"`
}

// LoadOptions controls where Load looks for settings.
type LoadOptions struct {
	// Dir is the working directory holding ptsetup.toml and .env.
	Dir string
	// Path is an explicit config file. When set, the file must exist.
	Path string
	// LookupEnv reads process environment variables. Defaults to os.LookupEnv.
	LookupEnv func(key string) (string, bool)
	// Overrides come from command-line flags and win over everything else.
	Overrides Overrides
}

// Overrides holds flag values. Empty strings and false leave settings untouched.
type Overrides struct {
	Python   string
	Pip      string
	Manifest string
	LogDir   string
	NoPause  bool
}

// Load resolves settings from defaults, the config file, .env, the
// environment and flag overrides, in increasing order of precedence.
func Load(opts LoadOptions) (Config, error) {
	cfg := Default()

	path := opts.Path
	required := path != ""
	if path == "" {
		path = filepath.Join(opts.Dir, FileName)
	}
	data, err := readFileFunc(path)
	switch {
	case err == nil:
		fc, err := parseFile(data, path)
		if err != nil {
			return Config{}, err
		}
		fc.apply(&cfg)
	case required || !errors.Is(err, fs.ErrNotExist):
		return Config{}, fmt.Errorf(messages.ConfigReadFileFmt, path, err)
	}

	dotenv, err := loadDotEnv(filepath.Join(opts.Dir, EnvFileName))
	if err != nil {
		return Config{}, err
	}
	lookup := opts.LookupEnv
	if lookup == nil {
		lookup = os.LookupEnv
	}
	if err := applyEnv(&cfg, withDotEnv(lookup, dotenv)); err != nil {
		return Config{}, fmt.Errorf("%w: %w", ErrConfigValidation, err)
	}
	opts.Overrides.apply(&cfg)

	if cfg.LogDir != "" {
		expanded, err := expandFunc(cfg.LogDir)
		if err != nil {
			return Config{}, fmt.Errorf(messages.ConfigExpandLogDirFmt, cfg.LogDir, err)
		}
		if !filepath.IsAbs(expanded) && opts.Dir != "" {
			expanded = filepath.Join(opts.Dir, expanded)
		}
		cfg.LogDir = expanded
	}

	if err := cfg.Validate(); err != nil {
		return Config{}, fmt.Errorf("%w: %w", ErrConfigValidation, err)
	}
	return cfg, nil
}

// parseFile decodes ptsetup.toml, rejecting keys it does not know.
func parseFile(data []byte, source string) (*fileConfig, error) {
	var fc fileConfig
	decoder := toml.NewDecoder(bytes.NewReader(data))
	decoder.DisallowUnknownFields()
	if err := decoder.Decode(&fc); err != nil {
		var strict *toml.StrictMissingError
		if errors.As(err, &strict) {
			return nil, fmt.Errorf("%w: "+messages.ConfigUnrecognizedKeysFmt, ErrConfigValidation, source, strings.TrimSpace(strict.String()))
		}
		return nil, fmt.Errorf(messages.ConfigInvalidConfigFmt, source, err)
	}
	return &fc, nil
}

func (fc *fileConfig) apply(cfg *Config) {
	if fc.Python != nil {
		cfg.Python = *fc.Python
	}
	if fc.Pip != nil {
		cfg.Pip = *fc.Pip
	}
	if fc.Manifest != nil {
		cfg.Manifest = *fc.Manifest
	}
	if fc.InstallArgs != nil {
		cfg.InstallArgs = append([]string(nil), (*fc.InstallArgs)...)
	}
	if fc.VerifyImports != nil {
		cfg.VerifyImports = append([]string(nil), (*fc.VerifyImports)...)
	}
	if fc.Pause != nil {
		cfg.Pause = *fc.Pause
	}
	if fc.LogDir != nil {
		cfg.LogDir = *fc.LogDir
	}
	if fc.DownloadURL != nil {
		cfg.DownloadURL = *fc.DownloadURL
	}
	if fc.EntryPoint != nil {
		cfg.EntryPoint = *fc.EntryPoint
	}
}

func (o Overrides) apply(cfg *Config) {
	if v := strings.TrimSpace(o.Python); v != "" {
		cfg.Python = v
	}
	if v := strings.TrimSpace(o.Pip); v != "" {
		cfg.Pip = v
	}
	if v := strings.TrimSpace(o.Manifest); v != "" {
		cfg.Manifest = v
	}
	if v := strings.TrimSpace(o.LogDir); v != "" {
		cfg.LogDir = v
	}
	if o.NoPause {
		cfg.Pause = false
	}
}

// loadDotEnv reads the optional .env file. A missing file is not an error.
func loadDotEnv(path string) (map[string]string, error) {
	if _, err := os.Stat(path); err != nil {
		if errors.Is(err, fs.ErrNotExist) {
			return nil, nil
		}
		return nil, fmt.Errorf(messages.ConfigInvalidEnvFileFmt, path, err)
	}
	env, err := godotenv.Read(path)
	if err != nil {
		return nil, fmt.Errorf(messages.ConfigInvalidEnvFileFmt, path, err)
	}
	return env, nil
}

// withDotEnv falls back to .env values for keys missing from the process environment.
func withDotEnv(lookup func(string) (string, bool), dotenv map[string]string) func(string) (string, bool) {
	return func(key string) (string, bool) {
		if value, ok := lookup(key); ok {
			return value, true
		}
		value, ok := dotenv[key]
		return value, ok
	}
}

func applyEnv(cfg *Config, lookup func(string) (string, bool)) error {
	if value, ok := nonEmpty(lookup, EnvPython); ok {
		cfg.Python = value
	}
	if value, ok := nonEmpty(lookup, EnvPip); ok {
		cfg.Pip = value
	}
	if value, ok := nonEmpty(lookup, EnvManifest); ok {
		cfg.Manifest = value
	}
	if value, ok := nonEmpty(lookup, EnvLogDir); ok {
		cfg.LogDir = value
	}
	if value, ok := nonEmpty(lookup, EnvNoPause); ok {
		noPause, err := strconv.ParseBool(value)
		if err != nil {
			return fmt.Errorf(messages.ConfigInvalidBoolEnvFmt, EnvNoPause, value)
		}
		if noPause {
			cfg.Pause = false
		}
	}
	return nil
}

func nonEmpty(lookup func(string) (string, bool), key string) (string, bool) {
	value, ok := lookup(key)
	value = strings.TrimSpace(value)
	if !ok || value == "" {
		return "", false
	}
	return value, true
}
