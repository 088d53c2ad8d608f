package messages

// Config messages for configuration loading and validation.
const (
	// ConfigReadFileFmt formats config file read errors.
	ConfigReadFileFmt         = "read config %s: %w"
	ConfigInvalidConfigFmt    = "invalid config %s: %w"
	ConfigUnrecognizedKeysFmt = "%s: unrecognized config keys: %s"
	ConfigInvalidEnvFileFmt   = "invalid env file %s: %w"
	ConfigExpandLogDirFmt     = "expand log_dir %q: %w"
	ConfigInvalidBoolEnvFmt   = "%s must be a boolean (true/false/1/0), got %q"

	ConfigPythonRequired       = "python must not be empty"
	ConfigPipRequired          = "pip must not be empty"
	ConfigManifestRequired     = "manifest must not be empty"
	ConfigEntryPointRequired   = "entry_point must not be empty"
	ConfigInvalidImportFmt     = "verify_imports: %q is not a valid Python module name"
	ConfigInvalidInstallArgFmt = "install_args: %q must not be empty"
)
