package messages

// System messages for subprocess and run log operations.
const (
	// RunnerStartFailedFmt formats errors for processes that could not be started.
	RunnerStartFailedFmt  = "start %s: %w"
	RunnerInterruptedFmt  = "%s interrupted: %w"
	RunnerCommandRequired = "command name is required"

	InstallExitStatusFmt       = "exit status %d"
	InstallFreezeFailed        = "pip freeze failed"
	InstallNoImports           = "no modules to verify"
	InstallMissingModulesFmt   = "missing %s; install with: %s install %s"
	InstallMissingModuleFmt    = "%s (%s)"
	InstallChangesTruncatedFmt = "... (truncated to %d lines)"

	SetupLogCreateDirFmt  = "create log dir %s: %w"
	SetupLogCreateFileFmt = "create log file %s: %w"
	SetupLogFileNameFmt   = "ptsetup_%s.log"
)
