package messages

// CLI messages for the root command and its flags.
const (
	// RootUse is the CLI command name.
	RootUse = "ptsetup"
	// RootShort is the short description for the root command.
	RootShort = "Install the Priston Tale Potion Bot dependencies"
	RootLong  = `ptsetup checks that Python and pip are available on PATH, then installs
the bot's dependencies from requirements.txt in the current directory.

Run it with no arguments from the bot's folder.`
	RootVersionFlag = "Print version and exit"

	// VersionCommitFmt formats the commit hash for version display.
	VersionCommitFmt = "commit %s"
	VersionBuildFmt  = "built %s"
	VersionFullFmt   = "%s (%s)"
	VersionTemplate  = "{{.Version}}\n"

	FlagConfig      = "Path to a ptsetup.toml config file (default: ./ptsetup.toml when present)"
	FlagManifest    = "Requirements file to install (default: requirements.txt)"
	FlagPython      = "Python interpreter to check (default: python)"
	FlagPip         = "Package manager to check and install with (default: pip)"
	FlagNoPause     = "Exit without waiting for a keypress"
	FlagShowChanges = "Print the installed package changes after installing"
	FlagVerify      = "Import the bot's modules after installing to verify them"
	FlagLogDir      = "Write a JSON run log into this directory"

	// CLIGetwdFailedFmt formats working directory lookup failures.
	CLIGetwdFailedFmt = "resolve working directory: %w"
	CLIExitStatusFmt  = "exit %d"
)
