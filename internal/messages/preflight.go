package messages

// Preflight messages for prerequisite checks.
const (
	PreflightCheckNameInterpreter    = "Python"
	PreflightCheckNamePackageManager = "Pip"
	PreflightCheckNameManifest       = "Manifest"

	PreflightInterpreterMissingFmt       = "Python was not found on PATH (%s)."
	PreflightInterpreterMissingRecommend = "Install Python 3 from %s and make sure \"Add python.exe to PATH\" is checked,\nthen open a new terminal and run ptsetup again."
	PreflightInterpreterFoundFmt         = "%s"

	PreflightPackageManagerMissingFmt       = "pip was not found on PATH (%s)."
	PreflightPackageManagerMissingRecommend = "Reinstall Python with pip enabled, or run: %s -m ensurepip --upgrade"
	PreflightPackageManagerFoundFmt         = "%s"

	// PreflightVersionUnknownFmt is reported when a tool exits 0 but prints nothing.
	PreflightVersionUnknownFmt = "%s (version unknown)"
	PreflightVersionExitFmt    = "%s %s exited with status %d"

	PreflightManifestMissingFmt       = "%s not found."
	PreflightManifestMissingRecommend = "Run ptsetup from the bot's folder, next to %s."
	PreflightManifestNotFileFmt       = "%s exists but is not a regular file."
	PreflightManifestReadFailedFmt    = "Failed to read %s: %v"
	PreflightManifestEmptyFmt         = "%s lists no packages."
	PreflightManifestFoundFmt         = "%s (%d packages)"
	PreflightManifestFoundOneFmt      = "%s (1 package)"
)
