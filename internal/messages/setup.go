package messages

// Setup messages printed by the reporter while the pipeline runs.
const (
	SetupStartFmt        = "🧪 Setting up Priston Tale Potion Bot in %s...\n"
	SetupCheckingHeader  = "Checking prerequisites..."
	SetupStoppedSummary  = "❌ Setup stopped. Fix the problem above and run ptsetup again."
	SetupInterrupted     = "❌ Setup interrupted."
	SetupSuccessSummary  = "✅ Installation complete."
	SetupUsageHintFmt    = "Start the bot with: %s %s\n"
	SetupLogWrittenFmt   = "Run log written to %s\n"
	SetupPausePrompt     = "Press Enter to exit."
	SetupStatusOKLabel   = "[OK]  "
	SetupStatusWarnLabel = "[WARN]"
	SetupStatusFailLabel = "[FAIL]"
	SetupResultLineFmt   = "%s %-10s %s\n"

	SetupRecommendationPrefix = "       💡 "
	SetupRecommendationIndent = "         "

	SetupInstallStartFmt  = "📦 Installing dependencies from %s...\n"
	SetupInstallFailedFmt = "❌ Dependency installation failed (%v).\n   Review the pip output above for details.\n"

	SetupChangesHeader    = "Package changes:"
	SetupNoChanges        = "No package changes."
	SetupCheckNameChanges = "Changes"
	SetupChangesFailedFmt = "Could not list installed packages: %v"

	SetupVerifyStartFmt  = "🔎 Verifying imports: %s\n"
	SetupVerifyOK        = "All modules imported successfully."
	SetupVerifyFailedFmt = "❌ Installed packages could not be imported (%v).\n   Review the Python output above for details.\n"
)
