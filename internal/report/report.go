// Package report prints setup progress for a human at the console.
package report

import (
	"fmt"
	"io"
	"strings"

	"github.com/fatih/color"

	"github.com/conn-castle/ptsetup/internal/messages"
	"github.com/conn-castle/ptsetup/internal/preflight"
)

// Diff line colors. Package lines may contain '%', so they are never used as formats.
var (
	addedLine   = color.New(color.FgGreen)
	removedLine = color.New(color.FgRed)
	hunkLine    = color.New(color.FgCyan)
)

// Reporter writes status lines at each decision point of a setup run.
type Reporter struct {
	out io.Writer
}

// New returns a Reporter that writes to out.
func New(out io.Writer) *Reporter {
	return &Reporter{out: out}
}

// Start announces the run and the prerequisite checks.
func (r *Reporter) Start(dir string) {
	_, _ = fmt.Fprintf(r.out, messages.SetupStartFmt, dir)
	_, _ = fmt.Fprintln(r.out, messages.SetupCheckingHeader)
}

// Result prints one check line with its recommendation, if any.
func (r *Reporter) Result(res preflight.Result) {
	var status string
	switch res.Status {
	case preflight.StatusOK:
		status = color.GreenString(messages.SetupStatusOKLabel)
	case preflight.StatusWarn:
		status = color.YellowString(messages.SetupStatusWarnLabel)
	case preflight.StatusFail:
		status = color.RedString(messages.SetupStatusFailLabel)
	}

	_, _ = fmt.Fprintf(r.out, messages.SetupResultLineFmt, status, res.CheckName, res.Message)
	if res.Recommendation != "" {
		r.recommendation(res.Recommendation)
	}
}

// recommendation renders a multi-line hint with consistent indentation.
func (r *Reporter) recommendation(text string) {
	for i, line := range strings.Split(text, "\n") {
		if i == 0 {
			_, _ = fmt.Fprintf(r.out, "%s%s\n", messages.SetupRecommendationPrefix, line)
			continue
		}
		if line == "" {
			_, _ = fmt.Fprintln(r.out)
			continue
		}
		_, _ = fmt.Fprintf(r.out, "%s%s\n", messages.SetupRecommendationIndent, line)
	}
}

// Stopped closes a run that failed a prerequisite check.
func (r *Reporter) Stopped() {
	_, _ = fmt.Fprintln(r.out)
	_, _ = fmt.Fprintln(r.out, color.RedString(messages.SetupStoppedSummary))
}

// InstallStart announces the package manager run.
func (r *Reporter) InstallStart(manifest string) {
	_, _ = fmt.Fprintln(r.out)
	_, _ = fmt.Fprintf(r.out, messages.SetupInstallStartFmt, manifest)
}

// InstallFailed asks the user to read the streamed package manager output.
func (r *Reporter) InstallFailed(err error) {
	_, _ = fmt.Fprintln(r.out)
	_, _ = fmt.Fprint(r.out, color.RedString(messages.SetupInstallFailedFmt, err))
}

// Changes prints the package diff, or a note that nothing changed.
func (r *Reporter) Changes(diff string) {
	_, _ = fmt.Fprintln(r.out)
	if diff == "" {
		_, _ = fmt.Fprintln(r.out, messages.SetupNoChanges)
		return
	}
	_, _ = fmt.Fprintln(r.out, messages.SetupChangesHeader)
	for _, line := range strings.Split(strings.TrimRight(diff, "\n"), "\n") {
		switch {
		case strings.HasPrefix(line, "+++"), strings.HasPrefix(line, "---"):
			_, _ = fmt.Fprintln(r.out, line)
		case strings.HasPrefix(line, "+"):
			_, _ = fmt.Fprintln(r.out, addedLine.Sprint(line))
		case strings.HasPrefix(line, "-"):
			_, _ = fmt.Fprintln(r.out, removedLine.Sprint(line))
		case strings.HasPrefix(line, "@@"):
			_, _ = fmt.Fprintln(r.out, hunkLine.Sprint(line))
		default:
			_, _ = fmt.Fprintln(r.out, line)
		}
	}
}

// ChangesUnavailable warns that the package set could not be listed.
func (r *Reporter) ChangesUnavailable(err error) {
	_, _ = fmt.Fprintln(r.out)
	r.Result(preflight.Result{
		CheckName: messages.SetupCheckNameChanges,
		Status:    preflight.StatusWarn,
		Message:   fmt.Sprintf(messages.SetupChangesFailedFmt, err),
	})
}

// VerifyStart announces the import check.
func (r *Reporter) VerifyStart(modules []string) {
	_, _ = fmt.Fprintln(r.out)
	_, _ = fmt.Fprintf(r.out, messages.SetupVerifyStartFmt, strings.Join(modules, ", "))
}

// VerifyOK reports that every module imported.
func (r *Reporter) VerifyOK() {
	_, _ = fmt.Fprintln(r.out, messages.SetupVerifyOK)
}

// VerifyFailed asks the user to read the interpreter output.
func (r *Reporter) VerifyFailed(err error) {
	_, _ = fmt.Fprintln(r.out)
	_, _ = fmt.Fprint(r.out, color.RedString(messages.SetupVerifyFailedFmt, err))
}

// Success closes a completed run with the command that starts the bot.
func (r *Reporter) Success(python string, entryPoint string) {
	_, _ = fmt.Fprintln(r.out)
	_, _ = fmt.Fprintln(r.out, color.GreenString(messages.SetupSuccessSummary))
	_, _ = fmt.Fprintf(r.out, messages.SetupUsageHintFmt, python, entryPoint)
}

// Interrupted closes a run cancelled by the user.
func (r *Reporter) Interrupted() {
	_, _ = fmt.Fprintln(r.out)
	_, _ = fmt.Fprintln(r.out, color.RedString(messages.SetupInterrupted))
}

// LogWritten points at the run log file.
func (r *Reporter) LogWritten(path string) {
	_, _ = fmt.Fprintf(r.out, messages.SetupLogWrittenFmt, path)
}
