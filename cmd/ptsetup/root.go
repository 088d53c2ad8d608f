package main

import (
	"context"
	"fmt"
	"io"
	"time"

	"github.com/spf13/cobra"

	"github.com/conn-castle/ptsetup/internal/config"
	"github.com/conn-castle/ptsetup/internal/messages"
	"github.com/conn-castle/ptsetup/internal/report"
	"github.com/conn-castle/ptsetup/internal/setup"
	"github.com/conn-castle/ptsetup/internal/setuplog"
)

var (
	loadConfigFunc = config.Load
	runSetupFunc   = setup.Run
	openLogFunc    = setuplog.Open
	nowFunc        = time.Now
	pauseFunc      = func(ctx context.Context, enabled bool) error {
		return report.NewPauser().Pause(ctx, enabled)
	}
)

type rootFlags struct {
	config      string
	manifest    string
	python      string
	pip         string
	logDir      string
	noPause     bool
	showChanges bool
	verify      bool
}

func newRootCmd() *cobra.Command {
	var flags rootFlags
	cmd := &cobra.Command{
		Use:           messages.RootUse,
		Short:         messages.RootShort,
		Long:          messages.RootLong,
		Args:          cobra.NoArgs,
		SilenceUsage:  true,
		SilenceErrors: true,
		RunE: func(cmd *cobra.Command, args []string) error {
			return runSetup(cmd.Context(), cmd.OutOrStdout(), cmd.ErrOrStderr(), flags)
		},
	}
	cmd.Flags().BoolP("version", "v", false, messages.RootVersionFlag)
	cmd.Flags().StringVar(&flags.config, "config", "", messages.FlagConfig)
	cmd.Flags().StringVar(&flags.manifest, "manifest", "", messages.FlagManifest)
	cmd.Flags().StringVar(&flags.python, "python", "", messages.FlagPython)
	cmd.Flags().StringVar(&flags.pip, "pip", "", messages.FlagPip)
	cmd.Flags().StringVar(&flags.logDir, "log-dir", "", messages.FlagLogDir)
	cmd.Flags().BoolVar(&flags.noPause, "no-pause", false, messages.FlagNoPause)
	cmd.Flags().BoolVar(&flags.showChanges, "show-changes", false, messages.FlagShowChanges)
	cmd.Flags().BoolVar(&flags.verify, "verify", false, messages.FlagVerify)
	return cmd
}

// runSetup loads settings, runs the pipeline, and holds the window open when
// the console is interactive. Failures already reported on out return a
// SilentExitError.
func runSetup(ctx context.Context, out io.Writer, errOut io.Writer, flags rootFlags) error {
	if ctx == nil {
		ctx = context.Background()
	}
	cwd, err := getwd()
	if err != nil {
		return fmt.Errorf(messages.CLIGetwdFailedFmt, err)
	}

	cfg, err := loadConfigFunc(config.LoadOptions{
		Dir:  cwd,
		Path: flags.config,
		Overrides: config.Overrides{
			Python:   flags.python,
			Pip:      flags.pip,
			Manifest: flags.manifest,
			LogDir:   flags.logDir,
			NoPause:  flags.noPause,
		},
	})
	if err != nil {
		_, _ = fmt.Fprintln(errOut, err)
		_ = pauseFunc(ctx, !flags.noPause)
		return &SilentExitError{Code: setup.ExitFailure}
	}

	runLog := setuplog.Disabled()
	if cfg.LogDir != "" {
		opened, err := openLogFunc(cfg.LogDir, nowFunc())
		if err != nil {
			_, _ = fmt.Fprintln(errOut, err)
			_ = pauseFunc(ctx, cfg.Pause)
			return &SilentExitError{Code: setup.ExitFailure}
		}
		runLog = opened
	}
	defer func() { _ = runLog.Close() }()

	reporter := report.New(out)
	result := runSetupFunc(ctx, setup.Options{
		Config:      cfg,
		WorkDir:     cwd,
		Reporter:    reporter,
		Log:         &runLog.Logger,
		Stdout:      out,
		Stderr:      errOut,
		ShowChanges: flags.showChanges,
		Verify:      flags.verify,
	})
	if path := runLog.Path(); path != "" {
		reporter.LogWritten(path)
	}

	if err := pauseFunc(ctx, cfg.Pause); err != nil {
		runLog.Warn().Err(err).Msg("pause failed")
	}
	if result.ExitCode != setup.ExitSuccess {
		return &SilentExitError{Code: result.ExitCode}
	}
	return nil
}
