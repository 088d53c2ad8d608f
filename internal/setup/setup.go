// Package setup runs the installer stages in order and decides the exit code.
package setup

import (
	"context"
	"errors"
	"fmt"
	"io"

	"github.com/rs/zerolog"

	"github.com/conn-castle/ptsetup/internal/config"
	"github.com/conn-castle/ptsetup/internal/install"
	"github.com/conn-castle/ptsetup/internal/preflight"
	"github.com/conn-castle/ptsetup/internal/runner"
)

// Stage names a step of the setup state machine.
type Stage string

const (
	StageStart               Stage = "start"
	StageCheckInterpreter    Stage = "check-interpreter"
	StageCheckPackageManager Stage = "check-package-manager"
	StageCheckManifest       Stage = "check-manifest"
	StageInstall             Stage = "install"
	StageVerify              Stage = "verify"
	StageSuccess             Stage = "success"
	StageFailure             Stage = "failure"
)

// Exit codes.
const (
	ExitSuccess = 0
	ExitFailure = 1
)

// Failure kinds. Every one of them ends the run with ExitFailure.
var (
	ErrInterpreterMissing    = preflight.ErrInterpreterMissing
	ErrPackageManagerMissing = preflight.ErrPackageManagerMissing
	ErrManifestMissing       = preflight.ErrManifestMissing
	ErrInstallFailed         = install.ErrInstallFailed
	ErrVerifyFailed          = install.ErrVerifyFailed
	ErrInterrupted           = errors.New("setup interrupted")
)

// Reporter receives progress at each decision point.
type Reporter interface {
	Start(dir string)
	Result(res preflight.Result)
	Stopped()
	InstallStart(manifest string)
	InstallFailed(err error)
	Changes(diff string)
	ChangesUnavailable(err error)
	VerifyStart(modules []string)
	VerifyOK()
	VerifyFailed(err error)
	Success(python string, entryPoint string)
	Interrupted()
}

// Options configures a run.
type Options struct {
	Config   config.Config
	WorkDir  string
	System   runner.System
	Reporter Reporter
	// Log receives one event per stage. Nil disables logging.
	Log *zerolog.Logger
	// Stdout and Stderr receive the output of pip and python.
	Stdout io.Writer
	Stderr io.Writer
	// ShowChanges prints the package set difference caused by the install.
	ShowChanges bool
	// Verify imports Config.VerifyImports after a successful install.
	Verify bool
}

// Report is the outcome of a run.
type Report struct {
	// Stage is StageSuccess or StageFailure.
	Stage Stage
	// Failed is the stage that stopped the run; empty on success.
	Failed   Stage
	Err      error
	ExitCode int
}

// Succeeded reports whether the run reached StageSuccess.
func (r Report) Succeeded() bool {
	return r.Stage == StageSuccess
}

type pipeline struct {
	opts Options
	cfg  config.Config
	rep  Reporter
	log  *zerolog.Logger
	inst *install.Installer
}

// Run executes the stages strictly in order. A failing stage ends the run;
// later stages are never attempted.
func Run(ctx context.Context, opts Options) Report {
	sys := opts.System
	if sys == nil {
		sys = runner.RealSystem{}
	}
	log := opts.Log
	if log == nil {
		nop := zerolog.Nop()
		log = &nop
	}
	p := &pipeline{
		opts: opts,
		cfg:  opts.Config,
		rep:  opts.Reporter,
		log:  log,
		inst: install.New(install.Options{
			System: sys,
			Python: opts.Config.Python,
			Pip:    opts.Config.Pip,
			Stdout: opts.Stdout,
			Stderr: opts.Stderr,
		}),
	}
	return p.run(ctx, sys)
}

func (p *pipeline) run(ctx context.Context, sys runner.System) Report {
	p.enter(StageStart)
	p.log.Info().
		Str("work_dir", p.opts.WorkDir).
		Str("python", p.cfg.Python).
		Str("pip", p.cfg.Pip).
		Str("manifest", p.cfg.Manifest).
		Bool("show_changes", p.opts.ShowChanges).
		Bool("verify", p.opts.Verify).
		Msg("setup started")
	p.rep.Start(p.opts.WorkDir)

	p.enter(StageCheckInterpreter)
	res := preflight.CheckInterpreter(ctx, sys, p.cfg.Python, p.cfg.DownloadURL)
	if report, done := p.check(ctx, StageCheckInterpreter, res); done {
		return report
	}

	p.enter(StageCheckPackageManager)
	res = preflight.CheckPackageManager(ctx, sys, p.cfg.Pip, p.cfg.Python)
	if report, done := p.check(ctx, StageCheckPackageManager, res); done {
		return report
	}

	p.enter(StageCheckManifest)
	manifest := p.cfg.ManifestPath(p.opts.WorkDir)
	res = preflight.CheckManifest(manifest, p.cfg.Manifest)
	if report, done := p.check(ctx, StageCheckManifest, res); done {
		return report
	}

	p.enter(StageInstall)
	var before string
	var freezeErr error
	if p.opts.ShowChanges {
		before, freezeErr = p.inst.Freeze(ctx)
		if ctx.Err() != nil {
			return p.interrupted(StageInstall, ctx.Err())
		}
	}
	p.rep.InstallStart(p.cfg.Manifest)
	if err := p.inst.Install(ctx, manifest, p.cfg.InstallArgs); err != nil {
		if ctx.Err() != nil {
			return p.interrupted(StageInstall, ctx.Err())
		}
		p.rep.InstallFailed(err)
		return p.fail(StageInstall, err)
	}
	p.log.Info().Str("stage", string(StageInstall)).Msg("install finished")
	if p.opts.ShowChanges {
		if report, done := p.changes(ctx, before, freezeErr); done {
			return report
		}
	}

	if p.opts.Verify {
		p.enter(StageVerify)
		p.rep.VerifyStart(p.cfg.VerifyImports)
		if err := p.inst.Verify(ctx, p.cfg.VerifyImports); err != nil {
			if ctx.Err() != nil {
				return p.interrupted(StageVerify, ctx.Err())
			}
			p.rep.VerifyFailed(err)
			return p.fail(StageVerify, err)
		}
		p.rep.VerifyOK()
	}

	p.enter(StageSuccess)
	p.rep.Success(p.cfg.Python, p.cfg.EntryPoint)
	p.log.Info().Int("exit_code", ExitSuccess).Msg("setup finished")
	return Report{Stage: StageSuccess, ExitCode: ExitSuccess}
}

// check reports a preflight result and ends the run when it failed.
func (p *pipeline) check(ctx context.Context, stage Stage, res preflight.Result) (Report, bool) {
	if ctx.Err() != nil {
		return p.interrupted(stage, ctx.Err()), true
	}
	p.log.Info().
		Str("stage", string(stage)).
		Str("status", string(res.Status)).
		Str("message", res.Message).
		Msg("check finished")
	p.rep.Result(res)
	if !res.Failed() {
		return Report{}, false
	}
	p.rep.Stopped()
	return p.fail(stage, res.Err), true
}

// changes prints the package diff. Listing failures are warnings only.
func (p *pipeline) changes(ctx context.Context, before string, freezeErr error) (Report, bool) {
	if freezeErr != nil {
		p.log.Warn().Err(freezeErr).Msg("package listing failed")
		p.rep.ChangesUnavailable(freezeErr)
		return Report{}, false
	}
	after, err := p.inst.Freeze(ctx)
	if ctx.Err() != nil {
		return p.interrupted(StageInstall, ctx.Err()), true
	}
	if err != nil {
		p.log.Warn().Err(err).Msg("package listing failed")
		p.rep.ChangesUnavailable(err)
		return Report{}, false
	}
	diff, truncated := install.Changes(before, after, install.DefaultChangesMaxLines)
	p.log.Info().Bool("changed", diff != "").Bool("truncated", truncated).Msg("package changes")
	p.rep.Changes(diff)
	return Report{}, false
}

func (p *pipeline) enter(stage Stage) {
	p.log.Debug().Str("stage", string(stage)).Msg("stage entered")
}

func (p *pipeline) fail(stage Stage, err error) Report {
	p.log.Error().
		Err(err).
		Str("stage", string(stage)).
		Int("exit_code", ExitFailure).
		Msg("setup failed")
	return Report{Stage: StageFailure, Failed: stage, Err: err, ExitCode: ExitFailure}
}

func (p *pipeline) interrupted(stage Stage, cause error) Report {
	p.rep.Interrupted()
	return p.fail(stage, fmt.Errorf("%w: %w", ErrInterrupted, cause))
}
