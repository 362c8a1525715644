package docbuild

import (
	"context"
	"log/slog"
	"os"
	"time"

	"github.com/google/uuid"

	"git.home.luguber.info/inful/doxybridge/internal/foundation"
	"git.home.luguber.info/inful/doxybridge/internal/git"
	"git.home.luguber.info/inful/doxybridge/internal/logfields"
	"git.home.luguber.info/inful/doxybridge/internal/metrics"
)

// Observer is notified about the progress of a run. Implementations must not
// fail the build; they log their own errors.
type Observer interface {
	BuildStarted(ctx context.Context, r *Report)
	StepFinished(ctx context.Context, r *Report, step StepRecord)
	BuildFinished(ctx context.Context, r *Report)
	BuildSkipped(ctx context.Context, r *Report)
}

type noopObserver struct{}

func (noopObserver) BuildStarted(context.Context, *Report)             {}
func (noopObserver) StepFinished(context.Context, *Report, StepRecord) {}
func (noopObserver) BuildFinished(context.Context, *Report)            {}
func (noopObserver) BuildSkipped(context.Context, *Report)             {}

// Orchestrator runs the documentation build chain.
type Orchestrator struct {
	runner   Runner
	recorder metrics.Recorder
	observer Observer
	logger   *slog.Logger
	now      func() time.Time
	newID    func() string
	getwd    func() (string, error)
	revision func(path string) (git.Revision, error)
}

// NewOrchestrator creates an orchestrator that starts processes through runner.
func NewOrchestrator(runner Runner) *Orchestrator {
	if runner == nil {
		runner = NewExecRunner()
	}
	return &Orchestrator{
		runner:   runner,
		recorder: metrics.NoopRecorder{},
		observer: noopObserver{},
		logger:   slog.Default(),
		now:      time.Now,
		newID:    uuid.NewString,
		getwd:    os.Getwd,
		revision: git.HeadRevision,
	}
}

// WithRecorder injects a metrics recorder.
func (o *Orchestrator) WithRecorder(r metrics.Recorder) *Orchestrator {
	if r != nil {
		o.recorder = r
	}
	return o
}

// WithObserver injects a progress observer (for example the build history).
func (o *Orchestrator) WithObserver(obs Observer) *Orchestrator {
	if obs != nil {
		o.observer = obs
	}
	return o
}

// WithLogger replaces the default slog logger.
func (o *Orchestrator) WithLogger(l *slog.Logger) *Orchestrator {
	if l != nil {
		o.logger = l
	}
	return o
}

// WithRevisionLookup replaces the git HEAD lookup; nil disables it.
func (o *Orchestrator) WithRevisionLookup(fn func(path string) (git.Revision, error)) *Orchestrator {
	o.revision = fn
	return o
}

// RunDocBuild builds the XML tree in buildDir with default settings.
func RunDocBuild(ctx context.Context, buildDir string) error {
	_, err := NewOrchestrator(NewExecRunner()).Run(ctx, DefaultRequest(buildDir))
	return err
}

// RunGated runs the build only when gateOpen is true. A closed gate returns a
// skipped report without touching the filesystem or starting any process.
func (o *Orchestrator) RunGated(ctx context.Context, gateOpen bool, req Request) (*Report, error) {
	o.recorder.IncGateDecision(gateOpen)
	if gateOpen {
		return o.Run(ctx, req)
	}

	now := o.now()
	report := &Report{
		BuildID:    o.newID(),
		Project:    req.Project,
		Outcome:    OutcomeSkipped,
		StartedAt:  now,
		FinishedAt: now,
		BuildDir:   req.BuildDir,
		XMLDir:     req.XMLDir(),
	}
	o.logger.Info("Documentation build skipped: gate closed",
		logfields.BuildID(report.BuildID),
		logfields.Gate(false))
	o.recorder.IncBuildOutcome(string(OutcomeSkipped))
	o.observer.BuildSkipped(ctx, report)
	return report, nil
}

// run carries the state shared by the steps of one build.
type run struct {
	req    Request
	paths  resolvedPaths
	report *Report
}

// Run executes the step chain. The returned report is never nil; on failure
// the error is a BuildFailure naming the failed step.
func (o *Orchestrator) Run(ctx context.Context, req Request) (*Report, error) {
	start := o.now()
	report := &Report{
		BuildID:   o.newID(),
		Project:   req.Project,
		Gate:      true,
		StartedAt: start,
		BuildDir:  req.BuildDir,
		XMLDir:    req.XMLDir(),
		Tools:     map[string]ToolInfo{},
	}
	state := &run{req: req, report: report}
	if paths, err := req.resolve(o.getwd); err == nil {
		report.ProjectRoot = paths.projectRoot
		report.Revision = o.lookupRevision(paths.projectRoot)
	}

	o.logger.Info("Starting documentation build",
		logfields.BuildID(report.BuildID),
		logfields.BuildDir(req.BuildDir),
		logfields.Project(req.Project))
	o.observer.BuildStarted(ctx, report)

	result := foundation.Chain(state,
		o.step(ctx, stepPreflight, o.preflight),
		o.step(ctx, stepCreateDirectory, o.createDirectory),
		o.step(ctx, stepConfigure, o.configure),
		o.step(ctx, stepBuild, o.build),
		o.step(ctx, stepVerifyOutput, o.verifyOutput),
	)

	report.FinishedAt = o.now()
	o.recorder.ObserveBuildDuration(report.Duration())

	if _, err := result.ToTuple(); err != nil {
		report.Outcome = OutcomeFailed
		report.Error = err.Error()
		o.recorder.IncBuildOutcome(string(OutcomeFailed))
		o.observer.BuildFinished(ctx, report)
		return report, err
	}

	report.Outcome = OutcomeSuccess
	o.recorder.IncBuildOutcome(string(OutcomeSuccess))
	o.logger.Info("Documentation build completed",
		logfields.BuildID(report.BuildID),
		logfields.Path(report.XMLDir),
		logfields.Elapsed(report.Duration()))
	o.observer.BuildFinished(ctx, report)
	return report, nil
}

// lookupRevision is best effort: sources outside a repository are common.
func (o *Orchestrator) lookupRevision(root string) *git.Revision {
	if o.revision == nil {
		return nil
	}
	rev, err := o.revision(root)
	if err != nil {
		o.logger.Debug("Source revision unavailable", logfields.Path(root), logfields.Error(err))
		return nil
	}
	return &rev
}

// stepFunc performs one step and returns a record of what it ran.
type stepFunc func(ctx context.Context, r *run) (StepRecord, error)

// step adapts a stepFunc to the Result chain and handles timing, metrics,
// logging and observer notification uniformly.
func (o *Orchestrator) step(ctx context.Context, name string, fn stepFunc) func(*run) foundation.Result[*run, error] {
	return func(r *run) foundation.Result[*run, error] {
		begin := o.now()
		rec, err := fn(ctx, r)
		rec.Step = name
		rec.Duration = o.now().Sub(begin)
		o.recorder.ObserveStepDuration(name, rec.Duration)

		if err != nil {
			rec.Error = err.Error()
			r.report.Steps = append(r.report.Steps, rec)
			o.recorder.IncStepResult(name, metrics.ResultFailure)
			o.logStepFailure(r.report, rec, err)
			o.observer.StepFinished(ctx, r.report, rec)
			return foundation.Err[*run, error](err)
		}

		r.report.Steps = append(r.report.Steps, rec)
		o.recorder.IncStepResult(name, metrics.ResultSuccess)
		o.logger.Debug("Step completed",
			logfields.BuildID(r.report.BuildID),
			logfields.Step(name),
			logfields.Elapsed(rec.Duration))
		o.observer.StepFinished(ctx, r.report, rec)
		return foundation.Ok[*run, error](r)
	}
}

func (o *Orchestrator) logStepFailure(report *Report, rec StepRecord, err error) {
	attrs := []any{
		logfields.BuildID(report.BuildID),
		logfields.Step(rec.Step),
		logfields.Error(err),
	}
	if rec.Command != "" {
		attrs = append(attrs, logfields.Command(rec.Command), logfields.Args(rec.Args), logfields.ExitCode(rec.ExitCode))
	}
	o.logger.Error("Documentation build step failed", attrs...)
}
