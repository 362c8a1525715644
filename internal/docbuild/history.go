package docbuild

import (
	"context"
	"log/slog"

	"git.home.luguber.info/inful/doxybridge/internal/eventstore"
	"git.home.luguber.info/inful/doxybridge/internal/logfields"
)

// HistoryObserver appends build progress to an event store. Write failures are
// logged and never fail the build.
type HistoryObserver struct {
	store    eventstore.Store
	logger   *slog.Logger
	fallback string
}

// NewHistoryObserver records into store. fallback is the documentation
// location recorded for skipped builds.
func NewHistoryObserver(store eventstore.Store, logger *slog.Logger, fallback string) *HistoryObserver {
	if logger == nil {
		logger = slog.Default()
	}
	return &HistoryObserver{store: store, logger: logger, fallback: fallback}
}

func (h *HistoryObserver) BuildStarted(ctx context.Context, r *Report) {
	payload := eventstore.BuildStartedPayload{
		Project:     r.Project,
		BuildDir:    r.BuildDir,
		ProjectRoot: r.ProjectRoot,
	}
	if r.Revision != nil {
		payload.Revision = r.Revision.Commit
	}
	h.append(ctx, r.BuildID)(eventstore.NewBuildStarted(r.BuildID, payload))
}

func (h *HistoryObserver) StepFinished(ctx context.Context, r *Report, step StepRecord) {
	payload := eventstore.StepPayload{
		Step:       step.Step,
		Command:    step.Command,
		Args:       step.Args,
		ExitCode:   step.ExitCode,
		DurationMS: step.Duration.Milliseconds(),
		Error:      step.Error,
	}
	if step.Failed() {
		h.append(ctx, r.BuildID)(eventstore.NewStepFailed(r.BuildID, payload))
		return
	}
	h.append(ctx, r.BuildID)(eventstore.NewStepCompleted(r.BuildID, payload))
}

func (h *HistoryObserver) BuildFinished(ctx context.Context, r *Report) {
	payload := eventstore.BuildFinishedPayload{
		Outcome:    string(r.Outcome),
		DurationMS: r.Duration().Milliseconds(),
		Error:      r.Error,
	}
	if r.Built() {
		payload.XMLDir = r.XMLDir
	}
	if step, ok := r.FailedStep(); ok {
		payload.FailedStep = step.Step
	}
	h.append(ctx, r.BuildID)(eventstore.NewBuildFinished(r.BuildID, payload))
}

func (h *HistoryObserver) BuildSkipped(ctx context.Context, r *Report) {
	h.append(ctx, r.BuildID)(eventstore.NewBuildSkipped(r.BuildID, eventstore.BuildSkippedPayload{
		Reason:   "gate closed",
		Location: h.fallback,
	}))
}

// append returns a sink for the (event, error) pair produced by the
// eventstore constructors.
func (h *HistoryObserver) append(ctx context.Context, buildID string) func(*eventstore.BaseEvent, error) {
	return func(e *eventstore.BaseEvent, err error) {
		if err == nil {
			err = eventstore.AppendEvent(ctx, h.store, e)
		}
		if err != nil {
			h.logger.Warn("Failed to record build history",
				logfields.BuildID(buildID),
				logfields.Error(err))
		}
	}
}
