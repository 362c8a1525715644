package eventstore

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func at(e *BaseEvent, ts time.Time) Event {
	e.EventTimestamp = ts
	return e
}

func TestSummarizeFailedAndSkippedBuilds(t *testing.T) {
	t0 := time.Date(2026, 1, 2, 3, 4, 5, 0, time.UTC)

	started, err := NewBuildStarted("b1", BuildStartedPayload{Project: "ygm", BuildDir: "build-doc", Revision: "abc"})
	require.NoError(t, err)
	created, err := NewStepCompleted("b1", StepPayload{Step: "create-directory"})
	require.NoError(t, err)
	failed, err := NewStepFailed("b1", StepPayload{Step: "configure", Command: "cmake", ExitCode: 1, Error: "exit status 1"})
	require.NoError(t, err)
	finished, err := NewBuildFinished("b1", BuildFinishedPayload{Outcome: "failed", FailedStep: "configure"})
	require.NoError(t, err)
	skipped, err := NewBuildSkipped("b2", BuildSkippedPayload{Reason: "gate closed"})
	require.NoError(t, err)

	summaries := Summarize([]Event{
		at(started, t0),
		at(created, t0.Add(time.Second)),
		at(failed, t0.Add(2*time.Second)),
		at(finished, t0.Add(3*time.Second)),
		at(skipped, t0.Add(time.Minute)),
	})
	require.Len(t, summaries, 2)

	assert.Equal(t, "b2", summaries[0].BuildID, "newest first")
	assert.Equal(t, StatusSkipped, summaries[0].Status)

	b1 := summaries[1]
	assert.Equal(t, "ygm", b1.Project)
	assert.Equal(t, "abc", b1.Revision)
	assert.Equal(t, "failed", b1.Status)
	assert.Equal(t, 2, b1.Steps)
	assert.Equal(t, "configure", b1.FailedStep)
	assert.Equal(t, "exit status 1", b1.Error)
	assert.Equal(t, 3*time.Second, b1.Duration)
	require.NotNil(t, b1.CompletedAt)
}

func TestSummarizeRunningBuild(t *testing.T) {
	started, err := NewBuildStarted("b1", BuildStartedPayload{Project: "ygm"})
	require.NoError(t, err)

	summaries := Summarize([]Event{started})
	require.Len(t, summaries, 1)
	assert.Equal(t, StatusRunning, summaries[0].Status)
	assert.Nil(t, summaries[0].CompletedAt)
}

func TestRecentBuildsLimit(t *testing.T) {
	store := newMemoryStore(t)
	ctx := t.Context()
	for _, id := range []string{"b1", "b2", "b3"} {
		e, err := NewBuildSkipped(id, BuildSkippedPayload{Reason: "gate closed"})
		require.NoError(t, err)
		require.NoError(t, AppendEvent(ctx, store, e))
	}

	all, err := RecentBuilds(ctx, store, 0)
	require.NoError(t, err)
	assert.Len(t, all, 3)

	limited, err := RecentBuilds(ctx, store, 2)
	require.NoError(t, err)
	assert.Len(t, limited, 2)
}
