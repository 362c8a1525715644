package errors

import (
	"bytes"
	stderrors "errors"
	"fmt"
	"log/slog"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestBuilderProducesClassifiedError(t *testing.T) {
	cause := stderrors.New("exit status 1")
	err := BuildFailure(StepConfigure, "configure command failed").
		WithCause(cause).
		WithContext(ContextExitCode, 1).
		WithContext(ContextCommand, "cmake").
		Build()

	assert.Equal(t, CategoryBuild, err.Category())
	assert.True(t, err.IsFatal())
	assert.Equal(t, RetryNever, err.RetryStrategy())
	assert.ErrorIs(t, err, cause)
	assert.Equal(t, "[build:fatal] configure command failed: exit status 1", err.Error())

	cmd, ok := err.Context().GetString(ContextCommand)
	require.True(t, ok)
	assert.Equal(t, "cmake", cmd)
}

func TestStepAndExitCodeSurviveWrapping(t *testing.T) {
	base := BuildFailure(StepBuild, "build command failed").
		WithContext(ContextExitCode, 2).
		Build()
	wrapped := fmt.Errorf("doc build: %w", base)

	require.True(t, IsBuildFailure(wrapped))
	step, ok := StepOf(wrapped)
	require.True(t, ok)
	assert.Equal(t, StepBuild, step)

	code, ok := ExitCodeOf(wrapped)
	require.True(t, ok)
	assert.Equal(t, 2, code)

	_, ok = StepOf(ConfigError("bad").Build())
	assert.False(t, ok)
	assert.False(t, IsBuildFailure(stderrors.New("plain")))
}

func TestIsMatchesCategoryAndMessage(t *testing.T) {
	sentinel := HistoryError("failed to append event").Build()
	err := fmt.Errorf("record: %w", HistoryError("failed to append event").WithCause(stderrors.New("disk full")).Build())

	assert.ErrorIs(t, err, sentinel)
	assert.NotErrorIs(t, err, HistoryError("other").Build())
}

func TestErrorContextMerge(t *testing.T) {
	var empty ErrorContext
	merged := empty.Merge(ErrorContext{"a": 1})
	assert.Equal(t, 1, merged["a"])

	left := ErrorContext{"a": 1, "b": 2}
	merged = left.Merge(ErrorContext{"b": 3})
	assert.Equal(t, ErrorContext{"a": 1, "b": 3}, merged)
	assert.Equal(t, 2, left["b"], "receiver must not be modified")
}

func TestCLIErrorAdapter_ExitCodeFor(t *testing.T) {
	adapter := NewCLIErrorAdapter(false, slog.Default())

	tests := []struct {
		name     string
		err      error
		expected int
	}{
		{"nil error", nil, 0},
		{"validation", ValidationError("bad flag").Build(), 2},
		{"config", ConfigError("bad config").Build(), 7},
		{"build failure", BuildFailure(StepConfigure, "configure failed").Build(), 11},
		{"wrapped build failure", fmt.Errorf("run: %w", BuildFailure(StepBuild, "x").Build()), 11},
		{"filesystem", FileSystemError("write").Build(), 11},
		{"history", HistoryError("open").Build(), 12},
		{"internal", InternalError("boom").Build(), 10},
		{"unclassified", stderrors.New("unknown error"), 1},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Equal(t, tt.expected, adapter.ExitCodeFor(tt.err))
		})
	}
}

func TestCLIErrorAdapter_FormatError(t *testing.T) {
	quiet := NewCLIErrorAdapter(false, slog.Default())
	verbose := NewCLIErrorAdapter(true, slog.Default())
	internal := InternalError("internal issue").Build()

	assert.Empty(t, quiet.FormatError(nil))
	assert.Equal(t, "Internal error occurred (use -v for details)", quiet.FormatError(internal))
	assert.Contains(t, verbose.FormatError(internal), "internal issue")
	assert.Contains(t, quiet.FormatError(ConfigError("bad config").Build()), "bad config")
	assert.Equal(t, "Error: unknown error", quiet.FormatError(stderrors.New("unknown error")))
}

func TestCLIErrorAdapter_HandleError(t *testing.T) {
	var logs, stderr bytes.Buffer
	adapter := NewCLIErrorAdapter(false, slog.New(slog.NewTextHandler(&logs, nil)))
	adapter.stderr = &stderr
	exitCode := -1
	adapter.exit = func(code int) { exitCode = code }

	adapter.HandleError(BuildFailure(StepConfigure, "configure command failed").Build())

	assert.Equal(t, 11, exitCode)
	assert.Contains(t, stderr.String(), "configure command failed")
	assert.Contains(t, logs.String(), "step=configure")

	exitCode = -1
	adapter.HandleError(nil)
	assert.Equal(t, -1, exitCode)
}
