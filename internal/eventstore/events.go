package eventstore

import (
	"encoding/json"
	"time"

	"git.home.luguber.info/inful/doxybridge/internal/foundation/errors"
)

// Event type names.
const (
	TypeBuildStarted  = "BuildStarted"
	TypeStepCompleted = "StepCompleted"
	TypeStepFailed    = "StepFailed"
	TypeBuildSkipped  = "BuildSkipped"
	TypeBuildFinished = "BuildFinished"
)

// BuildStartedPayload describes the build about to run.
type BuildStartedPayload struct {
	Project     string `json:"project"`
	BuildDir    string `json:"build_dir"`
	ProjectRoot string `json:"project_root"`
	Revision    string `json:"revision,omitempty"`
}

// StepPayload describes one finished step, successful or not.
type StepPayload struct {
	Step       string   `json:"step"`
	Command    string   `json:"command,omitempty"`
	Args       []string `json:"args,omitempty"`
	ExitCode   int      `json:"exit_code"`
	DurationMS int64    `json:"duration_ms"`
	Error      string   `json:"error,omitempty"`
}

// BuildSkippedPayload records why no build ran.
type BuildSkippedPayload struct {
	Reason   string `json:"reason"`
	Location string `json:"location"`
}

// BuildFinishedPayload records the final outcome.
type BuildFinishedPayload struct {
	Outcome    string `json:"outcome"`
	DurationMS int64  `json:"duration_ms"`
	XMLDir     string `json:"xml_dir,omitempty"`
	FailedStep string `json:"failed_step,omitempty"`
	Error      string `json:"error,omitempty"`
}

func newEvent(buildID, eventType string, payload any) (*BaseEvent, error) {
	data, err := json.Marshal(payload)
	if err != nil {
		return nil, errors.HistoryError("failed to marshal "+eventType+" payload").
			WithCause(err).
			WithContext("build_id", buildID).
			Build()
	}
	return &BaseEvent{
		EventBuildID:   buildID,
		EventType:      eventType,
		EventTimestamp: time.Now(),
		EventPayload:   data,
	}, nil
}

// NewBuildStarted creates a BuildStarted event.
func NewBuildStarted(buildID string, p BuildStartedPayload) (*BaseEvent, error) {
	return newEvent(buildID, TypeBuildStarted, p)
}

// NewStepCompleted creates a StepCompleted event.
func NewStepCompleted(buildID string, p StepPayload) (*BaseEvent, error) {
	return newEvent(buildID, TypeStepCompleted, p)
}

// NewStepFailed creates a StepFailed event.
func NewStepFailed(buildID string, p StepPayload) (*BaseEvent, error) {
	return newEvent(buildID, TypeStepFailed, p)
}

// NewBuildSkipped creates a BuildSkipped event.
func NewBuildSkipped(buildID string, p BuildSkippedPayload) (*BaseEvent, error) {
	return newEvent(buildID, TypeBuildSkipped, p)
}

// NewBuildFinished creates a BuildFinished event.
func NewBuildFinished(buildID string, p BuildFinishedPayload) (*BaseEvent, error) {
	return newEvent(buildID, TypeBuildFinished, p)
}
