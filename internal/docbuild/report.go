package docbuild

import (
	"encoding/json"
	"fmt"
	"os"
	"path/filepath"
	"time"

	"git.home.luguber.info/inful/doxybridge/internal/git"
)

// ReportFileName is written inside the build directory.
const ReportFileName = "doxybridge-report.json"

// Outcome is the final state of a run.
type Outcome string

const (
	OutcomeSuccess Outcome = "success"
	OutcomeFailed  Outcome = "failed"
	OutcomeSkipped Outcome = "skipped"
)

// StepRecord captures one executed step.
type StepRecord struct {
	Step     string        `json:"step"`
	Command  string        `json:"command,omitempty"`
	Args     []string      `json:"args,omitempty"`
	Dir      string        `json:"dir,omitempty"`
	ExitCode int           `json:"exit_code"`
	Duration time.Duration `json:"duration_ns"`
	Error    string        `json:"error,omitempty"`
	// Output holds the tail of a failed command's output.
	Output string `json:"output,omitempty"`
}

// Failed reports whether the step ended the run.
func (s StepRecord) Failed() bool {
	return s.Error != ""
}

// ToolInfo records a located executable.
type ToolInfo struct {
	Path    string `json:"path"`
	Version string `json:"version,omitempty"`
}

// Report summarizes a run. It is returned for every run, including failed and
// skipped ones.
type Report struct {
	BuildID     string              `json:"build_id"`
	Project     string              `json:"project"`
	Gate        bool                `json:"gate"`
	Outcome     Outcome             `json:"outcome"`
	StartedAt   time.Time           `json:"started_at"`
	FinishedAt  time.Time           `json:"finished_at"`
	BuildDir    string              `json:"build_dir"`
	ProjectRoot string              `json:"project_root,omitempty"`
	XMLDir      string              `json:"xml_dir"`
	Steps       []StepRecord        `json:"steps"`
	Tools       map[string]ToolInfo `json:"tools,omitempty"`
	Revision    *git.Revision       `json:"revision,omitempty"`
	Error       string              `json:"error,omitempty"`
}

// Duration is the wall time of the run.
func (r *Report) Duration() time.Duration {
	if r.FinishedAt.IsZero() {
		return 0
	}
	return r.FinishedAt.Sub(r.StartedAt)
}

// Built reports whether the XML tree was produced by this run.
func (r *Report) Built() bool {
	return r.Outcome == OutcomeSuccess
}

// FailedStep returns the step that ended a failed run.
func (r *Report) FailedStep() (StepRecord, bool) {
	for _, s := range r.Steps {
		if s.Failed() {
			return s, true
		}
	}
	return StepRecord{}, false
}

// StepNames lists executed steps in order.
func (r *Report) StepNames() []string {
	names := make([]string, 0, len(r.Steps))
	for _, s := range r.Steps {
		names = append(names, s.Step)
	}
	return names
}

// WriteJSON writes the report to path. Parent directories are not created, so
// a report never brings a missing build directory into existence.
func (r *Report) WriteJSON(path string) error {
	data, err := json.MarshalIndent(r, "", "  ")
	if err != nil {
		return fmt.Errorf("marshal report: %w", err)
	}
	if err := os.WriteFile(path, append(data, '\n'), 0o600); err != nil {
		return fmt.Errorf("write report: %w", err)
	}
	return nil
}

// DefaultPath is where the report of a run is written.
func (r *Report) DefaultPath() string {
	return filepath.Join(r.BuildDir, ReportFileName)
}

// ReadReport loads a report written by WriteJSON.
func ReadReport(path string) (*Report, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, err
	}
	var r Report
	if err := json.Unmarshal(data, &r); err != nil {
		return nil, fmt.Errorf("parse report %s: %w", path, err)
	}
	return &r, nil
}

// OwnsBuildDir reports whether this run created or claimed the build
// directory, so that writing into it cannot clobber another run's files.
func (r *Report) OwnsBuildDir() bool {
	for _, s := range r.Steps {
		if s.Step == stepCreateDirectory {
			return !s.Failed()
		}
	}
	return false
}
