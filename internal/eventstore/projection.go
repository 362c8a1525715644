package eventstore

import (
	"context"
	"encoding/json"
	"sort"
	"time"
)

const (
	StatusRunning = "running"
	StatusSkipped = "skipped"
)

// BuildSummary is a read model summarizing one recorded build.
type BuildSummary struct {
	BuildID     string        `json:"build_id"`
	Project     string        `json:"project,omitempty"`
	Status      string        `json:"status"` // running, skipped, success, failed
	StartedAt   time.Time     `json:"started_at"`
	CompletedAt *time.Time    `json:"completed_at,omitempty"`
	Duration    time.Duration `json:"duration,omitempty"`
	Steps       int           `json:"steps"`
	FailedStep  string        `json:"failed_step,omitempty"`
	Error       string        `json:"error,omitempty"`
	XMLDir      string        `json:"xml_dir,omitempty"`
	Revision    string        `json:"revision,omitempty"`
}

// Summarize folds events into per-build summaries, newest first.
// Events with malformed payloads still count toward their build's timeline.
func Summarize(events []Event) []*BuildSummary {
	builds := make(map[string]*BuildSummary)
	summaryFor := func(e Event) *BuildSummary {
		s, ok := builds[e.BuildID()]
		if !ok {
			s = &BuildSummary{BuildID: e.BuildID(), Status: StatusRunning, StartedAt: e.Timestamp()}
			builds[e.BuildID()] = s
		}
		return s
	}

	for _, e := range events {
		s := summaryFor(e)
		switch e.Type() {
		case TypeBuildStarted:
			var p BuildStartedPayload
			if json.Unmarshal(e.Payload(), &p) == nil {
				s.Project = p.Project
				s.Revision = p.Revision
			}
			s.StartedAt = e.Timestamp()
		case TypeStepCompleted:
			s.Steps++
		case TypeStepFailed:
			s.Steps++
			var p StepPayload
			if json.Unmarshal(e.Payload(), &p) == nil {
				s.FailedStep = p.Step
				s.Error = p.Error
			}
		case TypeBuildSkipped:
			s.Status = StatusSkipped
			complete(s, e.Timestamp())
		case TypeBuildFinished:
			var p BuildFinishedPayload
			if json.Unmarshal(e.Payload(), &p) == nil {
				s.Status = p.Outcome
				s.XMLDir = p.XMLDir
				if p.FailedStep != "" {
					s.FailedStep = p.FailedStep
				}
				if p.Error != "" {
					s.Error = p.Error
				}
			}
			complete(s, e.Timestamp())
		}
	}

	out := make([]*BuildSummary, 0, len(builds))
	for _, s := range builds {
		out = append(out, s)
	}
	sort.SliceStable(out, func(i, j int) bool {
		if out[i].StartedAt.Equal(out[j].StartedAt) {
			return out[i].BuildID > out[j].BuildID
		}
		return out[i].StartedAt.After(out[j].StartedAt)
	})
	return out
}

func complete(s *BuildSummary, at time.Time) {
	t := at
	s.CompletedAt = &t
	s.Duration = t.Sub(s.StartedAt)
}

// RecentBuilds loads every stored event and returns at most limit summaries,
// newest first. A limit <= 0 returns all builds.
func RecentBuilds(ctx context.Context, s Store, limit int) ([]*BuildSummary, error) {
	events, err := s.GetRange(ctx, time.Time{}, time.Now().Add(time.Hour))
	if err != nil {
		return nil, err
	}
	summaries := Summarize(events)
	if limit > 0 && len(summaries) > limit {
		summaries = summaries[:limit]
	}
	return summaries, nil
}
