package metrics

import (
	"os"
	"path/filepath"
	"testing"
	"time"

	prom "github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/testutil"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestPrometheusRecorder(t *testing.T) {
	reg := prom.NewRegistry()
	pr := NewPrometheusRecorder(reg)

	pr.ObserveStepDuration("configure", 150*time.Millisecond)
	pr.IncStepResult("configure", ResultSuccess)
	pr.IncStepResult("build", ResultFailure)
	pr.ObserveBuildDuration(2 * time.Second)
	pr.IncBuildOutcome("failed")
	pr.IncGateDecision(true)

	mfs, err := reg.Gather()
	require.NoError(t, err)
	assert.Len(t, mfs, 5)

	assert.InDelta(t, 1, testutil.ToFloat64(pr.stepResults.WithLabelValues("build", "failure")), 0)
	assert.InDelta(t, 1, testutil.ToFloat64(pr.buildOutcome.WithLabelValues("failed")), 0)
	assert.InDelta(t, 1, testutil.ToFloat64(pr.gateDecisions.WithLabelValues("true")), 0)
}

func TestWriteTextfile(t *testing.T) {
	reg := prom.NewRegistry()
	pr := NewPrometheusRecorder(reg)
	pr.IncBuildOutcome("success")

	path := filepath.Join(t.TempDir(), "textfile", "doxybridge.prom")
	require.NoError(t, WriteTextfile(path, reg))

	data, err := os.ReadFile(path)
	require.NoError(t, err)
	assert.Contains(t, string(data), `doxybridge_build_outcomes_total{outcome="success"} 1`)
}

func TestNoopRecorderSatisfiesInterface(t *testing.T) {
	var r Recorder = NoopRecorder{}
	r.ObserveStepDuration("configure", time.Second)
	r.IncStepResult("configure", ResultSkipped)
	r.ObserveBuildDuration(time.Second)
	r.IncBuildOutcome("skipped")
	r.IncGateDecision(false)
}
