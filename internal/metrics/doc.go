// Package metrics records build observability data for doxybridge.
//
// Components receive a Recorder through dependency injection. NoopRecorder is
// the default and does nothing; PrometheusRecorder registers collectors on a
// registry that can be flushed to a node-exporter textfile at the end of a run:
//
//	reg := prom.NewRegistry()
//	rec := metrics.NewPrometheusRecorder(reg)
//	orch := docbuild.NewOrchestrator(runner).WithRecorder(rec)
//	...
//	_ = metrics.WriteTextfile(path, reg)
package metrics
