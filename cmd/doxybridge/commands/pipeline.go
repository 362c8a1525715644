package commands

import (
	"context"
	"log/slog"
	"os"

	"github.com/prometheus/client_golang/prometheus"

	"git.home.luguber.info/inful/doxybridge/internal/breathe"
	"git.home.luguber.info/inful/doxybridge/internal/config"
	"git.home.luguber.info/inful/doxybridge/internal/docbuild"
	"git.home.luguber.info/inful/doxybridge/internal/eventstore"
	"git.home.luguber.info/inful/doxybridge/internal/logfields"
	"git.home.luguber.info/inful/doxybridge/internal/metrics"
)

// lookupEnv is swapped in tests.
var lookupEnv config.LookupFunc = os.LookupEnv

// newRunner is swapped in tests.
var newRunner = func() docbuild.Runner { return docbuild.NewExecRunner() }

// gateOpen evaluates the gate once; force bypasses it.
func gateOpen(cfg *config.Config, force bool, logger *slog.Logger) bool {
	open := force || cfg.Gate.Enabled(lookupEnv)
	logger.Debug("Gate evaluated",
		logfields.Gate(open),
		slog.String("variable", cfg.Gate.Variable),
		slog.Bool("forced", force))
	return open
}

// runPipeline runs the gated build and writes its side outputs (report,
// metrics textfile, renderer mapping). Side-output failures are logged and
// never override the build result.
func runPipeline(ctx context.Context, cfg *config.Config, force bool, logger *slog.Logger) (*docbuild.Report, error) {
	reg := prometheus.NewRegistry()
	orch := docbuild.NewOrchestrator(newRunner()).
		WithLogger(logger).
		WithRecorder(metrics.NewPrometheusRecorder(reg))

	if cfg.History.Database != "" {
		store, err := eventstore.NewSQLiteStore(cfg.History.Database)
		if err != nil {
			logger.Warn("Build history disabled", logfields.Path(cfg.History.Database), logfields.Error(err))
		} else {
			defer func() { _ = store.Close() }()
			orch.WithObserver(docbuild.NewHistoryObserver(store, logger, cfg.Project.Fallback))
		}
	}

	report, err := orch.RunGated(ctx, gateOpen(cfg, force, logger), docbuild.RequestFromConfig(cfg))

	if cfg.Output.WriteReport() && report.OwnsBuildDir() {
		if werr := report.WriteJSON(report.DefaultPath()); werr != nil {
			logger.Warn("Failed to write build report", logfields.Path(report.DefaultPath()), logfields.Error(werr))
		}
	}
	if cfg.Metrics.Textfile != "" {
		if werr := metrics.WriteTextfile(cfg.Metrics.Textfile, reg); werr != nil {
			logger.Warn("Failed to write metrics textfile", logfields.Path(cfg.Metrics.Textfile), logfields.Error(werr))
		}
	}
	if err == nil && cfg.Output.MappingFile != "" {
		mapping := breathe.Resolve(cfg, report.Built())
		if werr := breathe.Write(cfg.Output.MappingFile, mapping, cfg.Output.MappingFormat); werr != nil {
			logger.Warn("Failed to write renderer mapping", logfields.Path(cfg.Output.MappingFile), logfields.Error(werr))
		}
	}
	return report, err
}
