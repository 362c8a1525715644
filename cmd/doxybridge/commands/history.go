package commands

import (
	"fmt"
	"io"
	"os"
	"text/tabwriter"
	"time"

	"github.com/dustin/go-humanize"

	"git.home.luguber.info/inful/doxybridge/internal/eventstore"
	ferrors "git.home.luguber.info/inful/doxybridge/internal/foundation/errors"
)

// HistoryCmd implements the 'history' command.
type HistoryCmd struct {
	Limit    int    `short:"n" help:"Number of builds to show (0 for all)" default:"10"`
	Database string `help:"Override history.database"`
}

func (h *HistoryCmd) Run(g *Global, root *CLI) error {
	cfg, err := root.LoadConfig(g)
	if err != nil {
		return err
	}
	path := cfg.History.Database
	if h.Database != "" {
		path = h.Database
	}
	if path == "" {
		return ferrors.ConfigError("build history is disabled (set history.database)").Build()
	}
	if _, err := os.Stat(path); err != nil {
		return ferrors.HistoryError("history database not found").
			WithCause(err).
			WithContext("path", path).
			Build()
	}

	store, err := eventstore.NewSQLiteStore(path)
	if err != nil {
		return err
	}
	defer func() { _ = store.Close() }()

	builds, err := eventstore.RecentBuilds(g.context(), store, h.Limit)
	if err != nil {
		return err
	}
	return printHistory(os.Stdout, builds, time.Now())
}

func printHistory(w io.Writer, builds []*eventstore.BuildSummary, now time.Time) error {
	if len(builds) == 0 {
		_, err := fmt.Fprintln(w, "No builds recorded")
		return err
	}
	tw := tabwriter.NewWriter(w, 0, 0, 2, ' ', 0)
	_, _ = fmt.Fprintln(tw, "BUILD\tSTARTED\tSTATUS\tDURATION\tREVISION\tDETAIL")
	for _, b := range builds {
		duration := "-"
		if b.CompletedAt != nil {
			duration = b.Duration.Round(time.Millisecond).String()
		}
		detail := b.XMLDir
		if b.FailedStep != "" {
			detail = b.FailedStep + ": " + b.Error
		}
		_, _ = fmt.Fprintf(tw, "%s\t%s\t%s\t%s\t%s\t%s\n",
			shortID(b.BuildID),
			humanize.RelTime(b.StartedAt, now, "ago", "from now"),
			b.Status,
			duration,
			shortID(b.Revision),
			detail)
	}
	return tw.Flush()
}

func shortID(id string) string {
	if len(id) > 8 {
		return id[:8]
	}
	if id == "" {
		return "-"
	}
	return id
}
