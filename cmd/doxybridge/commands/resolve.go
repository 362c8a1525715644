package commands

import (
	"fmt"
	"os"

	"git.home.luguber.info/inful/doxybridge/internal/breathe"
	"git.home.luguber.info/inful/doxybridge/internal/config"
	ferrors "git.home.luguber.info/inful/doxybridge/internal/foundation/errors"
)

// ResolveCmd implements the 'resolve' command: the entry point called from
// the documentation configuration.
type ResolveCmd struct {
	BuildCmd `embed:""`

	Output string `short:"o" help:"Write the mapping to this file instead of stdout"`
	Format string `help:"Mapping format (json|yaml); defaults to output.mapping_format"`
}

func (r *ResolveCmd) Run(g *Global, root *CLI) error {
	cfg, err := root.LoadConfig(g)
	if err != nil {
		return err
	}
	if err := r.apply(cfg); err != nil {
		return err
	}

	format := cfg.Output.MappingFormat
	if r.Format != "" {
		if format = config.NormalizeMappingFormat(r.Format); format == "" {
			return ferrors.ValidationError(fmt.Sprintf("invalid --format %q (valid: json, yaml)", r.Format)).Build()
		}
	}

	report, err := runPipeline(g.context(), cfg, r.Force, g.logger())
	if err != nil {
		return err
	}

	mapping := breathe.Resolve(cfg, report.Built())
	if r.Output != "" {
		return breathe.Write(r.Output, mapping, format)
	}
	data, err := breathe.Marshal(mapping, format)
	if err != nil {
		return err
	}
	_, err = os.Stdout.Write(data)
	return err
}
