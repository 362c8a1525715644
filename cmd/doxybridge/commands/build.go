package commands

import (
	"fmt"
	"time"

	"git.home.luguber.info/inful/doxybridge/internal/config"
	"git.home.luguber.info/inful/doxybridge/internal/docbuild"
)

// BuildCmd implements the 'build' command.
type BuildCmd struct {
	Force    bool   `short:"f" help:"Build even when the gate environment variable is not set"`
	BuildDir string `name:"build-dir" help:"Override build.directory"`
	ReuseDir bool   `name:"reuse-dir" help:"Accept an existing build directory (build.directory_policy=reuse)"`
}

func (b *BuildCmd) Run(g *Global, root *CLI) error {
	cfg, err := root.LoadConfig(g)
	if err != nil {
		return err
	}
	if err := b.apply(cfg); err != nil {
		return err
	}

	report, err := runPipeline(g.context(), cfg, b.Force, g.logger())
	if err != nil {
		return err
	}
	printSummary(report)
	return nil
}

// apply layers the flag overrides onto cfg and validates the result.
func (b *BuildCmd) apply(cfg *config.Config) error {
	if b.BuildDir != "" {
		cfg.Build.Directory = b.BuildDir
	}
	if b.ReuseDir {
		cfg.Build.DirectoryPolicy = config.DirectoryPolicyReuse
	}
	return config.Validate(cfg)
}

func printSummary(r *docbuild.Report) {
	switch r.Outcome {
	case docbuild.OutcomeSkipped:
		fmt.Println("Documentation build skipped (gate closed)")
	default:
		fmt.Printf("Documentation built in %s: %s\n", r.Duration().Round(time.Millisecond), r.XMLDir)
	}
}
