package docbuild

import (
	"context"
	"errors"
	"fmt"
	"io/fs"
	"os"
	"path/filepath"

	"git.home.luguber.info/inful/doxybridge/internal/config"
	ferrors "git.home.luguber.info/inful/doxybridge/internal/foundation/errors"
	"git.home.luguber.info/inful/doxybridge/internal/logfields"
)

const (
	stepPreflight       = string(ferrors.StepPreflight)
	stepCreateDirectory = string(ferrors.StepCreateDirectory)
	stepConfigure       = string(ferrors.StepConfigure)
	stepBuild           = string(ferrors.StepBuild)
	stepVerifyOutput    = string(ferrors.StepVerifyOutput)
)

// outputTailBytes bounds the command output attached to a failure.
const outputTailBytes = 4096

// indexFile is always emitted by Doxygen's XML generator.
const indexFile = "index.xml"

func (o *Orchestrator) preflight(ctx context.Context, r *run) (StepRecord, error) {
	paths, err := r.req.resolve(o.getwd)
	if err != nil {
		return StepRecord{}, ferrors.BuildFailure(ferrors.StepPreflight, "resolve build paths").
			WithCause(err).
			Build()
	}
	r.paths = paths
	r.report.BuildDir = paths.buildDir
	r.report.ProjectRoot = paths.projectRoot
	r.report.XMLDir = paths.xmlDir

	for _, tool := range []string{r.req.ConfigureCommand, r.req.BuildCommand} {
		path, err := o.runner.LookPath(tool)
		if err != nil {
			return StepRecord{}, ferrors.BuildFailure(ferrors.StepPreflight, fmt.Sprintf("required tool %q not found", tool)).
				WithCause(err).
				WithContext(ferrors.ContextCommand, tool).
				Build()
		}
		r.report.Tools[tool] = ToolInfo{Path: path, Version: o.toolVersion(ctx, path)}
	}
	// The doxygen binary is driven by the build target; record it when present.
	if path, err := o.runner.LookPath("doxygen"); err == nil {
		r.report.Tools["doxygen"] = ToolInfo{Path: path, Version: o.toolVersion(ctx, path)}
	}
	return StepRecord{}, nil
}

func (o *Orchestrator) toolVersion(ctx context.Context, path string) string {
	if reporter, ok := o.runner.(VersionReporter); ok {
		return reporter.Version(ctx, path)
	}
	return ""
}

func (o *Orchestrator) createDirectory(_ context.Context, r *run) (StepRecord, error) {
	dir := r.paths.buildDir
	rec := StepRecord{Dir: dir}

	// Only the leaf is created; a missing parent is a failure.
	err := os.Mkdir(dir, 0o750)
	if err == nil {
		return rec, nil
	}
	if errors.Is(err, fs.ErrExist) && r.req.DirPolicy == config.DirectoryPolicyReuse {
		if info, statErr := os.Stat(dir); statErr == nil && info.IsDir() {
			o.logger.Info("Reusing existing build directory", logfields.BuildDir(dir))
			return rec, nil
		}
	}
	msg := "create build directory"
	if errors.Is(err, fs.ErrExist) {
		msg = "build directory already exists"
	}
	return rec, ferrors.BuildFailure(ferrors.StepCreateDirectory, msg).
		WithCause(err).
		Build()
}

func (o *Orchestrator) configure(ctx context.Context, r *run) (StepRecord, error) {
	args := append([]string{r.paths.projectRoot}, r.req.ConfigureFlags...)
	return o.exec(ctx, r, ferrors.StepConfigure, Command{
		Name: r.req.ConfigureCommand,
		Args: args,
		Dir:  r.paths.buildDir,
	})
}

func (o *Orchestrator) build(ctx context.Context, r *run) (StepRecord, error) {
	return o.exec(ctx, r, ferrors.StepBuild, Command{
		Name: r.req.BuildCommand,
		Args: []string{r.req.Target},
		Dir:  r.paths.buildDir,
	})
}

func (o *Orchestrator) exec(ctx context.Context, r *run, step ferrors.Step, cmd Command) (StepRecord, error) {
	rec := StepRecord{Command: cmd.Name, Args: cmd.Args, Dir: cmd.Dir}
	o.logger.Info("Running command",
		logfields.BuildID(r.report.BuildID),
		logfields.Step(string(step)),
		logfields.Command(cmd.String()))

	res, err := o.runner.Run(ctx, cmd)
	rec.ExitCode = res.ExitCode
	if err == nil && res.ExitCode == 0 {
		return rec, nil
	}

	if err == nil {
		err = fmt.Errorf("exit status %d", res.ExitCode)
	}
	rec.Output = tail(res.Output, outputTailBytes)
	return rec, ferrors.BuildFailure(step, fmt.Sprintf("%s command failed", step)).
		WithCause(err).
		WithContext(ferrors.ContextCommand, cmd.String()).
		WithContext(ferrors.ContextExitCode, res.ExitCode).
		WithContext(ferrors.ContextOutput, rec.Output).
		Build()
}

func (o *Orchestrator) verifyOutput(_ context.Context, r *run) (StepRecord, error) {
	rec := StepRecord{Dir: r.paths.xmlDir}
	if r.req.SkipVerify {
		return rec, nil
	}

	info, err := os.Stat(r.paths.xmlDir)
	if err != nil || !info.IsDir() {
		if err == nil {
			err = fmt.Errorf("%s is not a directory", r.paths.xmlDir)
		}
		return rec, ferrors.BuildFailure(ferrors.StepVerifyOutput, "documentation tree missing after build").
			WithCause(err).
			WithContext("xml_dir", r.paths.xmlDir).
			Build()
	}
	if _, err := os.Stat(filepath.Join(r.paths.xmlDir, indexFile)); err != nil {
		return rec, ferrors.BuildFailure(ferrors.StepVerifyOutput, "documentation tree has no "+indexFile).
			WithCause(err).
			WithContext("xml_dir", r.paths.xmlDir).
			Build()
	}
	return rec, nil
}
