package docbuild

import (
	"path/filepath"
	"slices"

	"git.home.luguber.info/inful/doxybridge/internal/config"
)

// Request fully describes one documentation build.
type Request struct {
	// Project is the renderer project name the XML tree belongs to.
	Project string
	// BuildDir is the scratch directory. Relative paths resolve against BaseDir.
	BuildDir string
	// BaseDir anchors relative paths. Empty means the process working directory.
	BaseDir string
	// ProjectRoot is the source tree handed to the configure command.
	// Relative paths resolve against the build directory.
	ProjectRoot      string
	DirPolicy        config.DirectoryPolicy
	ConfigureCommand string
	ConfigureFlags   []string
	BuildCommand     string
	Target           string
	XMLSubdir        string
	SkipVerify       bool
}

// DefaultRequest returns the request for buildDir with every other field defaulted.
func DefaultRequest(buildDir string) Request {
	cfg := config.Default()
	cfg.Build.Directory = buildDir
	return RequestFromConfig(cfg)
}

// RequestFromConfig maps a loaded configuration onto a Request.
func RequestFromConfig(cfg *config.Config) Request {
	b := cfg.Build
	return Request{
		Project:          cfg.Project.Name,
		BuildDir:         b.Directory,
		ProjectRoot:      cfg.Project.Root,
		DirPolicy:        b.DirectoryPolicy,
		ConfigureCommand: b.ConfigureCommand,
		ConfigureFlags:   slices.Clone(b.ConfigureFlags),
		BuildCommand:     b.BuildCommand,
		Target:           b.Target,
		XMLSubdir:        b.XMLSubdir,
		SkipVerify:       !b.ShouldVerify(),
	}
}

// XMLDir is the documentation tree path as handed to the renderer
// (relative when BuildDir is relative).
func (r Request) XMLDir() string {
	return filepath.Join(r.BuildDir, r.XMLSubdir)
}

// resolvedPaths holds the absolute locations a run works with.
type resolvedPaths struct {
	buildDir    string
	projectRoot string
	xmlDir      string
}

func (r Request) resolve(getwd func() (string, error)) (resolvedPaths, error) {
	base := r.BaseDir
	if base == "" {
		wd, err := getwd()
		if err != nil {
			return resolvedPaths{}, err
		}
		base = wd
	}
	buildDir := r.BuildDir
	if !filepath.IsAbs(buildDir) {
		buildDir = filepath.Join(base, buildDir)
	}
	root := r.ProjectRoot
	if !filepath.IsAbs(root) {
		root = filepath.Join(buildDir, root)
	}
	return resolvedPaths{
		buildDir:    filepath.Clean(buildDir),
		projectRoot: filepath.Clean(root),
		xmlDir:      filepath.Join(buildDir, r.XMLSubdir),
	}, nil
}
