// Package config loads and validates the doxybridge configuration file.
package config

import (
	"errors"
	"fmt"
	"io/fs"
	"os"
	"path/filepath"

	"github.com/joho/godotenv"
	"gopkg.in/yaml.v3"

	ferrors "git.home.luguber.info/inful/doxybridge/internal/foundation/errors"
)

// CurrentVersion is the only configuration schema version understood by this build.
const CurrentVersion = "1.0"

// DefaultPath is the configuration file picked up when no --config flag is given.
const DefaultPath = "doxybridge.yaml"

// Config is the root of the configuration file.
type Config struct {
	Version string        `yaml:"version"`
	Project ProjectConfig `yaml:"project"`
	Gate    GateConfig    `yaml:"gate"`
	Build   BuildConfig   `yaml:"build"`
	Output  OutputConfig  `yaml:"output"`
	History HistoryConfig `yaml:"history"`
	Metrics MetricsConfig `yaml:"metrics"`
	Logging LoggingConfig `yaml:"logging"`
}

// ProjectConfig describes the documented project.
type ProjectConfig struct {
	Name string `yaml:"name"`
	// Root is the project source directory. Relative paths resolve against the build directory.
	Root string `yaml:"root"`
	// Fallback is the location handed to the renderer when no build runs.
	Fallback string `yaml:"fallback"`
}

// BuildConfig describes the external configure and build commands.
type BuildConfig struct {
	Directory        string          `yaml:"directory"`
	DirectoryPolicy  DirectoryPolicy `yaml:"directory_policy"`
	ConfigureCommand string          `yaml:"configure_command"`
	ConfigureFlags   []string        `yaml:"configure_flags"`
	BuildCommand     string          `yaml:"build_command"`
	Target           string          `yaml:"target"`
	XMLSubdir        string          `yaml:"xml_subdir"`
	VerifyOutput     *bool           `yaml:"verify_output,omitempty"`
}

// ShouldVerify reports whether the XML tree is checked after the build (default true).
func (b BuildConfig) ShouldVerify() bool {
	return b.VerifyOutput == nil || *b.VerifyOutput
}

// XMLDir is the documentation tree location relative to the working directory.
func (b BuildConfig) XMLDir() string {
	return filepath.Join(b.Directory, b.XMLSubdir)
}

// OutputConfig controls the artifacts written after a run.
type OutputConfig struct {
	MappingFile   string        `yaml:"mapping_file"`
	MappingFormat MappingFormat `yaml:"mapping_format"`
	Report        *bool         `yaml:"report,omitempty"`
}

// WriteReport reports whether the JSON build report is written (default true).
func (o OutputConfig) WriteReport() bool {
	return o.Report == nil || *o.Report
}

// HistoryConfig points at the optional SQLite build-history database.
type HistoryConfig struct {
	Database string `yaml:"database"`
}

// MetricsConfig points at the optional Prometheus textfile.
type MetricsConfig struct {
	Textfile string `yaml:"textfile"`
}

// Resolve loads path when given; otherwise it loads DefaultPath if present and
// falls back to built-in defaults.
func Resolve(path string) (*Config, error) {
	if path != "" {
		return Load(path)
	}
	if _, err := os.Stat(DefaultPath); err == nil {
		return Load(DefaultPath)
	}
	loadEnvFiles()
	return Default(), nil
}

// Load reads, expands, normalizes, defaults and validates a configuration file.
func Load(path string) (*Config, error) {
	loadEnvFiles()

	data, err := os.ReadFile(path)
	if err != nil {
		if errors.Is(err, fs.ErrNotExist) {
			return nil, ferrors.ConfigError(fmt.Sprintf("configuration file not found: %s", path)).Build()
		}
		return nil, ferrors.WrapError(err, ferrors.CategoryConfig, "failed to read config file").Fatal().Build()
	}

	var cfg Config
	if err := yaml.Unmarshal([]byte(os.ExpandEnv(string(data))), &cfg); err != nil {
		return nil, ferrors.WrapError(err, ferrors.CategoryConfig, "failed to unmarshal config").Fatal().Build()
	}

	if cfg.Version != "" && cfg.Version != CurrentVersion {
		return nil, ferrors.ConfigError(fmt.Sprintf("unsupported configuration version: %s (expected %s)", cfg.Version, CurrentVersion)).Build()
	}

	if err := normalize(&cfg); err != nil {
		return nil, err
	}
	applyDefaults(&cfg)
	if err := Validate(&cfg); err != nil {
		return nil, err
	}
	return &cfg, nil
}

// loadEnvFiles loads .env and .env.local when present. Existing process
// environment variables are never overwritten.
func loadEnvFiles() {
	var present []string
	for _, name := range []string{".env", ".env.local"} {
		if _, err := os.Stat(name); err == nil {
			present = append(present, name)
		}
	}
	if len(present) == 0 {
		return
	}
	if err := godotenv.Load(present...); err != nil {
		fmt.Fprintf(os.Stderr, "Note: environment file could not be loaded: %v\n", err)
	}
}

// Init writes an example configuration file.
func Init(path string, force bool) error {
	if _, err := os.Stat(path); err == nil && !force {
		return ferrors.ValidationError(fmt.Sprintf("configuration file already exists: %s (use --force to overwrite)", path)).Build()
	}

	// Spell out the optional switches so the example shows them.
	cfg := Default()
	verify, report := true, true
	cfg.Build.VerifyOutput = &verify
	cfg.Output.Report = &report

	data, err := yaml.Marshal(cfg)
	if err != nil {
		return ferrors.WrapError(err, ferrors.CategoryInternal, "marshal example config").Build()
	}
	header := "# doxybridge configuration\n# Values may reference environment variables as ${NAME}.\n"
	if dir := filepath.Dir(path); dir != "." {
		if err := os.MkdirAll(dir, 0o750); err != nil {
			return ferrors.WrapError(err, ferrors.CategoryFileSystem, "create config directory").Build()
		}
	}
	if err := os.WriteFile(path, append([]byte(header), data...), 0o600); err != nil {
		return ferrors.WrapError(err, ferrors.CategoryFileSystem, "write config file").Build()
	}
	return nil
}
