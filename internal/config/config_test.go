package config

import (
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	ferrors "git.home.luguber.info/inful/doxybridge/internal/foundation/errors"
)

func writeConfig(t *testing.T, content string) string {
	t.Helper()
	path := filepath.Join(t.TempDir(), "doxybridge.yaml")
	require.NoError(t, os.WriteFile(path, []byte(content), 0o600))
	return path
}

func TestDefaultMirrorsObservedBuild(t *testing.T) {
	cfg := Default()

	assert.Equal(t, CurrentVersion, cfg.Version)
	assert.Equal(t, "ygm", cfg.Project.Name)
	assert.Equal(t, "../../../", cfg.Project.Root)
	assert.Equal(t, "https://github.com/LLNL/ygm", cfg.Project.Fallback)
	assert.Equal(t, GateConfig{Variable: "READTHEDOCS", Value: "True"}, cfg.Gate)
	assert.Equal(t, "build-doc", cfg.Build.Directory)
	assert.Equal(t, DirectoryPolicyStrict, cfg.Build.DirectoryPolicy)
	assert.Equal(t, "cmake", cfg.Build.ConfigureCommand)
	assert.Equal(t, []string{"-DYGM_RTD_ONLY=ON"}, cfg.Build.ConfigureFlags)
	assert.Equal(t, "make", cfg.Build.BuildCommand)
	assert.Equal(t, "doxygen", cfg.Build.Target)
	assert.Equal(t, filepath.Join("build-doc", "docs", "xml"), cfg.Build.XMLDir())
	assert.True(t, cfg.Build.ShouldVerify())
	assert.True(t, cfg.Output.WriteReport())
	assert.NoError(t, Validate(cfg))
}

func TestLoadAppliesOverridesAndNormalizes(t *testing.T) {
	t.Setenv("DOXYBRIDGE_TEST_ROOT", "/src/project")
	path := writeConfig(t, `version: "1.0"
project:
  name: mylib
  root: ${DOXYBRIDGE_TEST_ROOT}
gate:
  variable: CI_DOCS
  value: "yes"
build:
  directory: out/doc
  directory_policy: " Reuse "
  configure_flags: []
  target: docs
  verify_output: false
output:
  mapping_format: YML
logging:
  level: WARNING
  format: JSON
`)

	cfg, err := Load(path)
	require.NoError(t, err)

	assert.Equal(t, "mylib", cfg.Project.Name)
	assert.Equal(t, "/src/project", cfg.Project.Root)
	assert.Equal(t, GateConfig{Variable: "CI_DOCS", Value: "yes"}, cfg.Gate)
	assert.Equal(t, DirectoryPolicyReuse, cfg.Build.DirectoryPolicy)
	assert.Empty(t, cfg.Build.ConfigureFlags, "explicit empty list disables the default flag")
	assert.Equal(t, "docs", cfg.Build.Target)
	assert.Equal(t, "cmake", cfg.Build.ConfigureCommand)
	assert.False(t, cfg.Build.ShouldVerify())
	assert.Equal(t, MappingFormatYAML, cfg.Output.MappingFormat)
	assert.Equal(t, LogLevelWarn, cfg.Logging.Level)
	assert.Equal(t, LogFormatJSON, cfg.Logging.Format)
}

func TestLoadErrors(t *testing.T) {
	tests := []struct {
		name    string
		content string
		want    string
	}{
		{"unsupported version", "version: \"9.9\"\n", "unsupported configuration version"},
		{"bad policy", "build:\n  directory_policy: sometimes\n", "build.directory_policy"},
		{"bad format", "output:\n  mapping_format: toml\n", "output.mapping_format"},
		{"bad log level", "logging:\n  level: loud\n", "logging.level"},
		{"absolute xml subdir", "build:\n  xml_subdir: /abs/xml\n", "xml_subdir"},
		{"escaping xml subdir", "build:\n  xml_subdir: ../xml\n", "xml_subdir"},
		{"dot build dir", "build:\n  directory: ./\n", "build.directory"},
		{"malformed yaml", "build: [\n", "unmarshal"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			_, err := Load(writeConfig(t, tt.content))
			require.Error(t, err)
			assert.Contains(t, err.Error(), tt.want)
			assert.True(t, ferrors.HasCategory(err, ferrors.CategoryConfig))
		})
	}
}

func TestLoadMissingFile(t *testing.T) {
	_, err := Load(filepath.Join(t.TempDir(), "missing.yaml"))
	require.Error(t, err)
	assert.Contains(t, err.Error(), "configuration file not found")
}

func TestResolveWithoutFileUsesDefaults(t *testing.T) {
	t.Chdir(t.TempDir())

	cfg, err := Resolve("")
	require.NoError(t, err)
	assert.Equal(t, Default(), cfg)
}

func TestResolvePicksUpDefaultPath(t *testing.T) {
	t.Chdir(t.TempDir())
	require.NoError(t, os.WriteFile(DefaultPath, []byte("build:\n  directory: from-file\n"), 0o600))

	cfg, err := Resolve("")
	require.NoError(t, err)
	assert.Equal(t, "from-file", cfg.Build.Directory)
}

func TestLoadReadsEnvFileWithoutOverriding(t *testing.T) {
	t.Chdir(t.TempDir())
	t.Setenv("DOXYBRIDGE_TEST_KEEP", "process")
	require.NoError(t, os.WriteFile(".env", []byte("DOXYBRIDGE_TEST_KEEP=file\nDOXYBRIDGE_TEST_DIR=from-env\n"), 0o600))
	t.Cleanup(func() { _ = os.Unsetenv("DOXYBRIDGE_TEST_DIR") })

	cfg, err := Load(writeConfig(t, "build:\n  directory: ${DOXYBRIDGE_TEST_DIR}\n"))
	require.NoError(t, err)
	assert.Equal(t, "from-env", cfg.Build.Directory)
	assert.Equal(t, "process", os.Getenv("DOXYBRIDGE_TEST_KEEP"))
}

func TestInit(t *testing.T) {
	path := filepath.Join(t.TempDir(), "nested", "doxybridge.yaml")

	require.NoError(t, Init(path, false))
	data, err := os.ReadFile(path)
	require.NoError(t, err)
	assert.Contains(t, string(data), "verify_output: true")
	assert.Contains(t, string(data), "report: true")

	cfg, err := Load(path)
	require.NoError(t, err)
	require.NotNil(t, cfg.Build.VerifyOutput)
	require.NotNil(t, cfg.Output.Report)
	assert.True(t, cfg.Build.ShouldVerify())
	assert.True(t, cfg.Output.WriteReport())
	cfg.Build.VerifyOutput, cfg.Output.Report = nil, nil
	assert.Equal(t, Default(), cfg)

	err = Init(path, false)
	require.Error(t, err)
	assert.Contains(t, err.Error(), "already exists")
	assert.NoError(t, Init(path, true))
}
