package docbuild

import (
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	ferrors "git.home.luguber.info/inful/doxybridge/internal/foundation/errors"
)

const fakeMake = `#!/bin/sh
if [ "$1" = "--version" ]; then echo "GNU Make 4.3"; exit 0; fi
touch make.ran
mkdir -p docs/xml
echo '<doxygenindex/>' > docs/xml/index.xml
`

func fakeCMake(exit int) string {
	script := `#!/bin/sh
if [ "$1" = "--version" ]; then echo "cmake version 3.28.3"; exit 0; fi
echo "$@" > cmake.args
`
	if exit != 0 {
		script += "echo 'CMake Error: The source directory does not appear to contain CMakeLists.txt.' >&2\nexit 1\n"
	}
	return script
}

// installTools puts executable cmake and make scripts first on PATH.
func installTools(t *testing.T, cmake string) {
	t.Helper()
	requireShell(t)
	bin := t.TempDir()
	require.NoError(t, os.WriteFile(filepath.Join(bin, "cmake"), []byte(cmake), 0o700))  // #nosec G306 -- test executable
	require.NoError(t, os.WriteFile(filepath.Join(bin, "make"), []byte(fakeMake), 0o700)) // #nosec G306 -- test executable
	t.Setenv("PATH", bin+string(os.PathListSeparator)+os.Getenv("PATH"))
}

func TestRunDocBuildWithExecRunner(t *testing.T) {
	installTools(t, fakeCMake(0))
	work := filepath.Join(t.TempDir(), "docs", "sphinx")
	require.NoError(t, os.MkdirAll(work, 0o750))
	t.Chdir(work)

	require.NoError(t, RunDocBuild(t.Context(), "build-doc"))

	buildDir := filepath.Join(work, "build-doc")
	assert.FileExists(t, filepath.Join(buildDir, "docs", "xml", indexFile))
	assert.FileExists(t, filepath.Join(buildDir, "make.ran"))

	// cmake ran inside the build directory with the project root and flag.
	args, err := os.ReadFile(filepath.Join(buildDir, "cmake.args"))
	require.NoError(t, err)
	assert.Contains(t, string(args), "../../../")
	assert.Contains(t, string(args), "-DYGM_RTD_ONLY=ON")

	wd, err := os.Getwd()
	require.NoError(t, err)
	assert.Equal(t, work, wd)
}

func TestRunDocBuildConfigureFailureSkipsMake(t *testing.T) {
	installTools(t, fakeCMake(1))
	work := t.TempDir()
	t.Chdir(work)

	err := RunDocBuild(t.Context(), "build-doc")
	require.Error(t, err)
	assert.True(t, ferrors.IsBuildFailure(err))

	step, ok := ferrors.StepOf(err)
	require.True(t, ok)
	assert.Equal(t, ferrors.StepConfigure, step)
	code, ok := ferrors.ExitCodeOf(err)
	require.True(t, ok)
	assert.Equal(t, 1, code)

	classified, ok := ferrors.AsClassified(err)
	require.True(t, ok)
	out, _ := classified.Context().GetString(ferrors.ContextOutput)
	assert.Contains(t, out, "CMakeLists.txt")

	buildDir := filepath.Join(work, "build-doc")
	assert.DirExists(t, buildDir)
	assert.NoFileExists(t, filepath.Join(buildDir, "make.ran"))
	assert.NoDirExists(t, filepath.Join(buildDir, "docs"))

	wd, err := os.Getwd()
	require.NoError(t, err)
	assert.Equal(t, work, wd)
}
