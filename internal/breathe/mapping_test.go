package breathe

import (
	"os"
	"path/filepath"
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"git.home.luguber.info/inful/doxybridge/internal/config"
	ferrors "git.home.luguber.info/inful/doxybridge/internal/foundation/errors"
)

func TestResolve(t *testing.T) {
	cfg := config.Default()

	built := Resolve(cfg, true)
	assert.Equal(t, "ygm", built.DefaultProject)
	assert.Equal(t, filepath.Join("build-doc", "docs", "xml"), built.Location())

	skipped := Resolve(cfg, false)
	assert.Equal(t, "https://github.com/LLNL/ygm", skipped.Location())
}

func TestWriteAndReadFormats(t *testing.T) {
	m := Resolve(config.Default(), true)

	for _, format := range []config.MappingFormat{config.MappingFormatJSON, config.MappingFormatYAML} {
		t.Run(string(format), func(t *testing.T) {
			path := filepath.Join(t.TempDir(), "mapping."+string(format))
			require.NoError(t, Write(path, m, format))

			raw, err := os.ReadFile(path)
			require.NoError(t, err)
			assert.True(t, strings.Contains(string(raw), "breathe_projects"))

			got, err := Read(path)
			require.NoError(t, err)
			assert.Equal(t, m, got)
		})
	}
}

func TestMarshalRejectsUnknownFormat(t *testing.T) {
	_, err := Marshal(Mapping{}, config.MappingFormat("toml"))
	require.Error(t, err)
	assert.Equal(t, ferrors.CategoryValidation, ferrors.GetCategory(err))
}

func TestWriteToMissingDirectory(t *testing.T) {
	err := Write(filepath.Join(t.TempDir(), "nope", "m.json"), Mapping{}, config.MappingFormatJSON)
	require.Error(t, err)
	assert.Equal(t, ferrors.CategoryFileSystem, ferrors.GetCategory(err))
}
