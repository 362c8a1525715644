// Package breathe produces the project table consumed by the Sphinx Breathe
// extension (breathe_projects / breathe_default_project).
package breathe

import (
	"encoding/json"
	"fmt"
	"os"

	"gopkg.in/yaml.v3"

	"git.home.luguber.info/inful/doxybridge/internal/config"
	ferrors "git.home.luguber.info/inful/doxybridge/internal/foundation/errors"
)

// Mapping maps project names to the location of their Doxygen XML tree.
type Mapping struct {
	Projects       map[string]string `json:"breathe_projects" yaml:"breathe_projects"`
	DefaultProject string            `json:"breathe_default_project" yaml:"breathe_default_project"`
}

// Resolve returns the mapping for cfg. When built is false the project points
// at its fallback location instead of the (absent) local tree.
func Resolve(cfg *config.Config, built bool) Mapping {
	location := cfg.Project.Fallback
	if built {
		location = cfg.Build.XMLDir()
	}
	return Mapping{
		Projects:       map[string]string{cfg.Project.Name: location},
		DefaultProject: cfg.Project.Name,
	}
}

// Location returns the configured location of the default project.
func (m Mapping) Location() string {
	return m.Projects[m.DefaultProject]
}

// Marshal encodes the mapping in the requested format.
func Marshal(m Mapping, format config.MappingFormat) ([]byte, error) {
	switch format {
	case config.MappingFormatYAML:
		return yaml.Marshal(m)
	case config.MappingFormatJSON, "":
		data, err := json.MarshalIndent(m, "", "  ")
		if err != nil {
			return nil, err
		}
		return append(data, '\n'), nil
	default:
		return nil, ferrors.ValidationError(fmt.Sprintf("unsupported mapping format %q", format)).Build()
	}
}

// Write stores the mapping at path.
func Write(path string, m Mapping, format config.MappingFormat) error {
	data, err := Marshal(m, format)
	if err != nil {
		return err
	}
	if err := os.WriteFile(path, data, 0o600); err != nil {
		return ferrors.FileSystemError("write renderer mapping").
			WithCause(err).
			WithContext("path", path).
			Build()
	}
	return nil
}

// Read loads a mapping written by Write. Both formats are accepted since JSON
// is valid YAML.
func Read(path string) (Mapping, error) {
	var m Mapping
	data, err := os.ReadFile(path)
	if err != nil {
		return m, err
	}
	if err := yaml.Unmarshal(data, &m); err != nil {
		return m, fmt.Errorf("parse mapping %s: %w", path, err)
	}
	return m, nil
}
