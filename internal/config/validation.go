package config

import (
	"path/filepath"
	"strings"

	ferrors "git.home.luguber.info/inful/doxybridge/internal/foundation/errors"
)

func validationError(msg string) error {
	return ferrors.ConfigError(msg).Build()
}

// Validate checks a defaulted configuration.
func Validate(cfg *Config) error {
	if strings.TrimSpace(cfg.Project.Name) == "" {
		return validationError("project.name must not be empty")
	}
	if cfg.Gate.Variable == "" {
		return validationError("gate.variable must not be empty")
	}

	b := cfg.Build
	if strings.TrimSpace(b.Directory) == "" {
		return validationError("build.directory must not be empty")
	}
	if filepath.Clean(b.Directory) == "." {
		return validationError("build.directory must name a subdirectory, not the working directory")
	}
	if strings.TrimSpace(b.ConfigureCommand) == "" {
		return validationError("build.configure_command must not be empty")
	}
	if strings.TrimSpace(b.BuildCommand) == "" {
		return validationError("build.build_command must not be empty")
	}
	if strings.TrimSpace(b.Target) == "" {
		return validationError("build.target must not be empty")
	}
	if filepath.IsAbs(b.XMLSubdir) {
		return validationError("build.xml_subdir must be relative to the build directory")
	}
	if sub := filepath.Clean(b.XMLSubdir); sub == ".." || strings.HasPrefix(sub, ".."+string(filepath.Separator)) {
		return validationError("build.xml_subdir must stay inside the build directory")
	}
	switch b.DirectoryPolicy {
	case DirectoryPolicyStrict, DirectoryPolicyReuse:
	default:
		return validationError("build.directory_policy must be strict or reuse")
	}
	switch cfg.Output.MappingFormat {
	case MappingFormatJSON, MappingFormatYAML:
	default:
		return validationError("output.mapping_format must be json or yaml")
	}
	return nil
}
