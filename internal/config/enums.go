package config

import (
	"fmt"
	"strings"
)

// DirectoryPolicy decides what happens when the build directory already exists.
type DirectoryPolicy string

const (
	// DirectoryPolicyStrict fails when the build directory already exists, so a
	// stale directory from an earlier run is never silently reused.
	DirectoryPolicyStrict DirectoryPolicy = "strict"
	// DirectoryPolicyReuse accepts an existing directory (but not a file at that path).
	DirectoryPolicyReuse DirectoryPolicy = "reuse"
)

// MappingFormat is the serialization of the renderer project mapping.
type MappingFormat string

const (
	MappingFormatJSON MappingFormat = "json"
	MappingFormatYAML MappingFormat = "yaml"
)

func normalizeDirectoryPolicy(raw string) DirectoryPolicy {
	switch canonical(raw) {
	case "strict":
		return DirectoryPolicyStrict
	case "reuse", "reuse-existing", "idempotent":
		return DirectoryPolicyReuse
	default:
		return ""
	}
}

func normalizeMappingFormat(raw string) MappingFormat {
	switch canonical(raw) {
	case "json":
		return MappingFormatJSON
	case "yaml", "yml":
		return MappingFormatYAML
	default:
		return ""
	}
}

// NormalizeMappingFormat maps a user supplied format name to its canonical value.
// Unknown names return the empty string.
func NormalizeMappingFormat(raw string) MappingFormat {
	return normalizeMappingFormat(raw)
}

func canonical(raw string) string {
	return strings.ToLower(strings.TrimSpace(raw))
}

// normalize case-folds enumerations before defaults are applied. Empty values
// stay empty so defaults can fill them.
func normalize(cfg *Config) error {
	if raw := string(cfg.Build.DirectoryPolicy); raw != "" {
		p := normalizeDirectoryPolicy(raw)
		if p == "" {
			return invalidEnum("build.directory_policy", raw, "strict, reuse")
		}
		cfg.Build.DirectoryPolicy = p
	}
	if raw := string(cfg.Output.MappingFormat); raw != "" {
		f := normalizeMappingFormat(raw)
		if f == "" {
			return invalidEnum("output.mapping_format", raw, "json, yaml")
		}
		cfg.Output.MappingFormat = f
	}
	if raw := string(cfg.Logging.Level); raw != "" {
		l := normalizeLogLevel(raw)
		if l == "" {
			return invalidEnum("logging.level", raw, "debug, info, warn, error")
		}
		cfg.Logging.Level = l
	}
	if raw := string(cfg.Logging.Format); raw != "" {
		f := normalizeLogFormat(raw)
		if f == "" {
			return invalidEnum("logging.format", raw, "text, json")
		}
		cfg.Logging.Format = f
	}
	return nil
}

func invalidEnum(field, value, valid string) error {
	return validationError(fmt.Sprintf("invalid %s %q (valid: %s)", field, value, valid))
}
