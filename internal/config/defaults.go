package config

// Defaults mirror the documentation build this tool was written for.
const (
	DefaultProjectName      = "ygm"
	DefaultProjectRoot      = "../../../"
	DefaultFallback         = "https://github.com/LLNL/ygm"
	DefaultGateVariable     = "READTHEDOCS"
	DefaultGateValue        = "True"
	DefaultBuildDirectory   = "build-doc"
	DefaultConfigureCommand = "cmake"
	DefaultConfigureFlag    = "-DYGM_RTD_ONLY=ON"
	DefaultBuildCommand     = "make"
	DefaultTarget           = "doxygen"
	DefaultXMLSubdir        = "docs/xml"
)

// Default returns a fully defaulted configuration.
func Default() *Config {
	cfg := &Config{}
	applyDefaults(cfg)
	return cfg
}

func applyDefaults(cfg *Config) {
	if cfg.Version == "" {
		cfg.Version = CurrentVersion
	}

	if cfg.Project.Name == "" {
		cfg.Project.Name = DefaultProjectName
	}
	if cfg.Project.Root == "" {
		cfg.Project.Root = DefaultProjectRoot
	}
	if cfg.Project.Fallback == "" {
		cfg.Project.Fallback = DefaultFallback
	}

	if cfg.Gate.Variable == "" {
		cfg.Gate.Variable = DefaultGateVariable
	}
	if cfg.Gate.Value == "" {
		cfg.Gate.Value = DefaultGateValue
	}

	b := &cfg.Build
	if b.Directory == "" {
		b.Directory = DefaultBuildDirectory
	}
	if b.DirectoryPolicy == "" {
		b.DirectoryPolicy = DirectoryPolicyStrict
	}
	if b.ConfigureCommand == "" {
		b.ConfigureCommand = DefaultConfigureCommand
	}
	// nil means "not set"; an explicit empty list disables the flags.
	if b.ConfigureFlags == nil {
		b.ConfigureFlags = []string{DefaultConfigureFlag}
	}
	if b.BuildCommand == "" {
		b.BuildCommand = DefaultBuildCommand
	}
	if b.Target == "" {
		b.Target = DefaultTarget
	}
	if b.XMLSubdir == "" {
		b.XMLSubdir = DefaultXMLSubdir
	}

	if cfg.Output.MappingFormat == "" {
		cfg.Output.MappingFormat = MappingFormatJSON
	}
	if cfg.Logging.Level == "" {
		cfg.Logging.Level = LogLevelInfo
	}
	if cfg.Logging.Format == "" {
		cfg.Logging.Format = LogFormatText
	}
}
