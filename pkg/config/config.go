package config

import (
	"github.com/arthur-debert/dirmod/pkg/core"
	"github.com/arthur-debert/dirmod/pkg/discovery"
	"github.com/arthur-debert/dirmod/pkg/resolve"
)

// Config is the merged configuration
type Config struct {
	Source  SourceConfig  `koanf:"source" toml:"source"`
	Flags   FlagsConfig   `koanf:"flags" toml:"flags"`
	Resolve ResolveConfig `koanf:"resolve" toml:"resolve"`
	Output  OutputConfig  `koanf:"output" toml:"output"`
}

// SourceConfig controls entry classification
type SourceConfig struct {
	Extension  string `koanf:"extension" toml:"extension" validate:"required,startswith=.,excludesall=/\\"`
	ModuleRoot string `koanf:"module_root" toml:"module_root" validate:"required,excludesall=/\\"`
}

// FlagsConfig names the flags of the conditional commands
type FlagsConfig struct {
	OS      string `koanf:"os" toml:"os" validate:"required,excludesall= \"="`
	Family  string `koanf:"family" toml:"family" validate:"required,excludesall= \"="`
	Feature string `koanf:"feature" toml:"feature" validate:"required,excludesall= \"="`
}

// ResolveConfig tunes resolution
type ResolveConfig struct {
	StrictDefaults bool `koanf:"strict_defaults" toml:"strict_defaults"`
	Sorted         bool `koanf:"sorted" toml:"sorted"`
}

// OutputConfig selects the renderer
type OutputConfig struct {
	Format string `koanf:"format" toml:"format" validate:"required,output_format"`
}

// ExpanderOptions maps the configuration onto the pipeline options
func (c *Config) ExpanderOptions() core.Options {
	return core.Options{
		Discovery: discovery.Options{
			Extension:  c.Source.Extension,
			ModuleRoot: c.Source.ModuleRoot,
		},
		Resolve: resolve.Options{StrictDefaults: c.Resolve.StrictDefaults},
		Flags: core.FlagNames{
			OS:      c.Flags.OS,
			Family:  c.Flags.Family,
			Feature: c.Flags.Feature,
		},
		Sorted: c.Resolve.Sorted,
	}
}
