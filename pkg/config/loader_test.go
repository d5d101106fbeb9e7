// Test Type: Unit Test
// Description: Tests configuration layering and validation

package config_test

import (
	"io"
	"os"
	"path/filepath"
	"testing"

	"github.com/arthur-debert/dirmod/pkg/config"
	"github.com/arthur-debert/dirmod/pkg/emit"
	"github.com/arthur-debert/dirmod/pkg/errors"
	"github.com/arthur-debert/dirmod/pkg/types"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func writeFile(t *testing.T, dir, name, content string) string {
	t.Helper()
	path := filepath.Join(dir, name)
	require.NoError(t, os.WriteFile(path, []byte(content), 0644))
	return path
}

func TestLoad_Defaults(t *testing.T) {
	cfg, err := config.Load(config.LoadOptions{Dir: t.TempDir()})
	require.NoError(t, err)

	assert.Equal(t, ".rs", cfg.Source.Extension)
	assert.Equal(t, "mod.rs", cfg.Source.ModuleRoot)
	assert.Equal(t, "target_os", cfg.Flags.OS)
	assert.Equal(t, "target_family", cfg.Flags.Family)
	assert.Equal(t, "feature", cfg.Flags.Feature)
	assert.False(t, cfg.Resolve.StrictDefaults)
	assert.False(t, cfg.Resolve.Sorted)
	assert.Equal(t, "text", cfg.Output.Format)
}

func TestDefault(t *testing.T) {
	cfg, err := config.Default()
	require.NoError(t, err)
	assert.Equal(t, "text", cfg.Output.Format)
	assert.Contains(t, config.DefaultContent(), "[source]")
}

func TestLoad_UserFileInDir(t *testing.T) {
	tests := []struct {
		name  string
		files map[string]string
		want  string
	}{
		{"hidden file", map[string]string{".dirmod.toml": "[output]\nformat = \"json\"\n"}, "json"},
		{"plain file", map[string]string{"dirmod.toml": "[output]\nformat = \"yaml\"\n"}, "yaml"},
		{
			"hidden wins",
			map[string]string{
				".dirmod.toml": "[output]\nformat = \"toml\"\n",
				"dirmod.toml":  "[output]\nformat = \"xml\"\n",
			},
			"toml",
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			dir := t.TempDir()
			for name, content := range tt.files {
				writeFile(t, dir, name, content)
			}
			cfg, err := config.Load(config.LoadOptions{Dir: dir})
			require.NoError(t, err)
			assert.Equal(t, tt.want, cfg.Output.Format)
			// untouched keys keep their defaults
			assert.Equal(t, ".rs", cfg.Source.Extension)
		})
	}
}

func TestLoad_ExplicitFile(t *testing.T) {
	dir := t.TempDir()
	path := writeFile(t, dir, "custom.toml", `
[source]
extension = ".gen"
module_root = "index.gen"

[resolve]
strict_defaults = true
`)

	cfg, err := config.Load(config.LoadOptions{ConfigFile: path})
	require.NoError(t, err)
	assert.Equal(t, ".gen", cfg.Source.Extension)
	assert.Equal(t, "index.gen", cfg.Source.ModuleRoot)
	assert.True(t, cfg.Resolve.StrictDefaults)

	opts := cfg.ExpanderOptions()
	assert.Equal(t, ".gen", opts.Discovery.Extension)
	assert.Equal(t, "index.gen", opts.Discovery.ModuleRoot)
	assert.True(t, opts.Resolve.StrictDefaults)
	assert.Equal(t, "target_os", opts.Flags.OS)
}

func TestLoad_MissingExplicitFile(t *testing.T) {
	_, err := config.Load(config.LoadOptions{ConfigFile: filepath.Join(t.TempDir(), "nope.toml")})
	require.Error(t, err)
	assert.True(t, errors.IsErrorCode(err, errors.ErrConfigLoad))
}

func TestLoad_MalformedFile(t *testing.T) {
	dir := t.TempDir()
	writeFile(t, dir, ".dirmod.toml", "[output\nformat = ")

	_, err := config.Load(config.LoadOptions{Dir: dir})
	require.Error(t, err)
	assert.True(t, errors.IsErrorCode(err, errors.ErrConfigLoad))
}

func TestLoad_UnknownKey(t *testing.T) {
	dir := t.TempDir()
	writeFile(t, dir, ".dirmod.toml", "[output]\ncolour = \"red\"\n")

	_, err := config.Load(config.LoadOptions{Dir: dir})
	require.Error(t, err)
	assert.True(t, errors.IsErrorCode(err, errors.ErrConfigLoad))
}

func TestLoad_Environment(t *testing.T) {
	dir := t.TempDir()
	writeFile(t, dir, ".dirmod.toml", "[output]\nformat = \"json\"\n")
	t.Setenv("DIRMOD_OUTPUT__FORMAT", "yaml")
	t.Setenv("DIRMOD_SOURCE__MODULE_ROOT", "lib.rs")
	t.Setenv("DIRMOD_RESOLVE__SORTED", "true")

	cfg, err := config.Load(config.LoadOptions{Dir: dir})
	require.NoError(t, err)
	assert.Equal(t, "yaml", cfg.Output.Format, "environment beats the file")
	assert.Equal(t, "lib.rs", cfg.Source.ModuleRoot)
	assert.True(t, cfg.Resolve.Sorted)
}

func TestLoad_Overrides(t *testing.T) {
	t.Setenv("DIRMOD_OUTPUT__FORMAT", "yaml")

	cfg, err := config.Load(config.LoadOptions{
		NoUserFile: true,
		Overrides:  map[string]interface{}{"output.format": "xml", "flags.os": "os"},
	})
	require.NoError(t, err)
	assert.Equal(t, "xml", cfg.Output.Format)
	assert.Equal(t, "os", cfg.Flags.OS)
}

func TestLoad_RegisteredFormat(t *testing.T) {
	const format = "config-names"
	if !contains(emit.Formats(), format) {
		require.NoError(t, emit.Register(format, emit.RendererFunc(func(io.Writer, *types.Expansion) error {
			return nil
		})))
	}

	cfg, err := config.Load(config.LoadOptions{
		NoUserFile: true,
		Overrides:  map[string]interface{}{"output.format": "Config-Names"},
	})
	require.NoError(t, err)
	assert.Equal(t, "Config-Names", cfg.Output.Format)

	_, err = config.Load(config.LoadOptions{
		NoUserFile: true,
		Overrides:  map[string]interface{}{"output.format": "csv"},
	})
	require.Error(t, err)
	assert.Contains(t, err.Error(), format)
}

func contains(list []string, s string) bool {
	for _, v := range list {
		if v == s {
			return true
		}
	}
	return false
}

func TestLoad_Invalid(t *testing.T) {
	tests := []struct {
		name    string
		content string
		want    string
	}{
		{"unknown format", "[output]\nformat = \"csv\"\n", "output.format must be one of"},
		{"extension without dot", "[source]\nextension = \"rs\"\n", "source.extension must start with ."},
		{"empty module root", "[source]\nmodule_root = \"\"\n", "source.module_root is required"},
		{"module root with separator", "[source]\nmodule_root = \"a/mod.rs\"\n", "source.module_root must not contain"},
		{"flag with space", "[flags]\nos = \"target os\"\n", "flags.os must not contain"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			dir := t.TempDir()
			writeFile(t, dir, "dirmod.toml", tt.content)

			_, err := config.Load(config.LoadOptions{Dir: dir})
			require.Error(t, err)
			assert.True(t, errors.IsErrorCode(err, errors.ErrConfigValid), "got %v", err)
			assert.Contains(t, err.Error(), tt.want)
		})
	}
}

func TestValidate(t *testing.T) {
	cfg, err := config.Default()
	require.NoError(t, err)
	assert.NoError(t, config.Validate(cfg))

	cfg.Output.Format = ""
	cfg.Flags.Feature = ""
	err = config.Validate(cfg)
	require.Error(t, err)
	assert.Contains(t, err.Error(), "flags.feature is required")
	assert.Contains(t, err.Error(), "output.format is required")
}
