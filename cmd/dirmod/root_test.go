// Test Type: Integration Test
// Description: Tests the dirmod commands end to end on a temporary source tree

package dirmod

import (
	"bytes"
	"encoding/json"
	"os"
	"path/filepath"
	"strings"
	"testing"

	"github.com/arthur-debert/dirmod/pkg/errors"
	"github.com/arthur-debert/dirmod/pkg/types"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func sourceTree(t *testing.T, files ...string) string {
	t.Helper()
	t.Setenv("XDG_STATE_HOME", t.TempDir())
	dir := t.TempDir()
	for _, rel := range files {
		path := filepath.Join(dir, rel)
		require.NoError(t, os.MkdirAll(filepath.Dir(path), 0755))
		require.NoError(t, os.WriteFile(path, []byte("// "+rel+"\n"), 0644))
	}
	return dir
}

func run(t *testing.T, stdin string, args ...string) (string, error) {
	t.Helper()
	cmd := NewRootCmd()
	var out bytes.Buffer
	cmd.SetOut(&out)
	cmd.SetErr(&out)
	cmd.SetIn(strings.NewReader(stdin))
	if args == nil {
		args = []string{}
	}
	cmd.SetArgs(args)
	err := cmd.Execute()
	return out.String(), err
}

func TestAllCmd(t *testing.T) {
	dir := sourceTree(t, "lib.rs", "foo.rs", "bar.rs", "qux/mod.rs", "README.md")

	out, err := run(t, "", "all", filepath.Join(dir, "lib.rs"), "default priv;", "pub foo;", "except qux")
	require.NoError(t, err)
	assert.Equal(t, "mod bar;\npub mod foo;\n", out)
}

func TestAllCmd_Reexport(t *testing.T) {
	dir := sourceTree(t, "lib.rs", "sys/mod.rs")

	out, err := run(t, "", "all", filepath.Join(dir, "lib.rs"), "pub(crate) use sys")
	require.NoError(t, err)
	assert.Equal(t, "mod sys; pub(crate) use sys::*;\n", out)
}

func TestAllCmd_ConfigSources(t *testing.T) {
	dir := sourceTree(t, "lib.rs", "a.rs")
	invoker := filepath.Join(dir, "lib.rs")

	t.Run("stdin", func(t *testing.T) {
		out, err := run(t, "pub a", "all", invoker, "-")
		require.NoError(t, err)
		assert.Equal(t, "pub mod a;\n", out)
	})

	t.Run("file", func(t *testing.T) {
		conf := filepath.Join(t.TempDir(), "modules.conf")
		require.NoError(t, os.WriteFile(conf, []byte("// modules\npub(super) a;\n"), 0644))

		out, err := run(t, "", "all", "--file", conf, invoker)
		require.NoError(t, err)
		assert.Equal(t, "pub(super) mod a;\n", out)
	})

	t.Run("file_and_arguments", func(t *testing.T) {
		_, err := run(t, "", "all", "-f", "x.conf", invoker, "pub a")
		require.Error(t, err)
		assert.Contains(t, err.Error(), "both as arguments and with --file")
	})
}

func TestAllCmd_JSON(t *testing.T) {
	dir := sourceTree(t, "lib.rs", "a.rs")

	out, err := run(t, "", "-o", "json", "all", filepath.Join(dir, "lib.rs"), "pub a")
	require.NoError(t, err)

	var exp types.Expansion
	require.NoError(t, json.Unmarshal([]byte(out), &exp))
	require.Len(t, exp.Declarations, 1)
	assert.Equal(t, "pub", exp.Declarations[0].Module.Visibility)
}

func TestAllCmd_Errors(t *testing.T) {
	dir := sourceTree(t, "lib.rs", "foo.rs")
	invoker := filepath.Join(dir, "lib.rs")

	tests := []struct {
		name string
		args []string
		code errors.ErrorCode
		want string
	}{
		{"syntax", []string{"all", invoker, "pub foo bar"}, errors.ErrSyntax, "error during argument parsing"},
		{"excluded special", []string{"all", invoker, "pub foo; except foo"}, errors.ErrExcludedSpecial, "also excluded"},
		{"missing invoker", []string{"all", filepath.Join(dir, "nope.rs")}, errors.ErrInvalidLocation, "error during directory listing"},
		{"strict defaults", []string{"--strict", "all", invoker, "default; default pub"}, errors.ErrRepeatedStatement, "repeated"},
		{"bad format", []string{"-o", "csv", "all", invoker}, errors.ErrConfigValid, "output.format"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			out, err := run(t, "", tt.args...)
			require.Error(t, err)
			assert.True(t, errors.IsErrorCode(err, tt.code), "got %v", err)
			assert.Contains(t, err.Error(), tt.want)
			assert.Empty(t, out)
		})
	}
}

func TestConditionalCmds(t *testing.T) {
	dir := sourceTree(t, "mod.rs", "linux.rs", "windows/mod.rs")
	invoker := filepath.Join(dir, "mod.rs")

	t.Run("os_with_guard", func(t *testing.T) {
		out, err := run(t, "", "os", invoker, "pub ||")
		require.NoError(t, err)
		assert.Equal(t, strings.Join([]string{
			`#[cfg(target_os = "linux")] pub mod linux;`,
			`#[cfg(target_os = "windows")] pub mod windows;`,
			`#[cfg(not(any(target_os = "linux", target_os = "windows")))] compile_error!("target_os must be one of \"linux\", \"windows\"");`,
		}, "\n")+"\n", out)
	})

	t.Run("family_default_modifier", func(t *testing.T) {
		out, err := run(t, "", "family", invoker)
		require.NoError(t, err)
		assert.Equal(t, `#[cfg(target_family = "linux")] mod linux;`+"\n"+
			`#[cfg(target_family = "windows")] mod windows;`+"\n", out)
	})

	t.Run("feature_custom_message", func(t *testing.T) {
		out, err := run(t, "", "feature", invoker, `|| "pick one"`)
		require.NoError(t, err)
		assert.Contains(t, out, `compile_error!("pick one");`)
	})

	t.Run("cfg", func(t *testing.T) {
		out, err := run(t, "", "cfg", "target_arch", invoker, "pub(crate)")
		require.NoError(t, err)
		assert.Contains(t, out, `#[cfg(target_arch = "linux")] pub(crate) mod linux;`)
	})

	t.Run("repeated_statement", func(t *testing.T) {
		_, err := run(t, "", "os", invoker, "pub; priv")
		require.Error(t, err)
		assert.True(t, errors.IsErrorCode(err, errors.ErrRepeatedStatement))
	})
}

func TestListCmd(t *testing.T) {
	dir := sourceTree(t, "lib.rs", "b.rs", "a/mod.rs", "notes.txt")

	out, err := run(t, "", "list", filepath.Join(dir, "lib.rs"))
	require.NoError(t, err)
	assert.Equal(t, "dir   a\nfile  b\n", out)

	empty := sourceTree(t, "lib.rs")
	out, err = run(t, "", "list", filepath.Join(empty, "lib.rs"))
	require.NoError(t, err)
	assert.Equal(t, MsgNoEntries+"\n", out)
}

func TestConfigCmd(t *testing.T) {
	sourceTree(t)

	out, err := run(t, "", "config")
	require.NoError(t, err)
	assert.Contains(t, out, "[source]")
	assert.Contains(t, out, `module_root = "mod.rs"`)

	out, err = run(t, "", "--strict", "-o", "yaml", "config", "--effective")
	require.NoError(t, err)
	assert.Contains(t, out, "strict_defaults = true")
	assert.Contains(t, out, "yaml")
}

func TestSyntaxCmd(t *testing.T) {
	sourceTree(t)

	out, err := run(t, "", "syntax")
	require.NoError(t, err)
	assert.Contains(t, out, "except")
}

func TestHelpTopics(t *testing.T) {
	sourceTree(t)

	out, err := run(t, "", "help", "topics")
	require.NoError(t, err)
	assert.Contains(t, out, "conditional")
	assert.Contains(t, out, "errors")
}

func TestVersionCmd(t *testing.T) {
	sourceTree(t)

	out, err := run(t, "", "version")
	require.NoError(t, err)
	assert.Contains(t, out, "dirmod version dev")
}

func TestCompletionCmd(t *testing.T) {
	sourceTree(t)

	out, err := run(t, "", "completion", "bash")
	require.NoError(t, err)
	assert.Contains(t, out, "dirmod")

	_, err = run(t, "", "completion", "tcsh")
	assert.Error(t, err)
}

func TestRootCmd_NoCommand(t *testing.T) {
	sourceTree(t)

	_, err := run(t, "")
	require.Error(t, err)
	assert.Contains(t, err.Error(), MsgErrNoCommand)
	assert.True(t, errors.IsErrorCode(err, errors.ErrInvalidInput))
}

func TestReadConfigText(t *testing.T) {
	text, err := readConfigText([]string{"pub a;", "except b"}, "", nil)
	require.NoError(t, err)
	assert.Equal(t, "pub a; except b", text)

	text, err = readConfigText(nil, "", nil)
	require.NoError(t, err)
	assert.Empty(t, text)

	_, err = readConfigText(nil, filepath.Join(t.TempDir(), "missing"), nil)
	require.Error(t, err)
	assert.True(t, errors.IsErrorCode(err, errors.ErrInvalidInput), "got %v", err)

	_, err = readConfigText([]string{"pub a"}, "modules.conf", nil)
	require.Error(t, err)
	assert.Equal(t, errors.ErrInvalidInput, errors.GetErrorCode(err))
	assert.Contains(t, err.Error(), MsgErrBothSources)

	text, err = readConfigText([]string{"-"}, "", strings.NewReader("except b"))
	require.NoError(t, err)
	assert.Equal(t, "except b", text)
}

func TestAllCmd_BothSourcesIsInvalidInput(t *testing.T) {
	dir := sourceTree(t, "lib.rs", "a.rs")

	_, err := run(t, "", "all", "-f", "x.conf", filepath.Join(dir, "lib.rs"), "pub a")
	require.Error(t, err)
	assert.True(t, errors.IsErrorCode(err, errors.ErrInvalidInput), "got %v", err)
}
