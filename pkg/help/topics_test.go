package help_test

import (
	"bytes"
	"testing"
	"testing/fstest"

	"github.com/arthur-debert/dirmod/pkg/help"
	"github.com/spf13/cobra"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

type upperRenderer struct{}

func (upperRenderer) Render(content, format string) string {
	return format + ":" + content
}

func testFS() fstest.MapFS {
	return fstest.MapFS{
		"syntax.md":        {Data: []byte("# Syntax\n\nbody\n")},
		"notes.txt":        {Data: []byte("plain notes\n")},
		"option-config.md": {Data: []byte("# Config flag\n")},
		"ignored.json":     {Data: []byte("{}")},
		"nested/deeper.md": {Data: []byte("no heading\n")},
	}
}

func TestNewFromFS(t *testing.T) {
	m, err := help.NewFromFS(testFS(), help.Options{})
	require.NoError(t, err)
	assert.Equal(t, []string{"deeper", "notes", "option-config", "syntax"}, m.Names())

	topic, ok := m.Get("syntax")
	require.True(t, ok)
	assert.Equal(t, ".md", topic.Ext)
	assert.Equal(t, "Syntax", topic.Title())

	deeper, ok := m.Get("deeper")
	require.True(t, ok)
	assert.Equal(t, "deeper", deeper.Title())
}

func TestGet_FlagStyle(t *testing.T) {
	m, err := help.NewFromFS(testFS(), help.Options{})
	require.NoError(t, err)

	for _, name := range []string{"--config", "-config", "config", "option-config"} {
		topic, ok := m.Get(name)
		require.True(t, ok, name)
		assert.Equal(t, "option-config", topic.Name)
	}

	_, ok := m.Get("missing")
	assert.False(t, ok)
}

func TestShow(t *testing.T) {
	m, err := help.NewFromFS(testFS(), help.Options{Renderer: upperRenderer{}})
	require.NoError(t, err)

	var buf bytes.Buffer
	require.NoError(t, m.Show(&buf, "notes"))
	assert.Equal(t, ".txt:plain notes\n", buf.String())

	assert.Error(t, m.Show(&buf, "missing"))
}

func TestList(t *testing.T) {
	m, err := help.NewFromFS(testFS(), help.Options{})
	require.NoError(t, err)

	var buf bytes.Buffer
	m.List(&buf, "dirmod")
	out := buf.String()
	assert.Contains(t, out, "General topics:")
	assert.Contains(t, out, "syntax")
	assert.Contains(t, out, "Option topics:")
	assert.Contains(t, out, "--config")
	assert.Contains(t, out, "dirmod help <topic>")

	empty, err := help.NewFromFS(fstest.MapFS{}, help.Options{})
	require.NoError(t, err)
	buf.Reset()
	empty.List(&buf, "dirmod")
	assert.Contains(t, buf.String(), "No help topics available.")
}

func TestEmbeddedTopics(t *testing.T) {
	m, err := help.New(help.Options{})
	require.NoError(t, err)
	for _, name := range []string{"syntax", "conditional", "config", "errors"} {
		_, ok := m.Get(name)
		assert.True(t, ok, name)
	}
}

func TestPlainRenderer(t *testing.T) {
	r := &help.PlainRenderer{}
	assert.Equal(t, "# x", r.Render("# x", ".md"))
}

func TestGlamourRenderer_NonMarkdown(t *testing.T) {
	r := help.NewGlamourRenderer()
	assert.Equal(t, "plain", r.Render("plain", ".txt"))
}

func TestGlamourRenderer_Markdown(t *testing.T) {
	r := &help.GlamourRenderer{Style: "notty", Width: 40}
	out := r.Render("# Title\n\nsome text\n", ".md")
	assert.Contains(t, out, "Title")
	assert.Contains(t, out, "some text")
}

func TestInstall(t *testing.T) {
	m, err := help.NewFromFS(testFS(), help.Options{})
	require.NoError(t, err)

	root := &cobra.Command{Use: "dirmod"}
	root.AddCommand(&cobra.Command{Use: "all", Short: "expand", Run: func(*cobra.Command, []string) {}})
	m.Install(root)

	run := func(args ...string) string {
		var buf bytes.Buffer
		root.SetOut(&buf)
		root.SetArgs(args)
		require.NoError(t, root.Execute())
		return buf.String()
	}

	assert.Contains(t, run("help", "topics"), "Available help topics:")
	assert.Contains(t, run("help", "syntax"), "body")
	assert.Contains(t, run("help", "all"), "expand")
}
