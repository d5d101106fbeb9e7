// Package help serves the topic pages of the CLI.
//
// Topics are markdown files embedded in the binary. They are reachable as
// `dirmod help <topic>` and `dirmod help topics` lists them; commands may
// also print a topic directly.
package help

import (
	"embed"
	"fmt"
	"io"
	"io/fs"
	"path"
	"sort"
	"strings"

	"github.com/arthur-debert/dirmod/pkg/logging"
	"github.com/spf13/cobra"
)

//go:embed topics/*.md
var embeddedTopics embed.FS

// Topic is one help page
type Topic struct {
	Name    string
	Ext     string
	Content string
}

// Title returns the first markdown heading, or the topic name
func (t *Topic) Title() string {
	for _, line := range strings.Split(t.Content, "\n") {
		if strings.HasPrefix(line, "# ") {
			return strings.TrimSpace(strings.TrimPrefix(line, "# "))
		}
	}
	return t.Name
}

// Options configures a Manager
type Options struct {
	// Extensions considered as topics, default [".md", ".txt"]
	Extensions []string
	// Renderer formats topics, default PlainRenderer
	Renderer Renderer
}

// Manager holds the loaded topics
type Manager struct {
	topics     map[string]*Topic
	extensions []string
	renderer   Renderer
}

// New loads the embedded topics
func New(opts Options) (*Manager, error) {
	sub, err := fs.Sub(embeddedTopics, "topics")
	if err != nil {
		return nil, err
	}
	return NewFromFS(sub, opts)
}

// NewFromFS loads every topic file found in fsys
func NewFromFS(fsys fs.FS, opts Options) (*Manager, error) {
	m := &Manager{
		topics:     make(map[string]*Topic),
		extensions: opts.Extensions,
		renderer:   opts.Renderer,
	}
	if len(m.extensions) == 0 {
		m.extensions = []string{".md", ".txt"}
	}
	if m.renderer == nil {
		m.renderer = &PlainRenderer{}
	}

	err := fs.WalkDir(fsys, ".", func(p string, d fs.DirEntry, err error) error {
		if err != nil {
			return err
		}
		if d.IsDir() {
			return nil
		}
		ext := path.Ext(p)
		if !m.supported(ext) {
			return nil
		}
		content, err := fs.ReadFile(fsys, p)
		if err != nil {
			return err
		}
		name := strings.TrimSuffix(path.Base(p), ext)
		m.topics[name] = &Topic{Name: name, Ext: ext, Content: string(content)}
		return nil
	})
	if err != nil {
		return nil, fmt.Errorf("failed to scan topics: %w", err)
	}

	logger := logging.GetLogger("help")
	logger.Trace().Int("topics", len(m.topics)).Msg("Loaded help topics")
	return m, nil
}

func (m *Manager) supported(ext string) bool {
	for _, e := range m.extensions {
		if e == ext {
			return true
		}
	}
	return false
}

// Get looks a topic up by name. Flag-style names ("--config") also match
// "option-config".
func (m *Manager) Get(name string) (*Topic, bool) {
	name = strings.TrimLeft(name, "-")
	if topic, ok := m.topics[name]; ok {
		return topic, true
	}
	topic, ok := m.topics["option-"+name]
	return topic, ok
}

// Names returns the sorted topic names
func (m *Manager) Names() []string {
	names := make([]string, 0, len(m.topics))
	for name := range m.topics {
		names = append(names, name)
	}
	sort.Strings(names)
	return names
}

// Show renders a topic to w
func (m *Manager) Show(w io.Writer, name string) error {
	topic, ok := m.Get(name)
	if !ok {
		return fmt.Errorf("no help topic named %q", name)
	}
	_, err := fmt.Fprint(w, m.renderer.Render(topic.Content, topic.Ext))
	return err
}

// List writes the topic index to w
func (m *Manager) List(w io.Writer, program string) {
	names := m.Names()
	if len(names) == 0 {
		fmt.Fprintln(w, "No help topics available.")
		return
	}

	var options, general []string
	for _, name := range names {
		if strings.HasPrefix(name, "option-") {
			options = append(options, strings.TrimPrefix(name, "option-"))
		} else {
			general = append(general, name)
		}
	}

	fmt.Fprintln(w, "Available help topics:")
	if len(general) > 0 {
		fmt.Fprintln(w, "\nGeneral topics:")
		for _, name := range general {
			fmt.Fprintf(w, "  %-14s %s\n", name, m.topics[name].Title())
		}
	}
	if len(options) > 0 {
		fmt.Fprintln(w, "\nOption topics:")
		for _, name := range options {
			fmt.Fprintf(w, "  --%s\n", name)
		}
	}
	fmt.Fprintf(w, "\nUse '%s help <topic>' to read about a specific topic.\n", program)
}

// Install replaces the help command of root with one that also knows the
// topics
func (m *Manager) Install(root *cobra.Command) {
	originalHelp := root.HelpFunc()

	helpCmd := &cobra.Command{
		Use:   "help [command or topic]",
		Short: "Help about any command or topic",
		Long: `Help provides help for any command or topic in the application.

To see all available help topics:
  ` + root.Name() + ` help topics`,
		ValidArgsFunction: func(cmd *cobra.Command, args []string, toComplete string) ([]string, cobra.ShellCompDirective) {
			completions := []string{"topics"}
			for _, c := range root.Commands() {
				if !c.Hidden {
					completions = append(completions, c.Name())
				}
			}
			completions = append(completions, m.Names()...)
			return completions, cobra.ShellCompDirectiveNoFileComp
		},
		Run: func(cmd *cobra.Command, args []string) {
			if len(args) == 0 {
				originalHelp(root, []string{})
				return
			}
			if args[0] == "topics" {
				m.List(cmd.OutOrStdout(), root.Name())
				return
			}
			if _, ok := m.Get(args[0]); ok {
				_ = m.Show(cmd.OutOrStdout(), args[0])
				return
			}
			if target, _, err := root.Find(args); err == nil && target != nil {
				originalHelp(target, args)
				return
			}
			originalHelp(root, args)
		},
	}

	for _, c := range root.Commands() {
		if c.Name() == "help" {
			root.RemoveCommand(c)
			break
		}
	}
	root.SetHelpCommand(helpCmd)
}
