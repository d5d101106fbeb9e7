package emit

import (
	"encoding/json"
	"fmt"
	"io"
	"sort"
	"strconv"
	"strings"
	"sync"

	"github.com/arthur-debert/dirmod/pkg/errors"
	"github.com/arthur-debert/dirmod/pkg/logging"
	"github.com/arthur-debert/dirmod/pkg/types"
	"github.com/beevik/etree"
	toml "github.com/pelletier/go-toml/v2"
	"gopkg.in/yaml.v3"
)

// Output formats understood by NewRenderer
const (
	FormatText = "text"
	FormatJSON = "json"
	FormatYAML = "yaml"
	FormatTOML = "toml"
	FormatXML  = "xml"
)

// Renderer writes an expansion to w
type Renderer interface {
	Render(w io.Writer, exp *types.Expansion) error
}

// RendererFunc adapts a function to the Renderer interface
type RendererFunc func(w io.Writer, exp *types.Expansion) error

func (f RendererFunc) Render(w io.Writer, exp *types.Expansion) error {
	return f(w, exp)
}

var (
	renderersMu sync.RWMutex
	renderers   = map[string]Renderer{
		FormatText: RendererFunc(renderText),
		FormatJSON: RendererFunc(renderJSON),
		FormatYAML: RendererFunc(renderYAML),
		FormatTOML: RendererFunc(renderTOML),
		FormatXML:  RendererFunc(renderXML),
	}
)

// Register adds a renderer under a new format name. Names are case
// insensitive and may not replace an existing format.
func Register(format string, r Renderer) error {
	name := strings.ToLower(strings.TrimSpace(format))
	if name == "" || r == nil {
		return errors.New(errors.ErrInvalidInput, "a renderer needs a format name and an implementation")
	}

	renderersMu.Lock()
	defer renderersMu.Unlock()
	if _, exists := renderers[name]; exists {
		return errors.Newf(errors.ErrInvalidInput, "format %q is already registered", name).
			WithDetail("format", name)
	}
	renderers[name] = r
	return nil
}

// Formats lists the supported format names, sorted
func Formats() []string {
	renderersMu.RLock()
	defer renderersMu.RUnlock()
	names := make([]string, 0, len(renderers))
	for name := range renderers {
		names = append(names, name)
	}
	sort.Strings(names)
	return names
}

// NewRenderer returns the renderer for format. An empty format means text.
func NewRenderer(format string) (Renderer, error) {
	if format == "" {
		format = FormatText
	}
	renderersMu.RLock()
	r, ok := renderers[strings.ToLower(format)]
	renderersMu.RUnlock()
	if !ok {
		return nil, errors.Newf(errors.ErrInvalidInput,
			"unknown output format %q, expected one of %s", format, strings.Join(Formats(), ", ")).
			WithDetail("format", format)
	}
	logger := logging.GetLogger("emit")
	logger.Trace().Str("format", format).Msg("Selected renderer")
	return r, nil
}

// TextLine renders one declaration the way it would be written by hand:
//
//	#[cfg(target_os = "linux")] pub mod linux;
//	mod sys; pub(crate) use sys::*;
func TextLine(decl types.Declaration) string {
	var b strings.Builder
	if decl.Condition != nil {
		fmt.Fprintf(&b, "#[cfg(%s)] ", conditionText(*decl.Condition))
	}
	if decl.Module.Visibility != "" {
		b.WriteString(decl.Module.Visibility)
		b.WriteByte(' ')
	}
	fmt.Fprintf(&b, "mod %s;", decl.Module.Name)
	if r := decl.Reexport; r != nil {
		b.WriteByte(' ')
		if decl.Condition != nil {
			fmt.Fprintf(&b, "#[cfg(%s)] ", conditionText(*decl.Condition))
		}
		if r.Visibility != "" {
			b.WriteString(r.Visibility)
			b.WriteByte(' ')
		}
		fmt.Fprintf(&b, "use %s::*;", r.Name)
	}
	return b.String()
}

// GuardText renders the guard as a negated disjunction of its conditions
func GuardText(g types.Guard) string {
	conds := make([]string, len(g.Values))
	for i, v := range g.Values {
		conds[i] = conditionText(types.FlagCondition{Flag: g.Flag, Value: v})
	}
	return fmt.Sprintf("#[cfg(not(any(%s)))] compile_error!(%s);",
		strings.Join(conds, ", "), strconv.Quote(g.Message))
}

func conditionText(c types.FlagCondition) string {
	return c.Flag + " = " + strconv.Quote(c.Value)
}

func renderText(w io.Writer, exp *types.Expansion) error {
	for _, decl := range exp.Declarations {
		if _, err := fmt.Fprintln(w, TextLine(decl)); err != nil {
			return err
		}
	}
	if exp.Guard != nil {
		if _, err := fmt.Fprintln(w, GuardText(*exp.Guard)); err != nil {
			return err
		}
	}
	return nil
}

func renderJSON(w io.Writer, exp *types.Expansion) error {
	enc := json.NewEncoder(w)
	enc.SetIndent("", "  ")
	return enc.Encode(exp)
}

func renderYAML(w io.Writer, exp *types.Expansion) error {
	enc := yaml.NewEncoder(w)
	enc.SetIndent(2)
	if err := enc.Encode(exp); err != nil {
		return err
	}
	return enc.Close()
}

func renderTOML(w io.Writer, exp *types.Expansion) error {
	return toml.NewEncoder(w).Encode(exp)
}

func renderXML(w io.Writer, exp *types.Expansion) error {
	doc := etree.NewDocument()
	doc.CreateProcInst("xml", `version="1.0" encoding="UTF-8"`)
	root := doc.CreateElement("expansion")

	for _, decl := range exp.Declarations {
		el := root.CreateElement("declaration")
		mod := el.CreateElement("module")
		mod.CreateAttr("name", decl.Module.Name)
		if decl.Module.Visibility != "" {
			mod.CreateAttr("visibility", decl.Module.Visibility)
		}
		if r := decl.Reexport; r != nil {
			re := el.CreateElement("reexport")
			re.CreateAttr("name", r.Name)
			if r.Visibility != "" {
				re.CreateAttr("visibility", r.Visibility)
			}
		}
		if c := decl.Condition; c != nil {
			cond := el.CreateElement("condition")
			cond.CreateAttr("flag", c.Flag)
			cond.CreateAttr("value", c.Value)
		}
	}

	if g := exp.Guard; g != nil {
		guard := root.CreateElement("guard")
		guard.CreateAttr("flag", g.Flag)
		for _, v := range g.Values {
			guard.CreateElement("value").SetText(v)
		}
		guard.CreateElement("message").SetText(g.Message)
	}

	doc.Indent(2)
	_, err := doc.WriteTo(w)
	return err
}
