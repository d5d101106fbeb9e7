package types

import "fmt"

// Position locates a token inside a configuration string or, for
// collaborator failures, names the invocation that could not be served.
type Position struct {
	Source string `json:"source,omitempty" yaml:"source,omitempty" toml:"source,omitempty"`
	Offset int    `json:"offset" yaml:"offset" toml:"offset"`
	Line   int    `json:"line" yaml:"line" toml:"line"`
	Column int    `json:"column" yaml:"column" toml:"column"`
}

// Synthesized returns a position that only names a source. It is used when
// no configuration token is implicated.
func Synthesized(source string) Position {
	return Position{Source: source}
}

// IsValid reports whether the position points at a real token.
func (p Position) IsValid() bool {
	return p.Line > 0
}

func (p Position) String() string {
	switch {
	case p.IsValid() && p.Source != "":
		return fmt.Sprintf("%s:%d:%d", p.Source, p.Line, p.Column)
	case p.IsValid():
		return fmt.Sprintf("%d:%d", p.Line, p.Column)
	default:
		return p.Source
	}
}
