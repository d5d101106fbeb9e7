package types

// Scope restricts a default visibility statement to one entry kind.
type Scope uint8

const (
	ScopeBoth Scope = iota
	ScopeFile
	ScopeDirectory
)

// Covers reports whether the scope applies to entries of kind.
func (s Scope) Covers(kind EntryKind) bool {
	switch s {
	case ScopeFile:
		return kind == KindFile
	case ScopeDirectory:
		return kind == KindDirectory
	default:
		return true
	}
}

func (s Scope) String() string {
	switch s {
	case ScopeFile:
		return "file"
	case ScopeDirectory:
		return "dir"
	default:
		return "both"
	}
}

// Name is a module name as written in a statement.
type Name struct {
	Value string
	Pos   Position
}

// Statement is one semicolon-delimited statement of the all grammar. The
// concrete types are *DefaultVisibility, *SpecialVisibility and *Exclusion.
type Statement interface {
	Position() Position
	statement()
}

// DefaultVisibility sets the modifier of every entry in Scope that has no
// special visibility.
type DefaultVisibility struct {
	Scope    Scope
	Modifier Modifier
	Pos      Position
}

// SpecialVisibility overrides the modifier of the named entries.
type SpecialVisibility struct {
	Modifier Modifier
	Names    []Name
	Pos      Position
}

// Exclusion drops the named entries from the output.
type Exclusion struct {
	Names []Name
	Pos   Position
}

func (s *DefaultVisibility) Position() Position { return s.Pos }
func (s *SpecialVisibility) Position() Position { return s.Pos }
func (s *Exclusion) Position() Position         { return s.Pos }

func (*DefaultVisibility) statement() {}
func (*SpecialVisibility) statement() {}
func (*Exclusion) statement()         {}

// NameValues returns the written names in order.
func NameValues(names []Name) []string {
	values := make([]string, len(names))
	for i, n := range names {
		values[i] = n.Value
	}
	return values
}

// ErrorClause is the "|| [message]" tail of a conditional statement.
// Custom is false when the message has to be derived from the entries.
type ErrorClause struct {
	Message string
	Custom  bool
	Pos     Position
}

// ConditionalStatement is the single statement accepted by the flag-gated
// variants. A nil Fallback means no guard is generated.
type ConditionalStatement struct {
	Modifier Modifier
	Fallback *ErrorClause
	Pos      Position
}
