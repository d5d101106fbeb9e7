package types

// Modifier is a visibility plus the re-export flag. With Reexport set the
// module itself stays private and its items are re-exported at Visibility.
type Modifier struct {
	Visibility Visibility `json:"visibility" yaml:"visibility" toml:"visibility"`
	Reexport   bool       `json:"reexport" yaml:"reexport" toml:"reexport"`
	Pos        Position   `json:"-" yaml:"-" toml:"-"`
}

// DefaultModifier is what an entry gets when nothing else applies.
var DefaultModifier = Modifier{Visibility: Private}

// Equal compares modifiers ignoring where they were written.
func (m Modifier) Equal(other Modifier) bool {
	return m.Visibility == other.Visibility && m.Reexport == other.Reexport
}

func (m Modifier) String() string {
	if m.Reexport {
		return m.Visibility.String() + " use"
	}
	return m.Visibility.String()
}
