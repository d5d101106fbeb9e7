package types

// Visibility is an opaque level of the host visibility lattice.
//
// The zero value is the host's innermost default: nothing was written.
// Private is the explicit "priv" keyword. Both render as no qualifier, but
// they remain distinct values so callers can tell what the user asked for.
// Any other level carries its qualifier text verbatim ("pub",
// "pub(crate)", ...) and is only ever compared, never interpreted.
type Visibility struct {
	Qualifier string `json:"qualifier,omitempty" yaml:"qualifier,omitempty" toml:"qualifier,omitempty"`
	Private   bool   `json:"private,omitempty" yaml:"private,omitempty" toml:"private,omitempty"`
}

// Private is the explicit private level.
var Private = Visibility{Private: true}

// Inherited is the innermost default level.
var Inherited = Visibility{}

// Qualified returns the level written as qualifier.
func Qualified(qualifier string) Visibility {
	return Visibility{Qualifier: qualifier}
}

// IsPrivate reports whether the level renders as no qualifier.
func (v Visibility) IsPrivate() bool {
	return v.Private || v.Qualifier == ""
}

// Render returns the qualifier text, empty for both private forms.
func (v Visibility) Render() string {
	if v.IsPrivate() {
		return ""
	}
	return v.Qualifier
}

func (v Visibility) String() string {
	switch {
	case v.Private:
		return "priv"
	case v.Qualifier == "":
		return "inherited"
	default:
		return v.Qualifier
	}
}
