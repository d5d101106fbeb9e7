package types

// FlagCondition is a single flag = value equality test. It is evaluated by
// the surrounding build configuration, never by dirmod.
type FlagCondition struct {
	Flag  string `json:"flag" yaml:"flag" toml:"flag"`
	Value string `json:"value" yaml:"value" toml:"value"`
}

// ResolvedPolicy is the final decision for one entry.
type ResolvedPolicy struct {
	Entry     Entry
	Modifier  Modifier
	Condition *FlagCondition
}

// ModuleDecl declares a module. An empty Visibility means private.
type ModuleDecl struct {
	Name       string `json:"name" yaml:"name" toml:"name"`
	Visibility string `json:"visibility,omitempty" yaml:"visibility,omitempty" toml:"visibility,omitempty"`
}

// ReexportDecl re-exports every item of the module at Visibility.
type ReexportDecl struct {
	Name       string `json:"name" yaml:"name" toml:"name"`
	Visibility string `json:"visibility,omitempty" yaml:"visibility,omitempty" toml:"visibility,omitempty"`
}

// Declaration is the abstract output record for one entry.
type Declaration struct {
	Module    ModuleDecl     `json:"module" yaml:"module" toml:"module"`
	Reexport  *ReexportDecl  `json:"reexport,omitempty" yaml:"reexport,omitempty" toml:"reexport,omitempty"`
	Condition *FlagCondition `json:"condition,omitempty" yaml:"condition,omitempty" toml:"condition,omitempty"`
}

// Guard asserts that at least one of Flag = Values held.
type Guard struct {
	Flag    string   `json:"flag" yaml:"flag" toml:"flag"`
	Values  []string `json:"values" yaml:"values" toml:"values"`
	Message string   `json:"message" yaml:"message" toml:"message"`
}

// Expansion is everything one invocation produces.
type Expansion struct {
	Declarations []Declaration `json:"declarations" yaml:"declarations" toml:"declarations"`
	Guard        *Guard        `json:"guard,omitempty" yaml:"guard,omitempty" toml:"guard,omitempty"`
}
