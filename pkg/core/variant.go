package core

import (
	"strings"

	"github.com/arthur-debert/dirmod/pkg/cfggen"
	"github.com/arthur-debert/dirmod/pkg/errors"
)

// Variant selects the grammar and generator of an expansion
type Variant string

const (
	VariantAll     Variant = "all"
	VariantOS      Variant = "os"
	VariantFamily  Variant = "family"
	VariantFeature Variant = "feature"

	// CfgPrefix introduces a variant gated on an arbitrary flag, "cfg:<flag>"
	CfgPrefix = "cfg:"
)

// FlagNames holds the flag each built-in conditional variant gates on
type FlagNames struct {
	OS      string
	Family  string
	Feature string
}

// DefaultFlagNames are the flags of the host build configuration
var DefaultFlagNames = FlagNames{
	OS:      cfggen.FlagOS,
	Family:  cfggen.FlagFamily,
	Feature: cfggen.FlagFeature,
}

// CfgVariant returns the variant gated on flag
func CfgVariant(flag string) Variant {
	return Variant(CfgPrefix + flag)
}

// IsConditional reports whether the variant uses the conditional grammar
func (v Variant) IsConditional() bool {
	return v != VariantAll
}

// Flag returns the flag a conditional variant gates on
func (v Variant) Flag(names FlagNames) (string, error) {
	switch v {
	case VariantOS:
		return names.OS, nil
	case VariantFamily:
		return names.Family, nil
	case VariantFeature:
		return names.Feature, nil
	}
	if flag, ok := strings.CutPrefix(string(v), CfgPrefix); ok {
		if strings.TrimSpace(flag) == "" {
			return "", errors.New(errors.ErrInvalidInput, "cfg variant needs a flag name, e.g. cfg:target_arch")
		}
		return flag, nil
	}
	return "", errors.Newf(errors.ErrInvalidInput, "unknown variant %q", string(v)).
		WithDetail("variant", string(v))
}
