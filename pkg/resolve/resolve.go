// Package resolve turns parsed statements and classified entries into one
// policy per entry.
//
// Defaults apply per entry kind, special visibilities override them per
// name and exclusions drop entries entirely. A name may receive at most one
// special visibility, and an excluded name may not receive one at all.
package resolve

import (
	"github.com/arthur-debert/dirmod/pkg/errors"
	"github.com/arthur-debert/dirmod/pkg/logging"
	"github.com/arthur-debert/dirmod/pkg/types"
)

// Options tunes resolution
type Options struct {
	// StrictDefaults rejects a second default statement for a scope that is
	// already covered instead of silently keeping the first one
	StrictDefaults bool
}

type special struct {
	modifier types.Modifier
	pos      types.Position
}

// Resolve computes the policy of every entry that is not excluded, in entry
// order. It returns the first conflict found and no policies in that case.
func Resolve(stmts []types.Statement, entries []types.Entry, opts Options) ([]types.ResolvedPolicy, error) {
	logger := logging.GetLogger("resolve")

	defaultFile, defaultDir, err := effectiveDefaults(stmts, opts)
	if err != nil {
		return nil, err
	}

	specials := make(map[string]special)
	excluded := make(map[string]bool)
	for _, stmt := range stmts {
		switch s := stmt.(type) {
		case *types.SpecialVisibility:
			for _, name := range s.Names {
				if _, dup := specials[name.Value]; dup {
					return nil, errors.At(name.Pos, errors.ErrDuplicateVisibility,
						"the module has multiple visibilities").
						WithDetail("name", name.Value)
				}
				specials[name.Value] = special{modifier: s.Modifier, pos: s.Modifier.Pos}
			}
		case *types.Exclusion:
			for _, name := range s.Names {
				excluded[name.Value] = true
			}
		}
	}

	policies := make([]types.ResolvedPolicy, 0, len(entries))
	for _, entry := range entries {
		sp, hasSpecial := specials[entry.Name]
		if excluded[entry.Name] {
			if hasSpecial {
				return nil, errors.At(sp.pos, errors.ErrExcludedSpecial,
					"the module has a special visibility but is also excluded in `except`").
					WithDetail("name", entry.Name)
			}
			logger.Trace().Str("name", entry.Name).Msg("Entry excluded")
			continue
		}

		modifier := defaultFile
		if entry.Kind == types.KindDirectory {
			modifier = defaultDir
		}
		if hasSpecial {
			modifier = sp.modifier
		}
		policies = append(policies, types.ResolvedPolicy{Entry: entry, Modifier: modifier})
	}

	logger.Debug().
		Int("entries", len(entries)).
		Int("policies", len(policies)).
		Int("specials", len(specials)).
		Int("exclusions", len(excluded)).
		Msg("Resolved policies")
	return policies, nil
}

// effectiveDefaults picks the first default statement covering each kind.
// Later ones are ignored unless opts.StrictDefaults is set.
func effectiveDefaults(stmts []types.Statement, opts Options) (file, dir types.Modifier, err error) {
	var fileSet, dirSet bool
	file, dir = types.DefaultModifier, types.DefaultModifier

	for _, stmt := range stmts {
		dv, ok := stmt.(*types.DefaultVisibility)
		if !ok {
			continue
		}
		coversFile := dv.Scope.Covers(types.KindFile)
		coversDir := dv.Scope.Covers(types.KindDirectory)

		if opts.StrictDefaults && ((coversFile && fileSet) || (coversDir && dirSet)) {
			return file, dir, errors.At(dv.Pos, errors.ErrRepeatedStatement,
				"the default visibility is repeated").
				WithDetail("scope", dv.Scope.String())
		}
		if coversFile && !fileSet {
			file, fileSet = dv.Modifier, true
		}
		if coversDir && !dirSet {
			dir, dirSet = dv.Modifier, true
		}
	}
	return file, dir, nil
}
