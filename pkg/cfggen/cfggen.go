// Package cfggen builds the declarations of the flag-gated variants.
//
// Every entry becomes one declaration gated on `flag = "<entry name>"`,
// all sharing the single modifier of the conditional statement. When the
// statement asks for it, a guard asserts that at least one gate held.
package cfggen

import (
	"fmt"
	"strings"

	"github.com/arthur-debert/dirmod/pkg/errors"
	"github.com/arthur-debert/dirmod/pkg/logging"
	"github.com/arthur-debert/dirmod/pkg/types"
)

// Built-in flag names of the os, family and feature variants
const (
	FlagOS      = "target_os"
	FlagFamily  = "target_family"
	FlagFeature = "feature"
)

// DefaultModifier applies when no conditional statement was written: the
// innermost default level without re-export.
var DefaultModifier = types.Modifier{Visibility: types.Inherited}

// Result holds the gated policies in entry order and the optional guard.
type Result struct {
	Policies []types.ResolvedPolicy
	Guard    *types.Guard
}

// Generate gates every entry on flag. A nil stmt means no modifier and no
// guard.
func Generate(flag string, stmt *types.ConditionalStatement, entries []types.Entry) (*Result, error) {
	logger := logging.GetLogger("cfggen")

	if strings.TrimSpace(flag) == "" {
		return nil, errors.New(errors.ErrInvalidInput, "flag name must not be empty")
	}

	modifier := DefaultModifier
	if stmt != nil {
		modifier = stmt.Modifier
	}

	result := &Result{Policies: make([]types.ResolvedPolicy, 0, len(entries))}
	for _, entry := range entries {
		result.Policies = append(result.Policies, types.ResolvedPolicy{
			Entry:     entry,
			Modifier:  modifier,
			Condition: &types.FlagCondition{Flag: flag, Value: entry.Name},
		})
	}

	if stmt != nil && stmt.Fallback != nil {
		values := types.EntryNames(entries)
		message := stmt.Fallback.Message
		if !stmt.Fallback.Custom {
			message = DefaultMessage(flag, values)
		}
		result.Guard = &types.Guard{Flag: flag, Values: values, Message: message}
	}

	logger.Debug().
		Str("flag", flag).
		Str("modifier", modifier.String()).
		Int("entries", len(entries)).
		Bool("guard", result.Guard != nil).
		Msg("Generated gated declarations")
	return result, nil
}

// DefaultMessage is the guard message used when none was written, e.g.
// `target_os must be one of "linux", "windows"`.
func DefaultMessage(flag string, values []string) string {
	return fmt.Sprintf(`%s must be one of "%s"`, flag, strings.Join(values, `", "`))
}
