package core

import (
	"github.com/arthur-debert/dirmod/pkg/cfggen"
	"github.com/arthur-debert/dirmod/pkg/discovery"
	"github.com/arthur-debert/dirmod/pkg/emit"
	"github.com/arthur-debert/dirmod/pkg/errors"
	"github.com/arthur-debert/dirmod/pkg/filesystem"
	"github.com/arthur-debert/dirmod/pkg/grammar"
	"github.com/arthur-debert/dirmod/pkg/logging"
	"github.com/arthur-debert/dirmod/pkg/resolve"
	"github.com/arthur-debert/dirmod/pkg/types"
	"github.com/rs/zerolog"
)

// Stage names used as error context
const (
	StageParse   = "argument parsing"
	StageListing = "directory listing"
)

// Options configures an Expander
type Options struct {
	// FileSystem backs the default classifier; nil means the OS
	FileSystem filesystem.FS
	// Lister replaces the classifier entirely when set
	Lister discovery.Lister
	// Discovery is passed to the default classifier
	Discovery discovery.Options
	// Resolve is passed to resolve.Resolve
	Resolve resolve.Options
	// Flags maps the built-in conditional variants to flag names; empty
	// fields fall back to DefaultFlagNames
	Flags FlagNames
	// Sorted orders entries by name instead of directory order
	Sorted bool
}

// Expander runs expansions. It holds no per-call state and may be reused.
type Expander struct {
	lister discovery.Lister
	opts   Options
	logger zerolog.Logger
}

// NewExpander builds an Expander from opts
func NewExpander(opts Options) *Expander {
	lister := opts.Lister
	if lister == nil {
		fs := opts.FileSystem
		if fs == nil {
			fs = filesystem.NewOS()
		}
		lister = discovery.NewClassifier(fs, opts.Discovery)
	}
	if opts.Sorted {
		lister = discovery.Sorted(lister)
	}

	if opts.Flags.OS == "" {
		opts.Flags.OS = DefaultFlagNames.OS
	}
	if opts.Flags.Family == "" {
		opts.Flags.Family = DefaultFlagNames.Family
	}
	if opts.Flags.Feature == "" {
		opts.Flags.Feature = DefaultFlagNames.Feature
	}

	return &Expander{
		lister: lister,
		opts:   opts,
		logger: logging.GetLogger("core.expander"),
	}
}

// Expand dispatches on variant
func (e *Expander) Expand(variant Variant, invoker, text string) (*types.Expansion, error) {
	if !variant.IsConditional() {
		return e.ExpandAll(invoker, text)
	}
	flag, err := variant.Flag(e.opts.Flags)
	if err != nil {
		return nil, err
	}
	return e.ExpandConditional(flag, invoker, text)
}

// ExpandAll runs the all variant for the file at invoker
func (e *Expander) ExpandAll(invoker, text string) (*types.Expansion, error) {
	e.logger.Debug().
		Str("invoker", invoker).
		Str("variant", string(VariantAll)).
		Msg("Starting expansion")

	// Step 1: Parse the configuration
	stmts, err := grammar.ParseAll(invoker, text)
	if err != nil {
		return nil, errors.Context(err, StageParse)
	}

	// Step 2: List the siblings
	entries, err := e.List(invoker)
	if err != nil {
		return nil, err
	}

	// Step 3: Resolve one policy per entry
	policies, err := resolve.Resolve(stmts, entries, e.opts.Resolve)
	if err != nil {
		e.logger.Debug().Err(err).Msg("Resolution failed")
		return nil, err
	}

	exp := &types.Expansion{Declarations: emit.DeclareAll(policies)}
	e.logger.Info().
		Str("invoker", invoker).
		Int("declarations", len(exp.Declarations)).
		Msg("Expansion complete")
	return exp, nil
}

// ExpandConditional gates every sibling of invoker on flag
func (e *Expander) ExpandConditional(flag, invoker, text string) (*types.Expansion, error) {
	e.logger.Debug().
		Str("invoker", invoker).
		Str("flag", flag).
		Msg("Starting conditional expansion")

	stmt, err := grammar.ParseConditional(invoker, text)
	if err != nil {
		return nil, errors.Context(err, StageParse)
	}

	entries, err := e.List(invoker)
	if err != nil {
		return nil, err
	}

	result, err := cfggen.Generate(flag, stmt, entries)
	if err != nil {
		return nil, err
	}

	exp := &types.Expansion{
		Declarations: emit.DeclareAll(result.Policies),
		Guard:        result.Guard,
	}
	e.logger.Info().
		Str("invoker", invoker).
		Str("flag", flag).
		Int("declarations", len(exp.Declarations)).
		Bool("guard", exp.Guard != nil).
		Msg("Expansion complete")
	return exp, nil
}

// List returns the classified siblings of invoker
func (e *Expander) List(invoker string) ([]types.Entry, error) {
	entries, err := e.lister.ListSiblings(invoker)
	if err != nil {
		e.logger.Debug().Err(err).Str("invoker", invoker).Msg("Listing failed")
		return nil, errors.Context(err, StageListing)
	}
	return entries, nil
}
