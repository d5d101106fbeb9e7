package discovery

import (
	"io/fs"
	"os"
	"path/filepath"
	"strings"
	"unicode/utf8"

	"github.com/arthur-debert/dirmod/pkg/errors"
	"github.com/arthur-debert/dirmod/pkg/filesystem"
	"github.com/arthur-debert/dirmod/pkg/logging"
	"github.com/arthur-debert/dirmod/pkg/types"
	"github.com/rs/zerolog"
)

// Default classification settings
const (
	DefaultExtension  = ".rs"
	DefaultModuleRoot = "mod.rs"
)

// Lister lists the declarable siblings of an invoking file
type Lister interface {
	ListSiblings(invoker string) ([]types.Entry, error)
}

// Options controls what counts as a module
type Options struct {
	// Extension marks File entries, including the leading dot
	Extension string
	// ModuleRoot is the file a directory must contain to be a Directory entry
	ModuleRoot string
}

func (o *Options) applyDefaults() {
	if o.Extension == "" {
		o.Extension = DefaultExtension
	}
	if o.ModuleRoot == "" {
		o.ModuleRoot = DefaultModuleRoot
	}
}

// Classifier is the filesystem-backed Lister
type Classifier struct {
	fs     filesystem.FS
	opts   Options
	logger zerolog.Logger
}

// NewClassifier creates a classifier reading through fs
func NewClassifier(fs filesystem.FS, opts Options) *Classifier {
	opts.applyDefaults()
	return &Classifier{
		fs:     fs,
		opts:   opts,
		logger: logging.GetLogger("discovery.classifier"),
	}
}

// ListSiblings reads the directory of invoker once and classifies its
// entries. Any failure aborts the whole listing.
func (c *Classifier) ListSiblings(invoker string) ([]types.Entry, error) {
	loc := types.Synthesized(invoker)

	if invoker == "" {
		return nil, errors.At(loc, errors.ErrInvalidLocation, "no invocation location")
	}
	info, err := c.fs.Stat(invoker)
	if err != nil {
		return nil, errors.Wrapf(err, errors.ErrInvalidLocation,
			"invocation location %s is not a real file", invoker).WithPos(loc)
	}
	if !info.Mode().IsRegular() {
		return nil, errors.At(loc, errors.ErrInvalidLocation,
			"invocation location %s is not a regular file", invoker)
	}

	dir := filepath.Dir(invoker)
	self := filepath.Base(invoker)

	c.logger.Debug().
		Str("dir", dir).
		Str("invoker", self).
		Msg("Listing siblings")

	dirEntries, err := c.fs.ReadDir(dir)
	if err != nil {
		return nil, errors.Wrapf(err, errors.ErrDirRead,
			"error reading parent directory of %s", invoker).WithPos(loc)
	}

	var entries []types.Entry
	seen := make(map[string]bool)
	for _, de := range dirEntries {
		entry, ok, err := c.classify(dir, self, de)
		if err != nil {
			return nil, err.WithPos(loc)
		}
		if !ok {
			continue
		}
		if seen[entry.Name] {
			c.logger.Warn().
				Str("name", entry.Name).
				Str("kind", entry.Kind.String()).
				Msg("Skipping entry with a name already taken")
			continue
		}
		seen[entry.Name] = true

		c.logger.Trace().
			Str("name", entry.Name).
			Str("kind", entry.Kind.String()).
			Msg("Found entry")
		entries = append(entries, entry)
	}

	c.logger.Debug().
		Int("entries", len(entries)).
		Int("siblings", len(dirEntries)).
		Msg("Classified siblings")
	return entries, nil
}

// classify decides what one sibling is. Symlinked siblings are ignored;
// the module root of a directory may be a symlink.
func (c *Classifier) classify(dir, self string, de fs.DirEntry) (types.Entry, bool, *errors.DirmodError) {
	name := de.Name()
	mode := de.Type()

	switch {
	case mode.IsRegular():
		if name == self || !c.hasExtension(name) {
			return types.Entry{}, false, nil
		}
		if !utf8.ValidString(name) {
			return types.Entry{}, false, errors.Newf(errors.ErrNonUTF8,
				"module %q is not UTF-8 compliant", name)
		}
		return types.Entry{Name: strings.TrimSuffix(name, c.opts.Extension), Kind: types.KindFile}, true, nil

	case mode.IsDir():
		root := filepath.Join(dir, name, c.opts.ModuleRoot)
		info, err := c.fs.Stat(root)
		if err != nil {
			if os.IsNotExist(err) {
				return types.Entry{}, false, nil
			}
			return types.Entry{}, false, errors.Wrapf(err, errors.ErrEntryRead,
				"error checking %s", root)
		}
		if !info.Mode().IsRegular() {
			return types.Entry{}, false, nil
		}
		if !utf8.ValidString(name) {
			return types.Entry{}, false, errors.Newf(errors.ErrNonUTF8,
				"module %q is not UTF-8 compliant", name)
		}
		return types.Entry{Name: name, Kind: types.KindDirectory}, true, nil
	}

	return types.Entry{}, false, nil
}

// hasExtension requires a non-empty stem, so a bare ".rs" is not a module
func (c *Classifier) hasExtension(name string) bool {
	return len(name) > len(c.opts.Extension) && strings.HasSuffix(name, c.opts.Extension)
}
