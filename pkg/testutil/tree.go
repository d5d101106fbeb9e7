package testutil

import (
	"path/filepath"
	"testing"

	"github.com/arthur-debert/dirmod/pkg/filesystem"
	"github.com/spf13/afero"
	"github.com/stretchr/testify/require"
)

// SourceRoot is where SourceTree places its files
const SourceRoot = "/src"

// SourceTree is an in-memory source directory
type SourceTree struct {
	t   *testing.T
	FS  filesystem.FS
	Mem afero.Fs
	Dir string
}

// NewSourceTree creates an empty source directory under SourceRoot
func NewSourceTree(t *testing.T) *SourceTree {
	t.Helper()
	fsys, mem := filesystem.NewMemory()
	require.NoError(t, mem.MkdirAll(SourceRoot, 0755))
	return &SourceTree{t: t, FS: fsys, Mem: mem, Dir: SourceRoot}
}

// File writes a file relative to the tree root and returns its path
func (s *SourceTree) File(rel string) string {
	s.t.Helper()
	path := filepath.Join(s.Dir, rel)
	require.NoError(s.t, s.Mem.MkdirAll(filepath.Dir(path), 0755))
	require.NoError(s.t, afero.WriteFile(s.Mem, path, []byte("// "+rel+"\n"), 0644))
	return path
}

// Files writes several files
func (s *SourceTree) Files(rels ...string) *SourceTree {
	s.t.Helper()
	for _, rel := range rels {
		s.File(rel)
	}
	return s
}

// Dirs creates empty directories
func (s *SourceTree) Dirs(rels ...string) *SourceTree {
	s.t.Helper()
	for _, rel := range rels {
		require.NoError(s.t, s.Mem.MkdirAll(filepath.Join(s.Dir, rel), 0755))
	}
	return s
}

// Path returns the absolute path of rel inside the tree
func (s *SourceTree) Path(rel string) string {
	return filepath.Join(s.Dir, rel)
}
