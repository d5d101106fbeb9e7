package testutil

import (
	"io/fs"
	"path/filepath"

	"github.com/arthur-debert/dirmod/pkg/filesystem"
)

// FailingFS wraps a filesystem and returns injected errors for chosen paths
type FailingFS struct {
	filesystem.FS
	ReadDirErrors map[string]error
	StatErrors    map[string]error
	// ReadDirExtra appends raw entries to a listing, for names the
	// backing filesystem cannot hold
	ReadDirExtra map[string][]fs.DirEntry
}

// NewFailingFS wraps base with no injected errors
func NewFailingFS(base filesystem.FS) *FailingFS {
	return &FailingFS{
		FS:            base,
		ReadDirErrors: make(map[string]error),
		StatErrors:    make(map[string]error),
		ReadDirExtra:  make(map[string][]fs.DirEntry),
	}
}

func (f *FailingFS) ReadDir(name string) ([]fs.DirEntry, error) {
	if err, ok := f.ReadDirErrors[filepath.Clean(name)]; ok {
		return nil, err
	}
	entries, err := f.FS.ReadDir(name)
	if err != nil {
		return nil, err
	}
	return append(entries, f.ReadDirExtra[filepath.Clean(name)]...), nil
}

func (f *FailingFS) Stat(name string) (fs.FileInfo, error) {
	if err, ok := f.StatErrors[filepath.Clean(name)]; ok {
		return nil, err
	}
	return f.FS.Stat(name)
}

// FakeDirEntry is a directory entry that exists only in a listing
type FakeDirEntry struct {
	EntryName string
	Mode      fs.FileMode
}

func (d FakeDirEntry) Name() string               { return d.EntryName }
func (d FakeDirEntry) IsDir() bool                { return d.Mode.IsDir() }
func (d FakeDirEntry) Type() fs.FileMode          { return d.Mode.Type() }
func (d FakeDirEntry) Info() (fs.FileInfo, error) { return nil, fs.ErrNotExist }
