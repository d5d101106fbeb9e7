package filesystem

import "io/fs"

// FS is the read-only filesystem surface dirmod needs
type FS interface {
	// ReadDir lists a directory in the order the implementation returns
	ReadDir(name string) ([]fs.DirEntry, error)

	// Stat follows symlinks, so a linked module root still counts
	Stat(name string) (fs.FileInfo, error)
}
