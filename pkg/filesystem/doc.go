// Package filesystem provides the directory-listing collaborator used by
// the entry classifier.
//
// FS is intentionally narrow: classification only needs to list a
// directory and stat the entries in it. Two implementations are provided,
// the OS filesystem and an afero-backed one used by tests and by callers
// that classify in-memory trees.
package filesystem
