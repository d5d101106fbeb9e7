// Package discovery classifies the siblings of an invoking source file into
// declarable entries.
//
// A sibling is a File entry when it is a regular file carrying the source
// extension and is not the invoking file itself; it is a Directory entry
// when it is a directory holding a module root file. Everything else is
// ignored. Entries come back in the order the filesystem lists them.
package discovery
