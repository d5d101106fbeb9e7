package types

import (
	"fmt"
	"sort"
)

// EntryKind tells whether an entry is a single source file or a directory
// holding a module root file.
type EntryKind uint8

const (
	KindFile EntryKind = iota
	KindDirectory
)

func (k EntryKind) String() string {
	if k == KindDirectory {
		return "dir"
	}
	return "file"
}

// Entry is one sibling of the invoking file that is eligible for
// declaration.
type Entry struct {
	Name string    `json:"name" yaml:"name" toml:"name"`
	Kind EntryKind `json:"kind" yaml:"kind" toml:"kind"`
}

// EntryNames returns the entry names in order.
func EntryNames(entries []Entry) []string {
	names := make([]string, len(entries))
	for i, e := range entries {
		names[i] = e.Name
	}
	return names
}

// SortEntries returns a copy of entries ordered by name.
func SortEntries(entries []Entry) []Entry {
	sorted := make([]Entry, len(entries))
	copy(sorted, entries)
	sort.SliceStable(sorted, func(i, j int) bool {
		return sorted[i].Name < sorted[j].Name
	})
	return sorted
}

// MarshalText renders the kind as "file" or "dir".
func (k EntryKind) MarshalText() ([]byte, error) {
	return []byte(k.String()), nil
}

// UnmarshalText accepts "file" and "dir".
func (k *EntryKind) UnmarshalText(text []byte) error {
	switch string(text) {
	case "file":
		*k = KindFile
	case "dir":
		*k = KindDirectory
	default:
		return fmt.Errorf("unknown entry kind %q", string(text))
	}
	return nil
}
