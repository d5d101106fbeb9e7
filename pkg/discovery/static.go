package discovery

import "github.com/arthur-debert/dirmod/pkg/types"

// Static is a Lister over a fixed entry list, for callers that already hold
// a listing
type Static []types.Entry

// ListSiblings returns a copy of the fixed entries regardless of invoker
func (s Static) ListSiblings(string) ([]types.Entry, error) {
	entries := make([]types.Entry, len(s))
	copy(entries, s)
	return entries, nil
}

// Sorted wraps a Lister so its entries come back ordered by name
func Sorted(l Lister) Lister {
	return sortedLister{inner: l}
}

type sortedLister struct {
	inner Lister
}

func (s sortedLister) ListSiblings(invoker string) ([]types.Entry, error) {
	entries, err := s.inner.ListSiblings(invoker)
	if err != nil {
		return nil, err
	}
	return types.SortEntries(entries), nil
}
