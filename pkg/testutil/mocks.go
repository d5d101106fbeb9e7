package testutil

import (
	"github.com/arthur-debert/dirmod/pkg/types"
	"github.com/stretchr/testify/mock"
)

// MockLister is a mock implementation of discovery.Lister
type MockLister struct {
	mock.Mock
}

func (m *MockLister) ListSiblings(invoker string) ([]types.Entry, error) {
	args := m.Called(invoker)
	entries, _ := args.Get(0).([]types.Entry)
	return entries, args.Error(1)
}

// Files builds File entries
func Files(names ...string) []types.Entry {
	entries := make([]types.Entry, len(names))
	for i, name := range names {
		entries[i] = types.Entry{Name: name, Kind: types.KindFile}
	}
	return entries
}

// Dir builds a single Directory entry
func Dir(name string) types.Entry {
	return types.Entry{Name: name, Kind: types.KindDirectory}
}
