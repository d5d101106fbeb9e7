// Package testutil provides helpers for testing dirmod components.
//
// Key components:
//   - SourceTree: declarative in-memory source directory on afero
//   - FailingFS: filesystem wrapper that injects errors per path
//   - MockLister: testify mock of discovery.Lister
//
// Usage guidelines:
//   - prefer SourceTree over real directories; only filesystem tests touch disk
//   - keep test data inline, not in external files
package testutil
