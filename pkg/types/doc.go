// Package types defines the data model shared by every dirmod stage:
// classified entries, visibility modifiers, parsed statements, resolved
// policies and the abstract declaration records handed back to callers.
package types
