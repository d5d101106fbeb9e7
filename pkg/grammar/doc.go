// Package grammar parses dirmod configuration strings.
//
// Two grammars share one lexer. The all variant accepts a list of
// semicolon-separated statements:
//
//	default pub(crate);
//	default dir pub use;
//	pub foo, bar;
//	priv lorem;
//	except ipsum
//
// The flag-gated variants (os, family, feature, cfg) accept at most one
// statement made of an optional modifier and an optional `||` clause:
//
//	pub use || "unsupported operating system"
//
// Every statement, modifier and name keeps its position so later stages can
// point errors at the offending token.
package grammar
