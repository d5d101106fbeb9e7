// Package core wires the stages of one expansion together.
//
// An expansion parses the configuration text, lists the siblings of the
// invoking file and then either resolves the all grammar or gates every
// entry on a flag:
//
//	ExpandAll          grammar.ParseAll → Lister → resolve.Resolve → emit.DeclareAll
//	ExpandConditional  grammar.ParseConditional → Lister → cfggen.Generate → emit.DeclareAll
//
// Failures keep their code and position and are prefixed with the stage
// they happened in ("argument parsing" or "directory listing"). Nothing is
// cached between calls; every expansion reads the directory once.
package core
