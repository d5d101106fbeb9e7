package grammar

import (
	"strings"

	"github.com/arthur-debert/dirmod/pkg/errors"
	"github.com/arthur-debert/dirmod/pkg/logging"
	"github.com/arthur-debert/dirmod/pkg/types"
)

// Keywords of the configuration grammar
const (
	KwDefault = "default"
	KwExcept  = "except"
	KwFile    = "file"
	KwDir     = "dir"
	KwPriv    = "priv"
	KwPub     = "pub"
	KwUse     = "use"
)

type parser struct {
	tokens []Token
	i      int
}

func newParser(source, text string) (*parser, error) {
	tokens, err := Lex(source, text)
	if err != nil {
		return nil, err
	}
	return &parser{tokens: tokens}, nil
}

func (p *parser) peek() Token {
	return p.tokens[p.i]
}

func (p *parser) next() Token {
	tok := p.tokens[p.i]
	if tok.Kind != TokEOF {
		p.i++
	}
	return tok
}

func (p *parser) atEnd() bool {
	return p.peek().Kind == TokEOF
}

// atStatementEnd reports whether the current statement is finished
func (p *parser) atStatementEnd() bool {
	k := p.peek().Kind
	return k == TokEOF || k == TokSemi
}

func unexpected(tok Token, want string) error {
	return errors.At(tok.Pos, errors.ErrSyntax, "expected %s, found %s", want, tok)
}

// ParseAll parses the statement list of the all variant:
//
//	default [file|dir] <modifier>
//	<pub...|priv> [use] name, name...
//	except name, name...
//
// Statements are separated by semicolons; a trailing semicolon is allowed.
// Empty input yields no statements. Any error fails the whole parse.
func ParseAll(source, text string) ([]types.Statement, error) {
	logger := logging.GetLogger("grammar")

	p, err := newParser(source, text)
	if err != nil {
		return nil, err
	}

	var stmts []types.Statement
	for !p.atEnd() {
		stmt, err := p.parseStatement()
		if err != nil {
			return nil, err
		}
		stmts = append(stmts, stmt)

		switch tok := p.peek(); tok.Kind {
		case TokEOF:
		case TokSemi:
			p.next()
		default:
			return nil, unexpected(tok, "`;` or end of input")
		}
	}

	logger.Debug().
		Str("source", source).
		Int("statements", len(stmts)).
		Msg("Parsed configuration")
	return stmts, nil
}

// parseStatement dispatches on the leading token
func (p *parser) parseStatement() (types.Statement, error) {
	tok := p.peek()
	switch {
	case tok.IsKeyword(KwDefault):
		p.next()
		scope := types.ScopeBoth
		if next := p.peek(); next.IsKeyword(KwFile) {
			p.next()
			scope = types.ScopeFile
		} else if next.IsKeyword(KwDir) {
			p.next()
			scope = types.ScopeDirectory
		}
		modifier, err := p.parseModifier()
		if err != nil {
			return nil, err
		}
		return &types.DefaultVisibility{Scope: scope, Modifier: modifier, Pos: tok.Pos}, nil

	case tok.IsKeyword(KwPriv), tok.IsKeyword(KwPub):
		modifier, err := p.parseModifier()
		if err != nil {
			return nil, err
		}
		names, err := p.parseNames()
		if err != nil {
			return nil, err
		}
		return &types.SpecialVisibility{Modifier: modifier, Names: names, Pos: tok.Pos}, nil

	case tok.IsKeyword(KwExcept):
		p.next()
		names, err := p.parseNames()
		if err != nil {
			return nil, err
		}
		return &types.Exclusion{Names: names, Pos: tok.Pos}, nil

	default:
		return nil, errors.At(tok.Pos, errors.ErrSyntax,
			"invalid statement: expected `default`, `except`, a visibility or `priv`, found %s", tok)
	}
}

// parseModifier parses `[priv | pub [( ... )]] [use]`. Nothing written
// means the inherited level.
func (p *parser) parseModifier() (types.Modifier, error) {
	modifier := types.Modifier{Pos: p.peek().Pos}

	tok := p.peek()
	switch {
	case tok.IsKeyword(KwPriv):
		p.next()
		modifier.Visibility = types.Private
	case tok.IsKeyword(KwPub):
		qualifier, err := p.parseQualifier()
		if err != nil {
			return types.Modifier{}, err
		}
		modifier.Visibility = types.Qualified(qualifier)
	}

	if p.peek().IsKeyword(KwUse) {
		p.next()
		modifier.Reexport = true
	}
	return modifier, nil
}

// parseQualifier consumes `pub` and an optional parenthesised restriction,
// returning the qualifier with whitespace normalised.
func (p *parser) parseQualifier() (string, error) {
	pub := p.next()
	parts := []string{pub.Text}
	if p.peek().Kind != TokLParen {
		return pub.Text, nil
	}

	open := p.next()
	parts = append(parts, open.Text)
	depth := 1
	for depth > 0 {
		tok := p.next()
		switch tok.Kind {
		case TokEOF:
			return "", errors.At(open.Pos, errors.ErrSyntax, "unclosed `(` in visibility")
		case TokLParen:
			depth++
		case TokRParen:
			depth--
		case TokSemi, TokOrOr, TokString:
			return "", unexpected(tok, "`)`")
		}
		parts = append(parts, tok.Text)
	}
	if len(parts) == 3 {
		return "", errors.At(open.Pos, errors.ErrSyntax, "empty visibility restriction")
	}
	return joinQualifier(parts), nil
}

// joinQualifier rebuilds `pub(in a::b)` from its tokens, keeping a single
// space only between adjacent identifiers.
func joinQualifier(parts []string) string {
	var b strings.Builder
	prevIdent := false
	for _, part := range parts {
		ident := part != "" && isIdentStart([]rune(part)[0])
		if ident && prevIdent {
			b.WriteByte(' ')
		}
		b.WriteString(part)
		prevIdent = ident
	}
	return b.String()
}

// parseNames parses a non-empty comma-separated identifier list ending at
// `;` or end of input. A trailing comma is allowed.
func (p *parser) parseNames() ([]types.Name, error) {
	var names []types.Name
	for {
		tok := p.peek()
		if tok.Kind != TokIdent {
			if len(names) > 0 && p.atStatementEnd() {
				return names, nil
			}
			return nil, unexpected(tok, "module name")
		}
		p.next()
		names = append(names, types.Name{Value: tok.Text, Pos: tok.Pos})

		if p.atStatementEnd() {
			return names, nil
		}
		if sep := p.peek(); sep.Kind != TokComma {
			return nil, unexpected(sep, "`,`")
		}
		p.next()
	}
}
