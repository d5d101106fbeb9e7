package grammar

import (
	"github.com/arthur-debert/dirmod/pkg/errors"
	"github.com/arthur-debert/dirmod/pkg/logging"
	"github.com/arthur-debert/dirmod/pkg/types"
)

// ParseConditional parses the single statement accepted by the flag-gated
// variants:
//
//	[<modifier>] [|| ["message"]]
//
// Empty input returns nil, which callers treat as "defaults, no guard".
// Without `||` no guard is requested; `||` alone asks for a derived message.
// A second statement after `;` is reported as repeated.
func ParseConditional(source, text string) (*types.ConditionalStatement, error) {
	logger := logging.GetLogger("grammar")

	p, err := newParser(source, text)
	if err != nil {
		return nil, err
	}
	if p.atEnd() {
		return nil, nil
	}

	stmt := &types.ConditionalStatement{Pos: p.peek().Pos}
	modifier, err := p.parseModifier()
	if err != nil {
		return nil, err
	}
	stmt.Modifier = modifier

	if tok := p.peek(); tok.Kind == TokOrOr {
		p.next()
		clause := &types.ErrorClause{Pos: tok.Pos}
		if msg := p.peek(); msg.Kind == TokString {
			p.next()
			clause.Message = msg.Value
			clause.Custom = true
		}
		stmt.Fallback = clause
	}

	switch tok := p.next(); tok.Kind {
	case TokEOF:
	case TokSemi:
		if second := p.peek(); second.Kind != TokEOF {
			return nil, errors.At(second.Pos, errors.ErrRepeatedStatement, "the statement is repeated")
		}
	default:
		switch {
		case stmt.Fallback == nil:
			return nil, unexpected(tok, "`||` or end of input")
		case stmt.Fallback.Custom:
			return nil, unexpected(tok, "end of input")
		default:
			return nil, unexpected(tok, "a string literal or end of input")
		}
	}

	logger.Debug().
		Str("source", source).
		Str("modifier", stmt.Modifier.String()).
		Bool("fallback", stmt.Fallback != nil).
		Msg("Parsed conditional statement")
	return stmt, nil
}
