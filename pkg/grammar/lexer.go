package grammar

import (
	"fmt"
	"strconv"
	"strings"
	"unicode"
	"unicode/utf8"

	"github.com/arthur-debert/dirmod/pkg/errors"
	"github.com/arthur-debert/dirmod/pkg/types"
)

// TokenKind classifies a lexed token
type TokenKind uint8

const (
	TokEOF TokenKind = iota
	TokIdent
	TokString
	TokSemi
	TokComma
	TokLParen
	TokRParen
	TokOrOr
	TokPunct
)

func (k TokenKind) String() string {
	switch k {
	case TokEOF:
		return "end of input"
	case TokIdent:
		return "identifier"
	case TokString:
		return "string literal"
	case TokSemi:
		return "`;`"
	case TokComma:
		return "`,`"
	case TokLParen:
		return "`(`"
	case TokRParen:
		return "`)`"
	case TokOrOr:
		return "`||`"
	default:
		return "punctuation"
	}
}

// Token is one lexeme with its position. Text is the raw source text, and
// for string literals Value holds the unquoted content.
type Token struct {
	Kind  TokenKind
	Text  string
	Value string
	Pos   types.Position
}

func (t Token) String() string {
	if t.Kind == TokEOF {
		return t.Kind.String()
	}
	return fmt.Sprintf("`%s`", t.Text)
}

// IsKeyword reports whether the token is the identifier kw
func (t Token) IsKeyword(kw string) bool {
	return t.Kind == TokIdent && t.Text == kw
}

type lexer struct {
	source string
	src    string
	off    int
	line   int
	col    int
}

// Lex splits a configuration string into tokens. The returned slice always
// ends with a TokEOF token. Comments (`//` and `/* */`) are skipped.
func Lex(source, text string) ([]Token, error) {
	lx := &lexer{source: source, src: text, line: 1, col: 1}
	var tokens []Token
	for {
		tok, err := lx.next()
		if err != nil {
			return nil, err
		}
		tokens = append(tokens, tok)
		if tok.Kind == TokEOF {
			return tokens, nil
		}
	}
}

func (lx *lexer) pos() types.Position {
	return types.Position{Source: lx.source, Offset: lx.off, Line: lx.line, Column: lx.col}
}

func (lx *lexer) peek() (rune, int) {
	if lx.off >= len(lx.src) {
		return 0, 0
	}
	return utf8.DecodeRuneInString(lx.src[lx.off:])
}

func (lx *lexer) advance() rune {
	r, size := lx.peek()
	lx.off += size
	if r == '\n' {
		lx.line++
		lx.col = 1
	} else {
		lx.col++
	}
	return r
}

func (lx *lexer) skipTrivia() error {
	for lx.off < len(lx.src) {
		r, _ := lx.peek()
		switch {
		case unicode.IsSpace(r):
			lx.advance()
		case strings.HasPrefix(lx.src[lx.off:], "//"):
			for lx.off < len(lx.src) {
				if lx.advance() == '\n' {
					break
				}
			}
		case strings.HasPrefix(lx.src[lx.off:], "/*"):
			start := lx.pos()
			lx.advance()
			lx.advance()
			for {
				if lx.off >= len(lx.src) {
					return errors.At(start, errors.ErrSyntax, "unterminated block comment")
				}
				if strings.HasPrefix(lx.src[lx.off:], "*/") {
					lx.advance()
					lx.advance()
					break
				}
				lx.advance()
			}
		default:
			return nil
		}
	}
	return nil
}

func (lx *lexer) next() (Token, error) {
	if err := lx.skipTrivia(); err != nil {
		return Token{}, err
	}
	start := lx.pos()
	if lx.off >= len(lx.src) {
		return Token{Kind: TokEOF, Pos: start}, nil
	}

	r, size := lx.peek()
	if r == utf8.RuneError && size == 1 {
		return Token{}, errors.At(start, errors.ErrSyntax, "configuration is not valid UTF-8")
	}

	switch {
	case isIdentStart(r):
		for lx.off < len(lx.src) {
			r, _ := lx.peek()
			if !isIdentContinue(r) {
				break
			}
			lx.advance()
		}
		return lx.token(TokIdent, start), nil
	case r == '"':
		return lx.lexString(start)
	case r == ';':
		lx.advance()
		return lx.token(TokSemi, start), nil
	case r == ',':
		lx.advance()
		return lx.token(TokComma, start), nil
	case r == '(':
		lx.advance()
		return lx.token(TokLParen, start), nil
	case r == ')':
		lx.advance()
		return lx.token(TokRParen, start), nil
	case strings.HasPrefix(lx.src[lx.off:], "||"):
		lx.advance()
		lx.advance()
		return lx.token(TokOrOr, start), nil
	case strings.HasPrefix(lx.src[lx.off:], "::"):
		lx.advance()
		lx.advance()
		return lx.token(TokPunct, start), nil
	default:
		lx.advance()
		return lx.token(TokPunct, start), nil
	}
}

func (lx *lexer) token(kind TokenKind, start types.Position) Token {
	return Token{Kind: kind, Text: lx.src[start.Offset:lx.off], Pos: start}
}

func (lx *lexer) lexString(start types.Position) (Token, error) {
	lx.advance()
	for {
		if lx.off >= len(lx.src) {
			return Token{}, errors.At(start, errors.ErrSyntax, "unterminated string literal")
		}
		r := lx.advance()
		if r == '\\' {
			if lx.off >= len(lx.src) {
				return Token{}, errors.At(start, errors.ErrSyntax, "unterminated string literal")
			}
			lx.advance()
			continue
		}
		if r == '"' {
			break
		}
	}
	tok := lx.token(TokString, start)
	value, err := strconv.Unquote(tok.Text)
	if err != nil {
		return Token{}, errors.At(start, errors.ErrSyntax, "invalid string literal %s", tok.Text)
	}
	tok.Value = value
	return tok, nil
}

func isIdentStart(r rune) bool {
	return r == '_' || unicode.IsLetter(r)
}

func isIdentContinue(r rune) bool {
	return r == '_' || unicode.IsLetter(r) || unicode.IsDigit(r)
}
