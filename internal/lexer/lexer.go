package lexer

import (
	"fmt"
	"unicode"
	"unicode/utf8"

	"github.com/iley/goat/internal/source"
)

type TokenType int

// Token types
const (
	LEX_EOF TokenType = iota
	LEX_IDENT
	LEX_NUMBER
	LEX_STRING
	LEX_KEYWORD
	LEX_OPERATOR
	LEX_PUNCTUATION
)

func (t TokenType) String() string {
	switch t {
	case LEX_EOF:
		return "EOF"
	case LEX_IDENT:
		return "IDENT"
	case LEX_NUMBER:
		return "NUMBER"
	case LEX_STRING:
		return "STRING"
	case LEX_KEYWORD:
		return "KEYWORD"
	case LEX_OPERATOR:
		return "OPERATOR"
	case LEX_PUNCTUATION:
		return "PUNCTUATION"
	default:
		return "UNKNOWN"
	}
}

// Keywords in goat
var keywords = map[string]bool{
	"fun":   true,
	"do":    true,
	"done":  true,
	"if":    true,
	"else":  true,
	"let":   true,
	"in":    true,
	"true":  true,
	"false": true,
}

// Single-character operators and punctuation
var singleCharTokens = map[rune]TokenType{
	'(': LEX_PUNCTUATION,
	')': LEX_PUNCTUATION,
	',': LEX_PUNCTUATION,
	'+': LEX_OPERATOR,
	'-': LEX_OPERATOR,
	'*': LEX_OPERATOR,
	'=': LEX_OPERATOR,
}

// Lexeme is a token together with the span of source text it was read from.
// Str is always the verbatim text of the span, quotes included for strings.
type Lexeme struct {
	Type TokenType
	Str  string
	Span source.Span
}

func (l Lexeme) String() string {
	if l.Str == "" {
		return fmt.Sprintf("<%s>", l.Type)
	}
	return fmt.Sprintf("<%s %q>", l.Type, l.Str)
}

func (l Lexeme) IsKeyword(kv string) bool {
	return l.Type == LEX_KEYWORD && l.Str == kv
}

func (l Lexeme) IsPunctuation(pv string) bool {
	return l.Type == LEX_PUNCTUATION && l.Str == pv
}

func (l Lexeme) IsOperator(op string) bool {
	return l.Type == LEX_OPERATOR && l.Str == op
}

type Lexer struct {
	src      *source.Source
	pos      int
	lastSize int
}

func New(src *source.Source) *Lexer {
	return &Lexer{src: src}
}

func (l *Lexer) Source() *source.Source {
	return l.src
}

const eof rune = -1

// readRune reads the next rune from the input, returning eof at the end.
func (l *Lexer) readRune() rune {
	if l.pos >= len(l.src.Text) {
		l.lastSize = 0
		return eof
	}
	r, size := utf8.DecodeRuneInString(l.src.Text[l.pos:])
	l.pos += size
	l.lastSize = size
	return r
}

// unreadRune puts back the last read rune.
// Should be called at most once per readRune.
func (l *Lexer) unreadRune() {
	l.pos -= l.lastSize
	l.lastSize = 0
}

// peekRune returns the next rune without consuming it.
func (l *Lexer) peekRune() rune {
	if l.pos >= len(l.src.Text) {
		return eof
	}
	r, _ := utf8.DecodeRuneInString(l.src.Text[l.pos:])
	return r
}

func (l *Lexer) errorf(offset int, format string, args ...any) error {
	return source.Errorf(l.src.Position(offset), format, args...)
}

func (l *Lexer) lexeme(t TokenType, start int) Lexeme {
	span := l.src.Span(start, l.pos)
	return Lexeme{Type: t, Str: span.Text(), Span: span}
}

// skipSpace skips whitespace characters and // comments
func (l *Lexer) skipSpace() {
	for {
		r := l.readRune()
		switch {
		case r == eof:
			return
		case unicode.IsSpace(r):
			continue
		case r == '/' && l.peekRune() == '/':
			l.skipComment()
		default:
			l.unreadRune()
			return
		}
	}
}

// skipComment skips the rest of the line
func (l *Lexer) skipComment() {
	for {
		r := l.readRune()
		if r == eof || r == '\n' {
			return
		}
	}
}

// Next returns the next lexeme from the input
func (l *Lexer) Next() (Lexeme, error) {
	l.skipSpace()
	start := l.pos
	r := l.readRune()
	switch {
	case r == eof:
		return l.lexeme(LEX_EOF, start), nil
	case r == utf8.RuneError && l.lastSize == 1:
		return Lexeme{}, l.errorf(start, "invalid UTF-8 encoding")
	case unicode.IsLetter(r) || r == '_':
		l.unreadRune()
		return l.lexIdent(start), nil
	case r == '"':
		return l.lexString(start)
	case isDigit(r):
		l.unreadRune()
		return l.lexNumber(start), nil
	case r == '<' || r == '>':
		if l.peekRune() == '=' {
			l.readRune()
		}
		return l.lexeme(LEX_OPERATOR, start), nil
	case r == '/':
		return l.lexeme(LEX_OPERATOR, start), nil
	default:
		if tokenType, ok := singleCharTokens[r]; ok {
			return l.lexeme(tokenType, start), nil
		}
		return Lexeme{}, l.errorf(start, "unexpected character %q", r)
	}
}

// lexIdent reads an identifier or keyword
func (l *Lexer) lexIdent(start int) Lexeme {
	for {
		r := l.readRune()
		if r == eof {
			break
		}
		if !unicode.IsLetter(r) && !unicode.IsDigit(r) && r != '_' {
			l.unreadRune()
			break
		}
	}
	lex := l.lexeme(LEX_IDENT, start)
	if keywords[lex.Str] {
		lex.Type = LEX_KEYWORD
	}
	return lex
}

// lexString reads a string literal. Escapes are skipped over, not decoded:
// the literal keeps its source text.
func (l *Lexer) lexString(start int) (Lexeme, error) {
	for {
		r := l.readRune()
		switch r {
		case eof:
			return Lexeme{}, l.errorf(start, "unterminated string literal")
		case '"':
			return l.lexeme(LEX_STRING, start), nil
		case '\\':
			if l.readRune() == eof {
				return Lexeme{}, l.errorf(start, "unterminated string literal")
			}
		}
	}
}

// lexNumber reads a number literal: digits with an optional fraction.
func (l *Lexer) lexNumber(start int) Lexeme {
	l.skipDigits()
	if l.peekRune() == '.' {
		l.readRune()
		if isDigit(l.peekRune()) {
			l.skipDigits()
		} else {
			// "1." is the number 1 followed by something else.
			l.unreadRune()
		}
	}
	return l.lexeme(LEX_NUMBER, start)
}

func (l *Lexer) skipDigits() {
	for {
		r := l.readRune()
		if r == eof {
			return
		}
		if !isDigit(r) {
			l.unreadRune()
			return
		}
	}
}

func isDigit(r rune) bool {
	return r >= '0' && r <= '9'
}
