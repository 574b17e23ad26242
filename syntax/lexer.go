package syntax

import (
	"strings"

	"idlglue/report"
)

// Lexer is responsible for tokenizing an IDL source file.
type Lexer struct {
	file *report.File
	src  []rune
	pos  int
	line int
}

// NewLexer creates a new lexer over the given source text.
func NewLexer(file *report.File, src string) *Lexer {
	return &Lexer{
		file: file,
		src:  []rune(src),
		line: 1,
	}
}

// loc returns the location of the lexer's current position.
func (l *Lexer) loc() report.Location {
	return report.Location{File: l.file, Line: l.line}
}

// peek returns the current rune, or -1 at the end of the file.
func (l *Lexer) peek() rune {
	if l.pos >= len(l.src) {
		return -1
	}

	return l.src[l.pos]
}

// peekAt returns the rune a given offset ahead, or -1 past the end of the
// file.
func (l *Lexer) peekAt(offset int) rune {
	if l.pos+offset >= len(l.src) {
		return -1
	}

	return l.src[l.pos+offset]
}

// skip moves past the current rune, keeping the line count current.
func (l *Lexer) skip() {
	if l.peek() == '\n' {
		l.line++
	}

	l.pos++
}

// NextToken retrieves the next token from the source.  If the source has
// ended, this will be an EOF token.
func (l *Lexer) NextToken() (*Token, error) {
	for {
		c := l.peek()

		switch {
		case c == -1:
			return &Token{Kind: TOK_EOF, Line: l.line}, nil
		case c == ' ' || c == '\t' || c == '\r' || c == '\n' || c == '\v' || c == '\f':
			l.skip()
		case c == '/' && l.peekAt(1) == '/':
			for l.peek() != '\n' && l.peek() != -1 {
				l.skip()
			}
		case c == '/' && l.peekAt(1) == '*':
			if err := l.skipBlockComment(); err != nil {
				return nil, err
			}
		case c == '%' && l.peekAt(1) == '{':
			return l.lexDelimited(TOK_VERBATIM, '}')
		case c == '%' && l.peekAt(1) == '[':
			return l.lexDelimited(TOK_DOCS, ']')
		case c == '"':
			return l.lexString()
		case isDigit(c):
			return l.lexNumber(), nil
		case isIdentStart(c):
			return l.lexIdentOrKeyword(), nil
		default:
			return l.lexPunct()
		}
	}
}

func (l *Lexer) skipBlockComment() error {
	start := l.loc()
	l.skip()
	l.skip()
	for {
		if l.peek() == -1 {
			return report.Raise(start, "unterminated comment")
		}

		if l.peek() == '*' && l.peekAt(1) == '/' {
			l.skip()
			l.skip()
			return nil
		}

		l.skip()
	}
}

// lexDelimited lexes a `%{ ... %}` or `%[ ... %]` block, returning the
// enclosed text.
func (l *Lexer) lexDelimited(kind int, closer rune) (*Token, error) {
	start := l.loc()
	l.skip()
	l.skip()

	var sb strings.Builder
	for {
		if l.peek() == -1 {
			return nil, report.Raise(start, "unterminated block")
		}

		if l.peek() == '%' && l.peekAt(1) == closer {
			l.skip()
			l.skip()
			return &Token{Kind: kind, Value: sb.String(), Line: start.Line}, nil
		}

		sb.WriteRune(l.peek())
		l.skip()
	}
}

func (l *Lexer) lexString() (*Token, error) {
	start := l.loc()
	l.skip()

	var sb strings.Builder
	for {
		switch c := l.peek(); c {
		case -1:
			return nil, report.Raise(start, "unterminated string")
		case '"':
			l.skip()
			return &Token{Kind: TOK_STRING, Value: sb.String(), Line: start.Line}, nil
		case '\\':
			l.skip()
			switch e := l.peek(); e {
			case 'n':
				sb.WriteRune('\n')
			case 'r':
				sb.WriteRune('\r')
			case 't':
				sb.WriteRune('\t')
			default:
				sb.WriteRune(e)
			}

			l.skip()
		default:
			sb.WriteRune(c)
			l.skip()
		}
	}
}

// lexNumber lexes an integer literal: decimal, octal or hexadecimal.
func (l *Lexer) lexNumber() *Token {
	start := l.loc()

	var sb strings.Builder
	for isHexDigit(l.peek()) || l.peek() == 'x' || l.peek() == 'X' {
		sb.WriteRune(l.peek())
		l.skip()
	}

	return &Token{Kind: TOK_NUMBER, Value: sb.String(), Line: start.Line}
}

func (l *Lexer) lexIdentOrKeyword() *Token {
	start := l.loc()

	var sb strings.Builder
	sb.WriteRune(l.peek())
	l.skip()
	for isIdentChar(l.peek()) {
		sb.WriteRune(l.peek())
		l.skip()
	}

	value := sb.String()
	if kind, ok := keywords[value]; ok {
		return &Token{Kind: kind, Value: value, Line: start.Line}
	}

	return &Token{Kind: TOK_ID, Value: value, Line: start.Line}
}

// punctPatterns maps punctuation runes to their token kind.
var punctPatterns = map[rune]int{
	'{': TOK_LBRACE,
	'}': TOK_RBRACE,
	'(': TOK_LPAREN,
	')': TOK_RPAREN,
	'[': TOK_LBRACKET,
	']': TOK_RBRACKET,
	';': TOK_SEMI,
	',': TOK_COMMA,
	'=': TOK_ASSIGN,
	'?': TOK_QUESTION,
}

func (l *Lexer) lexPunct() (*Token, error) {
	start := l.loc()
	c := l.peek()

	if c == ':' {
		l.skip()
		if l.peek() == ':' {
			l.skip()
			return &Token{Kind: TOK_SCOPE, Value: "::", Line: start.Line}, nil
		}

		return &Token{Kind: TOK_COLON, Value: ":", Line: start.Line}, nil
	}

	if kind, ok := punctPatterns[c]; ok {
		l.skip()
		return &Token{Kind: kind, Value: string(c), Line: start.Line}, nil
	}

	return nil, report.Raise(start, "unexpected character `%c`", c)
}

func isDigit(c rune) bool {
	return '0' <= c && c <= '9'
}

func isHexDigit(c rune) bool {
	return isDigit(c) || ('a' <= c && c <= 'f') || ('A' <= c && c <= 'F')
}

func isIdentStart(c rune) bool {
	return c == '_' || c == '~' || ('a' <= c && c <= 'z') || ('A' <= c && c <= 'Z')
}

func isIdentChar(c rune) bool {
	return c == '_' || isDigit(c) || ('a' <= c && c <= 'z') || ('A' <= c && c <= 'Z')
}
