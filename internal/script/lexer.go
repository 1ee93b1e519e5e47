package script

import (
	"fmt"
	"strconv"

	"dtype/internal/diag"
)

// Lexer splits source into words, quoted strings and line ends.
// Comments and horizontal whitespace are skipped.
type Lexer struct {
	file string
	src  []byte
	off  int
	line int
	col  int
	rep  diag.Reporter
}

func NewLexer(file string, src []byte, rep diag.Reporter) *Lexer {
	if rep == nil {
		rep = diag.NopReporter{}
	}
	return &Lexer{file: file, src: src, line: 1, col: 1, rep: rep}
}

func (lx *Lexer) pos() diag.Pos {
	return diag.Pos{File: lx.file, Line: lx.line, Col: lx.col}
}

func (lx *Lexer) eof() bool { return lx.off >= len(lx.src) }

func (lx *Lexer) peek() byte {
	if lx.eof() {
		return 0
	}
	return lx.src[lx.off]
}

func (lx *Lexer) bump() byte {
	b := lx.src[lx.off]
	lx.off++
	if b == '\n' {
		lx.line++
		lx.col = 1
	} else {
		lx.col++
	}
	return b
}

// Next returns the next token. After EOF it keeps returning EOF.
func (lx *Lexer) Next() Token {
	lx.skipBlank()
	if lx.eof() {
		return Token{Kind: EOF, Pos: lx.pos()}
	}
	start := lx.pos()
	switch b := lx.peek(); {
	case b == '\n':
		lx.bump()
		return Token{Kind: EOL, Pos: start}
	case b == '"':
		return lx.scanString(start)
	case b < 0x20 || b == 0x7f:
		lx.bump()
		lx.errorf(diag.SynUnexpectedChar, start, "unexpected control character %#02x", b)
		return Token{Kind: Invalid, Raw: string([]byte{b}), Pos: start}
	default:
		return lx.scanWord(start)
	}
}

func (lx *Lexer) skipBlank() {
	for !lx.eof() {
		switch lx.peek() {
		case ' ', '\t', '\r':
			lx.bump()
		case '#':
			for !lx.eof() && lx.peek() != '\n' {
				lx.bump()
			}
		default:
			return
		}
	}
}

func (lx *Lexer) scanWord(start diag.Pos) Token {
	from := lx.off
	for !lx.eof() {
		b := lx.peek()
		if b == ' ' || b == '\t' || b == '\r' || b == '\n' || b == '#' || b == '"' {
			break
		}
		lx.bump()
	}
	text := string(lx.src[from:lx.off])
	return Token{Kind: Word, Text: text, Raw: text, Pos: start}
}

// scanString reads a Go-style double-quoted literal on a single line.
func (lx *Lexer) scanString(start diag.Pos) Token {
	from := lx.off
	lx.bump() // opening quote
	for !lx.eof() {
		b := lx.peek()
		if b == '\n' {
			break
		}
		lx.bump()
		if b == '\\' && !lx.eof() && lx.peek() != '\n' {
			lx.bump()
			continue
		}
		if b == '"' {
			raw := string(lx.src[from:lx.off])
			text, err := strconv.Unquote(raw)
			if err != nil {
				lx.errorf(diag.SynBadLiteral, start, "invalid escape in string literal %s", raw)
				return Token{Kind: Invalid, Raw: raw, Pos: start}
			}
			return Token{Kind: String, Text: text, Raw: raw, Pos: start}
		}
	}
	raw := string(lx.src[from:lx.off])
	lx.errorf(diag.SynUnterminatedStr, start, "unterminated string literal")
	return Token{Kind: Invalid, Raw: raw, Pos: start}
}

func (lx *Lexer) errorf(code diag.Code, at diag.Pos, format string, args ...any) {
	lx.rep.Report(diag.NewError(code, "lex", fmt.Sprintf(format, args...)).At(at))
}
