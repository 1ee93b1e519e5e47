package script

import (
	"errors"
	"fmt"
	"strings"

	"dtype/internal/box"
	"dtype/internal/diag"
)

const opParse = "parse"

type parser struct {
	lx   *Lexer
	rep  diag.Reporter
	prog *Program
}

// Parse reads the whole source and returns the statements that parsed
// cleanly. Every problem is reported to rep; callers typically collect into
// a diag.Bag and check HasErrors before running.
func Parse(file string, src []byte, rep diag.Reporter) *Program {
	if rep == nil {
		rep = diag.NopReporter{}
	}
	p := &parser{
		lx:   NewLexer(file, src, rep),
		rep:  rep,
		prog: &Program{File: file},
	}
	for {
		line, last := p.line()
		if len(line) > 0 {
			if st, ok := p.stmt(line); ok {
				p.prog.Stmts = append(p.prog.Stmts, st)
			}
		}
		if last {
			return p.prog
		}
	}
}

// ParseLine parses a single command, as typed into the inspector.
func ParseLine(text string, rep diag.Reporter) (Stmt, bool) {
	bag := diag.NewBag(0)
	prog := Parse("", []byte(strings.ReplaceAll(text, "\n", " ")), diag.MultiReporter{rep, diag.BagReporter{Bag: bag}})
	if bag.HasErrors() || len(prog.Stmts) != 1 {
		return Stmt{}, false
	}
	return prog.Stmts[0], true
}

// line collects the tokens of one line. Lines holding an invalid token are
// returned empty since the lexer already reported them.
func (p *parser) line() ([]Token, bool) {
	var toks []Token
	bad := false
	for {
		tok := p.lx.Next()
		switch tok.Kind {
		case EOF:
			if bad {
				return nil, true
			}
			return toks, true
		case EOL:
			if bad {
				return nil, false
			}
			return toks, false
		case Invalid:
			bad = true
		default:
			toks = append(toks, tok)
		}
	}
}

func (p *parser) stmt(toks []Token) (Stmt, bool) {
	head := toks[0]
	args := toks[1:]
	st := Stmt{Pos: head.Pos}
	if head.Kind != Word {
		p.errorf(diag.SynUnknownCommand, head.Pos, "expected a command, found %s %s", head.Kind, head.Raw)
		return st, false
	}
	switch head.Text {
	case "set":
		st.Op = OpSet
		return p.set(st, args, head)
	case "get":
		st.Op = OpGet
		if !p.arity(head, args, 1, 1) {
			return st, false
		}
		tag, ok := p.tag(args[0])
		st.Tag = tag
		return st, ok
	case "resize":
		st.Op = OpResize
		if !p.arity(head, args, 1, 1) {
			return st, false
		}
		n, ok := p.count(args[0])
		st.N = n
		return st, ok
	case "poke":
		st.Op = OpPoke
		if !p.arity(head, args, 2, -1) {
			return st, false
		}
		off, ok := p.count(args[0])
		if !ok {
			return st, false
		}
		b, bad, err := parseHex(args[1:])
		if err != nil {
			p.literal(*bad, err)
			return st, false
		}
		st.Offset, st.Bytes = off, b
		return st, true
	case "peek":
		st.Op = OpPeek
		if !p.arity(head, args, 2, 2) {
			return st, false
		}
		off, ok1 := p.count(args[0])
		n, ok2 := p.count(args[1])
		st.Offset, st.N = off, n
		return st, ok1 && ok2
	case "option":
		st.Op = OpOption
		return p.option(st, head, args)
	}
	if op, ok := bareOps[head.Text]; ok {
		st.Op = op
		return st, p.arity(head, args, 0, 0)
	}
	p.errorf(diag.SynUnknownCommand, head.Pos, "unknown command %q", head.Text)
	return st, false
}

var bareOps = map[string]Op{
	"clear": OpClear,
	"print": OpPrint,
	"debug": OpDebug,
	"type":  OpType,
	"len":   OpLen,
}

func (p *parser) set(st Stmt, args []Token, head Token) (Stmt, bool) {
	if !p.arity(head, args, 1, -1) {
		return st, false
	}
	tag, ok := p.tag(args[0])
	if !ok {
		return st, false
	}
	st.Tag = tag
	if tag == box.TagCustom {
		b, bad, err := parseHex(args[1:])
		if err != nil {
			p.literal(*bad, err)
			return st, false
		}
		st.Bytes = b
		return st, true
	}
	if !p.arity(head, args, 2, 2) {
		return st, false
	}
	val, err := parseLiteral(tag, args[1])
	if err != nil {
		p.literal(args[1], err)
		return st, false
	}
	st.Value = val
	return st, true
}

func (p *parser) option(st Stmt, head Token, args []Token) (Stmt, bool) {
	if !p.arity(head, args, 2, 2) {
		return st, false
	}
	opt, ok := optionNames[args[0].Text]
	if !ok || args[0].Kind != Word {
		p.errorf(diag.SynUnknownOption, args[0].Pos, "unknown option %q (want errors, warnings, warn-as-error or exit-on-error)", args[0].Text)
		return st, false
	}
	st.Option = opt
	switch strings.ToLower(args[1].Text) {
	case "on", "true", "1":
		st.On = true
	case "off", "false", "0":
		st.On = false
	default:
		p.errorf(diag.SynBadLiteral, args[1].Pos, "option value must be on or off, found %q", args[1].Text)
		return st, false
	}
	return st, true
}

// tag resolves a type keyword. None is never a valid operand.
func (p *parser) tag(tok Token) (box.Tag, bool) {
	tag, ok := box.ParseTag(tok.Text)
	if !ok || tok.Kind != Word || tag == box.TagNone {
		p.errorf(diag.SynUnknownType, tok.Pos, "unknown type %q", tok.Raw)
		return box.TagNone, false
	}
	return tag, true
}

func (p *parser) count(tok Token) (int, bool) {
	n, err := parseCount(tok)
	if err != nil {
		p.literal(tok, err)
		return 0, false
	}
	return n, true
}

// arity checks lo <= len(args) <= hi; hi < 0 means unbounded.
func (p *parser) arity(head Token, args []Token, lo, hi int) bool {
	n := len(args)
	if n >= lo && (hi < 0 || n <= hi) {
		return true
	}
	var want string
	switch {
	case hi < 0:
		want = fmt.Sprintf("at least %d", lo)
	case lo == hi:
		want = fmt.Sprintf("%d", lo)
	default:
		want = fmt.Sprintf("%d to %d", lo, hi)
	}
	at := head.Pos
	if hi >= 0 && n > hi {
		at = args[hi].Pos
	}
	p.errorf(diag.SynArgCount, at, "%s takes %s argument(s), found %d", head.Text, want, n)
	return false
}

func (p *parser) literal(tok Token, err error) {
	var le *literalError
	code := diag.SynBadLiteral
	if errors.As(err, &le) {
		code = le.code
	}
	p.errorf(code, tok.Pos, "%s", err.Error())
}

func (p *parser) errorf(code diag.Code, at diag.Pos, format string, args ...any) {
	p.rep.Report(diag.NewError(code, opParse, fmt.Sprintf(format, args...)).At(at))
}
