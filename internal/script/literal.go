package script

import (
	"encoding/hex"
	"errors"
	"fmt"
	"strconv"
	"strings"

	"fortio.org/safecast"
	"golang.org/x/text/unicode/norm"

	"dtype/internal/box"
	"dtype/internal/diag"
)

// literalError carries the diagnostic code a bad literal maps to.
type literalError struct {
	code diag.Code
	msg  string
}

func (e *literalError) Error() string { return e.msg }

func badLiteral(format string, args ...any) error {
	return &literalError{code: diag.SynBadLiteral, msg: fmt.Sprintf(format, args...)}
}

func outOfRange(format string, args ...any) error {
	return &literalError{code: diag.SynLiteralRange, msg: fmt.Sprintf(format, args...)}
}

// numErr maps a strconv failure to a literal error.
func numErr(tag box.Tag, text string, err error) error {
	if errors.Is(err, strconv.ErrRange) {
		return outOfRange("%s literal %q out of range", tag.Keyword(), text)
	}
	return badLiteral("malformed %s literal %q", tag.Keyword(), text)
}

// parseSigned parses text as a base-prefixed integer and narrows it to T.
func parseSigned[T int16 | int32 | int64](tag box.Tag, text string) (T, error) {
	n, err := strconv.ParseInt(text, 0, 64)
	if err != nil {
		return 0, numErr(tag, text, err)
	}
	v, err := safecast.Conv[T](n)
	if err != nil {
		return 0, outOfRange("%s literal %q out of range", tag.Keyword(), text)
	}
	return v, nil
}

func parseUnsigned[T uint8 | uint16 | uint32 | uint64](tag box.Tag, text string) (T, error) {
	n, err := strconv.ParseUint(text, 0, 64)
	if err != nil {
		return 0, numErr(tag, text, err)
	}
	v, err := safecast.Conv[T](n)
	if err != nil {
		return 0, outOfRange("%s literal %q out of range", tag.Keyword(), text)
	}
	return v, nil
}

// parseLiteral converts the literal token of `set <tag> <literal>` into the
// Go value the matching box setter takes.
func parseLiteral(tag box.Tag, tok Token) (any, error) {
	text := tok.Text
	if tok.Kind == String && tag != box.TagString && tag != box.TagChar {
		return nil, badLiteral("%s literal must not be quoted", tag.Keyword())
	}
	switch tag {
	case box.TagBool:
		switch strings.ToLower(text) {
		case "true", "1", "on":
			return true, nil
		case "false", "0", "off":
			return false, nil
		}
		return nil, badLiteral("malformed bool literal %q", text)
	case box.TagChar:
		return parseChar(tok)
	case box.TagShort:
		return parseSigned[int16](tag, text)
	case box.TagUShort:
		return parseUnsigned[uint16](tag, text)
	case box.TagInt:
		return parseSigned[int32](tag, text)
	case box.TagUInt:
		return parseUnsigned[uint32](tag, text)
	case box.TagLong:
		return parseSigned[int64](tag, text)
	case box.TagULong:
		return parseUnsigned[uint64](tag, text)
	case box.TagFloat:
		f, err := strconv.ParseFloat(text, 32)
		if err != nil {
			return nil, numErr(tag, text, err)
		}
		return float32(f), nil
	case box.TagDouble:
		f, err := strconv.ParseFloat(text, 64)
		if err != nil {
			return nil, numErr(tag, text, err)
		}
		return f, nil
	case box.TagString:
		return norm.NFC.String(text), nil
	}
	return nil, badLiteral("type %s takes no literal", tag.Keyword())
}

// parseChar accepts a single byte (x), a quoted character ('x', '\n', "x")
// or a numeric code (65, 0x41).
func parseChar(tok Token) (byte, error) {
	text := tok.Text
	if tok.Kind == Word && len(text) >= 2 && text[0] == '\'' {
		unq, err := strconv.Unquote(text)
		if err != nil {
			return 0, badLiteral("malformed char literal %s", text)
		}
		text = unq
	} else if tok.Kind == Word && len(text) > 1 {
		return parseUnsigned[uint8](box.TagChar, text)
	}
	if len(text) != 1 {
		return 0, badLiteral("char literal %q is not a single byte", text)
	}
	return text[0], nil
}

// parseHex decodes a run of hex tokens ("01", "ff02", "0xdead") into bytes.
func parseHex(toks []Token) ([]byte, *Token, error) {
	var out []byte
	for i := range toks {
		text := toks[i].Text
		if toks[i].Kind != Word {
			return nil, &toks[i], badLiteral("hex bytes must not be quoted")
		}
		text = strings.TrimPrefix(strings.TrimPrefix(text, "0x"), "0X")
		b, err := hex.DecodeString(text)
		if err != nil {
			return nil, &toks[i], badLiteral("malformed hex bytes %q", toks[i].Text)
		}
		out = append(out, b...)
	}
	return out, nil, nil
}

// parseCount parses a non-negative size or offset.
func parseCount(tok Token) (int, error) {
	if tok.Kind != Word {
		return 0, badLiteral("expected a number, found %s", tok.Kind)
	}
	n, err := strconv.ParseInt(tok.Text, 0, 64)
	if err != nil {
		if errors.Is(err, strconv.ErrRange) {
			return 0, outOfRange("number %q out of range", tok.Text)
		}
		return 0, badLiteral("malformed number %q", tok.Text)
	}
	if n < 0 {
		return 0, outOfRange("number %q must not be negative", tok.Text)
	}
	v, err := safecast.Conv[int](n)
	if err != nil {
		return 0, outOfRange("number %q out of range", tok.Text)
	}
	return v, nil
}
