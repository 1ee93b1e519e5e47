package diag

import (
	"fmt"
)

// Code identifies the kind of a diagnostic.
type Code uint16

// Stable codes - values match the exit status used by exit-on-error.
const (
	NoError      Code = 0
	MemoryError  Code = 1
	WarnAsError  Code = 2
	TypeError    Code = 3
	UnknownError Code = 4

	// TypeMismatch tags mismatch warnings. It sits outside the error range
	// so it can never be raised.
	TypeMismatch Code = 100

	// Script front-end findings. Also never raisable.
	SynUnexpectedChar  Code = 200
	SynUnterminatedStr Code = 201
	SynUnknownCommand  Code = 202
	SynArgCount        Code = 203
	SynUnknownType     Code = 204
	SynBadLiteral      Code = 205
	SynLiteralRange    Code = 206
	SynUnknownOption   Code = 207
)

var codeDescription = map[Code]string{
	NoError:      "No error",
	MemoryError:  "Memory error",
	WarnAsError:  "Warning treated as error",
	TypeError:    "Type error",
	UnknownError: "Unknown error",
	TypeMismatch: "Type mismatch",

	SynUnexpectedChar:  "Unexpected character",
	SynUnterminatedStr: "Unterminated string literal",
	SynUnknownCommand:  "Unknown command",
	SynArgCount:        "Wrong number of arguments",
	SynUnknownType:     "Unknown type",
	SynBadLiteral:      "Malformed literal",
	SynLiteralRange:    "Literal out of range",
	SynUnknownOption:   "Unknown option",
}

// Raisable reports whether c is a real error kind accepted by Raise.
func (c Code) Raisable() bool {
	return c > NoError && c <= UnknownError
}

// IsSyntax reports whether c belongs to the script front-end.
func (c Code) IsSyntax() bool {
	return c >= SynUnexpectedChar && c <= SynUnknownOption
}

func (c Code) ID() string {
	switch {
	case c.Raisable():
		return fmt.Sprintf("E%04d", int(c))
	case c == TypeMismatch:
		return fmt.Sprintf("W%04d", int(c))
	case c.IsSyntax():
		return fmt.Sprintf("S%04d", int(c))
	}
	return "E0000"
}

func (c Code) Title() string {
	desc, ok := codeDescription[c]
	if !ok {
		return codeDescription[UnknownError]
	}
	return desc
}

func (c Code) String() string {
	return fmt.Sprintf("[%s]: %s", c.ID(), c.Title())
}
