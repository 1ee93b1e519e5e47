package box

import (
	"fmt"

	"dtype/internal/layout"
)

// Tag identifies which type a Value currently holds.
type Tag uint8

// Numeric values are stable; they appear in debug output and diagnostics.
const (
	TagNone Tag = iota
	TagBool
	TagChar
	TagShort
	TagUShort
	TagInt
	TagUInt
	TagLong
	TagULong
	TagFloat
	TagDouble
	TagString
	TagCustom
)

var tagNames = [...]string{
	TagNone:   "none",
	TagBool:   "boolean",
	TagChar:   "character",
	TagShort:  "short",
	TagUShort: "unsigned short",
	TagInt:    "int",
	TagUInt:   "unsigned int",
	TagLong:   "long",
	TagULong:  "unsigned long",
	TagFloat:  "float",
	TagDouble: "double",
	TagString: "string",
	TagCustom: "other (custom type)",
}

var tagKeywords = [...]string{
	TagNone:   "none",
	TagBool:   "bool",
	TagChar:   "char",
	TagShort:  "short",
	TagUShort: "ushort",
	TagInt:    "int",
	TagUInt:   "uint",
	TagLong:   "long",
	TagULong:  "ulong",
	TagFloat:  "float",
	TagDouble: "double",
	TagString: "string",
	TagCustom: "custom",
}

// Valid reports whether t is inside the enumeration. An invalid tag on a
// Value means its state is corrupted.
func (t Tag) Valid() bool {
	return t <= TagCustom
}

// Name returns the human readable type name used in diagnostics.
func (t Tag) Name() string {
	if !t.Valid() {
		return fmt.Sprintf("Tag(%d)", uint8(t))
	}
	return tagNames[t]
}

// Keyword returns the short spelling used by the script language.
func (t Tag) Keyword() string {
	if !t.Valid() {
		return fmt.Sprintf("tag%d", uint8(t))
	}
	return tagKeywords[t]
}

func (t Tag) String() string {
	return t.Name()
}

// ParseTag resolves a keyword ("int", "ushort", ...) to a Tag.
func ParseTag(s string) (Tag, bool) {
	for i, kw := range tagKeywords {
		if kw == s {
			return Tag(i), true //nolint:gosec // i < len(tagKeywords)
		}
	}
	return TagNone, false
}

// Tags lists every valid tag in numeric order.
func Tags() []Tag {
	out := make([]Tag, 0, len(tagNames))
	for t := TagNone; t <= TagCustom; t++ {
		out = append(out, t)
	}
	return out
}

// Width is the buffer size a setter allocates for t on target. Strings and
// custom values have no fixed width and report 0, as does None.
func (t Tag) Width(target layout.Target) int {
	switch t {
	case TagBool:
		return target.SizeOf(layout.PrimBool)
	case TagChar:
		return target.SizeOf(layout.PrimChar)
	case TagShort, TagUShort:
		return target.SizeOf(layout.PrimShort)
	case TagInt, TagUInt:
		return target.SizeOf(layout.PrimInt)
	case TagLong, TagULong:
		return target.SizeOf(layout.PrimLong)
	case TagFloat:
		return target.SizeOf(layout.PrimFloat)
	case TagDouble:
		return target.SizeOf(layout.PrimDouble)
	default:
		return 0
	}
}
