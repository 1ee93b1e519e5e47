package box

import (
	"fmt"
	"io"
	"math"
	"strconv"

	"dtype/internal/diag"
)

const customPlaceholder = "dtype_custom_variable"

// Fprint writes the textual rendering of v to w and returns the number of
// bytes written. An invalid tag raises TypeError and writes nothing.
func (v *Value) Fprint(w io.Writer) (int, error) {
	s, err := v.render(opPrint)
	if err != nil {
		return 0, err
	}
	return io.WriteString(w, s)
}

// Print is Fprint to the environment's output.
func (v *Value) Print() (int, error) {
	return v.Fprint(v.environ().out)
}

// FdebugPrint writes a block with the tag code, type name, buffer length
// and rendered content.
func (v *Value) FdebugPrint(w io.Writer) (int, error) {
	if !v.tag.Valid() {
		return 0, v.invalidPrint(opDebugPrint)
	}
	content, err := v.render(opDebugPrint)
	if err != nil {
		return 0, err
	}
	return fmt.Fprintf(w, "\n{ typecode = %d, type = `%s`, size = `%d`, content = `%s` }\n",
		uint8(v.tag), v.tag.Name(), len(v.buf), content)
}

// DebugPrint is FdebugPrint to the environment's output.
func (v *Value) DebugPrint() (int, error) {
	return v.FdebugPrint(v.environ().out)
}

// String renders v without raising diagnostics.
func (v *Value) String() string {
	if !v.tag.Valid() {
		return fmt.Sprintf("<corrupt tag %d>", uint8(v.tag))
	}
	s, err := v.renderQuiet("String")
	if err != nil {
		return "<" + err.Error() + ">"
	}
	return s
}

func (v *Value) render(op string) (string, error) {
	if !v.tag.Valid() {
		return "", v.invalidPrint(op)
	}
	return v.renderQuiet(op)
}

func (v *Value) invalidPrint(op string) error {
	v.environ().Raise(op, msgBadPrint, diag.TypeError, corruptNote(v.tag))
	return &diag.Error{Code: diag.TypeError, Op: op, Message: msgBadPrint}
}

func (v *Value) renderQuiet(op string) (string, error) {
	switch v.tag {
	case TagNone:
		return "none", nil
	case TagBool:
		b, err := v.decodeBool(op)
		if err != nil {
			return "", err
		}
		return strconv.FormatBool(b), nil
	case TagChar:
		c, err := v.decodeChar(op)
		if err != nil {
			return "", err
		}
		return string([]byte{c}), nil
	case TagShort:
		u, err := v.decode16(op)
		return strconv.FormatInt(int64(bitsI16(u)), 10), err
	case TagUShort:
		u, err := v.decode16(op)
		return strconv.FormatUint(uint64(u), 10), err
	case TagInt:
		u, err := v.decode32(op)
		return strconv.FormatInt(int64(bitsI32(u)), 10), err
	case TagUInt:
		u, err := v.decode32(op)
		return strconv.FormatUint(uint64(u), 10), err
	case TagLong:
		n, err := v.decodeLong(op)
		return strconv.FormatInt(n, 10), err
	case TagULong:
		n, err := v.decodeULong(op)
		return strconv.FormatUint(n, 10), err
	case TagFloat:
		u, err := v.decode32(op)
		return formatFixed(float64(math.Float32frombits(u))), err
	case TagDouble:
		u, err := v.decode64(op)
		return formatFixed(math.Float64frombits(u)), err
	case TagString:
		return v.decodeString(), nil
	case TagCustom:
		return customPlaceholder, nil
	}
	return "", fmt.Errorf("%s: unreachable tag %d", op, uint8(v.tag))
}

// formatFixed matches printf("%f").
func formatFixed(f float64) string {
	switch {
	case math.IsNaN(f):
		if math.Signbit(f) {
			return "-nan"
		}
		return "nan"
	case math.IsInf(f, 1):
		return "inf"
	case math.IsInf(f, -1):
		return "-inf"
	}
	return strconv.FormatFloat(f, 'f', 6, 64)
}
