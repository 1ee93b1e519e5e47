package box

import (
	"bytes"
	"errors"
	"math"
)

// Getters type-check the current tag against the requested type, then
// decode the leading bytes of the buffer at the requested width whatever
// the tag says. A mismatch alone is only a warning: the decoded value is
// returned together with a nil error unless WarnAsError is on. Reading more
// bytes than the buffer holds yields the zero value and ErrShortBuffer.

// AsBool reports whether the first byte is non-zero.
func (v *Value) AsBool() (bool, error) {
	err := v.environ().check(v, TagBool, opAsBool)
	b, rerr := v.decodeBool(opAsBool)
	return b, joinErr(err, rerr)
}

// AsChar returns the first byte.
func (v *Value) AsChar() (byte, error) {
	err := v.environ().check(v, TagChar, opAsChar)
	c, rerr := v.decodeChar(opAsChar)
	return c, joinErr(err, rerr)
}

// AsShort reads two bytes as a signed short.
func (v *Value) AsShort() (int16, error) {
	err := v.environ().check(v, TagShort, opAsShort)
	u, rerr := v.decode16(opAsShort)
	return bitsI16(u), joinErr(err, rerr)
}

// AsUShort reads two bytes in the target byte order.
func (v *Value) AsUShort() (uint16, error) {
	err := v.environ().check(v, TagUShort, opAsUShort)
	u, rerr := v.decode16(opAsUShort)
	return u, joinErr(err, rerr)
}

// AsInt reinterprets the leading 4 bytes as an int.
func (v *Value) AsInt() (int32, error) {
	err := v.environ().check(v, TagInt, opAsInt)
	u, rerr := v.decode32(opAsInt)
	return bitsI32(u), joinErr(err, rerr)
}

// AsUInt is AsInt without the sign.
func (v *Value) AsUInt() (uint32, error) {
	err := v.environ().check(v, TagUInt, opAsUInt)
	u, rerr := v.decode32(opAsUInt)
	return u, joinErr(err, rerr)
}

// AsLong reads a long at the target's long width, sign-extending 4-byte longs.
func (v *Value) AsLong() (int64, error) {
	err := v.environ().check(v, TagLong, opAsLong)
	n, rerr := v.decodeLong(opAsLong)
	return n, joinErr(err, rerr)
}

// AsULong reads an unsigned long at the target's long width.
func (v *Value) AsULong() (uint64, error) {
	err := v.environ().check(v, TagULong, opAsULong)
	n, rerr := v.decodeULong(opAsULong)
	return n, joinErr(err, rerr)
}

// AsFloat decodes 4 bytes as a float. The check is against Float.
func (v *Value) AsFloat() (float32, error) {
	err := v.environ().check(v, TagFloat, opAsFloat)
	u, rerr := v.decode32(opAsFloat)
	return math.Float32frombits(u), joinErr(err, rerr)
}

// AsDouble decodes 8 bytes as a double.
func (v *Value) AsDouble() (float64, error) {
	err := v.environ().check(v, TagDouble, opAsDouble)
	u, rerr := v.decode64(opAsDouble)
	return math.Float64frombits(u), joinErr(err, rerr)
}

// AsString returns the bytes up to the first NUL, or the whole buffer when
// there is none. An empty value yields "".
func (v *Value) AsString() (string, error) {
	err := v.environ().check(v, TagString, opAsString)
	return v.decodeString(), err
}

// AsCustom returns a copy of the buffer; nil for an empty value.
func (v *Value) AsCustom() ([]byte, error) {
	err := v.environ().check(v, TagCustom, opAsCustom)
	if v.buf == nil {
		return nil, err
	}
	return bytes.Clone(v.buf), err
}

// Raw decoders. They never type-check, so Print can reuse them.

func (v *Value) decodeBool(op string) (bool, error) {
	b, err := v.read(TagBool.Width(v.environ().target), op)
	if err != nil {
		return false, err
	}
	return b[0] != 0, nil
}

func (v *Value) decodeChar(op string) (byte, error) {
	b, err := v.read(1, op)
	if err != nil {
		return 0, err
	}
	return b[0], nil
}

func (v *Value) decode16(op string) (uint16, error) {
	b, err := v.read(2, op)
	if err != nil {
		return 0, err
	}
	return v.environ().order().Uint16(b), nil
}

func (v *Value) decode32(op string) (uint32, error) {
	b, err := v.read(4, op)
	if err != nil {
		return 0, err
	}
	return v.environ().order().Uint32(b), nil
}

func (v *Value) decode64(op string) (uint64, error) {
	b, err := v.read(8, op)
	if err != nil {
		return 0, err
	}
	return v.environ().order().Uint64(b), nil
}

func (v *Value) decodeLong(op string) (int64, error) {
	if TagLong.Width(v.environ().target) == 4 {
		u, err := v.decode32(op)
		return int64(bitsI32(u)), err
	}
	u, err := v.decode64(op)
	return bitsI64(u), err
}

func (v *Value) decodeULong(op string) (uint64, error) {
	if TagULong.Width(v.environ().target) == 4 {
		u, err := v.decode32(op)
		return uint64(u), err
	}
	return v.decode64(op)
}

func (v *Value) decodeString() string {
	if i := bytes.IndexByte(v.buf, 0); i >= 0 {
		return string(v.buf[:i])
	}
	return string(v.buf)
}

func joinErr(check, read error) error {
	switch {
	case read == nil:
		return check
	case check == nil:
		return read
	default:
		return errors.Join(check, read)
	}
}
