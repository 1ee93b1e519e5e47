package box

import (
	"fmt"
	"math"
)

// Every setter releases the previous buffer, allocates exactly the width
// the target gives the type, copies the value and sets the tag. When the
// allocation fails a MemoryError is raised and returned, and the value is
// left empty with tag None.

// SetBool stores b as one byte, 1 or 0.
func (v *Value) SetBool(b bool) error {
	if err := v.refresh(TagBool.Width(v.environ().target), opSetBool); err != nil {
		return err
	}
	if b {
		v.buf[0] = 1
	}
	return v.tagged(TagBool, opSetBool)
}

// SetChar stores a single C char.
func (v *Value) SetChar(c byte) error {
	if err := v.refresh(TagChar.Width(v.environ().target), opSetChar); err != nil {
		return err
	}
	v.buf[0] = c
	return v.tagged(TagChar, opSetChar)
}

// SetShort stores a 2-byte short.
func (v *Value) SetShort(n int16) error {
	if err := v.refresh(TagShort.Width(v.environ().target), opSetShort); err != nil {
		return err
	}
	v.environ().order().PutUint16(v.buf, i16bits(n))
	return v.tagged(TagShort, opSetShort)
}

// SetUShort stores a 2-byte unsigned short.
func (v *Value) SetUShort(n uint16) error {
	if err := v.refresh(TagUShort.Width(v.environ().target), opSetUShort); err != nil {
		return err
	}
	v.environ().order().PutUint16(v.buf, n)
	return v.tagged(TagUShort, opSetUShort)
}

// SetInt stores a 4-byte int in the target byte order.
func (v *Value) SetInt(n int32) error {
	if err := v.refresh(TagInt.Width(v.environ().target), opSetInt); err != nil {
		return err
	}
	v.environ().order().PutUint32(v.buf, i32bits(n))
	return v.tagged(TagInt, opSetInt)
}

// SetUInt is SetInt for unsigned int.
func (v *Value) SetUInt(n uint32) error {
	if err := v.refresh(TagUInt.Width(v.environ().target), opSetUInt); err != nil {
		return err
	}
	v.environ().order().PutUint32(v.buf, n)
	return v.tagged(TagUInt, opSetUInt)
}

// SetLong stores n at the target's long width. On targets with a 4-byte
// long, n must fit in 32 bits or ErrOutOfRange is returned and v is left
// untouched.
func (v *Value) SetLong(n int64) error {
	env := v.environ()
	width := TagLong.Width(env.target)
	var narrow int32
	if width == 4 {
		var err error
		if narrow, err = narrowLong(n); err != nil {
			return fmt.Errorf("%s: %w: %d does not fit a 4-byte long on %s: %w", opSetLong, ErrOutOfRange, n, env.target.Triple, err)
		}
	}
	if err := v.refresh(width, opSetLong); err != nil {
		return err
	}
	if width == 4 {
		env.order().PutUint32(v.buf, i32bits(narrow))
	} else {
		env.order().PutUint64(v.buf, i64bits(n))
	}
	return v.tagged(TagLong, opSetLong)
}

// SetULong is SetLong for unsigned long.
func (v *Value) SetULong(n uint64) error {
	env := v.environ()
	width := TagULong.Width(env.target)
	var narrow uint32
	if width == 4 {
		var err error
		if narrow, err = narrowULong(n); err != nil {
			return fmt.Errorf("%s: %w: %d does not fit a 4-byte unsigned long on %s: %w", opSetULong, ErrOutOfRange, n, env.target.Triple, err)
		}
	}
	if err := v.refresh(width, opSetULong); err != nil {
		return err
	}
	if width == 4 {
		env.order().PutUint32(v.buf, narrow)
	} else {
		env.order().PutUint64(v.buf, n)
	}
	return v.tagged(TagULong, opSetULong)
}

// SetFloat stores the IEEE 754 bits of f.
func (v *Value) SetFloat(f float32) error {
	if err := v.refresh(TagFloat.Width(v.environ().target), opSetFloat); err != nil {
		return err
	}
	v.environ().order().PutUint32(v.buf, math.Float32bits(f))
	return v.tagged(TagFloat, opSetFloat)
}

// SetDouble stores all 8 bytes of f.
func (v *Value) SetDouble(f float64) error {
	if err := v.refresh(TagDouble.Width(v.environ().target), opSetDouble); err != nil {
		return err
	}
	v.environ().order().PutUint64(v.buf, math.Float64bits(f))
	return v.tagged(TagDouble, opSetDouble)
}

// SetString stores s followed by a NUL terminator, len(s)+1 bytes in all.
func (v *Value) SetString(s string) error {
	if err := v.refresh(len(s)+1, opSetString); err != nil {
		return err
	}
	copy(v.buf, s)
	return v.tagged(TagString, opSetString)
}

func (v *Value) tagged(t Tag, op string) error {
	v.tag = t
	v.traceOp(op)
	return nil
}
