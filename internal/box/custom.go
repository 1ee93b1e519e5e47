package box

import (
	"bytes"
	"encoding/binary"
	"fmt"
)

// SetCustom stores a copy of src and tags the value Custom. An empty src
// leaves the value empty but still tagged Custom.
func (v *Value) SetCustom(src []byte) error {
	if err := v.refresh(len(src), opSetCustom); err != nil {
		return err
	}
	copy(v.buf, src)
	return v.tagged(TagCustom, opSetCustom)
}

// SetStruct stores *p as a Custom value. T must have a fixed binary size
// (no slices, strings, maps or pointers); fields are packed with no padding
// in the target's byte order.
func SetStruct[T any](v *Value, p *T) error {
	n := binary.Size(p)
	if n < 0 {
		return fmt.Errorf("%s: %w: %T", opSetStruct, ErrNotFixedSize, *p)
	}
	var w bytes.Buffer
	w.Grow(n)
	if err := binary.Write(&w, v.environ().order(), p); err != nil {
		return fmt.Errorf("%s: %w", opSetStruct, err)
	}
	if err := v.refresh(n, opSetStruct); err != nil {
		return err
	}
	copy(v.buf, w.Bytes())
	return v.tagged(TagCustom, opSetStruct)
}

// GetStruct decodes the buffer into *p, type-checking against Custom.
// The decode happens even on a mismatch, as long as the buffer is large
// enough to hold a T.
func GetStruct[T any](v *Value, p *T) error {
	n := binary.Size(p)
	if n < 0 {
		return fmt.Errorf("%s: %w: %T", opGetStruct, ErrNotFixedSize, *p)
	}
	env := v.environ()
	err := env.check(v, TagCustom, opGetStruct)
	b, rerr := v.read(n, opGetStruct)
	if rerr != nil {
		return joinErr(err, rerr)
	}
	if derr := binary.Read(bytes.NewReader(b), env.order(), p); derr != nil {
		return joinErr(err, fmt.Errorf("%s: %w", opGetStruct, derr))
	}
	return err
}
