package box

import (
	"fmt"
	"strconv"

	"dtype/internal/trace"
)

// Operation names used as the origin of diagnostics and trace events.
const (
	opSetBool    = "SetBool"
	opSetChar    = "SetChar"
	opSetShort   = "SetShort"
	opSetUShort  = "SetUShort"
	opSetInt     = "SetInt"
	opSetUInt    = "SetUInt"
	opSetLong    = "SetLong"
	opSetULong   = "SetULong"
	opSetFloat   = "SetFloat"
	opSetDouble  = "SetDouble"
	opSetString  = "SetString"
	opSetCustom  = "SetCustom"
	opSetStruct  = "SetStruct"
	opChangeSize = "ChangeSize"
	opClear      = "Clear"

	opAsBool    = "AsBool"
	opAsChar    = "AsChar"
	opAsShort   = "AsShort"
	opAsUShort  = "AsUShort"
	opAsInt     = "AsInt"
	opAsUInt    = "AsUInt"
	opAsLong    = "AsLong"
	opAsULong   = "AsULong"
	opAsFloat   = "AsFloat"
	opAsDouble  = "AsDouble"
	opAsString  = "AsString"
	opAsCustom  = "AsCustom"
	opGetStruct = "GetStruct"

	opPrint      = "Print"
	opDebugPrint = "DebugPrint"
)

// Value is a boxed value. The zero Value is empty and bound to DefaultEnv.
//
// A Value owns its buffer exclusively; always pass *Value around and never
// copy the struct, or two values would alias the same storage.
type Value struct {
	env *Env
	buf []byte
	tag Tag
}

func (v *Value) environ() *Env {
	if v.env == nil {
		v.env = defaultEnv
	}
	return v.env
}

// Env returns the environment v reports to.
func (v *Value) Env() *Env { return v.environ() }

// Tag returns the type v currently holds.
func (v *Value) Tag() Tag { return v.tag }

// TypeName returns the human readable name of the current tag.
func (v *Value) TypeName() string { return v.tag.Name() }

// Len is the number of bytes currently allocated; 0 iff there is no buffer.
func (v *Value) Len() int { return len(v.buf) }

// IsEmpty reports whether v holds no buffer.
func (v *Value) IsEmpty() bool { return v.buf == nil }

// Bytes exposes the live buffer for in-place writes of custom layouts. The
// slice is invalidated by the next setter, ChangeSize or Clear.
func (v *Value) Bytes() []byte { return v.buf }

// Clear releases the buffer and resets the tag to None. It never fails.
func (v *Value) Clear() {
	v.release()
	v.tag = TagNone
	v.traceOp(opClear)
}

// ChangeSize reallocates the buffer to n bytes, keeping the first
// min(old, n) bytes; new bytes are zero. The tag is not touched, so the
// typical use is pre-sizing storage for direct writes through Bytes.
// On allocation failure a MemoryError is raised and the old buffer is kept.
func (v *Value) ChangeSize(n int) error {
	env := v.environ()
	if n <= 0 {
		return fmt.Errorf("%s: %w: %d", opChangeSize, ErrInvalidSize, n)
	}
	buf, err := env.alloc.Alloc(n)
	if err != nil {
		return env.memError(n, opChangeSize, err)
	}
	env.traceMem("alloc", n)
	copy(buf, v.buf)
	v.release()
	v.buf = buf
	v.traceOp(opChangeSize)
	return nil
}

// refresh drops the old buffer and installs a zeroed one of size bytes.
// On failure v is left empty with tag None.
func (v *Value) refresh(size int, op string) error {
	env := v.environ()
	v.release()
	v.tag = TagNone
	if size == 0 {
		return nil
	}
	buf, err := env.alloc.Alloc(size)
	if err != nil {
		return env.memError(size, op, err)
	}
	env.traceMem("alloc", size)
	v.buf = buf
	return nil
}

func (v *Value) release() {
	if v.buf == nil {
		return
	}
	env := v.environ()
	env.alloc.Free(v.buf)
	env.traceMem("free", len(v.buf))
	v.buf = nil
}

// read returns the first n bytes of the buffer.
func (v *Value) read(n int, op string) ([]byte, error) {
	if len(v.buf) < n {
		return nil, fmt.Errorf("%s: %w: need %d bytes, have %d", op, ErrShortBuffer, n, len(v.buf))
	}
	return v.buf[:n], nil
}

func (v *Value) traceOp(op string) {
	env := v.environ()
	if !env.tracer.Enabled() {
		return
	}
	ev := trace.Point(trace.ScopeOp, op, "")
	ev.Extra = map[string]string{
		"tag": v.tag.Keyword(),
		"len": strconv.Itoa(len(v.buf)),
	}
	env.tracer.Emit(ev)
}

func (e *Env) traceMem(what string, size int) {
	if !e.tracer.Enabled() {
		return
	}
	e.tracer.Emit(trace.Point(trace.ScopeMem, what, strconv.Itoa(size)+" bytes"))
}
