package layout

import "fmt"

// Prim enumerates the C scalar types whose size depends on the target.
type Prim uint8

const (
	PrimBool Prim = iota
	PrimChar
	PrimShort
	PrimInt
	PrimLong
	PrimFloat
	PrimDouble
	PrimPtr
)

func (p Prim) String() string {
	switch p {
	case PrimBool:
		return "bool"
	case PrimChar:
		return "char"
	case PrimShort:
		return "short"
	case PrimInt:
		return "int"
	case PrimLong:
		return "long"
	case PrimFloat:
		return "float"
	case PrimDouble:
		return "double"
	case PrimPtr:
		return "ptr"
	default:
		return fmt.Sprintf("Prim(%d)", p)
	}
}

// TypeLayout is the ABI layout of a scalar for a specific Target.
type TypeLayout struct {
	Size  int
	Align int
}

// LayoutOf returns size and alignment of p. Unsigned variants share the
// layout of their signed counterpart.
func (t Target) LayoutOf(p Prim) (TypeLayout, error) {
	switch p {
	case PrimBool, PrimChar:
		return TypeLayout{Size: 1, Align: 1}, nil
	case PrimShort:
		return TypeLayout{Size: 2, Align: 2}, nil
	case PrimInt, PrimFloat:
		return TypeLayout{Size: 4, Align: 4}, nil
	case PrimDouble:
		// i386 SysV aligns double to 4 inside structs.
		if t.PtrSize == 4 {
			return TypeLayout{Size: 8, Align: 4}, nil
		}
		return TypeLayout{Size: 8, Align: 8}, nil
	case PrimLong:
		if t.LongSize <= 0 {
			return TypeLayout{}, &LayoutError{Kind: LayoutErrBadWidth, Triple: t.Triple, Prim: p, Value: t.LongSize}
		}
		return TypeLayout{Size: t.LongSize, Align: t.LongSize}, nil
	case PrimPtr:
		if t.PtrSize <= 0 {
			return TypeLayout{}, &LayoutError{Kind: LayoutErrBadWidth, Triple: t.Triple, Prim: p, Value: t.PtrSize}
		}
		return TypeLayout{Size: t.PtrSize, Align: t.PtrAlign}, nil
	default:
		return TypeLayout{}, &LayoutError{Kind: LayoutErrUnknownPrim, Triple: t.Triple, Prim: p}
	}
}

// SizeOf is LayoutOf(p).Size, with 0 for unknown primitives.
func (t Target) SizeOf(p Prim) int {
	l, err := t.LayoutOf(p)
	if err != nil {
		return 0
	}
	return l.Size
}
