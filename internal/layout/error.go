package layout

import "fmt"

// LayoutErrorKind enumerates types of layout calculation errors.
type LayoutErrorKind uint8

const (
	// LayoutErrUnknownTarget indicates a target triple with no ABI table.
	LayoutErrUnknownTarget LayoutErrorKind = iota + 1
	LayoutErrUnknownPrim
	LayoutErrBadWidth
)

// LayoutError represents an error during layout lookup.
type LayoutError struct {
	Kind   LayoutErrorKind
	Triple string
	Prim   Prim // for LayoutErrUnknownPrim and LayoutErrBadWidth
	Value  int  // for LayoutErrBadWidth
}

func (e *LayoutError) Error() string {
	if e == nil {
		return "<nil>"
	}
	switch e.Kind {
	case LayoutErrUnknownTarget:
		return fmt.Sprintf("unknown target triple %q (known: %v)", e.Triple, Triples())
	case LayoutErrUnknownPrim:
		return fmt.Sprintf("no layout for %s on %s", e.Prim, e.Triple)
	case LayoutErrBadWidth:
		return fmt.Sprintf("invalid width %d for %s on %s", e.Value, e.Prim, e.Triple)
	default:
		return fmt.Sprintf("layout error kind=%d target=%s", e.Kind, e.Triple)
	}
}
