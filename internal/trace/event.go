package trace

import "time"

// Kind distinguishes span edges from instant events.
type Kind uint8

const (
	KindSpanBegin Kind = iota + 1
	KindSpanEnd
	KindPoint
)

func (k Kind) String() string {
	switch k {
	case KindSpanBegin:
		return "begin"
	case KindSpanEnd:
		return "end"
	case KindPoint:
		return "point"
	}
	return "unknown"
}

// Scope is what an event is about. Coarser scopes have lower values;
// Level.ShouldEmit relies on that order.
type Scope uint8

const (
	ScopeSession Scope = iota + 1 // one script run or REPL
	ScopeOp                       // one value operation (SetInt, AsFloat, Clear, ...)
	ScopeMem                      // buffer alloc/free
	ScopeDiag                     // raised error or mismatch warning
)

var scopeNames = map[Scope]string{
	ScopeSession: "session",
	ScopeOp:      "op",
	ScopeMem:     "mem",
	ScopeDiag:    "diag",
}

func (s Scope) String() string {
	if name, ok := scopeNames[s]; ok {
		return name
	}
	return "unknown"
}

// Event is one trace record. Tracers fill in Seq when they accept it.
type Event struct {
	Time     time.Time
	Seq      uint64
	Kind     Kind
	Scope    Scope
	SpanID   uint64
	ParentID uint64 // 0 for roots
	Name     string // "SetInt", "alloc", "W0100", ...
	Detail   string
	Extra    map[string]string
}

// Point builds an instant event stamped with the current time.
func Point(scope Scope, name, detail string) *Event {
	return &Event{Time: time.Now(), Kind: KindPoint, Scope: scope, Name: name, Detail: detail}
}
