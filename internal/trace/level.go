package trace

import (
	"fmt"
	"strings"
)

// Level controls tracing verbosity.
type Level uint8

const (
	LevelOff   Level = iota
	LevelError       // raised diagnostics only
	LevelOp          // sessions and value operations
	LevelDebug       // also buffer alloc/free
)

var levelNames = [...]string{
	LevelOff:   "off",
	LevelError: "error",
	LevelOp:    "op",
	LevelDebug: "debug",
}

func (l Level) String() string {
	if int(l) < len(levelNames) {
		return levelNames[l]
	}
	return "unknown"
}

// ParseLevel reads a --trace-level value, case-insensitively.
func ParseLevel(s string) (Level, error) {
	s = strings.ToLower(strings.TrimSpace(s))
	if s == "" {
		return LevelOff, nil
	}
	for l, name := range levelNames {
		if name == s {
			return Level(l), nil //nolint:gosec // index of a four element table
		}
	}
	return LevelOff, fmt.Errorf("invalid trace level: %q (expected: off|error|op|debug)", s)
}

// ShouldEmit reports whether events of scope pass at level l. Diagnostics
// pass at every level but off.
func (l Level) ShouldEmit(scope Scope) bool {
	if l == LevelOff {
		return false
	}
	if scope == ScopeDiag || l >= LevelDebug {
		return true
	}
	return l >= LevelOp && scope <= ScopeOp
}
