package diag

import "fmt"

// Pos is an optional source position (script file, 1-based line/column).
type Pos struct {
	File string
	Line int
	Col  int
}

// IsZero reports whether p carries no position.
func (p Pos) IsZero() bool {
	return p.File == "" && p.Line == 0 && p.Col == 0
}

func (p Pos) String() string {
	if p.IsZero() {
		return "<no-pos>"
	}
	file := p.File
	if file == "" {
		file = "<input>"
	}
	return fmt.Sprintf("%s:%d:%d", file, p.Line, p.Col)
}

type Note struct {
	Msg string
}

type Diagnostic struct {
	Severity Severity
	Code     Code
	Op       string
	Message  string
	Primary  Pos
	Notes    []Note
}

func (d Diagnostic) IsError() bool {
	return d.Severity >= SevError
}
