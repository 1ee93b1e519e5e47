package script

import (
	"dtype/internal/box"
	"dtype/internal/diag"
)

type Op uint8

const (
	OpSet Op = iota
	OpGet
	OpResize
	OpPoke
	OpPeek
	OpClear
	OpPrint
	OpDebug
	OpType
	OpLen
	OpOption
)

var opNames = [...]string{
	OpSet:    "set",
	OpGet:    "get",
	OpResize: "resize",
	OpPoke:   "poke",
	OpPeek:   "peek",
	OpClear:  "clear",
	OpPrint:  "print",
	OpDebug:  "debug",
	OpType:   "type",
	OpLen:    "len",
	OpOption: "option",
}

func (o Op) String() string {
	if int(o) < len(opNames) {
		return opNames[o]
	}
	return "op?"
}

// Option names a diagnostic switch of the environment.
type Option uint8

const (
	OptErrors Option = iota
	OptWarnings
	OptWarnAsError
	OptExitOnError
)

var optionNames = map[string]Option{
	"errors":        OptErrors,
	"warnings":      OptWarnings,
	"warn-as-error": OptWarnAsError,
	"exit-on-error": OptExitOnError,
}

// Stmt is one parsed command. Only the fields relevant to Op are set.
type Stmt struct {
	Op  Op
	Pos diag.Pos

	Tag    box.Tag // set, get
	Value  any     // set: bool, byte, int16, uint16, int32, uint32, int64, uint64, float32, float64 or string
	Bytes  []byte  // set custom, poke
	Offset int     // poke, peek
	N      int     // resize, peek

	Option Option // option
	On     bool   // option
}

type Program struct {
	File  string
	Stmts []Stmt
}
