package script

import "dtype/internal/diag"

type Kind uint8

const (
	EOF Kind = iota
	EOL
	Word
	String
	Invalid
)

func (k Kind) String() string {
	switch k {
	case EOF:
		return "end of input"
	case EOL:
		return "end of line"
	case Word:
		return "word"
	case String:
		return "string"
	default:
		return "invalid"
	}
}

// Token is a lexeme. For String tokens Text holds the decoded value and Raw
// the quoted source.
type Token struct {
	Kind Kind
	Text string
	Raw  string
	Pos  diag.Pos
}
