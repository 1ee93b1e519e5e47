package diag

import (
	"sort"
	"strings"
)

// FormatShort renders diagnostics one per line:
//
//	<severity> <ID> [<pos>] <op>: <message>[; <note>...]
//
// Entries with a position are sorted; newlines in messages are folded so the
// output stays line-oriented (suitable for golden files and CLI --short).
func FormatShort(diags []Diagnostic, includeNotes bool) string {
	if len(diags) == 0 {
		return ""
	}
	ordered := make([]Diagnostic, len(diags))
	copy(ordered, diags)
	sort.SliceStable(ordered, func(i, j int) bool {
		pi, pj := ordered[i].Primary, ordered[j].Primary
		if pi.IsZero() || pj.IsZero() {
			return false
		}
		if pi.File != pj.File {
			return pi.File < pj.File
		}
		if pi.Line != pj.Line {
			return pi.Line < pj.Line
		}
		return pi.Col < pj.Col
	})

	var sb strings.Builder
	for i, d := range ordered {
		if i > 0 {
			sb.WriteByte('\n')
		}
		sb.WriteString(strings.ToLower(d.Severity.String()))
		sb.WriteByte(' ')
		sb.WriteString(d.Code.ID())
		if !d.Primary.IsZero() {
			sb.WriteByte(' ')
			sb.WriteString(d.Primary.String())
		}
		sb.WriteByte(' ')
		if d.Op != "" {
			sb.WriteString(d.Op)
			sb.WriteString(": ")
		}
		sb.WriteString(fold(d.Message))
		if includeNotes {
			for _, n := range d.Notes {
				sb.WriteString("; ")
				sb.WriteString(fold(n.Msg))
			}
		}
	}
	return sb.String()
}

func fold(s string) string {
	return strings.Join(strings.Fields(s), " ")
}
