package diagfmt

import (
	"fmt"
	"io"
	"strings"

	"github.com/fatih/color"

	"dtype/internal/diag"
)

const (
	errorHeader   = "----- Dtype Error -----"
	warningHeader = "----- Dtype Warning ------"
	infoHeader    = "----- Dtype Info -----"
	syntaxHeader  = "----- Dtype Syntax Error -----"
)

type palette struct {
	err  *color.Color
	warn *color.Color
	info *color.Color
	op   *color.Color
	dim  *color.Color
}

func newPalette(enabled bool) palette {
	p := palette{
		err:  color.New(color.FgRed, color.Bold),
		warn: color.New(color.FgYellow, color.Bold),
		info: color.New(color.FgCyan),
		op:   color.New(color.FgWhite, color.Bold),
		dim:  color.New(color.Faint),
	}
	if enabled {
		for _, c := range []*color.Color{p.err, p.warn, p.info, p.op, p.dim} {
			c.EnableColor()
		}
	} else {
		for _, c := range []*color.Color{p.err, p.warn, p.info, p.op, p.dim} {
			c.DisableColor()
		}
	}
	return p
}

// Render formats one diagnostic as a block.
//
// Errors:
//
//	----- Dtype Error -----
//	Errcode: 1
//	in function `SetInt`: Couldn't allocate memory for size: 4
//
// Warnings:
//
//	----- Dtype Warning ------
//	 Type mismatch while getting : `int` [typecode : 5 ] from `float` [typecode : 9 ]
func Render(d diag.Diagnostic, opts PrettyOpts) string {
	if opts.Short {
		return diag.FormatShort([]diag.Diagnostic{d}, opts.ShowNotes) + "\n"
	}
	p := newPalette(opts.Color)
	var sb strings.Builder
	sb.WriteByte('\n')
	switch {
	case d.Severity == diag.SevError && d.Code.IsSyntax():
		sb.WriteString(p.err.Sprint(syntaxHeader))
		sb.WriteByte('\n')
		fmt.Fprintf(&sb, "Errcode: %s\n", d.Code.ID())
		sb.WriteString(d.Message)
	case d.Severity == diag.SevError:
		sb.WriteString(p.err.Sprint(errorHeader))
		sb.WriteByte('\n')
		fmt.Fprintf(&sb, "Errcode: %d\n", int(d.Code))
		fmt.Fprintf(&sb, "in function `%s`: %s", p.op.Sprint(d.Op), d.Message)
	case d.Severity == diag.SevWarning:
		sb.WriteString(p.warn.Sprint(warningHeader))
		sb.WriteByte('\n')
		sb.WriteByte(' ')
		sb.WriteString(d.Message)
	default:
		sb.WriteString(p.info.Sprint(infoHeader))
		sb.WriteByte('\n')
		sb.WriteByte(' ')
		sb.WriteString(d.Message)
	}
	if opts.ShowNotes {
		for _, n := range d.Notes {
			sb.WriteString(": ")
			sb.WriteString(n.Msg)
		}
	}
	sb.WriteByte('\n')
	if opts.ShowPos && !d.Primary.IsZero() {
		sb.WriteString(p.dim.Sprintf("at %s", d.Primary))
		sb.WriteByte('\n')
	}
	return sb.String()
}

// Pretty writes every diagnostic of bag in its current order.
func Pretty(w io.Writer, bag *diag.Bag, opts PrettyOpts) error {
	if w == nil || bag == nil {
		return nil
	}
	for _, d := range bag.Items() {
		if _, err := io.WriteString(w, Render(d, opts)); err != nil {
			return err
		}
	}
	return nil
}
