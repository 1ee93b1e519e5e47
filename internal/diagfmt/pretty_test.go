package diagfmt

import (
	"bytes"
	"strings"
	"testing"

	"dtype/internal/diag"
)

func TestRenderErrorBlock(t *testing.T) {
	d := diag.NewError(diag.MemoryError, "SetInt", "Couldn't allocate memory for size").WithNote("4")
	got := Render(d, DefaultOpts())
	want := "\n----- Dtype Error -----\nErrcode: 1\nin function `SetInt`: Couldn't allocate memory for size: 4\n"
	if got != want {
		t.Fatalf("unexpected block:\nwant %q\ngot  %q", want, got)
	}
}

func TestRenderWarningBlock(t *testing.T) {
	d := diag.NewWarning(diag.TypeMismatch, "AsInt",
		"Type mismatch while getting : `int` [typecode : 5 ] from `float` [typecode : 9 ]")
	got := Render(d, DefaultOpts())
	if !strings.HasPrefix(got, "\n----- Dtype Warning ------\n Type mismatch while getting") {
		t.Fatalf("unexpected warning block %q", got)
	}
	if !strings.Contains(got, "`int` [typecode : 5 ]") || !strings.Contains(got, "`float` [typecode : 9 ]") {
		t.Fatalf("warning must name both types: %q", got)
	}
}

func TestRenderPositionAndNoNotes(t *testing.T) {
	d := diag.NewError(diag.TypeError, "Print", "Invalid type to print.").
		WithNote("hidden").
		At(diag.Pos{File: "a.dts", Line: 2, Col: 1})
	got := Render(d, PrettyOpts{ShowPos: true})
	if strings.Contains(got, "hidden") {
		t.Fatalf("notes must be hidden: %q", got)
	}
	if !strings.Contains(got, "at a.dts:2:1\n") {
		t.Fatalf("missing position: %q", got)
	}
}

func TestStreamReporterAndPretty(t *testing.T) {
	var stream bytes.Buffer
	r := NewStreamReporter(&stream, DefaultOpts())
	bag := diag.NewBag(0)
	rep := diag.MultiReporter{r, diag.BagReporter{Bag: bag}}
	rep.Report(diag.NewError(diag.WarnAsError, "AsBool", "All warnings treated as errors, Error produced due to type mismatch."))

	var replay bytes.Buffer
	if err := Pretty(&replay, bag, DefaultOpts()); err != nil {
		t.Fatal(err)
	}
	if stream.String() != replay.String() {
		t.Fatalf("stream and replay differ:\n%q\n%q", stream.String(), replay.String())
	}
	if !strings.Contains(stream.String(), "Errcode: 2") {
		t.Fatalf("missing error code: %q", stream.String())
	}
}

func TestRenderSyntaxError(t *testing.T) {
	d := diag.NewError(diag.SynUnknownType, "parse", "unknown type \"pointer\"").
		At(diag.Pos{File: "x.dts", Line: 3, Col: 5})
	got := Render(d, DefaultOpts())
	want := "\n----- Dtype Syntax Error -----\nErrcode: S0204\nunknown type \"pointer\"\nat x.dts:3:5\n"
	if got != want {
		t.Fatalf("unexpected block:\nwant %q\ngot  %q", want, got)
	}
}

func TestRenderShort(t *testing.T) {
	d := diag.NewWarning(diag.TypeMismatch, "AsInt", "Type mismatch while getting").
		At(diag.Pos{File: "a.dts", Line: 3, Col: 1})
	opts := DefaultOpts()
	opts.Short = true
	got := Render(d, opts)
	want := "warning W0100 a.dts:3:1 AsInt: Type mismatch while getting\n"
	if got != want {
		t.Fatalf("short render:\nwant %q\ngot  %q", want, got)
	}
}
