package diag

import (
	"errors"
	"fmt"
	"testing"
)

func TestCodeRaisable(t *testing.T) {
	cases := []struct {
		code Code
		want bool
	}{
		{NoError, false},
		{MemoryError, true},
		{WarnAsError, true},
		{TypeError, true},
		{UnknownError, true},
		{TypeMismatch, false},
		{Code(5), false},
	}
	for _, tc := range cases {
		if got := tc.code.Raisable(); got != tc.want {
			t.Fatalf("%d.Raisable() = %v, want %v", tc.code, got, tc.want)
		}
	}
}

func TestCodeString(t *testing.T) {
	if got := MemoryError.String(); got != "[E0001]: Memory error" {
		t.Fatalf("unexpected code string %q", got)
	}
	if got := TypeMismatch.ID(); got != "W0100" {
		t.Fatalf("unexpected mismatch id %q", got)
	}
	if got := SynBadLiteral.ID(); got != "S0205" || SynBadLiteral.Raisable() {
		t.Fatalf("unexpected syntax id %q", got)
	}
	if got := Code(77).Title(); got != "Unknown error" {
		t.Fatalf("unexpected title for unknown code %q", got)
	}
}

func TestErrorIsMatchesByCode(t *testing.T) {
	err := fmt.Errorf("wrapped: %w", &Error{Code: MemoryError, Op: "SetInt", Message: "out of memory"})
	if !errors.Is(err, ErrMemory) {
		t.Fatal("expected errors.Is(err, ErrMemory)")
	}
	if errors.Is(err, ErrType) {
		t.Fatal("memory error must not match ErrType")
	}
	code, ok := CodeOf(err)
	if !ok || code != MemoryError {
		t.Fatalf("CodeOf = %v, %v", code, ok)
	}
	want := "SetInt: E0001 out of memory"
	var de *Error
	if !errors.As(err, &de) || de.Error() != want {
		t.Fatalf("Error() = %q, want %q", de.Error(), want)
	}
}

func TestBagLimitAndQueries(t *testing.T) {
	bag := NewBag(2)
	if !bag.Add(NewWarning(TypeMismatch, "AsInt", "mismatch")) {
		t.Fatal("first add rejected")
	}
	if !bag.Add(NewError(TypeError, "typecheck", "corrupted")) {
		t.Fatal("second add rejected")
	}
	if bag.Add(NewError(MemoryError, "SetInt", "oom")) {
		t.Fatal("third add must be rejected by the limit")
	}
	if !bag.HasErrors() || !bag.HasWarnings() {
		t.Fatal("expected both errors and warnings")
	}
	if bag.Count(TypeMismatch) != 1 {
		t.Fatalf("Count(TypeMismatch) = %d", bag.Count(TypeMismatch))
	}
	bag.Reset()
	if bag.Len() != 0 || bag.Cap() != 2 {
		t.Fatalf("after reset len=%d cap=%d", bag.Len(), bag.Cap())
	}
}

func TestBagSort(t *testing.T) {
	bag := NewBag(0)
	bag.Add(NewWarning(TypeMismatch, "get", "b").At(Pos{File: "a.dts", Line: 3, Col: 1}))
	bag.Add(NewError(TypeError, "get", "a").At(Pos{File: "a.dts", Line: 1, Col: 1}))
	bag.Add(NewError(WarnAsError, "get", "c").At(Pos{File: "a.dts", Line: 3, Col: 1}))
	bag.Sort()
	items := bag.Items()
	if items[0].Primary.Line != 1 || items[1].Code != WarnAsError || items[2].Code != TypeMismatch {
		t.Fatalf("unexpected order: %+v", items)
	}
}

func TestDedupAndPosReporters(t *testing.T) {
	bag := NewBag(0)
	line := 0
	r := NewDedupReporter(PosReporter{
		Next:  BagReporter{Bag: bag},
		Where: func() Pos { line++; return Pos{File: "x.dts", Line: line, Col: 1} },
	})
	d := NewWarning(TypeMismatch, "AsInt", "mismatch")
	r.Report(d)
	r.Report(d)
	if bag.Len() != 1 {
		t.Fatalf("dedup failed, got %d", bag.Len())
	}
	if bag.Items()[0].Primary.Line != 1 {
		t.Fatalf("position not stamped: %+v", bag.Items()[0].Primary)
	}
	MultiReporter{BagReporter{Bag: bag}, nil, NopReporter{}}.Report(d.At(Pos{Line: 9}))
	if bag.Len() != 2 || bag.Items()[1].Primary.Line != 9 {
		t.Fatalf("multi reporter did not forward position-bearing diagnostic: %+v", bag.Items())
	}
}

func TestFormatShort(t *testing.T) {
	diags := []Diagnostic{
		NewError(WarnAsError, "AsInt", "All warnings treated as errors,\nError produced due to type mismatch.").
			At(Pos{File: "s.dts", Line: 4, Col: 1}),
		NewWarning(TypeMismatch, "AsInt", "Type mismatch while getting").
			At(Pos{File: "s.dts", Line: 2, Col: 1}).
			WithNote("expected `int`"),
	}
	want := "warning W0100 s.dts:2:1 AsInt: Type mismatch while getting; expected `int`\n" +
		"error E0002 s.dts:4:1 AsInt: All warnings treated as errors, Error produced due to type mismatch."
	if got := FormatShort(diags, true); got != want {
		t.Fatalf("unexpected short diagnostics:\nwant:\n%s\n\ngot:\n%s", want, got)
	}
}

func TestSeverityString(t *testing.T) {
	for sev, want := range map[Severity]string{SevInfo: "INFO", SevWarning: "WARNING", SevError: "ERROR", Severity(9): "UNKNOWN"} {
		if got := sev.String(); got != want {
			t.Fatalf("Severity(%d).String() = %q, want %q", sev, got, want)
		}
	}
}
