package layout_test

import (
	"encoding/binary"
	"errors"
	"testing"

	"dtype/internal/layout"
)

func TestLookupKnownTargets(t *testing.T) {
	cases := []struct {
		triple string
		long   int
		order  binary.ByteOrder
	}{
		{"x86_64-linux-gnu", 8, binary.LittleEndian},
		{"aarch64-linux-gnu", 8, binary.LittleEndian},
		{"x86_64-windows-msvc", 4, binary.LittleEndian},
		{"i686-linux-gnu", 4, binary.LittleEndian},
		{"powerpc64-linux-gnu", 8, binary.BigEndian},
	}
	for _, tc := range cases {
		tgt, err := layout.Lookup(tc.triple)
		if err != nil {
			t.Fatalf("Lookup(%q): %v", tc.triple, err)
		}
		if got := tgt.SizeOf(layout.PrimLong); got != tc.long {
			t.Fatalf("%s: sizeof(long)=%d, want %d", tc.triple, got, tc.long)
		}
		if tgt.Order != tc.order {
			t.Fatalf("%s: byte order %v, want %v", tc.triple, tgt.Order, tc.order)
		}
		if got := tgt.SizeOf(layout.PrimDouble); got != 8 {
			t.Fatalf("%s: sizeof(double)=%d, want 8", tc.triple, got)
		}
	}
}

func TestLookupUnknownTarget(t *testing.T) {
	_, err := layout.Lookup("z80-cpm")
	var le *layout.LayoutError
	if !errors.As(err, &le) || le.Kind != layout.LayoutErrUnknownTarget {
		t.Fatalf("expected LayoutErrUnknownTarget, got %v", err)
	}
}

func TestLookupHost(t *testing.T) {
	host, err := layout.Lookup("host")
	if err != nil {
		t.Fatalf("Lookup(host): %v", err)
	}
	if host.Triple != layout.Host().Triple {
		t.Fatalf("host triple %q, want %q", host.Triple, layout.Host().Triple)
	}
}

func TestFixedScalarWidths(t *testing.T) {
	tgt := layout.X86_64LinuxGNU()
	want := map[layout.Prim]int{
		layout.PrimBool:  1,
		layout.PrimChar:  1,
		layout.PrimShort: 2,
		layout.PrimInt:   4,
		layout.PrimFloat: 4,
		layout.PrimPtr:   8,
	}
	for p, size := range want {
		if got := tgt.SizeOf(p); got != size {
			t.Fatalf("sizeof(%s)=%d, want %d", p, got, size)
		}
	}
	if _, err := tgt.LayoutOf(layout.Prim(99)); err == nil {
		t.Fatal("expected error for unknown primitive")
	}
}

func TestDoubleAlignOnI686(t *testing.T) {
	l, err := layout.I686LinuxGNU().LayoutOf(layout.PrimDouble)
	if err != nil {
		t.Fatal(err)
	}
	if l.Size != 8 || l.Align != 4 {
		t.Fatalf("double on i686 = %+v, want {8 4}", l)
	}
}
