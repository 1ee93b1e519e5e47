package script

import (
	"bytes"
	"context"
	"errors"
	"strings"
	"testing"

	"dtype/internal/box"
	"dtype/internal/diag"
	"dtype/internal/layout"
)

func run(t *testing.T, src string, opts ...box.EnvOption) (string, *diag.Bag) {
	t.Helper()
	bag := diag.NewBag(0)
	prog := Parse("t.dts", []byte(src), diag.BagReporter{Bag: bag})
	if bag.HasErrors() {
		t.Fatalf("parse errors: %+v", bag.Items())
	}
	var out bytes.Buffer
	r := NewRunner(Config{
		Name:     "t",
		Out:      &out,
		Reporter: diag.BagReporter{Bag: bag},
		Options:  box.DefaultOptions(),
		Env:      append([]box.EnvOption{box.WithTarget(layout.X86_64LinuxGNU())}, opts...),
	})
	if err := r.Run(context.Background(), prog); err != nil {
		t.Fatalf("run: %v", err)
	}
	return out.String(), bag
}

func TestRunnerRoundTrip(t *testing.T) {
	out, bag := run(t, `
set int 42
get int
type
len
print
set string "hi"
debug
set custom 01 02 ff
get custom
set double 0.5
get double
`)
	want := "42\nint\n4\n42\n" +
		"\n{ typecode = 11, type = `string`, size = `3`, content = `hi` }\n" +
		"01 02 ff\n0.5\n"
	if out != want {
		t.Fatalf("output:\n%q\nwant:\n%q", out, want)
	}
	if bag.Len() != 0 {
		t.Fatalf("diagnostics: %+v", bag.Items())
	}
}

func TestRunnerMismatchIsSoft(t *testing.T) {
	out, bag := run(t, "set float 1.5\nget int\nlen\n")
	if out != "1069547520\n4\n" {
		t.Fatalf("output = %q", out)
	}
	items := bag.Items()
	if len(items) != 1 || items[0].Code != diag.TypeMismatch {
		t.Fatalf("diagnostics = %+v", items)
	}
	if p := items[0].Primary; p.File != "t.dts" || p.Line != 2 || p.Col != 1 {
		t.Fatalf("warning not positioned at the get: %v", p)
	}
}

func TestRunnerOptions(t *testing.T) {
	_, bag := run(t, `
option warn-as-error on
set bool true
get char
option warnings off
get int
`)
	if bag.Count(diag.TypeMismatch) != 1 || bag.Count(diag.WarnAsError) != 1 {
		t.Fatalf("diagnostics = %+v", bag.Items())
	}
	// get int on a 1-byte buffer is a short read, raised by the runner.
	if bag.Count(diag.UnknownError) != 1 {
		t.Fatalf("short read not reported: %+v", bag.Items())
	}
}

func TestRunnerResizePokePeek(t *testing.T) {
	out, bag := run(t, `
set int 1
resize 8
poke 4 2a
peek 0 8
get int
poke 7 0102
peek 6 4
resize 0
len
`)
	want := "01 00 00 00 2a 00 00 00\n1\n8\n"
	if out != want {
		t.Fatalf("output = %q, want %q", out, want)
	}
	errs := 0
	for _, d := range bag.Items() {
		if d.Code == diag.UnknownError {
			errs++
		}
	}
	if errs != 3 {
		t.Fatalf("want 3 contract violations (poke, peek, resize 0), got %+v", bag.Items())
	}
}

func TestRunnerHugeOffsetsAndSizes(t *testing.T) {
	out, bag := run(t, `
set int 1
peek 9223372036854775807 1
poke 9223372036854775807 00
peek 1 9223372036854775807
resize 4611686018427387904
get int
`)
	if out != "1\n" {
		t.Fatalf("output = %q", out)
	}
	if n := bag.Count(diag.UnknownError); n != 3 {
		t.Fatalf("want 3 out-of-bounds violations, got %+v", bag.Items())
	}
	if n := bag.Count(diag.MemoryError); n != 1 {
		t.Fatalf("oversized resize: want 1 memory error, got %+v", bag.Items())
	}
}

func TestRunnerMemoryLimit(t *testing.T) {
	out, bag := run(t, "set string \"too long\"\ntype\n", box.WithAllocator(&box.HeapAllocator{Limit: 4}))
	if out != "none\n" {
		t.Fatalf("output = %q", out)
	}
	items := bag.Items()
	if len(items) != 1 || items[0].Code != diag.MemoryError || items[0].Primary.Line != 1 {
		t.Fatalf("diagnostics = %+v", items)
	}
}

func TestRunnerLongOutOfRange(t *testing.T) {
	_, bag := run(t, "set long 5000000000\n", box.WithTarget(layout.X86_64WindowsMSVC()))
	if bag.Count(diag.UnknownError) != 1 {
		t.Fatalf("diagnostics = %+v", bag.Items())
	}
}

func TestRunnerExitOnError(t *testing.T) {
	code := -1
	_, bag := run(t, "option exit-on-error on\nset long 1\n",
		box.WithAllocator(&box.HeapAllocator{Limit: 2}),
		box.WithExit(func(c int) { code = c }))
	if code != int(diag.MemoryError) {
		t.Fatalf("exit code = %d", code)
	}
	if !bag.HasErrors() {
		t.Fatalf("no error reported")
	}
}

func TestRunnerCancellation(t *testing.T) {
	prog := Parse("t.dts", []byte("len\nlen\n"), nil)
	r := NewRunner(Config{Options: box.DefaultOptions()})
	ctx, cancel := context.WithCancel(context.Background())
	cancel()
	if err := r.Run(ctx, prog); !errors.Is(err, context.Canceled) {
		t.Fatalf("err = %v", err)
	}
	if r.Executed() != 0 {
		t.Fatalf("executed %d statements after cancel", r.Executed())
	}
}

type brokenWriter struct{}

func (brokenWriter) Write([]byte) (int, error) { return 0, errors.New("broken pipe") }

func TestRunnerWriteFailureAborts(t *testing.T) {
	prog := Parse("t.dts", []byte("len\nlen\n"), nil)
	r := NewRunner(Config{Out: brokenWriter{}, Options: box.DefaultOptions()})
	err := r.Run(context.Background(), prog)
	if err == nil || !strings.Contains(err.Error(), "t.dts:1:1") {
		t.Fatalf("err = %v", err)
	}
	if r.Executed() != 1 {
		t.Fatalf("executed = %d", r.Executed())
	}
}
