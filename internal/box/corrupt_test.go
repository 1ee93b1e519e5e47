package box

import (
	"bytes"
	"errors"
	"testing"

	"dtype/internal/diag"
	"dtype/internal/layout"
)

func corruptEnv(t *testing.T) (*Env, *diag.Bag, *bytes.Buffer) {
	t.Helper()
	bag := diag.NewBag(0)
	out := &bytes.Buffer{}
	env := NewEnv(
		WithReporter(diag.BagReporter{Bag: bag}),
		WithOutput(out),
		WithTarget(layout.X86_64LinuxGNU()),
	)
	return env, bag, out
}

func TestCorruptTagGetter(t *testing.T) {
	env, bag, _ := corruptEnv(t)
	v := env.New()
	_ = v.SetInt(9)
	v.tag = Tag(200)

	n, err := v.AsInt()
	if !errors.Is(err, diag.ErrType) {
		t.Fatalf("err = %v, want TypeError", err)
	}
	if n != 9 {
		t.Fatalf("best-effort read = %d, want 9", n)
	}
	items := bag.Items()
	if len(items) != 1 || items[0].Code != diag.TypeError || items[0].Op != opTypecheck {
		t.Fatalf("diagnostics = %+v", items)
	}
	if len(items[0].Notes) != 1 || items[0].Notes[0].Msg != "type `200` is not within ( 0 >= type >= 12 )" {
		t.Fatalf("notes = %+v", items[0].Notes)
	}
}

func TestCorruptTagWithWarnAsError(t *testing.T) {
	env, _, _ := corruptEnv(t)
	env.SetWarnAsError(true)
	v := env.New()
	_ = v.SetInt(9)
	v.tag = Tag(13)

	_, err := v.AsInt()
	if !errors.Is(err, diag.ErrType) || !errors.Is(err, diag.ErrWarnAsError) {
		t.Fatalf("err = %v, want TypeError and WarnAsError", err)
	}
}

func TestCorruptTagPrint(t *testing.T) {
	env, bag, out := corruptEnv(t)
	v := env.New()
	v.tag = Tag(77)

	for _, fn := range []func() (int, error){v.Print, v.DebugPrint} {
		n, err := fn()
		if n != 0 || !errors.Is(err, diag.ErrType) {
			t.Fatalf("print = %d, %v", n, err)
		}
	}
	if out.Len() != 0 {
		t.Fatalf("corrupt value printed %q", out.String())
	}
	if bag.Count(diag.TypeError) != 2 {
		t.Fatalf("want 2 TypeErrors, got %+v", bag.Items())
	}
	if ops := []string{bag.Items()[0].Op, bag.Items()[1].Op}; ops[0] != opPrint || ops[1] != opDebugPrint {
		t.Fatalf("ops = %v", ops)
	}
	if s := v.String(); s != "<corrupt tag 77>" {
		t.Fatalf("String = %q", s)
	}
}
