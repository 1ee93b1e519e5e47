package box_test

import (
	"bytes"
	"errors"
	"math"
	"testing"
)

func TestPrint(t *testing.T) {
	env, _, out := newEnv(t)
	v := env.New()

	cases := []struct {
		set  func() error
		want string
	}{
		{func() error { return nil }, "none"},
		{func() error { return v.SetBool(false) }, "false"},
		{func() error { return v.SetBool(true) }, "true"},
		{func() error { return v.SetChar('Z') }, "Z"},
		{func() error { return v.SetShort(-7) }, "-7"},
		{func() error { return v.SetUShort(7) }, "7"},
		{func() error { return v.SetInt(-123456) }, "-123456"},
		{func() error { return v.SetUInt(4000000000) }, "4000000000"},
		{func() error { return v.SetLong(-9000000000) }, "-9000000000"},
		{func() error { return v.SetULong(18000000000000000000) }, "18000000000000000000"},
		{func() error { return v.SetFloat(1.5) }, "1.500000"},
		{func() error { return v.SetDouble(-0.25) }, "-0.250000"},
		{func() error { return v.SetDouble(math.Inf(1)) }, "inf"},
		{func() error { return v.SetDouble(math.NaN()) }, "nan"},
		{func() error { return v.SetString("hello") }, "hello"},
		{func() error { return v.SetCustom([]byte{1, 2}) }, "dtype_custom_variable"},
	}
	for _, tc := range cases {
		if err := tc.set(); err != nil {
			t.Fatalf("set for %q: %v", tc.want, err)
		}
		out.Reset()
		n, err := v.Print()
		if err != nil {
			t.Fatalf("Print(%q): %v", tc.want, err)
		}
		if out.String() != tc.want || n != len(tc.want) {
			t.Fatalf("Print = %q (%d), want %q", out.String(), n, tc.want)
		}
		if v.String() != tc.want {
			t.Fatalf("String = %q, want %q", v.String(), tc.want)
		}
	}
}

func TestDebugPrintEmpty(t *testing.T) {
	env, _, out := newEnv(t)
	v := env.New()
	n, err := v.DebugPrint()
	if err != nil {
		t.Fatal(err)
	}
	want := "\n{ typecode = 0, type = `none`, size = `0`, content = `none` }\n"
	if out.String() != want || n != len(want) {
		t.Fatalf("DebugPrint = %q (%d), want %q", out.String(), n, want)
	}
}

func TestDebugPrintString(t *testing.T) {
	env, _, _ := newEnv(t)
	v := env.New()
	_ = v.SetString("hi")
	var buf bytes.Buffer
	if _, err := v.FdebugPrint(&buf); err != nil {
		t.Fatal(err)
	}
	want := "\n{ typecode = 11, type = `string`, size = `3`, content = `hi` }\n"
	if buf.String() != want {
		t.Fatalf("got %q, want %q", buf.String(), want)
	}
}

type failWriter struct{}

var errWrite = errors.New("write failed")

func (failWriter) Write([]byte) (int, error) { return 0, errWrite }

func TestFprintPropagatesWriteError(t *testing.T) {
	env, _, _ := newEnv(t)
	v := env.New()
	_ = v.SetInt(1)
	if _, err := v.Fprint(failWriter{}); !errors.Is(err, errWrite) {
		t.Fatalf("err = %v", err)
	}
}

func TestPrintShortBuffer(t *testing.T) {
	env, _, out := newEnv(t)
	v := env.New()
	_ = v.SetDouble(1)
	_ = v.ChangeSize(4)
	n, err := v.Print()
	if err == nil || n != 0 || out.Len() != 0 {
		t.Fatalf("Print on truncated double = %d, %v, %q", n, err, out.String())
	}
}
