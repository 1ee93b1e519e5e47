package box_test

import (
	"testing"

	"dtype/internal/box"
	"dtype/internal/trace"
)

func TestOperationsAreTraced(t *testing.T) {
	ring := trace.NewRingTracer(64, trace.LevelDebug)
	env, _, _ := newEnv(t, box.WithTracer(ring))
	v := env.New()
	_ = v.SetInt(3)
	_, _ = v.AsFloat()
	v.Clear()

	var names []string
	for _, ev := range ring.Snapshot() {
		names = append(names, ev.Scope.String()+":"+ev.Name)
	}
	want := []string{"mem:alloc", "op:SetInt", "diag:W0100", "mem:free", "op:Clear"}
	if len(names) != len(want) {
		t.Fatalf("events = %v, want %v", names, want)
	}
	for i := range want {
		if names[i] != want[i] {
			t.Fatalf("events = %v, want %v", names, want)
		}
	}
	if ev := ring.Snapshot()[1]; ev.Extra["tag"] != "int" || ev.Extra["len"] != "4" {
		t.Fatalf("SetInt extra = %v", ev.Extra)
	}
}

func TestOpLevelSkipsMemoryEvents(t *testing.T) {
	ring := trace.NewRingTracer(64, trace.LevelOp)
	env, _, _ := newEnv(t, box.WithTracer(ring))
	v := env.New()
	_ = v.SetBool(true)
	for _, ev := range ring.Snapshot() {
		if ev.Scope == trace.ScopeMem {
			t.Fatalf("mem event at op level: %+v", ev)
		}
	}
	if len(ring.Snapshot()) != 1 {
		t.Fatalf("events = %d, want 1", len(ring.Snapshot()))
	}
}
