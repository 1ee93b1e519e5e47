package ui

import (
	"bytes"
	"strings"
	"testing"

	tea "github.com/charmbracelet/bubbletea"

	"dtype/internal/box"
	"dtype/internal/diag"
	"dtype/internal/diagfmt"
	"dtype/internal/layout"
	"dtype/internal/script"
)

func newInspector(t *testing.T) *Inspector {
	t.Helper()
	out := &bytes.Buffer{}
	bag := diag.NewBag(0)
	r := script.NewRunner(script.Config{
		Out:      out,
		Reporter: diag.BagReporter{Bag: bag},
		Options:  box.DefaultOptions(),
		Env:      []box.EnvOption{box.WithTarget(layout.X86_64LinuxGNU())},
	})
	return NewInspector(InspectorConfig{Runner: r, Output: out, Diags: bag, Pretty: diagfmt.DefaultOpts()})
}

func joined(m *Inspector) string {
	return strings.Join(m.Transcript(), "\n")
}

func TestInspectorExecutesCommands(t *testing.T) {
	m := newInspector(t)
	if m.Submit("set int 42") {
		t.Fatalf("set ended the session")
	}
	m.Submit("get int")
	if !strings.Contains(joined(m), "42") {
		t.Fatalf("transcript lacks output:\n%s", joined(m))
	}
	status := m.StatusLine()
	if !strings.Contains(status, "tag int (5)") || !strings.Contains(status, "len 4") || !strings.Contains(status, "value 42") {
		t.Fatalf("status = %q", status)
	}
}

func TestInspectorShowsDiagnostics(t *testing.T) {
	m := newInspector(t)
	m.Submit("set float 2")
	m.Submit("get int")
	m.Submit("set int oops")
	text := joined(m)
	if !strings.Contains(text, "Dtype Warning") {
		t.Fatalf("mismatch warning missing:\n%s", text)
	}
	if !strings.Contains(text, "S0205") {
		t.Fatalf("syntax error missing:\n%s", text)
	}
	if m.cfg.Diags.Len() != 0 || m.cfg.Output.Len() != 0 {
		t.Fatalf("buffers not drained")
	}
}

func TestInspectorQuit(t *testing.T) {
	m := newInspector(t)
	if !m.Submit("quit") {
		t.Fatalf("quit did not end the session")
	}
	m.input.SetValue("exit")
	_, cmd := m.Update(tea.KeyMsg{Type: tea.KeyEnter})
	if cmd == nil || m.View() != "" {
		t.Fatalf("enter on exit did not quit")
	}
}

func TestProgressModel(t *testing.T) {
	events := make(chan Event)
	pm := NewProgressModel("scripts", []string{"a.dts", "b.dts"}, events).(*progressModel)
	pm.Update(eventMsg{File: "a.dts", Status: StatusDone, Stmts: 3})
	pm.Update(eventMsg{File: "b.dts", Status: StatusRunning})
	pm.Update(eventMsg{File: "zzz", Status: StatusError})
	if got := pm.fraction(); got != 0.75 {
		t.Fatalf("fraction = %v, want 0.75", got)
	}
	view := pm.View()
	if !strings.Contains(view, "a.dts") || !strings.Contains(view, "(3 stmts)") || !strings.Contains(view, "running") {
		t.Fatalf("view:\n%s", view)
	}
	_, cmd := pm.Update(doneMsg{})
	if cmd == nil || !pm.done {
		t.Fatalf("done message did not quit")
	}
}

func TestTruncate(t *testing.T) {
	if got := truncate("abcdefgh", 6); got != "abc..." {
		t.Fatalf("truncate = %q", got)
	}
	if got := truncate("日本語テキスト", 7); got != "日本..." {
		t.Fatalf("truncate wide = %q", got)
	}
	if got := truncate("short", 10); got != "short" {
		t.Fatalf("truncate = %q", got)
	}
}
