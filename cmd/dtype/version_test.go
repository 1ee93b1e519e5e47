package main

import (
	"bytes"
	"encoding/json"
	"slices"
	"strings"
	"testing"

	"dtype/internal/version"
)

func TestRenderVersionJSON(t *testing.T) {
	var buf bytes.Buffer
	if err := renderVersionJSON(&buf, versionOptions{format: "json", showHash: true}); err != nil {
		t.Fatal(err)
	}
	var got map[string]any
	if err := json.Unmarshal(buf.Bytes(), &got); err != nil {
		t.Fatalf("invalid json %q: %v", buf.String(), err)
	}
	if got["tool"] != "dtype" || got["version"] != strings.TrimSpace(version.Version) {
		t.Fatalf("payload = %v", got)
	}
	if _, ok := got["git_commit"]; !ok {
		t.Fatalf("git_commit missing with showHash: %v", got)
	}
	if _, ok := got["build_date"]; ok {
		t.Fatalf("build_date present without showDate: %v", got)
	}
	targets, _ := got["targets"].([]any)
	names := make([]string, 0, len(targets))
	for _, v := range targets {
		names = append(names, v.(string))
	}
	if !slices.Contains(names, "x86_64-linux-gnu") || !slices.IsSorted(names) {
		t.Fatalf("targets = %v", names)
	}
}

func TestRenderVersionPretty(t *testing.T) {
	var buf bytes.Buffer
	renderVersionPretty(&buf, versionOptions{showMessage: true, showDate: true})
	out := buf.String()
	if !strings.HasPrefix(out, "dtype ") {
		t.Fatalf("output = %q", out)
	}
	if strings.Contains(out, "commit:") || !strings.Contains(out, "message: ") || !strings.Contains(out, "built:   ") {
		t.Fatalf("output = %q", out)
	}
}
