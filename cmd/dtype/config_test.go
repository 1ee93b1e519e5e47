package main

import (
	"os"
	"path/filepath"
	"strings"
	"testing"

	"github.com/spf13/cobra"
)

func writeFile(t *testing.T, path, content string) {
	t.Helper()
	if err := os.MkdirAll(filepath.Dir(path), 0o755); err != nil {
		t.Fatal(err)
	}
	if err := os.WriteFile(path, []byte(content), 0o600); err != nil {
		t.Fatal(err)
	}
}

func TestFindConfigWalksUp(t *testing.T) {
	root := t.TempDir()
	writeFile(t, filepath.Join(root, configFileName), "")
	nested := filepath.Join(root, "a", "b")
	if err := os.MkdirAll(nested, 0o755); err != nil {
		t.Fatal(err)
	}
	path, ok, err := findConfig(nested)
	if err != nil || !ok {
		t.Fatalf("findConfig = %q, %v, %v", path, ok, err)
	}
	want, _ := filepath.Abs(filepath.Join(root, configFileName))
	if path != want {
		t.Fatalf("path = %q, want %q", path, want)
	}
}

func TestApplyConfigFile(t *testing.T) {
	path := filepath.Join(t.TempDir(), configFileName)
	writeFile(t, path, `
[diagnostics]
warnings = false
warn_as_error = true
color = "off"
format = "short"

[memory]
limit = 64

[target]
triple = "x86_64-windows-msvc"

[trace]
level = "op"
`)
	s := defaultSettings()
	if err := applyConfigFile(path, &s); err != nil {
		t.Fatal(err)
	}
	if s.Source != path {
		t.Fatalf("Source = %q", s.Source)
	}
	if !s.Options.ErrorReporting {
		t.Fatalf("absent key changed errors switch")
	}
	if s.Options.WarnReporting || !s.Options.WarnAsError || s.Options.ExitOnError {
		t.Fatalf("options = %+v", s.Options)
	}
	if s.Color != "off" || s.DiagFormat != "short" || s.MemLimit != 64 || s.Target.LongSize != 4 || s.TraceLevel != "op" || s.TraceMode != "stream" {
		t.Fatalf("settings = %+v", s)
	}
}

func TestApplyConfigFileErrors(t *testing.T) {
	cases := map[string]string{
		"unknown key":  "[diagnostics]\nverbose = true\n",
		"bad triple":   "[target]\ntriple = \"z80-none\"\n",
		"bad color":    "[diagnostics]\ncolor = \"sometimes\"\n",
		"bad format":   "[diagnostics]\nformat = \"json\"\n",
		"negative mem": "[memory]\nlimit = -1\n",
		"invalid toml": "[diagnostics\n",
	}
	for name, content := range cases {
		t.Run(name, func(t *testing.T) {
			path := filepath.Join(t.TempDir(), configFileName)
			writeFile(t, path, content)
			s := defaultSettings()
			err := applyConfigFile(path, &s)
			if err == nil || !strings.Contains(err.Error(), path) {
				t.Fatalf("err = %v", err)
			}
		})
	}
}

func TestApplyFlagsOverrideOnlyWhenSet(t *testing.T) {
	c := &cobra.Command{Use: "x"}
	addPersistentFlags(c)
	if err := c.PersistentFlags().Parse([]string{"--no-warnings", "--target", "i686-linux-gnu", "--mem-limit", "16"}); err != nil {
		t.Fatal(err)
	}
	s := defaultSettings()
	s.Options.WarnAsError = true // as if from dtype.toml
	if err := applyFlags(c.PersistentFlags(), &s); err != nil {
		t.Fatal(err)
	}
	if s.Options.WarnReporting || !s.Options.WarnAsError || !s.Options.ErrorReporting {
		t.Fatalf("options = %+v", s.Options)
	}
	if s.Target.Triple != "i686-linux-gnu" || s.MemLimit != 16 {
		t.Fatalf("settings = %+v", s)
	}
}

func TestApplyFlagsRejectsBadValues(t *testing.T) {
	c := &cobra.Command{Use: "x"}
	addPersistentFlags(c)
	if err := c.PersistentFlags().Parse([]string{"--target", "vax", "--color", "rainbow", "--mem-limit", "-2"}); err != nil {
		t.Fatal(err)
	}
	s := defaultSettings()
	err := applyFlags(c.PersistentFlags(), &s)
	if err == nil {
		t.Fatalf("bad flags accepted")
	}
	for _, frag := range []string{"--target", "--color", "--mem-limit"} {
		if !strings.Contains(err.Error(), frag) {
			t.Fatalf("error %q lacks %s", err, frag)
		}
	}
}
