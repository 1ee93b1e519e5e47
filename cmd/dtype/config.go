package main

import (
	"errors"
	"fmt"
	"os"
	"path/filepath"
	"strings"

	"fortio.org/safecast"
	"github.com/BurntSushi/toml"
	"github.com/spf13/cobra"

	"dtype/internal/box"
	"dtype/internal/layout"
	"dtype/internal/prof"
)

const configFileName = "dtype.toml"

type fileConfig struct {
	Diagnostics diagnosticsConfig `toml:"diagnostics"`
	Memory      memoryConfig      `toml:"memory"`
	Target      targetConfig      `toml:"target"`
	Trace       traceConfig       `toml:"trace"`
}

type diagnosticsConfig struct {
	Errors      bool   `toml:"errors"`
	Warnings    bool   `toml:"warnings"`
	WarnAsError bool   `toml:"warn_as_error"`
	ExitOnError bool   `toml:"exit_on_error"`
	Color       string `toml:"color"`
	Format      string `toml:"format"`
}

type memoryConfig struct {
	Limit  int64 `toml:"limit"`
	Budget int64 `toml:"budget"`
}

type targetConfig struct {
	Triple string `toml:"triple"`
}

type traceConfig struct {
	Level    string `toml:"level"`
	Mode     string `toml:"mode"`
	Output   string `toml:"output"`
	RingSize int    `toml:"ring_size"`
}

// settings is the effective configuration: defaults, then dtype.toml, then
// flags the user set explicitly.
type settings struct {
	Source string // dtype.toml in effect, "" when none

	Options    box.Options
	Color      string
	DiagFormat string
	Quiet      bool
	Timings    bool
	MaxDiags   int
	MemLimit   int
	MemBudget  int
	Target     layout.Target
	TraceLevel string
	TraceMode  string
	TraceOut   string
	RingSize   int
	Profile    prof.Config
}

func defaultSettings() settings {
	return settings{
		Options:    box.DefaultOptions(),
		Color:      "auto",
		DiagFormat: "pretty",
		MaxDiags:   100,
		Target:     layout.Host(),
		TraceLevel: "off",
		TraceMode:  "stream",
		RingSize:   4096,
	}
}

// findConfig walks up from startDir looking for dtype.toml.
func findConfig(startDir string) (string, bool, error) {
	if startDir == "" {
		startDir = "."
	}
	dir, err := filepath.Abs(startDir)
	if err != nil {
		return "", false, fmt.Errorf("failed to resolve start directory: %w", err)
	}
	for {
		candidate := filepath.Join(dir, configFileName)
		if _, err := os.Stat(candidate); err == nil {
			return candidate, true, nil
		} else if !errors.Is(err, os.ErrNotExist) {
			return "", false, fmt.Errorf("failed to stat %q: %w", candidate, err)
		}
		parent := filepath.Dir(dir)
		if parent == dir {
			return "", false, nil
		}
		dir = parent
	}
}

// applyConfigFile overlays the keys present in path onto s. Absent keys keep
// their current value.
func applyConfigFile(path string, s *settings) error {
	var cfg fileConfig
	meta, err := toml.DecodeFile(path, &cfg)
	if err != nil {
		return fmt.Errorf("%s: failed to parse TOML: %w", path, err)
	}
	if undecoded := meta.Undecoded(); len(undecoded) > 0 {
		return fmt.Errorf("%s: unknown key %q", path, undecoded[0].String())
	}
	s.Source = path

	d := cfg.Diagnostics
	if meta.IsDefined("diagnostics", "errors") {
		s.Options.ErrorReporting = d.Errors
	}
	if meta.IsDefined("diagnostics", "warnings") {
		s.Options.WarnReporting = d.Warnings
	}
	if meta.IsDefined("diagnostics", "warn_as_error") {
		s.Options.WarnAsError = d.WarnAsError
	}
	if meta.IsDefined("diagnostics", "exit_on_error") {
		s.Options.ExitOnError = d.ExitOnError
	}
	if meta.IsDefined("diagnostics", "color") {
		if _, err := readColorMode(d.Color); err != nil {
			return fmt.Errorf("%s: [diagnostics].color: %w", path, err)
		}
		s.Color = d.Color
	}
	if meta.IsDefined("diagnostics", "format") {
		if err := checkDiagFormat(d.Format); err != nil {
			return fmt.Errorf("%s: [diagnostics].format: %w", path, err)
		}
		s.DiagFormat = d.Format
	}

	if meta.IsDefined("memory", "limit") {
		n, err := memSize(cfg.Memory.Limit)
		if err != nil {
			return fmt.Errorf("%s: [memory].limit: %w", path, err)
		}
		s.MemLimit = n
	}
	if meta.IsDefined("memory", "budget") {
		n, err := memSize(cfg.Memory.Budget)
		if err != nil {
			return fmt.Errorf("%s: [memory].budget: %w", path, err)
		}
		s.MemBudget = n
	}

	if meta.IsDefined("target", "triple") {
		t, err := layout.Lookup(strings.TrimSpace(cfg.Target.Triple))
		if err != nil {
			return fmt.Errorf("%s: [target].triple: %w", path, err)
		}
		s.Target = t
	}

	if meta.IsDefined("trace", "level") {
		s.TraceLevel = cfg.Trace.Level
	}
	if meta.IsDefined("trace", "mode") {
		s.TraceMode = cfg.Trace.Mode
	}
	if meta.IsDefined("trace", "output") {
		s.TraceOut = cfg.Trace.Output
	}
	if meta.IsDefined("trace", "ring_size") {
		s.RingSize = cfg.Trace.RingSize
	}
	return nil
}

func checkDiagFormat(v string) error {
	switch v {
	case "pretty", "short":
		return nil
	}
	return fmt.Errorf("invalid diagnostics format %q (expected pretty|short)", v)
}

func memSize(n int64) (int, error) {
	if n < 0 {
		return 0, fmt.Errorf("must not be negative, got %d", n)
	}
	v, err := safecast.Conv[int](n)
	if err != nil {
		return 0, fmt.Errorf("%d does not fit in int: %w", n, err)
	}
	return v, nil
}

// resolveSettings builds the effective configuration for cmd.
func resolveSettings(cmd *cobra.Command) (settings, error) {
	s := defaultSettings()
	flags := cmd.Root().PersistentFlags()

	path, err := flags.GetString("config")
	if err != nil {
		return s, err
	}
	if path == "" {
		found, ok, err := findConfig(".")
		if err != nil {
			return s, err
		}
		if ok {
			path = found
		}
	}
	if path != "" {
		if err := applyConfigFile(path, &s); err != nil {
			return s, err
		}
	}

	if err := applyFlags(flags, &s); err != nil {
		return s, err
	}
	return s, nil
}

type flagGetter interface {
	Changed(name string) bool
	GetBool(name string) (bool, error)
	GetInt(name string) (int, error)
	GetString(name string) (string, error)
}

func applyFlags(f flagGetter, s *settings) error {
	var errs []error
	boolFlag := func(name string, apply func(bool)) {
		if !f.Changed(name) {
			return
		}
		v, err := f.GetBool(name)
		if err != nil {
			errs = append(errs, err)
			return
		}
		apply(v)
	}
	stringFlag := func(name string, apply func(string) error) {
		if !f.Changed(name) {
			return
		}
		v, err := f.GetString(name)
		if err == nil {
			err = apply(v)
		}
		if err != nil {
			errs = append(errs, fmt.Errorf("--%s: %w", name, err))
		}
	}
	intFlag := func(name string, apply func(int) error) {
		if !f.Changed(name) {
			return
		}
		v, err := f.GetInt(name)
		if err == nil {
			err = apply(v)
		}
		if err != nil {
			errs = append(errs, fmt.Errorf("--%s: %w", name, err))
		}
	}

	boolFlag("warn-as-error", func(v bool) { s.Options.WarnAsError = v })
	boolFlag("exit-on-error", func(v bool) { s.Options.ExitOnError = v })
	boolFlag("no-warnings", func(v bool) { s.Options.WarnReporting = !v })
	boolFlag("no-errors", func(v bool) { s.Options.ErrorReporting = !v })
	boolFlag("quiet", func(v bool) { s.Quiet = v })
	boolFlag("timings", func(v bool) { s.Timings = v })

	stringFlag("color", func(v string) error {
		if _, err := readColorMode(v); err != nil {
			return err
		}
		s.Color = v
		return nil
	})
	stringFlag("diag-format", func(v string) error {
		if err := checkDiagFormat(v); err != nil {
			return err
		}
		s.DiagFormat = v
		return nil
	})
	stringFlag("target", func(v string) error {
		t, err := layout.Lookup(strings.TrimSpace(v))
		if err != nil {
			return err
		}
		s.Target = t
		return nil
	})
	stringFlag("trace", func(v string) error { s.TraceOut = v; return nil })
	stringFlag("trace-level", func(v string) error { s.TraceLevel = v; return nil })
	stringFlag("trace-mode", func(v string) error { s.TraceMode = v; return nil })
	stringFlag("cpu-profile", func(v string) error { s.Profile.CPU = v; return nil })
	stringFlag("mem-profile", func(v string) error { s.Profile.Heap = v; return nil })
	stringFlag("runtime-trace", func(v string) error { s.Profile.Runtime = v; return nil })

	intFlag("mem-limit", func(v int) error {
		if v < 0 {
			return fmt.Errorf("must not be negative, got %d", v)
		}
		s.MemLimit = v
		return nil
	})
	intFlag("max-diagnostics", func(v int) error { s.MaxDiags = v; return nil })
	intFlag("trace-ring-size", func(v int) error { s.RingSize = v; return nil })

	return errors.Join(errs...)
}

// envOptions are the box.Env options every command derives from settings.
func (s settings) envOptions() []box.EnvOption {
	return []box.EnvOption{
		box.WithAllocator(&box.HeapAllocator{Limit: s.MemLimit, Budget: s.MemBudget}),
		box.WithTarget(s.Target),
	}
}
