package box

import (
	"encoding/binary"
	"io"
	"os"

	"dtype/internal/diag"
	"dtype/internal/diagfmt"
	"dtype/internal/layout"
	"dtype/internal/trace"
)

// Options are the four diagnostic switches.
type Options struct {
	// ErrorReporting gates Raise: when off no error is reported and
	// ExitOnError never fires.
	ErrorReporting bool
	// WarnReporting gates type mismatch detection on getters.
	WarnReporting bool
	// WarnAsError escalates a detected mismatch to a WarnAsError error.
	WarnAsError bool
	// ExitOnError terminates the process with the error code on any
	// reported error.
	ExitOnError bool
}

// DefaultOptions: errors on, warnings on, warn-as-error off, exit-on-error off.
func DefaultOptions() Options {
	return Options{
		ErrorReporting: true,
		WarnReporting:  true,
	}
}

// Env is the configuration context a Value operates in.
type Env struct {
	opts     Options
	reporter diag.Reporter
	alloc    Allocator
	target   layout.Target
	tracer   trace.Tracer
	out      io.Writer
	exit     func(code int)
}

// EnvOption customises NewEnv.
type EnvOption func(*Env)

func WithOptions(o Options) EnvOption {
	return func(e *Env) { e.opts = o }
}

// WithReporter replaces the default stderr reporter.
func WithReporter(r diag.Reporter) EnvOption {
	return func(e *Env) {
		if r == nil {
			r = diag.NopReporter{}
		}
		e.reporter = r
	}
}

func WithAllocator(a Allocator) EnvOption {
	return func(e *Env) {
		if a != nil {
			e.alloc = a
		}
	}
}

// WithTarget selects the ABI values are laid out for. Targets whose long is
// neither 4 nor 8 bytes wide are ignored.
func WithTarget(t layout.Target) EnvOption {
	return func(e *Env) {
		if t.LongSize == 4 || t.LongSize == 8 {
			e.target = t
		}
	}
}

func WithTracer(t trace.Tracer) EnvOption {
	return func(e *Env) {
		if t == nil {
			t = trace.Nop
		}
		e.tracer = t
	}
}

// WithOutput sets the writer used by Print and DebugPrint.
func WithOutput(w io.Writer) EnvOption {
	return func(e *Env) {
		if w != nil {
			e.out = w
		}
	}
}

// WithExit replaces os.Exit for the exit-on-error path.
func WithExit(exit func(code int)) EnvOption {
	return func(e *Env) {
		if exit != nil {
			e.exit = exit
		}
	}
}

// NewEnv builds an environment. Without options it behaves like the
// classic library: default switches, blocks on stderr, output on stdout,
// the host ABI and the Go heap.
func NewEnv(opts ...EnvOption) *Env {
	e := &Env{
		opts:     DefaultOptions(),
		reporter: diagfmt.NewStreamReporter(os.Stderr, diagfmt.DefaultOpts()),
		alloc:    &HeapAllocator{},
		target:   layout.Host(),
		tracer:   trace.Nop,
		out:      os.Stdout,
		exit:     os.Exit,
	}
	for _, opt := range opts {
		if opt != nil {
			opt(e)
		}
	}
	return e
}

// New returns an empty value (tag None, no buffer) bound to e.
func (e *Env) New() *Value {
	return &Value{env: e}
}

func (e *Env) Options() Options { return e.opts }

func (e *Env) Reporter() diag.Reporter { return e.reporter }

func (e *Env) Allocator() Allocator { return e.alloc }

func (e *Env) Target() layout.Target { return e.target }

func (e *Env) Tracer() trace.Tracer { return e.tracer }

func (e *Env) Output() io.Writer { return e.out }

func (e *Env) SetErrorReporting(on bool) { e.opts.ErrorReporting = on }

func (e *Env) SetWarnReporting(on bool) { e.opts.WarnReporting = on }

func (e *Env) SetWarnAsError(on bool) { e.opts.WarnAsError = on }

func (e *Env) SetExitOnError(on bool) { e.opts.ExitOnError = on }

// Stats returns the allocator counters when the allocator keeps any.
func (e *Env) Stats() (Stats, bool) {
	s, ok := e.alloc.(interface{ Stats() Stats })
	if !ok {
		return Stats{}, false
	}
	return s.Stats(), true
}

func (e *Env) order() binary.ByteOrder {
	if e.target.Order == nil {
		return binary.LittleEndian
	}
	return e.target.Order
}

var defaultEnv = NewEnv()

// DefaultEnv is the process-wide environment behind Default and the zero Value.
func DefaultEnv() *Env { return defaultEnv }

// Default returns an empty value bound to DefaultEnv.
func Default() *Value { return defaultEnv.New() }

// SetErrorReporting toggles error reporting on DefaultEnv.
func SetErrorReporting(on bool) { defaultEnv.SetErrorReporting(on) }

// SetWarnReporting toggles mismatch warnings on DefaultEnv.
func SetWarnReporting(on bool) { defaultEnv.SetWarnReporting(on) }

// SetWarnAsError toggles warning escalation on DefaultEnv.
func SetWarnAsError(on bool) { defaultEnv.SetWarnAsError(on) }

// SetExitOnError toggles process termination on DefaultEnv.
func SetExitOnError(on bool) { defaultEnv.SetExitOnError(on) }
