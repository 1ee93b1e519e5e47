package main

import (
	"bytes"
	"context"
	"fmt"
	"io"
	"os"
	"sync"

	tea "github.com/charmbracelet/bubbletea"
	"github.com/spf13/cobra"
	"golang.org/x/sync/errgroup"

	"dtype/internal/box"
	"dtype/internal/diag"
	"dtype/internal/diagfmt"
	"dtype/internal/observ"
	"dtype/internal/script"
	"dtype/internal/trace"
	"dtype/internal/ui"
)

var runUIMode string

func init() {
	runCmd.Flags().StringVar(&runUIMode, "ui", "off", "show a progress view (auto|on|off)")
}

var runCmd = &cobra.Command{
	Use:   "run FILE...",
	Short: "Execute dtype scripts",
	Long: `Execute one or more dtype scripts. Scripts run concurrently, each on its own
boxed value and environment; their output is printed in argument order.`,
	Args: cobra.MinimumNArgs(1),
	RunE: func(cmd *cobra.Command, args []string) error {
		mode, err := readUIMode(runUIMode)
		if err != nil {
			return err
		}
		s, err := resolveSettings(cmd)
		if err != nil {
			return err
		}
		tracer, cleanup, err := setupTracing(s, cmd.ErrOrStderr())
		if err != nil {
			return err
		}
		defer cleanup()
		stopProf, err := setupProfiling(s, cmd.ErrOrStderr())
		if err != nil {
			return err
		}
		defer stopProf()

		timer := observ.NewTimer()
		b := &batch{
			settings: s,
			tracer:   tracer,
			timer:    timer,
			stdout:   cmd.OutOrStdout(),
			stderr:   cmd.ErrOrStderr(),
			exit: func(code int) {
				stopProf()
				cleanup()
				os.Exit(code)
			},
		}

		ctx := trace.WithTracer(cmd.Context(), tracer)
		if shouldUseTUI(mode) {
			err = b.runWithUI(ctx, args)
		} else {
			err = b.run(ctx, args, nil)
		}
		if s.Timings {
			fmt.Fprint(cmd.ErrOrStderr(), timer.Summary())
		}
		return err
	},
}

// batch runs a set of scripts, each with its own Env.
type batch struct {
	settings settings
	tracer   trace.Tracer
	timer    *observ.Timer
	stdout   io.Writer
	stderr   io.Writer
	exit     func(code int)

	// beforeExit runs ahead of an exit-on-error termination, e.g. to hand
	// the terminal back from the progress view.
	beforeExit func()
	flushMu    sync.Mutex
}

// scriptResult buffers what one script produced until it can be printed in
// argument order.
type scriptResult struct {
	file   string
	out    bytes.Buffer
	errOut bytes.Buffer
	stmts  int
	failed bool
}

func (b *batch) run(ctx context.Context, files []string, events chan<- ui.Event) error {
	if events != nil {
		defer close(events)
	}
	results := make([]*scriptResult, len(files))
	for i, f := range files {
		results[i] = &scriptResult{file: f}
		notify(events, f, ui.StatusQueued, 0)
	}

	span := trace.Begin(b.tracer, trace.ScopeSession, "run", 0)
	ctx = trace.WithSpanContext(ctx, trace.SpanContext{SpanID: span.ID()})

	g, gctx := errgroup.WithContext(ctx)
	for _, res := range results {
		res := res
		g.Go(func() error {
			return b.runOne(gctx, res, events)
		})
	}
	err := g.Wait()
	span.End(fmt.Sprintf("%d scripts", len(files)))

	failed := 0
	multi := len(results) > 1 && !b.settings.Quiet
	for i, res := range results {
		if multi {
			if i > 0 {
				fmt.Fprintln(b.stdout)
			}
			fmt.Fprintf(b.stdout, "==> %s <==\n", res.file)
		}
		if _, werr := res.out.WriteTo(b.stdout); werr != nil && err == nil {
			err = werr
		}
		if _, werr := res.errOut.WriteTo(b.stderr); werr != nil && err == nil {
			err = werr
		}
		if res.failed {
			failed++
		}
	}
	if err != nil {
		return err
	}
	if failed > 0 {
		return fmt.Errorf("%d of %d script(s) failed", failed, len(results))
	}
	return nil
}

// runOne parses and executes a single script. Parse failures mark the
// script failed but do not cancel its siblings.
func (b *batch) runOne(ctx context.Context, res *scriptResult, events chan<- ui.Event) error {
	pretty := b.settings.prettyOpts()
	stream := diagfmt.NewStreamReporter(&res.errOut, pretty)

	notify(events, res.file, ui.StatusParsing, 0)
	var prog *script.Program
	perr := b.timer.Track("parse "+res.file, func() error {
		src, err := os.ReadFile(res.file)
		if err != nil {
			return err
		}
		bag := diag.NewBag(b.settings.MaxDiags)
		prog = script.Parse(res.file, src, diag.NewDedupReporter(diag.BagReporter{Bag: bag}))
		bag.Sort()
		if err := diagfmt.Pretty(&res.errOut, bag, pretty); err != nil {
			return err
		}
		if bag.HasErrors() {
			return fmt.Errorf("%s: %d syntax error(s)", res.file, bag.Len())
		}
		return nil
	})
	if perr != nil {
		fmt.Fprintf(&res.errOut, "dtype: %v\n", perr)
		res.failed = true
		notify(events, res.file, ui.StatusError, 0)
		return nil
	}

	opts := append(b.settings.envOptions(),
		box.WithTracer(b.tracer),
		box.WithExit(func(code int) { b.flushAndExit(res, code) }),
	)
	r := script.NewRunner(script.Config{
		Name:     res.file,
		Out:      &res.out,
		Reporter: stream,
		Options:  b.settings.Options,
		Env:      opts,
	})
	notify(events, res.file, ui.StatusRunning, 0)
	err := b.timer.Track("run "+res.file, func() error {
		return r.Run(ctx, prog)
	})
	res.stmts = r.Executed()
	if err != nil {
		fmt.Fprintf(&res.errOut, "dtype: %v\n", err)
		res.failed = true
		notify(events, res.file, ui.StatusError, res.stmts)
		return nil
	}
	notify(events, res.file, ui.StatusDone, res.stmts)
	return nil
}

// flushAndExit implements exit-on-error for a batch: the failing script's
// buffered output is written out before the process terminates.
func (b *batch) flushAndExit(res *scriptResult, code int) {
	b.flushMu.Lock()
	defer b.flushMu.Unlock()
	if b.beforeExit != nil {
		b.beforeExit()
	}
	_, _ = res.out.WriteTo(b.stdout)    //nolint:errcheck
	_, _ = res.errOut.WriteTo(b.stderr) //nolint:errcheck
	b.exit(code)
}

func (b *batch) runWithUI(ctx context.Context, files []string) error {
	events := make(chan ui.Event, 64)
	outcome := make(chan error, 1)

	// The progress view owns the terminal while scripts run; their output is
	// printed once it has quit.
	stdout := b.stdout
	var held bytes.Buffer
	b.stdout = &held
	model := ui.NewProgressModel("dtype run", files, events)
	program := tea.NewProgram(model, tea.WithOutput(stdout), tea.WithContext(ctx))
	b.beforeExit = func() {
		program.Kill()
		b.stdout = stdout
	}
	go func() {
		outcome <- b.run(ctx, files, events)
	}()

	_, uiErr := program.Run()
	// Keep the scripts unblocked if the view quit early.
	go func() {
		for range events { //nolint:revive // drain
		}
	}()
	err := <-outcome
	if _, werr := held.WriteTo(stdout); werr != nil && err == nil {
		err = werr
	}
	if uiErr != nil {
		return uiErr
	}
	return err
}

func notify(events chan<- ui.Event, file string, status ui.Status, stmts int) {
	if events == nil {
		return
	}
	events <- ui.Event{File: file, Status: status, Stmts: stmts}
}
