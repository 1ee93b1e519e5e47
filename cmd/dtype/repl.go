package main

import (
	"bufio"
	"bytes"
	"context"
	"fmt"
	"io"
	"os"

	tea "github.com/charmbracelet/bubbletea"
	"github.com/spf13/cobra"

	"dtype/internal/box"
	"dtype/internal/diag"
	"dtype/internal/diagfmt"
	"dtype/internal/script"
	"dtype/internal/trace"
	"dtype/internal/ui"
)

var replUIMode string

func init() {
	replCmd.Flags().StringVar(&replUIMode, "ui", "auto", "use the interactive inspector (auto|on|off)")
}

var replCmd = &cobra.Command{
	Use:   "repl",
	Short: "Inspect a boxed value interactively",
	Long: `Read script commands one line at a time and apply them to a single boxed
value. On a terminal this opens the inspector; otherwise commands are read
from standard input.`,
	Args: cobra.NoArgs,
	RunE: func(cmd *cobra.Command, _ []string) error {
		mode, err := readUIMode(replUIMode)
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

		if shouldUseTUI(mode) {
			return runInspector(cmd.Context(), s, tracer)
		}
		in := cmd.InOrStdin()
		prompt := in == io.Reader(os.Stdin) && isTerminal(os.Stdin)
		return replLoop(cmd.Context(), s, tracer, in, cmd.OutOrStdout(), cmd.ErrOrStderr(), prompt)
	},
}

func runInspector(ctx context.Context, s settings, tracer trace.Tracer) error {
	out := &bytes.Buffer{}
	bag := diag.NewBag(0)
	r := script.NewRunner(script.Config{
		Name:     "repl",
		Out:      out,
		Reporter: diag.BagReporter{Bag: bag},
		Options:  s.Options,
		Env:      append(s.envOptions(), box.WithTracer(tracer)),
	})
	m := ui.NewInspector(ui.InspectorConfig{Runner: r, Output: out, Diags: bag, Pretty: s.prettyOpts()})
	_, err := tea.NewProgram(m, tea.WithContext(ctx)).Run()
	return err
}

// replLoop is the line-mode REPL. With prompt set, "dtype> " is written
// before every line.
func replLoop(ctx context.Context, s settings, tracer trace.Tracer, in io.Reader, out, errOut io.Writer, prompt bool) error {
	rep := diagfmt.NewStreamReporter(errOut, s.prettyOpts())
	r := script.NewRunner(script.Config{
		Name:     "repl",
		Out:      out,
		Reporter: rep,
		Options:  s.Options,
		Env:      append(s.envOptions(), box.WithTracer(tracer)),
	})
	sc := bufio.NewScanner(in)
	for {
		if prompt {
			fmt.Fprint(out, "dtype> ")
		}
		if !sc.Scan() {
			return sc.Err()
		}
		if err := ctx.Err(); err != nil {
			return err
		}
		line := sc.Text()
		switch line {
		case "quit", "exit":
			return nil
		}
		st, ok := script.ParseLine(line, rep)
		if !ok {
			continue
		}
		if err := r.Exec(st); err != nil {
			return err
		}
	}
}
