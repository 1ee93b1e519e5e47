package main

import (
	"fmt"
	"io"

	"dtype/internal/trace"
)

// setupTracing builds the tracer described by s. The returned cleanup
// flushes and closes it and must run before the process exits.
func setupTracing(s settings, errOut io.Writer) (trace.Tracer, func(), error) {
	level, err := trace.ParseLevel(s.TraceLevel)
	if err != nil {
		return nil, nil, fmt.Errorf("invalid trace level: %w", err)
	}
	if level == trace.LevelOff {
		return trace.Nop, func() {}, nil
	}
	mode, err := trace.ParseMode(s.TraceMode)
	if err != nil {
		return nil, nil, fmt.Errorf("invalid trace mode: %w", err)
	}
	tracer, err := trace.New(trace.Config{
		Level:      level,
		Mode:       mode,
		OutputPath: s.TraceOut,
		RingSize:   s.RingSize,
	})
	if err != nil {
		return nil, nil, fmt.Errorf("failed to create tracer: %w", err)
	}

	cleanup := func() {
		// In ring mode nothing has been written yet; dump what was kept.
		if ring, ok := tracer.(*trace.RingTracer); ok {
			if err := ring.Dump(errOut, trace.FormatText); err != nil {
				fmt.Fprintf(errOut, "trace: dump error: %v\n", err)
			}
		}
		if err := tracer.Flush(); err != nil {
			fmt.Fprintf(errOut, "trace: flush error: %v\n", err)
		}
		if err := tracer.Close(); err != nil {
			fmt.Fprintf(errOut, "trace: close error: %v\n", err)
		}
	}
	return tracer, cleanup, nil
}
