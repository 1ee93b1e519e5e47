package main

import (
	"fmt"
	"io"

	"dtype/internal/prof"
)

// setupProfiling starts the Go profilers named by s. The returned stop
// function reports write failures on errOut and may be called repeatedly.
func setupProfiling(s settings, errOut io.Writer) (func(), error) {
	session, err := prof.Start(s.Profile)
	if err != nil {
		return nil, fmt.Errorf("failed to start profiling: %w", err)
	}
	return func() {
		if err := session.Stop(); err != nil {
			fmt.Fprintf(errOut, "profile: %v\n", err)
		}
	}, nil
}
