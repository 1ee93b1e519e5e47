package box_test

import (
	"errors"
	"fmt"
	"os"
	"os/exec"
	"strings"
	"testing"

	"dtype/internal/box"
	"dtype/internal/diag"
	"dtype/internal/diagfmt"
)

const exitChildEnv = "DTYPE_EXIT_CHILD"

// TestExitOnErrorTerminates re-executes the test binary: the child enables
// exit-on-error on a real stderr reporter and triggers an allocation
// failure, which must end the process before the setter returns.
func TestExitOnErrorTerminates(t *testing.T) {
	if os.Getenv(exitChildEnv) == "1" {
		env := box.NewEnv(
			box.WithAllocator(&box.HeapAllocator{Limit: 1}),
			box.WithReporter(diagfmt.NewStreamReporter(os.Stderr, diagfmt.DefaultOpts())),
		)
		env.SetExitOnError(true)
		v := env.New()
		_ = v.SetInt(1)
		fmt.Println("unreachable")
		os.Exit(0)
	}

	cmd := exec.Command(os.Args[0], "-test.run=^TestExitOnErrorTerminates$")
	cmd.Env = append(os.Environ(), exitChildEnv+"=1")
	var stdout, stderr strings.Builder
	cmd.Stdout = &stdout
	cmd.Stderr = &stderr
	err := cmd.Run()

	var exitErr *exec.ExitError
	if !errors.As(err, &exitErr) {
		t.Fatalf("child did not fail: %v\nstdout: %s", err, stdout.String())
	}
	if got := exitErr.ExitCode(); got != int(diag.MemoryError) {
		t.Fatalf("exit code = %d, want %d", got, diag.MemoryError)
	}
	if strings.Contains(stdout.String(), "unreachable") {
		t.Fatalf("setter returned before exit")
	}
	if !strings.Contains(stderr.String(), "Errcode: 1") || !strings.Contains(stderr.String(), "SetInt") {
		t.Fatalf("stderr = %q", stderr.String())
	}
}
