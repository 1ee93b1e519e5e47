package main

import (
	"fmt"
	"os"
	"sync"

	"github.com/spf13/cobra"
	"golang.org/x/term"

	"dtype/internal/version"
)

var rootCmd = &cobra.Command{
	Use:   "dtype",
	Short: "Boxed value toolkit",
	Long: `dtype drives boxed values: type-tagged single-value containers with C scalar
layouts, soft type checking and configurable diagnostics.`,
	SilenceUsage:  true,
	SilenceErrors: true,
}

var setupOnce sync.Once

// setupRoot registers subcommands and global flags exactly once.
func setupRoot() *cobra.Command {
	setupOnce.Do(func() {
		rootCmd.Version = version.Version
		rootCmd.AddCommand(runCmd)
		rootCmd.AddCommand(replCmd)
		rootCmd.AddCommand(demoCmd)
		rootCmd.AddCommand(versionCmd)
		addPersistentFlags(rootCmd)
	})
	return rootCmd
}

func main() {
	os.Exit(execute(setupRoot()))
}

func addPersistentFlags(root *cobra.Command) {
	pf := root.PersistentFlags()
	pf.String("color", "auto", "colorize diagnostics (auto|on|off)")
	pf.String("diag-format", "pretty", "diagnostics layout (pretty|short)")
	pf.Bool("quiet", false, "suppress non-essential output")
	pf.Bool("timings", false, "show timing information")
	pf.Int("max-diagnostics", 100, "maximum number of parse diagnostics to show per script")
	pf.String("config", "", "path to dtype.toml (default: search upwards from the working directory)")

	pf.Bool("warn-as-error", false, "treat type mismatch warnings as errors")
	pf.Bool("exit-on-error", false, "terminate with the error code on the first reported error")
	pf.Bool("no-warnings", false, "disable type mismatch warnings")
	pf.Bool("no-errors", false, "disable error reporting")
	pf.String("target", "", "target triple for value layout (default: host)")
	pf.Int("mem-limit", 0, "largest single buffer allocation in bytes (0 = unlimited)")

	pf.String("trace", "", "trace output file (- for stderr)")
	pf.String("trace-level", "off", "trace level (off|error|op|debug)")
	pf.String("trace-mode", "stream", "trace storage mode (stream|ring|both)")
	pf.Int("trace-ring-size", 4096, "ring buffer capacity for ring/both modes")

	pf.String("cpu-profile", "", "write a CPU profile to file")
	pf.String("mem-profile", "", "write a heap profile to file on exit")
	pf.String("runtime-trace", "", "write a Go runtime trace to file")
}

func execute(root *cobra.Command) int {
	err := root.Execute()
	if err == nil {
		return 0
	}
	fmt.Fprintln(root.ErrOrStderr(), "dtype:", err)
	return 1
}

func isTerminal(f *os.File) bool {
	return term.IsTerminal(int(f.Fd())) //nolint:gosec // Fd fits in int on supported platforms
}
