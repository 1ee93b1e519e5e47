package main

import (
	"fmt"
	"os"
	"strings"

	"github.com/fatih/color"

	"dtype/internal/diagfmt"
)

// tristate is the auto|on|off switch shared by --ui and --color.
type tristate string

const (
	modeAuto tristate = "auto"
	modeOn   tristate = "on"
	modeOff  tristate = "off"
)

func readTristate(flag, value string) (tristate, error) {
	switch strings.TrimSpace(strings.ToLower(value)) {
	case "", "auto":
		return modeAuto, nil
	case "on":
		return modeOn, nil
	case "off":
		return modeOff, nil
	default:
		return "", fmt.Errorf("invalid %s value %q (expected auto|on|off)", flag, value)
	}
}

func readUIMode(value string) (tristate, error) { return readTristate("--ui", value) }

func readColorMode(value string) (tristate, error) { return readTristate("color", value) }

func shouldUseTUI(mode tristate) bool {
	switch mode {
	case modeOn:
		return true
	case modeOff:
		return false
	default:
		return isTerminal(os.Stdout) && isTerminal(os.Stdin)
	}
}

func shouldColor(mode tristate) bool {
	switch mode {
	case modeOn:
		return true
	case modeOff:
		return false
	default:
		return !color.NoColor && isTerminal(os.Stderr)
	}
}

// prettyOpts resolves the diagnostic rendering options for s.
func (s settings) prettyOpts() diagfmt.PrettyOpts {
	opts := diagfmt.DefaultOpts()
	mode, err := readColorMode(s.Color)
	if err != nil {
		mode = modeAuto
	}
	opts.Color = shouldColor(mode)
	opts.Short = s.DiagFormat == "short"
	return opts
}
