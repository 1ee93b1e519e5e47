// Package version holds build fingerprints, overridable with -ldflags:
//
//	go build -ldflags "-X dtype/internal/version.GitCommit=$(git rev-parse HEAD)" ./cmd/dtype
package version

import (
	"strings"

	"github.com/fatih/color"
)

var (
	// Version is the semantic version of the library and CLI.
	Version = "0.1.0-dev"

	GitCommit = ""

	GitMessage = ""

	// BuildDate is ISO-8601 when set.
	BuildDate = ""
)

var (
	majorColor = color.New(color.FgYellow, color.Bold)
	minorColor = color.New(color.FgGreen, color.Bold)
	patchColor = color.New(color.FgBlue, color.Bold)
)

// Info is the machine readable fingerprint printed by `dtype version --format json`.
type Info struct {
	Version    string `json:"version"`
	GitCommit  string `json:"git_commit,omitempty"`
	GitMessage string `json:"git_message,omitempty"`
	BuildDate  string `json:"build_date,omitempty"`
}

func Current() Info {
	return Info{
		Version:    Version,
		GitCommit:  GitCommit,
		GitMessage: GitMessage,
		BuildDate:  BuildDate,
	}
}

// Pretty colours the major, minor and patch components of Version. Any
// pre-release suffix is kept as is. Colour follows color.NoColor.
func Pretty() string {
	core, suffix, _ := strings.Cut(Version, "-")
	parts := strings.SplitN(core, ".", 3)
	if len(parts) != 3 {
		return Version
	}
	out := majorColor.Sprint(parts[0]) + "." + minorColor.Sprint(parts[1]) + "." + patchColor.Sprint(parts[2])
	if suffix != "" {
		out += "-" + suffix
	}
	return out
}
