package layout

import (
	"encoding/binary"
	"runtime"
	"sort"
)

// Target describes the C ABI of the machine a boxed value mimics: the widths
// of the scalar types and the byte order used to lay them out in a buffer.
type Target struct {
	Triple   string // e.g. "x86_64-linux-gnu"
	PtrSize  int    // bytes
	PtrAlign int    // bytes
	LongSize int    // sizeof(long): 8 on LP64, 4 on LLP64 and ILP32
	Order    binary.ByteOrder
}

func X86_64LinuxGNU() Target {
	return Target{
		Triple:   "x86_64-linux-gnu",
		PtrSize:  8,
		PtrAlign: 8,
		LongSize: 8,
		Order:    binary.LittleEndian,
	}
}

// AArch64LinuxGNU is LP64 little-endian, same scalar widths as x86_64.
func AArch64LinuxGNU() Target {
	return Target{
		Triple:   "aarch64-linux-gnu",
		PtrSize:  8,
		PtrAlign: 8,
		LongSize: 8,
		Order:    binary.LittleEndian,
	}
}

// X86_64WindowsMSVC is LLP64: long stays 32 bits wide.
func X86_64WindowsMSVC() Target {
	return Target{
		Triple:   "x86_64-windows-msvc",
		PtrSize:  8,
		PtrAlign: 8,
		LongSize: 4,
		Order:    binary.LittleEndian,
	}
}

func I686LinuxGNU() Target {
	return Target{
		Triple:   "i686-linux-gnu",
		PtrSize:  4,
		PtrAlign: 4,
		LongSize: 4,
		Order:    binary.LittleEndian,
	}
}

// PPC64LinuxGNU is the big-endian LP64 target.
func PPC64LinuxGNU() Target {
	return Target{
		Triple:   "powerpc64-linux-gnu",
		PtrSize:  8,
		PtrAlign: 8,
		LongSize: 8,
		Order:    binary.BigEndian,
	}
}

var known = map[string]func() Target{
	"x86_64-linux-gnu":    X86_64LinuxGNU,
	"aarch64-linux-gnu":   AArch64LinuxGNU,
	"x86_64-windows-msvc": X86_64WindowsMSVC,
	"i686-linux-gnu":      I686LinuxGNU,
	"powerpc64-linux-gnu": PPC64LinuxGNU,
}

// Lookup resolves a target triple. The empty string and "host" select Host().
func Lookup(triple string) (Target, error) {
	if triple == "" || triple == "host" {
		return Host(), nil
	}
	mk, ok := known[triple]
	if !ok {
		return Target{}, &LayoutError{Kind: LayoutErrUnknownTarget, Triple: triple}
	}
	return mk(), nil
}

// Triples lists the supported target triples in lexical order.
func Triples() []string {
	out := make([]string, 0, len(known))
	for triple := range known {
		out = append(out, triple)
	}
	sort.Strings(out)
	return out
}

// Host approximates the ABI of the running process.
func Host() Target {
	switch {
	case runtime.GOOS == "windows" && runtime.GOARCH == "amd64":
		return X86_64WindowsMSVC()
	case runtime.GOARCH == "386":
		return I686LinuxGNU()
	case runtime.GOARCH == "arm64":
		return AArch64LinuxGNU()
	case runtime.GOARCH == "ppc64":
		return PPC64LinuxGNU()
	default:
		return X86_64LinuxGNU()
	}
}
