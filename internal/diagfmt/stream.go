package diagfmt

import (
	"io"
	"sync"

	"dtype/internal/diag"
)

// StreamReporter renders each diagnostic to w as soon as it is reported.
// Writes are serialised so several environments may share one stream.
type StreamReporter struct {
	mu   sync.Mutex
	w    io.Writer
	opts PrettyOpts
}

func NewStreamReporter(w io.Writer, opts PrettyOpts) *StreamReporter {
	return &StreamReporter{w: w, opts: opts}
}

func (r *StreamReporter) Report(d diag.Diagnostic) {
	if r == nil || r.w == nil {
		return
	}
	out := Render(d, r.opts)
	r.mu.Lock()
	defer r.mu.Unlock()
	// Best-effort write: a broken stderr must not break value operations.
	_, _ = io.WriteString(r.w, out) //nolint:errcheck
}

// SetOpts swaps the rendering options, e.g. after --color was resolved.
func (r *StreamReporter) SetOpts(opts PrettyOpts) {
	r.mu.Lock()
	r.opts = opts
	r.mu.Unlock()
}
