package diagfmt

// PrettyOpts configures rendering of diagnostics blocks.
type PrettyOpts struct {
	Color     bool
	ShowNotes bool
	ShowPos   bool // print "at file:line:col" when the diagnostic has a position
	// Short selects the one-line form of diag.FormatShort instead of blocks.
	Short bool
}

// DefaultOpts mirrors the classic output: no colour, notes inline.
func DefaultOpts() PrettyOpts {
	return PrettyOpts{ShowNotes: true, ShowPos: true}
}
