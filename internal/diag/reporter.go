package diag

// Reporter receives diagnostics. See BagReporter, NopReporter,
// MultiReporter, PosReporter, DedupReporter and diagfmt.StreamReporter.
type Reporter interface {
	Report(d Diagnostic)
}

// BagReporter writes into *Bag.
type BagReporter struct{ Bag *Bag }

func (r BagReporter) Report(d Diagnostic) {
	if r.Bag == nil {
		return
	}
	r.Bag.Add(d)
}

// NopReporter drops everything.
type NopReporter struct{}

func (NopReporter) Report(Diagnostic) {}

// MultiReporter forwards every diagnostic to each reporter in order.
type MultiReporter []Reporter

func (m MultiReporter) Report(d Diagnostic) {
	for _, r := range m {
		if r != nil {
			r.Report(d)
		}
	}
}

// PosReporter stamps diagnostics that carry no position with the one
// returned by Where before forwarding them.
type PosReporter struct {
	Next  Reporter
	Where func() Pos
}

func (r PosReporter) Report(d Diagnostic) {
	if r.Next == nil {
		return
	}
	if d.Primary.IsZero() && r.Where != nil {
		d.Primary = r.Where()
	}
	r.Next.Report(d)
}
