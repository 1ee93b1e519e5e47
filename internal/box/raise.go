package box

import (
	"errors"
	"fmt"
	"strconv"

	"dtype/internal/diag"
	"dtype/internal/trace"
)

const (
	msgAlloc       = "Couldn't allocate memory for size"
	msgCorrupt     = "Invalid type, type is corrupted."
	msgWarnAsError = "All warnings treated as errors, Error produced due to type mismatch."
	msgBadPrint    = "Invalid type to print."
	opTypecheck    = "typecheck"
)

// Raise is the single funnel for error reporting. It returns false without
// doing anything when error reporting is off or code is not a raisable
// error kind. Otherwise the diagnostic goes to the reporter and, with
// ExitOnError, the process terminates with code as exit status.
func (e *Env) Raise(op, msg string, code diag.Code, notes ...string) bool {
	if !e.opts.ErrorReporting || !code.Raisable() {
		return false
	}
	d := diag.NewError(code, op, msg)
	for _, n := range notes {
		d = d.WithNote(n)
	}
	e.emit(d)
	if e.opts.ExitOnError {
		e.terminate(code)
	}
	return true
}

func (e *Env) emit(d diag.Diagnostic) {
	if e.tracer.Enabled() {
		ev := trace.Point(trace.ScopeDiag, d.Code.ID(), d.Op)
		ev.Extra = map[string]string{"severity": d.Severity.String()}
		e.tracer.Emit(ev)
	}
	if e.reporter != nil {
		e.reporter.Report(d)
	}
}

func (e *Env) terminate(code diag.Code) {
	// Exit skips deferred calls; get buffered trace events out first.
	_ = e.tracer.Flush() //nolint:errcheck
	e.exit(int(code))
}

// memError raises MemoryError for a failed request of size bytes and returns
// the matching error.
func (e *Env) memError(size int, op string, cause error) error {
	e.Raise(op, msgAlloc, diag.MemoryError, strconv.Itoa(size))
	return &diag.Error{Code: diag.MemoryError, Op: op, Message: fmt.Sprintf("%s: %d", msgAlloc, size), Err: cause}
}

// typecheck compares the tag of v with want. It returns true when a mismatch
// was detected: the tag is corrupted (TypeError raised), or warnings are on
// and the tags differ (TypeMismatch warning emitted).
func (e *Env) typecheck(v *Value, want Tag, op string) bool {
	if !v.tag.Valid() {
		e.Raise(opTypecheck, msgCorrupt, diag.TypeError, corruptNote(v.tag))
		return true
	}
	if !e.opts.WarnReporting || v.tag == want {
		return false
	}
	msg := fmt.Sprintf("Type mismatch while getting : `%s` [typecode : %d ] from `%s` [typecode : %d ]",
		want.Name(), want, v.tag.Name(), v.tag)
	e.emit(diag.NewWarning(diag.TypeMismatch, op, msg))
	return true
}

// check runs typecheck and escalates per WarnAsError. The returned error is
// independent of the reporting switches: it describes what happened.
func (e *Env) check(v *Value, want Tag, op string) error {
	var errs []error
	if !v.tag.Valid() {
		errs = append(errs, &diag.Error{Code: diag.TypeError, Op: opTypecheck, Message: msgCorrupt + " " + corruptNote(v.tag)})
	}
	if e.typecheck(v, want, op) && e.opts.WarnAsError {
		e.Raise(op, msgWarnAsError, diag.WarnAsError)
		errs = append(errs, &diag.Error{Code: diag.WarnAsError, Op: op, Message: msgWarnAsError})
	}
	if len(errs) == 1 {
		return errs[0]
	}
	return errors.Join(errs...)
}

func corruptNote(t Tag) string {
	return fmt.Sprintf("type `%d` is not within ( %d >= type >= %d )", uint8(t), TagNone, TagCustom)
}
