package diag

import (
	"errors"
	"fmt"
)

// Error is a raised diagnostic returned to the caller as a Go error.
type Error struct {
	Code    Code
	Op      string
	Message string
	Err     error // optional cause, e.g. the allocator failure
}

// Sentinels for errors.Is; they match any *Error with the same Code.
var (
	ErrMemory      = &Error{Code: MemoryError}
	ErrWarnAsError = &Error{Code: WarnAsError}
	ErrType        = &Error{Code: TypeError}
	ErrUnknown     = &Error{Code: UnknownError}
)

func (e *Error) Error() string {
	if e == nil {
		return "<nil>"
	}
	msg := e.Message
	if msg == "" {
		msg = e.Code.Title()
	}
	s := fmt.Sprintf("%s %s", e.Code.ID(), msg)
	if e.Op != "" {
		s = e.Op + ": " + s
	}
	if e.Err != nil {
		s += ": " + e.Err.Error()
	}
	return s
}

func (e *Error) Unwrap() error {
	if e == nil {
		return nil
	}
	return e.Err
}

// Is matches sentinels by code alone.
func (e *Error) Is(target error) bool {
	var t *Error
	if e == nil || !errors.As(target, &t) || t == nil {
		return false
	}
	if t.Op != "" || t.Message != "" {
		return t.Code == e.Code && t.Op == e.Op && t.Message == e.Message
	}
	return t.Code == e.Code
}

// ErrorOf converts a diagnostic into an *Error.
func ErrorOf(d Diagnostic) *Error {
	return &Error{Code: d.Code, Op: d.Op, Message: d.Message}
}

// CodeOf extracts the code of the first *Error in err's chain.
func CodeOf(err error) (Code, bool) {
	var e *Error
	if errors.As(err, &e) && e != nil {
		return e.Code, true
	}
	return NoError, false
}
