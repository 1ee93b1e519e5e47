// Package diag defines the diagnostic model shared by the boxed value
// library and its front ends.
//
// # Purpose
//
//   - Describe every finding of a value operation (allocation failure,
//     corrupted tag, type mismatch, escalated mismatch) as plain data.
//   - Offer light-weight utilities (Reporter, Bag) that let producers emit
//     diagnostics without coupling to concrete storage or formatting layers.
//   - Turn a raised diagnostic into a Go error (Error) so operations can
//     return a structured result instead of only printing.
//
// # Scope
//
// Package diag does not perform any formatting beyond the short single-line
// form, and no IO. Rendering of the legacy error/warning blocks lives in
// internal/diagfmt; the switches that decide whether something is reported at
// all live on box.Env.
//
// # Data model
//
// Diagnostic is the central record. It contains:
//
//   - Severity – tri-level enum (Info, Warning, Error) defined in severity.go.
//   - Code – the error kind (see codes.go) with stable ID form (E0001).
//   - Op – the operation that raised it, e.g. "SetInt".
//   - Message – human oriented text; keep it short and actionable.
//   - Primary – optional position (script file/line/column) filled in by
//     front ends that know where an operation came from.
//   - Notes – extra lines such as the requested allocation size.
//
// Error kinds follow the original enumeration: NoError, MemoryError,
// WarnAsError, TypeError, UnknownError. Only the codes strictly between
// NoError and UnknownError (inclusive) are raisable; TypeMismatch is a
// warning-only code outside that range.
//
// # Emitting diagnostics
//
// Producers build a Diagnostic with NewError / NewWarning, attach notes and
// a position with WithNote and At, and hand it to a Reporter. BagReporter
// aggregates into a Bag, which can be sorted by position and counted per
// code; DedupReporter drops repeats on the way.
package diag
