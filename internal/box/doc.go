// Package box implements a boxed value: a container holding exactly one
// value of one of a fixed set of C scalar types, a string, or an opaque
// blob of custom bytes, together with a tag recording which type it holds.
//
// # Storage
//
// A Value owns one byte buffer. Every setter releases the previous buffer,
// allocates a fresh zeroed one sized for the incoming value (the target's
// sizeof for scalars, len+1 for strings, the caller's length for custom
// bytes), copies the value in and updates the tag. Clear returns the value
// to the empty state (tag None, no buffer). Buffers are never shared between
// values; a Value must not be copied by value.
//
// Scalars are laid out as the selected layout.Target would lay them out in C:
// the width of long and the byte order come from the target, everything else
// has the usual fixed width.
//
// # Diagnostics
//
// Every Value is bound to an Env, the explicit configuration context holding
// the four switches (error reporting, warning reporting, warnings as errors,
// exit on error), the diag.Reporter that receives findings, the Allocator and
// the Target. DefaultEnv is the process-wide environment used by Default and
// by the zero Value; it reports to stderr in the classic block format.
//
// Getters are soft: when the tag differs from the requested type they emit a
// TypeMismatch warning and still reinterpret the bytes. With WarnAsError on,
// the mismatch is additionally raised as a WarnAsError error and returned.
// Reading a type wider than the buffer is a caller contract violation; the
// getter returns the zero value and an error wrapping ErrShortBuffer and
// never reads past the buffer.
//
// With ExitOnError on, any raised error terminates the process with the
// error code as exit status before the operation returns.
//
// # Concurrency
//
// Neither Value nor Env is synchronised. Use one Env per goroutine, or guard
// shared ones externally; this includes the switches of DefaultEnv.
package box
