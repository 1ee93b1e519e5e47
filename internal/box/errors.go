package box

import "errors"

var (
	// ErrShortBuffer is returned by getters asked for more bytes than the
	// buffer holds. Nothing past the buffer is read.
	ErrShortBuffer = errors.New("read past end of buffer")

	// ErrInvalidSize is returned by ChangeSize for sizes <= 0.
	ErrInvalidSize = errors.New("invalid buffer size")

	// ErrOutOfRange is returned when a value does not fit the target's
	// width for its type (a long wider than 4 bytes on LLP64, for example).
	ErrOutOfRange = errors.New("value out of range for target")

	// ErrOutOfMemory is returned by allocators that refuse a request.
	ErrOutOfMemory = errors.New("out of memory")

	// ErrNotFixedSize is returned by SetStruct/GetStruct for types that have
	// no fixed binary size.
	ErrNotFixedSize = errors.New("type has no fixed size")
)
