package box

import (
	"fmt"
)

// Allocator hands out zeroed buffers and takes them back.
type Allocator interface {
	Alloc(size int) ([]byte, error)
	Free(buf []byte)
}

// Stats are allocation counters; a value that went through any sequence of
// operations ending in Clear leaves Allocs == Frees and LiveBytes == 0.
type Stats struct {
	Allocs    uint64
	Frees     uint64
	Failures  uint64
	LiveBytes int
	PeakBytes int
}

// Leaked reports whether some allocation was never released.
func (s Stats) Leaked() bool {
	return s.Allocs != s.Frees || s.LiveBytes != 0
}

// MaxAlloc is the largest buffer HeapAllocator will request from the
// runtime, whatever its Limit. Larger requests fail with ErrOutOfMemory
// instead of reaching make.
const MaxAlloc = 1<<31 - 1

// HeapAllocator allocates from the Go heap.
//
// Limit caps a single request and Budget caps the live total; zero means
// unlimited. Exceeding either fails with ErrOutOfMemory, which lets callers
// exercise allocation failure deterministically.
type HeapAllocator struct {
	Limit  int
	Budget int

	stats Stats
}

func (a *HeapAllocator) Alloc(size int) ([]byte, error) {
	if size < 0 {
		a.stats.Failures++
		return nil, fmt.Errorf("%w: negative size %d", ErrOutOfMemory, size)
	}
	if size > MaxAlloc {
		a.stats.Failures++
		return nil, fmt.Errorf("%w: %d bytes exceeds the %d byte ceiling", ErrOutOfMemory, size, MaxAlloc)
	}
	if a.Limit > 0 && size > a.Limit {
		a.stats.Failures++
		return nil, fmt.Errorf("%w: %d bytes exceeds limit %d", ErrOutOfMemory, size, a.Limit)
	}
	if a.Budget > 0 && size > a.Budget-a.stats.LiveBytes {
		a.stats.Failures++
		return nil, fmt.Errorf("%w: %d bytes exceeds budget (%d of %d live)", ErrOutOfMemory, size, a.stats.LiveBytes, a.Budget)
	}
	buf := make([]byte, size)
	a.stats.Allocs++
	a.stats.LiveBytes += size
	if a.stats.LiveBytes > a.stats.PeakBytes {
		a.stats.PeakBytes = a.stats.LiveBytes
	}
	return buf, nil
}

func (a *HeapAllocator) Free(buf []byte) {
	if buf == nil {
		return
	}
	a.stats.Frees++
	a.stats.LiveBytes -= len(buf)
}

func (a *HeapAllocator) Stats() Stats {
	return a.stats
}
