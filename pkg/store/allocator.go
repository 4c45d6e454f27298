package store

import (
	"go.uber.org/atomic"
)

// IDAllocator hands out record identifiers 0, 1, 2, ... in order.
// It is safe for concurrent use and never returns the same value twice.
type IDAllocator struct {
	next atomic.Uint64
}

// NewIDAllocator creates an allocator whose first identifier is 0
func NewIDAllocator() *IDAllocator {
	return &IDAllocator{}
}

// Next returns the next identifier and advances the counter by one.
func (a *IDAllocator) Next() uint64 {
	return a.next.Inc() - 1
}

// Peek returns the identifier the next call to Next will return.
func (a *IDAllocator) Peek() uint64 {
	return a.next.Load()
}
