// Package collections provides generic data structures for efficient
// data processing.
package collections

import (
	"sync"
)

// SlicePool is a generic pool for slices of any type. Workers borrow
// scratch slices per chunk instead of allocating fresh ones.
type SlicePool[T any] struct {
	pool       sync.Pool
	initialCap int
}

// NewSlicePool creates a new slice pool with the given initial capacity.
func NewSlicePool[T any](initialCap int) *SlicePool[T] {
	if initialCap <= 0 {
		initialCap = 256
	}
	return &SlicePool[T]{
		initialCap: initialCap,
		pool: sync.Pool{
			New: func() interface{} {
				s := make([]T, 0, initialCap)
				return &s
			},
		},
	}
}

// Get gets a slice from the pool.
func (p *SlicePool[T]) Get() *[]T {
	return p.pool.Get().(*[]T)
}

// Put returns a slice to the pool after clearing it.
func (p *SlicePool[T]) Put(s *[]T) {
	*s = (*s)[:0]
	p.pool.Put(s)
}

// OffsetSlicePool is a pool for newline offset buffers.
var OffsetSlicePool = NewSlicePool[int](4096)

// GetOffsetSlice gets an offset buffer from the pool.
func GetOffsetSlice() *[]int {
	return OffsetSlicePool.Get()
}

// PutOffsetSlice returns an offset buffer to the pool after clearing it.
func PutOffsetSlice(s *[]int) {
	OffsetSlicePool.Put(s)
}

// TokenSlicePool is a pool for line tokenizer buffers.
var TokenSlicePool = NewSlicePool[[]byte](32)

// GetTokenSlice gets a token buffer from the pool.
func GetTokenSlice() *[][]byte {
	return TokenSlicePool.Get()
}

// PutTokenSlice returns a token buffer to the pool after clearing it.
func PutTokenSlice(s *[][]byte) {
	TokenSlicePool.Put(s)
}
