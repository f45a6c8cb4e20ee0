package report

import (
	"sync"
	"unsafe"
)

const (
	poolAlignment = 64

	// DefaultBlockSize is the size of each arena block.
	DefaultBlockSize = 1 << 20
)

// MemoryPool is a thread-safe bump allocator. Allocation only moves a
// cursor; there is no per-object free. Reset rewinds every cursor in
// one step so a pool can be reused across parse runs. Record names are
// copied into the pool so they never alias the file mapping.
type MemoryPool struct {
	mu        sync.Mutex
	blockSize int
	blocks    [][]byte
	current   int
	offset    int
	allocated uint64
}

// NewMemoryPool creates a pool with the given block size; zero or
// negative selects DefaultBlockSize.
func NewMemoryPool(blockSize int) *MemoryPool {
	if blockSize <= 0 {
		blockSize = DefaultBlockSize
	}
	return &MemoryPool{blockSize: blockSize, current: -1}
}

// Alloc returns a slice of n bytes from the arena. Blocks are reused
// across Reset, so the returned bytes may hold stale data; callers
// must write the full span. Allocations are rounded up to the
// alignment so adjacent objects do not share cache lines.
func (p *MemoryPool) Alloc(n int) []byte {
	if n <= 0 {
		return nil
	}
	rounded := (n + poolAlignment - 1) &^ (poolAlignment - 1)

	p.mu.Lock()
	defer p.mu.Unlock()

	if p.current < 0 || p.offset+rounded > len(p.blocks[p.current]) {
		p.grow(rounded)
	}
	block := p.blocks[p.current]
	buf := block[p.offset : p.offset+n : p.offset+n]
	p.offset += rounded
	p.allocated += uint64(rounded)
	return buf
}

// grow selects the next block able to hold n bytes, reusing blocks
// kept across a Reset before allocating fresh ones.
func (p *MemoryPool) grow(n int) {
	for next := p.current + 1; next < len(p.blocks); next++ {
		if len(p.blocks[next]) >= n {
			p.current = next
			p.offset = 0
			return
		}
	}
	size := p.blockSize
	if n > size {
		size = n
	}
	p.blocks = append(p.blocks, make([]byte, size))
	p.current = len(p.blocks) - 1
	p.offset = 0
}

// InternString copies b into the arena and returns it as a string.
func (p *MemoryPool) InternString(b []byte) string {
	if len(b) == 0 {
		return ""
	}
	buf := p.Alloc(len(b))
	copy(buf, b)
	return unsafe.String(&buf[0], len(buf))
}

// InternJoin copies tokens into the arena joined by single spaces and
// returns the result as a string.
func (p *MemoryPool) InternJoin(tokens [][]byte) string {
	if len(tokens) == 0 {
		return ""
	}
	if len(tokens) == 1 {
		return p.InternString(tokens[0])
	}
	total := len(tokens) - 1
	for _, t := range tokens {
		total += len(t)
	}
	buf := p.Alloc(total)
	pos := 0
	for i, t := range tokens {
		if i > 0 {
			buf[pos] = ' '
			pos++
		}
		pos += copy(buf[pos:], t)
	}
	return unsafe.String(&buf[0], len(buf))
}

// AllocatedBytes returns the bytes handed out since the last Reset,
// including alignment padding.
func (p *MemoryPool) AllocatedBytes() uint64 {
	p.mu.Lock()
	defer p.mu.Unlock()
	return p.allocated
}

// BlockCount returns the number of arena blocks held.
func (p *MemoryPool) BlockCount() int {
	p.mu.Lock()
	defer p.mu.Unlock()
	return len(p.blocks)
}

// Reset rewinds all cursors without releasing the blocks. Strings
// interned before the reset must no longer be referenced.
func (p *MemoryPool) Reset() {
	p.mu.Lock()
	p.current = -1
	p.offset = 0
	p.allocated = 0
	p.mu.Unlock()
}
