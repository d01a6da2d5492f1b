//go:build windows

package mem

import "fmt"

// NewArena allocates a size-byte arena starting at base. Windows has no
// anonymous-mmap equivalent wired up here, so the arena falls back to a plain
// heap-backed slice; the simulated address space behaves identically either
// way since nothing depends on the backing allocator beyond ReadAt/WriteAt.
func NewArena(base uint32, size uint32) (*Arena, error) {
	if size == 0 {
		return nil, fmt.Errorf("mem: arena size must be nonzero")
	}
	return &Arena{base: base, bytes: make([]byte, size)}, nil
}

// Free is a no-op on the heap-backed fallback.
func (a *Arena) Free() error {
	a.bytes = nil
	return nil
}
