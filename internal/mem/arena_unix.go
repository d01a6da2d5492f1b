//go:build !windows

package mem

import (
	"fmt"

	"golang.org/x/sys/unix"
)

// NewArena allocates a size-byte arena starting at base, backed by an
// anonymous mmap the same way the teacher codebase backs guest RAM.
func NewArena(base uint32, size uint32) (*Arena, error) {
	if size == 0 {
		return nil, fmt.Errorf("mem: arena size must be nonzero")
	}
	b, err := unix.Mmap(-1, 0, int(size), unix.PROT_READ|unix.PROT_WRITE, unix.MAP_ANON|unix.MAP_PRIVATE)
	if err != nil {
		return nil, fmt.Errorf("mem: mmap %d bytes: %w", size, err)
	}
	return &Arena{base: base, bytes: b}, nil
}

// Free releases the arena's mmap'd backing store.
func (a *Arena) Free() error {
	if a.bytes == nil {
		return nil
	}
	err := unix.Munmap(a.bytes)
	a.bytes = nil
	return err
}
