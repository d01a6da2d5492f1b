package board

import (
	"fmt"
	"sync"
)

// MMIORegion describes one fixed memory-mapped address window.
type MMIORegion struct {
	Name string
	Base uint64
	Size uint64
}

// AddressSpace tracks the board's physical address layout: the process
// stack RAM region plus the fixed peripheral windows (SysTick/ICSR, GPIO,
// RCC, USART1). Adapted from the teacher's hypervisor guest-physical address
// allocator (internal/hv.AddressSpace): the overlap bookkeeping is
// domain-general, so it is kept (no alignment is checked); the VM/VCPU-specific allocation-on-demand
// API is dropped since this board has a fixed, fully-specified memory map
// rather than a guest negotiating MMIO BARs at runtime.
type AddressSpace struct {
	mu sync.Mutex

	ramBase uint64
	ramSize uint64

	fixed []MMIORegion
}

// NewAddressSpace creates an address space describing RAM [ramBase, ramBase+ramSize).
func NewAddressSpace(ramBase, ramSize uint64) *AddressSpace {
	return &AddressSpace{ramBase: ramBase, ramSize: ramSize}
}

// RegisterFixed registers a pre-determined MMIO region (SysTick, GPIO, RCC,
// USART1, ...). Returns an error if it overlaps RAM or an already-registered
// region.
func (a *AddressSpace) RegisterFixed(name string, base, size uint64) error {
	a.mu.Lock()
	defer a.mu.Unlock()

	if size == 0 {
		return fmt.Errorf("board: cannot register zero-size fixed region %s", name)
	}
	end := base + size
	if end < base {
		return fmt.Errorf("board: fixed region %s overflows the address space", name)
	}

	ramEnd := a.ramBase + a.ramSize
	if base < ramEnd && end > a.ramBase {
		return fmt.Errorf("board: fixed region %s [0x%x-0x%x) overlaps RAM [0x%x-0x%x)", name, base, end, a.ramBase, ramEnd)
	}
	for _, existing := range a.fixed {
		existingEnd := existing.Base + existing.Size
		if base < existingEnd && end > existing.Base {
			return fmt.Errorf("board: fixed region %s [0x%x-0x%x) overlaps %s [0x%x-0x%x)",
				name, base, end, existing.Name, existing.Base, existingEnd)
		}
	}

	a.fixed = append(a.fixed, MMIORegion{Name: name, Base: base, Size: size})
	return nil
}

// FixedRegions returns a copy of all registered fixed regions.
func (a *AddressSpace) FixedRegions() []MMIORegion {
	a.mu.Lock()
	defer a.mu.Unlock()
	out := make([]MMIORegion, len(a.fixed))
	copy(out, a.fixed)
	return out
}

// RAMBase returns the RAM region's base address.
func (a *AddressSpace) RAMBase() uint64 { return a.ramBase }

// RAMSize returns the RAM region's size.
func (a *AddressSpace) RAMSize() uint64 { return a.ramSize }

// RAMEnd returns the first address after RAM.
func (a *AddressSpace) RAMEnd() uint64 { return a.ramBase + a.ramSize }
