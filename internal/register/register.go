// Package register implements the MMIO register abstraction LakeRTOS-Go's
// kernel treats as an external collaborator: bit-level read/modify/write on
// 32-bit memory-mapped words, expressed as explicit atomic operations rather
// than implicit volatile accesses.
package register

import (
	"fmt"

	"gvisor.dev/gvisor/pkg/atomicbitops"
)

// Register32 models a single 32-bit memory-mapped register. Every access is
// an explicit atomic load/store; there is no implicit volatile semantics to
// get wrong.
type Register32 struct {
	word atomicbitops.Uint32
}

// Load reads the register's current value.
func (r *Register32) Load() uint32 { return r.word.Load() }

// Store writes the register's value outright.
func (r *Register32) Store(v uint32) { r.word.Store(v) }

// SetBit sets a single bit (read-modify-write).
func (r *Register32) SetBit(bit uint) {
	r.word.Store(r.word.Load() | (uint32(1) << bit))
}

// ClearBit clears a single bit (read-modify-write).
func (r *Register32) ClearBit(bit uint) {
	r.word.Store(r.word.Load() &^ (uint32(1) << bit))
}

// FlipBit toggles a single bit (read-modify-write).
func (r *Register32) FlipBit(bit uint) {
	r.word.Store(r.word.Load() ^ (uint32(1) << bit))
}

// Bit reads a single bit.
func (r *Register32) Bit(bit uint) bool {
	return r.word.Load()&(uint32(1)<<bit) != 0
}

// SetBits ORs value (shifted into place) onto the field [offset, offset+length).
func (r *Register32) SetBits(offset, length uint, value uint32) error {
	mask, err := fieldMask(offset, length)
	if err != nil {
		return fmt.Errorf("register: set_bits: %w", err)
	}
	r.word.Store(r.word.Load() | ((value << offset) & mask))
	return nil
}

// ClearBits zeroes the field [offset, offset+length).
func (r *Register32) ClearBits(offset, length uint) error {
	mask, err := fieldMask(offset, length)
	if err != nil {
		return fmt.Errorf("register: clear_bits: %w", err)
	}
	r.word.Store(r.word.Load() &^ mask)
	return nil
}

// FlipBits toggles every bit in the field [offset, offset+length).
func (r *Register32) FlipBits(offset, length uint) error {
	mask, err := fieldMask(offset, length)
	if err != nil {
		return fmt.Errorf("register: flip_bits: %w", err)
	}
	r.word.Store(r.word.Load() ^ mask)
	return nil
}

// ReplaceBits clears the field [offset, offset+length) and writes value into
// it (read-modify-write). Unlike the original source, the field is validated
// against both the register width and value's own magnitude: a field that
// runs past bit 31, or a value wider than length bits, gets an error instead
// of silently clobbering neighbouring fields. The register cannot know the
// width a call site intends, so a length wider than the real field that
// still fits the register (e.g. length=32 for a 16-bit BRR write) is accepted
// and replaces the whole wider range.
func (r *Register32) ReplaceBits(offset, length uint, value uint32) error {
	mask, err := fieldMask(offset, length)
	if err != nil {
		return fmt.Errorf("register: replace_bits: %w", err)
	}
	if length < 32 && value>>length != 0 {
		return fmt.Errorf("register: replace_bits: value 0x%x does not fit in a %d-bit field", value, length)
	}
	cur := r.word.Load()
	r.word.Store((cur &^ mask) | ((value << offset) & mask))
	return nil
}

func fieldMask(offset, length uint) (uint32, error) {
	if length == 0 || length > 32 {
		return 0, fmt.Errorf("invalid field length %d", length)
	}
	if offset >= 32 || offset+length > 32 {
		return 0, fmt.Errorf("field [%d:%d) overflows a 32-bit register", offset, offset+length)
	}
	if length == 32 {
		return 0xFFFFFFFF, nil
	}
	return ((uint32(1) << length) - 1) << offset, nil
}
