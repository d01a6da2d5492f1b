package kernel

import (
	"fmt"
	"reflect"

	"github.com/lakertos-go/lakertos/internal/mem"
)

// initialXPSR is the Thumb bit set and nothing else: bit 24 (T) must be set
// for any code this kernel ever "executes" since Cortex-M has no ARM mode.
const initialXPSR uint32 = 0x0100_0000

// eabiEXCReturnThreadPSP is the EXC_RETURN value a newly-created task's
// load frame presents: return to Thread mode, use PSP, no floating-point
// state.
const eabiEXCReturnThreadPSP uint32 = 0xFFFF_FFFD

// loadFrameWords is the number of words context-switch software restores
// before handing off to hardware unstacking: 7 padding words (kept purely
// for layout fidelity with the target's assembly, which reserves them for
// alignment bookkeeping) + r4-r11 (8 words) + LR (1 word).
const loadFrameWords = 7 + 8 + 1

// exceptionFrameWords is r0, r1, r2, r3, r12, LR, PC, xPSR: the frame the
// Cortex-M hardware pushes on exception entry and pops on exception return.
const exceptionFrameWords = 8

const (
	loadFrameBytes      = loadFrameWords * 4
	exceptionFrameBytes = exceptionFrameWords * 4
	totalFrameBytes     = loadFrameBytes + exceptionFrameBytes
)

// entryAddress returns a symbolic code address for fn (the low 32 bits of its
// code pointer), stored as a task's synthesized PC. This host simulation
// never branches through this value — tasks actually run as goroutines
// invoking fn directly. Distinct function literals get distinct values, but
// closures of one literal share a value: every task made by CreateProcess
// passes the same wrapper literal here, so those tasks all store the same PC,
// which is the wrapper's address rather than the user entry function's.
func entryAddress(fn func()) uint32 {
	return uint32(reflect.ValueOf(fn).Pointer())
}

// synthesizeStack writes a task's initial stack frame at the top of its
// stack region and returns the resulting PSP: the address of the exception
// frame's r0, exactly totalFrameBytes below stackTop.
//
// Layout, low to high address:
//
//	[loadBase, loadBase+28)   7 padding words
//	[loadBase+28, loadBase+60) r4..r11  (r4 = 0x3, the rest 0)
//	[loadBase+60, loadBase+64) LR = eabiEXCReturnThreadPSP
//	[psp, psp+4)              r0 = 0
//	[psp+4, psp+8)            r1 = 0
//	[psp+8, psp+12)           r2 = 0
//	[psp+12, psp+16)          r3 = 0
//	[psp+16, psp+20)          r12 = 0
//	[psp+20, psp+24)          lr = 0
//	[psp+24, psp+28)          pc = entryAddress(entry)
//	[psp+28, psp+32)          xpsr = initialXPSR
//
// stackTop must be 8-byte aligned; since totalFrameBytes is itself a
// multiple of 8, psp and loadBase come out 8-aligned too.
func synthesizeStack(arena *mem.Arena, stackTop uint32, entry func()) (uint32, error) {
	if stackTop%8 != 0 {
		return 0, fmt.Errorf("kernel: stack top 0x%x is not 8-byte aligned", stackTop)
	}
	if stackTop < arena.Base()+totalFrameBytes {
		return 0, fmt.Errorf("kernel: stack region too small for frame at top 0x%x", stackTop)
	}

	loadBase := stackTop - totalFrameBytes
	psp := loadBase + loadFrameBytes

	for i := uint32(0); i < 7; i++ {
		if err := arena.WriteUint32(loadBase+i*4, 0); err != nil {
			return 0, fmt.Errorf("kernel: synthesize stack: %w", err)
		}
	}
	r4r11Base := loadBase + 28
	for reg := uint32(0); reg < 8; reg++ {
		v := uint32(0)
		if reg == 0 { // r4
			v = 0x3
		}
		if err := arena.WriteUint32(r4r11Base+reg*4, v); err != nil {
			return 0, fmt.Errorf("kernel: synthesize stack: %w", err)
		}
	}
	if err := arena.WriteUint32(loadBase+60, eabiEXCReturnThreadPSP); err != nil {
		return 0, fmt.Errorf("kernel: synthesize stack: %w", err)
	}

	for reg := uint32(0); reg < 5; reg++ { // r0, r1, r2, r3, r12
		if err := arena.WriteUint32(psp+reg*4, 0); err != nil {
			return 0, fmt.Errorf("kernel: synthesize stack: %w", err)
		}
	}
	if err := arena.WriteUint32(psp+20, 0); err != nil {
		return 0, fmt.Errorf("kernel: synthesize stack: %w", err)
	}
	if err := arena.WriteUint32(psp+24, entryAddress(entry)); err != nil {
		return 0, fmt.Errorf("kernel: synthesize stack: %w", err)
	}
	if err := arena.WriteUint32(psp+28, initialXPSR); err != nil {
		return 0, fmt.Errorf("kernel: synthesize stack: %w", err)
	}

	return psp, nil
}
