package kernel

import (
	"testing"

	"github.com/lakertos-go/lakertos/internal/mem"
)

func testArena(t *testing.T) *mem.Arena {
	t.Helper()
	a, err := mem.NewArena(0x2000_0000, 0x1000)
	if err != nil {
		t.Fatalf("NewArena: %v", err)
	}
	t.Cleanup(func() { _ = a.Free() })
	return a
}

func TestStackSynthesisLayout(t *testing.T) {
	a := testArena(t)
	entry := func() {}

	psp, err := synthesizeStack(a, 0x2000_1000, entry)
	if err != nil {
		t.Fatalf("synthesizeStack: %v", err)
	}
	if psp%8 != 0 {
		t.Fatalf("psp 0x%x is not 8-byte aligned", psp)
	}

	pc, err := a.ReadUint32(psp + 24)
	if err != nil {
		t.Fatalf("read pc: %v", err)
	}
	if pc != entryAddress(entry) {
		t.Fatalf("pc = 0x%x, want 0x%x", pc, entryAddress(entry))
	}

	xpsr, err := a.ReadUint32(psp + 28)
	if err != nil {
		t.Fatalf("read xpsr: %v", err)
	}
	if xpsr != initialXPSR {
		t.Fatalf("xpsr = 0x%x, want 0x%x", xpsr, initialXPSR)
	}

	lr, err := a.ReadUint32(psp - 4)
	if err != nil {
		t.Fatalf("read load-frame lr: %v", err)
	}
	if lr != eabiEXCReturnThreadPSP {
		t.Fatalf("load frame lr = 0x%x, want 0x%x", lr, eabiEXCReturnThreadPSP)
	}

	r4, err := a.ReadUint32(psp - loadFrameBytes + 28)
	if err != nil {
		t.Fatalf("read r4: %v", err)
	}
	if r4 != 0x3 {
		t.Fatalf("r4 = 0x%x, want 0x3", r4)
	}

	lr, err = a.ReadUint32(psp + 20)
	if err != nil {
		t.Fatalf("read exception-frame lr: %v", err)
	}
	if lr != 0 {
		t.Fatalf("exception-frame lr = 0x%x, want 0", lr)
	}
}

func TestStackSynthesisRejectsUnalignedTop(t *testing.T) {
	a := testArena(t)
	if _, err := synthesizeStack(a, 0x2000_0FFC, func() {}); err == nil {
		t.Fatal("expected error for unaligned stack top")
	}
}

func TestEntryAddressDistinctPerFunction(t *testing.T) {
	a, b := 1, 2
	f1 := func() { _ = a }
	f2 := func() { _ = b }
	if entryAddress(f1) == entryAddress(f2) {
		t.Fatal("expected distinct entry addresses for distinct functions")
	}
}
