package kernel

import "testing"

func TestRoundTripSwap(t *testing.T) {
	var cs ContextSwitchSlot
	cs.SetNext(0xAAAA)

	next, from := cs.GetAndSwap()
	if next != 0xAAAA {
		t.Fatalf("first GetAndSwap next = 0x%x, want 0xAAAA", next)
	}
	_ = from

	_, from2 := cs.GetAndSwap()
	if from2 != 0xAAAA {
		t.Fatalf("second GetAndSwap from = 0x%x, want 0xAAAA", from2)
	}
}

func TestSwapAlternatesIndefinitely(t *testing.T) {
	var cs ContextSwitchSlot
	cs.SetNext(0x1111) // from starts at 0

	n1, f1 := cs.GetAndSwap()
	if n1 != 0x1111 || f1 != 0 {
		t.Fatalf("round 1 = (0x%x, 0x%x), want (0x1111, 0)", n1, f1)
	}
	n2, f2 := cs.GetAndSwap()
	if n2 != 0 || f2 != 0x1111 {
		t.Fatalf("round 2 = (0x%x, 0x%x), want (0, 0x1111)", n2, f2)
	}
	n3, f3 := cs.GetAndSwap()
	if n3 != 0x1111 || f3 != 0 {
		t.Fatalf("round 3 = (0x%x, 0x%x), want (0x1111, 0)", n3, f3)
	}
}

func TestSetNextBreaksTheCycle(t *testing.T) {
	var cs ContextSwitchSlot
	cs.SetNext(0x1111)
	cs.GetAndSwap() // now from=0x1111, next=0

	cs.SetNext(0x2222)
	next, from := cs.GetAndSwap()
	if next != 0x2222 || from != 0x1111 {
		t.Fatalf("got (0x%x, 0x%x), want (0x2222, 0x1111)", next, from)
	}
}
