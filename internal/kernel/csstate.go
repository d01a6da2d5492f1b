package kernel

import "sync"

// ContextSwitchSlot is the PendSV handshake: the scheduler calls SetNext to
// name the task that should run next, and the PendSV handler calls
// GetAndSwap to atomically fetch the (next, from) pair and exchange the two
// fields. A zero address in
// either field means "none" (used for the very first switch, which has no
// "from").
type ContextSwitchSlot struct {
	mu   sync.Mutex
	next uint32
	from uint32
}

// SetNext records the address (PCB field address, see Scheduler.fieldAddr)
// the next context switch should load.
func (s *ContextSwitchSlot) SetNext(addr uint32) {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.next = addr
}

// GetAndSwap returns the current (next, from) pair and then exchanges the
// two stored fields. The exchange, not a one-way copy, is what makes the
// following PendSV — after the task just dispatched yields or is preempted
// with no intervening SetNext — return to the task that was running before
// it: next and from settle into alternating between the same two values
// until a fresh SetNext breaks the cycle.
func (s *ContextSwitchSlot) GetAndSwap() (next, from uint32) {
	s.mu.Lock()
	defer s.mu.Unlock()
	next, from = s.next, s.from
	s.next, s.from = s.from, s.next
	return next, from
}
