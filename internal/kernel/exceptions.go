package kernel

// OnSysTick is the SysTick exception vector: it sets the PendSV pending bit
// and does no other work, deferring the actual switch to PendSV so it runs
// at lowest priority, after any higher-priority interrupt. While the tick is
// disabled (CTRL.ENABLE=0) it returns without pending anything, as a stopped
// counter would raise no exception.
func (s *Scheduler) OnSysTick() {
	if !s.core.TickEnabled() {
		return
	}
	s.core.SetPendSV()
}

// OnPendSV is the PendSV exception vector. On real hardware the CPU invokes
// this asynchronously at the next instruction boundary once PendSV becomes
// the highest-priority pending exception; here, a task's Checkpoint runs the
// same handler body (firePendSV) cooperatively once it observes the pending
// bit, which is the closest a
// goroutine can come to "the CPU took the interrupt right here".
func (s *Scheduler) OnPendSV() {
	s.firePendSV()
}
