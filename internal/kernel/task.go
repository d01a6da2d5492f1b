package kernel

// TaskContext is the handle a user task's entry function receives: its
// identity, plus the supervisor-call gateway bound to the scheduler that
// created it.
type TaskContext struct {
	sched *Scheduler
	pid   int
}

// Pid returns the task's process id.
func (tc *TaskContext) Pid() int { return tc.pid }

// Yield issues SvcYield and blocks until the scheduler hands the CPU back.
func (tc *TaskContext) Yield() {
	tc.sched.Syscall(tc.pid, SvcRequest{Tag: SvcYield})
}

// Checkpoint is the cooperative preemption point: a task calls it
// periodically so a pended tick (or any other pended PendSV) can actually
// run. On real hardware the CPU would take the pending exception the moment
// priority allows, without the task's cooperation; a Go goroutine has no
// such asynchronous entry point, so Checkpoint is the task's side of that
// contract.
func (tc *TaskContext) Checkpoint() {
	if tc.sched.core.PendSVPending() {
		tc.sched.firePendSV()
	}
}

// WriteString issues SemihostingWrite0 for s.
func (tc *TaskContext) WriteString(s string) {
	tc.sched.Syscall(tc.pid, Sprint(s))
}

// WriteByte issues SemihostingWriteC for b.
func (tc *TaskContext) WriteByte(b byte) {
	tc.sched.Syscall(tc.pid, SvcRequest{Tag: SvcSemihostingWriteC, Byte: b})
}

// ReadByte issues SemihostingReadC and returns the byte read.
func (tc *TaskContext) ReadByte() byte {
	return tc.sched.Syscall(tc.pid, SvcRequest{Tag: SvcSemihostingReadC}).Char
}
