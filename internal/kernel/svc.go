package kernel

// Console is the semihosting debug channel a Scheduler writes to and reads
// from while servicing SVC requests. internal/console's StreamConsole and
// TerminalConsole both satisfy it structurally.
type Console interface {
	Write0(s string)
	WriteC(b byte)
	ReadC() byte
}

// SvcRequestTag identifies the kind of supervisor-call request.
type SvcRequestTag int

const (
	SvcSemihostingWrite0 SvcRequestTag = iota
	SvcSemihostingWriteC
	SvcSemihostingReadC
	SvcYield
)

// SvcRequest is the tagged request envelope a task builds before trapping
// into the supervisor-call gateway. Text/Byte are populated according to Tag.
type SvcRequest struct {
	Tag  SvcRequestTag
	Text string
	Byte byte
}

// SvcResponseTag identifies the kind of supervisor-call response.
type SvcResponseTag int

const (
	SvcResponseNone SvcResponseTag = iota
	SvcResponseChar
)

// SvcResult is the response envelope the gateway writes back.
type SvcResult struct {
	Tag  SvcResponseTag
	Char byte
}

// Syscall is the supervisor-call gateway: it decodes req and dispatches to
// the console or to the scheduler's Yield path. It is called directly by the
// calling task's own goroutine, modeling the SVC instruction trapping
// synchronously into the handler on the same stack.
func (s *Scheduler) Syscall(pid int, req SvcRequest) SvcResult {
	switch req.Tag {
	case SvcSemihostingWrite0:
		s.console.Write0(req.Text)
		return SvcResult{Tag: SvcResponseNone}
	case SvcSemihostingWriteC:
		s.console.WriteC(req.Byte)
		return SvcResult{Tag: SvcResponseNone}
	case SvcSemihostingReadC:
		return SvcResult{Tag: SvcResponseChar, Char: s.console.ReadC()}
	case SvcYield:
		s.yield(pid)
		return SvcResult{Tag: SvcResponseNone}
	default:
		return SvcResult{Tag: SvcResponseNone}
	}
}

// yield implements the Yield request: disable the tick, clear any pending
// SysTick, and fire the unified context-switch handler. It deliberately does
// not touch PCB state or current-pid bookkeeping itself — contextSwitch,
// invoked by firePendSV below, is the single place that does, so the tick
// and yield paths share one authoritative update instead of duplicating it.
func (s *Scheduler) yield(pid int) {
	s.core.DisableTick()
	s.core.ClearPendingSysTick()
	s.core.SetPendSV()
	s.firePendSV()
}
