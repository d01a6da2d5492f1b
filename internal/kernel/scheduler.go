// Package kernel implements LakeRTOS's core: the task table, stack-frame
// synthesis, the context-switch protocol, and the supervisor-call gateway.
// Everything in package board is an external collaborator the kernel
// consumes rather than owns.
package kernel

import (
	"context"
	"fmt"
	"sync"
	"sync/atomic"

	"github.com/lakertos-go/lakertos/internal/board"
	"github.com/lakertos-go/lakertos/internal/config"
	"github.com/lakertos-go/lakertos/internal/mem"
	"github.com/lakertos-go/lakertos/internal/trace"
)

// contextSwitchSlice records time spent between one contextSwitch call and
// the next, so a captured trace shows how long each task actually ran.
var contextSwitchSlice = trace.RegisterSliceKind("context_switch")

// pcbFieldTableBase is the synthetic base address of a table of per-pid
// "address of the psp field" slots. It never aliases a real stack address
// (those live in the arena at 0x2000_xxxx, far above this value) and exists purely so the
// context-switch slot can hold literal uint32 addresses the way the target
// does.
const pcbFieldTableBase uint32 = 0x1000_0000

var schedulerTaken atomic.Bool

// Scheduler owns the task table, the active policy, the current pid, and
// the tick-timer handle. It is a process-wide singleton: only one instance
// may exist at a time.
type Scheduler struct {
	cfg     config.KernelConfig
	core    *board.CorePeripherals
	console Console
	arena   *mem.Arena

	mu      sync.Mutex
	table   []*PCB
	current int

	cs ContextSwitchSlot

	bootResume chan struct{}
	trace      *trace.Recorder
}

// Init creates the scheduler singleton, bound to core (the SysTick/ICSR
// handle) and console (the semihosting channel), and creates pid0 bound to
// policy's entry point. A second call before ReleaseForTest returns
// (nil, false).
func Init(cfg config.KernelConfig, core *board.CorePeripherals, console Console, policy Policy) (*Scheduler, bool) {
	if !schedulerTaken.CompareAndSwap(false, true) {
		return nil, false
	}

	arena, err := mem.NewArena(board.ProcessBase-cfg.ProcessMemorySize*uint32(cfg.AllowedProcesses), cfg.ProcessMemorySize*uint32(cfg.AllowedProcesses))
	if err != nil {
		schedulerTaken.Store(false)
		return nil, false
	}

	s := &Scheduler{
		cfg:        cfg,
		core:       core,
		console:    console,
		arena:      arena,
		table:      make([]*PCB, cfg.AllowedProcesses),
		current:    -1,
		bootResume: make(chan struct{}),
		trace:      trace.NewRecorder(),
	}

	if _, err := s.createPCBLocked(func(int) func() { return policy.entry(s) }); err != nil {
		schedulerTaken.Store(false)
		return nil, false
	}
	return s, true
}

// ReleaseForTest resets the singleton guard so package tests can call Init
// repeatedly within one process. Production code never calls this.
func ReleaseForTest() {
	schedulerTaken.Store(false)
}

// CreateProcess synthesizes a Ready task bound to entry in the lowest empty
// table slot, or reports ErrProcessStackFull once AllowedProcesses slots are
// in use.
func (s *Scheduler) CreateProcess(entry func(tc *TaskContext)) (int, error) {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.createPCBLocked(func(pid int) func() {
		return func() { entry(&TaskContext{sched: s, pid: pid}) }
	})
}

func (s *Scheduler) createPCBLocked(makeEntry func(pid int) func()) (int, error) {
	pid := -1
	for i, pcb := range s.table {
		if pcb == nil {
			pid = i
			break
		}
	}
	if pid < 0 {
		return 0, ErrProcessStackFull
	}

	entry := makeEntry(pid)
	stackTop := board.ProcessBase - uint32(pid)*s.cfg.ProcessMemorySize
	psp, err := synthesizeStack(s.arena, stackTop, entry)
	if err != nil {
		return 0, fmt.Errorf("kernel: create process %d: %w", pid, err)
	}

	pcb := &PCB{psp: psp, pid: pid, state: StateReady, resume: make(chan struct{})}
	s.table[pid] = pcb
	go s.runTask(pcb, entry)
	return pid, nil
}

// runTask parks pcb's goroutine until the scheduler first hands it the CPU,
// then runs entry. entry never returns in a well-behaved task; if it does,
// the goroutine simply exits, mirroring the target's "undefined behavior,
// no fault handler" stance on a task function returning.
func (s *Scheduler) runTask(pcb *PCB, entry func()) {
	<-pcb.resume
	entry()
}

// StartScheduling prepares the very first switch, into pid0, and then blocks
// until ctx is done — the host analogue of "spins indefinitely on the main
// stack, unreachable after PendSV returns into pid0".
func (s *Scheduler) StartScheduling(ctx context.Context) error {
	s.mu.Lock()
	ready := len(s.table) > 0 && s.table[0] != nil
	s.mu.Unlock()
	if !ready {
		return ErrNotInitialized
	}

	s.cs.SetNext(s.fieldAddr(0))

	next, from := s.cs.GetAndSwap()
	s.contextSwitch(next, from)

	<-ctx.Done()
	return ctx.Err()
}

// PrepareSwitchToPid validates pid and, if it is Ready, marks it Running,
// marks the current pid (if any) Ready, records pid as current, and writes
// its field address into the context-switch slot. It does not pend PendSV
// or perform the goroutine handoff; the caller does that immediately after,
// which is what makes this call appear synchronous from the policy's point
// of view.
//
// A pid outside the fixed-capacity table reports ErrNotAvailable; a pid
// inside the table whose slot has not been populated by CreateProcess yet
// reports ErrNotInitialized. These are distinct because the table itself is
// sized to AllowedProcesses up front rather than grown per CreateProcess
// call.
func (s *Scheduler) PrepareSwitchToPid(pid int) error {
	s.mu.Lock()
	defer s.mu.Unlock()

	if pid < 0 || pid >= len(s.table) {
		return fmt.Errorf("kernel: prepare switch to pid %d: %w", pid, ErrNotAvailable)
	}
	if s.table[pid] == nil {
		return fmt.Errorf("kernel: prepare switch to pid %d: %w", pid, ErrNotInitialized)
	}
	if pid == s.current {
		return ErrAlreadyRunning
	}

	target := s.table[pid]
	target.state = StateRunning
	s.cs.SetNext(s.fieldAddr(pid))
	if s.current >= 0 && s.current < len(s.table) {
		if cur := s.table[s.current]; cur != nil {
			cur.state = StateReady
		}
	}
	s.current = pid
	return nil
}

// firePendSV is the unified PendSV handler body: read and swap the
// context-switch slot, then perform the register-save/restore handoff. It
// is shared by tick-checkpoint preemption, voluntary yield, and the
// policy's own dispatch, and is the single place PCB state and current-pid
// bookkeeping are corrected for paths (tick, yield) that do not go through
// PrepareSwitchToPid.
func (s *Scheduler) firePendSV() {
	s.core.ClearPendSV()
	next, from := s.cs.GetAndSwap()
	s.contextSwitch(next, from)
}

// contextSwitch is the context-switch primitive: it resolves next/from
// field addresses back to PCBs, updates their states and the current pid,
// then hands the CPU to next by signaling its resume channel, and — unless
// this is the very first dispatch (from == 0) — blocks the calling
// goroutine on its own resume channel, the rendezvous standing in for
// "save callee-saved registers and PSP, branch through lr".
func (s *Scheduler) contextSwitch(nextAddr, fromAddr uint32) {
	next := s.pcbByFieldAddr(nextAddr)
	from := s.pcbByFieldAddr(fromAddr)

	s.trace.Record(contextSwitchSlice)
	trace.Writef("kernel.contextSwitch", "next=0x%x from=0x%x", nextAddr, fromAddr)

	s.mu.Lock()
	if from != nil {
		from.state = StateReady
	}
	if next != nil {
		next.state = StateRunning
		s.current = next.pid
	}
	s.mu.Unlock()

	if next != nil {
		next.resume <- struct{}{}
	}
	if from != nil {
		<-from.resume
	}
}

func (s *Scheduler) fieldAddr(pid int) uint32 {
	return pcbFieldTableBase + uint32(pid)*4
}

func (s *Scheduler) pcbByFieldAddr(addr uint32) *PCB {
	if addr < pcbFieldTableBase {
		return nil
	}
	pid := int((addr - pcbFieldTableBase) / 4)
	if pid < 0 || pid >= len(s.table) {
		return nil
	}
	return s.table[pid]
}

// CurrentPid returns the pid the scheduler last recorded as current.
func (s *Scheduler) CurrentPid() int {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.current
}

// ProcessState returns the recorded state of pid, or an error if pid is
// outside the task table or names a slot with no PCB yet.
func (s *Scheduler) ProcessState(pid int) (ProcessState, error) {
	s.mu.Lock()
	defer s.mu.Unlock()
	if pid < 0 || pid >= len(s.table) || s.table[pid] == nil {
		return 0, ErrUnknownPid
	}
	return s.table[pid].state, nil
}

// NumProcesses returns the number of task-table slots in use, not the
// table's fixed capacity.
func (s *Scheduler) NumProcesses() int {
	s.mu.Lock()
	defer s.mu.Unlock()
	n := 0
	for _, pcb := range s.table {
		if pcb != nil {
			n++
		}
	}
	return n
}

// Core exposes the bound core peripherals (the SysTick/ICSR handle).
func (s *Scheduler) Core() *board.CorePeripherals { return s.core }
