package kernel

// Policy is a scheduling strategy bound to pid0. entry returns the function
// pid0's PCB is created with; Init calls it exactly once.
type Policy interface {
	entry(s *Scheduler) func()
}

// RoundRobin is the default, and only, scheduling policy: at the top of
// every iteration it (re-)programs the tick timer, then cycles
// prepare-switch calls over 1, 2, ..., N-1, 1, 2, ..., skipping pids that
// error (AlreadyRunning, or a not-yet-created slot). Re-arming the tick on
// every iteration, not just once before the loop, is what undoes a Yield's
// CTRL.ENABLE=0 the next time pid0 is scheduled — otherwise a single yield
// would permanently disable preemption.
type RoundRobin struct {
	// ReloadCC is the SysTick reload value in clock cycles. Zero means use
	// config.KernelConfig.SwitchRateCC.
	ReloadCC uint32
}

func (p RoundRobin) entry(s *Scheduler) func() {
	return func() {
		reload := p.ReloadCC
		if reload == 0 {
			reload = s.cfg.SwitchRateCC
		}

		pid := 1
		for {
			s.core.ConfigureTick(reload)

			n := s.NumProcesses()
			if n <= 1 {
				// No user tasks yet; all tasks are expected to be created
				// before StartScheduling, so this path is not normally hit.
				continue
			}
			if pid >= n {
				pid = 1
			}

			if err := s.PrepareSwitchToPid(pid); err == nil {
				s.core.SetPendSV()
				s.firePendSV()
			}
			pid++
			if pid >= n {
				pid = 1
			}
		}
	}
}
