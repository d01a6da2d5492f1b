package kernel

import (
	"context"
	"time"
)

// RunSysTickDriver simulates the free-running SysTick hardware counter: on
// real silicon it decrements every clock cycle and fires the SysTick
// exception at zero, reloading from LOAD. This host has no clock-cycle
// counter to tick, so it approximates the same periodic-interrupt contract
// with a wall-clock ticker, calling OnSysTick once per period; OnSysTick
// ignores the call while the timer is disabled. It returns when ctx is done.
func (s *Scheduler) RunSysTickDriver(ctx context.Context, period time.Duration) {
	ticker := time.NewTicker(period)
	defer ticker.Stop()
	for {
		select {
		case <-ctx.Done():
			return
		case <-ticker.C:
			s.OnSysTick()
		}
	}
}
