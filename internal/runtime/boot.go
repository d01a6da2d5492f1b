// Package runtime models the boot sequence LakeRTOS's vector table installs
// before handing off to the kernel: clearing freshly-allocated memory the
// way a real target's Reset handler clears .bss and copies .data, and a
// panic handler that parks forever instead of unwinding, matching the
// original runtime's "acceptable for an embedded target" stance.
package runtime

import (
	"context"
	"log/slog"

	"github.com/lakertos-go/lakertos/internal/mem"
)

// Reset simulates the target's Reset vector: it clears arena (standing in
// for the .bss/.data setup a real linker script and load address would
// require, which this host simulation has no equivalent of) and then calls
// kmain. It never returns while kmain doesn't.
func Reset(arena *mem.Arena, kmain func()) {
	arena.Clear()
	kmain()
}

// RunProtected calls kmain and, if it panics, logs the panic and blocks
// until ctx is done rather than letting the panic propagate — the host analogue of
// the runtime's panic handler looping forever on an embedded target with no
// OS to report a crash to.
func RunProtected(ctx context.Context, logger *slog.Logger, kmain func()) {
	done := make(chan struct{})
	go func() {
		defer func() {
			if r := recover(); r != nil {
				logger.Error("kernel panic", "recovered", r)
				<-make(chan struct{})
			}
		}()
		kmain()
		close(done)
	}()

	select {
	case <-done:
	case <-ctx.Done():
	}
}
