package kernel

import (
	"context"
	"testing"
	"time"

	"github.com/lakertos-go/lakertos/internal/config"
)

// TestStackIndependence is scenario S6: each task's locals survive a round
// trip through yield, proving the goroutine-per-task model keeps stacks
// (here, Go call stacks) independent the same way real per-task SRAM would.
func TestStackIndependence(t *testing.T) {
	cfg := config.Default()
	cfg.AllowedProcesses = 3
	s, _ := newTestScheduler(t, cfg)

	results := make(chan uint32, 2)
	s.CreateProcess(func(tc *TaskContext) {
		local := uint32(0xDEADBEEF)
		tc.Yield()
		results <- local
		<-make(chan struct{})
	})
	s.CreateProcess(func(tc *TaskContext) {
		local := uint32(0xFEEDFACE)
		tc.Yield()
		results <- local
		<-make(chan struct{})
	})

	ctx, cancel := context.WithCancel(context.Background())
	defer cancel()
	go s.StartScheduling(ctx)

	seen := map[uint32]bool{}
	for i := 0; i < 2; i++ {
		select {
		case v := <-results:
			seen[v] = true
		case <-time.After(time.Second):
			t.Fatal("timed out waiting for both tasks to report their local")
		}
	}

	if !seen[0xDEADBEEF] || !seen[0xFEEDFACE] {
		t.Fatalf("expected both locals preserved, got %v", seen)
	}
}
