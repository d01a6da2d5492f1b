package runtime

import (
	"context"
	"log/slog"
	"testing"
	"time"

	"github.com/lakertos-go/lakertos/internal/mem"
)

func TestResetClearsArenaBeforeKmain(t *testing.T) {
	a, err := mem.NewArena(0x1000, 0x10)
	if err != nil {
		t.Fatalf("NewArena: %v", err)
	}
	defer a.Free()

	if err := a.WriteUint32(a.Base(), 0xFFFFFFFF); err != nil {
		t.Fatalf("WriteUint32: %v", err)
	}

	var sawClear uint32
	Reset(a, func() {
		v, err := a.ReadUint32(a.Base())
		if err != nil {
			t.Fatalf("ReadUint32: %v", err)
		}
		sawClear = v
	})
	if sawClear != 0 {
		t.Fatalf("kmain observed 0x%x, want arena cleared before entry", sawClear)
	}
}

func TestRunProtectedRecoversPanic(t *testing.T) {
	ctx, cancel := context.WithTimeout(context.Background(), 200*time.Millisecond)
	defer cancel()

	start := time.Now()
	RunProtected(ctx, slog.New(slog.DiscardHandler), func() {
		panic("boom")
	})
	if time.Since(start) < 150*time.Millisecond {
		t.Fatal("expected RunProtected to block until ctx expired rather than return immediately")
	}
}

func TestRunProtectedReturnsWhenKmainReturns(t *testing.T) {
	ctx, cancel := context.WithTimeout(context.Background(), time.Second)
	defer cancel()

	ran := false
	RunProtected(ctx, slog.New(slog.DiscardHandler), func() {
		ran = true
	})
	if !ran {
		t.Fatal("expected kmain to run")
	}
}
