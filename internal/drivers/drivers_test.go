package drivers

import (
	"testing"

	"github.com/lakertos-go/lakertos/internal/board"
)

func freshDevicePeripherals(t *testing.T) *board.DevicePeripherals {
	t.Helper()
	board.ReleaseDevicePeripheralsForTest()
	dp, ok := board.TakeDevicePeripherals()
	if !ok {
		t.Fatal("TakeDevicePeripherals")
	}
	t.Cleanup(board.ReleaseDevicePeripheralsForTest)
	return dp
}

func TestLedsToggle(t *testing.T) {
	dp := freshDevicePeripherals(t)
	leds, err := NewLeds(dp.GPIOA)
	if err != nil {
		t.Fatalf("NewLeds: %v", err)
	}

	if leds.Get(PinNorth) {
		t.Fatal("expected North initially off")
	}
	leds.Toggle(PinNorth)
	if !leds.Get(PinNorth) {
		t.Fatal("expected North on after toggle")
	}
}

func TestUSART1ConsoleRoundTrip(t *testing.T) {
	dp := freshDevicePeripherals(t)
	con, err := NewUSART1Console(dp.RCC, dp.USART1)
	if err != nil {
		t.Fatalf("NewUSART1Console: %v", err)
	}
	if !dp.RCC.USART1Enabled() {
		t.Fatal("expected USART1 clock enabled")
	}

	con.WriteC('z')
	select {
	case b := <-con.Outbox():
		if b != 'z' {
			t.Fatalf("got %q, want 'z'", b)
		}
	default:
		t.Fatal("expected a byte in the outbox")
	}

	con.Inject('n')
	if got := con.ReadC(); got != 'n' {
		t.Fatalf("got %q, want 'n'", got)
	}
}
