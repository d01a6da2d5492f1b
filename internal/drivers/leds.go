// Package drivers wires internal/board's raw peripherals into the
// higher-level shapes the kernel's example workloads and boot sequence use:
// a four-LED compass wrapper and a USART1-backed Console.
package drivers

import "github.com/lakertos-go/lakertos/internal/board"

// Cardinal pin assignments for the discovery board's four user LEDs.
const (
	PinNorth board.Pin = 9
	PinEast  board.Pin = 11
	PinSouth board.Pin = 13
	PinWest  board.Pin = 15
)

// Leds wraps a GPIO port's four compass-point LEDs, configuring each as a
// push-pull output on construction.
type Leds struct {
	gpio *board.GPIO
}

// NewLeds configures North/East/South/West as outputs on gpio.
func NewLeds(gpio *board.GPIO) (*Leds, error) {
	for _, pin := range []board.Pin{PinNorth, PinEast, PinSouth, PinWest} {
		if err := gpio.SetOutputMode(pin); err != nil {
			return nil, err
		}
	}
	return &Leds{gpio: gpio}, nil
}

// Toggle flips the named LED's output state.
func (l *Leds) Toggle(pin board.Pin) { l.gpio.Toggle(pin) }

// Set drives the named LED high or low.
func (l *Leds) Set(pin board.Pin, on bool) { l.gpio.Set(pin, on) }

// Get reads the named LED's current output state.
func (l *Leds) Get(pin board.Pin) bool { return l.gpio.Get(pin) }
