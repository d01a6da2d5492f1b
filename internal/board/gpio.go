package board

import "github.com/lakertos-go/lakertos/internal/register"

// Pin identifies a GPIO pin 0-15 on a port.
type Pin uint8

const gpioModeOutput uint32 = 0x1

// GPIO models one GPIO port's mode and output-data registers, grounded on
// original_source's dp/gpio.rs register layout.
type GPIO struct {
	moder register.Register32
	odr   register.Register32
}

func newGPIO() *GPIO { return &GPIO{} }

// SetOutputMode configures pin as a general-purpose push-pull output.
func (g *GPIO) SetOutputMode(pin Pin) error {
	return g.moder.ReplaceBits(uint(pin)*2, 2, gpioModeOutput)
}

// Set drives pin high or low.
func (g *GPIO) Set(pin Pin, high bool) {
	if high {
		g.odr.SetBit(uint(pin))
	} else {
		g.odr.ClearBit(uint(pin))
	}
}

// Toggle flips pin's output state.
func (g *GPIO) Toggle(pin Pin) {
	g.odr.FlipBit(uint(pin))
}

// Get reads pin's current output state.
func (g *GPIO) Get(pin Pin) bool {
	return g.odr.Bit(uint(pin))
}
