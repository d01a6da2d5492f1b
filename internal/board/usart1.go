package board

import (
	"fmt"

	"github.com/lakertos-go/lakertos/internal/register"
)

const (
	usart1CR1UE = uint(13) // USART enable
	usart1CR1TE = uint(3)  // transmitter enable
	usart1CR1RE = uint(2)  // receiver enable
)

// USART1 models the subset of the STM32 USART1 register block the console
// driver needs (BRR, CR1), plus a simulated transmit/receive byte pair
// standing in for the shift registers, grounded on original_source's
// dp/uart.rs and driver/usart1.rs.
type USART1 struct {
	brr register.Register32
	cr1 register.Register32

	tx chan byte
	rx chan byte
}

func newUSART1() *USART1 {
	return &USART1{
		tx: make(chan byte, 256),
		rx: make(chan byte, 256),
	}
}

// Configure programs the baud-rate divisor and enables the USART, its
// transmitter, and its receiver.
func (u *USART1) Configure(baudDiv uint32) error {
	if err := u.brr.ReplaceBits(0, 16, baudDiv); err != nil {
		return fmt.Errorf("usart1: configure: %w", err)
	}
	u.cr1.SetBit(usart1CR1UE)
	u.cr1.SetBit(usart1CR1TE)
	u.cr1.SetBit(usart1CR1RE)
	return nil
}

// Enabled reports CR1.UE.
func (u *USART1) Enabled() bool { return u.cr1.Bit(usart1CR1UE) }

// WriteByte transmits one byte, blocking if the simulated TX queue is full.
func (u *USART1) WriteByte(b byte) {
	u.tx <- b
}

// Outbox returns the channel WriteByte feeds, so a console or test harness
// can drain transmitted bytes.
func (u *USART1) Outbox() <-chan byte { return u.tx }

// Inject simulates a byte arriving at the USART from the host side.
func (u *USART1) Inject(b byte) {
	u.rx <- b
}

// ReadByte blocks until a received byte is available.
func (u *USART1) ReadByte() byte {
	return <-u.rx
}
