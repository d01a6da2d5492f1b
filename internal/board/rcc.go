package board

import "github.com/lakertos-go/lakertos/internal/register"

const (
	rccAHBGPIOABit   uint = 17
	rccAPB2USART1Bit uint = 14
)

// RCC models the reset-and-clock-control enable lines the kernel's
// collaborators need: the AHB GPIOA clock and the APB2 USART1 clock,
// grounded on original_source's dp/rcc.rs.
type RCC struct {
	ahbenr  register.Register32
	apb2enr register.Register32
}

func newRCC() *RCC { return &RCC{} }

// EnableGPIOA turns on the GPIOA peripheral clock.
func (r *RCC) EnableGPIOA() { r.ahbenr.SetBit(rccAHBGPIOABit) }

// EnableUSART1 turns on the USART1 peripheral clock.
func (r *RCC) EnableUSART1() { r.apb2enr.SetBit(rccAPB2USART1Bit) }

// GPIOAEnabled reports the GPIOA peripheral clock.
func (r *RCC) GPIOAEnabled() bool { return r.ahbenr.Bit(rccAHBGPIOABit) }

// USART1Enabled reports the USART1 peripheral clock.
func (r *RCC) USART1Enabled() bool { return r.apb2enr.Bit(rccAPB2USART1Bit) }
