// Package board models the memory-mapped peripherals the kernel consumes as
// external collaborators: the SysTick timer and ICSR (Cortex-M core
// peripherals) plus GPIO/RCC/USART1 (device peripherals), backed by
// internal/register instead of real silicon.
package board

// Memory map constants, consumed (not defined) by the kernel.
const (
	// ProcessBase is the top of pid0's stack region; each higher pid's stack
	// top sits a further ProcessMemorySize below it.
	ProcessBase uint32 = 0x2000_6000

	// SysTickBase is the base address of the SysTick register block
	// (CTRL, LOAD, VAL, CALIB).
	SysTickBase uint32 = 0xE000_E010

	// ICSRAddr is the Interrupt Control and State Register address.
	ICSRAddr uint32 = 0xE000_ED04
)

// ICSR bit positions.
const (
	icsrBitPendSVSet  uint = 28
	icsrBitPendSTClr  uint = 25
)
