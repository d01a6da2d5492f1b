package board

import (
	"sync/atomic"

	"github.com/lakertos-go/lakertos/internal/register"
)

var corePeripheralsTaken atomic.Bool

const (
	sysTickCtrlEnable  uint = 0
	sysTickCtrlTickInt uint = 1
)

// CorePeripherals models the Cortex-M core peripherals the kernel touches
// directly: the SysTick timer and the Interrupt Control and State Register.
// It is a process-wide singleton obtained via TakeCorePeripherals.
type CorePeripherals struct {
	ctrl  register.Register32
	load  register.Register32
	val   register.Register32
	calib register.Register32

	icsr register.Register32
}

// TakeCorePeripherals returns the singleton CorePeripherals handle. A second
// call returns (nil, false).
func TakeCorePeripherals() (*CorePeripherals, bool) {
	if !corePeripheralsTaken.CompareAndSwap(false, true) {
		return nil, false
	}
	return &CorePeripherals{}, true
}

// ReleaseCorePeripheralsForTest resets the singleton guard. Production code
// never calls this; it exists so package tests can take the singleton
// repeatedly within one process.
func ReleaseCorePeripheralsForTest() {
	corePeripheralsTaken.Store(false)
}

// ConfigureTick clears the counter, programs the reload value, and enables
// both the tick interrupt and the counter.
func (c *CorePeripherals) ConfigureTick(reloadCC uint32) {
	c.load.Store(reloadCC)
	c.val.Store(0)
	c.ctrl.SetBit(sysTickCtrlTickInt)
	c.ctrl.SetBit(sysTickCtrlEnable)
}

// DisableTick clears CTRL.ENABLE.
func (c *CorePeripherals) DisableTick() {
	c.ctrl.ClearBit(sysTickCtrlEnable)
}

// TickEnabled reports CTRL.ENABLE.
func (c *CorePeripherals) TickEnabled() bool {
	return c.ctrl.Bit(sysTickCtrlEnable)
}

// ReloadValue returns the programmed LOAD value.
func (c *CorePeripherals) ReloadValue() uint32 {
	return c.load.Load()
}

// SetPendSV sets ICSR bit 28 (PENDSVSET).
func (c *CorePeripherals) SetPendSV() {
	c.icsr.SetBit(icsrBitPendSVSet)
}

// ClearPendSV clears ICSR bit 28.
func (c *CorePeripherals) ClearPendSV() {
	c.icsr.ClearBit(icsrBitPendSVSet)
}

// PendSVPending reports ICSR bit 28.
func (c *CorePeripherals) PendSVPending() bool {
	return c.icsr.Bit(icsrBitPendSVSet)
}

// ClearPendingSysTick clears ICSR bit 25 (PENDSTCLR), the write the SVCall
// handler performs on a Yield request.
func (c *CorePeripherals) ClearPendingSysTick() {
	c.icsr.ClearBit(icsrBitPendSTClr)
}

// ICSR returns the raw Interrupt Control and State Register value, mostly for
// tests and trace logging.
func (c *CorePeripherals) ICSR() uint32 {
	return c.icsr.Load()
}
