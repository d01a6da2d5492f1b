package board

import "sync/atomic"

var devicePeripheralsTaken atomic.Bool

// DevicePeripherals is the bus-level singleton exposing GPIOA, RCC, and
// USART1, mirroring the target's BusInterface/DevicePeripherals split from
// CorePeripherals.
type DevicePeripherals struct {
	GPIOA  *GPIO
	RCC    *RCC
	USART1 *USART1
}

// TakeDevicePeripherals returns the singleton DevicePeripherals handle. A
// second call returns (nil, false).
func TakeDevicePeripherals() (*DevicePeripherals, bool) {
	if !devicePeripheralsTaken.CompareAndSwap(false, true) {
		return nil, false
	}
	return &DevicePeripherals{
		GPIOA:  newGPIO(),
		RCC:    newRCC(),
		USART1: newUSART1(),
	}, true
}

// ReleaseDevicePeripheralsForTest resets the singleton guard for tests.
func ReleaseDevicePeripheralsForTest() {
	devicePeripheralsTaken.Store(false)
}
