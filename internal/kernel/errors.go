package kernel

import "errors"

var (
	// ErrProcessStackFull is returned by CreateProcess when the task table
	// already holds the configured maximum number of processes.
	ErrProcessStackFull = errors.New("kernel: process table is full")

	// ErrNotInitialized is returned by operations that require a scheduler
	// obtained via Init, and by PrepareSwitchToPid when pid names a
	// within-capacity table slot that CreateProcess hasn't populated yet.
	ErrNotInitialized = errors.New("kernel: scheduler not initialized")

	// ErrNotAvailable is returned by PrepareSwitchToPid when pid is outside
	// the table's fixed capacity. (A second Init reports (nil, false), not
	// an error.)
	ErrNotAvailable = errors.New("kernel: pid not available")

	// ErrAlreadyRunning is returned by PrepareSwitchToPid when asked to
	// switch to the pid that is already current.
	ErrAlreadyRunning = errors.New("kernel: pid is already running")

	// ErrUnknownPid is returned by ProcessState when pid is outside the task
	// table or names a slot that holds no PCB.
	ErrUnknownPid = errors.New("kernel: unknown pid")
)
