// Package console implements the semihosting debug channel LakeRTOS's SVC
// gateway writes to and reads from: a zero-terminated-string write, a
// single-byte write, and a single-byte blocking read.
package console

import (
	"bufio"
	"io"
	"sync"

	"golang.org/x/term"
)

// StreamConsole is a Console backed by plain io.Writer/io.Reader, used by
// tests and by example workloads that don't need a real terminal (S5's
// semihosting-echo scenario feeds bytes through it by construction).
type StreamConsole struct {
	mu  sync.Mutex
	out io.Writer
	in  *bufio.Reader
}

// NewStreamConsole wraps out/in as a Console.
func NewStreamConsole(out io.Writer, in io.Reader) *StreamConsole {
	return &StreamConsole{out: out, in: bufio.NewReader(in)}
}

func (c *StreamConsole) Write0(s string) {
	c.mu.Lock()
	defer c.mu.Unlock()
	io.WriteString(c.out, s)
}

func (c *StreamConsole) WriteC(b byte) {
	c.mu.Lock()
	defer c.mu.Unlock()
	c.out.Write([]byte{b})
}

func (c *StreamConsole) ReadC() byte {
	c.mu.Lock()
	defer c.mu.Unlock()
	b, err := c.in.ReadByte()
	if err != nil {
		return 0
	}
	return b
}

// TerminalConsole is a Console backed by the process's own stdin/stdout,
// put into raw mode for the duration so ReadC sees unbuffered keystrokes —
// the host-side counterpart of a debug-probe semihosting channel attached
// to a real board's console.
type TerminalConsole struct {
	StreamConsole
	fd       int
	oldState *term.State
}

// NewTerminalConsole puts fd (typically os.Stdin.Fd()) into raw mode and
// returns a Console reading from it and writing to out.
func NewTerminalConsole(fd int, out io.Writer, in io.Reader) (*TerminalConsole, error) {
	oldState, err := term.MakeRaw(fd)
	if err != nil {
		return nil, err
	}
	return &TerminalConsole{
		StreamConsole: StreamConsole{out: out, in: bufio.NewReader(in)},
		fd:            fd,
		oldState:      oldState,
	}, nil
}

// Restore returns the terminal to its pre-raw-mode state.
func (c *TerminalConsole) Restore() error {
	return term.Restore(c.fd, c.oldState)
}
