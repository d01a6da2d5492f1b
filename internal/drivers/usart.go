package drivers

import "github.com/lakertos-go/lakertos/internal/board"

// defaultBaudDiv is a representative BRR divisor for a 115200 baud USART1 at
// the discovery board's default 8 MHz HSI clock; the exact value has no
// bearing on the host simulation, which moves bytes through Go channels
// rather than a real bit clock.
const defaultBaudDiv = 0x46

// USART1Console is a kernel.Console backed by board.USART1, bringing up the
// USART1 clock and configuring the baud rate on construction. It does not
// enable the GPIOA clock.
type USART1Console struct {
	usart *board.USART1
}

// NewUSART1Console enables USART1's clock on rcc, configures usart, and
// returns a Console driving it.
func NewUSART1Console(rcc *board.RCC, usart *board.USART1) (*USART1Console, error) {
	rcc.EnableUSART1()
	if err := usart.Configure(defaultBaudDiv); err != nil {
		return nil, err
	}
	return &USART1Console{usart: usart}, nil
}

// Write0 writes s byte by byte, the way the target's semihosting
// write-zero-terminated-string primitive streams a C string.
func (c *USART1Console) Write0(s string) {
	for i := 0; i < len(s); i++ {
		c.usart.WriteByte(s[i])
	}
}

// WriteC writes a single byte.
func (c *USART1Console) WriteC(b byte) { c.usart.WriteByte(b) }

// ReadC blocks until a byte is available and returns it.
func (c *USART1Console) ReadC() byte { return c.usart.ReadByte() }

// Outbox exposes the underlying USART1's transmit queue so a host driver
// loop can forward bytes to a real io.Writer.
func (c *USART1Console) Outbox() <-chan byte { return c.usart.Outbox() }

// Inject simulates a byte arriving at USART1 from the host side.
func (c *USART1Console) Inject(b byte) { c.usart.Inject(b) }
