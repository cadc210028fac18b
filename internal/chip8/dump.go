package chip8

import (
	"fmt"
	"io"
	"strings"
)

// Dump writes a human readable snapshot of the machine state: registers,
// program counter, address register, timers and the call stack. It is also
// written to the dump sink as a side effect of every machine fault.
func (c *CHIP8) Dump(w io.Writer) error {
	var b strings.Builder
	b.WriteString("CHIP-8 state:\n")

	b.WriteString("\tRegisters:\n")
	for i, value := range c.v {
		if i%4 == 0 {
			b.WriteString("\t")
		}
		fmt.Fprintf(&b, "\tV%X: 0x%02X", i, value)
		if i%4 == 3 {
			b.WriteString("\n")
		}
	}

	fmt.Fprintf(&b, "\t\tPC: 0x%03X\tI:  0x%03X\tD:  0x%02X\tS:  0x%02X\n",
		c.pc, c.i, c.delayTimer, c.soundTimer)

	fmt.Fprintf(&b, "\tStack (%d frames):\n", c.sp)
	for i := range c.sp {
		fmt.Fprintf(&b, "\t\t%d:\t0x%03X\n", i, c.stack[i])
	}

	if _, err := io.WriteString(w, b.String()); err != nil {
		return fmt.Errorf("writing state dump: %w", err)
	}
	return nil
}
