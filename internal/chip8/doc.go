// Package chip8 implements the CHIP-8 virtual machine.
//
// # Machine Model
//
// One CHIP8 instance owns the complete machine state:
//   - 4096 bytes of memory holding program code, the built-in glyph font
//     and the memory mapped framebuffer
//   - 16 general purpose 8-bit registers V0-VF, where VF doubles as the
//     carry/borrow/collision flag
//   - a 16-bit program counter and a 16-bit address register I
//   - a call stack of up to 24 return addresses
//   - two 8-bit countdown timers (delay and sound)
//   - a 16 key input latch
//
// # Memory Layout
//
//	0x000-0x00F: reserved
//	0x010-0x05F: 16 glyph sprites, 5 bytes each
//	0x060-0xEFF: program and data space
//	0xF00-0xFFE: framebuffer, 1 bit per pixel, row-major, MSB first
//
// # Execution
//
// The external driver owns the cadence. It loads a program with Load,
// executes instruction batches with Step, advances the timers with Tick at
// a fixed rate (nominally 60 Hz) and presents the display with Draw when
// NeedsRedraw reports pending changes. Instructions are fetched as 16-bit
// big-endian words and dispatched on their top nibble to one of 16 family
// handlers.
//
// The wait-for-key instruction suspends fetching: Step calls return
// immediately until a key is pressed, at which point the lowest pressed key
// index is stored and execution resumes.
//
// # Faults
//
// Every invariant violation (out of range address, stack overflow or
// underflow, unhandled instruction, flags register misuse, bad key code) is
// fatal: the machine state is dumped to the configured sink and Step
// returns an error wrapping the matching sentinel. The machine performs no
// recovery, the caller decides whether to terminate.
package chip8
