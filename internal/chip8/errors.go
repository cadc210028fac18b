package chip8

import "errors"

// Machine faults, all fatal: the current Step call aborts, a state dump is
// written to the dump sink at the point of violation and the returned error
// wraps one of these sentinels.
var (
	// ErrOutOfBounds indicates an access outside of the 4096 byte address space.
	ErrOutOfBounds = errors.New("out of bounds")

	// ErrStackOverflow indicates a call with all stack frames in use.
	ErrStackOverflow = errors.New("stack overflow")

	// ErrStackUnderflow indicates a return with no stack frame to pop.
	ErrStackUnderflow = errors.New("stack underflow")

	// ErrInvalidOpcode indicates an instruction with no defined handler.
	ErrInvalidOpcode = errors.New("invalid opcode")

	// ErrInvalidRegisterUsage indicates the flags register used as a data
	// operand of an instruction that writes it as a flag.
	ErrInvalidRegisterUsage = errors.New("invalid register usage")

	// ErrInvalidKeyCode indicates a key or glyph index of 16 or higher.
	ErrInvalidKeyCode = errors.New("invalid key code")
)
