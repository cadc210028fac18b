package chip8

import (
	"github.com/retroenv/retrogolib/arch/cpu/chip8"
	"github.com/retroenv/retrogolib/log"
)

// traceInstruction logs a fetched instruction word at debug level with its
// canonical mnemonic. The program counter already points past the word.
func (c *CHIP8) traceInstruction(w uint16) {
	c.logger.Debug("executing",
		log.String("instruction", instructionName(w)),
		log.Uint16("opcode", w),
		log.Uint16("pc", c.pc-instructionSize),
	)
}

// instructionName looks the instruction word up in the canonical opcode
// tables and returns its mnemonic, or "unknown" for words that no handler
// accepts.
func instructionName(w uint16) string {
	firstNibble := (w & 0xF000) >> 12
	for _, op := range chip8.Opcodes[int(firstNibble)] {
		if op.Info.Mask&w == op.Info.Value {
			return op.Instruction.Name
		}
	}
	return "unknown"
}
