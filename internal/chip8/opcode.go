package chip8

// Operand accessors for the fixed bit positions of an instruction word.
func registerX(w uint16) int {
	return int(w>>8) & 0x0F
}

func registerY(w uint16) int {
	return int(w>>4) & 0x0F
}

func immediateByte(w uint16) byte {
	return byte(w)
}

func immediateAddr(w uint16) uint16 {
	return w & 0x0FFF
}

// flag returns the VF value for a condition.
func flag(set bool) byte {
	if set {
		return 1
	}
	return 0
}

// execute dispatches the instruction word to the handler of its family,
// selected by the top nibble.
func (c *CHIP8) execute(w uint16) error {
	switch w >> 12 {
	case 0x0:
		return c.executeSystem(w)
	case 0x1:
		c.pc = immediateAddr(w)
		return nil
	case 0x2:
		return c.executeCall(w)
	case 0x3:
		if c.v[registerX(w)] == immediateByte(w) {
			return c.skip()
		}
		return nil
	case 0x4:
		if c.v[registerX(w)] != immediateByte(w) {
			return c.skip()
		}
		return nil
	case 0x5:
		if w&0x000F != 0 {
			return c.unhandled(w)
		}
		if c.v[registerX(w)] == c.v[registerY(w)] {
			return c.skip()
		}
		return nil
	case 0x6:
		c.v[registerX(w)] = immediateByte(w)
		return nil
	case 0x7:
		c.v[registerX(w)] += immediateByte(w)
		return nil
	case 0x8:
		return c.executeALU(w)
	case 0x9:
		if w&0x000F != 0 {
			return c.unhandled(w)
		}
		if c.v[registerX(w)] != c.v[registerY(w)] {
			return c.skip()
		}
		return nil
	case 0xA:
		c.i = immediateAddr(w)
		return nil
	case 0xB:
		return c.executeJumpOffset(w)
	case 0xC:
		c.v[registerX(w)] = c.random() & immediateByte(w)
		return nil
	case 0xD:
		return c.executeDraw(w)
	case 0xE:
		return c.executeSkipKey(w)
	default: // 0xF
		return c.executeMisc(w)
	}
}

// unhandled reports an instruction with no defined handler in its family.
func (c *CHIP8) unhandled(w uint16) error {
	return c.fatalf(ErrInvalidOpcode, "unhandled instruction: 0x%04X", w)
}

// skip advances the program counter over the next instruction.
func (c *CHIP8) skip() error {
	if int(c.pc)+instructionSize >= MemorySize {
		return c.fatalf(ErrOutOfBounds, "branching outside of RAM at 0x%04X", c.pc)
	}
	c.pc += instructionSize
	return nil
}

// executeSystem handles family 0: clear screen and return.
func (c *CHIP8) executeSystem(w uint16) error {
	switch immediateAddr(w) {
	case 0x0E0:
		clear(c.frameBuffer())
		return nil

	case 0x0EE:
		if c.sp == 0 {
			return c.fatalf(ErrStackUnderflow, "out of stack frames")
		}
		c.sp--
		addr := c.stack[c.sp]
		if addr >= MemorySize {
			return c.fatalf(ErrOutOfBounds, "invalid address 0x%04X on stack", addr)
		}
		c.pc = addr
		return nil

	default:
		return c.unhandled(w)
	}
}

// executeCall pushes the return address and jumps to the call target.
func (c *CHIP8) executeCall(w uint16) error {
	if c.sp == StackDepth {
		return c.fatalf(ErrStackOverflow, "out of stack frames")
	}
	c.stack[c.sp] = c.pc
	c.sp++
	c.pc = immediateAddr(w)
	return nil
}

// checkFlagOperands rejects VF as a data operand of an instruction that
// writes it as a flag.
func (c *CHIP8) checkFlagOperands(x, y int, w uint16) error {
	if x == flagRegister || y == flagRegister {
		return c.fatalf(ErrInvalidRegisterUsage, "flags register used as operand in 0x%04X", w)
	}
	return nil
}

// executeALU handles family 8, the register to register operations. The
// plain assign and bitwise operations write no flag and accept VF operands,
// all others write VF and reject it as an operand.
func (c *CHIP8) executeALU(w uint16) error {
	x := registerX(w)
	y := registerY(w)

	switch w & 0x000F {
	case 0x0:
		c.v[x] = c.v[y]
	case 0x1:
		c.v[x] |= c.v[y]
	case 0x2:
		c.v[x] &= c.v[y]
	case 0x3:
		c.v[x] ^= c.v[y]

	case 0x4:
		if err := c.checkFlagOperands(x, y, w); err != nil {
			return err
		}
		carry := int(c.v[x])+int(c.v[y]) > 0xFF
		c.v[x] += c.v[y]
		c.v[flagRegister] = flag(carry)

	case 0x5:
		if err := c.checkFlagOperands(x, y, w); err != nil {
			return err
		}
		borrow := c.v[x] < c.v[y]
		c.v[x] -= c.v[y]
		c.v[flagRegister] = flag(!borrow)

	case 0x6:
		if err := c.checkFlagOperands(x, y, w); err != nil {
			return err
		}
		c.v[flagRegister] = c.v[x] & 1
		c.v[x] >>= 1

	case 0x7:
		if err := c.checkFlagOperands(x, y, w); err != nil {
			return err
		}
		borrow := c.v[y] < c.v[x]
		c.v[x] = c.v[y] - c.v[x]
		c.v[flagRegister] = flag(!borrow)

	case 0xE:
		if err := c.checkFlagOperands(x, y, w); err != nil {
			return err
		}
		c.v[flagRegister] = c.v[x] >> 7
		c.v[x] <<= 1

	default:
		return c.unhandled(w)
	}
	return nil
}

// executeJumpOffset handles family B, the jump to V0 plus address.
func (c *CHIP8) executeJumpOffset(w uint16) error {
	addr := uint16(c.v[0]) + immediateAddr(w)
	if addr >= MemorySize {
		return c.fatalf(ErrOutOfBounds, "trying to jump out of RAM to 0x%04X", addr)
	}
	c.pc = addr
	return nil
}

// executeDraw handles family D: XOR an 8 pixel wide, n pixel high sprite
// read from I into the framebuffer at (Vx, Vy). Destination coordinates
// wrap around the display edges. VF reports whether any set pixel was
// flipped off.
func (c *CHIP8) executeDraw(w uint16) error {
	n := int(w & 0x000F)
	if int(c.i)+n >= MemorySize {
		return c.fatalf(ErrOutOfBounds, "blitting from outside of RAM at 0x%04X", c.i)
	}

	baseX := int(c.v[registerX(w)])
	baseY := int(c.v[registerY(w)])
	// the blit addresses the full 64x32 grid, one byte past the framebuffer region
	display := c.mem[DisplayStart:]
	collision := false

	for row := range n {
		sprite := c.mem[int(c.i)+row]

		for col := range 8 {
			if sprite&(0x80>>col) == 0 {
				continue
			}
			x := (baseX + col) % DisplayWidth
			y := (baseY + row) % DisplayHeight

			bit := y*DisplayWidth + x
			mask := byte(0x80) >> (bit % 8)

			if display[bit/8]&mask != 0 {
				collision = true
			}
			display[bit/8] ^= mask
		}
	}

	c.v[flagRegister] = flag(collision)
	return nil
}

// executeSkipKey handles family E, the skips on key state. The skip is not
// range checked, the next fetch validates the program counter.
func (c *CHIP8) executeSkipKey(w uint16) error {
	key := c.v[registerX(w)]

	switch immediateByte(w) {
	case 0x9E:
		if key >= KeyCount {
			return c.fatalf(ErrInvalidKeyCode, "invalid key code %d requested", key)
		}
		if c.keys[key] {
			c.pc += instructionSize
		}
		return nil

	case 0xA1:
		if key >= KeyCount {
			return c.fatalf(ErrInvalidKeyCode, "invalid key code %d requested", key)
		}
		if !c.keys[key] {
			c.pc += instructionSize
		}
		return nil

	default:
		return c.unhandled(w)
	}
}

// executeMisc handles family F: timer access, key wait, address register
// arithmetic, glyph lookup, BCD decomposition and register block transfers.
func (c *CHIP8) executeMisc(w uint16) error {
	x := registerX(w)

	switch immediateByte(w) {
	case 0x07:
		c.v[x] = c.delayTimer

	case 0x0A:
		c.waitReg = x

	case 0x15:
		c.delayTimer = c.v[x]

	case 0x18:
		c.soundTimer = c.v[x]

	case 0x1E:
		addr := int(c.i) + int(c.v[x])
		if addr > MemorySize {
			return c.fatalf(ErrOutOfBounds, "moving I outside of RAM to 0x%04X", addr)
		}
		c.i += uint16(c.v[x])

	case 0x29:
		if c.v[x] >= GlyphCount {
			return c.fatalf(ErrInvalidKeyCode, "unknown glyph %d", c.v[x])
		}
		c.i = FontStart + uint16(c.v[x])*GlyphSize

	case 0x33:
		if int(c.i)+3 > MemorySize {
			return c.fatalf(ErrOutOfBounds, "storing to I outside of RAM at 0x%04X", c.i)
		}
		value := c.v[x]
		c.mem[c.i] = value / 100 % 10
		c.mem[c.i+1] = value / 10 % 10
		c.mem[c.i+2] = value % 10

	case 0x55:
		if int(c.i)+x >= MemorySize {
			return c.fatalf(ErrOutOfBounds, "copying to I outside of RAM at 0x%04X", c.i)
		}
		copy(c.mem[c.i:], c.v[:x+1])

	case 0x65:
		if int(c.i)+x >= MemorySize {
			return c.fatalf(ErrOutOfBounds, "copying from I outside of RAM at 0x%04X", c.i)
		}
		copy(c.v[:x+1], c.mem[c.i:])

	default:
		return c.unhandled(w)
	}
	return nil
}
