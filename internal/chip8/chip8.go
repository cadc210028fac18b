package chip8

import (
	"bytes"
	"fmt"
	"io"
	"math/rand/v2"
	"os"
	"strings"

	"github.com/retroenv/retrogolib/log"
)

// ProgramType selects the ROM loading convention.
type ProgramType int

const (
	// ProgramCHIP8 loads and starts programs at 0x200.
	ProgramCHIP8 ProgramType = iota
	// ProgramETI660 loads and starts programs at 0x600.
	ProgramETI660
)

// ParseProgramType parses a program type name.
func ParseProgramType(name string) (ProgramType, error) {
	switch strings.ToLower(name) {
	case "chip8", "chip-8":
		return ProgramCHIP8, nil
	case "eti660", "eti-660":
		return ProgramETI660, nil
	default:
		return 0, fmt.Errorf("unknown program type '%s'", name)
	}
}

// Offset returns the load and execution offset of the program type.
func (p ProgramType) Offset() uint16 {
	if p == ProgramETI660 {
		return ProgramStartETI660
	}
	return ProgramStart
}

// String implements fmt.Stringer.
func (p ProgramType) String() string {
	if p == ProgramETI660 {
		return "eti660"
	}
	return "chip8"
}

// Options configures optional machine collaborators.
type Options struct {
	// Renderer receives the composed frame on Draw. With a nil renderer
	// Draw only consumes the pending framebuffer changes.
	Renderer Renderer

	// DumpWriter receives the diagnostic state dump written on machine
	// faults. Defaults to standard error.
	DumpWriter io.Writer

	// Random overrides the random byte source of the rnd instruction.
	// Defaults to the process wide generator.
	Random func() byte

	// Trace logs every executed instruction at debug level.
	Trace bool
}

// CHIP8 is one virtual machine instance: a 4096 byte address space, 16
// general purpose registers, a bounded call stack, two countdown timers, a
// 16 key input latch and a memory mapped framebuffer. All state is owned
// exclusively by the instance, Load, Step and Tick are the only mutators.
type CHIP8 struct {
	logger     *log.Logger
	renderer   Renderer
	dumpWriter io.Writer
	random     func() byte
	trace      bool

	mem   [MemorySize]byte
	v     [RegisterCount]byte
	pc    uint16
	i     uint16
	stack [StackDepth]uint16
	sp    int

	delayTimer uint8
	soundTimer uint8

	keys    [KeyCount]bool
	waitReg int

	shadow [DisplaySize]byte
}

// New creates a virtual machine with zeroed memory, registers and stack.
func New(logger *log.Logger, options Options) *CHIP8 {
	if options.DumpWriter == nil {
		options.DumpWriter = os.Stderr
	}
	if options.Random == nil {
		options.Random = func() byte {
			return byte(rand.IntN(256))
		}
	}

	return &CHIP8{
		logger:     logger,
		renderer:   options.Renderer,
		dumpWriter: options.DumpWriter,
		random:     options.Random,
		trace:      options.Trace,
		waitReg:    noKeyWait,
	}
}

// Load copies the ROM image into memory at the load offset of the program
// type, writes the glyph font and points the program counter at the offset.
// It returns an error and leaves the machine unmodified if the image does
// not fit the address space.
func (c *CHIP8) Load(data []byte, program ProgramType) error {
	offset := int(program.Offset())
	if len(data)+offset >= MemorySize {
		return fmt.Errorf("%w: program of %d bytes does not fit at offset 0x%03X",
			ErrOutOfBounds, len(data), offset)
	}

	copy(c.mem[offset:], data)
	c.pc = program.Offset()
	copy(c.mem[FontStart:], font[:])

	c.logger.Debug("program loaded",
		log.Int("size", len(data)),
		log.String("program", program.String()),
		log.Hex("pc", c.pc),
	)
	return nil
}

// Step executes up to count instructions. While the machine is waiting for
// a key press no instruction is fetched: a call with no key pressed returns
// immediately, otherwise the lowest pressed key index resolves the wait and
// consumes one iteration before fetching resumes.
func (c *CHIP8) Step(count int) error {
	for range count {
		if c.waitReg != noKeyWait {
			if !c.resolveKeyWait() {
				return nil
			}
			continue
		}

		w, err := c.fetch()
		if err != nil {
			return err
		}
		if c.trace {
			c.traceInstruction(w)
		}
		if err := c.execute(w); err != nil {
			return err
		}
	}
	return nil
}

// Tick decrements the delay and sound timers by one, floored at zero.
// The external driver calls it at a fixed cadence, nominally 60 Hz.
func (c *CHIP8) Tick() {
	if c.delayTimer > 0 {
		c.delayTimer--
	}
	if c.soundTimer > 0 {
		c.soundTimer--
	}
}

// PlayingSound reports whether the sound timer is running.
func (c *CHIP8) PlayingSound() bool {
	return c.soundTimer > 0
}

// SetKeyboardState overwrites the key state snapshot, bit i of the mask
// marking key i as pressed. The machine reads but never mutates it.
func (c *CHIP8) SetKeyboardState(mask uint16) {
	for i := range c.keys {
		c.keys[i] = mask&(1<<i) != 0
	}
}

// NeedsRedraw reports whether the framebuffer changed since the last Draw.
func (c *CHIP8) NeedsRedraw() bool {
	return !bytes.Equal(c.frameBuffer(), c.shadow[:])
}

// Draw consumes the pending framebuffer changes and renders the display
// through the configured renderer.
func (c *CHIP8) Draw() error {
	copy(c.shadow[:], c.frameBuffer())

	if c.renderer == nil {
		return nil
	}
	if err := c.renderer.Render(c.Frame()); err != nil {
		return fmt.Errorf("rendering frame: %w", err)
	}
	return nil
}

// Frame returns a snapshot of the full 64x32 display contents. The last
// display byte lies one past the framebuffer region and is included.
func (c *CHIP8) Frame() Frame {
	frame := make(Frame, frameSize)
	copy(frame, c.mem[DisplayStart:])
	return frame
}

// frameBuffer returns the live framebuffer region of memory.
func (c *CHIP8) frameBuffer() []byte {
	return c.mem[DisplayStart : DisplayStart+DisplaySize]
}

// resolveKeyWait scans the keys in ascending order and stores the first
// pressed key index into the waiting register's target. It reports whether
// the wait was resolved.
func (c *CHIP8) resolveKeyWait() bool {
	for key, pressed := range c.keys {
		if !pressed {
			continue
		}
		c.v[c.waitReg] = byte(key)
		c.waitReg = noKeyWait

		c.logger.Debug("key wait resolved", log.Int("key", key))
		return true
	}
	return false
}

// fetch reads the big-endian instruction word at the program counter and
// advances the counter past it. Handlers that jump or skip overwrite the
// counter afterwards.
func (c *CHIP8) fetch() (uint16, error) {
	if int(c.pc)+instructionSize >= MemorySize {
		return 0, c.fatalf(ErrOutOfBounds, "program counter left RAM at 0x%04X", c.pc)
	}

	w := uint16(c.mem[c.pc])<<8 | uint16(c.mem[c.pc+1])
	c.pc += instructionSize
	return w, nil
}

// fatalf writes the state dump to the dump sink and returns the fault
// wrapped around its sentinel kind.
func (c *CHIP8) fatalf(kind error, format string, args ...any) error {
	if err := c.Dump(c.dumpWriter); err != nil {
		c.logger.Error("writing state dump", log.Err(err))
	}
	return fmt.Errorf("%w: %s", kind, fmt.Sprintf(format, args...))
}
