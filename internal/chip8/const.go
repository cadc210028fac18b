package chip8

// Memory layout constants.
//
// CHIP-8 memory map (4KB total):
//
//	0x000-0x00F: reserved
//	0x010-0x05F: built-in hexadecimal glyph sprites
//	0x060-0xEFF: program and data space
//	0xF00-0xFFE: memory mapped framebuffer, bit-packed, MSB first
const (
	// MemorySize is the size of the addressable memory in bytes.
	MemorySize = 4096

	// ProgramStart is the load and execution offset for CHIP-8 programs.
	ProgramStart = 0x200

	// ProgramStartETI660 is the load and execution offset for ETI-660 programs.
	ProgramStartETI660 = 0x600

	// FontStart is the address of the first built-in glyph sprite.
	FontStart = 0x010

	// GlyphSize is the height of one built-in glyph sprite in bytes.
	GlyphSize = 5

	// GlyphCount is the number of built-in glyph sprites.
	GlyphCount = 16

	// DisplayStart is the address of the memory mapped framebuffer.
	DisplayStart = 0xF00

	// DisplaySize is the size of the framebuffer region in bytes.
	DisplaySize = 255

	// DisplayWidth is the display width in pixels.
	DisplayWidth = 64

	// DisplayHeight is the display height in pixels.
	DisplayHeight = 32

	// RegisterCount is the number of general purpose registers.
	RegisterCount = 16

	// StackDepth is the maximum number of call stack frames.
	StackDepth = 24

	// KeyCount is the number of keyboard keys.
	KeyCount = 16
)

const (
	// flagRegister is the index of VF, the carry/borrow/collision flag.
	flagRegister = 0xF

	// instructionSize is the size of one encoded instruction in bytes.
	instructionSize = 2

	// frameSize is the size of the full 64x32 display in bytes.
	frameSize = DisplayWidth * DisplayHeight / 8

	// noKeyWait marks the input latch as not waiting for a key press.
	noKeyWait = -1
)

// font contains the 16 built-in glyph sprites for the hexadecimal digits,
// 5 bytes per glyph, one row per byte, MSB first.
var font = [GlyphCount * GlyphSize]byte{
	0xF0, 0x90, 0x90, 0x90, 0xF0, // 0
	0x60, 0xA0, 0x20, 0x20, 0xF0, // 1
	0xF0, 0x10, 0xF0, 0x80, 0xF0, // 2
	0xF0, 0x10, 0xF0, 0x10, 0xF0, // 3
	0x90, 0x90, 0xF0, 0x10, 0x10, // 4
	0xF0, 0x80, 0xF0, 0x10, 0xF0, // 5
	0xF0, 0x80, 0xF0, 0x90, 0xF0, // 6
	0xF0, 0x10, 0x10, 0x10, 0x10, // 7
	0xF0, 0x90, 0xF0, 0x90, 0xF0, // 8
	0xF0, 0x90, 0xF0, 0x10, 0x10, // 9
	0xF0, 0x90, 0xF0, 0x90, 0x90, // A
	0xE0, 0x90, 0xE0, 0x90, 0xE0, // B
	0xF0, 0x80, 0x80, 0x80, 0xF0, // C
	0xE0, 0x90, 0x90, 0x90, 0xE0, // D
	0xF0, 0x80, 0xF0, 0x80, 0xF0, // E
	0xF0, 0x80, 0xF0, 0x80, 0x80, // F
}
