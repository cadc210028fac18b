package chip8

// Frame is a snapshot of the full 64x32 display contents, bit-packed
// row-major with the most significant bit first, taken at Draw time.
type Frame []byte

// Renderer displays a composed frame on an external surface.
type Renderer interface {
	Render(frame Frame) error
}

// Pixel reports whether the pixel at the given coordinates is set.
func (f Frame) Pixel(x, y int) bool {
	bit := y*DisplayWidth + x
	return f[bit/8]&(0x80>>(bit%8)) != 0
}
