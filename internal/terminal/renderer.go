package terminal

import (
	"bytes"
	"fmt"
	"io"

	"github.com/retroenv/chip8emu/internal/chip8"
)

const (
	ansiClear      = "\x1b[2J"
	ansiHome       = "\x1b[H"
	ansiHideCursor = "\x1b[?25l"
	ansiShowCursor = "\x1b[?25h"

	pixelOn  = '#'
	pixelOff = ' '
)

// Renderer draws frames to a terminal using ANSI escape sequences.
// Each frame homes the cursor and redraws the full display inside a
// border. Lines end in \r\n since the terminal runs in raw mode.
type Renderer struct {
	w   io.Writer
	buf bytes.Buffer
}

// NewRenderer creates a new terminal renderer writing to w.
func NewRenderer(w io.Writer) *Renderer {
	return &Renderer{
		w: w,
	}
}

// Setup clears the terminal and hides the cursor.
func (r *Renderer) Setup() error {
	if _, err := io.WriteString(r.w, ansiClear+ansiHome+ansiHideCursor); err != nil {
		return fmt.Errorf("preparing terminal: %w", err)
	}
	return nil
}

// Teardown restores the cursor and clears the display output.
func (r *Renderer) Teardown() error {
	if _, err := io.WriteString(r.w, ansiShowCursor+ansiClear+ansiHome); err != nil {
		return fmt.Errorf("restoring terminal: %w", err)
	}
	return nil
}

// Render implements the chip8.Renderer interface.
func (r *Renderer) Render(frame chip8.Frame) error {
	r.buf.Reset()
	r.buf.WriteString(ansiHome)

	r.writeBorder()
	for y := range chip8.DisplayHeight {
		r.buf.WriteByte('|')
		for x := range chip8.DisplayWidth {
			if frame.Pixel(x, y) {
				r.buf.WriteByte(pixelOn)
			} else {
				r.buf.WriteByte(pixelOff)
			}
		}
		r.buf.WriteString("|\r\n")
	}
	r.writeBorder()

	if _, err := r.w.Write(r.buf.Bytes()); err != nil {
		return fmt.Errorf("writing frame: %w", err)
	}
	return nil
}

func (r *Renderer) writeBorder() {
	r.buf.WriteByte('+')
	for range chip8.DisplayWidth {
		r.buf.WriteByte('-')
	}
	r.buf.WriteString("+\r\n")
}
