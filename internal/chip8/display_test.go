package chip8

import (
	"errors"
	"io"
	"testing"

	"github.com/retroenv/retrogolib/assert"
	"github.com/retroenv/retrogolib/log"
)

func TestNeedsRedraw(t *testing.T) {
	c := newTestMachine(t)
	assert.False(t, c.NeedsRedraw())

	c.mem[0x300] = 0x80
	c.i = 0x300
	assert.NoError(t, c.execute(0xD011))
	assert.True(t, c.NeedsRedraw())

	assert.NoError(t, c.Draw())
	assert.False(t, c.NeedsRedraw())

	// clearing the drawn pixel is a change again
	assert.NoError(t, c.execute(0x00E0))
	assert.True(t, c.NeedsRedraw())
}

func TestDrawRendersFrame(t *testing.T) {
	renderer := &rendererMock{}
	c := New(log.NewTestLogger(t), Options{
		Renderer:   renderer,
		DumpWriter: io.Discard,
	})

	c.mem[0x300] = 0x80
	c.i = 0x300
	c.v[0] = 9
	c.v[1] = 3
	assert.NoError(t, c.execute(0xD011))

	assert.NoError(t, c.Draw())
	assert.Len(t, renderer.frames, 1)

	frame := renderer.frames[0]
	assert.Len(t, frame, frameSize)
	assert.True(t, frame.Pixel(9, 3))
	assert.False(t, frame.Pixel(10, 3))
	assert.False(t, frame.Pixel(9, 4))
}

func TestDrawWithoutRenderer(t *testing.T) {
	c := newTestMachine(t)
	c.mem[DisplayStart] = 0xFF

	assert.NoError(t, c.Draw())
	assert.False(t, c.NeedsRedraw())
}

func TestDrawRendererError(t *testing.T) {
	renderer := &rendererMock{err: errors.New("surface gone")}
	c := New(log.NewTestLogger(t), Options{
		Renderer:   renderer,
		DumpWriter: io.Discard,
	})

	err := c.Draw()
	assert.ErrorContains(t, err, "rendering frame")
}

func TestFramePixel(t *testing.T) {
	c := newTestMachine(t)
	c.mem[DisplayStart] = 0x80   // (0,0)
	c.mem[DisplayStart+9] = 0x01 // (15,1)

	frame := c.Frame()
	assert.True(t, frame.Pixel(0, 0))
	assert.False(t, frame.Pixel(1, 0))
	assert.True(t, frame.Pixel(15, 1))
	assert.False(t, frame.Pixel(15, 2))
}

func TestFrameIsSnapshot(t *testing.T) {
	c := newTestMachine(t)
	frame := c.Frame()

	c.mem[DisplayStart] = 0xFF
	assert.False(t, frame.Pixel(0, 0))
}
