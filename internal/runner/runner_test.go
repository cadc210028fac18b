package runner

import (
	"bytes"
	"context"
	"errors"
	"io"
	"testing"
	"time"

	"github.com/retroenv/chip8emu/internal/chip8"
	"github.com/retroenv/retrogolib/assert"
	"github.com/retroenv/retrogolib/log"
)

type inputStub struct {
	mask uint16
	quit chan struct{}
}

func newInputStub() *inputStub {
	return &inputStub{
		quit: make(chan struct{}),
	}
}

func (s *inputStub) State() uint16 {
	return s.mask
}

func (s *inputStub) Quit() <-chan struct{} {
	return s.quit
}

type rendererStub struct {
	frames []chip8.Frame
}

func (r *rendererStub) Render(frame chip8.Frame) error {
	r.frames = append(r.frames, frame)
	return nil
}

func newTestMachine(t *testing.T, program []byte, renderer chip8.Renderer, dump io.Writer) *chip8.CHIP8 {
	t.Helper()

	machine := chip8.New(log.NewTestLogger(t), chip8.Options{
		Renderer:   renderer,
		DumpWriter: dump,
	})
	assert.NoError(t, machine.Load(program, chip8.ProgramCHIP8))
	return machine
}

func TestRunMachineQuit(t *testing.T) {
	renderer := &rendererStub{}
	machine := newTestMachine(t, []byte{0x12, 0x00}, renderer, io.Discard)
	input := newInputStub()
	close(input.quit)

	err := runMachine(context.Background(), log.NewTestLogger(t), machine, input, 10, time.Millisecond)
	assert.NoError(t, err)
	assert.Len(t, renderer.frames, 1)
}

func TestRunMachineContextCanceled(t *testing.T) {
	machine := newTestMachine(t, []byte{0x12, 0x00}, &rendererStub{}, io.Discard)
	ctx, cancel := context.WithCancel(context.Background())
	cancel()

	err := runMachine(ctx, log.NewTestLogger(t), machine, newInputStub(), 10, time.Millisecond)
	assert.True(t, errors.Is(err, context.Canceled))
}

func TestRunMachineFault(t *testing.T) {
	var dump bytes.Buffer
	machine := newTestMachine(t, []byte{0x00, 0xEE}, &rendererStub{}, &dump)

	err := runMachine(context.Background(), log.NewTestLogger(t), machine, newInputStub(), 1, time.Millisecond)
	assert.True(t, errors.Is(err, chip8.ErrStackUnderflow))
	assert.Contains(t, dump.String(), "CHIP-8 state:")
}

func TestRunMachineKeyInput(t *testing.T) {
	// Wait for a key press, then draw the pressed key as a glyph.
	program := []byte{
		0xF1, 0x0A, // ld v1, k
		0xA0, 0x10, // ld i, 0x010
		0xD1, 0x15, // drw v1, v1, 5
		0x12, 0x06, // jp 0x206
	}
	renderer := &rendererStub{}
	machine := newTestMachine(t, program, renderer, io.Discard)
	input := newInputStub()
	input.mask = 1 << 0x5

	ctx, cancel := context.WithCancel(context.Background())
	timer := time.AfterFunc(100*time.Millisecond, cancel)
	defer timer.Stop()

	errCh := make(chan error, 1)
	go func() {
		errCh <- runMachine(ctx, log.NewTestLogger(t), machine, input, 10, time.Millisecond)
	}()

	err := <-errCh
	assert.True(t, errors.Is(err, context.Canceled))
	assert.True(t, len(renderer.frames) >= 2)

	frame := renderer.frames[len(renderer.frames)-1]
	assert.True(t, frame.Pixel(5, 5))
}
