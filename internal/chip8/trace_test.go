package chip8

import (
	"io"
	"testing"

	"github.com/retroenv/retrogolib/assert"
	"github.com/retroenv/retrogolib/log"
)

func TestInstructionName(t *testing.T) {
	tests := []struct {
		name   string
		opcode uint16
		want   string
	}{
		{"clear screen", 0x00E0, "cls"},
		{"return", 0x00EE, "ret"},
		{"jump", 0x1234, "jp"},
		{"call", 0x2345, "call"},
		{"load immediate", 0x6112, "ld"},
		{"add registers", 0x8124, "add"},
		{"draw", 0xD123, "drw"},
		{"random", 0xC107, "rnd"},
		{"unknown variant", 0x5FF3, "unknown"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Equal(t, tt.want, instructionName(tt.opcode))
		})
	}
}

func TestStepWithTrace(t *testing.T) {
	c := New(log.NewTestLogger(t), Options{
		DumpWriter: io.Discard,
		Trace:      true,
	})
	rom := []byte{
		0x61, 0x42, // ld V1, $42
		0x12, 0x00, // jp $200
	}
	assert.NoError(t, c.Load(rom, ProgramCHIP8))

	assert.NoError(t, c.Step(2))
	assert.Equal(t, byte(0x42), c.v[1])
	assert.Equal(t, uint16(ProgramStart), c.pc)
}
