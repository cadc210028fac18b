package cli

import (
	"errors"
	"os"
	"testing"

	"github.com/retroenv/chip8emu/internal/options"
	"github.com/retroenv/retrogolib/assert"
)

func TestParseFlags(t *testing.T) {
	tests := []struct {
		name string
		args []string
		want options.Program
	}{
		{
			name: "default flags",
			args: []string{"prog", "test.ch8"},
			want: options.Program{
				Input: "test.ch8",
				Flags: options.Flags{ProgramType: "chip8", IPS: 700},
			},
		},
		{
			name: "program flag",
			args: []string{"prog", "-program", "eti660", "test.ch8"},
			want: options.Program{
				Input: "test.ch8",
				Flags: options.Flags{ProgramType: "eti660", IPS: 700},
			},
		},
		{
			name: "ips flag",
			args: []string{"prog", "-ips", "1200", "test.ch8"},
			want: options.Program{
				Input: "test.ch8",
				Flags: options.Flags{ProgramType: "chip8", IPS: 1200},
			},
		},
		{
			name: "debug and quiet flags",
			args: []string{"prog", "-debug", "-q", "test.ch8"},
			want: options.Program{
				Input: "test.ch8",
				Flags: options.Flags{ProgramType: "chip8", IPS: 700, Debug: true, Quiet: true},
			},
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			oldArgs := os.Args
			t.Cleanup(func() { os.Args = oldArgs })

			os.Args = tt.args

			got, err := ParseFlags()
			assert.NoError(t, err)
			assert.Equal(t, tt.want, got)
		})
	}
}

func TestParseFlagsNoArguments(t *testing.T) {
	oldArgs := os.Args
	t.Cleanup(func() { os.Args = oldArgs })

	os.Args = []string{"prog"}

	_, err := ParseFlags()
	var usageErr *UsageError
	assert.True(t, errors.As(err, &usageErr))
}

func TestParseFlagsVersion(t *testing.T) {
	oldArgs := os.Args
	t.Cleanup(func() { os.Args = oldArgs })

	os.Args = []string{"prog", "-version"}

	opts, err := ParseFlags()
	assert.NoError(t, err)
	assert.True(t, opts.Version)
	assert.Equal(t, "", opts.Input)
}

func TestParseFlagsInvalidProgramType(t *testing.T) {
	oldArgs := os.Args
	t.Cleanup(func() { os.Args = oldArgs })

	os.Args = []string{"prog", "-program", "vip", "test.ch8"}

	_, err := ParseFlags()
	assert.Error(t, err)
	assert.ErrorContains(t, err, "unknown program type")
}

func TestParseFlagsInvalidIPS(t *testing.T) {
	oldArgs := os.Args
	t.Cleanup(func() { os.Args = oldArgs })

	os.Args = []string{"prog", "-ips", "0", "test.ch8"}

	_, err := ParseFlags()
	assert.Error(t, err)
	assert.ErrorContains(t, err, "invalid instructions per second")
}

func TestValidateArgs(t *testing.T) {
	assert.NoError(t, validateArgs([]string{"test.ch8"}))

	err := validateArgs([]string{"test.ch8", "-debug"})
	var usageErr *UsageError
	assert.True(t, errors.As(err, &usageErr))
}
