// Package runner wires the machine to the terminal and drives the
// emulation loop.
package runner

import (
	"bytes"
	"context"
	"fmt"
	"io"
	"os"
	"strings"
	"time"

	"github.com/retroenv/chip8emu/internal/chip8"
	"github.com/retroenv/chip8emu/internal/config"
	"github.com/retroenv/chip8emu/internal/options"
	"github.com/retroenv/chip8emu/internal/rom"
	"github.com/retroenv/chip8emu/internal/terminal"
	"github.com/retroenv/retrogolib/log"
)

// inputSource provides keypad state and quit requests.
type inputSource interface {
	State() uint16
	Quit() <-chan struct{}
}

// Run loads the ROM and executes it until the context is cancelled,
// the user quits or the machine faults.
func Run(ctx context.Context, logger *log.Logger, opts options.Program) error {
	programType, err := chip8.ParseProgramType(opts.ProgramType)
	if err != nil {
		return err
	}

	image, err := rom.New(logger).Load(opts.Input)
	if err != nil {
		return fmt.Errorf("loading ROM: %w", err)
	}

	var faultDump bytes.Buffer
	renderer := terminal.NewRenderer(os.Stdout)
	machine := chip8.New(logger, chip8.Options{
		Renderer:   renderer,
		DumpWriter: &faultDump,
		Trace:      opts.Debug,
	})
	if err := machine.Load(image.Data, programType); err != nil {
		return fmt.Errorf("loading program: %w", err)
	}

	keyboard := terminal.NewKeyboard(logger)
	if err := keyboard.Start(); err != nil {
		return err
	}

	// The fault dump flushes last, after the terminal is restored.
	defer func() {
		if faultDump.Len() > 0 {
			_, _ = io.Copy(os.Stderr, &faultDump)
		}
	}()
	defer keyboard.Stop()

	if err := renderer.Setup(); err != nil {
		return err
	}
	defer func() {
		_ = renderer.Teardown()
	}()

	logger.Debug("starting emulation",
		log.String("program", image.Name),
		log.String("type", programType.String()),
		log.Int("ips", opts.IPS),
	)

	return runMachine(ctx, logger, machine, keyboard,
		config.StepsPerFrame(opts.IPS), config.FrameInterval)
}

// runMachine drives the machine at the display refresh rate. Each
// frame updates the keypad state, executes a batch of instructions,
// advances the timers and redraws the display if it changed.
func runMachine(ctx context.Context, logger *log.Logger, machine *chip8.CHIP8,
	input inputSource, stepsPerFrame int, frameInterval time.Duration) error {

	if err := machine.Draw(); err != nil {
		return err
	}

	ticker := time.NewTicker(frameInterval)
	defer ticker.Stop()

	soundOn := false
	for {
		select {
		case <-ctx.Done():
			return ctx.Err()

		case <-input.Quit():
			return nil

		case <-ticker.C:
			machine.SetKeyboardState(input.State())

			if err := machine.Step(stepsPerFrame); err != nil {
				return err
			}
			machine.Tick()

			if machine.NeedsRedraw() {
				if err := machine.Draw(); err != nil {
					return err
				}
			}

			if playing := machine.PlayingSound(); playing != soundOn {
				soundOn = playing
				if soundOn {
					logger.Debug("sound timer active")
				}
			}
		}
	}
}

// PrintBanner prints application version information
func PrintBanner(logger *log.Logger, opts options.Program, version, commit, date string) {
	if opts.Quiet {
		return
	}

	versionString := version
	if commit != "" {
		if len(commit) > 7 {
			commit = commit[:7]
		}
		versionString += fmt.Sprintf(" (%s)", commit)
	}

	logger.Info("chip8emu", log.String("version", versionString))

	if date != "" && !strings.Contains(date, "unknown") {
		logger.Info("Build", log.String("date", date))
	}
}
