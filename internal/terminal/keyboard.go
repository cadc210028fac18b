// Package terminal drives the interactive terminal, it reads raw
// keyboard input and renders frames using ANSI escape sequences.
package terminal

import (
	"fmt"
	"os"
	"sync"
	"time"

	"github.com/retroenv/chip8emu/internal/chip8"
	"github.com/retroenv/retrogolib/log"
	"golang.org/x/term"
)

// keyHoldDuration is how long a key counts as held after its last
// input byte. Terminals report key repeats but no key releases, the
// hold window bridges the gap between repeats.
const keyHoldDuration = 200 * time.Millisecond

// keyMap maps keyboard characters to the hexadecimal keypad:
//
//	1 2 3 4        1 2 3 C
//	q w e r   ->   4 5 6 D
//	a s d f        7 8 9 E
//	z x c v        A 0 B F
var keyMap = map[byte]uint8{
	'1': 0x1, '2': 0x2, '3': 0x3, '4': 0xC,
	'q': 0x4, 'w': 0x5, 'e': 0x6, 'r': 0xD,
	'a': 0x7, 's': 0x8, 'd': 0x9, 'f': 0xE,
	'z': 0xA, 'x': 0x0, 'c': 0xB, 'v': 0xF,
}

// Keyboard reads raw stdin bytes and tracks the keypad state.
type Keyboard struct {
	logger *log.Logger

	fd       int
	oldState *term.State

	stopCh  chan struct{}
	stopped sync.Once

	quitCh   chan struct{}
	quitOnce sync.Once

	mu       sync.Mutex
	lastSeen [chip8.KeyCount]time.Time
}

// NewKeyboard creates a new keyboard reader.
func NewKeyboard(logger *log.Logger) *Keyboard {
	return &Keyboard{
		logger: logger,
		stopCh: make(chan struct{}),
		quitCh: make(chan struct{}),
	}
}

// Start puts the terminal into raw mode and begins reading stdin in a
// goroutine. Stop restores the terminal.
func (k *Keyboard) Start() error {
	k.fd = int(os.Stdin.Fd())

	oldState, err := term.MakeRaw(k.fd)
	if err != nil {
		return fmt.Errorf("setting terminal raw mode: %w", err)
	}
	k.oldState = oldState

	go k.readLoop()
	return nil
}

// Stop ends input handling and restores the terminal state. The reader
// goroutine stays blocked on stdin until the next byte arrives or the
// process exits, it discards all input after Stop.
func (k *Keyboard) Stop() {
	k.stopped.Do(func() {
		close(k.stopCh)
	})
	if k.oldState != nil {
		_ = term.Restore(k.fd, k.oldState)
		k.oldState = nil
	}
}

// Quit returns a channel that is closed when the user requests to
// quit, by pressing Escape or Ctrl-C.
func (k *Keyboard) Quit() <-chan struct{} {
	return k.quitCh
}

// State returns the current keypad state as a bit mask, bit n set
// means key n is held.
func (k *Keyboard) State() uint16 {
	return k.stateAt(time.Now())
}

func (k *Keyboard) stateAt(now time.Time) uint16 {
	k.mu.Lock()
	defer k.mu.Unlock()

	var mask uint16
	for key, seen := range k.lastSeen {
		if !seen.IsZero() && now.Sub(seen) < keyHoldDuration {
			mask |= 1 << key
		}
	}
	return mask
}

func (k *Keyboard) readLoop() {
	buf := make([]byte, 1)
	for {
		n, err := os.Stdin.Read(buf)

		select {
		case <-k.stopCh:
			return
		default:
		}

		if n > 0 {
			k.handleByte(buf[0], time.Now())
		}
		if err != nil {
			return
		}
	}
}

// handleByte processes a single input byte, Escape and Ctrl-C request
// to quit, mapped keypad characters refresh their hold window.
func (k *Keyboard) handleByte(b byte, now time.Time) {
	if b == 0x1B || b == 0x03 {
		k.quitOnce.Do(func() {
			close(k.quitCh)
		})
		return
	}

	if b >= 'A' && b <= 'Z' {
		b += 'a' - 'A'
	}
	key, ok := keyMap[b]
	if !ok {
		return
	}

	k.mu.Lock()
	k.lastSeen[key] = now
	k.mu.Unlock()

	k.logger.Debug("key pressed", log.Uint8("key", key))
}
