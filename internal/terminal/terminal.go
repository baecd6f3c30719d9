// Package terminal implements a host front-end that renders the framebuffer
// into a terminal and reads the keypad state from the terminal keyboard.
package terminal

import (
	"fmt"
	"sync"

	"github.com/nsf/termbox-go"
	"github.com/retroenv/chip8vm/internal/display"
	"github.com/retroenv/chip8vm/internal/host"
	"github.com/retroenv/chip8vm/internal/keyboard"
	"github.com/retroenv/chip8vm/internal/machine"
)

// DefaultHoldFrames is the number of frames a key stays pressed after its
// last key event. Terminals do not report key releases.
const DefaultHoldFrames = 6

const (
	pixelOn  = termbox.ColorWhite
	pixelOff = termbox.ColorBlack

	// upper half block, the lower half is drawn with the background color
	halfBlock = '▀'

	statusRow = display.Height/2 + 1
)

// Terminal is a termbox based front-end. Two display rows are packed into
// one terminal row.
type Terminal struct {
	events     chan termbox.Event
	poll       func() termbox.Event
	wg         sync.WaitGroup
	dropped    int
	holdFrames int
	held       [keyboard.KeyCount]int
}

// New initializes the terminal and starts reading input events.
func New(holdFrames int) (*Terminal, error) {
	if err := termbox.Init(); err != nil {
		return nil, fmt.Errorf("initializing terminal: %w", err)
	}
	termbox.SetInputMode(termbox.InputEsc)
	termbox.HideCursor()

	t := newTerminal(holdFrames, termbox.PollEvent)
	t.start()
	return t, nil
}

func newTerminal(holdFrames int, poll func() termbox.Event) *Terminal {
	if holdFrames <= 0 {
		holdFrames = DefaultHoldFrames
	}
	return &Terminal{
		events:     make(chan termbox.Event, 16),
		poll:       poll,
		holdFrames: holdFrames,
	}
}

func (t *Terminal) start() {
	t.wg.Add(1)
	go t.readEvents()
}

// Close stops the input reader and restores the terminal.
// termbox.Interrupt blocks until the reader receives the interrupt event in
// PollEvent, which is the only place the reader can block.
func (t *Terminal) Close() {
	termbox.Interrupt()
	t.wg.Wait()
	termbox.Close()
}

// readEvents forwards input events until the interrupt event is received.
// Events arriving while the buffer is full are dropped.
func (t *Terminal) readEvents() {
	defer t.wg.Done()

	for {
		ev := t.poll()
		if ev.Type == termbox.EventInterrupt {
			return
		}

		select {
		case t.events <- ev:
		default:
			t.dropped++
		}
	}
}

// PollInput drains all pending terminal events without blocking and latches
// the keys that are still held.
func (t *Terminal) PollInput(keys host.KeySetter) (bool, error) {
	for drained := false; !drained; {
		select {
		case ev := <-t.events:
			quit, err := t.handleEvent(ev)
			if err != nil || quit {
				return quit, err
			}
		default:
			drained = true
		}
	}

	for code, frames := range t.held {
		if frames == 0 {
			continue
		}
		t.held[code]--
		if err := keys.SetKey(uint8(code), true); err != nil {
			return false, fmt.Errorf("latching key: %w", err)
		}
	}
	return false, nil
}

func (t *Terminal) handleEvent(ev termbox.Event) (bool, error) {
	switch ev.Type {
	case termbox.EventError:
		return false, fmt.Errorf("reading terminal input: %w", ev.Err)

	case termbox.EventKey:
		if ev.Key == termbox.KeyEsc || ev.Key == termbox.KeyCtrlC {
			return true, nil
		}
		if code, ok := keyboard.KeyForRune(ev.Ch); ok {
			t.held[code] = t.holdFrames
		}
	}
	return false, nil
}

// Render draws the framebuffer and the status line.
func (t *Terminal) Render(view host.View) error {
	fb := view.Display()
	for row := range display.Height / 2 {
		for x := range display.Width {
			top, bottom := pixelPair(fb, x, row)
			termbox.SetCell(x, row, halfBlock, pixelColor(top), pixelColor(bottom))
		}
	}

	line := statusLine(view)
	for x := range display.Width {
		ch := ' '
		if x < len(line) {
			ch = rune(line[x])
		}
		termbox.SetCell(x, statusRow, ch, termbox.ColorDefault, termbox.ColorDefault)
	}

	if err := termbox.Flush(); err != nil {
		return fmt.Errorf("flushing terminal: %w", err)
	}
	return nil
}

// pixelPair returns the two pixels shown in a terminal cell.
func pixelPair(fb machine.Framebuffer, x, row int) (bool, bool) {
	return fb.Pixel(x, row*2), fb.Pixel(x, row*2+1)
}

func pixelColor(set bool) termbox.Attribute {
	if set {
		return pixelOn
	}
	return pixelOff
}

func statusLine(view host.View) string {
	line := fmt.Sprintf("PC %03X", view.PC())
	if view.SoundTimer() > 0 {
		line += "  BEEP"
	}
	if view.Awaiting() {
		line += "  WAITING FOR KEY"
	}
	return line + "  [ESC quits]"
}
