package terminal

import (
	"context"
	"sync"

	"github.com/gdamore/tcell/v2"
	"go.uber.org/zap"

	"github.com/lixenwraith/reachlab/input"
	"github.com/lixenwraith/reachlab/vmath"
)

const intentBuffer = 16

// Device reads mouse motion and keys from the terminal
// A terminal cannot move the OS pointer, so Warp sets an offset applied to every later report
type Device struct {
	term *Terminal
	keys *input.KeyTable

	mu      sync.Mutex
	pointer vmath.Point
	offset  vmath.Point

	intents chan input.Intent
}

func newDevice(t *Terminal) *Device {
	return &Device{
		term:    t,
		keys:    input.DefaultKeyTable(),
		intents: make(chan input.Intent, intentBuffer),
	}
}

// SetKeyTable replaces the key bindings
func (d *Device) SetKeyTable(kt *input.KeyTable) {
	d.mu.Lock()
	d.keys = kt
	d.mu.Unlock()
}

// Position returns the pointer in field pixels with the warp offset applied
func (d *Device) Position() vmath.Point {
	d.mu.Lock()
	defer d.mu.Unlock()
	return d.pointer.Add(d.offset)
}

// Warp makes the current pointer report p; later motion is relative to it
func (d *Device) Warp(p vmath.Point) {
	d.mu.Lock()
	d.offset = p.Sub(d.pointer)
	d.mu.Unlock()
}

// Intents delivers operator commands
func (d *Device) Intents() <-chan input.Intent { return d.intents }

// Run polls screen events until ctx is done or the screen is finalized
func (d *Device) Run(ctx context.Context) error {
	screen := d.term.screen
	done := make(chan struct{})
	defer close(done)

	go func() {
		select {
		case <-ctx.Done():
			_ = screen.PostEvent(tcell.NewEventInterrupt(nil))
		case <-done:
		}
	}()

	for {
		ev := screen.PollEvent()
		if ev == nil {
			return nil
		}
		switch ev := ev.(type) {
		case *tcell.EventInterrupt:
			if ctx.Err() != nil {
				return nil
			}
		case *tcell.EventResize:
			screen.Sync()
			d.term.Resize()
		case *tcell.EventMouse:
			x, y := ev.Position()
			d.moveTo(d.term.Viewport().ToField(x, y))
		case *tcell.EventKey:
			d.handleKey(ev)
		}
	}
}

func (d *Device) moveTo(p vmath.Point) {
	d.mu.Lock()
	d.pointer = p
	d.mu.Unlock()
}

func (d *Device) handleKey(ev *tcell.EventKey) {
	d.mu.Lock()
	keys := d.keys
	d.mu.Unlock()

	var (
		in input.Intent
		ok bool
	)
	switch ev.Key() {
	case tcell.KeyRune:
		in, ok = keys.LookupRune(ev.Rune())
	case tcell.KeyEscape:
		in, ok = keys.LookupKey(input.KeyEscape)
	case tcell.KeyCtrlC:
		in, ok = keys.LookupKey(input.KeyCtrlC)
	case tcell.KeyCtrlQ:
		in, ok = keys.LookupKey(input.KeyCtrlQ)
	}
	if !ok {
		return
	}

	select {
	case d.intents <- in:
	default:
		d.term.logger.Warn("Intent dropped, queue full", zap.Stringer("intent", in.Type))
	}
}

var _ input.Device = (*Device)(nil)
