// Package terminal renders the reaching task on a character terminal through tcell
// and reads the mouse and keyboard from it
package terminal

import (
	"fmt"
	"sync"

	"github.com/gdamore/tcell/v2"
	"go.uber.org/zap"
)

// Terminal owns the tcell screen and the field-to-cell mapping shared by Surface and Device
type Terminal struct {
	screen tcell.Screen
	logger *zap.Logger

	fieldWidth, fieldHeight float64

	mu sync.RWMutex
	vp Viewport

	surface *Surface
	device  *Device

	closeOnce sync.Once
}

// Open initializes the controlling terminal with mouse motion reporting
func Open(fieldWidth, fieldHeight float64, logger *zap.Logger) (*Terminal, error) {
	screen, err := tcell.NewScreen()
	if err != nil {
		return nil, fmt.Errorf("failed to create screen: %w", err)
	}
	if err := screen.Init(); err != nil {
		return nil, fmt.Errorf("failed to initialize screen: %w", err)
	}
	return New(screen, fieldWidth, fieldHeight, logger), nil
}

// New wraps an initialized screen
func New(screen tcell.Screen, fieldWidth, fieldHeight float64, logger *zap.Logger) *Terminal {
	if logger == nil {
		logger = zap.NewNop()
	}
	screen.EnableMouse(tcell.MouseMotionEvents)
	screen.HideCursor()

	t := &Terminal{
		screen:      screen,
		logger:      logger,
		fieldWidth:  fieldWidth,
		fieldHeight: fieldHeight,
	}
	t.surface = &Surface{term: t}
	t.device = newDevice(t)
	t.Resize()
	return t
}

// Close restores the terminal; safe to call more than once
func (t *Terminal) Close() {
	t.closeOnce.Do(func() {
		t.screen.DisableMouse()
		t.screen.Fini()
	})
}

// Screen exposes the underlying tcell screen
func (t *Terminal) Screen() tcell.Screen { return t.screen }

// Surface returns the render target
func (t *Terminal) Surface() *Surface { return t.surface }

// Device returns the input device
func (t *Terminal) Device() *Device { return t.device }

// Viewport returns the current field-to-cell mapping
func (t *Terminal) Viewport() Viewport {
	t.mu.RLock()
	defer t.mu.RUnlock()
	return t.vp
}

// Resize recomputes the viewport from the screen size
func (t *Terminal) Resize() {
	cols, rows := t.screen.Size()
	vp := NewViewport(t.fieldWidth, t.fieldHeight, cols, rows)

	t.mu.Lock()
	t.vp = vp
	t.mu.Unlock()

	t.logger.Debug("Viewport resized",
		zap.Int("cols", cols),
		zap.Int("rows", rows),
		zap.Float64("cell_width", vp.CellWidth))
}
