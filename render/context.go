package render

import (
	"github.com/lixenwraith/reachlab/engine"
)

// Context provides frame state for layers, passed by value
type Context struct {
	engine.Frame

	// Field dimensions in pixels
	Width  float64
	Height float64

	// Diagnostics enables the verification HUD and forces the cursor visible
	Diagnostics bool
}

// Idle reports whether no target is active and more than delayMs passed since the last resolution
func (c Context) Idle(delayMs int64) bool {
	return c.State.Target == nil && c.NowMs-c.State.LastResolutionMs > delayMs
}
