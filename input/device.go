package input

import (
	"context"

	"github.com/lixenwraith/reachlab/engine"
	"github.com/lixenwraith/reachlab/vmath"
)

// Device is the pointer and keyboard the participant and operator use
type Device interface {
	// Run pumps native events until ctx is done or the device shuts down
	Run(ctx context.Context) error

	// Position returns the latest raw pointer position in field pixels
	Position() vmath.Point

	// Warp moves the pointer, used to snap it onto the start position
	Warp(p vmath.Point)

	// Intents delivers operator commands; it is never closed
	Intents() <-chan Intent
}

// Stepper is implemented by synthetic devices that move in response to the displayed frame
type Stepper interface {
	Step(f engine.Frame)
}
