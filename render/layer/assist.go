package layer

import (
	"math"

	"github.com/lixenwraith/reachlab/parameter"
	"github.com/lixenwraith/reachlab/render"
)

// AssistLayer guides a participant who has not returned to the start position for a while
type AssistLayer struct{}

func (AssistLayer) Render(ctx render.Context, buf *render.Buffer) {
	if !ctx.Idle(parameter.AssistDelay.Milliseconds()) {
		return
	}

	// Ring through the pointer, shrinking as it approaches the start position
	if ctx.Params.AssistingCircle && ctx.Distance > 0 {
		buf.Ring(ctx.Center, ctx.Distance, 1, render.RgbAssist)
	}

	if ctx.Params.AssistingFlicker && FlickerOn(ctx.NowMs) {
		buf.FillCircle(ctx.State.Cursor, parameter.FlickerRadius, render.RgbFlicker)
	}
}

// FlickerOn reports the flicker phase: 0 < sin(t/750) < 0.5
func FlickerOn(nowMs int64) bool {
	s := math.Sin(float64(nowMs) / parameter.FlickerPeriod)
	return s > 0 && s < 0.5
}

// PointerLayer marks the raw device position, toggled by the operator
type PointerLayer struct {
	Visible *bool
}

func (l PointerLayer) IsVisible() bool { return l.Visible != nil && *l.Visible }

func (PointerLayer) Render(ctx render.Context, buf *render.Buffer) {
	buf.Ring(ctx.State.Raw, parameter.StartMarkerRadius/2, 1, render.RgbPointer)
}
