package layer

import (
	"github.com/lixenwraith/reachlab/engine"
	"github.com/lixenwraith/reachlab/parameter"
	"github.com/lixenwraith/reachlab/render"
)

// TargetLayer draws the active target
type TargetLayer struct{}

func (TargetLayer) Render(ctx render.Context, buf *render.Buffer) {
	if ctx.State.Target == nil {
		return
	}
	buf.FillCircle(*ctx.State.Target, parameter.TargetSize/2, render.RgbTarget)
}

// StartLayer draws the start marker colored by the reinforcement outcome
type StartLayer struct{}

func (StartLayer) Render(ctx render.Context, buf *render.Buffer) {
	buf.FillCircle(ctx.Center, parameter.StartMarkerRadius, FeedbackColor(ctx.State.Feedback))
}

// FeedbackColor maps a reinforcement outcome to the start marker color
func FeedbackColor(f engine.FeedbackColor) render.RGB {
	switch f {
	case engine.FeedbackHit:
		return render.RgbGreen
	case engine.FeedbackMiss:
		return render.RgbRed
	case engine.FeedbackNearMiss:
		return render.RgbYellow
	default:
		return render.RgbWhite
	}
}

// FeedbackLayer shows the previous attempt as a dotted trail or an end-position marker
type FeedbackLayer struct{}

func (FeedbackLayer) Render(ctx render.Context, buf *render.Buffer) {
	trail := ctx.State.LastAttemptTrajectory
	if len(trail) == 0 {
		return
	}
	switch ctx.Params.FeedbackMode {
	case engine.FeedbackTrajectory:
		for _, p := range trail {
			buf.FillCircle(p, parameter.TrailDotRadius, render.RgbTrail)
		}
	case engine.FeedbackEndPosition:
		buf.FillCircle(trail[len(trail)-1], parameter.EndMarkerRadius, render.RgbEndMarker)
	}
}

// CursorLayer draws the perturbed cursor when the mask allows it
type CursorLayer struct{}

func (CursorLayer) Render(ctx render.Context, buf *render.Buffer) {
	if !CursorVisible(ctx) {
		return
	}
	buf.FillCircle(ctx.State.Cursor, parameter.CircleSize/2, render.RgbCursor)
}

// CursorVisible reports whether the cursor is drawn this frame
// Visibility is judged on the raw distance from the start position
func CursorVisible(ctx render.Context) bool {
	switch {
	case ctx.Diagnostics:
		return true
	case ctx.Distance <= ctx.Params.MaskRadius:
		return true
	case ctx.Params.LimitedMask && ctx.Distance > parameter.OuterRadius:
		return true
	}
	return false
}
