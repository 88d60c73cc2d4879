package layer

import (
	"fmt"
	"strconv"

	"github.com/lixenwraith/reachlab/parameter"
	"github.com/lixenwraith/reachlab/render"
	"github.com/lixenwraith/reachlab/vmath"
)

// HUDLayer shows the attempt count, the score and the time-limit warning
type HUDLayer struct{}

func (HUDLayer) Render(ctx render.Context, buf *render.Buffer) {
	st := ctx.State
	buf.Text(vmath.Pt(parameter.HUDMargin, parameter.HUDAttemptsY),
		fmt.Sprintf("Attempts: %d", st.Attempts), parameter.HUDTextSize, render.AlignLeft, render.RgbText)
	buf.Text(vmath.Pt(ctx.Width/2-parameter.HUDScoreOffsetX, parameter.HUDScoreY),
		"SCORE: "+FormatScore(st.Score), parameter.HUDScoreSize, render.AlignLeft, render.RgbText)

	if st.MoveFaster {
		buf.Text(ctx.Center, parameter.MoveFasterText, parameter.HUDTextSize, render.AlignCenter, render.RgbWarning)
	}
}

// FormatScore prints whole scores without a fractional part
func FormatScore(score float64) string {
	return strconv.FormatFloat(score, 'f', -1, 64)
}

// DiagnosticsLayer lists internal values for verifying a session setup
type DiagnosticsLayer struct{}

func (DiagnosticsLayer) Render(ctx render.Context, buf *render.Buffer) {
	if !ctx.Diagnostics {
		return
	}
	for i, line := range DiagnosticLines(ctx) {
		if line == "" {
			continue
		}
		y := parameter.HUDMargin + float64(i)*parameter.HUDLineHeight
		buf.Text(vmath.Pt(parameter.HUDMargin, y), line, parameter.HUDTextSize, render.AlignLeft, render.RgbText)
	}
}

// DiagnosticLines returns one entry per HUD line; index 1 is reserved for the attempt counter
// and target_pos is blank while no target is active
func DiagnosticLines(ctx render.Context) []string {
	st := ctx.State
	target := ""
	if st.Target != nil {
		target = fmt.Sprintf("target_pos: %.2f,%.2f", st.Target.X, st.Target.Y)
	}
	return []string{
		"Score: " + FormatScore(st.Score),
		"",
		fmt.Sprintf("Mouse_Ang: %.0f", vmath.Degrees(ctx.MouseAngle)),
		fmt.Sprintf("Total_perturbation: %.2f", vmath.Degrees(st.TotalPerturbationRad)),
		fmt.Sprintf("Grad_step: %d", st.GradualStep),
		fmt.Sprintf("Perturbation: %s", ctx.Params.PerturbationMode.Label()),
		fmt.Sprintf("perturbation angle: %g", st.PerturbationAngleDeg),
		fmt.Sprintf("motor noise: %.2f", st.MotorNoisePerturbationDeg),
		fmt.Sprintf("error_angle: %.2f", vmath.Degrees(st.ErrorAngleRad)),
		fmt.Sprintf("target_angle: %.2f", ctx.Params.SequenceTargetDeg),
		fmt.Sprintf("circle_pos: %.2f,%.2f", st.Cursor.X, st.Cursor.Y),
		target,
		fmt.Sprintf("Grad_attempts: %d", st.GradualAttempts),
	}
}
