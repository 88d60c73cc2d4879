package input

import (
	"context"
	"math"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/lixenwraith/reachlab/engine"
	"github.com/lixenwraith/reachlab/vmath"
)

func TestDefaultKeyTable(t *testing.T) {
	kt := DefaultKeyTable()

	tests := []struct {
		r    rune
		want Intent
	}{
		{'4', EventIntent(engine.EventTestPerturbation)},
		{'5', EventIntent(engine.EventEndPerturbation)},
		{'6', EventIntent(engine.EventMaskRadiusOverride)},
		{'s', Intent{Type: IntentScreenshot}},
		{'m', Intent{Type: IntentTogglePointer}},
	}
	for _, tt := range tests {
		got, ok := kt.LookupRune(tt.r)
		require.True(t, ok, string(tt.r))
		assert.Equal(t, tt.want, got, string(tt.r))
	}

	_, ok := kt.LookupRune('x')
	assert.False(t, ok)

	for _, k := range []SpecialKey{KeyEscape, KeyCtrlC, KeyCtrlQ} {
		got, ok := kt.LookupKey(k)
		require.True(t, ok)
		assert.Equal(t, EventIntent(engine.EventEscape), got)
	}
}

type fixedSchedule struct{ partial engine.PartialParameters }

func (fixedSchedule) Update(int, engine.Event)                      {}
func (s fixedSchedule) CurrentParameters() engine.PartialParameters { return s.partial }

func runParticipant(t *testing.T, partial engine.PartialParameters, frames int) (*engine.Engine, []engine.Record) {
	t.Helper()
	center := vmath.Pt(500, 400)
	clock := engine.NewMockTimeProvider(time.Unix(0, 0))
	e := engine.New(engine.Config{Center: center, Clock: clock, Seed: 3}, fixedSchedule{partial: partial})
	p := NewParticipant(center, DefaultParticipantConfig())

	var records []engine.Record
	for i := 0; i < frames; i++ {
		p.Step(e.Frame())
		clock.Advance(16 * time.Millisecond)
		res, err := e.Tick(p.Position())
		require.NoError(t, err)
		if res.Record != nil {
			records = append(records, *res.Record)
		}
		if res.Warp {
			p.Warp(center)
		}
	}
	return e, records
}

func TestParticipantHitsUnperturbedTargets(t *testing.T) {
	partial := engine.PartialParameters{
		TargetMode:        engine.Ptr(engine.TargetSequence),
		SequenceTargetDeg: engine.Ptr(60.0),
	}
	e, records := runParticipant(t, partial, 300)

	require.NotEmpty(t, records)
	assert.Equal(t, e.State().Attempts, len(records))
	for _, r := range records {
		assert.Less(t, math.Abs(vmath.Degrees(r.ErrorAngleRad)), 5.0)
	}
	assert.Greater(t, e.State().Score, float64(len(records))/2)
}

func TestParticipantAdaptsToRotation(t *testing.T) {
	partial := engine.PartialParameters{
		TargetMode:         engine.Ptr(engine.TargetSequence),
		PerturbationMode:   engine.Ptr(engine.PerturbationSudden),
		MaxPerturbationDeg: engine.Ptr(30.0),
	}
	_, records := runParticipant(t, partial, 900)

	require.Greater(t, len(records), 30)
	first := math.Abs(vmath.Degrees(records[0].ErrorAngleRad))
	last := math.Abs(vmath.Degrees(records[len(records)-1].ErrorAngleRad))
	assert.InDelta(t, 30, first, 5, "first reach is fully rotated")
	assert.Less(t, last, 5.0, "error decays with practice")
}

func TestParticipantDevice(t *testing.T) {
	p := NewParticipant(vmath.Pt(1, 2), DefaultParticipantConfig())
	assert.Equal(t, vmath.Pt(1, 2), p.Position())

	p.Warp(vmath.Pt(3, 4))
	assert.Equal(t, vmath.Pt(3, 4), p.Position())

	p.Press(EventIntent(engine.EventTestPerturbation))
	select {
	case in := <-p.Intents():
		assert.Equal(t, engine.EventTestPerturbation, in.Event)
	default:
		t.Fatal("intent not delivered")
	}

	ctx, cancel := context.WithCancel(context.Background())
	done := make(chan error, 1)
	go func() { done <- p.Run(ctx) }()
	cancel()
	assert.NoError(t, <-done)
}
