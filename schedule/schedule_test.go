package schedule

import (
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/lixenwraith/reachlab/engine"
)

// params drives the schedule to attempts and returns the merged parameter set
func params(s *Table, attempts int, ev engine.Event) engine.Parameters {
	s.Update(attempts, ev)
	return engine.DefaultParameters().Overlay(s.CurrentParameters())
}

// walk feeds every count from 0 through last, as a monotonic session would
func walk(s *Table, last int) engine.Parameters {
	var p engine.Parameters
	for a := 0; a <= last; a++ {
		p = params(s, a, engine.EventNone)
	}
	return p
}

func TestBaselineTable(t *testing.T) {
	tests := []struct {
		attempts int
		mode     engine.PerturbationMode
		running  bool
	}{
		{0, engine.PerturbationOff, true},
		{19, engine.PerturbationOff, true},
		{20, engine.PerturbationSudden, true},
		{79, engine.PerturbationSudden, true},
		{80, engine.PerturbationOff, true},
		{120, engine.PerturbationGradual, true},
		{180, engine.PerturbationOff, true},
		{200, engine.PerturbationOff, false},
	}
	for _, tt := range tests {
		p := walk(Baseline(), tt.attempts)
		assert.Equal(t, tt.mode, p.PerturbationMode, "attempts=%d", tt.attempts)
		assert.Equal(t, tt.running, p.Running, "attempts=%d", tt.attempts)
		assert.Equal(t, 30.0, p.MaxPerturbationDeg)
		assert.Equal(t, engine.TargetSequence, p.TargetMode)
	}
}

func TestFeedbackTable(t *testing.T) {
	s := Feedback()

	p := walk(s, 0)
	assert.Equal(t, 60.0, p.SequenceTargetDeg)
	assert.Equal(t, engine.FeedbackNone, p.FeedbackMode)
	assert.Equal(t, -30.0, p.MaxPerturbationDeg, "falls back to default")
	assert.True(t, p.AssistingCircle)

	for a := 1; a <= 100; a++ {
		p = params(s, a, engine.EventNone)
	}
	assert.Equal(t, 105.0, p.SequenceTargetDeg)
	assert.Equal(t, engine.FeedbackTrajectory, p.FeedbackMode)
	assert.Equal(t, 0.0, p.MaskRadius)

	for a := 101; a <= 320; a++ {
		p = params(s, a, engine.EventNone)
	}
	assert.Equal(t, -15.0, p.SequenceTargetDeg)
	assert.Equal(t, engine.FeedbackReinforcement, p.FeedbackMode)
	assert.Equal(t, engine.PerturbationGradual, p.PerturbationMode)

	for a := 321; a <= 400; a++ {
		p = params(s, a, engine.EventNone)
	}
	assert.False(t, p.Running)
}

func TestMotorNoiseTable(t *testing.T) {
	tests := []struct {
		attempts int
		noise    float64
		target   float64
	}{
		{0, 0, 25},
		{100, 2, -80},
		{200, 10, -35},
		{300, 5, 10},
	}
	for _, tt := range tests {
		p := walk(MotorNoise(), tt.attempts)
		assert.Equal(t, tt.noise, p.MotorNoiseStdDev, "attempts=%d", tt.attempts)
		assert.Equal(t, tt.target, p.SequenceTargetDeg, "attempts=%d", tt.attempts)
		assert.Equal(t, 0.0, p.MaskRadius)
		assert.Equal(t, engine.FeedbackReinforcement, p.FeedbackMode)
	}
}

func TestInterferenceTable(t *testing.T) {
	p := walk(Interference(), 20)
	assert.Equal(t, engine.PerturbationSudden, p.PerturbationMode)
	assert.Equal(t, 30.0, p.MaxPerturbationDeg)

	p = walk(Interference(), 80)
	assert.Equal(t, engine.PerturbationSudden, p.PerturbationMode)
	assert.Equal(t, -30.0, p.MaxPerturbationDeg)

	p = walk(Interference(), 140)
	assert.Equal(t, engine.PerturbationOff, p.PerturbationMode)

	p = walk(Interference(), 200)
	assert.False(t, p.Running)
}

func TestTestTableFeedbackCycle(t *testing.T) {
	want := map[int]engine.FeedbackMode{
		0: engine.FeedbackNone,
		1: engine.FeedbackTrajectory,
		2: engine.FeedbackNone,
		3: engine.FeedbackReinforcement,
		5: engine.FeedbackReinforcement,
		6: engine.FeedbackNone,
		7: engine.FeedbackEndPosition,
		9: engine.FeedbackNone,
	}
	s := Test()
	for a := 0; a <= 9; a++ {
		p := params(s, a, engine.EventNone)
		if m, ok := want[a]; ok {
			assert.Equal(t, m, p.FeedbackMode, "attempts=%d", a)
		}
	}
}

func TestTestTableLateRegimes(t *testing.T) {
	p := walk(Test(), 50)
	assert.Equal(t, engine.PerturbationRandom, p.PerturbationMode)
	assert.Equal(t, 2.0, p.MotorNoiseStdDev)
	assert.Equal(t, -100.0, p.SequenceTargetDeg)

	p = walk(Test(), 90)
	assert.Equal(t, engine.PerturbationSudden, p.PerturbationMode)
	assert.Equal(t, 15.0, p.MaxPerturbationDeg)
	assert.Equal(t, 10.0, p.MotorNoiseStdDev)
	assert.True(t, p.Running)

	p = walk(Test(), 100)
	assert.False(t, p.Running)
}

func TestSkippedThresholdNeverApplies(t *testing.T) {
	s := Baseline()
	params(s, 18, engine.EventNone)
	params(s, 19, engine.EventNone)
	p := params(s, 21, engine.EventNone)

	assert.Equal(t, engine.PerturbationOff, p.PerturbationMode)
}

func TestRevisitedThresholdDoesNotRefire(t *testing.T) {
	s := Baseline()
	walk(s, 19)
	p := params(s, 20, engine.EventNone)
	require.Equal(t, engine.PerturbationSudden, p.PerturbationMode)

	// Operator ends the block, then an outlier discard walks the count back through 19 to 20
	p = params(s, 20, engine.EventEndPerturbation)
	require.Equal(t, engine.PerturbationOff, p.PerturbationMode)
	params(s, 19, engine.EventNone)
	p = params(s, 20, engine.EventNone)

	assert.Equal(t, engine.PerturbationOff, p.PerturbationMode)
}

func TestManualEvents(t *testing.T) {
	tests := []struct {
		name  string
		ev    engine.Event
		check func(t *testing.T, p engine.Parameters)
	}{
		{"escape stops", engine.EventEscape, func(t *testing.T, p engine.Parameters) {
			assert.False(t, p.Running)
		}},
		{"test perturbation forces sudden", engine.EventTestPerturbation, func(t *testing.T, p engine.Parameters) {
			assert.Equal(t, engine.PerturbationSudden, p.PerturbationMode)
		}},
		{"end perturbation forces off", engine.EventEndPerturbation, func(t *testing.T, p engine.Parameters) {
			assert.Equal(t, engine.PerturbationOff, p.PerturbationMode)
		}},
		{"mask override", engine.EventMaskRadiusOverride, func(t *testing.T, p engine.Parameters) {
			assert.Equal(t, 400.0, p.MaskRadius)
		}},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			s := MotorNoise()
			walk(s, 30)
			tt.check(t, params(s, 31, tt.ev))
		})
	}
}

func TestPersistentEventOverridesThresholds(t *testing.T) {
	s := Baseline()
	walk(s, 70)
	params(s, 71, engine.EventTestPerturbation)

	var p engine.Parameters
	for a := 72; a <= 85; a++ {
		p = params(s, a, engine.EventTestPerturbation)
	}
	assert.Equal(t, engine.PerturbationSudden, p.PerturbationMode, "re-delivered event wins over the 80 rule")
}

func TestResetRearmsRules(t *testing.T) {
	s := Baseline()
	walk(s, 20)
	s.Reset()

	p := engine.DefaultParameters().Overlay(s.CurrentParameters())
	assert.Equal(t, engine.PerturbationOff, p.PerturbationMode)
	p = params(s, 20, engine.EventNone)
	assert.Equal(t, engine.PerturbationSudden, p.PerturbationMode)
}

func TestRegistry(t *testing.T) {
	assert.Equal(t, []string{"baseline", "feedback", "interference", "motor_noise", "test"}, Names())

	for _, name := range []string{"MotorNoise", "motor_noise", "motor_noise_script", "Motor-Noise"} {
		s, e, err := New(name)
		require.NoError(t, err, name)
		assert.Equal(t, NameMotorNoise, s.Name())
		assert.Equal(t, "motor_noise_script", e.Dir)
	}

	_, _, err := New("nonexistent")
	assert.ErrorIs(t, err, ErrUnknownSchedule)
}

func TestFactoriesReturnIndependentInstances(t *testing.T) {
	a, _, err := New(NameBaseline)
	require.NoError(t, err)
	b, _, err := New(NameBaseline)
	require.NoError(t, err)

	walk(a, 20)
	p := engine.DefaultParameters().Overlay(b.CurrentParameters())
	assert.Equal(t, engine.PerturbationOff, p.PerturbationMode)
}

const pilotYAML = `
name: pilot
description: short pilot run
initial:
  target_mode: sequence
  sequence_target: 45
  feedback: reinforcement
  perturbation_mode: "off"
rules:
  - at: 5
    set: {perturbation_mode: gradual, max_perturbation: -20}
  - at: 10
    set: {perturbation_mode: "False", mask_radius: 0}
  - at: 15
    set: {running: false}
`

func TestParseYAML(t *testing.T) {
	e, err := Parse([]byte(pilotYAML))
	require.NoError(t, err)
	assert.Equal(t, "pilot", e.Name)
	assert.Equal(t, "pilot_script", e.Dir)

	s := e.Factory()
	p := walk(s, 0)
	assert.Equal(t, engine.TargetSequence, p.TargetMode)
	assert.Equal(t, 45.0, p.SequenceTargetDeg)
	assert.Equal(t, engine.FeedbackReinforcement, p.FeedbackMode)

	p = walk(e.Factory(), 5)
	assert.Equal(t, engine.PerturbationGradual, p.PerturbationMode)
	assert.Equal(t, -20.0, p.MaxPerturbationDeg)

	p = walk(e.Factory(), 10)
	assert.Equal(t, engine.PerturbationOff, p.PerturbationMode)
	assert.Equal(t, 0.0, p.MaskRadius)

	p = walk(e.Factory(), 15)
	assert.False(t, p.Running)
}

func TestParseYAMLErrors(t *testing.T) {
	tests := map[string]string{
		"missing name":   "rules: []\n",
		"bad mode":       "name: x\nrules:\n  - at: 1\n    set: {perturbation_mode: sideways}\n",
		"negative at":    "name: x\nrules:\n  - at: -1\n    set: {running: false}\n",
		"unknown field":  "name: x\nrulez: []\n",
		"negative noise": "name: x\ninitial: {motor_noise: -1}\n",
	}
	for name, doc := range tests {
		t.Run(name, func(t *testing.T) {
			_, err := Parse([]byte(doc))
			assert.Error(t, err)
		})
	}
}

func TestLoadFile(t *testing.T) {
	path := filepath.Join(t.TempDir(), "pilot.yaml")
	require.NoError(t, os.WriteFile(path, []byte(pilotYAML), 0o644))

	e, err := LoadFile(path)
	require.NoError(t, err)
	assert.Equal(t, "pilot", e.Name)

	_, err = LoadFile(filepath.Join(t.TempDir(), "missing.yaml"))
	assert.Error(t, err)
}
