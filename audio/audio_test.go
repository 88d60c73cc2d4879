package audio

import (
	"errors"
	"math"
	"sync"
	"testing"

	"github.com/gopxl/beep"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/lixenwraith/reachlab/engine"
	"github.com/lixenwraith/reachlab/parameter"
)

type fakeOutput struct {
	sync.Mutex
	started  beep.Streamer
	startErr error
	closed   bool
}

func (f *fakeOutput) Start(_ beep.SampleRate, s beep.Streamer) error {
	if f.startErr != nil {
		return f.startErr
	}
	f.started = s
	return nil
}

func (f *fakeOutput) Close() { f.closed = true }

func drain(s beep.Streamer) (n int, peak float64) {
	buf := make([][2]float64, 512)
	for {
		k, ok := s.Stream(buf)
		for i := 0; i < k; i++ {
			peak = math.Max(peak, math.Abs(buf[i][0]))
		}
		n += k
		if !ok {
			return n, peak
		}
	}
}

func TestEffectLengths(t *testing.T) {
	cfg := DefaultConfig()
	rate := beep.SampleRate(cfg.SampleRate)

	tests := []struct {
		sound SoundType
		want  int
	}{
		{SoundHit, rate.N(parameter.HitSoundDuration)},
		{SoundNearMiss, rate.N(parameter.NearMissNote1Duration) + rate.N(parameter.NearMissNote2Duration)},
		{SoundMiss, rate.N(parameter.MissSoundDuration)},
	}
	for _, tt := range tests {
		t.Run(tt.sound.String(), func(t *testing.T) {
			n, peak := drain(GetSoundEffect(tt.sound, cfg))
			assert.Equal(t, tt.want, n)
			assert.Greater(t, peak, 0.0)
			assert.LessOrEqual(t, peak, 1.0)
		})
	}
}

func TestZeroVolumeIsSilent(t *testing.T) {
	cfg := DefaultConfig()
	cfg.Volume = 0
	_, peak := drain(CreateMissSound(cfg))
	assert.Zero(t, peak)
}

func TestEnvelopeStartsFromSilence(t *testing.T) {
	rate := beep.SampleRate(parameter.AudioSampleRate)
	s := NewEnvelope(NewOscillator(100, parameter.MissSoundDuration, WaveSquare, rate),
		parameter.MissSoundDuration, parameter.MissSoundAttack, parameter.MissSoundRelease, rate)
	buf := make([][2]float64, 1)
	_, ok := s.Stream(buf)
	require.True(t, ok)
	assert.Zero(t, buf[0][0])
}

func TestSoundFor(t *testing.T) {
	reinforce := engine.DefaultParameters()
	reinforce.FeedbackMode = engine.FeedbackReinforcement

	tests := []struct {
		name   string
		res    engine.TickResult
		params engine.Parameters
		want   SoundType
		ok     bool
	}{
		{"hit", engine.TickResult{Outcome: engine.OutcomeHit}, reinforce, SoundHit, true},
		{"near miss", engine.TickResult{Outcome: engine.OutcomeMiss, NearMiss: true}, reinforce, SoundNearMiss, true},
		{"miss", engine.TickResult{Outcome: engine.OutcomeMiss}, reinforce, SoundMiss, true},
		{"nothing resolved", engine.TickResult{}, reinforce, 0, false},
		{"feedback off", engine.TickResult{Outcome: engine.OutcomeHit}, engine.DefaultParameters(), 0, false},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got, ok := SoundFor(tt.res, tt.params)
			assert.Equal(t, tt.ok, ok)
			assert.Equal(t, tt.want, got)
		})
	}
}

func TestSoundManagerLifecycle(t *testing.T) {
	out := &fakeOutput{}
	sm := NewSoundManager(DefaultConfig(), out, nil)

	// Not yet initialized
	sm.Play(SoundHit)
	assert.Zero(t, sm.Played(SoundHit))

	require.NoError(t, sm.Initialize())
	require.NotNil(t, out.started)

	reinforce := engine.DefaultParameters()
	reinforce.FeedbackMode = engine.FeedbackReinforcement
	sm.Reinforce(engine.TickResult{Outcome: engine.OutcomeHit}, reinforce)
	sm.Reinforce(engine.TickResult{Outcome: engine.OutcomeMiss}, reinforce)
	sm.Reinforce(engine.TickResult{Outcome: engine.OutcomeMiss}, engine.DefaultParameters())

	assert.Equal(t, 1, sm.Played(SoundHit))
	assert.Equal(t, 1, sm.Played(SoundMiss))
	assert.Equal(t, 2, sm.mixer.Len())

	sm.Cleanup()
	assert.True(t, out.closed)
	assert.Zero(t, sm.mixer.Len())
}

func TestSoundManagerDisabled(t *testing.T) {
	cfg := DefaultConfig()
	cfg.Enabled = false
	out := &fakeOutput{}
	sm := NewSoundManager(cfg, out, nil)

	require.NoError(t, sm.Initialize())
	assert.Nil(t, out.started)
	sm.Play(SoundHit)
	assert.Zero(t, sm.Played(SoundHit))
}

func TestSoundManagerStartError(t *testing.T) {
	out := &fakeOutput{startErr: errors.New("no device")}
	sm := NewSoundManager(DefaultConfig(), out, nil)
	err := sm.Initialize()
	require.Error(t, err)
	assert.ErrorIs(t, err, out.startErr)
}
