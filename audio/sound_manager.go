// Package audio plays reinforcement tones for trial outcomes
package audio

import (
	"fmt"
	"sync"

	"github.com/gopxl/beep"
	"github.com/gopxl/beep/speaker"
	"go.uber.org/zap"

	"github.com/lixenwraith/reachlab/engine"
	"github.com/lixenwraith/reachlab/parameter"
)

// SoundType represents the reinforcement tones
type SoundType int

const (
	SoundHit      SoundType = iota // Bell
	SoundNearMiss                  // Rising chirp
	SoundMiss                      // Buzz
	soundTypeCount
)

func (s SoundType) String() string {
	switch s {
	case SoundHit:
		return "hit"
	case SoundNearMiss:
		return "near_miss"
	case SoundMiss:
		return "miss"
	default:
		return "unknown"
	}
}

// Config holds audio settings
type Config struct {
	Enabled    bool
	Volume     float64 // 0.0 to 1.0
	SampleRate int
}

// DefaultConfig returns audio enabled at the default volume
func DefaultConfig() Config {
	return Config{
		Enabled:    true,
		Volume:     parameter.AudioDefaultVolume,
		SampleRate: parameter.AudioSampleRate,
	}
}

// Output is where the mixer is played
type Output interface {
	Start(rate beep.SampleRate, s beep.Streamer) error
	Lock()
	Unlock()
	Close()
}

// SpeakerOutput plays through the system speaker
type SpeakerOutput struct{}

func (SpeakerOutput) Start(rate beep.SampleRate, s beep.Streamer) error {
	if err := speaker.Init(rate, rate.N(parameter.AudioBufferDuration)); err != nil {
		return err
	}
	speaker.Play(s)
	return nil
}

func (SpeakerOutput) Lock()   { speaker.Lock() }
func (SpeakerOutput) Unlock() { speaker.Unlock() }
func (SpeakerOutput) Close()  { speaker.Close() }

// SoundManager manages reinforcement audio
type SoundManager struct {
	mu          sync.Mutex
	cfg         Config
	out         Output
	mixer       *beep.Mixer
	logger      *zap.Logger
	initialized bool
	played      [soundTypeCount]int
}

// NewSoundManager creates a sound manager writing to out
func NewSoundManager(cfg Config, out Output, logger *zap.Logger) *SoundManager {
	if logger == nil {
		logger = zap.NewNop()
	}
	return &SoundManager{
		cfg:    cfg,
		out:    out,
		mixer:  &beep.Mixer{},
		logger: logger,
	}
}

// Initialize starts the output; a disabled manager stays silent
func (sm *SoundManager) Initialize() error {
	sm.mu.Lock()
	defer sm.mu.Unlock()

	if sm.initialized || !sm.cfg.Enabled {
		return nil
	}
	if err := sm.out.Start(beep.SampleRate(sm.cfg.SampleRate), sm.mixer); err != nil {
		return fmt.Errorf("failed to start audio output: %w", err)
	}
	sm.initialized = true
	sm.logger.Info("Audio initialized",
		zap.Int("sample_rate", sm.cfg.SampleRate),
		zap.Float64("volume", sm.cfg.Volume))
	return nil
}

// Cleanup stops all sounds and closes the output
func (sm *SoundManager) Cleanup() {
	sm.mu.Lock()
	defer sm.mu.Unlock()

	if !sm.initialized {
		return
	}
	sm.out.Lock()
	sm.mixer.Clear()
	sm.out.Unlock()
	sm.out.Close()
	sm.initialized = false
}

// Play queues a tone
func (sm *SoundManager) Play(st SoundType) {
	sm.mu.Lock()
	defer sm.mu.Unlock()

	if !sm.initialized {
		return
	}
	s := GetSoundEffect(st, sm.cfg)
	if s == nil {
		return
	}
	sm.out.Lock()
	sm.mixer.Add(s)
	sm.out.Unlock()
	sm.played[st]++
}

// Played returns how many times st has been queued
func (sm *SoundManager) Played(st SoundType) int {
	sm.mu.Lock()
	defer sm.mu.Unlock()
	return sm.played[st]
}

// Reinforce plays the tone for a resolved trial when feedback mode is Reinforcement
func (sm *SoundManager) Reinforce(res engine.TickResult, params engine.Parameters) {
	if st, ok := SoundFor(res, params); ok {
		sm.Play(st)
	}
}

// SoundFor maps a tick outcome to its tone
func SoundFor(res engine.TickResult, params engine.Parameters) (SoundType, bool) {
	if params.FeedbackMode != engine.FeedbackReinforcement {
		return 0, false
	}
	switch {
	case res.Outcome == engine.OutcomeHit:
		return SoundHit, true
	case res.Outcome == engine.OutcomeMiss && res.NearMiss:
		return SoundNearMiss, true
	case res.Outcome == engine.OutcomeMiss:
		return SoundMiss, true
	default:
		return 0, false
	}
}
