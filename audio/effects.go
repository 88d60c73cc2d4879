package audio

import (
	"math"
	"math/rand/v2"
	"time"

	"github.com/gopxl/beep"
	"github.com/gopxl/beep/effects"

	"github.com/lixenwraith/reachlab/parameter"
)

// WaveType defines oscillator wave shapes
type WaveType int

const (
	WaveSine WaveType = iota
	WaveSquare
	WaveSaw
	WaveNoise
)

// oscillator generates raw audio waves
type oscillator struct {
	freq     float64
	phase    float64
	duration int
	position int
	wave     WaveType
	rate     beep.SampleRate
}

// NewOscillator creates a fixed-length oscillator
func NewOscillator(freq float64, duration time.Duration, wave WaveType, rate beep.SampleRate) beep.Streamer {
	return &oscillator{
		freq:     freq,
		duration: rate.N(duration),
		wave:     wave,
		rate:     rate,
	}
}

func (o *oscillator) Stream(samples [][2]float64) (n int, ok bool) {
	for i := range samples {
		if o.position >= o.duration {
			return i, i > 0
		}

		var val float64
		switch o.wave {
		case WaveSine:
			val = math.Sin(2 * math.Pi * o.phase)
		case WaveSquare:
			val = -1.0
			if o.phase < 0.5 {
				val = 1.0
			}
		case WaveSaw:
			val = 2.0 * (o.phase - 0.5)
		case WaveNoise:
			val = rand.Float64()*2 - 1
		}

		samples[i][0] = val
		samples[i][1] = val

		o.phase += o.freq / float64(o.rate)
		o.phase -= math.Floor(o.phase)
		o.position++
	}
	return len(samples), true
}

func (o *oscillator) Err() error { return nil }

// envelope applies linear attack and release to a stream
type envelope struct {
	streamer       beep.Streamer
	position       int
	attackSamples  int
	releaseSamples int
	releaseStart   int
	totalSamples   int
}

// NewEnvelope shapes s over duration
func NewEnvelope(s beep.Streamer, duration, attack, release time.Duration, rate beep.SampleRate) beep.Streamer {
	total := rate.N(duration)
	att := rate.N(attack)
	rel := rate.N(release)
	return &envelope{
		streamer:       s,
		attackSamples:  att,
		releaseSamples: rel,
		releaseStart:   max(total-rel, att),
		totalSamples:   total,
	}
}

func (e *envelope) Stream(samples [][2]float64) (n int, ok bool) {
	n, ok = e.streamer.Stream(samples)
	for i := 0; i < n; i++ {
		if e.position >= e.totalSamples {
			return i, i > 0
		}

		vol := 1.0
		if e.position < e.attackSamples {
			vol = float64(e.position) / float64(e.attackSamples)
		}
		if e.position >= e.releaseStart && e.releaseSamples > 0 {
			vol = max(0, float64(e.totalSamples-e.position)/float64(e.releaseSamples))
		}

		samples[i][0] *= vol
		samples[i][1] *= vol
		e.position++
	}
	return n, ok
}

func (e *envelope) Err() error { return e.streamer.Err() }

// newVolume scales linearly; log2(0) is -Inf so zero maps to silent
func newVolume(s beep.Streamer, vol float64) beep.Streamer {
	if vol <= 0 {
		return &effects.Volume{Streamer: s, Base: 2, Volume: 0, Silent: true}
	}
	return &effects.Volume{Streamer: s, Base: 2, Volume: math.Log2(vol)}
}

// CreateHitSound is a bell: fundamental plus a faster-decaying octave
func CreateHitSound(cfg Config) beep.Streamer {
	rate := beep.SampleRate(cfg.SampleRate)

	fund := NewOscillator(parameter.HitSoundFundamental, parameter.HitSoundDuration, WaveSine, rate)
	fundShaped := NewEnvelope(fund, parameter.HitSoundDuration, parameter.HitSoundAttack, parameter.HitSoundFundamentalRelease, rate)

	over := NewOscillator(parameter.HitSoundFundamental*2, parameter.HitSoundDuration, WaveSine, rate)
	overShaped := NewEnvelope(over, parameter.HitSoundDuration, parameter.HitSoundAttack, parameter.HitSoundOvertoneRelease, rate)

	mixed := beep.Mix(
		newVolume(fundShaped, 0.7),
		newVolume(overShaped, 0.3),
	)
	return newVolume(mixed, cfg.Volume)
}

// CreateNearMissSound is a rising two-note chirp
func CreateNearMissSound(cfg Config) beep.Streamer {
	rate := beep.SampleRate(cfg.SampleRate)

	n1 := NewOscillator(parameter.NearMissNote1Freq, parameter.NearMissNote1Duration, WaveSquare, rate)
	n1Shaped := NewEnvelope(n1, parameter.NearMissNote1Duration, parameter.NearMissAttack, parameter.NearMissNote1Release, rate)

	n2 := NewOscillator(parameter.NearMissNote2Freq, parameter.NearMissNote2Duration, WaveSquare, rate)
	n2Shaped := NewEnvelope(n2, parameter.NearMissNote2Duration, parameter.NearMissAttack, parameter.NearMissNote2Release, rate)

	// Square waves are loud next to the bell
	return newVolume(beep.Seq(n1Shaped, n2Shaped), 0.4*cfg.Volume)
}

// CreateMissSound is a short low saw buzz
func CreateMissSound(cfg Config) beep.Streamer {
	rate := beep.SampleRate(cfg.SampleRate)

	osc := NewOscillator(parameter.MissSoundFreq, parameter.MissSoundDuration, WaveSaw, rate)
	shaped := NewEnvelope(osc, parameter.MissSoundDuration, parameter.MissSoundAttack, parameter.MissSoundRelease, rate)
	return newVolume(shaped, cfg.Volume)
}

// GetSoundEffect returns a fresh streamer for the sound type
func GetSoundEffect(st SoundType, cfg Config) beep.Streamer {
	switch st {
	case SoundHit:
		return CreateHitSound(cfg)
	case SoundNearMiss:
		return CreateNearMissSound(cfg)
	case SoundMiss:
		return CreateMissSound(cfg)
	default:
		return nil
	}
}
