package input

import (
	"context"
	"math"
	"math/rand/v2"
	"sync"

	"gonum.org/v1/gonum/stat/distuv"

	"github.com/lixenwraith/reachlab/engine"
	"github.com/lixenwraith/reachlab/parameter"
	"github.com/lixenwraith/reachlab/vmath"
)

// ParticipantConfig tunes the synthetic reacher
type ParticipantConfig struct {
	// Speed is the reach velocity in pixels per frame
	Speed float64
	// Overshoot is how far past the target radius a reach continues
	Overshoot float64
	// LearningRate is the fraction of each observed error corrected on the next reach
	LearningRate float64
	// AimNoiseDeg is the std-dev of per-reach aiming error
	AimNoiseDeg float64
	Seed        uint64
}

// DefaultParticipantConfig reaches in about 12 frames and adapts a fifth of each error
func DefaultParticipantConfig() ParticipantConfig {
	return ParticipantConfig{
		Speed:        25,
		Overshoot:    15,
		LearningRate: 0.2,
		AimNoiseDeg:  1,
		Seed:         1,
	}
}

// Participant is a scripted device that reaches toward each target and adapts to rotation
// It implements a single-rate state-space learner: aim offset -= rate * observed error
type Participant struct {
	cfg   ParticipantConfig
	noise distuv.Normal

	mu       sync.Mutex
	pos      vmath.Point
	offset   float64 // learned aim correction, radians
	aim      float64 // current reach bearing, radians
	radius   float64
	reaching bool
	reaches  int

	intents chan Intent
}

// NewParticipant creates a synthetic participant resting at start
func NewParticipant(start vmath.Point, cfg ParticipantConfig) *Participant {
	src := rand.NewPCG(cfg.Seed, cfg.Seed+1)
	return &Participant{
		cfg:     cfg,
		noise:   distuv.Normal{Mu: 0, Sigma: cfg.AimNoiseDeg, Src: src},
		pos:     start,
		intents: make(chan Intent, 8),
	}
}

// Run blocks until ctx is done
func (p *Participant) Run(ctx context.Context) error {
	<-ctx.Done()
	return nil
}

// Position returns the simulated pointer position
func (p *Participant) Position() vmath.Point {
	p.mu.Lock()
	defer p.mu.Unlock()
	return p.pos
}

// Warp moves the simulated pointer
func (p *Participant) Warp(pos vmath.Point) {
	p.mu.Lock()
	defer p.mu.Unlock()
	p.pos = pos
}

// Intents returns the operator command stream
func (p *Participant) Intents() <-chan Intent { return p.intents }

// Press queues an operator command as if typed on the keyboard
func (p *Participant) Press(in Intent) {
	select {
	case p.intents <- in:
	default:
	}
}

// Reaches returns the number of reaches started
func (p *Participant) Reaches() int {
	p.mu.Lock()
	defer p.mu.Unlock()
	return p.reaches
}

// Step advances the simulated hand by one frame
func (p *Participant) Step(f engine.Frame) {
	p.mu.Lock()
	defer p.mu.Unlock()

	st := f.State
	if st.Target == nil {
		if p.reaching {
			p.learn(st)
			p.reaching = false
		}
		p.pos = f.Center
		return
	}

	if !p.reaching {
		bearing := math.Atan2(st.Target.X-f.Center.X, f.Center.Y-st.Target.Y)
		p.aim = bearing + p.offset + vmath.Radians(p.noise.Rand())
		p.radius = 0
		p.reaching = true
		p.reaches++
	}

	limit := parameter.TargetRadius*parameter.MissTolerance + p.cfg.Overshoot
	p.radius = math.Min(p.radius+p.cfg.Speed, limit)
	p.pos = vmath.FromBearing(f.Center, p.radius, p.aim)
}

// learn corrects the aim offset from the error of the reach that just resolved
func (p *Participant) learn(st *engine.TrialState) {
	if st.Ended {
		return
	}
	p.offset -= p.cfg.LearningRate * st.ErrorAngleRad
}
