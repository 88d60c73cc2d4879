package engine

import (
	"math"
	"math/rand/v2"

	"github.com/lixenwraith/reachlab/parameter"
)

// PerturbationPolicy computes the rotational perturbation angle each frame
type PerturbationPolicy struct {
	rng *rand.Rand
}

// NewPerturbationPolicy creates a policy drawing random angles from rng
func NewPerturbationPolicy(rng *rand.Rand) *PerturbationPolicy {
	return &PerturbationPolicy{rng: rng}
}

// Update sets st.PerturbationAngleDeg for the frame and advances the gradual counters
// qualifying is true when no target is active and the pointer sits at the start position;
// it is evaluated every frame, so idling at the start advances gradual and resamples random repeatedly
func (p *PerturbationPolicy) Update(params Parameters, st *TrialState, qualifying bool) {
	switch params.PerturbationMode {
	case PerturbationOff:
		st.PerturbationAngleDeg = 0
		st.GradualStep = 0
		st.GradualAttempts = 1

	case PerturbationSudden:
		st.PerturbationAngleDeg = params.MaxPerturbationDeg

	case PerturbationGradual:
		if qualifying {
			st.GradualAttempts++
		}
		st.GradualStep = GradualStep(st.GradualAttempts)
		st.PerturbationAngleDeg = float64(st.GradualStep) * params.MaxPerturbationDeg / parameter.GradualSteps

	case PerturbationRandom:
		if qualifying {
			st.PerturbationAngleDeg = p.randomAngle()
		}
	}
}

// GradualStep returns min(ceil(attempts/3), 10)
func GradualStep(attempts int) int {
	step := int(math.Ceil(float64(attempts) / parameter.GradualFramesPerStep))
	if step > parameter.GradualSteps {
		step = parameter.GradualSteps
	}
	return step
}

// randomAngle draws uniformly from [-45°, +45°)
func (p *PerturbationPolicy) randomAngle() float64 {
	return (p.rng.Float64()*2 - 1) * parameter.RandomPerturbationDeg
}
