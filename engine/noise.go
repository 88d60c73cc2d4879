package engine

import (
	"errors"
	"fmt"
	"math"
	"math/rand/v2"

	"gonum.org/v1/gonum/stat/distuv"

	"github.com/lixenwraith/reachlab/parameter"
)

// ErrNoiseNotConverged is returned when rejection sampling exhausts its draw budget
// The std-dev is expected to stay small relative to the 10° cap
var ErrNoiseNotConverged = errors.New("motor noise rejection sampling did not converge")

// MotorNoise samples bounded Gaussian angular jitter
type MotorNoise struct {
	src      rand.Source
	maxDraws int
}

// NewMotorNoise creates a generator reading from src
func NewMotorNoise(src rand.Source) *MotorNoise {
	return &MotorNoise{src: src, maxDraws: parameter.MotorNoiseMaxDraws}
}

// Sample draws from Normal(0, stdDev) until |draw| <= 10°
func (m *MotorNoise) Sample(stdDev float64) (float64, error) {
	if stdDev == 0 {
		return 0, nil
	}

	dist := distuv.Normal{Mu: 0, Sigma: stdDev, Src: m.src}
	for i := 0; i < m.maxDraws; i++ {
		draw := dist.Rand()
		if math.Abs(draw) <= parameter.MotorNoiseCapDeg {
			return draw, nil
		}
	}
	return 0, fmt.Errorf("%w: std-dev %.2f after %d draws", ErrNoiseNotConverged, stdDev, m.maxDraws)
}

// Update resamples st.MotorNoisePerturbationDeg on qualifying frames and keeps it otherwise,
// so one draw persists for the whole active trial
func (m *MotorNoise) Update(params Parameters, st *TrialState, qualifying bool) error {
	if !qualifying {
		return nil
	}
	draw, err := m.Sample(params.MotorNoiseStdDev)
	if err != nil {
		return err
	}
	st.MotorNoisePerturbationDeg = draw
	return nil
}
