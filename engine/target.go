package engine

import (
	"math"
	"math/rand/v2"

	"github.com/lixenwraith/reachlab/parameter"
	"github.com/lixenwraith/reachlab/vmath"
)

// TargetGenerator places targets on the TargetRadius circle around the start position
type TargetGenerator struct {
	center vmath.Point
	rng    *rand.Rand
}

// NewTargetGenerator creates a generator around center
func NewTargetGenerator(center vmath.Point, rng *rand.Rand) *TargetGenerator {
	return &TargetGenerator{center: center, rng: rng}
}

// Bearing returns the compass bearing in radians for the next target
func (g *TargetGenerator) Bearing(params Parameters) float64 {
	switch params.TargetMode {
	case TargetRandom:
		return g.rng.Float64() * 2 * math.Pi
	case TargetSequence:
		return vmath.Radians(params.SequenceTargetDeg)
	default:
		return vmath.Radians(parameter.ReferenceAngleDeg)
	}
}

// Next returns the position of a new target
func (g *TargetGenerator) Next(params Parameters) vmath.Point {
	return vmath.FromBearing(g.center, parameter.TargetRadius, g.Bearing(params))
}
