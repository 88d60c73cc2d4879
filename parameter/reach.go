package parameter

import "time"

// Playing Field Geometry (screen pixels)
const (
	// CircleSize is the cursor diameter; half of it is the hit tolerance
	CircleSize = 40.0

	// TargetSize is the rendered target diameter
	TargetSize = CircleSize

	// TargetRadius is the distance from the start position to every target
	TargetRadius = 300.0

	// MissTolerance scales TargetRadius to the miss boundary
	MissTolerance = 1.01

	// OuterRadius is where the limited mask makes the cursor visible again
	OuterRadius = 600.0

	// StartRadius is the return-to-start distance that arms a new target
	StartRadius = CircleSize

	// CaptureRadius is the distance under which the pointer snaps back to the start position
	CaptureRadius = 80.0

	// ReferenceAngleDeg is the compass bearing used by fixed target placement
	ReferenceAngleDeg = 0.0
)

// Marker Sizes
const (
	StartMarkerRadius = 10.0
	EndMarkerRadius   = 10.0
	TrailDotRadius    = 2.0
	FlickerRadius     = CircleSize / 4
)

// Trial Timing
const (
	// TimeLimit is the reach duration after which "move faster" is flagged
	TimeLimit = 1000 * time.Millisecond

	// AssistDelay is the idle time since the last resolution before assist cues appear
	AssistDelay = 5000 * time.Millisecond

	// FlickerPeriod divides elapsed milliseconds in the flicker phase sin(t/period)
	FlickerPeriod = 750.0

	// FrameRate is the target tick rate of the session loop
	FrameRate = 60

	// FrameInterval is the tick period matching FrameRate
	FrameInterval = time.Second / FrameRate
)

// Scoring & Trial Validity
const (
	// NearMissDeg is the reinforcement partial-credit window for misses
	NearMissDeg = 8.5

	// PartialScore is the score granted for a near miss under reinforcement
	PartialScore = 0.25

	// OutlierDeg is the miss error above which an attempt is discarded from the count
	OutlierDeg = 100.0
)

// Perturbation
const (
	// GradualSteps is the number of increments to reach full gradual perturbation
	GradualSteps = 10

	// GradualFramesPerStep is the number of qualifying idle frames per gradual increment
	GradualFramesPerStep = 3

	// RandomPerturbationDeg bounds the uniform random perturbation (exclusive, both signs)
	RandomPerturbationDeg = 45.0
)

// Motor Noise
const (
	// MotorNoiseCapDeg rejects normal draws with larger magnitude
	MotorNoiseCapDeg = 10.0

	// MotorNoiseMaxDraws bounds rejection sampling before failing loudly
	MotorNoiseMaxDraws = 1000
)

// Parameter Defaults
const (
	DefaultMaskRadius      = 0.75 * TargetRadius
	DefaultMaxPerturbation = -30.0

	// MaskOverrideRadius is applied by the mask_radius_override manual event
	MaskOverrideRadius = 400.0
)
