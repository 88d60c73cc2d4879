package engine

import "github.com/lixenwraith/reachlab/vmath"

// FeedbackColor is the start marker tint driven by reinforcement feedback
type FeedbackColor uint8

const (
	FeedbackNeutral FeedbackColor = iota
	FeedbackHit
	FeedbackMiss
	FeedbackNearMiss
)

func (c FeedbackColor) String() string {
	switch c {
	case FeedbackHit:
		return "hit"
	case FeedbackMiss:
		return "miss"
	case FeedbackNearMiss:
		return "near_miss"
	default:
		return "neutral"
	}
}

// Phase is the trial state machine position, derived from TrialState
type Phase uint8

const (
	PhaseIdle Phase = iota
	PhaseTargetActive
	PhaseSessionEnded
)

func (p Phase) String() string {
	switch p {
	case PhaseIdle:
		return "idle"
	case PhaseTargetActive:
		return "target_active"
	case PhaseSessionEnded:
		return "session_ended"
	default:
		return "unknown"
	}
}

// TrialState is owned by the engine and mutated once per tick
type TrialState struct {
	// Target is nil between trials
	Target *vmath.Point

	Attempts int
	Score    float64

	// Raw is the unperturbed input device position read this frame
	Raw vmath.Point
	// Cursor is the perturbed and noised render position
	Cursor vmath.Point

	Trajectory            []vmath.Point
	LastAttemptTrajectory []vmath.Point

	PerturbationAngleDeg      float64
	MotorNoisePerturbationDeg float64
	TotalPerturbationRad      float64

	GradualStep     int
	GradualAttempts int

	// AttemptStartMs is meaningful only while TimerRunning
	AttemptStartMs int64
	TimerRunning   bool

	LastResolutionMs int64
	MoveFaster       bool

	// ErrorAngleRad is the signed error of the most recent resolution
	ErrorAngleRad float64
	Feedback      FeedbackColor

	// Event is the last manual event; it is re-delivered each frame until replaced
	Event Event

	Ended bool
}

// NewTrialState returns the session start state
func NewTrialState() TrialState {
	return TrialState{
		GradualAttempts: 1,
	}
}

// Phase reports where the state machine currently is
func (s *TrialState) Phase() Phase {
	switch {
	case s.Ended:
		return PhaseSessionEnded
	case s.Target != nil:
		return PhaseTargetActive
	default:
		return PhaseIdle
	}
}

// Record is one resolved attempt as written to the output table
type Record struct {
	Attempts             int
	ErrorAngleRad        float64
	MoveFaster           bool
	PerturbationMode     PerturbationMode
	TotalPerturbationRad float64
	MotorNoiseStdDev     float64
	MaskRadius           float64
	SequenceTargetDeg    float64
	MaxPerturbationDeg   float64
	FeedbackMode         FeedbackMode

	// Discarded marks an outlier miss whose attempt count was rolled back
	// Not part of the output columns
	Discarded bool
}
