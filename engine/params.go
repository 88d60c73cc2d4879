package engine

import (
	"fmt"
	"strings"

	"github.com/lixenwraith/reachlab/parameter"
)

// TargetMode selects how the next target bearing is chosen
type TargetMode uint8

const (
	TargetFixed TargetMode = iota
	TargetRandom
	TargetSequence
)

func (m TargetMode) String() string {
	switch m {
	case TargetFixed:
		return "fix"
	case TargetRandom:
		return "random"
	case TargetSequence:
		return "sequence"
	default:
		return fmt.Sprintf("TargetMode(%d)", m)
	}
}

// ParseTargetMode accepts the names produced by String
func ParseTargetMode(s string) (TargetMode, error) {
	switch strings.ToLower(strings.TrimSpace(s)) {
	case "fix", "fixed":
		return TargetFixed, nil
	case "random":
		return TargetRandom, nil
	case "sequence":
		return TargetSequence, nil
	}
	return 0, fmt.Errorf("unknown target mode %q", s)
}

// PerturbationMode selects the rotation policy applied to the cursor
type PerturbationMode uint8

const (
	PerturbationOff PerturbationMode = iota
	PerturbationSudden
	PerturbationGradual
	PerturbationRandom
)

func (m PerturbationMode) String() string {
	switch m {
	case PerturbationOff:
		return "off"
	case PerturbationSudden:
		return "sudden"
	case PerturbationGradual:
		return "gradual"
	case PerturbationRandom:
		return "random"
	default:
		return fmt.Sprintf("PerturbationMode(%d)", m)
	}
}

// Label is the value written to the perturbation_mode output column
func (m PerturbationMode) Label() string {
	if m == PerturbationOff {
		return "False"
	}
	return m.String()
}

// ParsePerturbationMode accepts String and Label forms
func ParsePerturbationMode(s string) (PerturbationMode, error) {
	switch strings.ToLower(strings.TrimSpace(s)) {
	case "off", "false", "none", "":
		return PerturbationOff, nil
	case "sudden":
		return PerturbationSudden, nil
	case "gradual":
		return PerturbationGradual, nil
	case "random":
		return PerturbationRandom, nil
	}
	return 0, fmt.Errorf("unknown perturbation mode %q", s)
}

// FeedbackMode selects what is shown about the previous attempt
type FeedbackMode uint8

const (
	FeedbackNone FeedbackMode = iota
	FeedbackTrajectory
	FeedbackEndPosition
	FeedbackReinforcement
)

func (m FeedbackMode) String() string {
	switch m {
	case FeedbackNone:
		return "none"
	case FeedbackTrajectory:
		return "trajectory"
	case FeedbackEndPosition:
		return "end_pos"
	case FeedbackReinforcement:
		return "reinforcement"
	default:
		return fmt.Sprintf("FeedbackMode(%d)", m)
	}
}

// Label is the value written to the feedback output column
func (m FeedbackMode) Label() string {
	if m == FeedbackNone {
		return "False"
	}
	return m.String()
}

// ParseFeedbackMode accepts String and Label forms
func ParseFeedbackMode(s string) (FeedbackMode, error) {
	switch strings.ToLower(strings.TrimSpace(s)) {
	case "none", "false", "off", "":
		return FeedbackNone, nil
	case "trajectory":
		return FeedbackTrajectory, nil
	case "end_pos", "endpos", "end_position":
		return FeedbackEndPosition, nil
	case "reinforcement":
		return FeedbackReinforcement, nil
	}
	return 0, fmt.Errorf("unknown feedback mode %q", s)
}

// Parameters is the complete per-frame configuration
// It is re-derived every tick from defaults and the schedule overrides, never mutated in place
type Parameters struct {
	Running            bool
	MotorNoiseStdDev   float64 // degrees
	TargetMode         TargetMode
	SequenceTargetDeg  float64
	PerturbationMode   PerturbationMode
	MaxPerturbationDeg float64 // sign encodes rotation direction
	MaskRadius         float64 // pixels
	FeedbackMode       FeedbackMode
	AssistingCircle    bool
	AssistingFlicker   bool
	LimitedMask        bool
}

// DefaultParameters returns the fixed default set every frame starts from
func DefaultParameters() Parameters {
	return Parameters{
		Running:            true,
		MotorNoiseStdDev:   0,
		TargetMode:         TargetFixed,
		SequenceTargetDeg:  0,
		PerturbationMode:   PerturbationOff,
		MaxPerturbationDeg: parameter.DefaultMaxPerturbation,
		MaskRadius:         parameter.DefaultMaskRadius,
		FeedbackMode:       FeedbackNone,
	}
}

// Overlay returns a copy of p with every key present in o applied
func (p Parameters) Overlay(o PartialParameters) Parameters {
	if o.Running != nil {
		p.Running = *o.Running
	}
	if o.MotorNoiseStdDev != nil {
		p.MotorNoiseStdDev = *o.MotorNoiseStdDev
	}
	if o.TargetMode != nil {
		p.TargetMode = *o.TargetMode
	}
	if o.SequenceTargetDeg != nil {
		p.SequenceTargetDeg = *o.SequenceTargetDeg
	}
	if o.PerturbationMode != nil {
		p.PerturbationMode = *o.PerturbationMode
	}
	if o.MaxPerturbationDeg != nil {
		p.MaxPerturbationDeg = *o.MaxPerturbationDeg
	}
	if o.MaskRadius != nil {
		p.MaskRadius = *o.MaskRadius
	}
	if o.FeedbackMode != nil {
		p.FeedbackMode = *o.FeedbackMode
	}
	if o.AssistingCircle != nil {
		p.AssistingCircle = *o.AssistingCircle
	}
	if o.AssistingFlicker != nil {
		p.AssistingFlicker = *o.AssistingFlicker
	}
	if o.LimitedMask != nil {
		p.LimitedMask = *o.LimitedMask
	}
	return p
}

// PartialParameters is a sparse override set; nil fields fall back to defaults
type PartialParameters struct {
	Running            *bool
	MotorNoiseStdDev   *float64
	TargetMode         *TargetMode
	SequenceTargetDeg  *float64
	PerturbationMode   *PerturbationMode
	MaxPerturbationDeg *float64
	MaskRadius         *float64
	FeedbackMode       *FeedbackMode
	AssistingCircle    *bool
	AssistingFlicker   *bool
	LimitedMask        *bool
}

// Merge returns a copy of p with every key present in o replacing p's value
func (p PartialParameters) Merge(o PartialParameters) PartialParameters {
	if o.Running != nil {
		p.Running = o.Running
	}
	if o.MotorNoiseStdDev != nil {
		p.MotorNoiseStdDev = o.MotorNoiseStdDev
	}
	if o.TargetMode != nil {
		p.TargetMode = o.TargetMode
	}
	if o.SequenceTargetDeg != nil {
		p.SequenceTargetDeg = o.SequenceTargetDeg
	}
	if o.PerturbationMode != nil {
		p.PerturbationMode = o.PerturbationMode
	}
	if o.MaxPerturbationDeg != nil {
		p.MaxPerturbationDeg = o.MaxPerturbationDeg
	}
	if o.MaskRadius != nil {
		p.MaskRadius = o.MaskRadius
	}
	if o.FeedbackMode != nil {
		p.FeedbackMode = o.FeedbackMode
	}
	if o.AssistingCircle != nil {
		p.AssistingCircle = o.AssistingCircle
	}
	if o.AssistingFlicker != nil {
		p.AssistingFlicker = o.AssistingFlicker
	}
	if o.LimitedMask != nil {
		p.LimitedMask = o.LimitedMask
	}
	return p
}

// Ptr returns a pointer to a copy of v, for building PartialParameters literals
func Ptr[T any](v T) *T {
	return &v
}
