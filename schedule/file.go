package schedule

import (
	"bytes"
	"errors"
	"fmt"
	"os"

	"gopkg.in/yaml.v3"

	"github.com/lixenwraith/reachlab/engine"
)

// File is the YAML form of a custom schedule
//
//	name: pilot
//	initial:
//	  target_mode: sequence
//	  sequence_target: 45
//	rules:
//	  - at: 20
//	    set: {perturbation_mode: sudden, max_perturbation: 30}
//	  - at: 60
//	    set: {running: false}
type File struct {
	Name        string         `yaml:"name"`
	Dir         string         `yaml:"dir,omitempty"`
	Description string         `yaml:"description,omitempty"`
	Initial     FileParameters `yaml:"initial"`
	Rules       []FileRule     `yaml:"rules"`
}

// FileRule is one threshold entry
type FileRule struct {
	At  int            `yaml:"at"`
	Set FileParameters `yaml:"set"`
}

// FileParameters mirrors engine.PartialParameters with textual enums
type FileParameters struct {
	Running          *bool    `yaml:"running,omitempty"`
	MotorNoise       *float64 `yaml:"motor_noise,omitempty"`
	TargetMode       *string  `yaml:"target_mode,omitempty"`
	SequenceTarget   *float64 `yaml:"sequence_target,omitempty"`
	PerturbationMode *string  `yaml:"perturbation_mode,omitempty"`
	MaxPerturbation  *float64 `yaml:"max_perturbation,omitempty"`
	MaskRadius       *float64 `yaml:"mask_radius,omitempty"`
	Feedback         *string  `yaml:"feedback,omitempty"`
	AssistingCircle  *bool    `yaml:"assisting_circle,omitempty"`
	AssistingFlicker *bool    `yaml:"assisting_flicker,omitempty"`
	LimitedMask      *bool    `yaml:"limited_mask,omitempty"`
}

// Partial converts the textual form into engine overrides
func (f FileParameters) Partial() (engine.PartialParameters, error) {
	p := engine.PartialParameters{
		Running:            f.Running,
		MotorNoiseStdDev:   f.MotorNoise,
		SequenceTargetDeg:  f.SequenceTarget,
		MaxPerturbationDeg: f.MaxPerturbation,
		MaskRadius:         f.MaskRadius,
		AssistingCircle:    f.AssistingCircle,
		AssistingFlicker:   f.AssistingFlicker,
		LimitedMask:        f.LimitedMask,
	}
	if f.MotorNoise != nil && *f.MotorNoise < 0 {
		return p, fmt.Errorf("motor_noise must be >= 0, got %v", *f.MotorNoise)
	}
	if f.MaskRadius != nil && *f.MaskRadius < 0 {
		return p, fmt.Errorf("mask_radius must be >= 0, got %v", *f.MaskRadius)
	}
	if f.TargetMode != nil {
		m, err := engine.ParseTargetMode(*f.TargetMode)
		if err != nil {
			return p, err
		}
		p.TargetMode = &m
	}
	if f.PerturbationMode != nil {
		m, err := engine.ParsePerturbationMode(*f.PerturbationMode)
		if err != nil {
			return p, err
		}
		p.PerturbationMode = &m
	}
	if f.Feedback != nil {
		m, err := engine.ParseFeedbackMode(*f.Feedback)
		if err != nil {
			return p, err
		}
		p.FeedbackMode = &m
	}
	return p, nil
}

// Parse decodes a YAML schedule definition into an entry
func Parse(data []byte) (Entry, error) {
	var f File
	dec := yaml.NewDecoder(bytes.NewReader(data))
	dec.KnownFields(true)
	if err := dec.Decode(&f); err != nil {
		return Entry{}, fmt.Errorf("decode schedule: %w", err)
	}
	if f.Name == "" {
		return Entry{}, errors.New("schedule name is required")
	}

	initial, err := f.Initial.Partial()
	if err != nil {
		return Entry{}, fmt.Errorf("schedule %s initial: %w", f.Name, err)
	}
	rules := make([]Rule, 0, len(f.Rules))
	for i, r := range f.Rules {
		if r.At < 0 {
			return Entry{}, fmt.Errorf("schedule %s rule %d: negative threshold %d", f.Name, i, r.At)
		}
		set, err := r.Set.Partial()
		if err != nil {
			return Entry{}, fmt.Errorf("schedule %s rule %d: %w", f.Name, i, err)
		}
		rules = append(rules, Rule{At: r.At, Set: set})
	}

	dir := f.Dir
	if dir == "" {
		dir = f.Name + "_script"
	}
	name := f.Name
	return Entry{
		Name:        name,
		Dir:         dir,
		Description: f.Description,
		Factory:     func() *Table { return NewTable(name, initial, rules) },
	}, nil
}

// LoadFile reads and parses a YAML schedule definition
func LoadFile(path string) (Entry, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return Entry{}, fmt.Errorf("read schedule file: %w", err)
	}
	return Parse(data)
}
