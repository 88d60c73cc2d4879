package schedule

import "github.com/lixenwraith/reachlab/engine"

// Built-in schedule names
const (
	NameBaseline     = "baseline"
	NameFeedback     = "feedback"
	NameInterference = "interference"
	NameMotorNoise   = "motor_noise"
	NameTest         = "test"
)

func init() {
	Register(Entry{Name: NameBaseline, Description: "sudden then gradual 30° rotation blocks with washout, 200 attempts", Factory: Baseline})
	Register(Entry{Name: NameFeedback, Description: "gradual rotation under trajectory, end-position and reinforcement feedback, 400 attempts", Factory: Feedback})
	Register(Entry{Name: NameInterference, Description: "A-B-A: +30° block, -30° block, washout, 200 attempts", Factory: Interference})
	Register(Entry{Name: NameMotorNoise, Description: "gradual rotation under increasing motor noise with hidden cursor, 400 attempts", Factory: MotorNoise})
	Register(Entry{Name: NameTest, Description: "every regime for a few attempts each, 100 attempts", Factory: Test})
}

func perturb(m engine.PerturbationMode) engine.PartialParameters {
	return engine.PartialParameters{PerturbationMode: engine.Ptr(m)}
}

func sequence(deg float64) engine.PartialParameters {
	return engine.PartialParameters{SequenceTargetDeg: engine.Ptr(deg)}
}

func noise(stdDev float64) engine.PartialParameters {
	return engine.PartialParameters{MotorNoiseStdDev: engine.Ptr(stdDev)}
}

func feedback(m engine.FeedbackMode) engine.PartialParameters {
	return engine.PartialParameters{FeedbackMode: engine.Ptr(m)}
}

func mask(radius float64) engine.PartialParameters {
	return engine.PartialParameters{MaskRadius: engine.Ptr(radius)}
}

func stop() engine.PartialParameters {
	return engine.PartialParameters{Running: engine.Ptr(false)}
}

// Baseline alternates sudden and gradual counter-clockwise rotation blocks
func Baseline() *Table {
	initial := engine.PartialParameters{
		Running:            engine.Ptr(true),
		MotorNoiseStdDev:   engine.Ptr(0.0),
		TargetMode:         engine.Ptr(engine.TargetSequence),
		SequenceTargetDeg:  engine.Ptr(0.0),
		PerturbationMode:   engine.Ptr(engine.PerturbationOff),
		FeedbackMode:       engine.Ptr(engine.FeedbackNone),
		AssistingCircle:    engine.Ptr(false),
		MaxPerturbationDeg: engine.Ptr(30.0),
	}
	return NewTable(NameBaseline, initial, []Rule{
		{At: 20, Set: perturb(engine.PerturbationSudden)},
		{At: 80, Set: perturb(engine.PerturbationOff)},
		{At: 120, Set: perturb(engine.PerturbationGradual)},
		{At: 180, Set: perturb(engine.PerturbationOff)},
		{At: 200, Set: stop()},
	})
}

// Feedback repeats a gradual rotation block per target while the feedback type changes every 100 attempts
func Feedback() *Table {
	initial := engine.PartialParameters{
		Running:           engine.Ptr(true),
		MotorNoiseStdDev:  engine.Ptr(0.0),
		TargetMode:        engine.Ptr(engine.TargetSequence),
		SequenceTargetDeg: engine.Ptr(0.0),
		PerturbationMode:  engine.Ptr(engine.PerturbationOff),
		AssistingCircle:   engine.Ptr(true),
		FeedbackMode:      engine.Ptr(engine.FeedbackNone),
	}
	rules := []Rule{
		{At: 0, Set: sequence(60)},
		{At: 100, Set: sequence(105)},
		{At: 200, Set: sequence(160)},
		{At: 300, Set: sequence(-15)},

		{At: 100, Set: feedback(engine.FeedbackTrajectory)},
		{At: 200, Set: feedback(engine.FeedbackEndPosition)},
		{At: 300, Set: feedback(engine.FeedbackReinforcement)},

		{At: 100, Set: mask(0)},
		{At: 400, Set: stop()},
	}
	rules = append(rules, gradualBlocks()...)
	return NewTable(NameFeedback, initial, rules)
}

// MotorNoise repeats a gradual rotation block per target with the cursor hidden and noise rising
func MotorNoise() *Table {
	initial := engine.PartialParameters{
		Running:            engine.Ptr(true),
		MotorNoiseStdDev:   engine.Ptr(0.0),
		TargetMode:         engine.Ptr(engine.TargetSequence),
		SequenceTargetDeg:  engine.Ptr(0.0),
		PerturbationMode:   engine.Ptr(engine.PerturbationOff),
		FeedbackMode:       engine.Ptr(engine.FeedbackReinforcement),
		MaskRadius:         engine.Ptr(0.0),
		AssistingCircle:    engine.Ptr(true),
		MaxPerturbationDeg: engine.Ptr(30.0),
	}
	rules := []Rule{
		{At: 0, Set: sequence(25)},
		{At: 100, Set: sequence(-80)},
		{At: 200, Set: sequence(-35)},
		{At: 300, Set: sequence(10)},

		{At: 100, Set: noise(2)},
		{At: 200, Set: noise(10)},
		{At: 300, Set: noise(5)},

		{At: 400, Set: stop()},
	}
	rules = append(rules, gradualBlocks()...)
	return NewTable(NameMotorNoise, initial, rules)
}

// Interference adapts to a rotation, then to the opposite rotation, then washes out
func Interference() *Table {
	initial := engine.PartialParameters{
		Running:            engine.Ptr(true),
		MotorNoiseStdDev:   engine.Ptr(0.0),
		TargetMode:         engine.Ptr(engine.TargetSequence),
		SequenceTargetDeg:  engine.Ptr(0.0),
		PerturbationMode:   engine.Ptr(engine.PerturbationOff),
		FeedbackMode:       engine.Ptr(engine.FeedbackNone),
		AssistingCircle:    engine.Ptr(true),
		MaxPerturbationDeg: engine.Ptr(30.0),
	}
	return NewTable(NameInterference, initial, []Rule{
		{At: 20, Set: perturb(engine.PerturbationSudden)},
		{At: 80, Set: engine.PartialParameters{MaxPerturbationDeg: engine.Ptr(-30.0)}},
		{At: 140, Set: perturb(engine.PerturbationOff)},
		{At: 200, Set: stop()},
	})
}

// Test cycles through every regime within 100 attempts
func Test() *Table {
	initial := engine.PartialParameters{
		Running:            engine.Ptr(true),
		MotorNoiseStdDev:   engine.Ptr(0.0),
		TargetMode:         engine.Ptr(engine.TargetSequence),
		SequenceTargetDeg:  engine.Ptr(0.0),
		PerturbationMode:   engine.Ptr(engine.PerturbationOff),
		AssistingCircle:    engine.Ptr(true),
		MaxPerturbationDeg: engine.Ptr(30.0),
		FeedbackMode:       engine.Ptr(engine.FeedbackNone),
	}
	return NewTable(NameTest, initial, []Rule{
		{At: 0, Set: sequence(60)},
		{At: 25, Set: sequence(105)},
		{At: 50, Set: sequence(-100)},
		{At: 75, Set: sequence(-15)},

		{At: 50, Set: noise(2)},
		{At: 80, Set: noise(10)},

		{At: 10, Set: perturb(engine.PerturbationSudden)},
		{At: 20, Set: perturb(engine.PerturbationOff)},
		{At: 30, Set: perturb(engine.PerturbationGradual)},
		{At: 40, Set: perturb(engine.PerturbationOff)},
		{At: 50, Set: perturb(engine.PerturbationRandom)},
		{At: 60, Set: perturb(engine.PerturbationOff)},
		{At: 70, Set: perturb(engine.PerturbationGradual)},
		{At: 80, Set: perturb(engine.PerturbationOff)},
		{At: 90, Set: engine.PartialParameters{
			PerturbationMode:   engine.Ptr(engine.PerturbationSudden),
			MaxPerturbationDeg: engine.Ptr(15.0),
		}},

		{At: 1, Set: feedback(engine.FeedbackTrajectory)},
		{At: 2, Set: feedback(engine.FeedbackNone)},
		{At: 3, Set: feedback(engine.FeedbackReinforcement)},
		{At: 6, Set: feedback(engine.FeedbackNone)},
		{At: 7, Set: feedback(engine.FeedbackEndPosition)},
		{At: 9, Set: feedback(engine.FeedbackNone)},

		{At: 1, Set: mask(0)},
		{At: 100, Set: stop()},
	})
}

// gradualBlocks is the 60-attempt gradual rotation block opening every 100-attempt segment
func gradualBlocks() []Rule {
	var rules []Rule
	for start := 0; start < 400; start += 100 {
		rules = append(rules,
			Rule{At: start + 20, Set: perturb(engine.PerturbationGradual)},
			Rule{At: start + 80, Set: perturb(engine.PerturbationOff)},
		)
	}
	return rules
}
