package engine

import (
	"math"
	"math/rand/v2"
	"time"

	"go.uber.org/zap"

	"github.com/lixenwraith/reachlab/parameter"
	"github.com/lixenwraith/reachlab/vmath"
)

// Schedule is the swappable table of parameter mutations driven by attempt count and manual events
type Schedule interface {
	// Update is invoked once per frame before parameters are derived
	Update(attempts int, ev Event)
	// CurrentParameters returns the overrides currently in effect
	CurrentParameters() PartialParameters
}

// Outcome is how a tick resolved the active trial, if at all
type Outcome uint8

const (
	OutcomeNone Outcome = iota
	OutcomeHit
	OutcomeMiss
)

func (o Outcome) String() string {
	switch o {
	case OutcomeHit:
		return "hit"
	case OutcomeMiss:
		return "miss"
	default:
		return "none"
	}
}

// TickResult reports what happened during one frame
type TickResult struct {
	Outcome Outcome
	// Record is set when a row must be appended to the output table
	Record *Record

	NearMiss  bool
	Discarded bool
	NewTarget bool
	TimedOut  bool

	// Warp asks the caller to move the input device to the start position
	Warp bool

	ParamsChanged bool
	Ended         bool
}

// Config holds engine construction options
type Config struct {
	// Center is the start position in screen pixels
	Center vmath.Point
	// Clock defaults to a monotonic provider
	Clock TimeProvider
	// Seed drives target placement, random perturbation and motor noise
	Seed uint64
	// Source overrides the seeded random source when set
	Source rand.Source
	Logger *zap.Logger
}

// Engine is the per-frame trial controller
// It is single-threaded: Tick, Signal and Quit must be called from the loop goroutine
type Engine struct {
	center   vmath.Point
	clock    TimeProvider
	epoch    time.Time
	schedule Schedule
	logger   *zap.Logger

	perturbation *PerturbationPolicy
	noise        *MotorNoise
	targets      *TargetGenerator

	params Parameters
	state  TrialState

	// Frame-start measurements, kept for rendering
	distance   float64
	mouseAngle float64
	nowMs      int64
}

// New creates an engine driven by schedule
func New(cfg Config, schedule Schedule) *Engine {
	if cfg.Clock == nil {
		cfg.Clock = NewMonotonicTimeProvider()
	}
	if cfg.Logger == nil {
		cfg.Logger = zap.NewNop()
	}
	src := cfg.Source
	if src == nil {
		src = rand.NewPCG(cfg.Seed, cfg.Seed^0x9e3779b97f4a7c15)
	}
	rng := rand.New(src)

	e := &Engine{
		center:       cfg.Center,
		clock:        cfg.Clock,
		epoch:        cfg.Clock.Now(),
		schedule:     schedule,
		logger:       cfg.Logger,
		perturbation: NewPerturbationPolicy(rng),
		noise:        NewMotorNoise(src),
		targets:      NewTargetGenerator(cfg.Center, rng),
		params:       DefaultParameters().Overlay(schedule.CurrentParameters()),
		state:        NewTrialState(),
	}
	return e
}

// Signal records a manual event for delivery to the schedule on the next tick
// Escape also ends the session immediately
func (e *Engine) Signal(ev Event) {
	e.state.Event = ev
	if ev == EventEscape {
		e.Quit()
	}
}

// Quit ends the session; an unresolved trial is dropped without a record
func (e *Engine) Quit() {
	if !e.state.Ended {
		e.logger.Info("Session quit requested",
			zap.Int("attempts", e.state.Attempts),
			zap.Bool("trial_in_progress", e.state.Target != nil))
	}
	e.state.Ended = true
	e.state.Target = nil
	e.state.TimerRunning = false
}

// Ended reports whether the session has reached its terminal state
func (e *Engine) Ended() bool { return e.state.Ended }

// Params returns the parameters in effect for the current frame
func (e *Engine) Params() Parameters { return e.params }

// State exposes the trial state for read-only use by renderers and tests
func (e *Engine) State() *TrialState { return &e.state }

// Center returns the start position
func (e *Engine) Center() vmath.Point { return e.center }

// Frame is the read-only view renderers draw from
type Frame struct {
	Center     vmath.Point
	Params     Parameters
	State      *TrialState
	Distance   float64
	MouseAngle float64
	NowMs      int64
}

// Frame returns the view of the most recent tick
func (e *Engine) Frame() Frame {
	return Frame{
		Center:     e.center,
		Params:     e.params,
		State:      &e.state,
		Distance:   e.distance,
		MouseAngle: e.mouseAngle,
		NowMs:      e.nowMs,
	}
}

// Tick runs one frame of the state machine for the raw input position
func (e *Engine) Tick(raw vmath.Point) (TickResult, error) {
	var res TickResult
	st := &e.state
	if st.Ended {
		res.Ended = true
		return res, nil
	}
	e.nowMs = e.clock.Now().Sub(e.epoch).Milliseconds()

	// 1. Schedule mutates parameters, merged over defaults
	e.schedule.Update(st.Attempts, st.Event)
	params := DefaultParameters().Overlay(e.schedule.CurrentParameters())
	if params != e.params {
		res.ParamsChanged = true
		e.logParamsChange(e.params, params)
	}
	e.params = params
	if !params.Running {
		e.logger.Info("Schedule stopped the session", zap.Int("attempts", st.Attempts))
		st.Ended = true
		st.Target = nil
		st.TimerRunning = false
		res.Ended = true
		return res, nil
	}

	// 2. Raw input relative to the start position
	st.Raw = raw
	e.distance = vmath.Distance(e.center, raw)
	e.mouseAngle = vmath.Angle(e.center, raw)
	atStart := e.distance <= parameter.StartRadius
	qualifying := st.Target == nil && atStart

	// 3. Perturbed cursor
	e.perturbation.Update(params, st, qualifying)
	if err := e.noise.Update(params, st, qualifying); err != nil {
		return res, err
	}
	st.TotalPerturbationRad = vmath.Radians(st.PerturbationAngleDeg) + vmath.Radians(st.MotorNoisePerturbationDeg)
	st.Cursor = vmath.FromPolar(e.center, e.distance, e.mouseAngle-st.TotalPerturbationRad)

	// 4. Trajectory
	if st.Target != nil {
		st.Trajectory = append(st.Trajectory, st.Cursor)
	}

	// 5-6. Resolution
	if st.Target != nil {
		if IsHit(st.Cursor, *st.Target) {
			e.resolveHit(&res)
		} else if e.isMiss(st.Cursor) {
			e.resolveMiss(&res)
		}
	}
	if params.FeedbackMode == FeedbackNone {
		st.Feedback = FeedbackNeutral
	}

	// 7. Time limit
	if st.TimerRunning && e.nowMs-st.AttemptStartMs > parameter.TimeLimit.Milliseconds() {
		st.MoveFaster = true
		st.TimerRunning = false
		res.TimedOut = true
	}

	// 9. Centering assist, judged on the frame-start distance before a new target can appear
	if st.Target == nil && e.distance < parameter.CaptureRadius {
		res.Warp = true
	}

	// 8. New trial
	if st.Target == nil && atStart {
		target := e.targets.Next(params)
		st.Target = &target
		st.MoveFaster = false
		st.AttemptStartMs = e.nowMs
		st.TimerRunning = true
		res.NewTarget = true
	}

	return res, nil
}

// IsHit reports whether the cursor circle covers the target centre
func IsHit(cursor, target vmath.Point) bool {
	return vmath.Distance(cursor, target) <= parameter.CircleSize/2
}

func (e *Engine) isMiss(cursor vmath.Point) bool {
	return vmath.Distance(e.center, cursor) > parameter.TargetRadius*parameter.MissTolerance
}

// ErrorAngle returns the signed bearing difference between cursor and target seen from center
func ErrorAngle(center, target, cursor vmath.Point) float64 {
	return vmath.AngleBetween(vmath.Angle(center, target), vmath.Angle(center, cursor))
}

func (e *Engine) resolveHit(res *TickResult) {
	st := &e.state
	st.LastResolutionMs = e.nowMs
	if e.params.FeedbackMode == FeedbackReinforcement {
		st.Feedback = FeedbackHit
	}
	st.Score++
	st.Attempts++
	st.ErrorAngleRad = ErrorAngle(e.center, *st.Target, st.Cursor)

	res.Outcome = OutcomeHit
	res.Record = e.record(false)
	e.logger.Debug("Target hit",
		zap.Int("attempts", st.Attempts),
		zap.Float64("error_deg", vmath.Degrees(st.ErrorAngleRad)))
	e.endTrial()
}

func (e *Engine) resolveMiss(res *TickResult) {
	st := &e.state
	st.LastResolutionMs = e.nowMs
	st.Attempts++
	st.ErrorAngleRad = ErrorAngle(e.center, *st.Target, st.Cursor)
	errDeg := math.Abs(vmath.Degrees(st.ErrorAngleRad))

	if e.params.FeedbackMode == FeedbackReinforcement {
		st.Feedback = FeedbackMiss
		if errDeg < parameter.NearMissDeg {
			st.Feedback = FeedbackNearMiss
			st.Score += parameter.PartialScore
			res.NearMiss = true
		}
	}

	// Excursions away from the target are not counted; the row is still written
	discarded := errDeg > parameter.OutlierDeg
	if discarded {
		st.Attempts--
		res.Discarded = true
	}

	res.Outcome = OutcomeMiss
	res.Record = e.record(discarded)
	e.logger.Debug("Target missed",
		zap.Int("attempts", st.Attempts),
		zap.Float64("error_deg", vmath.Degrees(st.ErrorAngleRad)),
		zap.Bool("discarded", discarded))
	e.endTrial()
}

func (e *Engine) record(discarded bool) *Record {
	st := &e.state
	return &Record{
		Attempts:             st.Attempts,
		ErrorAngleRad:        st.ErrorAngleRad,
		MoveFaster:           st.MoveFaster,
		PerturbationMode:     e.params.PerturbationMode,
		TotalPerturbationRad: st.TotalPerturbationRad,
		MotorNoiseStdDev:     e.params.MotorNoiseStdDev,
		MaskRadius:           e.params.MaskRadius,
		SequenceTargetDeg:    e.params.SequenceTargetDeg,
		MaxPerturbationDeg:   e.params.MaxPerturbationDeg,
		FeedbackMode:         e.params.FeedbackMode,
		Discarded:            discarded,
	}
}

func (e *Engine) endTrial() {
	st := &e.state
	st.Target = nil
	st.TimerRunning = false
	st.LastAttemptTrajectory = st.Trajectory
	st.Trajectory = nil
}

func (e *Engine) logParamsChange(prev, next Parameters) {
	e.logger.Info("Parameters changed",
		zap.Int("attempts", e.state.Attempts),
		zap.Stringer("perturbation", next.PerturbationMode),
		zap.Float64("max_perturbation_deg", next.MaxPerturbationDeg),
		zap.Stringer("feedback", next.FeedbackMode),
		zap.Stringer("target_mode", next.TargetMode),
		zap.Float64("sequence_target_deg", next.SequenceTargetDeg),
		zap.Float64("motor_noise", next.MotorNoiseStdDev),
		zap.Float64("mask_radius", next.MaskRadius),
		zap.Bool("perturbation_changed", prev.PerturbationMode != next.PerturbationMode))
}
