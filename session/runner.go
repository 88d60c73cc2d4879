// Package session runs one experimental session: the fixed-rate loop binding
// device, engine, renderer, recorder and audio
package session

import (
	"context"
	"errors"
	"fmt"
	"sync/atomic"
	"time"

	"github.com/google/uuid"
	"go.uber.org/zap"
	"golang.org/x/sync/errgroup"

	"github.com/lixenwraith/reachlab/engine"
	"github.com/lixenwraith/reachlab/input"
	"github.com/lixenwraith/reachlab/recorder"
	"github.com/lixenwraith/reachlab/render"
	"github.com/lixenwraith/reachlab/render/layer"
	"github.com/lixenwraith/reachlab/status"
	"github.com/lixenwraith/reachlab/vmath"
)

// End reasons written to the manifest
const (
	EndScheduleComplete = "schedule_complete"
	EndOperatorQuit     = "operator_quit"
	EndInterrupted      = "interrupted"
	EndTickLimit        = "tick_limit"
	EndError            = "error"
)

// Reinforcer plays outcome feedback; *audio.SoundManager implements it
type Reinforcer interface {
	Reinforce(res engine.TickResult, params engine.Parameters)
}

// Options wires a Runner
type Options struct {
	Engine   *engine.Engine
	Device   input.Device
	Surface  render.Surface
	Recorder *recorder.Recorder
	Pacer    Pacer
	Audio    Reinforcer
	Logger   *zap.Logger

	// Field size in pixels
	Width, Height float64
	Diagnostics   bool

	// Layout locates the manifest and screenshots; empty OutputDir disables both
	Layout   recorder.Layout
	Manifest recorder.Manifest

	// MaxTicks bounds the session; zero runs until the schedule or operator ends it
	MaxTicks int

	// Metrics receives loop counters; a private registry is used when nil
	Metrics *status.Registry
}

// Summary reports how a session ended
type Summary struct {
	SessionID string
	Ticks     int
	Rows      int
	Counted   int
	Attempts  int
	Score     float64
	EndReason string
}

// Runner drives one session
type Runner struct {
	opts   Options
	logger *zap.Logger
	orch   *render.Orchestrator

	id          string
	ticks       int
	showPointer bool
	quit        bool
	screenshot  bool
	endReason   string

	metrics     *status.Registry
	mTicks      *atomic.Int64
	mEvents     *atomic.Int64
	mShots      *atomic.Int64
	mRows       *atomic.Int64
	mCounted    *atomic.Int64
	mPresent    *status.AtomicFloat
	mPresentMax *status.AtomicFloat
	mPointer    *atomic.Bool
	mEndReason  *status.AtomicString
}

// New creates a runner and registers the standard layers
func New(opts Options) *Runner {
	if opts.Logger == nil {
		opts.Logger = zap.NewNop()
	}
	id := opts.Manifest.SessionID
	if id == "" {
		id = uuid.NewString()
	}
	r := &Runner{
		opts:   opts,
		orch:   render.NewOrchestrator(opts.Surface),
		id:     id,
		logger: opts.Logger.With(zap.String("session_id", id)),
	}
	layer.RegisterAll(r.orch, &r.showPointer)
	r.bindMetrics(opts.Metrics)
	return r
}

func (r *Runner) bindMetrics(reg *status.Registry) {
	if reg == nil {
		reg = status.NewRegistry()
	}
	r.metrics = reg
	r.mTicks = reg.Ints.Get(status.KeyTicks)
	r.mEvents = reg.Ints.Get(status.KeyEvents)
	r.mShots = reg.Ints.Get(status.KeyScreenshots)
	r.mRows = reg.Ints.Get(status.KeyRows)
	r.mCounted = reg.Ints.Get(status.KeyCounted)
	r.mPresent = reg.Floats.Get(status.KeyPresentMs)
	r.mPresentMax = reg.Floats.Get(status.KeyPresentMax)
	r.mPointer = reg.Bools.Get(status.KeyPointer)
	r.mEndReason = reg.Strings.Get(status.KeyEndReason)
}

// Metrics returns the registry the loop publishes to
func (r *Runner) Metrics() *status.Registry { return r.metrics }

// ID returns the session identifier
func (r *Runner) ID() string { return r.id }

// Layout returns where the session writes its artifacts
func (r *Runner) Layout() recorder.Layout { return r.opts.Layout }

// Run executes the session until the schedule stops it, the operator quits, ctx is done or an error occurs
// Recorded rows are always flushed before Run returns
func (r *Runner) Run(ctx context.Context) (Summary, error) {
	started := time.Now()
	r.logger.Info("Session started",
		zap.String("subject", r.opts.Manifest.Subject),
		zap.String("schedule", r.opts.Manifest.Schedule),
		zap.String("output", r.opts.Layout.OutputDir))

	ctx, cancel := context.WithCancel(ctx)
	defer cancel()

	g, gctx := errgroup.WithContext(ctx)
	g.Go(func() error {
		if err := r.opts.Device.Run(gctx); err != nil {
			return fmt.Errorf("input device: %w", err)
		}
		return nil
	})
	g.Go(func() error {
		// Loop exit releases the device goroutine
		defer cancel()
		return r.loop(gctx)
	})
	runErr := g.Wait()
	if runErr != nil {
		r.endReason = EndError
		r.logger.Error("Session aborted", zap.Error(runErr))
	}

	closeErr := r.opts.Recorder.Close()
	if closeErr != nil {
		r.endReason = EndError
		r.logger.Error("Failed to write session data", zap.Error(closeErr))
	}

	sum := r.summary()
	r.mEndReason.Store(sum.EndReason)
	manifestErr := r.writeManifest(started, sum)
	r.logger.Info("Session ended",
		zap.String("reason", sum.EndReason),
		zap.Int("ticks", sum.Ticks),
		zap.Int("rows", sum.Rows),
		zap.Int("attempts", sum.Attempts),
		zap.Float64("score", sum.Score),
		zap.Any("metrics", r.metrics.Snapshot()))

	return sum, errors.Join(runErr, closeErr, manifestErr)
}

func (r *Runner) loop(ctx context.Context) error {
	for {
		if err := r.opts.Pacer.Wait(ctx); err != nil {
			r.endReason = EndInterrupted
			return nil
		}
		done, err := r.step()
		if err != nil {
			return err
		}
		if done {
			return nil
		}
	}
}

// step runs one frame
func (r *Runner) step() (bool, error) {
	eng := r.opts.Engine
	if s, ok := r.opts.Device.(input.Stepper); ok {
		s.Step(eng.Frame())
	}
	r.drainIntents()

	res, err := eng.Tick(r.opts.Device.Position())
	if err != nil {
		return true, fmt.Errorf("tick %d: %w", r.ticks, err)
	}
	r.ticks++
	r.mTicks.Store(int64(r.ticks))

	if res.Warp {
		r.opts.Device.Warp(eng.Center())
	}
	if res.Record != nil {
		if err := r.opts.Recorder.Append(*res.Record); err != nil {
			return true, fmt.Errorf("record attempt %d: %w", res.Record.Attempts, err)
		}
		r.mRows.Store(int64(r.opts.Recorder.Len()))
		r.mCounted.Store(int64(r.opts.Recorder.Counted()))
	}
	if r.opts.Audio != nil {
		r.opts.Audio.Reinforce(res, eng.Params())
	}
	if res.Ended {
		r.endReason = EndScheduleComplete
		if r.quit {
			r.endReason = EndOperatorQuit
		}
		return true, nil
	}

	presentStart := time.Now()
	if err := r.orch.RenderFrame(r.context()); err != nil {
		return true, fmt.Errorf("present frame: %w", err)
	}
	presentMs := float64(time.Since(presentStart).Microseconds()) / 1000
	r.mPresent.Set(presentMs)
	r.mPresentMax.Max(presentMs)
	if r.screenshot {
		r.screenshot = false
		r.saveScreenshot()
	}

	if r.opts.MaxTicks > 0 && r.ticks >= r.opts.MaxTicks {
		r.endReason = EndTickLimit
		return true, nil
	}
	return false, nil
}

func (r *Runner) drainIntents() {
	for {
		select {
		case in := <-r.opts.Device.Intents():
			r.apply(in)
		default:
			return
		}
	}
}

func (r *Runner) apply(in input.Intent) {
	switch in.Type {
	case input.IntentEvent:
		if in.Event == engine.EventEscape {
			r.quit = true
		}
		r.mEvents.Add(1)
		r.logger.Info("Manual event", zap.String("event", string(in.Event)))
		r.opts.Engine.Signal(in.Event)
	case input.IntentScreenshot:
		r.screenshot = true
	case input.IntentTogglePointer:
		r.showPointer = !r.showPointer
		r.mPointer.Store(r.showPointer)
	}
}

func (r *Runner) context() render.Context {
	return render.Context{
		Frame:       r.opts.Engine.Frame(),
		Width:       r.opts.Width,
		Height:      r.opts.Height,
		Diagnostics: r.opts.Diagnostics,
	}
}

// saveScreenshot failures are logged; a lost image does not end the session
func (r *Runner) saveScreenshot() {
	if r.opts.Layout.OutputDir == "" {
		return
	}
	path := r.opts.Layout.ScreenshotPath(r.opts.Engine.State().Attempts)
	err := render.WritePNG(path, r.orch.LastFrame(), int(r.opts.Width), int(r.opts.Height))
	if err != nil {
		r.logger.Warn("Screenshot failed", zap.String("path", path), zap.Error(err))
		return
	}
	r.mShots.Add(1)
	r.logger.Info("Screenshot saved", zap.String("path", path))
}

func (r *Runner) summary() Summary {
	st := r.opts.Engine.State()
	return Summary{
		SessionID: r.id,
		Ticks:     r.ticks,
		Rows:      r.opts.Recorder.Len(),
		Counted:   r.opts.Recorder.Counted(),
		Attempts:  st.Attempts,
		Score:     st.Score,
		EndReason: r.endReason,
	}
}

func (r *Runner) writeManifest(started time.Time, sum Summary) error {
	if r.opts.Layout.OutputDir == "" {
		return nil
	}
	m := r.opts.Manifest
	m.SessionID = r.id
	if m.StartedAt.IsZero() {
		m.StartedAt = started
	}
	m.EndedAt = time.Now()
	m.Rows = sum.Rows
	m.Attempts = sum.Attempts
	m.Score = sum.Score
	m.EndReason = sum.EndReason
	if err := recorder.WriteManifest(r.opts.Layout.ManifestPath(), m); err != nil {
		return fmt.Errorf("session manifest: %w", err)
	}
	return nil
}

// Center returns the start position for a field of the given size
func Center(width, height float64) vmath.Point {
	return vmath.Pt(width/2, height/2)
}
