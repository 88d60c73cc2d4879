package session

import (
	"fmt"
	"time"

	"go.uber.org/zap"

	"github.com/lixenwraith/reachlab/config"
	"github.com/lixenwraith/reachlab/engine"
	"github.com/lixenwraith/reachlab/input"
	"github.com/lixenwraith/reachlab/parameter"
	"github.com/lixenwraith/reachlab/recorder"
	"github.com/lixenwraith/reachlab/render"
	"github.com/lixenwraith/reachlab/schedule"
)

// Environment supplies the platform pieces a session runs on
type Environment struct {
	Device  input.Device
	Surface render.Surface
	Pacer   Pacer
	Audio   Reinforcer
	Logger  *zap.Logger

	// Clock defaults to the monotonic clock
	Clock engine.TimeProvider
	// Start names the output directory; defaults to now
	Start    time.Time
	MaxTicks int
}

// FieldSize returns the playing field in pixels; test mode runs in a smaller window
func FieldSize(testMode bool) (width, height float64) {
	if testMode {
		return parameter.ScreenWidth - parameter.TestModeMargin, parameter.ScreenHeight - parameter.TestModeMargin
	}
	return parameter.ScreenWidth, parameter.ScreenHeight
}

// ResolveSchedule returns a fresh schedule from the YAML file when set, else from the registry
func ResolveSchedule(cfg *config.Config) (*schedule.Table, schedule.Entry, error) {
	if cfg.ScheduleFile != "" {
		entry, err := schedule.LoadFile(cfg.ScheduleFile)
		if err != nil {
			return nil, schedule.Entry{}, err
		}
		return entry.Factory(), entry, nil
	}
	return schedule.New(cfg.Session.Schedule)
}

// Setup resolves the schedule, opens the output table and builds the engine
// A zero seed is replaced by one derived from the start time and recorded in the manifest
func Setup(cfg *config.Config, env Environment) (*Runner, error) {
	logger := env.Logger
	if logger == nil {
		logger = zap.NewNop()
	}
	start := env.Start
	if start.IsZero() {
		start = time.Now()
	}
	seed := cfg.Display.Seed
	if seed == 0 {
		seed = uint64(start.UnixNano())
	}

	table, entry, err := ResolveSchedule(cfg)
	if err != nil {
		return nil, fmt.Errorf("resolve schedule: %w", err)
	}

	layout := recorder.NewLayout(cfg.Session.OutputRoot, cfg.Session.SubjectID, entry.Dir, cfg.TestMode(), start)
	sink, err := recorder.CreateCSVSink(layout.DataPath())
	if err != nil {
		return nil, err
	}
	rec := recorder.New(sink,
		recorder.WithIncrementalFlush(cfg.Recorder.IncrementalFlush),
		recorder.WithLogger(logger.Named("recorder")))

	width, height := FieldSize(cfg.TestMode())
	eng := engine.New(engine.Config{
		Center: Center(width, height),
		Clock:  env.Clock,
		Seed:   seed,
		Logger: logger.Named("engine"),
	}, table)

	return New(Options{
		Engine:      eng,
		Device:      env.Device,
		Surface:     env.Surface,
		Recorder:    rec,
		Pacer:       env.Pacer,
		Audio:       env.Audio,
		Logger:      logger.Named("session"),
		Width:       width,
		Height:      height,
		Diagnostics: cfg.Display.Diagnostics || cfg.TestMode(),
		Layout:      layout,
		MaxTicks:    env.MaxTicks,
		Manifest: recorder.Manifest{
			Subject:     cfg.Session.SubjectID,
			Schedule:    entry.Name,
			DisplayMode: cfg.Session.DisplayMode,
			Seed:        seed,
			StartedAt:   start,
		},
	}), nil
}
