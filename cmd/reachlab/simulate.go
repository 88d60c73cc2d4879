package main

import (
	"time"

	"github.com/spf13/cobra"

	"github.com/lixenwraith/reachlab/engine"
	"github.com/lixenwraith/reachlab/input"
	"github.com/lixenwraith/reachlab/observability"
	"github.com/lixenwraith/reachlab/parameter"
	"github.com/lixenwraith/reachlab/render"
	"github.com/lixenwraith/reachlab/session"
)

const simulatedSubject = "synthetic"

func newSimulateCmd(a *app) *cobra.Command {
	pcfg := input.DefaultParticipantConfig()
	var maxTicks int

	cmd := &cobra.Command{
		Use:   "simulate",
		Short: "Run a headless session with a synthetic participant",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, _ []string) error {
			if !a.v.IsSet("session.subject_id") || a.v.GetString("session.subject_id") == "" {
				a.v.Set("session.subject_id", simulatedSubject)
			}
			cfg, err := a.loadConfig()
			if err != nil {
				return err
			}
			observability.InitializeConsole(cfg.Logger)
			defer observability.Sync()

			start := time.Now()
			clock := engine.NewMockTimeProvider(start)
			width, height := session.FieldSize(cfg.TestMode())
			if pcfg.Seed == 0 {
				pcfg.Seed = cfg.Display.Seed
			}
			participant := input.NewParticipant(session.Center(width, height), pcfg)

			runner, err := session.Setup(cfg, session.Environment{
				Device:   participant,
				Surface:  &render.RecordingSurface{},
				Pacer:    session.NewVirtualPacer(clock, parameter.FrameInterval),
				Clock:    clock,
				Logger:   observability.GetLogger(),
				Start:    start,
				MaxTicks: maxTicks,
			})
			if err != nil {
				return err
			}
			sum, err := runner.Run(cmd.Context())
			printSummary(cmd.OutOrStdout(), runner, sum)
			return err
		},
	}
	a.sessionFlags(cmd)

	f := cmd.Flags()
	f.IntVar(&maxTicks, "max-ticks", 200000, "stop after this many frames")
	f.Float64Var(&pcfg.LearningRate, "learning-rate", pcfg.LearningRate, "fraction of each error the participant corrects")
	f.Float64Var(&pcfg.AimNoiseDeg, "aim-noise", pcfg.AimNoiseDeg, "std-dev of participant aiming error in degrees")
	f.Float64Var(&pcfg.Speed, "speed", pcfg.Speed, "reach speed in pixels per frame")
	f.Uint64Var(&pcfg.Seed, "participant-seed", 0, "participant seed, 0 uses the session seed")
	return cmd
}
