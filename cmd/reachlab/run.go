package main

import (
	"fmt"
	"io"
	"time"

	"github.com/spf13/cobra"
	"go.uber.org/zap"
	"go.uber.org/zap/zapcore"

	"github.com/lixenwraith/reachlab/audio"
	"github.com/lixenwraith/reachlab/observability"
	"github.com/lixenwraith/reachlab/session"
	"github.com/lixenwraith/reachlab/terminal"
)

func newRunCmd(a *app) *cobra.Command {
	cmd := &cobra.Command{
		Use:   "run",
		Short: "Run a session on the terminal with mouse input",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, _ []string) error {
			return a.runSession(cmd)
		},
	}
	a.sessionFlags(cmd)
	cmd.Flags().Bool("audio", false, "play reinforcement tones")
	return cmd
}

func (a *app) runSession(cmd *cobra.Command) error {
	if err := a.v.BindPFlag("audio.enabled", cmd.Flags().Lookup("audio")); err != nil {
		return err
	}
	cfg, err := a.loadConfig()
	if err != nil {
		return err
	}

	// The terminal belongs to the display; only the file core logs
	observability.Initialize(cfg.Logger, zapcore.AddSync(io.Discard))
	defer observability.Sync()
	logger := observability.GetLogger()

	width, height := session.FieldSize(cfg.TestMode())
	term, err := terminal.Open(width, height, logger.Named("terminal"))
	if err != nil {
		logger.Error("Terminal unavailable", zap.Error(err))
		return fmt.Errorf("open terminal: %w", err)
	}
	setEmergencyReset(term.Close)
	defer term.Close()

	var sound session.Reinforcer
	if cfg.Audio.Enabled {
		sm := audio.NewSoundManager(audio.Config{
			Enabled:    true,
			Volume:     cfg.Audio.Volume,
			SampleRate: cfg.Audio.SampleRate,
		}, audio.SpeakerOutput{}, logger.Named("audio"))
		if err := sm.Initialize(); err != nil {
			logger.Warn("Audio unavailable, continuing without", zap.Error(err))
		} else {
			defer sm.Cleanup()
			sound = sm
		}
	}

	runner, err := session.Setup(cfg, session.Environment{
		Device:  term.Device(),
		Surface: term.Surface(),
		Pacer:   session.NewRealtimePacer(time.Second / time.Duration(cfg.Display.FrameRate)),
		Audio:   sound,
		Logger:  logger,
	})
	if err != nil {
		return err
	}

	sum, err := runner.Run(cmd.Context())
	term.Close()
	printSummary(cmd.OutOrStdout(), runner, sum)
	return err
}

func printSummary(w io.Writer, runner *session.Runner, sum session.Summary) {
	fmt.Fprintf(w, "session %s ended: %s\n", sum.SessionID, sum.EndReason)
	fmt.Fprintf(w, "  attempts %d, rows %d, score %.2f, ticks %d\n", sum.Attempts, sum.Rows, sum.Score, sum.Ticks)
	fmt.Fprintf(w, "  data %s\n", runner.Layout().DataPath())
}
