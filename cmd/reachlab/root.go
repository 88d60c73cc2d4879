package main

import (
	"errors"
	"fmt"

	"github.com/spf13/cobra"
	"github.com/spf13/viper"

	"github.com/lixenwraith/reachlab/config"
)

// app carries the viper instance shared by every subcommand
type app struct {
	v       *viper.Viper
	cfgFile string
}

func newRootCmd() *cobra.Command {
	a := &app{v: viper.New()}
	config.SetDefaults(a.v)
	config.BindEnv(a.v)

	root := &cobra.Command{
		Use:           "reachlab",
		Short:         "Visuomotor reaching experiments with perturbation schedules",
		SilenceUsage:  true,
		SilenceErrors: true,
	}
	root.PersistentFlags().StringVarP(&a.cfgFile, "config", "c", "", "config file (default ./reachlab.yaml if present)")

	root.AddCommand(
		newRunCmd(a),
		newSimulateCmd(a),
		newAnalyzeCmd(),
		newSchedulesCmd(),
	)
	return root
}

// sessionFlags registers the flags shared by run and simulate and binds them onto config keys
func (a *app) sessionFlags(cmd *cobra.Command) {
	f := cmd.Flags()
	f.String("subject", "", "subject identifier")
	f.String("schedule", "", "schedule name (see 'reachlab schedules')")
	f.String("schedule-file", "", "YAML schedule definition, overrides --schedule")
	f.String("output", "", "output root directory")
	f.String("mode", "", "display mode: test or fullscreen")
	f.Bool("diagnostics", false, "draw the diagnostic HUD")
	f.Uint64("seed", 0, "random seed, 0 derives one from the start time")
	f.Bool("incremental-flush", false, "write each row as it is recorded")

	bindings := map[string]string{
		"session.subject_id":         "subject",
		"session.schedule":           "schedule",
		"schedule_file":              "schedule-file",
		"session.output_root":        "output",
		"session.display_mode":       "mode",
		"display.diagnostics":        "diagnostics",
		"display.seed":               "seed",
		"recorder.incremental_flush": "incremental-flush",
	}
	cmd.PreRunE = func(cmd *cobra.Command, _ []string) error {
		for key, name := range bindings {
			if err := a.v.BindPFlag(key, cmd.Flags().Lookup(name)); err != nil {
				return fmt.Errorf("bind flag %s: %w", name, err)
			}
		}
		return nil
	}
}

// loadConfig reads the optional config file and validates the merged result
func (a *app) loadConfig() (*config.Config, error) {
	if a.cfgFile != "" {
		a.v.SetConfigFile(a.cfgFile)
	} else {
		a.v.AddConfigPath(".")
		a.v.SetConfigName("reachlab")
		a.v.SetConfigType("yaml")
	}
	if err := a.v.ReadInConfig(); err != nil {
		var notFound viper.ConfigFileNotFoundError
		if a.cfgFile != "" || !errors.As(err, &notFound) {
			return nil, fmt.Errorf("error reading config file: %w", err)
		}
	}
	return config.NewConfigFromViper(a.v)
}
