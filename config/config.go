// Package config loads session settings through viper
package config

import (
	"errors"
	"fmt"
	"strings"

	"github.com/spf13/viper"

	"github.com/lixenwraith/reachlab/parameter"
	"github.com/lixenwraith/reachlab/schedule"
)

// Display modes
const (
	DisplayTest       = "test"
	DisplayFullscreen = "fullscreen"
)

// EnvPrefix is prepended to environment overrides, e.g. REACHLAB_SESSION_SUBJECT_ID
const EnvPrefix = "REACHLAB"

var (
	ErrMissingSubject    = errors.New("session.subject_id is required")
	ErrMissingOutputRoot = errors.New("session.output_root is required")
)

// Config is the root configuration
type Config struct {
	Session      SessionConfig  `mapstructure:"session" yaml:"session"`
	Display      DisplayConfig  `mapstructure:"display" yaml:"display"`
	Recorder     RecorderConfig `mapstructure:"recorder" yaml:"recorder"`
	Audio        AudioConfig    `mapstructure:"audio" yaml:"audio"`
	Logger       LoggerConfig   `mapstructure:"logger" yaml:"logger"`
	ScheduleFile string         `mapstructure:"schedule_file" yaml:"schedule_file"`
}

// SessionConfig identifies one experimental session
type SessionConfig struct {
	SubjectID   string `mapstructure:"subject_id" yaml:"subject_id"`
	Schedule    string `mapstructure:"schedule" yaml:"schedule"`
	OutputRoot  string `mapstructure:"output_root" yaml:"output_root"`
	DisplayMode string `mapstructure:"display_mode" yaml:"display_mode"`
}

// DisplayConfig controls the loop and drawing
type DisplayConfig struct {
	FrameRate   int    `mapstructure:"frame_rate" yaml:"frame_rate"`
	Diagnostics bool   `mapstructure:"diagnostics" yaml:"diagnostics"`
	Seed        uint64 `mapstructure:"seed" yaml:"seed"`
}

// RecorderConfig controls the output table
type RecorderConfig struct {
	// IncrementalFlush writes each row as it is produced instead of at session end
	IncrementalFlush bool `mapstructure:"incremental_flush" yaml:"incremental_flush"`
}

// AudioConfig controls reinforcement tones
type AudioConfig struct {
	Enabled    bool    `mapstructure:"enabled" yaml:"enabled"`
	Volume     float64 `mapstructure:"volume" yaml:"volume"`
	SampleRate int     `mapstructure:"sample_rate" yaml:"sample_rate"`
}

// LoggerConfig configures zap and file rotation
type LoggerConfig struct {
	Level      string `mapstructure:"level" yaml:"level"`
	Format     string `mapstructure:"format" yaml:"format"`
	LogFile    string `mapstructure:"log_file" yaml:"log_file"`
	MaxSize    int    `mapstructure:"max_size" yaml:"max_size"`
	MaxBackups int    `mapstructure:"max_backups" yaml:"max_backups"`
	MaxAge     int    `mapstructure:"max_age" yaml:"max_age"`
	Compress   bool   `mapstructure:"compress" yaml:"compress"`
}

// TestMode reports whether the session writes under the test subdirectory with a windowed field
func (c *Config) TestMode() bool { return c.Session.DisplayMode == DisplayTest }

// SetDefaults initializes default values
func SetDefaults(v *viper.Viper) {
	// -- Session --
	v.SetDefault("session.subject_id", "")
	v.SetDefault("session.schedule", schedule.NameTest)
	v.SetDefault("session.output_root", "data")
	v.SetDefault("session.display_mode", DisplayTest)

	// -- Display --
	v.SetDefault("display.frame_rate", parameter.FrameRate)
	v.SetDefault("display.diagnostics", false)
	v.SetDefault("display.seed", 0)

	// -- Recorder --
	v.SetDefault("recorder.incremental_flush", false)

	// -- Audio --
	v.SetDefault("audio.enabled", false)
	v.SetDefault("audio.volume", parameter.AudioDefaultVolume)
	v.SetDefault("audio.sample_rate", parameter.AudioSampleRate)

	// -- Logger --
	v.SetDefault("logger.level", "info")
	v.SetDefault("logger.format", "console")
	v.SetDefault("logger.log_file", "reachlab.log")
	v.SetDefault("logger.max_size", 20)
	v.SetDefault("logger.max_backups", 3)
	v.SetDefault("logger.max_age", 28)
	v.SetDefault("logger.compress", true)

	v.SetDefault("schedule_file", "")
}

// BindEnv enables REACHLAB_* environment overrides
func BindEnv(v *viper.Viper) {
	v.SetEnvPrefix(EnvPrefix)
	v.SetEnvKeyReplacer(strings.NewReplacer(".", "_"))
	v.AutomaticEnv()
}

// NewDefaultConfig returns the defaults without validation
func NewDefaultConfig() *Config {
	v := viper.New()
	SetDefaults(v)

	var cfg Config
	if err := v.Unmarshal(&cfg); err != nil {
		panic(fmt.Sprintf("failed to unmarshal default config: %v", err))
	}
	return &cfg
}

// NewConfigFromViper decodes and validates
func NewConfigFromViper(v *viper.Viper) (*Config, error) {
	var cfg Config
	if err := v.Unmarshal(&cfg); err != nil {
		return nil, fmt.Errorf("error unmarshaling config: %w", err)
	}
	if err := cfg.Validate(); err != nil {
		return nil, fmt.Errorf("invalid configuration: %w", err)
	}
	return &cfg, nil
}

// Validate checks required fields and ranges
func (c *Config) Validate() error {
	if strings.TrimSpace(c.Session.SubjectID) == "" {
		return ErrMissingSubject
	}
	if strings.TrimSpace(c.Session.OutputRoot) == "" {
		return ErrMissingOutputRoot
	}
	switch c.Session.DisplayMode {
	case DisplayTest, DisplayFullscreen:
	default:
		return fmt.Errorf("session.display_mode must be %q or %q, got %q", DisplayTest, DisplayFullscreen, c.Session.DisplayMode)
	}
	if c.ScheduleFile == "" {
		if _, ok := schedule.Lookup(c.Session.Schedule); !ok {
			return fmt.Errorf("session.schedule: %w: %q", schedule.ErrUnknownSchedule, c.Session.Schedule)
		}
	}
	if c.Display.FrameRate <= 0 {
		return fmt.Errorf("display.frame_rate must be a positive integer")
	}
	if c.Audio.Volume < 0 || c.Audio.Volume > 1 {
		return fmt.Errorf("audio.volume must be between 0.0 and 1.0")
	}
	if c.Audio.Enabled && c.Audio.SampleRate <= 0 {
		return fmt.Errorf("audio.sample_rate must be a positive integer")
	}
	return nil
}
