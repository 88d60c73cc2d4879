package recorder

import (
	"fmt"
	"os"
	"path/filepath"
	"time"

	"gopkg.in/yaml.v3"
)

// Manifest describes one recorded session
type Manifest struct {
	SessionID   string    `yaml:"session_id"`
	Subject     string    `yaml:"subject"`
	Schedule    string    `yaml:"schedule"`
	DisplayMode string    `yaml:"display_mode"`
	Seed        uint64    `yaml:"seed"`
	StartedAt   time.Time `yaml:"started_at"`
	EndedAt     time.Time `yaml:"ended_at,omitempty"`
	Rows        int       `yaml:"rows"`
	Attempts    int       `yaml:"attempts"`
	Score       float64   `yaml:"score"`
	EndReason   string    `yaml:"end_reason,omitempty"`
}

// WriteManifest serialises m to path
func WriteManifest(path string, m Manifest) error {
	data, err := yaml.Marshal(m)
	if err != nil {
		return fmt.Errorf("encode manifest: %w", err)
	}
	if err := os.MkdirAll(filepath.Dir(path), 0o755); err != nil {
		return fmt.Errorf("create manifest directory: %w", err)
	}
	if err := os.WriteFile(path, data, 0o644); err != nil {
		return fmt.Errorf("write manifest: %w", err)
	}
	return nil
}

// ReadManifest loads a manifest written by WriteManifest
func ReadManifest(path string) (Manifest, error) {
	var m Manifest
	data, err := os.ReadFile(path)
	if err != nil {
		return m, fmt.Errorf("read manifest: %w", err)
	}
	if err := yaml.Unmarshal(data, &m); err != nil {
		return m, fmt.Errorf("decode manifest: %w", err)
	}
	return m, nil
}
