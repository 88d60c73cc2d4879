package recorder

import (
	"fmt"
	"path/filepath"
	"time"
)

const (
	// DataFile is the table file name inside the output directory
	DataFile = "experimental_data.csv"

	// ManifestFile sits next to DataFile
	ManifestFile = "session.yaml"
)

// Layout locates every artifact of one session
type Layout struct {
	// SessionDir is {root}/{subject}/{subject}_{date}_{time}
	SessionDir string
	// OutputDir holds the table, manifest and screenshots
	OutputDir string
}

// NewLayout builds the output layout; test sessions get an extra "test" segment
func NewLayout(root, subject, scheduleDir string, testMode bool, start time.Time) Layout {
	stamp := fmt.Sprintf("%s_%s_%s", subject, start.Format("2006_01_02"), start.Format("15_04_05"))
	session := filepath.Join(root, subject, stamp)
	out := filepath.Join(session, scheduleDir)
	if testMode {
		out = filepath.Join(out, "test")
	}
	return Layout{SessionDir: session, OutputDir: out}
}

// DataPath returns the CSV location
func (l Layout) DataPath() string { return filepath.Join(l.OutputDir, DataFile) }

// ManifestPath returns the manifest location
func (l Layout) ManifestPath() string { return filepath.Join(l.OutputDir, ManifestFile) }

// ScreenshotPath returns the PNG location for a capture taken at attempts
func (l Layout) ScreenshotPath(attempts int) string {
	return filepath.Join(l.OutputDir, fmt.Sprintf("f%d_screenshot.png", attempts))
}
