// Package analysis summarizes a recorded session table by contiguous parameter block
package analysis

import (
	"fmt"
	"io"
	"math"
	"os"
	"path/filepath"
	"strings"
	"text/tabwriter"

	"gonum.org/v1/gonum/stat"

	"github.com/lixenwraith/reachlab/engine"
	"github.com/lixenwraith/reachlab/parameter"
	"github.com/lixenwraith/reachlab/recorder"
	"github.com/lixenwraith/reachlab/vmath"
)

// Setting is the parameter combination that delimits a block
type Setting struct {
	Perturbation       engine.PerturbationMode
	MaxPerturbationDeg float64
	Feedback           engine.FeedbackMode
	MotorNoiseStdDev   float64
	SequenceTargetDeg  float64
}

func settingOf(r engine.Record) Setting {
	return Setting{
		Perturbation:       r.PerturbationMode,
		MaxPerturbationDeg: r.MaxPerturbationDeg,
		Feedback:           r.FeedbackMode,
		MotorNoiseStdDev:   r.MotorNoiseStdDev,
		SequenceTargetDeg:  r.SequenceTargetDeg,
	}
}

// Block is a run of consecutive rows sharing one Setting
type Block struct {
	Setting
	FirstAttempt int
	LastAttempt  int
	Count        int
	MeanDeg      float64
	SDDeg        float64
}

// Report is the summary of one table
type Report struct {
	Source   string
	Subject  string
	Schedule string

	Rows     int
	Outliers int
	Blocks   []Block
}

// IsOutlier reports whether a row's error is too large to analyze
func IsOutlier(r engine.Record) bool {
	return math.Abs(vmath.Degrees(r.ErrorAngleRad)) >= parameter.OutlierDeg
}

// Analyze drops outliers and splits the remaining rows into blocks
func Analyze(rows []engine.Record) Report {
	rep := Report{Rows: len(rows)}

	var (
		cur     *Block
		samples []float64
	)
	closeBlock := func() {
		if cur == nil {
			return
		}
		cur.Count = len(samples)
		cur.MeanDeg, cur.SDDeg = meanSD(samples)
		rep.Blocks = append(rep.Blocks, *cur)
		cur, samples = nil, nil
	}

	for _, r := range rows {
		if IsOutlier(r) {
			rep.Outliers++
			continue
		}
		s := settingOf(r)
		if cur == nil || cur.Setting != s {
			closeBlock()
			cur = &Block{Setting: s, FirstAttempt: r.Attempts}
		}
		cur.LastAttempt = r.Attempts
		samples = append(samples, vmath.Degrees(r.ErrorAngleRad))
	}
	closeBlock()
	return rep
}

// meanSD returns the mean and sample standard deviation; SD is zero below two samples
func meanSD(x []float64) (float64, float64) {
	if len(x) < 2 {
		return stat.Mean(x, nil), 0
	}
	return stat.MeanStdDev(x, nil)
}

// Load reads a table and names it from its directory layout
func Load(path string) (Report, error) {
	f, err := os.Open(path)
	if err != nil {
		return Report{}, fmt.Errorf("open table: %w", err)
	}
	defer f.Close()

	rows, err := recorder.ReadCSV(f)
	if err != nil {
		return Report{}, fmt.Errorf("read %s: %w", path, err)
	}
	rep := Analyze(rows)
	rep.Source = path
	rep.Subject, rep.Schedule = describe(path)
	return rep, nil
}

// describe recovers subject and schedule from {root}/{subject}/{session}/{schedule}[/test]/file
func describe(path string) (subject, schedule string) {
	dir := filepath.Dir(filepath.Clean(path))
	if filepath.Base(dir) == "test" {
		dir = filepath.Dir(dir)
	}
	schedule = strings.TrimSuffix(filepath.Base(dir), "_script")
	subject = filepath.Base(filepath.Dir(filepath.Dir(dir)))
	return subject, schedule
}

// Write prints rep as an aligned table
func Write(w io.Writer, rep Report) error {
	if rep.Source != "" {
		fmt.Fprintf(w, "source:   %s\n", rep.Source)
		fmt.Fprintf(w, "subject:  %s\n", rep.Subject)
		fmt.Fprintf(w, "schedule: %s\n", rep.Schedule)
	}
	fmt.Fprintf(w, "rows: %d  outliers: %d\n\n", rep.Rows, rep.Outliers)

	tw := tabwriter.NewWriter(w, 0, 0, 2, ' ', 0)
	fmt.Fprintln(tw, "attempts\tperturbation\tmax\tfeedback\tnoise\ttarget\tn\tmean\tsd")
	for _, b := range rep.Blocks {
		fmt.Fprintf(tw, "%d-%d\t%s\t%.0f\t%s\t%.2f\t%.0f\t%d\t%.2f\t%.2f\n",
			b.FirstAttempt, b.LastAttempt,
			b.Perturbation, b.MaxPerturbationDeg,
			b.Feedback, b.MotorNoiseStdDev, b.SequenceTargetDeg,
			b.Count, b.MeanDeg, b.SDDeg)
	}
	return tw.Flush()
}
