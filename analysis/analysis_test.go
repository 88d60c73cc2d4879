package analysis

import (
	"bytes"
	"path/filepath"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/lixenwraith/reachlab/engine"
	"github.com/lixenwraith/reachlab/recorder"
	"github.com/lixenwraith/reachlab/vmath"
)

func row(attempt int, errDeg float64, mode engine.PerturbationMode) engine.Record {
	return engine.Record{
		Attempts:           attempt,
		ErrorAngleRad:      vmath.Radians(errDeg),
		PerturbationMode:   mode,
		MaxPerturbationDeg: 30,
		FeedbackMode:       engine.FeedbackNone,
		MaskRadius:         100,
	}
}

func TestAnalyzeBlocks(t *testing.T) {
	rows := []engine.Record{
		row(1, 2, engine.PerturbationOff),
		row(2, -2, engine.PerturbationOff),
		row(3, 30, engine.PerturbationSudden),
		row(4, 150, engine.PerturbationSudden), // outlier
		row(4, 20, engine.PerturbationSudden),
		row(5, 10, engine.PerturbationSudden),
		row(6, 1, engine.PerturbationOff),
	}
	rep := Analyze(rows)

	assert.Equal(t, 7, rep.Rows)
	assert.Equal(t, 1, rep.Outliers)
	require.Len(t, rep.Blocks, 3)

	off := rep.Blocks[0]
	assert.Equal(t, 1, off.FirstAttempt)
	assert.Equal(t, 2, off.LastAttempt)
	assert.Equal(t, 2, off.Count)
	assert.InDelta(t, 0, off.MeanDeg, 1e-9)
	assert.InDelta(t, 2.8284271, off.SDDeg, 1e-6)

	sudden := rep.Blocks[1]
	assert.Equal(t, engine.PerturbationSudden, sudden.Perturbation)
	assert.Equal(t, 3, sudden.Count)
	assert.InDelta(t, 20, sudden.MeanDeg, 1e-9)
	assert.InDelta(t, 10, sudden.SDDeg, 1e-9)

	last := rep.Blocks[2]
	assert.Equal(t, 1, last.Count)
	assert.Zero(t, last.SDDeg)
}

func TestOutlierThresholdInclusive(t *testing.T) {
	assert.True(t, IsOutlier(row(1, 100, engine.PerturbationOff)))
	assert.True(t, IsOutlier(row(1, -100, engine.PerturbationOff)))
	assert.False(t, IsOutlier(row(1, 99.9, engine.PerturbationOff)))
}

func TestAnalyzeEmpty(t *testing.T) {
	rep := Analyze(nil)
	assert.Zero(t, rep.Rows)
	assert.Empty(t, rep.Blocks)
}

func TestLoadAndWrite(t *testing.T) {
	layout := recorder.NewLayout(t.TempDir(), "p03", "feedback_script", true, time.Date(2025, 3, 18, 16, 31, 58, 0, time.UTC))
	sink, err := recorder.CreateCSVSink(layout.DataPath())
	require.NoError(t, err)
	require.NoError(t, sink.Write([]engine.Record{
		row(1, 5, engine.PerturbationGradual),
		row(2, 3, engine.PerturbationGradual),
	}))
	require.NoError(t, sink.Close())

	rep, err := Load(layout.DataPath())
	require.NoError(t, err)
	assert.Equal(t, "p03", rep.Subject)
	assert.Equal(t, "feedback", rep.Schedule)
	require.Len(t, rep.Blocks, 1)
	assert.Equal(t, 2, rep.Blocks[0].Count)

	var buf bytes.Buffer
	require.NoError(t, Write(&buf, rep))
	out := buf.String()
	assert.Contains(t, out, "subject:  p03")
	assert.Contains(t, out, "1-2")
	assert.Contains(t, out, "gradual")
	assert.Contains(t, out, "4.00")
}

func TestLoadMissingFile(t *testing.T) {
	_, err := Load(filepath.Join(t.TempDir(), "nope.csv"))
	assert.Error(t, err)
}
