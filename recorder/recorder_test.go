package recorder

import (
	"bytes"
	"errors"
	"os"
	"path/filepath"
	"strings"
	"testing"
	"time"

	"github.com/google/go-cmp/cmp"
	"github.com/google/go-cmp/cmp/cmpopts"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/lixenwraith/reachlab/engine"
)

func sampleRows() []engine.Record {
	return []engine.Record{
		{
			Attempts:           1,
			ErrorAngleRad:      0.0125,
			PerturbationMode:   engine.PerturbationOff,
			MaskRadius:         225,
			MaxPerturbationDeg: 30,
			FeedbackMode:       engine.FeedbackNone,
		},
		{
			Attempts:             2,
			ErrorAngleRad:        -0.5235987755982988,
			MoveFaster:           true,
			PerturbationMode:     engine.PerturbationSudden,
			TotalPerturbationRad: 0.5235987755982988,
			MotorNoiseStdDev:     2,
			SequenceTargetDeg:    -15,
			MaxPerturbationDeg:   30,
			FeedbackMode:         engine.FeedbackReinforcement,
		},
	}
}

func TestCSVLayout(t *testing.T) {
	var buf bytes.Buffer
	sink := NewCSVSink(&buf, nil)
	require.NoError(t, sink.Write(sampleRows()))
	require.NoError(t, sink.Close())

	lines := strings.Split(strings.TrimSpace(buf.String()), "\n")
	require.Len(t, lines, 3)
	assert.Equal(t, "attempts,error_angle,move_faster,perturbation_mode,total_perturbation,motor_noise,MASK_RADIUS,sequence_target,max_perturbation,feedback", lines[0])
	assert.Equal(t, "1,0.0125,False,False,0.0,0.0,225.0,0.0,30.0,False", lines[1])
	assert.Equal(t, "2,-0.5235987755982988,True,sudden,0.5235987755982988,2.0,0.0,-15.0,30.0,reinforcement", lines[2])
}

func TestEmptySessionStillHasHeader(t *testing.T) {
	var buf bytes.Buffer
	sink := NewCSVSink(&buf, nil)
	r := New(sink)
	require.NoError(t, r.Close())

	assert.Equal(t, strings.Join(Header, ",")+"\n", buf.String())
}

func TestReadCSVRoundTrip(t *testing.T) {
	var buf bytes.Buffer
	sink := NewCSVSink(&buf, nil)
	require.NoError(t, sink.Write(sampleRows()))
	require.NoError(t, sink.Close())

	got, err := ReadCSV(&buf)
	require.NoError(t, err)
	if diff := cmp.Diff(sampleRows(), got, cmpopts.EquateApprox(0, 1e-12)); diff != "" {
		t.Errorf("ReadCSV() mismatch (-want +got):\n%s", diff)
	}
}

func TestReadCSVRejectsWrongHeader(t *testing.T) {
	_, err := ReadCSV(strings.NewReader("a,b,c,d,e,f,g,h,i,j\n"))
	assert.Error(t, err)

	_, err = ReadCSV(strings.NewReader(strings.Join(Header, ",") + "\n1,x,False,False,0,0,0,0,0,False\n"))
	assert.ErrorContains(t, err, "error_angle")
}

func TestBufferedRecorderWritesOnClose(t *testing.T) {
	sink := &MemorySink{}
	r := New(sink)

	for _, row := range sampleRows() {
		require.NoError(t, r.Append(row))
	}
	assert.Empty(t, sink.Rows, "nothing written before close")
	assert.Equal(t, 2, r.Len())

	require.NoError(t, r.Close())
	assert.Len(t, sink.Rows, 2)
	assert.True(t, sink.Closed)

	assert.ErrorIs(t, r.Append(sampleRows()[0]), ErrClosed)
	assert.NoError(t, r.Close(), "second close is a no-op")
}

func TestIncrementalRecorderWritesEachRow(t *testing.T) {
	sink := &MemorySink{}
	r := New(sink, WithIncrementalFlush(true))

	require.NoError(t, r.Append(sampleRows()[0]))
	assert.Len(t, sink.Rows, 1)
	require.NoError(t, r.Append(sampleRows()[1]))
	assert.Len(t, sink.Rows, 2)

	require.NoError(t, r.Close())
	assert.Len(t, sink.Rows, 2, "close does not duplicate flushed rows")
}

type failingSink struct{ MemorySink }

func (f *failingSink) Write([]engine.Record) error { return errors.New("disk full") }

func TestSinkFailureSurfaces(t *testing.T) {
	r := New(&failingSink{})
	require.NoError(t, r.Append(sampleRows()[0]))

	err := r.Close()
	assert.ErrorContains(t, err, "disk full")
}

func TestCountedSkipsDiscardedRows(t *testing.T) {
	r := New(&MemorySink{})
	rows := sampleRows()
	rows[1].Discarded = true
	for _, row := range rows {
		require.NoError(t, r.Append(row))
	}

	assert.Equal(t, 2, r.Len())
	assert.Equal(t, 1, r.Counted())
	assert.Len(t, r.Rows(), 2)
}

func TestLayout(t *testing.T) {
	start := time.Date(2025, 3, 7, 9, 5, 2, 0, time.Local)

	l := NewLayout("/data", "S01", "baseline_script", false, start)
	assert.Equal(t, filepath.Join("/data", "S01", "S01_2025_03_07_09_05_02"), l.SessionDir)
	assert.Equal(t, filepath.Join("/data", "S01", "S01_2025_03_07_09_05_02", "baseline_script", "experimental_data.csv"), l.DataPath())
	assert.Equal(t, filepath.Join(l.OutputDir, "f12_screenshot.png"), l.ScreenshotPath(12))

	l = NewLayout("/data", "S01", "test_script", true, start)
	assert.Equal(t, filepath.Join("/data", "S01", "S01_2025_03_07_09_05_02", "test_script", "test"), l.OutputDir)
}

func TestCreateCSVSinkMakesDirectories(t *testing.T) {
	l := NewLayout(t.TempDir(), "S02", "feedback_script", true, time.Now())
	sink, err := CreateCSVSink(l.DataPath())
	require.NoError(t, err)

	r := New(sink, WithIncrementalFlush(true))
	require.NoError(t, r.Append(sampleRows()[0]))
	require.NoError(t, r.Close())

	f, err := os.Open(l.DataPath())
	require.NoError(t, err)
	defer f.Close()
	rows, err := ReadCSV(f)
	require.NoError(t, err)
	assert.Len(t, rows, 1)
}

func TestManifestRoundTrip(t *testing.T) {
	path := filepath.Join(t.TempDir(), "out", ManifestFile)
	m := Manifest{
		SessionID:   "0b6f3e1c-5a55-4d47-9b0c-8d1f2c7e6a10",
		Subject:     "S01",
		Schedule:    "test",
		DisplayMode: "test",
		Seed:        42,
		StartedAt:   time.Date(2025, 3, 7, 9, 5, 2, 0, time.UTC),
		EndedAt:     time.Date(2025, 3, 7, 9, 15, 2, 0, time.UTC),
		Rows:        100,
		Attempts:    100,
		Score:       87.25,
		EndReason:   "schedule",
	}
	require.NoError(t, WriteManifest(path, m))

	got, err := ReadManifest(path)
	require.NoError(t, err)
	assert.Equal(t, m, got)
}
