package recorder

import (
	"encoding/csv"
	"fmt"
	"io"
	"strconv"
	"strings"

	"github.com/lixenwraith/reachlab/engine"
)

// Header is the output column order
var Header = []string{
	"attempts",
	"error_angle",
	"move_faster",
	"perturbation_mode",
	"total_perturbation",
	"motor_noise",
	"MASK_RADIUS",
	"sequence_target",
	"max_perturbation",
	"feedback",
}

// EncodeRow converts a record into CSV fields in Header order
func EncodeRow(r engine.Record) []string {
	return []string{
		strconv.Itoa(r.Attempts),
		formatFloat(r.ErrorAngleRad),
		formatBool(r.MoveFaster),
		r.PerturbationMode.Label(),
		formatFloat(r.TotalPerturbationRad),
		formatFloat(r.MotorNoiseStdDev),
		formatFloat(r.MaskRadius),
		formatFloat(r.SequenceTargetDeg),
		formatFloat(r.MaxPerturbationDeg),
		r.FeedbackMode.Label(),
	}
}

// DecodeRow parses fields in Header order
// Discarded is not a column; it is re-derived from the error angle
func DecodeRow(fields []string) (engine.Record, error) {
	var r engine.Record
	if len(fields) != len(Header) {
		return r, fmt.Errorf("expected %d fields, got %d", len(Header), len(fields))
	}

	var err error
	if r.Attempts, err = strconv.Atoi(strings.TrimSpace(fields[0])); err != nil {
		return r, fmt.Errorf("attempts: %w", err)
	}
	floats := []struct {
		name string
		dst  *float64
		src  string
	}{
		{"error_angle", &r.ErrorAngleRad, fields[1]},
		{"total_perturbation", &r.TotalPerturbationRad, fields[4]},
		{"motor_noise", &r.MotorNoiseStdDev, fields[5]},
		{"MASK_RADIUS", &r.MaskRadius, fields[6]},
		{"sequence_target", &r.SequenceTargetDeg, fields[7]},
		{"max_perturbation", &r.MaxPerturbationDeg, fields[8]},
	}
	for _, f := range floats {
		if *f.dst, err = strconv.ParseFloat(strings.TrimSpace(f.src), 64); err != nil {
			return r, fmt.Errorf("%s: %w", f.name, err)
		}
	}
	if r.MoveFaster, err = parseBool(fields[2]); err != nil {
		return r, fmt.Errorf("move_faster: %w", err)
	}
	if r.PerturbationMode, err = engine.ParsePerturbationMode(fields[3]); err != nil {
		return r, fmt.Errorf("perturbation_mode: %w", err)
	}
	if r.FeedbackMode, err = engine.ParseFeedbackMode(fields[9]); err != nil {
		return r, fmt.Errorf("feedback: %w", err)
	}
	return r, nil
}

// ReadCSV parses a complete output table, header included
func ReadCSV(rd io.Reader) ([]engine.Record, error) {
	cr := csv.NewReader(rd)
	cr.FieldsPerRecord = len(Header)

	header, err := cr.Read()
	if err != nil {
		return nil, fmt.Errorf("read header: %w", err)
	}
	for i, name := range Header {
		if header[i] != name {
			return nil, fmt.Errorf("column %d: expected %q, got %q", i, name, header[i])
		}
	}

	var rows []engine.Record
	for line := 2; ; line++ {
		fields, err := cr.Read()
		if err == io.EOF {
			return rows, nil
		}
		if err != nil {
			return nil, fmt.Errorf("line %d: %w", line, err)
		}
		r, err := DecodeRow(fields)
		if err != nil {
			return nil, fmt.Errorf("line %d: %w", line, err)
		}
		rows = append(rows, r)
	}
}

// formatFloat keeps a decimal point so float columns stay float-typed for readers
func formatFloat(v float64) string {
	s := strconv.FormatFloat(v, 'f', -1, 64)
	if !strings.ContainsAny(s, ".NI") {
		s += ".0"
	}
	return s
}

func formatBool(b bool) string {
	if b {
		return "True"
	}
	return "False"
}

func parseBool(s string) (bool, error) {
	switch strings.ToLower(strings.TrimSpace(s)) {
	case "true", "1":
		return true, nil
	case "false", "0":
		return false, nil
	}
	return false, fmt.Errorf("invalid bool %q", s)
}
