package schedule

import (
	"github.com/lixenwraith/reachlab/engine"
	"github.com/lixenwraith/reachlab/parameter"
)

// Rule merges Set into the active overrides when the attempt count equals At
type Rule struct {
	At  int
	Set engine.PartialParameters
}

// Table is a threshold-driven schedule
// Rules match on strict equality and fire at most once, so a count that skips a
// threshold never applies it and a count that revisits one does not re-apply it
type Table struct {
	name    string
	initial engine.PartialParameters
	rules   []Rule

	current engine.PartialParameters
	fired   []bool
}

// NewTable creates a schedule starting from initial overrides
func NewTable(name string, initial engine.PartialParameters, rules []Rule) *Table {
	t := &Table{
		name:    name,
		initial: initial,
		rules:   rules,
	}
	t.Reset()
	return t
}

// Name returns the schedule name
func (t *Table) Name() string { return t.name }

// Rules returns the threshold table
func (t *Table) Rules() []Rule { return t.rules }

// Reset restores the initial overrides and re-arms every rule
func (t *Table) Reset() {
	t.current = t.initial
	t.fired = make([]bool, len(t.rules))
}

// Update applies the rules matching attempts, then the manual event
func (t *Table) Update(attempts int, ev engine.Event) {
	for i, r := range t.rules {
		if t.fired[i] || attempts != r.At {
			continue
		}
		t.current = t.current.Merge(r.Set)
		t.fired[i] = true
	}
	t.current = t.current.Merge(EventOverrides(ev))
}

// CurrentParameters returns every key the schedule has set so far
func (t *Table) CurrentParameters() engine.PartialParameters { return t.current }

// EventOverrides maps a manual event to the parameters it forces
func EventOverrides(ev engine.Event) engine.PartialParameters {
	switch ev {
	case engine.EventEscape:
		return engine.PartialParameters{Running: engine.Ptr(false)}
	case engine.EventTestPerturbation:
		return engine.PartialParameters{PerturbationMode: engine.Ptr(engine.PerturbationSudden)}
	case engine.EventEndPerturbation:
		return engine.PartialParameters{PerturbationMode: engine.Ptr(engine.PerturbationOff)}
	case engine.EventMaskRadiusOverride:
		return engine.PartialParameters{MaskRadius: engine.Ptr(parameter.MaskOverrideRadius)}
	}
	return engine.PartialParameters{}
}

var _ engine.Schedule = (*Table)(nil)
