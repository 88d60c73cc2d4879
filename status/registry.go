// Package status holds lock-free session counters read by logging and the summary
package status

import "sync/atomic"

// Metric keys published by the session loop
const (
	KeyTicks       = "session.ticks"
	KeyEvents      = "session.events"
	KeyScreenshots = "session.screenshots"
	KeyEndReason   = "session.end_reason"
	KeyRows        = "record.rows"
	KeyCounted     = "record.counted"
	KeyPresentMs   = "frame.present_ms"
	KeyPresentMax  = "frame.present_max_ms"
	KeyPointer     = "input.pointer_visible"
)

// Registry groups typed metric maps
// Writers cache the pointer returned by Get and update it without locking
type Registry struct {
	Bools   *MetricMap[atomic.Bool]
	Ints    *MetricMap[atomic.Int64]
	Floats  *MetricMap[AtomicFloat]
	Strings *MetricMap[AtomicString]
}

// NewRegistry creates an empty Registry
func NewRegistry() *Registry {
	return &Registry{
		Bools:   NewMetricMap[atomic.Bool](),
		Ints:    NewMetricMap[atomic.Int64](),
		Floats:  NewMetricMap[AtomicFloat](),
		Strings: NewMetricMap[AtomicString](),
	}
}

// Count returns the number of registered metrics of all types
func (r *Registry) Count() int {
	return r.Bools.Count() + r.Ints.Count() + r.Floats.Count() + r.Strings.Count()
}

// Snapshot copies every metric into a plain map
func (r *Registry) Snapshot() map[string]any {
	out := make(map[string]any, r.Count())
	r.Bools.Range(func(k string, v *atomic.Bool) { out[k] = v.Load() })
	r.Ints.Range(func(k string, v *atomic.Int64) { out[k] = v.Load() })
	r.Floats.Range(func(k string, v *AtomicFloat) { out[k] = v.Get() })
	r.Strings.Range(func(k string, v *AtomicString) { out[k] = v.Load() })
	return out
}
