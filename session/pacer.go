package session

import (
	"context"
	"time"

	"github.com/lixenwraith/reachlab/engine"
)

// Pacer gates the start of each tick
type Pacer interface {
	Wait(ctx context.Context) error
}

// RealtimePacer ticks on fixed deadlines so per-frame work does not accumulate drift
type RealtimePacer struct {
	interval time.Duration
	next     time.Time
}

// NewRealtimePacer creates a pacer for the given tick interval
func NewRealtimePacer(interval time.Duration) *RealtimePacer {
	return &RealtimePacer{interval: interval}
}

// Wait blocks until the next deadline or ctx is done
func (p *RealtimePacer) Wait(ctx context.Context) error {
	now := time.Now()
	if p.next.IsZero() {
		p.next = now
	}
	p.next = p.next.Add(p.interval)

	d := p.next.Sub(now)
	if d <= 0 {
		// More than a frame behind: resync instead of bursting
		if -d > p.interval {
			p.next = now
		}
		return ctx.Err()
	}

	timer := time.NewTimer(d)
	defer timer.Stop()
	select {
	case <-ctx.Done():
		return ctx.Err()
	case <-timer.C:
		return nil
	}
}

// VirtualPacer never blocks; it advances a mock clock by one interval per tick
type VirtualPacer struct {
	clock    *engine.MockTimeProvider
	interval time.Duration
}

// NewVirtualPacer creates a pacer driving clock
func NewVirtualPacer(clock *engine.MockTimeProvider, interval time.Duration) *VirtualPacer {
	return &VirtualPacer{clock: clock, interval: interval}
}

// Wait advances the clock
func (p *VirtualPacer) Wait(ctx context.Context) error {
	if err := ctx.Err(); err != nil {
		return err
	}
	p.clock.Advance(p.interval)
	return nil
}
