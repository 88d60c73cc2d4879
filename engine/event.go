package engine

import "fmt"

// Event is a manual control event delivered to the schedule
type Event string

const (
	EventNone               Event = ""
	EventEscape             Event = "escape"
	EventTestPerturbation   Event = "test_perturbation"
	EventEndPerturbation    Event = "end_perturbation"
	EventMaskRadiusOverride Event = "mask_radius_override"
)

// ParseEvent resolves an event name, accepting the legacy key names
func ParseEvent(s string) (Event, error) {
	switch s {
	case "", "none":
		return EventNone, nil
	case string(EventEscape):
		return EventEscape, nil
	case string(EventTestPerturbation):
		return EventTestPerturbation, nil
	case string(EventEndPerturbation), "end perturbation":
		return EventEndPerturbation, nil
	case string(EventMaskRadiusOverride), "mask400":
		return EventMaskRadiusOverride, nil
	}
	return EventNone, fmt.Errorf("unknown event %q", s)
}
