package input

import "github.com/lixenwraith/reachlab/engine"

// IntentType classifies an operator command
type IntentType uint8

const (
	IntentNone IntentType = iota
	// IntentEvent forwards a manual event to the engine
	IntentEvent
	// IntentScreenshot saves the current frame as an image
	IntentScreenshot
	// IntentTogglePointer shows or hides the raw device position
	IntentTogglePointer
)

func (t IntentType) String() string {
	switch t {
	case IntentEvent:
		return "event"
	case IntentScreenshot:
		return "screenshot"
	case IntentTogglePointer:
		return "toggle_pointer"
	default:
		return "none"
	}
}

// Intent is one operator command produced by a device
type Intent struct {
	Type  IntentType
	Event engine.Event
}

// EventIntent wraps a manual event
func EventIntent(ev engine.Event) Intent {
	return Intent{Type: IntentEvent, Event: ev}
}
