package render

// Priority determines render order. Lower values render first
type Priority int

const (
	PriorityBackground Priority = iota
	PriorityFeedback
	PriorityTarget
	PriorityStart
	PriorityCursor
	PriorityAssist
	PriorityPointer
	PriorityHUD
	PriorityDebug
)
