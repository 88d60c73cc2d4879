// Package layer holds the frame layers that turn trial state into draw commands
package layer

import "github.com/lixenwraith/reachlab/render"

// RegisterAll installs the standard layer stack
// showPointer is read every frame so a key binding can flip it
func RegisterAll(o *render.Orchestrator, showPointer *bool) {
	o.Register(FeedbackLayer{}, render.PriorityFeedback)
	o.Register(TargetLayer{}, render.PriorityTarget)
	o.Register(StartLayer{}, render.PriorityStart)
	o.Register(CursorLayer{}, render.PriorityCursor)
	o.Register(AssistLayer{}, render.PriorityAssist)
	o.Register(PointerLayer{Visible: showPointer}, render.PriorityPointer)
	o.Register(HUDLayer{}, render.PriorityHUD)
	o.Register(DiagnosticsLayer{}, render.PriorityDebug)
}
