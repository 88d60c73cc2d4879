package render

type layerEntry struct {
	layer    Layer
	priority Priority
	index    int // registration order for stable sort
}

// Orchestrator coordinates the render pipeline
type Orchestrator struct {
	surface  Surface
	buffer   *Buffer
	layers   []layerEntry
	regCount int
}

// NewOrchestrator creates an orchestrator presenting to surface
func NewOrchestrator(surface Surface) *Orchestrator {
	return &Orchestrator{
		surface: surface,
		buffer:  NewBuffer(),
		layers:  make([]layerEntry, 0, 16),
	}
}

// Register adds a layer at the specified priority. Maintains sorted order via insertion sort
func (o *Orchestrator) Register(l Layer, priority Priority) {
	entry := layerEntry{
		layer:    l,
		priority: priority,
		index:    o.regCount,
	}
	o.regCount++

	pos := len(o.layers)
	for i, e := range o.layers {
		if priority < e.priority || (priority == e.priority && entry.index < e.index) {
			pos = i
			break
		}
	}

	o.layers = append(o.layers, layerEntry{})
	copy(o.layers[pos+1:], o.layers[pos:])
	o.layers[pos] = entry
}

// Compose runs every visible layer into a fresh command list without presenting it
func (o *Orchestrator) Compose(ctx Context) []Command {
	o.buffer.Reset()
	o.buffer.Clear(RgbBackground)

	for _, entry := range o.layers {
		if vt, ok := entry.layer.(VisibilityToggle); ok && !vt.IsVisible() {
			continue
		}
		entry.layer.Render(ctx, o.buffer)
	}
	return o.buffer.Commands()
}

// RenderFrame executes the render pipeline: clear, render all, present
func (o *Orchestrator) RenderFrame(ctx Context) error {
	return o.surface.Present(o.Compose(ctx))
}

// LastFrame returns a copy of the most recently composed frame
func (o *Orchestrator) LastFrame() []Command {
	return o.buffer.Snapshot()
}
