package render

// Layer is implemented by anything with visual output
type Layer interface {
	Render(ctx Context, buf *Buffer)
}

// VisibilityToggle is optionally implemented for runtime enable/disable
type VisibilityToggle interface {
	IsVisible() bool
}

// Surface is the external drawing target receiving each finished frame
type Surface interface {
	Present(cmds []Command) error
}
