package render

import (
	"github.com/lixenwraith/reachlab/vmath"
)

// CommandKind identifies a draw primitive
type CommandKind uint8

const (
	CmdClear CommandKind = iota
	CmdCircle
	CmdText
)

// Align positions text relative to its anchor
type Align uint8

const (
	AlignLeft   Align = iota // anchor is the top-left corner
	AlignCenter              // anchor is the text center
)

// Command is one shape-drawing instruction in field pixel coordinates
type Command struct {
	Kind  CommandKind
	Color RGB

	// Circle center or text anchor
	At vmath.Point

	// Circle radius; Width 0 fills, otherwise strokes a ring of that width
	Radius float64
	Width  float64

	// Text content and nominal font size in pixels
	Text  string
	Size  int
	Align Align
}

// Buffer accumulates the commands of one frame
type Buffer struct {
	cmds []Command
}

// NewBuffer creates an empty buffer
func NewBuffer() *Buffer {
	return &Buffer{cmds: make([]Command, 0, 64)}
}

// Reset drops all commands, keeping capacity
func (b *Buffer) Reset() {
	b.cmds = b.cmds[:0]
}

// Clear fills the whole field
func (b *Buffer) Clear(c RGB) {
	b.cmds = append(b.cmds, Command{Kind: CmdClear, Color: c})
}

// FillCircle draws a solid disc
func (b *Buffer) FillCircle(at vmath.Point, radius float64, c RGB) {
	b.cmds = append(b.cmds, Command{Kind: CmdCircle, Color: c, At: at, Radius: radius})
}

// Ring draws a circle outline
func (b *Buffer) Ring(at vmath.Point, radius, width float64, c RGB) {
	b.cmds = append(b.cmds, Command{Kind: CmdCircle, Color: c, At: at, Radius: radius, Width: width})
}

// Text draws a string
func (b *Buffer) Text(at vmath.Point, s string, size int, align Align, c RGB) {
	b.cmds = append(b.cmds, Command{Kind: CmdText, Color: c, At: at, Text: s, Size: size, Align: align})
}

// Commands returns the recorded commands; the slice is reused after Reset
func (b *Buffer) Commands() []Command {
	return b.cmds
}

// Snapshot returns a copy of the recorded commands
func (b *Buffer) Snapshot() []Command {
	out := make([]Command, len(b.cmds))
	copy(out, b.cmds)
	return out
}
