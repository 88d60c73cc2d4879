package render

import "sync"

// RecordingSurface keeps the latest frame in memory for headless sessions and tests
type RecordingSurface struct {
	mu     sync.Mutex
	frames int
	last   []Command
}

// Present stores a copy of cmds
func (s *RecordingSurface) Present(cmds []Command) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.frames++
	s.last = append(s.last[:0], cmds...)
	return nil
}

// Frames returns how many frames were presented
func (s *RecordingSurface) Frames() int {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.frames
}

// Last returns a copy of the most recent frame
func (s *RecordingSurface) Last() []Command {
	s.mu.Lock()
	defer s.mu.Unlock()
	out := make([]Command, len(s.last))
	copy(out, s.last)
	return out
}

var _ Surface = (*RecordingSurface)(nil)
