package input

import "github.com/lixenwraith/reachlab/engine"

// SpecialKey names non-printable keys independently of the terminal backend
type SpecialKey uint8

const (
	KeyNone SpecialKey = iota
	KeyEscape
	KeyCtrlC
	KeyCtrlQ
)

// KeyTable maps keys to operator intents
type KeyTable struct {
	// Special keys (Escape, Ctrl+*)
	SpecialKeys map[SpecialKey]Intent

	// Printable rune bindings
	Runes map[rune]Intent
}

// DefaultKeyTable returns the default key bindings
func DefaultKeyTable() *KeyTable {
	return &KeyTable{
		SpecialKeys: map[SpecialKey]Intent{
			KeyEscape: EventIntent(engine.EventEscape),
			KeyCtrlC:  EventIntent(engine.EventEscape),
			KeyCtrlQ:  EventIntent(engine.EventEscape),
		},
		Runes: map[rune]Intent{
			'4': EventIntent(engine.EventTestPerturbation),
			'5': EventIntent(engine.EventEndPerturbation),
			'6': EventIntent(engine.EventMaskRadiusOverride),
			's': {Type: IntentScreenshot},
			'm': {Type: IntentTogglePointer},
		},
	}
}

// LookupKey resolves a special key
func (t *KeyTable) LookupKey(k SpecialKey) (Intent, bool) {
	in, ok := t.SpecialKeys[k]
	return in, ok
}

// LookupRune resolves a printable key
func (t *KeyTable) LookupRune(r rune) (Intent, bool) {
	in, ok := t.Runes[r]
	return in, ok
}
