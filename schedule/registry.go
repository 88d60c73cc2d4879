package schedule

import (
	"errors"
	"fmt"
	"sort"
	"strings"
	"sync"
)

// ErrUnknownSchedule is returned when no schedule is registered under a name
var ErrUnknownSchedule = errors.New("unknown schedule")

// Factory creates a fresh schedule instance
type Factory func() *Table

// Entry holds a factory and its metadata
type Entry struct {
	Name        string
	Dir         string // output directory segment
	Description string
	Factory     Factory
}

var (
	entriesMu sync.RWMutex
	entries   = make(map[string]Entry)
)

// Register adds a schedule entry, replacing any entry with the same normalized name
func Register(e Entry) {
	if e.Dir == "" {
		e.Dir = e.Name + "_script"
	}
	entriesMu.Lock()
	defer entriesMu.Unlock()
	entries[normalize(e.Name)] = e
}

// Lookup retrieves an entry by name; case, separators and a "_script" suffix are ignored
func Lookup(name string) (Entry, bool) {
	entriesMu.RLock()
	defer entriesMu.RUnlock()
	e, ok := entries[normalize(name)]
	return e, ok
}

// New creates a fresh instance of the named schedule
func New(name string) (*Table, Entry, error) {
	e, ok := Lookup(name)
	if !ok {
		return nil, Entry{}, fmt.Errorf("%w: %q (known: %s)", ErrUnknownSchedule, name, strings.Join(Names(), ", "))
	}
	return e.Factory(), e, nil
}

// Names returns all registered schedule names, sorted
func Names() []string {
	entriesMu.RLock()
	defer entriesMu.RUnlock()
	names := make([]string, 0, len(entries))
	for _, e := range entries {
		names = append(names, e.Name)
	}
	sort.Strings(names)
	return names
}

func normalize(name string) string {
	n := strings.ToLower(strings.TrimSpace(name))
	n = strings.TrimSuffix(n, "_script")
	n = strings.NewReplacer("_", "", "-", "", " ", "").Replace(n)
	return n
}
