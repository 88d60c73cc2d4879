package status

import (
	"strings"
	"sync"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestMetricMapStablePointer(t *testing.T) {
	r := NewRegistry()
	a := r.Ints.Get(KeyTicks)
	b := r.Ints.Get(KeyTicks)
	require.Same(t, a, b)
	assert.True(t, r.Ints.Has(KeyTicks))
	assert.False(t, r.Ints.Has(KeyRows))
}

func TestConcurrentGet(t *testing.T) {
	r := NewRegistry()
	var wg sync.WaitGroup
	for i := 0; i < 16; i++ {
		wg.Add(1)
		go func() {
			defer wg.Done()
			for j := 0; j < 100; j++ {
				r.Ints.Get(KeyTicks).Add(1)
			}
		}()
	}
	wg.Wait()
	assert.EqualValues(t, 1600, r.Ints.Get(KeyTicks).Load())
	assert.Equal(t, 1, r.Count())
}

func TestAtomicFloatMax(t *testing.T) {
	var f AtomicFloat
	assert.Equal(t, 2.5, f.Max(2.5))
	assert.Equal(t, 2.5, f.Max(1))
	f.Set(0.5)
	assert.Equal(t, 0.5, f.Get())
}

func TestAtomicStringTruncates(t *testing.T) {
	var s AtomicString
	assert.Equal(t, "", s.Load())
	s.Store(strings.Repeat("x", 40))
	assert.Len(t, s.Load(), MaxStringLen)
}

func TestSnapshot(t *testing.T) {
	r := NewRegistry()
	r.Ints.Get(KeyRows).Store(3)
	r.Floats.Get(KeyPresentMs).Set(1.5)
	r.Strings.Get(KeyEndReason).Store("tick_limit")
	r.Bools.Get(KeyPointer).Store(true)

	assert.Equal(t, map[string]any{
		KeyRows:      int64(3),
		KeyPresentMs: 1.5,
		KeyEndReason: "tick_limit",
		KeyPointer:   true,
	}, r.Snapshot())
}
