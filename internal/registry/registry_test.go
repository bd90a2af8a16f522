package registry

import (
	"sync"
	"testing"

	"github.com/stretchr/testify/require"
)

func TestGetNamedMissingReturnsFalse(t *testing.T) {
	r := New()
	_, ok := GetNamed[int](r, "absent")
	require.False(t, ok)
}

func TestGetNamedTypeMismatchReturnsFalseNotPanic(t *testing.T) {
	r := New()
	InsertNamed(r, "k", "a string")

	require.NotPanics(t, func() {
		_, ok := GetNamed[int](r, "k")
		require.False(t, ok)
	})
}

func TestInsertNamedOverwrites(t *testing.T) {
	r := New()
	InsertNamed(r, "k", 1)
	InsertNamed(r, "k", 2)

	v, ok := GetNamed[int](r, "k")
	require.True(t, ok)
	require.Equal(t, 2, v)
}

// TestTypedAndNamedCanShareAKey verifies two differently-typed values can
// legitimately share the same human-readable name via the typed map.
func TestTypedAndNamedCanShareAKey(t *testing.T) {
	r := New()
	InsertTyped(r, "worker", 7)
	InsertTyped(r, "worker", "seven")

	i, ok := GetTyped[int](r, "worker")
	require.True(t, ok)
	require.Equal(t, 7, i)

	s, ok := GetTyped[string](r, "worker")
	require.True(t, ok)
	require.Equal(t, "seven", s)
}

func TestConcurrentAccessIsSafe(t *testing.T) {
	r := New()
	var wg sync.WaitGroup
	for i := 0; i < 50; i++ {
		wg.Add(1)
		go func(i int) {
			defer wg.Done()
			InsertNamed(r, "shared", i)
			GetNamed[int](r, "shared")
		}(i)
	}
	wg.Wait()
}
