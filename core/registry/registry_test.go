package registry

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestRegistry_SetGetLock(t *testing.T) {
	r := NewRegistry()
	_, ok := r.GetGlobal("k")
	assert.False(t, ok)

	r.SetGlobal("k", []string{"a"})
	v, ok := r.GetGlobal("k")
	assert.True(t, ok)
	assert.Equal(t, []string{"a"}, v)

	assert.False(t, r.IsLocked("k"))
	r.Lock("k")
	assert.True(t, r.IsLocked("k"))
	r.UnlockForTesting("k")
	assert.False(t, r.IsLocked("k"))
}

func TestAppendListSeal(t *testing.T) {
	r := NewRegistry()
	assert.NoError(t, Append(r, "jobs", "a"))
	assert.NoError(t, Append(r, "jobs", "b"))
	assert.Equal(t, []string{"a", "b"}, List[string](r, "jobs"))
	assert.Empty(t, List[int](r, "jobs"), "wrong element type reads as empty")

	sealed := Seal[string](r, "jobs")
	assert.Equal(t, []string{"a", "b"}, sealed)
	assert.True(t, r.IsLocked("jobs"))

	err := Append(r, "jobs", "c")
	assert.ErrorIs(t, err, ErrLocked)
	assert.Len(t, List[string](r, "jobs"), 2)
}

func TestRemove(t *testing.T) {
	r := NewRegistry()
	for _, v := range []string{"keep", "drop", "keep-too"} {
		assert.NoError(t, Append(r, "k", v))
	}
	Remove(r, "k", func(v string) bool { return v == "drop" })
	assert.Equal(t, []string{"keep", "keep-too"}, List[string](r, "k"))
}
