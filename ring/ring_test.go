package ring

import (
	"slices"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func newRing(t *testing.T, capacity int) *Ring[int] {
	t.Helper()
	r, err := New[int](capacity)
	require.NoError(t, err)
	return r
}

func TestNew(t *testing.T) {
	r := newRing(t, 5)
	assert.Equal(t, 5, r.Capacity())
	assert.True(t, r.IsEmpty())
	assert.Equal(t, 0, r.Count())
	assert.False(t, r.IsFull())
	assert.Empty(t, r.Values())

	for _, c := range []int{0, -1} {
		r, err := New[string](c)
		assert.ErrorIs(t, err, ErrInvalidCapacity)
		assert.Nil(t, r)
	}
}

func TestEmptiness(t *testing.T) {
	r := newRing(t, 3)
	assert.True(t, r.IsEmpty())
	r.Add(1)
	assert.False(t, r.IsEmpty())
}

func TestFullness(t *testing.T) {
	r := newRing(t, 3)
	assert.False(t, r.IsFull())
	r.Add(1)
	assert.False(t, r.IsFull())
	r.Add(2)
	assert.False(t, r.IsFull())
	r.Add(3)
	assert.True(t, r.IsFull())
	r.Add(4)
	assert.True(t, r.IsFull())
}

func TestOverwrite(t *testing.T) {
	r := newRing(t, 3)
	want := [][]int{{1}, {1, 2}, {1, 2, 3}, {2, 3, 4}, {3, 4, 5}}
	for i, w := range want {
		r.Add(i + 1)
		assert.Equal(t, w, r.Values())
		assert.Equal(t, w, slices.Collect(r.All()))
		assert.Equal(t, i+1, r.Count())
		assert.Equal(t, len(w), r.StoredCount())
	}
}

func TestValueToBeRemovedNext(t *testing.T) {
	r := newRing(t, 3)

	_, ok := r.ValueToBeRemovedNext()
	assert.False(t, ok)
	r.Add(1)
	_, ok = r.ValueToBeRemovedNext()
	assert.False(t, ok)
	r.Add(2)
	_, ok = r.ValueToBeRemovedNext()
	assert.False(t, ok)

	r.Add(3)
	v, ok := r.ValueToBeRemovedNext()
	require.True(t, ok)
	assert.Equal(t, 1, v)

	r.Add(4)
	v, ok = r.ValueToBeRemovedNext()
	require.True(t, ok)
	assert.Equal(t, 2, v)
	assert.Equal(t, []int{2, 3, 4}, r.Values())
}

func TestReset(t *testing.T) {
	r := newRing(t, 3)
	r.Add(1)
	r.Add(2)
	r.Add(3)
	r.Add(4)
	require.Equal(t, []int{2, 3, 4}, r.Values())

	r.Reset()
	assert.Equal(t, 0, r.Count())
	assert.Empty(t, slices.Collect(r.All()))
	assert.Equal(t, 3, r.Capacity())
	assert.True(t, r.IsEmpty())

	r.Add(9)
	assert.Equal(t, []int{9}, r.Values())
}

func TestAll_Restartable(t *testing.T) {
	r := newRing(t, 2)
	r.Add(1)
	r.Add(2)

	seq := r.All()
	assert.Equal(t, []int{1, 2}, slices.Collect(seq))
	assert.Equal(t, []int{1, 2}, slices.Collect(seq))
}

func TestAll_Snapshot(t *testing.T) {
	r := newRing(t, 2)
	r.Add(1)
	r.Add(2)

	seq := r.All()
	r.Add(3)
	r.Reset()

	assert.Equal(t, []int{1, 2}, slices.Collect(seq))
}

func TestAll_EarlyStop(t *testing.T) {
	r := newRing(t, 4)
	for i := range 4 {
		r.Add(i)
	}
	var got []int
	for v := range r.All() {
		if v == 2 {
			break
		}
		got = append(got, v)
	}
	assert.Equal(t, []int{0, 1}, got)
}

func TestValues_Independent(t *testing.T) {
	r := newRing(t, 2)
	r.Add(1)
	vals := r.Values()
	vals[0] = 100
	assert.Equal(t, []int{1}, r.Values())
}

func BenchmarkAdd(b *testing.B) {
	r, _ := New[int](1024)
	i := 0
	for b.Loop() {
		r.Add(i)
		i++
	}
}
