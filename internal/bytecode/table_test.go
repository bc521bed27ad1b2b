package bytecode

import (
	"math"
	"strconv"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestTable_SetGetDelete(t *testing.T) {
	heap := NewHeap()
	table := NewTable()

	key := heap.InternString("answer")
	isNew := table.Set(key, NumberVal(42))
	require.True(t, isNew, "first insert should report a new entry")

	v, ok := table.Get(key)
	require.True(t, ok)
	assert.Equal(t, 42.0, v.Number)

	isNew = table.Set(key, NumberVal(43))
	assert.False(t, isNew, "overwriting an existing key should not report new")

	wasPresent := table.Delete(key)
	assert.True(t, wasPresent)

	_, ok = table.Get(key)
	assert.False(t, ok, "deleted key should no longer be found")
}

func TestTable_DeleteThenReinsertPastTombstone(t *testing.T) {
	heap := NewHeap()
	table := NewTable()

	a := heap.InternString("a")
	b := heap.InternString("b")

	table.Set(a, BoolVal(true))
	table.Set(b, BoolVal(false))
	table.Delete(a)

	// b must still be reachable: linear probing has to continue past a's
	// tombstone rather than stopping at the first empty-looking slot.
	v, ok := table.Get(b)
	require.True(t, ok)
	assert.Equal(t, false, v.Bool)

	// Reinserting a reports a new entry and counts as live again.
	require.True(t, table.Set(a, BoolVal(true)))
	v, ok = table.Get(a)
	require.True(t, ok)
	assert.Equal(t, true, v.Bool)
	assert.Equal(t, 2, table.Count())
}

func TestTable_GrowsAndPreservesEntries(t *testing.T) {
	heap := NewHeap()
	table := NewTable()

	const n = 64
	keys := make([]*ObjString, n)
	for i := 0; i < n; i++ {
		keys[i] = heap.InternString("key" + strconv.Itoa(i))
		table.Set(keys[i], NumberVal(float64(i)))
	}

	for i, k := range keys {
		v, ok := table.Get(k)
		require.True(t, ok, "key %d should survive growth", i)
		assert.Equal(t, float64(i), v.Number)
	}
	assert.Equal(t, n, table.Count())
}

func TestTable_FindString(t *testing.T) {
	heap := NewHeap()

	s := heap.InternString("hello")
	found := heap.strings.FindString("hello", s.Hash)
	require.NotNil(t, found)
	assert.Same(t, s, found)

	assert.Nil(t, heap.strings.FindString("goodbye", fnv1a32("goodbye")))
}

func TestValuesEqual(t *testing.T) {
	heap := NewHeap()

	assert.True(t, ValuesEqual(NilVal, NilVal))
	assert.True(t, ValuesEqual(BoolVal(true), BoolVal(true)))
	assert.False(t, ValuesEqual(BoolVal(true), BoolVal(false)))
	assert.True(t, ValuesEqual(NumberVal(1), NumberVal(1)))

	nan := NumberVal(math.NaN())
	assert.False(t, ValuesEqual(nan, nan), "NaN must not equal itself")

	a := heap.InternString("same")
	b := heap.InternString("same")
	assert.Same(t, a, b, "interning must return the same object for equal content")
	assert.True(t, ValuesEqual(ObjVal(a), ObjVal(b)))
}
