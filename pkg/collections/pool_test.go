package collections

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestSlicePool_GetPut(t *testing.T) {
	pool := NewSlicePool[int](16)

	s := pool.Get()
	require.NotNil(t, s)
	assert.Empty(t, *s)
	assert.GreaterOrEqual(t, cap(*s), 16)

	*s = append(*s, 1, 2, 3)
	pool.Put(s)

	s2 := pool.Get()
	assert.Empty(t, *s2, "pooled slice must come back cleared")
}

func TestSlicePool_DefaultCapacity(t *testing.T) {
	pool := NewSlicePool[byte](0)
	s := pool.Get()
	assert.GreaterOrEqual(t, cap(*s), 256)
	pool.Put(s)
}

func TestOffsetSlicePool(t *testing.T) {
	s := GetOffsetSlice()
	*s = append(*s, 10, 20)
	PutOffsetSlice(s)

	s2 := GetOffsetSlice()
	defer PutOffsetSlice(s2)
	assert.Empty(t, *s2)
}

func TestTokenSlicePool(t *testing.T) {
	s := GetTokenSlice()
	*s = append(*s, []byte("tok"))
	PutTokenSlice(s)

	s2 := GetTokenSlice()
	defer PutTokenSlice(s2)
	assert.Empty(t, *s2)
}
