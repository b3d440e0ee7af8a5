package tensor

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestBufferRefCounting(t *testing.T) {
	a, err := Zeros(Shape{4}, Float32)
	require.NoError(t, err)
	buf := a.buffer
	assert.Equal(t, int32(1), buf.refCount.Load())

	v, err := a.SliceExpr("1:3")
	require.NoError(t, err)
	assert.Equal(t, int32(2), buf.refCount.Load())

	a.Release()
	assert.Equal(t, int32(1), buf.refCount.Load())
	assert.NotNil(t, buf.data, "storage survives while a view holds a reference")

	v.Release()
	assert.Nil(t, buf.data)
}

func TestBufferAccessorChecksDType(t *testing.T) {
	a, err := Zeros(Shape{2}, Float32)
	require.NoError(t, err)
	assert.Panics(t, func() { a.buffer.int32s() })
	assert.Len(t, a.buffer.float32s(), 2)
}

func TestDTypeProperties(t *testing.T) {
	assert.Equal(t, 1, Int8.Size())
	assert.Equal(t, 2, Uint16.Size())
	assert.Equal(t, 4, Float32.Size())
	assert.Equal(t, 8, Float64.Size())
	assert.Equal(t, 1, Bool.Size())

	assert.True(t, Float32.IsFloat())
	assert.False(t, Int64.IsFloat())
	assert.True(t, Uint32.IsInteger())
	assert.False(t, Bool.IsInteger())
	assert.True(t, Int8.IsSigned())
	assert.False(t, Uint8.IsSigned())
	assert.True(t, Float64.IsSigned())
	assert.False(t, Bool.IsNumeric())

	assert.Equal(t, "float32", Float32.String())
	assert.Equal(t, "bool", Bool.String())
}

func TestStrideIterOrder(t *testing.T) {
	it := newStrideIter(Shape{2, 3}, Strides{3, 1}, 0)
	var got []int
	for {
		off, ok := it.next()
		if !ok {
			break
		}
		got = append(got, off)
	}
	assert.Equal(t, []int{0, 1, 2, 3, 4, 5}, got)
}

func TestStrideIterNegativeStrides(t *testing.T) {
	// A flipped (3,) axis over base offset 2.
	it := newStrideIter(Shape{3}, Strides{-1}, 2)
	var got []int
	for {
		off, ok := it.next()
		if !ok {
			break
		}
		got = append(got, off)
	}
	assert.Equal(t, []int{2, 1, 0}, got)
}

func TestStrideIterZeroStrideBroadcast(t *testing.T) {
	// A (3,) vector iterated as (2, 3): the row repeats.
	it := newStrideIter(Shape{2, 3}, Strides{0, 1}, 0)
	var got []int
	for {
		off, ok := it.next()
		if !ok {
			break
		}
		got = append(got, off)
	}
	assert.Equal(t, []int{0, 1, 2, 0, 1, 2}, got)
}

func TestStrideIterEmpty(t *testing.T) {
	it := newStrideIter(Shape{0, 3}, Strides{3, 1}, 0)
	_, ok := it.next()
	assert.False(t, ok)
}
