package tensor

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestConcat(t *testing.T) {
	a := mustNested(t, [][]int{{1, 2}, {3, 4}})
	b := mustNested(t, [][]int{{5, 6}})

	c, err := Concat([]*Array{a, b}, 0)
	require.NoError(t, err)
	assert.Equal(t, Shape{3, 2}, c.Shape())
	assert.Equal(t, []int64{1, 2, 3, 4, 5, 6}, i64s(t, c))
}

func TestConcatAxis1(t *testing.T) {
	a := mustNested(t, [][]int{{1, 2}, {3, 4}})
	b := mustNested(t, [][]int{{5}, {6}})

	c, err := Concat([]*Array{a, b}, 1)
	require.NoError(t, err)
	assert.Equal(t, Shape{2, 3}, c.Shape())
	assert.Equal(t, []int64{1, 2, 5, 3, 4, 6}, i64s(t, c))
}

func TestConcatPromotes(t *testing.T) {
	a := mustNested(t, []int{1, 2}, WithDType(Int32))
	b := mustNested(t, []float64{0.5})

	c, err := Concat([]*Array{a, b}, 0)
	require.NoError(t, err)
	assert.Equal(t, Float64, c.DType())
	assert.Equal(t, []float64{1, 2, 0.5}, f64s(t, c))
}

func TestConcatErrors(t *testing.T) {
	a := mustNested(t, [][]int{{1, 2}})
	v := mustNested(t, []int{1})

	_, err := Concat(nil, 0)
	assert.ErrorIs(t, err, ErrInvalid)

	_, err = Concat([]*Array{a, v}, 0)
	assert.ErrorIs(t, err, ErrShape)

	b := mustNested(t, [][]int{{1, 2, 3}})
	_, err = Concat([]*Array{a, b}, 0)
	assert.ErrorIs(t, err, ErrShape)
}

func TestStack(t *testing.T) {
	a := mustNested(t, []int{1, 2, 3})
	b := mustNested(t, []int{4, 5, 6})

	s, err := Stack([]*Array{a, b}, 0)
	require.NoError(t, err)
	assert.Equal(t, Shape{2, 3}, s.Shape())
	assert.Equal(t, []int64{1, 2, 3, 4, 5, 6}, i64s(t, s))

	s, err = Stack([]*Array{a, b}, 1)
	require.NoError(t, err)
	assert.Equal(t, Shape{3, 2}, s.Shape())
	assert.Equal(t, []int64{1, 4, 2, 5, 3, 6}, i64s(t, s))
}

func TestStackShapeMismatch(t *testing.T) {
	a := mustNested(t, []int{1, 2})
	b := mustNested(t, []int{1, 2, 3})

	_, err := Stack([]*Array{a, b}, 0)
	assert.ErrorIs(t, err, ErrShape)
}
