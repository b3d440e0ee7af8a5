// Copyright 2026 NumGo Authors. All rights reserved.
// Use of this source code is governed by an Apache 2.0
// license that can be found in the LICENSE file.

package tensor_test

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/numgo-ml/numgo/tensor"
)

// TestPublicAPIRoundTrip drives a representative workflow through the
// exported package: build, broadcast, slice, reduce, sort.
func TestPublicAPIRoundTrip(t *testing.T) {
	a, err := tensor.FromNested([][]float64{{1, 2, 3}, {4, 5, 6}})
	require.NoError(t, err)
	assert.Equal(t, tensor.Shape{2, 3}, a.Shape())
	assert.Equal(t, tensor.Float64, a.DType())

	row, err := tensor.FromNested([]float64{10, 20, 30})
	require.NoError(t, err)

	sum, err := a.Add(row)
	require.NoError(t, err)
	assert.Equal(t, []float64{11, 22, 33, 14, 25, 36}, sum.ToFlat())

	s, err := sum.SliceExpr("1, ::2")
	require.NoError(t, err)
	assert.Equal(t, []float64{14, 36}, s.ToFlat())

	total, err := sum.Sum()
	require.NoError(t, err)
	v, err := total.ToScalar()
	require.NoError(t, err)
	assert.Equal(t, 141.0, v)
}

func TestPublicSelectors(t *testing.T) {
	a, err := tensor.Arange(0, 10, 1, tensor.Int64)
	require.NoError(t, err)

	s, err := a.Slice(tensor.RngStep(1, 8, 3))
	require.NoError(t, err)
	assert.Equal(t, []int64{1, 4, 7}, s.ToFlat())

	sels, err := tensor.ParseSelectors("2:5")
	require.NoError(t, err)
	s, err = a.Slice(sels...)
	require.NoError(t, err)
	assert.Equal(t, []int64{2, 3, 4}, s.ToFlat())
}

func TestPublicErrorSentinels(t *testing.T) {
	a, err := tensor.Zeros(tensor.Shape{2}, tensor.Int32)
	require.NoError(t, err)

	_, err = a.Get(5)
	assert.ErrorIs(t, err, tensor.ErrIndex)

	b, err := tensor.Zeros(tensor.Shape{3}, tensor.Int32)
	require.NoError(t, err)
	_, err = a.Add(b)
	assert.ErrorIs(t, err, tensor.ErrShape)
}

func TestPublicPromote(t *testing.T) {
	dt, err := tensor.Promote(tensor.Int32, tensor.Float64)
	require.NoError(t, err)
	assert.Equal(t, tensor.Float64, dt)

	shape, err := tensor.BroadcastShapes(tensor.Shape{3, 1}, tensor.Shape{1, 3})
	require.NoError(t, err)
	assert.Equal(t, tensor.Shape{3, 3}, shape)
}

func TestPublicSortAndTopK(t *testing.T) {
	a, err := tensor.FromNested([]int{3, 1, 2})
	require.NoError(t, err)

	s, err := a.Sort(0, tensor.Stable)
	require.NoError(t, err)
	assert.Equal(t, []int64{1, 2, 3}, s.ToFlat())

	vals, idx, err := a.TopK(1, 0, true, true)
	require.NoError(t, err)
	assert.Equal(t, []int64{3}, vals.ToFlat())
	assert.Equal(t, []int64{0}, idx.ToFlat())
}

func TestPublicConcatWhere(t *testing.T) {
	x, err := tensor.Ones(tensor.Shape{2}, tensor.Int64)
	require.NoError(t, err)
	y, err := tensor.Zeros(tensor.Shape{2}, tensor.Int64)
	require.NoError(t, err)

	c, err := tensor.Concat([]*tensor.Array{x, y}, 0)
	require.NoError(t, err)
	assert.Equal(t, []int64{1, 1, 0, 0}, c.ToFlat())

	cond, err := tensor.FromNested([]bool{true, false})
	require.NoError(t, err)
	w, err := tensor.Where(cond, x, y)
	require.NoError(t, err)
	assert.Equal(t, []int64{1, 0}, w.ToFlat())
}
