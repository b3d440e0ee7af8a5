package tensor

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

// Test helpers shared by the package tests.

func mustNested(t *testing.T, v any, opts ...Option) *Array {
	t.Helper()
	a, err := FromNested(v, opts...)
	require.NoError(t, err)
	return a
}

func f64s(t *testing.T, a *Array) []float64 {
	t.Helper()
	return a.ToFlat().([]float64)
}

func i64s(t *testing.T, a *Array) []int64 {
	t.Helper()
	return a.ToFlat().([]int64)
}

func scalarOf(t *testing.T, a *Array) any {
	t.Helper()
	v, err := a.ToScalar()
	require.NoError(t, err)
	return v
}

func TestArrayIntrospection(t *testing.T) {
	a := mustNested(t, [][]float64{{1, 2, 3}, {4, 5, 6}})

	assert.Equal(t, Shape{2, 3}, a.Shape())
	assert.Equal(t, Strides{3, 1}, a.Strides())
	assert.Equal(t, 2, a.NDim())
	assert.Equal(t, 6, a.Size())
	assert.Equal(t, Float64, a.DType())
	assert.Equal(t, 8, a.ItemSize())
	assert.Equal(t, 48, a.NumBytes())
	assert.False(t, a.IsView())
	assert.True(t, a.IsContiguous())
}

func TestGetFullIndexReturnsScalar(t *testing.T) {
	a := mustNested(t, [][]int{{1, 2, 3}, {4, 5, 6}})

	v, err := a.Get(1, 2)
	require.NoError(t, err)
	assert.Equal(t, int64(6), v)

	// Negative indices count from the end of each axis.
	v, err = a.Get(-1, -3)
	require.NoError(t, err)
	assert.Equal(t, int64(4), v)
}

func TestGetPartialIndexReturnsView(t *testing.T) {
	a := mustNested(t, [][]int{{1, 2, 3}, {4, 5, 6}})

	row, err := a.Get(1)
	require.NoError(t, err)
	view := row.(*Array)
	assert.True(t, view.IsView())
	assert.Equal(t, Shape{3}, view.Shape())
	assert.Equal(t, []int64{4, 5, 6}, i64s(t, view))
}

func TestGetOutOfBounds(t *testing.T) {
	a := mustNested(t, []int{1, 2, 3, 4, 5})

	_, err := a.Get(5)
	assert.ErrorIs(t, err, ErrIndex)
	_, err = a.Get(-6)
	assert.ErrorIs(t, err, ErrIndex)
	_, err = a.Get(0, 0)
	assert.ErrorIs(t, err, ErrIndex)
}

func TestSetWritesThroughSharedBuffer(t *testing.T) {
	a := mustNested(t, [][]int{{1, 2}, {3, 4}})
	row, err := a.Get(0)
	require.NoError(t, err)
	view := row.(*Array)

	require.NoError(t, view.Set(99, 1))

	v, err := a.Get(0, 1)
	require.NoError(t, err)
	assert.Equal(t, int64(99), v, "write through a view must be visible in the root")
}

func TestFlatAddressingFollowsViewGeometry(t *testing.T) {
	a := mustNested(t, [][]int{{1, 2, 3}, {4, 5, 6}})
	at := a.Transpose()

	// Logical C order of the transpose is 1, 4, 2, 5, 3, 6.
	want := []int64{1, 4, 2, 5, 3, 6}
	for i, w := range want {
		v, err := at.GetAt(i)
		require.NoError(t, err)
		assert.Equal(t, w, v, "flat index %d", i)
	}

	_, err := at.GetAt(6)
	assert.ErrorIs(t, err, ErrIndex)
}

func TestSetAtOnView(t *testing.T) {
	a := mustNested(t, [][]int{{1, 2, 3}, {4, 5, 6}})
	at := a.Transpose()

	require.NoError(t, at.SetAt(1, 40)) // element (1, 0) of the root

	v, err := a.Get(1, 0)
	require.NoError(t, err)
	assert.Equal(t, int64(40), v)
}

func TestViewSurvivesRootRelease(t *testing.T) {
	a := mustNested(t, []int{7, 8, 9})
	row, err := a.Get()
	require.NoError(t, err)
	view := row.(*Array)

	a.Release()

	v, err := view.Get(2)
	require.NoError(t, err)
	assert.Equal(t, int64(9), v, "view must keep the buffer alive after the root is released")
	view.Release()
}

func TestFill(t *testing.T) {
	a, err := Zeros(Shape{2, 2}, Int32)
	require.NoError(t, err)

	require.NoError(t, a.Fill(7))
	assert.Equal(t, []int32{7, 7, 7, 7}, a.ToFlat())

	err = a.Fill(true)
	assert.ErrorIs(t, err, ErrDType)
}

func TestFillThroughSlice(t *testing.T) {
	a := mustNested(t, []int{0, 1, 2, 3, 4, 5})
	evens, err := a.SliceExpr("::2")
	require.NoError(t, err)

	require.NoError(t, evens.Fill(-1))
	assert.Equal(t, []int64{-1, 1, -1, 3, -1, 5}, i64s(t, a))
}

func TestAssignBroadcasts(t *testing.T) {
	a, err := Zeros(Shape{2, 3}, Float64)
	require.NoError(t, err)
	row := mustNested(t, []float64{1, 2, 3})

	require.NoError(t, a.Assign(row))
	assert.Equal(t, []float64{1, 2, 3, 1, 2, 3}, f64s(t, a))
}

func TestAssignCastsAcrossDTypes(t *testing.T) {
	a, err := Zeros(Shape{3}, Int32)
	require.NoError(t, err)
	src := mustNested(t, []float64{1.9, -2.9, 3})

	require.NoError(t, a.Assign(src))
	assert.Equal(t, []int32{1, -2, 3}, a.ToFlat(), "float to integer assignment truncates")
}

func TestAssignRejectsShrinkingBroadcast(t *testing.T) {
	a, err := Zeros(Shape{3}, Float64)
	require.NoError(t, err)
	src, err := Zeros(Shape{2, 3}, Float64)
	require.NoError(t, err)

	err = a.Assign(src)
	assert.ErrorIs(t, err, ErrShape)
}

func TestRank0Scalar(t *testing.T) {
	a := mustNested(t, 42)
	assert.Equal(t, 0, a.NDim())
	assert.Equal(t, 1, a.Size())
	assert.Equal(t, int64(42), scalarOf(t, a))

	b := mustNested(t, []int{1, 2})
	_, err := b.ToScalar()
	assert.ErrorIs(t, err, ErrShape)
}
