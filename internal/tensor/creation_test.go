package tensor

import (
	"math"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestZerosOnesFull(t *testing.T) {
	z, err := Zeros(Shape{2, 2}, Float32)
	require.NoError(t, err)
	assert.Equal(t, []float32{0, 0, 0, 0}, z.ToFlat())

	o, err := Ones(Shape{3}, Int16)
	require.NoError(t, err)
	assert.Equal(t, []int16{1, 1, 1}, o.ToFlat())

	ob, err := Ones(Shape{2}, Bool)
	require.NoError(t, err)
	assert.Equal(t, []bool{true, true}, ob.ToFlat())

	f, err := Full(Shape{2}, 3.5, Float64)
	require.NoError(t, err)
	assert.Equal(t, []float64{3.5, 3.5}, f.ToFlat())

	_, err = Full(Shape{2}, 1.5, Bool)
	assert.ErrorIs(t, err, ErrDType)

	_, err = Zeros(Shape{-1}, Float32)
	assert.ErrorIs(t, err, ErrShape)
}

func TestEye(t *testing.T) {
	e, err := Eye(3, Int64)
	require.NoError(t, err)
	assert.Equal(t, Shape{3, 3}, e.Shape())
	assert.Equal(t, []int64{1, 0, 0, 0, 1, 0, 0, 0, 1}, i64s(t, e))
}

func TestArange(t *testing.T) {
	a, err := Arange(0, 5, 1, Int64)
	require.NoError(t, err)
	assert.Equal(t, []int64{0, 1, 2, 3, 4}, i64s(t, a))

	// Fractional step.
	a, err = Arange(0, 1, 0.25, Float64)
	require.NoError(t, err)
	assert.Equal(t, []float64{0, 0.25, 0.5, 0.75}, f64s(t, a))

	// Descending.
	a, err = Arange(5, 0, -2, Int32)
	require.NoError(t, err)
	assert.Equal(t, []int32{5, 3, 1}, a.ToFlat())

	// Empty when the step points away from stop.
	a, err = Arange(0, 5, -1, Int64)
	require.NoError(t, err)
	assert.Equal(t, 0, a.Size())

	_, err = Arange(0, 5, 0, Int64)
	assert.ErrorIs(t, err, ErrInvalid)
	_, err = Arange(0, 5, 1, Bool)
	assert.ErrorIs(t, err, ErrDType)
}

func TestLinspace(t *testing.T) {
	a, err := Linspace(0, 1, 5)
	require.NoError(t, err)
	assert.Equal(t, []float64{0, 0.25, 0.5, 0.75, 1}, f64s(t, a))

	a, err = Linspace(0, 1, 5, WithoutEndpoint())
	require.NoError(t, err)
	assert.InDeltaSlice(t, []float64{0, 0.2, 0.4, 0.6, 0.8}, f64s(t, a), 1e-12)

	a, err = Linspace(0, 1, 1)
	require.NoError(t, err)
	assert.Equal(t, []float64{0}, f64s(t, a))

	a, err = Linspace(0, 1, 3, WithDType(Float32))
	require.NoError(t, err)
	assert.Equal(t, Float32, a.DType())

	_, err = Linspace(0, 1, 0)
	assert.ErrorIs(t, err, ErrInvalid)
	_, err = Linspace(0, 1, 3, WithDType(Int32))
	assert.ErrorIs(t, err, ErrDType)
}

func TestLogspace(t *testing.T) {
	a, err := Logspace(0, 2, 3)
	require.NoError(t, err)
	assert.InDeltaSlice(t, []float64{1, 10, 100}, f64s(t, a), 1e-9)

	a, err = Logspace(0, 3, 4, WithBase(2))
	require.NoError(t, err)
	assert.InDeltaSlice(t, []float64{1, 2, 4, 8}, f64s(t, a), 1e-9)
}

func TestGeomspace(t *testing.T) {
	a, err := Geomspace(1, 8, 4)
	require.NoError(t, err)
	assert.InDeltaSlice(t, []float64{1, 2, 4, 8}, f64s(t, a), 1e-9)

	a, err = Geomspace(-1, -100, 3)
	require.NoError(t, err)
	assert.InDeltaSlice(t, []float64{-1, -10, -100}, f64s(t, a), 1e-9)

	_, err = Geomspace(0, 8, 4)
	assert.ErrorIs(t, err, ErrInvalid)
	_, err = Geomspace(-1, 8, 4)
	assert.ErrorIs(t, err, ErrInvalid)
}

func TestFromNestedInference(t *testing.T) {
	a := mustNested(t, [][]int{{1, 2}, {3, 4}})
	assert.Equal(t, Int64, a.DType())
	assert.Equal(t, Shape{2, 2}, a.Shape())

	b := mustNested(t, []float32{1, 2})
	assert.Equal(t, Float64, b.DType(), "any float content infers the default float dtype")

	c := mustNested(t, []bool{true, false})
	assert.Equal(t, Bool, c.DType())

	d := mustNested(t, [][]any{{1, 2.5}, {3, 4}})
	assert.Equal(t, Float64, d.DType())
	assert.Equal(t, []float64{1, 2.5, 3, 4}, f64s(t, d))
}

func TestFromNestedWithDType(t *testing.T) {
	a := mustNested(t, []int{1, 2, 3}, WithDType(Uint16))
	assert.Equal(t, Uint16, a.DType())
	assert.Equal(t, []uint16{1, 2, 3}, a.ToFlat())
}

func TestFromNestedRejectsJagged(t *testing.T) {
	_, err := FromNested([][]int{{1, 2}, {3}})
	assert.ErrorIs(t, err, ErrShape)

	_, err = FromNested([]any{[]int{1}, 2})
	assert.ErrorIs(t, err, ErrShape)
}

func TestFromNestedRejectsMixedBool(t *testing.T) {
	_, err := FromNested([]any{true, 1})
	assert.ErrorIs(t, err, ErrDType)
}

func TestFromNestedDeep(t *testing.T) {
	a := mustNested(t, [][][]int{{{1, 2}}, {{3, 4}}})
	assert.Equal(t, Shape{2, 1, 2}, a.Shape())
	assert.Equal(t, []int64{1, 2, 3, 4}, i64s(t, a))
}

func TestFromNestedNaNRoundTrip(t *testing.T) {
	a := mustNested(t, []float64{1, math.NaN()})
	got := f64s(t, a)
	assert.Equal(t, 1.0, got[0])
	assert.True(t, math.IsNaN(got[1]))
}
