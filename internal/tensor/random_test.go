package tensor

import (
	"math"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestRandRange(t *testing.T) {
	a, err := Rand(Shape{100}, WithSeed(1))
	require.NoError(t, err)
	assert.Equal(t, Float64, a.DType())
	for _, v := range f64s(t, a) {
		assert.GreaterOrEqual(t, v, 0.0)
		assert.Less(t, v, 1.0)
	}
}

func TestRandSeedDeterministic(t *testing.T) {
	a, err := Rand(Shape{10}, WithSeed(42))
	require.NoError(t, err)
	b, err := Rand(Shape{10}, WithSeed(42))
	require.NoError(t, err)
	assert.Equal(t, f64s(t, a), f64s(t, b), "identical seeds give identical streams")

	c, err := Rand(Shape{10}, WithSeed(43))
	require.NoError(t, err)
	assert.NotEqual(t, f64s(t, a), f64s(t, c))
}

func TestRandRejectsNonFloat(t *testing.T) {
	_, err := Rand(Shape{3}, WithDType(Int32))
	assert.ErrorIs(t, err, ErrDType)
}

func TestUniform(t *testing.T) {
	a, err := Uniform(-2, 2, Shape{200}, WithSeed(7))
	require.NoError(t, err)
	for _, v := range f64s(t, a) {
		assert.GreaterOrEqual(t, v, -2.0)
		assert.Less(t, v, 2.0)
	}

	_, err = Uniform(1, 1, Shape{3})
	assert.ErrorIs(t, err, ErrInvalid)
	_, err = Uniform(2, 1, Shape{3})
	assert.ErrorIs(t, err, ErrInvalid)
}

func TestNormalMoments(t *testing.T) {
	a, err := Normal(10, 2, Shape{5000}, WithSeed(3))
	require.NoError(t, err)

	vals := f64s(t, a)
	sum := 0.0
	for _, v := range vals {
		sum += v
	}
	mean := sum / float64(len(vals))
	assert.InDelta(t, 10, mean, 0.2)

	ss := 0.0
	for _, v := range vals {
		ss += (v - mean) * (v - mean)
	}
	std := math.Sqrt(ss / float64(len(vals)))
	assert.InDelta(t, 2, std, 0.2)
}

func TestNormalErrors(t *testing.T) {
	_, err := Normal(0, 0, Shape{3})
	assert.ErrorIs(t, err, ErrInvalid)
	_, err = Normal(0, -1, Shape{3})
	assert.ErrorIs(t, err, ErrInvalid)
}

func TestRandN(t *testing.T) {
	a, err := RandN(Shape{100}, WithSeed(5), WithDType(Float32))
	require.NoError(t, err)
	assert.Equal(t, Float32, a.DType())
}

func TestRandInt(t *testing.T) {
	a, err := RandInt(5, 15, Shape{200}, WithSeed(9))
	require.NoError(t, err)
	assert.Equal(t, Int64, a.DType())
	for _, v := range i64s(t, a) {
		assert.GreaterOrEqual(t, v, int64(5))
		assert.Less(t, v, int64(15))
	}
}

func TestRandIntDTypeAndErrors(t *testing.T) {
	a, err := RandInt(0, 100, Shape{10}, WithSeed(1), WithDType(Uint8))
	require.NoError(t, err)
	assert.Equal(t, Uint8, a.DType())

	_, err = RandInt(3, 3, Shape{2})
	assert.ErrorIs(t, err, ErrInvalid)
	_, err = RandInt(0, 2, Shape{2}, WithDType(Float32))
	assert.ErrorIs(t, err, ErrDType)
}
