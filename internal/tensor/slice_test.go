package tensor

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestSliceRange(t *testing.T) {
	a, err := Arange(0, 10, 1, Int64)
	require.NoError(t, err)

	s, err := a.SliceExpr("2:5")
	require.NoError(t, err)
	assert.True(t, s.IsView())
	assert.Equal(t, []int64{2, 3, 4}, i64s(t, s))
}

func TestSliceStep(t *testing.T) {
	a, err := Arange(0, 10, 1, Int64)
	require.NoError(t, err)

	s, err := a.SliceExpr("::2")
	require.NoError(t, err)
	assert.Equal(t, []int64{0, 2, 4, 6, 8}, i64s(t, s))

	s, err = a.SliceExpr("1:8:3")
	require.NoError(t, err)
	assert.Equal(t, []int64{1, 4, 7}, i64s(t, s))
}

func TestSliceNegativeBounds(t *testing.T) {
	a, err := Arange(0, 10, 1, Int64)
	require.NoError(t, err)

	s, err := a.SliceExpr("-3:")
	require.NoError(t, err)
	assert.Equal(t, []int64{7, 8, 9}, i64s(t, s))

	s, err = a.SliceExpr(":-7")
	require.NoError(t, err)
	assert.Equal(t, []int64{0, 1, 2}, i64s(t, s))
}

func TestSliceBoundsClamp(t *testing.T) {
	a, err := Arange(0, 5, 1, Int64)
	require.NoError(t, err)

	s, err := a.SliceExpr("1:100")
	require.NoError(t, err)
	assert.Equal(t, []int64{1, 2, 3, 4}, i64s(t, s))

	// Empty when the clamped range is inverted.
	s, err = a.SliceExpr("4:2")
	require.NoError(t, err)
	assert.Equal(t, Shape{0}, s.Shape())
}

func TestSliceStepErrors(t *testing.T) {
	a, err := Arange(0, 5, 1, Int64)
	require.NoError(t, err)

	_, err = a.SliceExpr("::0")
	assert.ErrorIs(t, err, ErrInvalid)

	_, err = a.SliceExpr("::-1")
	assert.ErrorIs(t, err, ErrInvalid, "negative steps are not supported, Flip reverses an axis")
}

func TestSliceIntegerDropsAxis(t *testing.T) {
	a := mustNested(t, [][]int{{1, 2, 3}, {4, 5, 6}})

	s, err := a.SliceExpr("1")
	require.NoError(t, err)
	assert.Equal(t, Shape{3}, s.Shape())
	assert.Equal(t, []int64{4, 5, 6}, i64s(t, s))

	s, err = a.Slice(All(), At(-1))
	require.NoError(t, err)
	assert.Equal(t, Shape{2}, s.Shape())
	assert.Equal(t, []int64{3, 6}, i64s(t, s))
}

func TestSlicePartialKeepsTrailingAxes(t *testing.T) {
	a, err := Zeros(Shape{2, 3, 4}, Float32)
	require.NoError(t, err)

	s, err := a.Slice(At(0))
	require.NoError(t, err)
	assert.Equal(t, Shape{3, 4}, s.Shape())
}

func TestSliceEllipsis(t *testing.T) {
	a, err := Zeros(Shape{2, 3, 4}, Float32)
	require.NoError(t, err)

	s, err := a.Slice(At(0), Ell(), At(1))
	require.NoError(t, err)
	assert.Equal(t, Shape{3}, s.Shape())

	s, err = a.Slice(Ell(), At(0))
	require.NoError(t, err)
	assert.Equal(t, Shape{2, 3}, s.Shape())

	_, err = a.Slice(Ell(), Ell())
	assert.ErrorIs(t, err, ErrIndex)
}

func TestSliceTooManySelectors(t *testing.T) {
	a, err := Zeros(Shape{2, 3}, Float32)
	require.NoError(t, err)

	_, err = a.Slice(At(0), At(0), At(0))
	assert.ErrorIs(t, err, ErrIndex)
}

func TestSliceSharesBuffer(t *testing.T) {
	a, err := Arange(0, 6, 1, Int64)
	require.NoError(t, err)

	s, err := a.SliceExpr("1:4")
	require.NoError(t, err)
	require.NoError(t, s.Set(99, 0))

	v, err := a.Get(1)
	require.NoError(t, err)
	assert.Equal(t, int64(99), v)
}

func TestSliceOfSlice(t *testing.T) {
	a, err := Arange(0, 20, 1, Int64)
	require.NoError(t, err)

	s, err := a.SliceExpr("2:18:2") // 2 4 6 8 10 12 14 16
	require.NoError(t, err)
	ss, err := s.SliceExpr("1::3") // 4 10 16
	require.NoError(t, err)
	assert.Equal(t, []int64{4, 10, 16}, i64s(t, ss))
}

func TestParseSelectors(t *testing.T) {
	sels, err := ParseSelectors("1, 2:5, :, ..., ::2, -1")
	require.NoError(t, err)
	require.Len(t, sels, 6)

	_, err = ParseSelectors("1:b")
	assert.ErrorIs(t, err, ErrIndex)
	_, err = ParseSelectors("spam")
	assert.ErrorIs(t, err, ErrIndex)
	_, err = ParseSelectors("1:2:3:4")
	assert.ErrorIs(t, err, ErrIndex)
}

func TestSliceIndexOutOfBounds(t *testing.T) {
	a, err := Zeros(Shape{3}, Float32)
	require.NoError(t, err)

	_, err = a.Slice(At(3))
	assert.ErrorIs(t, err, ErrIndex)
	_, err = a.Slice(At(-4))
	assert.ErrorIs(t, err, ErrIndex)
}
