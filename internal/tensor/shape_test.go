package tensor

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestComputeStrides(t *testing.T) {
	tests := []struct {
		shape Shape
		want  Strides
	}{
		{Shape{}, Strides{}},
		{Shape{4}, Strides{1}},
		{Shape{2, 3}, Strides{3, 1}},
		{Shape{2, 3, 4}, Strides{12, 4, 1}},
		{Shape{1, 5}, Strides{5, 1}},
	}
	for _, tt := range tests {
		assert.Equal(t, tt.want, tt.shape.ComputeStrides(), "shape %v", tt.shape)
	}
}

func TestNumElements(t *testing.T) {
	assert.Equal(t, 1, Shape{}.NumElements())
	assert.Equal(t, 24, Shape{2, 3, 4}.NumElements())
	assert.Equal(t, 0, Shape{2, 0, 4}.NumElements())
}

func TestShapeValidate(t *testing.T) {
	assert.NoError(t, Shape{2, 0, 3}.Validate())
	assert.ErrorIs(t, Shape{2, -1}.Validate(), ErrShape)
}

func TestBroadcastShapes(t *testing.T) {
	tests := []struct {
		name string
		a, b Shape
		want Shape
	}{
		{"equal", Shape{2, 3}, Shape{2, 3}, Shape{2, 3}},
		{"scalar left", Shape{}, Shape{2, 3}, Shape{2, 3}},
		{"row vector", Shape{2, 3}, Shape{3}, Shape{2, 3}},
		{"column against row", Shape{3, 1}, Shape{1, 3}, Shape{3, 3}},
		{"stretch ones", Shape{1, 1}, Shape{4, 5}, Shape{4, 5}},
		{"rank pad", Shape{5, 1, 4}, Shape{3, 1}, Shape{5, 3, 4}},
		{"zero extent", Shape{0}, Shape{1}, Shape{0}},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got, err := BroadcastShapes(tt.a, tt.b)
			require.NoError(t, err)
			assert.Equal(t, tt.want, got)

			// Broadcasting is symmetric.
			flipped, err := BroadcastShapes(tt.b, tt.a)
			require.NoError(t, err)
			assert.Equal(t, tt.want, flipped)
		})
	}
}

func TestBroadcastShapesIncompatible(t *testing.T) {
	_, err := BroadcastShapes(Shape{1, 3}, Shape{1, 2})
	assert.ErrorIs(t, err, ErrShape)

	_, err = BroadcastShapes(Shape{2, 3}, Shape{4, 3})
	assert.ErrorIs(t, err, ErrShape)

	_, err = BroadcastShapes(Shape{0}, Shape{3})
	assert.ErrorIs(t, err, ErrShape, "zero extent only matches 0 or 1")
}

func TestBroadcastAll(t *testing.T) {
	got, err := BroadcastAll(Shape{2, 1}, Shape{1, 3}, Shape{3})
	require.NoError(t, err)
	assert.Equal(t, Shape{2, 3}, got)

	_, err = BroadcastAll(Shape{2}, Shape{3})
	assert.ErrorIs(t, err, ErrShape)
}

func TestBroadcastStridesZeroOnStretchedAxes(t *testing.T) {
	// A (3,) vector iterated as (2, 3) re-reads through stride 0.
	got := broadcastStrides(Shape{3}, Strides{1}, Shape{2, 3})
	assert.Equal(t, Strides{0, 1}, got)

	// A (3, 1) column stretched to (3, 4).
	got = broadcastStrides(Shape{3, 1}, Strides{1, 1}, Shape{3, 4})
	assert.Equal(t, Strides{1, 0}, got)
}

func TestResolveAxis(t *testing.T) {
	ax, err := resolveAxis(-1, 3)
	require.NoError(t, err)
	assert.Equal(t, 2, ax)

	_, err = resolveAxis(3, 3)
	assert.ErrorIs(t, err, ErrShape)
	_, err = resolveAxis(-4, 3)
	assert.ErrorIs(t, err, ErrShape)
}
