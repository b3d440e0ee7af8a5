package tensor

// Shape is the ordered sequence of axis extents. Rank 0 (empty shape) is a
// scalar with one element.
type Shape []int

// Strides is the per-axis element offset applied when stepping along each
// axis. Strides are signed: flipped axes carry negative values.
type Strides []int

// NumElements returns the total number of elements described by the shape.
func (s Shape) NumElements() int {
	n := 1
	for _, dim := range s {
		n *= dim
	}
	return n
}

// Validate checks that every extent is non-negative.
func (s Shape) Validate() error {
	for i, dim := range s {
		if dim < 0 {
			return shapeErrorf("negative extent %d at axis %d", dim, i)
		}
	}
	return nil
}

// Equal reports whether two shapes match axis for axis.
func (s Shape) Equal(other Shape) bool {
	if len(s) != len(other) {
		return false
	}
	for i := range s {
		if s[i] != other[i] {
			return false
		}
	}
	return true
}

// Clone returns a copy of the shape.
func (s Shape) Clone() Shape {
	clone := make(Shape, len(s))
	copy(clone, s)
	return clone
}

// ComputeStrides calculates row-major (C order) strides for the shape:
// stride[i] = product of all extents after axis i.
func (s Shape) ComputeStrides() Strides {
	strides := make(Strides, len(s))
	if len(s) == 0 {
		return strides
	}
	strides[len(s)-1] = 1
	for i := len(s) - 2; i >= 0; i-- {
		strides[i] = strides[i+1] * s[i+1]
	}
	return strides
}

// Clone returns a copy of the strides.
func (st Strides) Clone() Strides {
	clone := make(Strides, len(st))
	copy(clone, st)
	return clone
}

// BroadcastShapes aligns two shapes under NumPy broadcasting rules.
//
// Shapes are compared right to left; missing leading axes count as extent 1.
// At each position the extents must be equal, or one of them must be 1 (the
// size-1 side is stretched). A zero extent only matches 0 or 1.
//
// Examples:
//
//	(3, 1) with (1, 3) → (3, 3)
//	(2, 3) with (3)    → (2, 3)
//	(1, 3) with (1, 2) → error
func BroadcastShapes(a, b Shape) (Shape, error) {
	maxLen := max(len(a), len(b))
	result := make(Shape, maxLen)

	for i := 0; i < maxLen; i++ {
		aDim, bDim := 1, 1
		if idx := len(a) - 1 - i; idx >= 0 {
			aDim = a[idx]
		}
		if idx := len(b) - 1 - i; idx >= 0 {
			bDim = b[idx]
		}

		switch {
		case aDim == bDim:
			result[maxLen-1-i] = aDim
		case aDim == 1:
			result[maxLen-1-i] = bDim
		case bDim == 1:
			result[maxLen-1-i] = aDim
		default:
			return nil, shapeErrorf("shapes %v and %v not broadcastable at axis %d (%d vs %d)",
				a, b, maxLen-1-i, aDim, bDim)
		}
	}
	return result, nil
}

// BroadcastAll folds BroadcastShapes over any number of operand shapes.
func BroadcastAll(shapes ...Shape) (Shape, error) {
	if len(shapes) == 0 {
		return Shape{}, nil
	}
	out := shapes[0].Clone()
	for _, s := range shapes[1:] {
		next, err := BroadcastShapes(out, s)
		if err != nil {
			return nil, err
		}
		out = next
	}
	return out, nil
}

// broadcastStrides maps a view's own strides onto an output shape: axes that
// are padded or stretched (extent 1 against a larger output extent) get
// stride 0, so iteration re-reads the same element without copying.
func broadcastStrides(shape Shape, strides Strides, outShape Shape) Strides {
	out := make(Strides, len(outShape))
	offset := len(outShape) - len(shape)
	for i := range outShape {
		inIdx := i - offset
		switch {
		case inIdx < 0:
			out[i] = 0
		case shape[inIdx] == 1 && outShape[i] != 1:
			out[i] = 0
		default:
			out[i] = strides[inIdx]
		}
	}
	return out
}

// resolveAxis normalizes a possibly negative axis against rank.
func resolveAxis(axis, rank int) (int, error) {
	orig := axis
	if axis < 0 {
		axis += rank
	}
	if axis < 0 || axis >= rank {
		return 0, shapeErrorf("axis %d out of range for rank %d", orig, rank)
	}
	return axis, nil
}
