package tensor

// View transforms: every function here derives a new geometry over the same
// Buffer and never touches element data.

// Reshape returns the array with a new shape of equal element count. One
// extent may be -1 and is inferred. A contiguous source reshapes into a
// view; a non-contiguous source is copied into a fresh contiguous Buffer
// first, since its stride layout does not admit a reshape without movement.
func (a *Array) Reshape(newShape Shape) (*Array, error) {
	shape := newShape.Clone()
	infer := -1
	known := 1
	for i, dim := range shape {
		switch {
		case dim == -1:
			if infer >= 0 {
				return nil, shapeErrorf("reshape: at most one extent may be -1")
			}
			infer = i
		case dim < 0:
			return nil, shapeErrorf("reshape: negative extent %d", dim)
		default:
			known *= dim
		}
	}
	size := a.Size()
	if infer >= 0 {
		if known == 0 || size%known != 0 {
			return nil, shapeErrorf("reshape: cannot infer extent for size %d into %v", size, []int(newShape))
		}
		shape[infer] = size / known
		known *= shape[infer]
	}
	if known != size {
		return nil, shapeErrorf("reshape: size %d incompatible with shape %v", size, []int(newShape))
	}

	if a.IsContiguous() {
		return a.newView(shape, shape.ComputeStrides(), a.offset), nil
	}
	c, err := a.Contiguous()
	if err != nil {
		return nil, err
	}
	c.shape = shape
	c.strides = shape.ComputeStrides()
	return c, nil
}

// Transpose reverses the axis order without moving data.
func (a *Array) Transpose() *Array {
	rank := len(a.shape)
	shape := make(Shape, rank)
	strides := make(Strides, rank)
	for i := 0; i < rank; i++ {
		shape[i] = a.shape[rank-1-i]
		strides[i] = a.strides[rank-1-i]
	}
	return a.newView(shape, strides, a.offset)
}

// PermuteAxes reorders axes by the given permutation of 0..rank-1.
func (a *Array) PermuteAxes(order ...int) (*Array, error) {
	rank := len(a.shape)
	if len(order) != rank {
		return nil, shapeErrorf("permute: got %d axes for rank %d", len(order), rank)
	}
	seen := make([]bool, rank)
	shape := make(Shape, rank)
	strides := make(Strides, rank)
	for i, ax := range order {
		resolved, err := resolveAxis(ax, rank)
		if err != nil {
			return nil, err
		}
		if seen[resolved] {
			return nil, shapeErrorf("permute: duplicate axis %d", ax)
		}
		seen[resolved] = true
		shape[i] = a.shape[resolved]
		strides[i] = a.strides[resolved]
	}
	return a.newView(shape, strides, a.offset), nil
}

// SwapAxes exchanges two axes. Swapping an axis with itself is a no-op that
// returns the receiver.
func (a *Array) SwapAxes(ax1, ax2 int) (*Array, error) {
	rank := len(a.shape)
	i, err := resolveAxis(ax1, rank)
	if err != nil {
		return nil, err
	}
	j, err := resolveAxis(ax2, rank)
	if err != nil {
		return nil, err
	}
	if i == j {
		return a, nil
	}
	order := make([]int, rank)
	for k := range order {
		order[k] = k
	}
	order[i], order[j] = j, i
	return a.PermuteAxes(order...)
}

// ExpandDims inserts an extent-1 axis at the given position (negative
// positions count from the end, -1 meaning after the last axis).
func (a *Array) ExpandDims(axis int) (*Array, error) {
	rank := len(a.shape)
	orig := axis
	if axis < 0 {
		axis += rank + 1
	}
	if axis < 0 || axis > rank {
		return nil, shapeErrorf("expand: axis %d out of range for rank %d", orig, rank)
	}
	shape := make(Shape, 0, rank+1)
	strides := make(Strides, 0, rank+1)
	shape = append(append(shape, a.shape[:axis]...), 1)
	shape = append(shape, a.shape[axis:]...)
	strides = append(append(strides, a.strides[:axis]...), 0)
	strides = append(strides, a.strides[axis:]...)
	return a.newView(shape, strides, a.offset), nil
}

// Squeeze removes extent-1 axes: all of them when none are named, else the
// named ones (which must have extent 1). A non-scalar array is never
// squeezed all the way to rank 0; one extent-1 axis is retained instead.
func (a *Array) Squeeze(axes ...int) (*Array, error) {
	rank := len(a.shape)
	drop := make([]bool, rank)
	if len(axes) == 0 {
		for i, dim := range a.shape {
			if dim == 1 {
				drop[i] = true
			}
		}
	} else {
		for _, ax := range axes {
			i, err := resolveAxis(ax, rank)
			if err != nil {
				return nil, err
			}
			if a.shape[i] != 1 {
				return nil, shapeErrorf("squeeze: axis %d has extent %d", ax, a.shape[i])
			}
			drop[i] = true
		}
	}

	shape := make(Shape, 0, rank)
	strides := make(Strides, 0, rank)
	for i := range a.shape {
		if !drop[i] {
			shape = append(shape, a.shape[i])
			strides = append(strides, a.strides[i])
		}
	}
	if len(shape) == 0 && rank > 0 {
		shape = append(shape, 1)
		strides = append(strides, 1)
	}
	return a.newView(shape, strides, a.offset), nil
}

// MergeAxes unifies two adjacent axes into one. The axes must be collapsible
// without copying: the outer stride must equal inner extent times inner
// stride.
func (a *Array) MergeAxes(outer, inner int) (*Array, error) {
	rank := len(a.shape)
	i, err := resolveAxis(outer, rank)
	if err != nil {
		return nil, err
	}
	j, err := resolveAxis(inner, rank)
	if err != nil {
		return nil, err
	}
	if j != i+1 {
		return nil, shapeErrorf("merge: axes %d and %d are not adjacent", outer, inner)
	}
	if a.strides[i] != a.shape[j]*a.strides[j] {
		return nil, shapeErrorf("merge: axes %d and %d are not stride-compatible", outer, inner)
	}
	shape := make(Shape, 0, rank-1)
	strides := make(Strides, 0, rank-1)
	shape = append(append(shape, a.shape[:i]...), a.shape[i]*a.shape[j])
	shape = append(shape, a.shape[j+1:]...)
	strides = append(append(strides, a.strides[:i]...), a.strides[j])
	strides = append(strides, a.strides[j+1:]...)
	return a.newView(shape, strides, a.offset), nil
}

// Flip reverses an axis by negating its stride and shifting the base offset
// to the former last element. No data moves.
func (a *Array) Flip(axis int) (*Array, error) {
	i, err := resolveAxis(axis, len(a.shape))
	if err != nil {
		return nil, err
	}
	shape := a.shape.Clone()
	strides := a.strides.Clone()
	offset := a.offset
	if shape[i] > 0 {
		offset += (shape[i] - 1) * strides[i]
	}
	strides[i] = -strides[i]
	return a.newView(shape, strides, offset), nil
}
