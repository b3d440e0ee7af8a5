package tensor

// strideIter walks a logical C-order index space, translating each position
// into a Buffer offset through a set of (possibly zero or negative) strides.
// It is the single iteration primitive behind elementwise dispatch,
// reductions and materialization, so strided, flipped and broadcast views
// all go through the same offset arithmetic.
type strideIter struct {
	shape   Shape
	strides Strides
	idx     []int
	cur     int
	pos     int
	n       int
}

func newStrideIter(shape Shape, strides Strides, base int) *strideIter {
	return &strideIter{
		shape:   shape,
		strides: strides,
		idx:     make([]int, len(shape)),
		cur:     base,
		n:       shape.NumElements(),
	}
}

// arrayIter iterates an array's own elements in logical C order.
func arrayIter(a *Array) *strideIter {
	return newStrideIter(a.shape, a.strides, a.offset)
}

// broadcastIter iterates operand a as if it had outShape, re-reading
// size-1 axes through zero strides.
func broadcastIter(a *Array, outShape Shape) *strideIter {
	return newStrideIter(outShape, broadcastStrides(a.shape, a.strides, outShape), a.offset)
}

// next returns the Buffer offset of the next element, or ok=false when the
// index space is exhausted.
func (it *strideIter) next() (off int, ok bool) {
	if it.pos >= it.n {
		return 0, false
	}
	off = it.cur
	it.pos++

	// Advance the multi-index with carry, updating the offset in place.
	for axis := len(it.shape) - 1; axis >= 0; axis-- {
		it.idx[axis]++
		it.cur += it.strides[axis]
		if it.idx[axis] < it.shape[axis] {
			break
		}
		it.cur -= it.idx[axis] * it.strides[axis]
		it.idx[axis] = 0
	}
	return off, true
}
