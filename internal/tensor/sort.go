package tensor

import (
	"sort"

	"golang.org/x/exp/constraints"
)

// SortKind selects the axis-wise ordering algorithm. All kinds produce the
// same values; only Stable and Mergesort guarantee the original relative
// order among equal keys.
type SortKind int

const (
	Quicksort SortKind = iota
	Mergesort
	Heapsort
	Stable
)

// The total order per axis is ascending numeric with NaN greater than every
// other value including +Inf, so NaNs always land at the tail; Bool orders
// false before true. The `v != v` NaN test compiles away for non-floats.

func ascLess[T constraints.Ordered](a, b T) bool {
	return a < b || (b != b && a == a)
}

func descLess[T constraints.Ordered](a, b T) bool {
	return b < a || (a != a && b == b)
}

func boolAscLess(a, b bool) bool { return !a && b }
func boolDescLess(a, b bool) bool { return a && !b }

// sortPerm orders perm (pre-filled 0..n-1) so that vals[perm[i]] ascends
// under less, using the requested algorithm.
func sortPerm[T comparable](perm []int, vals []T, kind SortKind, less func(T, T) bool) {
	cmp := func(i, j int) bool { return less(vals[perm[i]], vals[perm[j]]) }
	switch kind {
	case Stable, Mergesort:
		sort.SliceStable(perm, cmp)
	case Heapsort:
		heapsortPerm(perm, vals, less)
	default:
		sort.Slice(perm, cmp)
	}
}

func heapsortPerm[T comparable](perm []int, vals []T, less func(T, T) bool) {
	n := len(perm)
	siftDown := func(root, end int) {
		for {
			child := 2*root + 1
			if child >= end {
				return
			}
			if child+1 < end && less(vals[perm[child]], vals[perm[child+1]]) {
				child++
			}
			if !less(vals[perm[root]], vals[perm[child]]) {
				return
			}
			perm[root], perm[child] = perm[child], perm[root]
			root = child
		}
	}
	for i := n/2 - 1; i >= 0; i-- {
		siftDown(i, n)
	}
	for end := n - 1; end > 0; end-- {
		perm[0], perm[end] = perm[end], perm[0]
		siftDown(0, end)
	}
}

// Sort returns a new array with each lane along axis in ascending order.
func (a *Array) Sort(axis int, kind SortKind) (*Array, error) {
	return a.sortCore(axis, kind, false)
}

// ArgSort returns the Int64 permutation that sorts each lane along axis.
// Gathering the input by this permutation reproduces Sort's output exactly.
func (a *Array) ArgSort(axis int, kind SortKind) (*Array, error) {
	return a.sortCore(axis, kind, true)
}

func (a *Array) sortCore(axis int, kind SortKind, arg bool) (*Array, error) {
	ax, err := resolveAxis(axis, len(a.shape))
	if err != nil {
		return nil, err
	}
	dt := a.dtype
	if arg {
		dt = Int64
	}
	out, err := newRoot(a.shape, dt)
	if err != nil {
		return nil, err
	}

	srcOuter, srcOuterStrides, n, srcStride := a.axisGeometry(ax)
	dstOuter, dstOuterStrides, _, dstStride := out.axisGeometry(ax)
	si := newStrideIter(srcOuter, srcOuterStrides, a.offset)
	di := newStrideIter(dstOuter, dstOuterStrides, 0)

	switch a.dtype {
	case Int8:
		sortLanes(a.buffer.int8s(), si, srcStride, out, di, dstStride, n, kind, arg, ascLess[int8])
	case Int16:
		sortLanes(a.buffer.int16s(), si, srcStride, out, di, dstStride, n, kind, arg, ascLess[int16])
	case Int32:
		sortLanes(a.buffer.int32s(), si, srcStride, out, di, dstStride, n, kind, arg, ascLess[int32])
	case Int64:
		sortLanes(a.buffer.int64s(), si, srcStride, out, di, dstStride, n, kind, arg, ascLess[int64])
	case Uint8:
		sortLanes(a.buffer.uint8s(), si, srcStride, out, di, dstStride, n, kind, arg, ascLess[uint8])
	case Uint16:
		sortLanes(a.buffer.uint16s(), si, srcStride, out, di, dstStride, n, kind, arg, ascLess[uint16])
	case Uint32:
		sortLanes(a.buffer.uint32s(), si, srcStride, out, di, dstStride, n, kind, arg, ascLess[uint32])
	case Uint64:
		sortLanes(a.buffer.uint64s(), si, srcStride, out, di, dstStride, n, kind, arg, ascLess[uint64])
	case Float32:
		sortLanes(a.buffer.float32s(), si, srcStride, out, di, dstStride, n, kind, arg, ascLess[float32])
	case Float64:
		sortLanes(a.buffer.float64s(), si, srcStride, out, di, dstStride, n, kind, arg, ascLess[float64])
	case Bool:
		sortLanes(a.buffer.bools(), si, srcStride, out, di, dstStride, n, kind, arg, boolAscLess)
	}
	return out, nil
}

func sortLanes[T comparable](s []T, srcOuter *strideIter, srcStride int,
	out *Array, dstOuter *strideIter, dstStride, n int,
	kind SortKind, arg bool, less func(T, T) bool,
) {
	perm := make([]int, n)
	vals := make([]T, n)
	for {
		base, ok := srcOuter.next()
		if !ok {
			return
		}
		dstBase, _ := dstOuter.next()
		for i := range perm {
			perm[i] = i
			vals[i] = s[base+i*srcStride]
		}
		sortPerm(perm, vals, kind, less)
		for j, p := range perm {
			if arg {
				out.buffer.int64s()[dstBase+j*dstStride] = int64(p)
			} else {
				writeLane(out, dstBase+j*dstStride, vals[p])
			}
		}
	}
}

// writeLane stores a kernel value of the out array's exact element type.
func writeLane[T comparable](out *Array, off int, v T) {
	out.setElemRaw(off, v)
}

// TopK selects the k extreme elements per lane along axis. With
// largest=true the k largest are taken, else the k smallest. With
// sorted=true the selection is ordered most-extreme first; otherwise it
// keeps the elements' original source-index order. Returns the selected
// values and their Int64 source indices.
func (a *Array) TopK(k, axis int, largest, sorted bool) (*Array, *Array, error) {
	ax, err := resolveAxis(axis, len(a.shape))
	if err != nil {
		return nil, nil, err
	}
	n := a.shape[ax]
	if k < 0 || k > n {
		return nil, nil, invalidErrorf("topk: k=%d out of range for axis extent %d", k, n)
	}

	outShape := a.shape.Clone()
	outShape[ax] = k
	values, err := newRoot(outShape, a.dtype)
	if err != nil {
		return nil, nil, err
	}
	indices, err := newRoot(outShape, Int64)
	if err != nil {
		return nil, nil, err
	}

	srcOuter, srcOuterStrides, _, srcStride := a.axisGeometry(ax)
	dstOuter, dstOuterStrides, _, dstStride := values.axisGeometry(ax)
	si := newStrideIter(srcOuter, srcOuterStrides, a.offset)
	di := newStrideIter(dstOuter, dstOuterStrides, 0)

	switch a.dtype {
	case Int8:
		topkLanes(a.buffer.int8s(), si, srcStride, values, indices, di, dstStride, n, k, sorted, pickLess[int8](largest))
	case Int16:
		topkLanes(a.buffer.int16s(), si, srcStride, values, indices, di, dstStride, n, k, sorted, pickLess[int16](largest))
	case Int32:
		topkLanes(a.buffer.int32s(), si, srcStride, values, indices, di, dstStride, n, k, sorted, pickLess[int32](largest))
	case Int64:
		topkLanes(a.buffer.int64s(), si, srcStride, values, indices, di, dstStride, n, k, sorted, pickLess[int64](largest))
	case Uint8:
		topkLanes(a.buffer.uint8s(), si, srcStride, values, indices, di, dstStride, n, k, sorted, pickLess[uint8](largest))
	case Uint16:
		topkLanes(a.buffer.uint16s(), si, srcStride, values, indices, di, dstStride, n, k, sorted, pickLess[uint16](largest))
	case Uint32:
		topkLanes(a.buffer.uint32s(), si, srcStride, values, indices, di, dstStride, n, k, sorted, pickLess[uint32](largest))
	case Uint64:
		topkLanes(a.buffer.uint64s(), si, srcStride, values, indices, di, dstStride, n, k, sorted, pickLess[uint64](largest))
	case Float32:
		topkLanes(a.buffer.float32s(), si, srcStride, values, indices, di, dstStride, n, k, sorted, pickLess[float32](largest))
	case Float64:
		topkLanes(a.buffer.float64s(), si, srcStride, values, indices, di, dstStride, n, k, sorted, pickLess[float64](largest))
	case Bool:
		less := boolAscLess
		if largest {
			less = boolDescLess
		}
		topkLanes(a.buffer.bools(), si, srcStride, values, indices, di, dstStride, n, k, sorted, less)
	}
	return values, indices, nil
}

func pickLess[T constraints.Ordered](largest bool) func(T, T) bool {
	if largest {
		return descLess[T]
	}
	return ascLess[T]
}

func topkLanes[T comparable](s []T, srcOuter *strideIter, srcStride int,
	values, indices *Array, dstOuter *strideIter, dstStride, n, k int,
	sorted bool, less func(T, T) bool,
) {
	perm := make([]int, n)
	vals := make([]T, n)
	for {
		base, ok := srcOuter.next()
		if !ok {
			return
		}
		dstBase, _ := dstOuter.next()
		for i := range perm {
			perm[i] = i
			vals[i] = s[base+i*srcStride]
		}
		// Stable selection keeps the lowest source index among ties.
		sort.SliceStable(perm, func(i, j int) bool { return less(vals[perm[i]], vals[perm[j]]) })
		top := append([]int(nil), perm[:k]...)
		if !sorted {
			sort.Ints(top)
		}
		for j, p := range top {
			writeLane(values, dstBase+j*dstStride, vals[p])
			indices.buffer.int64s()[dstBase+j*dstStride] = int64(p)
		}
	}
}
