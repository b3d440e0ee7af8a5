package tensor

import (
	"math"

	"github.com/chewxy/math32"
	"golang.org/x/exp/constraints"
)

// Reductions. Axis variants reduce one axis (negative axes allowed) with an
// optional kept extent-1 axis; the plain variants reduce the flattened
// array to rank 0. sum/prod/min/max/cumsum/cumprod preserve the input dtype
// including native integer wraparound; mean/var/std produce a float dtype;
// argmin/argmax produce Int64. Any NaN among reduced float elements
// propagates to the result.

type redOp int

const (
	redSum redOp = iota
	redProd
	redMin
	redMax
)

func (op redOp) String() string {
	return [...]string{"sum", "prod", "min", "max"}[op]
}

// hasIdentity reports whether the op has a defined result over zero
// elements (sum→0, prod→1).
func (op redOp) hasIdentity() bool {
	return op == redSum || op == redProd
}

// axisGeometry splits the array's geometry at one axis: the iteration space
// of all remaining axes plus the (extent, stride) of the reduced axis.
func (a *Array) axisGeometry(axis int) (outer Shape, outerStrides Strides, n, stride int) {
	outer = make(Shape, 0, len(a.shape)-1)
	outerStrides = make(Strides, 0, len(a.shape)-1)
	for i := range a.shape {
		if i == axis {
			continue
		}
		outer = append(outer, a.shape[i])
		outerStrides = append(outerStrides, a.strides[i])
	}
	return outer, outerStrides, a.shape[axis], a.strides[axis]
}

func reducedShape(shape Shape, axis int, keep bool) Shape {
	out := make(Shape, 0, len(shape))
	for i, dim := range shape {
		switch {
		case i != axis:
			out = append(out, dim)
		case keep:
			out = append(out, 1)
		}
	}
	return out
}

// Sum reduces the whole array to a rank-0 result of the same dtype.
func (a *Array) Sum() (*Array, error) { return a.reduceFull(redSum) }

// Prod reduces the whole array by multiplication.
func (a *Array) Prod() (*Array, error) { return a.reduceFull(redProd) }

// Min returns the smallest element; an empty array is an error.
func (a *Array) Min() (*Array, error) { return a.reduceFull(redMin) }

// Max returns the largest element; an empty array is an error.
func (a *Array) Max() (*Array, error) { return a.reduceFull(redMax) }

// SumAxis reduces one axis by addition. A zero-extent axis sums to 0.
func (a *Array) SumAxis(axis int, keepdims bool) (*Array, error) {
	return a.reduceAxis(redSum, axis, keepdims)
}

// ProdAxis reduces one axis by multiplication. A zero-extent axis yields 1.
func (a *Array) ProdAxis(axis int, keepdims bool) (*Array, error) {
	return a.reduceAxis(redProd, axis, keepdims)
}

// MinAxis reduces one axis to its smallest element per lane.
func (a *Array) MinAxis(axis int, keepdims bool) (*Array, error) {
	return a.reduceAxis(redMin, axis, keepdims)
}

// MaxAxis reduces one axis to its largest element per lane.
func (a *Array) MaxAxis(axis int, keepdims bool) (*Array, error) {
	return a.reduceAxis(redMax, axis, keepdims)
}

func (a *Array) checkReduce(op redOp, n int) error {
	if a.dtype == Bool {
		return dtypeErrorf("%s: not defined for bool arrays", op)
	}
	if n == 0 && !op.hasIdentity() {
		return invalidErrorf("%s: zero-size reduction has no identity", op)
	}
	return nil
}

func (a *Array) reduceFull(op redOp) (*Array, error) {
	if err := a.checkReduce(op, a.Size()); err != nil {
		return nil, err
	}
	out, err := newRoot(Shape{}, a.dtype)
	if err != nil {
		return nil, err
	}
	a.withNumeric(func(k numericKernels) {
		k.reduce(op, out, a, arrayIter(a), a.Size())
	})
	return out, nil
}

func (a *Array) reduceAxis(op redOp, axis int, keepdims bool) (*Array, error) {
	ax, err := resolveAxis(axis, len(a.shape))
	if err != nil {
		return nil, err
	}
	outer, outerStrides, n, stride := a.axisGeometry(ax)
	if err := a.checkReduce(op, n); err != nil {
		return nil, err
	}
	out, err := newRoot(reducedShape(a.shape, ax, keepdims), a.dtype)
	if err != nil {
		return nil, err
	}
	a.withNumeric(func(k numericKernels) {
		k.reduceLanes(op, out, a, newStrideIter(outer, outerStrides, a.offset), n, stride)
	})
	return out, nil
}

// numericKernels is the per-dtype monomorphization handle: withNumeric
// instantiates the generic kernels once for the array's element type.
type numericKernels interface {
	reduce(op redOp, out, src *Array, it *strideIter, n int)
	reduceLanes(op redOp, out, src *Array, outer *strideIter, n, stride int)
	argReduce(isMax bool, out []int64, src *Array, outer *strideIter, n, stride int)
	cumulate(op redOp, out, src *Array, srcOuter, dstOuter *strideIter, n, srcStride, dstStride int)
}

type kernels[T constraints.Integer | constraints.Float] struct {
	data func(*Array) []T
}

func (a *Array) withNumeric(f func(numericKernels)) {
	switch a.dtype {
	case Int8:
		f(kernels[int8]{func(x *Array) []int8 { return x.buffer.int8s() }})
	case Int16:
		f(kernels[int16]{func(x *Array) []int16 { return x.buffer.int16s() }})
	case Int32:
		f(kernels[int32]{func(x *Array) []int32 { return x.buffer.int32s() }})
	case Int64:
		f(kernels[int64]{func(x *Array) []int64 { return x.buffer.int64s() }})
	case Uint8:
		f(kernels[uint8]{func(x *Array) []uint8 { return x.buffer.uint8s() }})
	case Uint16:
		f(kernels[uint16]{func(x *Array) []uint16 { return x.buffer.uint16s() }})
	case Uint32:
		f(kernels[uint32]{func(x *Array) []uint32 { return x.buffer.uint32s() }})
	case Uint64:
		f(kernels[uint64]{func(x *Array) []uint64 { return x.buffer.uint64s() }})
	case Float32:
		f(kernels[float32]{func(x *Array) []float32 { return x.buffer.float32s() }})
	case Float64:
		f(kernels[float64]{func(x *Array) []float64 { return x.buffer.float64s() }})
	default:
		panic("withNumeric on bool array")
	}
}

// fold accumulates n elements walked by next() into one value. NaN is
// sticky: acc != acc only ever holds for float NaN.
func fold[T constraints.Integer | constraints.Float](op redOp, src []T, next func() int, n int) T {
	var acc T
	switch op {
	case redSum:
		for i := 0; i < n; i++ {
			acc += src[next()]
		}
	case redProd:
		acc = 1
		for i := 0; i < n; i++ {
			acc *= src[next()]
		}
	case redMin, redMax:
		acc = src[next()]
		for i := 1; i < n; i++ {
			v := src[next()]
			if acc != acc {
				continue
			}
			if v != v || (op == redMin && v < acc) || (op == redMax && v > acc) {
				acc = v
			}
		}
	}
	return acc
}

func (k kernels[T]) reduce(op redOp, out, src *Array, it *strideIter, n int) {
	s := k.data(src)
	k.data(out)[out.offset] = fold(op, s, func() int { o, _ := it.next(); return o }, n)
}

func (k kernels[T]) reduceLanes(op redOp, out, src *Array, outer *strideIter, n, stride int) {
	s, d := k.data(src), k.data(out)
	for i := 0; ; i++ {
		base, ok := outer.next()
		if !ok {
			return
		}
		off := base
		d[i] = fold(op, s, func() int { o := off; off += stride; return o }, n)
	}
}

func (k kernels[T]) argReduce(isMax bool, out []int64, src *Array, outer *strideIter, n, stride int) {
	s := k.data(src)
	for i := 0; ; i++ {
		base, ok := outer.next()
		if !ok {
			return
		}
		best := s[base]
		bestIdx := 0
		for j := 1; j < n; j++ {
			v := s[base+j*stride]
			if best != best {
				break // NaN dominates; first NaN wins
			}
			if v != v || (isMax && v > best) || (!isMax && v < best) {
				best, bestIdx = v, j
			}
		}
		out[i] = int64(bestIdx)
	}
}

func (k kernels[T]) cumulate(op redOp, out, src *Array, srcOuter, dstOuter *strideIter, n, srcStride, dstStride int) {
	s, d := k.data(src), k.data(out)
	for {
		base, ok := srcOuter.next()
		if !ok {
			return
		}
		dstBase, _ := dstOuter.next()
		var acc T
		if op == redProd {
			acc = 1
		}
		for j := 0; j < n; j++ {
			v := s[base+j*srcStride]
			if op == redSum {
				acc += v
			} else {
				acc *= v
			}
			d[dstBase+j*dstStride] = acc
		}
	}
}

// ArgMin returns the flat logical index of the smallest element.
func (a *Array) ArgMin() (*Array, error) { return a.argFull(false) }

// ArgMax returns the flat logical index of the largest element.
func (a *Array) ArgMax() (*Array, error) { return a.argFull(true) }

// ArgMinAxis returns per-lane indices of the smallest element along axis.
// Ties resolve to the lowest index; NaN dominates every numeric value.
func (a *Array) ArgMinAxis(axis int, keepdims bool) (*Array, error) {
	return a.argAxis(false, axis, keepdims)
}

// ArgMaxAxis returns per-lane indices of the largest element along axis.
func (a *Array) ArgMaxAxis(axis int, keepdims bool) (*Array, error) {
	return a.argAxis(true, axis, keepdims)
}

func (a *Array) argFull(isMax bool) (*Array, error) {
	if a.dtype == Bool {
		return nil, dtypeErrorf("argreduce: not defined for bool arrays")
	}
	if a.Size() == 0 {
		return nil, invalidErrorf("argreduce: empty array")
	}
	flat, err := a.Ravel()
	if err != nil {
		return nil, err
	}
	return flat.argAxis(isMax, 0, false)
}

func (a *Array) argAxis(isMax bool, axis int, keepdims bool) (*Array, error) {
	if a.dtype == Bool {
		return nil, dtypeErrorf("argreduce: not defined for bool arrays")
	}
	ax, err := resolveAxis(axis, len(a.shape))
	if err != nil {
		return nil, err
	}
	outer, outerStrides, n, stride := a.axisGeometry(ax)
	if n == 0 {
		return nil, invalidErrorf("argreduce: zero-extent axis %d", axis)
	}
	out, err := newRoot(reducedShape(a.shape, ax, keepdims), Int64)
	if err != nil {
		return nil, err
	}
	a.withNumeric(func(k numericKernels) {
		k.argReduce(isMax, out.buffer.int64s(), a, newStrideIter(outer, outerStrides, a.offset), n, stride)
	})
	return out, nil
}

// CumSum returns the running sum over the flattened array as a 1-D result.
func (a *Array) CumSum() (*Array, error) { return a.cumFull(redSum) }

// CumProd returns the running product over the flattened array.
func (a *Array) CumProd() (*Array, error) { return a.cumFull(redProd) }

// CumSumAxis returns the running sum along one axis, same shape as the
// input.
func (a *Array) CumSumAxis(axis int) (*Array, error) { return a.cumAxis(redSum, axis) }

// CumProdAxis returns the running product along one axis.
func (a *Array) CumProdAxis(axis int) (*Array, error) { return a.cumAxis(redProd, axis) }

func (a *Array) cumFull(op redOp) (*Array, error) {
	if a.dtype == Bool {
		return nil, dtypeErrorf("%s: not defined for bool arrays", op)
	}
	flat, err := a.Flatten()
	if err != nil {
		return nil, err
	}
	if flat.Size() == 0 {
		return flat, nil
	}
	return flat.cumAxis(op, 0)
}

func (a *Array) cumAxis(op redOp, axis int) (*Array, error) {
	if a.dtype == Bool {
		return nil, dtypeErrorf("%s: not defined for bool arrays", op)
	}
	ax, err := resolveAxis(axis, len(a.shape))
	if err != nil {
		return nil, err
	}
	out, err := newRoot(a.shape, a.dtype)
	if err != nil {
		return nil, err
	}
	srcOuter, srcOuterStrides, n, stride := a.axisGeometry(ax)
	dstOuter, dstOuterStrides, _, dstStride := out.axisGeometry(ax)
	a.withNumeric(func(k numericKernels) {
		k.cumulate(op, out, a,
			newStrideIter(srcOuter, srcOuterStrides, a.offset),
			newStrideIter(dstOuter, dstOuterStrides, 0),
			n, stride, dstStride)
	})
	return out, nil
}

// Mean reduces the whole array to its arithmetic mean as a float result.
func (a *Array) Mean() (*Array, error) {
	flat, err := a.Ravel()
	if err != nil {
		return nil, err
	}
	return flat.momentAxis(0, false, momentMean, 0)
}

// MeanAxis reduces one axis to its arithmetic mean.
func (a *Array) MeanAxis(axis int, keepdims bool) (*Array, error) {
	return a.momentAxis(axis, keepdims, momentMean, 0)
}

// Var returns the variance of the whole array with divisor count-ddof.
func (a *Array) Var(ddof int) (*Array, error) {
	flat, err := a.Ravel()
	if err != nil {
		return nil, err
	}
	return flat.momentAxis(0, false, momentVar, ddof)
}

// Std returns the standard deviation of the whole array.
func (a *Array) Std(ddof int) (*Array, error) {
	flat, err := a.Ravel()
	if err != nil {
		return nil, err
	}
	return flat.momentAxis(0, false, momentStd, ddof)
}

// VarAxis returns the per-lane variance along one axis; the divisor is
// count-ddof and must be positive.
func (a *Array) VarAxis(axis int, keepdims bool, ddof int) (*Array, error) {
	return a.momentAxis(axis, keepdims, momentVar, ddof)
}

// StdAxis returns the per-lane standard deviation along one axis.
func (a *Array) StdAxis(axis int, keepdims bool, ddof int) (*Array, error) {
	return a.momentAxis(axis, keepdims, momentStd, ddof)
}

type momentKind int

const (
	momentMean momentKind = iota
	momentVar
	momentStd
)

// floatResultDType keeps Float32 inputs in Float32; everything else widens
// to Float64.
func (a *Array) floatResultDType() DType {
	if a.dtype == Float32 {
		return Float32
	}
	return Float64
}

func (a *Array) momentAxis(axis int, keepdims bool, kind momentKind, ddof int) (*Array, error) {
	if a.dtype == Bool {
		return nil, dtypeErrorf("mean/var/std: not defined for bool arrays")
	}
	ax, err := resolveAxis(axis, len(a.shape))
	if err != nil {
		return nil, err
	}
	outer, outerStrides, n, stride := a.axisGeometry(ax)
	if n == 0 {
		return nil, invalidErrorf("mean/var/std: zero-extent axis %d", axis)
	}
	div := n
	if kind != momentMean {
		div = n - ddof
		if div <= 0 {
			return nil, mathErrorf("ddof %d leaves non-positive divisor for count %d", ddof, n)
		}
	}

	dt := a.floatResultDType()
	out, err := newRoot(reducedShape(a.shape, ax, keepdims), dt)
	if err != nil {
		return nil, err
	}
	it := newStrideIter(outer, outerStrides, a.offset)
	for i := 0; ; i++ {
		base, ok := it.next()
		if !ok {
			return out, nil
		}
		sum := 0.0
		for j := 0; j < n; j++ {
			sum += a.floatAt(base + j*stride)
		}
		m := sum / float64(n)
		v := m
		if kind != momentMean {
			ss := 0.0
			for j := 0; j < n; j++ {
				d := a.floatAt(base+j*stride) - m
				ss += d * d
			}
			v = ss / float64(div)
			if kind == momentStd {
				if dt == Float32 {
					v = float64(math32.Sqrt(float32(v)))
				} else {
					v = math.Sqrt(v)
				}
			}
		}
		if dt == Float32 {
			out.buffer.float32s()[i] = float32(v)
		} else {
			out.buffer.float64s()[i] = v
		}
	}
}

// floatAt reads one element widened to float64, for float-domain
// reductions.
func (a *Array) floatAt(off int) float64 {
	switch a.dtype {
	case Int8:
		return float64(a.buffer.int8s()[off])
	case Int16:
		return float64(a.buffer.int16s()[off])
	case Int32:
		return float64(a.buffer.int32s()[off])
	case Int64:
		return float64(a.buffer.int64s()[off])
	case Uint8:
		return float64(a.buffer.uint8s()[off])
	case Uint16:
		return float64(a.buffer.uint16s()[off])
	case Uint32:
		return float64(a.buffer.uint32s()[off])
	case Uint64:
		return float64(a.buffer.uint64s()[off])
	case Float32:
		return float64(a.buffer.float32s()[off])
	case Float64:
		return a.buffer.float64s()[off]
	default:
		panic("floatAt on bool array")
	}
}
