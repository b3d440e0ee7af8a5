package tensor

import (
	"math"

	"github.com/chewxy/math32"
	"golang.org/x/exp/constraints"
)

// Basic linear algebra over rank ≤ 2, per the engine's scope: matmul, dot,
// outer, trace and the Euclidean/Frobenius norm.

// MatMul multiplies two rank-2 arrays. Operand dtypes promote; the result
// is a fresh root of shape (m, n).
func (a *Array) MatMul(b *Array) (*Array, error) {
	if a.NDim() != 2 || b.NDim() != 2 {
		return nil, shapeErrorf("matmul: requires rank-2 operands, got %d and %d", a.NDim(), b.NDim())
	}
	if a.shape[1] != b.shape[0] {
		return nil, shapeErrorf("matmul: inner extents differ: %v x %v", []int(a.shape), []int(b.shape))
	}
	if a.dtype == Bool || b.dtype == Bool {
		return nil, dtypeErrorf("matmul: not defined for bool arrays")
	}
	dt, err := Promote(a.dtype, b.dtype)
	if err != nil {
		return nil, err
	}
	lhs, err := a.castContiguous(dt)
	if err != nil {
		return nil, err
	}
	rhs, err := b.castContiguous(dt)
	if err != nil {
		return nil, err
	}

	m, k, n := a.shape[0], a.shape[1], b.shape[1]
	out, err := newRoot(Shape{m, n}, dt)
	if err != nil {
		return nil, err
	}
	switch dt {
	case Int8:
		matmulLoop(out.buffer.int8s(), lhs.buffer.int8s(), rhs.buffer.int8s(), m, k, n)
	case Int16:
		matmulLoop(out.buffer.int16s(), lhs.buffer.int16s(), rhs.buffer.int16s(), m, k, n)
	case Int32:
		matmulLoop(out.buffer.int32s(), lhs.buffer.int32s(), rhs.buffer.int32s(), m, k, n)
	case Int64:
		matmulLoop(out.buffer.int64s(), lhs.buffer.int64s(), rhs.buffer.int64s(), m, k, n)
	case Uint8:
		matmulLoop(out.buffer.uint8s(), lhs.buffer.uint8s(), rhs.buffer.uint8s(), m, k, n)
	case Uint16:
		matmulLoop(out.buffer.uint16s(), lhs.buffer.uint16s(), rhs.buffer.uint16s(), m, k, n)
	case Uint32:
		matmulLoop(out.buffer.uint32s(), lhs.buffer.uint32s(), rhs.buffer.uint32s(), m, k, n)
	case Uint64:
		matmulLoop(out.buffer.uint64s(), lhs.buffer.uint64s(), rhs.buffer.uint64s(), m, k, n)
	case Float32:
		matmulLoop(out.buffer.float32s(), lhs.buffer.float32s(), rhs.buffer.float32s(), m, k, n)
	case Float64:
		matmulLoop(out.buffer.float64s(), lhs.buffer.float64s(), rhs.buffer.float64s(), m, k, n)
	}
	return out, nil
}

// castContiguous returns the array itself when it is already dense with the
// wanted dtype, else a dense converted copy.
func (a *Array) castContiguous(dt DType) (*Array, error) {
	if a.dtype == dt && a.IsContiguous() && a.offset == 0 {
		return a, nil
	}
	if a.dtype == dt {
		return a.Contiguous()
	}
	return a.AsType(dt)
}

func matmulLoop[T constraints.Integer | constraints.Float](out, x, y []T, m, k, n int) {
	for i := 0; i < m; i++ {
		for j := 0; j < n; j++ {
			var acc T
			for p := 0; p < k; p++ {
				acc += x[i*k+p] * y[p*n+j]
			}
			out[i*n+j] = acc
		}
	}
}

// Dot computes the inner product of two 1-D arrays as a rank-0 result, the
// matrix product for rank-2 operands, and matrix-vector for a rank-2 and a
// rank-1 operand.
func (a *Array) Dot(b *Array) (*Array, error) {
	switch {
	case a.NDim() == 1 && b.NDim() == 1:
		if a.shape[0] != b.shape[0] {
			return nil, shapeErrorf("dot: lengths differ: %d vs %d", a.shape[0], b.shape[0])
		}
		row, err := a.Reshape(Shape{1, a.shape[0]})
		if err != nil {
			return nil, err
		}
		col, err := b.Reshape(Shape{b.shape[0], 1})
		if err != nil {
			return nil, err
		}
		prod, err := row.MatMul(col)
		if err != nil {
			return nil, err
		}
		return prod.Reshape(Shape{})
	case a.NDim() == 2 && b.NDim() == 1:
		col, err := b.Reshape(Shape{b.shape[0], 1})
		if err != nil {
			return nil, err
		}
		prod, err := a.MatMul(col)
		if err != nil {
			return nil, err
		}
		return prod.Reshape(Shape{prod.shape[0]})
	case a.NDim() == 2 && b.NDim() == 2:
		return a.MatMul(b)
	default:
		return nil, shapeErrorf("dot: unsupported ranks %d and %d", a.NDim(), b.NDim())
	}
}

// Outer computes the outer product of two 1-D arrays as an (m, n) matrix.
func (a *Array) Outer(b *Array) (*Array, error) {
	if a.NDim() != 1 || b.NDim() != 1 {
		return nil, shapeErrorf("outer: requires 1-D operands, got ranks %d and %d", a.NDim(), b.NDim())
	}
	col, err := a.Reshape(Shape{a.shape[0], 1})
	if err != nil {
		return nil, err
	}
	row, err := b.Reshape(Shape{1, b.shape[0]})
	if err != nil {
		return nil, err
	}
	return col.Mul(row)
}

// Trace sums the main diagonal of a rank-2 array, preserving dtype.
func (a *Array) Trace() (*Array, error) {
	if a.NDim() != 2 {
		return nil, shapeErrorf("trace: requires rank 2, got %d", a.NDim())
	}
	n := min(a.shape[0], a.shape[1])
	// The diagonal is a 1-D view with stride = sum of both axis strides.
	diag := a.newView(Shape{n}, Strides{a.strides[0] + a.strides[1]}, a.offset)
	defer diag.Release()
	return diag.Sum()
}

// Norm returns the Euclidean (vector) or Frobenius (matrix) norm as a
// rank-0 float result.
func (a *Array) Norm() (*Array, error) {
	if a.dtype == Bool {
		return nil, dtypeErrorf("norm: not defined for bool arrays")
	}
	dt := a.floatResultDType()
	out, err := newRoot(Shape{}, dt)
	if err != nil {
		return nil, err
	}
	ss := 0.0
	it := arrayIter(a)
	for {
		off, ok := it.next()
		if !ok {
			break
		}
		v := a.floatAt(off)
		ss += v * v
	}
	if dt == Float32 {
		out.buffer.float32s()[0] = math32.Sqrt(float32(ss))
	} else {
		out.buffer.float64s()[0] = math.Sqrt(ss)
	}
	return out, nil
}
