package tensor

import (
	"math"

	"golang.org/x/exp/constraints"
)

// Elementwise dispatch. The pipeline for every binary op is: resolve the
// broadcast shape, promote the result dtype, cast both operands into the
// promoted domain, allocate a fresh contiguous output, then run one
// monomorphized kernel selected by a single dtype switch.

type arithOp int

const (
	opAdd arithOp = iota
	opSub
	opMul
	opDiv
	opRem
)

func (op arithOp) String() string {
	return [...]string{"add", "sub", "mul", "div", "rem"}[op]
}

type cmpOp int

const (
	opEq cmpOp = iota
	opNe
	opLt
	opLe
	opGt
	opGe
)

type bitOp int

const (
	opAnd bitOp = iota
	opOr
	opXor
)

// operands normalizes `b` (an *Array or a host scalar) against `a`: both
// sides come back cast to the promoted dtype, together with the broadcast
// output shape. Temporaries created by casting are independent roots.
func (a *Array) operands(b any) (lhs, rhs *Array, outShape Shape, dt DType, err error) {
	rb, isArray := b.(*Array)
	if isArray {
		dt, err = Promote(a.dtype, rb.dtype)
		if err != nil {
			return nil, nil, nil, 0, err
		}
		outShape, err = BroadcastShapes(a.shape, rb.shape)
		if err != nil {
			return nil, nil, nil, 0, err
		}
	} else {
		dt, err = promoteWithScalar(a.dtype, b)
		if err != nil {
			return nil, nil, nil, 0, err
		}
		outShape = a.shape.Clone()
		rb, err = Full(Shape{}, b, dt)
		if err != nil {
			return nil, nil, nil, 0, err
		}
	}

	lhs, rhs = a, rb
	if lhs.dtype != dt {
		if lhs, err = a.AsType(dt); err != nil {
			return nil, nil, nil, 0, err
		}
	}
	if rhs.dtype != dt {
		if rhs, err = rb.AsType(dt); err != nil {
			return nil, nil, nil, 0, err
		}
	}
	return lhs, rhs, outShape, dt, nil
}

// Add returns a + b with broadcasting. b may be an *Array or a scalar.
func (a *Array) Add(b any) (*Array, error) { return a.arith(b, opAdd) }

// Sub returns a - b with broadcasting.
func (a *Array) Sub(b any) (*Array, error) { return a.arith(b, opSub) }

// Mul returns a * b with broadcasting.
func (a *Array) Mul(b any) (*Array, error) { return a.arith(b, opMul) }

// Div returns a / b with broadcasting. Integer division by zero is a
// MathError; float division follows IEEE-754 (±Inf, NaN for 0/0).
func (a *Array) Div(b any) (*Array, error) { return a.arith(b, opDiv) }

// Rem returns the remainder of a / b with broadcasting.
func (a *Array) Rem(b any) (*Array, error) { return a.arith(b, opRem) }

func (a *Array) arith(b any, op arithOp) (*Array, error) {
	if a.dtype == Bool {
		return nil, dtypeErrorf("%s: arithmetic not defined for bool arrays", op)
	}
	if rb, ok := b.(*Array); ok && rb.dtype == Bool {
		return nil, dtypeErrorf("%s: arithmetic not defined for bool arrays", op)
	}
	lhs, rhs, outShape, dt, err := a.operands(b)
	if err != nil {
		return nil, err
	}
	out, err := newRoot(outShape, dt)
	if err != nil {
		return nil, err
	}

	switch dt {
	case Int8:
		err = intArith(op, out.buffer.int8s(), lhs, rhs, lhs.buffer.int8s(), rhs.buffer.int8s(), outShape)
	case Int16:
		err = intArith(op, out.buffer.int16s(), lhs, rhs, lhs.buffer.int16s(), rhs.buffer.int16s(), outShape)
	case Int32:
		err = intArith(op, out.buffer.int32s(), lhs, rhs, lhs.buffer.int32s(), rhs.buffer.int32s(), outShape)
	case Int64:
		err = intArith(op, out.buffer.int64s(), lhs, rhs, lhs.buffer.int64s(), rhs.buffer.int64s(), outShape)
	case Uint8:
		err = intArith(op, out.buffer.uint8s(), lhs, rhs, lhs.buffer.uint8s(), rhs.buffer.uint8s(), outShape)
	case Uint16:
		err = intArith(op, out.buffer.uint16s(), lhs, rhs, lhs.buffer.uint16s(), rhs.buffer.uint16s(), outShape)
	case Uint32:
		err = intArith(op, out.buffer.uint32s(), lhs, rhs, lhs.buffer.uint32s(), rhs.buffer.uint32s(), outShape)
	case Uint64:
		err = intArith(op, out.buffer.uint64s(), lhs, rhs, lhs.buffer.uint64s(), rhs.buffer.uint64s(), outShape)
	case Float32:
		floatArith(op, out.buffer.float32s(), lhs, rhs, lhs.buffer.float32s(), rhs.buffer.float32s(), outShape)
	case Float64:
		floatArith(op, out.buffer.float64s(), lhs, rhs, lhs.buffer.float64s(), rhs.buffer.float64s(), outShape)
	}
	if err != nil {
		out.Release()
		return nil, err
	}
	return out, nil
}

func intArith[T constraints.Integer](op arithOp, out []T, x, y *Array, xs, ys []T, shape Shape) error {
	xi, yi := broadcastIter(x, shape), broadcastIter(y, shape)
	for i := range out {
		xo, _ := xi.next()
		yo, _ := yi.next()
		u, v := xs[xo], ys[yo]
		switch op {
		case opAdd:
			out[i] = u + v
		case opSub:
			out[i] = u - v
		case opMul:
			out[i] = u * v
		case opDiv:
			if v == 0 {
				return mathErrorf("integer division by zero")
			}
			out[i] = u / v
		case opRem:
			if v == 0 {
				return mathErrorf("integer remainder by zero")
			}
			out[i] = u % v
		}
	}
	return nil
}

func floatArith[T constraints.Float](op arithOp, out []T, x, y *Array, xs, ys []T, shape Shape) {
	xi, yi := broadcastIter(x, shape), broadcastIter(y, shape)
	for i := range out {
		xo, _ := xi.next()
		yo, _ := yi.next()
		u, v := xs[xo], ys[yo]
		switch op {
		case opAdd:
			out[i] = u + v
		case opSub:
			out[i] = u - v
		case opMul:
			out[i] = u * v
		case opDiv:
			out[i] = u / v // IEEE: ±Inf, NaN for 0/0
		case opRem:
			out[i] = T(math.Mod(float64(u), float64(v)))
		}
	}
}

// Eq returns the elementwise a == b mask.
func (a *Array) Eq(b any) (*Array, error) { return a.compare(b, opEq) }

// Ne returns the elementwise a != b mask.
func (a *Array) Ne(b any) (*Array, error) { return a.compare(b, opNe) }

// Lt returns the elementwise a < b mask.
func (a *Array) Lt(b any) (*Array, error) { return a.compare(b, opLt) }

// Le returns the elementwise a <= b mask.
func (a *Array) Le(b any) (*Array, error) { return a.compare(b, opLe) }

// Gt returns the elementwise a > b mask.
func (a *Array) Gt(b any) (*Array, error) { return a.compare(b, opGt) }

// Ge returns the elementwise a >= b mask.
func (a *Array) Ge(b any) (*Array, error) { return a.compare(b, opGe) }

func (a *Array) compare(b any, op cmpOp) (*Array, error) {
	lhs, rhs, outShape, dt, err := a.operands(b)
	if err != nil {
		return nil, err
	}
	if dt == Bool && op != opEq && op != opNe {
		return nil, dtypeErrorf("ordering comparison not defined for bool arrays")
	}
	out, err := newRoot(outShape, Bool)
	if err != nil {
		return nil, err
	}

	mask := out.buffer.bools()
	switch dt {
	case Int8:
		cmpLoop(op, mask, lhs, rhs, lhs.buffer.int8s(), rhs.buffer.int8s(), outShape)
	case Int16:
		cmpLoop(op, mask, lhs, rhs, lhs.buffer.int16s(), rhs.buffer.int16s(), outShape)
	case Int32:
		cmpLoop(op, mask, lhs, rhs, lhs.buffer.int32s(), rhs.buffer.int32s(), outShape)
	case Int64:
		cmpLoop(op, mask, lhs, rhs, lhs.buffer.int64s(), rhs.buffer.int64s(), outShape)
	case Uint8:
		cmpLoop(op, mask, lhs, rhs, lhs.buffer.uint8s(), rhs.buffer.uint8s(), outShape)
	case Uint16:
		cmpLoop(op, mask, lhs, rhs, lhs.buffer.uint16s(), rhs.buffer.uint16s(), outShape)
	case Uint32:
		cmpLoop(op, mask, lhs, rhs, lhs.buffer.uint32s(), rhs.buffer.uint32s(), outShape)
	case Uint64:
		cmpLoop(op, mask, lhs, rhs, lhs.buffer.uint64s(), rhs.buffer.uint64s(), outShape)
	case Float32:
		cmpLoop(op, mask, lhs, rhs, lhs.buffer.float32s(), rhs.buffer.float32s(), outShape)
	case Float64:
		cmpLoop(op, mask, lhs, rhs, lhs.buffer.float64s(), rhs.buffer.float64s(), outShape)
	case Bool:
		boolEq(op, mask, lhs, rhs, outShape)
	}
	return out, nil
}

func cmpLoop[T constraints.Ordered](op cmpOp, out []bool, x, y *Array, xs, ys []T, shape Shape) {
	xi, yi := broadcastIter(x, shape), broadcastIter(y, shape)
	for i := range out {
		xo, _ := xi.next()
		yo, _ := yi.next()
		u, v := xs[xo], ys[yo]
		switch op {
		case opEq:
			out[i] = u == v
		case opNe:
			out[i] = u != v
		case opLt:
			out[i] = u < v
		case opLe:
			out[i] = u <= v
		case opGt:
			out[i] = u > v
		case opGe:
			out[i] = u >= v
		}
	}
}

func boolEq(op cmpOp, out []bool, x, y *Array, shape Shape) {
	xs, ys := x.buffer.bools(), y.buffer.bools()
	xi, yi := broadcastIter(x, shape), broadcastIter(y, shape)
	for i := range out {
		xo, _ := xi.next()
		yo, _ := yi.next()
		eq := xs[xo] == ys[yo]
		if op == opNe {
			eq = !eq
		}
		out[i] = eq
	}
}

// And returns the elementwise conjunction: logical on Bool arrays (result
// Bool), bitwise on integer arrays. Floats are rejected.
func (a *Array) And(b any) (*Array, error) { return a.bitwise(b, opAnd) }

// Or returns the elementwise disjunction; see And.
func (a *Array) Or(b any) (*Array, error) { return a.bitwise(b, opOr) }

// Xor returns the elementwise exclusive-or; see And.
func (a *Array) Xor(b any) (*Array, error) { return a.bitwise(b, opXor) }

func (a *Array) bitwise(b any, op bitOp) (*Array, error) {
	lhs, rhs, outShape, dt, err := a.operands(b)
	if err != nil {
		return nil, err
	}
	if dt.IsFloat() {
		return nil, dtypeErrorf("bitwise op not defined for %s arrays", dt)
	}
	out, err := newRoot(outShape, dt)
	if err != nil {
		return nil, err
	}

	switch dt {
	case Int8:
		bitLoop(op, out.buffer.int8s(), lhs, rhs, lhs.buffer.int8s(), rhs.buffer.int8s(), outShape)
	case Int16:
		bitLoop(op, out.buffer.int16s(), lhs, rhs, lhs.buffer.int16s(), rhs.buffer.int16s(), outShape)
	case Int32:
		bitLoop(op, out.buffer.int32s(), lhs, rhs, lhs.buffer.int32s(), rhs.buffer.int32s(), outShape)
	case Int64:
		bitLoop(op, out.buffer.int64s(), lhs, rhs, lhs.buffer.int64s(), rhs.buffer.int64s(), outShape)
	case Uint8:
		bitLoop(op, out.buffer.uint8s(), lhs, rhs, lhs.buffer.uint8s(), rhs.buffer.uint8s(), outShape)
	case Uint16:
		bitLoop(op, out.buffer.uint16s(), lhs, rhs, lhs.buffer.uint16s(), rhs.buffer.uint16s(), outShape)
	case Uint32:
		bitLoop(op, out.buffer.uint32s(), lhs, rhs, lhs.buffer.uint32s(), rhs.buffer.uint32s(), outShape)
	case Uint64:
		bitLoop(op, out.buffer.uint64s(), lhs, rhs, lhs.buffer.uint64s(), rhs.buffer.uint64s(), outShape)
	case Bool:
		boolLogic(op, out.buffer.bools(), lhs, rhs, outShape)
	}
	return out, nil
}

func bitLoop[T constraints.Integer](op bitOp, out []T, x, y *Array, xs, ys []T, shape Shape) {
	xi, yi := broadcastIter(x, shape), broadcastIter(y, shape)
	for i := range out {
		xo, _ := xi.next()
		yo, _ := yi.next()
		u, v := xs[xo], ys[yo]
		switch op {
		case opAnd:
			out[i] = u & v
		case opOr:
			out[i] = u | v
		case opXor:
			out[i] = u ^ v
		}
	}
}

func boolLogic(op bitOp, out []bool, x, y *Array, shape Shape) {
	xs, ys := x.buffer.bools(), y.buffer.bools()
	xi, yi := broadcastIter(x, shape), broadcastIter(y, shape)
	for i := range out {
		xo, _ := xi.next()
		yo, _ := yi.next()
		u, v := xs[xo], ys[yo]
		switch op {
		case opAnd:
			out[i] = u && v
		case opOr:
			out[i] = u || v
		case opXor:
			out[i] = u != v
		}
	}
}

// Lsh returns a shifted left by b bit positions. Both operands must be
// integer; float and Bool are rejected.
func (a *Array) Lsh(b any) (*Array, error) { return a.shift(b, true) }

// Rsh returns a shifted right by b bit positions; see Lsh.
func (a *Array) Rsh(b any) (*Array, error) { return a.shift(b, false) }

func (a *Array) shift(b any, left bool) (*Array, error) {
	if !a.dtype.IsInteger() {
		return nil, dtypeErrorf("shift not defined for %s arrays", a.dtype)
	}
	if rb, ok := b.(*Array); ok && !rb.dtype.IsInteger() {
		return nil, dtypeErrorf("shift not defined for %s arrays", rb.dtype)
	}
	if cls := classifyScalar(b); b != nil && cls != scalarBad && cls != scalarInt {
		return nil, dtypeErrorf("shift amount must be an integer, got %T", b)
	}
	lhs, rhs, outShape, dt, err := a.operands(b)
	if err != nil {
		return nil, err
	}
	out, err := newRoot(outShape, dt)
	if err != nil {
		return nil, err
	}

	switch dt {
	case Int8:
		shiftLoop(left, out.buffer.int8s(), lhs, rhs, lhs.buffer.int8s(), rhs.buffer.int8s(), outShape)
	case Int16:
		shiftLoop(left, out.buffer.int16s(), lhs, rhs, lhs.buffer.int16s(), rhs.buffer.int16s(), outShape)
	case Int32:
		shiftLoop(left, out.buffer.int32s(), lhs, rhs, lhs.buffer.int32s(), rhs.buffer.int32s(), outShape)
	case Int64:
		shiftLoop(left, out.buffer.int64s(), lhs, rhs, lhs.buffer.int64s(), rhs.buffer.int64s(), outShape)
	case Uint8:
		shiftLoop(left, out.buffer.uint8s(), lhs, rhs, lhs.buffer.uint8s(), rhs.buffer.uint8s(), outShape)
	case Uint16:
		shiftLoop(left, out.buffer.uint16s(), lhs, rhs, lhs.buffer.uint16s(), rhs.buffer.uint16s(), outShape)
	case Uint32:
		shiftLoop(left, out.buffer.uint32s(), lhs, rhs, lhs.buffer.uint32s(), rhs.buffer.uint32s(), outShape)
	case Uint64:
		shiftLoop(left, out.buffer.uint64s(), lhs, rhs, lhs.buffer.uint64s(), rhs.buffer.uint64s(), outShape)
	}
	return out, nil
}

func shiftLoop[T constraints.Integer](left bool, out []T, x, y *Array, xs, ys []T, shape Shape) {
	xi, yi := broadcastIter(x, shape), broadcastIter(y, shape)
	for i := range out {
		xo, _ := xi.next()
		yo, _ := yi.next()
		if left {
			out[i] = xs[xo] << ys[yo]
		} else {
			out[i] = xs[xo] >> ys[yo]
		}
	}
}

// Neg returns the elementwise negation. Unsigned and Bool arrays are
// rejected.
func (a *Array) Neg() (*Array, error) {
	if !a.dtype.IsSigned() {
		return nil, dtypeErrorf("cannot negate %s array", a.dtype)
	}
	return a.unaryNumeric(func(f float64) float64 { return -f }, func(i int64) int64 { return -i })
}

// Abs returns the elementwise absolute value. Unsigned arrays copy through
// unchanged; Bool is rejected.
func (a *Array) Abs() (*Array, error) {
	if a.dtype == Bool {
		return nil, dtypeErrorf("abs not defined for bool arrays")
	}
	if !a.dtype.IsSigned() {
		return a.Contiguous()
	}
	return a.unaryNumeric(math.Abs, func(i int64) int64 {
		if i < 0 {
			return -i
		}
		return i
	})
}

func (a *Array) unaryNumeric(ff func(float64) float64, fi func(int64) int64) (*Array, error) {
	out, err := newRoot(a.shape, a.dtype)
	if err != nil {
		return nil, err
	}
	switch a.dtype {
	case Float32:
		unaryFloatLoop(out.buffer.float32s(), a, a.buffer.float32s(), ff)
	case Float64:
		unaryFloatLoop(out.buffer.float64s(), a, a.buffer.float64s(), ff)
	case Int8:
		unaryIntLoop(out.buffer.int8s(), a, a.buffer.int8s(), fi)
	case Int16:
		unaryIntLoop(out.buffer.int16s(), a, a.buffer.int16s(), fi)
	case Int32:
		unaryIntLoop(out.buffer.int32s(), a, a.buffer.int32s(), fi)
	case Int64:
		unaryIntLoop(out.buffer.int64s(), a, a.buffer.int64s(), fi)
	}
	return out, nil
}

func unaryFloatLoop[T constraints.Float](out []T, a *Array, src []T, f func(float64) float64) {
	it := arrayIter(a)
	for i := range out {
		off, _ := it.next()
		out[i] = T(f(float64(src[off])))
	}
}

func unaryIntLoop[T constraints.Signed](out []T, a *Array, src []T, f func(int64) int64) {
	it := arrayIter(a)
	for i := range out {
		off, _ := it.next()
		out[i] = T(f(int64(src[off])))
	}
}

// Not returns the logical negation of a Bool array or the bitwise complement
// of an integer array.
func (a *Array) Not() (*Array, error) {
	if a.dtype.IsFloat() {
		return nil, dtypeErrorf("not defined for %s arrays", a.dtype)
	}
	out, err := newRoot(a.shape, a.dtype)
	if err != nil {
		return nil, err
	}
	if a.dtype == Bool {
		src, dst := a.buffer.bools(), out.buffer.bools()
		it := arrayIter(a)
		for i := range dst {
			off, _ := it.next()
			dst[i] = !src[off]
		}
		return out, nil
	}
	switch a.dtype {
	case Int8:
		notLoop(out.buffer.int8s(), a, a.buffer.int8s())
	case Int16:
		notLoop(out.buffer.int16s(), a, a.buffer.int16s())
	case Int32:
		notLoop(out.buffer.int32s(), a, a.buffer.int32s())
	case Int64:
		notLoop(out.buffer.int64s(), a, a.buffer.int64s())
	case Uint8:
		notLoop(out.buffer.uint8s(), a, a.buffer.uint8s())
	case Uint16:
		notLoop(out.buffer.uint16s(), a, a.buffer.uint16s())
	case Uint32:
		notLoop(out.buffer.uint32s(), a, a.buffer.uint32s())
	case Uint64:
		notLoop(out.buffer.uint64s(), a, a.buffer.uint64s())
	}
	return out, nil
}

func notLoop[T constraints.Integer](out []T, a *Array, src []T) {
	it := arrayIter(a)
	for i := range out {
		off, _ := it.next()
		out[i] = ^src[off]
	}
}

// Where selects elements from x where cond is true and from y elsewhere,
// broadcasting all three operands together.
func Where(cond, x, y *Array) (*Array, error) {
	if cond.dtype != Bool {
		return nil, dtypeErrorf("where: condition must be bool, got %s", cond.dtype)
	}
	dt, err := Promote(x.dtype, y.dtype)
	if err != nil {
		return nil, err
	}
	outShape, err := BroadcastAll(cond.shape, x.shape, y.shape)
	if err != nil {
		return nil, err
	}
	xc, yc := x, y
	if xc.dtype != dt {
		if xc, err = x.AsType(dt); err != nil {
			return nil, err
		}
	}
	if yc.dtype != dt {
		if yc, err = y.AsType(dt); err != nil {
			return nil, err
		}
	}
	out, err := newRoot(outShape, dt)
	if err != nil {
		return nil, err
	}
	ci := broadcastIter(cond, outShape)
	xi := broadcastIter(xc, outShape)
	yi := broadcastIter(yc, outShape)
	mask := cond.buffer.bools()
	for i := 0; i < out.Size(); i++ {
		co, _ := ci.next()
		xo, _ := xi.next()
		yo, _ := yi.next()
		if mask[co] {
			out.setElemRaw(i, xc.getElem(xo))
		} else {
			out.setElemRaw(i, yc.getElem(yo))
		}
	}
	return out, nil
}
