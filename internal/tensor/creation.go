package tensor

import (
	"math"
	"reflect"
)

// Option configures factory behavior.
type Option func(*options)

type options struct {
	dtype    DType
	hasDType bool
	seed     int64
	hasSeed  bool
	endpoint bool
	base     float64
}

func newOptions(opts []Option) options {
	o := options{endpoint: true, base: 10}
	for _, opt := range opts {
		opt(&o)
	}
	return o
}

// WithDType overrides the factory's default element type.
func WithDType(dt DType) Option {
	return func(o *options) { o.dtype, o.hasDType = dt, true }
}

// WithSeed makes a random factory fully deterministic: the generated values
// are a pure function of the seed and the call sequence.
func WithSeed(seed int64) Option {
	return func(o *options) { o.seed, o.hasSeed = seed, true }
}

// WithoutEndpoint excludes the stop value from Linspace/Logspace/Geomspace.
func WithoutEndpoint() Option {
	return func(o *options) { o.endpoint = false }
}

// WithBase sets the Logspace exponent base (default 10).
func WithBase(base float64) Option {
	return func(o *options) { o.base = base }
}

// Zeros creates a zero-filled root array.
func Zeros(shape Shape, dtype DType) (*Array, error) {
	return newRoot(shape, dtype)
}

// Ones creates an array filled with the dtype's one value (true for Bool).
func Ones(shape Shape, dtype DType) (*Array, error) {
	a, err := newRoot(shape, dtype)
	if err != nil {
		return nil, err
	}
	var fill any = 1
	if dtype == Bool {
		fill = true
	}
	if err := a.Fill(fill); err != nil {
		a.Release()
		return nil, err
	}
	return a, nil
}

// Full creates an array filled with value.
func Full(shape Shape, value any, dtype DType) (*Array, error) {
	a, err := newRoot(shape, dtype)
	if err != nil {
		return nil, err
	}
	if err := a.Fill(value); err != nil {
		a.Release()
		return nil, err
	}
	return a, nil
}

// Eye creates an n×n identity matrix.
func Eye(n int, dtype DType) (*Array, error) {
	a, err := newRoot(Shape{n, n}, dtype)
	if err != nil {
		return nil, err
	}
	var one any = 1
	if dtype == Bool {
		one = true
	}
	for i := 0; i < n; i++ {
		if err := a.Set(one, i, i); err != nil {
			a.Release()
			return nil, err
		}
	}
	return a, nil
}

// Arange creates a 1-D array with values start, start+step, ... up to but
// excluding stop. A zero step is an error; Bool is not a valid dtype.
func Arange(start, stop, step float64, dtype DType) (*Array, error) {
	if step == 0 {
		return nil, invalidErrorf("arange: step cannot be zero")
	}
	if dtype == Bool {
		return nil, dtypeErrorf("arange: bool dtype not supported")
	}
	n := 0
	if span := (stop - start) / step; span > 0 {
		n = int(math.Ceil(span))
	}
	a, err := newRoot(Shape{n}, dtype)
	if err != nil {
		return nil, err
	}
	for i := 0; i < n; i++ {
		if err := a.Set(start+float64(i)*step, i); err != nil {
			a.Release()
			return nil, err
		}
	}
	return a, nil
}

// Linspace creates count evenly spaced values from start to stop. The stop
// value is included unless WithoutEndpoint is given. Only float dtypes are
// supported (default Float64).
func Linspace(start, stop float64, count int, opts ...Option) (*Array, error) {
	o := newOptions(opts)
	return spaced(count, o, func(t float64) float64 {
		return start + t*(stop-start)
	})
}

// Logspace creates count values spaced evenly on a log scale: base^start to
// base^stop.
func Logspace(start, stop float64, count int, opts ...Option) (*Array, error) {
	o := newOptions(opts)
	return spaced(count, o, func(t float64) float64 {
		return math.Pow(o.base, start+t*(stop-start))
	})
}

// Geomspace creates count values spaced evenly on a geometric progression
// from start to stop. Both endpoints must be nonzero and share a sign.
func Geomspace(start, stop float64, count int, opts ...Option) (*Array, error) {
	if start == 0 || stop == 0 {
		return nil, invalidErrorf("geomspace: endpoints cannot be zero")
	}
	if (start < 0) != (stop < 0) {
		return nil, invalidErrorf("geomspace: endpoints must have the same sign")
	}
	sign := 1.0
	if start < 0 {
		sign = -1
	}
	logStart, logStop := math.Log(math.Abs(start)), math.Log(math.Abs(stop))
	o := newOptions(opts)
	return spaced(count, o, func(t float64) float64 {
		return sign * math.Exp(logStart+t*(logStop-logStart))
	})
}

// spaced materializes count samples of f over t in [0, 1], honoring the
// endpoint option.
func spaced(count int, o options, f func(t float64) float64) (*Array, error) {
	if count <= 0 {
		return nil, invalidErrorf("count must be positive, got %d", count)
	}
	dtype := Float64
	if o.hasDType {
		dtype = o.dtype
	}
	if !dtype.IsFloat() {
		return nil, dtypeErrorf("spacing factories require a float dtype, got %s", dtype)
	}

	a, err := newRoot(Shape{count}, dtype)
	if err != nil {
		return nil, err
	}
	div := count
	if o.endpoint {
		div = count - 1
	}
	for i := 0; i < count; i++ {
		t := 0.0
		if div > 0 {
			t = float64(i) / float64(div)
		}
		if err := a.Set(f(t), i); err != nil {
			a.Release()
			return nil, err
		}
	}
	return a, nil
}

// FromNested builds a root array from a (possibly nested) Go literal:
// scalars, slices, slices of slices, including []any nesting. The literal
// must be rectangular. Without WithDType the element type is inferred:
// all-integer content gives Int64, any float gives Float64, all-bool gives
// Bool.
func FromNested(value any, opts ...Option) (*Array, error) {
	o := newOptions(opts)

	shape := literalShape(reflect.ValueOf(value))
	leaves := make([]any, 0, shape.NumElements())
	if err := collectLeaves(reflect.ValueOf(value), shape, 0, &leaves); err != nil {
		return nil, err
	}

	dtype, err := inferLiteralDType(leaves, o)
	if err != nil {
		return nil, err
	}

	a, err := newRoot(shape, dtype)
	if err != nil {
		return nil, err
	}
	for i, leaf := range leaves {
		if err := a.SetAt(i, leaf); err != nil {
			a.Release()
			return nil, err
		}
	}
	return a, nil
}

// literalShape descends the first child at each level to propose a shape;
// collectLeaves then verifies every sibling matches it.
func literalShape(v reflect.Value) Shape {
	var shape Shape
	for {
		for v.Kind() == reflect.Interface {
			v = v.Elem()
		}
		if v.Kind() != reflect.Slice && v.Kind() != reflect.Array {
			return shape
		}
		shape = append(shape, v.Len())
		if v.Len() == 0 {
			return shape
		}
		v = v.Index(0)
	}
}

func collectLeaves(v reflect.Value, shape Shape, depth int, out *[]any) error {
	for v.Kind() == reflect.Interface {
		v = v.Elem()
	}
	isSlice := v.Kind() == reflect.Slice || v.Kind() == reflect.Array

	if depth == len(shape) {
		if isSlice {
			return shapeErrorf("jagged literal: unexpected nesting at depth %d", depth)
		}
		*out = append(*out, v.Interface())
		return nil
	}
	if !isSlice {
		return shapeErrorf("jagged literal: expected sequence at depth %d", depth)
	}
	if v.Len() != shape[depth] {
		return shapeErrorf("jagged literal: extent %d at depth %d, expected %d", v.Len(), depth, shape[depth])
	}
	for i := 0; i < v.Len(); i++ {
		if err := collectLeaves(v.Index(i), shape, depth+1, out); err != nil {
			return err
		}
	}
	return nil
}

func inferLiteralDType(leaves []any, o options) (DType, error) {
	if o.hasDType {
		return o.dtype, nil
	}
	sawBool, sawNum, sawFloat := false, false, false
	for _, leaf := range leaves {
		switch classifyScalar(leaf) {
		case scalarBool:
			sawBool = true
		case scalarFloat:
			sawNum, sawFloat = true, true
		case scalarInt:
			sawNum = true
		default:
			return 0, dtypeErrorf("unsupported literal element type %T", leaf)
		}
	}
	switch {
	case sawBool && sawNum:
		return 0, dtypeErrorf("literal mixes bool and numeric elements")
	case sawBool:
		return Bool, nil
	case sawFloat:
		return Float64, nil
	default:
		return Int64, nil
	}
}
