// Copyright 2026 NumGo Authors. All rights reserved.
// Use of this source code is governed by an Apache 2.0
// license that can be found in the LICENSE file.

package tensor

import (
	"github.com/numgo-ml/numgo/internal/tensor"
)

// Type aliases for the public API.

// Array is an N-dimensional typed array. Views created by slicing and
// reshaping share the underlying buffer.
type Array = tensor.Array

// DType identifies the element type of an Array at runtime.
type DType = tensor.DType

// Element type constants.
const (
	Int8    DType = tensor.Int8
	Int16   DType = tensor.Int16
	Int32   DType = tensor.Int32
	Int64   DType = tensor.Int64
	Uint8   DType = tensor.Uint8
	Uint16  DType = tensor.Uint16
	Uint32  DType = tensor.Uint32
	Uint64  DType = tensor.Uint64
	Float32 DType = tensor.Float32
	Float64 DType = tensor.Float64
	Bool    DType = tensor.Bool
)

// Shape represents the dimensions of an array.
// Example: Shape{2, 3, 4} is a 3-D array with extents 2x3x4.
type Shape = tensor.Shape

// Strides holds per-axis element strides.
type Strides = tensor.Strides

// Sel selects along one axis when slicing. Build selectors with At, Rng,
// RngStep, From, To, All and Ell, or parse a NumPy-style expression with
// ParseSelectors.
type Sel = tensor.Sel

// SortKind selects the sorting algorithm used by Sort, ArgSort and TopK.
type SortKind = tensor.SortKind

// Sorting algorithm constants.
const (
	Quicksort SortKind = tensor.Quicksort
	Mergesort SortKind = tensor.Mergesort
	Heapsort  SortKind = tensor.Heapsort
	Stable    SortKind = tensor.Stable
)

// Option configures factory functions such as Linspace and the random
// constructors.
type Option = tensor.Option

// Error sentinels. Every error returned by the package wraps exactly one
// of these, so callers can classify failures with errors.Is.
var (
	ErrShape   = tensor.ErrShape
	ErrIndex   = tensor.ErrIndex
	ErrDType   = tensor.ErrDType
	ErrMath    = tensor.ErrMath
	ErrInvalid = tensor.ErrInvalid
)

// Factory options.

// WithDType overrides the inferred or default element type.
func WithDType(dt DType) Option { return tensor.WithDType(dt) }

// WithSeed makes a random factory deterministic.
func WithSeed(seed int64) Option { return tensor.WithSeed(seed) }

// WithoutEndpoint excludes the stop value from Linspace-family results.
func WithoutEndpoint() Option { return tensor.WithoutEndpoint() }

// WithBase sets the logarithm base used by Logspace.
func WithBase(base float64) Option { return tensor.WithBase(base) }

// Creation functions.

// Zeros creates an array filled with the zero value of dtype.
//
// Example:
//
//	x, err := tensor.Zeros(tensor.Shape{2, 3}, tensor.Float32)
func Zeros(shape Shape, dtype DType) (*Array, error) {
	return tensor.Zeros(shape, dtype)
}

// Ones creates an array filled with one (true for Bool).
func Ones(shape Shape, dtype DType) (*Array, error) {
	return tensor.Ones(shape, dtype)
}

// Full creates an array filled with value, converted to dtype.
//
// Example:
//
//	x, err := tensor.Full(tensor.Shape{2, 3}, 3.14, tensor.Float64)
func Full(shape Shape, value any, dtype DType) (*Array, error) {
	return tensor.Full(shape, value, dtype)
}

// Eye creates an n-by-n identity matrix.
func Eye(n int, dtype DType) (*Array, error) {
	return tensor.Eye(n, dtype)
}

// Arange creates a 1-D array with values from start to stop (exclusive)
// in increments of step.
//
// Example:
//
//	x, err := tensor.Arange(0, 10, 1, tensor.Int64) // [0, 1, ..., 9]
func Arange(start, stop, step float64, dtype DType) (*Array, error) {
	return tensor.Arange(start, stop, step, dtype)
}

// Linspace creates count evenly spaced values from start to stop,
// inclusive unless WithoutEndpoint is given. Defaults to Float64.
func Linspace(start, stop float64, count int, opts ...Option) (*Array, error) {
	return tensor.Linspace(start, stop, count, opts...)
}

// Logspace creates count values spaced evenly on a log scale, from
// base**start to base**stop. The base defaults to 10.
func Logspace(start, stop float64, count int, opts ...Option) (*Array, error) {
	return tensor.Logspace(start, stop, count, opts...)
}

// Geomspace creates count values spaced evenly on a geometric
// progression from start to stop. Endpoints must be nonzero and share a
// sign.
func Geomspace(start, stop float64, count int, opts ...Option) (*Array, error) {
	return tensor.Geomspace(start, stop, count, opts...)
}

// FromNested creates an array from a (possibly nested) Go slice or a
// bare scalar, inferring shape and dtype from the literal.
//
// Example:
//
//	x, err := tensor.FromNested([][]int{{1, 2}, {3, 4}}) // shape (2, 2), Int64
func FromNested(value any, opts ...Option) (*Array, error) {
	return tensor.FromNested(value, opts...)
}

// Random constructors.

// Rand creates an array of uniform values in [0, 1). Defaults to Float64.
func Rand(shape Shape, opts ...Option) (*Array, error) {
	return tensor.Rand(shape, opts...)
}

// Uniform creates an array of uniform values in [low, high).
func Uniform(low, high float64, shape Shape, opts ...Option) (*Array, error) {
	return tensor.Uniform(low, high, shape, opts...)
}

// RandN creates an array of standard normal samples.
func RandN(shape Shape, opts ...Option) (*Array, error) {
	return tensor.RandN(shape, opts...)
}

// Normal creates an array of normal samples with the given mean and
// standard deviation.
func Normal(mean, std float64, shape Shape, opts ...Option) (*Array, error) {
	return tensor.Normal(mean, std, shape, opts...)
}

// RandInt creates an integer array of uniform values in [low, high).
func RandInt(low, high int64, shape Shape, opts ...Option) (*Array, error) {
	return tensor.RandInt(low, high, shape, opts...)
}

// Selectors.

// At selects a single position and drops the axis.
func At(i int) Sel { return tensor.At(i) }

// Rng selects the half-open range [start, stop).
func Rng(start, stop int) Sel { return tensor.Rng(start, stop) }

// RngStep selects [start, stop) with the given positive step.
func RngStep(start, stop, step int) Sel { return tensor.RngStep(start, stop, step) }

// From selects from start to the end of the axis.
func From(start int) Sel { return tensor.From(start) }

// To selects from the beginning of the axis up to stop.
func To(stop int) Sel { return tensor.To(stop) }

// All selects the whole axis.
func All() Sel { return tensor.All() }

// Ell expands to as many All selectors as needed to cover the rank.
func Ell() Sel { return tensor.Ell() }

// ParseSelectors parses a NumPy-style expression like "1:5, ..., ::2"
// into selectors for Array.Slice.
func ParseSelectors(expr string) ([]Sel, error) {
	return tensor.ParseSelectors(expr)
}

// Combining functions.

// Concat joins arrays along an existing axis.
//
// Example:
//
//	a, _ := tensor.Ones(tensor.Shape{2, 3}, tensor.Float32)
//	b, _ := tensor.Zeros(tensor.Shape{2, 3}, tensor.Float32)
//	c, err := tensor.Concat([]*tensor.Array{a, b}, 0) // shape (4, 3)
func Concat(arrays []*Array, axis int) (*Array, error) {
	return tensor.Concat(arrays, axis)
}

// Stack joins same-shape arrays along a new axis.
func Stack(arrays []*Array, axis int) (*Array, error) {
	return tensor.Stack(arrays, axis)
}

// Where selects elements from x where cond is true and from y elsewhere,
// broadcasting all three operands.
func Where(cond, x, y *Array) (*Array, error) {
	return tensor.Where(cond, x, y)
}

// Promote returns the common element type two operand dtypes convert to
// under the package's promotion rules.
func Promote(a, b DType) (DType, error) {
	return tensor.Promote(a, b)
}

// BroadcastShapes returns the shape two operand shapes broadcast to, or
// an ErrShape error when they are incompatible.
func BroadcastShapes(a, b Shape) (Shape, error) {
	return tensor.BroadcastShapes(a, b)
}

// BroadcastAll broadcasts any number of shapes together.
func BroadcastAll(shapes ...Shape) (Shape, error) {
	return tensor.BroadcastAll(shapes...)
}
