// Copyright 2026 NumGo Authors. All rights reserved.
// Use of this source code is governed by an Apache 2.0
// license that can be found in the LICENSE file.

// Package tensor provides N-dimensional typed arrays with NumPy-style
// semantics.
//
// # Overview
//
// Arrays pair a reference-counted flat buffer with a shape, per-axis
// strides and an element offset. Slicing, transposition, flipping and
// axis insertion all produce views that share the buffer; only
// operations that need a dense layout copy.
//
//   - Eleven element types from Int8 to Float64 plus Bool, chosen at
//     runtime through the DType enum
//   - NumPy broadcasting for elementwise arithmetic, comparisons and
//     assignment
//   - Implicit dtype promotion across mixed-type operands
//   - Reductions (full and per-axis), sorting, argsort, top-k
//   - Basic linear algebra on vectors and matrices
//
// # Example
//
//	a, _ := tensor.FromNested([][]float64{{1, 2, 3}, {4, 5, 6}})
//	b, _ := tensor.Ones(tensor.Shape{3}, tensor.Float64)
//	c, _ := a.Add(b) // broadcasts (3,) across (2, 3)
//	row, _ := c.Slice(tensor.At(1))
//	total, _ := row.Sum()
//
// Errors are classified by sentinel: ErrShape, ErrIndex, ErrDType,
// ErrMath and ErrInvalid all answer to errors.Is.
package tensor
