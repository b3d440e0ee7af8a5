package tensor

import "fmt"

// Array is an N-dimensional typed view over a reference-counted Buffer.
//
// A root Array owns the Buffer it allocated; a view shares another Array's
// Buffer through its own shape, strides and base offset. Writes through any
// handle are visible through every other handle sharing the Buffer. That
// aliasing is the documented contract of Assign/Set/SetAt, not an accident.
type Array struct {
	buffer  *Buffer
	shape   Shape
	strides Strides
	offset  int
	dtype   DType
	view    bool
}

// newRoot allocates a fresh zeroed root Array of the given shape and dtype.
func newRoot(shape Shape, dtype DType) (*Array, error) {
	if err := shape.Validate(); err != nil {
		return nil, err
	}
	shape = shape.Clone()
	return &Array{
		buffer:  newBuffer(dtype, shape.NumElements()),
		shape:   shape,
		strides: shape.ComputeStrides(),
		dtype:   dtype,
	}, nil
}

// newView derives a view over a's Buffer with the given geometry. The Buffer
// is retained, so the view outlives the handle it was derived from.
func (a *Array) newView(shape Shape, strides Strides, offset int) *Array {
	a.buffer.retain()
	return &Array{
		buffer:  a.buffer,
		shape:   shape,
		strides: strides,
		offset:  offset,
		dtype:   a.dtype,
		view:    true,
	}
}

// Release drops this handle's reference to the backing Buffer. The storage
// is freed when the last handle, root or view, has been released. Using the
// Array after Release is a caller bug.
func (a *Array) Release() {
	if a.buffer != nil {
		a.buffer.release()
		a.buffer = nil
	}
}

// Shape returns the array's axis extents.
func (a *Array) Shape() Shape {
	return a.shape.Clone()
}

// Strides returns the array's per-axis element strides.
func (a *Array) Strides() Strides {
	return a.strides.Clone()
}

// NDim returns the rank.
func (a *Array) NDim() int {
	return len(a.shape)
}

// Size returns the total number of elements.
func (a *Array) Size() int {
	return a.shape.NumElements()
}

// DType returns the element type.
func (a *Array) DType() DType {
	return a.dtype
}

// ItemSize returns the width of one element in bytes.
func (a *Array) ItemSize() int {
	return a.dtype.Size()
}

// NumBytes returns the logical payload size in bytes.
func (a *Array) NumBytes() int {
	return a.Size() * a.dtype.Size()
}

// IsView reports whether this Array shares another Array's Buffer.
func (a *Array) IsView() bool {
	return a.view
}

// IsContiguous reports whether the array's elements are laid out in dense
// C order, i.e. its strides equal the canonical strides of its shape.
func (a *Array) IsContiguous() bool {
	want := a.shape.ComputeStrides()
	for i := range want {
		if a.shape[i] > 1 && a.strides[i] != want[i] {
			return false
		}
	}
	return true
}

func (a *Array) String() string {
	return fmt.Sprintf("Array[%s]%v", a.dtype, []int(a.shape))
}

// elemOffset resolves a full multi-index (negative indices allowed) into a
// Buffer offset.
func (a *Array) elemOffset(indices []int) (int, error) {
	if len(indices) != len(a.shape) {
		return 0, indexErrorf("expected %d indices, got %d", len(a.shape), len(indices))
	}
	off := a.offset
	for i, idx := range indices {
		orig := idx
		if idx < 0 {
			idx += a.shape[i]
		}
		if idx < 0 || idx >= a.shape[i] {
			return 0, indexErrorf("index %d out of bounds for axis %d (extent %d)", orig, i, a.shape[i])
		}
		off += idx * a.strides[i]
	}
	return off, nil
}

// Get reads from the array. With one index per axis it returns the scalar
// element; with fewer indices it returns a View over the remaining trailing
// axes. More indices than axes is an IndexError.
func (a *Array) Get(indices ...int) (any, error) {
	if len(indices) > len(a.shape) {
		return nil, indexErrorf("too many indices: got %d for rank %d", len(indices), len(a.shape))
	}
	if len(indices) == len(a.shape) {
		off, err := a.elemOffset(indices)
		if err != nil {
			return nil, err
		}
		return a.getElem(off), nil
	}

	// Partial index: drop the leading axes and keep the rest as a view.
	off := a.offset
	for i, idx := range indices {
		orig := idx
		if idx < 0 {
			idx += a.shape[i]
		}
		if idx < 0 || idx >= a.shape[i] {
			return nil, indexErrorf("index %d out of bounds for axis %d (extent %d)", orig, i, a.shape[i])
		}
		off += idx * a.strides[i]
	}
	return a.newView(a.shape[len(indices):].Clone(), a.strides[len(indices):].Clone(), off), nil
}

// Set writes the scalar value at a full multi-index. The write goes through
// the shared Buffer, so it is visible to the root and every sibling view.
func (a *Array) Set(value any, indices ...int) error {
	off, err := a.elemOffset(indices)
	if err != nil {
		return err
	}
	return a.setElem(off, value)
}

// flatOffset maps a logical C-order flat index within THIS view to a Buffer
// offset via the view's own strides. It works for transposed, sliced and
// flipped views, not just contiguous roots.
func (a *Array) flatOffset(flat int) (int, error) {
	size := a.Size()
	if size == 0 {
		return 0, indexErrorf("flat index into empty array")
	}
	if flat < 0 || flat >= size {
		return 0, indexErrorf("flat index %d out of range [0, %d)", flat, size)
	}
	off := a.offset
	for i := len(a.shape) - 1; i >= 0; i-- {
		if a.shape[i] == 0 {
			continue
		}
		off += (flat % a.shape[i]) * a.strides[i]
		flat /= a.shape[i]
	}
	return off, nil
}

// GetAt reads the element at a logical C-order flat index of this view.
func (a *Array) GetAt(flat int) (any, error) {
	off, err := a.flatOffset(flat)
	if err != nil {
		return nil, err
	}
	return a.getElem(off), nil
}

// SetAt writes the element at a logical C-order flat index of this view.
func (a *Array) SetAt(flat int, value any) error {
	off, err := a.flatOffset(flat)
	if err != nil {
		return err
	}
	return a.setElem(off, value)
}

// Fill assigns one value to every element of the array (through the shared
// Buffer when the array is a view).
func (a *Array) Fill(value any) error {
	v, err := convertScalar(value, a.dtype)
	if err != nil {
		return err
	}
	it := arrayIter(a)
	for {
		off, ok := it.next()
		if !ok {
			return nil
		}
		a.setElemRaw(off, v)
	}
}

// Assign copies src elementwise into a, broadcasting src against a's shape
// and casting to a's dtype. Like Set, it writes through the shared Buffer.
func (a *Array) Assign(src *Array) error {
	bshape, err := BroadcastShapes(a.shape, src.shape)
	if err != nil {
		return err
	}
	if !bshape.Equal(a.shape) {
		return shapeErrorf("cannot assign shape %v into shape %v", []int(src.shape), []int(a.shape))
	}
	dstIt := arrayIter(a)
	srcIt := broadcastIter(src, a.shape)
	for {
		dstOff, ok := dstIt.next()
		if !ok {
			return nil
		}
		srcOff, _ := srcIt.next()
		if err := a.setElemRaw2(dstOff, src, srcOff); err != nil {
			return err
		}
	}
}

// getElem reads the element at a raw Buffer offset as its native Go value.
func (a *Array) getElem(off int) any {
	switch a.dtype {
	case Int8:
		return a.buffer.int8s()[off]
	case Int16:
		return a.buffer.int16s()[off]
	case Int32:
		return a.buffer.int32s()[off]
	case Int64:
		return a.buffer.int64s()[off]
	case Uint8:
		return a.buffer.uint8s()[off]
	case Uint16:
		return a.buffer.uint16s()[off]
	case Uint32:
		return a.buffer.uint32s()[off]
	case Uint64:
		return a.buffer.uint64s()[off]
	case Float32:
		return a.buffer.float32s()[off]
	case Float64:
		return a.buffer.float64s()[off]
	case Bool:
		return a.buffer.bools()[off]
	default:
		panic("unknown dtype")
	}
}

// setElem converts value to the array's dtype and writes it at off.
func (a *Array) setElem(off int, value any) error {
	v, err := convertScalar(value, a.dtype)
	if err != nil {
		return err
	}
	a.setElemRaw(off, v)
	return nil
}

// setElemRaw writes an already-converted value (exact dtype match).
func (a *Array) setElemRaw(off int, value any) {
	switch a.dtype {
	case Int8:
		a.buffer.int8s()[off] = value.(int8)
	case Int16:
		a.buffer.int16s()[off] = value.(int16)
	case Int32:
		a.buffer.int32s()[off] = value.(int32)
	case Int64:
		a.buffer.int64s()[off] = value.(int64)
	case Uint8:
		a.buffer.uint8s()[off] = value.(uint8)
	case Uint16:
		a.buffer.uint16s()[off] = value.(uint16)
	case Uint32:
		a.buffer.uint32s()[off] = value.(uint32)
	case Uint64:
		a.buffer.uint64s()[off] = value.(uint64)
	case Float32:
		a.buffer.float32s()[off] = value.(float32)
	case Float64:
		a.buffer.float64s()[off] = value.(float64)
	case Bool:
		a.buffer.bools()[off] = value.(bool)
	default:
		panic("unknown dtype")
	}
}

// setElemRaw2 copies one element from src (at srcOff) into a (at dstOff),
// converting across dtypes.
func (a *Array) setElemRaw2(dstOff int, src *Array, srcOff int) error {
	if a.dtype == src.dtype {
		a.setElemRaw(dstOff, src.getElem(srcOff))
		return nil
	}
	return a.setElem(dstOff, src.getElem(srcOff))
}
