package tensor

import "reflect"

// Materializing operations: everything here allocates a fresh Buffer and
// returns a non-view root, even when the input was a view. Results never
// alias inputs.

// Contiguous copies the array into a fresh dense C-order root.
func (a *Array) Contiguous() (*Array, error) {
	out, err := newRoot(a.shape, a.dtype)
	if err != nil {
		return nil, err
	}
	it := arrayIter(a)
	dst := 0
	for {
		off, ok := it.next()
		if !ok {
			return out, nil
		}
		out.setElemRaw(dst, a.getElem(off))
		dst++
	}
}

// AsType copies the array into a new root of the given dtype. Bool converts
// to numeric as 0/1; numeric converts to Bool as x != 0; integer narrowing
// wraps and float-to-integer truncates, matching native cast semantics.
func (a *Array) AsType(dt DType) (*Array, error) {
	out, err := newRoot(a.shape, dt)
	if err != nil {
		return nil, err
	}
	it := arrayIter(a)
	dst := 0
	for {
		off, ok := it.next()
		if !ok {
			return out, nil
		}
		v, err := castScalar(a.getElem(off), dt)
		if err != nil {
			out.Release()
			return nil, err
		}
		out.setElemRaw(dst, v)
		dst++
	}
}

// castScalar is convertScalar extended with the bool bridge used by AsType.
func castScalar(v any, dt DType) (any, error) {
	if b, ok := v.(bool); ok && dt != Bool {
		n := 0
		if b {
			n = 1
		}
		return convertScalar(n, dt)
	}
	if dt == Bool {
		if _, ok := v.(bool); !ok {
			f, ok := scalarAsFloat(v)
			if !ok {
				return nil, dtypeErrorf("cannot cast %T to bool", v)
			}
			return f != 0, nil
		}
	}
	return convertScalar(v, dt)
}

// Flatten copies the array into a 1-D root in logical C order.
func (a *Array) Flatten() (*Array, error) {
	c, err := a.Contiguous()
	if err != nil {
		return nil, err
	}
	c.shape = Shape{a.Size()}
	c.strides = Strides{1}
	return c, nil
}

// Ravel returns a 1-D view when the array is contiguous and a flattened
// copy otherwise.
func (a *Array) Ravel() (*Array, error) {
	if a.IsContiguous() {
		return a.newView(Shape{a.Size()}, Strides{1}, a.offset), nil
	}
	return a.Flatten()
}

// Tile repeats the whole array reps times along each axis. Fewer reps than
// rank pad with 1 on the left; more reps than rank prepend new axes.
func (a *Array) Tile(reps ...int) (*Array, error) {
	for _, r := range reps {
		if r <= 0 {
			return nil, invalidErrorf("tile: repetition count must be positive, got %d", r)
		}
	}
	rank := max(len(a.shape), len(reps))
	srcShape := make(Shape, rank)
	outShape := make(Shape, rank)
	for i := 0; i < rank; i++ {
		dim, rep := 1, 1
		if j := i - (rank - len(a.shape)); j >= 0 {
			dim = a.shape[j]
		}
		if j := i - (rank - len(reps)); j >= 0 {
			rep = reps[j]
		}
		srcShape[i] = dim
		outShape[i] = dim * rep
	}

	out, err := newRoot(outShape, a.dtype)
	if err != nil {
		return nil, err
	}
	srcStrides := broadcastStrides(a.shape, a.strides, srcShape)
	idx := make([]int, rank)
	for dst := 0; dst < out.Size(); dst++ {
		srcOff := a.offset
		for i := range idx {
			srcOff += (idx[i] % srcShape[i]) * srcStrides[i]
		}
		out.setElemRaw(dst, a.getElem(srcOff))
		for i := rank - 1; i >= 0; i-- {
			idx[i]++
			if idx[i] < outShape[i] {
				break
			}
			idx[i] = 0
		}
	}
	return out, nil
}

// Repeat repeats each element n times along the given axis.
func (a *Array) Repeat(n, axis int) (*Array, error) {
	if n <= 0 {
		return nil, invalidErrorf("repeat: count must be positive, got %d", n)
	}
	ax, err := resolveAxis(axis, len(a.shape))
	if err != nil {
		return nil, err
	}
	outShape := a.shape.Clone()
	outShape[ax] *= n

	out, err := newRoot(outShape, a.dtype)
	if err != nil {
		return nil, err
	}
	idx := make([]int, len(outShape))
	for dst := 0; dst < out.Size(); dst++ {
		srcOff := a.offset
		for i := range idx {
			j := idx[i]
			if i == ax {
				j /= n
			}
			srcOff += j * a.strides[i]
		}
		out.setElemRaw(dst, a.getElem(srcOff))
		for i := len(idx) - 1; i >= 0; i-- {
			idx[i]++
			if idx[i] < outShape[i] {
				break
			}
			idx[i] = 0
		}
	}
	return out, nil
}

// Pad surrounds the array with value: widths holds a (before, after) pair
// per axis.
func (a *Array) Pad(widths [][2]int, value any) (*Array, error) {
	if len(widths) != len(a.shape) {
		return nil, shapeErrorf("pad: got %d width pairs for rank %d", len(widths), len(a.shape))
	}
	outShape := make(Shape, len(a.shape))
	for i, w := range widths {
		if w[0] < 0 || w[1] < 0 {
			return nil, invalidErrorf("pad: negative width at axis %d", i)
		}
		outShape[i] = a.shape[i] + w[0] + w[1]
	}

	out, err := newRoot(outShape, a.dtype)
	if err != nil {
		return nil, err
	}
	if err := out.Fill(value); err != nil {
		out.Release()
		return nil, err
	}

	// Write the source into the interior window.
	it := arrayIter(a)
	pos := make([]int, len(a.shape))
	for {
		off, ok := it.next()
		if !ok {
			return out, nil
		}
		dstOff := 0
		for i := range pos {
			dstOff += (pos[i] + widths[i][0]) * out.strides[i]
		}
		out.setElemRaw(dstOff, a.getElem(off))
		for i := len(pos) - 1; i >= 0; i-- {
			pos[i]++
			if pos[i] < a.shape[i] {
				break
			}
			pos[i] = 0
		}
	}
}

// ToScalar returns the single element of a rank-0 array.
func (a *Array) ToScalar() (any, error) {
	if len(a.shape) != 0 {
		return nil, shapeErrorf("toscalar: array has rank %d, not 0", len(a.shape))
	}
	return a.getElem(a.offset), nil
}

// ToFlat copies the elements into a typed Go slice ([]int64, []float64, ...)
// in logical C order.
func (a *Array) ToFlat() any {
	out := reflect.MakeSlice(reflect.SliceOf(goType(a.dtype)), a.Size(), a.Size())
	it := arrayIter(a)
	i := 0
	for {
		off, ok := it.next()
		if !ok {
			return out.Interface()
		}
		out.Index(i).Set(reflect.ValueOf(a.getElem(off)))
		i++
	}
}

// Float64s returns the elements as []float64 in logical C order, cast with
// the same rules as AsType (Bool maps to 0 and 1).
func (a *Array) Float64s() ([]float64, error) {
	out := make([]float64, 0, a.Size())
	it := arrayIter(a)
	for {
		off, ok := it.next()
		if !ok {
			return out, nil
		}
		v, err := castScalar(a.getElem(off), Float64)
		if err != nil {
			return nil, err
		}
		out = append(out, v.(float64))
	}
}

// Int64s returns the elements as []int64 in logical C order. Floats
// truncate toward zero; Bool maps to 0 and 1.
func (a *Array) Int64s() ([]int64, error) {
	out := make([]int64, 0, a.Size())
	it := arrayIter(a)
	for {
		off, ok := it.next()
		if !ok {
			return out, nil
		}
		v, err := castScalar(a.getElem(off), Int64)
		if err != nil {
			return nil, err
		}
		out = append(out, v.(int64))
	}
}

// Bools returns the elements as []bool in logical C order; numeric values
// map to v != 0.
func (a *Array) Bools() ([]bool, error) {
	out := make([]bool, 0, a.Size())
	it := arrayIter(a)
	for {
		off, ok := it.next()
		if !ok {
			return out, nil
		}
		v, err := castScalar(a.getElem(off), Bool)
		if err != nil {
			return nil, err
		}
		out = append(out, v.(bool))
	}
}

// ToNested returns the array as nested typed Go slices matching the shape
// ([][]float64 for a rank-2 Float64 array). NaN values round-trip as NaN.
// A rank-0 array yields its bare scalar.
func (a *Array) ToNested() any {
	return a.nested(a.offset, 0)
}

func (a *Array) nested(off, axis int) any {
	if axis == len(a.shape) {
		return a.getElem(off)
	}
	t := reflect.SliceOf(goType(a.dtype))
	for i := axis + 1; i < len(a.shape); i++ {
		t = reflect.SliceOf(t)
	}
	out := reflect.MakeSlice(t, a.shape[axis], a.shape[axis])
	for i := 0; i < a.shape[axis]; i++ {
		out.Index(i).Set(reflect.ValueOf(a.nested(off+i*a.strides[axis], axis+1)))
	}
	return out.Interface()
}

func goType(dt DType) reflect.Type {
	switch dt {
	case Int8:
		return reflect.TypeOf(int8(0))
	case Int16:
		return reflect.TypeOf(int16(0))
	case Int32:
		return reflect.TypeOf(int32(0))
	case Int64:
		return reflect.TypeOf(int64(0))
	case Uint8:
		return reflect.TypeOf(uint8(0))
	case Uint16:
		return reflect.TypeOf(uint16(0))
	case Uint32:
		return reflect.TypeOf(uint32(0))
	case Uint64:
		return reflect.TypeOf(uint64(0))
	case Float32:
		return reflect.TypeOf(float32(0))
	case Float64:
		return reflect.TypeOf(float64(0))
	case Bool:
		return reflect.TypeOf(false)
	default:
		panic("unknown dtype")
	}
}
