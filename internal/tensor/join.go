package tensor

// Concat joins arrays along an existing axis. All inputs must share rank and
// every extent except the one being joined; dtypes promote pairwise.
func Concat(arrays []*Array, axis int) (*Array, error) {
	if len(arrays) == 0 {
		return nil, invalidErrorf("concat: no arrays given")
	}
	first := arrays[0]
	ax, err := resolveAxis(axis, first.NDim())
	if err != nil {
		return nil, err
	}
	dt := first.dtype
	total := first.shape[ax]
	for _, arr := range arrays[1:] {
		if arr.NDim() != first.NDim() {
			return nil, shapeErrorf("concat: rank mismatch: %d vs %d", arr.NDim(), first.NDim())
		}
		for i, ext := range arr.shape {
			if i != ax && ext != first.shape[i] {
				return nil, shapeErrorf("concat: extent mismatch on axis %d: %d vs %d", i, ext, first.shape[i])
			}
		}
		if dt, err = Promote(dt, arr.dtype); err != nil {
			return nil, err
		}
		total += arr.shape[ax]
	}

	outShape := first.shape.Clone()
	outShape[ax] = total
	out, err := newRoot(outShape, dt)
	if err != nil {
		return nil, err
	}
	pos := 0
	for _, arr := range arrays {
		sels := make([]Sel, first.NDim())
		for i := range sels {
			sels[i] = All()
		}
		sels[ax] = Rng(pos, pos+arr.shape[ax])
		dst, err := out.Slice(sels...)
		if err != nil {
			out.Release()
			return nil, err
		}
		err = dst.Assign(arr)
		dst.Release()
		if err != nil {
			out.Release()
			return nil, err
		}
		pos += arr.shape[ax]
	}
	return out, nil
}

// Stack joins arrays of identical shape along a new axis.
func Stack(arrays []*Array, axis int) (*Array, error) {
	if len(arrays) == 0 {
		return nil, invalidErrorf("stack: no arrays given")
	}
	first := arrays[0]
	for _, arr := range arrays[1:] {
		if !arr.shape.Equal(first.shape) {
			return nil, shapeErrorf("stack: shape mismatch: %v vs %v", []int(arr.shape), []int(first.shape))
		}
	}
	// The new axis may sit one past the current rank.
	ax, err := resolveAxis(axis, first.NDim()+1)
	if err != nil {
		return nil, err
	}
	expanded := make([]*Array, len(arrays))
	for i, arr := range arrays {
		exp, err := arr.ExpandDims(ax)
		if err != nil {
			for _, e := range expanded[:i] {
				e.Release()
			}
			return nil, err
		}
		expanded[i] = exp
	}
	out, err := Concat(expanded, ax)
	for _, e := range expanded {
		e.Release()
	}
	return out, err
}
