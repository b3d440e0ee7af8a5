package tensor

// Gather and scatter by index arrays. Index arrays may have any integer
// dtype; negative entries resolve from the end of the indexed extent, and
// anything still out of range is an IndexError. Take variants allocate;
// Put/ScatterAdd write through the shared Buffer in place.

// intAt reads one element widened to int64, for index arithmetic.
func (a *Array) intAt(off int) int64 {
	switch a.dtype {
	case Int8:
		return int64(a.buffer.int8s()[off])
	case Int16:
		return int64(a.buffer.int16s()[off])
	case Int32:
		return int64(a.buffer.int32s()[off])
	case Int64:
		return a.buffer.int64s()[off]
	case Uint8:
		return int64(a.buffer.uint8s()[off])
	case Uint16:
		return int64(a.buffer.uint16s()[off])
	case Uint32:
		return int64(a.buffer.uint32s()[off])
	case Uint64:
		return int64(a.buffer.uint64s()[off])
	default:
		panic("intAt on non-integer array")
	}
}

func checkIndexArray(indices *Array) error {
	if !indices.dtype.IsInteger() {
		return dtypeErrorf("index array must be integer, got %s", indices.dtype)
	}
	return nil
}

func resolveIndexValue(idx int64, extent int) (int, error) {
	orig := idx
	if idx < 0 {
		idx += int64(extent)
	}
	if idx < 0 || idx >= int64(extent) {
		return 0, indexErrorf("index %d out of bounds for extent %d", orig, extent)
	}
	return int(idx), nil
}

// Take gathers elements along axis by a 1-D index array: the axis extent is
// replaced by the number of indices.
func (a *Array) Take(indices *Array, axis int) (*Array, error) {
	if err := checkIndexArray(indices); err != nil {
		return nil, err
	}
	if indices.NDim() != 1 {
		return nil, shapeErrorf("take: index array must be 1-D, got rank %d", indices.NDim())
	}
	ax, err := resolveAxis(axis, len(a.shape))
	if err != nil {
		return nil, err
	}

	outShape := a.shape.Clone()
	outShape[ax] = indices.Size()
	out, err := newRoot(outShape, a.dtype)
	if err != nil {
		return nil, err
	}

	idxIt := arrayIter(indices)
	extent := a.shape[ax]
	for j := 0; j < outShape[ax]; j++ {
		idxOff, _ := idxIt.next()
		src, err := resolveIndexValue(indices.intAt(idxOff), extent)
		if err != nil {
			out.Release()
			return nil, err
		}
		// Copy the whole slice a[..., src, ...] into out[..., j, ...].
		srcLane, err := a.Slice(axisSel(ax, src)...)
		if err != nil {
			out.Release()
			return nil, err
		}
		dstLane, err := out.Slice(axisSel(ax, j)...)
		if err != nil {
			out.Release()
			return nil, err
		}
		if err := dstLane.Assign(srcLane); err != nil {
			out.Release()
			return nil, err
		}
		srcLane.Release()
		dstLane.Release()
	}
	return out, nil
}

// axisSel builds a selector list that pins one axis to idx and keeps every
// other axis whole, retaining the pinned axis at extent 1.
func axisSel(axis, idx int) []Sel {
	sels := make([]Sel, axis+1)
	for i := 0; i < axis; i++ {
		sels[i] = All()
	}
	sels[axis] = Rng(idx, idx+1)
	return sels
}

// TakeFlat gathers by logical flat positions; the result has the index
// array's shape.
func (a *Array) TakeFlat(indices *Array) (*Array, error) {
	if err := checkIndexArray(indices); err != nil {
		return nil, err
	}
	out, err := newRoot(indices.shape, a.dtype)
	if err != nil {
		return nil, err
	}
	size := a.Size()
	idxIt := arrayIter(indices)
	for i := 0; i < out.Size(); i++ {
		idxOff, _ := idxIt.next()
		flat, err := resolveIndexValue(indices.intAt(idxOff), size)
		if err != nil {
			out.Release()
			return nil, err
		}
		off, err := a.flatOffset(flat)
		if err != nil {
			out.Release()
			return nil, err
		}
		out.setElemRaw(i, a.getElem(off))
	}
	return out, nil
}

// Put writes values at logical flat positions, in place. values broadcasts
// against the index array's shape; writes are visible through every alias.
func (a *Array) Put(indices, values *Array) error {
	if err := checkIndexArray(indices); err != nil {
		return err
	}
	bshape, err := BroadcastShapes(indices.shape, values.shape)
	if err != nil {
		return err
	}
	if !bshape.Equal(indices.shape) {
		return shapeErrorf("put: values shape %v does not broadcast to indices shape %v",
			[]int(values.shape), []int(indices.shape))
	}
	size := a.Size()
	idxIt := arrayIter(indices)
	valIt := broadcastIter(values, indices.shape)
	for i := 0; i < indices.Size(); i++ {
		idxOff, _ := idxIt.next()
		valOff, _ := valIt.next()
		flat, err := resolveIndexValue(indices.intAt(idxOff), size)
		if err != nil {
			return err
		}
		off, err := a.flatOffset(flat)
		if err != nil {
			return err
		}
		if err := a.setElemRaw2(off, values, valOff); err != nil {
			return err
		}
	}
	return nil
}

// alongAxisOffsets walks an index array whose shape matches the data shape
// everywhere except at axis, yielding for each index element the data
// offset with the indexed axis substituted.
func (a *Array) alongAxisOffsets(indices *Array, axis int, visit func(dataOff, idxOff int) error) error {
	if err := checkIndexArray(indices); err != nil {
		return err
	}
	if indices.NDim() != a.NDim() {
		return shapeErrorf("index rank %d != data rank %d", indices.NDim(), a.NDim())
	}
	for i := range a.shape {
		if i != axis && indices.shape[i] != a.shape[i] {
			return shapeErrorf("index shape %v does not match data shape %v at axis %d",
				[]int(indices.shape), []int(a.shape), i)
		}
	}

	extent := a.shape[axis]
	idxIt := arrayIter(indices)
	pos := make([]int, len(indices.shape))
	for n := 0; n < indices.Size(); n++ {
		idxOff, _ := idxIt.next()
		j, err := resolveIndexValue(indices.intAt(idxOff), extent)
		if err != nil {
			return err
		}
		dataOff := a.offset
		for i := range pos {
			p := pos[i]
			if i == axis {
				p = j
			}
			dataOff += p * a.strides[i]
		}
		if err := visit(dataOff, idxOff); err != nil {
			return err
		}
		for i := len(pos) - 1; i >= 0; i-- {
			pos[i]++
			if pos[i] < indices.shape[i] {
				break
			}
			pos[i] = 0
		}
	}
	return nil
}

// TakeAlongAxis gathers out[i,...,k,...] = a[i,...,indices[i,...,k,...],...]
// where the index array matches a's shape except along axis. The result has
// the index array's shape.
func (a *Array) TakeAlongAxis(indices *Array, axis int) (*Array, error) {
	ax, err := resolveAxis(axis, len(a.shape))
	if err != nil {
		return nil, err
	}
	out, err := newRoot(indices.shape, a.dtype)
	if err != nil {
		return nil, err
	}
	dst := 0
	err = a.alongAxisOffsets(indices, ax, func(dataOff, _ int) error {
		out.setElemRaw(dst, a.getElem(dataOff))
		dst++
		return nil
	})
	if err != nil {
		out.Release()
		return nil, err
	}
	return out, nil
}

// PutAlongAxis scatters values into a along axis, in place. values must
// broadcast to the index array's shape.
func (a *Array) PutAlongAxis(indices, values *Array, axis int) error {
	ax, err := resolveAxis(axis, len(a.shape))
	if err != nil {
		return err
	}
	bshape, err := BroadcastShapes(indices.shape, values.shape)
	if err != nil {
		return err
	}
	if !bshape.Equal(indices.shape) {
		return shapeErrorf("putalongaxis: values shape %v does not broadcast to indices shape %v",
			[]int(values.shape), []int(indices.shape))
	}
	valIt := broadcastIter(values, indices.shape)
	return a.alongAxisOffsets(indices, ax, func(dataOff, _ int) error {
		valOff, _ := valIt.next()
		return a.setElemRaw2(dataOff, values, valOff)
	})
}

// ScatterAdd accumulates values into a along axis, in place: repeated
// target indices add up rather than overwrite.
func (a *Array) ScatterAdd(indices, values *Array, axis int) error {
	if a.dtype == Bool {
		return dtypeErrorf("scatteradd: not defined for bool arrays")
	}
	ax, err := resolveAxis(axis, len(a.shape))
	if err != nil {
		return err
	}
	bshape, err := BroadcastShapes(indices.shape, values.shape)
	if err != nil {
		return err
	}
	if !bshape.Equal(indices.shape) {
		return shapeErrorf("scatteradd: values shape %v does not broadcast to indices shape %v",
			[]int(values.shape), []int(indices.shape))
	}
	valIt := broadcastIter(values, indices.shape)
	return a.alongAxisOffsets(indices, ax, func(dataOff, _ int) error {
		valOff, _ := valIt.next()
		return a.addElem(dataOff, values, valOff)
	})
}

// addElem accumulates src[srcOff] into a[dstOff] in a's dtype domain.
func (a *Array) addElem(dstOff int, src *Array, srcOff int) error {
	if a.dtype.IsFloat() {
		return a.setElem(dstOff, a.floatAt(dstOff)+src.floatAt(srcOff))
	}
	if !src.dtype.IsInteger() {
		return dtypeErrorf("scatteradd: cannot add %s values into %s array", src.dtype, a.dtype)
	}
	// int64 accumulation then narrowing matches native wraparound.
	return a.setElem(dstOff, a.intAt(dstOff)+src.intAt(srcOff))
}
