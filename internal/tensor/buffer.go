package tensor

import (
	"fmt"
	"sync/atomic"
	"unsafe"
)

// Buffer is the reference-counted backing storage shared by a root Array and
// all views derived from it. The count starts at 1 for the allocating root;
// every view retains it, so the storage survives until the last handle, root
// or view, is released.
type Buffer struct {
	data     []byte
	length   int // number of elements
	dtype    DType
	refCount atomic.Int32
}

// newBuffer allocates zero-initialized storage for length elements of dtype.
func newBuffer(dtype DType, length int) *Buffer {
	b := &Buffer{
		data:   make([]byte, length*dtype.Size()),
		length: length,
		dtype:  dtype,
	}
	b.refCount.Store(1)
	return b
}

// retain increments the reference count.
func (b *Buffer) retain() {
	b.refCount.Add(1)
}

// release decrements the reference count and drops the storage at zero.
func (b *Buffer) release() {
	if b.refCount.Add(-1) == 0 {
		b.data = nil
	}
}

// Len returns the element capacity of the buffer.
func (b *Buffer) Len() int {
	return b.length
}

// The typed accessors reinterpret the WHOLE buffer, not a suffix starting at
// some view's offset: views may carry negative strides, so element addresses
// can fall on either side of the view's base offset.

func (b *Buffer) int8s() []int8 {
	b.check(Int8)
	return unsafe.Slice((*int8)(unsafe.Pointer(unsafe.SliceData(b.data))), b.length)
}

func (b *Buffer) int16s() []int16 {
	b.check(Int16)
	return unsafe.Slice((*int16)(unsafe.Pointer(unsafe.SliceData(b.data))), b.length)
}

func (b *Buffer) int32s() []int32 {
	b.check(Int32)
	return unsafe.Slice((*int32)(unsafe.Pointer(unsafe.SliceData(b.data))), b.length)
}

func (b *Buffer) int64s() []int64 {
	b.check(Int64)
	return unsafe.Slice((*int64)(unsafe.Pointer(unsafe.SliceData(b.data))), b.length)
}

func (b *Buffer) uint8s() []uint8 {
	b.check(Uint8)
	return b.data
}

func (b *Buffer) uint16s() []uint16 {
	b.check(Uint16)
	return unsafe.Slice((*uint16)(unsafe.Pointer(unsafe.SliceData(b.data))), b.length)
}

func (b *Buffer) uint32s() []uint32 {
	b.check(Uint32)
	return unsafe.Slice((*uint32)(unsafe.Pointer(unsafe.SliceData(b.data))), b.length)
}

func (b *Buffer) uint64s() []uint64 {
	b.check(Uint64)
	return unsafe.Slice((*uint64)(unsafe.Pointer(unsafe.SliceData(b.data))), b.length)
}

func (b *Buffer) float32s() []float32 {
	b.check(Float32)
	return unsafe.Slice((*float32)(unsafe.Pointer(unsafe.SliceData(b.data))), b.length)
}

func (b *Buffer) float64s() []float64 {
	b.check(Float64)
	return unsafe.Slice((*float64)(unsafe.Pointer(unsafe.SliceData(b.data))), b.length)
}

func (b *Buffer) bools() []bool {
	b.check(Bool)
	return unsafe.Slice((*bool)(unsafe.Pointer(unsafe.SliceData(b.data))), b.length)
}

func (b *Buffer) check(want DType) {
	if b.dtype != want {
		panic(fmt.Sprintf("buffer dtype is %s, not %s", b.dtype, want))
	}
	if b.data == nil && b.length > 0 {
		panic("use of released buffer")
	}
}
