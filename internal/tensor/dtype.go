// Package tensor implements the core N-dimensional array engine: reference
// counted buffers, shape/stride views, the slice resolver, broadcasting,
// dtype promotion and the dtype-generic kernels.
package tensor

// DType identifies the element type of an Array.
type DType int

// Supported element types.
const (
	Int8 DType = iota
	Int16
	Int32
	Int64
	Uint8
	Uint16
	Uint32
	Uint64
	Float32
	Float64
	Bool
)

// Size returns the width of one element in bytes.
func (dt DType) Size() int {
	switch dt {
	case Int8, Uint8, Bool:
		return 1
	case Int16, Uint16:
		return 2
	case Int32, Uint32, Float32:
		return 4
	case Int64, Uint64, Float64:
		return 8
	default:
		panic("unknown dtype")
	}
}

// IsFloat reports whether dt is a floating-point type.
func (dt DType) IsFloat() bool {
	return dt == Float32 || dt == Float64
}

// IsInteger reports whether dt is a signed or unsigned integer type.
func (dt DType) IsInteger() bool {
	switch dt {
	case Int8, Int16, Int32, Int64, Uint8, Uint16, Uint32, Uint64:
		return true
	}
	return false
}

// IsSigned reports whether dt is a signed numeric type.
func (dt DType) IsSigned() bool {
	switch dt {
	case Int8, Int16, Int32, Int64, Float32, Float64:
		return true
	}
	return false
}

// IsNumeric reports whether dt participates in arithmetic.
func (dt DType) IsNumeric() bool {
	return dt != Bool
}

func (dt DType) String() string {
	switch dt {
	case Int8:
		return "int8"
	case Int16:
		return "int16"
	case Int32:
		return "int32"
	case Int64:
		return "int64"
	case Uint8:
		return "uint8"
	case Uint16:
		return "uint16"
	case Uint32:
		return "uint32"
	case Uint64:
		return "uint64"
	case Float32:
		return "float32"
	case Float64:
		return "float64"
	case Bool:
		return "bool"
	default:
		return "unknown"
	}
}
