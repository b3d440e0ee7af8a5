package tensor

// Promote selects the result dtype of a binary operation over two operand
// dtypes. It is a pure function of the two tags:
//
//   - identical dtypes stay identical
//   - floatness dominates integer-ness; among floats the wider width wins
//   - same-signedness integers promote to the wider width
//   - mixed-signedness integers promote to the smallest signed type that can
//     represent both; Uint64 against a signed type has no such integer, so
//     the pair promotes to Float64
//
// Bool does not mix with numeric dtypes; whether Bool+Bool is legal at all
// is the calling operation's decision (arithmetic rejects it, logical ops
// accept it), so Promote simply returns Bool for the identical pair.
func Promote(a, b DType) (DType, error) {
	if a == b {
		return a, nil
	}
	if a == Bool || b == Bool {
		return 0, dtypeErrorf("cannot mix bool with %s", nonBool(a, b))
	}

	af, bf := a.IsFloat(), b.IsFloat()
	switch {
	case af && bf:
		if a.Size() >= b.Size() {
			return a, nil
		}
		return b, nil
	case af:
		return a, nil
	case bf:
		return b, nil
	}

	// Both integers.
	if a.IsSigned() == b.IsSigned() {
		if a.Size() >= b.Size() {
			return a, nil
		}
		return b, nil
	}

	signed, unsigned := a, b
	if !a.IsSigned() {
		signed, unsigned = b, a
	}
	if signed.Size() > unsigned.Size() {
		return signed, nil
	}
	switch unsigned.Size() {
	case 1:
		return Int16, nil
	case 2:
		return Int32, nil
	case 4:
		return Int64, nil
	default:
		// Uint64 cannot be represented by any signed integer type.
		return Float64, nil
	}
}

func nonBool(a, b DType) DType {
	if a == Bool {
		return b
	}
	return a
}

// promoteWithScalar picks the dtype for an array-scalar operation: the
// scalar adopts the array's dtype, except that a float literal against an
// integer array promotes the operation to the default float dtype.
func promoteWithScalar(arr DType, scalar any) (DType, error) {
	switch classifyScalar(scalar) {
	case scalarBool:
		if arr != Bool {
			return 0, dtypeErrorf("cannot combine bool scalar with %s array", arr)
		}
		return Bool, nil
	case scalarFloat:
		if arr == Bool {
			return 0, dtypeErrorf("cannot combine float scalar with bool array")
		}
		if arr.IsFloat() {
			return arr, nil
		}
		return Float64, nil
	case scalarInt:
		if arr == Bool {
			return 0, dtypeErrorf("cannot combine integer scalar with bool array")
		}
		return arr, nil
	default:
		return 0, dtypeErrorf("unsupported scalar operand type %T", scalar)
	}
}
