package tensor

// scalar classification used both by convertScalar and by the scalar-operand
// promotion rule (a float literal against an integer array promotes the
// operation to Float64).

type scalarClass int

const (
	scalarInt scalarClass = iota
	scalarFloat
	scalarBool
	scalarBad
)

func classifyScalar(v any) scalarClass {
	switch v.(type) {
	case int, int8, int16, int32, int64, uint, uint8, uint16, uint32, uint64:
		return scalarInt
	case float32, float64:
		return scalarFloat
	case bool:
		return scalarBool
	default:
		return scalarBad
	}
}

// scalarAsFloat widens any accepted numeric scalar to float64.
func scalarAsFloat(v any) (float64, bool) {
	switch x := v.(type) {
	case int:
		return float64(x), true
	case int8:
		return float64(x), true
	case int16:
		return float64(x), true
	case int32:
		return float64(x), true
	case int64:
		return float64(x), true
	case uint:
		return float64(x), true
	case uint8:
		return float64(x), true
	case uint16:
		return float64(x), true
	case uint32:
		return float64(x), true
	case uint64:
		return float64(x), true
	case float32:
		return float64(x), true
	case float64:
		return x, true
	}
	return 0, false
}

// scalarAsInt widens any accepted integer scalar to int64 (two's-complement
// wraparound for large uint64 values, matching native integer semantics).
func scalarAsInt(v any) (int64, bool) {
	switch x := v.(type) {
	case int:
		return int64(x), true
	case int8:
		return int64(x), true
	case int16:
		return int64(x), true
	case int32:
		return int64(x), true
	case int64:
		return x, true
	case uint:
		return int64(x), true
	case uint8:
		return int64(x), true
	case uint16:
		return int64(x), true
	case uint32:
		return int64(x), true
	case uint64:
		return int64(x), true
	case float32:
		return int64(x), true
	case float64:
		return int64(x), true
	}
	return 0, false
}

// convertScalar casts a host scalar to the exact Go value of dt. Integer
// narrowing wraps; float to integer truncates; Bool accepts only bool and
// numerics accept only numbers, with no silent coercion across those classes.
func convertScalar(v any, dt DType) (any, error) {
	if dt == Bool {
		b, ok := v.(bool)
		if !ok {
			return nil, dtypeErrorf("cannot store %T in bool array", v)
		}
		return b, nil
	}
	if _, isBool := v.(bool); isBool {
		return nil, dtypeErrorf("cannot store bool in %s array", dt)
	}

	if dt.IsFloat() {
		f, ok := scalarAsFloat(v)
		if !ok {
			return nil, dtypeErrorf("cannot store %T in %s array", v, dt)
		}
		if dt == Float32 {
			return float32(f), nil
		}
		return f, nil
	}

	var i int64
	if cls := classifyScalar(v); cls == scalarFloat {
		f, _ := scalarAsFloat(v)
		i = int64(f)
	} else {
		var ok bool
		i, ok = scalarAsInt(v)
		if !ok {
			return nil, dtypeErrorf("cannot store %T in %s array", v, dt)
		}
	}

	switch dt {
	case Int8:
		return int8(i), nil
	case Int16:
		return int16(i), nil
	case Int32:
		return int32(i), nil
	case Int64:
		return i, nil
	case Uint8:
		return uint8(i), nil
	case Uint16:
		return uint16(i), nil
	case Uint32:
		return uint32(i), nil
	case Uint64:
		return uint64(i), nil
	default:
		return nil, dtypeErrorf("cannot store %T in %s array", v, dt)
	}
}
