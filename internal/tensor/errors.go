package tensor

import "github.com/pkg/errors"

// Sentinel error kinds. Every failure returned by this package wraps exactly
// one of these, so callers (and host-language bindings) can map each kind to
// a distinct error type with errors.Is.
var (
	// ErrShape reports rank/extent mismatches, broadcasting failures,
	// invalid axes and permutations, and non-rectangular literals.
	ErrShape = errors.New("shape error")

	// ErrIndex reports out-of-bounds indices, malformed selectors, wrong
	// index counts, repeated ellipses, and flat addressing into empty views.
	ErrIndex = errors.New("index error")

	// ErrDType reports operations unsupported for an element type, such as
	// negating an unsigned array or shifting a float.
	ErrDType = errors.New("dtype error")

	// ErrMath reports integer division by zero and degenerate ddof divisors.
	ErrMath = errors.New("math error")

	// ErrInvalid reports malformed arguments: zero steps, non-positive
	// counts, degenerate generator ranges.
	ErrInvalid = errors.New("invalid argument")
)

func shapeErrorf(format string, args ...any) error {
	return errors.Wrapf(ErrShape, format, args...)
}

func indexErrorf(format string, args ...any) error {
	return errors.Wrapf(ErrIndex, format, args...)
}

func dtypeErrorf(format string, args ...any) error {
	return errors.Wrapf(ErrDType, format, args...)
}

func mathErrorf(format string, args ...any) error {
	return errors.Wrapf(ErrMath, format, args...)
}

func invalidErrorf(format string, args ...any) error {
	return errors.Wrapf(ErrInvalid, format, args...)
}
