package tensor

import (
	"strconv"
	"strings"
)

// Sel is one per-axis selector, the closed union the resolver works on.
// Raw selector syntax (integers, range strings, ":", "...") is parsed into
// Sel values once at the API boundary; nothing downstream branches on text.
type Sel struct {
	kind     selKind
	index    int
	start    int
	stop     int
	step     int
	hasStart bool
	hasStop  bool
}

type selKind int

const (
	selIndex selKind = iota
	selRange
	selAll
	selEllipsis
)

// At selects a single position along an axis and drops that axis from the
// result. Negative positions resolve from the end.
func At(i int) Sel {
	return Sel{kind: selIndex, index: i}
}

// Rng selects the half-open range [start, stop) with step 1.
func Rng(start, stop int) Sel {
	return Sel{kind: selRange, start: start, stop: stop, step: 1, hasStart: true, hasStop: true}
}

// RngStep selects the half-open range [start, stop) with the given step.
func RngStep(start, stop, step int) Sel {
	return Sel{kind: selRange, start: start, stop: stop, step: step, hasStart: true, hasStop: true}
}

// From selects [start, extent) along an axis.
func From(start int) Sel {
	return Sel{kind: selRange, start: start, step: 1, hasStart: true}
}

// To selects [0, stop) along an axis.
func To(stop int) Sel {
	return Sel{kind: selRange, stop: stop, step: 1, hasStop: true}
}

// All selects an entire axis unchanged.
func All() Sel {
	return Sel{kind: selAll}
}

// Ell is the ellipsis marker, standing for zero or more full axes. At most
// one may appear in a selector list.
func Ell() Sel {
	return Sel{kind: selEllipsis}
}

// ParseSelectors parses a comma-separated NumPy-style selector expression
// ("2:5", "::2", "1, :, ...", "-1") into Sel values.
func ParseSelectors(expr string) ([]Sel, error) {
	parts := strings.Split(expr, ",")
	sels := make([]Sel, 0, len(parts))
	for _, part := range parts {
		sel, err := parseSelector(strings.TrimSpace(part))
		if err != nil {
			return nil, err
		}
		sels = append(sels, sel)
	}
	return sels, nil
}

func parseSelector(tok string) (Sel, error) {
	if tok == "..." {
		return Ell(), nil
	}
	if !strings.Contains(tok, ":") {
		i, err := strconv.Atoi(tok)
		if err != nil {
			return Sel{}, indexErrorf("malformed selector %q", tok)
		}
		return At(i), nil
	}

	fields := strings.Split(tok, ":")
	if len(fields) > 3 {
		return Sel{}, indexErrorf("malformed selector %q", tok)
	}
	sel := Sel{kind: selRange, step: 1}
	for i, f := range fields {
		f = strings.TrimSpace(f)
		if f == "" {
			continue
		}
		v, err := strconv.Atoi(f)
		if err != nil {
			return Sel{}, indexErrorf("malformed selector %q", tok)
		}
		switch i {
		case 0:
			sel.start, sel.hasStart = v, true
		case 1:
			sel.stop, sel.hasStop = v, true
		case 2:
			sel.step = v
		}
	}
	if !sel.hasStart && !sel.hasStop && sel.step == 1 {
		return All(), nil
	}
	return sel, nil
}

// Slice derives a view through the per-axis selectors. Integer selectors
// drop their axis; ranges and ":" retain it; one "..." expands to the full
// axes the selector list leaves unnamed. Without an ellipsis, trailing axes
// not named by a selector are kept whole (partial indexing).
//
// The result always shares the input's Buffer; Slice never copies.
// Negative-step ranges are not supported; use Flip to reverse an axis.
func (a *Array) Slice(sels ...Sel) (*Array, error) {
	rank := len(a.shape)

	ellipses := 0
	for _, s := range sels {
		if s.kind == selEllipsis {
			ellipses++
		}
	}
	if ellipses > 1 {
		return nil, indexErrorf("at most one ellipsis allowed, got %d", ellipses)
	}
	explicit := len(sels) - ellipses
	if explicit > rank {
		return nil, indexErrorf("too many selectors: %d for rank %d", explicit, rank)
	}

	// Expand to exactly one selector per axis.
	expanded := make([]Sel, 0, rank)
	for _, s := range sels {
		if s.kind == selEllipsis {
			for i := 0; i < rank-explicit; i++ {
				expanded = append(expanded, All())
			}
			continue
		}
		expanded = append(expanded, s)
	}
	for len(expanded) < rank {
		expanded = append(expanded, All())
	}

	shape := make(Shape, 0, rank)
	strides := make(Strides, 0, rank)
	offset := a.offset

	for axis, s := range expanded {
		extent := a.shape[axis]
		stride := a.strides[axis]

		switch s.kind {
		case selIndex:
			idx := s.index
			if idx < 0 {
				idx += extent
			}
			if idx < 0 || idx >= extent {
				return nil, indexErrorf("index %d out of bounds for axis %d (extent %d)", s.index, axis, extent)
			}
			offset += idx * stride
			// Axis dropped.

		case selAll:
			shape = append(shape, extent)
			strides = append(strides, stride)

		case selRange:
			if s.step == 0 {
				return nil, invalidErrorf("slice step cannot be zero")
			}
			if s.step < 0 {
				return nil, invalidErrorf("negative slice step %d not supported; use Flip", s.step)
			}
			start, stop := 0, extent
			if s.hasStart {
				start = s.start
				if start < 0 {
					start += extent
				}
			}
			if s.hasStop {
				stop = s.stop
				if stop < 0 {
					stop += extent
				}
			}
			start = min(max(start, 0), extent)
			stop = min(max(stop, 0), extent)

			n := 0
			if stop > start {
				n = (stop - start + s.step - 1) / s.step
			}
			if n > 0 {
				offset += start * stride
			}
			shape = append(shape, n)
			strides = append(strides, stride*s.step)
		}
	}

	return a.newView(shape, strides, offset), nil
}

// SliceExpr is Slice over a parsed NumPy-style selector expression.
func (a *Array) SliceExpr(expr string) (*Array, error) {
	sels, err := ParseSelectors(expr)
	if err != nil {
		return nil, err
	}
	return a.Slice(sels...)
}
