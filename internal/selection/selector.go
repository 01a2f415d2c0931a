// Package selection resolves slice arguments into integer positions.
//
// A Selector is a tagged union: all, a single position or label, a sequence
// of positions or labels, a boolean mask, or a half-open range. Resolve turns
// it into the ordered positions it addresses exactly once, so nothing
// downstream has to inspect the argument again. Order and repeats requested
// by the caller are preserved.
package selection

import (
	"fmt"

	"github.com/paveg/biocframe/internal/common"
	"github.com/paveg/biocframe/internal/errors"
	"golang.org/x/exp/constraints"
)

// Kind identifies the selector variant.
type Kind int

const (
	KindAll Kind = iota
	KindPosition
	KindLabel
	KindPositions
	KindLabels
	KindMask
	KindRange
)

// Selector addresses a subset of one axis.
type Selector struct {
	kind      Kind
	positions []int
	labels    []string
	mask      []bool
	rng       span
}

type span struct {
	start, stop, step int
	open              bool // stop is the end of the axis
}

// Lookup finds a label on an axis. *index.Labels satisfies it.
type Lookup interface {
	Lookup(label string) (int, bool)
}

// All selects every position.
func All() Selector {
	return Selector{kind: KindAll}
}

// At selects one position. Negative positions count from the end.
func At(i int) Selector {
	return Selector{kind: KindPosition, positions: []int{i}}
}

// Label selects one label.
func Label(name string) Selector {
	return Selector{kind: KindLabel, labels: []string{name}}
}

// Positions selects positions in the given order.
func Positions[T constraints.Integer](positions ...T) Selector {
	out := make([]int, len(positions))
	for i, p := range positions {
		out[i] = int(p)
	}
	return Selector{kind: KindPositions, positions: out}
}

// Labels selects labels in the given order.
func Labels(names ...string) Selector {
	return Selector{kind: KindLabels, labels: append([]string(nil), names...)}
}

// Mask selects the positions where mask is true. Its length must equal the
// axis length.
func Mask(mask ...bool) Selector {
	return Selector{kind: KindMask, mask: append([]bool(nil), mask...)}
}

// Range selects [start, stop) with Python slice semantics: negative bounds
// count from the end and bounds are clamped to the axis.
func Range(start, stop int) Selector {
	return Selector{kind: KindRange, rng: span{start: start, stop: stop, step: 1}}
}

// RangeStep is Range with a step. A negative step walks backwards from
// start down to, but excluding, stop.
func RangeStep(start, stop, step int) Selector {
	return Selector{kind: KindRange, rng: span{start: start, stop: stop, step: step}}
}

// From selects every position from start to the end of the axis.
func From(start int) Selector {
	return Selector{kind: KindRange, rng: span{start: start, step: 1, open: true}}
}

// Kind returns the selector variant.
func (s Selector) Kind() Kind {
	return s.kind
}

// IsScalar reports whether the selector addresses exactly one element by
// construction (a single position or label).
func (s Selector) IsScalar() bool {
	return s.kind == KindPosition || s.kind == KindLabel
}

// String returns a string representation of the selector
func (s Selector) String() string {
	switch s.kind {
	case KindAll:
		return "all"
	case KindPosition:
		return fmt.Sprintf("at(%d)", s.positions[0])
	case KindLabel:
		return fmt.Sprintf("label(%q)", s.labels[0])
	case KindPositions:
		return fmt.Sprintf("positions%v", s.positions)
	case KindLabels:
		return fmt.Sprintf("labels%q", s.labels)
	case KindMask:
		return fmt.Sprintf("mask(len=%d)", len(s.mask))
	default:
		if s.rng.open {
			return fmt.Sprintf("range(%d:)", s.rng.start)
		}
		return fmt.Sprintf("range(%d:%d:%d)", s.rng.start, s.rng.stop, s.rng.step)
	}
}

// Of converts a dynamic slice argument into a Selector. Accepted inputs:
// nil (all), a Selector, any Go integer (position), string (label), integer
// slices, []string, []bool, and []any holding only integers or only strings.
// Mixing labels and positions, floats and other types fail with a type
// error.
func Of(v any) (Selector, error) {
	const op = "Select"
	const want = "position, label, positions, labels or boolean mask"

	switch x := v.(type) {
	case nil:
		return All(), nil
	case Selector:
		return x, nil
	case string:
		return Label(x), nil
	case []string:
		return Labels(x...), nil
	case []bool:
		return Mask(x...), nil
	case []int:
		return Positions(x...), nil
	case []int32:
		return Positions(x...), nil
	case []int64:
		return Positions(x...), nil
	case []any:
		return ofAny(x)
	}

	if i, ok := common.ToInt(v); ok {
		return At(i), nil
	}
	if common.IsFloatType(v) {
		return Selector{}, errors.NewTypeError(op, v, want).WithHint("positions must be integers")
	}
	return Selector{}, errors.NewTypeError(op, v, want)
}

func ofAny(items []any) (Selector, error) {
	var positions []int
	var labels []string
	for _, item := range items {
		if s, ok := item.(string); ok {
			labels = append(labels, s)
			continue
		}
		if i, ok := common.ToInt(item); ok {
			positions = append(positions, i)
			continue
		}
		return Selector{}, errors.NewTypeError("Select", item, "integer or string element")
	}
	if len(positions) > 0 && len(labels) > 0 {
		return Selector{}, &errors.FrameError{
			Kind:    errors.KindType,
			Op:      "Select",
			Message: "cannot mix labels and positions in one selection",
		}
	}
	if len(labels) > 0 {
		return Labels(labels...), nil
	}
	return Positions(positions...), nil
}
