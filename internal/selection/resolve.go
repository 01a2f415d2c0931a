package selection

import (
	"github.com/paveg/biocframe/internal/errors"
)

// Resolve turns the selector into positions on an axis of length n. labels
// may be nil when the axis has no names; label selectors then fail with a key
// error. axis names the axis ("row" or "column") in error messages.
func (s Selector) Resolve(n int, labels Lookup, axis string) ([]int, error) {
	const op = "Resolve"

	switch s.kind {
	case KindAll:
		out := make([]int, n)
		for i := range out {
			out[i] = i
		}
		return out, nil

	case KindPosition, KindPositions:
		out := make([]int, len(s.positions))
		for i, p := range s.positions {
			pos, err := normalize(p, n, axis)
			if err != nil {
				return nil, err
			}
			out[i] = pos
		}
		return out, nil

	case KindLabel, KindLabels:
		out := make([]int, len(s.labels))
		for i, name := range s.labels {
			pos, ok := -1, false
			if labels != nil {
				pos, ok = labels.Lookup(name)
			}
			if !ok {
				return nil, notFound(axis, name)
			}
			out[i] = pos
		}
		return out, nil

	case KindMask:
		if len(s.mask) != n {
			return nil, errors.NewStructureError(op,
				"boolean mask length does not match "+axis+" count").
				WithHint("mask must have one entry per " + axis)
		}
		out := make([]int, 0, n)
		for i, keep := range s.mask {
			if keep {
				out = append(out, i)
			}
		}
		return out, nil

	case KindRange:
		return s.rng.positions(n)
	}

	return nil, errors.NewInternalError(op, nil)
}

// Resolve is a convenience for Of followed by Selector.Resolve.
func Resolve(v any, n int, labels Lookup, axis string) ([]int, error) {
	s, err := Of(v)
	if err != nil {
		return nil, err
	}
	return s.Resolve(n, labels, axis)
}

func normalize(p, n int, axis string) (int, error) {
	pos := p
	if pos < 0 {
		pos += n
	}
	if pos < 0 || pos >= n {
		return 0, errors.NewIndexOutOfBoundsError("Resolve", axis, p, n)
	}
	return pos, nil
}

func notFound(axis, name string) *errors.FrameError {
	if axis == "column" {
		return errors.NewColumnNotFoundError("Resolve", name, nil)
	}
	return errors.NewRowNotFoundError("Resolve", name)
}

func (r span) positions(n int) ([]int, error) {
	if r.step == 0 {
		return nil, errors.NewStructureError("Resolve", "range step cannot be zero")
	}

	start, stop := r.start, r.stop
	if r.open {
		if r.step > 0 {
			stop = n
		} else {
			stop = -n - 1
		}
	}
	start = clamp(start, n, r.step)
	stop = clamp(stop, n, r.step)

	var out []int
	if r.step > 0 {
		for i := start; i < stop; i += r.step {
			out = append(out, i)
		}
	} else {
		for i := start; i > stop; i += r.step {
			out = append(out, i)
		}
	}
	if out == nil {
		out = []int{}
	}
	return out, nil
}

// clamp applies Python slice bound rules.
func clamp(b, n, step int) int {
	if b < 0 {
		b += n
		if b < 0 {
			if step < 0 {
				return -1
			}
			return 0
		}
		return b
	}
	if b >= n {
		if step < 0 {
			return n - 1
		}
		return n
	}
	return b
}
