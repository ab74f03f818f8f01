package vector

import (
	"fmt"
	"math"
	"reflect"
	"strconv"
	"strings"
)

// Slice selects a strided sub-sequence. A nil bound takes its default:
// the whole sequence in the direction of Step, and Step defaults to 1.
type Slice struct {
	Start, Stop, Step *int
}

// Span returns the slice [start:stop].
func Span(start, stop int) Slice { return Slice{Start: &start, Stop: &stop} }

// Stride returns the slice [start:stop:step].
func Stride(start, stop, step int) Slice { return Slice{Start: &start, Stop: &stop, Step: &step} }

// Reversed returns the slice [::-1].
func Reversed() Slice {
	step := -1
	return Slice{Step: &step}
}

// Indices resolves s against a sequence of length n. Out-of-range bounds are
// clipped, never rejected.
func (s Slice) Indices(n int) (start, stop, step int, err error) {
	step = 1
	if s.Step != nil {
		step = *s.Step
	}
	if step == 0 {
		return 0, 0, 0, ErrZeroStep
	}

	lower, upper := 0, n
	if step < 0 {
		lower, upper = -1, n-1
	}
	adjust := func(p *int, def int) int {
		if p == nil {
			return def
		}
		i := *p
		if i < 0 {
			i += n
			if i < lower {
				i = lower
			}
		} else if i > upper {
			i = upper
		}
		return i
	}

	if step > 0 {
		start, stop = adjust(s.Start, lower), adjust(s.Stop, upper)
	} else {
		start, stop = adjust(s.Start, upper), adjust(s.Stop, lower)
	}
	return start, stop, step, nil
}

// sliceLen counts the indices selected by resolved bounds without stepping
// past them, so huge steps cannot overflow.
func sliceLen(start, stop, step int) int {
	switch {
	case step > 0 && start < stop:
		return (stop-start-1)/step + 1
	case step < 0 && stop < start:
		return (start-stop-1)/(-step) + 1
	}
	return 0
}

func (s Slice) String() string {
	part := func(p *int) string {
		if p == nil {
			return ""
		}
		return strconv.Itoa(*p)
	}
	out := part(s.Start) + ":" + part(s.Stop)
	if s.Step != nil {
		out += ":" + part(s.Step)
	}
	return out
}

// ParseSlice parses "start:stop:step" where every part may be empty.
// A bare integer is rejected; use strconv for single indices.
func ParseSlice(text string) (Slice, error) {
	parts := strings.Split(strings.TrimSpace(text), ":")
	if len(parts) < 2 || len(parts) > 3 {
		return Slice{}, fmt.Errorf("vector: invalid slice %q", text)
	}
	var out [3]*int
	for i, p := range parts {
		p = strings.TrimSpace(p)
		if p == "" {
			continue
		}
		n, err := strconv.Atoi(p)
		if err != nil {
			return Slice{}, fmt.Errorf("vector: invalid slice %q: %w", text, err)
		}
		out[i] = &n
	}
	return Slice{Start: out[0], Stop: out[1], Step: out[2]}, nil
}

// Slice returns the components selected by s as a new Vector.
func (v *Vector) Slice(s Slice) (*Vector, error) {
	c := v.comps()
	start, stop, step, err := s.Indices(len(c))
	if err != nil {
		return nil, err
	}
	out := make([]float64, sliceLen(start, stop, step))
	for k := range out {
		out[k] = c[start+k*step]
	}
	return build(out), nil
}

// Index is the generic subscript: integer kinds return the float64
// component, a Slice (or *Slice) returns a *Vector, and any other type fails
// with *IndexTypeError.
func (v *Vector) Index(idx any) (any, error) {
	switch i := idx.(type) {
	case Slice:
		return v.Slice(i)
	case *Slice:
		if i == nil {
			return nil, &IndexTypeError{Index: idx}
		}
		return v.Slice(*i)
	case int:
		return v.At(i)
	}

	rv := reflect.ValueOf(idx)
	switch rv.Kind() {
	case reflect.Int, reflect.Int8, reflect.Int16, reflect.Int32, reflect.Int64:
		return v.At(int(rv.Int()))
	case reflect.Uint, reflect.Uint8, reflect.Uint16, reflect.Uint32, reflect.Uint64, reflect.Uintptr:
		u := rv.Uint()
		if u > math.MaxInt {
			return nil, ErrIndexOutOfRange
		}
		return v.At(int(u))
	}
	return nil, &IndexTypeError{Index: idx}
}
