// Package numeric converts loosely typed Go values into float64 components.
//
// It is the single place that decides what counts as a "real number" or an
// "iterable of reals" for the vector package and its operators. Strings are
// never numbers, even when they look like one.
package numeric

import (
	"errors"
	"fmt"
	"iter"
	"math/big"
	"reflect"

	"github.com/shopspring/decimal"
	"gonum.org/v1/gonum/mat"
)

// ErrNotIterable is returned by Floats when src is not a sequence of values.
var ErrNotIterable = errors.New("numeric: value is not iterable")

// ErrNotReal is returned by Float when x is not a real number.
var ErrNotReal = errors.New("numeric: value is not a real number")

// ConversionError reports an element of an iterable that could not be
// converted to float64.
type ConversionError struct {
	Index int
	Value any
}

func (e *ConversionError) Error() string {
	return fmt.Sprintf("numeric: element %d: must be a real number, not %s", e.Index, TypeName(e.Value))
}

func (e *ConversionError) Unwrap() error { return ErrNotReal }

// Floater is implemented by types that know their own float64 value.
type Floater interface {
	Float64() float64
}

// Float converts a single real number to float64.
//
// Accepted: every Go integer and float kind (and named types over them),
// bool (0 or 1), *big.Int, *big.Rat, *big.Float, decimal.Decimal and
// anything implementing Floater.
func Float(x any) (float64, error) {
	switch n := x.(type) {
	case float64:
		return n, nil
	case float32:
		return float64(n), nil
	case int:
		return float64(n), nil
	case int64:
		return float64(n), nil
	case bool:
		if n {
			return 1, nil
		}
		return 0, nil
	case decimal.Decimal:
		return n.InexactFloat64(), nil
	case *decimal.Decimal:
		if n == nil {
			return 0, ErrNotReal
		}
		return n.InexactFloat64(), nil
	case *big.Int:
		if n == nil {
			return 0, ErrNotReal
		}
		f, _ := new(big.Float).SetInt(n).Float64()
		return f, nil
	case *big.Rat:
		if n == nil {
			return 0, ErrNotReal
		}
		f, _ := n.Float64()
		return f, nil
	case *big.Float:
		if n == nil {
			return 0, ErrNotReal
		}
		f, _ := n.Float64()
		return f, nil
	case Floater:
		return n.Float64(), nil
	case nil:
		return 0, ErrNotReal
	}

	rv := reflect.ValueOf(x)
	switch rv.Kind() {
	case reflect.Int, reflect.Int8, reflect.Int16, reflect.Int32, reflect.Int64:
		return float64(rv.Int()), nil
	case reflect.Uint, reflect.Uint8, reflect.Uint16, reflect.Uint32, reflect.Uint64, reflect.Uintptr:
		return float64(rv.Uint()), nil
	case reflect.Float32, reflect.Float64:
		return rv.Float(), nil
	case reflect.Bool:
		if rv.Bool() {
			return 1, nil
		}
		return 0, nil
	}
	return 0, fmt.Errorf("%w: %s", ErrNotReal, TypeName(x))
}

// IsReal reports whether Float would accept x.
func IsReal(x any) bool {
	_, err := Float(x)
	return err == nil
}

// Floats materializes an iterable of reals into a fresh []float64.
//
// Accepted sources are slices and arrays of anything Float accepts
// ([]any included), iter.Seq of a few common element types, gonum
// mat.Vector values and anything implementing Iterable. A []byte is
// treated as a sequence of small integers, not as packed doubles.
func Floats(src any) ([]float64, error) {
	switch s := src.(type) {
	case nil:
		return nil, ErrNotIterable
	case []float64:
		out := make([]float64, len(s))
		copy(out, s)
		return out, nil
	case iter.Seq[float64]:
		return collect(s), nil
	case iter.Seq[int]:
		out := make([]float64, 0)
		for x := range s {
			out = append(out, float64(x))
		}
		return out, nil
	case iter.Seq[any]:
		out := make([]float64, 0)
		i := 0
		for x := range s {
			f, err := Float(x)
			if err != nil {
				return nil, &ConversionError{Index: i, Value: x}
			}
			out = append(out, f)
			i++
		}
		return out, nil
	case Iterable:
		return collect(s.Values()), nil
	case mat.Vector:
		out := make([]float64, s.Len())
		for i := range out {
			out[i] = s.AtVec(i)
		}
		return out, nil
	}

	rv := reflect.ValueOf(src)
	switch rv.Kind() {
	case reflect.Slice, reflect.Array:
	case reflect.Pointer:
		if rv.IsNil() || rv.Elem().Kind() != reflect.Array {
			return nil, fmt.Errorf("%w: %s", ErrNotIterable, TypeName(src))
		}
		rv = rv.Elem()
	default:
		return nil, fmt.Errorf("%w: %s", ErrNotIterable, TypeName(src))
	}
	out := make([]float64, rv.Len())
	for i := range out {
		el := rv.Index(i).Interface()
		f, err := Float(el)
		if err != nil {
			return nil, &ConversionError{Index: i, Value: el}
		}
		out[i] = f
	}
	return out, nil
}

// Iterable is implemented by sequence types that can yield their values,
// vector.Vector among them.
type Iterable interface {
	Values() iter.Seq[float64]
}

// TypeName returns a short, user-facing name for the dynamic type of x.
func TypeName(x any) string {
	if x == nil {
		return "nil"
	}
	return reflect.TypeOf(x).String()
}

func collect(seq iter.Seq[float64]) []float64 {
	out := make([]float64, 0)
	for x := range seq {
		out = append(out, x)
	}
	return out
}
