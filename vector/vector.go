// Package vector provides Vector, an immutable N-dimensional float64
// sequence.
//
// A Vector owns its component buffer: constructors copy their input and
// every operation that looks like a modification (Neg, Pos, Add, Mul,
// Slice) returns a new Vector. Vectors are therefore safe to share between
// goroutines without locking.
package vector

import (
	"iter"

	"gonum.org/v1/gonum/floats"
	"gonum.org/v1/gonum/mat"

	"github.com/CK6170/vectorkit/numeric"
)

// Typecode identifies the element encoding used by Bytes: IEEE-754 double.
const Typecode byte = 'd'

// Vector is an immutable sequence of float64 components.
//
// The zero value and the nil *Vector are both the empty vector.
type Vector struct {
	components []float64
	hash       int64
}

// New returns a Vector holding a copy of components.
func New(components ...float64) *Vector {
	c := make([]float64, len(components))
	copy(c, components)
	return build(c)
}

// FromSeq materializes seq into a new Vector.
func FromSeq(seq iter.Seq[float64]) *Vector {
	c := make([]float64, 0)
	for x := range seq {
		c = append(c, x)
	}
	return build(c)
}

// FromIterable builds a Vector from any iterable of real numbers accepted by
// numeric.Floats. Conversion failures surface immediately as a
// *numeric.ConversionError; a non-iterable src yields numeric.ErrNotIterable.
func FromIterable(src any) (*Vector, error) {
	c, err := numeric.Floats(src)
	if err != nil {
		return nil, err
	}
	return build(c), nil
}

// FromVecDense copies a gonum vector.
func FromVecDense(v mat.Vector) *Vector {
	c := make([]float64, v.Len())
	for i := range c {
		c[i] = v.AtVec(i)
	}
	return build(c)
}

// build takes ownership of c.
func build(c []float64) *Vector {
	return &Vector{components: c, hash: hashComponents(c)}
}

func (v *Vector) comps() []float64 {
	if v == nil {
		return nil
	}
	return v.components
}

// VecDense returns a gonum copy of v. The empty vector yields nil, since
// gonum does not allow zero-length vectors.
func (v *Vector) VecDense() *mat.VecDense {
	c := v.comps()
	if len(c) == 0 {
		return nil
	}
	return mat.NewVecDense(len(c), v.Components())
}

// Len returns the number of components.
func (v *Vector) Len() int { return len(v.comps()) }

// Components returns a copy of the components.
func (v *Vector) Components() []float64 {
	c := v.comps()
	out := make([]float64, len(c))
	copy(out, c)
	return out
}

// Values yields the components in index order.
func (v *Vector) Values() iter.Seq[float64] {
	c := v.comps()
	return func(yield func(float64) bool) {
		for _, x := range c {
			if !yield(x) {
				return
			}
		}
	}
}

// All yields index/component pairs.
func (v *Vector) All() iter.Seq2[int, float64] {
	c := v.comps()
	return func(yield func(int, float64) bool) {
		for i, x := range c {
			if !yield(i, x) {
				return
			}
		}
	}
}

// At returns the component at i. Negative indices count from the end.
func (v *Vector) At(i int) (float64, error) {
	c := v.comps()
	if i < 0 {
		i += len(c)
	}
	if i < 0 || i >= len(c) {
		return 0, ErrIndexOutOfRange
	}
	return c[i], nil
}

// Abs returns the Euclidean norm; 0 for the empty vector.
func (v *Vector) Abs() float64 {
	c := v.comps()
	if len(c) == 0 {
		return 0
	}
	return floats.Norm(c, 2)
}

// Truthy reports whether v has a non-zero magnitude.
func (v *Vector) Truthy() bool { return v.Abs() != 0 }
