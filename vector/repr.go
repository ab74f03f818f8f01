package vector

import (
	"encoding/binary"
	"encoding/json"
	"math"
	"strings"

	"github.com/CK6170/vectorkit/numfmt"
)

// ReprLimit is the number of components Repr shows before eliding the rest.
const ReprLimit = 5

// elementSize is the encoded width of one 'd' component.
const elementSize = 8

// Repr returns a debugging representation such as Vector([3.0, 4.0]).
// Vectors longer than ReprLimit show their first ReprLimit components
// followed by ", ...".
func (v *Vector) Repr() string {
	c := v.comps()
	var sb strings.Builder
	sb.WriteString("Vector([")
	for i, x := range c {
		if i == ReprLimit {
			sb.WriteString(", ...")
			break
		}
		if i > 0 {
			sb.WriteString(", ")
		}
		sb.WriteString(numfmt.Repr(x))
	}
	sb.WriteString("])")
	return sb.String()
}

// GoString implements fmt.GoStringer.
func (v *Vector) GoString() string { return v.Repr() }

// String renders the components as a tuple: (3.0, 4.0). A single
// component keeps a trailing comma, (3.0,), and the empty vector is ().
func (v *Vector) String() string {
	c := v.comps()
	parts := make([]string, len(c))
	for i, x := range c {
		parts[i] = numfmt.Repr(x)
	}
	if len(parts) == 1 {
		return "(" + parts[0] + ",)"
	}
	return "(" + strings.Join(parts, ", ") + ")"
}

// Bytes encodes v as the typecode byte followed by each component as a
// native-endian IEEE-754 double.
func (v *Vector) Bytes() []byte {
	c := v.comps()
	out := make([]byte, 1+elementSize*len(c))
	out[0] = Typecode
	for i, x := range c {
		binary.NativeEndian.PutUint64(out[1+i*elementSize:], math.Float64bits(x))
	}
	return out
}

// MarshalBinary implements encoding.BinaryMarshaler.
func (v *Vector) MarshalBinary() ([]byte, error) { return v.Bytes(), nil }

// FromBytes decodes the output of Bytes. The component count is inferred
// from the buffer length.
func FromBytes(b []byte) (*Vector, error) {
	if len(b) == 0 {
		return nil, ErrEmptyBuffer
	}
	if b[0] != Typecode {
		return nil, &TypecodeError{Code: b[0]}
	}
	payload := b[1:]
	if len(payload)%elementSize != 0 {
		return nil, ErrTruncated
	}
	c := make([]float64, len(payload)/elementSize)
	for i := range c {
		c[i] = math.Float64frombits(binary.NativeEndian.Uint64(payload[i*elementSize:]))
	}
	return build(c), nil
}

// MarshalJSON encodes v as a JSON array of numbers.
func (v *Vector) MarshalJSON() ([]byte, error) {
	return json.Marshal(v.Components())
}
