package vector

import (
	"errors"
	"fmt"

	"github.com/CK6170/vectorkit/numeric"
)

var (
	// ErrIndexOutOfRange is returned by At and Index for an integer index
	// outside [-Len, Len-1].
	ErrIndexOutOfRange = errors.New("vector: index out of range")
	// ErrZeroStep is returned when a slice step is zero.
	ErrZeroStep = errors.New("vector: slice step cannot be zero")
	// ErrEmptyBuffer is returned by FromBytes for a zero-length buffer.
	ErrEmptyBuffer = errors.New("vector: empty buffer")
	// ErrTruncated is returned by FromBytes when the payload length is not a
	// multiple of the element width.
	ErrTruncated = errors.New("vector: buffer length is not a multiple of element size")
)

// IndexTypeError is returned by Index for anything that is neither an
// integer nor a Slice.
type IndexTypeError struct {
	Index any
}

func (e *IndexTypeError) Error() string {
	return fmt.Sprintf("vector: Vector indices must be integers or slices, not %s", numeric.TypeName(e.Index))
}

// TypecodeError is returned by FromBytes for an unknown element typecode.
type TypecodeError struct {
	Code byte
}

func (e *TypecodeError) Error() string {
	return fmt.Sprintf("vector: unsupported typecode %q", e.Code)
}

// AttrKind classifies an AttributeError.
type AttrKind int

const (
	// AttrMissing means the name is not a readable attribute.
	AttrMissing AttrKind = iota
	// AttrReadOnly means the name is one of the coordinate shortcuts.
	AttrReadOnly
	// AttrReserved means the name is a single lowercase letter; those are
	// reserved for coordinate shortcuts.
	AttrReserved
)

// AttributeError reports a rejected coordinate read or write.
type AttributeError struct {
	Name string
	Kind AttrKind
}

func (e *AttributeError) Error() string {
	switch e.Kind {
	case AttrReadOnly:
		return fmt.Sprintf("vector: readonly attribute %q", e.Name)
	case AttrReserved:
		return fmt.Sprintf("vector: can't set attributes 'a' to 'z' in 'Vector' (got %q)", e.Name)
	default:
		return fmt.Sprintf("vector: 'Vector' object has no attribute %q", e.Name)
	}
}
