// Package operator implements two-sided binary operator dispatch.
//
// A left operand gets the first chance to handle an operation through
// Forward. When it declines with NotImplemented, the right operand is asked
// through Reflected. Only when both decline does Apply report a *TypeError.
package operator

import (
	"fmt"
	"reflect"

	"github.com/CK6170/vectorkit/numeric"
)

// Op identifies a binary operator.
type Op int

const (
	Add Op = iota
	Mul
	MatMul
)

var symbols = [...]string{Add: "+", Mul: "*", MatMul: "@"}

func (o Op) String() string {
	if o < 0 || int(o) >= len(symbols) {
		return fmt.Sprintf("Op(%d)", int(o))
	}
	return symbols[o]
}

// ParseOp maps an operator symbol to an Op.
func ParseOp(sym string) (Op, bool) {
	for i, s := range symbols {
		if s == sym {
			return Op(i), true
		}
	}
	return 0, false
}

// Result is the outcome of one side of a dispatch: either a handled value
// or NotImplemented.
type Result struct {
	value   any
	handled bool
}

// NotImplemented is returned by an operand that cannot handle the pairing.
var NotImplemented = Result{}

// Handled wraps a successful result.
func Handled(v any) Result { return Result{value: v, handled: true} }

// Ok reports whether the operation was handled.
func (r Result) Ok() bool { return r.handled }

// Value returns the handled value, or nil for NotImplemented.
func (r Result) Value() any { return r.value }

// Operand is implemented by types that take part in dispatch.
type Operand interface {
	// Forward computes self <op> rhs.
	Forward(op Op, rhs any) Result
	// Reflected computes lhs <op> self after lhs declined.
	Reflected(op Op, lhs any) Result
}

// TypeError is returned when neither operand handles an operation.
type TypeError struct {
	Op    Op
	Left  any
	Right any
}

func (e *TypeError) Error() string {
	return fmt.Sprintf("unsupported operand type(s) for %s: '%s' and '%s'",
		e.Op, numeric.TypeName(e.Left), numeric.TypeName(e.Right))
}

// Apply evaluates lhs <op> rhs.
//
// The reflected side is skipped when both operands share a dynamic type,
// since it would only repeat the forward attempt.
func Apply(op Op, lhs, rhs any) (any, error) {
	if l, ok := lhs.(Operand); ok {
		if res := l.Forward(op, rhs); res.Ok() {
			return res.Value(), nil
		}
	}
	if r, ok := rhs.(Operand); ok && !sameType(lhs, rhs) {
		if res := r.Reflected(op, lhs); res.Ok() {
			return res.Value(), nil
		}
	}
	return nil, &TypeError{Op: op, Left: lhs, Right: rhs}
}

func sameType(a, b any) bool {
	if a == nil || b == nil {
		return false
	}
	return reflect.TypeOf(a) == reflect.TypeOf(b)
}
