package vector

import (
	"gonum.org/v1/gonum/floats"

	"github.com/CK6170/vectorkit/numeric"
	"github.com/CK6170/vectorkit/operator"
)

var _ operator.Operand = (*Vector)(nil)

// Neg returns a new Vector with every component negated.
func (v *Vector) Neg() *Vector {
	c := v.Components()
	floats.Scale(-1, c)
	return build(c)
}

// Pos returns a value-identical copy of v.
func (v *Vector) Pos() *Vector {
	return build(v.Components())
}

// Forward implements operator.Operand for v <op> rhs.
func (v *Vector) Forward(op operator.Op, rhs any) operator.Result {
	switch op {
	case operator.Add:
		return v.add(rhs)
	case operator.Mul:
		return v.mul(rhs)
	case operator.MatMul:
		return v.matmul(rhs)
	}
	return operator.NotImplemented
}

// Reflected implements operator.Operand for lhs <op> v. All three operators
// are commutative here, so the reflected form reuses the forward one.
func (v *Vector) Reflected(op operator.Op, lhs any) operator.Result {
	return v.Forward(op, lhs)
}

// add pads the shorter operand with zeros.
func (v *Vector) add(rhs any) operator.Result {
	other, err := numeric.Floats(rhs)
	if err != nil {
		return operator.NotImplemented
	}
	a := v.comps()
	n := max(len(a), len(other))
	out := make([]float64, n)
	copy(out, a)
	floats.Add(out[:len(other)], other)
	return operator.Handled(build(out))
}

func (v *Vector) mul(scalar any) operator.Result {
	k, err := numeric.Float(scalar)
	if err != nil {
		return operator.NotImplemented
	}
	c := v.Components()
	floats.Scale(k, c)
	return operator.Handled(build(c))
}

// matmul pairs components up to the shorter length.
func (v *Vector) matmul(rhs any) operator.Result {
	other, err := numeric.Floats(rhs)
	if err != nil {
		return operator.NotImplemented
	}
	a := v.comps()
	n := min(len(a), len(other))
	if n == 0 {
		return operator.Handled(0.0)
	}
	return operator.Handled(floats.Dot(a[:n], other[:n]))
}

// Add returns v + other, trying other's reflected implementation when v
// cannot handle it.
func (v *Vector) Add(other any) (*Vector, error) {
	res, err := operator.Apply(operator.Add, v, other)
	if err != nil {
		return nil, err
	}
	return asVector(res, operator.Add, v, other)
}

// Mul returns v * scalar.
func (v *Vector) Mul(scalar any) (*Vector, error) {
	res, err := operator.Apply(operator.Mul, v, scalar)
	if err != nil {
		return nil, err
	}
	return asVector(res, operator.Mul, v, scalar)
}

// Dot returns v @ other.
func (v *Vector) Dot(other any) (float64, error) {
	res, err := operator.Apply(operator.MatMul, v, other)
	if err != nil {
		return 0, err
	}
	f, err := numeric.Float(res)
	if err != nil {
		return 0, &operator.TypeError{Op: operator.MatMul, Left: v, Right: other}
	}
	return f, nil
}

func asVector(res any, op operator.Op, lhs, rhs any) (*Vector, error) {
	out, ok := res.(*Vector)
	if !ok {
		return nil, &operator.TypeError{Op: op, Left: lhs, Right: rhs}
	}
	return out, nil
}
