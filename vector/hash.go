package vector

import "math"

const (
	hashBits    = 61
	hashModulus = uint64(1)<<hashBits - 1
	hashInf     = 314159
)

// Equal reports whether other is a Vector with the same length and equal
// components. Any other type is simply not equal.
func (v *Vector) Equal(other any) bool {
	var o *Vector
	switch t := other.(type) {
	case *Vector:
		o = t
	case Vector:
		o = &t
	default:
		return false
	}
	a, b := v.comps(), o.comps()
	if len(a) != len(b) {
		return false
	}
	for i := range a {
		if a[i] != b[i] {
			return false
		}
	}
	return true
}

// Hash returns the XOR of the numeric hashes of the components, seeded at 0.
// Equal vectors always hash equally.
func (v *Vector) Hash() int64 {
	if v == nil {
		return 0
	}
	return v.hash
}

func hashComponents(c []float64) int64 {
	var h int64
	for _, x := range c {
		h ^= HashFloat(x)
	}
	return h
}

// HashFloat is the numeric hash of f: the value reduced modulo the Mersenne
// prime 2^61-1, so integral floats hash to the integer they hold (3.0 hashes
// to 3) and 0.0 and -0.0 agree. Infinities hash to ±314159, NaN to 0, and
// -1 is never returned.
func HashFloat(f float64) int64 {
	switch {
	case math.IsNaN(f):
		return 0
	case math.IsInf(f, 1):
		return hashInf
	case math.IsInf(f, -1):
		return -hashInf
	}

	m, e := math.Frexp(f)
	sign := int64(1)
	if m < 0 {
		sign, m = -1, -m
	}

	var x uint64
	for m != 0 {
		x = ((x << 28) & hashModulus) | x>>(hashBits-28)
		m *= 268435456.0 // 2**28
		e -= 28
		y := uint64(m)
		m -= float64(y)
		x += y
		if x >= hashModulus {
			x -= hashModulus
		}
	}

	if e >= 0 {
		e %= hashBits
	} else {
		e = hashBits - 1 - ((-1 - e) % hashBits)
	}
	x = ((x << uint(e)) & hashModulus) | x>>(hashBits-uint(e))

	h := int64(x) * sign
	if h == -1 {
		h = -2
	}
	return h
}
