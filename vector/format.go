package vector

import (
	"fmt"
	"iter"
	"math"
	"strconv"
	"strings"

	"gonum.org/v1/gonum/floats"

	"github.com/CK6170/vectorkit/numfmt"
)

// HypersphericalSuffix, at the end of a format spec, selects hyperspherical
// rendering.
const HypersphericalSuffix = 'h'

// Angle returns the n-th hyperspherical angle, 1 <= n < Len:
//
//	atan2(sqrt(c[n]^2 + ... + c[len-1]^2), c[n-1])
//
// Only the last angle is moved to 2π-a when the last component is negative.
// Angle(0) pairs the magnitude with the last component. Any n outside
// [0, Len) returns NaN.
func (v *Vector) Angle(n int) float64 {
	c := v.comps()
	if n < 0 || n >= len(c) {
		return math.NaN()
	}
	var a float64
	if n == 0 {
		a = math.Atan2(v.Abs(), c[len(c)-1])
	} else {
		tail := c[n:]
		a = math.Atan2(math.Sqrt(floats.Dot(tail, tail)), c[n-1])
	}
	if n == len(c)-1 && c[len(c)-1] < 0 {
		return 2*math.Pi - a
	}
	return a
}

// Angles yields Angle(1) through Angle(Len-1).
func (v *Vector) Angles() iter.Seq[float64] {
	return func(yield func(float64) bool) {
		for n := 1; n < v.Len(); n++ {
			if !yield(v.Angle(n)) {
				return
			}
		}
	}
}

// FormatSpec renders v with a numfmt spec applied to every coordinate.
// A trailing 'h' switches from Cartesian "(c0, c1)" to hyperspherical
// "<r, a1, ...>" output.
func (v *Vector) FormatSpec(spec string) (string, error) {
	hyper := strings.HasSuffix(spec, string(HypersphericalSuffix))
	if hyper {
		spec = spec[:len(spec)-1]
	}
	ns, err := numfmt.Parse(spec)
	if err != nil {
		return "", err
	}
	return v.render(ns, hyper), nil
}

func (v *Vector) render(ns numfmt.Spec, hyper bool) string {
	var coords []float64
	lb, rb := "(", ")"
	if hyper {
		coords = append(coords, v.Abs())
		for a := range v.Angles() {
			coords = append(coords, a)
		}
		lb, rb = "<", ">"
	} else {
		coords = v.comps()
	}
	parts := make([]string, len(coords))
	for i, x := range coords {
		parts[i] = ns.Format(x)
	}
	return lb + strings.Join(parts, ", ") + rb
}

// Format implements fmt.Formatter.
//
// %v and %s print String, %#v prints Repr, %q quotes String. The float
// verbs %e %E %f %F %g %G format each component, and %h renders
// hyperspherical coordinates; flags, width and precision apply per
// coordinate.
func (v *Vector) Format(f fmt.State, verb rune) {
	switch verb {
	case 'v':
		if f.Flag('#') {
			fmt.Fprint(f, v.Repr())
			return
		}
		fmt.Fprint(f, v.String())
	case 's':
		fmt.Fprint(f, v.String())
	case 'q':
		fmt.Fprint(f, strconv.Quote(v.String()))
	case 'e', 'E', 'f', 'F', 'g', 'G', HypersphericalSuffix:
		ns := stateSpec(f)
		if verb != HypersphericalSuffix {
			ns.Type = byte(verb)
		}
		fmt.Fprint(f, v.render(ns, verb == HypersphericalSuffix))
	default:
		fmt.Fprintf(f, "%%!%c(*vector.Vector=%s)", verb, v.String())
	}
}

func stateSpec(f fmt.State) numfmt.Spec {
	ns := numfmt.Spec{Fill: ' ', Precision: -1}
	if w, ok := f.Width(); ok {
		ns.Width = min(w, numfmt.MaxWidth)
	}
	if p, ok := f.Precision(); ok {
		ns.Precision = min(p, numfmt.MaxWidth)
	}
	switch {
	case f.Flag('-'):
		ns.Align = '<'
	case f.Flag('0'):
		ns.Fill, ns.Align = '0', '='
	}
	switch {
	case f.Flag('+'):
		ns.Sign = '+'
	case f.Flag(' '):
		ns.Sign = ' '
	}
	ns.Alt = f.Flag('#')
	return ns
}
