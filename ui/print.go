// Package ui renders vectors on a terminal and drives the interactive
// explorer.
package ui

import (
	"fmt"
	"io"
	"math"

	"github.com/CK6170/vectorkit/numfmt"
	"github.com/CK6170/vectorkit/vector"
)

// Rule separates blocks of output.
const Rule = "------------------------------------------------------------------"

// PrintLimit caps how many components PrintVector lists.
const PrintLimit = 24

const (
	colorReset  = "\033[0m"
	colorGreen  = "\033[92m"
	colorYellow = "\033[93m"
	colorOrange = "\033[38;5;208m"
)

// Greenf prints a light green message.
func Greenf(w io.Writer, format string, a ...any) {
	fmt.Fprint(w, colorGreen)
	fmt.Fprintf(w, format, a...)
	fmt.Fprint(w, colorReset)
}

// Warningf prints a bright yellow warning.
func Warningf(w io.Writer, format string, a ...any) {
	fmt.Fprint(w, colorYellow)
	fmt.Fprintf(w, format, a...)
	fmt.Fprint(w, colorReset)
}

// PrintVector lists the first PrintLimit components of v, one per line.
func PrintVector(w io.Writer, v *vector.Vector, title string) {
	fmt.Fprintln(w, Rule)
	fmt.Fprintf(w, "%s (%d)\n", title, v.Len())
	for i, x := range v.All() {
		if i == PrintLimit {
			fmt.Fprintln(w, "...")
			break
		}
		fmt.Fprintf(w, "[%03d] %s\n", i, numfmt.Repr(x))
	}
	fmt.Fprintln(w, Rule)
}

// PrintComponentsIEEE lists each component with its IEEE-754 bit pattern.
func PrintComponentsIEEE(w io.Writer, v *vector.Vector) {
	fmt.Fprint(w, colorOrange)
	fmt.Fprintln(w, Rule)
	fmt.Fprintln(w, "components (IEEE754)")
	for i, x := range v.All() {
		// the space flag keeps the decimal column aligned regardless of sign
		fmt.Fprintf(w, "[%03d]  % .17g  %016X\n", i, x, math.Float64bits(x))
	}
	fmt.Fprintln(w, Rule)
	fmt.Fprint(w, colorReset)
}
