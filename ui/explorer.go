package ui

import (
	"context"
	"fmt"
	"io"

	"github.com/CK6170/vectorkit/numfmt"
	"github.com/CK6170/vectorkit/vector"
)

// ExplorerHelp lists the explorer key bindings.
const ExplorerHelp = "h: polar/cartesian  -: negate  *: double  r: reverse  [ ]: fewer/more  i: IEEE dump  0: reset  q/ESC: quit"

// Explorer is a key-driven view over a vector. Every key produces a new
// vector or view; the original is kept for reset.
type Explorer struct {
	out   io.Writer
	base  *vector.Vector
	cur   *vector.Vector
	spec  string
	hyper bool
	view  int
}

// NewExplorer returns an explorer over v that formats each coordinate with
// spec (a numfmt spec without the 'h' suffix).
func NewExplorer(out io.Writer, v *vector.Vector, spec string) (*Explorer, error) {
	if _, err := numfmt.Parse(spec); err != nil {
		return nil, err
	}
	return &Explorer{out: out, base: v, cur: v, spec: spec, view: v.Len()}, nil
}

// Current returns the vector in view.
func (e *Explorer) Current() *vector.Vector {
	v, err := e.cur.Slice(vector.Span(0, e.view))
	if err != nil {
		return e.cur
	}
	return v
}

// Render returns the status line for the current state.
func (e *Explorer) Render() string {
	spec := e.spec
	if e.hyper {
		spec += "h"
	}
	v := e.Current()
	text, err := v.FormatSpec(spec)
	if err != nil {
		text = v.String()
	}
	return fmt.Sprintf("%s  len=%d/%d  |v|=%s", text, e.view, e.cur.Len(), numfmt.Repr(v.Abs()))
}

// Handle applies one key press and reports whether the explorer should stop.
func (e *Explorer) Handle(key rune) bool {
	switch key {
	case 'q', 'Q', KeyEsc:
		return true
	case 'h', 'H':
		e.hyper = !e.hyper
	case '-':
		e.cur = e.cur.Neg()
	case '*':
		if doubled, err := e.cur.Mul(2); err == nil {
			e.cur = doubled
		}
	case 'r', 'R':
		if rev, err := e.cur.Slice(vector.Reversed()); err == nil {
			e.cur = rev
		}
	case KeyLeft:
		if e.view > 1 {
			e.view--
		}
	case KeyRight:
		if e.view < e.cur.Len() {
			e.view++
		}
	case 'i', 'I':
		fmt.Fprintln(e.out)
		PrintComponentsIEEE(e.out, e.Current())
	case '0':
		e.cur, e.hyper, e.view = e.base, false, e.base.Len()
	}
	return false
}

// Run renders the initial state, then applies keys until a quit key, a
// closed channel or ctx cancellation.
func (e *Explorer) Run(ctx context.Context, keys <-chan rune) error {
	fmt.Fprintln(e.out, ExplorerHelp)
	fmt.Fprint(e.out, "\r"+e.Render())
	for {
		select {
		case <-ctx.Done():
			fmt.Fprintln(e.out)
			return ctx.Err()
		case k, ok := <-keys:
			if !ok || e.Handle(k) {
				fmt.Fprintln(e.out)
				return nil
			}
			fmt.Fprint(e.out, "\r\033[K"+e.Render())
		}
	}
}
