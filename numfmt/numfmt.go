// Package numfmt renders float64 values with a compact format mini-language:
//
//	[[fill]align][sign][#][0][width][,|_][.precision][type]
//
// align is one of '<', '>', '^' or '=', sign one of '+', '-' or ' ', and
// type one of 'e', 'E', 'f', 'F', 'g', 'G' or '%'. An empty spec renders the
// shortest string that round-trips (see Repr).
package numfmt

import (
	"fmt"
	"math"
	"strconv"
	"strings"
	"unicode/utf8"
)

// SpecError reports a malformed format spec.
type SpecError struct {
	Spec   string
	Reason string
}

func (e *SpecError) Error() string {
	return fmt.Sprintf("numfmt: invalid format spec %q: %s", e.Spec, e.Reason)
}

// Spec is a parsed format spec. The zero value formats like Repr.
type Spec struct {
	Fill      rune
	Align     byte
	Sign      byte
	Alt       bool
	Width     int
	Grouping  byte
	Precision int // -1 when absent
	Type      byte
}

// MaxWidth caps both width and precision.
const MaxWidth = 4096

// Parse parses spec.
func Parse(spec string) (Spec, error) {
	s := Spec{Fill: ' ', Precision: -1}
	rs := []rune(spec)
	i := 0

	isAlign := func(r rune) bool { return r == '<' || r == '>' || r == '^' || r == '=' }
	switch {
	case len(rs) >= 2 && isAlign(rs[1]):
		s.Fill, s.Align = rs[0], byte(rs[1])
		i = 2
	case len(rs) >= 1 && isAlign(rs[0]):
		s.Align = byte(rs[0])
		i = 1
	}

	if i < len(rs) && (rs[i] == '+' || rs[i] == '-' || rs[i] == ' ') {
		s.Sign = byte(rs[i])
		i++
	}
	if i < len(rs) && rs[i] == '#' {
		s.Alt = true
		i++
	}
	if i < len(rs) && rs[i] == '0' {
		if s.Align == 0 {
			s.Fill, s.Align = '0', '='
		}
		i++
	}

	start := i
	for i < len(rs) && rs[i] >= '0' && rs[i] <= '9' {
		i++
	}
	if i > start {
		w, err := strconv.Atoi(string(rs[start:i]))
		if err != nil || w > MaxWidth {
			return Spec{}, &SpecError{Spec: spec, Reason: "width too large"}
		}
		s.Width = w
	}

	if i < len(rs) && (rs[i] == ',' || rs[i] == '_') {
		s.Grouping = byte(rs[i])
		i++
	}

	if i < len(rs) && rs[i] == '.' {
		i++
		start = i
		for i < len(rs) && rs[i] >= '0' && rs[i] <= '9' {
			i++
		}
		if i == start {
			return Spec{}, &SpecError{Spec: spec, Reason: "format specifier missing precision"}
		}
		p, err := strconv.Atoi(string(rs[start:i]))
		if err != nil || p > MaxWidth {
			return Spec{}, &SpecError{Spec: spec, Reason: "precision too large"}
		}
		s.Precision = p
	}

	if i < len(rs) {
		switch rs[i] {
		case 'e', 'E', 'f', 'F', 'g', 'G', '%':
			s.Type = byte(rs[i])
			i++
		default:
			return Spec{}, &SpecError{Spec: spec, Reason: fmt.Sprintf("unknown format code %q for float", rs[i])}
		}
	}
	if i != len(rs) {
		return Spec{}, &SpecError{Spec: spec, Reason: "trailing characters"}
	}
	return s, nil
}

// Format renders f with spec, a convenience for Parse followed by Spec.Format.
func Format(f float64, spec string) (string, error) {
	s, err := Parse(spec)
	if err != nil {
		return "", err
	}
	return s.Format(f), nil
}

// Format renders f according to s.
func (s Spec) Format(f float64) string {
	neg := math.Signbit(f) && !math.IsNaN(f)
	body := s.body(math.Abs(f))
	if s.Grouping != 0 {
		body = group(body, s.Grouping)
	}

	sign := ""
	switch {
	case neg:
		sign = "-"
	case s.Sign == '+':
		sign = "+"
	case s.Sign == ' ':
		sign = " "
	}
	return s.pad(sign, body)
}

func (s Spec) body(a float64) string {
	upper := s.Type == 'E' || s.Type == 'F' || s.Type == 'G'
	if math.IsInf(a, 0) || math.IsNaN(a) {
		out := "inf"
		if math.IsNaN(a) {
			out = "nan"
		}
		if upper {
			out = strings.ToUpper(out)
		}
		if s.Type == '%' {
			out += "%"
		}
		return out
	}

	prec := s.Precision
	switch s.Type {
	case 0:
		if prec < 0 {
			return Repr(a)
		}
		if prec == 0 {
			prec = 1
		}
		out := strconv.FormatFloat(a, 'g', prec, 64)
		if !strings.ContainsAny(out, ".e") {
			out += ".0"
		}
		return out
	case 'e', 'E':
		if prec < 0 {
			prec = 6
		}
		out := fmtAlt(a, 'e', prec, s.Alt)
		if upper {
			out = strings.ToUpper(out)
		}
		return out
	case 'f', 'F':
		if prec < 0 {
			prec = 6
		}
		return fmtAlt(a, 'f', prec, s.Alt)
	case 'g', 'G':
		if prec < 0 {
			prec = 6
		}
		if prec == 0 {
			prec = 1
		}
		out := fmtAlt(a, 'g', prec, s.Alt)
		if upper {
			out = strings.ToUpper(out)
		}
		return out
	case '%':
		if prec < 0 {
			prec = 6
		}
		return fmtAlt(a*100, 'f', prec, s.Alt) + "%"
	}
	return Repr(a)
}

func fmtAlt(a float64, verb byte, prec int, alt bool) string {
	if alt {
		return fmt.Sprintf("%#.*"+string(verb), prec, a)
	}
	return strconv.FormatFloat(a, verb, prec, 64)
}

func (s Spec) pad(sign, body string) string {
	n := utf8.RuneCountInString(sign) + utf8.RuneCountInString(body)
	if s.Width <= n {
		return sign + body
	}
	fill := strings.Repeat(string(s.Fill), s.Width-n)
	switch s.Align {
	case '<':
		return sign + body + fill
	case '^':
		left := (s.Width - n) / 2
		return strings.Repeat(string(s.Fill), left) + sign + body + strings.Repeat(string(s.Fill), s.Width-n-left)
	case '=':
		return sign + fill + body
	default:
		return fill + sign + body
	}
}

// group inserts sep every three digits of the integer part of body.
func group(body string, sep byte) string {
	end := strings.IndexFunc(body, func(r rune) bool { return r < '0' || r > '9' })
	if end < 0 {
		end = len(body)
	}
	digits := body[:end]
	if len(digits) <= 3 {
		return body
	}
	var sb strings.Builder
	lead := len(digits) % 3
	if lead > 0 {
		sb.WriteString(digits[:lead])
	}
	for i := lead; i < len(digits); i += 3 {
		if sb.Len() > 0 {
			sb.WriteByte(sep)
		}
		sb.WriteString(digits[i : i+3])
	}
	sb.WriteString(body[end:])
	return sb.String()
}

// Repr returns the shortest decimal string that parses back to f.
//
// Integral values keep a trailing ".0", the exponent form is used when the
// decimal exponent is below -4 or at least 16, and the special values render
// as "inf", "-inf" and "nan".
func Repr(f float64) string {
	switch {
	case math.IsNaN(f):
		return "nan"
	case math.IsInf(f, 1):
		return "inf"
	case math.IsInf(f, -1):
		return "-inf"
	}
	if f == 0 {
		if math.Signbit(f) {
			return "-0.0"
		}
		return "0.0"
	}

	e := strconv.FormatFloat(f, 'e', -1, 64)
	exp, _ := strconv.Atoi(e[strings.IndexByte(e, 'e')+1:])
	if exp < -4 || exp >= 16 {
		return e
	}
	out := strconv.FormatFloat(f, 'f', -1, 64)
	if !strings.ContainsRune(out, '.') {
		out += ".0"
	}
	return out
}
