package cli

import (
	"fmt"
	"strings"

	"github.com/shopspring/decimal"

	"github.com/CK6170/vectorkit/vector"
)

// parseVector reads components from args. Each arg may hold several
// comma or space separated numbers and the whole list may be wrapped in
// brackets or parentheses.
func parseVector(args []string) (*vector.Vector, error) {
	text := strings.TrimSpace(strings.Join(args, ","))
	text = strings.TrimPrefix(strings.TrimPrefix(text, "["), "(")
	text = strings.TrimSuffix(strings.TrimSuffix(text, "]"), ")")

	fields := strings.FieldsFunc(text, func(r rune) bool { return r == ',' || r == ' ' || r == '\t' })
	comps := make([]any, len(fields))
	for i, f := range fields {
		d, err := decimal.NewFromString(f)
		if err != nil {
			comps[i] = f
			continue
		}
		comps[i] = d
	}
	v, err := vector.FromIterable(comps)
	if err != nil {
		return nil, fmt.Errorf("parsing vector %q: %w", text, err)
	}
	return v, nil
}

// parseOperand reads one side of an expression. A bare number is a scalar,
// anything with a comma or bracket is a vector, and other text is passed
// through as a string so the operator can refuse it.
func parseOperand(s string) (any, error) {
	s = strings.TrimSpace(s)
	if strings.ContainsAny(s, ",[(") {
		return parseVector([]string{s})
	}
	if d, err := decimal.NewFromString(s); err == nil {
		return d, nil
	}
	return s, nil
}
