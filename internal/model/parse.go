package model

import (
	"strings"

	"github.com/shopspring/decimal"
)

// Lenient cell parsing. A list view must never be lost to one malformed
// cell, so unparsable numbers degrade to zero instead of failing. Tests
// assert on this policy directly; it is not an accident of implementation.

// LenientAmount parses a monetary cell. Currency symbols and thousands
// separators are tolerated, a trailing garbage suffix is ignored the way
// parseFloat would ignore it, and anything else degrades to zero.
func LenientAmount(cell string) decimal.Decimal {
	s := strings.TrimSpace(cell)
	s = strings.TrimPrefix(s, "$")
	s = strings.ReplaceAll(s, ",", "")
	if s == "" {
		return decimal.Zero
	}

	if d, err := decimal.NewFromString(s); err == nil {
		return d
	}

	// Longest parsable numeric prefix.
	end := 0
	seenDot := false
	for i, r := range s {
		switch {
		case r >= '0' && r <= '9':
			end = i + 1
		case r == '.' && !seenDot:
			seenDot = true
		case (r == '-' || r == '+') && i == 0:
		default:
			goto done
		}
	}
done:
	if end == 0 {
		return decimal.Zero
	}
	d, err := decimal.NewFromString(s[:end])
	if err != nil {
		return decimal.Zero
	}
	return d
}

// LenientInt parses an integer cell, degrading to zero on garbage.
func LenientInt(cell string) int {
	return int(LenientAmount(cell).IntPart())
}

// AmountCell renders an amount for a transaction cell: zero becomes the
// empty string so that exactly one of the income/expense columns is filled.
func AmountCell(d decimal.Decimal) string {
	if d.IsZero() {
		return ""
	}
	return d.String()
}
