package ledgercsv

import (
	"fmt"
	"math"
	"strings"

	"github.com/shopspring/decimal"
)

// parseWon parses a whole-won amount such as "1,234,000", "1234000원" or
// "1,000". Fractions of a won and negative amounts are rejected.
func parseWon(s string) (int64, error) {
	clean := strings.TrimSpace(s)
	clean = strings.TrimSuffix(clean, "원")
	clean = strings.ReplaceAll(clean, ",", "")
	clean = strings.ReplaceAll(clean, " ", "")

	d, err := decimal.NewFromString(clean)
	if err != nil {
		return 0, err
	}

	if !d.IsInteger() {
		return 0, fmt.Errorf("amount %q has a fractional part", s)
	}

	if d.IsNegative() {
		return 0, fmt.Errorf("amount %q is negative", s)
	}

	if !d.BigInt().IsInt64() {
		return 0, fmt.Errorf("amount %q is too large", s)
	}

	return d.IntPart(), nil
}

// addWon adds two non-negative amounts, failing instead of wrapping.
func addWon(a, b int64) (int64, error) {
	if a > math.MaxInt64-b {
		return 0, fmt.Errorf("amounts add up past %d", int64(math.MaxInt64))
	}

	return a + b, nil
}
