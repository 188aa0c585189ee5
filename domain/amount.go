package domain

import (
	"math/big"

	"github.com/shopspring/decimal"
)

// Amounts travel as decimal strings in the smallest currency unit (wei) so
// they survive JSON/bson round trips without precision loss.

// ParseAmount parses a non-negative integer amount string.
func ParseAmount(s string) (*big.Int, error) {
	v, ok := new(big.Int).SetString(s, 10)
	if !ok || v.Sign() < 0 {
		return nil, ErrBadParamInput
	}
	return v, nil
}

// ParsePositiveAmount parses an amount that must be strictly greater than 0.
func ParsePositiveAmount(s string) (*big.Int, error) {
	v, err := ParseAmount(s)
	if err != nil {
		return nil, err
	}
	if v.Sign() <= 0 {
		return nil, ErrInvalidPrice
	}
	return v, nil
}

const nativeDecimals = 18

// DisplayAmount renders a wei amount as an ether-denominated decimal string,
// e.g. "1000000000000000000" -> "1".
func DisplayAmount(wei string) string {
	v, ok := new(big.Int).SetString(wei, 10)
	if !ok {
		return ""
	}
	return decimal.NewFromBigInt(v, -nativeDecimals).String()
}
