package domain

import (
	"errors"
	"math/big"
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestFeeCut(t *testing.T) {
	cases := []struct {
		fee    FeeBps
		amount string
		want   string
	}{
		{250, "1000000000000000000", "25000000000000000"},
		{250, "999", "24"}, // floor(999 * 250 / 10000) = floor(24.975)
		{250, "1", "0"},
		{0, "1000000000000000000", "0"},
		{1000, "1000000000000000000", "100000000000000000"},
		{10000, "12345", "12345"},
	}

	for _, c := range cases {
		amount, ok := new(big.Int).SetString(c.amount, 10)
		assert.True(t, ok)
		assert.Equal(t, c.want, c.fee.Cut(amount).String(), "fee %d of %s", c.fee, c.amount)
	}
}

func TestParseAmount(t *testing.T) {
	v, err := ParseAmount("0")
	assert.NoError(t, err)
	assert.Equal(t, "0", v.String())

	_, err = ParseAmount("-1")
	assert.True(t, errors.Is(err, ErrBadParamInput))

	_, err = ParseAmount("1.5")
	assert.True(t, errors.Is(err, ErrBadParamInput))

	_, err = ParsePositiveAmount("0")
	assert.True(t, errors.Is(err, ErrInvalidPrice))

	v, err = ParsePositiveAmount("1000000000000000000")
	assert.NoError(t, err)
	assert.Equal(t, "1000000000000000000", v.String())
}

func TestDisplayAmount(t *testing.T) {
	assert.Equal(t, "1", DisplayAmount("1000000000000000000"))
	assert.Equal(t, "0.975", DisplayAmount("975000000000000000"))
	assert.Equal(t, "0.025", DisplayAmount("25000000000000000"))
	assert.Equal(t, "0", DisplayAmount("0"))
}

func TestAddress(t *testing.T) {
	a := Address("0xE4E3F45F40995B9Bd1D9Bef90ab6Bf89Dd6f9518")
	assert.Equal(t, Address("0xe4e3f45f40995b9bd1d9bef90ab6bf89dd6f9518"), a.ToLower())
	assert.True(t, a.Equals(a.ToLower()))
	assert.False(t, a.IsEmpty())
	assert.True(t, EmptyAddress.IsEmpty())
	assert.True(t, Address("").IsEmpty())
}

func TestErrorKindMatching(t *testing.T) {
	err := ErrIncorrectPaymentDetail(big.NewInt(100), big.NewInt(99))
	assert.True(t, errors.Is(err, ErrIncorrectPayment), "detail errors match their kind sentinel")
	assert.Equal(t, "100", err.Detail["expected"])
	assert.Equal(t, "99", err.Detail["actual"])

	assert.False(t, errors.Is(ErrNotOwner, ErrNotSeller))
}
