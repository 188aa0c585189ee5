package domain

import (
	"math/big"
	"strconv"
	"strings"

	"golang.org/x/xerrors"
)

type SortDir int8

const (
	SortDirAsc  = 1
	SortDirDesc = -1
)

type Address string

const EmptyAddress = Address("0x0000000000000000000000000000000000000000")

func (a Address) ToLower() Address {
	return Address(strings.ToLower(string(a)))
}

func (a Address) ToLowerPtr() *Address {
	res := a.ToLower()
	return &res
}

func (a Address) ToLowerStr() string {
	return strings.ToLower(string(a))
}

func (a Address) IsEmpty() bool {
	return len(a) == 0 || a.Equals(EmptyAddress)
}

func (a Address) Equals(b Address) bool {
	return a.ToLowerStr() == b.ToLowerStr()
}

// TokenId is a decimal-encoded token identifier
type TokenId string

func (i TokenId) String() string {
	return string(i)
}

func (i TokenId) Uint64() (uint64, error) {
	v, err := strconv.ParseUint(string(i), 10, 64)
	if err != nil {
		return 0, xerrors.Errorf("invalid token id %s: %w", i, err)
	}
	return v, nil
}

func TokenIdFromUint64(v uint64) TokenId {
	return TokenId(strconv.FormatUint(v, 10))
}

// ListingId is a sequential marketplace listing identifier, first id is 1.
// Zero is the "no listing" sentinel used by the reverse index.
type ListingId uint64

func (i ListingId) IsZero() bool {
	return i == 0
}

// FeeBps is a marketplace fee in basis points, 1 bps = 0.01%
type FeeBps uint32

const FeeDenominator = 10000

// Cut returns floor(amount * fee / 10000)
func (f FeeBps) Cut(amount *big.Int) *big.Int {
	cut := new(big.Int).Mul(amount, big.NewInt(int64(f)))
	return cut.Div(cut, big.NewInt(FeeDenominator))
}

type Table string

const (
	TableTokens        = Table("tokens")
	TableOperators     = Table("operators")
	TableCounters      = Table("counters")
	TableListings      = Table("listings")
	TableListingIndex  = Table("listing_index")
	TableMarketConfigs = Table("market_configs")
	TableBalances      = Table("balances")
	TableEvents        = Table("events")
)
