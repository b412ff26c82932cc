package domain

import (
	"math/big"
	"strings"

	"golang.org/x/xerrors"
)

type Table string

const (
	TableListings            Table = "listings"
	TableOffers              Table = "offers"
	TableEscrowBalances      Table = "escrow_balances"
	TableListingActivities   Table = "listing_activities"
	TableMarketplaceSettings Table = "marketplace_settings"
	TableMarketplaceAccruals Table = "marketplace_accruals"
	TableCounters            Table = "counters"
	TablePayTokens           Table = "pay_tokens"
)

type SortDir int8

const (
	SortDirAsc  = 1
	SortDirDesc = -1
)

type ChainId int32

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

type TokenId string

func (i TokenId) String() string {
	return string(i)
}

type TxHash string

// BPSDenominator is the whole in basis point arithmetic
const BPSDenominator = 10000

var bigBPSDenominator = big.NewInt(BPSDenominator)

// ApplyBPS returns amount * bps / 10000, flooring the remainder
func ApplyBPS(amount *big.Int, bps int64) *big.Int {
	res := new(big.Int).Mul(amount, big.NewInt(bps))
	return res.Div(res, bigBPSDenominator)
}

// ParseAmount parses a stored decimal-string amount into a big.Int.
// Empty strings decode to zero, matching documents written before the
// field existed.
func ParseAmount(s string) (*big.Int, error) {
	if s == "" {
		return new(big.Int), nil
	}
	v, ok := new(big.Int).SetString(s, 10)
	if !ok {
		return nil, xerrors.Errorf("invalid amount %q: %w", s, ErrInvalidNumberFormat)
	}
	return v, nil
}

// FormatAmount renders an amount for storage. Nil counts as zero.
func FormatAmount(v *big.Int) string {
	if v == nil {
		return "0"
	}
	return v.String()
}
