package settlement

import (
	"math/big"

	"github.com/x-xyz/gosale/base/ctx"
	"github.com/x-xyz/gosale/domain"
	"github.com/x-xyz/gosale/domain/listing"
)

type PayoutReason string

const (
	ReasonMarketplaceFee PayoutReason = "marketplaceFee"
	ReasonReferrerFee    PayoutReason = "referrerFee"
	ReasonRoyalty        PayoutReason = "royalty"
	ReasonReceiver       PayoutReason = "receiver"
	ReasonSeller         PayoutReason = "seller"
)

// Payout is one leg of a distribution. Escrowed marks legs whose
// direct transfer failed and were credited to the escrow ledger
// instead.
type Payout struct {
	To       domain.Address `json:"to"`
	Amount   string         `json:"amount"`
	Reason   PayoutReason   `json:"reason"`
	Escrowed bool           `json:"escrowed"`
}

// Distribution is the full, ordered split of one gross sale amount.
type Distribution struct {
	ListingId      listing.Id     `json:"listingId"`
	Currency       domain.Address `json:"currency"`
	Gross          string         `json:"gross"`
	MarketplaceFee string         `json:"marketplaceFee"`
	Payouts        []Payout       `json:"payouts"`
}

// UseCase distributes one sale's proceeds: marketplace fee, then
// referrer fee, then royalties, then the receiver split or the seller.
// Fractional BPS remainders stay with the last-computed party. A leg
// whose payout fails is escrowed rather than failing the settlement.
// Idempotence (at most one distribution per settled sale) is enforced
// by the caller via the listing/bid settled flags before invoking
// Distribute.
type UseCase interface {
	Distribute(c ctx.Ctx, l *listing.Listing, gross *big.Int, referrer domain.Address) (*Distribution, error)
}
