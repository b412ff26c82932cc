// Package provider declares the capability interfaces the engine
// consumes by reference: asset custody, value movement, royalty
// lookup, seller authorization, buyer identity verification, dynamic
// pricing and lazy delivery. The engine never branches on a concrete
// implementation, collaborators are resolved per listing or per call.
package provider

import (
	"math/big"

	"github.com/x-xyz/gosale/base/ctx"
	"github.com/x-xyz/gosale/domain"
	"github.com/x-xyz/gosale/domain/listing"
)

// AssetTransfer moves assets between custodians. Custody pulls the
// asset into the engine's vault at listing creation; Transfer moves it
// out of the vault to a buyer or back to the seller.
type AssetTransfer interface {
	Custody(c ctx.Ctx, from domain.Address, token listing.TokenReference, quantity int64) error
	Transfer(c ctx.Ctx, to domain.Address, token listing.TokenReference, quantity int64) error
}

// PaymentTransfer moves value between accounts. Collect is the
// pull-payment used for buy-ins, Pay is the push side used for payouts
// and refunds.
type PaymentTransfer interface {
	Collect(c ctx.Ctx, from domain.Address, amount *big.Int, currency domain.Address) error
	Pay(c ctx.Ctx, to domain.Address, amount *big.Int, currency domain.Address) error
}

type RoyaltyShare struct {
	Recipient domain.Address
	Amount    *big.Int
}

// RoyaltyLookup resolves the royalty obligation for a sale of the
// given token at the given value.
type RoyaltyLookup interface {
	GetRoyalty(c ctx.Ctx, token listing.TokenReference, saleValue *big.Int) ([]RoyaltyShare, error)
}

// SellerRegistry gates listing creation, consulted once at create time
// against the registry address held in the marketplace settings.
type SellerRegistry interface {
	IsAuthorized(c ctx.Ctx, registry, seller domain.Address, data []byte) (bool, error)
}

type VerifyRequest struct {
	ListingId listing.Id
	Identity  domain.Address
	Token     listing.TokenReference
	Count     int64
	Amount    *big.Int
	Currency  domain.Address
	Data      []byte
}

// IdentityVerifier is consulted on every purchase, bid and offer when
// the listing configured a verifier reference.
type IdentityVerifier interface {
	Verify(c ctx.Ctx, verifier domain.Address, req *VerifyRequest) (bool, error)
}

// PriceOracle quotes dynamic price listings. alreadyDelivered lets the
// oracle implement monotone curves over units sold.
type PriceOracle interface {
	Quote(c ctx.Ctx, token listing.TokenReference, alreadyDelivered, count int64) (*big.Int, error)
}

// LazyDeliverer creates and delivers a not-yet-custodied asset at sale
// time, replacing the direct vault transfer.
type LazyDeliverer interface {
	Deliver(c ctx.Ctx, listingId listing.Id, to domain.Address, token listing.TokenReference, count int64, amount *big.Int, currency domain.Address, index int64) error
}
