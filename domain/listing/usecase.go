package listing

import (
	"math/big"

	"github.com/x-xyz/gosale/base/ctx"
	"github.com/x-xyz/gosale/domain"
)

// CreateRequest carries the caller-supplied configuration a listing is
// built and validated from. Marketplace and referrer fee BPS are not
// part of the request, they are captured from the live settings.
type CreateRequest struct {
	Seller            domain.Address `json:"seller" validate:"required"`
	Type              string         `json:"type" validate:"required"`
	InitialAmount     string         `json:"initialAmount"`
	Currency          domain.Address `json:"currency"`
	Token             TokenReference `json:"token"`
	TotalAvailable    int64          `json:"totalAvailable"`
	TotalPerSale      int64          `json:"totalPerSale"`
	StartTime         int64          `json:"startTime"`
	EndTime           int64          `json:"endTime"`
	ExtensionInterval int64          `json:"extensionInterval"`
	MinIncrementBPS   int64          `json:"minIncrementBps"`
	Receivers         []Receiver     `json:"receivers"`
	DeliveryFees      *DeliveryFees  `json:"deliveryFees"`
	Verifier          domain.Address `json:"verifier"`
	VerifierData      string         `json:"verifierData"`
	AcceptOffers      bool           `json:"acceptOffers"`
	AuthorizationData string         `json:"authorizationData"`
}

// ModifyRequest updates the fields a seller may still change before
// any bid or sale has occurred.
type ModifyRequest struct {
	InitialAmount *string `json:"initialAmount"`
	StartTime     *int64  `json:"startTime"`
	EndTime       *int64  `json:"endTime"`
}

type PurchaseRequest struct {
	Buyer domain.Address `json:"buyer" validate:"required"`
	// Count is the number of units bought, a multiple of the listing's
	// totalPerSale
	Count int64 `json:"count" validate:"required,gt=0"`
	// Amount is the payment the buyer authorized for this purchase.
	// Purchases fail when it does not cover the (possibly oracle
	// quoted) price; any excess over a dynamic quote is returned.
	Amount   string `json:"amount" validate:"required"`
	Identity string `json:"identity"`
}

type BidRequest struct {
	Bidder   domain.Address `json:"bidder" validate:"required"`
	Amount   string         `json:"amount" validate:"required"`
	Referrer domain.Address `json:"referrer"`
	Identity string         `json:"identity"`
}

type OfferRequest struct {
	Offerer  domain.Address `json:"offerer" validate:"required"`
	Amount   string         `json:"amount" validate:"required"`
	Referrer domain.Address `json:"referrer"`
	Identity string         `json:"identity"`
}

// AcceptRequest accepts the named outstanding offers, in order, while
// their aggregate stays within MaxAmount. Zero MaxAmount means no cap.
type AcceptRequest struct {
	Seller    domain.Address   `json:"seller" validate:"required"`
	Offerers  []domain.Address `json:"offerers" validate:"required,min=1"`
	MaxAmount string           `json:"maxAmount"`
}

type RescindRequest struct {
	Caller  domain.Address `json:"caller" validate:"required"`
	Offerer domain.Address `json:"offerer" validate:"required"`
}

type CancelRequest struct {
	Caller domain.Address `json:"caller" validate:"required"`
	Admin  bool           `json:"admin"`
	// HoldbackBPS is withheld from the bidder refund as a penalty on an
	// admin cancel, capped at 1000 BPS
	HoldbackBPS int64 `json:"holdbackBps"`
}

// RescindPolicy makes the offer-rescission timing rules explicit
// configuration instead of hard-coded behavior.
type RescindPolicy struct {
	// OffersOnlyDelay is how long past endTime an offers-only listing's
	// offerer must wait before rescinding a non-finalized listing's
	// offer, in seconds
	OffersOnlyDelay int64
	// SellerForceBeforeEnd permits the seller to force-rescind others'
	// offers while the listing is still running
	SellerForceBeforeEnd bool
}

// DefaultRescindPolicy waits 24 hours on offers-only listings and
// restricts seller force-rescind to ended listings.
func DefaultRescindPolicy() RescindPolicy {
	return RescindPolicy{
		OffersOnlyDelay:      24 * 60 * 60,
		SellerForceBeforeEnd: false,
	}
}

// PurchaseResult reports the executed price of a purchase, which for
// dynamic price listings is only known after the oracle quote.
type PurchaseResult struct {
	Listing *Listing `json:"listing"`
	Price   *big.Int `json:"price"`
	Settled bool     `json:"settled"`
}

// AcceptResult reports which offers were accepted and the aggregate
// amount settled.
type AcceptResult struct {
	Listing  *Listing         `json:"listing"`
	Accepted []domain.Address `json:"accepted"`
	Total    *big.Int         `json:"total"`
}

// UseCase is the listing lifecycle state machine. Every operation is
// an atomic, serialized transaction: checks run first, state commits
// second, external transfers run last.
type UseCase interface {
	Create(ctx.Ctx, *CreateRequest) (*Listing, error)
	Modify(ctx.Ctx, Id, domain.Address, *ModifyRequest) (*Listing, error)
	Purchase(ctx.Ctx, Id, *PurchaseRequest) (*PurchaseResult, error)
	PlaceBid(ctx.Ctx, Id, *BidRequest) (*Listing, error)
	MakeOffer(ctx.Ctx, Id, *OfferRequest) (*Offer, error)
	AcceptOffers(ctx.Ctx, Id, *AcceptRequest) (*AcceptResult, error)
	RescindOffer(ctx.Ctx, Id, *RescindRequest) error
	Finalize(ctx.Ctx, Id, domain.Address) (*Listing, error)
	Collect(ctx.Ctx, Id, domain.Address) (*Listing, error)
	Cancel(ctx.Ctx, Id, *CancelRequest) (*Listing, error)

	GetListing(ctx.Ctx, Id) (*Listing, error)
	FindAll(ctx.Ctx, ...FindAllOptionsFunc) ([]*Listing, error)
	GetOffers(ctx.Ctx, Id) ([]*Offer, error)
	GetActivities(ctx.Ctx, Id, ...ActivityFindAllOptionsFunc) ([]*Activity, error)
}
