package listing

import (
	"math/big"
	"time"

	"github.com/x-xyz/gosale/base/ctx"
	"github.com/x-xyz/gosale/domain"
)

// Offer is keyed by (listing, offerer): each buyer holds at most one
// live offer per listing, raising it updates amount and timestamp in
// place. Offered funds are pulled into the engine when the offer is
// made and returned on rescind.
type Offer struct {
	ListingId Id             `json:"listingId" bson:"listingId"`
	Offerer   domain.Address `json:"offerer" bson:"offerer"`
	Amount    string         `json:"amount" bson:"amount"`
	Referrer  domain.Address `json:"referrer" bson:"referrer"`
	Timestamp time.Time      `json:"timestamp" bson:"timestamp"`
	Accepted  bool           `json:"accepted" bson:"accepted"`
}

func (o *Offer) ToId() OfferId {
	return OfferId{
		ListingId: o.ListingId,
		Offerer:   o.Offerer,
	}
}

func (o *Offer) AmountBig() (*big.Int, error) {
	return domain.ParseAmount(o.Amount)
}

type OfferId struct {
	ListingId Id             `bson:"listingId"`
	Offerer   domain.Address `bson:"offerer"`
}

type OfferPatchable struct {
	Amount    *string    `bson:"amount,omitempty"`
	Timestamp *time.Time `bson:"timestamp,omitempty"`
	Accepted  *bool      `bson:"accepted,omitempty"`
}

type OfferFindAllOptions struct {
	ListingId *Id
	Offerer   *domain.Address
	Accepted  *bool
	Offset    *int32
	Limit     *int32
	Sort      *string
}

type OfferFindAllOptionsFunc func(*OfferFindAllOptions) error

func GetOfferFindAllOptions(opts ...OfferFindAllOptionsFunc) (OfferFindAllOptions, error) {
	res := OfferFindAllOptions{}
	for _, opt := range opts {
		if err := opt(&res); err != nil {
			return res, err
		}
	}
	return res, nil
}

func WithOfferListingId(id Id) OfferFindAllOptionsFunc {
	return func(options *OfferFindAllOptions) error {
		options.ListingId = &id
		return nil
	}
}

func WithOfferer(offerer domain.Address) OfferFindAllOptionsFunc {
	return func(options *OfferFindAllOptions) error {
		options.Offerer = offerer.ToLowerPtr()
		return nil
	}
}

func WithOfferAccepted(accepted bool) OfferFindAllOptionsFunc {
	return func(options *OfferFindAllOptions) error {
		options.Accepted = &accepted
		return nil
	}
}

func WithOfferPagination(offset, limit int32) OfferFindAllOptionsFunc {
	return func(options *OfferFindAllOptions) error {
		options.Offset = &offset
		options.Limit = &limit
		return nil
	}
}

func WithOfferSort(sort string) OfferFindAllOptionsFunc {
	return func(options *OfferFindAllOptions) error {
		options.Sort = &sort
		return nil
	}
}

type OfferRepo interface {
	FindOne(ctx.Ctx, OfferId) (*Offer, error)
	FindAll(ctx.Ctx, ...OfferFindAllOptionsFunc) ([]*Offer, error)
	Upsert(ctx.Ctx, *Offer) error
	Patch(ctx.Ctx, OfferId, OfferPatchable) error
	Remove(ctx.Ctx, OfferId) error
}
