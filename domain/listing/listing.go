package listing

import (
	"math/big"
	"time"

	"github.com/x-xyz/gosale/base/ctx"
	"github.com/x-xyz/gosale/domain"
)

// Id identifies a listing. Ids are allocated monotonically and never
// reused, finalized listings remain queryable forever.
type Id int64

type Type string

const (
	TypeIndividualAuction Type = "individualAuction"
	TypeFixedPrice        Type = "fixedPrice"
	TypeDynamicPrice      Type = "dynamicPrice"
	TypeOffersOnly        Type = "offersOnly"
)

func ToType(name string) (Type, bool) {
	switch Type(name) {
	case TypeIndividualAuction, TypeFixedPrice, TypeDynamicPrice, TypeOffersOnly:
		return Type(name), true
	}
	return "", false
}

type TokenKind string

const (
	// TokenKindUnique is a one-of-one asset, quantity is always 1
	TokenKindUnique TokenKind = "unique"
	// TokenKindMultiple is a multi-unit asset
	TokenKindMultiple TokenKind = "multiple"
)

// TokenReference points at the asset being sold. Lazy assets are not
// custodied by the engine, they are created by the deliverer at sale
// time. Creator is consulted for the royalty exemption: a seller who
// created the asset owes no royalty on its first sale.
type TokenReference struct {
	ChainId  domain.ChainId `json:"chainId" bson:"chainId"`
	Contract domain.Address `json:"contract" bson:"contract"`
	TokenId  domain.TokenId `json:"tokenId" bson:"tokenId"`
	Kind     TokenKind      `json:"kind" bson:"kind"`
	Lazy     bool           `json:"lazy" bson:"lazy"`
	Creator  domain.Address `json:"creator" bson:"creator"`
}

func (t *TokenReference) LowerCase() {
	t.Contract = t.Contract.ToLower()
	t.Creator = t.Creator.ToLower()
}

// Receiver takes a BPS share of sale proceeds in place of the seller.
// A non-empty receiver set must sum to exactly 10000 BPS.
type Receiver struct {
	Receiver    domain.Address `json:"receiver" bson:"receiver"`
	ReceiverBPS int64          `json:"receiverBps" bson:"receiverBps"`
}

// DeliveryFees is charged to the winning bidder on top of the bid when
// an auction is finalized. Only valid for individual auctions.
type DeliveryFees struct {
	DeliverBPS   int64  `json:"deliverBps" bson:"deliverBps"`
	DeliverFixed string `json:"deliverFixed" bson:"deliverFixed"`
}

// Bid is the single live bid of an auction listing. A successful
// challenger replaces it, the previous bidder is refunded.
type Bid struct {
	Bidder    domain.Address `json:"bidder" bson:"bidder"`
	Amount    string         `json:"amount" bson:"amount"`
	Referrer  domain.Address `json:"referrer" bson:"referrer"`
	Timestamp time.Time      `json:"timestamp" bson:"timestamp"`
	Delivered bool           `json:"delivered" bson:"delivered"`
	Settled   bool           `json:"settled" bson:"settled"`
	Refunded  bool           `json:"refunded" bson:"refunded"`
}

func (b *Bid) AmountBig() (*big.Int, error) {
	return domain.ParseAmount(b.Amount)
}

type Listing struct {
	ListingId Id             `json:"listingId" bson:"listingId"`
	Seller    domain.Address `json:"seller" bson:"seller"`
	Type      Type           `json:"type" bson:"type"`

	// InitialAmount is the reserve price for auctions and the per-sale
	// price for fixed price listings. Zero for dynamic price and
	// offers-only listings.
	InitialAmount     string         `json:"initialAmount" bson:"initialAmount"`
	Currency          domain.Address `json:"currency" bson:"currency"`
	Token             TokenReference `json:"token" bson:"token"`
	TotalAvailable    int64          `json:"totalAvailable" bson:"totalAvailable"`
	TotalPerSale      int64          `json:"totalPerSale" bson:"totalPerSale"`
	TotalSold         int64          `json:"totalSold" bson:"totalSold"`
	StartTime         int64          `json:"startTime" bson:"startTime"`
	EndTime           int64          `json:"endTime" bson:"endTime"`
	ExtensionInterval int64          `json:"extensionInterval" bson:"extensionInterval"`
	MinIncrementBPS   int64          `json:"minIncrementBps" bson:"minIncrementBps"`

	// Fee BPS are captured from the marketplace settings at creation
	// time and are immune to later global changes.
	MarketplaceFeeBPS int64 `json:"marketplaceFeeBps" bson:"marketplaceFeeBps"`
	ReferrerBPS       int64 `json:"referrerBps" bson:"referrerBps"`

	Receivers    []Receiver     `json:"receivers" bson:"receivers"`
	DeliveryFees *DeliveryFees  `json:"deliveryFees,omitempty" bson:"deliveryFees,omitempty"`
	Verifier     domain.Address `json:"verifier" bson:"verifier"`
	VerifierData string         `json:"verifierData" bson:"verifierData"`

	// OffersEnabled reports whether offers may be made against this
	// listing. Always true for offers-only listings; true for auctions
	// only when the seller opted in, and permanently cleared once the
	// first bid lands.
	OffersEnabled  bool `json:"offersEnabled" bson:"offersEnabled"`
	OffersAccepted bool `json:"offersAccepted" bson:"offersAccepted"`

	Bid       *Bid      `json:"bid,omitempty" bson:"bid,omitempty"`
	Finalized bool      `json:"finalized" bson:"finalized"`
	CreatedAt time.Time `json:"createdAt" bson:"createdAt"`
	UpdatedAt time.Time `json:"updatedAt" bson:"updatedAt"`
}

func (l *Listing) LowerCase() {
	l.Seller = l.Seller.ToLower()
	l.Currency = l.Currency.ToLower()
	l.Verifier = l.Verifier.ToLower()
	l.Token.LowerCase()
	for i := range l.Receivers {
		l.Receivers[i].Receiver = l.Receivers[i].Receiver.ToLower()
	}
}

func (l *Listing) InitialAmountBig() (*big.Int, error) {
	return domain.ParseAmount(l.InitialAmount)
}

// Remaining units that can still be sold
func (l *Listing) Remaining() int64 {
	return l.TotalAvailable - l.TotalSold
}

// HasBid reports whether an auction has received at least one bid
func (l *Listing) HasBid() bool {
	return l.Bid != nil
}

// Started reports whether the listing clock has started. A zero
// StartTime means the clock starts on the first buyer action.
func (l *Listing) Started(now time.Time) bool {
	return l.StartTime != 0 && now.Unix() >= l.StartTime
}

// Ended reports whether the listing window has passed. Listings with
// an unstarted clock never count as ended.
func (l *Listing) Ended(now time.Time) bool {
	return l.StartTime != 0 && l.EndTime != 0 && now.Unix() >= l.EndTime
}

// State is the lazily-evaluated lifecycle phase of a listing
type State string

const (
	StateOpen      State = "open"
	StateActive    State = "active"
	StateEnded     State = "ended"
	StateFinalized State = "finalized"
)

func (l *Listing) State(now time.Time) State {
	switch {
	case l.Finalized:
		return StateFinalized
	case l.Ended(now):
		return StateEnded
	case l.StartTime == 0 || l.Started(now):
		// an unstarted clock activates on the first buyer action
		return StateActive
	default:
		return StateOpen
	}
}

type Patchable struct {
	InitialAmount  *string    `bson:"initialAmount,omitempty"`
	StartTime      *int64     `bson:"startTime,omitempty"`
	EndTime        *int64     `bson:"endTime,omitempty"`
	TotalSold      *int64     `bson:"totalSold,omitempty"`
	OffersEnabled  *bool      `bson:"offersEnabled,omitempty"`
	OffersAccepted *bool      `bson:"offersAccepted,omitempty"`
	Bid            *Bid       `bson:"bid,omitempty"`
	Finalized      *bool      `bson:"finalized,omitempty"`
	UpdatedAt      *time.Time `bson:"updatedAt,omitempty"`
}

type FindAllOptions struct {
	Seller    *domain.Address
	Type      *Type
	Currency  *domain.Address
	Finalized *bool
	ChainId   *domain.ChainId
	Contract  *domain.Address
	Offset    *int32
	Limit     *int32
	Sort      *string
}

type FindAllOptionsFunc func(*FindAllOptions) error

func GetFindAllOptions(opts ...FindAllOptionsFunc) (FindAllOptions, error) {
	res := FindAllOptions{}
	for _, opt := range opts {
		if err := opt(&res); err != nil {
			return res, err
		}
	}
	return res, nil
}

func WithSeller(seller domain.Address) FindAllOptionsFunc {
	return func(options *FindAllOptions) error {
		options.Seller = seller.ToLowerPtr()
		return nil
	}
}

func WithType(typ Type) FindAllOptionsFunc {
	return func(options *FindAllOptions) error {
		options.Type = &typ
		return nil
	}
}

func WithCurrency(currency domain.Address) FindAllOptionsFunc {
	return func(options *FindAllOptions) error {
		options.Currency = currency.ToLowerPtr()
		return nil
	}
}

func WithFinalized(finalized bool) FindAllOptionsFunc {
	return func(options *FindAllOptions) error {
		options.Finalized = &finalized
		return nil
	}
}

func WithToken(chainId domain.ChainId, contract domain.Address) FindAllOptionsFunc {
	return func(options *FindAllOptions) error {
		options.ChainId = &chainId
		options.Contract = contract.ToLowerPtr()
		return nil
	}
}

func WithPagination(offset, limit int32) FindAllOptionsFunc {
	return func(options *FindAllOptions) error {
		options.Offset = &offset
		options.Limit = &limit
		return nil
	}
}

func WithSort(sort string) FindAllOptionsFunc {
	return func(options *FindAllOptions) error {
		options.Sort = &sort
		return nil
	}
}

// Repo owns the listing documents. state mutation goes exclusively
// through the UseCase, repositories never enforce lifecycle rules.
type Repo interface {
	NextId(ctx.Ctx) (Id, error)
	Create(ctx.Ctx, *Listing) error
	FindOne(ctx.Ctx, Id) (*Listing, error)
	FindAll(ctx.Ctx, ...FindAllOptionsFunc) ([]*Listing, error)
	Count(ctx.Ctx, ...FindAllOptionsFunc) (int, error)
	Update(ctx.Ctx, *Listing) error
	Patch(ctx.Ctx, Id, Patchable) error
}
