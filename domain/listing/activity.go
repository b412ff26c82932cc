package listing

import (
	"time"

	"github.com/x-xyz/gosale/base/ctx"
	"github.com/x-xyz/gosale/domain"
)

type ActivityType string

const (
	ActivityTypeCreated          ActivityType = "created"
	ActivityTypeModified         ActivityType = "modified"
	ActivityTypePurchase         ActivityType = "purchase"
	ActivityTypeBid              ActivityType = "bid"
	ActivityTypeOffer            ActivityType = "offer"
	ActivityTypeOfferAccepted    ActivityType = "offerAccepted"
	ActivityTypeOfferRescinded   ActivityType = "offerRescinded"
	ActivityTypeFinalized        ActivityType = "finalized"
	ActivityTypeCancelled        ActivityType = "cancelled"
	ActivityTypeEscrowWithdrawal ActivityType = "escrowWithdrawal"
)

// Activity is the audit record emitted for every observable lifecycle
// event. Activities are append-only.
type Activity struct {
	ActivityId string         `json:"activityId" bson:"activityId"`
	ListingId  Id             `json:"listingId" bson:"listingId"`
	Type       ActivityType   `json:"type" bson:"type"`
	Account    domain.Address `json:"account" bson:"account"`
	To         domain.Address `json:"to,omitempty" bson:"to,omitempty"`
	Quantity   int64          `json:"quantity,omitempty" bson:"quantity,omitempty"`
	Amount     string         `json:"amount,omitempty" bson:"amount,omitempty"`
	Currency   domain.Address `json:"currency,omitempty" bson:"currency,omitempty"`
	Time       time.Time      `json:"time" bson:"time"`
}

type ActivityFindAllOptions struct {
	ListingId *Id
	Account   *domain.Address
	Type      *ActivityType
	Offset    *int32
	Limit     *int32
}

type ActivityFindAllOptionsFunc func(*ActivityFindAllOptions) error

func GetActivityFindAllOptions(opts ...ActivityFindAllOptionsFunc) (ActivityFindAllOptions, error) {
	res := ActivityFindAllOptions{}
	for _, opt := range opts {
		if err := opt(&res); err != nil {
			return res, err
		}
	}
	return res, nil
}

func WithActivityListingId(id Id) ActivityFindAllOptionsFunc {
	return func(options *ActivityFindAllOptions) error {
		options.ListingId = &id
		return nil
	}
}

func WithActivityAccount(account domain.Address) ActivityFindAllOptionsFunc {
	return func(options *ActivityFindAllOptions) error {
		options.Account = account.ToLowerPtr()
		return nil
	}
}

func WithActivityType(typ ActivityType) ActivityFindAllOptionsFunc {
	return func(options *ActivityFindAllOptions) error {
		options.Type = &typ
		return nil
	}
}

func WithActivityPagination(offset, limit int32) ActivityFindAllOptionsFunc {
	return func(options *ActivityFindAllOptions) error {
		options.Offset = &offset
		options.Limit = &limit
		return nil
	}
}

type ActivityRepo interface {
	Insert(ctx.Ctx, *Activity) error
	FindAll(ctx.Ctx, ...ActivityFindAllOptionsFunc) ([]*Activity, error)
}

// Notifier pushes finalized-sale activities to an external channel.
// Implementations must not block lifecycle operations.
type Notifier interface {
	Notify(ctx.Ctx, *Listing, *Activity)
}
