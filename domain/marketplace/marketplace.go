package marketplace

import (
	"math/big"
	"time"

	"github.com/x-xyz/gosale/base/ctx"
	"github.com/x-xyz/gosale/domain"
)

// MaxFeeBPS caps both the marketplace and the referrer fee at 15%
const MaxFeeBPS = 1500

// MaxHoldbackBPS caps the admin-cancel penalty at 10%
const MaxHoldbackBPS = 1000

// Settings is the global mutable marketplace configuration. Listings
// capture the fee BPS at creation time, so changing them here never
// affects live listings. Version increments on every mutation.
type Settings struct {
	MarketplaceFeeBPS int64          `json:"marketplaceFeeBps" bson:"marketplaceFeeBps"`
	ReferrerBPS       int64          `json:"referrerBps" bson:"referrerBps"`
	Enabled           bool           `json:"enabled" bson:"enabled"`
	SellerRegistry    domain.Address `json:"sellerRegistry" bson:"sellerRegistry"`
	// RoyaltyService is one-time settable; once bound it never changes
	RoyaltyService domain.Address `json:"royaltyService" bson:"royaltyService"`
	Version        int64          `json:"version" bson:"version"`
	UpdatedAt      time.Time      `json:"updatedAt" bson:"updatedAt"`
}

type SettingsPatchable struct {
	MarketplaceFeeBPS *int64          `json:"marketplaceFeeBps"`
	ReferrerBPS       *int64          `json:"referrerBps"`
	Enabled           *bool           `json:"enabled"`
	SellerRegistry    *domain.Address `json:"sellerRegistry"`
}

// Accrual is the marketplace's own accumulated fee balance per
// currency, withdrawable by an administrator.
type Accrual struct {
	Currency  domain.Address `json:"currency" bson:"currency"`
	Amount    string         `json:"amount" bson:"amount"`
	UpdatedAt time.Time      `json:"updatedAt" bson:"updatedAt"`
}

func (a *Accrual) AmountBig() (*big.Int, error) {
	return domain.ParseAmount(a.Amount)
}

type Repo interface {
	GetSettings(ctx.Ctx) (*Settings, error)
	PutSettings(ctx.Ctx, *Settings) error
	GetAccrual(ctx.Ctx, domain.Address) (*Accrual, error)
	ListAccruals(ctx.Ctx) ([]*Accrual, error)
	PutAccrual(ctx.Ctx, *Accrual) error
	RemoveAccrual(ctx.Ctx, domain.Address) error
}

// UseCase owns the admin configuration surface. Mutations live here,
// outside the lifecycle state machine, and are access controlled at
// the delivery layer.
type UseCase interface {
	GetSettings(ctx.Ctx) (*Settings, error)
	PatchSettings(ctx.Ctx, *SettingsPatchable) (*Settings, error)
	BindRoyaltyService(ctx.Ctx, domain.Address) (*Settings, error)

	AccrueFees(c ctx.Ctx, currency domain.Address, amount *big.Int) error
	ListAccruals(ctx.Ctx) ([]*Accrual, error)
	WithdrawFees(c ctx.Ctx, to, currency domain.Address) (*big.Int, error)
}
