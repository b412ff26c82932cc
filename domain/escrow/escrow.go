package escrow

import (
	"math/big"
	"time"

	"github.com/x-xyz/gosale/base/ctx"
	"github.com/x-xyz/gosale/domain"
)

// Balance is a (beneficiary, currency) holding funded whenever a
// direct payout could not be completed. Only the beneficiary drains
// its own entry.
type Balance struct {
	Beneficiary domain.Address `json:"beneficiary" bson:"beneficiary"`
	Currency    domain.Address `json:"currency" bson:"currency"`
	Amount      string         `json:"amount" bson:"amount"`
	UpdatedAt   time.Time      `json:"updatedAt" bson:"updatedAt"`
}

func (b *Balance) ToId() BalanceId {
	return BalanceId{
		Beneficiary: b.Beneficiary,
		Currency:    b.Currency,
	}
}

func (b *Balance) AmountBig() (*big.Int, error) {
	return domain.ParseAmount(b.Amount)
}

type BalanceId struct {
	Beneficiary domain.Address `bson:"beneficiary"`
	Currency    domain.Address `bson:"currency"`
}

type Repo interface {
	FindOne(ctx.Ctx, BalanceId) (*Balance, error)
	FindAll(ctx.Ctx, domain.Address) ([]*Balance, error)
	Upsert(ctx.Ctx, *Balance) error
	Remove(ctx.Ctx, BalanceId) error
}

// UseCase is the escrow ledger. Deposit never fails for business
// reasons, it is the fallback that keeps settlements moving when a
// recipient cannot take a direct payout. Withdraw drains the entry
// at most once per call.
type UseCase interface {
	Deposit(c ctx.Ctx, beneficiary, currency domain.Address, amount *big.Int) error
	Withdraw(c ctx.Ctx, beneficiary, currency domain.Address) (*big.Int, error)
	GetBalances(c ctx.Ctx, beneficiary domain.Address) ([]*Balance, error)
}
