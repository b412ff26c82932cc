package usecase

import (
	"math/big"
	"time"

	"github.com/google/uuid"

	"github.com/x-xyz/gosale/base/ctx"
	"github.com/x-xyz/gosale/base/log"
	"github.com/x-xyz/gosale/domain"
	"github.com/x-xyz/gosale/domain/escrow"
	"github.com/x-xyz/gosale/domain/listing"
	"github.com/x-xyz/gosale/domain/provider"
)

type EscrowUseCaseCfg struct {
	EscrowRepo escrow.Repo
	Payment    provider.PaymentTransfer

	// ActivityRepo is optional, withdrawals land in the audit trail
	// when it is set
	ActivityRepo listing.ActivityRepo
}

type impl struct {
	escrowRepo   escrow.Repo
	payment      provider.PaymentTransfer
	activityRepo listing.ActivityRepo

	nowFn func() time.Time
}

func New(cfg *EscrowUseCaseCfg) escrow.UseCase {
	return &impl{
		escrowRepo:   cfg.EscrowRepo,
		payment:      cfg.Payment,
		activityRepo: cfg.ActivityRepo,
		nowFn:        time.Now,
	}
}

func (im *impl) Deposit(c ctx.Ctx, beneficiary, currency domain.Address, amount *big.Int) error {
	if amount == nil || amount.Sign() <= 0 {
		return nil
	}

	id := escrow.BalanceId{Beneficiary: beneficiary.ToLower(), Currency: currency.ToLower()}
	current := big.NewInt(0)
	balance, err := im.escrowRepo.FindOne(c, id)
	if err == nil {
		if current, err = balance.AmountBig(); err != nil {
			c.WithFields(log.Fields{
				"err":         err,
				"beneficiary": beneficiary,
			}).Error("corrupt escrow amount")
			return err
		}
	} else if err != domain.ErrNotFound {
		return err
	}

	updated := &escrow.Balance{
		Beneficiary: id.Beneficiary,
		Currency:    id.Currency,
		Amount:      domain.FormatAmount(new(big.Int).Add(current, amount)),
		UpdatedAt:   im.nowFn().UTC(),
	}
	if err := im.escrowRepo.Upsert(c, updated); err != nil {
		return err
	}

	c.WithFields(log.Fields{
		"beneficiary": beneficiary,
		"currency":    currency,
		"amount":      amount.String(),
	}).Info("escrow deposit")
	return nil
}

func (im *impl) Withdraw(c ctx.Ctx, beneficiary, currency domain.Address) (*big.Int, error) {
	id := escrow.BalanceId{Beneficiary: beneficiary.ToLower(), Currency: currency.ToLower()}
	balance, err := im.escrowRepo.FindOne(c, id)
	if err != nil {
		return nil, err
	}

	amount, err := balance.AmountBig()
	if err != nil {
		c.WithFields(log.Fields{
			"err":         err,
			"beneficiary": beneficiary,
		}).Error("corrupt escrow amount")
		return nil, err
	}
	if amount.Sign() <= 0 {
		return nil, domain.ErrNotFound
	}

	// zero the entry first so a payout failure cannot double-credit
	if err := im.escrowRepo.Remove(c, id); err != nil {
		return nil, err
	}

	if err := im.payment.Pay(c, beneficiary, amount, currency); err != nil {
		// restore the balance, funds stay claimable
		restoreErr := im.escrowRepo.Upsert(c, &escrow.Balance{
			Beneficiary: id.Beneficiary,
			Currency:    id.Currency,
			Amount:      domain.FormatAmount(amount),
			UpdatedAt:   im.nowFn().UTC(),
		})
		if restoreErr != nil {
			c.WithFields(log.Fields{
				"err":         restoreErr,
				"beneficiary": beneficiary,
				"amount":      amount.String(),
			}).Error("failed to restore escrow balance after payout failure")
		}
		return nil, err
	}

	c.WithFields(log.Fields{
		"beneficiary": beneficiary,
		"currency":    currency,
		"amount":      amount.String(),
	}).Info("escrow withdrawal")

	if im.activityRepo != nil {
		act := &listing.Activity{
			ActivityId: uuid.NewString(),
			Type:       listing.ActivityTypeEscrowWithdrawal,
			Account:    beneficiary.ToLower(),
			Amount:     domain.FormatAmount(amount),
			Currency:   currency.ToLower(),
			Time:       im.nowFn().UTC(),
		}
		if err := im.activityRepo.Insert(c, act); err != nil {
			c.WithFields(log.Fields{
				"err":         err,
				"beneficiary": beneficiary,
			}).Warn("failed to record escrow withdrawal")
		}
	}
	return amount, nil
}

func (im *impl) GetBalances(c ctx.Ctx, beneficiary domain.Address) ([]*escrow.Balance, error) {
	return im.escrowRepo.FindAll(c, beneficiary)
}
