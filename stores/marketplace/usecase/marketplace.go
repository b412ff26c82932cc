package usecase

import (
	"math/big"
	"time"

	"github.com/x-xyz/gosale/base/ctx"
	"github.com/x-xyz/gosale/base/log"
	"github.com/x-xyz/gosale/domain"
	"github.com/x-xyz/gosale/domain/marketplace"
	"github.com/x-xyz/gosale/domain/provider"
)

type MarketplaceUseCaseCfg struct {
	MarketplaceRepo marketplace.Repo
	Payment         provider.PaymentTransfer
}

type impl struct {
	marketplaceRepo marketplace.Repo
	payment         provider.PaymentTransfer

	nowFn func() time.Time
}

func New(cfg *MarketplaceUseCaseCfg) marketplace.UseCase {
	return &impl{
		marketplaceRepo: cfg.MarketplaceRepo,
		payment:         cfg.Payment,
		nowFn:           time.Now,
	}
}

func (im *impl) GetSettings(c ctx.Ctx) (*marketplace.Settings, error) {
	settings, err := im.marketplaceRepo.GetSettings(c)
	if err == domain.ErrNotFound {
		// defaults before anything was configured
		return &marketplace.Settings{Enabled: true}, nil
	} else if err != nil {
		return nil, err
	}
	return settings, nil
}

func (im *impl) PatchSettings(c ctx.Ctx, patchable *marketplace.SettingsPatchable) (*marketplace.Settings, error) {
	settings, err := im.GetSettings(c)
	if err != nil {
		return nil, err
	}

	if patchable.MarketplaceFeeBPS != nil {
		if *patchable.MarketplaceFeeBPS < 0 || *patchable.MarketplaceFeeBPS > marketplace.MaxFeeBPS {
			return nil, domain.ErrBadParamInput
		}
		settings.MarketplaceFeeBPS = *patchable.MarketplaceFeeBPS
	}
	if patchable.ReferrerBPS != nil {
		if *patchable.ReferrerBPS < 0 || *patchable.ReferrerBPS > marketplace.MaxFeeBPS {
			return nil, domain.ErrBadParamInput
		}
		settings.ReferrerBPS = *patchable.ReferrerBPS
	}
	if patchable.Enabled != nil {
		settings.Enabled = *patchable.Enabled
	}
	if patchable.SellerRegistry != nil {
		settings.SellerRegistry = patchable.SellerRegistry.ToLower()
	}

	settings.Version++
	settings.UpdatedAt = im.nowFn().UTC()
	if err := im.marketplaceRepo.PutSettings(c, settings); err != nil {
		return nil, err
	}

	c.WithFields(log.Fields{
		"version": settings.Version,
	}).Info("marketplace settings updated")
	return settings, nil
}

func (im *impl) BindRoyaltyService(c ctx.Ctx, service domain.Address) (*marketplace.Settings, error) {
	settings, err := im.GetSettings(c)
	if err != nil {
		return nil, err
	}

	// one-time binding
	if !settings.RoyaltyService.IsEmpty() {
		return nil, domain.ErrConflict
	}
	if service.IsEmpty() {
		return nil, domain.ErrBadParamInput
	}

	settings.RoyaltyService = service.ToLower()
	settings.Version++
	settings.UpdatedAt = im.nowFn().UTC()
	if err := im.marketplaceRepo.PutSettings(c, settings); err != nil {
		return nil, err
	}
	return settings, nil
}

func (im *impl) AccrueFees(c ctx.Ctx, currency domain.Address, amount *big.Int) error {
	if amount == nil || amount.Sign() <= 0 {
		return nil
	}

	current := big.NewInt(0)
	accrual, err := im.marketplaceRepo.GetAccrual(c, currency)
	if err == nil {
		if current, err = accrual.AmountBig(); err != nil {
			c.WithFields(log.Fields{
				"err":      err,
				"currency": currency,
			}).Error("corrupt accrual amount")
			return err
		}
	} else if err != domain.ErrNotFound {
		return err
	}

	return im.marketplaceRepo.PutAccrual(c, &marketplace.Accrual{
		Currency:  currency.ToLower(),
		Amount:    domain.FormatAmount(new(big.Int).Add(current, amount)),
		UpdatedAt: im.nowFn().UTC(),
	})
}

func (im *impl) ListAccruals(c ctx.Ctx) ([]*marketplace.Accrual, error) {
	return im.marketplaceRepo.ListAccruals(c)
}

func (im *impl) WithdrawFees(c ctx.Ctx, to, currency domain.Address) (*big.Int, error) {
	accrual, err := im.marketplaceRepo.GetAccrual(c, currency)
	if err != nil {
		return nil, err
	}

	amount, err := accrual.AmountBig()
	if err != nil {
		c.WithFields(log.Fields{
			"err":      err,
			"currency": currency,
		}).Error("corrupt accrual amount")
		return nil, err
	}
	if amount.Sign() <= 0 {
		return nil, domain.ErrNotFound
	}

	if err := im.marketplaceRepo.RemoveAccrual(c, currency); err != nil {
		return nil, err
	}

	if err := im.payment.Pay(c, to, amount, currency); err != nil {
		restoreErr := im.marketplaceRepo.PutAccrual(c, &marketplace.Accrual{
			Currency:  currency.ToLower(),
			Amount:    domain.FormatAmount(amount),
			UpdatedAt: im.nowFn().UTC(),
		})
		if restoreErr != nil {
			c.WithFields(log.Fields{
				"err":      restoreErr,
				"currency": currency,
				"amount":   amount.String(),
			}).Error("failed to restore accrual after payout failure")
		}
		return nil, err
	}

	c.WithFields(log.Fields{
		"to":       to,
		"currency": currency,
		"amount":   amount.String(),
	}).Info("marketplace fees withdrawn")
	return amount, nil
}
