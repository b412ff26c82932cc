package usecase

import (
	"math/big"

	"github.com/x-xyz/gosale/base/ctx"
	"github.com/x-xyz/gosale/base/log"
	"github.com/x-xyz/gosale/domain"
	"github.com/x-xyz/gosale/domain/escrow"
	"github.com/x-xyz/gosale/domain/listing"
	"github.com/x-xyz/gosale/domain/marketplace"
	"github.com/x-xyz/gosale/domain/provider"
	"github.com/x-xyz/gosale/domain/settlement"
)

type SettlementUseCaseCfg struct {
	Payment       provider.PaymentTransfer
	Royalty       provider.RoyaltyLookup
	EscrowUC      escrow.UseCase
	MarketplaceUC marketplace.UseCase
}

type impl struct {
	payment       provider.PaymentTransfer
	royalty       provider.RoyaltyLookup
	escrowUC      escrow.UseCase
	marketplaceUC marketplace.UseCase
}

func New(cfg *SettlementUseCaseCfg) settlement.UseCase {
	return &impl{
		payment:       cfg.Payment,
		royalty:       cfg.Royalty,
		escrowUC:      cfg.EscrowUC,
		marketplaceUC: cfg.MarketplaceUC,
	}
}

// Distribute splits gross in a fixed order: marketplace fee, referrer
// fee, royalties, then the receiver split or the seller. The final
// party absorbs every rounding remainder so the legs always sum to
// gross exactly.
func (im *impl) Distribute(c ctx.Ctx, l *listing.Listing, gross *big.Int, referrer domain.Address) (*settlement.Distribution, error) {
	if gross == nil || gross.Sign() <= 0 {
		return nil, domain.ErrBadParamInput
	}

	// resolve the royalty legs before any money moves so a failed
	// lookup aborts the settlement with nothing paid out
	royaltyShares, err := im.royalties(c, l, gross)
	if err != nil {
		return nil, err
	}

	dist := &settlement.Distribution{
		ListingId: l.ListingId,
		Currency:  l.Currency,
		Gross:     domain.FormatAmount(gross),
	}
	remainder := new(big.Int).Set(gross)

	marketplaceFee := domain.ApplyBPS(gross, l.MarketplaceFeeBPS)
	if marketplaceFee.Sign() > 0 {
		if err := im.marketplaceUC.AccrueFees(c, l.Currency, marketplaceFee); err != nil {
			c.WithFields(log.Fields{
				"err":       err,
				"listingId": l.ListingId,
			}).Error("failed to accrue marketplace fee")
			return nil, err
		}
		remainder.Sub(remainder, marketplaceFee)
		dist.Payouts = append(dist.Payouts, settlement.Payout{
			Amount: domain.FormatAmount(marketplaceFee),
			Reason: settlement.ReasonMarketplaceFee,
		})
	}
	dist.MarketplaceFee = domain.FormatAmount(marketplaceFee)

	if !referrer.IsEmpty() && l.ReferrerBPS > 0 {
		referrerFee := domain.ApplyBPS(gross, l.ReferrerBPS)
		if referrerFee.Sign() > 0 {
			remainder.Sub(remainder, referrerFee)
			dist.Payouts = append(dist.Payouts, im.payout(c, l, referrer, referrerFee, settlement.ReasonReferrerFee))
		}
	}

	for _, share := range royaltyShares {
		if share.Amount == nil || share.Amount.Sign() <= 0 {
			continue
		}
		remainder.Sub(remainder, share.Amount)
		dist.Payouts = append(dist.Payouts, im.payout(c, l, share.Recipient, share.Amount, settlement.ReasonRoyalty))
	}

	if remainder.Sign() < 0 {
		c.WithFields(log.Fields{
			"listingId": l.ListingId,
			"gross":     gross.String(),
		}).Error("distribution legs exceed gross")
		return nil, domain.ErrInternalServerError
	}

	if len(l.Receivers) == 0 {
		dist.Payouts = append(dist.Payouts, im.payout(c, l, l.Seller, remainder, settlement.ReasonSeller))
		return dist, nil
	}

	// pro-rata receiver split, the last receiver takes the rounding dust
	left := new(big.Int).Set(remainder)
	for i, r := range l.Receivers {
		var share *big.Int
		if i == len(l.Receivers)-1 {
			share = left
		} else {
			share = domain.ApplyBPS(remainder, r.ReceiverBPS)
			left = new(big.Int).Sub(left, share)
		}
		dist.Payouts = append(dist.Payouts, im.payout(c, l, r.Receiver, share, settlement.ReasonReceiver))
	}

	return dist, nil
}

// royalties resolves the royalty legs, honoring the creator and lazy
// mint exemptions. A failed lookup fails the settlement, the royalty
// share must never silently fall through to the seller.
func (im *impl) royalties(c ctx.Ctx, l *listing.Listing, gross *big.Int) ([]provider.RoyaltyShare, error) {
	if im.royalty == nil || l.Token.Lazy || l.Seller.Equals(l.Token.Creator) {
		return nil, nil
	}
	shares, err := im.royalty.GetRoyalty(c, l.Token, gross)
	if err != nil {
		c.WithFields(log.Fields{
			"err":       err,
			"listingId": l.ListingId,
		}).Error("royalty lookup failed")
		return nil, err
	}
	return shares, nil
}

// payout pushes one leg, falling back to the escrow ledger when the
// direct transfer fails. The leg never fails the settlement.
func (im *impl) payout(c ctx.Ctx, l *listing.Listing, to domain.Address, amount *big.Int, reason settlement.PayoutReason) settlement.Payout {
	p := settlement.Payout{
		To:     to.ToLower(),
		Amount: domain.FormatAmount(amount),
		Reason: reason,
	}
	if amount.Sign() <= 0 {
		return p
	}

	if err := im.payment.Pay(c, to, amount, l.Currency); err != nil {
		c.WithFields(log.Fields{
			"err":       err,
			"listingId": l.ListingId,
			"to":        to,
			"reason":    reason,
		}).Warn("direct payout failed, crediting escrow")
		if depErr := im.escrowUC.Deposit(c, to, l.Currency, amount); depErr != nil {
			// deposit only touches the ledger, failure means a db outage
			c.WithFields(log.Fields{
				"err":       depErr,
				"listingId": l.ListingId,
				"to":        to,
			}).Error("escrow deposit failed")
		}
		p.Escrowed = true
	}
	return p
}
