package usecase

import (
	"math/big"

	"github.com/x-xyz/gosale/base/ctx"
	"github.com/x-xyz/gosale/base/log"
	"github.com/x-xyz/gosale/base/ptr"
	"github.com/x-xyz/gosale/domain"
	"github.com/x-xyz/gosale/domain/listing"
	"github.com/x-xyz/gosale/domain/marketplace"
)

func (im *impl) PlaceBid(c ctx.Ctx, id listing.Id, req *listing.BidRequest) (*listing.Listing, error) {
	im.mu.Lock()
	defer im.mu.Unlock()

	if _, err := im.requireEnabled(c); err != nil {
		return nil, err
	}

	l, err := im.listingRepo.FindOne(c, id)
	if err != nil {
		return nil, err
	}
	if l.Type != listing.TypeIndividualAuction {
		return nil, domain.ErrBadState
	}

	now := im.nowFn()
	if l.State(now) != listing.StateActive {
		return nil, domain.ErrBadState
	}

	amount, err := domain.ParseAmount(req.Amount)
	if err != nil || amount.Sign() <= 0 {
		return nil, domain.ErrBadParamInput
	}

	var prev *listing.Bid
	var prevAmount *big.Int
	if l.HasBid() {
		prev = l.Bid
		prevAmount, err = prev.AmountBig()
		if err != nil {
			c.WithFields(log.Fields{
				"err":       err,
				"listingId": id,
			}).Error("corrupt bid amount")
			return nil, err
		}
		// challenger must clear the increment, or one smallest unit
		// when no increment is configured
		min := new(big.Int).Add(prevAmount, domain.ApplyBPS(prevAmount, l.MinIncrementBPS))
		if l.MinIncrementBPS == 0 {
			min = new(big.Int).Add(prevAmount, big.NewInt(1))
		}
		if amount.Cmp(min) < 0 {
			return nil, domain.ErrInsufficientPayment
		}
	} else {
		reserve, err := l.InitialAmountBig()
		if err != nil {
			c.WithFields(log.Fields{
				"err":       err,
				"listingId": id,
			}).Error("corrupt listing amount")
			return nil, err
		}
		if amount.Cmp(reserve) < 0 {
			return nil, domain.ErrInsufficientPayment
		}
	}

	if err := im.verifyIdentity(c, l, req.Bidder, req.Identity, 1, amount); err != nil {
		return nil, err
	}

	if err := im.payment.Collect(c, req.Bidder, amount, l.Currency); err != nil {
		c.WithFields(log.Fields{
			"err":       err,
			"listingId": id,
			"bidder":    req.Bidder,
		}).Error("bid collection failed")
		return nil, err
	}

	// commit the challenger before refunding the displaced bidder
	patch := listing.Patchable{UpdatedAt: ptr.Time(now.UTC())}
	if l.StartTime == 0 {
		l.StartTime = now.Unix()
		l.EndTime = now.Unix() + l.EndTime
		patch.StartTime = ptr.Int64(l.StartTime)
		patch.EndTime = ptr.Int64(l.EndTime)
	}
	if l.ExtensionInterval > 0 && l.EndTime-now.Unix() <= l.ExtensionInterval {
		// anti-snipe window, push the close out from placement time
		l.EndTime = now.Unix() + l.ExtensionInterval
		patch.EndTime = ptr.Int64(l.EndTime)
	}
	if l.OffersEnabled {
		// the first bid permanently closes the offer channel
		l.OffersEnabled = false
		patch.OffersEnabled = ptr.Bool(false)
	}
	l.Bid = &listing.Bid{
		Bidder:    req.Bidder.ToLower(),
		Amount:    domain.FormatAmount(amount),
		Referrer:  req.Referrer.ToLower(),
		Timestamp: now.UTC(),
	}
	patch.Bid = l.Bid
	l.UpdatedAt = now.UTC()
	if err := im.listingRepo.Patch(c, id, patch); err != nil {
		return nil, err
	}

	if prev != nil {
		im.payOrEscrow(c, prev.Bidder, prevAmount, l.Currency)
	}

	im.record(c, l, &listing.Activity{
		Type:     listing.ActivityTypeBid,
		Account:  req.Bidder,
		Amount:   domain.FormatAmount(amount),
		Currency: l.Currency,
	})
	return l, nil
}

// Finalize closes an ended auction: no bid returns the asset, a bid
// delivers it and settles payment unless collect already did.
func (im *impl) Finalize(c ctx.Ctx, id listing.Id, caller domain.Address) (*listing.Listing, error) {
	im.mu.Lock()
	defer im.mu.Unlock()

	l, err := im.listingRepo.FindOne(c, id)
	if err != nil {
		return nil, err
	}
	if l.Type != listing.TypeIndividualAuction {
		return nil, domain.ErrBadState
	}

	now := im.nowFn()
	if l.Finalized || l.State(now) != listing.StateEnded {
		return nil, domain.ErrBadState
	}

	settleNow := false
	patch := listing.Patchable{
		Finalized: ptr.Bool(true),
		UpdatedAt: ptr.Time(now.UTC()),
	}
	if l.HasBid() {
		settleNow = !l.Bid.Settled
		l.Bid.Delivered = true
		l.Bid.Settled = true
		patch.Bid = l.Bid
	}
	l.Finalized = true
	l.UpdatedAt = now.UTC()
	if err := im.listingRepo.Patch(c, id, patch); err != nil {
		return nil, err
	}

	if !l.HasBid() {
		if err := im.asset.Transfer(c, l.Seller, l.Token, l.TotalAvailable); err != nil {
			c.WithFields(log.Fields{
				"err":       err,
				"listingId": id,
			}).Error("failed to return asset to seller")
			return nil, domain.ErrTransferFailed
		}
		im.record(c, l, &listing.Activity{
			Type:    listing.ActivityTypeFinalized,
			Account: caller,
		})
		return l, nil
	}

	bidAmount, err := l.Bid.AmountBig()
	if err != nil {
		c.WithFields(log.Fields{
			"err":       err,
			"listingId": id,
		}).Error("corrupt bid amount")
		return nil, err
	}

	if err := im.asset.Transfer(c, l.Bid.Bidder, l.Token, l.TotalAvailable); err != nil {
		c.WithFields(log.Fields{
			"err":       err,
			"listingId": id,
			"bidder":    l.Bid.Bidder,
		}).Error("failed to deliver asset to winner")
		return nil, domain.ErrTransferFailed
	}

	im.collectDeliveryFees(c, l, bidAmount)

	if settleNow {
		if _, err := im.settlementUC.Distribute(c, l, bidAmount, l.Bid.Referrer); err != nil {
			c.WithFields(log.Fields{
				"err":       err,
				"listingId": id,
			}).Error("settlement failed")
			return nil, err
		}
	}

	im.record(c, l, &listing.Activity{
		Type:     listing.ActivityTypeFinalized,
		Account:  caller,
		To:       l.Bid.Bidder,
		Amount:   l.Bid.Amount,
		Currency: l.Currency,
	})
	return l, nil
}

// Collect lets the seller settle the winning bid before delivery. The
// settled flag keeps finalize from paying twice.
func (im *impl) Collect(c ctx.Ctx, id listing.Id, caller domain.Address) (*listing.Listing, error) {
	im.mu.Lock()
	defer im.mu.Unlock()

	l, err := im.listingRepo.FindOne(c, id)
	if err != nil {
		return nil, err
	}
	if l.Type != listing.TypeIndividualAuction {
		return nil, domain.ErrBadState
	}
	if !l.Seller.Equals(caller) {
		return nil, domain.ErrNotAuthorized
	}

	now := im.nowFn()
	if l.Finalized || l.State(now) != listing.StateEnded || !l.HasBid() || l.Bid.Settled {
		return nil, domain.ErrBadState
	}

	bidAmount, err := l.Bid.AmountBig()
	if err != nil {
		c.WithFields(log.Fields{
			"err":       err,
			"listingId": id,
		}).Error("corrupt bid amount")
		return nil, err
	}

	l.Bid.Settled = true
	l.UpdatedAt = now.UTC()
	patch := listing.Patchable{
		Bid:       l.Bid,
		UpdatedAt: ptr.Time(l.UpdatedAt),
	}
	if err := im.listingRepo.Patch(c, id, patch); err != nil {
		return nil, err
	}

	if _, err := im.settlementUC.Distribute(c, l, bidAmount, l.Bid.Referrer); err != nil {
		c.WithFields(log.Fields{
			"err":       err,
			"listingId": id,
		}).Error("settlement failed")
		return nil, err
	}
	return l, nil
}

func (im *impl) Cancel(c ctx.Ctx, id listing.Id, req *listing.CancelRequest) (*listing.Listing, error) {
	im.mu.Lock()
	defer im.mu.Unlock()

	l, err := im.listingRepo.FindOne(c, id)
	if err != nil {
		return nil, err
	}
	if l.Finalized {
		return nil, domain.ErrBadState
	}
	if l.HasBid() && (l.Bid.Settled || l.Bid.Delivered) {
		// proceeds already moved to the seller, refunding now would pay
		// the same bid twice
		return nil, domain.ErrBadState
	}

	if req.Admin {
		if req.HoldbackBPS < 0 || req.HoldbackBPS > marketplace.MaxHoldbackBPS {
			return nil, domain.ErrBadParamInput
		}
	} else {
		if !l.Seller.Equals(req.Caller) {
			return nil, domain.ErrNotAuthorized
		}
		if req.HoldbackBPS != 0 {
			return nil, domain.ErrNotAuthorized
		}
		if l.HasBid() || l.TotalSold > 0 || l.OffersAccepted {
			return nil, domain.ErrBadState
		}
	}

	now := im.nowFn()
	patch := listing.Patchable{
		Finalized: ptr.Bool(true),
		UpdatedAt: ptr.Time(now.UTC()),
	}
	if l.HasBid() {
		l.Bid.Refunded = true
		patch.Bid = l.Bid
	}
	l.Finalized = true
	l.UpdatedAt = now.UTC()
	if err := im.listingRepo.Patch(c, id, patch); err != nil {
		return nil, err
	}

	if l.HasBid() {
		bidAmount, err := l.Bid.AmountBig()
		if err == nil {
			refund := bidAmount
			if req.HoldbackBPS > 0 {
				holdback := domain.ApplyBPS(bidAmount, req.HoldbackBPS)
				refund = new(big.Int).Sub(bidAmount, holdback)
				if err := im.marketplaceUC.AccrueFees(c, l.Currency, holdback); err != nil {
					c.WithFields(log.Fields{
						"err":       err,
						"listingId": id,
					}).Error("failed to accrue holdback")
				}
			}
			im.payOrEscrow(c, l.Bid.Bidder, refund, l.Currency)
		} else {
			c.WithFields(log.Fields{
				"err":       err,
				"listingId": id,
			}).Error("corrupt bid amount, refund skipped")
		}
	}

	if !l.Token.Lazy && l.Remaining() > 0 {
		if err := im.asset.Transfer(c, l.Seller, l.Token, l.Remaining()); err != nil {
			c.WithFields(log.Fields{
				"err":       err,
				"listingId": id,
			}).Error("failed to return unsold assets")
			return nil, domain.ErrTransferFailed
		}
	}

	im.record(c, l, &listing.Activity{
		Type:    listing.ActivityTypeCancelled,
		Account: req.Caller,
	})
	return l, nil
}

// collectDeliveryFees pulls the configured delivery surcharge from the
// winning bidder and accrues it to the marketplace. A failed pull is
// logged, it never blocks finalization.
func (im *impl) collectDeliveryFees(c ctx.Ctx, l *listing.Listing, bidAmount *big.Int) {
	if l.DeliveryFees == nil || !l.HasBid() {
		return
	}
	fee := domain.ApplyBPS(bidAmount, l.DeliveryFees.DeliverBPS)
	if fixed, err := domain.ParseAmount(l.DeliveryFees.DeliverFixed); err == nil {
		fee = new(big.Int).Add(fee, fixed)
	}
	if fee.Sign() <= 0 {
		return
	}
	if err := im.payment.Collect(c, l.Bid.Bidder, fee, l.Currency); err != nil {
		c.WithFields(log.Fields{
			"err":       err,
			"listingId": l.ListingId,
			"bidder":    l.Bid.Bidder,
		}).Warn("delivery fee collection failed")
		return
	}
	if err := im.marketplaceUC.AccrueFees(c, l.Currency, fee); err != nil {
		c.WithFields(log.Fields{
			"err":       err,
			"listingId": l.ListingId,
		}).Error("failed to accrue delivery fee")
	}
}
