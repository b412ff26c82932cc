package usecase

import (
	"math/big"

	"github.com/x-xyz/gosale/base/ctx"
	"github.com/x-xyz/gosale/base/log"
	"github.com/x-xyz/gosale/base/ptr"
	"github.com/x-xyz/gosale/domain"
	"github.com/x-xyz/gosale/domain/listing"
)

// offersOpen reports whether the listing currently takes offers
func offersOpen(l *listing.Listing) bool {
	switch l.Type {
	case listing.TypeOffersOnly:
		return true
	case listing.TypeIndividualAuction:
		return l.OffersEnabled && !l.HasBid()
	}
	return false
}

func (im *impl) MakeOffer(c ctx.Ctx, id listing.Id, req *listing.OfferRequest) (*listing.Offer, error) {
	im.mu.Lock()
	defer im.mu.Unlock()

	if _, err := im.requireEnabled(c); err != nil {
		return nil, err
	}

	l, err := im.listingRepo.FindOne(c, id)
	if err != nil {
		return nil, err
	}
	if !offersOpen(l) {
		return nil, domain.ErrBadState
	}

	now := im.nowFn()
	switch l.State(now) {
	case listing.StateOpen, listing.StateActive:
	default:
		return nil, domain.ErrBadState
	}

	amount, err := domain.ParseAmount(req.Amount)
	if err != nil || amount.Sign() <= 0 {
		return nil, domain.ErrBadParamInput
	}

	if err := im.verifyIdentity(c, l, req.Offerer, req.Identity, l.TotalPerSale, amount); err != nil {
		return nil, err
	}

	// a repeat offerer raises in place, only the delta is pulled in
	collect := amount
	existing, err := im.offerRepo.FindOne(c, listing.OfferId{ListingId: id, Offerer: req.Offerer.ToLower()})
	if err == nil {
		prev, perr := existing.AmountBig()
		if perr != nil {
			c.WithFields(log.Fields{
				"err":       perr,
				"listingId": id,
			}).Error("corrupt offer amount")
			return nil, perr
		}
		collect = new(big.Int).Sub(amount, prev)
		if collect.Sign() <= 0 {
			return nil, domain.ErrBadParamInput
		}
	} else if err != domain.ErrNotFound {
		return nil, err
	}

	if err := im.payment.Collect(c, req.Offerer, collect, l.Currency); err != nil {
		c.WithFields(log.Fields{
			"err":       err,
			"listingId": id,
			"offerer":   req.Offerer,
		}).Error("offer collection failed")
		return nil, err
	}

	offer := &listing.Offer{
		ListingId: id,
		Offerer:   req.Offerer.ToLower(),
		Amount:    domain.FormatAmount(amount),
		Referrer:  req.Referrer.ToLower(),
		Timestamp: now.UTC(),
	}
	if err := im.offerRepo.Upsert(c, offer); err != nil {
		return nil, err
	}

	im.record(c, l, &listing.Activity{
		Type:     listing.ActivityTypeOffer,
		Account:  req.Offerer,
		Amount:   offer.Amount,
		Currency: l.Currency,
	})
	return offer, nil
}

// AcceptOffers settles the named offers in order while their aggregate
// stays within the cap and units remain. Unaccepted offers stay live.
func (im *impl) AcceptOffers(c ctx.Ctx, id listing.Id, req *listing.AcceptRequest) (*listing.AcceptResult, error) {
	im.mu.Lock()
	defer im.mu.Unlock()

	if _, err := im.requireEnabled(c); err != nil {
		return nil, err
	}

	l, err := im.listingRepo.FindOne(c, id)
	if err != nil {
		return nil, err
	}
	if !l.Seller.Equals(req.Seller) {
		return nil, domain.ErrNotAuthorized
	}
	if l.Finalized || !offersOpen(l) {
		return nil, domain.ErrBadState
	}

	maxAmount, err := domain.ParseAmount(req.MaxAmount)
	if err != nil {
		return nil, domain.ErrBadParamInput
	}

	type acceptance struct {
		offer  *listing.Offer
		amount *big.Int
		index  int64
	}
	var accepted []acceptance
	total := big.NewInt(0)

	remaining := l.Remaining()
	for _, offerer := range req.Offerers {
		if remaining < l.TotalPerSale {
			break
		}
		offer, err := im.offerRepo.FindOne(c, listing.OfferId{ListingId: id, Offerer: offerer.ToLower()})
		if err != nil {
			return nil, err
		}
		if offer.Accepted {
			return nil, domain.ErrBadState
		}
		amount, err := offer.AmountBig()
		if err != nil {
			c.WithFields(log.Fields{
				"err":       err,
				"listingId": id,
				"offerer":   offerer,
			}).Error("corrupt offer amount")
			return nil, err
		}
		next := new(big.Int).Add(total, amount)
		if maxAmount.Sign() > 0 && next.Cmp(maxAmount) > 0 {
			break
		}
		accepted = append(accepted, acceptance{offer, amount, l.TotalAvailable - remaining})
		total = next
		remaining -= l.TotalPerSale
	}
	if len(accepted) == 0 {
		return &listing.AcceptResult{Listing: l, Total: total}, nil
	}

	// commit listing and offer state before any transfer out
	now := im.nowFn()
	for _, a := range accepted {
		if err := im.offerRepo.Patch(c, a.offer.ToId(), listing.OfferPatchable{Accepted: ptr.Bool(true)}); err != nil {
			return nil, err
		}
	}
	l.TotalSold += int64(len(accepted)) * l.TotalPerSale
	l.OffersAccepted = true
	patch := listing.Patchable{
		TotalSold:      ptr.Int64(l.TotalSold),
		OffersAccepted: ptr.Bool(true),
		UpdatedAt:      ptr.Time(now.UTC()),
	}
	if l.Remaining() == 0 || l.Token.Kind == listing.TokenKindUnique {
		l.Finalized = true
		patch.Finalized = ptr.Bool(true)
	}
	l.UpdatedAt = now.UTC()
	if err := im.listingRepo.Patch(c, id, patch); err != nil {
		return nil, err
	}

	result := &listing.AcceptResult{Listing: l, Total: total}
	for _, a := range accepted {
		if err := im.deliver(c, l, a.offer.Offerer, l.TotalPerSale, a.amount, a.index); err != nil {
			c.WithFields(log.Fields{
				"err":       err,
				"listingId": id,
				"offerer":   a.offer.Offerer,
			}).Error("asset delivery failed for accepted offer")
			return nil, domain.ErrTransferFailed
		}
		if _, err := im.settlementUC.Distribute(c, l, a.amount, a.offer.Referrer); err != nil {
			c.WithFields(log.Fields{
				"err":       err,
				"listingId": id,
			}).Error("settlement failed")
			return nil, err
		}
		result.Accepted = append(result.Accepted, a.offer.Offerer)

		im.record(c, l, &listing.Activity{
			Type:     listing.ActivityTypeOfferAccepted,
			Account:  req.Seller,
			To:       a.offer.Offerer,
			Quantity: l.TotalPerSale,
			Amount:   a.offer.Amount,
			Currency: l.Currency,
		})
	}
	if l.Finalized {
		im.record(c, l, &listing.Activity{
			Type:    listing.ActivityTypeFinalized,
			Account: req.Seller,
		})
	}
	return result, nil
}

func (im *impl) RescindOffer(c ctx.Ctx, id listing.Id, req *listing.RescindRequest) error {
	im.mu.Lock()
	defer im.mu.Unlock()

	l, err := im.listingRepo.FindOne(c, id)
	if err != nil {
		return err
	}
	offer, err := im.offerRepo.FindOne(c, listing.OfferId{ListingId: id, Offerer: req.Offerer.ToLower()})
	if err != nil {
		return err
	}
	if offer.Accepted {
		return domain.ErrBadState
	}

	now := im.nowFn()
	switch {
	case req.Caller.Equals(req.Offerer):
		if err := im.ownRescindAllowed(l, now.Unix()); err != nil {
			return err
		}
	case req.Caller.Equals(l.Seller):
		// force-rescind of someone else's offer
		if !l.Finalized && !l.Ended(now) && !im.rescindPolicy.SellerForceBeforeEnd {
			return domain.ErrBadState
		}
	default:
		return domain.ErrNotAuthorized
	}

	amount, err := offer.AmountBig()
	if err != nil {
		c.WithFields(log.Fields{
			"err":       err,
			"listingId": id,
		}).Error("corrupt offer amount")
		return err
	}

	// delete first, refund second
	if err := im.offerRepo.Remove(c, offer.ToId()); err != nil {
		return err
	}
	im.payOrEscrow(c, offer.Offerer, amount, l.Currency)

	im.record(c, l, &listing.Activity{
		Type:     listing.ActivityTypeOfferRescinded,
		Account:  req.Caller,
		To:       offer.Offerer,
		Amount:   offer.Amount,
		Currency: l.Currency,
	})
	return nil
}

// ownRescindAllowed applies the timing rules for an offerer pulling
// back their own offer.
func (im *impl) ownRescindAllowed(l *listing.Listing, now int64) error {
	switch l.Type {
	case listing.TypeOffersOnly:
		if l.Finalized {
			return nil
		}
		if l.EndTime != 0 && now >= l.EndTime+im.rescindPolicy.OffersOnlyDelay {
			return nil
		}
		return domain.ErrBadState
	case listing.TypeIndividualAuction:
		if l.HasBid() && !l.Finalized {
			return domain.ErrBadState
		}
		return nil
	}
	return domain.ErrBadState
}
