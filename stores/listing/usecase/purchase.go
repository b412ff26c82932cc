package usecase

import (
	"math/big"

	"github.com/x-xyz/gosale/base/ctx"
	"github.com/x-xyz/gosale/base/log"
	"github.com/x-xyz/gosale/base/ptr"
	"github.com/x-xyz/gosale/domain"
	"github.com/x-xyz/gosale/domain/listing"
)

func (im *impl) Purchase(c ctx.Ctx, id listing.Id, req *listing.PurchaseRequest) (*listing.PurchaseResult, error) {
	im.mu.Lock()
	defer im.mu.Unlock()

	if _, err := im.requireEnabled(c); err != nil {
		return nil, err
	}

	l, err := im.listingRepo.FindOne(c, id)
	if err != nil {
		return nil, err
	}
	if l.Type != listing.TypeFixedPrice && l.Type != listing.TypeDynamicPrice {
		return nil, domain.ErrBadState
	}

	now := im.nowFn()
	if l.State(now) != listing.StateActive {
		return nil, domain.ErrBadState
	}
	if req.Count <= 0 || req.Count%l.TotalPerSale != 0 {
		return nil, domain.ErrBadParamInput
	}
	if req.Count > l.Remaining() {
		return nil, domain.ErrBadState
	}

	authorized, err := domain.ParseAmount(req.Amount)
	if err != nil {
		return nil, domain.ErrBadParamInput
	}

	var price *big.Int
	if l.Type == listing.TypeFixedPrice {
		unit, err := l.InitialAmountBig()
		if err != nil {
			c.WithFields(log.Fields{
				"err":       err,
				"listingId": id,
			}).Error("corrupt listing amount")
			return nil, err
		}
		price = new(big.Int).Mul(unit, big.NewInt(req.Count/l.TotalPerSale))
	} else {
		if price, err = im.oracle.Quote(c, l.Token, l.TotalSold, req.Count); err != nil {
			c.WithFields(log.Fields{
				"err":       err,
				"listingId": id,
			}).Error("price oracle quote failed")
			return nil, err
		}
	}
	if authorized.Cmp(price) < 0 {
		return nil, domain.ErrInsufficientPayment
	}

	if err := im.verifyIdentity(c, l, req.Buyer, req.Identity, req.Count, price); err != nil {
		return nil, err
	}

	// pull the payment in; a failed collection aborts with no state
	// change
	if err := im.payment.Collect(c, req.Buyer, price, l.Currency); err != nil {
		c.WithFields(log.Fields{
			"err":       err,
			"listingId": id,
			"buyer":     req.Buyer,
		}).Error("payment collection failed")
		return nil, err
	}

	// commit state before any transfer out
	index := l.TotalSold
	l.TotalSold += req.Count
	patch := listing.Patchable{
		TotalSold: ptr.Int64(l.TotalSold),
		UpdatedAt: ptr.Time(now.UTC()),
	}
	if l.StartTime == 0 {
		// first buyer action starts the clock, endTime held a duration
		l.StartTime = now.Unix()
		l.EndTime = now.Unix() + l.EndTime
		patch.StartTime = ptr.Int64(l.StartTime)
		patch.EndTime = ptr.Int64(l.EndTime)
	}
	if l.Remaining() == 0 {
		l.Finalized = true
		patch.Finalized = ptr.Bool(true)
	}
	l.UpdatedAt = now.UTC()
	if err := im.listingRepo.Patch(c, id, patch); err != nil {
		return nil, err
	}

	if err := im.deliver(c, l, req.Buyer, req.Count, price, index); err != nil {
		c.WithFields(log.Fields{
			"err":       err,
			"listingId": id,
			"buyer":     req.Buyer,
		}).Error("asset delivery failed after payment commit")
		return nil, domain.ErrTransferFailed
	}

	if _, err := im.settlementUC.Distribute(c, l, price, ""); err != nil {
		c.WithFields(log.Fields{
			"err":       err,
			"listingId": id,
		}).Error("settlement failed")
		return nil, err
	}

	im.record(c, l, &listing.Activity{
		Type:     listing.ActivityTypePurchase,
		Account:  req.Buyer,
		Quantity: req.Count,
		Amount:   domain.FormatAmount(price),
		Currency: l.Currency,
	})
	if l.Finalized {
		im.record(c, l, &listing.Activity{
			Type:    listing.ActivityTypeFinalized,
			Account: req.Buyer,
		})
	}

	return &listing.PurchaseResult{
		Listing: l,
		Price:   price,
		Settled: true,
	}, nil
}
