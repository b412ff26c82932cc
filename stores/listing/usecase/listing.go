package usecase

import (
	"math/big"
	"sync"
	"time"

	"github.com/google/uuid"
	"github.com/viney-shih/goroutines"

	"github.com/x-xyz/gosale/base/ctx"
	"github.com/x-xyz/gosale/base/log"
	"github.com/x-xyz/gosale/base/ptr"
	"github.com/x-xyz/gosale/domain"
	"github.com/x-xyz/gosale/domain/escrow"
	"github.com/x-xyz/gosale/domain/listing"
	"github.com/x-xyz/gosale/domain/marketplace"
	"github.com/x-xyz/gosale/domain/provider"
	"github.com/x-xyz/gosale/domain/settlement"
)

type ListingUseCaseCfg struct {
	ListingRepo  listing.Repo
	OfferRepo    listing.OfferRepo
	ActivityRepo listing.ActivityRepo
	PayTokenRepo domain.PayTokenRepo

	MarketplaceUC marketplace.UseCase
	SettlementUC  settlement.UseCase
	EscrowUC      escrow.UseCase

	Asset     provider.AssetTransfer
	Payment   provider.PaymentTransfer
	Registry  provider.SellerRegistry
	Verifier  provider.IdentityVerifier
	Oracle    provider.PriceOracle
	Deliverer provider.LazyDeliverer

	Notifier      listing.Notifier
	RescindPolicy *listing.RescindPolicy
}

type impl struct {
	listingRepo  listing.Repo
	offerRepo    listing.OfferRepo
	activityRepo listing.ActivityRepo
	payTokenRepo domain.PayTokenRepo

	marketplaceUC marketplace.UseCase
	settlementUC  settlement.UseCase
	escrowUC      escrow.UseCase

	asset     provider.AssetTransfer
	payment   provider.PaymentTransfer
	registry  provider.SellerRegistry
	verifier  provider.IdentityVerifier
	oracle    provider.PriceOracle
	deliverer provider.LazyDeliverer

	notifier      listing.Notifier
	rescindPolicy listing.RescindPolicy

	// mu serializes every lifecycle operation. Each operation is one
	// atomic transaction against the listing state, concurrent callers
	// observe a deterministic total order.
	mu         sync.Mutex
	nowFn      func() time.Time
	workerPool *goroutines.Pool
}

func New(cfg *ListingUseCaseCfg) listing.UseCase {
	policy := listing.DefaultRescindPolicy()
	if cfg.RescindPolicy != nil {
		policy = *cfg.RescindPolicy
	}
	return &impl{
		listingRepo:   cfg.ListingRepo,
		offerRepo:     cfg.OfferRepo,
		activityRepo:  cfg.ActivityRepo,
		payTokenRepo:  cfg.PayTokenRepo,
		marketplaceUC: cfg.MarketplaceUC,
		settlementUC:  cfg.SettlementUC,
		escrowUC:      cfg.EscrowUC,
		asset:         cfg.Asset,
		payment:       cfg.Payment,
		registry:      cfg.Registry,
		verifier:      cfg.Verifier,
		oracle:        cfg.Oracle,
		deliverer:     cfg.Deliverer,
		notifier:      cfg.Notifier,
		rescindPolicy: policy,
		nowFn:         time.Now,
		workerPool:    goroutines.NewPool(8, goroutines.WithTaskQueueLength(256), goroutines.WithPreAllocWorkers(2)),
	}
}

func (im *impl) Create(c ctx.Ctx, req *listing.CreateRequest) (*listing.Listing, error) {
	im.mu.Lock()
	defer im.mu.Unlock()

	settings, err := im.requireEnabled(c)
	if err != nil {
		return nil, err
	}

	if !settings.SellerRegistry.IsEmpty() {
		ok, err := im.registry.IsAuthorized(c, settings.SellerRegistry, req.Seller, []byte(req.AuthorizationData))
		if err != nil {
			c.WithFields(log.Fields{
				"err":    err,
				"seller": req.Seller,
			}).Error("seller registry check failed")
			return nil, err
		}
		if !ok {
			return nil, domain.ErrNotAuthorized
		}
	}

	token, err := im.payTokenRepo.FindOne(c, req.Token.ChainId, req.Currency)
	if err == domain.ErrNotFound {
		return nil, domain.ErrInvalidCurrency
	} else if err != nil {
		return nil, err
	} else if !token.Enabled {
		return nil, domain.ErrInvalidCurrency
	}

	now := im.nowFn()
	l, err := buildListing(req, settings, now)
	if err != nil {
		return nil, err
	}

	// take custody before the listing exists; a failed pull leaves no
	// trace
	if !l.Token.Lazy {
		if err := im.asset.Custody(c, l.Seller, l.Token, l.TotalAvailable); err != nil {
			c.WithFields(log.Fields{
				"err":    err,
				"seller": l.Seller,
			}).Error("asset custody failed")
			return nil, err
		}
	}

	id, err := im.listingRepo.NextId(c)
	if err != nil {
		return nil, err
	}
	l.ListingId = id

	if err := im.listingRepo.Create(c, l); err != nil {
		return nil, err
	}

	im.record(c, l, &listing.Activity{
		Type:    listing.ActivityTypeCreated,
		Account: l.Seller,
	})
	return l, nil
}

func (im *impl) Modify(c ctx.Ctx, id listing.Id, caller domain.Address, req *listing.ModifyRequest) (*listing.Listing, error) {
	im.mu.Lock()
	defer im.mu.Unlock()

	l, err := im.listingRepo.FindOne(c, id)
	if err != nil {
		return nil, err
	}
	if !l.Seller.Equals(caller) {
		return nil, domain.ErrNotAuthorized
	}
	if l.Finalized || l.HasBid() || l.TotalSold > 0 || l.OffersAccepted {
		return nil, domain.ErrBadState
	}

	patch := listing.Patchable{}
	if req.InitialAmount != nil {
		if l.Type == listing.TypeDynamicPrice || l.Type == listing.TypeOffersOnly {
			return nil, domain.ErrBadParamInput
		}
		amount, err := domain.ParseAmount(*req.InitialAmount)
		if err != nil || amount.Sign() <= 0 {
			return nil, domain.ErrBadParamInput
		}
		patch.InitialAmount = ptr.String(domain.FormatAmount(amount))
		l.InitialAmount = *patch.InitialAmount
	}
	if req.StartTime != nil {
		patch.StartTime = req.StartTime
		l.StartTime = *req.StartTime
	}
	if req.EndTime != nil {
		patch.EndTime = req.EndTime
		l.EndTime = *req.EndTime
	}
	if l.StartTime < 0 || l.EndTime <= 0 || (l.StartTime != 0 && l.EndTime <= l.StartTime) {
		return nil, domain.ErrBadParamInput
	}

	now := im.nowFn()
	patch.UpdatedAt = ptr.Time(now.UTC())
	l.UpdatedAt = now.UTC()
	if err := im.listingRepo.Patch(c, id, patch); err != nil {
		return nil, err
	}

	im.record(c, l, &listing.Activity{
		Type:    listing.ActivityTypeModified,
		Account: caller,
	})
	return l, nil
}

func (im *impl) GetListing(c ctx.Ctx, id listing.Id) (*listing.Listing, error) {
	return im.listingRepo.FindOne(c, id)
}

func (im *impl) FindAll(c ctx.Ctx, opts ...listing.FindAllOptionsFunc) ([]*listing.Listing, error) {
	return im.listingRepo.FindAll(c, opts...)
}

func (im *impl) GetOffers(c ctx.Ctx, id listing.Id) ([]*listing.Offer, error) {
	return im.offerRepo.FindAll(c, listing.WithOfferListingId(id))
}

func (im *impl) GetActivities(c ctx.Ctx, id listing.Id, opts ...listing.ActivityFindAllOptionsFunc) ([]*listing.Activity, error) {
	opts = append(opts, listing.WithActivityListingId(id))
	return im.activityRepo.FindAll(c, opts...)
}

// requireEnabled loads the settings and rejects the operation when the
// marketplace switch is off
func (im *impl) requireEnabled(c ctx.Ctx) (*marketplace.Settings, error) {
	settings, err := im.marketplaceUC.GetSettings(c)
	if err != nil {
		return nil, err
	}
	if !settings.Enabled {
		return nil, domain.ErrMarketplaceDisabled
	}
	return settings, nil
}

// verifyIdentity consults the listing's verifier if one is configured.
// identity defaults to the acting address.
func (im *impl) verifyIdentity(c ctx.Ctx, l *listing.Listing, actor domain.Address, identity string, count int64, amount *big.Int) error {
	if l.Verifier.IsEmpty() {
		return nil
	}
	who := actor
	if identity != "" {
		who = domain.Address(identity)
	}
	ok, err := im.verifier.Verify(c, l.Verifier, &provider.VerifyRequest{
		ListingId: l.ListingId,
		Identity:  who,
		Token:     l.Token,
		Count:     count,
		Amount:    amount,
		Currency:  l.Currency,
		Data:      []byte(l.VerifierData),
	})
	if err != nil {
		c.WithFields(log.Fields{
			"err":       err,
			"listingId": l.ListingId,
			"identity":  who,
		}).Error("identity verification failed")
		return err
	}
	if !ok {
		return domain.ErrNotAuthorized
	}
	return nil
}

// payOrEscrow pushes funds out, falling back to the escrow ledger, and
// reports whether the fallback was taken. It never fails the caller.
func (im *impl) payOrEscrow(c ctx.Ctx, to domain.Address, amount *big.Int, currency domain.Address) bool {
	if amount == nil || amount.Sign() <= 0 {
		return false
	}
	if err := im.payment.Pay(c, to, amount, currency); err != nil {
		c.WithFields(log.Fields{
			"err":    err,
			"to":     to,
			"amount": amount.String(),
		}).Warn("direct refund failed, crediting escrow")
		if depErr := im.escrowUC.Deposit(c, to, currency, amount); depErr != nil {
			c.WithFields(log.Fields{
				"err": depErr,
				"to":  to,
			}).Error("escrow deposit failed")
		}
		return true
	}
	return false
}

// deliver hands count units to the recipient, through the lazy
// deliverer when the token was never custodied.
func (im *impl) deliver(c ctx.Ctx, l *listing.Listing, to domain.Address, count int64, amount *big.Int, index int64) error {
	if l.Token.Lazy {
		return im.deliverer.Deliver(c, l.ListingId, to, l.Token, count, amount, l.Currency, index)
	}
	return im.asset.Transfer(c, to, l.Token, count)
}

// record persists an activity and pushes it to the notifier off the
// operation's critical path.
func (im *impl) record(c ctx.Ctx, l *listing.Listing, act *listing.Activity) {
	act.ActivityId = uuid.NewString()
	act.ListingId = l.ListingId
	if act.Time.IsZero() {
		act.Time = im.nowFn().UTC()
	}

	snapshot := *l
	err := im.workerPool.ScheduleWithTimeout(3*time.Second, func() {
		if err := im.activityRepo.Insert(c, act); err != nil {
			c.WithFields(log.Fields{
				"err":       err,
				"listingId": act.ListingId,
				"type":      act.Type,
			}).Error("failed to record activity")
		}
		if im.notifier != nil {
			im.notifier.Notify(c, &snapshot, act)
		}
	})
	if err != nil {
		c.WithFields(log.Fields{
			"err":       err,
			"listingId": act.ListingId,
			"type":      act.Type,
		}).Warn("activity worker pool saturated")
	}
}
