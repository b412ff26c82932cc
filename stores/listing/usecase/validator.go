package usecase

import (
	"time"

	"golang.org/x/xerrors"

	"github.com/x-xyz/gosale/domain"
	"github.com/x-xyz/gosale/domain/listing"
	"github.com/x-xyz/gosale/domain/marketplace"
)

// buildListing validates a create request against the per-type rules
// and assembles the listing, capturing the fee BPS from the live
// settings. No partial listing ever escapes: the first violated rule
// aborts with an error naming it.
func buildListing(req *listing.CreateRequest, settings *marketplace.Settings, now time.Time) (*listing.Listing, error) {
	typ, ok := listing.ToType(req.Type)
	if !ok {
		return nil, xerrors.Errorf("unknown listing type %q: %w", req.Type, domain.ErrInvalidListing)
	}

	if req.Seller.IsEmpty() {
		return nil, xerrors.Errorf("seller is required: %w", domain.ErrInvalidListing)
	}
	if req.Currency.IsEmpty() {
		return nil, xerrors.Errorf("currency is required: %w", domain.ErrInvalidListing)
	}
	if req.Token.Contract.IsEmpty() || req.Token.TokenId == "" {
		return nil, xerrors.Errorf("token reference is required: %w", domain.ErrInvalidListing)
	}
	if req.Token.Kind != listing.TokenKindUnique && req.Token.Kind != listing.TokenKindMultiple {
		return nil, xerrors.Errorf("unknown token kind %q: %w", req.Token.Kind, domain.ErrInvalidListing)
	}

	initialAmount, err := domain.ParseAmount(req.InitialAmount)
	if err != nil {
		return nil, xerrors.Errorf("malformed initialAmount: %w", domain.ErrInvalidListing)
	}
	if initialAmount.Sign() < 0 {
		return nil, xerrors.Errorf("negative initialAmount: %w", domain.ErrInvalidListing)
	}

	if req.TotalAvailable <= 0 || req.TotalPerSale <= 0 {
		return nil, xerrors.Errorf("unit counts must be positive: %w", domain.ErrInvalidListing)
	}
	if req.TotalAvailable%req.TotalPerSale != 0 {
		return nil, xerrors.Errorf("totalAvailable must be a multiple of totalPerSale: %w", domain.ErrInvalidListing)
	}
	if req.Token.Kind == listing.TokenKindUnique && req.TotalAvailable != 1 {
		return nil, xerrors.Errorf("unique tokens carry exactly one unit: %w", domain.ErrInvalidListing)
	}

	if req.MinIncrementBPS < 0 || req.MinIncrementBPS > domain.BPSDenominator {
		return nil, xerrors.Errorf("minIncrementBps out of range: %w", domain.ErrInvalidListing)
	}
	if req.ExtensionInterval < 0 {
		return nil, xerrors.Errorf("negative extensionInterval: %w", domain.ErrInvalidListing)
	}

	if req.StartTime < 0 || req.EndTime <= 0 {
		return nil, xerrors.Errorf("listing window is required: %w", domain.ErrInvalidListing)
	}
	// a zero start means the clock starts on the first buyer action and
	// endTime is a duration, otherwise the window must be ordered
	if req.StartTime != 0 && req.EndTime <= req.StartTime {
		return nil, xerrors.Errorf("endTime must follow startTime: %w", domain.ErrInvalidListing)
	}

	if len(req.Receivers) > 0 {
		sum := int64(0)
		for _, r := range req.Receivers {
			if r.Receiver.IsEmpty() || r.ReceiverBPS <= 0 {
				return nil, xerrors.Errorf("malformed receiver entry: %w", domain.ErrInvalidListing)
			}
			sum += r.ReceiverBPS
		}
		if sum != domain.BPSDenominator {
			return nil, xerrors.Errorf("receiver bps must sum to exactly %d: %w", domain.BPSDenominator, domain.ErrInvalidListing)
		}
	}

	if req.DeliveryFees != nil {
		if req.DeliveryFees.DeliverBPS < 0 || req.DeliveryFees.DeliverBPS > domain.BPSDenominator {
			return nil, xerrors.Errorf("deliverBps out of range: %w", domain.ErrInvalidListing)
		}
		if fixed, err := domain.ParseAmount(req.DeliveryFees.DeliverFixed); err != nil || fixed.Sign() < 0 {
			return nil, xerrors.Errorf("malformed deliverFixed: %w", domain.ErrInvalidListing)
		}
	}

	offersEnabled := false

	switch typ {
	case listing.TypeIndividualAuction:
		if req.TotalAvailable != 1 || req.TotalPerSale != 1 {
			return nil, xerrors.Errorf("auctions sell exactly one unit: %w", domain.ErrInvalidListing)
		}
		if req.Token.Lazy {
			return nil, xerrors.Errorf("auctions cannot sell lazy tokens: %w", domain.ErrInvalidListing)
		}
		offersEnabled = req.AcceptOffers
	case listing.TypeFixedPrice:
		if req.ExtensionInterval != 0 || req.MinIncrementBPS != 0 {
			return nil, xerrors.Errorf("fixed price listings take no auction parameters: %w", domain.ErrInvalidListing)
		}
		if req.DeliveryFees != nil {
			return nil, xerrors.Errorf("fixed price listings take no delivery fees: %w", domain.ErrInvalidListing)
		}
		if req.Token.Lazy {
			return nil, xerrors.Errorf("fixed price listings cannot sell lazy tokens: %w", domain.ErrInvalidListing)
		}
		if initialAmount.Sign() == 0 {
			return nil, xerrors.Errorf("fixed price listings require a price: %w", domain.ErrInvalidListing)
		}
	case listing.TypeDynamicPrice:
		if initialAmount.Sign() != 0 {
			return nil, xerrors.Errorf("dynamic price listings take no initialAmount: %w", domain.ErrInvalidListing)
		}
		if !req.Token.Lazy {
			return nil, xerrors.Errorf("dynamic price listings require a lazy token: %w", domain.ErrInvalidListing)
		}
		if req.TotalPerSale != 1 {
			return nil, xerrors.Errorf("dynamic price listings sell one unit per sale: %w", domain.ErrInvalidListing)
		}
		if req.ExtensionInterval != 0 || req.MinIncrementBPS != 0 || req.DeliveryFees != nil {
			return nil, xerrors.Errorf("dynamic price listings take no auction parameters: %w", domain.ErrInvalidListing)
		}
	case listing.TypeOffersOnly:
		if initialAmount.Sign() != 0 {
			return nil, xerrors.Errorf("offers-only listings take no initialAmount: %w", domain.ErrInvalidListing)
		}
		if req.StartTime <= now.Unix() {
			return nil, xerrors.Errorf("offers-only listings must start in the future: %w", domain.ErrInvalidListing)
		}
		if req.ExtensionInterval != 0 || req.MinIncrementBPS != 0 || req.DeliveryFees != nil {
			return nil, xerrors.Errorf("offers-only listings take no auction parameters: %w", domain.ErrInvalidListing)
		}
		offersEnabled = true
	}

	l := &listing.Listing{
		Seller:            req.Seller,
		Type:              typ,
		InitialAmount:     domain.FormatAmount(initialAmount),
		Currency:          req.Currency,
		Token:             req.Token,
		TotalAvailable:    req.TotalAvailable,
		TotalPerSale:      req.TotalPerSale,
		StartTime:         req.StartTime,
		EndTime:           req.EndTime,
		ExtensionInterval: req.ExtensionInterval,
		MinIncrementBPS:   req.MinIncrementBPS,
		MarketplaceFeeBPS: settings.MarketplaceFeeBPS,
		ReferrerBPS:       settings.ReferrerBPS,
		Receivers:         req.Receivers,
		DeliveryFees:      req.DeliveryFees,
		Verifier:          req.Verifier,
		VerifierData:      req.VerifierData,
		OffersEnabled:     offersEnabled,
		CreatedAt:         now.UTC(),
		UpdatedAt:         now.UTC(),
	}
	l.LowerCase()
	return l, nil
}
