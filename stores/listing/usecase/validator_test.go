package usecase

import (
	"testing"
	"time"

	"github.com/stretchr/testify/require"
	"github.com/x-xyz/gosale/domain"
	"github.com/x-xyz/gosale/domain/listing"
	"github.com/x-xyz/gosale/domain/marketplace"
)

func validFixedRequest() *listing.CreateRequest {
	return &listing.CreateRequest{
		Seller:        seller,
		Type:          string(listing.TypeFixedPrice),
		InitialAmount: "500",
		Currency:      weth,
		Token: listing.TokenReference{
			ChainId:  1,
			Contract: nft,
			TokenId:  "1",
			Kind:     listing.TokenKindMultiple,
		},
		TotalAvailable: 10,
		TotalPerSale:   2,
		EndTime:        3600,
	}
}

func TestBuildListingViolations(t *testing.T) {
	now := time.Unix(1700000000, 0)
	settings := &marketplace.Settings{MarketplaceFeeBPS: 500, Enabled: true}

	tests := []struct {
		name   string
		mutate func(*listing.CreateRequest)
	}{
		{
			name:   "unknown type",
			mutate: func(r *listing.CreateRequest) { r.Type = "dutch" },
		},
		{
			name:   "missing seller",
			mutate: func(r *listing.CreateRequest) { r.Seller = "" },
		},
		{
			name:   "missing currency",
			mutate: func(r *listing.CreateRequest) { r.Currency = "" },
		},
		{
			name:   "zero address seller",
			mutate: func(r *listing.CreateRequest) { r.Seller = "0x0000000000000000000000000000000000000000" },
		},
		{
			name:   "missing token contract",
			mutate: func(r *listing.CreateRequest) { r.Token.Contract = "" },
		},
		{
			name:   "missing token id",
			mutate: func(r *listing.CreateRequest) { r.Token.TokenId = "" },
		},
		{
			name:   "unknown token kind",
			mutate: func(r *listing.CreateRequest) { r.Token.Kind = "fractional" },
		},
		{
			name:   "malformed amount",
			mutate: func(r *listing.CreateRequest) { r.InitialAmount = "12.5" },
		},
		{
			name:   "zero units",
			mutate: func(r *listing.CreateRequest) { r.TotalAvailable = 0 },
		},
		{
			name:   "zero per sale",
			mutate: func(r *listing.CreateRequest) { r.TotalPerSale = 0 },
		},
		{
			name:   "available not a multiple of per sale",
			mutate: func(r *listing.CreateRequest) { r.TotalPerSale = 3 },
		},
		{
			name: "unique token with several units",
			mutate: func(r *listing.CreateRequest) {
				r.Token.Kind = listing.TokenKindUnique
			},
		},
		{
			name:   "increment over denominator",
			mutate: func(r *listing.CreateRequest) { r.MinIncrementBPS = 10001 },
		},
		{
			name:   "missing window",
			mutate: func(r *listing.CreateRequest) { r.EndTime = 0 },
		},
		{
			name: "inverted window",
			mutate: func(r *listing.CreateRequest) {
				r.StartTime = 2000
				r.EndTime = 1000
			},
		},
		{
			name: "receiver bps not summing to denominator",
			mutate: func(r *listing.CreateRequest) {
				r.Receivers = []listing.Receiver{
					{Receiver: buyer, ReceiverBPS: 6000},
					{Receiver: bidder2, ReceiverBPS: 3000},
				}
			},
		},
		{
			name: "receiver with zero share",
			mutate: func(r *listing.CreateRequest) {
				r.Receivers = []listing.Receiver{
					{Receiver: buyer, ReceiverBPS: 10000},
					{Receiver: bidder2, ReceiverBPS: 0},
				}
			},
		},
		{
			name: "fixed price with auction parameters",
			mutate: func(r *listing.CreateRequest) {
				r.MinIncrementBPS = 500
			},
		},
		{
			name: "fixed price with delivery fees",
			mutate: func(r *listing.CreateRequest) {
				r.DeliveryFees = &listing.DeliveryFees{DeliverBPS: 100}
			},
		},
		{
			name: "fixed price lazy token",
			mutate: func(r *listing.CreateRequest) {
				r.Token.Lazy = true
			},
		},
		{
			name: "fixed price without a price",
			mutate: func(r *listing.CreateRequest) {
				r.InitialAmount = "0"
			},
		},
		{
			name: "auction with several units",
			mutate: func(r *listing.CreateRequest) {
				r.Type = string(listing.TypeIndividualAuction)
				r.Token.Kind = listing.TokenKindUnique
				r.InitialAmount = "1000"
			},
		},
		{
			name: "auction on lazy token",
			mutate: func(r *listing.CreateRequest) {
				r.Type = string(listing.TypeIndividualAuction)
				r.Token.Kind = listing.TokenKindUnique
				r.Token.Lazy = true
				r.TotalAvailable = 1
				r.TotalPerSale = 1
			},
		},
		{
			name: "dynamic price with initial amount",
			mutate: func(r *listing.CreateRequest) {
				r.Type = string(listing.TypeDynamicPrice)
				r.Token.Lazy = true
				r.TotalPerSale = 1
			},
		},
		{
			name: "dynamic price without lazy token",
			mutate: func(r *listing.CreateRequest) {
				r.Type = string(listing.TypeDynamicPrice)
				r.InitialAmount = ""
				r.TotalPerSale = 1
			},
		},
		{
			name: "offers only with initial amount",
			mutate: func(r *listing.CreateRequest) {
				r.Type = string(listing.TypeOffersOnly)
				r.StartTime = now.Unix() + 100
			},
		},
		{
			name: "offers only starting in the past",
			mutate: func(r *listing.CreateRequest) {
				r.Type = string(listing.TypeOffersOnly)
				r.InitialAmount = ""
				r.StartTime = now.Unix()
			},
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			req := validFixedRequest()
			tt.mutate(req)
			_, err := buildListing(req, settings, now)
			require.ErrorIs(t, err, domain.ErrInvalidListing)
		})
	}
}

func TestBuildListingFixedPrice(t *testing.T) {
	now := time.Unix(1700000000, 0)
	settings := &marketplace.Settings{MarketplaceFeeBPS: 500, ReferrerBPS: 100, Enabled: true}

	l, err := buildListing(validFixedRequest(), settings, now)
	require.NoError(t, err)
	require.Equal(t, listing.TypeFixedPrice, l.Type)
	require.Equal(t, int64(500), l.MarketplaceFeeBPS)
	require.Equal(t, int64(100), l.ReferrerBPS)
	require.False(t, l.OffersEnabled)
	require.Equal(t, now.UTC(), l.CreatedAt)
}

func TestBuildListingOffersOnlyOpensChannel(t *testing.T) {
	now := time.Unix(1700000000, 0)
	settings := &marketplace.Settings{Enabled: true}

	req := validFixedRequest()
	req.Type = string(listing.TypeOffersOnly)
	req.InitialAmount = ""
	req.StartTime = now.Unix() + 600
	req.EndTime = now.Unix() + 7200

	l, err := buildListing(req, settings, now)
	require.NoError(t, err)
	require.True(t, l.OffersEnabled)
}

func TestBuildListingAuctionHonorsAcceptOffers(t *testing.T) {
	now := time.Unix(1700000000, 0)
	settings := &marketplace.Settings{Enabled: true}

	req := validFixedRequest()
	req.Type = string(listing.TypeIndividualAuction)
	req.Token.Kind = listing.TokenKindUnique
	req.TotalAvailable = 1
	req.TotalPerSale = 1
	req.InitialAmount = "1000"
	req.AcceptOffers = true

	l, err := buildListing(req, settings, now)
	require.NoError(t, err)
	require.True(t, l.OffersEnabled)
}
