package usecase

import (
	"math/big"

	"github.com/stretchr/testify/mock"
	"github.com/x-xyz/gosale/base/ctx"
	"github.com/x-xyz/gosale/domain"
	"github.com/x-xyz/gosale/domain/listing"
)

// offersListing takes offers in lots of two, four units total
func (s *engineSuite) offersListing() *listing.Listing {
	return &listing.Listing{
		ListingId: 9,
		Seller:    seller,
		Type:      listing.TypeOffersOnly,
		Currency:  weth,
		Token: listing.TokenReference{
			ChainId:  1,
			Contract: nft,
			TokenId:  "13",
			Kind:     listing.TokenKindMultiple,
			Creator:  seller,
		},
		TotalAvailable:    4,
		TotalPerSale:      2,
		StartTime:         s.now.Unix() - 3600,
		EndTime:           s.now.Unix() + 3600,
		MarketplaceFeeBPS: 500,
	}
}

func (s *engineSuite) TestMakeOfferCollectsAndUpserts() {
	c := ctx.Background()
	s.expectEnabled()
	l := s.offersListing()
	s.listingRepo.On("FindOne", mock.Anything, l.ListingId).Return(l, nil)
	s.offerRepo.On("FindOne", mock.Anything, listing.OfferId{ListingId: l.ListingId, Offerer: buyer}).
		Return(nil, domain.ErrNotFound)
	s.payment.On("Collect", mock.Anything, buyer, big.NewInt(300), weth).Return(nil)
	s.offerRepo.On("Upsert", mock.Anything, mock.Anything).Return(nil)

	offer, err := s.im.MakeOffer(c, l.ListingId, &listing.OfferRequest{Offerer: buyer, Amount: "300"})
	s.Require().NoError(err)
	s.Require().Equal(buyer, offer.Offerer)
	s.Require().Equal("300", offer.Amount)
}

func (s *engineSuite) TestMakeOfferRaiseCollectsDelta() {
	c := ctx.Background()
	s.expectEnabled()
	l := s.offersListing()
	s.listingRepo.On("FindOne", mock.Anything, l.ListingId).Return(l, nil)
	s.offerRepo.On("FindOne", mock.Anything, listing.OfferId{ListingId: l.ListingId, Offerer: buyer}).
		Return(&listing.Offer{ListingId: l.ListingId, Offerer: buyer, Amount: "300"}, nil)
	s.payment.On("Collect", mock.Anything, buyer, big.NewInt(200), weth).Return(nil)
	s.offerRepo.On("Upsert", mock.Anything, mock.Anything).Return(nil)

	offer, err := s.im.MakeOffer(c, l.ListingId, &listing.OfferRequest{Offerer: buyer, Amount: "500"})
	s.Require().NoError(err)
	s.Require().Equal("500", offer.Amount)
	s.payment.AssertCalled(s.T(), "Collect", mock.Anything, buyer, big.NewInt(200), weth)
}

func (s *engineSuite) TestMakeOfferRejectsNonRaise() {
	c := ctx.Background()
	s.expectEnabled()
	l := s.offersListing()
	s.listingRepo.On("FindOne", mock.Anything, l.ListingId).Return(l, nil)
	s.offerRepo.On("FindOne", mock.Anything, listing.OfferId{ListingId: l.ListingId, Offerer: buyer}).
		Return(&listing.Offer{ListingId: l.ListingId, Offerer: buyer, Amount: "300"}, nil)

	_, err := s.im.MakeOffer(c, l.ListingId, &listing.OfferRequest{Offerer: buyer, Amount: "300"})
	s.Require().ErrorIs(err, domain.ErrBadParamInput)
}

func (s *engineSuite) TestMakeOfferOnAuctionNeedsOpenChannel() {
	c := ctx.Background()
	s.expectEnabled()
	l := s.runningAuction()
	l.OffersEnabled = true
	l.Bid = &listing.Bid{Bidder: bidder2, Amount: "1000"}
	s.listingRepo.On("FindOne", mock.Anything, l.ListingId).Return(l, nil)

	_, err := s.im.MakeOffer(c, l.ListingId, &listing.OfferRequest{Offerer: buyer, Amount: "300"})
	s.Require().ErrorIs(err, domain.ErrBadState)
}

func (s *engineSuite) TestMakeOfferOnFixedPriceRejected() {
	c := ctx.Background()
	s.expectEnabled()
	l := s.fixedListing()
	s.listingRepo.On("FindOne", mock.Anything, l.ListingId).Return(l, nil)

	_, err := s.im.MakeOffer(c, l.ListingId, &listing.OfferRequest{Offerer: buyer, Amount: "300"})
	s.Require().ErrorIs(err, domain.ErrBadState)
}

func (s *engineSuite) TestAcceptOffersStopsAtCap() {
	c := ctx.Background()
	s.expectEnabled()
	l := s.offersListing()
	s.listingRepo.On("FindOne", mock.Anything, l.ListingId).Return(l, nil)
	s.offerRepo.On("FindOne", mock.Anything, listing.OfferId{ListingId: l.ListingId, Offerer: buyer}).
		Return(&listing.Offer{ListingId: l.ListingId, Offerer: buyer, Amount: "300"}, nil)
	s.offerRepo.On("FindOne", mock.Anything, listing.OfferId{ListingId: l.ListingId, Offerer: bidder2}).
		Return(&listing.Offer{ListingId: l.ListingId, Offerer: bidder2, Amount: "400"}, nil)
	s.offerRepo.On("Patch", mock.Anything, listing.OfferId{ListingId: l.ListingId, Offerer: buyer}, mock.Anything).Return(nil)
	s.listingRepo.On("Patch", mock.Anything, l.ListingId, mock.Anything).Return(nil)
	s.asset.On("Transfer", mock.Anything, buyer, l.Token, int64(2)).Return(nil)
	s.settlement.On("Distribute", mock.Anything, mock.Anything, big.NewInt(300), domain.Address("")).Return(nil, nil)

	got, err := s.im.AcceptOffers(c, l.ListingId, &listing.AcceptRequest{
		Seller:    seller,
		Offerers:  []domain.Address{buyer, bidder2},
		MaxAmount: "600",
	})
	s.Require().NoError(err)
	s.Require().Equal([]domain.Address{buyer}, got.Accepted)
	s.Require().Equal(big.NewInt(300), got.Total)
	s.Require().Equal(int64(2), got.Listing.TotalSold)
	s.Require().False(got.Listing.Finalized)
}

func (s *engineSuite) TestAcceptOffersFillsCapacity() {
	c := ctx.Background()
	s.expectEnabled()
	l := s.offersListing()
	s.listingRepo.On("FindOne", mock.Anything, l.ListingId).Return(l, nil)
	s.offerRepo.On("FindOne", mock.Anything, listing.OfferId{ListingId: l.ListingId, Offerer: buyer}).
		Return(&listing.Offer{ListingId: l.ListingId, Offerer: buyer, Amount: "300"}, nil)
	s.offerRepo.On("FindOne", mock.Anything, listing.OfferId{ListingId: l.ListingId, Offerer: bidder2}).
		Return(&listing.Offer{ListingId: l.ListingId, Offerer: bidder2, Amount: "400"}, nil)
	s.offerRepo.On("Patch", mock.Anything, mock.Anything, mock.Anything).Return(nil)
	s.listingRepo.On("Patch", mock.Anything, l.ListingId, mock.Anything).Return(nil)
	s.asset.On("Transfer", mock.Anything, buyer, l.Token, int64(2)).Return(nil)
	s.asset.On("Transfer", mock.Anything, bidder2, l.Token, int64(2)).Return(nil)
	s.settlement.On("Distribute", mock.Anything, mock.Anything, big.NewInt(300), domain.Address("")).Return(nil, nil)
	s.settlement.On("Distribute", mock.Anything, mock.Anything, big.NewInt(400), domain.Address("")).Return(nil, nil)

	// a third offer never gets considered once the units run out
	got, err := s.im.AcceptOffers(c, l.ListingId, &listing.AcceptRequest{
		Seller:   seller,
		Offerers: []domain.Address{buyer, bidder2, referrer},
	})
	s.Require().NoError(err)
	s.Require().Equal([]domain.Address{buyer, bidder2}, got.Accepted)
	s.Require().Equal(big.NewInt(700), got.Total)
	s.Require().True(got.Listing.Finalized)
	s.offerRepo.AssertNotCalled(s.T(), "FindOne", mock.Anything, listing.OfferId{ListingId: l.ListingId, Offerer: referrer})
}

func (s *engineSuite) TestAcceptOfferOnUniqueTokenFinalizes() {
	c := ctx.Background()
	s.expectEnabled()
	l := s.runningAuction()
	l.OffersEnabled = true
	s.listingRepo.On("FindOne", mock.Anything, l.ListingId).Return(l, nil)
	s.offerRepo.On("FindOne", mock.Anything, listing.OfferId{ListingId: l.ListingId, Offerer: buyer}).
		Return(&listing.Offer{ListingId: l.ListingId, Offerer: buyer, Amount: "900", Referrer: referrer}, nil)
	s.offerRepo.On("Patch", mock.Anything, mock.Anything, mock.Anything).Return(nil)
	s.listingRepo.On("Patch", mock.Anything, l.ListingId, mock.Anything).Return(nil)
	s.asset.On("Transfer", mock.Anything, buyer, l.Token, int64(1)).Return(nil)
	s.settlement.On("Distribute", mock.Anything, mock.Anything, big.NewInt(900), referrer).Return(nil, nil)

	got, err := s.im.AcceptOffers(c, l.ListingId, &listing.AcceptRequest{
		Seller:   seller,
		Offerers: []domain.Address{buyer},
	})
	s.Require().NoError(err)
	s.Require().True(got.Listing.Finalized)
	s.settlement.AssertCalled(s.T(), "Distribute", mock.Anything, mock.Anything, big.NewInt(900), referrer)
}

func (s *engineSuite) TestAcceptOffersNothingFitsCap() {
	c := ctx.Background()
	s.expectEnabled()
	l := s.offersListing()
	s.listingRepo.On("FindOne", mock.Anything, l.ListingId).Return(l, nil)
	s.offerRepo.On("FindOne", mock.Anything, listing.OfferId{ListingId: l.ListingId, Offerer: buyer}).
		Return(&listing.Offer{ListingId: l.ListingId, Offerer: buyer, Amount: "300"}, nil)

	got, err := s.im.AcceptOffers(c, l.ListingId, &listing.AcceptRequest{
		Seller:    seller,
		Offerers:  []domain.Address{buyer},
		MaxAmount: "200",
	})
	s.Require().NoError(err)
	s.Require().Empty(got.Accepted)
	s.Require().Zero(got.Total.Sign())
	s.listingRepo.AssertNotCalled(s.T(), "Patch", mock.Anything, mock.Anything, mock.Anything)
}

func (s *engineSuite) TestAcceptOffersRejectsAlreadyAccepted() {
	c := ctx.Background()
	s.expectEnabled()
	l := s.offersListing()
	s.listingRepo.On("FindOne", mock.Anything, l.ListingId).Return(l, nil)
	s.offerRepo.On("FindOne", mock.Anything, listing.OfferId{ListingId: l.ListingId, Offerer: buyer}).
		Return(&listing.Offer{ListingId: l.ListingId, Offerer: buyer, Amount: "300", Accepted: true}, nil)

	_, err := s.im.AcceptOffers(c, l.ListingId, &listing.AcceptRequest{
		Seller:   seller,
		Offerers: []domain.Address{buyer},
	})
	s.Require().ErrorIs(err, domain.ErrBadState)
}

func (s *engineSuite) TestAcceptOffersSellerOnly() {
	c := ctx.Background()
	s.expectEnabled()
	l := s.offersListing()
	s.listingRepo.On("FindOne", mock.Anything, l.ListingId).Return(l, nil)

	_, err := s.im.AcceptOffers(c, l.ListingId, &listing.AcceptRequest{
		Seller:   buyer,
		Offerers: []domain.Address{buyer},
	})
	s.Require().ErrorIs(err, domain.ErrNotAuthorized)
}

func (s *engineSuite) TestRescindOwnOfferInsideDelay() {
	c := ctx.Background()
	l := s.offersListing()
	l.EndTime = s.now.Unix() - 100
	s.listingRepo.On("FindOne", mock.Anything, l.ListingId).Return(l, nil)
	s.offerRepo.On("FindOne", mock.Anything, listing.OfferId{ListingId: l.ListingId, Offerer: buyer}).
		Return(&listing.Offer{ListingId: l.ListingId, Offerer: buyer, Amount: "300"}, nil)

	err := s.im.RescindOffer(c, l.ListingId, &listing.RescindRequest{Caller: buyer, Offerer: buyer})
	s.Require().ErrorIs(err, domain.ErrBadState)
}

func (s *engineSuite) TestRescindOwnOfferAfterDelay() {
	c := ctx.Background()
	l := s.offersListing()
	l.EndTime = s.now.Unix() - 24*60*60
	s.listingRepo.On("FindOne", mock.Anything, l.ListingId).Return(l, nil)
	s.offerRepo.On("FindOne", mock.Anything, listing.OfferId{ListingId: l.ListingId, Offerer: buyer}).
		Return(&listing.Offer{ListingId: l.ListingId, Offerer: buyer, Amount: "300"}, nil)
	s.offerRepo.On("Remove", mock.Anything, listing.OfferId{ListingId: l.ListingId, Offerer: buyer}).Return(nil)
	s.payment.On("Pay", mock.Anything, buyer, big.NewInt(300), weth).Return(nil)

	err := s.im.RescindOffer(c, l.ListingId, &listing.RescindRequest{Caller: buyer, Offerer: buyer})
	s.Require().NoError(err)
	s.payment.AssertCalled(s.T(), "Pay", mock.Anything, buyer, big.NewInt(300), weth)
}

func (s *engineSuite) TestRescindAcceptedOfferBlocked() {
	c := ctx.Background()
	l := s.offersListing()
	s.listingRepo.On("FindOne", mock.Anything, l.ListingId).Return(l, nil)
	s.offerRepo.On("FindOne", mock.Anything, listing.OfferId{ListingId: l.ListingId, Offerer: buyer}).
		Return(&listing.Offer{ListingId: l.ListingId, Offerer: buyer, Amount: "300", Accepted: true}, nil)

	err := s.im.RescindOffer(c, l.ListingId, &listing.RescindRequest{Caller: buyer, Offerer: buyer})
	s.Require().ErrorIs(err, domain.ErrBadState)
}

func (s *engineSuite) TestSellerForceRescindNeedsEndedListing() {
	c := ctx.Background()
	l := s.offersListing()
	s.listingRepo.On("FindOne", mock.Anything, l.ListingId).Return(l, nil)
	s.offerRepo.On("FindOne", mock.Anything, listing.OfferId{ListingId: l.ListingId, Offerer: buyer}).
		Return(&listing.Offer{ListingId: l.ListingId, Offerer: buyer, Amount: "300"}, nil)

	err := s.im.RescindOffer(c, l.ListingId, &listing.RescindRequest{Caller: seller, Offerer: buyer})
	s.Require().ErrorIs(err, domain.ErrBadState)
}

func (s *engineSuite) TestSellerForceRescindAfterEnd() {
	c := ctx.Background()
	l := s.offersListing()
	l.EndTime = s.now.Unix() - 1
	s.listingRepo.On("FindOne", mock.Anything, l.ListingId).Return(l, nil)
	s.offerRepo.On("FindOne", mock.Anything, listing.OfferId{ListingId: l.ListingId, Offerer: buyer}).
		Return(&listing.Offer{ListingId: l.ListingId, Offerer: buyer, Amount: "300"}, nil)
	s.offerRepo.On("Remove", mock.Anything, listing.OfferId{ListingId: l.ListingId, Offerer: buyer}).Return(nil)
	s.payment.On("Pay", mock.Anything, buyer, big.NewInt(300), weth).Return(nil)

	err := s.im.RescindOffer(c, l.ListingId, &listing.RescindRequest{Caller: seller, Offerer: buyer})
	s.Require().NoError(err)
}

func (s *engineSuite) TestRescindByStrangerRejected() {
	c := ctx.Background()
	l := s.offersListing()
	s.listingRepo.On("FindOne", mock.Anything, l.ListingId).Return(l, nil)
	s.offerRepo.On("FindOne", mock.Anything, listing.OfferId{ListingId: l.ListingId, Offerer: buyer}).
		Return(&listing.Offer{ListingId: l.ListingId, Offerer: buyer, Amount: "300"}, nil)

	err := s.im.RescindOffer(c, l.ListingId, &listing.RescindRequest{Caller: bidder2, Offerer: buyer})
	s.Require().ErrorIs(err, domain.ErrNotAuthorized)
}
