package usecase

import (
	"errors"
	"math/big"

	"github.com/stretchr/testify/mock"
	"github.com/x-xyz/gosale/base/ctx"
	"github.com/x-xyz/gosale/domain"
	"github.com/x-xyz/gosale/domain/listing"
)

func (s *engineSuite) TestFirstBidBelowReserveRejected() {
	c := ctx.Background()
	s.expectEnabled()
	l := s.runningAuction()
	s.listingRepo.On("FindOne", mock.Anything, l.ListingId).Return(l, nil)

	_, err := s.im.PlaceBid(c, l.ListingId, &listing.BidRequest{Bidder: buyer, Amount: "999"})
	s.Require().ErrorIs(err, domain.ErrInsufficientPayment)
}

func (s *engineSuite) TestFirstBidAtReserveAccepted() {
	c := ctx.Background()
	s.expectEnabled()
	l := s.runningAuction()
	s.listingRepo.On("FindOne", mock.Anything, l.ListingId).Return(l, nil)
	s.payment.On("Collect", mock.Anything, buyer, big.NewInt(1000), weth).Return(nil)
	s.listingRepo.On("Patch", mock.Anything, l.ListingId, mock.Anything).Return(nil)

	got, err := s.im.PlaceBid(c, l.ListingId, &listing.BidRequest{Bidder: buyer, Amount: "1000"})
	s.Require().NoError(err)
	s.Require().True(got.HasBid())
	s.Require().Equal("1000", got.Bid.Amount)
}

func (s *engineSuite) TestChallengerMustClearIncrement() {
	c := ctx.Background()
	s.expectEnabled()
	l := s.runningAuction()
	l.Bid = &listing.Bid{Bidder: buyer, Amount: "1000"}
	s.listingRepo.On("FindOne", mock.Anything, l.ListingId).Return(l, nil)

	// 10% increment over 1000 demands at least 1100
	_, err := s.im.PlaceBid(c, l.ListingId, &listing.BidRequest{Bidder: bidder2, Amount: "1099"})
	s.Require().ErrorIs(err, domain.ErrInsufficientPayment)
}

func (s *engineSuite) TestChallengerRefundsDisplacedBidder() {
	c := ctx.Background()
	s.expectEnabled()
	l := s.runningAuction()
	l.Bid = &listing.Bid{Bidder: buyer, Amount: "1000"}
	s.listingRepo.On("FindOne", mock.Anything, l.ListingId).Return(l, nil)
	s.payment.On("Collect", mock.Anything, bidder2, big.NewInt(1100), weth).Return(nil)
	s.listingRepo.On("Patch", mock.Anything, l.ListingId, mock.Anything).Return(nil)
	s.payment.On("Pay", mock.Anything, buyer, big.NewInt(1000), weth).Return(nil)

	got, err := s.im.PlaceBid(c, l.ListingId, &listing.BidRequest{Bidder: bidder2, Amount: "1100"})
	s.Require().NoError(err)
	s.Require().Equal(bidder2, got.Bid.Bidder)
	s.payment.AssertCalled(s.T(), "Pay", mock.Anything, buyer, big.NewInt(1000), weth)
}

func (s *engineSuite) TestDisplacedBidderRefundFallsBackToEscrow() {
	c := ctx.Background()
	s.expectEnabled()
	l := s.runningAuction()
	l.Bid = &listing.Bid{Bidder: buyer, Amount: "1000"}
	s.listingRepo.On("FindOne", mock.Anything, l.ListingId).Return(l, nil)
	s.payment.On("Collect", mock.Anything, bidder2, big.NewInt(1100), weth).Return(nil)
	s.listingRepo.On("Patch", mock.Anything, l.ListingId, mock.Anything).Return(nil)
	s.payment.On("Pay", mock.Anything, buyer, big.NewInt(1000), weth).Return(errors.New("wallet rejects payment"))
	s.escrow.On("Deposit", mock.Anything, buyer, weth, big.NewInt(1000)).Return(nil)

	_, err := s.im.PlaceBid(c, l.ListingId, &listing.BidRequest{Bidder: bidder2, Amount: "1100"})
	s.Require().NoError(err)
	s.escrow.AssertCalled(s.T(), "Deposit", mock.Anything, buyer, weth, big.NewInt(1000))
}

func (s *engineSuite) TestBidInsideAntiSnipeWindowExtends() {
	c := ctx.Background()
	s.expectEnabled()
	l := s.runningAuction()
	l.EndTime = s.now.Unix() + 200 // inside the 300s window
	s.listingRepo.On("FindOne", mock.Anything, l.ListingId).Return(l, nil)
	s.payment.On("Collect", mock.Anything, buyer, big.NewInt(1000), weth).Return(nil)
	s.listingRepo.On("Patch", mock.Anything, l.ListingId, mock.Anything).Return(nil)

	got, err := s.im.PlaceBid(c, l.ListingId, &listing.BidRequest{Bidder: buyer, Amount: "1000"})
	s.Require().NoError(err)
	s.Require().Equal(s.now.Unix()+300, got.EndTime)
}

func (s *engineSuite) TestFirstBidStartsUnstartedClock() {
	c := ctx.Background()
	s.expectEnabled()
	l := s.runningAuction()
	l.StartTime = 0
	l.EndTime = 7200 // duration until the first bid lands
	s.listingRepo.On("FindOne", mock.Anything, l.ListingId).Return(l, nil)
	s.payment.On("Collect", mock.Anything, buyer, big.NewInt(1000), weth).Return(nil)
	s.listingRepo.On("Patch", mock.Anything, l.ListingId, mock.Anything).Return(nil)

	got, err := s.im.PlaceBid(c, l.ListingId, &listing.BidRequest{Bidder: buyer, Amount: "1000"})
	s.Require().NoError(err)
	s.Require().Equal(s.now.Unix(), got.StartTime)
	s.Require().Equal(s.now.Unix()+7200, got.EndTime)
}

func (s *engineSuite) TestFirstBidClosesOfferChannel() {
	c := ctx.Background()
	s.expectEnabled()
	l := s.runningAuction()
	l.OffersEnabled = true
	s.listingRepo.On("FindOne", mock.Anything, l.ListingId).Return(l, nil)
	s.payment.On("Collect", mock.Anything, buyer, big.NewInt(1000), weth).Return(nil)
	s.listingRepo.On("Patch", mock.Anything, l.ListingId, mock.Anything).Return(nil)

	got, err := s.im.PlaceBid(c, l.ListingId, &listing.BidRequest{Bidder: buyer, Amount: "1000"})
	s.Require().NoError(err)
	s.Require().False(got.OffersEnabled)
}

func (s *engineSuite) TestBidOnEndedAuctionRejected() {
	c := ctx.Background()
	s.expectEnabled()
	l := s.runningAuction()
	l.EndTime = s.now.Unix() - 1
	s.listingRepo.On("FindOne", mock.Anything, l.ListingId).Return(l, nil)

	_, err := s.im.PlaceBid(c, l.ListingId, &listing.BidRequest{Bidder: buyer, Amount: "2000"})
	s.Require().ErrorIs(err, domain.ErrBadState)
}

func (s *engineSuite) TestFinalizeWithoutBidReturnsAsset() {
	c := ctx.Background()
	l := s.runningAuction()
	l.EndTime = s.now.Unix() - 1
	s.listingRepo.On("FindOne", mock.Anything, l.ListingId).Return(l, nil)
	s.listingRepo.On("Patch", mock.Anything, l.ListingId, mock.Anything).Return(nil)
	s.asset.On("Transfer", mock.Anything, seller, l.Token, int64(1)).Return(nil)

	got, err := s.im.Finalize(c, l.ListingId, seller)
	s.Require().NoError(err)
	s.Require().True(got.Finalized)
	s.asset.AssertCalled(s.T(), "Transfer", mock.Anything, seller, l.Token, int64(1))
	s.settlement.AssertNotCalled(s.T(), "Distribute", mock.Anything, mock.Anything, mock.Anything, mock.Anything)
}

func (s *engineSuite) TestFinalizeDeliversAndSettles() {
	c := ctx.Background()
	l := s.runningAuction()
	l.EndTime = s.now.Unix() - 1
	l.Bid = &listing.Bid{Bidder: buyer, Amount: "1500", Referrer: referrer}
	s.listingRepo.On("FindOne", mock.Anything, l.ListingId).Return(l, nil)
	s.listingRepo.On("Patch", mock.Anything, l.ListingId, mock.Anything).Return(nil)
	s.asset.On("Transfer", mock.Anything, buyer, l.Token, int64(1)).Return(nil)
	s.settlement.On("Distribute", mock.Anything, mock.Anything, big.NewInt(1500), referrer).Return(nil, nil)

	got, err := s.im.Finalize(c, l.ListingId, buyer)
	s.Require().NoError(err)
	s.Require().True(got.Finalized)
	s.Require().True(got.Bid.Delivered)
	s.Require().True(got.Bid.Settled)
	s.settlement.AssertCalled(s.T(), "Distribute", mock.Anything, mock.Anything, big.NewInt(1500), referrer)
}

func (s *engineSuite) TestFinalizeBeforeEndRejected() {
	c := ctx.Background()
	l := s.runningAuction()
	l.Bid = &listing.Bid{Bidder: buyer, Amount: "1500"}
	s.listingRepo.On("FindOne", mock.Anything, l.ListingId).Return(l, nil)

	_, err := s.im.Finalize(c, l.ListingId, seller)
	s.Require().ErrorIs(err, domain.ErrBadState)
}

func (s *engineSuite) TestCollectThenFinalizeSettlesOnce() {
	c := ctx.Background()
	l := s.runningAuction()
	l.EndTime = s.now.Unix() - 1
	l.Bid = &listing.Bid{Bidder: buyer, Amount: "1500"}
	s.listingRepo.On("FindOne", mock.Anything, l.ListingId).Return(l, nil)
	s.listingRepo.On("Patch", mock.Anything, l.ListingId, mock.Anything).Return(nil)
	s.settlement.On("Distribute", mock.Anything, mock.Anything, big.NewInt(1500), domain.Address("")).Return(nil, nil)
	s.asset.On("Transfer", mock.Anything, buyer, l.Token, int64(1)).Return(nil)

	_, err := s.im.Collect(c, l.ListingId, seller)
	s.Require().NoError(err)
	s.Require().True(l.Bid.Settled)

	_, err = s.im.Finalize(c, l.ListingId, buyer)
	s.Require().NoError(err)
	s.settlement.AssertNumberOfCalls(s.T(), "Distribute", 1)
}

func (s *engineSuite) TestCollectRequiresSeller() {
	c := ctx.Background()
	l := s.runningAuction()
	l.EndTime = s.now.Unix() - 1
	l.Bid = &listing.Bid{Bidder: buyer, Amount: "1500"}
	s.listingRepo.On("FindOne", mock.Anything, l.ListingId).Return(l, nil)

	_, err := s.im.Collect(c, l.ListingId, buyer)
	s.Require().ErrorIs(err, domain.ErrNotAuthorized)
}

func (s *engineSuite) TestSellerCancelBlockedByBid() {
	c := ctx.Background()
	l := s.runningAuction()
	l.Bid = &listing.Bid{Bidder: buyer, Amount: "1500"}
	s.listingRepo.On("FindOne", mock.Anything, l.ListingId).Return(l, nil)

	_, err := s.im.Cancel(c, l.ListingId, &listing.CancelRequest{Caller: seller})
	s.Require().ErrorIs(err, domain.ErrBadState)
}

func (s *engineSuite) TestSellerCancelReturnsAsset() {
	c := ctx.Background()
	l := s.runningAuction()
	s.listingRepo.On("FindOne", mock.Anything, l.ListingId).Return(l, nil)
	s.listingRepo.On("Patch", mock.Anything, l.ListingId, mock.Anything).Return(nil)
	s.asset.On("Transfer", mock.Anything, seller, l.Token, int64(1)).Return(nil)

	got, err := s.im.Cancel(c, l.ListingId, &listing.CancelRequest{Caller: seller})
	s.Require().NoError(err)
	s.Require().True(got.Finalized)
	s.asset.AssertCalled(s.T(), "Transfer", mock.Anything, seller, l.Token, int64(1))
}

func (s *engineSuite) TestAdminCancelHoldsBackPenalty() {
	c := ctx.Background()
	l := s.runningAuction()
	l.Bid = &listing.Bid{Bidder: buyer, Amount: "1000"}
	s.listingRepo.On("FindOne", mock.Anything, l.ListingId).Return(l, nil)
	s.listingRepo.On("Patch", mock.Anything, l.ListingId, mock.Anything).Return(nil)
	s.marketplace.On("AccrueFees", mock.Anything, weth, big.NewInt(100)).Return(nil)
	s.payment.On("Pay", mock.Anything, buyer, big.NewInt(900), weth).Return(nil)
	s.asset.On("Transfer", mock.Anything, seller, l.Token, int64(1)).Return(nil)

	got, err := s.im.Cancel(c, l.ListingId, &listing.CancelRequest{
		Caller:      domain.Address("0x9999999999999999999999999999999999999999"),
		Admin:       true,
		HoldbackBPS: 1000,
	})
	s.Require().NoError(err)
	s.Require().True(got.Bid.Refunded)
	s.payment.AssertCalled(s.T(), "Pay", mock.Anything, buyer, big.NewInt(900), weth)
	s.marketplace.AssertCalled(s.T(), "AccrueFees", mock.Anything, weth, big.NewInt(100))
}

func (s *engineSuite) TestAdminCancelAfterCollectRejected() {
	c := ctx.Background()
	l := s.runningAuction()
	l.EndTime = s.now.Unix() - 1
	l.Bid = &listing.Bid{Bidder: buyer, Amount: "1000", Settled: true}
	s.listingRepo.On("FindOne", mock.Anything, l.ListingId).Return(l, nil)

	_, err := s.im.Cancel(c, l.ListingId, &listing.CancelRequest{
		Caller: domain.Address("0x9999999999999999999999999999999999999999"),
		Admin:  true,
	})
	s.Require().ErrorIs(err, domain.ErrBadState)
	s.payment.AssertNotCalled(s.T(), "Pay", mock.Anything, mock.Anything, mock.Anything, mock.Anything)
	s.listingRepo.AssertNotCalled(s.T(), "Patch", mock.Anything, mock.Anything, mock.Anything)
}

func (s *engineSuite) TestAdminCancelAfterDeliveryRejected() {
	c := ctx.Background()
	l := s.runningAuction()
	l.EndTime = s.now.Unix() - 1
	l.Bid = &listing.Bid{Bidder: buyer, Amount: "1000", Delivered: true}
	s.listingRepo.On("FindOne", mock.Anything, l.ListingId).Return(l, nil)

	_, err := s.im.Cancel(c, l.ListingId, &listing.CancelRequest{
		Caller: domain.Address("0x9999999999999999999999999999999999999999"),
		Admin:  true,
	})
	s.Require().ErrorIs(err, domain.ErrBadState)
	s.payment.AssertNotCalled(s.T(), "Pay", mock.Anything, mock.Anything, mock.Anything, mock.Anything)
}

func (s *engineSuite) TestAdminCancelRejectsExcessiveHoldback() {
	c := ctx.Background()
	l := s.runningAuction()
	s.listingRepo.On("FindOne", mock.Anything, l.ListingId).Return(l, nil)

	_, err := s.im.Cancel(c, l.ListingId, &listing.CancelRequest{
		Caller:      seller,
		Admin:       true,
		HoldbackBPS: 1001,
	})
	s.Require().ErrorIs(err, domain.ErrBadParamInput)
}

func (s *engineSuite) TestFinalizeCollectsDeliveryFees() {
	c := ctx.Background()
	l := s.runningAuction()
	l.EndTime = s.now.Unix() - 1
	l.DeliveryFees = &listing.DeliveryFees{DeliverBPS: 200, DeliverFixed: "50"}
	l.Bid = &listing.Bid{Bidder: buyer, Amount: "1000"}
	s.listingRepo.On("FindOne", mock.Anything, l.ListingId).Return(l, nil)
	s.listingRepo.On("Patch", mock.Anything, l.ListingId, mock.Anything).Return(nil)
	s.asset.On("Transfer", mock.Anything, buyer, l.Token, int64(1)).Return(nil)
	// 2% of 1000 plus the fixed 50
	s.payment.On("Collect", mock.Anything, buyer, big.NewInt(70), weth).Return(nil)
	s.marketplace.On("AccrueFees", mock.Anything, weth, big.NewInt(70)).Return(nil)
	s.settlement.On("Distribute", mock.Anything, mock.Anything, big.NewInt(1000), domain.Address("")).Return(nil, nil)

	_, err := s.im.Finalize(c, l.ListingId, buyer)
	s.Require().NoError(err)
	s.payment.AssertCalled(s.T(), "Collect", mock.Anything, buyer, big.NewInt(70), weth)
}
