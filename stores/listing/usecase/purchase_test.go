package usecase

import (
	"math/big"

	"github.com/stretchr/testify/mock"
	"github.com/x-xyz/gosale/base/ctx"
	"github.com/x-xyz/gosale/domain"
	"github.com/x-xyz/gosale/domain/listing"
)

func (s *engineSuite) TestPurchaseFixedPrice() {
	c := ctx.Background()
	s.expectEnabled()
	l := s.fixedListing()
	s.listingRepo.On("FindOne", mock.Anything, l.ListingId).Return(l, nil)
	// two sale lots of two units at 500 each
	s.payment.On("Collect", mock.Anything, buyer, big.NewInt(1000), weth).Return(nil)
	s.listingRepo.On("Patch", mock.Anything, l.ListingId, mock.Anything).Return(nil)
	s.asset.On("Transfer", mock.Anything, buyer, l.Token, int64(4)).Return(nil)
	s.settlement.On("Distribute", mock.Anything, mock.Anything, big.NewInt(1000), domain.Address("")).Return(nil, nil)

	got, err := s.im.Purchase(c, l.ListingId, &listing.PurchaseRequest{Buyer: buyer, Count: 4, Amount: "1000"})
	s.Require().NoError(err)
	s.Require().True(got.Settled)
	s.Require().Equal(big.NewInt(1000), got.Price)
	s.Require().Equal(int64(4), got.Listing.TotalSold)
	s.Require().False(got.Listing.Finalized)
}

func (s *engineSuite) TestPurchaseRejectsShortAuthorization() {
	c := ctx.Background()
	s.expectEnabled()
	l := s.fixedListing()
	s.listingRepo.On("FindOne", mock.Anything, l.ListingId).Return(l, nil)

	_, err := s.im.Purchase(c, l.ListingId, &listing.PurchaseRequest{Buyer: buyer, Count: 2, Amount: "499"})
	s.Require().ErrorIs(err, domain.ErrInsufficientPayment)
	s.payment.AssertNotCalled(s.T(), "Collect", mock.Anything, mock.Anything, mock.Anything, mock.Anything)
}

func (s *engineSuite) TestPurchaseRejectsPartialLot() {
	c := ctx.Background()
	s.expectEnabled()
	l := s.fixedListing()
	s.listingRepo.On("FindOne", mock.Anything, l.ListingId).Return(l, nil)

	_, err := s.im.Purchase(c, l.ListingId, &listing.PurchaseRequest{Buyer: buyer, Count: 3, Amount: "10000"})
	s.Require().ErrorIs(err, domain.ErrBadParamInput)
}

func (s *engineSuite) TestPurchaseRejectsOverRemaining() {
	c := ctx.Background()
	s.expectEnabled()
	l := s.fixedListing()
	l.TotalSold = 8
	s.listingRepo.On("FindOne", mock.Anything, l.ListingId).Return(l, nil)

	_, err := s.im.Purchase(c, l.ListingId, &listing.PurchaseRequest{Buyer: buyer, Count: 4, Amount: "10000"})
	s.Require().ErrorIs(err, domain.ErrBadState)
}

func (s *engineSuite) TestPurchaseSelloutFinalizes() {
	c := ctx.Background()
	s.expectEnabled()
	l := s.fixedListing()
	l.TotalSold = 8
	s.listingRepo.On("FindOne", mock.Anything, l.ListingId).Return(l, nil)
	s.payment.On("Collect", mock.Anything, buyer, big.NewInt(500), weth).Return(nil)
	s.listingRepo.On("Patch", mock.Anything, l.ListingId, mock.Anything).Return(nil)
	s.asset.On("Transfer", mock.Anything, buyer, l.Token, int64(2)).Return(nil)
	s.settlement.On("Distribute", mock.Anything, mock.Anything, big.NewInt(500), domain.Address("")).Return(nil, nil)

	got, err := s.im.Purchase(c, l.ListingId, &listing.PurchaseRequest{Buyer: buyer, Count: 2, Amount: "500"})
	s.Require().NoError(err)
	s.Require().True(got.Listing.Finalized)
}

func (s *engineSuite) TestPurchaseStartsUnstartedClock() {
	c := ctx.Background()
	s.expectEnabled()
	l := s.fixedListing()
	l.StartTime = 0
	l.EndTime = 600
	s.listingRepo.On("FindOne", mock.Anything, l.ListingId).Return(l, nil)
	s.payment.On("Collect", mock.Anything, buyer, big.NewInt(500), weth).Return(nil)
	s.listingRepo.On("Patch", mock.Anything, l.ListingId, mock.Anything).Return(nil)
	s.asset.On("Transfer", mock.Anything, buyer, l.Token, int64(2)).Return(nil)
	s.settlement.On("Distribute", mock.Anything, mock.Anything, big.NewInt(500), domain.Address("")).Return(nil, nil)

	got, err := s.im.Purchase(c, l.ListingId, &listing.PurchaseRequest{Buyer: buyer, Count: 2, Amount: "500"})
	s.Require().NoError(err)
	s.Require().Equal(s.now.Unix(), got.Listing.StartTime)
	s.Require().Equal(s.now.Unix()+600, got.Listing.EndTime)
}

func (s *engineSuite) TestPurchaseAbortsWhenCollectionFails() {
	c := ctx.Background()
	s.expectEnabled()
	l := s.fixedListing()
	s.listingRepo.On("FindOne", mock.Anything, l.ListingId).Return(l, nil)
	s.payment.On("Collect", mock.Anything, buyer, big.NewInt(500), weth).
		Return(domain.ErrInsufficientPayment)

	_, err := s.im.Purchase(c, l.ListingId, &listing.PurchaseRequest{Buyer: buyer, Count: 2, Amount: "500"})
	s.Require().ErrorIs(err, domain.ErrInsufficientPayment)
	s.listingRepo.AssertNotCalled(s.T(), "Patch", mock.Anything, mock.Anything, mock.Anything)
}

func (s *engineSuite) TestPurchaseFailedDeliveryAfterCommit() {
	c := ctx.Background()
	s.expectEnabled()
	l := s.fixedListing()
	s.listingRepo.On("FindOne", mock.Anything, l.ListingId).Return(l, nil)
	s.payment.On("Collect", mock.Anything, buyer, big.NewInt(500), weth).Return(nil)
	s.listingRepo.On("Patch", mock.Anything, l.ListingId, mock.Anything).Return(nil)
	s.asset.On("Transfer", mock.Anything, buyer, l.Token, int64(2)).
		Return(domain.ErrTransferFailed)

	_, err := s.im.Purchase(c, l.ListingId, &listing.PurchaseRequest{Buyer: buyer, Count: 2, Amount: "500"})
	s.Require().ErrorIs(err, domain.ErrTransferFailed)
	s.listingRepo.AssertCalled(s.T(), "Patch", mock.Anything, l.ListingId, mock.Anything)
}

func (s *engineSuite) TestPurchaseDynamicQuotesOracle() {
	c := ctx.Background()
	s.expectEnabled()
	l := s.fixedListing()
	l.Type = listing.TypeDynamicPrice
	l.TotalPerSale = 1
	l.TotalSold = 3
	l.Token.Lazy = true
	s.listingRepo.On("FindOne", mock.Anything, l.ListingId).Return(l, nil)
	s.oracle.On("Quote", mock.Anything, l.Token, int64(3), int64(2)).Return(big.NewInt(777), nil)
	s.payment.On("Collect", mock.Anything, buyer, big.NewInt(777), weth).Return(nil)
	s.listingRepo.On("Patch", mock.Anything, l.ListingId, mock.Anything).Return(nil)
	// lazy tokens mint at delivery, starting from the pre-sale index
	s.deliverer.On("Deliver", mock.Anything, l.ListingId, buyer, l.Token, int64(2), big.NewInt(777), weth, int64(3)).Return(nil)
	s.settlement.On("Distribute", mock.Anything, mock.Anything, big.NewInt(777), domain.Address("")).Return(nil, nil)

	got, err := s.im.Purchase(c, l.ListingId, &listing.PurchaseRequest{Buyer: buyer, Count: 2, Amount: "800"})
	s.Require().NoError(err)
	s.Require().Equal(big.NewInt(777), got.Price)
	s.asset.AssertNotCalled(s.T(), "Transfer", mock.Anything, mock.Anything, mock.Anything, mock.Anything)
}

func (s *engineSuite) TestSequentialPurchasesSellOut() {
	c := ctx.Background()
	s.expectEnabled()
	l := s.fixedListing()
	s.listingRepo.On("FindOne", mock.Anything, l.ListingId).Return(l, nil)
	s.payment.On("Collect", mock.Anything, buyer, big.NewInt(500), weth).Return(nil)
	s.listingRepo.On("Patch", mock.Anything, l.ListingId, mock.Anything).Return(nil)
	s.asset.On("Transfer", mock.Anything, buyer, l.Token, int64(2)).Return(nil)
	s.settlement.On("Distribute", mock.Anything, mock.Anything, big.NewInt(500), domain.Address("")).Return(nil, nil)

	for i := 0; i < 5; i++ {
		res, err := s.im.Purchase(c, l.ListingId, &listing.PurchaseRequest{Buyer: buyer, Count: 2, Amount: "500"})
		s.Require().NoError(err)
		s.Require().Equal(int64(2*(i+1)), res.Listing.TotalSold)
	}
	s.Require().True(l.Finalized)
	s.Require().Zero(l.Remaining())
	s.settlement.AssertNumberOfCalls(s.T(), "Distribute", 5)

	// sold out, the sixth buyer bounces off the finalized listing
	_, err := s.im.Purchase(c, l.ListingId, &listing.PurchaseRequest{Buyer: buyer, Count: 2, Amount: "500"})
	s.Require().ErrorIs(err, domain.ErrBadState)
}

func (s *engineSuite) TestPurchaseRejectsAuctionListing() {
	c := ctx.Background()
	s.expectEnabled()
	l := s.runningAuction()
	s.listingRepo.On("FindOne", mock.Anything, l.ListingId).Return(l, nil)

	_, err := s.im.Purchase(c, l.ListingId, &listing.PurchaseRequest{Buyer: buyer, Count: 1, Amount: "2000"})
	s.Require().ErrorIs(err, domain.ErrBadState)
}

func (s *engineSuite) TestPurchaseMalformedAmount() {
	c := ctx.Background()
	s.expectEnabled()
	l := s.fixedListing()
	s.listingRepo.On("FindOne", mock.Anything, l.ListingId).Return(l, nil)

	_, err := s.im.Purchase(c, l.ListingId, &listing.PurchaseRequest{Buyer: buyer, Count: 2, Amount: "1,000"})
	s.Require().ErrorIs(err, domain.ErrBadParamInput)
}
