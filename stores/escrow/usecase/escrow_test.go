package usecase

import (
	"errors"
	"math/big"
	"testing"
	"time"

	"github.com/stretchr/testify/mock"
	"github.com/stretchr/testify/suite"
	"github.com/x-xyz/gosale/base/ctx"
	"github.com/x-xyz/gosale/domain"
	"github.com/x-xyz/gosale/domain/escrow"
	mEscrow "github.com/x-xyz/gosale/domain/escrow/mocks"
	"github.com/x-xyz/gosale/domain/listing"
	mListing "github.com/x-xyz/gosale/domain/listing/mocks"
	mProvider "github.com/x-xyz/gosale/domain/provider/mocks"
)

const (
	beneficiary = domain.Address("0x2222222222222222222222222222222222222222")
	weth        = domain.Address("0xc02aaa39b223fe8d0a0e5c4f27ead9083c756cc2")
)

type escrowSuite struct {
	suite.Suite

	repo    *mEscrow.Repo
	payment *mProvider.PaymentTransfer

	im *impl
}

func TestEscrowSuite(t *testing.T) {
	suite.Run(t, new(escrowSuite))
}

func (s *escrowSuite) SetupTest() {
	s.repo = &mEscrow.Repo{}
	s.payment = &mProvider.PaymentTransfer{}
	s.im = New(&EscrowUseCaseCfg{
		EscrowRepo: s.repo,
		Payment:    s.payment,
	}).(*impl)
	s.im.nowFn = func() time.Time { return time.Unix(1700000000, 0) }
}

func (s *escrowSuite) balanceId() escrow.BalanceId {
	return escrow.BalanceId{Beneficiary: beneficiary, Currency: weth}
}

func (s *escrowSuite) TestDepositCreatesEntry() {
	c := ctx.Background()
	s.repo.On("FindOne", mock.Anything, s.balanceId()).Return(nil, domain.ErrNotFound)
	s.repo.On("Upsert", mock.Anything, mock.MatchedBy(func(b *escrow.Balance) bool {
		return b.Amount == "500" && b.Beneficiary == beneficiary
	})).Return(nil)

	err := s.im.Deposit(c, beneficiary, weth, big.NewInt(500))
	s.Require().NoError(err)
}

func (s *escrowSuite) TestDepositAccumulates() {
	c := ctx.Background()
	s.repo.On("FindOne", mock.Anything, s.balanceId()).
		Return(&escrow.Balance{Beneficiary: beneficiary, Currency: weth, Amount: "300"}, nil)
	s.repo.On("Upsert", mock.Anything, mock.MatchedBy(func(b *escrow.Balance) bool {
		return b.Amount == "800"
	})).Return(nil)

	err := s.im.Deposit(c, beneficiary, weth, big.NewInt(500))
	s.Require().NoError(err)
}

func (s *escrowSuite) TestDepositIgnoresNonPositive() {
	c := ctx.Background()

	s.Require().NoError(s.im.Deposit(c, beneficiary, weth, nil))
	s.Require().NoError(s.im.Deposit(c, beneficiary, weth, big.NewInt(0)))
	s.repo.AssertNotCalled(s.T(), "Upsert", mock.Anything, mock.Anything)
}

func (s *escrowSuite) TestWithdrawRemovesThenPays() {
	c := ctx.Background()
	s.repo.On("FindOne", mock.Anything, s.balanceId()).
		Return(&escrow.Balance{Beneficiary: beneficiary, Currency: weth, Amount: "800"}, nil)
	s.repo.On("Remove", mock.Anything, s.balanceId()).Return(nil)
	s.payment.On("Pay", mock.Anything, beneficiary, big.NewInt(800), weth).Return(nil)

	amount, err := s.im.Withdraw(c, beneficiary, weth)
	s.Require().NoError(err)
	s.Require().Equal(big.NewInt(800), amount)
}

func (s *escrowSuite) TestWithdrawNothingToClaim() {
	c := ctx.Background()
	s.repo.On("FindOne", mock.Anything, s.balanceId()).Return(nil, domain.ErrNotFound)

	_, err := s.im.Withdraw(c, beneficiary, weth)
	s.Require().ErrorIs(err, domain.ErrNotFound)
}

func (s *escrowSuite) TestWithdrawRestoresBalanceOnPayoutFailure() {
	c := ctx.Background()
	s.repo.On("FindOne", mock.Anything, s.balanceId()).
		Return(&escrow.Balance{Beneficiary: beneficiary, Currency: weth, Amount: "800"}, nil)
	s.repo.On("Remove", mock.Anything, s.balanceId()).Return(nil)
	payErr := errors.New("transfer reverted")
	s.payment.On("Pay", mock.Anything, beneficiary, big.NewInt(800), weth).Return(payErr)
	s.repo.On("Upsert", mock.Anything, mock.MatchedBy(func(b *escrow.Balance) bool {
		return b.Amount == "800"
	})).Return(nil)

	_, err := s.im.Withdraw(c, beneficiary, weth)
	s.Require().ErrorIs(err, payErr)
	s.repo.AssertCalled(s.T(), "Upsert", mock.Anything, mock.Anything)
}

func (s *escrowSuite) TestWithdrawRecordsActivity() {
	c := ctx.Background()
	activityRepo := &mListing.ActivityRepo{}
	im := New(&EscrowUseCaseCfg{
		EscrowRepo:   s.repo,
		Payment:      s.payment,
		ActivityRepo: activityRepo,
	}).(*impl)
	im.nowFn = s.im.nowFn

	s.repo.On("FindOne", mock.Anything, s.balanceId()).
		Return(&escrow.Balance{Beneficiary: beneficiary, Currency: weth, Amount: "800"}, nil)
	s.repo.On("Remove", mock.Anything, s.balanceId()).Return(nil)
	s.payment.On("Pay", mock.Anything, beneficiary, big.NewInt(800), weth).Return(nil)
	activityRepo.On("Insert", mock.Anything, mock.MatchedBy(func(a *listing.Activity) bool {
		return a.Type == listing.ActivityTypeEscrowWithdrawal &&
			a.Account == beneficiary &&
			a.Amount == "800" &&
			a.Currency == weth
	})).Return(nil)

	_, err := im.Withdraw(c, beneficiary, weth)
	s.Require().NoError(err)
	activityRepo.AssertNumberOfCalls(s.T(), "Insert", 1)
}

func (s *escrowSuite) TestGetBalances() {
	c := ctx.Background()
	balances := []*escrow.Balance{{Beneficiary: beneficiary, Currency: weth, Amount: "100"}}
	s.repo.On("FindAll", mock.Anything, beneficiary).Return(balances, nil)

	got, err := s.im.GetBalances(c, beneficiary)
	s.Require().NoError(err)
	s.Require().Equal(balances, got)
}
