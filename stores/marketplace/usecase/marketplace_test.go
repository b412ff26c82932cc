package usecase

import (
	"errors"
	"math/big"
	"testing"
	"time"

	"github.com/stretchr/testify/mock"
	"github.com/stretchr/testify/suite"
	"github.com/x-xyz/gosale/base/ctx"
	"github.com/x-xyz/gosale/base/ptr"
	"github.com/x-xyz/gosale/domain"
	"github.com/x-xyz/gosale/domain/marketplace"
	mMarketplace "github.com/x-xyz/gosale/domain/marketplace/mocks"
	mProvider "github.com/x-xyz/gosale/domain/provider/mocks"
)

const (
	treasury = domain.Address("0x8888888888888888888888888888888888888888")
	royalty  = domain.Address("0x9999999999999999999999999999999999999999")
	weth     = domain.Address("0xc02aaa39b223fe8d0a0e5c4f27ead9083c756cc2")
)

type marketplaceSuite struct {
	suite.Suite

	repo    *mMarketplace.Repo
	payment *mProvider.PaymentTransfer

	im *impl
}

func TestMarketplaceSuite(t *testing.T) {
	suite.Run(t, new(marketplaceSuite))
}

func (s *marketplaceSuite) SetupTest() {
	s.repo = &mMarketplace.Repo{}
	s.payment = &mProvider.PaymentTransfer{}
	s.im = New(&MarketplaceUseCaseCfg{
		MarketplaceRepo: s.repo,
		Payment:         s.payment,
	}).(*impl)
	s.im.nowFn = func() time.Time { return time.Unix(1700000000, 0) }
}

func (s *marketplaceSuite) TestGetSettingsDefaults() {
	c := ctx.Background()
	s.repo.On("GetSettings", mock.Anything).Return(nil, domain.ErrNotFound)

	settings, err := s.im.GetSettings(c)
	s.Require().NoError(err)
	s.Require().True(settings.Enabled)
	s.Require().Zero(settings.MarketplaceFeeBPS)
}

func (s *marketplaceSuite) TestPatchSettingsBumpsVersion() {
	c := ctx.Background()
	s.repo.On("GetSettings", mock.Anything).
		Return(&marketplace.Settings{Enabled: true, Version: 3}, nil)
	s.repo.On("PutSettings", mock.Anything, mock.MatchedBy(func(st *marketplace.Settings) bool {
		return st.Version == 4 && st.MarketplaceFeeBPS == 250
	})).Return(nil)

	settings, err := s.im.PatchSettings(c, &marketplace.SettingsPatchable{
		MarketplaceFeeBPS: ptr.Int64(250),
	})
	s.Require().NoError(err)
	s.Require().Equal(int64(4), settings.Version)
}

func (s *marketplaceSuite) TestPatchSettingsCapsFee() {
	c := ctx.Background()
	s.repo.On("GetSettings", mock.Anything).Return(&marketplace.Settings{Enabled: true}, nil)

	_, err := s.im.PatchSettings(c, &marketplace.SettingsPatchable{
		MarketplaceFeeBPS: ptr.Int64(marketplace.MaxFeeBPS + 1),
	})
	s.Require().ErrorIs(err, domain.ErrBadParamInput)

	_, err = s.im.PatchSettings(c, &marketplace.SettingsPatchable{
		ReferrerBPS: ptr.Int64(-1),
	})
	s.Require().ErrorIs(err, domain.ErrBadParamInput)
	s.repo.AssertNotCalled(s.T(), "PutSettings", mock.Anything, mock.Anything)
}

func (s *marketplaceSuite) TestBindRoyaltyServiceOnce() {
	c := ctx.Background()
	s.repo.On("GetSettings", mock.Anything).Return(&marketplace.Settings{Enabled: true}, nil)
	s.repo.On("PutSettings", mock.Anything, mock.MatchedBy(func(st *marketplace.Settings) bool {
		return st.RoyaltyService == royalty
	})).Return(nil)

	settings, err := s.im.BindRoyaltyService(c, royalty)
	s.Require().NoError(err)
	s.Require().Equal(royalty, settings.RoyaltyService)
}

func (s *marketplaceSuite) TestBindRoyaltyServiceRejectsRebind() {
	c := ctx.Background()
	s.repo.On("GetSettings", mock.Anything).
		Return(&marketplace.Settings{Enabled: true, RoyaltyService: royalty}, nil)

	_, err := s.im.BindRoyaltyService(c, treasury)
	s.Require().ErrorIs(err, domain.ErrConflict)
}

func (s *marketplaceSuite) TestBindRoyaltyServiceRejectsEmpty() {
	c := ctx.Background()
	s.repo.On("GetSettings", mock.Anything).Return(&marketplace.Settings{Enabled: true}, nil)

	_, err := s.im.BindRoyaltyService(c, "")
	s.Require().ErrorIs(err, domain.ErrBadParamInput)
}

func (s *marketplaceSuite) TestAccrueFeesAccumulates() {
	c := ctx.Background()
	s.repo.On("GetAccrual", mock.Anything, weth).
		Return(&marketplace.Accrual{Currency: weth, Amount: "300"}, nil)
	s.repo.On("PutAccrual", mock.Anything, mock.MatchedBy(func(a *marketplace.Accrual) bool {
		return a.Amount == "800"
	})).Return(nil)

	s.Require().NoError(s.im.AccrueFees(c, weth, big.NewInt(500)))
}

func (s *marketplaceSuite) TestAccrueFeesStartsFresh() {
	c := ctx.Background()
	s.repo.On("GetAccrual", mock.Anything, weth).Return(nil, domain.ErrNotFound)
	s.repo.On("PutAccrual", mock.Anything, mock.MatchedBy(func(a *marketplace.Accrual) bool {
		return a.Amount == "500"
	})).Return(nil)

	s.Require().NoError(s.im.AccrueFees(c, weth, big.NewInt(500)))
}

func (s *marketplaceSuite) TestAccrueFeesIgnoresNonPositive() {
	c := ctx.Background()

	s.Require().NoError(s.im.AccrueFees(c, weth, nil))
	s.Require().NoError(s.im.AccrueFees(c, weth, big.NewInt(0)))
	s.repo.AssertNotCalled(s.T(), "PutAccrual", mock.Anything, mock.Anything)
}

func (s *marketplaceSuite) TestWithdrawFeesRemovesThenPays() {
	c := ctx.Background()
	s.repo.On("GetAccrual", mock.Anything, weth).
		Return(&marketplace.Accrual{Currency: weth, Amount: "800"}, nil)
	s.repo.On("RemoveAccrual", mock.Anything, weth).Return(nil)
	s.payment.On("Pay", mock.Anything, treasury, big.NewInt(800), weth).Return(nil)

	amount, err := s.im.WithdrawFees(c, treasury, weth)
	s.Require().NoError(err)
	s.Require().Equal(big.NewInt(800), amount)
}

func (s *marketplaceSuite) TestWithdrawFeesRestoresOnPayoutFailure() {
	c := ctx.Background()
	s.repo.On("GetAccrual", mock.Anything, weth).
		Return(&marketplace.Accrual{Currency: weth, Amount: "800"}, nil)
	s.repo.On("RemoveAccrual", mock.Anything, weth).Return(nil)
	payErr := errors.New("transfer reverted")
	s.payment.On("Pay", mock.Anything, treasury, big.NewInt(800), weth).Return(payErr)
	s.repo.On("PutAccrual", mock.Anything, mock.MatchedBy(func(a *marketplace.Accrual) bool {
		return a.Amount == "800"
	})).Return(nil)

	_, err := s.im.WithdrawFees(c, treasury, weth)
	s.Require().ErrorIs(err, payErr)
	s.repo.AssertCalled(s.T(), "PutAccrual", mock.Anything, mock.Anything)
}

func (s *marketplaceSuite) TestWithdrawFeesNothingAccrued() {
	c := ctx.Background()
	s.repo.On("GetAccrual", mock.Anything, weth).Return(nil, domain.ErrNotFound)

	_, err := s.im.WithdrawFees(c, treasury, weth)
	s.Require().ErrorIs(err, domain.ErrNotFound)
}
