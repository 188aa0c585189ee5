package usecase

import (
	"errors"
	"math/big"
	"testing"

	"github.com/stretchr/testify/mock"
	"github.com/stretchr/testify/suite"

	"github.com/mintmarket/goapi/base/ctx"
	"github.com/mintmarket/goapi/domain"
	bankMocks "github.com/mintmarket/goapi/domain/bank/mocks"
	"github.com/mintmarket/goapi/domain/event"
	eventMocks "github.com/mintmarket/goapi/domain/event/mocks"
	"github.com/mintmarket/goapi/domain/listing"
	listingMocks "github.com/mintmarket/goapi/domain/listing/mocks"
	"github.com/mintmarket/goapi/domain/token"
	tokenMocks "github.com/mintmarket/goapi/domain/token/mocks"
	"github.com/mintmarket/goapi/service/query"
	queryMocks "github.com/mintmarket/goapi/service/query/mocks"
)

var (
	mockCTX = ctx.Background()

	contract      = domain.Address("0x71c7656ec7ab88b098defb751b7401b5f6d8976f")
	marketOwner   = domain.Address("0xe4e3f45f40995b9bd1d9bef90ab6bf89dd6f9518")
	marketAddress = domain.Address("0x9999999999999999999999999999999999999999")
	seller        = domain.Address("0x1111111111111111111111111111111111111111")
	buyer         = domain.Address("0x2222222222222222222222222222222222222222")

	oneEther = "1000000000000000000"
)

type marketSuite struct {
	suite.Suite

	registry   *tokenMocks.Registry
	repo       *listingMocks.Repo
	configRepo *listingMocks.ConfigRepo
	bankRepo   *bankMocks.Repo
	eventRepo  *eventMocks.Repo
	q          *queryMocks.Mongo
	im         *marketUsecaseImpl
}

func TestMarketSuite(t *testing.T) {
	suite.Run(t, new(marketSuite))
}

func (s *marketSuite) SetupTest() {
	s.registry = &tokenMocks.Registry{}
	s.repo = &listingMocks.Repo{}
	s.configRepo = &listingMocks.ConfigRepo{}
	s.bankRepo = &bankMocks.Repo{}
	s.eventRepo = &eventMocks.Repo{}
	s.q = &queryMocks.Mongo{}

	s.q.On("RunWithTransaction", mock.Anything, mock.Anything).
		Return(func(c ctx.Ctx, run func(ctx.Ctx) error) error { return run(c) }).
		Maybe()

	s.im = NewMarketUsecase(
		MarketCfg{Owner: marketOwner, MarketAddress: marketAddress},
		map[domain.Address]token.Registry{contract: s.registry},
		s.repo,
		s.configRepo,
		s.bankRepo,
		s.eventRepo,
		s.q,
	).(*marketUsecaseImpl)
}

func (s *marketSuite) TearDownTest() {
	s.registry.AssertExpectations(s.T())
	s.repo.AssertExpectations(s.T())
	s.configRepo.AssertExpectations(s.T())
	s.bankRepo.AssertExpectations(s.T())
	s.eventRepo.AssertExpectations(s.T())
	s.q.AssertExpectations(s.T())
}

func (s *marketSuite) tokenRef() token.Id {
	return token.Id{Contract: contract, TokenId: "1"}
}

func (s *marketSuite) activeListing() *listing.Listing {
	return &listing.Listing{
		ListingId:    7,
		NftContract:  contract,
		TokenId:      "1",
		Seller:       seller,
		Price:        oneEther,
		DisplayPrice: "1",
		Active:       true,
	}
}

func (s *marketSuite) TestListChecksOwnershipFirst() {
	s.registry.On("OwnerOf", mock.Anything, s.tokenRef()).Return(seller, nil).Once()

	// ownership is rejected before the invalid price is even looked at
	_, err := s.im.List(mockCTX, buyer, contract, "1", "0")
	s.True(errors.Is(err, domain.ErrNotOwner))
}

func (s *marketSuite) TestListChecksApprovalBeforePrice() {
	s.registry.On("OwnerOf", mock.Anything, s.tokenRef()).Return(seller, nil).Once()
	s.registry.On("IsApprovedOrOperator", mock.Anything, s.tokenRef(), marketAddress).Return(false, nil).Once()

	_, err := s.im.List(mockCTX, seller, contract, "1", "0")
	s.True(errors.Is(err, domain.ErrNotApproved))
}

func (s *marketSuite) TestListRejectsZeroPrice() {
	s.registry.On("OwnerOf", mock.Anything, s.tokenRef()).Return(seller, nil).Once()
	s.registry.On("IsApprovedOrOperator", mock.Anything, s.tokenRef(), marketAddress).Return(true, nil).Once()

	_, err := s.im.List(mockCTX, seller, contract, "1", "0")
	s.True(errors.Is(err, domain.ErrInvalidPrice))
}

func (s *marketSuite) TestListRejectsAlreadyListed() {
	s.registry.On("OwnerOf", mock.Anything, s.tokenRef()).Return(seller, nil).Once()
	s.registry.On("IsApprovedOrOperator", mock.Anything, s.tokenRef(), marketAddress).Return(true, nil).Once()
	s.repo.On("IndexOf", mock.Anything, contract, domain.TokenId("1")).Return(domain.ListingId(3), nil).Once()

	_, err := s.im.List(mockCTX, seller, contract, "1", oneEther)
	s.True(errors.Is(err, domain.ErrAlreadyListed))
}

func (s *marketSuite) TestListRejectsUnknownRegistry() {
	_, err := s.im.List(mockCTX, seller, "0xdeadbeef00000000000000000000000000000000", "1", oneEther)
	s.True(errors.Is(err, domain.ErrBadParamInput))
}

func (s *marketSuite) TestListSuccess() {
	s.registry.On("OwnerOf", mock.Anything, s.tokenRef()).Return(seller, nil).Once()
	s.registry.On("IsApprovedOrOperator", mock.Anything, s.tokenRef(), marketAddress).Return(true, nil).Once()
	s.repo.On("IndexOf", mock.Anything, contract, domain.TokenId("1")).Return(domain.ListingId(0), nil).Once()
	s.repo.On("NextListingId", mock.Anything).Return(domain.ListingId(1), nil).Once()
	s.repo.On("Insert", mock.Anything, mock.MatchedBy(func(l *listing.Listing) bool {
		return l.ListingId == 1 &&
			l.Seller == seller &&
			l.Price == oneEther &&
			l.DisplayPrice == "1" &&
			l.Active
	})).Return(nil).Once()
	s.repo.On("SetIndex", mock.Anything, contract, domain.TokenId("1"), domain.ListingId(1)).Return(nil).Once()
	s.eventRepo.On("Insert", mock.Anything, mock.MatchedBy(func(e *event.Event) bool {
		return e.Type == event.TypeListed && e.ListingId == 1 && e.Price == oneEther
	})).Return(nil).Once()

	id, err := s.im.List(mockCTX, seller, contract, "1", oneEther)
	s.Require().Nil(err)
	s.Equal(domain.ListingId(1), id)
}

func (s *marketSuite) TestBuySuccessSplitsFee() {
	l := s.activeListing()
	s.repo.On("FindOne", mock.Anything, domain.ListingId(7)).Return(l, nil).Once()
	s.registry.On("OwnerOf", mock.Anything, s.tokenRef()).Return(seller, nil).Once()
	s.configRepo.On("GetFee", mock.Anything).Return(listing.DefaultFeeBps, nil).Once()

	// 2.5% of 1 ether
	fee, _ := new(big.Int).SetString("25000000000000000", 10)
	proceeds, _ := new(big.Int).SetString("975000000000000000", 10)
	price, _ := new(big.Int).SetString(oneEther, 10)

	s.bankRepo.On("Debit", mock.Anything, buyer, price).Return(nil).Once()
	s.bankRepo.On("Credit", mock.Anything, seller, proceeds).Return(nil).Once()
	s.bankRepo.On("Credit", mock.Anything, marketAddress, fee).Return(nil).Once()
	s.registry.On("Transfer", mock.Anything, marketAddress, seller, buyer, s.tokenRef()).Return(nil).Once()
	s.repo.On("Patch", mock.Anything, domain.ListingId(7), mock.MatchedBy(func(p listing.Patchable) bool {
		return p.Active != nil && !*p.Active
	})).Return(nil).Once()
	s.repo.On("ClearIndex", mock.Anything, contract, domain.TokenId("1")).Return(nil).Once()
	s.eventRepo.On("Insert", mock.Anything, mock.MatchedBy(func(e *event.Event) bool {
		return e.Type == event.TypeSold && e.Buyer == buyer && e.Seller == seller && e.Price == oneEther
	})).Return(nil).Once()

	err := s.im.Buy(mockCTX, buyer, 7, oneEther)
	s.Nil(err)
}

func (s *marketSuite) TestBuyUnknownListing() {
	s.repo.On("FindOne", mock.Anything, domain.ListingId(42)).Return(nil, query.ErrNotFound).Once()

	err := s.im.Buy(mockCTX, buyer, 42, oneEther)
	s.True(errors.Is(err, domain.ErrListingNotActive))
}

func (s *marketSuite) TestBuyInactiveListing() {
	l := s.activeListing()
	l.Active = false
	s.repo.On("FindOne", mock.Anything, domain.ListingId(7)).Return(l, nil).Once()

	err := s.im.Buy(mockCTX, buyer, 7, oneEther)
	s.True(errors.Is(err, domain.ErrListingNotActive))
}

func (s *marketSuite) TestBuyOwnListing() {
	s.repo.On("FindOne", mock.Anything, domain.ListingId(7)).Return(s.activeListing(), nil).Once()

	err := s.im.Buy(mockCTX, seller, 7, oneEther)
	s.True(errors.Is(err, domain.ErrCannotBuySelf))
}

func (s *marketSuite) TestBuyRejectsInexactPayment() {
	s.repo.On("FindOne", mock.Anything, domain.ListingId(7)).Return(s.activeListing(), nil).Twice()

	err := s.im.Buy(mockCTX, buyer, 7, "999999999999999999")
	s.True(errors.Is(err, domain.ErrIncorrectPayment))

	var de *domain.Error
	s.Require().True(errors.As(err, &de))
	s.Equal(oneEther, de.Detail["expected"])
	s.Equal("999999999999999999", de.Detail["actual"])

	// overpaying is rejected just like underpaying
	err = s.im.Buy(mockCTX, buyer, 7, "1000000000000000001")
	s.True(errors.Is(err, domain.ErrIncorrectPayment))
}

func (s *marketSuite) TestBuyStaleOwnership() {
	s.repo.On("FindOne", mock.Anything, domain.ListingId(7)).Return(s.activeListing(), nil).Once()
	s.registry.On("OwnerOf", mock.Anything, s.tokenRef()).Return(buyer, nil).Once()

	err := s.im.Buy(mockCTX, buyer, 7, oneEther)
	s.True(errors.Is(err, domain.ErrSellerNoLongerOwns))
}

func (s *marketSuite) TestBuyAbortsWhenBuyerCannotPay() {
	s.repo.On("FindOne", mock.Anything, domain.ListingId(7)).Return(s.activeListing(), nil).Once()
	s.registry.On("OwnerOf", mock.Anything, s.tokenRef()).Return(seller, nil).Once()
	s.configRepo.On("GetFee", mock.Anything).Return(listing.DefaultFeeBps, nil).Once()

	price, _ := new(big.Int).SetString(oneEther, 10)
	s.bankRepo.On("Debit", mock.Anything, buyer, price).Return(domain.ErrInsufficientFunds).Once()

	err := s.im.Buy(mockCTX, buyer, 7, oneEther)
	s.True(errors.Is(err, domain.ErrInsufficientFunds))
}

func (s *marketSuite) TestCancelAuthorization() {
	s.repo.On("FindOne", mock.Anything, domain.ListingId(7)).Return(s.activeListing(), nil).Once()

	err := s.im.Cancel(mockCTX, buyer, 7)
	s.True(errors.Is(err, domain.ErrNotAuthorized))
}

func (s *marketSuite) TestCancelInactive() {
	l := s.activeListing()
	l.Active = false
	s.repo.On("FindOne", mock.Anything, domain.ListingId(7)).Return(l, nil).Once()

	err := s.im.Cancel(mockCTX, seller, 7)
	s.True(errors.Is(err, domain.ErrListingNotActive))
}

func (s *marketSuite) TestCancelByMarketOwner() {
	s.repo.On("FindOne", mock.Anything, domain.ListingId(7)).Return(s.activeListing(), nil).Once()
	s.repo.On("Patch", mock.Anything, domain.ListingId(7), mock.MatchedBy(func(p listing.Patchable) bool {
		return p.Active != nil && !*p.Active
	})).Return(nil).Once()
	s.repo.On("ClearIndex", mock.Anything, contract, domain.TokenId("1")).Return(nil).Once()
	s.eventRepo.On("Insert", mock.Anything, mock.MatchedBy(func(e *event.Event) bool {
		return e.Type == event.TypeCancelled && e.ListingId == 7
	})).Return(nil).Once()

	err := s.im.Cancel(mockCTX, marketOwner, 7)
	s.Nil(err)
}

func (s *marketSuite) TestUpdatePriceSellerOnly() {
	s.repo.On("FindOne", mock.Anything, domain.ListingId(7)).Return(s.activeListing(), nil).Once()

	err := s.im.UpdatePrice(mockCTX, marketOwner, 7, oneEther)
	s.True(errors.Is(err, domain.ErrNotSeller))
}

func (s *marketSuite) TestUpdatePriceRejectsZero() {
	s.repo.On("FindOne", mock.Anything, domain.ListingId(7)).Return(s.activeListing(), nil).Once()

	err := s.im.UpdatePrice(mockCTX, seller, 7, "0")
	s.True(errors.Is(err, domain.ErrInvalidPrice))
}

func (s *marketSuite) TestUpdatePriceSuccess() {
	newPrice := "2000000000000000000"
	s.repo.On("FindOne", mock.Anything, domain.ListingId(7)).Return(s.activeListing(), nil).Once()
	s.repo.On("Patch", mock.Anything, domain.ListingId(7), mock.MatchedBy(func(p listing.Patchable) bool {
		return p.Price != nil && *p.Price == newPrice &&
			p.DisplayPrice != nil && *p.DisplayPrice == "2"
	})).Return(nil).Once()
	s.eventRepo.On("Insert", mock.Anything, mock.MatchedBy(func(e *event.Event) bool {
		return e.Type == event.TypePriceUpdated && e.OldPrice == oneEther && e.NewPrice == newPrice
	})).Return(nil).Once()

	err := s.im.UpdatePrice(mockCTX, seller, 7, newPrice)
	s.Nil(err)
}

func (s *marketSuite) TestUpdateFee() {
	err := s.im.UpdateFee(mockCTX, seller, 500)
	s.True(errors.Is(err, domain.ErrUnauthorized))

	err = s.im.UpdateFee(mockCTX, marketOwner, listing.MaxFeeBps+1)
	s.True(errors.Is(err, domain.ErrFeeTooHigh))

	s.configRepo.On("GetFee", mock.Anything).Return(listing.DefaultFeeBps, nil).Once()
	s.configRepo.On("SetFee", mock.Anything, listing.MaxFeeBps).Return(nil).Once()
	s.eventRepo.On("Insert", mock.Anything, mock.MatchedBy(func(e *event.Event) bool {
		return e.Type == event.TypeFeeUpdated &&
			*e.OldFee == listing.DefaultFeeBps &&
			*e.NewFee == listing.MaxFeeBps
	})).Return(nil).Once()

	// the ceiling itself is accepted
	err = s.im.UpdateFee(mockCTX, marketOwner, listing.MaxFeeBps)
	s.Nil(err)
}

func (s *marketSuite) TestWithdrawFees() {
	_, err := s.im.WithdrawFees(mockCTX, seller)
	s.True(errors.Is(err, domain.ErrUnauthorized))

	s.bankRepo.On("Balance", mock.Anything, marketAddress).Return(big.NewInt(0), nil).Once()
	_, err = s.im.WithdrawFees(mockCTX, marketOwner)
	s.True(errors.Is(err, domain.ErrNoFeesToWithdraw))

	vault := big.NewInt(12345)
	s.bankRepo.On("Balance", mock.Anything, marketAddress).Return(vault, nil).Once()
	s.bankRepo.On("Debit", mock.Anything, marketAddress, vault).Return(nil).Once()
	s.bankRepo.On("Credit", mock.Anything, marketOwner, vault).Return(nil).Once()

	withdrawn, err := s.im.WithdrawFees(mockCTX, marketOwner)
	s.Require().Nil(err)
	s.Equal("12345", withdrawn)
}

func (s *marketSuite) TestGetListingUnknownId() {
	s.repo.On("FindOne", mock.Anything, domain.ListingId(42)).Return(nil, query.ErrNotFound).Once()

	l, err := s.im.GetListing(mockCTX, 42)
	s.Require().Nil(err)
	s.Equal(listing.Listing{}, *l, "unknown ids read as a zero-valued record")
}

func (s *marketSuite) TestIsListed() {
	s.repo.On("IndexOf", mock.Anything, contract, domain.TokenId("1")).Return(domain.ListingId(3), nil).Once()
	listed, err := s.im.IsListed(mockCTX, contract, "1")
	s.Nil(err)
	s.True(listed)

	s.repo.On("IndexOf", mock.Anything, contract, domain.TokenId("2")).Return(domain.ListingId(0), nil).Once()
	listed, err = s.im.IsListed(mockCTX, contract, "2")
	s.Nil(err)
	s.False(listed)
}
