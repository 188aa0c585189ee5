package usecase

import (
	"math/big"
	"sync"
	"time"

	"github.com/google/uuid"

	basectx "github.com/mintmarket/goapi/base/ctx"
	"github.com/mintmarket/goapi/base/log"
	"github.com/mintmarket/goapi/base/ptr"
	"github.com/mintmarket/goapi/domain"
	"github.com/mintmarket/goapi/domain/bank"
	"github.com/mintmarket/goapi/domain/event"
	"github.com/mintmarket/goapi/domain/listing"
	"github.com/mintmarket/goapi/domain/token"
	"github.com/mintmarket/goapi/service/query"
)

var timeNow = time.Now

// MarketCfg carries the marketplace deployment settings.
type MarketCfg struct {
	// Owner may adjust the fee, withdraw collected fees and cancel any
	// listing.
	Owner domain.Address
	// MarketAddress acts as the transfer caller towards registries and holds
	// collected fees in the bank ledger until withdrawal.
	MarketAddress domain.Address
}

type marketUsecaseImpl struct {
	cfg        MarketCfg
	registries map[domain.Address]token.Registry
	repo       listing.Repo
	configRepo listing.ConfigRepo
	bankRepo   bank.Repo
	eventRepo  event.Repo
	q          query.Mongo

	// mu serializes mutating operations so each transaction observes the
	// state left by the previous one.
	mu sync.Mutex
}

func NewMarketUsecase(
	cfg MarketCfg,
	registries map[domain.Address]token.Registry,
	repo listing.Repo,
	configRepo listing.ConfigRepo,
	bankRepo bank.Repo,
	eventRepo event.Repo,
	q query.Mongo,
) listing.Usecase {
	cfg.Owner = cfg.Owner.ToLower()
	cfg.MarketAddress = cfg.MarketAddress.ToLower()
	lowered := map[domain.Address]token.Registry{}
	for contract, reg := range registries {
		lowered[contract.ToLower()] = reg
	}
	return &marketUsecaseImpl{
		cfg:        cfg,
		registries: lowered,
		repo:       repo,
		configRepo: configRepo,
		bankRepo:   bankRepo,
		eventRepo:  eventRepo,
		q:          q,
	}
}

func (im *marketUsecaseImpl) registryOf(contract domain.Address) (token.Registry, error) {
	reg, ok := im.registries[contract.ToLower()]
	if !ok {
		return nil, domain.ErrBadParamInput
	}
	return reg, nil
}

func (im *marketUsecaseImpl) List(ctx basectx.Ctx, caller, contract domain.Address, tokenId domain.TokenId, price string) (domain.ListingId, error) {
	reg, err := im.registryOf(contract)
	if err != nil {
		return 0, err
	}
	id := token.Id{Contract: contract, TokenId: tokenId}.ToLower()

	im.mu.Lock()
	defer im.mu.Unlock()

	var listingId domain.ListingId
	err = im.q.RunWithTransaction(ctx, func(ctx basectx.Ctx) error {
		owner, err := reg.OwnerOf(ctx, id)
		if err != nil {
			return err
		}
		if !caller.Equals(owner) {
			return domain.ErrNotOwner
		}

		approved, err := reg.IsApprovedOrOperator(ctx, id, im.cfg.MarketAddress)
		if err != nil {
			return err
		}
		if !approved {
			return domain.ErrNotApproved
		}

		if _, err := domain.ParsePositiveAmount(price); err != nil {
			return err
		}

		indexed, err := im.repo.IndexOf(ctx, id.Contract, id.TokenId)
		if err != nil {
			return err
		}
		if !indexed.IsZero() {
			return domain.ErrAlreadyListed
		}

		listingId, err = im.repo.NextListingId(ctx)
		if err != nil {
			return err
		}

		now := timeNow().UTC()
		l := &listing.Listing{
			ListingId:    listingId,
			NftContract:  id.Contract,
			TokenId:      id.TokenId,
			Seller:       caller.ToLower(),
			Price:        price,
			DisplayPrice: domain.DisplayAmount(price),
			Active:       true,
			CreatedAt:    now,
			UpdatedAt:    now,
		}
		if err := im.repo.Insert(ctx, l); err != nil {
			return err
		}
		if err := im.repo.SetIndex(ctx, id.Contract, id.TokenId, listingId); err != nil {
			return err
		}
		return im.eventRepo.Insert(ctx, &event.Event{
			EventId:     uuid.New().String(),
			Type:        event.TypeListed,
			NftContract: id.Contract,
			TokenId:     id.TokenId,
			ListingId:   listingId,
			Seller:      l.Seller,
			Price:       price,
			Time:        now,
		})
	})
	if err != nil {
		ctx.WithFields(log.Fields{
			"caller":  caller,
			"tokenId": tokenId,
			"err":     err,
		}).Error("list failed")
		return 0, err
	}
	return listingId, nil
}

func (im *marketUsecaseImpl) Buy(ctx basectx.Ctx, caller domain.Address, id domain.ListingId, value string) error {
	im.mu.Lock()
	defer im.mu.Unlock()

	return im.q.RunWithTransaction(ctx, func(ctx basectx.Ctx) error {
		l, err := im.repo.FindOne(ctx, id)
		if err == query.ErrNotFound {
			return domain.ErrListingNotActive
		} else if err != nil {
			return err
		}
		if !l.Active {
			return domain.ErrListingNotActive
		}
		if caller.Equals(l.Seller) {
			return domain.ErrCannotBuySelf
		}

		price, err := domain.ParseAmount(l.Price)
		if err != nil {
			return err
		}
		paid, err := domain.ParseAmount(value)
		if err != nil {
			return err
		}
		if paid.Cmp(price) != 0 {
			return domain.ErrIncorrectPaymentDetail(price, paid)
		}

		reg, err := im.registryOf(l.NftContract)
		if err != nil {
			return err
		}
		tokenRef := token.Id{Contract: l.NftContract, TokenId: l.TokenId}
		owner, err := reg.OwnerOf(ctx, tokenRef)
		if err != nil {
			return err
		}
		if !owner.Equals(l.Seller) {
			return domain.ErrSellerNoLongerOwns
		}

		feeBps, err := im.configRepo.GetFee(ctx)
		if err != nil {
			return err
		}
		fee := feeBps.Cut(price)
		sellerProceeds := new(big.Int).Sub(price, fee)

		if err := im.bankRepo.Debit(ctx, caller, paid); err != nil {
			return err
		}
		if err := im.bankRepo.Credit(ctx, l.Seller, sellerProceeds); err != nil {
			return err
		}
		if err := im.bankRepo.Credit(ctx, im.cfg.MarketAddress, fee); err != nil {
			return err
		}

		if err := reg.Transfer(ctx, im.cfg.MarketAddress, l.Seller, caller, tokenRef); err != nil {
			return err
		}

		now := timeNow().UTC()
		if err := im.repo.Patch(ctx, id, listing.Patchable{
			Active:    ptr.Bool(false),
			UpdatedAt: &now,
		}); err != nil {
			return err
		}
		if err := im.repo.ClearIndex(ctx, l.NftContract, l.TokenId); err != nil {
			return err
		}
		return im.eventRepo.Insert(ctx, &event.Event{
			EventId:     uuid.New().String(),
			Type:        event.TypeSold,
			NftContract: l.NftContract,
			TokenId:     l.TokenId,
			ListingId:   id,
			Seller:      l.Seller,
			Buyer:       caller.ToLower(),
			Price:       l.Price,
			Time:        now,
		})
	})
}

func (im *marketUsecaseImpl) Cancel(ctx basectx.Ctx, caller domain.Address, id domain.ListingId) error {
	im.mu.Lock()
	defer im.mu.Unlock()

	return im.q.RunWithTransaction(ctx, func(ctx basectx.Ctx) error {
		l, err := im.repo.FindOne(ctx, id)
		if err == query.ErrNotFound {
			l = &listing.Listing{}
		} else if err != nil {
			return err
		}
		if !caller.Equals(l.Seller) && !caller.Equals(im.cfg.Owner) {
			return domain.ErrNotAuthorized
		}
		if !l.Active {
			return domain.ErrListingNotActive
		}

		now := timeNow().UTC()
		if err := im.repo.Patch(ctx, id, listing.Patchable{
			Active:    ptr.Bool(false),
			UpdatedAt: &now,
		}); err != nil {
			return err
		}
		if err := im.repo.ClearIndex(ctx, l.NftContract, l.TokenId); err != nil {
			return err
		}
		return im.eventRepo.Insert(ctx, &event.Event{
			EventId:     uuid.New().String(),
			Type:        event.TypeCancelled,
			NftContract: l.NftContract,
			TokenId:     l.TokenId,
			ListingId:   id,
			Seller:      l.Seller,
			Time:        now,
		})
	})
}

func (im *marketUsecaseImpl) UpdatePrice(ctx basectx.Ctx, caller domain.Address, id domain.ListingId, newPrice string) error {
	im.mu.Lock()
	defer im.mu.Unlock()

	return im.q.RunWithTransaction(ctx, func(ctx basectx.Ctx) error {
		l, err := im.repo.FindOne(ctx, id)
		if err == query.ErrNotFound {
			l = &listing.Listing{}
		} else if err != nil {
			return err
		}
		if !caller.Equals(l.Seller) {
			return domain.ErrNotSeller
		}
		if _, err := domain.ParsePositiveAmount(newPrice); err != nil {
			return err
		}
		if !l.Active {
			return domain.ErrListingNotActive
		}

		now := timeNow().UTC()
		if err := im.repo.Patch(ctx, id, listing.Patchable{
			Price:        &newPrice,
			DisplayPrice: ptr.String(domain.DisplayAmount(newPrice)),
			UpdatedAt:    &now,
		}); err != nil {
			return err
		}
		return im.eventRepo.Insert(ctx, &event.Event{
			EventId:     uuid.New().String(),
			Type:        event.TypePriceUpdated,
			NftContract: l.NftContract,
			TokenId:     l.TokenId,
			ListingId:   id,
			Seller:      l.Seller,
			OldPrice:    l.Price,
			NewPrice:    newPrice,
			Time:        now,
		})
	})
}

func (im *marketUsecaseImpl) UpdateFee(ctx basectx.Ctx, caller domain.Address, fee domain.FeeBps) error {
	if !caller.Equals(im.cfg.Owner) {
		return domain.ErrUnauthorized
	}
	if fee > listing.MaxFeeBps {
		return domain.ErrFeeTooHigh
	}

	im.mu.Lock()
	defer im.mu.Unlock()

	return im.q.RunWithTransaction(ctx, func(ctx basectx.Ctx) error {
		oldFee, err := im.configRepo.GetFee(ctx)
		if err != nil {
			return err
		}
		if err := im.configRepo.SetFee(ctx, fee); err != nil {
			return err
		}
		return im.eventRepo.Insert(ctx, &event.Event{
			EventId: uuid.New().String(),
			Type:    event.TypeFeeUpdated,
			OldFee:  &oldFee,
			NewFee:  &fee,
			Time:    timeNow().UTC(),
		})
	})
}

func (im *marketUsecaseImpl) WithdrawFees(ctx basectx.Ctx, caller domain.Address) (string, error) {
	if !caller.Equals(im.cfg.Owner) {
		return "", domain.ErrUnauthorized
	}

	im.mu.Lock()
	defer im.mu.Unlock()

	withdrawn := ""
	err := im.q.RunWithTransaction(ctx, func(ctx basectx.Ctx) error {
		vault, err := im.bankRepo.Balance(ctx, im.cfg.MarketAddress)
		if err != nil {
			return err
		}
		if vault.Sign() == 0 {
			return domain.ErrNoFeesToWithdraw
		}
		if err := im.bankRepo.Debit(ctx, im.cfg.MarketAddress, vault); err != nil {
			return err
		}
		if err := im.bankRepo.Credit(ctx, im.cfg.Owner, vault); err != nil {
			return err
		}
		withdrawn = vault.String()
		return nil
	})
	if err != nil {
		return "", err
	}
	return withdrawn, nil
}

func (im *marketUsecaseImpl) GetListing(ctx basectx.Ctx, id domain.ListingId) (*listing.Listing, error) {
	l, err := im.repo.FindOne(ctx, id)
	if err == query.ErrNotFound {
		return &listing.Listing{}, nil
	} else if err != nil {
		return nil, err
	}
	return l, nil
}

func (im *marketUsecaseImpl) GetAllListings(ctx basectx.Ctx, opts ...listing.FindAllOptionsFunc) ([]*listing.Listing, error) {
	return im.repo.FindAll(ctx, opts...)
}

func (im *marketUsecaseImpl) IsListed(ctx basectx.Ctx, contract domain.Address, tokenId domain.TokenId) (bool, error) {
	id, err := im.repo.IndexOf(ctx, contract, tokenId)
	if err != nil {
		return false, err
	}
	return !id.IsZero(), nil
}

func (im *marketUsecaseImpl) GetFee(ctx basectx.Ctx) (domain.FeeBps, error) {
	return im.configRepo.GetFee(ctx)
}
