package usecase

import (
	"strings"
	"sync"
	"time"

	"github.com/google/uuid"

	basectx "github.com/mintmarket/goapi/base/ctx"
	"github.com/mintmarket/goapi/base/log"
	"github.com/mintmarket/goapi/domain"
	"github.com/mintmarket/goapi/domain/event"
	"github.com/mintmarket/goapi/domain/token"
	"github.com/mintmarket/goapi/service/query"
)

var timeNow = time.Now

// RegistryCfg carries the per-collection settings of one token registry.
type RegistryCfg struct {
	// Contract is the collection address this registry manages.
	Contract domain.Address
	// Owner is the only address allowed to mint.
	Owner domain.Address
	// GatewayUri is prepended to bare CIDs by TokenURI.
	GatewayUri string
}

type tokenUsecaseImpl struct {
	cfg       RegistryCfg
	repo      token.Repo
	eventRepo event.Repo
	q         query.Mongo

	// mu serializes mutating operations so each transaction observes the
	// state left by the previous one.
	mu sync.Mutex
}

func NewTokenUsecase(cfg RegistryCfg, repo token.Repo, eventRepo event.Repo, q query.Mongo) token.Usecase {
	cfg.Contract = cfg.Contract.ToLower()
	cfg.Owner = cfg.Owner.ToLower()
	return &tokenUsecaseImpl{
		cfg:       cfg,
		repo:      repo,
		eventRepo: eventRepo,
		q:         q,
	}
}

func (im *tokenUsecaseImpl) newTransferEvent(from, to domain.Address, tokenId domain.TokenId) *event.Event {
	return &event.Event{
		EventId:     uuid.New().String(),
		Type:        event.TypeTransfer,
		NftContract: im.cfg.Contract,
		TokenId:     tokenId,
		From:        from.ToLower(),
		To:          to.ToLower(),
		Time:        timeNow().UTC(),
	}
}

func (im *tokenUsecaseImpl) Mint(ctx basectx.Ctx, caller, to domain.Address, uri string) (domain.TokenId, error) {
	ids, err := im.BatchMint(ctx, caller, to, []string{uri})
	if err != nil {
		return "", err
	}
	return ids[0], nil
}

func (im *tokenUsecaseImpl) BatchMint(ctx basectx.Ctx, caller, to domain.Address, uris []string) ([]domain.TokenId, error) {
	if !caller.Equals(im.cfg.Owner) {
		return nil, domain.ErrUnauthorized
	}
	if to.IsEmpty() {
		return nil, domain.ErrInvalidRecipient
	}
	if len(uris) == 0 {
		return nil, domain.ErrEmptyBatch
	}
	if len(uris) > token.BatchMintLimit {
		return nil, domain.ErrBatchTooLarge
	}
	for _, uri := range uris {
		if uri == "" {
			return nil, domain.ErrInvalidMetadata
		}
	}

	im.mu.Lock()
	defer im.mu.Unlock()

	ids := []domain.TokenId{}
	err := im.q.RunWithTransaction(ctx, func(ctx basectx.Ctx) error {
		for _, uri := range uris {
			next, err := im.repo.NextTokenId(ctx, im.cfg.Contract)
			if err != nil {
				return err
			}
			tokenId := domain.TokenIdFromUint64(next)
			t := &token.Token{
				Contract: im.cfg.Contract,
				TokenId:  tokenId,
				Owner:    to,
				TokenUri: uri,
				MintedAt: timeNow().UTC(),
			}
			if err := im.repo.Insert(ctx, t); err != nil {
				return err
			}
			if err := im.eventRepo.Insert(ctx, im.newTransferEvent(domain.EmptyAddress, to, tokenId)); err != nil {
				return err
			}
			ids = append(ids, tokenId)
		}
		return nil
	})
	if err != nil {
		ctx.WithFields(log.Fields{
			"to":  to,
			"err": err,
		}).Error("mint failed")
		return nil, err
	}
	return ids, nil
}

func (im *tokenUsecaseImpl) Burn(ctx basectx.Ctx, caller domain.Address, id token.Id) error {
	im.mu.Lock()
	defer im.mu.Unlock()

	return im.q.RunWithTransaction(ctx, func(ctx basectx.Ctx) error {
		t, err := im.repo.FindOne(ctx, id)
		if err == query.ErrNotFound {
			return domain.ErrNonexistentToken
		} else if err != nil {
			return err
		}
		if !caller.Equals(t.Owner) {
			return &domain.Error{Kind: domain.KindUnauthorized, Message: "only token owner can burn"}
		}
		if err := im.repo.Remove(ctx, id); err != nil {
			return err
		}
		return im.eventRepo.Insert(ctx, im.newTransferEvent(t.Owner, domain.EmptyAddress, t.TokenId))
	})
}

func (im *tokenUsecaseImpl) Approve(ctx basectx.Ctx, caller domain.Address, id token.Id, spender domain.Address) error {
	t, err := im.repo.FindOne(ctx, id)
	if err == query.ErrNotFound {
		return domain.ErrNonexistentToken
	} else if err != nil {
		return err
	}

	if !caller.Equals(t.Owner) {
		isOperator, err := im.repo.IsOperator(ctx, id.Contract, t.Owner, caller)
		if err != nil {
			return err
		}
		if !isOperator {
			return domain.ErrNotAuthorized
		}
	}

	return im.repo.Patch(ctx, id, token.Patchable{Approved: spender.ToLowerPtr()})
}

func (im *tokenUsecaseImpl) SetApprovalForAll(ctx basectx.Ctx, caller, operator domain.Address, approved bool) error {
	if operator.IsEmpty() || caller.Equals(operator) {
		return domain.ErrBadParamInput
	}
	return im.repo.SetOperator(ctx, &token.Operator{
		Contract: im.cfg.Contract,
		Owner:    caller,
		Operator: operator,
		Approved: approved,
	})
}

func (im *tokenUsecaseImpl) OwnerOf(ctx basectx.Ctx, id token.Id) (domain.Address, error) {
	t, err := im.repo.FindOne(ctx, id)
	if err == query.ErrNotFound {
		return "", domain.ErrNonexistentToken
	} else if err != nil {
		return "", err
	}
	return t.Owner, nil
}

func (im *tokenUsecaseImpl) IsApprovedOrOperator(ctx basectx.Ctx, id token.Id, spender domain.Address) (bool, error) {
	t, err := im.repo.FindOne(ctx, id)
	if err == query.ErrNotFound {
		return false, domain.ErrNonexistentToken
	} else if err != nil {
		return false, err
	}
	if spender.Equals(t.Owner) || (!t.Approved.IsEmpty() && spender.Equals(t.Approved)) {
		return true, nil
	}
	return im.repo.IsOperator(ctx, id.Contract, t.Owner, spender)
}

func (im *tokenUsecaseImpl) Transfer(ctx basectx.Ctx, caller, from, to domain.Address, id token.Id) error {
	if to.IsEmpty() {
		return domain.ErrInvalidRecipient
	}

	t, err := im.repo.FindOne(ctx, id)
	if err == query.ErrNotFound {
		return domain.ErrNonexistentToken
	} else if err != nil {
		return err
	}
	if !from.Equals(t.Owner) {
		return domain.ErrNotOwner
	}

	allowed, err := im.IsApprovedOrOperator(ctx, id, caller)
	if err != nil {
		return err
	}
	if !allowed {
		return domain.ErrNotApproved
	}

	// single-token approval does not survive a transfer
	empty := domain.EmptyAddress
	if err := im.repo.Patch(ctx, id, token.Patchable{Owner: to.ToLowerPtr(), Approved: &empty}); err != nil {
		return err
	}
	return im.eventRepo.Insert(ctx, im.newTransferEvent(from, to, t.TokenId))
}

func (im *tokenUsecaseImpl) TokenURI(ctx basectx.Ctx, id token.Id) (string, error) {
	t, err := im.repo.FindOne(ctx, id)
	if err == query.ErrNotFound {
		return "", domain.ErrNonexistentToken
	} else if err != nil {
		return "", err
	}
	if strings.Contains(t.TokenUri, "://") {
		return t.TokenUri, nil
	}
	return im.cfg.GatewayUri + t.TokenUri, nil
}

func (im *tokenUsecaseImpl) TotalSupply(ctx basectx.Ctx) (int, error) {
	return im.repo.Count(ctx, im.cfg.Contract)
}

func (im *tokenUsecaseImpl) Exists(ctx basectx.Ctx, id token.Id) (bool, error) {
	if _, err := im.repo.FindOne(ctx, id); err == query.ErrNotFound {
		return false, nil
	} else if err != nil {
		return false, err
	}
	return true, nil
}

func (im *tokenUsecaseImpl) FindAll(ctx basectx.Ctx, opts ...token.FindAllOptionsFunc) ([]*token.Token, error) {
	opts = append(opts, token.WithContract(im.cfg.Contract))
	return im.repo.FindAll(ctx, opts...)
}
