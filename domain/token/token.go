package token

import (
	"time"

	"github.com/mintmarket/goapi/base/ctx"
	"github.com/mintmarket/goapi/domain"
)

// BatchMintLimit caps the number of tokens minted in one batch call.
const BatchMintLimit = 50

type Id struct {
	Contract domain.Address `json:"contract" bson:"contract"`
	TokenId  domain.TokenId `json:"tokenId" bson:"tokenID"`
}

func (id Id) ToLower() Id {
	return Id{Contract: id.Contract.ToLower(), TokenId: id.TokenId}
}

// Token is the authoritative ownership/metadata record of one non-fungible
// unit. A token document exists from mint until burn; token ids are never
// reused after burn.
type Token struct {
	Contract domain.Address `json:"contract" bson:"contract"`
	TokenId  domain.TokenId `json:"tokenId" bson:"tokenID"`
	Owner    domain.Address `json:"owner" bson:"owner"`
	TokenUri string         `json:"tokenUri" bson:"tokenUri"`
	// Approved is the single-token transfer approval, cleared on transfer.
	Approved domain.Address `json:"approved" bson:"approved"`
	MintedAt time.Time      `json:"mintedAt" bson:"mintedAt"`
}

func (t *Token) ToId() Id {
	return Id{Contract: t.Contract, TokenId: t.TokenId}
}

type Patchable struct {
	Owner    *domain.Address `bson:"owner,omitempty"`
	Approved *domain.Address `bson:"approved,omitempty"`
}

// Operator is a collection-wide transfer approval from an owner to an
// operator address.
type Operator struct {
	Contract domain.Address `json:"contract" bson:"contract"`
	Owner    domain.Address `json:"owner" bson:"owner"`
	Operator domain.Address `json:"operator" bson:"operator"`
	Approved bool           `json:"approved" bson:"approved"`
}

type Repo interface {
	FindOne(c ctx.Ctx, id Id) (*Token, error)
	FindAll(c ctx.Ctx, opts ...FindAllOptionsFunc) ([]*Token, error)
	Count(c ctx.Ctx, contract domain.Address) (int, error)
	Insert(c ctx.Ctx, t *Token) error
	Patch(c ctx.Ctx, id Id, p Patchable) error
	Remove(c ctx.Ctx, id Id) error

	// NextTokenId advances the per-contract mint counter and returns the
	// newly assigned id. The counter starts at 0, so the first id is 1.
	NextTokenId(c ctx.Ctx, contract domain.Address) (uint64, error)

	SetOperator(c ctx.Ctx, op *Operator) error
	IsOperator(c ctx.Ctx, contract, owner, operator domain.Address) (bool, error)
}

// Registry is the ownership/approval surface the marketplace depends on. The
// marketplace is generic over any registry satisfying it.
type Registry interface {
	OwnerOf(c ctx.Ctx, id Id) (domain.Address, error)
	// IsApprovedOrOperator reports whether spender may move the token:
	// current owner, single-token approved address, or approved operator.
	IsApprovedOrOperator(c ctx.Ctx, id Id, spender domain.Address) (bool, error)
	Transfer(c ctx.Ctx, caller, from, to domain.Address, id Id) error
}

type Usecase interface {
	Registry

	Mint(c ctx.Ctx, caller, to domain.Address, uri string) (domain.TokenId, error)
	BatchMint(c ctx.Ctx, caller, to domain.Address, uris []string) ([]domain.TokenId, error)
	Burn(c ctx.Ctx, caller domain.Address, id Id) error
	Approve(c ctx.Ctx, caller domain.Address, id Id, spender domain.Address) error
	SetApprovalForAll(c ctx.Ctx, caller, operator domain.Address, approved bool) error

	TokenURI(c ctx.Ctx, id Id) (string, error)
	TotalSupply(c ctx.Ctx) (int, error)
	Exists(c ctx.Ctx, id Id) (bool, error)
	FindAll(c ctx.Ctx, opts ...FindAllOptionsFunc) ([]*Token, error)
}
