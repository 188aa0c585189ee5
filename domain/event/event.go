package event

import (
	"time"

	"github.com/mintmarket/goapi/base/ctx"
	"github.com/mintmarket/goapi/domain"
)

type Type string

const (
	// TypeTransfer covers mint (zero from), burn (zero to) and plain
	// transfers, matching the single transfer event observers key on to
	// discover assigned token ids.
	TypeTransfer     Type = "transfer"
	TypeListed       Type = "listed"
	TypeSold         Type = "sold"
	TypeCancelled    Type = "cancelled"
	TypePriceUpdated Type = "priceUpdated"
	TypeFeeUpdated   Type = "feeUpdated"
)

// Event is one append-only ledger record, written in the same unit of work as
// the state change it describes.
type Event struct {
	EventId     string           `json:"eventId" bson:"eventId"`
	Type        Type             `json:"type" bson:"type"`
	NftContract domain.Address   `json:"nftContract,omitempty" bson:"nftContract,omitempty"`
	TokenId     domain.TokenId   `json:"tokenId,omitempty" bson:"tokenID,omitempty"`
	ListingId   domain.ListingId `json:"listingId,omitempty" bson:"listingId,omitempty"`
	From        domain.Address   `json:"from,omitempty" bson:"from,omitempty"`
	To          domain.Address   `json:"to,omitempty" bson:"to,omitempty"`
	Seller      domain.Address   `json:"seller,omitempty" bson:"seller,omitempty"`
	Buyer       domain.Address   `json:"buyer,omitempty" bson:"buyer,omitempty"`
	Price       string           `json:"price,omitempty" bson:"price,omitempty"`
	OldPrice    string           `json:"oldPrice,omitempty" bson:"oldPrice,omitempty"`
	NewPrice    string           `json:"newPrice,omitempty" bson:"newPrice,omitempty"`
	OldFee      *domain.FeeBps   `json:"oldFee,omitempty" bson:"oldFee,omitempty"`
	NewFee      *domain.FeeBps   `json:"newFee,omitempty" bson:"newFee,omitempty"`
	Time        time.Time        `json:"time" bson:"time"`
}

type Repo interface {
	Insert(c ctx.Ctx, e *Event) error
	FindAll(c ctx.Ctx, opts ...FindAllOptionsFunc) ([]*Event, error)
}

type Usecase interface {
	FindAll(c ctx.Ctx, opts ...FindAllOptionsFunc) ([]*Event, error)
}

type FindAllOptions struct {
	Type        *Type
	NftContract *domain.Address
	TokenId     *domain.TokenId
	ListingId   *domain.ListingId
	Offset      *int32
	Limit       *int32
}

type FindAllOptionsFunc func(*FindAllOptions) error

func GetFindAllOptions(opts ...FindAllOptionsFunc) (FindAllOptions, error) {
	res := FindAllOptions{}
	for _, opt := range opts {
		if err := opt(&res); err != nil {
			return res, err
		}
	}
	return res, nil
}

func WithType(t Type) FindAllOptionsFunc {
	return func(options *FindAllOptions) error {
		options.Type = &t
		return nil
	}
}

func WithToken(contract domain.Address, tokenId domain.TokenId) FindAllOptionsFunc {
	return func(options *FindAllOptions) error {
		options.NftContract = contract.ToLowerPtr()
		options.TokenId = &tokenId
		return nil
	}
}

func WithListingId(id domain.ListingId) FindAllOptionsFunc {
	return func(options *FindAllOptions) error {
		options.ListingId = &id
		return nil
	}
}

func WithPagination(offset, limit int32) FindAllOptionsFunc {
	return func(options *FindAllOptions) error {
		options.Offset = &offset
		options.Limit = &limit
		return nil
	}
}
