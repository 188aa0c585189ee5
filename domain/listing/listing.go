package listing

import (
	"time"

	"github.com/mintmarket/goapi/base/ctx"
	"github.com/mintmarket/goapi/domain"
)

const (
	// DefaultFeeBps is the marketplace cut applied to every sale, 2.5%.
	DefaultFeeBps = domain.FeeBps(250)
	// MaxFeeBps caps fee updates, 10%.
	MaxFeeBps = domain.FeeBps(1000)
)

// Listing is a fixed-price sale offer for one token. Listings are never
// deleted; deactivated records stay around for reads, and relisting the same
// token allocates a fresh id.
type Listing struct {
	ListingId   domain.ListingId `json:"listingId" bson:"listingId"`
	NftContract domain.Address   `json:"nftContract" bson:"nftContract"`
	TokenId     domain.TokenId   `json:"tokenId" bson:"tokenID"`
	Seller      domain.Address   `json:"seller" bson:"seller"`
	// Price in wei, decimal string
	Price        string    `json:"price" bson:"price"`
	DisplayPrice string    `json:"displayPrice" bson:"displayPrice"`
	Active       bool      `json:"active" bson:"active"`
	CreatedAt    time.Time `json:"createdAt" bson:"createdAt"`
	UpdatedAt    time.Time `json:"updatedAt" bson:"updatedAt"`
}

type Patchable struct {
	Price        *string    `bson:"price,omitempty"`
	DisplayPrice *string    `bson:"displayPrice,omitempty"`
	Active       *bool      `bson:"active,omitempty"`
	UpdatedAt    *time.Time `bson:"updatedAt,omitempty"`
}

type Repo interface {
	FindOne(c ctx.Ctx, id domain.ListingId) (*Listing, error)
	FindAll(c ctx.Ctx, opts ...FindAllOptionsFunc) ([]*Listing, error)
	Insert(c ctx.Ctx, l *Listing) error
	Patch(c ctx.Ctx, id domain.ListingId, p Patchable) error

	// NextListingId advances the listing counter and returns the newly
	// assigned id, starting from 1. Ids are never reused.
	NextListingId(c ctx.Ctx) (domain.ListingId, error)

	// Reverse index enforcing at most one active listing per token. IndexOf
	// returns 0 when no active listing exists. Any code path deactivating a
	// listing clears the entry in the same unit of work.
	IndexOf(c ctx.Ctx, contract domain.Address, tokenId domain.TokenId) (domain.ListingId, error)
	SetIndex(c ctx.Ctx, contract domain.Address, tokenId domain.TokenId, id domain.ListingId) error
	ClearIndex(c ctx.Ctx, contract domain.Address, tokenId domain.TokenId) error
}

// ConfigRepo holds the owner-adjustable marketplace fee.
type ConfigRepo interface {
	GetFee(c ctx.Ctx) (domain.FeeBps, error)
	SetFee(c ctx.Ctx, fee domain.FeeBps) error
}

type Usecase interface {
	List(c ctx.Ctx, caller, contract domain.Address, tokenId domain.TokenId, price string) (domain.ListingId, error)
	Buy(c ctx.Ctx, caller domain.Address, id domain.ListingId, value string) error
	Cancel(c ctx.Ctx, caller domain.Address, id domain.ListingId) error
	UpdatePrice(c ctx.Ctx, caller domain.Address, id domain.ListingId, newPrice string) error

	UpdateFee(c ctx.Ctx, caller domain.Address, fee domain.FeeBps) error
	// WithdrawFees moves the whole fee vault balance to the marketplace
	// owner and returns the withdrawn amount in wei.
	WithdrawFees(c ctx.Ctx, caller domain.Address) (string, error)

	// GetListing returns a zero-valued record for an unknown id, mirroring
	// default-mapping read semantics.
	GetListing(c ctx.Ctx, id domain.ListingId) (*Listing, error)
	GetAllListings(c ctx.Ctx, opts ...FindAllOptionsFunc) ([]*Listing, error)
	IsListed(c ctx.Ctx, contract domain.Address, tokenId domain.TokenId) (bool, error)
	GetFee(c ctx.Ctx) (domain.FeeBps, error)
}
