package repository

import (
	"go.mongodb.org/mongo-driver/bson"

	"github.com/mintmarket/goapi/base/ctx"
	"github.com/mintmarket/goapi/base/database/mongoclient"
	"github.com/mintmarket/goapi/base/log"
	"github.com/mintmarket/goapi/domain"
	"github.com/mintmarket/goapi/domain/listing"
	"github.com/mintmarket/goapi/service/query"
)

type listingCounter struct {
	Name  string `bson:"name"`
	Value uint64 `bson:"value"`
}

type indexEntry struct {
	NftContract domain.Address   `bson:"nftContract"`
	TokenId     domain.TokenId   `bson:"tokenID"`
	ListingId   domain.ListingId `bson:"listingId"`
}

type listingRepoImpl struct {
	q query.Mongo
}

func NewListingRepo(q query.Mongo) listing.Repo {
	return &listingRepoImpl{q}
}

func (im *listingRepoImpl) FindOne(ctx ctx.Ctx, id domain.ListingId) (*listing.Listing, error) {
	q := bson.M{"listingId": id}
	res := listing.Listing{}
	if err := im.q.FindOne(ctx, domain.TableListings, q, &res); err != nil {
		if err != query.ErrNotFound {
			ctx.WithFields(log.Fields{
				"listingId": id,
				"err":       err,
			}).Error("failed to FindOne listing")
		}
		return nil, err
	}
	return &res, nil
}

func (im *listingRepoImpl) FindAll(ctx ctx.Ctx, optFns ...listing.FindAllOptionsFunc) ([]*listing.Listing, error) {
	opts, err := listing.GetFindAllOptions(optFns...)
	if err != nil {
		ctx.WithField("err", err).Error("failed to GetFindAllOptions")
		return nil, err
	}

	offset := 0
	limit := 0
	if opts.Offset != nil {
		offset = int(*opts.Offset)
	}
	if opts.Limit != nil {
		limit = int(*opts.Limit)
	}

	q := bson.M{}
	if opts.NftContract != nil {
		q["nftContract"] = *opts.NftContract
	}
	if opts.TokenId != nil {
		q["tokenID"] = *opts.TokenId
	}
	if opts.Seller != nil {
		q["seller"] = *opts.Seller
	}
	if opts.Active != nil {
		q["active"] = *opts.Active
	}
	if len(q) == 0 {
		q["_id"] = bson.M{"$exists": true}
	}

	res := []*listing.Listing{}
	if err := im.q.Search(ctx, domain.TableListings, offset, limit, "listingId", q, &res); err != nil {
		ctx.WithFields(log.Fields{
			"query": q,
			"err":   err,
		}).Error("search listings failed")
		return nil, err
	}
	return res, nil
}

func (im *listingRepoImpl) Insert(ctx ctx.Ctx, l *listing.Listing) error {
	l.NftContract = l.NftContract.ToLower()
	l.Seller = l.Seller.ToLower()
	if err := im.q.Insert(ctx, domain.TableListings, l); err != nil {
		ctx.WithFields(log.Fields{
			"listing": *l,
			"err":     err,
		}).Error("insert listing failed")
		return err
	}
	return nil
}

func (im *listingRepoImpl) Patch(ctx ctx.Ctx, id domain.ListingId, p listing.Patchable) error {
	q := bson.M{"listingId": id}
	updateBson, err := mongoclient.MakeBsonM(p)
	if err != nil {
		ctx.WithFields(log.Fields{
			"patchable": p,
			"err":       err,
		}).Error("failed to MakeBsonM")
		return err
	}
	if err := im.q.Patch(ctx, domain.TableListings, q, updateBson); err != nil {
		ctx.WithFields(log.Fields{
			"listingId": id,
			"err":       err,
		}).Error("patch listing failed")
		return err
	}
	return nil
}

func (im *listingRepoImpl) NextListingId(ctx ctx.Ctx) (domain.ListingId, error) {
	res := listingCounter{}
	q := bson.M{"name": "listingId"}
	if err := im.q.Increment(ctx, domain.TableCounters, q, &res, "value", 1); err != nil {
		ctx.WithField("err", err).Error("increment listing counter failed")
		return 0, err
	}
	return domain.ListingId(res.Value), nil
}

func (im *listingRepoImpl) IndexOf(ctx ctx.Ctx, contract domain.Address, tokenId domain.TokenId) (domain.ListingId, error) {
	q := bson.M{"nftContract": contract.ToLowerStr(), "tokenID": tokenId}
	res := indexEntry{}
	if err := im.q.FindOne(ctx, domain.TableListingIndex, q, &res); err != nil {
		if err == query.ErrNotFound {
			return 0, nil
		}
		ctx.WithFields(log.Fields{
			"query": q,
			"err":   err,
		}).Error("failed to FindOne listing index")
		return 0, err
	}
	return res.ListingId, nil
}

func (im *listingRepoImpl) SetIndex(ctx ctx.Ctx, contract domain.Address, tokenId domain.TokenId, id domain.ListingId) error {
	return im.upsertIndex(ctx, contract, tokenId, id)
}

// ClearIndex resets the entry to the zero sentinel instead of deleting it, so
// a relist overwrites the same document.
func (im *listingRepoImpl) ClearIndex(ctx ctx.Ctx, contract domain.Address, tokenId domain.TokenId) error {
	return im.upsertIndex(ctx, contract, tokenId, 0)
}

func (im *listingRepoImpl) upsertIndex(ctx ctx.Ctx, contract domain.Address, tokenId domain.TokenId, id domain.ListingId) error {
	q := bson.M{"nftContract": contract.ToLowerStr(), "tokenID": tokenId}
	entry := indexEntry{NftContract: contract.ToLower(), TokenId: tokenId, ListingId: id}
	if err := im.q.Upsert(ctx, domain.TableListingIndex, q, &entry); err != nil {
		ctx.WithFields(log.Fields{
			"entry": entry,
			"err":   err,
		}).Error("upsert listing index failed")
		return err
	}
	return nil
}
