package repository

import (
	"go.mongodb.org/mongo-driver/bson"

	"github.com/mintmarket/goapi/base/ctx"
	"github.com/mintmarket/goapi/base/log"
	"github.com/mintmarket/goapi/domain"
	"github.com/mintmarket/goapi/domain/event"
	"github.com/mintmarket/goapi/service/query"
)

type eventRepoImpl struct {
	q query.Mongo
}

func NewEventRepo(q query.Mongo) event.Repo {
	return &eventRepoImpl{q}
}

func (im *eventRepoImpl) Insert(ctx ctx.Ctx, e *event.Event) error {
	if err := im.q.Insert(ctx, domain.TableEvents, e); err != nil {
		ctx.WithFields(log.Fields{
			"event": *e,
			"err":   err,
		}).Error("insert event failed")
		return err
	}
	return nil
}

func (im *eventRepoImpl) FindAll(ctx ctx.Ctx, optFns ...event.FindAllOptionsFunc) ([]*event.Event, error) {
	opts, err := event.GetFindAllOptions(optFns...)
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
	if opts.Type != nil {
		q["type"] = *opts.Type
	}
	if opts.NftContract != nil {
		q["nftContract"] = *opts.NftContract
	}
	if opts.TokenId != nil {
		q["tokenID"] = *opts.TokenId
	}
	if opts.ListingId != nil {
		q["listingId"] = *opts.ListingId
	}
	if len(q) == 0 {
		q["_id"] = bson.M{"$exists": true}
	}

	res := []*event.Event{}
	if err := im.q.Search(ctx, domain.TableEvents, offset, limit, "-time", q, &res); err != nil {
		ctx.WithFields(log.Fields{
			"query": q,
			"err":   err,
		}).Error("search events failed")
		return nil, err
	}
	return res, nil
}
