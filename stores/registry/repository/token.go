package repository

import (
	"go.mongodb.org/mongo-driver/bson"

	"github.com/mintmarket/goapi/base/ctx"
	"github.com/mintmarket/goapi/base/database/mongoclient"
	"github.com/mintmarket/goapi/base/log"
	"github.com/mintmarket/goapi/domain"
	"github.com/mintmarket/goapi/domain/token"
	"github.com/mintmarket/goapi/service/query"
)

type mintCounter struct {
	Contract domain.Address `bson:"contract"`
	Value    uint64         `bson:"value"`
}

type tokenRepoImpl struct {
	q query.Mongo
}

func NewTokenRepo(q query.Mongo) token.Repo {
	return &tokenRepoImpl{q}
}

func (im *tokenRepoImpl) FindOne(ctx ctx.Ctx, id token.Id) (*token.Token, error) {
	id = id.ToLower()
	q := bson.M{"contract": id.Contract, "tokenID": id.TokenId}
	res := token.Token{}
	if err := im.q.FindOne(ctx, domain.TableTokens, q, &res); err != nil {
		if err != query.ErrNotFound {
			ctx.WithFields(log.Fields{
				"id":  id,
				"err": err,
			}).Error("failed to FindOne token")
		}
		return nil, err
	}
	return &res, nil
}

func (im *tokenRepoImpl) FindAll(ctx ctx.Ctx, optFns ...token.FindAllOptionsFunc) ([]*token.Token, error) {
	opts, err := token.GetFindAllOptions(optFns...)
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

	sort := "mintedAt"
	if opts.SortBy != nil {
		sort = *opts.SortBy
		if opts.SortDir != nil && *opts.SortDir == domain.SortDirDesc {
			sort = "-" + sort
		}
	}

	q := bson.M{}
	if opts.Contract != nil {
		q["contract"] = *opts.Contract
	}
	if opts.Owner != nil {
		q["owner"] = *opts.Owner
	}
	if len(q) == 0 {
		q["_id"] = bson.M{"$exists": true}
	}

	res := []*token.Token{}
	if err := im.q.Search(ctx, domain.TableTokens, offset, limit, sort, q, &res); err != nil {
		ctx.WithFields(log.Fields{
			"query": q,
			"err":   err,
		}).Error("search tokens failed")
		return nil, err
	}
	return res, nil
}

func (im *tokenRepoImpl) Count(ctx ctx.Ctx, contract domain.Address) (int, error) {
	q := bson.M{}
	if !contract.IsEmpty() {
		q["contract"] = contract.ToLower()
	}
	cnt, err := im.q.Count(ctx, domain.TableTokens, q)
	if err != nil {
		ctx.WithFields(log.Fields{
			"contract": contract,
			"err":      err,
		}).Error("count tokens failed")
		return 0, err
	}
	return cnt, nil
}

func (im *tokenRepoImpl) Insert(ctx ctx.Ctx, t *token.Token) error {
	t.Contract = t.Contract.ToLower()
	t.Owner = t.Owner.ToLower()
	t.Approved = t.Approved.ToLower()
	if err := im.q.Insert(ctx, domain.TableTokens, t); err != nil {
		ctx.WithFields(log.Fields{
			"token": *t,
			"err":   err,
		}).Error("insert token failed")
		return err
	}
	return nil
}

func (im *tokenRepoImpl) Patch(ctx ctx.Ctx, id token.Id, p token.Patchable) error {
	id = id.ToLower()
	q := bson.M{"contract": id.Contract, "tokenID": id.TokenId}
	if p.Owner != nil {
		p.Owner = p.Owner.ToLowerPtr()
	}
	if p.Approved != nil {
		p.Approved = p.Approved.ToLowerPtr()
	}
	updateBson, err := mongoclient.MakeBsonM(p)
	if err != nil {
		ctx.WithFields(log.Fields{
			"patchable": p,
			"err":       err,
		}).Error("failed to MakeBsonM")
		return err
	}
	if err := im.q.Patch(ctx, domain.TableTokens, q, updateBson); err != nil {
		ctx.WithFields(log.Fields{
			"id":  id,
			"err": err,
		}).Error("patch token failed")
		return err
	}
	return nil
}

func (im *tokenRepoImpl) Remove(ctx ctx.Ctx, id token.Id) error {
	id = id.ToLower()
	q := bson.M{"contract": id.Contract, "tokenID": id.TokenId}
	if err := im.q.Remove(ctx, domain.TableTokens, q); err != nil {
		ctx.WithFields(log.Fields{
			"id":  id,
			"err": err,
		}).Error("remove token failed")
		return err
	}
	return nil
}

func (im *tokenRepoImpl) NextTokenId(ctx ctx.Ctx, contract domain.Address) (uint64, error) {
	res := mintCounter{}
	q := bson.M{"contract": contract.ToLowerStr()}
	if err := im.q.Increment(ctx, domain.TableCounters, q, &res, "value", 1); err != nil {
		ctx.WithFields(log.Fields{
			"contract": contract,
			"err":      err,
		}).Error("increment mint counter failed")
		return 0, err
	}
	return res.Value, nil
}

func (im *tokenRepoImpl) SetOperator(ctx ctx.Ctx, op *token.Operator) error {
	op.Contract = op.Contract.ToLower()
	op.Owner = op.Owner.ToLower()
	op.Operator = op.Operator.ToLower()
	q := bson.M{"contract": op.Contract, "owner": op.Owner, "operator": op.Operator}
	if err := im.q.Upsert(ctx, domain.TableOperators, q, op); err != nil {
		ctx.WithFields(log.Fields{
			"operator": *op,
			"err":      err,
		}).Error("upsert operator failed")
		return err
	}
	return nil
}

func (im *tokenRepoImpl) IsOperator(ctx ctx.Ctx, contract, owner, operator domain.Address) (bool, error) {
	q := bson.M{
		"contract": contract.ToLowerStr(),
		"owner":    owner.ToLowerStr(),
		"operator": operator.ToLowerStr(),
	}
	res := token.Operator{}
	if err := im.q.FindOne(ctx, domain.TableOperators, q, &res); err != nil {
		if err == query.ErrNotFound {
			return false, nil
		}
		ctx.WithFields(log.Fields{
			"query": q,
			"err":   err,
		}).Error("failed to FindOne operator")
		return false, err
	}
	return res.Approved, nil
}
