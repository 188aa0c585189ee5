package repository

import (
	"math/big"

	"go.mongodb.org/mongo-driver/bson"

	"github.com/mintmarket/goapi/base/ctx"
	"github.com/mintmarket/goapi/base/log"
	"github.com/mintmarket/goapi/domain"
	"github.com/mintmarket/goapi/domain/bank"
	"github.com/mintmarket/goapi/service/query"
)

type bankRepoImpl struct {
	q query.Mongo
}

func NewBankRepo(q query.Mongo) bank.Repo {
	return &bankRepoImpl{q}
}

func (im *bankRepoImpl) Balance(ctx ctx.Ctx, addr domain.Address) (*big.Int, error) {
	q := bson.M{"address": addr.ToLowerStr()}
	res := bank.Balance{}
	if err := im.q.FindOne(ctx, domain.TableBalances, q, &res); err != nil {
		if err == query.ErrNotFound {
			return big.NewInt(0), nil
		}
		ctx.WithFields(log.Fields{
			"address": addr,
			"err":     err,
		}).Error("failed to FindOne balance")
		return nil, err
	}
	amount, err := domain.ParseAmount(res.Amount)
	if err != nil {
		ctx.WithFields(log.Fields{
			"address": addr,
			"amount":  res.Amount,
			"err":     err,
		}).Error("stored balance is not a valid amount")
		return nil, err
	}
	return amount, nil
}

func (im *bankRepoImpl) Credit(ctx ctx.Ctx, addr domain.Address, amount *big.Int) error {
	balance, err := im.Balance(ctx, addr)
	if err != nil {
		return err
	}
	return im.store(ctx, addr, new(big.Int).Add(balance, amount))
}

func (im *bankRepoImpl) Debit(ctx ctx.Ctx, addr domain.Address, amount *big.Int) error {
	balance, err := im.Balance(ctx, addr)
	if err != nil {
		return err
	}
	if balance.Cmp(amount) < 0 {
		return domain.ErrInsufficientFundsDetail(balance, amount)
	}
	return im.store(ctx, addr, new(big.Int).Sub(balance, amount))
}

func (im *bankRepoImpl) store(ctx ctx.Ctx, addr domain.Address, amount *big.Int) error {
	q := bson.M{"address": addr.ToLowerStr()}
	b := bank.Balance{Address: addr.ToLower(), Amount: amount.String()}
	if err := im.q.Upsert(ctx, domain.TableBalances, q, &b); err != nil {
		ctx.WithFields(log.Fields{
			"balance": b,
			"err":     err,
		}).Error("upsert balance failed")
		return err
	}
	return nil
}
