package repository

import (
	"go.mongodb.org/mongo-driver/bson"

	"github.com/mintmarket/goapi/base/ctx"
	"github.com/mintmarket/goapi/base/log"
	"github.com/mintmarket/goapi/domain"
	"github.com/mintmarket/goapi/domain/listing"
	"github.com/mintmarket/goapi/service/query"
)

type feeConfig struct {
	Key string        `bson:"key"`
	Fee domain.FeeBps `bson:"fee"`
}

const feeConfigKey = "feeBps"

type configRepoImpl struct {
	q query.Mongo
}

func NewConfigRepo(q query.Mongo) listing.ConfigRepo {
	return &configRepoImpl{q}
}

// GetFee falls back to the default when no fee has ever been set.
func (im *configRepoImpl) GetFee(ctx ctx.Ctx) (domain.FeeBps, error) {
	q := bson.M{"key": feeConfigKey}
	res := feeConfig{}
	if err := im.q.FindOne(ctx, domain.TableMarketConfigs, q, &res); err != nil {
		if err == query.ErrNotFound {
			return listing.DefaultFeeBps, nil
		}
		ctx.WithField("err", err).Error("failed to FindOne fee config")
		return 0, err
	}
	return res.Fee, nil
}

func (im *configRepoImpl) SetFee(ctx ctx.Ctx, fee domain.FeeBps) error {
	q := bson.M{"key": feeConfigKey}
	cfg := feeConfig{Key: feeConfigKey, Fee: fee}
	if err := im.q.Upsert(ctx, domain.TableMarketConfigs, q, &cfg); err != nil {
		ctx.WithFields(log.Fields{
			"fee": fee,
			"err": err,
		}).Error("upsert fee config failed")
		return err
	}
	return nil
}
