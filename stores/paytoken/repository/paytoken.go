package repository

import (
	"go.mongodb.org/mongo-driver/bson"

	"github.com/x-xyz/gosale/base/ctx"
	"github.com/x-xyz/gosale/base/database/mongoclient"
	"github.com/x-xyz/gosale/base/log"
	"github.com/x-xyz/gosale/domain"
	"github.com/x-xyz/gosale/service/query"
)

type payTokenRepoImpl struct {
	q query.Mongo
}

func NewPayTokenRepo(q query.Mongo) domain.PayTokenRepo {
	return &payTokenRepoImpl{q}
}

func (im *payTokenRepoImpl) FindOne(ctx ctx.Ctx, chainId domain.ChainId, address domain.Address) (*domain.PayToken, error) {
	res := domain.PayToken{}
	err := im.q.FindOne(ctx, domain.TablePayTokens, bson.M{"chainId": chainId, "address": address.ToLower()}, &res)
	if err == query.ErrNotFound {
		return nil, domain.ErrNotFound
	} else if err != nil {
		ctx.WithFields(log.Fields{
			"err":     err,
			"chainId": chainId,
			"address": address,
		}).Error("failed to q.FindOne")
		return nil, err
	}
	return &res, nil
}

func (im *payTokenRepoImpl) Create(ctx ctx.Ctx, token *domain.PayToken) error {
	token.Address = token.Address.ToLower()
	if err := im.q.Insert(ctx, domain.TablePayTokens, token); err != nil {
		ctx.WithFields(log.Fields{
			"err":     err,
			"chainId": token.ChainId,
			"address": token.Address,
		}).Error("failed to q.Insert")
		return err
	}
	return nil
}

func (im *payTokenRepoImpl) Upsert(ctx ctx.Ctx, token *domain.PayToken) error {
	token.Address = token.Address.ToLower()
	selector, err := mongoclient.MakeBsonM(token.ToId())
	if err != nil {
		ctx.WithFields(log.Fields{
			"err": err,
		}).Error("failed to mongoclient.MakeBsonM")
		return err
	}
	if err := im.q.Upsert(ctx, domain.TablePayTokens, selector, token); err != nil {
		ctx.WithFields(log.Fields{
			"err":      err,
			"selector": selector,
		}).Error("failed to q.Upsert")
		return err
	}
	return nil
}
