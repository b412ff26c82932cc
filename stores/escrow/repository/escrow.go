package repository

import (
	"go.mongodb.org/mongo-driver/bson"

	"github.com/x-xyz/gosale/base/ctx"
	"github.com/x-xyz/gosale/base/database/mongoclient"
	"github.com/x-xyz/gosale/base/log"
	"github.com/x-xyz/gosale/domain"
	"github.com/x-xyz/gosale/domain/escrow"
	"github.com/x-xyz/gosale/service/query"
)

type escrowRepoImpl struct {
	q query.Mongo
}

func NewEscrowRepo(q query.Mongo) escrow.Repo {
	return &escrowRepoImpl{q}
}

func (im *escrowRepoImpl) FindOne(ctx ctx.Ctx, id escrow.BalanceId) (*escrow.Balance, error) {
	selector, err := mongoclient.MakeBsonM(id)
	if err != nil {
		ctx.WithFields(log.Fields{
			"err": err,
			"id":  id,
		}).Error("failed to mongoclient.MakeBsonM")
		return nil, err
	}

	res := escrow.Balance{}
	err = im.q.FindOne(ctx, domain.TableEscrowBalances, selector, &res)
	if err == query.ErrNotFound {
		return nil, domain.ErrNotFound
	} else if err != nil {
		ctx.WithFields(log.Fields{
			"err":   err,
			"query": selector,
		}).Error("failed to q.FindOne")
		return nil, err
	}
	return &res, nil
}

func (im *escrowRepoImpl) FindAll(ctx ctx.Ctx, beneficiary domain.Address) ([]*escrow.Balance, error) {
	qry := bson.M{"beneficiary": beneficiary.ToLower()}

	res := []*escrow.Balance{}
	err := im.q.Search(ctx, domain.TableEscrowBalances, 0, 0, "currency", qry, &res)
	if err != nil {
		ctx.WithFields(log.Fields{
			"err":   err,
			"query": qry,
		}).Error("failed to q.Search")
		return nil, err
	}
	return res, nil
}

func (im *escrowRepoImpl) Upsert(ctx ctx.Ctx, balance *escrow.Balance) error {
	balance.Beneficiary = balance.Beneficiary.ToLower()
	balance.Currency = balance.Currency.ToLower()
	selector, err := mongoclient.MakeBsonM(balance.ToId())
	if err != nil {
		ctx.WithFields(log.Fields{
			"err": err,
		}).Error("failed to mongoclient.MakeBsonM")
		return err
	}

	err = im.q.Upsert(ctx, domain.TableEscrowBalances, selector, balance)
	if err != nil {
		ctx.WithFields(log.Fields{
			"err":      err,
			"selector": selector,
		}).Error("failed to q.Upsert")
		return err
	}
	return nil
}

func (im *escrowRepoImpl) Remove(ctx ctx.Ctx, id escrow.BalanceId) error {
	selector, err := mongoclient.MakeBsonM(id)
	if err != nil {
		ctx.WithFields(log.Fields{
			"err": err,
			"id":  id,
		}).Error("failed to mongoclient.MakeBsonM")
		return err
	}

	err = im.q.Remove(ctx, domain.TableEscrowBalances, selector)
	if err == query.ErrNotFound {
		return domain.ErrNotFound
	} else if err != nil {
		ctx.WithFields(log.Fields{
			"err":      err,
			"selector": selector,
		}).Error("failed to q.Remove")
		return err
	}
	return nil
}
