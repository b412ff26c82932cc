package repository

import (
	"go.mongodb.org/mongo-driver/bson"

	"github.com/x-xyz/gosale/base/ctx"
	"github.com/x-xyz/gosale/base/log"
	"github.com/x-xyz/gosale/domain"
	"github.com/x-xyz/gosale/domain/marketplace"
	"github.com/x-xyz/gosale/service/query"
)

// settingsDocId keys the single settings document
const settingsDocId = "marketplace"

type marketplaceRepoImpl struct {
	q query.Mongo
}

func NewMarketplaceRepo(q query.Mongo) marketplace.Repo {
	return &marketplaceRepoImpl{q}
}

func (im *marketplaceRepoImpl) GetSettings(ctx ctx.Ctx) (*marketplace.Settings, error) {
	res := marketplace.Settings{}
	err := im.q.FindOne(ctx, domain.TableMarketplaceSettings, bson.M{"docId": settingsDocId}, &res)
	if err == query.ErrNotFound {
		return nil, domain.ErrNotFound
	} else if err != nil {
		ctx.WithFields(log.Fields{
			"err": err,
		}).Error("failed to q.FindOne")
		return nil, err
	}
	return &res, nil
}

func (im *marketplaceRepoImpl) PutSettings(ctx ctx.Ctx, settings *marketplace.Settings) error {
	settings.SellerRegistry = settings.SellerRegistry.ToLower()
	settings.RoyaltyService = settings.RoyaltyService.ToLower()
	err := im.q.Upsert(ctx, domain.TableMarketplaceSettings, bson.M{"docId": settingsDocId}, bson.M{
		"docId":             settingsDocId,
		"marketplaceFeeBps": settings.MarketplaceFeeBPS,
		"referrerBps":       settings.ReferrerBPS,
		"enabled":           settings.Enabled,
		"sellerRegistry":    settings.SellerRegistry,
		"royaltyService":    settings.RoyaltyService,
		"version":           settings.Version,
		"updatedAt":         settings.UpdatedAt,
	})
	if err != nil {
		ctx.WithFields(log.Fields{
			"err": err,
		}).Error("failed to q.Upsert")
		return err
	}
	return nil
}

func (im *marketplaceRepoImpl) GetAccrual(ctx ctx.Ctx, currency domain.Address) (*marketplace.Accrual, error) {
	res := marketplace.Accrual{}
	err := im.q.FindOne(ctx, domain.TableMarketplaceAccruals, bson.M{"currency": currency.ToLower()}, &res)
	if err == query.ErrNotFound {
		return nil, domain.ErrNotFound
	} else if err != nil {
		ctx.WithFields(log.Fields{
			"err":      err,
			"currency": currency,
		}).Error("failed to q.FindOne")
		return nil, err
	}
	return &res, nil
}

func (im *marketplaceRepoImpl) ListAccruals(ctx ctx.Ctx) ([]*marketplace.Accrual, error) {
	res := []*marketplace.Accrual{}
	err := im.q.Search(ctx, domain.TableMarketplaceAccruals, 0, 0, "currency", bson.M{}, &res)
	if err != nil {
		ctx.WithFields(log.Fields{
			"err": err,
		}).Error("failed to q.Search")
		return nil, err
	}
	return res, nil
}

func (im *marketplaceRepoImpl) PutAccrual(ctx ctx.Ctx, accrual *marketplace.Accrual) error {
	accrual.Currency = accrual.Currency.ToLower()
	err := im.q.Upsert(ctx, domain.TableMarketplaceAccruals, bson.M{"currency": accrual.Currency}, accrual)
	if err != nil {
		ctx.WithFields(log.Fields{
			"err":      err,
			"currency": accrual.Currency,
		}).Error("failed to q.Upsert")
		return err
	}
	return nil
}

func (im *marketplaceRepoImpl) RemoveAccrual(ctx ctx.Ctx, currency domain.Address) error {
	err := im.q.Remove(ctx, domain.TableMarketplaceAccruals, bson.M{"currency": currency.ToLower()})
	if err == query.ErrNotFound {
		return domain.ErrNotFound
	} else if err != nil {
		ctx.WithFields(log.Fields{
			"err":      err,
			"currency": currency,
		}).Error("failed to q.Remove")
		return err
	}
	return nil
}
