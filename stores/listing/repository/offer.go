package repository

import (
	"go.mongodb.org/mongo-driver/bson"

	"github.com/x-xyz/gosale/base/ctx"
	"github.com/x-xyz/gosale/base/database/mongoclient"
	"github.com/x-xyz/gosale/base/log"
	"github.com/x-xyz/gosale/domain"
	"github.com/x-xyz/gosale/domain/listing"
	"github.com/x-xyz/gosale/service/query"
)

type offerRepoImpl struct {
	q query.Mongo
}

func NewOfferRepo(q query.Mongo) listing.OfferRepo {
	return &offerRepoImpl{q}
}

func (im *offerRepoImpl) FindOne(ctx ctx.Ctx, id listing.OfferId) (*listing.Offer, error) {
	selector, err := mongoclient.MakeBsonM(id)
	if err != nil {
		ctx.WithFields(log.Fields{
			"err": err,
			"id":  id,
		}).Error("failed to mongoclient.MakeBsonM")
		return nil, err
	}

	res := listing.Offer{}
	err = im.q.FindOne(ctx, domain.TableOffers, selector, &res)
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

func (im *offerRepoImpl) makeQuery(opts ...listing.OfferFindAllOptionsFunc) (bson.M, listing.OfferFindAllOptions, error) {
	options, err := listing.GetOfferFindAllOptions(opts...)
	if err != nil {
		return nil, options, err
	}
	qry := bson.M{}

	if options.ListingId != nil {
		qry["listingId"] = *options.ListingId
	}

	if options.Offerer != nil {
		qry["offerer"] = *options.Offerer
	}

	if options.Accepted != nil {
		qry["accepted"] = *options.Accepted
	}

	return qry, options, nil
}

func (im *offerRepoImpl) FindAll(ctx ctx.Ctx, opts ...listing.OfferFindAllOptionsFunc) ([]*listing.Offer, error) {
	qry, options, err := im.makeQuery(opts...)
	if err != nil {
		ctx.WithFields(log.Fields{
			"err": err,
		}).Error("im.makeQuery")
		return nil, err
	}

	offset := 0
	limit := 0
	sort := "timestamp"
	if options.Offset != nil {
		offset = int(*options.Offset)
	}
	if options.Limit != nil {
		limit = int(*options.Limit)
	}
	if options.Sort != nil {
		sort = *options.Sort
	}

	res := []*listing.Offer{}
	err = im.q.Search(ctx, domain.TableOffers, offset, limit, sort, qry, &res)
	if err != nil {
		ctx.WithFields(log.Fields{
			"err":   err,
			"query": qry,
		}).Error("failed to q.Search")
		return nil, err
	}

	return res, nil
}

func (im *offerRepoImpl) Upsert(ctx ctx.Ctx, offer *listing.Offer) error {
	offer.Offerer = offer.Offerer.ToLower()
	offer.Referrer = offer.Referrer.ToLower()
	selector, err := mongoclient.MakeBsonM(offer.ToId())
	if err != nil {
		ctx.WithFields(log.Fields{
			"err": err,
		}).Error("failed to mongoclient.MakeBsonM")
		return err
	}

	err = im.q.Upsert(ctx, domain.TableOffers, selector, offer)
	if err != nil {
		ctx.WithFields(log.Fields{
			"err":      err,
			"selector": selector,
		}).Error("failed to q.Upsert")
		return err
	}
	return nil
}

func (im *offerRepoImpl) Patch(ctx ctx.Ctx, id listing.OfferId, patchable listing.OfferPatchable) error {
	selector, err := mongoclient.MakeBsonM(id)
	if err != nil {
		ctx.WithFields(log.Fields{
			"err": err,
			"id":  id,
		}).Error("failed to mongoclient.MakeBsonM")
		return err
	}

	updater, err := mongoclient.MakeBsonM(patchable)
	if err != nil {
		ctx.WithFields(log.Fields{
			"err":       err,
			"patchable": patchable,
		}).Error("failed to mongoclient.MakeBsonM")
		return err
	}

	err = im.q.Patch(ctx, domain.TableOffers, selector, updater)
	if err == query.ErrNotFound {
		return domain.ErrNotFound
	} else if err != nil {
		ctx.WithFields(log.Fields{
			"err":      err,
			"selector": selector,
			"updater":  updater,
		}).Error("failed to q.Patch")
		return err
	}

	return nil
}

func (im *offerRepoImpl) Remove(ctx ctx.Ctx, id listing.OfferId) error {
	selector, err := mongoclient.MakeBsonM(id)
	if err != nil {
		ctx.WithFields(log.Fields{
			"err": err,
			"id":  id,
		}).Error("failed to mongoclient.MakeBsonM")
		return err
	}

	err = im.q.Remove(ctx, domain.TableOffers, selector)
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
