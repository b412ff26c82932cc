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

type counterDoc struct {
	Name string     `bson:"name"`
	Seq  listing.Id `bson:"seq"`
}

type listingRepoImpl struct {
	q query.Mongo
}

func NewListingRepo(q query.Mongo) listing.Repo {
	return &listingRepoImpl{q}
}

func (im *listingRepoImpl) NextId(ctx ctx.Ctx) (listing.Id, error) {
	res := counterDoc{}
	err := im.q.Increment(ctx, domain.TableCounters, bson.M{"name": string(domain.TableListings)}, &res, "seq", 1)
	if err != nil {
		ctx.WithFields(log.Fields{
			"err": err,
		}).Error("failed to q.Increment")
		return 0, err
	}
	return res.Seq, nil
}

func (im *listingRepoImpl) Create(ctx ctx.Ctx, l *listing.Listing) error {
	l.LowerCase()
	if err := im.q.Insert(ctx, domain.TableListings, l); err != nil {
		ctx.WithFields(log.Fields{
			"err":       err,
			"listingId": l.ListingId,
		}).Error("failed to q.Insert")
		return err
	}
	return nil
}

func (im *listingRepoImpl) FindOne(ctx ctx.Ctx, id listing.Id) (*listing.Listing, error) {
	res := listing.Listing{}
	err := im.q.FindOne(ctx, domain.TableListings, bson.M{"listingId": id}, &res)
	if err == query.ErrNotFound {
		return nil, domain.ErrNotFound
	} else if err != nil {
		ctx.WithFields(log.Fields{
			"err":       err,
			"listingId": id,
		}).Error("failed to q.FindOne")
		return nil, err
	}
	return &res, nil
}

func (im *listingRepoImpl) makeQuery(opts ...listing.FindAllOptionsFunc) (bson.M, listing.FindAllOptions, error) {
	options, err := listing.GetFindAllOptions(opts...)
	if err != nil {
		return nil, options, err
	}
	qry := bson.M{}

	if options.Seller != nil {
		qry["seller"] = *options.Seller
	}

	if options.Type != nil {
		qry["type"] = *options.Type
	}

	if options.Currency != nil {
		qry["currency"] = *options.Currency
	}

	if options.Finalized != nil {
		qry["finalized"] = *options.Finalized
	}

	if options.ChainId != nil {
		qry["token.chainId"] = *options.ChainId
	}

	if options.Contract != nil {
		qry["token.contract"] = *options.Contract
	}

	return qry, options, nil
}

func (im *listingRepoImpl) FindAll(ctx ctx.Ctx, opts ...listing.FindAllOptionsFunc) ([]*listing.Listing, error) {
	qry, options, err := im.makeQuery(opts...)
	if err != nil {
		ctx.WithFields(log.Fields{
			"err": err,
		}).Error("im.makeQuery")
		return nil, err
	}

	offset := 0
	limit := 0
	sort := "-listingId"
	if options.Offset != nil {
		offset = int(*options.Offset)
	}
	if options.Limit != nil {
		limit = int(*options.Limit)
	}
	if options.Sort != nil {
		sort = *options.Sort
	}

	res := []*listing.Listing{}
	err = im.q.Search(ctx, domain.TableListings, offset, limit, sort, qry, &res)
	if err != nil {
		ctx.WithFields(log.Fields{
			"err":   err,
			"query": qry,
		}).Error("failed to q.Search")
		return nil, err
	}

	return res, nil
}

func (im *listingRepoImpl) Count(ctx ctx.Ctx, opts ...listing.FindAllOptionsFunc) (int, error) {
	qry, _, err := im.makeQuery(opts...)
	if err != nil {
		ctx.WithFields(log.Fields{
			"err": err,
		}).Error("im.makeQuery")
		return 0, err
	}

	cnt, err := im.q.Count(ctx, domain.TableListings, qry)
	if err != nil {
		ctx.WithFields(log.Fields{
			"err":   err,
			"query": qry,
		}).Error("failed to q.Count")
		return 0, err
	}

	return cnt, nil
}

func (im *listingRepoImpl) Update(ctx ctx.Ctx, l *listing.Listing) error {
	l.LowerCase()
	err := im.q.Upsert(ctx, domain.TableListings, bson.M{"listingId": l.ListingId}, l)
	if err != nil {
		ctx.WithFields(log.Fields{
			"err":       err,
			"listingId": l.ListingId,
		}).Error("failed to q.Upsert")
		return err
	}
	return nil
}

func (im *listingRepoImpl) Patch(ctx ctx.Ctx, id listing.Id, patchable listing.Patchable) error {
	updater, err := mongoclient.MakeBsonM(patchable)
	if err != nil {
		ctx.WithFields(log.Fields{
			"err":       err,
			"patchable": patchable,
		}).Error("failed to mongoclient.MakeBsonM")
		return err
	}

	err = im.q.Patch(ctx, domain.TableListings, bson.M{"listingId": id}, updater)
	if err == query.ErrNotFound {
		return domain.ErrNotFound
	} else if err != nil {
		ctx.WithFields(log.Fields{
			"err":       err,
			"listingId": id,
			"updater":   updater,
		}).Error("failed to q.Patch")
		return err
	}

	return nil
}
