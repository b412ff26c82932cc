package repository

import (
	"go.mongodb.org/mongo-driver/bson"

	"github.com/x-xyz/gosale/base/ctx"
	"github.com/x-xyz/gosale/base/log"
	"github.com/x-xyz/gosale/domain"
	"github.com/x-xyz/gosale/domain/listing"
	"github.com/x-xyz/gosale/service/query"
)

type activityRepoImpl struct {
	q query.Mongo
}

func NewActivityRepo(q query.Mongo) listing.ActivityRepo {
	return &activityRepoImpl{q}
}

func (im *activityRepoImpl) Insert(ctx ctx.Ctx, act *listing.Activity) error {
	act.Account = act.Account.ToLower()
	act.To = act.To.ToLower()
	if err := im.q.Insert(ctx, domain.TableListingActivities, act); err != nil {
		ctx.WithFields(log.Fields{
			"err":       err,
			"listingId": act.ListingId,
			"type":      act.Type,
		}).Error("failed to q.Insert")
		return err
	}
	return nil
}

func (im *activityRepoImpl) FindAll(ctx ctx.Ctx, opts ...listing.ActivityFindAllOptionsFunc) ([]*listing.Activity, error) {
	options, err := listing.GetActivityFindAllOptions(opts...)
	if err != nil {
		ctx.WithFields(log.Fields{
			"err": err,
		}).Error("listing.GetActivityFindAllOptions")
		return nil, err
	}

	qry := bson.M{}
	if options.ListingId != nil {
		qry["listingId"] = *options.ListingId
	}
	if options.Account != nil {
		qry["account"] = *options.Account
	}
	if options.Type != nil {
		qry["type"] = *options.Type
	}

	offset := 0
	limit := 0
	if options.Offset != nil {
		offset = int(*options.Offset)
	}
	if options.Limit != nil {
		limit = int(*options.Limit)
	}

	res := []*listing.Activity{}
	err = im.q.Search(ctx, domain.TableListingActivities, offset, limit, "-time", qry, &res)
	if err != nil {
		ctx.WithFields(log.Fields{
			"err":   err,
			"query": qry,
		}).Error("failed to q.Search")
		return nil, err
	}

	return res, nil
}
