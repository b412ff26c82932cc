package domain

import (
	"github.com/x-xyz/gosale/base/ctx"
)

type PayTokenId struct {
	ChainId ChainId `bson:"chainId"`
	Address Address `bson:"address"`
}

// PayToken describes a currency listings may be denominated in. Raw
// amounts everywhere in the engine are integer counts of the smallest
// unit; TokenDecimals is only consulted when rendering display prices.
type PayToken struct {
	Name          string  `bson:"name"`
	Symbol        string  `bson:"symbol"`
	TokenDecimals int32   `bson:"tokenDecimals"`
	ChainId       ChainId `bson:"chainId"`
	Address       Address `bson:"address"`
	Enabled       bool    `bson:"enabled"`
}

func (t *PayToken) ToId() *PayTokenId {
	return &PayTokenId{
		ChainId: t.ChainId,
		Address: t.Address,
	}
}

type PayTokenRepo interface {
	FindOne(ctx.Ctx, ChainId, Address) (*PayToken, error)
	Create(ctx.Ctx, *PayToken) error
	Upsert(ctx.Ctx, *PayToken) error
}
