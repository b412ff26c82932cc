package contract

import (
	"fmt"
	"math/big"
	"time"

	"github.com/ethereum/go-ethereum/common"
	baseabi "github.com/x-xyz/gosale/base/abi"
	bCtx "github.com/x-xyz/gosale/base/ctx"
	"github.com/x-xyz/gosale/base/log"
	"github.com/x-xyz/gosale/domain"
	"github.com/x-xyz/gosale/domain/keys"
	"github.com/x-xyz/gosale/domain/listing"
	"github.com/x-xyz/gosale/domain/provider"
	"github.com/x-xyz/gosale/service/cache"
	cacheprovider "github.com/x-xyz/gosale/service/cache/provider"
	"github.com/x-xyz/gosale/service/chain"
)

type cachedRoyalty struct {
	Recipient domain.Address `json:"recipient"`
	Bps       int64          `json:"bps"`
}

type eip2981Royalty struct {
	chainService chain.Client
	cache        cache.Service
}

// NewEip2981Royalty resolves royalties through the token contract's
// royaltyInfo view. The rate is probed once per token at the bps
// denominator and cached, the share for a concrete sale value is then
// derived locally.
func NewEip2981Royalty(chainService chain.Client, cacheProvider cacheprovider.Provider) provider.RoyaltyLookup {
	return &eip2981Royalty{
		chainService: chainService,
		cache: cache.New(cache.ServiceConfig{
			Ttl:   10 * time.Minute,
			Pfx:   keys.PfxRoyalty,
			Cache: cacheProvider,
		}),
	}
}

func (r *eip2981Royalty) GetRoyalty(c bCtx.Ctx, token listing.TokenReference, saleValue *big.Int) ([]provider.RoyaltyShare, error) {
	key := keys.CustomKey(":", fmt.Sprint(token.ChainId), token.Contract.ToLowerStr(), token.TokenId.String())

	res := &cachedRoyalty{}
	err := r.cache.GetByFunc(c, key, res, func() (interface{}, error) {
		return r.probe(c, token)
	})
	if err != nil {
		c.WithFields(log.Fields{
			"err":      err,
			"contract": token.Contract,
			"tokenId":  token.TokenId,
		}).Error("royalty lookup failed")
		return nil, err
	}
	if res.Bps == 0 || res.Recipient.IsEmpty() {
		return nil, nil
	}
	return []provider.RoyaltyShare{{
		Recipient: res.Recipient,
		Amount:    domain.ApplyBPS(saleValue, res.Bps),
	}}, nil
}

func (r *eip2981Royalty) probe(c bCtx.Ctx, token listing.TokenReference) (*cachedRoyalty, error) {
	tokenId, err := tokenIdToBig(token.TokenId)
	if err != nil {
		return nil, err
	}
	unpacked, err := r.chainService.Call(c, int32(token.ChainId), common.HexToAddress(string(token.Contract)), nil,
		baseabi.RoyaltyInfoABI, "royaltyInfo", tokenId, bigInt(domain.BPSDenominator))
	if err != nil {
		return nil, err
	}
	recipient := unpacked[0].(common.Address)
	amount := unpacked[1].(*big.Int)
	return &cachedRoyalty{
		Recipient: domain.Address(recipient.Hex()).ToLower(),
		Bps:       amount.Int64(),
	}, nil
}
