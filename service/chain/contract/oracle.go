package contract

import (
	"math/big"

	"github.com/ethereum/go-ethereum/common"
	baseabi "github.com/x-xyz/gosale/base/abi"
	bCtx "github.com/x-xyz/gosale/base/ctx"
	"github.com/x-xyz/gosale/domain/listing"
	"github.com/x-xyz/gosale/domain/provider"
	"github.com/x-xyz/gosale/service/chain"
)

type priceOracle struct {
	chainService chain.Client
	oracle       common.Address
	chainId      int32
}

// NewPriceOracle quotes dynamic price listings from a fixed oracle
// contract. The oracle sees how many units were already delivered so
// it can price along a curve.
func NewPriceOracle(chainService chain.Client, chainId int32, oracle string) provider.PriceOracle {
	return &priceOracle{
		chainService: chainService,
		oracle:       common.HexToAddress(oracle),
		chainId:      chainId,
	}
}

func (o *priceOracle) Quote(c bCtx.Ctx, token listing.TokenReference, alreadyDelivered, count int64) (*big.Int, error) {
	tokenId, err := tokenIdToBig(token.TokenId)
	if err != nil {
		return nil, err
	}
	unpacked, err := o.chainService.Call(c, o.chainId, o.oracle, nil,
		baseabi.PriceOracleABI, "quote", tokenId, bigInt(alreadyDelivered), bigInt(count))
	if err != nil {
		return nil, err
	}
	return unpacked[0].(*big.Int), nil
}
