package contract

import (
	"github.com/ethereum/go-ethereum/common"
	baseabi "github.com/x-xyz/gosale/base/abi"
	bCtx "github.com/x-xyz/gosale/base/ctx"
	"github.com/x-xyz/gosale/domain"
	"github.com/x-xyz/gosale/domain/provider"
	"github.com/x-xyz/gosale/service/chain"
)

type sellerRegistry struct {
	chainService chain.Client
	chainId      int32
}

func NewSellerRegistry(chainService chain.Client, chainId int32) provider.SellerRegistry {
	return &sellerRegistry{chainService: chainService, chainId: chainId}
}

func (r *sellerRegistry) IsAuthorized(c bCtx.Ctx, registry, seller domain.Address, data []byte) (bool, error) {
	if data == nil {
		data = []byte{}
	}
	unpacked, err := r.chainService.Call(c, r.chainId, common.HexToAddress(string(registry)), nil,
		baseabi.SellerRegistryABI, "isAuthorized", common.HexToAddress(string(seller)), data)
	if err != nil {
		return false, err
	}
	return unpacked[0].(bool), nil
}
