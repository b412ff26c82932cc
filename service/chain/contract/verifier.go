package contract

import (
	"math/big"

	"github.com/ethereum/go-ethereum/common"
	baseabi "github.com/x-xyz/gosale/base/abi"
	bCtx "github.com/x-xyz/gosale/base/ctx"
	"github.com/x-xyz/gosale/domain"
	"github.com/x-xyz/gosale/domain/provider"
	"github.com/x-xyz/gosale/service/chain"
)

type identityVerifier struct {
	chainService chain.Client
	chainId      int32
}

func NewIdentityVerifier(chainService chain.Client, chainId int32) provider.IdentityVerifier {
	return &identityVerifier{chainService: chainService, chainId: chainId}
}

func (v *identityVerifier) Verify(c bCtx.Ctx, verifier domain.Address, req *provider.VerifyRequest) (bool, error) {
	amount := req.Amount
	if amount == nil {
		amount = big.NewInt(0)
	}
	data := req.Data
	if data == nil {
		data = []byte{}
	}
	unpacked, err := v.chainService.Call(c, v.chainId, common.HexToAddress(string(verifier)), nil,
		baseabi.IdentityVerifierABI, "verify",
		common.HexToAddress(string(req.Identity)), bigInt(int64(req.ListingId)), bigInt(req.Count), amount, data)
	if err != nil {
		return false, err
	}
	return unpacked[0].(bool), nil
}
