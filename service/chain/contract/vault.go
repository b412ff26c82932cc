package contract

import (
	"github.com/ethereum/go-ethereum/common"
	baseabi "github.com/x-xyz/gosale/base/abi"
	bCtx "github.com/x-xyz/gosale/base/ctx"
	"github.com/x-xyz/gosale/base/log"
	"github.com/x-xyz/gosale/domain"
	"github.com/x-xyz/gosale/domain/listing"
	"github.com/x-xyz/gosale/domain/provider"
	"github.com/x-xyz/gosale/service/chain"
)

type vaultTransfer struct {
	chainService chain.Client
}

// NewVaultTransfer moves assets in and out of the vault account. Unique
// tokens go through the erc721 surface, multi unit tokens through
// erc1155.
func NewVaultTransfer(chainService chain.Client) provider.AssetTransfer {
	return &vaultTransfer{chainService: chainService}
}

func (v *vaultTransfer) Custody(c bCtx.Ctx, from domain.Address, token listing.TokenReference, quantity int64) error {
	return v.move(c, common.HexToAddress(string(from)), v.chainService.Signer(), token, quantity)
}

func (v *vaultTransfer) Transfer(c bCtx.Ctx, to domain.Address, token listing.TokenReference, quantity int64) error {
	return v.move(c, v.chainService.Signer(), common.HexToAddress(string(to)), token, quantity)
}

func (v *vaultTransfer) move(c bCtx.Ctx, from, to common.Address, token listing.TokenReference, quantity int64) error {
	tokenId, err := tokenIdToBig(token.TokenId)
	if err != nil {
		return err
	}
	contractAddr := common.HexToAddress(string(token.Contract))
	chainId := int32(token.ChainId)

	var txHash common.Hash
	if token.Kind == listing.TokenKindMultiple {
		txHash, err = v.chainService.Send(c, chainId, contractAddr, baseabi.ERC1155TokenABI, "safeTransferFrom", from, to, tokenId, bigInt(quantity), []byte{})
	} else {
		txHash, err = v.chainService.Send(c, chainId, contractAddr, baseabi.ERC721TokenABI, "transferFrom", from, to, tokenId)
	}
	if err != nil {
		c.WithFields(log.Fields{
			"err":      err,
			"contract": token.Contract,
			"tokenId":  token.TokenId,
		}).Error("asset transfer failed")
		return domain.ErrTransferFailed
	}
	c.WithFields(log.Fields{
		"tx":       txHash.Hex(),
		"contract": token.Contract,
		"tokenId":  token.TokenId,
		"quantity": quantity,
	}).Info("asset transferred")
	return nil
}
