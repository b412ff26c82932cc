package contract

import (
	"math/big"

	"github.com/ethereum/go-ethereum/common"
	baseabi "github.com/x-xyz/gosale/base/abi"
	bCtx "github.com/x-xyz/gosale/base/ctx"
	"github.com/x-xyz/gosale/base/log"
	"github.com/x-xyz/gosale/domain"
	"github.com/x-xyz/gosale/domain/listing"
	"github.com/x-xyz/gosale/domain/provider"
	"github.com/x-xyz/gosale/service/chain"
)

type lazyDeliverer struct {
	chainService chain.Client
}

// NewLazyDeliverer mints lazy assets straight to the buyer through the
// token contract's deliver entrypoint.
func NewLazyDeliverer(chainService chain.Client) provider.LazyDeliverer {
	return &lazyDeliverer{chainService: chainService}
}

func (d *lazyDeliverer) Deliver(c bCtx.Ctx, listingId listing.Id, to domain.Address, token listing.TokenReference, count int64, amount *big.Int, currency domain.Address, index int64) error {
	tokenId, err := tokenIdToBig(token.TokenId)
	if err != nil {
		return err
	}
	txHash, err := d.chainService.Send(c, int32(token.ChainId), common.HexToAddress(string(token.Contract)),
		baseabi.LazyDelivererABI, "deliver",
		common.HexToAddress(string(to)), tokenId, bigInt(count), amount, common.HexToAddress(string(currency)), bigInt(index))
	if err != nil {
		c.WithFields(log.Fields{
			"err":       err,
			"listingId": listingId,
			"contract":  token.Contract,
			"tokenId":   token.TokenId,
		}).Error("lazy delivery failed")
		return domain.ErrTransferFailed
	}
	c.WithFields(log.Fields{
		"tx":        txHash.Hex(),
		"listingId": listingId,
		"to":        to,
		"count":     count,
	}).Info("lazy asset delivered")
	return nil
}
