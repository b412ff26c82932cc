package contract

import (
	"math/big"

	"github.com/ethereum/go-ethereum/common"
	baseabi "github.com/x-xyz/gosale/base/abi"
	bCtx "github.com/x-xyz/gosale/base/ctx"
	"github.com/x-xyz/gosale/base/log"
	"github.com/x-xyz/gosale/domain"
	"github.com/x-xyz/gosale/domain/provider"
	"github.com/x-xyz/gosale/service/chain"
)

type erc20Payment struct {
	chainService chain.Client
	chainId      int32
}

// NewErc20Payment moves erc20 value through the vault account. Collect
// pulls a pre approved allowance from the payer, Pay pushes from the
// vault balance.
func NewErc20Payment(chainService chain.Client, chainId int32) provider.PaymentTransfer {
	return &erc20Payment{chainService: chainService, chainId: chainId}
}

func (p *erc20Payment) Collect(c bCtx.Ctx, from domain.Address, amount *big.Int, currency domain.Address) error {
	txHash, err := p.chainService.Send(c, p.chainId, common.HexToAddress(string(currency)), baseabi.ERC20TokenABI, "transferFrom",
		common.HexToAddress(string(from)), p.chainService.Signer(), amount)
	if err != nil {
		c.WithFields(log.Fields{
			"err":      err,
			"from":     from,
			"amount":   amount.String(),
			"currency": currency,
		}).Error("payment collect failed")
		return domain.ErrInsufficientPayment
	}
	c.WithFields(log.Fields{
		"tx":     txHash.Hex(),
		"from":   from,
		"amount": amount.String(),
	}).Info("payment collected")
	return nil
}

func (p *erc20Payment) Pay(c bCtx.Ctx, to domain.Address, amount *big.Int, currency domain.Address) error {
	txHash, err := p.chainService.Send(c, p.chainId, common.HexToAddress(string(currency)), baseabi.ERC20TokenABI, "transfer",
		common.HexToAddress(string(to)), amount)
	if err != nil {
		c.WithFields(log.Fields{
			"err":      err,
			"to":       to,
			"amount":   amount.String(),
			"currency": currency,
		}).Error("payment failed")
		return domain.ErrTransferFailed
	}
	c.WithFields(log.Fields{
		"tx":     txHash.Hex(),
		"to":     to,
		"amount": amount.String(),
	}).Info("payment sent")
	return nil
}
