package chain

import (
	"crypto/ecdsa"
	"errors"
	"math/big"

	"github.com/ethereum/go-ethereum"
	"github.com/ethereum/go-ethereum/accounts/abi"
	"github.com/ethereum/go-ethereum/common"
	"github.com/ethereum/go-ethereum/core/types"
	"github.com/ethereum/go-ethereum/crypto"
	"github.com/ethereum/go-ethereum/ethclient"
	bCtx "github.com/x-xyz/gosale/base/ctx"
	"github.com/x-xyz/gosale/base/log"
)

var (
	ErrUnsupportedChain = errors.New("unsupported chain")
	ErrNoSigner         = errors.New("no signer configured")
)

type ClientCfg struct {
	RpcUrls map[int32]string
	// SignerKey is the hex encoded private key of the vault operator.
	// Leave empty to run the client read only.
	SignerKey string
}

type Client interface {
	Call(bCtx.Ctx, int32, common.Address, *big.Int, abi.ABI, string, ...interface{}) ([]interface{}, error)
	Send(bCtx.Ctx, int32, common.Address, abi.ABI, string, ...interface{}) (common.Hash, error)
	Signer() common.Address
}

type clientImpl struct {
	clients map[int32]*ethclient.Client
	key     *ecdsa.PrivateKey
	signer  common.Address
}

func NewClient(ctx bCtx.Ctx, cfg *ClientCfg) (Client, error) {
	var (
		anyerr error
	)
	clients := make(map[int32]*ethclient.Client)
	for chainId, url := range cfg.RpcUrls {
		client, err := ethclient.DialContext(ctx, url)
		if err != nil {
			anyerr = err
			ctx.WithFields(log.Fields{
				"err":     err,
				"chainId": chainId,
				"url":     url,
			}).Warn("failed to dial rpc")
			// soft warning, still let the server start
			continue
		}
		clients[chainId] = client
	}
	im := &clientImpl{clients: clients}
	if cfg.SignerKey != "" {
		key, err := crypto.HexToECDSA(cfg.SignerKey)
		if err != nil {
			ctx.WithField("err", err).Error("failed to parse signer key")
			return nil, err
		}
		im.key = key
		im.signer = crypto.PubkeyToAddress(key.PublicKey)
	}
	return im, anyerr
}

func (c *clientImpl) Signer() common.Address {
	return c.signer
}

func (c *clientImpl) Call(ctx bCtx.Ctx, chainId int32, addr common.Address, blk *big.Int, _abi abi.ABI, method string, params ...interface{}) ([]interface{}, error) {
	client, ok := c.clients[chainId]
	if !ok {
		return nil, ErrUnsupportedChain
	}

	data, err := _abi.Pack(method, params...)
	if err != nil {
		ctx.WithFields(log.Fields{
			"method": method,
			"params": params,
			"err":    err,
		}).Error("abi.Pack failed")
		return nil, err
	}
	msg := ethereum.CallMsg{
		To:   &addr,
		Data: data,
	}
	res, err := client.CallContract(ctx, msg, blk)
	if err != nil {
		ctx.WithField("err", err).Error("client.CallContract failed")
		return nil, err
	}
	unpacked, err := _abi.Unpack(method, res)
	if err != nil {
		ctx.WithField("err", err).Error("abi.Unpack failed")
		return nil, err
	}
	return unpacked, nil
}

func (c *clientImpl) Send(ctx bCtx.Ctx, chainId int32, addr common.Address, _abi abi.ABI, method string, params ...interface{}) (common.Hash, error) {
	client, ok := c.clients[chainId]
	if !ok {
		return common.Hash{}, ErrUnsupportedChain
	}
	if c.key == nil {
		return common.Hash{}, ErrNoSigner
	}

	data, err := _abi.Pack(method, params...)
	if err != nil {
		ctx.WithFields(log.Fields{
			"method": method,
			"params": params,
			"err":    err,
		}).Error("abi.Pack failed")
		return common.Hash{}, err
	}

	nonce, err := client.PendingNonceAt(ctx, c.signer)
	if err != nil {
		ctx.WithField("err", err).Error("client.PendingNonceAt failed")
		return common.Hash{}, err
	}
	gasPrice, err := client.SuggestGasPrice(ctx)
	if err != nil {
		ctx.WithField("err", err).Error("client.SuggestGasPrice failed")
		return common.Hash{}, err
	}
	gasLimit, err := client.EstimateGas(ctx, ethereum.CallMsg{
		From: c.signer,
		To:   &addr,
		Data: data,
	})
	if err != nil {
		ctx.WithFields(log.Fields{
			"method": method,
			"err":    err,
		}).Error("client.EstimateGas failed")
		return common.Hash{}, err
	}

	tx := types.NewTransaction(nonce, addr, big.NewInt(0), gasLimit, gasPrice, data)
	signed, err := types.SignTx(tx, types.LatestSignerForChainID(big.NewInt(int64(chainId))), c.key)
	if err != nil {
		ctx.WithField("err", err).Error("types.SignTx failed")
		return common.Hash{}, err
	}
	if err := client.SendTransaction(ctx, signed); err != nil {
		ctx.WithFields(log.Fields{
			"method": method,
			"tx":     signed.Hash().Hex(),
			"err":    err,
		}).Error("client.SendTransaction failed")
		return common.Hash{}, err
	}
	return signed.Hash(), nil
}
