// Package contract adapts on chain contracts to the capability
// interfaces the sale engine consumes. All implementations go through
// the shared chain.Client, with the vault account acting as the
// custodian for assets and collected payments.
package contract

import (
	"math/big"

	"golang.org/x/xerrors"

	"github.com/x-xyz/gosale/domain"
)

func bigInt(v int64) *big.Int {
	return big.NewInt(v)
}

func tokenIdToBig(id domain.TokenId) (*big.Int, error) {
	v, ok := new(big.Int).SetString(id.String(), 10)
	if !ok {
		return nil, xerrors.Errorf("invalid token id %q: %w", id.String(), domain.ErrBadParamInput)
	}
	return v, nil
}
