package abi

import (
	"strings"

	"github.com/ethereum/go-ethereum/accounts/abi"
)

// RoyaltyInfoABI covers the EIP-2981 royalty interface
var RoyaltyInfoABI abi.ABI

var royaltyInfoABI = `[{"type":"function","name":"royaltyInfo","constant":true,"stateMutability":"view","payable":false,"inputs":[{"type":"uint256","name":"_tokenId"},{"type":"uint256","name":"_salePrice"}],"outputs":[{"type":"address","name":"receiver"},{"type":"uint256","name":"royaltyAmount"}]},{"type":"function","name":"supportsInterface","constant":true,"stateMutability":"view","payable":false,"inputs":[{"type":"bytes4","name":"interfaceID"}],"outputs":[{"type":"bool"}]}]`

func init() {
	_abi, err := abi.JSON(strings.NewReader(royaltyInfoABI))
	if err != nil {
		panic("Failed to parse royaltyInfo abi")
	}
	RoyaltyInfoABI = _abi
}
