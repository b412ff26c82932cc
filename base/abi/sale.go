package abi

import (
	"strings"

	"github.com/ethereum/go-ethereum/accounts/abi"
)

// SellerRegistryABI is the authorization registry consulted at listing creation
var SellerRegistryABI abi.ABI

// IdentityVerifierABI is the per-listing buyer gate
var IdentityVerifierABI abi.ABI

// PriceOracleABI quotes dynamic price listings
var PriceOracleABI abi.ABI

// LazyDelivererABI mints and delivers lazy assets at sale time
var LazyDelivererABI abi.ABI

var sellerRegistryABI = `[{"type":"function","name":"isAuthorized","constant":true,"stateMutability":"view","payable":false,"inputs":[{"type":"address","name":"seller"},{"type":"bytes","name":"data"}],"outputs":[{"type":"bool"}]}]`

var identityVerifierABI = `[{"type":"function","name":"verify","constant":true,"stateMutability":"view","payable":false,"inputs":[{"type":"address","name":"identity"},{"type":"uint256","name":"listingId"},{"type":"uint256","name":"count"},{"type":"uint256","name":"amount"},{"type":"bytes","name":"data"}],"outputs":[{"type":"bool"}]}]`

var priceOracleABI = `[{"type":"function","name":"quote","constant":true,"stateMutability":"view","payable":false,"inputs":[{"type":"uint256","name":"tokenId"},{"type":"uint256","name":"delivered"},{"type":"uint256","name":"count"}],"outputs":[{"type":"uint256"}]}]`

var lazyDelivererABI = `[{"type":"function","name":"deliver","constant":false,"payable":false,"inputs":[{"type":"address","name":"to"},{"type":"uint256","name":"tokenId"},{"type":"uint256","name":"count"},{"type":"uint256","name":"amount"},{"type":"address","name":"currency"},{"type":"uint256","name":"index"}],"outputs":[]}]`

func init() {
	for _, it := range []struct {
		raw  string
		dst  *abi.ABI
		name string
	}{
		{sellerRegistryABI, &SellerRegistryABI, "sellerRegistry"},
		{identityVerifierABI, &IdentityVerifierABI, "identityVerifier"},
		{priceOracleABI, &PriceOracleABI, "priceOracle"},
		{lazyDelivererABI, &LazyDelivererABI, "lazyDeliverer"},
	} {
		_abi, err := abi.JSON(strings.NewReader(it.raw))
		if err != nil {
			panic("Failed to parse " + it.name + " abi")
		}
		*it.dst = _abi
	}
}
