package aptos

import (
	"fmt"

	sdk "github.com/aptos-labs/aptos-go-sdk"
)

// LayerZero coin bridge module on Aptos and the bridged WETH asset it manages.
const (
	CoinBridgeAddress = "0xf22bede237a07e121b56d91a491eb7bcdfd1f5907926a9e58338f964a01b17fa"
	WETHAssetType     = CoinBridgeAddress + "::asset::WETH"
)

func bridgeAddress() (sdk.AccountAddress, error) {
	var addr sdk.AccountAddress
	if err := addr.ParseStringRelaxed(CoinBridgeAddress); err != nil {
		return sdk.AccountAddress{}, fmt.Errorf("failed to parse coin bridge address: %w", err)
	}
	return addr, nil
}

func wethTypeTag() (sdk.TypeTag, error) {
	addr, err := bridgeAddress()
	if err != nil {
		return sdk.TypeTag{}, err
	}
	return sdk.NewTypeTag(&sdk.StructTag{
		Address: addr,
		Module:  "asset",
		Name:    "WETH",
	}), nil
}

// RegisterPayload builds the 0x1::managed_coin::register call that creates
// the wallet's WETH coin store. Required once before claiming.
func RegisterPayload() (sdk.TransactionPayload, error) {
	assetTag, err := wethTypeTag()
	if err != nil {
		return sdk.TransactionPayload{}, err
	}
	return sdk.TransactionPayload{
		Payload: &sdk.EntryFunction{
			Module:   sdk.ModuleId{Address: sdk.AccountOne, Name: "managed_coin"},
			Function: "register",
			ArgTypes: []sdk.TypeTag{assetTag},
			Args:     [][]byte{},
		},
	}, nil
}

// ClaimPayload builds the coin_bridge::claim_coin call that moves the
// bridged WETH from the bridge's escrow into the registered store.
func ClaimPayload() (sdk.TransactionPayload, error) {
	bridgeAddr, err := bridgeAddress()
	if err != nil {
		return sdk.TransactionPayload{}, err
	}
	assetTag, err := wethTypeTag()
	if err != nil {
		return sdk.TransactionPayload{}, err
	}
	return sdk.TransactionPayload{
		Payload: &sdk.EntryFunction{
			Module:   sdk.ModuleId{Address: bridgeAddr, Name: "coin_bridge"},
			Function: "claim_coin",
			ArgTypes: []sdk.TypeTag{assetTag},
			Args:     [][]byte{},
		},
	}, nil
}
