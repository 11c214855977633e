package aptos

import (
	"testing"

	sdk "github.com/aptos-labs/aptos-go-sdk"
	"github.com/stretchr/testify/require"
)

func TestRegisterPayload(t *testing.T) {
	t.Parallel()

	payload, err := RegisterPayload()
	require.NoError(t, err)

	entry, ok := payload.Payload.(*sdk.EntryFunction)
	require.True(t, ok)
	require.Equal(t, sdk.AccountOne, entry.Module.Address)
	require.Equal(t, "managed_coin", entry.Module.Name)
	require.Equal(t, "register", entry.Function)
	require.Len(t, entry.ArgTypes, 1)
	require.Equal(t, WETHAssetType, entry.ArgTypes[0].String())
	require.Empty(t, entry.Args)
}

func TestClaimPayload(t *testing.T) {
	t.Parallel()

	payload, err := ClaimPayload()
	require.NoError(t, err)

	entry, ok := payload.Payload.(*sdk.EntryFunction)
	require.True(t, ok)

	var bridgeAddr sdk.AccountAddress
	require.NoError(t, bridgeAddr.ParseStringRelaxed(CoinBridgeAddress))
	require.Equal(t, bridgeAddr, entry.Module.Address)
	require.Equal(t, "coin_bridge", entry.Module.Name)
	require.Equal(t, "claim_coin", entry.Function)
	require.Len(t, entry.ArgTypes, 1)
	require.Equal(t, WETHAssetType, entry.ArgTypes[0].String())
	require.Empty(t, entry.Args)
}
