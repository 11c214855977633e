package wallet

import (
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/require"
)

const (
	testEthKey   = "fad9c8855b740a0b7ed4c221dbad0f33a83a49cad6b3fe8d5817ac83d38b6a19"
	testAptosKey = "0x1111111111111111111111111111111111111111111111111111111111111111"
)

func writeWalletsFile(t *testing.T, content string) string {
	t.Helper()
	path := filepath.Join(t.TempDir(), "wallets.csv")
	require.NoError(t, os.WriteFile(path, []byte(content), 0600))
	return path
}

func TestLoadCSV(t *testing.T) {
	t.Parallel()

	path := writeWalletsFile(t,
		"private_key,aptos_private_key\n"+
			"0x"+testEthKey+","+testAptosKey+"\n"+
			testEthKey+","+testAptosKey+"\n")

	wallets, err := LoadCSV(path)
	require.NoError(t, err)
	require.Len(t, wallets, 2)

	// 0x prefix on the eth key is optional, both rows hold the same key.
	require.Equal(t, wallets[0].EthAddress, wallets[1].EthAddress)
	require.Equal(t, 0, wallets[0].Index)
	require.Equal(t, 1, wallets[1].Index)
	require.NotNil(t, wallets[0].Aptos)
	require.Equal(t, wallets[0].Aptos.Address, wallets[1].Aptos.Address)
}

func TestLoadCSVInvalidEthKey(t *testing.T) {
	t.Parallel()

	path := writeWalletsFile(t,
		"private_key,aptos_private_key\n"+
			"not-a-key,"+testAptosKey+"\n")

	_, err := LoadCSV(path)
	require.Error(t, err)

	var vErr *ValidationError
	require.ErrorAs(t, err, &vErr)
	require.Equal(t, 2, vErr.Line)
	require.Equal(t, "private_key", vErr.Field)
}

func TestLoadCSVInvalidAptosKey(t *testing.T) {
	t.Parallel()

	path := writeWalletsFile(t,
		"private_key,aptos_private_key\n"+
			testEthKey+",xyz\n")

	_, err := LoadCSV(path)
	require.Error(t, err)

	var vErr *ValidationError
	require.ErrorAs(t, err, &vErr)
	require.Equal(t, "aptos_private_key", vErr.Field)
}

func TestLoadCSVMissingColumns(t *testing.T) {
	t.Parallel()

	path := writeWalletsFile(t, "address,memo\nfoo,bar\n")

	_, err := LoadCSV(path)
	require.Error(t, err)
	require.Contains(t, err.Error(), "must have private_key and aptos_private_key columns")
}

func TestLoadCSVEmpty(t *testing.T) {
	t.Parallel()

	path := writeWalletsFile(t, "private_key,aptos_private_key\n")

	_, err := LoadCSV(path)
	require.Error(t, err)
	require.Contains(t, err.Error(), "no wallet records")
}
