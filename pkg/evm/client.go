// Package evm wraps the source chain RPC client: balance and gas price
// reads, the optional gas price gate, and explorer link formatting.
package evm

import (
	"context"
	"crypto/ecdsa"
	"fmt"
	"math/big"
	"strings"

	"github.com/ethereum/go-ethereum/accounts/abi/bind"
	"github.com/ethereum/go-ethereum/common"
	"github.com/ethereum/go-ethereum/ethclient"
	"github.com/ethereum/go-ethereum/params"
	"github.com/rs/zerolog/log"

	"github.com/asluchevskiy/layerzero-aptos/pkg/poll"
	"github.com/asluchevskiy/layerzero-aptos/pkg/shared"
)

type Client struct {
	Raw         *ethclient.Client
	chainID     *big.Int
	explorerUrl string
}

func Dial(ctx context.Context, rpcUrl, explorerUrl string) (*Client, error) {
	rawClient, err := ethclient.Dial(rpcUrl)
	if err != nil {
		return nil, fmt.Errorf("failed to dial source chain rpc: %w", err)
	}
	chainID, err := rawClient.ChainID(ctx)
	if err != nil {
		return nil, fmt.Errorf("failed to get source chain id: %w", err)
	}
	log.Debug().Msg("Source chain id: " + chainID.String())

	return &Client{
		Raw:         rawClient,
		chainID:     chainID,
		explorerUrl: strings.TrimSuffix(explorerUrl, "/"),
	}, nil
}

func (c *Client) ChainID() *big.Int {
	return c.chainID
}

func (c *Client) Balance(ctx context.Context, addr common.Address) (*big.Int, error) {
	balance, err := c.Raw.BalanceAt(ctx, addr, nil)
	if err != nil {
		return nil, fmt.Errorf("failed to get balance for %s: %w", addr.Hex(), err)
	}
	return balance, nil
}

// GasPriceGwei reads the suggested gas price in gwei.
func (c *Client) GasPriceGwei(ctx context.Context) (float64, error) {
	gasPrice, err := c.Raw.SuggestGasPrice(ctx)
	if err != nil {
		return 0, fmt.Errorf("failed to get gas price: %w", err)
	}
	gwei := new(big.Float).Quo(
		new(big.Float).SetInt(gasPrice),
		new(big.Float).SetInt64(params.GWei),
	)
	res, _ := gwei.Float64()
	return res, nil
}

// WaitForGasPrice blocks until the observed gas price is at or below
// maxGwei. A read failure aborts the wait rather than being retried.
func (c *Client) WaitForGasPrice(ctx context.Context, maxGwei float64, poller *poll.Poller) error {
	_, err := poll.Until(ctx, poller, func(ctx context.Context) (float64, bool, error) {
		gwei, err := c.GasPriceGwei(ctx)
		if err != nil {
			return 0, false, err
		}
		if gwei > maxGwei {
			log.Debug().Msgf("gas price %.2f gwei is above the %.2f gwei ceiling, waiting...", gwei, maxGwei)
			return 0, false, nil
		}
		return gwei, true, nil
	})
	return err
}

// TransactOpts prepares signed-transaction options for the given key with
// current nonce and fee suggestions.
func (c *Client) TransactOpts(ctx context.Context, privateKey *ecdsa.PrivateKey) (*bind.TransactOpts, error) {
	return shared.CreateTransactOpts(ctx, privateKey, c.chainID, c.Raw)
}

func (c *Client) ExplorerTxUrl(txHash common.Hash) string {
	return fmt.Sprintf("%s/tx/%s", c.explorerUrl, txHash.Hex())
}

func (c *Client) ExplorerAddressUrl(addr common.Address) string {
	return fmt.Sprintf("%s/address/%s", c.explorerUrl, addr.Hex())
}
