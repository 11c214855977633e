// Package trader drives the per-wallet withdrawal flow: quote the bridge
// fee, send ETH to the bridge, wait for the APT deposit on the destination
// side and bootstrap fresh accounts with register and claim transactions.
// Wallets are processed strictly one after another with randomized pacing.
package trader

import (
	"context"
	"crypto/ecdsa"
	"errors"
	"math/big"
	mathrand "math/rand"
	"time"

	sdk "github.com/aptos-labs/aptos-go-sdk"
	"github.com/ethereum/go-ethereum/accounts/abi/bind"
	"github.com/ethereum/go-ethereum/common"
	"github.com/ethereum/go-ethereum/core/types"
	"github.com/rs/zerolog/log"

	"github.com/asluchevskiy/layerzero-aptos/pkg/config"
	"github.com/asluchevskiy/layerzero-aptos/pkg/metrics"
	"github.com/asluchevskiy/layerzero-aptos/pkg/poll"
	"github.com/asluchevskiy/layerzero-aptos/pkg/wallet"
)

// Requested amounts are rounded to this many decimal places of ETH.
const amountDecimals = 2

type sourceClient interface {
	Balance(ctx context.Context, addr common.Address) (*big.Int, error)
	WaitForGasPrice(ctx context.Context, maxGwei float64, poller *poll.Poller) error
	TransactOpts(ctx context.Context, privateKey *ecdsa.PrivateKey) (*bind.TransactOpts, error)
	ExplorerTxUrl(txHash common.Hash) string
	ExplorerAddressUrl(addr common.Address) string
}

type bridgeContract interface {
	QuoteForSend(ctx context.Context, sender common.Address, aptosAddr [32]byte) (*big.Int, error)
	SendETHToAptos(opts *bind.TransactOpts, aptosAddr [32]byte, amount, transferAmount *big.Int) (*types.Transaction, error)
}

type destNode interface {
	Balance(addr sdk.AccountAddress) (uint64, error)
	SequenceNumber(addr sdk.AccountAddress) (uint64, bool, error)
	SendTransaction(account *sdk.Account, payload sdk.TransactionPayload) (string, error)
	WaitForTransaction(txHash string) error
	ExplorerTxUrl(txHash string) string
	ExplorerAddressUrl(addr sdk.AccountAddress) string
}

type Trader struct {
	cfg     *config.Config
	src     sourceClient
	bridge  bridgeContract
	dest    destNode
	metrics *metrics.Client

	depositPoller *poll.Poller
	gasPoller     *poll.Poller
	sleep         poll.SleepFunc
}

type Option func(*Trader)

// WithSleepFunc replaces every wait in the trader (deposit poll, gas gate,
// pacing delays) for deterministic tests.
func WithSleepFunc(fn poll.SleepFunc) Option {
	return func(t *Trader) {
		t.sleep = fn
	}
}

func New(
	cfg *config.Config,
	src sourceClient,
	bridgeContract bridgeContract,
	dest destNode,
	metricsClient *metrics.Client,
	opts ...Option,
) *Trader {
	t := &Trader{
		cfg:     cfg,
		src:     src,
		bridge:  bridgeContract,
		dest:    dest,
		metrics: metricsClient,
	}
	for _, opt := range opts {
		opt(t)
	}

	pollOpts := []poll.Option{}
	if t.sleep != nil {
		pollOpts = append(pollOpts, poll.WithSleepFunc(t.sleep))
	}
	t.depositPoller = poll.New(
		time.Duration(cfg.Delay.DepositPoll.MinSec)*time.Second,
		time.Duration(cfg.Delay.DepositPoll.MaxSec)*time.Second,
		pollOpts...,
	)
	t.gasPoller = poll.New(
		time.Duration(cfg.Delay.GasPoll.MinSec)*time.Second,
		time.Duration(cfg.Delay.GasPoll.MaxSec)*time.Second,
		pollOpts...,
	)
	return t
}

// Run processes every wallet in order. A wallet failure is logged and
// recorded, never propagated: the next wallet still gets its turn. Only
// context cancellation stops the loop early.
func (t *Trader) Run(ctx context.Context, wallets []wallet.Wallet) []Result {
	results := make([]Result, 0, len(wallets))
	for i, w := range wallets {
		log.Info().Msgf("processing wallet %d of %d", i+1, len(wallets))

		res := t.processWallet(ctx, w)
		if res.Err != nil {
			log.Error().Err(res.Err).Msgf("wallet %d abandoned", i+1)
		}
		results = append(results, res)

		t.metrics.PostWalletResult(res.Err == nil, []string{
			"network:" + t.cfg.WorkingNetwork,
			"account_addr:" + w.EthAddress.Hex(),
		})

		if errors.Is(res.Err, context.Canceled) || ctx.Err() != nil {
			break
		}
		if i < len(wallets)-1 {
			if err := t.randomDelay(ctx, t.cfg.Delay.Wallet); err != nil {
				break
			}
		}
	}
	return results
}

func (t *Trader) randomDelay(ctx context.Context, r config.DelayRange) error {
	sec := r.MinSec
	if r.MaxSec > r.MinSec {
		sec = r.MinSec + mathrand.Intn(r.MaxSec-r.MinSec+1)
	}
	log.Debug().Msgf("delay for %d sec", sec)
	if t.sleep != nil {
		return t.sleep(ctx, time.Duration(sec)*time.Second)
	}
	select {
	case <-ctx.Done():
		return ctx.Err()
	case <-time.After(time.Duration(sec) * time.Second):
		return nil
	}
}

func (t *Trader) waitForDeposit(ctx context.Context, addr sdk.AccountAddress) (uint64, error) {
	return poll.Until(ctx, t.depositPoller, func(ctx context.Context) (uint64, bool, error) {
		balance, err := t.dest.Balance(addr)
		if err != nil {
			return 0, false, err
		}
		if balance == 0 {
			return 0, false, nil
		}
		return balance, true, nil
	})
}

func aptosAddrBytes(addr sdk.AccountAddress) [32]byte {
	return [32]byte(addr)
}
