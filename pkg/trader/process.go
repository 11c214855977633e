package trader

import (
	"context"

	"github.com/rs/zerolog/log"

	"github.com/asluchevskiy/layerzero-aptos/pkg/bridge"
	"github.com/asluchevskiy/layerzero-aptos/pkg/shared"
	"github.com/asluchevskiy/layerzero-aptos/pkg/wallet"
)

// processWallet runs the full withdrawal flow for one wallet. Any error
// abandons this wallet only; the result carries what happened either way.
func (t *Trader) processWallet(ctx context.Context, w wallet.Wallet) Result {
	res := Result{
		Wallet:      w.Index,
		SrcAddress:  w.EthAddress,
		DestAddress: w.Aptos.Address,
	}

	srcBalance, err := t.src.Balance(ctx, w.EthAddress)
	if err != nil {
		res.Err = err
		return res
	}

	aptosBalance, err := t.dest.Balance(w.Aptos.Address)
	if err != nil {
		res.Err = err
		return res
	}
	_, seqFound, err := t.dest.SequenceNumber(w.Aptos.Address)
	if err != nil {
		res.Err = err
		return res
	}
	// The chain has no record of the account at all: it was never funded
	// and never transacted.
	isNewAccount := !seqFound && aptosBalance == 0

	log.Info().Msgf("%s (%s ETH)", w.EthAddress.Hex(), shared.WeiToEthString(srcBalance))
	log.Debug().Msg(t.src.ExplorerAddressUrl(w.EthAddress))
	newAccStr := ""
	if isNewAccount {
		newAccStr = " NEW ACCOUNT"
	}
	log.Info().Msgf("%s (%v APT)%s", w.Aptos.Address.String(), shared.OctasToAPT(aptosBalance), newAccStr)
	log.Debug().Msg(t.dest.ExplorerAddressUrl(w.Aptos.Address))

	amountETH := shared.RandomAmount(t.cfg.Amount.MinETH, t.cfg.Amount.MaxETH, amountDecimals)

	if maxGwei := t.cfg.Source().MaxGwei; maxGwei > 0 {
		if err := t.src.WaitForGasPrice(ctx, maxGwei, t.gasPoller); err != nil {
			res.Err = err
			return res
		}
	}

	aptosAddr := aptosAddrBytes(w.Aptos.Address)

	nativeFee, err := t.bridge.QuoteForSend(ctx, w.EthAddress, aptosAddr)
	if err != nil {
		res.Err = err
		return res
	}

	amountWei := shared.EthToWei(amountETH)
	transferAmount := bridge.TransferAmount(amountWei, nativeFee)
	if err := bridge.CheckBalance(srcBalance, transferAmount); err != nil {
		res.Err = err
		return res
	}

	log.Debug().Msgf("Transferring %v ETH -> Aptos...", amountETH)
	opts, err := t.src.TransactOpts(ctx, w.EthKey)
	if err != nil {
		res.Err = err
		return res
	}
	tx, err := t.bridge.SendETHToAptos(opts, aptosAddr, amountWei, transferAmount)
	if err != nil {
		res.Err = err
		return res
	}
	res.TransferTx = tx.Hash()
	log.Debug().Msg(t.src.ExplorerTxUrl(tx.Hash()))

	seq, seqFound, err := t.dest.SequenceNumber(w.Aptos.Address)
	if err != nil {
		res.Err = err
		return res
	}
	if !isNewAccount && seqFound && seq != 0 {
		// Account already registered and claimed before, nothing to bootstrap.
		return res
	}

	balance, err := t.dest.Balance(w.Aptos.Address)
	if err != nil {
		res.Err = err
		return res
	}
	if balance == 0 {
		log.Debug().Msg("waiting for APT deposit...")
		balance, err = t.waitForDeposit(ctx, w.Aptos.Address)
		if err != nil {
			res.Err = err
			return res
		}
	}
	log.Debug().Msgf("APT deposit observed: %v APT", shared.OctasToAPT(balance))

	if err := t.bootstrap(ctx, w, &res); err != nil {
		res.Err = err
		return res
	}
	res.Bootstrapped = true
	return res
}
