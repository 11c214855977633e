package trader

import (
	"context"

	"github.com/rs/zerolog/log"

	"github.com/asluchevskiy/layerzero-aptos/pkg/aptos"
	"github.com/asluchevskiy/layerzero-aptos/pkg/wallet"
)

// bootstrap initializes a freshly funded destination account: register the
// WETH coin store, wait for that tx to confirm, then claim the bridged
// funds. Claim is never attempted unless register confirmed.
func (t *Trader) bootstrap(ctx context.Context, w wallet.Wallet, res *Result) error {
	log.Debug().Msg("sending REGISTER & CLAIM transactions...")

	registerPayload, err := aptos.RegisterPayload()
	if err != nil {
		return err
	}
	registerTx, err := t.dest.SendTransaction(w.Aptos, registerPayload)
	if err != nil {
		return err
	}
	res.RegisterTx = registerTx
	log.Debug().Msg(t.dest.ExplorerTxUrl(registerTx))

	if err := t.dest.WaitForTransaction(registerTx); err != nil {
		return err
	}

	if err := t.randomDelay(ctx, t.cfg.Delay.Transaction); err != nil {
		return err
	}

	claimPayload, err := aptos.ClaimPayload()
	if err != nil {
		return err
	}
	claimTx, err := t.dest.SendTransaction(w.Aptos, claimPayload)
	if err != nil {
		return err
	}
	res.ClaimTx = claimTx
	log.Debug().Msg(t.dest.ExplorerTxUrl(claimTx))

	return nil
}
