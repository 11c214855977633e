package trader

import (
	sdk "github.com/aptos-labs/aptos-go-sdk"
	"github.com/ethereum/go-ethereum/common"
)

// Result is the outcome of one wallet's run. The driving loop inspects it
// instead of relying on error propagation across wallets.
type Result struct {
	Wallet      int
	SrcAddress  common.Address
	DestAddress sdk.AccountAddress

	TransferTx common.Hash
	RegisterTx string
	ClaimTx    string

	// Bootstrapped is true when the register and claim sequence ran.
	Bootstrapped bool

	Err error
}

func (r Result) Failed() bool {
	return r.Err != nil
}
