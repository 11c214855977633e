// Package bridge binds the LayerZero Aptos bridge contract on the source
// chain: fee quoting and the ETH transfer entry point.
package bridge

import (
	"context"
	"encoding/binary"
	"fmt"
	"math/big"
	"strings"

	"github.com/ethereum/go-ethereum/accounts/abi"
	"github.com/ethereum/go-ethereum/accounts/abi/bind"
	"github.com/ethereum/go-ethereum/common"
	"github.com/ethereum/go-ethereum/core/types"
)

// Fixed relay parameters for the Aptos adapter: gas units funded for the
// destination-side execution and the octas airdropped to the recipient.
const (
	AptosGasBudget = 10000
	AptosAirdrop   = 520400

	adapterParamsVersion = 2
)

const bridgeABI = `[
	{
		"name": "quoteForSend",
		"type": "function",
		"stateMutability": "view",
		"inputs": [
			{"name": "callParams", "type": "tuple", "components": [
				{"name": "refundAddress", "type": "address"},
				{"name": "zroPaymentAddress", "type": "address"}
			]},
			{"name": "adapterParams", "type": "bytes"}
		],
		"outputs": [
			{"name": "nativeFee", "type": "uint256"},
			{"name": "zroFee", "type": "uint256"}
		]
	},
	{
		"name": "sendETHToAptos",
		"type": "function",
		"stateMutability": "payable",
		"inputs": [
			{"name": "toAddress", "type": "bytes32"},
			{"name": "amountLD", "type": "uint256"},
			{"name": "callParams", "type": "tuple", "components": [
				{"name": "refundAddress", "type": "address"},
				{"name": "zroPaymentAddress", "type": "address"}
			]},
			{"name": "adapterParams", "type": "bytes"}
		],
		"outputs": []
	}
]`

// One bridge contract per supported source chain.
var contractByChainID = map[uint64]common.Address{
	1:     common.HexToAddress("0x50002cdfe7ccb0c41f519c6eb0653158d11cd907"),
	10:    common.HexToAddress("0x86Bb63148d17d445Ed5398ef26Aa05Bf76dD5b59"),
	42161: common.HexToAddress("0x1BAcC2205312534375c8d1801C27D28370656cFf"),
}

// CallParams mirrors the contract's LzLib.CallParams tuple.
type CallParams struct {
	RefundAddress     common.Address
	ZroPaymentAddress common.Address
}

type AptosBridge struct {
	address  common.Address
	contract *bind.BoundContract
}

func New(chainID *big.Int, backend bind.ContractBackend) (*AptosBridge, error) {
	address, ok := contractByChainID[chainID.Uint64()]
	if !ok {
		return nil, fmt.Errorf("network chain_id=%s is not supported", chainID.String())
	}
	parsed, err := abi.JSON(strings.NewReader(bridgeABI))
	if err != nil {
		return nil, fmt.Errorf("failed to parse bridge abi: %w", err)
	}
	return &AptosBridge{
		address:  address,
		contract: bind.NewBoundContract(address, parsed, backend, backend, backend),
	}, nil
}

func (b *AptosBridge) Address() common.Address {
	return b.address
}

// AdapterParams packs the version-2 adapter parameter blob the same way
// abi.encodePacked(uint16, uint256, uint256, bytes) does.
func AdapterParams(aptosAddr [32]byte) []byte {
	buf := make([]byte, 0, 2+32+32+len(aptosAddr))
	buf = binary.BigEndian.AppendUint16(buf, adapterParamsVersion)
	buf = append(buf, common.LeftPadBytes(big.NewInt(AptosGasBudget).Bytes(), 32)...)
	buf = append(buf, common.LeftPadBytes(big.NewInt(AptosAirdrop).Bytes(), 32)...)
	buf = append(buf, aptosAddr[:]...)
	return buf
}

func callParams(sender common.Address) CallParams {
	return CallParams{
		RefundAddress:     sender,
		ZroPaymentAddress: common.Address{},
	}
}

// QuoteForSend asks the bridge what native fee is required to relay a
// transfer to the given Aptos address. The quote depends only on the
// destination address and the fixed adapter parameters.
func (b *AptosBridge) QuoteForSend(ctx context.Context, sender common.Address, aptosAddr [32]byte) (*big.Int, error) {
	var out []interface{}
	err := b.contract.Call(
		&bind.CallOpts{Context: ctx, From: sender},
		&out,
		"quoteForSend",
		callParams(sender),
		AdapterParams(aptosAddr),
	)
	if err != nil {
		return nil, &QuoteError{Err: err}
	}
	nativeFee, ok := out[0].(*big.Int)
	if !ok {
		return nil, &QuoteError{Err: fmt.Errorf("unexpected quoteForSend output: %v", out)}
	}
	return nativeFee, nil
}

// SendETHToAptos submits the bridge transfer. transferAmount, the tx value,
// must equal amount plus the quoted native fee.
func (b *AptosBridge) SendETHToAptos(
	opts *bind.TransactOpts,
	aptosAddr [32]byte,
	amount *big.Int,
	transferAmount *big.Int,
) (*types.Transaction, error) {
	opts.Value = transferAmount
	tx, err := b.contract.Transact(
		opts,
		"sendETHToAptos",
		aptosAddr,
		amount,
		callParams(opts.From),
		AdapterParams(aptosAddr),
	)
	if err != nil {
		return nil, &SubmissionError{Err: err}
	}
	return tx, nil
}

// TransferAmount is the total value attached to a bridge send.
func TransferAmount(amount, nativeFee *big.Int) *big.Int {
	return new(big.Int).Add(amount, nativeFee)
}
