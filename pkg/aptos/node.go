// Package aptos wraps the destination chain node: account reads that
// tolerate never-funded accounts, simulate-then-commit transaction
// submission, and explorer link formatting.
package aptos

import (
	"errors"
	"fmt"
	"strings"

	sdk "github.com/aptos-labs/aptos-go-sdk"
	"github.com/rs/zerolog/log"
)

type Node struct {
	client      *sdk.Client
	explorerUrl string
}

func NewNode(rpcUrl, explorerUrl string) (*Node, error) {
	client, err := sdk.NewClient(sdk.NetworkConfig{
		Name:    "aptos",
		NodeUrl: rpcUrl,
	})
	if err != nil {
		return nil, fmt.Errorf("failed to create aptos client: %w", err)
	}
	return &Node{
		client:      client,
		explorerUrl: strings.TrimSuffix(explorerUrl, "/"),
	}, nil
}

// Balance returns the APT balance in octas. An account the chain has never
// seen reads as zero.
func (n *Node) Balance(address sdk.AccountAddress) (uint64, error) {
	balance, err := n.client.AccountAPTBalance(address)
	if err != nil {
		if isNotFound(err) {
			return 0, nil
		}
		return 0, fmt.Errorf("failed to get aptos balance for %s: %w", address.String(), err)
	}
	return balance, nil
}

// SequenceNumber reads the account's transaction counter. The second
// return value is false when the account does not exist on chain yet;
// any other read failure is surfaced to the caller.
func (n *Node) SequenceNumber(address sdk.AccountAddress) (uint64, bool, error) {
	info, err := n.client.Account(address)
	if err != nil {
		if isNotFound(err) {
			return 0, false, nil
		}
		return 0, false, fmt.Errorf("failed to get aptos account %s: %w", address.String(), err)
	}
	seq, err := accountSequence(info)
	if err != nil {
		return 0, false, fmt.Errorf("failed to read aptos account %s: %w", address.String(), err)
	}
	return seq, true, nil
}

func accountSequence(info sdk.AccountInfo) (uint64, error) {
	seq, err := info.SequenceNumber()
	if err != nil {
		return 0, fmt.Errorf("failed to parse sequence number %q: %w", info.SequenceNumberStr, err)
	}
	return seq, nil
}

// WaitForTransaction blocks until the node confirms the transaction,
// bounded by the SDK's own confirmation timeout.
func (n *Node) WaitForTransaction(txHash string) error {
	txn, err := n.client.WaitForTransaction(txHash)
	if err != nil {
		return &ConfirmationError{TxHash: txHash, Err: err}
	}
	if !txn.Success {
		return &ConfirmationError{TxHash: txHash, Err: fmt.Errorf("vm status: %s", txn.VmStatus)}
	}
	log.Debug().Msgf("aptos tx %s confirmed", txHash)
	return nil
}

func (n *Node) ExplorerTxUrl(txHash string) string {
	return fmt.Sprintf("%s/txn/%s", n.explorerUrl, txHash)
}

func (n *Node) ExplorerAddressUrl(address sdk.AccountAddress) string {
	return fmt.Sprintf("%s/account/%s", n.explorerUrl, address.String())
}

func isNotFound(err error) bool {
	var httpErr *sdk.HttpError
	if errors.As(err, &httpErr) {
		return httpErr.StatusCode == 404
	}
	msg := strings.ToLower(err.Error())
	return strings.Contains(msg, "not found") || strings.Contains(msg, "resource_not_found")
}
