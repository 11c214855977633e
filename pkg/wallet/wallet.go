// Package wallet reads the operator's wallet list from a CSV file. A record
// must carry a usable key for both chains: every key is validated by
// constructing its signer before any wallet is processed, so a malformed
// key aborts the whole run up front.
package wallet

import (
	"crypto/ecdsa"
	"encoding/csv"
	"fmt"
	"os"
	"strings"

	aptossdk "github.com/aptos-labs/aptos-go-sdk"
	aptoscrypto "github.com/aptos-labs/aptos-go-sdk/crypto"
	"github.com/ethereum/go-ethereum/common"
	"github.com/ethereum/go-ethereum/crypto"
)

const (
	columnPrivateKey      = "private_key"
	columnAptosPrivateKey = "aptos_private_key"
)

// ValidationError reports a wallet record whose key failed to produce a signer.
type ValidationError struct {
	Line  int
	Field string
	Err   error
}

func (e *ValidationError) Error() string {
	return fmt.Sprintf("wallet record at line %d: invalid %s: %s", e.Line, e.Field, e.Err)
}

func (e *ValidationError) Unwrap() error { return e.Err }

type Wallet struct {
	Index      int
	EthKey     *ecdsa.PrivateKey
	EthAddress common.Address
	Aptos      *aptossdk.Account
}

// LoadCSV reads and validates the wallet file. The first row is a header
// that must contain private_key and aptos_private_key columns.
func LoadCSV(filePath string) ([]Wallet, error) {
	f, err := os.Open(filePath)
	if err != nil {
		return nil, fmt.Errorf("failed to open wallets file at: %s, %w", filePath, err)
	}
	defer f.Close()

	records, err := csv.NewReader(f).ReadAll()
	if err != nil {
		return nil, fmt.Errorf("failed to parse wallets file at: %s, %w", filePath, err)
	}
	if len(records) < 2 {
		return nil, fmt.Errorf("wallets file %s has no wallet records", filePath)
	}

	ethCol, aptosCol := -1, -1
	for i, name := range records[0] {
		switch strings.TrimSpace(name) {
		case columnPrivateKey:
			ethCol = i
		case columnAptosPrivateKey:
			aptosCol = i
		}
	}
	if ethCol < 0 || aptosCol < 0 {
		return nil, fmt.Errorf("wallets file %s must have %s and %s columns",
			filePath, columnPrivateKey, columnAptosPrivateKey)
	}

	wallets := make([]Wallet, 0, len(records)-1)
	for i, row := range records[1:] {
		line := i + 2
		if len(row) <= ethCol || len(row) <= aptosCol {
			return nil, &ValidationError{Line: line, Field: "record",
				Err: fmt.Errorf("expected at least %d columns, got %d", max(ethCol, aptosCol)+1, len(row))}
		}

		ethKey, err := parseEthKey(row[ethCol])
		if err != nil {
			return nil, &ValidationError{Line: line, Field: columnPrivateKey, Err: err}
		}

		aptosAccount, err := parseAptosKey(row[aptosCol])
		if err != nil {
			return nil, &ValidationError{Line: line, Field: columnAptosPrivateKey, Err: err}
		}

		wallets = append(wallets, Wallet{
			Index:      i,
			EthKey:     ethKey,
			EthAddress: crypto.PubkeyToAddress(ethKey.PublicKey),
			Aptos:      aptosAccount,
		})
	}
	return wallets, nil
}

func parseEthKey(raw string) (*ecdsa.PrivateKey, error) {
	s := strings.TrimPrefix(strings.TrimSpace(raw), "0x")
	return crypto.HexToECDSA(s)
}

func parseAptosKey(raw string) (*aptossdk.Account, error) {
	key := &aptoscrypto.Ed25519PrivateKey{}
	if err := key.FromHex(strings.TrimSpace(raw)); err != nil {
		return nil, err
	}
	return aptossdk.NewAccountFromSigner(key)
}
