package bridge

import (
	"fmt"
	"math/big"

	"github.com/asluchevskiy/layerzero-aptos/pkg/shared"
)

// QuoteError wraps a failed fee quote call.
type QuoteError struct {
	Err error
}

func (e *QuoteError) Error() string { return fmt.Sprintf("bridge fee quote failed: %s", e.Err) }
func (e *QuoteError) Unwrap() error { return e.Err }

// SubmissionError wraps a failed transfer submission.
type SubmissionError struct {
	Err error
}

func (e *SubmissionError) Error() string { return fmt.Sprintf("bridge send failed: %s", e.Err) }
func (e *SubmissionError) Unwrap() error { return e.Err }

// InsufficientFundsError reports a source balance below the required
// transfer amount. Both values are rendered in ETH for the log.
type InsufficientFundsError struct {
	Balance  *big.Int
	Required *big.Int
}

func (e *InsufficientFundsError) Error() string {
	return fmt.Sprintf("low balance: %s ETH < %s ETH",
		shared.WeiToEthString(e.Balance), shared.WeiToEthString(e.Required))
}

// CheckBalance enforces the pre-signing funds invariant: a transfer is
// never submitted when the balance cannot cover amount plus fee.
func CheckBalance(balance, required *big.Int) error {
	if balance.Cmp(required) < 0 {
		return &InsufficientFundsError{
			Balance:  new(big.Int).Set(balance),
			Required: new(big.Int).Set(required),
		}
	}
	return nil
}
