package aptos

import "fmt"

// SimulationError wraps a failed dry run. When the transport succeeded but
// the VM rejected the transaction, VmStatus carries the VM's verdict.
type SimulationError struct {
	VmStatus string
	Err      error
}

func (e *SimulationError) Error() string {
	if e.Err == nil {
		return fmt.Sprintf("aptos simulation rejected: %s", e.VmStatus)
	}
	return fmt.Sprintf("aptos simulation failed: %s", e.Err)
}

func (e *SimulationError) Unwrap() error { return e.Err }

// SubmissionError wraps a failed build, sign or broadcast of the real
// transaction.
type SubmissionError struct {
	Err error
}

func (e *SubmissionError) Error() string { return fmt.Sprintf("aptos submission failed: %s", e.Err) }
func (e *SubmissionError) Unwrap() error { return e.Err }

// ConfirmationError reports a transaction the chain did not confirm within
// the node's own wait bound, or confirmed as failed.
type ConfirmationError struct {
	TxHash string
	Err    error
}

func (e *ConfirmationError) Error() string {
	return fmt.Sprintf("aptos tx %s not confirmed: %s", e.TxHash, e.Err)
}

func (e *ConfirmationError) Unwrap() error { return e.Err }
