package funding

import "fmt"

var (
	ErrInvalidAmount       = fmt.Errorf("amount must be greater than zero")
	ErrWalletNotFound      = fmt.Errorf("wallet not found")
	ErrTransactionNotFound = fmt.Errorf("funding transaction not found")
	ErrDuplicatePending    = fmt.Errorf("a matching transfer is already pending review")
	ErrProofRequired       = fmt.Errorf("proof of payment is required")
	ErrAmountMismatch      = fmt.Errorf("settled amount does not match the initiated charge")
	ErrProviderUnavailable = fmt.Errorf("payment provider is unavailable")
)
