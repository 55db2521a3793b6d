package withdrawal

import "fmt"

var (
	ErrInvalidAmount     = fmt.Errorf("amount must be greater than zero")
	ErrInsufficientFunds = fmt.Errorf("insufficient funds")
	ErrNoBankDetails     = fmt.Errorf("no bank details on file")
	ErrPinRequired       = fmt.Errorf("transaction pin is required")
	ErrIncorrectPin      = fmt.Errorf("incorrect transaction pin")
	ErrWalletNotFound    = fmt.Errorf("wallet not found")
	ErrTokenRequired     = fmt.Errorf("idempotency token is required")
	ErrTokenConflict     = fmt.Errorf("idempotency token is already in use")
)
