package giftcard

import "fmt"

var (
	ErrVariantNotFound   = fmt.Errorf("brand variant not found")
	ErrVariantNotForSide = fmt.Errorf("variant is not offered on this side")
	ErrOutOfStock        = fmt.Errorf("not enough cards in stock")
	ErrInsufficientFunds = fmt.Errorf("insufficient funds")
	ErrInvalidQuantity   = fmt.Errorf("quantity must be at least one")
	ErrCardCodeRequired  = fmt.Errorf("card code is required")
	ErrWalletNotFound    = fmt.Errorf("wallet not found")
	ErrIncorrectPin      = fmt.Errorf("incorrect transaction pin")
)
