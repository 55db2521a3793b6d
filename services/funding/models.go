package funding

import (
	"github.com/CardHaven/CardHaven-Backend/db/store"
	"github.com/shopspring/decimal"
)

const (
	MethodPaystack       = "paystack"
	MethodManualTransfer = "manual_transfer"
)

// Quote is the charge breakdown for a funding request. Fee is flat, charged
// on top of the entered amount and never credited to the wallet.
type Quote struct {
	Amount       decimal.Decimal `json:"amount"`
	Fee          decimal.Decimal `json:"fee"`
	TotalPayable decimal.Decimal `json:"total_payable"`
}

func NewQuote(amount, fee decimal.Decimal) Quote {
	return Quote{
		Amount:       amount,
		Fee:          fee,
		TotalPayable: amount.Add(fee),
	}
}

// MinorUnits converts the total payable into kobo for the checkout provider.
func (q Quote) MinorUnits() int64 {
	return q.TotalPayable.Mul(decimal.NewFromInt(100)).IntPart()
}

type InitiatedFunding struct {
	Reference        string `json:"reference"`
	AuthorizationURL string `json:"authorization_url"`
	Quote            Quote  `json:"quote"`
}

type Outcome struct {
	Transaction store.WalletTransaction
	Credited    bool
}
