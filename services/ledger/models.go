package ledger

import (
	"time"

	"github.com/shopspring/decimal"
)

const (
	EntryGiftcard   = "giftcard"
	EntryWithdrawal = "withdrawal"
)

// Entry is the normalized shape every financial record is projected into
// for the merged history view.
type Entry struct {
	DisplayID     string          `json:"display_id"`
	EntryType     string          `json:"entry_type"`
	DisplayAmount decimal.Decimal `json:"display_amount"`
	DisplayBrand  string          `json:"display_brand"`
	DisplayStatus string          `json:"display_status"`
	DisplayDate   time.Time       `json:"display_date"`
}

// Detail carries the optional fields only some record kinds have. Absent
// fields stay empty and the client hides them.
type Detail struct {
	Entry
	CardCodes       []string `json:"card_codes,omitempty"`
	PaymentMethod   string   `json:"payment_method,omitempty"`
	RejectionReason string   `json:"rejection_reason,omitempty"`
	BankName        string   `json:"bank_name,omitempty"`
	AccountNumber   string   `json:"account_number,omitempty"`
	Rate            string   `json:"rate,omitempty"`
	Quantity        int32    `json:"quantity,omitempty"`
}
