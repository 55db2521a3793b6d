package models

import (
	"time"

	"github.com/CardHaven/CardHaven-Backend/db/store"
	"github.com/shopspring/decimal"
)

type UserResponse struct {
	ID        int64     `json:"id"`
	Email     string    `json:"email"`
	FirstName string    `json:"first_name"`
	LastName  string    `json:"last_name"`
	Role      string    `json:"role"`
	HasPin    bool      `json:"has_pin"`
	CreatedAt time.Time `json:"created_at"`
}

func ToUserResponse(u *store.User) UserResponse {
	return UserResponse{
		ID:        u.ID,
		Email:     u.Email,
		FirstName: u.FirstName,
		LastName:  u.LastName,
		Role:      u.Role,
		HasPin:    u.TransactionPin.Valid,
		CreatedAt: u.CreatedAt,
	}
}

type WalletResponse struct {
	ID       string          `json:"id"`
	Currency string          `json:"currency"`
	Balance  decimal.Decimal `json:"balance"`
	Status   string          `json:"status"`
}

func ToWalletResponse(w *store.Wallet) WalletResponse {
	return WalletResponse{
		ID:       w.ID.String(),
		Currency: w.Currency,
		Balance:  w.Balance,
		Status:   w.Status,
	}
}

type AuthResponse struct {
	User   UserResponse   `json:"user"`
	Wallet WalletResponse `json:"wallet"`
	Token  string         `json:"token"`
}

type TransactionResponse struct {
	ID            string          `json:"id"`
	Type          string          `json:"type"`
	Amount        decimal.Decimal `json:"amount"`
	Fee           decimal.Decimal `json:"fee"`
	Status        string          `json:"status"`
	PaymentMethod string          `json:"payment_method"`
	Reference     string          `json:"reference"`
	Description   string          `json:"description,omitempty"`
	ProofURL      string          `json:"proof_url,omitempty"`
	CreatedAt     time.Time       `json:"created_at"`
}

func ToTransactionResponse(t *store.WalletTransaction) TransactionResponse {
	return TransactionResponse{
		ID:            t.ID.String(),
		Type:          t.Type,
		Amount:        t.Amount,
		Fee:           t.Fee,
		Status:        t.Status,
		PaymentMethod: t.PaymentMethod,
		Reference:     t.Reference,
		Description:   t.Description.String,
		ProofURL:      t.ProofURL.String,
		CreatedAt:     t.CreatedAt,
	}
}

type WithdrawalResponse struct {
	ID              string          `json:"id"`
	Amount          decimal.Decimal `json:"amount"`
	Status          string          `json:"status"`
	BankName        string          `json:"bank_name"`
	AccountName     string          `json:"account_name"`
	AccountNumber   string          `json:"account_number"`
	RejectionReason string          `json:"rejection_reason,omitempty"`
	CreatedAt       time.Time       `json:"created_at"`
}

func ToWithdrawalResponse(w *store.Withdrawal) WithdrawalResponse {
	return WithdrawalResponse{
		ID:              w.ID.String(),
		Amount:          w.Amount,
		Status:          w.Status,
		BankName:        w.BankName,
		AccountName:     w.AccountName,
		AccountNumber:   w.AccountNumber,
		RejectionReason: w.RejectionReason.String,
		CreatedAt:       w.CreatedAt,
	}
}

func ToWithdrawalListResponse(ws []store.Withdrawal) []WithdrawalResponse {
	out := make([]WithdrawalResponse, 0, len(ws))
	for i := range ws {
		out = append(out, ToWithdrawalResponse(&ws[i]))
	}
	return out
}

type GiftcardOrderResponse struct {
	ID              string          `json:"id"`
	Type            string          `json:"type"`
	BrandName       string          `json:"brand_name"`
	VariantName     string          `json:"variant_name"`
	Rate            decimal.Decimal `json:"rate"`
	Quantity        int32           `json:"quantity"`
	Amount          decimal.Decimal `json:"amount"`
	CardCodes       []string        `json:"card_codes,omitempty"`
	Status          string          `json:"status"`
	RejectionReason string          `json:"rejection_reason,omitempty"`
	CreatedAt       time.Time       `json:"created_at"`
}

func ToGiftcardOrderResponse(t *store.GiftcardTransaction) GiftcardOrderResponse {
	return GiftcardOrderResponse{
		ID:              t.ID.String(),
		Type:            t.Type,
		BrandName:       t.BrandName,
		VariantName:     t.VariantName,
		Rate:            t.Rate,
		Quantity:        t.Quantity,
		Amount:          t.Amount,
		CardCodes:       t.CardCodes,
		Status:          t.Status,
		RejectionReason: t.RejectionReason.String,
		CreatedAt:       t.CreatedAt,
	}
}

func ToGiftcardOrderListResponse(ts []store.GiftcardTransaction) []GiftcardOrderResponse {
	out := make([]GiftcardOrderResponse, 0, len(ts))
	for i := range ts {
		out = append(out, ToGiftcardOrderResponse(&ts[i]))
	}
	return out
}

type NotificationResponse struct {
	ID         int64     `json:"id"`
	Title      string    `json:"title"`
	Body       string    `json:"body"`
	Type       string    `json:"type"`
	ActionType string    `json:"action_type,omitempty"`
	Read       bool      `json:"read"`
	CreatedAt  time.Time `json:"created_at"`
}

func ToNotificationResponse(n *store.Notification) NotificationResponse {
	return NotificationResponse{
		ID:         n.ID,
		Title:      n.Title,
		Body:       n.Body,
		Type:       n.Type,
		ActionType: n.ActionType.String,
		Read:       n.Read,
		CreatedAt:  n.CreatedAt,
	}
}

func ToNotificationListResponse(ns []store.Notification) []NotificationResponse {
	out := make([]NotificationResponse, 0, len(ns))
	for i := range ns {
		out = append(out, ToNotificationResponse(&ns[i]))
	}
	return out
}

type BankDetailResponse struct {
	BankName      string `json:"bank_name"`
	AccountName   string `json:"account_name"`
	AccountNumber string `json:"account_number"`
}

func ToBankDetailResponse(b *store.BankDetail) BankDetailResponse {
	return BankDetailResponse{
		BankName:      b.BankName,
		AccountName:   b.AccountName,
		AccountNumber: b.AccountNumber,
	}
}
