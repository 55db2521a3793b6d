package fiat

import "time"

type Response[T any] struct {
	Status  bool   `json:"status"`
	Message string `json:"message"`
	Data    T      `json:"data"`
}

type InitializeTransactionRequest struct {
	// Amount is in minor currency units (kobo for NGN)
	Amount    int64  `json:"amount"`
	Email     string `json:"email"`
	Reference string `json:"reference"`
	Currency  string `json:"currency"`
	Callback  string `json:"callback_url,omitempty"`
}

type InitializedTransaction struct {
	AuthorizationURL string `json:"authorization_url"`
	AccessCode       string `json:"access_code"`
	Reference        string `json:"reference"`
}

// VerifiedTransaction is Paystack's verdict on a reference. Status is the
// string "success" only when the charge actually settled; the funding flow
// trusts nothing else.
type VerifiedTransaction struct {
	ID              int64     `json:"id"`
	Status          string    `json:"status"`
	Reference       string    `json:"reference"`
	Amount          int64     `json:"amount"`
	Currency        string    `json:"currency"`
	Channel         string    `json:"channel"`
	GatewayResponse string    `json:"gateway_response"`
	PaidAt          time.Time `json:"paid_at"`
	CreatedAt       time.Time `json:"created_at"`
	Customer        Customer  `json:"customer"`
}

type Customer struct {
	ID    int64  `json:"id"`
	Email string `json:"email"`
}

const TransactionSuccess = "success"
