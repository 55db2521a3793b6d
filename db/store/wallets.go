package store

import (
	"context"
	"time"

	"github.com/google/uuid"
	"github.com/shopspring/decimal"
)

type Wallet struct {
	ID         uuid.UUID
	CustomerID int64
	Currency   string
	Balance    decimal.Decimal
	Status     string
	CreatedAt  time.Time
	UpdatedAt  time.Time
}

const createWallet = `
INSERT INTO wallets (id, customer_id, currency, balance)
VALUES ($1, $2, $3, 0)
RETURNING id, customer_id, currency, balance, status, created_at, updated_at
`

type CreateWalletParams struct {
	CustomerID int64
	Currency   string
}

func (q *Queries) CreateWallet(ctx context.Context, arg CreateWalletParams) (Wallet, error) {
	row := q.db.QueryRowContext(ctx, createWallet, uuid.New(), arg.CustomerID, arg.Currency)
	var w Wallet
	err := row.Scan(
		&w.ID,
		&w.CustomerID,
		&w.Currency,
		&w.Balance,
		&w.Status,
		&w.CreatedAt,
		&w.UpdatedAt,
	)
	return w, err
}

const getWalletByCustomerID = `
SELECT id, customer_id, currency, balance, status, created_at, updated_at
FROM wallets
WHERE customer_id = $1
`

func (q *Queries) GetWalletByCustomerID(ctx context.Context, customerID int64) (Wallet, error) {
	row := q.db.QueryRowContext(ctx, getWalletByCustomerID, customerID)
	var w Wallet
	err := row.Scan(
		&w.ID,
		&w.CustomerID,
		&w.Currency,
		&w.Balance,
		&w.Status,
		&w.CreatedAt,
		&w.UpdatedAt,
	)
	return w, err
}

const getWalletByCustomerIDForUpdate = `
SELECT id, customer_id, currency, balance, status, created_at, updated_at
FROM wallets
WHERE customer_id = $1
FOR UPDATE
`

// GetWalletByCustomerIDForUpdate locks the wallet row for the duration of
// the surrounding transaction. Callers must be inside ExecTx.
func (q *Queries) GetWalletByCustomerIDForUpdate(ctx context.Context, customerID int64) (Wallet, error) {
	row := q.db.QueryRowContext(ctx, getWalletByCustomerIDForUpdate, customerID)
	var w Wallet
	err := row.Scan(
		&w.ID,
		&w.CustomerID,
		&w.Currency,
		&w.Balance,
		&w.Status,
		&w.CreatedAt,
		&w.UpdatedAt,
	)
	return w, err
}

const creditWalletBalance = `
UPDATE wallets
SET balance = balance + $2, updated_at = NOW()
WHERE id = $1
RETURNING balance
`

func (q *Queries) CreditWalletBalance(ctx context.Context, walletID uuid.UUID, amount decimal.Decimal) (decimal.Decimal, error) {
	var balance decimal.Decimal
	err := q.db.QueryRowContext(ctx, creditWalletBalance, walletID, amount).Scan(&balance)
	return balance, err
}

const debitWalletBalance = `
UPDATE wallets
SET balance = balance - $2, updated_at = NOW()
WHERE id = $1 AND balance >= $2
RETURNING balance
`

// DebitWalletBalance returns sql.ErrNoRows when the balance would go
// negative, so callers never over-debit.
func (q *Queries) DebitWalletBalance(ctx context.Context, walletID uuid.UUID, amount decimal.Decimal) (decimal.Decimal, error) {
	var balance decimal.Decimal
	err := q.db.QueryRowContext(ctx, debitWalletBalance, walletID, amount).Scan(&balance)
	return balance, err
}
