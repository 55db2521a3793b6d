package store

import (
	"context"
	"database/sql"
	"time"

	"github.com/google/uuid"
	"github.com/shopspring/decimal"
)

type Withdrawal struct {
	ID              uuid.UUID
	CustomerID      int64
	Amount          decimal.Decimal
	Status          string
	BankName        string
	AccountName     string
	AccountNumber   string
	IdempotencyKey  string
	TransactionID   uuid.NullUUID
	RejectionReason sql.NullString
	CreatedAt       time.Time
	UpdatedAt       time.Time
}

const withdrawalColumns = `id, customer_id, amount, status, bank_name, account_name, account_number, idempotency_key, transaction_id, rejection_reason, created_at, updated_at`

func scanWithdrawal(row interface{ Scan(...interface{}) error }) (Withdrawal, error) {
	var w Withdrawal
	err := row.Scan(
		&w.ID,
		&w.CustomerID,
		&w.Amount,
		&w.Status,
		&w.BankName,
		&w.AccountName,
		&w.AccountNumber,
		&w.IdempotencyKey,
		&w.TransactionID,
		&w.RejectionReason,
		&w.CreatedAt,
		&w.UpdatedAt,
	)
	return w, err
}

const createWithdrawal = `
INSERT INTO withdrawals (id, customer_id, amount, status, bank_name, account_name, account_number, idempotency_key, transaction_id)
VALUES ($1, $2, $3, $4, $5, $6, $7, $8, $9)
RETURNING ` + withdrawalColumns

type CreateWithdrawalParams struct {
	CustomerID     int64
	Amount         decimal.Decimal
	Status         string
	BankName       string
	AccountName    string
	AccountNumber  string
	IdempotencyKey string
	TransactionID  uuid.NullUUID
}

func (q *Queries) CreateWithdrawal(ctx context.Context, arg CreateWithdrawalParams) (Withdrawal, error) {
	row := q.db.QueryRowContext(ctx, createWithdrawal,
		uuid.New(),
		arg.CustomerID,
		arg.Amount,
		arg.Status,
		arg.BankName,
		arg.AccountName,
		arg.AccountNumber,
		arg.IdempotencyKey,
		arg.TransactionID,
	)
	return scanWithdrawal(row)
}

const getWithdrawalByIdempotencyKey = `
SELECT ` + withdrawalColumns + `
FROM withdrawals
WHERE idempotency_key = $1
  AND customer_id = $2
`

type GetWithdrawalByIdempotencyKeyParams struct {
	IdempotencyKey string
	CustomerID     int64
}

// GetWithdrawalByIdempotencyKey looks up a replayed submission. The key is
// client-generated, so the lookup is scoped to the customer; another
// customer's key must never resolve.
func (q *Queries) GetWithdrawalByIdempotencyKey(ctx context.Context, arg GetWithdrawalByIdempotencyKeyParams) (Withdrawal, error) {
	row := q.db.QueryRowContext(ctx, getWithdrawalByIdempotencyKey, arg.IdempotencyKey, arg.CustomerID)
	return scanWithdrawal(row)
}

const getWithdrawalByID = `
SELECT ` + withdrawalColumns + `
FROM withdrawals
WHERE id = $1
`

func (q *Queries) GetWithdrawalByID(ctx context.Context, id uuid.UUID) (Withdrawal, error) {
	row := q.db.QueryRowContext(ctx, getWithdrawalByID, id)
	return scanWithdrawal(row)
}

const listWithdrawalsByCustomerID = `
SELECT ` + withdrawalColumns + `
FROM withdrawals
WHERE customer_id = $1
ORDER BY created_at DESC
`

func (q *Queries) ListWithdrawalsByCustomerID(ctx context.Context, customerID int64) ([]Withdrawal, error) {
	rows, err := q.db.QueryContext(ctx, listWithdrawalsByCustomerID, customerID)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	var items []Withdrawal
	for rows.Next() {
		w, err := scanWithdrawal(rows)
		if err != nil {
			return nil, err
		}
		items = append(items, w)
	}
	return items, rows.Err()
}
