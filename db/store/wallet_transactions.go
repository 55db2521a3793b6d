package store

import (
	"context"
	"database/sql"
	"time"

	"github.com/google/uuid"
	"github.com/shopspring/decimal"
	"github.com/sqlc-dev/pqtype"
)

type WalletTransaction struct {
	ID            uuid.UUID
	CustomerID    int64
	WalletID      uuid.UUID
	Type          string
	Amount        decimal.Decimal
	Fee           decimal.Decimal
	Status        string
	PaymentMethod string
	Reference     string
	Description   sql.NullString
	ProofURL      sql.NullString
	Metadata      pqtype.NullRawMessage
	CreatedAt     time.Time
	UpdatedAt     time.Time
}

const walletTransactionColumns = `id, customer_id, wallet_id, type, amount, fee, status, payment_method, reference, description, proof_url, metadata, created_at, updated_at`

func scanWalletTransaction(row interface{ Scan(...interface{}) error }) (WalletTransaction, error) {
	var t WalletTransaction
	err := row.Scan(
		&t.ID,
		&t.CustomerID,
		&t.WalletID,
		&t.Type,
		&t.Amount,
		&t.Fee,
		&t.Status,
		&t.PaymentMethod,
		&t.Reference,
		&t.Description,
		&t.ProofURL,
		&t.Metadata,
		&t.CreatedAt,
		&t.UpdatedAt,
	)
	return t, err
}

const createWalletTransaction = `
INSERT INTO wallet_transactions (id, customer_id, wallet_id, type, amount, fee, status, payment_method, reference, description, proof_url, metadata)
VALUES ($1, $2, $3, $4, $5, $6, $7, $8, $9, $10, $11, $12)
RETURNING ` + walletTransactionColumns

type CreateWalletTransactionParams struct {
	CustomerID    int64
	WalletID      uuid.UUID
	Type          string
	Amount        decimal.Decimal
	Fee           decimal.Decimal
	Status        string
	PaymentMethod string
	Reference     string
	Description   sql.NullString
	ProofURL      sql.NullString
	Metadata      pqtype.NullRawMessage
}

func (q *Queries) CreateWalletTransaction(ctx context.Context, arg CreateWalletTransactionParams) (WalletTransaction, error) {
	row := q.db.QueryRowContext(ctx, createWalletTransaction,
		uuid.New(),
		arg.CustomerID,
		arg.WalletID,
		arg.Type,
		arg.Amount,
		arg.Fee,
		arg.Status,
		arg.PaymentMethod,
		arg.Reference,
		arg.Description,
		arg.ProofURL,
		arg.Metadata,
	)
	return scanWalletTransaction(row)
}

const getWalletTransactionByReference = `
SELECT ` + walletTransactionColumns + `
FROM wallet_transactions
WHERE reference = $1
`

func (q *Queries) GetWalletTransactionByReference(ctx context.Context, reference string) (WalletTransaction, error) {
	row := q.db.QueryRowContext(ctx, getWalletTransactionByReference, reference)
	return scanWalletTransaction(row)
}

const getWalletTransactionByReferenceForUpdate = `
SELECT ` + walletTransactionColumns + `
FROM wallet_transactions
WHERE reference = $1
FOR UPDATE
`

func (q *Queries) GetWalletTransactionByReferenceForUpdate(ctx context.Context, reference string) (WalletTransaction, error) {
	row := q.db.QueryRowContext(ctx, getWalletTransactionByReferenceForUpdate, reference)
	return scanWalletTransaction(row)
}

const updateWalletTransactionStatus = `
UPDATE wallet_transactions
SET status = $2, updated_at = NOW()
WHERE id = $1
RETURNING ` + walletTransactionColumns

func (q *Queries) UpdateWalletTransactionStatus(ctx context.Context, id uuid.UUID, status string) (WalletTransaction, error) {
	row := q.db.QueryRowContext(ctx, updateWalletTransactionStatus, id, status)
	return scanWalletTransaction(row)
}

const listWalletTransactionsByCustomerID = `
SELECT ` + walletTransactionColumns + `
FROM wallet_transactions
WHERE customer_id = $1
ORDER BY created_at DESC
LIMIT $2
`

type ListWalletTransactionsByCustomerIDParams struct {
	CustomerID int64
	Limit      int32
}

func (q *Queries) ListWalletTransactionsByCustomerID(ctx context.Context, arg ListWalletTransactionsByCustomerIDParams) ([]WalletTransaction, error) {
	rows, err := q.db.QueryContext(ctx, listWalletTransactionsByCustomerID, arg.CustomerID, arg.Limit)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	var items []WalletTransaction
	for rows.Next() {
		t, err := scanWalletTransaction(rows)
		if err != nil {
			return nil, err
		}
		items = append(items, t)
	}
	return items, rows.Err()
}

const countRecentPendingFunding = `
SELECT COUNT(*)
FROM wallet_transactions
WHERE customer_id = $1
  AND type = 'fund'
  AND payment_method = $2
  AND amount = $3
  AND status = 'pending'
  AND created_at > $4
`

type CountRecentPendingFundingParams struct {
	CustomerID    int64
	PaymentMethod string
	Amount        decimal.Decimal
	Since         time.Time
}

// CountRecentPendingFunding backs the duplicate-submission guard on the
// manual transfer path.
func (q *Queries) CountRecentPendingFunding(ctx context.Context, arg CountRecentPendingFundingParams) (int64, error) {
	var count int64
	err := q.db.QueryRowContext(ctx, countRecentPendingFunding,
		arg.CustomerID,
		arg.PaymentMethod,
		arg.Amount,
		arg.Since,
	).Scan(&count)
	return count, err
}
