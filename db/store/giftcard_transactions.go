package store

import (
	"context"
	"database/sql"
	"time"

	"github.com/google/uuid"
	"github.com/lib/pq"
	"github.com/shopspring/decimal"
)

type GiftcardTransaction struct {
	ID              uuid.UUID
	CustomerID      int64
	Type            string
	BrandID         int64
	BrandName       string
	VariantName     string
	Rate            decimal.Decimal
	Quantity        int32
	Amount          decimal.Decimal
	CardCodes       []string
	Status          string
	RejectionReason sql.NullString
	CreatedAt       time.Time
	UpdatedAt       time.Time
}

const createGiftcardTransaction = `
INSERT INTO giftcard_transactions (id, customer_id, type, brand_id, variant_name, rate, quantity, amount, card_codes, status)
VALUES ($1, $2, $3, $4, $5, $6, $7, $8, $9, $10)
RETURNING id, customer_id, type, brand_id, variant_name, rate, quantity, amount, card_codes, status, rejection_reason, created_at, updated_at
`

type CreateGiftcardTransactionParams struct {
	CustomerID  int64
	Type        string
	BrandID     int64
	VariantName string
	Rate        decimal.Decimal
	Quantity    int32
	Amount      decimal.Decimal
	CardCodes   []string
	Status      string
}

func (q *Queries) CreateGiftcardTransaction(ctx context.Context, arg CreateGiftcardTransactionParams) (GiftcardTransaction, error) {
	row := q.db.QueryRowContext(ctx, createGiftcardTransaction,
		uuid.New(),
		arg.CustomerID,
		arg.Type,
		arg.BrandID,
		arg.VariantName,
		arg.Rate,
		arg.Quantity,
		arg.Amount,
		pq.Array(arg.CardCodes),
		arg.Status,
	)
	var t GiftcardTransaction
	err := row.Scan(
		&t.ID,
		&t.CustomerID,
		&t.Type,
		&t.BrandID,
		&t.VariantName,
		&t.Rate,
		&t.Quantity,
		&t.Amount,
		pq.Array(&t.CardCodes),
		&t.Status,
		&t.RejectionReason,
		&t.CreatedAt,
		&t.UpdatedAt,
	)
	return t, err
}

const getGiftcardTransactionByID = `
SELECT t.id, t.customer_id, t.type, t.brand_id, b.name, t.variant_name, t.rate, t.quantity, t.amount, t.card_codes, t.status, t.rejection_reason, t.created_at, t.updated_at
FROM giftcard_transactions t
JOIN brands b ON b.id = t.brand_id
WHERE t.id = $1 AND t.customer_id = $2
`

type GetGiftcardTransactionByIDParams struct {
	ID         uuid.UUID
	CustomerID int64
}

func (q *Queries) GetGiftcardTransactionByID(ctx context.Context, arg GetGiftcardTransactionByIDParams) (GiftcardTransaction, error) {
	row := q.db.QueryRowContext(ctx, getGiftcardTransactionByID, arg.ID, arg.CustomerID)
	var t GiftcardTransaction
	err := row.Scan(
		&t.ID,
		&t.CustomerID,
		&t.Type,
		&t.BrandID,
		&t.BrandName,
		&t.VariantName,
		&t.Rate,
		&t.Quantity,
		&t.Amount,
		pq.Array(&t.CardCodes),
		&t.Status,
		&t.RejectionReason,
		&t.CreatedAt,
		&t.UpdatedAt,
	)
	return t, err
}

const listGiftcardTransactionsByCustomerID = `
SELECT t.id, t.customer_id, t.type, t.brand_id, b.name, t.variant_name, t.rate, t.quantity, t.amount, t.card_codes, t.status, t.rejection_reason, t.created_at, t.updated_at
FROM giftcard_transactions t
JOIN brands b ON b.id = t.brand_id
WHERE t.customer_id = $1
ORDER BY t.created_at DESC
`

func (q *Queries) ListGiftcardTransactionsByCustomerID(ctx context.Context, customerID int64) ([]GiftcardTransaction, error) {
	rows, err := q.db.QueryContext(ctx, listGiftcardTransactionsByCustomerID, customerID)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	var items []GiftcardTransaction
	for rows.Next() {
		var t GiftcardTransaction
		if err := rows.Scan(
			&t.ID,
			&t.CustomerID,
			&t.Type,
			&t.BrandID,
			&t.BrandName,
			&t.VariantName,
			&t.Rate,
			&t.Quantity,
			&t.Amount,
			pq.Array(&t.CardCodes),
			&t.Status,
			&t.RejectionReason,
			&t.CreatedAt,
			&t.UpdatedAt,
		); err != nil {
			return nil, err
		}
		items = append(items, t)
	}
	return items, rows.Err()
}
