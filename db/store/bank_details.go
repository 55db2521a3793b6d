package store

import (
	"context"
	"database/sql"
	"time"
)

// BankDetail rows with a NULL owner are the company's manual-transfer
// receiving accounts; owned rows are user payout destinations.
type BankDetail struct {
	ID            int64
	OwnerID       sql.NullInt64
	BankName      string
	AccountName   string
	AccountNumber string
	CreatedAt     time.Time
	UpdatedAt     time.Time
}

const upsertBankDetail = `
INSERT INTO bank_details (owner_id, bank_name, account_name, account_number)
VALUES ($1, $2, $3, $4)
ON CONFLICT (owner_id)
DO UPDATE SET bank_name = EXCLUDED.bank_name, account_name = EXCLUDED.account_name, account_number = EXCLUDED.account_number, updated_at = NOW()
RETURNING id, owner_id, bank_name, account_name, account_number, created_at, updated_at
`

type UpsertBankDetailParams struct {
	OwnerID       sql.NullInt64
	BankName      string
	AccountName   string
	AccountNumber string
}

func (q *Queries) UpsertBankDetail(ctx context.Context, arg UpsertBankDetailParams) (BankDetail, error) {
	row := q.db.QueryRowContext(ctx, upsertBankDetail,
		arg.OwnerID,
		arg.BankName,
		arg.AccountName,
		arg.AccountNumber,
	)
	var b BankDetail
	err := row.Scan(
		&b.ID,
		&b.OwnerID,
		&b.BankName,
		&b.AccountName,
		&b.AccountNumber,
		&b.CreatedAt,
		&b.UpdatedAt,
	)
	return b, err
}

const getBankDetailByOwnerID = `
SELECT id, owner_id, bank_name, account_name, account_number, created_at, updated_at
FROM bank_details
WHERE owner_id = $1
`

func (q *Queries) GetBankDetailByOwnerID(ctx context.Context, ownerID int64) (BankDetail, error) {
	row := q.db.QueryRowContext(ctx, getBankDetailByOwnerID, ownerID)
	var b BankDetail
	err := row.Scan(
		&b.ID,
		&b.OwnerID,
		&b.BankName,
		&b.AccountName,
		&b.AccountNumber,
		&b.CreatedAt,
		&b.UpdatedAt,
	)
	return b, err
}

const getAdminBankDetail = `
SELECT id, owner_id, bank_name, account_name, account_number, created_at, updated_at
FROM bank_details
WHERE owner_id IS NULL
ORDER BY updated_at DESC
LIMIT 1
`

func (q *Queries) GetAdminBankDetail(ctx context.Context) (BankDetail, error) {
	row := q.db.QueryRowContext(ctx, getAdminBankDetail)
	var b BankDetail
	err := row.Scan(
		&b.ID,
		&b.OwnerID,
		&b.BankName,
		&b.AccountName,
		&b.AccountNumber,
		&b.CreatedAt,
		&b.UpdatedAt,
	)
	return b, err
}
