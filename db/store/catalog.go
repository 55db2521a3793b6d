package store

import (
	"context"
	"database/sql"
	"time"

	"github.com/google/uuid"
	"github.com/shopspring/decimal"
)

type Brand struct {
	ID        int64
	Name      string
	Category  string
	CreatedAt time.Time
}

type BrandRate struct {
	ID          int64
	BrandID     int64
	BrandName   string
	Category    string
	VariantName string
	Side        string
	Rate        decimal.Decimal
	FaceValue   decimal.Decimal
	Available   bool
	UpdatedAt   time.Time
}

const listBrandRates = `
SELECT r.id, r.brand_id, b.name, b.category, r.variant_name, r.side, r.rate, r.face_value, r.available, r.updated_at
FROM brand_rates r
JOIN brands b ON b.id = r.brand_id
WHERE r.available = TRUE
ORDER BY b.name, r.variant_name
`

func (q *Queries) ListBrandRates(ctx context.Context) ([]BrandRate, error) {
	rows, err := q.db.QueryContext(ctx, listBrandRates)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	var items []BrandRate
	for rows.Next() {
		var r BrandRate
		if err := rows.Scan(
			&r.ID,
			&r.BrandID,
			&r.BrandName,
			&r.Category,
			&r.VariantName,
			&r.Side,
			&r.Rate,
			&r.FaceValue,
			&r.Available,
			&r.UpdatedAt,
		); err != nil {
			return nil, err
		}
		items = append(items, r)
	}
	return items, rows.Err()
}

type InventoryCard struct {
	ID          uuid.UUID
	BrandID     int64
	VariantName string
	FaceValue   decimal.Decimal
	CardCode    string
	Sold        bool
	AssignedTo  sql.NullInt64
	CreatedAt   time.Time
}

const countAvailableInventory = `
SELECT COUNT(*)
FROM giftcard_inventory
WHERE brand_id = $1 AND variant_name = $2 AND sold = FALSE AND assigned_to IS NULL
`

type CountAvailableInventoryParams struct {
	BrandID     int64
	VariantName string
}

func (q *Queries) CountAvailableInventory(ctx context.Context, arg CountAvailableInventoryParams) (int64, error) {
	var count int64
	err := q.db.QueryRowContext(ctx, countAvailableInventory, arg.BrandID, arg.VariantName).Scan(&count)
	return count, err
}

const claimInventoryCards = `
UPDATE giftcard_inventory
SET sold = TRUE, assigned_to = $3
WHERE id IN (
	SELECT id FROM giftcard_inventory
	WHERE brand_id = $1 AND variant_name = $2 AND sold = FALSE AND assigned_to IS NULL
	ORDER BY created_at
	LIMIT $4
	FOR UPDATE SKIP LOCKED
)
RETURNING id, brand_id, variant_name, face_value, card_code, sold, assigned_to, created_at
`

type ClaimInventoryCardsParams struct {
	BrandID     int64
	VariantName string
	CustomerID  int64
	Quantity    int32
}

// ClaimInventoryCards marks unsold cards as sold and assigned inside the
// surrounding transaction, returning the claimed card rows.
func (q *Queries) ClaimInventoryCards(ctx context.Context, arg ClaimInventoryCardsParams) ([]InventoryCard, error) {
	rows, err := q.db.QueryContext(ctx, claimInventoryCards,
		arg.BrandID,
		arg.VariantName,
		arg.CustomerID,
		arg.Quantity,
	)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	var items []InventoryCard
	for rows.Next() {
		var c InventoryCard
		if err := rows.Scan(
			&c.ID,
			&c.BrandID,
			&c.VariantName,
			&c.FaceValue,
			&c.CardCode,
			&c.Sold,
			&c.AssignedTo,
			&c.CreatedAt,
		); err != nil {
			return nil, err
		}
		items = append(items, c)
	}
	return items, rows.Err()
}

type BrandPopularity struct {
	BrandID int64
	Count   int64
}

const countBrandTransactionsSince = `
SELECT brand_id, COUNT(*)
FROM giftcard_transactions
WHERE created_at > $1 AND status != 'rejected'
GROUP BY brand_id
`

// CountBrandTransactionsSince feeds the popularity ranking: brands are
// ordered by settled transaction volume, not a cosmetic random value.
func (q *Queries) CountBrandTransactionsSince(ctx context.Context, since time.Time) ([]BrandPopularity, error) {
	rows, err := q.db.QueryContext(ctx, countBrandTransactionsSince, since)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	var items []BrandPopularity
	for rows.Next() {
		var p BrandPopularity
		if err := rows.Scan(&p.BrandID, &p.Count); err != nil {
			return nil, err
		}
		items = append(items, p)
	}
	return items, rows.Err()
}
