package catalog

import (
	"fmt"

	"github.com/shopspring/decimal"
)

const (
	SideBuy  = "buy"
	SideSell = "sell"

	SortByRate       = "rate"
	SortByName       = "name"
	SortByPopularity = "popularity"
)

// Listing is one browsable catalog row: a brand variant on either the buy
// or sell side, annotated with its popularity rank score.
type Listing struct {
	RateID      int64           `json:"rate_id"`
	BrandID     int64           `json:"brand_id"`
	BrandName   string          `json:"brand_name"`
	Category    string          `json:"category"`
	VariantName string          `json:"variant_name"`
	Side        string          `json:"side"`
	Rate        decimal.Decimal `json:"rate"`
	FaceValue   decimal.Decimal `json:"face_value"`
	Popularity  int64           `json:"popularity"`
}

type ListParams struct {
	Query string
	Side  string
	Sort  string
}

// cacheKey flattens the filter into the redis key for the listing cache.
func (p ListParams) cacheKey() string {
	side := p.Side
	if side == "" {
		side = "all"
	}
	sort := p.Sort
	if sort == "" {
		sort = SortByName
	}
	return fmt.Sprintf("%s:%s:%s", side, sort, p.Query)
}
