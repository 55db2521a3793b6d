package catalog

import (
	"testing"

	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
)

func sampleListings() []Listing {
	return []Listing{
		{RateID: 1, BrandID: 1, BrandName: "Amazon", Category: "Shopping", VariantName: "US $50", Side: SideBuy, Rate: decimal.RequireFromString("750"), Popularity: 40},
		{RateID: 2, BrandID: 1, BrandName: "Amazon", Category: "Shopping", VariantName: "US $100", Side: SideSell, Rate: decimal.RequireFromString("680"), Popularity: 40},
		{RateID: 3, BrandID: 2, BrandName: "Steam", Category: "Gaming", VariantName: "US $20", Side: SideBuy, Rate: decimal.RequireFromString("800"), Popularity: 75},
		{RateID: 4, BrandID: 3, BrandName: "iTunes", Category: "Entertainment", VariantName: "US $25", Side: SideBuy, Rate: decimal.RequireFromString("700"), Popularity: 10},
	}
}

func TestFilterListings(t *testing.T) {
	tests := []struct {
		name    string
		query   string
		side    string
		wantIDs []int64
	}{
		{name: "no filter returns everything", wantIDs: []int64{1, 2, 3, 4}},
		{name: "side all returns everything", side: "all", wantIDs: []int64{1, 2, 3, 4}},
		{name: "buy side only", side: SideBuy, wantIDs: []int64{1, 3, 4}},
		{name: "sell side only", side: SideSell, wantIDs: []int64{2}},
		{name: "query matches brand", query: "steam", wantIDs: []int64{3}},
		{name: "query is case insensitive", query: "AMAZON", wantIDs: []int64{1, 2}},
		{name: "query matches category", query: "gaming", wantIDs: []int64{3}},
		{name: "query matches variant", query: "$25", wantIDs: []int64{4}},
		{name: "query with surrounding spaces", query: "  steam  ", wantIDs: []int64{3}},
		{name: "query and side combined", query: "amazon", side: SideBuy, wantIDs: []int64{1}},
		{name: "no match", query: "netflix", wantIDs: []int64{}},
	}

	for _, tc := range tests {
		t.Run(tc.name, func(t *testing.T) {
			got := FilterListings(sampleListings(), tc.query, tc.side)

			gotIDs := make([]int64, 0, len(got))
			for _, l := range got {
				gotIDs = append(gotIDs, l.RateID)
			}
			assert.Equal(t, tc.wantIDs, gotIDs)
		})
	}
}

func TestSortListings(t *testing.T) {
	t.Run("by rate descending", func(t *testing.T) {
		got := SortListings(sampleListings(), SortByRate)
		for i := 1; i < len(got); i++ {
			assert.True(t, got[i-1].Rate.GreaterThanOrEqual(got[i].Rate),
				"rates must be descending at index %d", i)
		}
	})

	t.Run("by popularity descending", func(t *testing.T) {
		got := SortListings(sampleListings(), SortByPopularity)
		assert.Equal(t, "Steam", got[0].BrandName)
		for i := 1; i < len(got); i++ {
			assert.GreaterOrEqual(t, got[i-1].Popularity, got[i].Popularity)
		}
	})

	t.Run("default is name with variant tiebreak", func(t *testing.T) {
		got := SortListings(sampleListings(), "")
		assert.Equal(t, "Amazon", got[0].BrandName)
		assert.Equal(t, "US $100", got[0].VariantName)
		assert.Equal(t, "US $50", got[1].VariantName)
		assert.Equal(t, "Steam", got[2].BrandName)
		assert.Equal(t, "iTunes", got[3].BrandName)
	})
}

func TestListParamsCacheKey(t *testing.T) {
	assert.Equal(t, "all:name:", ListParams{}.cacheKey())
	assert.Equal(t, "buy:rate:amazon", ListParams{Query: "amazon", Side: SideBuy, Sort: SortByRate}.cacheKey())

	// Distinct filters must never share a cache slot.
	assert.NotEqual(t, ListParams{Side: SideBuy}.cacheKey(), ListParams{Side: SideSell}.cacheKey())
	assert.NotEqual(t, ListParams{Query: "a"}.cacheKey(), ListParams{Query: "b"}.cacheKey())
}
