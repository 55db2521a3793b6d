package ledger

import (
	"testing"
	"time"

	"github.com/CardHaven/CardHaven-Backend/db/store"
	"github.com/google/uuid"
	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
)

func giftcardAt(brand string, amount string, at time.Time) store.GiftcardTransaction {
	return store.GiftcardTransaction{
		ID:        uuid.New(),
		BrandName: brand,
		Amount:    decimal.RequireFromString(amount),
		Status:    "completed",
		CreatedAt: at,
	}
}

func withdrawalAt(bank string, amount string, at time.Time) store.Withdrawal {
	return store.Withdrawal{
		ID:        uuid.New(),
		BankName:  bank,
		Amount:    decimal.RequireFromString(amount),
		Status:    "pending",
		CreatedAt: at,
	}
}

func TestMergeEntriesKeepsEveryRecord(t *testing.T) {
	base := time.Date(2026, 3, 1, 10, 0, 0, 0, time.UTC)

	giftcards := []store.GiftcardTransaction{
		giftcardAt("Amazon", "15000", base.Add(2*time.Hour)),
		giftcardAt("Steam", "8000", base),
	}
	withdrawals := []store.Withdrawal{
		withdrawalAt("GTBank", "20000", base.Add(time.Hour)),
	}

	entries := MergeEntries(giftcards, withdrawals, "")

	assert.Len(t, entries, 3, "merged list must hold every record from both sources")
}

func TestMergeEntriesSortsNewestFirst(t *testing.T) {
	base := time.Date(2026, 3, 1, 10, 0, 0, 0, time.UTC)

	giftcards := []store.GiftcardTransaction{
		giftcardAt("Steam", "8000", base),
		giftcardAt("Amazon", "15000", base.Add(2*time.Hour)),
	}
	withdrawals := []store.Withdrawal{
		withdrawalAt("GTBank", "20000", base.Add(time.Hour)),
	}

	entries := MergeEntries(giftcards, withdrawals, "all")

	assert.Equal(t, "Amazon", entries[0].DisplayBrand)
	assert.Equal(t, "GTBank", entries[1].DisplayBrand)
	assert.Equal(t, "Steam", entries[2].DisplayBrand)
	for i := 1; i < len(entries); i++ {
		assert.False(t, entries[i].DisplayDate.After(entries[i-1].DisplayDate),
			"entries must be ordered newest first")
	}
}

func TestMergeEntriesFilter(t *testing.T) {
	base := time.Date(2026, 3, 1, 10, 0, 0, 0, time.UTC)

	giftcards := []store.GiftcardTransaction{
		giftcardAt("Amazon", "15000", base),
	}
	withdrawals := []store.Withdrawal{
		withdrawalAt("GTBank", "20000", base.Add(time.Hour)),
		withdrawalAt("Kuda", "5000", base.Add(2*time.Hour)),
	}

	tests := []struct {
		name     string
		filter   string
		wantLen  int
		wantType string
	}{
		{name: "giftcards only", filter: EntryGiftcard, wantLen: 1, wantType: EntryGiftcard},
		{name: "withdrawals only", filter: EntryWithdrawal, wantLen: 2, wantType: EntryWithdrawal},
		{name: "all keyword", filter: "all", wantLen: 3},
		{name: "empty filter", filter: "", wantLen: 3},
	}

	for _, tc := range tests {
		t.Run(tc.name, func(t *testing.T) {
			entries := MergeEntries(giftcards, withdrawals, tc.filter)

			assert.Len(t, entries, tc.wantLen)
			if tc.wantType != "" {
				for _, e := range entries {
					assert.Equal(t, tc.wantType, e.EntryType)
				}
			}
		})
	}
}

func TestMergeEntriesEmptyInput(t *testing.T) {
	entries := MergeEntries(nil, nil, "")
	assert.Empty(t, entries)
}
