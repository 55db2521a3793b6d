package ledger

import (
	"context"
	"database/sql"
	"fmt"
	"sort"

	"github.com/CardHaven/CardHaven-Backend/db/store"
	"github.com/CardHaven/CardHaven-Backend/services/monitoring/logging"
	"github.com/google/uuid"
)

type LedgerService struct {
	store  *store.Store
	logger *logging.Logger
}

func NewLedgerService(store *store.Store, logger *logging.Logger) *LedgerService {
	return &LedgerService{
		store:  store,
		logger: logger,
	}
}

// History merges the user's gift-card transactions and withdrawals into one
// date-descending list. filter narrows by entry type; empty or "all" keeps
// everything.
func (l *LedgerService) History(ctx context.Context, userID int64, filter string) ([]Entry, error) {
	giftcards, err := l.store.ListGiftcardTransactionsByCustomerID(ctx, userID)
	if err != nil {
		return nil, fmt.Errorf("unable to fetch gift card transactions: %w", err)
	}

	withdrawals, err := l.store.ListWithdrawalsByCustomerID(ctx, userID)
	if err != nil {
		return nil, fmt.Errorf("unable to fetch withdrawals: %w", err)
	}

	return MergeEntries(giftcards, withdrawals, filter), nil
}

// MergeEntries projects both record kinds into the normalized shape and
// sorts by date, newest first. The merged list always holds exactly
// len(giftcards)+len(withdrawals) entries before filtering.
func MergeEntries(giftcards []store.GiftcardTransaction, withdrawals []store.Withdrawal, filter string) []Entry {
	entries := make([]Entry, 0, len(giftcards)+len(withdrawals))

	for _, t := range giftcards {
		entries = append(entries, Entry{
			DisplayID:     t.ID.String(),
			EntryType:     EntryGiftcard,
			DisplayAmount: t.Amount,
			DisplayBrand:  t.BrandName,
			DisplayStatus: t.Status,
			DisplayDate:   t.CreatedAt,
		})
	}

	for _, w := range withdrawals {
		entries = append(entries, Entry{
			DisplayID:     w.ID.String(),
			EntryType:     EntryWithdrawal,
			DisplayAmount: w.Amount,
			DisplayBrand:  w.BankName,
			DisplayStatus: w.Status,
			DisplayDate:   w.CreatedAt,
		})
	}

	if filter != "" && filter != "all" {
		filtered := entries[:0]
		for _, e := range entries {
			if e.EntryType == filter {
				filtered = append(filtered, e)
			}
		}
		entries = filtered
	}

	sort.SliceStable(entries, func(i, j int) bool {
		return entries[i].DisplayDate.After(entries[j].DisplayDate)
	})

	return entries
}

// GiftcardDetail renders a gift card transaction with whichever optional
// fields it carries.
func (l *LedgerService) GiftcardDetail(ctx context.Context, userID int64, id uuid.UUID) (*Detail, error) {
	t, err := l.store.GetGiftcardTransactionByID(ctx, store.GetGiftcardTransactionByIDParams{
		ID:         id,
		CustomerID: userID,
	})
	if err != nil {
		return nil, err
	}

	detail := &Detail{
		Entry: Entry{
			DisplayID:     t.ID.String(),
			EntryType:     EntryGiftcard,
			DisplayAmount: t.Amount,
			DisplayBrand:  t.BrandName,
			DisplayStatus: t.Status,
			DisplayDate:   t.CreatedAt,
		},
		CardCodes: t.CardCodes,
		Rate:      t.Rate.StringFixed(2),
		Quantity:  t.Quantity,
	}
	if t.RejectionReason.Valid {
		detail.RejectionReason = t.RejectionReason.String
	}

	return detail, nil
}

// WithdrawalDetail renders a withdrawal with its bank fields.
func (l *LedgerService) WithdrawalDetail(ctx context.Context, userID int64, id uuid.UUID) (*Detail, error) {
	w, err := l.store.GetWithdrawalByID(ctx, id)
	if err != nil {
		return nil, err
	}
	if w.CustomerID != userID {
		return nil, sql.ErrNoRows
	}

	detail := &Detail{
		Entry: Entry{
			DisplayID:     w.ID.String(),
			EntryType:     EntryWithdrawal,
			DisplayAmount: w.Amount,
			DisplayBrand:  w.BankName,
			DisplayStatus: w.Status,
			DisplayDate:   w.CreatedAt,
		},
		PaymentMethod: "bank_transfer",
		BankName:      w.BankName,
		AccountNumber: w.AccountNumber,
	}
	if w.RejectionReason.Valid {
		detail.RejectionReason = w.RejectionReason.String
	}

	return detail, nil
}
