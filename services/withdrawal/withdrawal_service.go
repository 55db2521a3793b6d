package withdrawal

import (
	"context"
	"database/sql"
	"fmt"

	"github.com/CardHaven/CardHaven-Backend/db/store"
	"github.com/CardHaven/CardHaven-Backend/services/monitoring/logging"
	notification_service "github.com/CardHaven/CardHaven-Backend/services/notification"
	user_service "github.com/CardHaven/CardHaven-Backend/services/user"
	"github.com/google/uuid"
	"github.com/shopspring/decimal"
)

type WithdrawalService struct {
	store    *store.Store
	logger   *logging.Logger
	users    *user_service.UserService
	notifier *notification_service.NotificationService
}

func NewWithdrawalService(
	store *store.Store,
	logger *logging.Logger,
	users *user_service.UserService,
	notifier *notification_service.NotificationService,
) *WithdrawalService {
	return &WithdrawalService{
		store:    store,
		logger:   logger,
		users:    users,
		notifier: notifier,
	}
}

type SubmitParams struct {
	UserID         int64
	Amount         decimal.Decimal
	Pin            string
	IdempotencyKey string
}

// Submit runs the whole withdrawal as one unit: every precondition is
// checked before any write, and the balance debit, withdrawal record and
// mirrored ledger entry commit in a single database transaction. Replaying
// the same idempotency key returns the original withdrawal.
func (s *WithdrawalService) Submit(ctx context.Context, arg SubmitParams) (*store.Withdrawal, error) {
	if arg.IdempotencyKey == "" {
		return nil, ErrTokenRequired
	}
	if arg.Amount.LessThanOrEqual(decimal.Zero) {
		return nil, ErrInvalidAmount
	}
	if arg.Pin == "" {
		return nil, ErrPinRequired
	}

	// Replay: the token has been used by this customer, hand back the
	// existing record. The lookup is scoped to the customer so one user's
	// token can never surface another user's withdrawal.
	existing, err := s.store.GetWithdrawalByIdempotencyKey(ctx, store.GetWithdrawalByIdempotencyKeyParams{
		IdempotencyKey: arg.IdempotencyKey,
		CustomerID:     arg.UserID,
	})
	if err == nil {
		return &existing, nil
	} else if err != sql.ErrNoRows {
		return nil, err
	}

	bank, err := s.store.GetBankDetailByOwnerID(ctx, arg.UserID)
	if err == sql.ErrNoRows {
		return nil, ErrNoBankDetails
	} else if err != nil {
		return nil, err
	}

	if err := s.users.VerifyTransactionPin(ctx, arg.UserID, arg.Pin); err != nil {
		if err == user_service.ErrIncorrectPin || err == user_service.ErrPinNotSet {
			return nil, ErrIncorrectPin
		}
		return nil, err
	}

	var created store.Withdrawal
	err = s.store.ExecTx(ctx, func(q *store.Queries) error {
		wallet, txErr := q.GetWalletByCustomerIDForUpdate(ctx, arg.UserID)
		if txErr == sql.ErrNoRows {
			return ErrWalletNotFound
		} else if txErr != nil {
			return txErr
		}

		if wallet.Balance.LessThan(arg.Amount) {
			return ErrInsufficientFunds
		}

		if _, txErr = q.DebitWalletBalance(ctx, wallet.ID, arg.Amount); txErr != nil {
			if txErr == sql.ErrNoRows {
				return ErrInsufficientFunds
			}
			return txErr
		}

		ledgerEntry, txErr := q.CreateWalletTransaction(ctx, store.CreateWalletTransactionParams{
			CustomerID:    arg.UserID,
			WalletID:      wallet.ID,
			Type:          "withdrawal",
			Amount:        arg.Amount,
			Fee:           decimal.Zero,
			Status:        "pending",
			PaymentMethod: "bank_transfer",
			Reference:     fmt.Sprintf("WD-%s", arg.IdempotencyKey),
			Description:   sql.NullString{String: fmt.Sprintf("Withdrawal to %s", bank.BankName), Valid: true},
		})
		if txErr != nil {
			return txErr
		}

		created, txErr = q.CreateWithdrawal(ctx, store.CreateWithdrawalParams{
			CustomerID:     arg.UserID,
			Amount:         arg.Amount,
			Status:         "pending",
			BankName:       bank.BankName,
			AccountName:    bank.AccountName,
			AccountNumber:  bank.AccountNumber,
			IdempotencyKey: arg.IdempotencyKey,
			TransactionID:  uuid.NullUUID{UUID: ledgerEntry.ID, Valid: true},
		})
		return txErr
	})
	if err != nil {
		// A concurrent submit with the same token lost the race on the
		// unique column; the first write is authoritative. If the scoped
		// lookup finds nothing, the token is held by another customer.
		if store.IsDuplicateEntry(err) {
			replayed, rerr := s.store.GetWithdrawalByIdempotencyKey(ctx, store.GetWithdrawalByIdempotencyKeyParams{
				IdempotencyKey: arg.IdempotencyKey,
				CustomerID:     arg.UserID,
			})
			if rerr == sql.ErrNoRows {
				return nil, ErrTokenConflict
			} else if rerr != nil {
				return nil, rerr
			}
			return &replayed, nil
		}
		return nil, err
	}

	if s.notifier != nil {
		s.notifier.NotifyWithdrawalSubmitted(ctx, &created)
	}

	return &created, nil
}

func (s *WithdrawalService) List(ctx context.Context, userID int64) ([]store.Withdrawal, error) {
	return s.store.ListWithdrawalsByCustomerID(ctx, userID)
}

func (s *WithdrawalService) Get(ctx context.Context, userID int64, id uuid.UUID) (*store.Withdrawal, error) {
	w, err := s.store.GetWithdrawalByID(ctx, id)
	if err != nil {
		return nil, err
	}
	if w.CustomerID != userID {
		return nil, sql.ErrNoRows
	}
	return &w, nil
}
