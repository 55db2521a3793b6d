package funding

import (
	"context"
	"database/sql"
	"fmt"
	"time"

	"github.com/CardHaven/CardHaven-Backend/db/store"
	"github.com/CardHaven/CardHaven-Backend/providers/fiat"
	"github.com/CardHaven/CardHaven-Backend/services/monitoring/logging"
	notification_service "github.com/CardHaven/CardHaven-Backend/services/notification"
	"github.com/CardHaven/CardHaven-Backend/services/settings"
	"github.com/shopspring/decimal"
)

// duplicateWindow is how long a matching pending manual transfer blocks a
// re-submission.
const duplicateWindow = 5 * time.Minute

// CheckoutProvider is the slice of the Paystack provider the funding flow
// needs.
type CheckoutProvider interface {
	InitializeTransaction(request fiat.InitializeTransactionRequest) (*fiat.InitializedTransaction, error)
	VerifyTransaction(reference string) (*fiat.VerifiedTransaction, error)
}

// ProofStore stores proof-of-payment files.
type ProofStore interface {
	UploadProof(key string, data []byte) (string, error)
}

// ReferenceSource issues payment references.
type ReferenceSource interface {
	PaymentReference() (string, error)
}

type FundingService struct {
	store    *store.Store
	logger   *logging.Logger
	settings *settings.SettingsService
	checkout CheckoutProvider
	proofs   ProofStore
	refs     ReferenceSource
	notifier *notification_service.NotificationService
}

func NewFundingService(
	store *store.Store,
	logger *logging.Logger,
	settings *settings.SettingsService,
	checkout CheckoutProvider,
	proofs ProofStore,
	refs ReferenceSource,
	notifier *notification_service.NotificationService,
) *FundingService {
	return &FundingService{
		store:    store,
		logger:   logger,
		settings: settings,
		checkout: checkout,
		proofs:   proofs,
		refs:     refs,
		notifier: notifier,
	}
}

// GetQuote computes the charge breakdown for an entered amount.
func (f *FundingService) GetQuote(ctx context.Context, amount decimal.Decimal) (Quote, error) {
	if amount.LessThanOrEqual(decimal.Zero) {
		return Quote{}, ErrInvalidAmount
	}

	fee, err := f.settings.GetFundingFlatFee(ctx)
	if err != nil {
		return Quote{}, fmt.Errorf("unable to fetch processing fee: %w", err)
	}

	return NewQuote(amount, fee), nil
}

// InitiateCardFunding records a pending funding transaction and opens a
// checkout session with the provider. The wallet is only ever credited by
// ConfirmCardFunding after provider verification.
func (f *FundingService) InitiateCardFunding(ctx context.Context, user *store.User, amount decimal.Decimal) (*InitiatedFunding, error) {
	quote, err := f.GetQuote(ctx, amount)
	if err != nil {
		return nil, err
	}

	wallet, err := f.store.GetWalletByCustomerID(ctx, user.ID)
	if err == sql.ErrNoRows {
		return nil, ErrWalletNotFound
	} else if err != nil {
		return nil, err
	}

	reference, err := f.refs.PaymentReference()
	if err != nil {
		return nil, err
	}

	pending, err := f.store.CreateWalletTransaction(ctx, store.CreateWalletTransactionParams{
		CustomerID:    user.ID,
		WalletID:      wallet.ID,
		Type:          "fund",
		Amount:        quote.Amount,
		Fee:           quote.Fee,
		Status:        "pending",
		PaymentMethod: MethodPaystack,
		Reference:     reference,
		Description:   sql.NullString{String: "Wallet funding via card", Valid: true},
	})
	if err != nil {
		return nil, fmt.Errorf("unable to record funding transaction: %w", err)
	}

	initialized, err := f.checkout.InitializeTransaction(fiat.InitializeTransactionRequest{
		Amount:    quote.MinorUnits(),
		Email:     user.Email,
		Reference: reference,
		Currency:  wallet.Currency,
	})
	if err != nil {
		f.logger.Error(fmt.Sprintf("checkout initialization failed for %s: %v", reference, err))
		if _, uerr := f.store.UpdateWalletTransactionStatus(ctx, pending.ID, "failed"); uerr != nil {
			f.logger.Error(fmt.Sprintf("unable to fail transaction %s: %v", reference, uerr))
		}
		return nil, ErrProviderUnavailable
	}

	return &InitiatedFunding{
		Reference:        reference,
		AuthorizationURL: initialized.AuthorizationURL,
		Quote:            quote,
	}, nil
}

// ConfirmCardFunding settles a funding reference. The outcome comes from the
// provider's verify endpoint, never from redirect URLs. Confirming an
// already-completed reference is a no-op.
func (f *FundingService) ConfirmCardFunding(ctx context.Context, reference string) (*Outcome, error) {
	existing, err := f.store.GetWalletTransactionByReference(ctx, reference)
	if err == sql.ErrNoRows {
		return nil, ErrTransactionNotFound
	} else if err != nil {
		return nil, err
	}

	if existing.Status == "completed" {
		return &Outcome{Transaction: existing, Credited: false}, nil
	}

	verified, err := f.checkout.VerifyTransaction(reference)
	if err != nil {
		f.logger.Error(fmt.Sprintf("verification failed for %s: %v", reference, err))
		return nil, ErrProviderUnavailable
	}

	expected := NewQuote(existing.Amount, existing.Fee).MinorUnits()
	settled := verified.Status == fiat.TransactionSuccess

	if settled && verified.Amount != expected {
		f.logger.Error(fmt.Sprintf("amount mismatch for %s: settled %d, expected %d", reference, verified.Amount, expected))
		return nil, ErrAmountMismatch
	}

	var outcome Outcome
	err = f.store.ExecTx(ctx, func(q *store.Queries) error {
		locked, txErr := q.GetWalletTransactionByReferenceForUpdate(ctx, reference)
		if txErr != nil {
			return txErr
		}

		// A concurrent confirm may have settled it already.
		if locked.Status != "pending" {
			outcome = Outcome{Transaction: locked, Credited: false}
			return nil
		}

		if !settled {
			failed, txErr := q.UpdateWalletTransactionStatus(ctx, locked.ID, "failed")
			if txErr != nil {
				return txErr
			}
			outcome = Outcome{Transaction: failed, Credited: false}
			return nil
		}

		// Credit the entered amount only; the fee is not credited.
		if _, txErr := q.CreditWalletBalance(ctx, locked.WalletID, locked.Amount); txErr != nil {
			return txErr
		}

		completed, txErr := q.UpdateWalletTransactionStatus(ctx, locked.ID, "completed")
		if txErr != nil {
			return txErr
		}
		outcome = Outcome{Transaction: completed, Credited: true}
		return nil
	})
	if err != nil {
		return nil, err
	}

	f.notifyOutcome(ctx, &outcome)
	return &outcome, nil
}

// SubmitManualTransfer uploads the proof of payment and records a pending
// funding transaction for admin review.
func (f *FundingService) SubmitManualTransfer(ctx context.Context, user *store.User, amount decimal.Decimal, filename string, proof []byte) (*store.WalletTransaction, error) {
	quote, err := f.GetQuote(ctx, amount)
	if err != nil {
		return nil, err
	}

	if len(proof) == 0 {
		return nil, ErrProofRequired
	}

	wallet, err := f.store.GetWalletByCustomerID(ctx, user.ID)
	if err == sql.ErrNoRows {
		return nil, ErrWalletNotFound
	} else if err != nil {
		return nil, err
	}

	// Reject duplicates before any upload or insert.
	count, err := f.store.CountRecentPendingFunding(ctx, store.CountRecentPendingFundingParams{
		CustomerID:    user.ID,
		PaymentMethod: MethodManualTransfer,
		Amount:        quote.Amount,
		Since:         time.Now().Add(-duplicateWindow),
	})
	if err != nil {
		return nil, err
	}
	if count > 0 {
		return nil, ErrDuplicatePending
	}

	reference, err := f.refs.PaymentReference()
	if err != nil {
		return nil, err
	}

	proofURL, err := f.proofs.UploadProof(fmt.Sprintf("proofs/%d/%s-%s", user.ID, reference, filename), proof)
	if err != nil {
		return nil, err
	}

	created, err := f.store.CreateWalletTransaction(ctx, store.CreateWalletTransactionParams{
		CustomerID:    user.ID,
		WalletID:      wallet.ID,
		Type:          "fund",
		Amount:        quote.Amount,
		Fee:           quote.Fee,
		Status:        "pending",
		PaymentMethod: MethodManualTransfer,
		Reference:     reference,
		Description:   sql.NullString{String: "Wallet funding via bank transfer", Valid: true},
		ProofURL:      sql.NullString{String: proofURL, Valid: true},
	})
	if err != nil {
		return nil, fmt.Errorf("unable to record funding transaction: %w", err)
	}

	if f.notifier != nil {
		f.notifier.NotifyFundingPending(ctx, &created)
	}

	return &created, nil
}

func (f *FundingService) notifyOutcome(ctx context.Context, outcome *Outcome) {
	if f.notifier == nil {
		return
	}

	if outcome.Credited {
		f.notifier.NotifyFundingCompleted(ctx, &outcome.Transaction)
	} else if outcome.Transaction.Status == "failed" {
		f.notifier.NotifyFundingFailed(ctx, &outcome.Transaction)
	}
}
