package funding

import (
	"context"
	"database/sql"
	"testing"
	"time"

	"github.com/CardHaven/CardHaven-Backend/db/store"
	"github.com/CardHaven/CardHaven-Backend/providers/fiat"
	"github.com/CardHaven/CardHaven-Backend/services/monitoring/logging"
	"github.com/CardHaven/CardHaven-Backend/services/settings"
	"github.com/DATA-DOG/go-sqlmock"
	"github.com/google/uuid"
	"github.com/shopspring/decimal"
	"github.com/sirupsen/logrus"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

type fakeCheckout struct {
	initialized *fiat.InitializedTransaction
	verified    *fiat.VerifiedTransaction
	err         error
	initCalls   int
	verifyCalls int
}

func (f *fakeCheckout) InitializeTransaction(request fiat.InitializeTransactionRequest) (*fiat.InitializedTransaction, error) {
	f.initCalls++
	return f.initialized, f.err
}

func (f *fakeCheckout) VerifyTransaction(reference string) (*fiat.VerifiedTransaction, error) {
	f.verifyCalls++
	return f.verified, f.err
}

type fakeProofStore struct {
	uploads int
	url     string
	err     error
}

func (f *fakeProofStore) UploadProof(key string, data []byte) (string, error) {
	f.uploads++
	return f.url, f.err
}

type fakeRefs struct {
	reference string
}

func (f *fakeRefs) PaymentReference() (string, error) {
	return f.reference, nil
}

func testLogger() *logging.Logger {
	l := logrus.New()
	l.SetLevel(logrus.PanicLevel)
	return &logging.Logger{Logger: l}
}

func newTestService(t *testing.T) (*FundingService, sqlmock.Sqlmock, *fakeCheckout, *fakeProofStore) {
	t.Helper()

	db, mock, err := sqlmock.New()
	require.NoError(t, err)
	t.Cleanup(func() { db.Close() })

	s := store.NewStore(db)
	logger := testLogger()
	checkout := &fakeCheckout{}
	proofs := &fakeProofStore{url: "https://proofs.example.com/proof.jpg"}

	service := NewFundingService(
		s,
		logger,
		settings.NewSettingsService(s, logger),
		checkout,
		proofs,
		&fakeRefs{reference: "CHV-TESTREF0001"},
		nil,
	)

	return service, mock, checkout, proofs
}

func expectFeeQuery(mock sqlmock.Sqlmock, fee string) {
	rows := sqlmock.NewRows([]string{"key", "value", "updated_at"}).
		AddRow(settings.FundingFlatFeeKey, fee, time.Now())
	mock.ExpectQuery("SELECT key, value, updated_at").
		WithArgs(settings.FundingFlatFeeKey).
		WillReturnRows(rows)
}

func TestGetQuote(t *testing.T) {
	tests := []struct {
		name        string
		amount      string
		fee         string
		wantTotal   string
		wantMinor   int64
		wantErr     error
		skipFeeRead bool
	}{
		{
			name:      "whole amount",
			amount:    "5000",
			fee:       "100.00",
			wantTotal: "5100",
			wantMinor: 510000,
		},
		{
			name:      "fractional amount",
			amount:    "2500.50",
			fee:       "100.00",
			wantTotal: "2600.50",
			wantMinor: 260050,
		},
		{
			name:        "zero amount rejected",
			amount:      "0",
			wantErr:     ErrInvalidAmount,
			skipFeeRead: true,
		},
		{
			name:        "negative amount rejected",
			amount:      "-200",
			wantErr:     ErrInvalidAmount,
			skipFeeRead: true,
		},
	}

	for _, tc := range tests {
		t.Run(tc.name, func(t *testing.T) {
			service, mock, _, _ := newTestService(t)
			if !tc.skipFeeRead {
				expectFeeQuery(mock, tc.fee)
			}

			amount, err := decimal.NewFromString(tc.amount)
			require.NoError(t, err)

			quote, err := service.GetQuote(context.Background(), amount)
			if tc.wantErr != nil {
				assert.ErrorIs(t, err, tc.wantErr)
				return
			}

			require.NoError(t, err)
			assert.True(t, quote.TotalPayable.Equal(decimal.RequireFromString(tc.wantTotal)),
				"total payable %s, want %s", quote.TotalPayable, tc.wantTotal)
			assert.Equal(t, tc.wantMinor, quote.MinorUnits())
			assert.NoError(t, mock.ExpectationsWereMet())
		})
	}
}

func TestSubmitManualTransferDuplicateGuard(t *testing.T) {
	service, mock, _, proofs := newTestService(t)

	expectFeeQuery(mock, "100.00")

	walletID := uuid.New()
	walletRows := sqlmock.NewRows([]string{"id", "customer_id", "currency", "balance", "status", "created_at", "updated_at"}).
		AddRow(walletID, int64(7), "NGN", "1000", "active", time.Now(), time.Now())
	mock.ExpectQuery("SELECT (.+) FROM wallets").
		WithArgs(int64(7)).
		WillReturnRows(walletRows)

	mock.ExpectQuery("SELECT COUNT").
		WillReturnRows(sqlmock.NewRows([]string{"count"}).AddRow(int64(1)))

	user := &store.User{ID: 7, Email: "jane@example.com"}
	_, err := service.SubmitManualTransfer(context.Background(), user, decimal.RequireFromString("5000"), "receipt.jpg", []byte("proof-bytes"))

	assert.ErrorIs(t, err, ErrDuplicatePending)
	assert.Zero(t, proofs.uploads, "no upload should happen once the duplicate guard trips")
	assert.NoError(t, mock.ExpectationsWereMet())
}

func TestSubmitManualTransferRequiresProof(t *testing.T) {
	service, mock, _, proofs := newTestService(t)

	expectFeeQuery(mock, "100.00")

	user := &store.User{ID: 7, Email: "jane@example.com"}
	_, err := service.SubmitManualTransfer(context.Background(), user, decimal.RequireFromString("5000"), "receipt.jpg", nil)

	assert.ErrorIs(t, err, ErrProofRequired)
	assert.Zero(t, proofs.uploads)
}

func TestConfirmCardFundingCompletedIsNoop(t *testing.T) {
	service, mock, checkout, _ := newTestService(t)

	txID := uuid.New()
	walletID := uuid.New()
	rows := sqlmock.NewRows([]string{
		"id", "customer_id", "wallet_id", "type", "amount", "fee", "status",
		"payment_method", "reference", "description", "proof_url", "metadata",
		"created_at", "updated_at",
	}).AddRow(txID, int64(7), walletID, "fund", "5000", "100", "completed",
		MethodPaystack, "CHV-TESTREF0001", nil, nil, nil, time.Now(), time.Now())

	mock.ExpectQuery("SELECT (.+) FROM wallet_transactions").
		WithArgs("CHV-TESTREF0001").
		WillReturnRows(rows)

	outcome, err := service.ConfirmCardFunding(context.Background(), "CHV-TESTREF0001")
	require.NoError(t, err)

	assert.False(t, outcome.Credited)
	assert.Equal(t, "completed", outcome.Transaction.Status)
	assert.Zero(t, checkout.verifyCalls, "settled references must not hit the provider again")
	assert.NoError(t, mock.ExpectationsWereMet())
}

func TestConfirmCardFundingUnknownReference(t *testing.T) {
	service, mock, _, _ := newTestService(t)

	mock.ExpectQuery("SELECT (.+) FROM wallet_transactions").
		WithArgs("CHV-MISSING").
		WillReturnError(sql.ErrNoRows)

	_, err := service.ConfirmCardFunding(context.Background(), "CHV-MISSING")
	assert.ErrorIs(t, err, ErrTransactionNotFound)
}

func TestConfirmCardFundingAmountMismatch(t *testing.T) {
	service, mock, checkout, _ := newTestService(t)

	txID := uuid.New()
	walletID := uuid.New()
	rows := sqlmock.NewRows([]string{
		"id", "customer_id", "wallet_id", "type", "amount", "fee", "status",
		"payment_method", "reference", "description", "proof_url", "metadata",
		"created_at", "updated_at",
	}).AddRow(txID, int64(7), walletID, "fund", "5000", "100", "pending",
		MethodPaystack, "CHV-TESTREF0001", nil, nil, nil, time.Now(), time.Now())

	mock.ExpectQuery("SELECT (.+) FROM wallet_transactions").
		WithArgs("CHV-TESTREF0001").
		WillReturnRows(rows)

	// Provider settled 100.00 less than the quoted total.
	checkout.verified = &fiat.VerifiedTransaction{
		Status: fiat.TransactionSuccess,
		Amount: 500000,
	}

	_, err := service.ConfirmCardFunding(context.Background(), "CHV-TESTREF0001")
	assert.ErrorIs(t, err, ErrAmountMismatch)
	assert.Equal(t, 1, checkout.verifyCalls)
}
