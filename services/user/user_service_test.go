package user_service

import (
	"context"
	"database/sql"
	"testing"
	"time"

	"github.com/CardHaven/CardHaven-Backend/db/store"
	"github.com/CardHaven/CardHaven-Backend/services/monitoring/logging"
	"github.com/CardHaven/CardHaven-Backend/utils"
	"github.com/DATA-DOG/go-sqlmock"
	"github.com/google/uuid"
	"github.com/lib/pq"
	"github.com/sirupsen/logrus"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func newTestService(t *testing.T) (*UserService, sqlmock.Sqlmock) {
	t.Helper()

	db, mock, err := sqlmock.New()
	require.NoError(t, err)
	t.Cleanup(func() { db.Close() })

	l := logrus.New()
	l.SetLevel(logrus.PanicLevel)

	return NewUserService(store.NewStore(db), &logging.Logger{Logger: l}), mock
}

func userRow(email, passwordHash string, pin sql.NullString) *sqlmock.Rows {
	return sqlmock.NewRows([]string{
		"id", "email", "password_hash", "first_name", "last_name", "role",
		"transaction_pin", "fcm_token", "created_at", "updated_at",
	}).AddRow(int64(7), email, passwordHash, "Jane", "Doe", "user",
		pin, nil, time.Now(), time.Now())
}

func TestRegisterCreatesUserAndWallet(t *testing.T) {
	service, mock := newTestService(t)

	mock.ExpectBegin()
	mock.ExpectQuery("INSERT INTO users").
		WillReturnRows(userRow("jane@example.com", "hash", sql.NullString{}))
	walletRows := sqlmock.NewRows([]string{
		"id", "customer_id", "currency", "balance", "status", "created_at", "updated_at",
	}).AddRow(uuid.New(), int64(7), "NGN", "0", "active", time.Now(), time.Now())
	mock.ExpectQuery("INSERT INTO wallets").
		WillReturnRows(walletRows)
	mock.ExpectCommit()

	user, wallet, err := service.Register(context.Background(), RegisterParams{
		Email:     "jane@example.com",
		Password:  "s3cret-pass",
		FirstName: "Jane",
		LastName:  "Doe",
	})
	require.NoError(t, err)

	assert.Equal(t, "jane@example.com", user.Email)
	assert.Equal(t, "NGN", wallet.Currency)
	assert.True(t, wallet.Balance.IsZero())
	assert.NoError(t, mock.ExpectationsWereMet())
}

func TestRegisterDuplicateEmail(t *testing.T) {
	service, mock := newTestService(t)

	mock.ExpectBegin()
	mock.ExpectQuery("INSERT INTO users").
		WillReturnError(&pq.Error{Code: "23505"})
	mock.ExpectRollback()

	_, _, err := service.Register(context.Background(), RegisterParams{
		Email:     "jane@example.com",
		Password:  "s3cret-pass",
		FirstName: "Jane",
		LastName:  "Doe",
	})

	assert.ErrorIs(t, err, ErrUserAlreadyExists)
	assert.NoError(t, mock.ExpectationsWereMet())
}

func TestLogin(t *testing.T) {
	hash, err := utils.GenerateHashValue("s3cret-pass")
	require.NoError(t, err)

	tests := []struct {
		name     string
		password string
		rowErr   error
		wantErr  error
	}{
		{name: "correct password", password: "s3cret-pass"},
		{name: "wrong password", password: "nope", wantErr: ErrIncorrectPassword},
		{name: "unknown email", password: "s3cret-pass", rowErr: sql.ErrNoRows, wantErr: ErrUserNotFound},
	}

	for _, tc := range tests {
		t.Run(tc.name, func(t *testing.T) {
			service, mock := newTestService(t)

			expectation := mock.ExpectQuery("SELECT (.+) FROM users").
				WithArgs("jane@example.com")
			if tc.rowErr != nil {
				expectation.WillReturnError(tc.rowErr)
			} else {
				expectation.WillReturnRows(userRow("jane@example.com", hash, sql.NullString{}))
			}

			user, err := service.Login(context.Background(), "jane@example.com", tc.password)
			if tc.wantErr != nil {
				assert.ErrorIs(t, err, tc.wantErr)
				return
			}

			require.NoError(t, err)
			assert.Equal(t, int64(7), user.ID)
		})
	}
}

func TestSetTransactionPinRequiresOldPin(t *testing.T) {
	service, mock := newTestService(t)

	existing, err := utils.GenerateHashValue("1234")
	require.NoError(t, err)

	mock.ExpectQuery("SELECT (.+) FROM users").
		WithArgs(int64(7)).
		WillReturnRows(userRow("jane@example.com", "hash", sql.NullString{String: existing, Valid: true}))

	err = service.SetTransactionPin(context.Background(), 7, "0000", "5678")
	assert.ErrorIs(t, err, ErrIncorrectPin)
	assert.NoError(t, mock.ExpectationsWereMet(), "no update may happen with a wrong old PIN")
}
