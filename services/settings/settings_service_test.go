package settings

import (
	"context"
	"database/sql"
	"testing"
	"time"

	"github.com/CardHaven/CardHaven-Backend/db/store"
	"github.com/CardHaven/CardHaven-Backend/services/monitoring/logging"
	"github.com/DATA-DOG/go-sqlmock"
	"github.com/shopspring/decimal"
	"github.com/sirupsen/logrus"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func newTestService(t *testing.T) (*SettingsService, sqlmock.Sqlmock) {
	t.Helper()

	db, mock, err := sqlmock.New()
	require.NoError(t, err)
	t.Cleanup(func() { db.Close() })

	l := logrus.New()
	l.SetLevel(logrus.PanicLevel)

	return NewSettingsService(store.NewStore(db), &logging.Logger{Logger: l}), mock
}

func TestGetFundingFlatFeeCachesReads(t *testing.T) {
	service, mock := newTestService(t)

	rows := sqlmock.NewRows([]string{"key", "value", "updated_at"}).
		AddRow(FundingFlatFeeKey, "100.00", time.Now())
	mock.ExpectQuery("SELECT key, value, updated_at").
		WithArgs(FundingFlatFeeKey).
		WillReturnRows(rows)

	first, err := service.GetFundingFlatFee(context.Background())
	require.NoError(t, err)
	assert.True(t, first.Equal(decimal.RequireFromString("100.00")))

	// Second read must be served from the cache, no second query expected.
	second, err := service.GetFundingFlatFee(context.Background())
	require.NoError(t, err)
	assert.True(t, second.Equal(first))

	assert.NoError(t, mock.ExpectationsWereMet())
}

func TestGetFundingFlatFeeMissing(t *testing.T) {
	service, mock := newTestService(t)

	mock.ExpectQuery("SELECT key, value, updated_at").
		WithArgs(FundingFlatFeeKey).
		WillReturnError(sql.ErrNoRows)

	_, err := service.GetFundingFlatFee(context.Background())
	assert.ErrorIs(t, err, ErrSettingNotFound)
}

func TestSetFundingFlatFeeInvalidatesCache(t *testing.T) {
	service, mock := newTestService(t)

	readRows := sqlmock.NewRows([]string{"key", "value", "updated_at"}).
		AddRow(FundingFlatFeeKey, "100.00", time.Now())
	mock.ExpectQuery("SELECT key, value, updated_at").
		WithArgs(FundingFlatFeeKey).
		WillReturnRows(readRows)

	_, err := service.GetFundingFlatFee(context.Background())
	require.NoError(t, err)

	writeRows := sqlmock.NewRows([]string{"key", "value", "updated_at"}).
		AddRow(FundingFlatFeeKey, "150.00", time.Now())
	mock.ExpectQuery("INSERT INTO settings").
		WithArgs(FundingFlatFeeKey, "150.00").
		WillReturnRows(writeRows)

	require.NoError(t, service.SetFundingFlatFee(context.Background(), decimal.RequireFromString("150")))

	refreshRows := sqlmock.NewRows([]string{"key", "value", "updated_at"}).
		AddRow(FundingFlatFeeKey, "150.00", time.Now())
	mock.ExpectQuery("SELECT key, value, updated_at").
		WithArgs(FundingFlatFeeKey).
		WillReturnRows(refreshRows)

	updated, err := service.GetFundingFlatFee(context.Background())
	require.NoError(t, err)
	assert.True(t, updated.Equal(decimal.RequireFromString("150")))

	assert.NoError(t, mock.ExpectationsWereMet())
}
