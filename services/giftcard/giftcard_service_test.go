package giftcard

import (
	"context"
	"testing"
	"time"

	"github.com/CardHaven/CardHaven-Backend/db/store"
	"github.com/CardHaven/CardHaven-Backend/services/catalog"
	"github.com/CardHaven/CardHaven-Backend/services/monitoring/logging"
	user_service "github.com/CardHaven/CardHaven-Backend/services/user"
	"github.com/DATA-DOG/go-sqlmock"
	"github.com/sirupsen/logrus"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func newTestService(t *testing.T) (*GiftcardService, sqlmock.Sqlmock) {
	t.Helper()

	db, mock, err := sqlmock.New()
	require.NoError(t, err)
	t.Cleanup(func() { db.Close() })

	s := store.NewStore(db)
	l := logrus.New()
	l.SetLevel(logrus.PanicLevel)
	logger := &logging.Logger{Logger: l}

	service := NewGiftcardService(
		s,
		logger,
		user_service.NewUserService(s, logger),
		catalog.NewCatalogService(s, logger),
		nil,
	)
	return service, mock
}

func rateRows() *sqlmock.Rows {
	rows := sqlmock.NewRows([]string{
		"id", "brand_id", "name", "category", "variant_name", "side", "rate",
		"face_value", "available", "updated_at",
	})
	rows.AddRow(int64(1), int64(1), "Amazon", "Shopping", "US $50", "buy", "750", "50", true, time.Now())
	rows.AddRow(int64(2), int64(1), "Amazon", "Shopping", "US $50", "sell", "680", "50", true, time.Now())
	return rows
}

func TestBuyRejectsInvalidQuantity(t *testing.T) {
	service, mock := newTestService(t)

	_, err := service.Buy(context.Background(), BuyParams{
		UserID:      7,
		BrandID:     1,
		VariantName: "US $50",
		Quantity:    0,
		Pin:         "1234",
	})

	assert.ErrorIs(t, err, ErrInvalidQuantity)
	assert.NoError(t, mock.ExpectationsWereMet(), "invalid quantity must fail before any query")
}

func TestBuyUnknownVariant(t *testing.T) {
	service, mock := newTestService(t)

	mock.ExpectQuery("SELECT (.+) FROM brand_rates").WillReturnRows(rateRows())

	_, err := service.Buy(context.Background(), BuyParams{
		UserID:      7,
		BrandID:     99,
		VariantName: "US $500",
		Quantity:    1,
		Pin:         "1234",
	})

	assert.ErrorIs(t, err, ErrVariantNotFound)
}

func TestSellRequiresCardCodes(t *testing.T) {
	service, mock := newTestService(t)

	tests := []struct {
		name  string
		codes []string
	}{
		{name: "no codes"},
		{name: "blank code", codes: []string{"ABCD-1234", ""}},
	}

	for _, tc := range tests {
		t.Run(tc.name, func(t *testing.T) {
			_, err := service.Sell(context.Background(), SellParams{
				UserID:      7,
				BrandID:     1,
				VariantName: "US $50",
				CardCodes:   tc.codes,
			})
			assert.ErrorIs(t, err, ErrCardCodeRequired)
		})
	}

	assert.NoError(t, mock.ExpectationsWereMet())
}

func TestSellUsesSellSideRate(t *testing.T) {
	service, mock := newTestService(t)

	mock.ExpectQuery("SELECT (.+) FROM brand_rates").WillReturnRows(rateRows())

	insertRows := sqlmock.NewRows([]string{
		"id", "customer_id", "type", "brand_id", "variant_name", "rate",
		"quantity", "amount", "card_codes", "status", "rejection_reason",
		"created_at", "updated_at",
	}).AddRow("7b25f6c9-9aa5-4f2f-bbd2-0f1f76f3c001", int64(7), "sell", int64(1),
		"US $50", "680", int32(2), "1360", "{CODE-1,CODE-2}", "pending",
		nil, time.Now(), time.Now())
	mock.ExpectQuery("INSERT INTO giftcard_transactions").WillReturnRows(insertRows)

	created, err := service.Sell(context.Background(), SellParams{
		UserID:      7,
		BrandID:     1,
		VariantName: "US $50",
		CardCodes:   []string{"CODE-1", "CODE-2"},
	})
	require.NoError(t, err)

	assert.Equal(t, "pending", created.Status)
	assert.Equal(t, int32(2), created.Quantity)
	assert.NoError(t, mock.ExpectationsWereMet())
}

func TestBuyOutOfStock(t *testing.T) {
	service, mock := newTestService(t)

	mock.ExpectQuery("SELECT (.+) FROM brand_rates").WillReturnRows(rateRows())
	mock.ExpectQuery("SELECT COUNT").
		WithArgs(int64(1), "US $50").
		WillReturnRows(sqlmock.NewRows([]string{"count"}).AddRow(int64(1)))

	_, err := service.Buy(context.Background(), BuyParams{
		UserID:      7,
		BrandID:     1,
		VariantName: "US $50",
		Quantity:    3,
		Pin:         "1234",
	})

	assert.ErrorIs(t, err, ErrOutOfStock)
	assert.NoError(t, mock.ExpectationsWereMet(), "stock miss must fail before the PIN is ever checked")
}

func TestBuyWrongSideVariant(t *testing.T) {
	service, mock := newTestService(t)

	onlySell := sqlmock.NewRows([]string{
		"id", "brand_id", "name", "category", "variant_name", "side", "rate",
		"face_value", "available", "updated_at",
	}).AddRow(int64(2), int64(1), "Amazon", "Shopping", "US $50", "sell", "680", "50", true, time.Now())
	mock.ExpectQuery("SELECT (.+) FROM brand_rates").WillReturnRows(onlySell)

	_, err := service.Buy(context.Background(), BuyParams{
		UserID:      7,
		BrandID:     1,
		VariantName: "US $50",
		Quantity:    1,
		Pin:         "1234",
	})

	assert.ErrorIs(t, err, ErrVariantNotForSide)
}
