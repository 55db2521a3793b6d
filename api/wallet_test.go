package api

import (
	"net/http"
	"net/http/httptest"
	"testing"
	"time"

	"github.com/CardHaven/CardHaven-Backend/db/store"
	"github.com/CardHaven/CardHaven-Backend/services/monitoring/logging"
	"github.com/CardHaven/CardHaven-Backend/utils"
	"github.com/DATA-DOG/go-sqlmock"
	"github.com/gin-gonic/gin"
	"github.com/google/uuid"
	"github.com/sirupsen/logrus"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func quietLogger() *logging.Logger {
	l := logrus.New()
	l.SetLevel(logrus.PanicLevel)
	return &logging.Logger{Logger: l}
}

func TestListTransactions(t *testing.T) {
	gin.SetMode(gin.TestMode)

	db, mock, err := sqlmock.New()
	require.NoError(t, err)
	t.Cleanup(func() { db.Close() })

	server := &Server{store: store.NewStore(db), logger: quietLogger()}
	wallet := &Wallet{server: server}

	walletID := uuid.New()
	rows := sqlmock.NewRows([]string{
		"id", "customer_id", "wallet_id", "type", "amount", "fee", "status",
		"payment_method", "reference", "description", "proof_url", "metadata",
		"created_at", "updated_at",
	}).
		AddRow(uuid.New(), int64(7), walletID, "fund", "5000", "100", "completed",
			"card", "CHV-REF0001", nil, nil, nil, time.Now(), time.Now()).
		AddRow(uuid.New(), int64(7), walletID, "withdrawal", "2000", "0", "pending",
			"bank_transfer", "WD-tok-1", nil, nil, nil, time.Now(), time.Now())

	mock.ExpectQuery("SELECT (.+) FROM wallet_transactions").
		WithArgs(int64(7), walletHistoryLimit).
		WillReturnRows(rows)

	router := gin.New()
	router.GET("/transactions", func(ctx *gin.Context) {
		ctx.Set("user", utils.TokenObject{UserID: 7, Role: "user"})
		wallet.listTransactions(ctx)
	})

	request := httptest.NewRequest(http.MethodGet, "/transactions", nil)
	recorder := httptest.NewRecorder()
	router.ServeHTTP(recorder, request)

	assert.Equal(t, http.StatusOK, recorder.Code)
	assert.Contains(t, recorder.Body.String(), "CHV-REF0001")
	assert.Contains(t, recorder.Body.String(), "WD-tok-1")
	assert.NoError(t, mock.ExpectationsWereMet())
}
