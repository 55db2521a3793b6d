package notification_service

import (
	"context"
	"database/sql"
	"testing"

	"github.com/CardHaven/CardHaven-Backend/db/store"
	"github.com/CardHaven/CardHaven-Backend/services/monitoring/logging"
	"github.com/DATA-DOG/go-sqlmock"
	"github.com/sirupsen/logrus"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func newTestService(t *testing.T) (*NotificationService, sqlmock.Sqlmock) {
	t.Helper()

	db, mock, err := sqlmock.New()
	require.NoError(t, err)
	t.Cleanup(func() { db.Close() })

	l := logrus.New()
	l.SetLevel(logrus.PanicLevel)

	return NewNotificationService(store.NewStore(db), &logging.Logger{Logger: l}, nil, nil), mock
}

func TestMarkAllRead(t *testing.T) {
	tests := []struct {
		name   string
		unread int64
	}{
		{name: "flips every unread row", unread: 5},
		{name: "no unread rows is not an error", unread: 0},
	}

	for _, tc := range tests {
		t.Run(tc.name, func(t *testing.T) {
			service, mock := newTestService(t)

			mock.ExpectExec("UPDATE notifications").
				WithArgs(int64(7)).
				WillReturnResult(sqlmock.NewResult(0, tc.unread))

			count, err := service.MarkAllRead(context.Background(), 7)
			require.NoError(t, err)

			assert.Equal(t, tc.unread, count)
			assert.NoError(t, mock.ExpectationsWereMet())
		})
	}
}

func TestMarkReadUnknownNotification(t *testing.T) {
	service, mock := newTestService(t)

	mock.ExpectExec("UPDATE notifications").
		WithArgs(int64(42), int64(7)).
		WillReturnResult(sqlmock.NewResult(0, 0))

	err := service.MarkRead(context.Background(), 7, 42)
	assert.ErrorIs(t, err, sql.ErrNoRows)
}

func TestMarkReadScopedToOwner(t *testing.T) {
	service, mock := newTestService(t)

	// The owning user id is part of the update predicate.
	mock.ExpectExec("UPDATE notifications").
		WithArgs(int64(42), int64(7)).
		WillReturnResult(sqlmock.NewResult(0, 1))

	err := service.MarkRead(context.Background(), 7, 42)
	assert.NoError(t, err)
	assert.NoError(t, mock.ExpectationsWereMet())
}

func TestUnreadCount(t *testing.T) {
	service, mock := newTestService(t)

	mock.ExpectQuery("SELECT COUNT").
		WithArgs(int64(7)).
		WillReturnRows(sqlmock.NewRows([]string{"count"}).AddRow(int64(3)))

	count, err := service.UnreadCount(context.Background(), 7)
	require.NoError(t, err)
	assert.Equal(t, int64(3), count)
}
