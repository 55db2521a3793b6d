package store

import (
	"context"
	"database/sql"
	"time"

	"github.com/google/uuid"
)

type Notification struct {
	ID                   int64
	UserID               int64
	Title                string
	Body                 string
	Type                 string
	ActionType           sql.NullString
	RelatedTransactionID uuid.NullUUID
	RelatedWithdrawalID  uuid.NullUUID
	Read                 bool
	CreatedAt            time.Time
}

const notificationColumns = `id, user_id, title, body, type, action_type, related_transaction_id, related_withdrawal_id, read, created_at`

const createNotification = `
INSERT INTO notifications (user_id, title, body, type, action_type, related_transaction_id, related_withdrawal_id)
VALUES ($1, $2, $3, $4, $5, $6, $7)
RETURNING ` + notificationColumns

type CreateNotificationParams struct {
	UserID               int64
	Title                string
	Body                 string
	Type                 string
	ActionType           sql.NullString
	RelatedTransactionID uuid.NullUUID
	RelatedWithdrawalID  uuid.NullUUID
}

func (q *Queries) CreateNotification(ctx context.Context, arg CreateNotificationParams) (Notification, error) {
	row := q.db.QueryRowContext(ctx, createNotification,
		arg.UserID,
		arg.Title,
		arg.Body,
		arg.Type,
		arg.ActionType,
		arg.RelatedTransactionID,
		arg.RelatedWithdrawalID,
	)
	var n Notification
	err := row.Scan(
		&n.ID,
		&n.UserID,
		&n.Title,
		&n.Body,
		&n.Type,
		&n.ActionType,
		&n.RelatedTransactionID,
		&n.RelatedWithdrawalID,
		&n.Read,
		&n.CreatedAt,
	)
	return n, err
}

const listNotificationsByUser = `
SELECT ` + notificationColumns + `
FROM notifications
WHERE user_id = $1
ORDER BY created_at DESC
`

func (q *Queries) ListNotificationsByUser(ctx context.Context, userID int64) ([]Notification, error) {
	rows, err := q.db.QueryContext(ctx, listNotificationsByUser, userID)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	var items []Notification
	for rows.Next() {
		var n Notification
		if err := rows.Scan(
			&n.ID,
			&n.UserID,
			&n.Title,
			&n.Body,
			&n.Type,
			&n.ActionType,
			&n.RelatedTransactionID,
			&n.RelatedWithdrawalID,
			&n.Read,
			&n.CreatedAt,
		); err != nil {
			return nil, err
		}
		items = append(items, n)
	}
	return items, rows.Err()
}

const getNotification = `
SELECT ` + notificationColumns + `
FROM notifications
WHERE id = $1 AND user_id = $2
`

type GetNotificationParams struct {
	ID     int64
	UserID int64
}

func (q *Queries) GetNotification(ctx context.Context, arg GetNotificationParams) (Notification, error) {
	row := q.db.QueryRowContext(ctx, getNotification, arg.ID, arg.UserID)
	var n Notification
	err := row.Scan(
		&n.ID,
		&n.UserID,
		&n.Title,
		&n.Body,
		&n.Type,
		&n.ActionType,
		&n.RelatedTransactionID,
		&n.RelatedWithdrawalID,
		&n.Read,
		&n.CreatedAt,
	)
	return n, err
}

const markNotificationRead = `
UPDATE notifications
SET read = TRUE
WHERE id = $1 AND user_id = $2
`

type MarkNotificationReadParams struct {
	ID     int64
	UserID int64
}

func (q *Queries) MarkNotificationRead(ctx context.Context, arg MarkNotificationReadParams) error {
	result, err := q.db.ExecContext(ctx, markNotificationRead, arg.ID, arg.UserID)
	if err != nil {
		return err
	}
	affected, err := result.RowsAffected()
	if err != nil {
		return err
	}
	if affected == 0 {
		return sql.ErrNoRows
	}
	return nil
}

const markAllNotificationsRead = `
UPDATE notifications
SET read = TRUE
WHERE user_id = $1 AND read = FALSE
`

// MarkAllNotificationsRead returns the number of notifications flipped.
func (q *Queries) MarkAllNotificationsRead(ctx context.Context, userID int64) (int64, error) {
	result, err := q.db.ExecContext(ctx, markAllNotificationsRead, userID)
	if err != nil {
		return 0, err
	}
	return result.RowsAffected()
}

const countUnreadNotifications = `
SELECT COUNT(*)
FROM notifications
WHERE user_id = $1 AND read = FALSE
`

func (q *Queries) CountUnreadNotifications(ctx context.Context, userID int64) (int64, error) {
	var count int64
	err := q.db.QueryRowContext(ctx, countUnreadNotifications, userID).Scan(&count)
	return count, err
}
