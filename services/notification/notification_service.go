package notification_service

import (
	"context"
	"database/sql"
	"fmt"

	"github.com/CardHaven/CardHaven-Backend/db/store"
	"github.com/CardHaven/CardHaven-Backend/services/monitoring/logging"
	"github.com/google/uuid"
)

type NotificationService struct {
	store  *store.Store
	logger *logging.Logger
	push   *PushNotificationService
	mail   *Plunk
}

func NewNotificationService(store *store.Store, logger *logging.Logger, push *PushNotificationService, mail *Plunk) *NotificationService {
	return &NotificationService{
		store:  store,
		logger: logger,
		push:   push,
		mail:   mail,
	}
}

// Create persists the notification and pushes it to the user's device when
// one is registered. Push failures never fail the caller's flow.
func (n *NotificationService) Create(ctx context.Context, arg store.CreateNotificationParams) (*store.Notification, error) {
	created, err := n.store.CreateNotification(ctx, arg)
	if err != nil {
		return nil, err
	}

	if n.push != nil {
		user, err := n.store.GetUserByID(ctx, arg.UserID)
		if err == nil && user.FCMToken.Valid {
			unread, _ := n.store.CountUnreadNotifications(ctx, arg.UserID)
			pushErr := n.push.SendPush(&PushNotificationInfo{
				Title:        arg.Title,
				Message:      arg.Body,
				UserFCMToken: user.FCMToken.String,
				Badge:        int(unread),
			})
			if pushErr != nil {
				n.logger.Error(fmt.Sprintf("push delivery failed for user %d: %v", arg.UserID, pushErr))
			}
		}
	}

	return &created, nil
}

func (n *NotificationService) List(ctx context.Context, userID int64) ([]store.Notification, error) {
	return n.store.ListNotificationsByUser(ctx, userID)
}

func (n *NotificationService) MarkRead(ctx context.Context, userID, notificationID int64) error {
	return n.store.MarkNotificationRead(ctx, store.MarkNotificationReadParams{
		ID:     notificationID,
		UserID: userID,
	})
}

// MarkAllRead flips every unread notification and returns how many changed.
func (n *NotificationService) MarkAllRead(ctx context.Context, userID int64) (int64, error) {
	return n.store.MarkAllNotificationsRead(ctx, userID)
}

func (n *NotificationService) UnreadCount(ctx context.Context, userID int64) (int64, error) {
	return n.store.CountUnreadNotifications(ctx, userID)
}

// Resolve returns the notification with its deep-link route.
func (n *NotificationService) Resolve(ctx context.Context, userID, notificationID int64) (*store.Notification, Route, error) {
	dbNotification, err := n.store.GetNotification(ctx, store.GetNotificationParams{
		ID:     notificationID,
		UserID: userID,
	})
	if err != nil {
		return nil, Route{}, err
	}

	return &dbNotification, ResolveRoute(&dbNotification), nil
}

func (n *NotificationService) NotifyFundingPending(ctx context.Context, tx *store.WalletTransaction) {
	n.create(ctx, tx.CustomerID, store.CreateNotificationParams{
		UserID:               tx.CustomerID,
		Title:                "Transfer received",
		Body:                 fmt.Sprintf("Your transfer of %s is pending review. You'll be credited once it is confirmed.", tx.Amount.StringFixed(2)),
		Type:                 "wallet",
		ActionType:           sql.NullString{String: ActionWalletFunding, Valid: true},
		RelatedTransactionID: uuid.NullUUID{UUID: tx.ID, Valid: true},
	})
}

func (n *NotificationService) NotifyFundingCompleted(ctx context.Context, tx *store.WalletTransaction) {
	n.create(ctx, tx.CustomerID, store.CreateNotificationParams{
		UserID:               tx.CustomerID,
		Title:                "Wallet funded",
		Body:                 fmt.Sprintf("Your wallet has been credited with %s.", tx.Amount.StringFixed(2)),
		Type:                 "wallet",
		ActionType:           sql.NullString{String: ActionWalletFunding, Valid: true},
		RelatedTransactionID: uuid.NullUUID{UUID: tx.ID, Valid: true},
	})

	n.emailReceipt(ctx, tx, "Wallet funding receipt",
		fmt.Sprintf("Your wallet funding of %s (fee %s) with reference %s is complete.", tx.Amount.StringFixed(2), tx.Fee.StringFixed(2), tx.Reference))
}

func (n *NotificationService) NotifyFundingFailed(ctx context.Context, tx *store.WalletTransaction) {
	n.create(ctx, tx.CustomerID, store.CreateNotificationParams{
		UserID:               tx.CustomerID,
		Title:                "Funding failed",
		Body:                 fmt.Sprintf("Your wallet funding of %s was not successful. No money left your wallet.", tx.Amount.StringFixed(2)),
		Type:                 "wallet",
		ActionType:           sql.NullString{String: ActionWalletFunding, Valid: true},
		RelatedTransactionID: uuid.NullUUID{UUID: tx.ID, Valid: true},
	})

	n.emailReceipt(ctx, tx, "Wallet funding failed",
		fmt.Sprintf("Your wallet funding with reference %s did not complete.", tx.Reference))
}

func (n *NotificationService) NotifyWithdrawalSubmitted(ctx context.Context, w *store.Withdrawal) {
	n.create(ctx, w.CustomerID, store.CreateNotificationParams{
		UserID:              w.CustomerID,
		Title:               "Withdrawal submitted",
		Body:                fmt.Sprintf("Your withdrawal of %s to %s is being processed.", w.Amount.StringFixed(2), w.BankName),
		Type:                "withdrawal",
		ActionType:          sql.NullString{String: ActionWithdrawal, Valid: true},
		RelatedWithdrawalID: uuid.NullUUID{UUID: w.ID, Valid: true},
	})
}

func (n *NotificationService) NotifyGiftcardOrder(ctx context.Context, tx *store.GiftcardTransaction) {
	n.create(ctx, tx.CustomerID, store.CreateNotificationParams{
		UserID:               tx.CustomerID,
		Title:                "Gift card order",
		Body:                 fmt.Sprintf("Your %s order for %s %s is %s.", tx.Type, tx.BrandName, tx.VariantName, tx.Status),
		Type:                 "giftcard",
		ActionType:           sql.NullString{String: ActionGiftcard, Valid: true},
		RelatedTransactionID: uuid.NullUUID{UUID: tx.ID, Valid: true},
	})
}

func (n *NotificationService) create(ctx context.Context, userID int64, arg store.CreateNotificationParams) {
	if _, err := n.Create(ctx, arg); err != nil {
		n.logger.Error(fmt.Sprintf("unable to create notification for user %d: %v", userID, err))
	}
}

func (n *NotificationService) emailReceipt(ctx context.Context, tx *store.WalletTransaction, subject, body string) {
	if n.mail == nil {
		return
	}

	user, err := n.store.GetUserByID(ctx, tx.CustomerID)
	if err != nil {
		n.logger.Error(fmt.Sprintf("unable to load user %d for receipt: %v", tx.CustomerID, err))
		return
	}

	if err := n.mail.SendEmail(user.Email, subject, body); err != nil {
		n.logger.Error(fmt.Sprintf("receipt email failed for %s: %v", tx.Reference, err))
	}
}
