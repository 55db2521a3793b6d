package notification_service

import (
	"database/sql"
	"testing"

	"github.com/CardHaven/CardHaven-Backend/db/store"
	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
)

func TestResolveRouteByActionType(t *testing.T) {
	txID := uuid.New()
	wdID := uuid.New()

	tests := []struct {
		name       string
		action     string
		wantDest   string
		wantRelate string
	}{
		{name: "wallet funding", action: ActionWalletFunding, wantDest: DestTransactionDetail, wantRelate: txID.String()},
		{name: "withdrawal", action: ActionWithdrawal, wantDest: DestWithdrawalDetail, wantRelate: wdID.String()},
		{name: "gift card order", action: ActionGiftcard, wantDest: DestGiftcardOrders, wantRelate: txID.String()},
		{name: "announcement", action: ActionAnnouncement, wantDest: DestNotifications},
	}

	for _, tc := range tests {
		t.Run(tc.name, func(t *testing.T) {
			n := &store.Notification{
				Title:                "Completely unrelated title",
				Body:                 "and an unrelated body",
				ActionType:           sql.NullString{String: tc.action, Valid: true},
				RelatedTransactionID: uuid.NullUUID{UUID: txID, Valid: true},
				RelatedWithdrawalID:  uuid.NullUUID{UUID: wdID, Valid: true},
			}

			route := ResolveRoute(n)
			assert.Equal(t, tc.wantDest, route.Destination)
			assert.Equal(t, tc.wantRelate, route.RelatedID)
		})
	}
}

func TestResolveRouteContentFallback(t *testing.T) {
	tests := []struct {
		name     string
		title    string
		body     string
		wantDest string
	}{
		{name: "withdrawal wording", title: "Withdrawal submitted", body: "We are processing it", wantDest: DestWithdrawalDetail},
		{name: "gift card wording", title: "Order update", body: "Your gift card order is ready", wantDest: DestGiftcardOrders},
		{name: "funding wording", title: "Wallet funded", body: "Your balance went up", wantDest: DestWallet},
		{name: "no signal", title: "Hello", body: "Just checking in", wantDest: DestNotifications},
	}

	for _, tc := range tests {
		t.Run(tc.name, func(t *testing.T) {
			n := &store.Notification{Title: tc.title, Body: tc.body}

			route := ResolveRoute(n)
			assert.Equal(t, tc.wantDest, route.Destination)
		})
	}
}

func TestResolveRouteUnknownActionFallsThrough(t *testing.T) {
	n := &store.Notification{
		Title:      "Withdrawal rejected",
		Body:       "Contact support",
		ActionType: sql.NullString{String: "something_new", Valid: true},
	}

	route := ResolveRoute(n)
	assert.Equal(t, DestWithdrawalDetail, route.Destination)
}

func TestResolveRouteMissingRelatedID(t *testing.T) {
	n := &store.Notification{
		ActionType: sql.NullString{String: ActionWalletFunding, Valid: true},
	}

	route := ResolveRoute(n)
	assert.Equal(t, DestTransactionDetail, route.Destination)
	assert.Empty(t, route.RelatedID)
}
