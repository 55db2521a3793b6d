package notification_service

import (
	"strings"

	"github.com/CardHaven/CardHaven-Backend/db/store"
	"github.com/google/uuid"
)

// Screen destinations the client navigates to when a notification is opened.
const (
	DestTransactionDetail = "TransactionDetail"
	DestWithdrawalDetail  = "WithdrawalDetail"
	DestWallet            = "Wallet"
	DestGiftcardOrders    = "GiftcardOrders"
	DestNotifications     = "Notifications"
)

const (
	ActionWalletFunding = "wallet_funding"
	ActionWithdrawal    = "withdrawal"
	ActionGiftcard      = "giftcard_transaction"
	ActionAnnouncement  = "announcement"
)

// Route tells the client where a notification should deep-link to.
type Route struct {
	Destination string `json:"destination"`
	RelatedID   string `json:"related_id,omitempty"`
}

// ResolveRoute maps a notification onto its target screen via the
// action_type discriminator, falling back to a content heuristic for
// legacy rows written without one.
func ResolveRoute(n *store.Notification) Route {
	if n.ActionType.Valid {
		switch n.ActionType.String {
		case ActionWalletFunding:
			return Route{Destination: DestTransactionDetail, RelatedID: nullUUIDString(n.RelatedTransactionID)}
		case ActionWithdrawal:
			return Route{Destination: DestWithdrawalDetail, RelatedID: nullUUIDString(n.RelatedWithdrawalID)}
		case ActionGiftcard:
			return Route{Destination: DestGiftcardOrders, RelatedID: nullUUIDString(n.RelatedTransactionID)}
		case ActionAnnouncement:
			return Route{Destination: DestNotifications}
		}
	}

	// Legacy fallback: infer the destination from content.
	content := strings.ToLower(n.Title + " " + n.Body)
	switch {
	case strings.Contains(content, "withdraw"):
		return Route{Destination: DestWithdrawalDetail, RelatedID: nullUUIDString(n.RelatedWithdrawalID)}
	case strings.Contains(content, "gift card") || strings.Contains(content, "giftcard"):
		return Route{Destination: DestGiftcardOrders, RelatedID: nullUUIDString(n.RelatedTransactionID)}
	case strings.Contains(content, "fund") || strings.Contains(content, "wallet"):
		return Route{Destination: DestWallet}
	default:
		return Route{Destination: DestNotifications}
	}
}

func nullUUIDString(id uuid.NullUUID) string {
	if !id.Valid {
		return ""
	}
	return id.UUID.String()
}
