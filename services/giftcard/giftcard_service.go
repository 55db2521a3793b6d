package giftcard

import (
	"context"
	"database/sql"
	"fmt"

	"github.com/CardHaven/CardHaven-Backend/db/store"
	"github.com/CardHaven/CardHaven-Backend/services/catalog"
	"github.com/CardHaven/CardHaven-Backend/services/monitoring/logging"
	notification_service "github.com/CardHaven/CardHaven-Backend/services/notification"
	user_service "github.com/CardHaven/CardHaven-Backend/services/user"
	"github.com/shopspring/decimal"
)

type GiftcardService struct {
	store    *store.Store
	logger   *logging.Logger
	users    *user_service.UserService
	catalog  *catalog.CatalogService
	notifier *notification_service.NotificationService
}

func NewGiftcardService(
	store *store.Store,
	logger *logging.Logger,
	users *user_service.UserService,
	catalog *catalog.CatalogService,
	notifier *notification_service.NotificationService,
) *GiftcardService {
	return &GiftcardService{
		store:    store,
		logger:   logger,
		users:    users,
		catalog:  catalog,
		notifier: notifier,
	}
}

type BuyParams struct {
	UserID      int64
	BrandID     int64
	VariantName string
	Quantity    int32
	Pin         string
}

// Buy debits the wallet and assigns cards from inventory in one
// transaction; the order completes immediately or not at all.
func (g *GiftcardService) Buy(ctx context.Context, arg BuyParams) (*store.GiftcardTransaction, error) {
	if arg.Quantity < 1 {
		return nil, ErrInvalidQuantity
	}

	rate, err := g.variantRate(ctx, arg.BrandID, arg.VariantName, catalog.SideBuy)
	if err != nil {
		return nil, err
	}

	// Stock check before the PIN prompt; the claim inside the transaction
	// stays authoritative.
	available, err := g.store.CountAvailableInventory(ctx, store.CountAvailableInventoryParams{
		BrandID:     arg.BrandID,
		VariantName: arg.VariantName,
	})
	if err != nil {
		return nil, err
	}
	if available < int64(arg.Quantity) {
		return nil, ErrOutOfStock
	}

	if err := g.users.VerifyTransactionPin(ctx, arg.UserID, arg.Pin); err != nil {
		if err == user_service.ErrIncorrectPin || err == user_service.ErrPinNotSet {
			return nil, ErrIncorrectPin
		}
		return nil, err
	}

	total := rate.Rate.Mul(decimal.NewFromInt32(arg.Quantity))

	var created store.GiftcardTransaction
	err = g.store.ExecTx(ctx, func(q *store.Queries) error {
		wallet, txErr := q.GetWalletByCustomerIDForUpdate(ctx, arg.UserID)
		if txErr == sql.ErrNoRows {
			return ErrWalletNotFound
		} else if txErr != nil {
			return txErr
		}

		if wallet.Balance.LessThan(total) {
			return ErrInsufficientFunds
		}

		cards, txErr := q.ClaimInventoryCards(ctx, store.ClaimInventoryCardsParams{
			BrandID:     arg.BrandID,
			VariantName: arg.VariantName,
			CustomerID:  arg.UserID,
			Quantity:    arg.Quantity,
		})
		if txErr != nil {
			return txErr
		}
		if int32(len(cards)) < arg.Quantity {
			return ErrOutOfStock
		}

		if _, txErr = q.DebitWalletBalance(ctx, wallet.ID, total); txErr != nil {
			if txErr == sql.ErrNoRows {
				return ErrInsufficientFunds
			}
			return txErr
		}

		codes := make([]string, 0, len(cards))
		for _, card := range cards {
			codes = append(codes, card.CardCode)
		}

		created, txErr = q.CreateGiftcardTransaction(ctx, store.CreateGiftcardTransactionParams{
			CustomerID:  arg.UserID,
			Type:        "buy",
			BrandID:     arg.BrandID,
			VariantName: arg.VariantName,
			Rate:        rate.Rate,
			Quantity:    arg.Quantity,
			Amount:      total,
			CardCodes:   codes,
			Status:      "completed",
		})
		if txErr != nil {
			return txErr
		}

		_, txErr = q.CreateWalletTransaction(ctx, store.CreateWalletTransactionParams{
			CustomerID:    arg.UserID,
			WalletID:      wallet.ID,
			Type:          "giftcard_purchase",
			Amount:        total,
			Fee:           decimal.Zero,
			Status:        "completed",
			PaymentMethod: "wallet",
			Reference:     fmt.Sprintf("GC-%s", created.ID),
			Description:   sql.NullString{String: fmt.Sprintf("Gift card purchase: %s", arg.VariantName), Valid: true},
		})
		return txErr
	})
	if err != nil {
		return nil, err
	}

	g.catalog.Invalidate(ctx)
	if g.notifier != nil {
		g.notifier.NotifyGiftcardOrder(ctx, &created)
	}

	return &created, nil
}

type SellParams struct {
	UserID      int64
	BrandID     int64
	VariantName string
	CardCodes   []string
}

// Sell records a pending sell order for admin review. The payout only hits
// the wallet once the submitted codes are verified out of band.
func (g *GiftcardService) Sell(ctx context.Context, arg SellParams) (*store.GiftcardTransaction, error) {
	if len(arg.CardCodes) == 0 {
		return nil, ErrCardCodeRequired
	}
	for _, code := range arg.CardCodes {
		if code == "" {
			return nil, ErrCardCodeRequired
		}
	}

	rate, err := g.variantRate(ctx, arg.BrandID, arg.VariantName, catalog.SideSell)
	if err != nil {
		return nil, err
	}

	quantity := int32(len(arg.CardCodes))
	payout := rate.Rate.Mul(decimal.NewFromInt32(quantity))

	created, err := g.store.CreateGiftcardTransaction(ctx, store.CreateGiftcardTransactionParams{
		CustomerID:  arg.UserID,
		Type:        "sell",
		BrandID:     arg.BrandID,
		VariantName: arg.VariantName,
		Rate:        rate.Rate,
		Quantity:    quantity,
		Amount:      payout,
		CardCodes:   arg.CardCodes,
		Status:      "pending",
	})
	if err != nil {
		return nil, fmt.Errorf("unable to record sell order: %w", err)
	}

	if g.notifier != nil {
		g.notifier.NotifyGiftcardOrder(ctx, &created)
	}

	return &created, nil
}

func (g *GiftcardService) variantRate(ctx context.Context, brandID int64, variantName, side string) (*store.BrandRate, error) {
	rates, err := g.store.ListBrandRates(ctx)
	if err != nil {
		return nil, fmt.Errorf("unable to fetch rates: %w", err)
	}

	found := false
	for _, r := range rates {
		if r.BrandID == brandID && r.VariantName == variantName {
			found = true
			if r.Side != side {
				continue
			}
			rate := r
			return &rate, nil
		}
	}

	if found {
		return nil, ErrVariantNotForSide
	}
	return nil, ErrVariantNotFound
}
