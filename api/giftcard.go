package api

import (
	"net/http"

	"github.com/CardHaven/CardHaven-Backend/api/apistrings"
	models "github.com/CardHaven/CardHaven-Backend/api/models"
	basemodels "github.com/CardHaven/CardHaven-Backend/models"
	"github.com/CardHaven/CardHaven-Backend/services/catalog"
	"github.com/CardHaven/CardHaven-Backend/services/giftcard"
	"github.com/CardHaven/CardHaven-Backend/utils"
	"github.com/gin-gonic/gin"
	"github.com/go-playground/validator/v10"
)

type GiftCard struct {
	server  *Server
	service *giftcard.GiftcardService
}

func (g GiftCard) router(server *Server) {
	g.server = server

	var catalogService *catalog.CatalogService
	if server.redis != nil {
		catalogService = catalog.NewCatalogServiceWithCache(server.store, server.logger, server.redis)
	} else {
		catalogService = catalog.NewCatalogService(server.store, server.logger)
	}

	g.service = giftcard.NewGiftcardService(
		server.store,
		server.logger,
		server.users,
		catalogService,
		server.notifier,
	)

	serverGroupV1 := server.router.Group("/api/v1/giftcard")
	serverGroupV1.POST("buy", AuthenticatedMiddleware(), g.buy)
	serverGroupV1.POST("sell", AuthenticatedMiddleware(), g.sell)
	serverGroupV1.GET("orders", AuthenticatedMiddleware(), g.listOrders)
}

type buyRequest struct {
	BrandID     int64  `json:"brand_id" binding:"required" validate:"required"`
	VariantName string `json:"variant_name" binding:"required" validate:"required"`
	Quantity    int32  `json:"quantity" binding:"required" validate:"required,min=1"`
	Pin         string `json:"pin" binding:"required" validate:"required,len=4,numeric"`
}

func (g *GiftCard) buy(ctx *gin.Context) {
	activeUser, err := utils.GetActiveUser(ctx)
	if err != nil {
		ctx.JSON(http.StatusUnauthorized, basemodels.NewError(apistrings.UserNotFound))
		return
	}

	var request buyRequest
	if err := ctx.ShouldBindJSON(&request); err != nil {
		ctx.JSON(http.StatusBadRequest, basemodels.NewError(apistrings.InvalidQuantity))
		return
	}

	validate := validator.New(validator.WithRequiredStructEnabled())
	if err := validate.Struct(request); err != nil {
		ctx.JSON(http.StatusBadRequest, basemodels.NewError(err.Error()))
		return
	}

	created, err := g.service.Buy(ctx, giftcard.BuyParams{
		UserID:      activeUser.UserID,
		BrandID:     request.BrandID,
		VariantName: request.VariantName,
		Quantity:    request.Quantity,
		Pin:         request.Pin,
	})
	switch err {
	case nil:
	case giftcard.ErrVariantNotFound:
		ctx.JSON(http.StatusNotFound, basemodels.NewError(apistrings.VariantNotFound))
		return
	case giftcard.ErrVariantNotForSide:
		ctx.JSON(http.StatusBadRequest, basemodels.NewError(apistrings.VariantWrongSide))
		return
	case giftcard.ErrInvalidQuantity:
		ctx.JSON(http.StatusBadRequest, basemodels.NewError(apistrings.InvalidQuantity))
		return
	case giftcard.ErrIncorrectPin:
		ctx.JSON(http.StatusForbidden, basemodels.NewError(apistrings.InvalidTransactionPIN))
		return
	case giftcard.ErrInsufficientFunds:
		ctx.JSON(http.StatusPaymentRequired, basemodels.NewError(apistrings.InsufficientFunds))
		return
	case giftcard.ErrOutOfStock:
		ctx.JSON(http.StatusConflict, basemodels.NewError(apistrings.OutOfStock))
		return
	case giftcard.ErrWalletNotFound:
		ctx.JSON(http.StatusNotFound, basemodels.NewError(apistrings.UserNoWallet))
		return
	default:
		g.server.logger.Error(err)
		ctx.JSON(http.StatusInternalServerError, basemodels.NewError(apistrings.ServerError))
		return
	}

	ctx.JSON(http.StatusCreated, basemodels.NewSuccess("gift card purchased successfully", models.ToGiftcardOrderResponse(created)))
}

type sellRequest struct {
	BrandID     int64    `json:"brand_id" binding:"required"`
	VariantName string   `json:"variant_name" binding:"required"`
	CardCodes   []string `json:"card_codes" binding:"required,min=1"`
}

func (g *GiftCard) sell(ctx *gin.Context) {
	activeUser, err := utils.GetActiveUser(ctx)
	if err != nil {
		ctx.JSON(http.StatusUnauthorized, basemodels.NewError(apistrings.UserNotFound))
		return
	}

	var request sellRequest
	if err := ctx.ShouldBindJSON(&request); err != nil {
		ctx.JSON(http.StatusBadRequest, basemodels.NewError(apistrings.CardCodeRequired))
		return
	}

	created, err := g.service.Sell(ctx, giftcard.SellParams{
		UserID:      activeUser.UserID,
		BrandID:     request.BrandID,
		VariantName: request.VariantName,
		CardCodes:   request.CardCodes,
	})
	switch err {
	case nil:
	case giftcard.ErrCardCodeRequired:
		ctx.JSON(http.StatusBadRequest, basemodels.NewError(apistrings.CardCodeRequired))
		return
	case giftcard.ErrVariantNotFound:
		ctx.JSON(http.StatusNotFound, basemodels.NewError(apistrings.VariantNotFound))
		return
	case giftcard.ErrVariantNotForSide:
		ctx.JSON(http.StatusBadRequest, basemodels.NewError(apistrings.VariantWrongSide))
		return
	default:
		g.server.logger.Error(err)
		ctx.JSON(http.StatusInternalServerError, basemodels.NewError(apistrings.ServerError))
		return
	}

	ctx.JSON(http.StatusCreated, basemodels.NewSuccess("sell order submitted for review", models.ToGiftcardOrderResponse(created)))
}

func (g *GiftCard) listOrders(ctx *gin.Context) {
	activeUser, err := utils.GetActiveUser(ctx)
	if err != nil {
		ctx.JSON(http.StatusUnauthorized, basemodels.NewError(apistrings.UserNotFound))
		return
	}

	orders, err := g.server.store.ListGiftcardTransactionsByCustomerID(ctx, activeUser.UserID)
	if err != nil {
		g.server.logger.Error(err)
		ctx.JSON(http.StatusInternalServerError, basemodels.NewError(apistrings.ServerError))
		return
	}

	ctx.JSON(http.StatusOK, basemodels.NewSuccess("orders fetched successfully", models.ToGiftcardOrderListResponse(orders)))
}
