package api

import (
	"database/sql"
	"net/http"

	"github.com/CardHaven/CardHaven-Backend/api/apistrings"
	basemodels "github.com/CardHaven/CardHaven-Backend/models"
	"github.com/CardHaven/CardHaven-Backend/services/ledger"
	"github.com/CardHaven/CardHaven-Backend/utils"
	"github.com/gin-gonic/gin"
	"github.com/google/uuid"
)

type Transactions struct {
	server  *Server
	service *ledger.LedgerService
}

func (t Transactions) router(server *Server) {
	t.server = server
	t.service = ledger.NewLedgerService(server.store, server.logger)

	serverGroupV1 := server.router.Group("/api/v1/transactions")
	serverGroupV1.GET("", AuthenticatedMiddleware(), t.history)
	serverGroupV1.GET("giftcard/:id", AuthenticatedMiddleware(), t.giftcardDetail)
	serverGroupV1.GET("withdrawal/:id", AuthenticatedMiddleware(), t.withdrawalDetail)
}

func (t *Transactions) history(ctx *gin.Context) {
	activeUser, err := utils.GetActiveUser(ctx)
	if err != nil {
		ctx.JSON(http.StatusUnauthorized, basemodels.NewError(apistrings.UserNotFound))
		return
	}

	entries, err := t.service.History(ctx, activeUser.UserID, ctx.Query("filter"))
	if err != nil {
		t.server.logger.Error(err)
		ctx.JSON(http.StatusInternalServerError, basemodels.NewError(apistrings.ServerError))
		return
	}

	ctx.JSON(http.StatusOK, basemodels.NewSuccess("transactions fetched successfully", entries))
}

func (t *Transactions) giftcardDetail(ctx *gin.Context) {
	activeUser, err := utils.GetActiveUser(ctx)
	if err != nil {
		ctx.JSON(http.StatusUnauthorized, basemodels.NewError(apistrings.UserNotFound))
		return
	}

	id, err := uuid.Parse(ctx.Param("id"))
	if err != nil {
		ctx.JSON(http.StatusBadRequest, basemodels.NewError(apistrings.TransactionNotFound))
		return
	}

	detail, err := t.service.GiftcardDetail(ctx, activeUser.UserID, id)
	if err == sql.ErrNoRows {
		ctx.JSON(http.StatusNotFound, basemodels.NewError(apistrings.TransactionNotFound))
		return
	} else if err != nil {
		t.server.logger.Error(err)
		ctx.JSON(http.StatusInternalServerError, basemodels.NewError(apistrings.ServerError))
		return
	}

	ctx.JSON(http.StatusOK, basemodels.NewSuccess("transaction fetched successfully", detail))
}

func (t *Transactions) withdrawalDetail(ctx *gin.Context) {
	activeUser, err := utils.GetActiveUser(ctx)
	if err != nil {
		ctx.JSON(http.StatusUnauthorized, basemodels.NewError(apistrings.UserNotFound))
		return
	}

	id, err := uuid.Parse(ctx.Param("id"))
	if err != nil {
		ctx.JSON(http.StatusBadRequest, basemodels.NewError(apistrings.TransactionNotFound))
		return
	}

	detail, err := t.service.WithdrawalDetail(ctx, activeUser.UserID, id)
	if err == sql.ErrNoRows {
		ctx.JSON(http.StatusNotFound, basemodels.NewError(apistrings.TransactionNotFound))
		return
	} else if err != nil {
		t.server.logger.Error(err)
		ctx.JSON(http.StatusInternalServerError, basemodels.NewError(apistrings.ServerError))
		return
	}

	ctx.JSON(http.StatusOK, basemodels.NewSuccess("transaction fetched successfully", detail))
}
