package api

import (
	"database/sql"
	"net/http"

	"github.com/CardHaven/CardHaven-Backend/api/apistrings"
	models "github.com/CardHaven/CardHaven-Backend/api/models"
	basemodels "github.com/CardHaven/CardHaven-Backend/models"
	"github.com/CardHaven/CardHaven-Backend/db/store"
	"github.com/CardHaven/CardHaven-Backend/services/withdrawal"
	"github.com/CardHaven/CardHaven-Backend/utils"
	"github.com/gin-gonic/gin"
	"github.com/google/uuid"
	"github.com/shopspring/decimal"
)

type Withdrawals struct {
	server  *Server
	service *withdrawal.WithdrawalService
}

func (w Withdrawals) router(server *Server) {
	w.server = server
	w.service = withdrawal.NewWithdrawalService(
		server.store,
		server.logger,
		server.users,
		server.notifier,
	)

	serverGroupV1 := server.router.Group("/api/v1/withdrawals")
	serverGroupV1.POST("", AuthenticatedMiddleware(), w.submit)
	serverGroupV1.GET("", AuthenticatedMiddleware(), w.list)
	serverGroupV1.GET(":id", AuthenticatedMiddleware(), w.get)

	bankGroupV1 := server.router.Group("/api/v1/bank-details")
	bankGroupV1.GET("", AuthenticatedMiddleware(), w.getBankDetails)
	bankGroupV1.PUT("", AuthenticatedMiddleware(), w.setBankDetails)
}

type submitWithdrawalRequest struct {
	Amount decimal.Decimal `json:"amount" binding:"required"`
	Pin    string          `json:"pin" binding:"required,len=4,numeric"`
}

func (w *Withdrawals) submit(ctx *gin.Context) {
	activeUser, err := utils.GetActiveUser(ctx)
	if err != nil {
		ctx.JSON(http.StatusUnauthorized, basemodels.NewError(apistrings.UserNotFound))
		return
	}

	idempotencyKey := ctx.GetHeader("Idempotency-Key")
	if idempotencyKey == "" {
		ctx.JSON(http.StatusBadRequest, basemodels.NewError(apistrings.IdempotencyTokenMiss))
		return
	}

	var request submitWithdrawalRequest
	if err := ctx.ShouldBindJSON(&request); err != nil {
		ctx.JSON(http.StatusBadRequest, basemodels.NewError(apistrings.InvalidAmountInput))
		return
	}

	created, err := w.service.Submit(ctx, withdrawal.SubmitParams{
		UserID:         activeUser.UserID,
		Amount:         request.Amount,
		Pin:            request.Pin,
		IdempotencyKey: idempotencyKey,
	})
	switch err {
	case nil:
	case withdrawal.ErrTokenRequired:
		ctx.JSON(http.StatusBadRequest, basemodels.NewError(apistrings.IdempotencyTokenMiss))
		return
	case withdrawal.ErrTokenConflict:
		ctx.JSON(http.StatusConflict, basemodels.NewError(apistrings.IdempotencyTokenConflict))
		return
	case withdrawal.ErrInvalidAmount:
		ctx.JSON(http.StatusBadRequest, basemodels.NewError(apistrings.InvalidAmountInput))
		return
	case withdrawal.ErrPinRequired:
		ctx.JSON(http.StatusBadRequest, basemodels.NewError(apistrings.PINNotSet))
		return
	case withdrawal.ErrIncorrectPin:
		ctx.JSON(http.StatusForbidden, basemodels.NewError(apistrings.InvalidTransactionPIN))
		return
	case withdrawal.ErrNoBankDetails:
		ctx.JSON(http.StatusPreconditionFailed, basemodels.NewError(apistrings.NoBankDetails))
		return
	case withdrawal.ErrInsufficientFunds:
		ctx.JSON(http.StatusPaymentRequired, basemodels.NewError(apistrings.InsufficientFunds))
		return
	case withdrawal.ErrWalletNotFound:
		ctx.JSON(http.StatusNotFound, basemodels.NewError(apistrings.UserNoWallet))
		return
	default:
		w.server.logger.Error(err)
		ctx.JSON(http.StatusInternalServerError, basemodels.NewError(apistrings.ServerError))
		return
	}

	ctx.JSON(http.StatusCreated, basemodels.NewSuccess("withdrawal submitted successfully", models.ToWithdrawalResponse(created)))
}

func (w *Withdrawals) list(ctx *gin.Context) {
	activeUser, err := utils.GetActiveUser(ctx)
	if err != nil {
		ctx.JSON(http.StatusUnauthorized, basemodels.NewError(apistrings.UserNotFound))
		return
	}

	withdrawals, err := w.service.List(ctx, activeUser.UserID)
	if err != nil {
		w.server.logger.Error(err)
		ctx.JSON(http.StatusInternalServerError, basemodels.NewError(apistrings.ServerError))
		return
	}

	ctx.JSON(http.StatusOK, basemodels.NewSuccess("withdrawals fetched successfully", models.ToWithdrawalListResponse(withdrawals)))
}

func (w *Withdrawals) get(ctx *gin.Context) {
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

	found, err := w.service.Get(ctx, activeUser.UserID, id)
	if err == sql.ErrNoRows {
		ctx.JSON(http.StatusNotFound, basemodels.NewError(apistrings.TransactionNotFound))
		return
	} else if err != nil {
		w.server.logger.Error(err)
		ctx.JSON(http.StatusInternalServerError, basemodels.NewError(apistrings.ServerError))
		return
	}

	ctx.JSON(http.StatusOK, basemodels.NewSuccess("withdrawal fetched successfully", models.ToWithdrawalResponse(found)))
}

func (w *Withdrawals) getBankDetails(ctx *gin.Context) {
	activeUser, err := utils.GetActiveUser(ctx)
	if err != nil {
		ctx.JSON(http.StatusUnauthorized, basemodels.NewError(apistrings.UserNotFound))
		return
	}

	detail, err := w.server.store.GetBankDetailByOwnerID(ctx, activeUser.UserID)
	if err == sql.ErrNoRows {
		ctx.JSON(http.StatusNotFound, basemodels.NewError(apistrings.NoBankDetails))
		return
	} else if err != nil {
		w.server.logger.Error(err)
		ctx.JSON(http.StatusInternalServerError, basemodels.NewError(apistrings.ServerError))
		return
	}

	ctx.JSON(http.StatusOK, basemodels.NewSuccess("bank details fetched successfully", models.ToBankDetailResponse(&detail)))
}

type bankDetailsRequest struct {
	BankName      string `json:"bank_name" binding:"required"`
	AccountName   string `json:"account_name" binding:"required"`
	AccountNumber string `json:"account_number" binding:"required,len=10,numeric"`
}

func (w *Withdrawals) setBankDetails(ctx *gin.Context) {
	activeUser, err := utils.GetActiveUser(ctx)
	if err != nil {
		ctx.JSON(http.StatusUnauthorized, basemodels.NewError(apistrings.UserNotFound))
		return
	}

	var request bankDetailsRequest
	if err := ctx.ShouldBindJSON(&request); err != nil {
		ctx.JSON(http.StatusBadRequest, basemodels.NewError("check 'bank_name', 'account_name' and 'account_number' keys, invalid request"))
		return
	}

	detail, err := w.server.store.UpsertBankDetail(ctx, store.UpsertBankDetailParams{
		OwnerID:       sql.NullInt64{Int64: activeUser.UserID, Valid: true},
		BankName:      request.BankName,
		AccountName:   request.AccountName,
		AccountNumber: request.AccountNumber,
	})
	if store.IsEntryTooLong(err) {
		ctx.JSON(http.StatusBadRequest, basemodels.NewError(apistrings.EntryTooLong))
		return
	} else if err != nil {
		w.server.logger.Error(err)
		ctx.JSON(http.StatusInternalServerError, basemodels.NewError(apistrings.ServerError))
		return
	}

	ctx.JSON(http.StatusOK, basemodels.NewSuccess("bank details saved successfully", models.ToBankDetailResponse(&detail)))
}
