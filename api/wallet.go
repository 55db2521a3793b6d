package api

import (
	"database/sql"
	"io"
	"net/http"

	"github.com/CardHaven/CardHaven-Backend/api/apistrings"
	models "github.com/CardHaven/CardHaven-Backend/api/models"
	"github.com/CardHaven/CardHaven-Backend/db/store"
	basemodels "github.com/CardHaven/CardHaven-Backend/models"
	"github.com/CardHaven/CardHaven-Backend/services/funding"
	"github.com/CardHaven/CardHaven-Backend/services/settings"
	"github.com/CardHaven/CardHaven-Backend/utils"
	"github.com/gin-gonic/gin"
	"github.com/shopspring/decimal"
)

// walletHistoryLimit caps the transaction history response at the most
// recent entries.
const walletHistoryLimit = 50

type Wallet struct {
	server  *Server
	service *funding.FundingService
}

func (w Wallet) router(server *Server) {
	w.server = server
	w.service = funding.NewFundingService(
		server.store,
		server.logger,
		server.settings,
		server.paystack(),
		server.proofStorage(),
		server.refs,
		server.notifier,
	)

	serverGroupV1 := server.router.Group("/api/v1/wallet")
	serverGroupV1.GET("quote", AuthenticatedMiddleware(), w.getQuote)
	serverGroupV1.POST("fund", AuthenticatedMiddleware(), w.initiateFunding)
	serverGroupV1.GET("fund/callback", w.fundingCallback)
	serverGroupV1.POST("fund/manual", AuthenticatedMiddleware(), w.submitManualTransfer)
	serverGroupV1.GET("fund/bank-details", AuthenticatedMiddleware(), w.getCompanyBankDetails)
	serverGroupV1.GET("transactions", AuthenticatedMiddleware(), w.listTransactions)
}

func (w *Wallet) getQuote(ctx *gin.Context) {
	amount, err := decimal.NewFromString(ctx.Query("amount"))
	if err != nil {
		ctx.JSON(http.StatusBadRequest, basemodels.NewError(apistrings.InvalidAmountInput))
		return
	}

	quote, err := w.service.GetQuote(ctx, amount)
	if err == funding.ErrInvalidAmount {
		ctx.JSON(http.StatusBadRequest, basemodels.NewError(apistrings.InvalidAmountInput))
		return
	} else if err != nil {
		w.server.logger.Error(err)
		ctx.JSON(http.StatusInternalServerError, basemodels.NewError(apistrings.ServerError))
		return
	}

	ctx.JSON(http.StatusOK, basemodels.NewSuccess("quote fetched successfully", quote))
}

type initiateFundingRequest struct {
	Amount decimal.Decimal `json:"amount" binding:"required"`
}

func (w *Wallet) initiateFunding(ctx *gin.Context) {
	activeUser, err := utils.GetActiveUser(ctx)
	if err != nil {
		ctx.JSON(http.StatusUnauthorized, basemodels.NewError(apistrings.UserNotFound))
		return
	}

	var request initiateFundingRequest
	if err := ctx.ShouldBindJSON(&request); err != nil {
		ctx.JSON(http.StatusBadRequest, basemodels.NewError(apistrings.InvalidAmountInput))
		return
	}

	user, err := w.server.store.GetUserByID(ctx, activeUser.UserID)
	if err == sql.ErrNoRows {
		ctx.JSON(http.StatusNotFound, basemodels.NewError(apistrings.UserNotFound))
		return
	} else if err != nil {
		w.server.logger.Error(err)
		ctx.JSON(http.StatusInternalServerError, basemodels.NewError(apistrings.ServerError))
		return
	}

	initiated, err := w.service.InitiateCardFunding(ctx, &user, request.Amount)
	switch err {
	case nil:
	case funding.ErrInvalidAmount:
		ctx.JSON(http.StatusBadRequest, basemodels.NewError(apistrings.InvalidAmountInput))
		return
	case funding.ErrWalletNotFound:
		ctx.JSON(http.StatusNotFound, basemodels.NewError(apistrings.UserNoWallet))
		return
	case funding.ErrProviderUnavailable:
		ctx.JSON(http.StatusBadGateway, basemodels.NewError(apistrings.ProviderUnavailable))
		return
	default:
		w.server.logger.Error(err)
		ctx.JSON(http.StatusInternalServerError, basemodels.NewError(apistrings.ServerError))
		return
	}

	ctx.JSON(http.StatusOK, basemodels.NewSuccess("funding initiated successfully", initiated))
}

// fundingCallback is the redirect target after checkout. The reference is
// settled against the provider's verify endpoint, nothing in the redirect
// URL is trusted.
func (w *Wallet) fundingCallback(ctx *gin.Context) {
	reference := ctx.Query("reference")
	if reference == "" {
		reference = ctx.Query("trxref")
	}
	if reference == "" {
		ctx.JSON(http.StatusBadRequest, basemodels.NewError(apistrings.MissingReference))
		return
	}

	outcome, err := w.service.ConfirmCardFunding(ctx, reference)
	switch err {
	case nil:
	case funding.ErrTransactionNotFound:
		ctx.JSON(http.StatusNotFound, basemodels.NewError(apistrings.TransactionNotFound))
		return
	case funding.ErrProviderUnavailable:
		ctx.JSON(http.StatusBadGateway, basemodels.NewError(apistrings.ProviderUnavailable))
		return
	default:
		w.server.logger.Error(err)
		ctx.JSON(http.StatusInternalServerError, basemodels.NewError(apistrings.ServerError))
		return
	}

	message := "funding could not be completed"
	if outcome.Credited || outcome.Transaction.Status == "completed" {
		message = "wallet funded successfully"
	}

	ctx.JSON(http.StatusOK, basemodels.NewSuccess(message, models.ToTransactionResponse(&outcome.Transaction)))
}

func (w *Wallet) submitManualTransfer(ctx *gin.Context) {
	activeUser, err := utils.GetActiveUser(ctx)
	if err != nil {
		ctx.JSON(http.StatusUnauthorized, basemodels.NewError(apistrings.UserNotFound))
		return
	}

	amount, err := decimal.NewFromString(ctx.PostForm("amount"))
	if err != nil {
		ctx.JSON(http.StatusBadRequest, basemodels.NewError(apistrings.InvalidAmountInput))
		return
	}

	fileHeader, err := ctx.FormFile("proof")
	if err != nil {
		ctx.JSON(http.StatusBadRequest, basemodels.NewError(apistrings.ProofRequired))
		return
	}

	file, err := fileHeader.Open()
	if err != nil {
		ctx.JSON(http.StatusBadRequest, basemodels.NewError(apistrings.ProofRequired))
		return
	}
	defer file.Close()

	proof, err := io.ReadAll(file)
	if err != nil {
		w.server.logger.Error(err)
		ctx.JSON(http.StatusInternalServerError, basemodels.NewError(apistrings.ServerError))
		return
	}

	user, err := w.server.store.GetUserByID(ctx, activeUser.UserID)
	if err != nil {
		ctx.JSON(http.StatusNotFound, basemodels.NewError(apistrings.UserNotFound))
		return
	}

	created, err := w.service.SubmitManualTransfer(ctx, &user, amount, fileHeader.Filename, proof)
	switch err {
	case nil:
	case funding.ErrInvalidAmount:
		ctx.JSON(http.StatusBadRequest, basemodels.NewError(apistrings.InvalidAmountInput))
		return
	case funding.ErrProofRequired:
		ctx.JSON(http.StatusBadRequest, basemodels.NewError(apistrings.ProofRequired))
		return
	case funding.ErrDuplicatePending:
		ctx.JSON(http.StatusConflict, basemodels.NewError(apistrings.DuplicatePendingFunding))
		return
	case funding.ErrWalletNotFound:
		ctx.JSON(http.StatusNotFound, basemodels.NewError(apistrings.UserNoWallet))
		return
	default:
		w.server.logger.Error(err)
		ctx.JSON(http.StatusInternalServerError, basemodels.NewError(apistrings.ServerError))
		return
	}

	ctx.JSON(http.StatusCreated, basemodels.NewSuccess("transfer submitted for review", models.ToTransactionResponse(created)))
}

func (w *Wallet) getCompanyBankDetails(ctx *gin.Context) {
	detail, err := w.server.settings.GetAdminBankDetail(ctx)
	if err == settings.ErrSettingNotFound {
		ctx.JSON(http.StatusNotFound, basemodels.NewError("bank details are not configured yet"))
		return
	} else if err != nil {
		w.server.logger.Error(err)
		ctx.JSON(http.StatusInternalServerError, basemodels.NewError(apistrings.ServerError))
		return
	}

	ctx.JSON(http.StatusOK, basemodels.NewSuccess("bank details fetched successfully", models.ToBankDetailResponse(detail)))
}

func (w *Wallet) listTransactions(ctx *gin.Context) {
	activeUser, err := utils.GetActiveUser(ctx)
	if err != nil {
		ctx.JSON(http.StatusUnauthorized, basemodels.NewError(apistrings.UserNotFound))
		return
	}

	transactions, err := w.server.store.ListWalletTransactionsByCustomerID(ctx, store.ListWalletTransactionsByCustomerIDParams{
		CustomerID: activeUser.UserID,
		Limit:      walletHistoryLimit,
	})
	if err != nil {
		w.server.logger.Error(err)
		ctx.JSON(http.StatusInternalServerError, basemodels.NewError(apistrings.ServerError))
		return
	}

	out := make([]models.TransactionResponse, 0, len(transactions))
	for i := range transactions {
		out = append(out, models.ToTransactionResponse(&transactions[i]))
	}

	ctx.JSON(http.StatusOK, basemodels.NewSuccess("transactions fetched successfully", out))
}
