package api

import (
	"net/http"

	"github.com/CardHaven/CardHaven-Backend/api/apistrings"
	models "github.com/CardHaven/CardHaven-Backend/api/models"
	basemodels "github.com/CardHaven/CardHaven-Backend/models"
	"github.com/gin-gonic/gin"
	"github.com/shopspring/decimal"
)

type Admin struct {
	server *Server
}

func (a Admin) router(server *Server) {
	a.server = server

	serverGroupV1 := server.router.Group("/api/v1/admin")
	serverGroupV1.Use(AuthenticatedMiddleware(), AdminMiddleware())
	serverGroupV1.GET("settings", a.getSettings)
	serverGroupV1.PUT("settings/funding-fee", a.setFundingFee)
	serverGroupV1.PUT("settings/bank-details", a.setBankDetails)
}

func (a *Admin) getSettings(ctx *gin.Context) {
	fee, err := a.server.settings.GetFundingFlatFee(ctx)
	if err != nil {
		a.server.logger.Error(err)
		ctx.JSON(http.StatusInternalServerError, basemodels.NewError(apistrings.ServerError))
		return
	}

	response := gin.H{"funding_flat_fee": fee}

	detail, err := a.server.settings.GetAdminBankDetail(ctx)
	if err == nil {
		response["bank_details"] = models.ToBankDetailResponse(detail)
	}

	ctx.JSON(http.StatusOK, basemodels.NewSuccess("settings fetched successfully", response))
}

type setFundingFeeRequest struct {
	Fee decimal.Decimal `json:"fee" binding:"required"`
}

func (a *Admin) setFundingFee(ctx *gin.Context) {
	var request setFundingFeeRequest
	if err := ctx.ShouldBindJSON(&request); err != nil {
		ctx.JSON(http.StatusBadRequest, basemodels.NewError("check 'fee' key, invalid request"))
		return
	}

	if request.Fee.IsNegative() {
		ctx.JSON(http.StatusBadRequest, basemodels.NewError("fee cannot be negative"))
		return
	}

	if err := a.server.settings.SetFundingFlatFee(ctx, request.Fee); err != nil {
		a.server.logger.Error(err)
		ctx.JSON(http.StatusInternalServerError, basemodels.NewError(apistrings.ServerError))
		return
	}

	ctx.JSON(http.StatusOK, basemodels.NewSuccess("funding fee updated successfully", gin.H{"funding_flat_fee": request.Fee}))
}

func (a *Admin) setBankDetails(ctx *gin.Context) {
	var request bankDetailsRequest
	if err := ctx.ShouldBindJSON(&request); err != nil {
		ctx.JSON(http.StatusBadRequest, basemodels.NewError("check 'bank_name', 'account_name' and 'account_number' keys, invalid request"))
		return
	}

	detail, err := a.server.settings.SetAdminBankDetail(ctx, request.BankName, request.AccountName, request.AccountNumber)
	if err != nil {
		a.server.logger.Error(err)
		ctx.JSON(http.StatusInternalServerError, basemodels.NewError(apistrings.ServerError))
		return
	}

	ctx.JSON(http.StatusOK, basemodels.NewSuccess("bank details updated successfully", models.ToBankDetailResponse(detail)))
}
