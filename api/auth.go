package api

import (
	"net/http"

	"github.com/CardHaven/CardHaven-Backend/api/apistrings"
	models "github.com/CardHaven/CardHaven-Backend/api/models"
	basemodels "github.com/CardHaven/CardHaven-Backend/models"
	user_service "github.com/CardHaven/CardHaven-Backend/services/user"
	"github.com/CardHaven/CardHaven-Backend/utils"
	"github.com/gin-gonic/gin"
)

type Auth struct {
	server  *Server
	service *user_service.UserService
}

func (a Auth) router(server *Server) {
	a.server = server
	a.service = server.users

	serverGroup := server.router.Group("/auth")
	serverGroup.GET("test", a.testAuth)
	serverGroup.POST("register", a.register)
	serverGroup.POST("login", a.login)
	serverGroup.GET("profile", AuthenticatedMiddleware(), a.profile)
	serverGroup.POST("transaction-pin", AuthenticatedMiddleware(), a.setTransactionPin)
	serverGroup.POST("device-token", AuthenticatedMiddleware(), a.registerDeviceToken)
}

func (a Auth) testAuth(ctx *gin.Context) {
	dr := basemodels.SuccessResponse{
		Status:  "success",
		Message: "Authentication API is active",
		Version: utils.REVISION,
	}

	ctx.JSON(http.StatusOK, dr)
}

type registerRequest struct {
	Email     string `json:"email" binding:"required,email"`
	Password  string `json:"password" binding:"required,min=8"`
	FirstName string `json:"first_name" binding:"required"`
	LastName  string `json:"last_name" binding:"required"`
}

func (a *Auth) register(ctx *gin.Context) {
	var request registerRequest
	if err := ctx.ShouldBindJSON(&request); err != nil {
		ctx.JSON(http.StatusBadRequest, basemodels.NewError(apistrings.InvalidEmailPassInput))
		return
	}

	user, wallet, err := a.service.Register(ctx, user_service.RegisterParams{
		Email:     request.Email,
		Password:  request.Password,
		FirstName: request.FirstName,
		LastName:  request.LastName,
	})
	if err == user_service.ErrUserAlreadyExists {
		ctx.JSON(http.StatusConflict, basemodels.NewError(apistrings.UserDetailsAlreadyCreated))
		return
	} else if err != nil {
		a.server.logger.Error(err)
		ctx.JSON(http.StatusInternalServerError, basemodels.NewError(apistrings.ServerError))
		return
	}

	token, err := TokenController.CreateToken(utils.TokenObject{
		UserID: user.ID,
		Role:   user.Role,
	})
	if err != nil {
		a.server.logger.Error(err)
		ctx.JSON(http.StatusInternalServerError, basemodels.NewError(apistrings.ServerError))
		return
	}

	ctx.JSON(http.StatusCreated, basemodels.NewSuccess("account created successfully", models.AuthResponse{
		User:   models.ToUserResponse(user),
		Wallet: models.ToWalletResponse(wallet),
		Token:  token,
	}))
}

type loginRequest struct {
	Email    string `json:"email" binding:"required,email"`
	Password string `json:"password" binding:"required"`
}

func (a *Auth) login(ctx *gin.Context) {
	var request loginRequest
	if err := ctx.ShouldBindJSON(&request); err != nil {
		ctx.JSON(http.StatusBadRequest, basemodels.NewError(apistrings.InvalidEmailPassInput))
		return
	}

	user, err := a.service.Login(ctx, request.Email, request.Password)
	if err == user_service.ErrUserNotFound || err == user_service.ErrIncorrectPassword {
		ctx.JSON(http.StatusUnauthorized, basemodels.NewError(apistrings.IncorrectEmailPass))
		return
	} else if err != nil {
		a.server.logger.Error(err)
		ctx.JSON(http.StatusInternalServerError, basemodels.NewError(apistrings.ServerError))
		return
	}

	token, err := TokenController.CreateToken(utils.TokenObject{
		UserID: user.ID,
		Role:   user.Role,
	})
	if err != nil {
		a.server.logger.Error(err)
		ctx.JSON(http.StatusInternalServerError, basemodels.NewError(apistrings.ServerError))
		return
	}

	ctx.JSON(http.StatusOK, basemodels.NewSuccess("login successful", gin.H{
		"user":  models.ToUserResponse(user),
		"token": token,
	}))
}

func (a *Auth) profile(ctx *gin.Context) {
	activeUser, err := utils.GetActiveUser(ctx)
	if err != nil {
		ctx.JSON(http.StatusUnauthorized, basemodels.NewError(apistrings.UserNotFound))
		return
	}

	user, wallet, err := a.service.Profile(ctx, activeUser.UserID)
	if err == user_service.ErrUserNotFound {
		ctx.JSON(http.StatusNotFound, basemodels.NewError(apistrings.UserNotFound))
		return
	} else if err != nil {
		a.server.logger.Error(err)
		ctx.JSON(http.StatusInternalServerError, basemodels.NewError(apistrings.ServerError))
		return
	}

	ctx.JSON(http.StatusOK, basemodels.NewSuccess("profile fetched successfully", gin.H{
		"user":   models.ToUserResponse(user),
		"wallet": models.ToWalletResponse(wallet),
	}))
}

type setPinRequest struct {
	OldPin string `json:"old_pin"`
	NewPin string `json:"new_pin" binding:"required,len=4,numeric"`
}

func (a *Auth) setTransactionPin(ctx *gin.Context) {
	activeUser, err := utils.GetActiveUser(ctx)
	if err != nil {
		ctx.JSON(http.StatusUnauthorized, basemodels.NewError(apistrings.UserNotFound))
		return
	}

	var request setPinRequest
	if err := ctx.ShouldBindJSON(&request); err != nil {
		ctx.JSON(http.StatusBadRequest, basemodels.NewError("check 'new_pin' key, PIN must be 4 digits"))
		return
	}

	err = a.service.SetTransactionPin(ctx, activeUser.UserID, request.OldPin, request.NewPin)
	if err == user_service.ErrIncorrectPin {
		ctx.JSON(http.StatusForbidden, basemodels.NewError(apistrings.InvalidTransactionPIN))
		return
	} else if err == user_service.ErrUserNotFound {
		ctx.JSON(http.StatusNotFound, basemodels.NewError(apistrings.UserNotFound))
		return
	} else if err != nil {
		a.server.logger.Error(err)
		ctx.JSON(http.StatusInternalServerError, basemodels.NewError(apistrings.ServerError))
		return
	}

	ctx.JSON(http.StatusOK, basemodels.NewSuccess("transaction PIN updated successfully", nil))
}

type deviceTokenRequest struct {
	Token string `json:"token" binding:"required"`
}

func (a *Auth) registerDeviceToken(ctx *gin.Context) {
	activeUser, err := utils.GetActiveUser(ctx)
	if err != nil {
		ctx.JSON(http.StatusUnauthorized, basemodels.NewError(apistrings.UserNotFound))
		return
	}

	var request deviceTokenRequest
	if err := ctx.ShouldBindJSON(&request); err != nil {
		ctx.JSON(http.StatusBadRequest, basemodels.NewError("check 'token' key, invalid request"))
		return
	}

	if err := a.service.RegisterDeviceToken(ctx, activeUser.UserID, request.Token); err != nil {
		a.server.logger.Error(err)
		ctx.JSON(http.StatusInternalServerError, basemodels.NewError(apistrings.ServerError))
		return
	}

	ctx.JSON(http.StatusOK, basemodels.NewSuccess("device token registered successfully", nil))
}
