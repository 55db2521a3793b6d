package api

import (
	"database/sql"
	"net/http"
	"strconv"

	"github.com/CardHaven/CardHaven-Backend/api/apistrings"
	models "github.com/CardHaven/CardHaven-Backend/api/models"
	basemodels "github.com/CardHaven/CardHaven-Backend/models"
	"github.com/CardHaven/CardHaven-Backend/utils"
	"github.com/gin-gonic/gin"
)

type Notifications struct {
	server *Server
}

func (n Notifications) router(server *Server) {
	n.server = server

	serverGroupV1 := server.router.Group("/api/v1/notifications")
	serverGroupV1.GET("", AuthenticatedMiddleware(), n.list)
	serverGroupV1.GET("unread-count", AuthenticatedMiddleware(), n.unreadCount)
	serverGroupV1.POST("read/:id", AuthenticatedMiddleware(), n.markRead)
	serverGroupV1.POST("read-all", AuthenticatedMiddleware(), n.markAllRead)
	serverGroupV1.GET("open/:id", AuthenticatedMiddleware(), n.open)
}

func (n *Notifications) list(ctx *gin.Context) {
	activeUser, err := utils.GetActiveUser(ctx)
	if err != nil {
		ctx.JSON(http.StatusUnauthorized, basemodels.NewError(apistrings.UserNotFound))
		return
	}

	notifications, err := n.server.notifier.List(ctx, activeUser.UserID)
	if err != nil {
		n.server.logger.Error(err)
		ctx.JSON(http.StatusInternalServerError, basemodels.NewError(apistrings.ServerError))
		return
	}

	ctx.JSON(http.StatusOK, basemodels.NewSuccess("notifications fetched successfully", models.ToNotificationListResponse(notifications)))
}

func (n *Notifications) unreadCount(ctx *gin.Context) {
	activeUser, err := utils.GetActiveUser(ctx)
	if err != nil {
		ctx.JSON(http.StatusUnauthorized, basemodels.NewError(apistrings.UserNotFound))
		return
	}

	count, err := n.server.notifier.UnreadCount(ctx, activeUser.UserID)
	if err != nil {
		n.server.logger.Error(err)
		ctx.JSON(http.StatusInternalServerError, basemodels.NewError(apistrings.ServerError))
		return
	}

	ctx.JSON(http.StatusOK, basemodels.NewSuccess("unread count fetched successfully", gin.H{"unread": count}))
}

func (n *Notifications) markRead(ctx *gin.Context) {
	activeUser, err := utils.GetActiveUser(ctx)
	if err != nil {
		ctx.JSON(http.StatusUnauthorized, basemodels.NewError(apistrings.UserNotFound))
		return
	}

	id, err := strconv.ParseInt(ctx.Param("id"), 10, 64)
	if err != nil {
		ctx.JSON(http.StatusBadRequest, basemodels.NewError(apistrings.NotificationNotFound))
		return
	}

	err = n.server.notifier.MarkRead(ctx, activeUser.UserID, id)
	if err == sql.ErrNoRows {
		ctx.JSON(http.StatusNotFound, basemodels.NewError(apistrings.NotificationNotFound))
		return
	} else if err != nil {
		n.server.logger.Error(err)
		ctx.JSON(http.StatusInternalServerError, basemodels.NewError(apistrings.ServerError))
		return
	}

	ctx.JSON(http.StatusOK, basemodels.NewSuccess("notification marked as read", nil))
}

func (n *Notifications) markAllRead(ctx *gin.Context) {
	activeUser, err := utils.GetActiveUser(ctx)
	if err != nil {
		ctx.JSON(http.StatusUnauthorized, basemodels.NewError(apistrings.UserNotFound))
		return
	}

	count, err := n.server.notifier.MarkAllRead(ctx, activeUser.UserID)
	if err != nil {
		n.server.logger.Error(err)
		ctx.JSON(http.StatusInternalServerError, basemodels.NewError(apistrings.ServerError))
		return
	}

	ctx.JSON(http.StatusOK, basemodels.NewSuccess("notifications marked as read", gin.H{"updated": count}))
}

// open marks the notification read and returns where the client should
// navigate next.
func (n *Notifications) open(ctx *gin.Context) {
	activeUser, err := utils.GetActiveUser(ctx)
	if err != nil {
		ctx.JSON(http.StatusUnauthorized, basemodels.NewError(apistrings.UserNotFound))
		return
	}

	id, err := strconv.ParseInt(ctx.Param("id"), 10, 64)
	if err != nil {
		ctx.JSON(http.StatusBadRequest, basemodels.NewError(apistrings.NotificationNotFound))
		return
	}

	notification, route, err := n.server.notifier.Resolve(ctx, activeUser.UserID, id)
	if err == sql.ErrNoRows {
		ctx.JSON(http.StatusNotFound, basemodels.NewError(apistrings.NotificationNotFound))
		return
	} else if err != nil {
		n.server.logger.Error(err)
		ctx.JSON(http.StatusInternalServerError, basemodels.NewError(apistrings.ServerError))
		return
	}

	if err := n.server.notifier.MarkRead(ctx, activeUser.UserID, id); err != nil && err != sql.ErrNoRows {
		n.server.logger.Error(err)
	}

	ctx.JSON(http.StatusOK, basemodels.NewSuccess("notification resolved successfully", gin.H{
		"notification": models.ToNotificationResponse(notification),
		"route":        route,
	}))
}
