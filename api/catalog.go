package api

import (
	"net/http"

	"github.com/CardHaven/CardHaven-Backend/api/apistrings"
	basemodels "github.com/CardHaven/CardHaven-Backend/models"
	"github.com/CardHaven/CardHaven-Backend/services/catalog"
	"github.com/gin-gonic/gin"
)

type Catalog struct {
	server  *Server
	service *catalog.CatalogService
}

func (c Catalog) router(server *Server) {
	c.server = server
	if server.redis != nil {
		c.service = catalog.NewCatalogServiceWithCache(server.store, server.logger, server.redis)
	} else {
		c.service = catalog.NewCatalogService(server.store, server.logger)
	}

	serverGroupV1 := server.router.Group("/api/v1/catalog")
	serverGroupV1.GET("rates", AuthenticatedMiddleware(), c.listRates)
}

func (c *Catalog) listRates(ctx *gin.Context) {
	side := ctx.Query("side")
	if side == "" {
		side = ctx.Query("type")
	}

	params := catalog.ListParams{
		Query: ctx.Query("q"),
		Side:  side,
		Sort:  ctx.Query("sort"),
	}

	listings, err := c.service.List(ctx, params)
	if err != nil {
		c.server.logger.Error(err)
		ctx.JSON(http.StatusInternalServerError, basemodels.NewError(apistrings.ServerError))
		return
	}

	ctx.JSON(http.StatusOK, basemodels.NewSuccess("rates fetched successfully", listings))
}
