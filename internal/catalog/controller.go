package catalog

import (
	"net/http"

	"busify/internal/shared/utils/response"

	"github.com/gin-gonic/gin"
)

type Controller struct {
	service Service
}

func NewController(service Service) *Controller {
	return &Controller{service: service}
}

// ListStations handles GET /api/v1/stations
func (c *Controller) ListStations(ctx *gin.Context) {
	stations, err := c.service.ListStations(ctx.Request.Context())
	if err != nil {
		response.ErrorFromErr(ctx, err)
		return
	}
	ctx.JSON(http.StatusOK, stations)
}

// ListBuses handles GET /api/v1/buses
func (c *Controller) ListBuses(ctx *gin.Context) {
	buses, err := c.service.ListBuses(ctx.Request.Context())
	if err != nil {
		response.ErrorFromErr(ctx, err)
		return
	}
	ctx.JSON(http.StatusOK, buses)
}

// ListLuggageTypes handles GET /api/v1/luggage-types
func (c *Controller) ListLuggageTypes(ctx *gin.Context) {
	types, err := c.service.ListLuggageTypes(ctx.Request.Context())
	if err != nil {
		response.ErrorFromErr(ctx, err)
		return
	}
	ctx.JSON(http.StatusOK, types)
}

// FindRoutes handles GET /api/v1/routes?origin=<id>&destination=<id>
func (c *Controller) FindRoutes(ctx *gin.Context) {
	origin := ctx.Query("origin")
	destination := ctx.Query("destination")

	routes, err := c.service.FindRoutes(ctx.Request.Context(), origin, destination)
	if err != nil {
		response.ErrorFromErr(ctx, err)
		return
	}
	ctx.JSON(http.StatusOK, routes)
}
