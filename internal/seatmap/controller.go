package seatmap

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

// GetSeatMap handles GET /buses/:code/seatmap?date=YYYY-MM-DD&time=HH:MM.
func (ctrl *Controller) GetSeatMap(c *gin.Context) {
	busCode := c.Param("code")
	date := c.Query("date")
	timeOfDay := c.Query("time")

	seatMap, err := ctrl.service.MapForDeparture(c.Request.Context(), busCode, date, timeOfDay)
	if err != nil {
		response.ErrorFromErr(c, err)
		return
	}

	c.JSON(http.StatusOK, seatMap)
}
