package seatmap

import "github.com/gin-gonic/gin"

func SetupSeatMapRoutes(rg *gin.RouterGroup, controller *Controller) {
	rg.GET("/buses/:code/seatmap", controller.GetSeatMap)
}
