package catalog

import (
	"github.com/gin-gonic/gin"
)

// SetupCatalogRoutes configures the reference-data routes
func SetupCatalogRoutes(rg *gin.RouterGroup, controller *Controller) {
	rg.GET("/stations", controller.ListStations)
	rg.GET("/buses", controller.ListBuses)
	rg.GET("/luggage-types", controller.ListLuggageTypes)
	rg.GET("/routes", controller.FindRoutes)
}
