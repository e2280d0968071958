package booking

import "github.com/gin-gonic/gin"

func SetupBookingRoutes(rg *gin.RouterGroup, controller *Controller) {
	bookings := rg.Group("/bookings")
	{
		bookings.POST("", controller.CreateBooking)
		bookings.GET("/:id", controller.GetBooking)
		bookings.POST("/:id/cancel", controller.CancelBooking)
	}
}
