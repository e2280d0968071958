package ticket

import "github.com/gin-gonic/gin"

func SetupTicketRoutes(rg *gin.RouterGroup, controller *Controller) {
	tickets := rg.Group("/tickets")
	{
		tickets.POST("/verify", controller.VerifyTicket)
		tickets.POST("/scan", controller.ScanTicket)
	}
}
